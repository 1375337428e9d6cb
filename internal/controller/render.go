package controller

// Command names a View render instruction.
type Command int

const (
	CmdShowEntries            Command = iota // payload: []store.Item
	CmdContentBlockVisibility                // payload: Visibility
	CmdToggleAll                             // payload: ToggleAllState
	CmdClearCompletedButton                  // payload: ClearCompleted
	CmdSetFilter                             // payload: string route token
	CmdElementComplete                       // payload: ItemStatus
	CmdEditItem                              // payload: ItemTitle
	CmdEditItemDone                          // payload: ItemTitle
	CmdRemoveItem                            // payload: int64 id
	CmdUpdateElementCount                    // payload: int active count
	CmdClearNewTodo                          // payload: nil
)

var commandNames = []string{
	"showEntries",
	"contentBlockVisibility",
	"toggleAll",
	"clearCompletedButton",
	"setFilter",
	"elementComplete",
	"editItem",
	"editItemDone",
	"removeItem",
	"updateElementCount",
	"clearNewTodo",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

type Visibility struct {
	Visible bool
}

type ToggleAllState struct {
	Checked bool
}

type ClearCompleted struct {
	Completed int
	Visible   bool
}

type ItemStatus struct {
	ID        int64
	Completed bool
}

type ItemTitle struct {
	ID    int64
	Title string
}
