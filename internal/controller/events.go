package controller

// Event is the closed set of user interactions a View reports. The concrete
// types below are the only implementations.
type Event interface {
	isEvent()
}

type NewTodo struct {
	Title string
}

type ItemRemove struct {
	ID int64
}

type ItemToggle struct {
	ID        int64
	Completed bool
}

type ToggleAll struct {
	Completed bool
}

type ItemEdit struct {
	ID int64
}

type ItemEditDone struct {
	ID    int64
	Title string
}

type ItemEditCancel struct {
	ID int64
}

type RemoveCompleted struct{}

func (NewTodo) isEvent()         {}
func (ItemRemove) isEvent()      {}
func (ItemToggle) isEvent()      {}
func (ToggleAll) isEvent()       {}
func (ItemEdit) isEvent()        {}
func (ItemEditDone) isEvent()    {}
func (ItemEditCancel) isEvent()  {}
func (RemoveCompleted) isEvent() {}
