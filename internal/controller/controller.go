// Package controller routes navigation and View events to the Model and turns
// Model results into View render commands.
package controller

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/sadopc/todomvc/internal/store"
)

// Model is the asynchronous item collection. Every callback fires exactly
// once, possibly on another goroutine.
type Model interface {
	Read(q store.Query, fn func([]store.Item, error))
	GetCount(fn func(store.Counts, error))
	Create(title string, fn func(error))
	Update(id int64, p store.Patch, fn func(error))
	Remove(id int64, fn func(error))
}

// View draws what the controller tells it to and reports user events to the
// single handler passed to Bind.
type View interface {
	Render(cmd Command, payload any)
	Bind(handler func(Event))
}

type Controller struct {
	model   Model
	view    View
	logger  *log.Logger
	onError func(error)

	mu     sync.Mutex
	filter Filter
	items  []store.Item // result of the last read, used by edit and toggle-all
	reads  uint64       // sequence of the newest list read

	// toggleMu orders completed toggles so the last toggleAll render sees
	// every one of them.
	toggleMu sync.Mutex
}

type Option func(*Controller)

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithErrorHandler installs fn to receive failed Model operations after the
// corresponding render step has been skipped.
func WithErrorHandler(fn func(error)) Option {
	return func(c *Controller) { c.onError = fn }
}

// New wires the controller to m and v and binds the event handler. It makes
// no Model or View render calls.
func New(m Model, v View, opts ...Option) *Controller {
	c := &Controller{
		model:  m,
		view:   v,
		logger: log.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	v.Bind(c.Handle)
	return c
}

// SetView loads the list for a route fragment such as "", "#/" or "#/active".
func (c *Controller) SetView(fragment string) {
	token, f := ParseRoute(fragment)
	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()

	c.logger.Debug("set view", "fragment", fragment, "filter", f)
	c.showEntries(f)
	c.view.Render(CmdSetFilter, token)
}

// Handle dispatches one View event.
func (c *Controller) Handle(ev Event) {
	switch ev := ev.(type) {
	case NewTodo:
		c.addItem(ev.Title)
	case ItemRemove:
		c.removeItem(ev.ID)
	case ItemToggle:
		c.toggleItem(ev.ID, ev.Completed)
	case ToggleAll:
		c.toggleAll(ev.Completed)
	case ItemEdit:
		c.editItem(ev.ID)
	case ItemEditDone:
		c.editItemSave(ev.ID, ev.Title)
	case ItemEditCancel:
		c.editItemCancel(ev.ID)
	case RemoveCompleted:
		c.removeCompleted()
	default:
		c.logger.Warn("unhandled event", "type", fmt.Sprintf("%T", ev))
	}
}

// showEntries reads the list for f and renders it. A result that arrives
// after a newer read was issued is dropped.
func (c *Controller) showEntries(f Filter) {
	c.mu.Lock()
	c.reads++
	seq := c.reads
	c.mu.Unlock()

	c.model.Read(f.Query(), func(items []store.Item, err error) {
		if err != nil {
			c.fail("read", err)
			return
		}
		c.mu.Lock()
		if seq != c.reads {
			c.mu.Unlock()
			c.logger.Debug("stale read dropped", "filter", f, "seq", seq)
			return
		}
		c.items = slices.Clone(items)
		c.mu.Unlock()

		c.view.Render(CmdShowEntries, items)
		c.view.Render(CmdContentBlockVisibility, Visibility{Visible: len(items) > 0})
		c.view.Render(CmdToggleAll, ToggleAllState{Checked: allCompleted(items)})
		c.syncCounts()
	})
}

func (c *Controller) syncCounts() {
	c.model.GetCount(func(n store.Counts, err error) {
		if err != nil {
			c.fail("count", err)
			return
		}
		c.view.Render(CmdUpdateElementCount, n.Active)
		c.view.Render(CmdClearCompletedButton, ClearCompleted{
			Completed: n.Completed,
			Visible:   n.Completed > 0,
		})
	})
}

func (c *Controller) addItem(title string) {
	if strings.TrimSpace(title) == "" {
		return
	}
	c.model.Create(title, func(err error) {
		if err != nil {
			c.fail("create", err)
			return
		}
		c.view.Render(CmdClearNewTodo, nil)
		c.showEntries(c.currentFilter())
	})
}

func (c *Controller) removeItem(id int64) {
	c.model.Remove(id, func(err error) {
		if err != nil {
			c.fail("remove", err)
			return
		}
		c.forget(id)
		c.view.Render(CmdRemoveItem, id)
		c.syncCounts()
	})
}

func (c *Controller) removeCompleted() {
	c.model.Read(FilterCompleted.Query(), func(items []store.Item, err error) {
		if err != nil {
			c.fail("read completed", err)
			return
		}
		for _, it := range items {
			c.removeItem(it.ID)
		}
	})
}

func (c *Controller) toggleItem(id int64, completed bool) {
	c.model.Update(id, store.Patch{Completed: store.Bool(completed)}, func(err error) {
		if err != nil {
			c.fail("toggle", err)
			return
		}
		c.toggleMu.Lock()
		c.remember(id, func(it *store.Item) { it.Completed = completed })
		c.view.Render(CmdElementComplete, ItemStatus{ID: id, Completed: completed})
		if f := c.currentFilter(); f != FilterAll {
			c.toggleMu.Unlock()
			// The item may no longer match the route.
			c.showEntries(f)
			return
		}
		c.view.Render(CmdToggleAll, ToggleAllState{Checked: allCompleted(c.snapshot())})
		c.toggleMu.Unlock()
		c.syncCounts()
	})
}

// toggleAll issues one independent update per held item. Completions are
// not ordered and nothing waits for all of them.
func (c *Controller) toggleAll(completed bool) {
	items := c.snapshot()
	c.logger.Debug("toggle all", "items", len(items), "completed", completed)
	for _, it := range items {
		c.toggleItem(it.ID, completed)
	}
}

func (c *Controller) editItem(id int64) {
	title, ok := c.title(id)
	if !ok {
		c.fail("edit", fmt.Errorf("item %d: %w", id, store.ErrNotFound))
		return
	}
	c.view.Render(CmdEditItem, ItemTitle{ID: id, Title: title})
}

// editItemSave persists a new title. An empty title deletes the item.
func (c *Controller) editItemSave(id int64, title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		c.removeItem(id)
		return
	}
	c.model.Update(id, store.Patch{Title: store.String(title)}, func(err error) {
		if err != nil {
			c.fail("edit", err)
			return
		}
		c.remember(id, func(it *store.Item) { it.Title = title })
		c.view.Render(CmdEditItemDone, ItemTitle{ID: id, Title: title})
	})
}

func (c *Controller) editItemCancel(id int64) {
	title, ok := c.title(id)
	if !ok {
		c.fail("cancel edit", fmt.Errorf("item %d: %w", id, store.ErrNotFound))
		return
	}
	c.view.Render(CmdEditItemDone, ItemTitle{ID: id, Title: title})
}

func (c *Controller) fail(op string, err error) {
	c.logger.Error("model operation failed", "op", op, "err", err)
	if c.onError != nil {
		c.onError(fmt.Errorf("%s: %w", op, err))
	}
}

// --- snapshot helpers ---

func (c *Controller) currentFilter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *Controller) snapshot() []store.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

func (c *Controller) title(id int64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it.ID == id {
			return it.Title, true
		}
	}
	return "", false
}

func (c *Controller) remember(id int64, fn func(*store.Item)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			fn(&c.items[i])
			return
		}
	}
}

func (c *Controller) forget(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = slices.DeleteFunc(c.items, func(it store.Item) bool { return it.ID == id })
}

func allCompleted(items []store.Item) bool {
	if len(items) == 0 {
		return false
	}
	for _, it := range items {
		if !it.Completed {
			return false
		}
	}
	return true
}
