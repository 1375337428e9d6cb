package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sadopc/todomvc/internal/controller"
)

// Bridge is the controller's View. Renders are forwarded into the running
// program as messages, so Attach must be called before anything navigates.
// Events go out through Emit, which runs the handler inside a tea.Cmd and
// never from Update.
type Bridge struct {
	logger *log.Logger

	mu      sync.RWMutex
	handler func(controller.Event)
	send    func(tea.Msg)
}

func NewBridge(logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.Default()
	}
	return &Bridge{logger: logger}
}

// Attach sets the function used to deliver messages, normally
// (*tea.Program).Send.
func (b *Bridge) Attach(send func(tea.Msg)) {
	b.mu.Lock()
	b.send = send
	b.mu.Unlock()
}

func (b *Bridge) Bind(handler func(controller.Event)) {
	b.mu.Lock()
	b.handler = handler
	b.mu.Unlock()
}

func (b *Bridge) Render(cmd controller.Command, payload any) {
	b.deliver(renderMsg{cmd: cmd, payload: payload})
}

// ReportError shows err on the status line.
func (b *Bridge) ReportError(err error) {
	if err == nil {
		return
	}
	b.deliver(statusMsg{text: err.Error(), isError: true})
}

// Emit returns a command that hands ev to the bound handler.
func (b *Bridge) Emit(ev controller.Event) tea.Cmd {
	return func() tea.Msg {
		b.mu.RLock()
		h := b.handler
		b.mu.RUnlock()
		if h == nil {
			b.logger.Warn("event dropped, no handler bound", "event", ev)
			return nil
		}
		h(ev)
		return nil
	}
}

func (b *Bridge) deliver(msg tea.Msg) {
	b.mu.RLock()
	send := b.send
	b.mu.RUnlock()
	if send == nil {
		b.logger.Warn("message dropped, bridge not attached", "msg", msg)
		return
	}
	send(msg)
}
