package tui

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/todomvc/internal/controller"
	"github.com/sadopc/todomvc/internal/export"
	"github.com/sadopc/todomvc/internal/store"
)

// Navigator loads the list for a route fragment. *controller.Controller
// satisfies it.
type Navigator interface {
	SetView(fragment string)
}

type Options struct {
	// StartRoute is loaded by Init.
	StartRoute string
	// RememberRoute saves every route navigated to in the settings table.
	RememberRoute bool
	// ExportDir is where exports are written.
	ExportDir string
	Export    export.Options
}

// App is the root Bubble Tea model. Its list state changes only through
// renders from the controller.
type App struct {
	store  *store.Store
	bridge *Bridge
	nav    Navigator
	opts   Options

	width  int
	height int

	items          []store.Item
	cursor         int
	filter         string // token from the last setFilter
	active         int
	completed      int
	clearVisible   bool
	allChecked     bool
	contentVisible bool

	form      *huh.Form
	formKind  formKind
	formTitle *string // survives value copies
	editingID int64

	showStats bool
	chart     barchart.Model

	showHelp      bool
	exportPicking bool
	exportCursor  int

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(s *store.Store, b *Bridge, nav Navigator, opts Options) App {
	h := help.New()
	h.ShowAll = false

	if opts.StartRoute == "" {
		opts.StartRoute = controller.RouteAll
	}

	title := ""
	return App{
		store:     s,
		bridge:    b,
		nav:       nav,
		opts:      opts,
		formTitle: &title,
		chart:     barchart.New(20, statsChartHeight),
		help:      h,
	}
}

func (a App) Init() tea.Cmd {
	return a.navigate(a.opts.StartRoute)
}

// navigate runs SetView off the event loop, since the controller renders
// straight back into the program.
func (a App) navigate(route string) tea.Cmd {
	return func() tea.Msg {
		a.nav.SetView(route)
		if a.opts.RememberRoute && a.store != nil {
			if err := a.store.SaveRoute(route); err != nil {
				return statusMsg{text: fmt.Sprintf("Saving route: %v", err), isError: true}
			}
		}
		return nil
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.buildChart()
		return a, nil

	case renderMsg:
		return a.apply(msg)

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = fmt.Sprintf("Exported %d todos to %s", msg.count, msg.path)
		a.statusErr = false
		a.exportPicking = false
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		if a.formActive() {
			return a.updateForm(msg)
		}
		return a.updateList(msg)
	}

	if a.formActive() {
		return a.updateForm(msg)
	}
	return a, nil
}

// apply folds one render command into the App state.
func (a App) apply(msg renderMsg) (tea.Model, tea.Cmd) {
	switch msg.cmd {
	case controller.CmdShowEntries:
		items, _ := msg.payload.([]store.Item)
		a.items = items
		a.clampCursor()

	case controller.CmdContentBlockVisibility:
		if v, ok := msg.payload.(controller.Visibility); ok {
			a.contentVisible = v.Visible
		}

	case controller.CmdToggleAll:
		if v, ok := msg.payload.(controller.ToggleAllState); ok {
			a.allChecked = v.Checked
		}

	case controller.CmdClearCompletedButton:
		if v, ok := msg.payload.(controller.ClearCompleted); ok {
			a.completed = v.Completed
			a.clearVisible = v.Visible
			a.buildChart()
		}

	case controller.CmdSetFilter:
		a.filter, _ = msg.payload.(string)

	case controller.CmdElementComplete:
		if v, ok := msg.payload.(controller.ItemStatus); ok {
			if i := a.indexOf(v.ID); i >= 0 {
				a.items[i].Completed = v.Completed
			}
		}

	case controller.CmdEditItem:
		if v, ok := msg.payload.(controller.ItemTitle); ok {
			return a.showEditForm(v)
		}

	case controller.CmdEditItemDone:
		if v, ok := msg.payload.(controller.ItemTitle); ok {
			if i := a.indexOf(v.ID); i >= 0 {
				a.items[i].Title = v.Title
			}
			if a.formKind == formEdit && a.editingID == v.ID {
				a.closeForm()
			}
		}

	case controller.CmdRemoveItem:
		if id, ok := msg.payload.(int64); ok {
			if i := a.indexOf(id); i >= 0 {
				a.items = slices.Delete(slices.Clone(a.items), i, i+1)
				a.clampCursor()
			}
			if a.formKind == formEdit && a.editingID == id {
				a.closeForm()
			}
		}

	case controller.CmdUpdateElementCount:
		if n, ok := msg.payload.(int); ok {
			a.active = n
			a.buildChart()
		}

	case controller.CmdClearNewTodo:
		if a.formKind == formNew {
			a.closeForm()
		}
		*a.formTitle = ""
	}
	return a, nil
}

func (a App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
		return a, nil
	case key.Matches(msg, keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case key.Matches(msg, keys.Down):
		if a.cursor < len(a.items)-1 {
			a.cursor++
		}
		return a, nil
	case key.Matches(msg, keys.New):
		return a.showNewForm()
	case key.Matches(msg, keys.Edit):
		if it, ok := a.selected(); ok {
			return a, a.bridge.Emit(controller.ItemEdit{ID: it.ID})
		}
	case key.Matches(msg, keys.Toggle):
		if it, ok := a.selected(); ok {
			return a, a.bridge.Emit(controller.ItemToggle{ID: it.ID, Completed: !it.Completed})
		}
	case key.Matches(msg, keys.ToggleAll):
		if len(a.items) > 0 {
			return a, a.bridge.Emit(controller.ToggleAll{Completed: !a.allChecked})
		}
	case key.Matches(msg, keys.Delete):
		if it, ok := a.selected(); ok {
			return a, a.bridge.Emit(controller.ItemRemove{ID: it.ID})
		}
	case key.Matches(msg, keys.ClearCompleted):
		if a.clearVisible {
			return a, a.bridge.Emit(controller.RemoveCompleted{})
		}
	case key.Matches(msg, keys.All):
		return a, a.navigate(controller.RouteAll)
	case key.Matches(msg, keys.Active):
		return a, a.navigate(controller.RouteActive)
	case key.Matches(msg, keys.Completed):
		return a, a.navigate(controller.RouteCompleted)
	case key.Matches(msg, keys.Tab):
		next := (tabIndex(a.filter) + 1) % len(filterTabs)
		return a, a.navigate(filterTabs[next].route)
	case key.Matches(msg, keys.Stats):
		a.showStats = !a.showStats
		if a.showStats {
			a.buildChart()
		}
		return a, nil
	case key.Matches(msg, keys.Export):
		a.exportPicking = true
		a.exportCursor = 0
		return a, nil
	}
	return a, nil
}

func (a App) selected() (store.Item, bool) {
	if a.cursor < 0 || a.cursor >= len(a.items) {
		return store.Item{}, false
	}
	return a.items[a.cursor], true
}

func (a App) indexOf(id int64) int {
	return slices.IndexFunc(a.items, func(it store.Item) bool { return it.ID == id })
}

func (a *App) clampCursor() {
	if a.cursor >= len(a.items) {
		a.cursor = max(0, len(a.items)-1)
	}
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	w := a.width - 4
	var content string
	switch {
	case a.exportPicking:
		content = a.renderExportPicker(w)
	case a.formActive():
		content = a.renderForm(w)
	default:
		content = a.renderList(w)
		if a.showStats {
			content = lipgloss.JoinVertical(lipgloss.Left, content, a.renderStats(w))
		}
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	current := tabIndex(a.filter)
	var tabs []string
	for i, t := range filterTabs {
		if i == current {
			tabs = append(tabs, activeTabStyle.Render(t.name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(t.name))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := brandStyle.Render("todos")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker(w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Export Format"))
	rows = append(rows, "")
	for i, f := range export.Formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f.Label()))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport writes every item, regardless of the current filter.
func (a App) doExport(f export.Format) tea.Cmd {
	return func() tea.Msg {
		items, err := a.store.ListItems(store.Query{})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		path := export.DefaultPath(a.opts.ExportDir, f, time.Now())
		if err := export.Write(f, items, path, a.opts.Export); err != nil {
			if errors.Is(err, export.ErrGlyphsReplaced) {
				return statusMsg{text: fmt.Sprintf("Exported to %s: %v", path, err), isError: true}
			}
			return statusMsg{text: fmt.Sprintf("%s error: %v", f.Label(), err), isError: true}
		}
		return exportDoneMsg{path: path, count: len(items)}
	}
}
