package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/todomvc/internal/controller"
)

type formKind int

const (
	formNone formKind = iota
	formNew
	formEdit
)

func (a App) formActive() bool {
	return a.formKind != formNone && a.form != nil
}

func (a App) showNewForm() (App, tea.Cmd) {
	*a.formTitle = ""
	a.formKind = formNew
	a.form = newTitleForm("New todo", "What needs to be done?", a.formTitle)
	return a, a.form.Init()
}

// showEditForm opens the editor for the item the controller put into edit
// mode.
func (a App) showEditForm(it controller.ItemTitle) (App, tea.Cmd) {
	*a.formTitle = it.Title
	a.formKind = formEdit
	a.editingID = it.ID
	a.form = newTitleForm("Edit todo", "", a.formTitle)
	return a, a.form.Init()
}

func newTitleForm(title, placeholder string, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(title).Placeholder(placeholder).Value(value),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

func (a App) updateForm(msg tea.Msg) (App, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Back) {
		return a.cancelForm()
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		return a.submitForm()
	case huh.StateAborted:
		return a.cancelForm()
	}
	return a, cmd
}

// submitForm closes the form and reports its value. The list changes once
// the controller renders the result.
func (a App) submitForm() (App, tea.Cmd) {
	kind, id, title := a.formKind, a.editingID, *a.formTitle
	a.closeForm()

	switch kind {
	case formNew:
		return a, a.bridge.Emit(controller.NewTodo{Title: title})
	case formEdit:
		return a, a.bridge.Emit(controller.ItemEditDone{ID: id, Title: title})
	}
	return a, nil
}

func (a App) cancelForm() (App, tea.Cmd) {
	kind, id := a.formKind, a.editingID
	a.closeForm()
	if kind == formEdit {
		return a, a.bridge.Emit(controller.ItemEditCancel{ID: id})
	}
	return a, nil
}

func (a *App) closeForm() {
	a.formKind = formNone
	a.form = nil
}

func (a App) renderForm(w int) string {
	title := titleStyle.Render("New Todo")
	if a.formKind == formEdit {
		title = titleStyle.Render("Edit Todo")
	}
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", a.form.View())
	return activePanelStyle.Width(w).Render(content)
}
