package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderList(w int) string {
	if !a.contentVisible {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Todos"),
			"",
			mutedStyle.Render("Nothing to do. Press n to add a todo."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, a.renderToggleAll())
	rows = append(rows, "")

	if len(a.items) == 0 {
		rows = append(rows, mutedStyle.Render("  No todos match this filter."))
	}
	for i, it := range a.items {
		cursor := "  "
		style := normalItemStyle
		if it.Completed {
			style = completedItemStyle
		}
		if i == a.cursor {
			cursor = "> "
			if !it.Completed {
				style = selectedItemStyle
			}
		}
		box := "[ ]"
		if it.Completed {
			box = successStyle.Render("[x]")
		}
		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, box, style.Render(truncate(it.Title, w-12))))
	}

	rows = append(rows, "")
	rows = append(rows, a.renderCounts())

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (a App) renderToggleAll() string {
	if a.allChecked {
		return successStyle.Render("❯ ") + mutedStyle.Render("all completed")
	}
	return mutedStyle.Render("❯ mark all as complete")
}

func (a App) renderCounts() string {
	left := highlightStyle.Render(itemsLeft(a.active))
	if !a.clearVisible {
		return left
	}
	return left + "   " + mutedStyle.Render(fmt.Sprintf("c: clear completed (%d)", a.completed))
}
