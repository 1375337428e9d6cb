package tui

import (
	"fmt"

	"github.com/sadopc/todomvc/internal/controller"
)

// --- Messages ---

// renderMsg carries one controller render into Update.
type renderMsg struct {
	cmd     controller.Command
	payload any
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path  string
	count int
}

// --- Filters ---

type filterTab struct {
	name  string
	token string
	route string
}

var filterTabs = []filterTab{
	{name: "All", token: "", route: controller.RouteAll},
	{name: "Active", token: "active", route: controller.RouteActive},
	{name: "Completed", token: "completed", route: controller.RouteCompleted},
}

// tabIndex returns the tab matching a setFilter token, or -1.
func tabIndex(token string) int {
	for i, t := range filterTabs {
		if t.token == token {
			return i
		}
	}
	return -1
}

// --- Helpers ---

func itemsLeft(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", n)
}

func truncate(s string, w int) string {
	r := []rune(s)
	if w <= 1 || len(r) <= w {
		return s
	}
	return string(r[:w-1]) + "…"
}
