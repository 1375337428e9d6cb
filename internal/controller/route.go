package controller

import (
	"strings"

	"github.com/sadopc/todomvc/internal/store"
)

// Filter selects which items a route shows.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

var filterNames = map[Filter]string{
	FilterAll:       "all",
	FilterActive:    "active",
	FilterCompleted: "completed",
}

func (f Filter) String() string { return filterNames[f] }

// Query builds the model query for f. FilterAll yields the zero Query.
func (f Filter) Query() store.Query {
	switch f {
	case FilterActive:
		return store.Query{Completed: store.Bool(false)}
	case FilterCompleted:
		return store.Query{Completed: store.Bool(true)}
	}
	return store.Query{}
}

// Route fragments the view navigates to.
const (
	RouteAll       = "#/"
	RouteActive    = "#/active"
	RouteCompleted = "#/completed"
)

// ParseRoute strips a leading "#" and "/" and returns the first path segment
// as the token, so "#/active", "/active" and "active" all select
// FilterActive. Matching is case-sensitive. Unknown tokens are returned
// as-is with FilterAll.
func ParseRoute(raw string) (token string, f Filter) {
	token = strings.TrimPrefix(raw, "#")
	token = strings.TrimPrefix(token, "/")
	if i := strings.IndexByte(token, '/'); i >= 0 {
		token = token[:i]
	}

	switch token {
	case "active":
		return token, FilterActive
	case "completed":
		return token, FilterCompleted
	}
	return token, FilterAll
}
