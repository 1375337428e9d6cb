package store

import (
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seed creates one item per title and marks the given indexes completed.
func seed(t *testing.T, s *Store, titles []string, completed ...int) []Item {
	t.Helper()
	var out []Item
	for _, title := range titles {
		it, err := s.CreateItem(title)
		if err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
		out = append(out, *it)
	}
	for _, i := range completed {
		if err := s.UpdateItem(out[i].ID, Patch{Completed: Bool(true)}); err != nil {
			t.Fatalf("complete %d: %v", out[i].ID, err)
		}
		out[i].Completed = true
	}
	return out
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != currentVersion {
		t.Fatalf("expected user_version %d, got %d", currentVersion, version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/todomvc.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateItem("persist me"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: data survives and migration is skipped.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	items, err := s2.ListItems(Query{})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Title != "persist me" {
		t.Fatalf("unexpected items after reopen: %+v", items)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Items
// ============================================================

func TestCreateAndGetItem(t *testing.T) {
	s := newTestStore(t)
	it, err := s.CreateItem("  buy milk  ")
	if err != nil {
		t.Fatal(err)
	}
	if it.ID == 0 {
		t.Fatal("expected id assigned by storage")
	}
	if it.Title != "buy milk" {
		t.Fatalf("title should be trimmed, got %q", it.Title)
	}
	if it.Completed {
		t.Fatal("new item should not be completed")
	}
	if it.CreatedAt.IsZero() || it.UpdatedAt.IsZero() {
		t.Fatal("timestamps should be set")
	}

	got, err := s.GetItem(it.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != it.Title || got.ID != it.ID {
		t.Fatalf("GetItem = %+v, want %+v", got, it)
	}
}

func TestCreateItemIDsAreUnique(t *testing.T) {
	s := newTestStore(t)
	items := seed(t, s, []string{"a", "b", "c"})
	seen := map[int64]bool{}
	for _, it := range items {
		if seen[it.ID] {
			t.Fatalf("duplicate id %d", it.ID)
		}
		seen[it.ID] = true
	}
}

func TestCreateItemEmptyTitle(t *testing.T) {
	s := newTestStore(t)
	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := s.CreateItem(title)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("CreateItem(%q) err = %v, want ErrValidation", title, err)
		}
	}
}

func TestGetItemNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetItem(999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListItemsQuery(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, []string{"todo1", "todo2", "todo3"}, 1, 2)

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"all", Query{}, []string{"todo1", "todo2", "todo3"}},
		{"active", Query{Completed: Bool(false)}, []string{"todo1"}},
		{"completed", Query{Completed: Bool(true)}, []string{"todo2", "todo3"}},
	}
	for _, tt := range tests {
		items, err := s.ListItems(tt.q)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if len(items) != len(tt.want) {
			t.Fatalf("%s: got %d items, want %d", tt.name, len(items), len(tt.want))
		}
		for i, title := range tt.want {
			if items[i].Title != title {
				t.Errorf("%s: items[%d] = %q, want %q", tt.name, i, items[i].Title, title)
			}
		}
	}
}

func TestListItemsEmptyIsNotNil(t *testing.T) {
	s := newTestStore(t)
	items, err := s.ListItems(Query{})
	if err != nil {
		t.Fatal(err)
	}
	if items == nil {
		t.Fatal("empty list should be non-nil")
	}
}

func TestUpdateItemTitle(t *testing.T) {
	s := newTestStore(t)
	it := seed(t, s, []string{"old"})[0]

	if err := s.UpdateItem(it.ID, Patch{Title: String(" new ")}); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetItem(it.ID)
	if got.Title != "new" {
		t.Fatalf("title = %q, want new", got.Title)
	}
	if got.Completed {
		t.Fatal("title patch should not touch completed")
	}
}

func TestUpdateItemCompleted(t *testing.T) {
	s := newTestStore(t)
	it := seed(t, s, []string{"x"})[0]

	if err := s.UpdateItem(it.ID, Patch{Completed: Bool(true)}); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetItem(it.ID)
	if !got.Completed {
		t.Fatal("expected completed")
	}
	if got.Title != "x" {
		t.Fatal("completed patch should not touch title")
	}

	if err := s.UpdateItem(it.ID, Patch{Completed: Bool(false)}); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetItem(it.ID)
	if got.Completed {
		t.Fatal("expected active again")
	}
}

func TestUpdateItemErrors(t *testing.T) {
	s := newTestStore(t)
	it := seed(t, s, []string{"x"})[0]

	if err := s.UpdateItem(999, Patch{Completed: Bool(true)}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id: err = %v, want ErrNotFound", err)
	}
	if err := s.UpdateItem(it.ID, Patch{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty patch: err = %v, want ErrValidation", err)
	}
	if err := s.UpdateItem(it.ID, Patch{Title: String("  ")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank title: err = %v, want ErrValidation", err)
	}
}

func TestDeleteItem(t *testing.T) {
	s := newTestStore(t)
	items := seed(t, s, []string{"a", "b"})

	if err := s.DeleteItem(items[0].ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetItem(items[0].ID); !errors.Is(err, ErrNotFound) {
		t.Fatal("deleted item should be gone")
	}
	if err := s.DeleteItem(items[0].ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}

	left, _ := s.ListItems(Query{})
	if len(left) != 1 || left[0].ID != items[1].ID {
		t.Fatalf("unexpected remaining items: %+v", left)
	}
}

func TestDeleteCompleted(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, []string{"a", "b", "c"}, 0, 2)

	n, err := s.DeleteCompleted()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("deleted %d, want 2", n)
	}
	left, _ := s.ListItems(Query{})
	if len(left) != 1 || left[0].Title != "b" {
		t.Fatalf("unexpected remaining items: %+v", left)
	}
}

func TestCountItems(t *testing.T) {
	s := newTestStore(t)

	c, err := s.CountItems()
	if err != nil {
		t.Fatal(err)
	}
	if c != (Counts{}) {
		t.Fatalf("empty store counts = %+v", c)
	}

	seed(t, s, []string{"todo1", "todo2", "todo3"}, 1, 2)
	c, err = s.CountItems()
	if err != nil {
		t.Fatal(err)
	}
	want := Counts{Active: 1, Completed: 2, Total: 3}
	if c != want {
		t.Fatalf("counts = %+v, want %+v", c, want)
	}
}

// ============================================================
// Settings
// ============================================================

func TestDefaultSettings(t *testing.T) {
	s := newTestStore(t)
	v, err := s.GetSetting("last_route")
	if err != nil {
		t.Fatal(err)
	}
	if v != "#/" {
		t.Fatalf("last_route = %q, want #/", v)
	}
}

func TestSetSettingUpsert(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting("theme", "dark"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSetting("theme", "light"); err != nil {
		t.Fatal(err)
	}
	v, _ := s.GetSetting("theme")
	if v != "light" {
		t.Fatalf("theme = %q, want light", v)
	}
}

func TestGetSettingMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetSetting("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRouteRoundTrip(t *testing.T) {
	s := newTestStore(t)
	if got := s.LastRoute(); got != "#/" {
		t.Fatalf("default route = %q", got)
	}
	if err := s.SaveRoute("#/completed"); err != nil {
		t.Fatal(err)
	}
	if got := s.LastRoute(); got != "#/completed" {
		t.Fatalf("route = %q, want #/completed", got)
	}
}

// ============================================================
// Import
// ============================================================

func TestImportItems(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, []string{"existing"})

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	n, err := s.ImportItems([]Item{
		{ID: 99, Title: " restored ", Completed: true, CreatedAt: created},
		{Title: "fresh"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("imported %d, want 2", n)
	}

	items, _ := s.ListItems(Query{})
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	restored := items[1]
	if restored.ID == 99 || restored.Title != "restored" || !restored.Completed {
		t.Fatalf("unexpected restored item %+v", restored)
	}
	if !restored.CreatedAt.Equal(created) || !restored.UpdatedAt.Equal(created) {
		t.Fatalf("timestamps not kept: %+v", restored)
	}
	if items[2].CreatedAt.IsZero() {
		t.Fatal("zero created_at should be set to now")
	}
}

func TestImportItemsAllOrNothing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ImportItems([]Item{{Title: "ok"}, {Title: "   "}})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if c, _ := s.CountItems(); c.Total != 0 {
		t.Fatalf("nothing should be inserted, got %+v", c)
	}
}
