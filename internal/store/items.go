package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

func (s *Store) CreateItem(title string) (*Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("create item: empty title: %w", ErrValidation)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO items (title, completed, created_at, updated_at) VALUES (?, 0, ?, ?)`,
		title, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetItem(id)
}

func (s *Store) GetItem(id int64) (*Item, error) {
	row := s.db.QueryRow(
		`SELECT id, title, completed, created_at, updated_at FROM items WHERE id = ?`, id,
	)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}
	return &it, nil
}

func (s *Store) ListItems(q Query) ([]Item, error) {
	query := `SELECT id, title, completed, created_at, updated_at FROM items WHERE 1=1`
	var args []any

	if q.Completed != nil {
		query += ` AND completed = ?`
		args = append(args, boolToInt(*q.Completed))
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *Store) UpdateItem(id int64, p Patch) error {
	if p.empty() {
		return fmt.Errorf("update item %d: empty patch: %w", id, ErrValidation)
	}

	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC().Format(time.RFC3339)}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return fmt.Errorf("update item %d: empty title: %w", id, ErrValidation)
		}
		sets = append(sets, "title = ?")
		args = append(args, title)
	}
	if p.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, boolToInt(*p.Completed))
	}
	args = append(args, id)

	res, err := s.db.Exec(
		`UPDATE items SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...,
	)
	if err != nil {
		return fmt.Errorf("update item %d: %w", id, err)
	}
	return affectedOne(res, "update", id)
}

func (s *Store) DeleteItem(id int64) error {
	res, err := s.db.Exec(`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	return affectedOne(res, "delete", id)
}

// DeleteCompleted removes every completed item and reports how many went.
func (s *Store) DeleteCompleted() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM items WHERE completed = 1`)
	if err != nil {
		return 0, fmt.Errorf("delete completed: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) CountItems() (Counts, error) {
	var c Counts
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN completed = 1 THEN 1 ELSE 0 END), 0)
		FROM items`,
	).Scan(&c.Total, &c.Completed)
	if err != nil {
		return Counts{}, fmt.Errorf("count items: %w", err)
	}
	c.Active = c.Total - c.Completed
	return c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(r rowScanner) (Item, error) {
	var it Item
	var completed int
	var createdAt, updatedAt string
	if err := r.Scan(&it.ID, &it.Title, &completed, &createdAt, &updatedAt); err != nil {
		return Item{}, err
	}
	it.Completed = completed == 1
	it.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	it.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return it, nil
}

func affectedOne(res sql.Result, op string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s item %d: %w", op, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s item %d: %w", op, id, ErrNotFound)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ImportItems inserts items in one transaction with fresh ids. Zero
// timestamps are set to now. Nothing is inserted if any title is blank.
func (s *Store) ImportItems(items []Item) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("import items: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO items (title, completed, created_at, updated_at) VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("import items: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, it := range items {
		title := strings.TrimSpace(it.Title)
		if title == "" {
			return 0, fmt.Errorf("import item %d: empty title: %w", i, ErrValidation)
		}
		created, updated := it.CreatedAt, it.UpdatedAt
		if created.IsZero() {
			created = now
		}
		if updated.IsZero() {
			updated = created
		}
		if _, err := stmt.Exec(title, boolToInt(it.Completed),
			created.UTC().Format(time.RFC3339), updated.UTC().Format(time.RFC3339)); err != nil {
			return 0, fmt.Errorf("import item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("import items: %w", err)
	}
	return len(items), nil
}
