package store

import (
	"database/sql"
	"errors"
	"fmt"
)

const keyLastRoute = "last_route"

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("get setting %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// LastRoute returns the route fragment saved by SaveRoute, or "#/".
func (s *Store) LastRoute() string {
	v, err := s.GetSetting(keyLastRoute)
	if err != nil || v == "" {
		return "#/"
	}
	return v
}

func (s *Store) SaveRoute(fragment string) error {
	return s.SetSetting(keyLastRoute, fragment)
}
