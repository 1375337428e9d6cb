package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/todomvc/internal/store"
)

func ToCSV(items []store.Item, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	// Header
	if err := w.Write([]string{"ID", "Title", "Status", "Created", "Updated"}); err != nil {
		return err
	}

	for _, it := range items {
		row := []string{
			fmt.Sprintf("%d", it.ID),
			it.Title,
			status(it),
			formatTime(it.CreatedAt),
			formatTime(it.UpdatedAt),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func status(it store.Item) string {
	if it.Completed {
		return "completed"
	}
	return "active"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(time.RFC3339)
}
