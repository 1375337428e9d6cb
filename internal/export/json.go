package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/todomvc/internal/store"
)

type jsonExport struct {
	ExportedAt string     `json:"exported_at"`
	Count      int        `json:"count"`
	Active     int        `json:"active"`
	Completed  int        `json:"completed"`
	Items      []jsonItem `json:"items"`
}

type jsonItem struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func ToJSON(items []store.Item, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(items),
	}

	for _, it := range items {
		if it.Completed {
			export.Completed++
		} else {
			export.Active++
		}
		export.Items = append(export.Items, jsonItem{
			ID:        it.ID,
			Title:     it.Title,
			Completed: it.Completed,
			CreatedAt: formatTime(it.CreatedAt),
			UpdatedAt: formatTime(it.UpdatedAt),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
