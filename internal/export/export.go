// Package export writes the item collection to CSV, JSON or PDF files and reads
// JSON exports back.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sadopc/todomvc/internal/store"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// Formats lists the supported formats in picker order.
var Formats = []Format{FormatCSV, FormatJSON, FormatPDF}

// Label is the display name, e.g. "CSV".
func (f Format) Label() string {
	return strings.ToUpper(string(f))
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv, json or pdf)", s)
}

// DefaultPath returns dir/todomvc-export-YYYY-MM-DD.<format>.
func DefaultPath(dir string, f Format, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("todomvc-export-%s.%s", now.Format("2006-01-02"), f))
}

type Options struct {
	// PDFFont is a TrueType font file used for PDF text. Empty means the
	// built-in Arial.
	PDFFont string
}

// Write dispatches to the writer for f.
func Write(f Format, items []store.Item, path string, opts Options) error {
	switch f {
	case FormatCSV:
		return ToCSV(items, path)
	case FormatJSON:
		return ToJSON(items, path)
	case FormatPDF:
		return ToPDF(items, path, opts)
	}
	return fmt.Errorf("unknown export format %q", f)
}
