package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sadopc/todomvc/internal/store"
	"golang.org/x/text/encoding/charmap"
)

// ErrGlyphsReplaced is returned, wrapped, by ToPDF when the file was written
// but some title characters had no glyph in the built-in font and were
// printed as '?'. Setting Options.PDFFont avoids it.
var ErrGlyphsReplaced = errors.New("characters outside Windows-1252 replaced; set a UTF-8 pdf font")

const pdfFontFamily = "body"

// ToPDF writes a printable checklist: a title, a summary line and one row
// per item. Without opts.PDFFont the core Arial font is used, which only
// covers Windows-1252.
func ToPDF(items []store.Item, path string, opts Options) error {
	active, completed := 0, 0
	for _, it := range items {
		if it.Completed {
			completed++
		} else {
			active++
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	family := "Arial"
	text := toWindows1252
	if opts.PDFFont != "" {
		pdf.AddUTF8Font(pdfFontFamily, "", opts.PDFFont)
		pdf.AddUTF8Font(pdfFontFamily, "B", opts.PDFFont)
		family = pdfFontFamily
		text = func(s string) (string, bool) { return s, true }
	}
	pdf.SetTitle("todos", true)
	pdf.AddPage()

	pdf.SetFont(family, "B", 16)
	pdf.Cell(40, 10, "todos")
	pdf.Ln(10)

	pdf.SetFont(family, "", 9)
	pdf.SetTextColor(102, 102, 102)
	pdf.Cell(0, 6, fmt.Sprintf("Exported %s  -  %d active, %d completed",
		time.Now().Format("2006-01-02 15:04"), active, completed))
	pdf.Ln(10)

	replaced := 0
	pdf.SetFont(family, "", 11)
	for _, it := range items {
		box := "[  ]"
		pdf.SetTextColor(0, 0, 0)
		if it.Completed {
			box = "[x]"
			pdf.SetTextColor(120, 120, 120)
		}
		title, ok := text(it.Title)
		if !ok {
			replaced++
		}
		pdf.CellFormat(12, 7, box, "", 0, "L", false, 0, "")
		pdf.MultiCell(0, 7, title, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf file: %w", err)
	}
	if replaced > 0 {
		return fmt.Errorf("%d of %d titles: %w", replaced, len(items), ErrGlyphsReplaced)
	}
	return nil
}

// toWindows1252 encodes s for the core PDF fonts. Runes the code page lacks
// become '?' and ok is false.
func toWindows1252(s string) (out string, ok bool) {
	ok = true
	var b strings.Builder
	for _, r := range s {
		c, found := charmap.Windows1252.EncodeRune(r)
		if !found {
			c, ok = '?', false
		}
		b.WriteByte(c)
	}
	return b.String(), ok
}
