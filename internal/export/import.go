package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sadopc/todomvc/internal/store"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "todomvc-export.schema.json"

// exportSchema describes the document ToJSON writes.
const exportSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["items"],
  "properties": {
    "exported_at": {"type": "string", "format": "date-time"},
    "count": {"type": "integer", "minimum": 0},
    "active": {"type": "integer", "minimum": 0},
    "completed": {"type": "integer", "minimum": 0},
    "items": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["title", "completed"],
        "properties": {
          "id": {"type": "integer"},
          "title": {"type": "string", "minLength": 1, "pattern": "\\S"},
          "completed": {"type": "boolean"},
          "created_at": {"type": "string", "format": "date-time"},
          "updated_at": {"type": "string", "format": "date-time"}
        }
      }
    }
  }
}`

// FieldError is one schema violation, located by a dotted path such as
// "items.2.title".
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// ReadJSON parses a file written by ToJSON. The document is checked against
// the export schema first; every violation is returned joined together.
func ReadJSON(path string) ([]store.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json file: %w", err)
	}
	if err := validate(data); err != nil {
		return nil, fmt.Errorf("invalid export %s: %w", path, err)
	}

	var doc jsonExport
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	items := make([]store.Item, 0, len(doc.Items))
	for _, ji := range doc.Items {
		items = append(items, store.Item{
			ID:        ji.ID,
			Title:     ji.Title,
			Completed: ji.Completed,
			CreatedAt: parseTime(ji.CreatedAt),
			UpdatedAt: parseTime(ji.UpdatedAt),
		})
	}
	return items, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, strings.NewReader(exportSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
}

func validate(data []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var errs []error
	collectSchemaErrors(ve, &errs)
	return errors.Join(errs...)
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]error) {
	if len(ve.Causes) == 0 {
		*errs = append(*errs, &FieldError{
			Path: pointerToPath(ve.InstanceLocation),
			Err:  errors.New(ve.Message),
		})
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(cause, errs)
	}
}

// pointerToPath turns "/items/2/title" into "items.2.title".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	return strings.ReplaceAll(ptr, "/", ".")
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
