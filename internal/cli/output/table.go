package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"
)

// Tabler is implemented by values that know their own table layout.
type Tabler interface {
	Table() *Table
}

// TableFormatter formats data as aligned columns.
type TableFormatter struct {
	NoHeaders bool
}

// Format renders a Tabler, a *Table, a struct or a slice of structs.
// Anything else falls back to JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	var table *Table
	switch v := data.(type) {
	case Tabler:
		table = v.Table()
	case *Table:
		table = v
	default:
		var ok bool
		if table, ok = toTable(reflect.ValueOf(data)); !ok {
			encoder := json.NewEncoder(w)
			encoder.SetIndent("", "  ")
			return encoder.Encode(data)
		}
	}
	return table.RenderWithOptions(w, f.NoHeaders)
}

func toTable(v reflect.Value) (*Table, bool) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		table := &Table{Headers: []string{"FIELD", "VALUE"}}
		for i, name := range columns(v.Type()) {
			if name == "" {
				continue
			}
			table.AddRow(name, formatValue(v.Field(i)))
		}
		return table, true
	case reflect.Slice, reflect.Array:
		elem := v.Type().Elem()
		for elem.Kind() == reflect.Pointer {
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.Struct {
			return nil, false
		}
		names := columns(elem)
		table := &Table{}
		for _, name := range names {
			if name != "" {
				table.Headers = append(table.Headers, strings.ToUpper(name))
			}
		}
		for i := 0; i < v.Len(); i++ {
			item := reflect.Indirect(v.Index(i))
			if !item.IsValid() {
				continue
			}
			var row []string
			for j, name := range names {
				if name != "" {
					row = append(row, formatValue(item.Field(j)))
				}
			}
			table.AddRow(row...)
		}
		return table, true
	default:
		return nil, false
	}
}

// columns returns one name per struct field, "" for skipped fields.
// Names come from the json tag when present.
func columns(t reflect.Type) []string {
	names := make([]string, t.NumField())
	for i := range names {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("table") == "-" {
			continue
		}
		name := field.Name
		if tag, _, _ := strings.Cut(field.Tag.Get("json"), ","); tag == "-" {
			continue
		} else if tag != "" {
			name = tag
		}
		names[i] = name
	}
	return names
}

func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return "-"
	}
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "-"
		}
		v = v.Elem()
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	if v.Kind() == reflect.String && v.String() == "" {
		return "-"
	}
	return fmt.Sprint(v.Interface())
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table with options.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		if _, err := fmt.Fprintln(tw, strings.Join(t.Headers, "\t")); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}
