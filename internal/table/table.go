package table

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrRowMismatch is returned when a column does not have as many rows as the table
var ErrRowMismatch = errors.New("column length does not match table rows")

// Column is an ordered, named sequence of cells. A nil cell is a missing value.
// Categorical columns carry an explicit, ordered category domain.
type Column struct {
	Name       string `json:"name"`
	Values     []any  `json:"values"`
	Categories []any  `json:"categories,omitempty"`
}

// Len returns the number of rows in the column
func (c Column) Len() int {
	return len(c.Values)
}

// IsCategorical reports whether the column has a category domain
func (c Column) IsCategorical() bool {
	return c.Categories != nil
}

// Codes returns the position of every value inside Categories, -1 for missing
// values and values outside the domain. List-valued cells are coded -1.
func (c Column) Codes() []int {
	codes := make([]int, len(c.Values))
	for i, v := range c.Values {
		codes[i] = -1
		if v == nil {
			continue
		}
		for j, cat := range c.Categories {
			if cellEqual(v, cat) {
				codes[i] = j
				break
			}
		}
	}
	return codes
}

// Table is a set of equally long columns, concatenated left to right
type Table struct {
	columns []Column
	rows    int
}

// New creates a table from the given columns
func New(columns ...Column) (*Table, error) {
	t := &Table{}
	if err := t.Append(columns...); err != nil {
		return nil, err
	}
	return t, nil
}

// Append adds columns to the right of the table. The first column appended to
// an empty table fixes the row count.
func (t *Table) Append(columns ...Column) error {
	for _, col := range columns {
		if len(t.columns) == 0 {
			t.rows = col.Len()
		} else if col.Len() != t.rows {
			return fmt.Errorf("column %q has %d rows, table has %d: %w", col.Name, col.Len(), t.rows, ErrRowMismatch)
		}
		t.columns = append(t.columns, col)
	}
	return nil
}

// Rows returns the number of rows
func (t *Table) Rows() int {
	return t.rows
}

// Columns returns the table columns in order
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Names returns the column names in order
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Column looks a column up by name
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Row returns the cells of row i in column order
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.columns))
	for j, c := range t.columns {
		row[j] = c.Values[i]
	}
	return row
}

// Records returns one map per row keyed by column name
func (t *Table) Records() []map[string]any {
	records := make([]map[string]any, t.rows)
	for i := 0; i < t.rows; i++ {
		rec := make(map[string]any, len(t.columns))
		for _, c := range t.columns {
			rec[c.Name] = c.Values[i]
		}
		records[i] = rec
	}
	return records
}

// WriteCSV writes a header line followed by one line per row
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return err
	}
	for i := 0; i < t.rows; i++ {
		record := make([]string, len(t.columns))
		for j, c := range t.columns {
			record[j] = FormatCell(c.Values[i])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalJSON encodes the table as column names plus row-major cells
func (t *Table) MarshalJSON() ([]byte, error) {
	rows := make([][]any, t.rows)
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return json.Marshal(struct {
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}{
		Columns: t.Names(),
		Rows:    rows,
	})
}

// FormatCell renders a cell for text output. Missing cells are empty, list
// cells are joined with ";".
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = FormatCell(item)
		}
		return strings.Join(parts, ";")
	default:
		return fmt.Sprint(x)
	}
}

func cellEqual(a, b any) bool {
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x == y
	case int:
		y, ok := b.(int)
		return ok && x == y
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	}
	return false
}
