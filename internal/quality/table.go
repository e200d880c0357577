package quality

import (
	"fmt"
	"time"
)

// ColumnKind is the inferred type of a Table column.
type ColumnKind int

const (
	KindEmpty ColumnKind = iota // every value is nil
	KindNumber
	KindString
	KindBool
	KindTime
	KindMixed
)

func (k ColumnKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindMixed:
		return "mixed"
	default:
		return "empty"
	}
}

// Column is one named column of a Table. Values has one entry per row;
// missing fields are nil.
type Column struct {
	Name   string
	Kind   ColumnKind
	Values []any
}

// Float returns the value at row i. ok is false when the cell is nil; a
// non-numeric cell is an error.
func (c *Column) Float(i int) (v float64, ok bool, err error) {
	switch x := c.Values[i].(type) {
	case nil:
		return 0, false, nil
	case float64:
		return x, true, nil
	default:
		return 0, false, fmt.Errorf("%w: column %q row %d holds %T", ErrNotNumeric, c.Name, i, x)
	}
}

// Time returns the value at row i when it is a time.Time.
func (c *Column) Time(i int) (time.Time, bool) {
	t, ok := c.Values[i].(time.Time)
	return t, ok
}

func (c *Column) inferKind() {
	kind := KindEmpty
	for _, v := range c.Values {
		var k ColumnKind
		switch v.(type) {
		case nil:
			continue
		case float64:
			k = KindNumber
		case string:
			k = KindString
		case bool:
			k = KindBool
		case time.Time:
			k = KindTime
		default:
			k = KindMixed
		}

		if kind == KindEmpty {
			kind = k
		} else if kind != k {
			kind = KindMixed
			break
		}
	}
	c.Kind = kind
}

// Table is the rectangular, flattened form of a batch of Records.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

func newTable(rows int) *Table {
	return &Table{
		index: make(map[string]int),
		rows:  rows,
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.rows
}

// Columns returns the columns in order of first appearance.
func (t *Table) Columns() []*Column {
	return t.columns
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		names = append(names, c.Name)
	}
	return names
}

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Has reports whether the table has a column with the given name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// MustColumn returns the named column or an ErrMissingColumn error.
func (t *Table) MustColumn(name string) (*Column, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	return c, nil
}

func (t *Table) addColumn(name string) *Column {
	c := &Column{Name: name, Values: make([]any, t.rows)}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, c)
	return c
}
