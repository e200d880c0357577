package quality

import (
	"fmt"
	"time"
)

// dateLayouts are tried in order when parsing the sampling date.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize flattens records into a Table and coerces the sampling-date
// column into time.Time. Nested objects become dot-joined column names;
// arrays are kept as opaque values. Every record yields exactly one row.
func Normalize(records []Record) (*Table, error) {
	flat := make([]map[string]any, len(records))
	var order []string
	seen := make(map[string]bool)

	for i, rec := range records {
		row := make(map[string]any)
		flatten("", rec, row, &order, seen)
		flat[i] = row
	}

	t := newTable(len(records))
	for _, name := range order {
		c := t.addColumn(name)
		for i, row := range flat {
			c.Values[i] = row[name]
		}
	}

	if err := parseDates(t); err != nil {
		return nil, err
	}

	for _, c := range t.columns {
		c.inferKind()
	}
	return t, nil
}

func flatten(prefix string, rec Record, row map[string]any, order *[]string, seen map[string]bool) {
	for _, f := range rec {
		key := f.Key
		if prefix != "" {
			key = prefix + "." + f.Key
		}

		if nested, ok := f.Value.(Record); ok && len(nested) > 0 {
			flatten(key, nested, row, order, seen)
			continue
		}

		if !seen[key] {
			seen[key] = true
			*order = append(*order, key)
		}
		row[key] = f.Value
	}
}

func parseDates(t *Table) error {
	c, ok := t.Column(ColumnDate)
	if !ok {
		return fmt.Errorf("%w: column %q not present", ErrMissingDate, ColumnDate)
	}

	for i, v := range c.Values {
		switch x := v.(type) {
		case nil:
			return fmt.Errorf("%w: row %d has no %q", ErrMissingDate, i, ColumnDate)
		case string:
			ts, err := parseDate(x)
			if err != nil {
				return fmt.Errorf("%w: row %d: %v", ErrInvalidDate, i, err)
			}
			c.Values[i] = ts
		default:
			return fmt.Errorf("%w: row %d holds %T", ErrInvalidDate, i, x)
		}
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
