// Package ingest turns heterogeneous raw sources into the canonical point set.
//
// Adapters produce Tables: column-labelled snapshots of raw records. Tables
// are never mutated; every transformation returns a new Table.
package ingest

import "strconv"

// Canonical column labels.
const (
	ColLatitude      = "Latitude"
	ColLongitude     = "Longitude"
	ColName          = "Nome"
	ColLink          = "Link"
	ColObservations  = "observations"
	ColOriginalIndex = "original_index"
	ColAddress       = "address"
	ColCategory      = "category"
	ColActive        = "active"
)

// Record is one raw row, aligned with its Table's columns. Empty strings are
// missing values.
type Record []string

// Table is an ordered set of raw records sharing one header.
type Table struct {
	columns []string
	rows    []Record
}

// NewTable builds a table. Short rows are padded and long rows truncated to
// the header width.
func NewTable(columns []string, rows [][]string) Table {
	t := Table{columns: append([]string(nil), columns...)}
	t.rows = make([]Record, 0, len(rows))
	for _, r := range rows {
		rec := make(Record, len(columns))
		copy(rec, r)
		t.rows = append(t.rows, rec)
	}
	return t
}

// Columns returns a copy of the header.
func (t Table) Columns() []string { return append([]string(nil), t.columns...) }

// Len is the number of rows.
func (t Table) Len() int { return len(t.rows) }

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t.rows) == 0 }

// Has reports whether a column with exactly this label exists.
func (t Table) Has(col string) bool {
	_, ok := t.index(col)
	return ok
}

// Value returns the cell at row i of col, or "" when the column is absent.
func (t Table) Value(i int, col string) string {
	j, ok := t.index(col)
	if !ok {
		return ""
	}
	return t.rows[i][j]
}

// Values returns a copy of a column.
func (t Table) Values(col string) []string {
	j, ok := t.index(col)
	if !ok {
		return nil
	}
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[j]
	}
	return out
}

func (t Table) index(col string) (int, bool) {
	for i, c := range t.columns {
		if c == col {
			return i, true
		}
	}
	return 0, false
}

// Rename returns a copy with columns relabelled per mapping.
func (t Table) Rename(mapping map[string]string) Table {
	cols := t.Columns()
	for i, c := range cols {
		if to, ok := mapping[c]; ok {
			cols[i] = to
		}
	}
	return Table{columns: cols, rows: t.rows}
}

// WithColumn returns a copy where col holds values, replacing an existing
// column of that name or appending a new one.
func (t Table) WithColumn(col string, values []string) Table {
	j, exists := t.index(col)
	cols := t.Columns()
	if !exists {
		cols = append(cols, col)
		j = len(cols) - 1
	}
	rows := make([]Record, len(t.rows))
	for i, r := range t.rows {
		rec := make(Record, len(cols))
		copy(rec, r)
		if i < len(values) {
			rec[j] = values[i]
		} else {
			rec[j] = ""
		}
		rows[i] = rec
	}
	return Table{columns: cols, rows: rows}
}

// Without returns a copy lacking col.
func (t Table) Without(col string) Table {
	j, ok := t.index(col)
	if !ok {
		return t
	}
	cols := make([]string, 0, len(t.columns)-1)
	cols = append(cols, t.columns[:j]...)
	cols = append(cols, t.columns[j+1:]...)
	rows := make([]Record, len(t.rows))
	for i, r := range t.rows {
		rec := make(Record, 0, len(cols))
		rec = append(rec, r[:j]...)
		rec = append(rec, r[j+1:]...)
		rows[i] = rec
	}
	return Table{columns: cols, rows: rows}
}

// Filter returns the rows for which keep returns true.
func (t Table) Filter(keep func(i int) bool) Table {
	rows := make([]Record, 0, len(t.rows))
	for i, r := range t.rows {
		if keep(i) {
			rows = append(rows, r)
		}
	}
	return Table{columns: t.Columns(), rows: rows}
}

// Concat stacks tables in order. The header is the union of all columns in
// first-seen order; cells a table lacks are empty.
func Concat(tables ...Table) Table {
	var cols []string
	seen := map[string]bool{}
	for _, t := range tables {
		for _, c := range t.columns {
			if !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}

	var rows []Record
	for _, t := range tables {
		pos := make([]int, len(cols))
		for k, c := range cols {
			j, ok := t.index(c)
			if !ok {
				j = -1
			}
			pos[k] = j
		}
		for _, r := range t.rows {
			rec := make(Record, len(cols))
			for k, j := range pos {
				if j >= 0 {
					rec[k] = r[j]
				}
			}
			rows = append(rows, rec)
		}
	}
	return Table{columns: cols, rows: rows}
}

// Indexed replaces any existing provenance column with a dense 0-based
// original_index over the rows.
func Indexed(t Table) Table {
	t = t.Without(ColOriginalIndex)
	idx := make([]string, t.Len())
	for i := range idx {
		idx[i] = strconv.Itoa(i)
	}
	return t.WithColumn(ColOriginalIndex, idx)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
