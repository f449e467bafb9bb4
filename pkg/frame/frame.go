// Package frame implements the in-memory tabular payload: an ordered set of
// named columns, zero or more of which form the index, with typed cells.
package frame

import (
	"errors"
	"fmt"
)

// Frame errors.
var (
	ErrRaggedColumns = errors.New("columns have unequal lengths")
	ErrNoSuchColumn  = errors.New("no such column")
	ErrRowWidth      = errors.New("row width does not match frame")
)

// Column is one named column of cells.
type Column struct {
	Name   string
	Values []Value
}

// Kind returns the dominant kind of the column: float if any cell is a
// float, int if the remaining non-null cells are all ints, string otherwise.
func (c Column) Kind() Kind {
	kind := KindNull
	for _, v := range c.Values {
		switch v.Kind() {
		case KindNull:
		case KindString:
			return KindString
		case KindFloat:
			kind = KindFloat
		case KindInt:
			if kind != KindFloat {
				kind = KindInt
			}
		}
	}
	if kind == KindNull {
		return KindString
	}
	return kind
}

// Frame holds columns in order. The first indexCount columns are the index.
type Frame struct {
	cols       []Column
	indexCount int
}

// New builds a Frame from columns, all initially data columns.
// Returns ErrRaggedColumns if the columns differ in length.
func New(cols ...Column) (*Frame, error) {
	if len(cols) == 0 {
		return &Frame{}, nil
	}
	for _, c := range cols[1:] {
		if len(c.Values) != len(cols[0].Values) {
			return nil, fmt.Errorf("%w: %q has %d rows, %q has %d",
				ErrRaggedColumns, c.Name, len(c.Values), cols[0].Name, len(cols[0].Values))
		}
	}
	return &Frame{cols: cols}, nil
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int {
	if len(f.cols) == 0 {
		return 0
	}
	return len(f.cols[0].Values)
}

// NumIndex returns the number of index columns.
func (f *Frame) NumIndex() int { return f.indexCount }

// IndexNames returns the index column names in order.
func (f *Frame) IndexNames() []string {
	names := make([]string, f.indexCount)
	for i := 0; i < f.indexCount; i++ {
		names[i] = f.cols[i].Name
	}
	return names
}

// ColumnNames returns the data column names in order, index excluded.
func (f *Frame) ColumnNames() []string {
	names := make([]string, 0, len(f.cols)-f.indexCount)
	for _, c := range f.cols[f.indexCount:] {
		names = append(names, c.Name)
	}
	return names
}

// Names returns all column names in order, index first.
func (f *Frame) Names() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
	}
	return names
}

// Columns returns all columns in order, index first.
func (f *Frame) Columns() []Column { return f.cols }

// Column returns the named column (index or data).
func (f *Frame) Column(name string) (Column, bool) {
	for _, c := range f.cols {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// SetIndex moves the named columns to the front of the frame, in the given
// order, and marks them as the index. Returns ErrNoSuchColumn if any name
// is absent.
func (f *Frame) SetIndex(names ...string) error {
	picked := make([]Column, 0, len(names))
	rest := make([]Column, 0, len(f.cols))
	for _, name := range names {
		c, ok := f.Column(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrNoSuchColumn, name)
		}
		picked = append(picked, c)
	}
	for _, c := range f.cols {
		keep := true
		for _, name := range names {
			if c.Name == name {
				keep = false
				break
			}
		}
		if keep {
			rest = append(rest, c)
		}
	}
	f.cols = append(picked, rest...)
	f.indexCount = len(picked)
	return nil
}

// SetIndexAt marks the column at the given position (over all columns in
// current order) as the single index column.
func (f *Frame) SetIndexAt(pos int) error {
	if pos < 0 || pos >= len(f.cols) {
		return fmt.Errorf("%w: position %d", ErrNoSuchColumn, pos)
	}
	return f.SetIndex(f.cols[pos].Name)
}

// Row returns all cells of row i, index columns first.
func (f *Frame) Row(i int) []Value {
	row := make([]Value, len(f.cols))
	for j, c := range f.cols {
		row[j] = c.Values[i]
	}
	return row
}

// AppendRow adds one row of cells, index columns first.
// Returns ErrRowWidth on a width mismatch.
func (f *Frame) AppendRow(vals []Value) error {
	if len(vals) != len(f.cols) {
		return fmt.Errorf("%w: got %d cells, want %d", ErrRowWidth, len(vals), len(f.cols))
	}
	for j := range f.cols {
		f.cols[j].Values = append(f.cols[j].Values, vals[j])
	}
	return nil
}

// Rename rewrites column labels (index labels included) through the mapping.
// Labels absent from the mapping are left alone.
func (f *Frame) Rename(mapping map[string]string) {
	for i := range f.cols {
		if to, ok := mapping[f.cols[i].Name]; ok {
			f.cols[i].Name = to
		}
	}
}
