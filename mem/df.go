package mem

import (
	"fmt"
	"io"

	d "github.com/invertedv/owid"
)

// MemDF is an in-memory table. Each column holds a typed slice.
type MemDF struct {
	*d.DFcore
}

// MemCol is a named, typed slice: []string, []float64 or []int.
type MemCol struct {
	data any

	*d.ColCore
}

// ***************** MemDF - Create *****************

func NewMemDF(cols ...*MemCol) (*MemDF, error) {
	if cols == nil {
		return nil, fmt.Errorf("no columns in NewMemDF")
	}

	rowCount := cols[0].Len()
	var cc []d.Column
	for ind := 0; ind < len(cols); ind++ {
		if cols[ind].Len() != rowCount {
			return nil, fmt.Errorf("all MemCols must have same length")
		}

		cc = append(cc, cols[ind])
	}

	var (
		df *d.DFcore
		e  error
	)

	if df, e = d.NewDF(cc...); e != nil {
		return nil, e
	}

	return &MemDF{DFcore: df}, nil
}

// FromRaw builds a MemDF from parsed delimited text. Each column gets the narrowest
// type that holds all of its cells.
func FromRaw(header []string, raw [][]string) (*MemDF, error) {
	if len(header) != len(raw) {
		return nil, fmt.Errorf("header has %d fields, data has %d columns", len(header), len(raw))
	}

	var cols []*MemCol
	for ind := 0; ind < len(header); ind++ {
		dt := d.BestType(raw[ind])

		var (
			data any
			e    error
		)
		if data, e = d.ToSlc(raw[ind], dt); e != nil {
			return nil, fmt.Errorf("column %s: %w", header[ind], e)
		}

		var col *MemCol
		if col, e = NewMemCol(header[ind], data); e != nil {
			return nil, e
		}

		cols = append(cols, col)
	}

	return NewMemDF(cols...)
}

// LoadFile reads the CSV file fileName, which must have a header row.
func LoadFile(fileName string) (*MemDF, error) {
	f := d.NewFiles()
	if e := f.Open(fileName); e != nil {
		return nil, e
	}
	defer func() { _ = f.Close() }()

	var (
		raw [][]string
		e   error
	)
	if raw, e = f.Load(); e != nil {
		return nil, fmt.Errorf("load %s: %w", fileName, e)
	}

	return FromRaw(f.FieldNames, raw)
}

// LoadCSV reads CSV with a header row from r.
func LoadCSV(r io.Reader) (*MemDF, error) {
	f := d.NewFiles()

	var (
		raw [][]string
		e   error
	)
	if raw, e = f.Read(r); e != nil {
		return nil, e
	}

	return FromRaw(f.FieldNames, raw)
}

// ***************** MemDF - Methods *****************

// Where keeps the rows for which mask is true, in their original order.
func (df *MemDF) Where(mask []bool) error {
	if len(mask) != df.RowCount() {
		return fmt.Errorf("mask has %d rows, df has %d", len(mask), df.RowCount())
	}

	for c := df.Next(true); c != nil; c = df.Next(false) {
		c.(*MemCol).keep(mask)
	}

	return nil
}

// Row returns the values of row ind in column order.
func (df *MemDF) Row(ind int) []any {
	var row []any
	for c := df.Next(true); c != nil; c = df.Next(false) {
		row = append(row, c.Element(ind))
	}

	return row
}

// ***************** MemCol *****************

func NewMemCol(name string, data any) (*MemCol, error) {
	var dt d.DataTypes
	if dt = d.WhatAmI(data); dt == d.DTunknown {
		return nil, fmt.Errorf("unsupported data type in NewMemCol")
	}

	switch data.(type) {
	case []float64, []int, []string:
	default:
		return nil, fmt.Errorf("NewMemCol needs a slice, got %T", data)
	}

	var (
		cc *d.ColCore
		e  error
	)
	if cc, e = d.NewColCore(dt, d.ColName(name)); e != nil {
		return nil, e
	}

	return &MemCol{data: data, ColCore: cc}, nil
}

// Constant returns a column of n copies of val.
func Constant(name string, val any, n int) (*MemCol, error) {
	var data any
	switch x := val.(type) {
	case string:
		s := make([]string, n)
		for ind := range s {
			s[ind] = x
		}
		data = s
	case float64:
		s := make([]float64, n)
		for ind := range s {
			s[ind] = x
		}
		data = s
	case int:
		s := make([]int, n)
		for ind := range s {
			s[ind] = x
		}
		data = s
	default:
		return nil, fmt.Errorf("unsupported constant type %T", val)
	}

	return NewMemCol(name, data)
}

func (m *MemCol) Data() any {
	return m.data
}

func (m *MemCol) Len() int {
	switch x := m.data.(type) {
	case []float64:
		return len(x)
	case []int:
		return len(x)
	case []string:
		return len(x)
	default:
		return -1
	}
}

func (m *MemCol) Element(row int) any {
	switch x := m.data.(type) {
	case []float64:
		return x[row]
	case []int:
		return x[row]
	case []string:
		return x[row]
	default:
		panic(fmt.Errorf("unsupported data type in Element"))
	}
}

// AsFloat returns the data as []float64. Ints are converted; strings are an error.
func (m *MemCol) AsFloat() ([]float64, error) {
	switch x := m.data.(type) {
	case []float64:
		return x, nil
	case []int:
		out := make([]float64, len(x))
		for ind, v := range x {
			out[ind] = float64(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("column %s is %v, not numeric", m.Name(), m.DataType())
	}
}

func (m *MemCol) Copy() d.Column {
	var copiedData any
	switch x := m.data.(type) {
	case []float64:
		copiedData = append([]float64(nil), x...)
	case []int:
		copiedData = append([]int(nil), x...)
	case []string:
		copiedData = append([]string(nil), x...)
	default:
		panic(fmt.Errorf("unsupported data type in Copy"))
	}

	return &MemCol{data: copiedData, ColCore: m.ColCore.Copy()}
}

func (m *MemCol) keep(mask []bool) {
	switch x := m.data.(type) {
	case []float64:
		m.data = subset(x, mask)
	case []int:
		m.data = subset(x, mask)
	case []string:
		m.data = subset(x, mask)
	}
}

func subset[T float64 | int | string](x []T, mask []bool) []T {
	out := make([]T, 0, len(x))
	for ind, keep := range mask {
		if keep {
			out = append(out, x[ind])
		}
	}

	return out
}
