package owid_test

import (
	"errors"
	"testing"

	d "github.com/invertedv/owid"
	m "github.com/invertedv/owid/mem"
	"github.com/stretchr/testify/assert"
)

func testDF(t *testing.T) *m.MemDF {
	x, e := m.NewMemCol("x", []float64{1, -2, 3})
	assert.Nil(t, e)
	y, e := m.NewMemCol("y", []int{1, -5, 6})
	assert.Nil(t, e)
	z, e := m.NewMemCol("z", []string{"a", "b", "c"})
	assert.Nil(t, e)

	df, e := m.NewMemDF(x, y, z)
	assert.Nil(t, e)

	return df
}

func TestDFcore_Columns(t *testing.T) {
	df := testDF(t)
	assert.Equal(t, 3, df.RowCount())
	assert.Equal(t, 3, df.ColumnCount())
	assert.Equal(t, []string{"x", "y", "z"}, df.ColumnNames())

	dts, e := df.ColumnTypes()
	assert.Nil(t, e)
	assert.Equal(t, []d.DataTypes{d.DTfloat, d.DTint, d.DTstring}, dts)

	_, e = df.Column("nope")
	var mc *d.MissingColumnError
	assert.True(t, errors.As(e, &mc))
	assert.Equal(t, "nope", mc.Name)

	assert.Equal(t, "", df.HasColumns("x", "z"))
	assert.Equal(t, "w", df.HasColumns("x", "w"))
}

func TestDFcore_AppendColumn(t *testing.T) {
	df := testDF(t)

	c, _ := m.NewMemCol("w", []int{7, 8, 9})
	assert.Nil(t, df.AppendColumn(c))
	assert.Equal(t, []string{"x", "y", "z", "w"}, df.ColumnNames())

	dup, _ := m.NewMemCol("x", []int{7, 8, 9})
	assert.NotNil(t, df.AppendColumn(dup))

	short, _ := m.NewMemCol("s", []int{7})
	assert.NotNil(t, df.AppendColumn(short))
}

func TestDFcore_DropKeep(t *testing.T) {
	df := testDF(t)
	assert.Nil(t, df.DropColumns("x"))
	assert.Equal(t, []string{"y", "z"}, df.ColumnNames())
	assert.NotNil(t, df.DropColumns("x"))

	// failures leave df as it was
	df = testDF(t)
	assert.NotNil(t, df.DropColumns("x", "y", "z"))
	assert.Equal(t, []string{"x", "y", "z"}, df.ColumnNames())
	assert.NotNil(t, df.DropColumns("y", "nope"))
	assert.Equal(t, []string{"x", "y", "z"}, df.ColumnNames())
	assert.Nil(t, df.DropColumns("z", "z"))
	assert.Equal(t, []string{"x", "y"}, df.ColumnNames())

	df = testDF(t)
	assert.Nil(t, df.KeepColumns("z", "x"))
	assert.Equal(t, []string{"z", "x"}, df.ColumnNames())
	assert.NotNil(t, df.KeepColumns("y"))
}

func TestDFcore_Rename(t *testing.T) {
	df := testDF(t)
	assert.Nil(t, df.Rename("x", "xx"))
	assert.Equal(t, []string{"xx", "y", "z"}, df.ColumnNames())

	assert.NotNil(t, df.Rename("y", "z"))
	assert.NotNil(t, df.Rename("q", "r"))
	assert.NotNil(t, df.Rename("y", "bad;name"))
}

func TestDFcore_Next(t *testing.T) {
	df := testDF(t)

	var names []string
	for c := df.Next(true); c != nil; c = df.Next(false) {
		names = append(names, c.Name())
	}

	assert.Equal(t, df.ColumnNames(), names)
}
