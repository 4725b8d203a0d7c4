package owid

import (
	"fmt"
	"strings"
)

// DF is the interface a table must satisfy to be written, summarized or saved.
type DF interface {
	AppendColumn(col Column) error
	Column(colName string) (Column, error)
	ColumnCount() int
	ColumnNames() []string
	ColumnTypes(cols ...string) ([]DataTypes, error)
	DropColumns(colNames ...string) error
	Next(reset bool) Column
	Rename(oldName, newName string) error
	RowCount() int
}

// DFcore is the ordered set of columns. It is embedded in specific implementations.
type DFcore struct {
	head    *columnList
	current *columnList
}

type columnList struct {
	col Column

	prior *columnList
	next  *columnList
}

// MissingColumnError is returned when a column that is required is not in the table.
type MissingColumnError struct {
	Name string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %s not found", e.Name)
}

// *********** DFcore - Create ***********

func NewDF(cols ...Column) (*DFcore, error) {
	if cols == nil {
		return nil, fmt.Errorf("no columns in NewDF")
	}

	df := &DFcore{}
	for ind := 0; ind < len(cols); ind++ {
		if e := df.AppendColumn(cols[ind]); e != nil {
			return nil, e
		}
	}

	return df, nil
}

// *********** DFcore - Methods ***********

// Next iterates through the columns. If reset is true, it returns the first column.
// Returns nil after the last column.
func (df *DFcore) Next(reset bool) Column {
	if reset || df.current == nil {
		df.current = df.head
		if df.current == nil {
			return nil
		}

		return df.current.col
	}

	if df.current.next == nil {
		df.current = nil
		return nil
	}

	df.current = df.current.next
	return df.current.col
}

func (df *DFcore) RowCount() int {
	if df.head == nil {
		return 0
	}

	return df.head.col.Len()
}

func (df *DFcore) ColumnCount() int {
	cols := 0
	for c := df.head; c != nil; c = c.next {
		cols++
	}

	return cols
}

func (df *DFcore) ColumnNames() []string {
	var names []string

	for h := df.head; h != nil; h = h.next {
		names = append(names, h.col.Name())
	}

	return names
}

func (df *DFcore) ColumnTypes(cols ...string) ([]DataTypes, error) {
	if cols == nil {
		cols = df.ColumnNames()
	}

	var dts []DataTypes
	for _, cn := range cols {
		var (
			col Column
			e   error
		)

		if col, e = df.Column(cn); e != nil {
			return nil, e
		}

		dts = append(dts, col.DataType())
	}

	return dts, nil
}

func (df *DFcore) Column(colName string) (Column, error) {
	var (
		node *columnList
		e    error
	)

	if node, e = df.node(colName); e != nil {
		return nil, e
	}

	return node.col, nil
}

// HasColumns returns the first of colNames not in df, or "" if all are present.
func (df *DFcore) HasColumns(colNames ...string) string {
	for _, cn := range colNames {
		if _, e := df.node(cn); e != nil {
			return cn
		}
	}

	return ""
}

func (df *DFcore) AppendColumn(col Column) error {
	if col == nil {
		return fmt.Errorf("nil column in AppendColumn")
	}

	if col.Name() == "" {
		return fmt.Errorf("column with no name in AppendColumn")
	}

	if has(col.Name(), df.ColumnNames()) {
		return fmt.Errorf("duplicate column name: %s", col.Name())
	}

	dfl := &columnList{col: col}

	if df.head == nil {
		df.head = dfl
		return nil
	}

	if col.Len() != df.RowCount() {
		return fmt.Errorf("length mismatch: df - %d, append col - %d", df.RowCount(), col.Len())
	}

	var tail *columnList
	for tail = df.head; tail.next != nil; tail = tail.next {
	}

	dfl.prior = tail
	tail.next = dfl

	return nil
}

// DropColumns removes colNames. df is unchanged if any name is missing or no column
// would be left.
func (df *DFcore) DropColumns(colNames ...string) error {
	if missing := df.HasColumns(colNames...); missing != "" {
		return &MissingColumnError{Name: missing}
	}

	left := 0
	for _, cn := range df.ColumnNames() {
		if !has(cn, colNames) {
			left++
		}
	}

	if left == 0 {
		return fmt.Errorf("no columns left")
	}

	for _, cName := range colNames {
		// HasColumns checked it; a repeated name is already gone
		node, e := df.node(cName)
		if e != nil {
			continue
		}

		if node == df.head {
			df.head = df.head.next
			df.head.prior = nil
			continue
		}

		node.prior.next = node.next
		if node.next != nil {
			node.next.prior = node.prior
		}
	}

	df.current = nil

	return nil
}

// KeepColumns reorders df to hold exactly colNames, in that order.
func (df *DFcore) KeepColumns(colNames ...string) error {
	var subHead, tail *columnList

	for ind := 0; ind < len(colNames); ind++ {
		var (
			col Column
			e   error
		)

		if col, e = df.Column(colNames[ind]); e != nil {
			return e
		}

		newNode := &columnList{col: col}

		if subHead == nil {
			subHead, tail = newNode, newNode
			continue
		}

		newNode.prior = tail
		tail.next = newNode
		tail = newNode
	}

	if subHead == nil {
		return fmt.Errorf("no columns in KeepColumns")
	}

	df.head, df.current = subHead, nil

	return nil
}

func (df *DFcore) Rename(oldName, newName string) error {
	if oldName == newName {
		return nil
	}

	if has(newName, df.ColumnNames()) {
		return fmt.Errorf("column %s already exists, cannot Rename", newName)
	}

	var (
		col Column
		e   error
	)

	if col, e = df.Column(oldName); e != nil {
		return e
	}

	return col.Rename(newName)
}

func (df *DFcore) String() string {
	return fmt.Sprintf("%d rows: %s", df.RowCount(), strings.Join(df.ColumnNames(), ", "))
}

func (df *DFcore) node(colName string) (*columnList, error) {
	for h := df.head; h != nil; h = h.next {
		if h.col.Name() == colName {
			return h, nil
		}
	}

	return nil, &MissingColumnError{Name: colName}
}
