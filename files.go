package owid

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// All code interacting with files is here

const (
	Sep    = ','
	Header = true
)

// Files reads and writes delimited text.
type Files struct {
	FieldNames []string
	Sep        rune
	Header     bool

	file     *os.File
	fileName string
}

func NewFiles() *Files {
	return &Files{
		Sep:    Sep,
		Header: Header,
	}
}

func (f *Files) Open(fileName string) error {
	var e error
	f.fileName = fileName
	f.file, e = os.Open(fileName)

	return e
}

// Create creates fileName, truncating it if it exists.
func (f *Files) Create(fileName string) error {
	var e error
	f.fileName = fileName
	f.file, e = os.Create(fileName)

	return e
}

func (f *Files) FileName() string {
	return f.fileName
}

func (f *Files) Close() error {
	if f.file != nil {
		e := f.file.Close()
		f.file = nil
		return e
	}

	return fmt.Errorf("no open files")
}

// Load reads the file opened by Open.
func (f *Files) Load() ([][]string, error) {
	if f.file == nil {
		return nil, fmt.Errorf("no open files")
	}

	return f.Read(f.file)
}

// Save writes df to the file opened by Create.
func (f *Files) Save(df DF) error {
	if f.file == nil {
		return fmt.Errorf("no open files")
	}

	return f.WriteTable(f.file, df)
}

// Read parses delimited text from r. The first record is the header and is placed in
// f.FieldNames. The return has one slice per column.
func (f *Files) Read(r io.Reader) ([][]string, error) {
	rdr := csv.NewReader(r)
	rdr.Comma = f.Sep

	header, e := rdr.Read()
	if e != nil {
		return nil, fmt.Errorf("read header: %w", e)
	}

	f.FieldNames = append([]string(nil), header...)
	cols := make([][]string, len(header))

	rowNum := 1 // header already counted
	for {
		row, e := rdr.Read()
		if e == io.EOF {
			break
		}
		rowNum++
		if e != nil {
			return nil, fmt.Errorf("read row %d: %w", rowNum, e)
		}

		for ind := 0; ind < len(row); ind++ {
			cols[ind] = append(cols[ind], row[ind])
		}
	}

	return cols, nil
}

// WriteTable writes df to w. The header is written if f.Header is true. No row index
// is written.
func (f *Files) WriteTable(w io.Writer, df DF) error {
	var cols []Column
	for c := df.Next(true); c != nil; c = df.Next(false) {
		cols = append(cols, c)
	}

	if cols == nil {
		return fmt.Errorf("no columns to write")
	}

	f.FieldNames = df.ColumnNames()

	wtr := csv.NewWriter(w)
	wtr.Comma = f.Sep

	if f.Header {
		if e := wtr.Write(f.FieldNames); e != nil {
			return fmt.Errorf("write header: %w", e)
		}
	}

	line := make([]string, len(cols))
	for row := 0; row < df.RowCount(); row++ {
		for ind, c := range cols {
			line[ind] = ToString(c.Element(row))
		}

		if e := wtr.Write(line); e != nil {
			return fmt.Errorf("write row %d: %w", row+1, e)
		}
	}

	wtr.Flush()

	return wtr.Error()
}
