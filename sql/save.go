package sql

import (
	"context"
	"fmt"

	d "github.com/invertedv/owid"
)

// Save replaces tableName with the contents of df and returns the number of rows
// inserted. The table is dropped, recreated from the column types of df and filled
// in a single transaction.
func Save(ctx context.Context, dlct *d.Dialect, tableName, orderBy string, df d.DF) (int, error) {
	fields := df.ColumnNames()

	var (
		types []d.DataTypes
		e     error
	)
	if types, e = df.ColumnTypes(fields...); e != nil {
		return 0, e
	}

	if e := dlct.DropTable(ctx, tableName); e != nil {
		return 0, fmt.Errorf("drop %s: %w", tableName, e)
	}

	if e := dlct.Create(ctx, tableName, orderBy, fields, types); e != nil {
		return 0, fmt.Errorf("create %s: %w", tableName, e)
	}

	var cols []d.Column
	for c := df.Next(true); c != nil; c = df.Next(false) {
		cols = append(cols, c)
	}

	tx, e := dlct.DB().BeginTx(ctx, nil)
	if e != nil {
		return 0, fmt.Errorf("begin: %w", e)
	}

	stmt, e := tx.PrepareContext(ctx, dlct.InsertSQL(tableName, fields))
	if e != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert: %w", e)
	}
	// statements prepared in tx are closed on Commit/Rollback; ClickHouse sends the
	// batch on Commit
	defer func() { _ = stmt.Close() }()

	args := make([]any, len(cols))
	for row := 0; row < df.RowCount(); row++ {
		for ind, c := range cols {
			args[ind] = dlct.ToDB(c.Element(row))
		}

		if _, e := stmt.ExecContext(ctx, args...); e != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert row %d: %w", row+1, e)
		}
	}

	if e := tx.Commit(); e != nil {
		return 0, fmt.Errorf("commit: %w", e)
	}

	return df.RowCount(), nil
}
