package testing

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/invertedv/owid/pipeline"
	s "github.com/invertedv/owid/sql"
	"github.com/stretchr/testify/assert"
)

func saveAndCheck(t *testing.T, dialect, conn string) {
	ctx := context.Background()
	df := loadData()
	assert.Equal(t, 3, df.RowCount())

	dlct, e := s.Open(ctx, dialect, conn)
	assert.Nil(t, e)
	if e != nil {
		return
	}
	defer func() { _ = dlct.Close() }()

	orderBy := ""
	if dialect == ch {
		orderBy = "entity, year"
	}

	// twice: the second save replaces the first
	for i := 0; i < 2; i++ {
		n, e := s.Save(ctx, dlct, outTable, orderBy, df)
		assert.Nil(t, e)
		assert.Equal(t, 3, n)
	}

	var count int64
	assert.Nil(t, dlct.DB().QueryRowContext(ctx, "SELECT count(*) FROM "+outTable).Scan(&count))
	assert.Equal(t, int64(3), count)

	var (
		code, xVar string
		year       int64
		le, x      float64
	)
	row := dlct.DB().QueryRowContext(ctx,
		"SELECT code, year, "+pipeline.LifeExpectancy+", "+pipeline.XValue+", "+pipeline.XVariable+
			" FROM "+outTable+" WHERE entity = "+dlct.Placeholder(1), "Chad")
	assert.Nil(t, row.Scan(&code, &year, &le, &x, &xVar))
	assert.Equal(t, "TCD", code)
	assert.Equal(t, int64(2005), year)
	assert.Equal(t, 52.0, le)
	assert.Equal(t, 0.25, x)
	assert.Equal(t, "democracy", xVar)

	assert.Nil(t, dlct.DropTable(ctx, outTable))
}

func TestSaveDuckDB(t *testing.T) {
	saveAndCheck(t, duck, filepath.Join(t.TempDir(), "story.duckdb"))
}

func TestSaveClickHouse(t *testing.T) {
	conn := dsn(ch)
	if conn == "" {
		t.Skip("set host, user and password to test ClickHouse")
	}

	saveAndCheck(t, ch, conn)
}

func TestSavePostgres(t *testing.T) {
	conn := dsn(pg)
	if conn == "" {
		t.Skip("set host, user, password and db to test Postgres")
	}

	saveAndCheck(t, pg, conn)
}

func TestOpen_Unsupported(t *testing.T) {
	_, e := s.Open(context.Background(), "oracle", "x")
	assert.NotNil(t, e)
}
