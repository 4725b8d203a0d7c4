package sql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	d "github.com/invertedv/owid"

	// database/sql drivers: "pgx" and "duckdb"
	_ "github.com/jackc/pgx/stdlib"
	_ "github.com/marcboeker/go-duckdb/v2"
)

// Sink is where a copy of the output table is saved.
type Sink struct {
	// DSN is the connection string. For clickhouse it is a clickhouse:// URL, for
	// postgres a postgres:// URL and for duckdb the path of the database file.
	DSN string `yaml:"dsn"`
	// Table is the destination table. It is dropped and recreated on every save.
	Table string `yaml:"table"`
	// OrderBy is the sort key for ClickHouse tables. Defaults to the first column.
	OrderBy string `yaml:"order_by"`
}

// Enabled reports whether s is configured.
func (s *Sink) Enabled() bool {
	return s != nil && s.DSN != "" && s.Table != ""
}

// Open connects to the database of type dialect and returns its Dialect.
func Open(ctx context.Context, dialect, dsn string) (*d.Dialect, error) {
	var (
		db *sql.DB
		e  error
	)

	switch strings.ToLower(dialect) {
	case d.CH:
		db, e = newConnectCH(dsn)
	case d.PG:
		db, e = sql.Open("pgx", dsn)
	case d.Duck:
		db, e = sql.Open("duckdb", dsn)
	default:
		return nil, fmt.Errorf("unsupported database %s", dialect)
	}

	if e != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, e)
	}

	if e := db.PingContext(ctx); e != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, e)
	}

	return d.NewDialect(dialect, db)
}

// newConnectCH opens ClickHouse with LZ4 compression unless the DSN sets one.
func newConnectCH(dsn string) (*sql.DB, error) {
	var (
		opts *clickhouse.Options
		e    error
	)
	if opts, e = clickhouse.ParseDSN(dsn); e != nil {
		return nil, e
	}

	if opts.Compression == nil {
		opts.Compression = &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
			Level:  0,
		}
	}

	if opts.DialTimeout == 0 {
		opts.DialTimeout = 30 * time.Second
	}

	return clickhouse.OpenDB(opts), nil
}
