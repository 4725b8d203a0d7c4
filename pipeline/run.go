package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	d "github.com/invertedv/owid"
	"github.com/invertedv/owid/internal/logging"
	"github.com/invertedv/owid/mem"
	s "github.com/invertedv/owid/sql"
)

// sinks are saved in this order
var sinkOrder = []string{d.CH, d.PG, d.Duck}

// Result describes a completed run.
type Result struct {
	Path  string
	Stats Stats
	Table *mem.MemDF
	// Saved is the number of rows saved to each sink, keyed by dialect
	Saved map[string]int
}

// Run fetches cfg.URL, transforms it and writes the CSV to cfg.Output, resolved
// against the project root. The file is overwritten. Configured sinks then receive
// the same table. The first error ends the run.
func Run(ctx context.Context, cfg Config, ops ...d.FetchOpt) (*Result, error) {
	if e := cfg.Validate(); e != nil {
		return nil, e
	}

	logger := logging.New("pipeline")

	var (
		path string
		e    error
	)
	if path, e = d.Here(cfg.Output); e != nil {
		return nil, e
	}

	ops = append([]d.FetchOpt{d.WithUserAgent(cfg.UserAgent), d.WithLogger(logging.New("fetch"))}, ops...)

	var f *d.Fetcher
	if f, e = d.NewFetcher(ops...); e != nil {
		return nil, e
	}

	var (
		header []string
		raw    [][]string
	)
	if header, raw, e = f.FetchCSV(ctx, cfg.URL); e != nil {
		return nil, fmt.Errorf("fetch: %w", e)
	}

	var df *mem.MemDF
	if df, e = mem.FromRaw(header, raw); e != nil {
		return nil, fmt.Errorf("parse: %w", e)
	}

	var stats Stats
	if stats, e = Transform(df, Democracy, cfg.MinYear); e != nil {
		return nil, fmt.Errorf("transform: %w", e)
	}

	logger.InfoContext(ctx, "transformed", "input", stats.Input, "kept", stats.Kept)
	logger.DebugContext(ctx, "dropped",
		"aggregate", stats.Aggregate, "missing", stats.Missing, "before_min_year", stats.BeforeMinYear)

	if e = WriteCSV(path, df); e != nil {
		return nil, e
	}

	logger.InfoContext(ctx, "wrote", "path", path, "rows", df.RowCount())

	res := &Result{Path: path, Stats: stats, Table: df, Saved: make(map[string]int)}

	sinks := cfg.Sinks.byDialect()
	for _, dialect := range sinkOrder {
		sk := sinks[dialect]
		if !sk.Enabled() {
			continue
		}

		var n int
		if n, e = saveTo(ctx, dialect, sk, df); e != nil {
			return res, fmt.Errorf("save %s: %w", dialect, e)
		}

		res.Saved[dialect] = n
		logger.InfoContext(ctx, "saved", "db", dialect, "table", sk.Table, "rows", n)
	}

	logSummary(ctx, logger, df)

	return res, nil
}

// WriteCSV writes df to path, replacing any existing file.
func WriteCSV(path string, df d.DF) error {
	f := d.NewFiles()
	if e := f.Create(path); e != nil {
		return fmt.Errorf("create output: %w", e)
	}

	if e := f.Save(df); e != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, e)
	}

	return f.Close()
}

func saveTo(ctx context.Context, dialect string, sk *s.Sink, df d.DF) (int, error) {
	dlct, e := s.Open(ctx, dialect, sk.DSN)
	if e != nil {
		return 0, e
	}
	defer func() { _ = dlct.Close() }()

	orderBy := sk.OrderBy
	if orderBy == "" && dialect == d.CH {
		orderBy = ColEntity + ", " + ColYear
	}

	return s.Save(ctx, dlct, sk.Table, orderBy, df)
}

func logSummary(ctx context.Context, logger *slog.Logger, df *mem.MemDF) {
	if !logger.Enabled(ctx, slog.LevelInfo) || df.RowCount() == 0 {
		return
	}

	for _, cn := range []string{LifeExpectancy, XValue} {
		col, e := df.Column(cn)
		if e != nil {
			continue
		}

		desc, e := col.(*mem.MemCol).Describe()
		if e != nil {
			logger.DebugContext(ctx, "no summary", "column", cn, "err", e)
			continue
		}

		logger.InfoContext(ctx, "summary", "column", cn,
			"n", desc.N, "min", desc.Min, "median", desc.Median, "mean", desc.Mean, "max", desc.Max)
	}
}
