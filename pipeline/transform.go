package pipeline

import (
	"fmt"

	d "github.com/invertedv/owid"
	"github.com/invertedv/owid/mem"
)

// source columns
const (
	ColEntity         = "entity"
	ColCode           = "code"
	ColYear           = "year"
	ColLifeExpectancy = "life_expectancy_0"
	ColRegion         = "owid_region"
)

// output columns
const (
	LifeExpectancy = "life_expectancy"
	XValue         = "x_value"
	XVariable      = "x_variable"
)

// AggregateEntities are the non-country groupings excluded from the output. Matching
// is exact and case-sensitive.
var AggregateEntities = map[string]bool{
	"Africa":                true,
	"Asia":                  true,
	"Europe":                true,
	"North America":         true,
	"South America":         true,
	"Oceania":               true,
	"World":                 true,
	"High-income countries": true,
}

// Metric is the column plotted against life expectancy. Source is renamed to x_value
// and Variable fills x_variable.
type Metric struct {
	Source   string
	Variable string
}

var Democracy = Metric{Source: "electdem_vdem__estimate_best", Variable: "democracy"}

// OutputColumns returns the output header, in order.
func OutputColumns() []string {
	return []string{ColEntity, ColCode, ColYear, LifeExpectancy, XValue, XVariable, ColRegion}
}

// Stats counts the rows seen and why they were dropped. A row is counted under the
// first reason that applies, in field order.
type Stats struct {
	Input         int
	Aggregate     int
	Missing       int
	BeforeMinYear int
	Kept          int
}

// Transform filters and reshapes raw in place:
//   - drops aggregate entities, rows missing life expectancy or the metric, and rows
//     with year < minYear
//   - keeps entity, code, year, life expectancy, metric and region
//   - renames life expectancy and the metric to life_expectancy and x_value
//   - adds x_variable, set to metric.Variable
func Transform(raw *mem.MemDF, metric Metric, minYear int) (Stats, error) {
	stats := Stats{Input: raw.RowCount()}

	if missing := raw.HasColumns(ColEntity, ColCode, ColYear, ColLifeExpectancy, metric.Source, ColRegion); missing != "" {
		return stats, &d.MissingColumnError{Name: missing}
	}

	var (
		entity, year, le, x d.Column
		e                   error
	)

	// HasColumns guarantees these exist
	entity, _ = raw.Column(ColEntity)
	year, _ = raw.Column(ColYear)
	le, _ = raw.Column(ColLifeExpectancy)
	x, _ = raw.Column(metric.Source)

	if year.DataType() == d.DTstring {
		return stats, fmt.Errorf("column %s is not numeric", ColYear)
	}

	mask := make([]bool, raw.RowCount())
	for row := 0; row < raw.RowCount(); row++ {
		switch {
		case AggregateEntities[d.ToString(entity.Element(row))]:
			stats.Aggregate++
		case d.IsMissing(le.Element(row)) || d.IsMissing(x.Element(row)):
			stats.Missing++
		case !atLeast(year.Element(row), minYear):
			stats.BeforeMinYear++
		default:
			mask[row] = true
			stats.Kept++
		}
	}

	if e = raw.Where(mask); e != nil {
		return stats, e
	}

	if e = raw.KeepColumns(ColEntity, ColCode, ColYear, ColLifeExpectancy, metric.Source, ColRegion); e != nil {
		return stats, e
	}

	if e = raw.Rename(ColLifeExpectancy, LifeExpectancy); e != nil {
		return stats, e
	}

	if e = raw.Rename(metric.Source, XValue); e != nil {
		return stats, e
	}

	var xVar *mem.MemCol
	if xVar, e = mem.Constant(XVariable, metric.Variable, raw.RowCount()); e != nil {
		return stats, e
	}

	if e = raw.AppendColumn(xVar); e != nil {
		return stats, e
	}

	return stats, raw.KeepColumns(OutputColumns()...)
}

// atLeast is false for a missing year, as a comparison with NaN is.
func atLeast(year any, minYear int) bool {
	switch y := year.(type) {
	case int:
		return y >= minYear
	case float64:
		return y >= float64(minYear)
	default:
		return false
	}
}
