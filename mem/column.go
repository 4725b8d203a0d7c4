package mem

import (
	"fmt"
	"math"
	"sort"

	d "github.com/invertedv/owid"
	"gonum.org/v1/gonum/stat"
)

// Description holds summary statistics of a numeric column. Missing values are
// excluded; Missing counts them.
type Description struct {
	Name    string
	N       int
	Missing int
	Min     float64
	LQ      float64
	Median  float64
	Mean    float64
	UQ      float64
	Max     float64
}

// Describe computes summary statistics of a numeric column.
func (m *MemCol) Describe() (*Description, error) {
	var (
		all []float64
		e   error
	)
	if all, e = m.AsFloat(); e != nil {
		return nil, e
	}

	x := make([]float64, 0, len(all))
	for _, v := range all {
		if !math.IsNaN(v) {
			x = append(x, v)
		}
	}

	desc := &Description{Name: m.Name(), N: len(x), Missing: len(all) - len(x)}
	if len(x) == 0 {
		return desc, nil
	}

	sort.Float64s(x)
	desc.Min = x[0]
	desc.Max = x[len(x)-1]
	desc.LQ = stat.Quantile(0.25, stat.LinInterp, x, nil)
	desc.Median = stat.Quantile(0.5, stat.LinInterp, x, nil)
	desc.UQ = stat.Quantile(0.75, stat.LinInterp, x, nil)
	desc.Mean = stat.Mean(x, nil)

	return desc, nil
}

// Counts returns the distinct values of the column and how often each occurs,
// sorted by descending count then value.
func (m *MemCol) Counts() (vals []string, counts []int) {
	tab := make(map[string]int)
	for ind := 0; ind < m.Len(); ind++ {
		tab[d.ToString(m.Element(ind))]++
	}

	for k := range tab {
		vals = append(vals, k)
	}

	sort.Slice(vals, func(i, j int) bool {
		if tab[vals[i]] != tab[vals[j]] {
			return tab[vals[i]] > tab[vals[j]]
		}

		return vals[i] < vals[j]
	})

	for _, v := range vals {
		counts = append(counts, tab[v])
	}

	return vals, counts
}

func (m *MemCol) String() string {
	t := fmt.Sprintf("column: %s\ntype: %s\n", m.Name(), m.DataType())

	if m.DataType() == d.DTstring {
		const top = 5
		vals, counts := m.Counts()
		t += fmt.Sprintf("distinct: %d\n", len(vals))
		if len(vals) > top {
			vals, counts = vals[:top], counts[:top]
		}

		header := []string{m.Name(), "count"}
		return t + prettyPrint(header, vals, counts)
	}

	desc, e := m.Describe()
	if e != nil {
		return t + e.Error() + "\n"
	}

	cats := []string{"min", "lq", "median", "mean", "uq", "max", "n", "missing"}
	vals := []float64{desc.Min, desc.LQ, desc.Median, desc.Mean, desc.UQ, desc.Max, float64(desc.N), float64(desc.Missing)}
	header := []string{"metric", "value"}

	return t + prettyPrint(header, cats, vals)
}

// Summary describes every column of df.
func Summary(df *MemDF) string {
	out := fmt.Sprintf("rows: %d\n\n", df.RowCount())
	for c := df.Next(true); c != nil; c = df.Next(false) {
		out += c.(*MemCol).String() + "\n"
	}

	return out
}
