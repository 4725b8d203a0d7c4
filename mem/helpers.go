package mem

import (
	"fmt"
	"math"
	"strings"
)

func prettyPrint(header []string, cols ...any) string {
	var colsS [][]string

	for ind := 0; ind < len(cols); ind++ {
		colsS = append(colsS, stringSlice(header[ind], cols[ind]))
	}

	out := ""
	for row := 0; row < len(colsS[0]); row++ {
		for c := 0; c < len(colsS); c++ {
			out += colsS[c][row]
		}
		out += "\n"
	}

	return out
}

func stringSlice(header string, inVal any) []string {
	const pad = 3
	c := []string{header}

	var (
		els     []string
		numeric bool
	)
	switch x := inVal.(type) {
	case []float64:
		format := selectFormat(x)
		for _, v := range x {
			els = append(els, fmt.Sprintf(format, v))
		}
		numeric = true
	case []int:
		for _, v := range x {
			els = append(els, fmt.Sprintf("%d", v))
		}
		numeric = true
	case []string:
		els = x
	default:
		panic(fmt.Errorf("unsupported data type"))
	}

	maxLen := len(header)
	for _, el := range els {
		if l := len(el); l > maxLen {
			maxLen = l
		}

		c = append(c, el)
	}

	for ind, cx := range c {
		padded := cx + strings.Repeat(" ", maxLen-len(cx)+pad)
		if numeric {
			padded = strings.Repeat(" ", maxLen-len(cx)+pad) + cx
		}
		c[ind] = padded
	}

	return c
}

// selectFormat picks the number of decimals from the range of x
func selectFormat(x []float64) string {
	if len(x) == 0 {
		return "%.1f"
	}

	minX := math.Abs(x[0])
	maxX := math.Abs(x[0])
	for _, xv := range x {
		xva := math.Abs(xv)
		if xva < minX {
			minX = xva
		}

		if xva > maxX {
			maxX = xva
		}
	}

	l := math.Log10(maxX - minX)
	var dp int
	switch {
	case math.IsInf(l, 0) || math.IsNaN(l):
		dp = 3
	case l < -1:
		dp = int(math.Abs(l)+0.5) + 1
	case l > 1:
		dp = 2
	default:
		dp = 3
	}

	return "%." + fmt.Sprintf("%d", dp) + "f"
}
