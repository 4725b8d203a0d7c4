package owid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DataTypes are the types of data that the package supports
type DataTypes uint8

// values of DataTypes
const (
	DTunknown DataTypes = 0 + iota
	DTstring
	DTfloat
	DTint
)

// max value of DataTypes type
const MaxDT = DTint

func (dt DataTypes) String() string {
	switch dt {
	case DTstring:
		return "DTstring"
	case DTfloat:
		return "DTfloat"
	case DTint:
		return "DTint"
	default:
		return "DTunknown"
	}
}

func DTFromString(nm string) DataTypes {
	for dt := DataTypes(0); dt <= MaxDT; dt++ {
		if dt.String() == nm {
			return dt
		}
	}

	return DTunknown
}

func WhatAmI(val any) DataTypes {
	switch val.(type) {
	case float64, []float64:
		return DTfloat
	case int, []int:
		return DTint
	case string, []string:
		return DTstring
	default:
		return DTunknown
	}
}

// *********** Conversions ***********

// MissingTokens are the cell values read as missing, in addition to a blank cell.
// They are the pandas read_csv defaults.
var MissingTokens = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true,
	"N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true, "n/a": true,
	"nan": true, "null": true,
}

func missingCell(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || MissingTokens[s]
}

// IsMissing reports whether x is a missing value. Missing floats are NaN, missing
// strings are blank or one of MissingTokens.
func IsMissing(x any) bool {
	switch v := x.(type) {
	case float64:
		return math.IsNaN(v)
	case string:
		return missingCell(v)
	default:
		return x == nil
	}
}

// BestType returns the narrowest type that holds every cell in raw.
//   - DTint if every cell parses as an int and none is missing
//   - DTfloat if every non-missing cell parses as a float and at least one is present
//   - DTstring otherwise
func BestType(raw []string) DataTypes {
	isInt, isFloat, anyVal := true, true, false
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if missingCell(s) {
			isInt = false
			continue
		}

		anyVal = true
		if isInt {
			if _, e := strconv.Atoi(s); e != nil {
				isInt = false
			}
		}

		if isFloat {
			if _, e := strconv.ParseFloat(s, 64); e != nil {
				isFloat = false
			}
		}

		if !isInt && !isFloat {
			return DTstring
		}
	}

	switch {
	case isInt && anyVal:
		return DTint
	case isFloat && anyVal:
		return DTfloat
	default:
		return DTstring
	}
}

// ToSlc converts the raw cells to a slice of type dt. Missing cells are NaN for
// DTfloat and "" for DTstring.
func ToSlc(raw []string, dt DataTypes) (any, error) {
	switch dt {
	case DTstring:
		out := make([]string, len(raw))
		for ind, s := range raw {
			if !missingCell(s) {
				out[ind] = s
			}
		}
		return out, nil
	case DTint:
		out := make([]int, len(raw))
		for ind, s := range raw {
			var e error
			if out[ind], e = strconv.Atoi(strings.TrimSpace(s)); e != nil {
				return nil, fmt.Errorf("row %d: cannot convert %q to int", ind+1, s)
			}
		}
		return out, nil
	case DTfloat:
		out := make([]float64, len(raw))
		for ind, s := range raw {
			s = strings.TrimSpace(s)
			if missingCell(s) {
				out[ind] = math.NaN()
				continue
			}

			var e error
			if out[ind], e = strconv.ParseFloat(s, 64); e != nil {
				return nil, fmt.Errorf("row %d: cannot convert %q to float", ind+1, s)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported data type %v in ToSlc", dt)
	}
}

// ToString renders x for output. Floats use the shortest representation that
// round-trips; missing values are empty.
func ToString(x any) string {
	switch v := x.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		if math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
