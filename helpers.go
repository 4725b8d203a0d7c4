package owid

import "strings"

// *********** Other ***********

func has[C comparable](needle C, haystack []C) bool {
	return position(needle, haystack) >= 0
}

func position[C comparable](needle C, haystack []C) int {
	for ind, straw := range haystack {
		if needle == straw {
			return ind
		}
	}

	return -1
}

func validName(name string) bool {
	// names end up as SQL identifiers
	const illegal = ";'`()," + `"`

	return name != "" && !strings.ContainsAny(name, illegal)
}
