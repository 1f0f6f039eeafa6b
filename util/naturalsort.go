package util

import (
	"sort"
	"strconv"
)

// SortPaths sorts object paths in natural order: runs of digits compare by value,
// so /ANALYSIS/d02-x01 sorts before /ANALYSIS/d10-x01.
func SortPaths(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		return NaturalLess(paths[i], paths[j])
	})
}

// NaturalLess reports whether s sorts before t in natural order.
func NaturalLess(s, t string) bool {
	var sRun, tRun string
	sPos, tPos := 0, 0
	for sPos < len(s) && tPos < len(t) {
		sRun, sPos = nextRun(s, sPos)
		tRun, tPos = nextRun(t, tPos)
		if c := compareRuns(sRun, tRun); c != 0 {
			return c < 0
		}
	}
	// a proper prefix sorts first
	return sPos == len(s) && tPos < len(t)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// nextRun returns the run of all-digit or all-non-digit bytes starting at pos,
// and the position just past it.
func nextRun(s string, pos int) (string, int) {
	numeric := isDigit(s[pos])
	end := pos + 1
	for end < len(s) && isDigit(s[end]) == numeric {
		end++
	}
	return s[pos:end], end
}

func compareRuns(a, b string) int {
	if a == b {
		return 0
	}
	if isDigit(a[0]) && isDigit(b[0]) {
		an, aErr := strconv.ParseUint(a, 10, 64)
		bn, bErr := strconv.ParseUint(b, 10, 64)
		switch {
		case aErr == nil && bErr == nil && an < bn:
			return -1
		case aErr == nil && bErr == nil && an > bn:
			return 1
		case len(a) != len(b):
			// same value with different zero padding, or too long to parse
			return len(a) - len(b)
		}
	}
	if a < b {
		return -1
	}
	return 1
}
