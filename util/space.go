package util

import (
	"math"
	"sort"

	"github.com/dgryski/go-linlog"
)

// LinSpace returns n+1 equally spaced edges from lo to hi inclusive.
// The end points are exact.
func LinSpace(n int, lo, hi float64) []float64 {
	if n < 1 {
		return nil
	}
	edges := make([]float64, n+1)
	step := (hi - lo) / float64(n)
	for i := range edges {
		edges[i] = lo + float64(i)*step
	}
	edges[n] = hi
	return edges
}

// LogSpace returns n+1 edges from lo to hi inclusive, equally spaced in log(x).
// lo and hi must be positive.
func LogSpace(n int, lo, hi float64) []float64 {
	if n < 1 || lo <= 0 || hi <= 0 {
		return nil
	}
	logs := LinSpace(n, math.Log(lo), math.Log(hi))
	edges := make([]float64, len(logs))
	for i, l := range logs {
		edges[i] = math.Exp(l)
	}
	edges[0] = lo
	edges[n] = hi
	return edges
}

// LinLogSpace returns the edges of a linear-log binning of [0, max): bins are linear
// up to 2^linear and each power of two above that is split in 2^subbin bins.
// The last edge is max, or the first bin boundary at or above it.
func LinLogSpace(max, linear, subbin uint64) []float64 {
	if max == 0 {
		return nil
	}
	bounds := linlog.Bins(max, linear, subbin)
	edges := make([]float64, 0, len(bounds)+1)
	for _, b := range bounds {
		if len(edges) > 0 && float64(b) <= edges[len(edges)-1] {
			continue
		}
		edges = append(edges, float64(b))
	}
	if len(edges) == 0 || edges[0] != 0 {
		edges = append([]float64{0}, edges...)
	}
	if top := edges[len(edges)-1]; top < float64(max) {
		edges = append(edges, float64(max))
	}
	return edges
}

// FuzzyEquals compares two floats with a relative tolerance. Values very close
// to zero are compared absolutely.
func FuzzyEquals(a, b, tolerance float64) bool {
	absavg := (math.Abs(a) + math.Abs(b)) / 2
	absdiff := math.Abs(a - b)
	if absavg < 1e-8 {
		return absdiff < tolerance
	}
	return absdiff <= tolerance*absavg
}

// SortedUnique sorts s in place and returns it with exact duplicates removed.
func SortedUnique(s []float64) []float64 {
	if len(s) == 0 {
		return s
	}
	sort.Float64s(s)
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
