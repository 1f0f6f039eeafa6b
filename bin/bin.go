// Package bin provides 1D and 2D bins: immutable edges plus one accumulator.
// The accumulator type decides whether a bin is histogram-style or profile-style.
package bin

import (
	"math"

	"github.com/yodaproject/yoda/errors"
)

// Content is the set of operations a bin needs from its accumulator.
// PT is always the pointer type of T, e.g. Content[dbn.Dbn1D] is satisfied by *dbn.Dbn1D.
type Content[T any] interface {
	*T
	Reset()
	ScaleW(float64)
	Add(*T)
	Subtract(*T)
}

func checkEdges(lo, hi float64, dim string) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return errors.NewRangef("%s edges must be finite, got [%g, %g)", dim, lo, hi)
	}
	if lo >= hi {
		return errors.NewRangef("%s lower edge %g must be below upper edge %g", dim, lo, hi)
	}
	return nil
}
