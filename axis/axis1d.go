// Package axis manages ordered collections of bins together with their overflow accumulators.
//
// Axis1D keeps contiguous bins sorted by their low edge. Axis2D keeps an arbitrary set of
// non-overlapping rectangular bins, possibly with gaps. Both keep a derived lookup index
// that is rebuilt wholesale whenever the bin layout changes.
package axis

import (
	"math"
	"sort"

	"github.com/yodaproject/yoda/bin"
	"github.com/yodaproject/yoda/errors"
	"github.com/yodaproject/yoda/util"
)

// EdgeTolerance is the relative tolerance used when comparing the edges of two binnings.
const EdgeTolerance = 1e-5

// Content1D is what a 1D axis needs from its accumulator.
type Content1D[T any] interface {
	bin.Content[T]
	ScaleX(float64)
}

// Axis1D is an ordered set of contiguous bins covering [XMin(), XMax()),
// with underflow, overflow and total accumulators.
type Axis1D[T any, PT Content1D[T]] struct {
	bins      []bin.Bin1D[T, PT]
	total     T
	underflow T
	overflow  T

	// edges holds the low edge of every bin followed by the high edge of the last one.
	edges []float64
}

// NewAxis1D creates one bin between each pair of consecutive edges.
func NewAxis1D[T any, PT Content1D[T]](edges []float64) (*Axis1D[T, PT], error) {
	if len(edges) < 2 {
		return nil, errors.NewRangef("need at least 2 edges, got %d", len(edges))
	}
	bins, err := binsFromEdges[T, PT](edges)
	if err != nil {
		return nil, err
	}
	a := &Axis1D[T, PT]{bins: bins}
	a.updateAxis()
	return a, nil
}

// NewAxis1DLinear creates n equal-width bins over [lo, hi).
func NewAxis1DLinear[T any, PT Content1D[T]](n int, lo, hi float64) (*Axis1D[T, PT], error) {
	if n < 1 {
		return nil, errors.NewRangef("number of bins must be positive, got %d", n)
	}
	return NewAxis1D[T, PT](util.LinSpace(n, lo, hi))
}

// NewAxis1DLog creates n bins over [lo, hi) whose edges are equally spaced in log(x).
func NewAxis1DLog[T any, PT Content1D[T]](n int, lo, hi float64) (*Axis1D[T, PT], error) {
	if n < 1 {
		return nil, errors.NewRangef("number of bins must be positive, got %d", n)
	}
	if lo <= 0 {
		return nil, errors.NewRangef("log binning needs a positive lower edge, got %g", lo)
	}
	return NewAxis1D[T, PT](util.LogSpace(n, lo, hi))
}

// NewAxis1DFromBins builds an axis from existing bins, which may be given in any order
// but must be exactly adjacent once sorted.
func NewAxis1DFromBins[T any, PT Content1D[T]](bins []bin.Bin1D[T, PT]) (*Axis1D[T, PT], error) {
	var zero T
	return NewAxis1DWithState(bins, zero, zero, zero)
}

// NewAxis1DWithState restores a persisted axis.
func NewAxis1DWithState[T any, PT Content1D[T]](bins []bin.Bin1D[T, PT], total, underflow, overflow T) (*Axis1D[T, PT], error) {
	if len(bins) == 0 {
		return nil, errors.NewRange("an axis needs at least one bin")
	}
	sorted := make([]bin.Bin1D[T, PT], len(bins))
	copy(sorted, bins)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].XMin() < sorted[j].XMin() })
	if err := checkContiguous(sorted); err != nil {
		return nil, err
	}
	a := &Axis1D[T, PT]{
		bins:      sorted,
		total:     total,
		underflow: underflow,
		overflow:  overflow,
	}
	a.updateAxis()
	return a, nil
}

func binsFromEdges[T any, PT Content1D[T]](edges []float64) ([]bin.Bin1D[T, PT], error) {
	bins := make([]bin.Bin1D[T, PT], 0, len(edges)-1)
	for i := 0; i < len(edges)-1; i++ {
		b, err := bin.NewBin1D[T, PT](edges[i], edges[i+1])
		if err != nil {
			return nil, errors.NewRangef("edges must be finite and strictly increasing: %s", err)
		}
		bins = append(bins, b)
	}
	return bins, nil
}

func checkContiguous[T any, PT Content1D[T]](bins []bin.Bin1D[T, PT]) error {
	for i := 1; i < len(bins); i++ {
		prev, cur := bins[i-1].XMax(), bins[i].XMin()
		if prev > cur {
			return errors.NewRangef("bins %d and %d overlap: [.., %g) and [%g, ..)", i-1, i, prev, cur)
		}
		if prev < cur {
			return errors.NewRangef("gap between bins %d and %d: [.., %g) and [%g, ..)", i-1, i, prev, cur)
		}
	}
	return nil
}

// updateAxis rebuilds the cached edges from the bins.
func (a *Axis1D[T, PT]) updateAxis() {
	edges := make([]float64, 0, len(a.bins)+1)
	for i := range a.bins {
		edges = append(edges, a.bins[i].XMin())
	}
	if len(a.bins) > 0 {
		edges = append(edges, a.bins[len(a.bins)-1].XMax())
	}
	a.edges = edges
}

func (a *Axis1D[T, PT]) NumBins() int {
	return len(a.bins)
}

// Bins returns the bins in axis order. The slice aliases the axis and is invalidated
// by any structural change.
func (a *Axis1D[T, PT]) Bins() []bin.Bin1D[T, PT] {
	return a.bins
}

func (a *Axis1D[T, PT]) Bin(i int) (*bin.Bin1D[T, PT], error) {
	if i < 0 || i >= len(a.bins) {
		return nil, errors.NewRangef("bin index %d out of range [0, %d)", i, len(a.bins))
	}
	return &a.bins[i], nil
}

// Edges returns a copy of the cached edges.
func (a *Axis1D[T, PT]) Edges() []float64 {
	out := make([]float64, len(a.edges))
	copy(out, a.edges)
	return out
}

func (a *Axis1D[T, PT]) XMin() float64 {
	return a.edges[0]
}

func (a *Axis1D[T, PT]) XMax() float64 {
	return a.edges[len(a.edges)-1]
}

// FindBinIndex returns the index of the bin containing x.
func (a *Axis1D[T, PT]) FindBinIndex(x float64) (int, error) {
	if math.IsNaN(x) {
		return -1, errors.NewRange("coordinate is NaN")
	}
	if x < a.XMin() || x >= a.XMax() {
		return -1, errors.NewRangef("coordinate %g outside axis range [%g, %g)", x, a.XMin(), a.XMax())
	}
	n := len(a.bins)
	// first bin whose high edge lies above x
	return sort.Search(n, func(i int) bool { return a.edges[i+1] > x }), nil
}

func (a *Axis1D[T, PT]) BinAt(x float64) (*bin.Bin1D[T, PT], error) {
	i, err := a.FindBinIndex(x)
	if err != nil {
		return nil, err
	}
	return &a.bins[i], nil
}

func (a *Axis1D[T, PT]) Total() PT {
	return PT(&a.total)
}

func (a *Axis1D[T, PT]) Underflow() PT {
	return PT(&a.underflow)
}

func (a *Axis1D[T, PT]) Overflow() PT {
	return PT(&a.overflow)
}

// AddBin adds the bin [lo, hi), which must attach to either end of the axis.
func (a *Axis1D[T, PT]) AddBin(lo, hi float64) error {
	return a.AddBins([]float64{lo, hi})
}

// AddBins adds one bin per consecutive pair of edges. The new range must attach
// to either end of the axis without overlapping it.
func (a *Axis1D[T, PT]) AddBins(edges []float64) error {
	if len(edges) < 2 {
		return errors.NewRangef("need at least 2 edges, got %d", len(edges))
	}
	added, err := binsFromEdges[T, PT](edges)
	if err != nil {
		return err
	}
	lo, hi := edges[0], edges[len(edges)-1]
	var bins []bin.Bin1D[T, PT]
	switch {
	case len(a.bins) == 0:
		bins = added
	case lo == a.XMax():
		bins = append(append(make([]bin.Bin1D[T, PT], 0, len(a.bins)+len(added)), a.bins...), added...)
	case hi == a.XMin():
		bins = append(append(make([]bin.Bin1D[T, PT], 0, len(a.bins)+len(added)), added...), a.bins...)
	default:
		return errors.NewRangef("new bins [%g, %g) must attach to axis range [%g, %g)", lo, hi, a.XMin(), a.XMax())
	}
	a.bins = bins
	a.updateAxis()
	return nil
}

// EraseBin removes the first or last bin. Its content is dropped; the total is unchanged.
func (a *Axis1D[T, PT]) EraseBin(i int) error {
	n := len(a.bins)
	if i < 0 || i >= n {
		return errors.NewRangef("bin index %d out of range [0, %d)", i, n)
	}
	if n == 1 {
		return errors.NewGrid("cannot erase the only bin of an axis")
	}
	if i != 0 && i != n-1 {
		return errors.NewGridf("cannot erase interior bin %d: axis must stay contiguous", i)
	}
	bins := make([]bin.Bin1D[T, PT], 0, n-1)
	bins = append(bins, a.bins[:i]...)
	bins = append(bins, a.bins[i+1:]...)
	a.bins = bins
	a.updateAxis()
	return nil
}

// MergeBins replaces bins from..to (inclusive) by one bin spanning them, holding the sum of their contents.
func (a *Axis1D[T, PT]) MergeBins(from, to int) error {
	n := len(a.bins)
	if from < 0 || to >= n || from > to {
		return errors.NewRangef("invalid merge range [%d, %d] for %d bins", from, to, n)
	}
	if from == to {
		return nil
	}
	merged, err := a.merged(from, to)
	if err != nil {
		return err
	}
	bins := make([]bin.Bin1D[T, PT], 0, n-(to-from))
	bins = append(bins, a.bins[:from]...)
	bins = append(bins, merged)
	bins = append(bins, a.bins[to+1:]...)
	a.bins = bins
	a.updateAxis()
	return nil
}

func (a *Axis1D[T, PT]) merged(from, to int) (bin.Bin1D[T, PT], error) {
	b, err := bin.NewBin1DWithDbn[T, PT](a.bins[from].XMin(), a.bins[to].XMax(), *a.bins[from].Dbn())
	if err != nil {
		return b, err
	}
	for i := from + 1; i <= to; i++ {
		b.Add(&a.bins[i])
	}
	return b, nil
}

// Rebin merges every n consecutive bins. A trailing group may be smaller.
func (a *Axis1D[T, PT]) Rebin(n int) error {
	if n < 1 {
		return errors.NewRangef("rebin factor must be positive, got %d", n)
	}
	if n == 1 {
		return nil
	}
	bins := make([]bin.Bin1D[T, PT], 0, len(a.bins)/n+1)
	for from := 0; from < len(a.bins); from += n {
		to := from + n - 1
		if to >= len(a.bins) {
			to = len(a.bins) - 1
		}
		b, err := a.merged(from, to)
		if err != nil {
			return err
		}
		bins = append(bins, b)
	}
	a.bins = bins
	a.updateAxis()
	return nil
}

// Reset clears all accumulators but keeps the binning.
func (a *Axis1D[T, PT]) Reset() {
	for i := range a.bins {
		a.bins[i].Reset()
	}
	PT(&a.total).Reset()
	PT(&a.underflow).Reset()
	PT(&a.overflow).Reset()
}

func (a *Axis1D[T, PT]) ScaleW(f float64) {
	for i := range a.bins {
		a.bins[i].ScaleW(f)
	}
	PT(&a.total).ScaleW(f)
	PT(&a.underflow).ScaleW(f)
	PT(&a.overflow).ScaleW(f)
}

// ScaleX rescales the axis coordinate: edges and accumulated x moments are multiplied by f.
func (a *Axis1D[T, PT]) ScaleX(f float64) error {
	if !(f > 0) || math.IsInf(f, 0) {
		return errors.NewRangef("x scale factor must be positive and finite, got %g", f)
	}
	bins := make([]bin.Bin1D[T, PT], len(a.bins))
	for i := range a.bins {
		d := *a.bins[i].Dbn()
		PT(&d).ScaleX(f)
		b, err := bin.NewBin1DWithDbn[T, PT](a.bins[i].XMin()*f, a.bins[i].XMax()*f, d)
		if err != nil {
			return err
		}
		bins[i] = b
	}
	PT(&a.total).ScaleX(f)
	PT(&a.underflow).ScaleX(f)
	PT(&a.overflow).ScaleX(f)
	a.bins = bins
	a.updateAxis()
	return nil
}

// SameBinning reports whether both axes have exactly the same edges.
func (a *Axis1D[T, PT]) SameBinning(o *Axis1D[T, PT]) bool {
	if len(a.edges) != len(o.edges) {
		return false
	}
	for i := range a.edges {
		if !util.FuzzyEquals(a.edges[i], o.edges[i], EdgeTolerance) {
			return false
		}
	}
	return true
}

// Add merges o into a bin by bin, including the total and overflow accumulators.
func (a *Axis1D[T, PT]) Add(o *Axis1D[T, PT]) error {
	if !a.SameBinning(o) {
		return errors.NewBinningMismatchf("cannot add axes with different binnings (%d vs %d bins)", len(a.bins), len(o.bins))
	}
	for i := range a.bins {
		a.bins[i].Add(&o.bins[i])
	}
	PT(&a.total).Add(&o.total)
	PT(&a.underflow).Add(&o.underflow)
	PT(&a.overflow).Add(&o.overflow)
	return nil
}

func (a *Axis1D[T, PT]) Subtract(o *Axis1D[T, PT]) error {
	if !a.SameBinning(o) {
		return errors.NewBinningMismatchf("cannot subtract axes with different binnings (%d vs %d bins)", len(a.bins), len(o.bins))
	}
	for i := range a.bins {
		a.bins[i].Subtract(&o.bins[i])
	}
	PT(&a.total).Subtract(&o.total)
	PT(&a.underflow).Subtract(&o.underflow)
	PT(&a.overflow).Subtract(&o.overflow)
	return nil
}

// Clone returns a deep copy.
func (a *Axis1D[T, PT]) Clone() *Axis1D[T, PT] {
	c := &Axis1D[T, PT]{
		bins:      make([]bin.Bin1D[T, PT], len(a.bins)),
		total:     a.total,
		underflow: a.underflow,
		overflow:  a.overflow,
	}
	copy(c.bins, a.bins)
	c.updateAxis()
	return c
}
