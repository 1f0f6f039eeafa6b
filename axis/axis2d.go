package axis

import (
	"math"
	"sort"

	"github.com/yodaproject/yoda/bin"
	"github.com/yodaproject/yoda/errors"
	"github.com/yodaproject/yoda/util"
)

// Content2D is what a 2D axis needs from its accumulator.
type Content2D[T any] interface {
	bin.Content[T]
	ScaleXY(fx, fy float64)
}

const gap = -1

// NumOutflows is the number of outflow regions around a 2D axis.
const NumOutflows = 8

// Axis2D is a set of non-overlapping rectangular bins, possibly with gaps,
// with eight outflow accumulators and a total.
//
// Bins are kept sorted by (xMin, yMin). The index is a grid over all distinct
// x and y edges: index[ix][iy] is the position of the bin covering cell (ix, iy), or gap.
type Axis2D[T any, PT Content2D[T]] struct {
	bins     []bin.Bin2D[T, PT]
	total    T
	outflows [NumOutflows]T

	xEdges []float64
	yEdges []float64
	index  [][]int
}

// NewAxis2D creates a full grid of bins from the given x and y edges.
func NewAxis2D[T any, PT Content2D[T]](xEdges, yEdges []float64) (*Axis2D[T, PT], error) {
	if len(xEdges) < 2 || len(yEdges) < 2 {
		return nil, errors.NewRangef("need at least 2 edges per dimension, got %d and %d", len(xEdges), len(yEdges))
	}
	bins := make([]bin.Bin2D[T, PT], 0, (len(xEdges)-1)*(len(yEdges)-1))
	for ix := 0; ix < len(xEdges)-1; ix++ {
		for iy := 0; iy < len(yEdges)-1; iy++ {
			b, err := bin.NewBin2D[T, PT](xEdges[ix], xEdges[ix+1], yEdges[iy], yEdges[iy+1])
			if err != nil {
				return nil, errors.NewRangef("edges must be finite and strictly increasing: %s", err)
			}
			bins = append(bins, b)
		}
	}
	a := &Axis2D[T, PT]{}
	if err := a.setBins(bins); err != nil {
		return nil, err
	}
	return a, nil
}

// NewAxis2DLinear creates an nx by ny grid of equal-size bins.
func NewAxis2DLinear[T any, PT Content2D[T]](nx int, xlo, xhi float64, ny int, ylo, yhi float64) (*Axis2D[T, PT], error) {
	if nx < 1 || ny < 1 {
		return nil, errors.NewRangef("number of bins must be positive, got %d x %d", nx, ny)
	}
	return NewAxis2D[T, PT](util.LinSpace(nx, xlo, xhi), util.LinSpace(ny, ylo, yhi))
}

// NewAxis2DFromBins builds an axis from an arbitrary, possibly irregular or gapped, set of bins.
func NewAxis2DFromBins[T any, PT Content2D[T]](bins []bin.Bin2D[T, PT]) (*Axis2D[T, PT], error) {
	var total T
	var outflows [NumOutflows]T
	return NewAxis2DWithState(bins, total, outflows)
}

// NewAxis2DWithState restores a persisted axis. Outflows are in OutflowIndex order.
func NewAxis2DWithState[T any, PT Content2D[T]](bins []bin.Bin2D[T, PT], total T, outflows [NumOutflows]T) (*Axis2D[T, PT], error) {
	a := &Axis2D[T, PT]{
		total:    total,
		outflows: outflows,
	}
	if err := a.setBins(append([]bin.Bin2D[T, PT](nil), bins...)); err != nil {
		return nil, err
	}
	return a, nil
}

// setBins sorts bins, rebuilds the index from them and installs both.
// On error the axis is left untouched.
func (a *Axis2D[T, PT]) setBins(bins []bin.Bin2D[T, PT]) error {
	sort.SliceStable(bins, func(i, j int) bool {
		if bins[i].XMin() != bins[j].XMin() {
			return bins[i].XMin() < bins[j].XMin()
		}
		return bins[i].YMin() < bins[j].YMin()
	})
	xEdges, yEdges, index, err := buildIndex(bins)
	if err != nil {
		return err
	}
	a.bins = bins
	a.xEdges = xEdges
	a.yEdges = yEdges
	a.index = index
	return nil
}

func buildIndex[T any, PT Content2D[T]](bins []bin.Bin2D[T, PT]) ([]float64, []float64, [][]int, error) {
	if len(bins) == 0 {
		return nil, nil, nil, nil
	}
	xs := make([]float64, 0, 2*len(bins))
	ys := make([]float64, 0, 2*len(bins))
	for i := range bins {
		xs = append(xs, bins[i].XMin(), bins[i].XMax())
		ys = append(ys, bins[i].YMin(), bins[i].YMax())
	}
	xs = util.SortedUnique(xs)
	ys = util.SortedUnique(ys)

	index := make([][]int, len(xs)-1)
	for ix := range index {
		col := make([]int, len(ys)-1)
		for iy := range col {
			col[iy] = gap
		}
		index[ix] = col
	}
	for i := range bins {
		b := &bins[i]
		ix0, ix1 := sort.SearchFloat64s(xs, b.XMin()), sort.SearchFloat64s(xs, b.XMax())
		iy0, iy1 := sort.SearchFloat64s(ys, b.YMin()), sort.SearchFloat64s(ys, b.YMax())
		for ix := ix0; ix < ix1; ix++ {
			for iy := iy0; iy < iy1; iy++ {
				if prev := index[ix][iy]; prev != gap {
					return nil, nil, nil, errors.NewGridf("bin [%g, %g) x [%g, %g) overlaps bin [%g, %g) x [%g, %g)",
						b.XMin(), b.XMax(), b.YMin(), b.YMax(),
						bins[prev].XMin(), bins[prev].XMax(), bins[prev].YMin(), bins[prev].YMax())
				}
				index[ix][iy] = i
			}
		}
	}
	return xs, ys, index, nil
}

// NumBins returns the number of bins, which for irregular axes differs from NumBinsX*NumBinsY.
func (a *Axis2D[T, PT]) NumBins() int {
	return len(a.bins)
}

// NumBinsX returns the number of grid columns spanned by the distinct x edges.
func (a *Axis2D[T, PT]) NumBinsX() int {
	if len(a.xEdges) == 0 {
		return 0
	}
	return len(a.xEdges) - 1
}

func (a *Axis2D[T, PT]) NumBinsY() int {
	if len(a.yEdges) == 0 {
		return 0
	}
	return len(a.yEdges) - 1
}

// XEdges returns a copy of the distinct x edges.
func (a *Axis2D[T, PT]) XEdges() []float64 {
	return append([]float64(nil), a.xEdges...)
}

func (a *Axis2D[T, PT]) YEdges() []float64 {
	return append([]float64(nil), a.yEdges...)
}

// XMin returns the lowest x edge, or NaN for an axis without bins. Likewise XMax, YMin and YMax.
func (a *Axis2D[T, PT]) XMin() float64 { return first(a.xEdges) }
func (a *Axis2D[T, PT]) XMax() float64 { return last(a.xEdges) }
func (a *Axis2D[T, PT]) YMin() float64 { return first(a.yEdges) }
func (a *Axis2D[T, PT]) YMax() float64 { return last(a.yEdges) }

func first(s []float64) float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return s[0]
}

func last(s []float64) float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return s[len(s)-1]
}

func (a *Axis2D[T, PT]) Bins() []bin.Bin2D[T, PT] {
	return a.bins
}

func (a *Axis2D[T, PT]) Bin(i int) (*bin.Bin2D[T, PT], error) {
	if i < 0 || i >= len(a.bins) {
		return nil, errors.NewRangef("bin index %d out of range [0, %d)", i, len(a.bins))
	}
	return &a.bins[i], nil
}

// BinIndex returns the index of the bin containing (x, y). Points outside the axis range
// give a Range error, points inside a gap give errors.ErrNoBin.
func (a *Axis2D[T, PT]) BinIndex(x, y float64) (int, error) {
	if len(a.bins) == 0 {
		return -1, errors.NewRange("axis has no bins")
	}
	if math.IsNaN(x) || math.IsNaN(y) {
		return -1, errors.NewRange("coordinate is NaN")
	}
	if x < a.XMin() || x >= a.XMax() || y < a.YMin() || y >= a.YMax() {
		return -1, errors.NewRangef("coordinate (%g, %g) outside axis range [%g, %g) x [%g, %g)", x, y, a.XMin(), a.XMax(), a.YMin(), a.YMax())
	}
	ix := sort.Search(len(a.xEdges), func(i int) bool { return a.xEdges[i] > x }) - 1
	iy := sort.Search(len(a.yEdges), func(i int) bool { return a.yEdges[i] > y }) - 1
	i := a.index[ix][iy]
	if i == gap {
		return -1, errors.ErrNoBin
	}
	return i, nil
}

func (a *Axis2D[T, PT]) BinAt(x, y float64) (*bin.Bin2D[T, PT], error) {
	i, err := a.BinIndex(x, y)
	if err != nil {
		return nil, err
	}
	return &a.bins[i], nil
}

// OutflowIndex maps a direction (dx, dy), each in {-1, 0, 1} and not both zero,
// to a position in 0..7: 3*(dx+1)+(dy+1), skipping the centre.
func OutflowIndex(dx, dy int) (int, error) {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return -1, errors.NewRangef("outflow direction (%d, %d) out of range", dx, dy)
	}
	if dx == 0 && dy == 0 {
		return -1, errors.NewRange("(0, 0) is the axis interior, not an outflow")
	}
	i := 3*(dx+1) + (dy + 1)
	if i > 4 {
		i--
	}
	return i, nil
}

// OutflowDirection is the inverse of OutflowIndex.
func OutflowDirection(i int) (int, int, error) {
	if i < 0 || i >= NumOutflows {
		return 0, 0, errors.NewRangef("outflow index %d out of range [0, %d)", i, NumOutflows)
	}
	if i >= 4 {
		i++
	}
	return i/3 - 1, i%3 - 1, nil
}

func (a *Axis2D[T, PT]) Outflow(dx, dy int) (PT, error) {
	i, err := OutflowIndex(dx, dy)
	if err != nil {
		return nil, err
	}
	return PT(&a.outflows[i]), nil
}

// Direction classifies (x, y) relative to the axis range: -1 below, 0 inside, 1 at or above.
func (a *Axis2D[T, PT]) Direction(x, y float64) (int, int) {
	return direction(x, a.XMin(), a.XMax()), direction(y, a.YMin(), a.YMax())
}

func direction(v, lo, hi float64) int {
	switch {
	case v < lo:
		return -1
	case v >= hi:
		return 1
	}
	return 0
}

func (a *Axis2D[T, PT]) Total() PT {
	return PT(&a.total)
}

// IsGrid reports whether the bins form a full rectangular grid without gaps.
func (a *Axis2D[T, PT]) IsGrid() bool {
	if len(a.bins) == 0 || len(a.bins) != a.NumBinsX()*a.NumBinsY() {
		return false
	}
	for _, col := range a.index {
		for _, i := range col {
			if i == gap {
				return false
			}
		}
	}
	return true
}

// AddBin adds the bin [xlo, xhi) x [ylo, yhi). It must not overlap existing bins.
func (a *Axis2D[T, PT]) AddBin(xlo, xhi, ylo, yhi float64) error {
	b, err := bin.NewBin2D[T, PT](xlo, xhi, ylo, yhi)
	if err != nil {
		return err
	}
	bins := make([]bin.Bin2D[T, PT], 0, len(a.bins)+1)
	bins = append(bins, a.bins...)
	bins = append(bins, b)
	return a.setBins(bins)
}

// EraseBin removes bin i, leaving a gap. Its content is dropped; the total is unchanged.
func (a *Axis2D[T, PT]) EraseBin(i int) error {
	if i < 0 || i >= len(a.bins) {
		return errors.NewRangef("bin index %d out of range [0, %d)", i, len(a.bins))
	}
	bins := make([]bin.Bin2D[T, PT], 0, len(a.bins)-1)
	bins = append(bins, a.bins[:i]...)
	bins = append(bins, a.bins[i+1:]...)
	return a.setBins(bins)
}

// MergeBins merges all bins in the rectangle spanned by the lower-left corner of bin from
// and the upper-right corner of bin to. The bins inside must tile the rectangle exactly:
// a gap or a bin crossing its boundary is a Grid error.
func (a *Axis2D[T, PT]) MergeBins(from, to int) error {
	n := len(a.bins)
	if from < 0 || from >= n || to < 0 || to >= n {
		return errors.NewRangef("invalid merge bins %d and %d for %d bins", from, to, n)
	}
	if from == to {
		return nil
	}
	bf, bt := &a.bins[from], &a.bins[to]
	xlo, xhi, ylo, yhi := bf.XMin(), bt.XMax(), bf.YMin(), bt.YMax()
	if xlo >= xhi || ylo >= yhi {
		return errors.NewRangef("bin %d is not below and left of bin %d", from, to)
	}
	merged, inside, err := a.mergeRect(xlo, xhi, ylo, yhi)
	if err != nil {
		return err
	}
	bins := make([]bin.Bin2D[T, PT], 0, n-len(inside)+1)
	for i := range a.bins {
		if !inside[i] {
			bins = append(bins, a.bins[i])
		}
	}
	bins = append(bins, merged)
	return a.setBins(bins)
}

// mergeRect sums all bins inside the rectangle, which must be exactly covered by them.
// It returns the merged bin and the set of consumed bin positions.
func (a *Axis2D[T, PT]) mergeRect(xlo, xhi, ylo, yhi float64) (bin.Bin2D[T, PT], map[int]bool, error) {
	ix0, ix1 := sort.SearchFloat64s(a.xEdges, xlo), sort.SearchFloat64s(a.xEdges, xhi)
	iy0, iy1 := sort.SearchFloat64s(a.yEdges, ylo), sort.SearchFloat64s(a.yEdges, yhi)
	inside := make(map[int]bool)
	for ix := ix0; ix < ix1; ix++ {
		for iy := iy0; iy < iy1; iy++ {
			i := a.index[ix][iy]
			if i == gap {
				return bin.Bin2D[T, PT]{}, nil, errors.NewGridf("merge region [%g, %g) x [%g, %g) contains a gap", xlo, xhi, ylo, yhi)
			}
			if !a.bins[i].Within(xlo, xhi, ylo, yhi) {
				return bin.Bin2D[T, PT]{}, nil, errors.NewGridf("bin %d crosses the boundary of merge region [%g, %g) x [%g, %g)", i, xlo, xhi, ylo, yhi)
			}
			inside[i] = true
		}
	}
	merged, err := bin.NewBin2D[T, PT](xlo, xhi, ylo, yhi)
	if err != nil {
		return merged, nil, err
	}
	positions := make([]int, 0, len(inside))
	for i := range inside {
		positions = append(positions, i)
	}
	sort.Ints(positions)
	for _, i := range positions {
		merged.Add(&a.bins[i])
	}
	return merged, inside, nil
}

// Rebin merges blocks of nx by ny grid cells. Only full grids can be rebinned;
// trailing blocks may be smaller.
func (a *Axis2D[T, PT]) Rebin(nx, ny int) error {
	if nx < 1 || ny < 1 {
		return errors.NewRangef("rebin factors must be positive, got %d x %d", nx, ny)
	}
	if !a.IsGrid() {
		return errors.NewGrid("only full grids can be rebinned")
	}
	cx, cy := a.NumBinsX(), a.NumBinsY()
	bins := make([]bin.Bin2D[T, PT], 0, (cx/nx+1)*(cy/ny+1))
	for ix := 0; ix < cx; ix += nx {
		hx := ix + nx
		if hx > cx {
			hx = cx
		}
		for iy := 0; iy < cy; iy += ny {
			hy := iy + ny
			if hy > cy {
				hy = cy
			}
			merged, _, err := a.mergeRect(a.xEdges[ix], a.xEdges[hx], a.yEdges[iy], a.yEdges[hy])
			if err != nil {
				return err
			}
			bins = append(bins, merged)
		}
	}
	return a.setBins(bins)
}

func (a *Axis2D[T, PT]) Reset() {
	for i := range a.bins {
		a.bins[i].Reset()
	}
	PT(&a.total).Reset()
	for i := range a.outflows {
		PT(&a.outflows[i]).Reset()
	}
}

func (a *Axis2D[T, PT]) ScaleW(f float64) {
	for i := range a.bins {
		a.bins[i].ScaleW(f)
	}
	PT(&a.total).ScaleW(f)
	for i := range a.outflows {
		PT(&a.outflows[i]).ScaleW(f)
	}
}

// ScaleXY rescales both coordinates. Edges change, so the index is rebuilt.
func (a *Axis2D[T, PT]) ScaleXY(fx, fy float64) error {
	if !(fx > 0) || !(fy > 0) || math.IsInf(fx, 0) || math.IsInf(fy, 0) {
		return errors.NewRangef("scale factors must be positive and finite, got %g and %g", fx, fy)
	}
	bins := make([]bin.Bin2D[T, PT], len(a.bins))
	for i := range a.bins {
		b := &a.bins[i]
		d := *b.Dbn()
		PT(&d).ScaleXY(fx, fy)
		nb, err := bin.NewBin2DWithDbn[T, PT](b.XMin()*fx, b.XMax()*fx, b.YMin()*fy, b.YMax()*fy, d)
		if err != nil {
			return err
		}
		bins[i] = nb
	}
	if err := a.setBins(bins); err != nil {
		return err
	}
	PT(&a.total).ScaleXY(fx, fy)
	for i := range a.outflows {
		PT(&a.outflows[i]).ScaleXY(fx, fy)
	}
	return nil
}

// SameBinning reports whether both axes hold the same set of rectangles.
func (a *Axis2D[T, PT]) SameBinning(o *Axis2D[T, PT]) bool {
	if len(a.bins) != len(o.bins) {
		return false
	}
	// bins are kept in canonical order, so the sets compare position by position
	for i := range a.bins {
		b, ob := &a.bins[i], &o.bins[i]
		if !util.FuzzyEquals(b.XMin(), ob.XMin(), EdgeTolerance) ||
			!util.FuzzyEquals(b.XMax(), ob.XMax(), EdgeTolerance) ||
			!util.FuzzyEquals(b.YMin(), ob.YMin(), EdgeTolerance) ||
			!util.FuzzyEquals(b.YMax(), ob.YMax(), EdgeTolerance) {
			return false
		}
	}
	return true
}

func (a *Axis2D[T, PT]) Add(o *Axis2D[T, PT]) error {
	if !a.SameBinning(o) {
		return errors.NewBinningMismatchf("cannot add 2D axes with different binnings (%d vs %d bins)", len(a.bins), len(o.bins))
	}
	for i := range a.bins {
		a.bins[i].Add(&o.bins[i])
	}
	PT(&a.total).Add(&o.total)
	for i := range a.outflows {
		PT(&a.outflows[i]).Add(&o.outflows[i])
	}
	return nil
}

func (a *Axis2D[T, PT]) Subtract(o *Axis2D[T, PT]) error {
	if !a.SameBinning(o) {
		return errors.NewBinningMismatchf("cannot subtract 2D axes with different binnings (%d vs %d bins)", len(a.bins), len(o.bins))
	}
	for i := range a.bins {
		a.bins[i].Subtract(&o.bins[i])
	}
	PT(&a.total).Subtract(&o.total)
	for i := range a.outflows {
		PT(&a.outflows[i]).Subtract(&o.outflows[i])
	}
	return nil
}

func (a *Axis2D[T, PT]) Clone() *Axis2D[T, PT] {
	c := &Axis2D[T, PT]{
		bins:     append([]bin.Bin2D[T, PT](nil), a.bins...),
		total:    a.total,
		outflows: a.outflows,
		xEdges:   a.xEdges,
		yEdges:   a.yEdges,
		index:    a.index,
	}
	return c
}
