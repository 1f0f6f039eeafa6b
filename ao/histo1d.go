package ao

import (
	"math"

	"github.com/yodaproject/yoda/axis"
	"github.com/yodaproject/yoda/bin"
	"github.com/yodaproject/yoda/dbn"
	"github.com/yodaproject/yoda/errors"
)

type HistoBin1D = bin.Bin1D[dbn.Dbn1D, *dbn.Dbn1D]
type Histo1DAxis = axis.Axis1D[dbn.Dbn1D, *dbn.Dbn1D]

// Histo1D is a one-dimensional weighted histogram.
type Histo1D struct {
	AnalysisObject
	axis *Histo1DAxis
}

func newHisto1D(a *Histo1DAxis, path, title string) *Histo1D {
	return &Histo1D{
		AnalysisObject: newAnalysisObject(path, title),
		axis:           a,
	}
}

// NewHisto1D creates a histogram with one bin per pair of consecutive edges.
func NewHisto1D(edges []float64, path, title string) (*Histo1D, error) {
	a, err := axis.NewAxis1D[dbn.Dbn1D](edges)
	if err != nil {
		return nil, err
	}
	return newHisto1D(a, path, title), nil
}

func NewHisto1DLinear(n int, lo, hi float64, path, title string) (*Histo1D, error) {
	a, err := axis.NewAxis1DLinear[dbn.Dbn1D](n, lo, hi)
	if err != nil {
		return nil, err
	}
	return newHisto1D(a, path, title), nil
}

func NewHisto1DLog(n int, lo, hi float64, path, title string) (*Histo1D, error) {
	a, err := axis.NewAxis1DLog[dbn.Dbn1D](n, lo, hi)
	if err != nil {
		return nil, err
	}
	return newHisto1D(a, path, title), nil
}

func NewHisto1DFromBins(bins []HistoBin1D, path, title string) (*Histo1D, error) {
	a, err := axis.NewAxis1DFromBins(bins)
	if err != nil {
		return nil, err
	}
	return newHisto1D(a, path, title), nil
}

// NewHisto1DWithState restores a persisted histogram.
func NewHisto1DWithState(bins []HistoBin1D, total, underflow, overflow dbn.Dbn1D, path, title string) (*Histo1D, error) {
	a, err := axis.NewAxis1DWithState(bins, total, underflow, overflow)
	if err != nil {
		return nil, err
	}
	return newHisto1D(a, path, title), nil
}

func (h *Histo1D) Type() string {
	return TypeHisto1D
}

// Fill adds one weighted sample. Samples outside the axis go to the underflow or overflow;
// every sample goes to the total.
func (h *Histo1D) Fill(x, weight float64) error {
	if math.IsNaN(x) {
		return errors.NewRange("cannot fill a NaN coordinate")
	}
	h.axis.Total().Fill(x, weight)
	switch {
	case x < h.axis.XMin():
		h.axis.Underflow().Fill(x, weight)
	case x >= h.axis.XMax():
		h.axis.Overflow().Fill(x, weight)
	default:
		b, err := h.axis.BinAt(x)
		if err != nil {
			return err
		}
		b.Dbn().Fill(x, weight)
	}
	return nil
}

// FillBin fills bin i at its midpoint.
func (h *Histo1D) FillBin(i int, weight float64) error {
	b, err := h.axis.Bin(i)
	if err != nil {
		return err
	}
	return h.Fill(b.Midpoint(), weight)
}

func (h *Histo1D) Reset() {
	h.axis.Reset()
}

// ScaleW rescales all weights by f and records f in the ScaledBy annotation.
func (h *Histo1D) ScaleW(f float64) {
	h.recordScale(f)
	h.axis.ScaleW(f)
}

func (h *Histo1D) ScaleX(f float64) error {
	return h.axis.ScaleX(f)
}

// Normalize scales the histogram so that its integral becomes normTo.
func (h *Histo1D) Normalize(normTo float64, includeOverflows bool) error {
	integral := h.Integral(includeOverflows)
	if integral == 0 {
		return errors.NewDegenerateStatistics("cannot normalize a histogram with zero integral")
	}
	h.ScaleW(normTo / integral)
	return nil
}

func (h *Histo1D) MergeBins(from, to int) error { return h.axis.MergeBins(from, to) }
func (h *Histo1D) Rebin(n int) error            { return h.axis.Rebin(n) }
func (h *Histo1D) AddBin(lo, hi float64) error  { return h.axis.AddBin(lo, hi) }
func (h *Histo1D) AddBins(edges []float64) error {
	return h.axis.AddBins(edges)
}
func (h *Histo1D) EraseBin(i int) error { return h.axis.EraseBin(i) }

// Axis exposes the underlying axis.
func (h *Histo1D) Axis() *Histo1DAxis {
	return h.axis
}

func (h *Histo1D) NumBins() int                    { return h.axis.NumBins() }
func (h *Histo1D) Bins() []HistoBin1D              { return h.axis.Bins() }
func (h *Histo1D) Bin(i int) (*HistoBin1D, error)  { return h.axis.Bin(i) }
func (h *Histo1D) BinIndex(x float64) (int, error) { return h.axis.FindBinIndex(x) }
func (h *Histo1D) Edges() []float64                { return h.axis.Edges() }
func (h *Histo1D) XMin() float64                   { return h.axis.XMin() }
func (h *Histo1D) XMax() float64                   { return h.axis.XMax() }
func (h *Histo1D) TotalDbn() *dbn.Dbn1D            { return h.axis.Total() }
func (h *Histo1D) Underflow() *dbn.Dbn1D           { return h.axis.Underflow() }
func (h *Histo1D) Overflow() *dbn.Dbn1D            { return h.axis.Overflow() }

// BinHeight returns the weight density of bin i: sumW / width.
func (h *Histo1D) BinHeight(i int) (float64, error) {
	b, err := h.axis.Bin(i)
	if err != nil {
		return 0, err
	}
	return b.Dbn().SumW() / b.Width(), nil
}

func (h *Histo1D) BinHeightErr(i int) (float64, error) {
	b, err := h.axis.Bin(i)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(b.Dbn().SumW2()) / b.Width(), nil
}

// dbnSum returns the total distribution, or the sum over the bins only.
func (h *Histo1D) dbnSum(includeOverflows bool) dbn.Dbn1D {
	if includeOverflows {
		return *h.axis.Total()
	}
	var d dbn.Dbn1D
	bins := h.axis.Bins()
	for i := range bins {
		d.Add(bins[i].Dbn())
	}
	return d
}

func (h *Histo1D) Integral(includeOverflows bool) float64 {
	d := h.dbnSum(includeOverflows)
	return d.SumW()
}

// IntegralRange sums the weights of bins i1 to i2 inclusive.
func (h *Histo1D) IntegralRange(i1, i2 int) (float64, error) {
	if i1 < 0 || i2 >= h.NumBins() || i1 > i2 {
		return 0, errors.NewRangef("invalid bin range [%d, %d] for %d bins", i1, i2, h.NumBins())
	}
	sum := 0.0
	bins := h.axis.Bins()
	for i := i1; i <= i2; i++ {
		sum += bins[i].Dbn().SumW()
	}
	return sum, nil
}

// IntegralTo sums the weights of bins 0 to i inclusive, optionally adding the underflow.
func (h *Histo1D) IntegralTo(i int, includeUnderflow bool) (float64, error) {
	sum, err := h.IntegralRange(0, i)
	if err != nil {
		return 0, err
	}
	if includeUnderflow {
		sum += h.axis.Underflow().SumW()
	}
	return sum, nil
}

func (h *Histo1D) NumEntries(includeOverflows bool) uint64 {
	d := h.dbnSum(includeOverflows)
	return d.NumEntries()
}

func (h *Histo1D) EffNumEntries(includeOverflows bool) (float64, error) {
	d := h.dbnSum(includeOverflows)
	return d.EffNumEntries()
}

func (h *Histo1D) SumW(includeOverflows bool) float64 {
	d := h.dbnSum(includeOverflows)
	return d.SumW()
}

func (h *Histo1D) SumW2(includeOverflows bool) float64 {
	d := h.dbnSum(includeOverflows)
	return d.SumW2()
}

func (h *Histo1D) XMean(includeOverflows bool) (float64, error) {
	d := h.dbnSum(includeOverflows)
	return d.Mean()
}

func (h *Histo1D) XVariance(includeOverflows bool) (float64, error) {
	d := h.dbnSum(includeOverflows)
	return d.Variance()
}

func (h *Histo1D) XStdDev(includeOverflows bool) (float64, error) {
	d := h.dbnSum(includeOverflows)
	return d.StdDev()
}

func (h *Histo1D) XStdErr(includeOverflows bool) (float64, error) {
	d := h.dbnSum(includeOverflows)
	return d.StdErr()
}

func (h *Histo1D) SameBinning(o *Histo1D) bool {
	return h.axis.SameBinning(o.axis)
}

// Add merges o into h. The ScaledBy annotation no longer applies and is dropped.
func (h *Histo1D) Add(o *Histo1D) error {
	if err := h.axis.Add(o.axis); err != nil {
		return err
	}
	h.RmAnnotation(ScaledByKey)
	return nil
}

// Subtract removes o from h; see dbn.Dbn1D.Subtract for the semantics.
func (h *Histo1D) Subtract(o *Histo1D) error {
	if err := h.axis.Subtract(o.axis); err != nil {
		return err
	}
	h.RmAnnotation(ScaledByKey)
	return nil
}

func (h *Histo1D) Clone() *Histo1D {
	return &Histo1D{
		AnalysisObject: h.cloneIdentity(),
		axis:           h.axis.Clone(),
	}
}

// AddHisto1D returns a + b as a new histogram. The path is kept only if both paths agree.
func AddHisto1D(a, b *Histo1D) (*Histo1D, error) {
	c := a.Clone()
	if a.Path() != b.Path() {
		c.SetPath("")
	}
	if err := c.Add(b); err != nil {
		return nil, err
	}
	return c, nil
}

// SubtractHisto1D returns a - b as a new histogram.
func SubtractHisto1D(a, b *Histo1D) (*Histo1D, error) {
	c := a.Clone()
	if a.Path() != b.Path() {
		c.SetPath("")
	}
	if err := c.Subtract(b); err != nil {
		return nil, err
	}
	return c, nil
}
