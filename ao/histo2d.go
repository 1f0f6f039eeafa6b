package ao

import (
	"math"

	"github.com/yodaproject/yoda/axis"
	"github.com/yodaproject/yoda/bin"
	"github.com/yodaproject/yoda/dbn"
	"github.com/yodaproject/yoda/errors"
)

type HistoBin2D = bin.Bin2D[dbn.Dbn2D, *dbn.Dbn2D]
type Histo2DAxis = axis.Axis2D[dbn.Dbn2D, *dbn.Dbn2D]

// Histo2D is a two-dimensional weighted histogram. Its bins need not form a full grid.
type Histo2D struct {
	AnalysisObject
	axis *Histo2DAxis
}

func newHisto2D(a *Histo2DAxis, path, title string) *Histo2D {
	return &Histo2D{
		AnalysisObject: newAnalysisObject(path, title),
		axis:           a,
	}
}

func NewHisto2D(xEdges, yEdges []float64, path, title string) (*Histo2D, error) {
	a, err := axis.NewAxis2D[dbn.Dbn2D](xEdges, yEdges)
	if err != nil {
		return nil, err
	}
	return newHisto2D(a, path, title), nil
}

func NewHisto2DLinear(nx int, xlo, xhi float64, ny int, ylo, yhi float64, path, title string) (*Histo2D, error) {
	a, err := axis.NewAxis2DLinear[dbn.Dbn2D](nx, xlo, xhi, ny, ylo, yhi)
	if err != nil {
		return nil, err
	}
	return newHisto2D(a, path, title), nil
}

func NewHisto2DFromBins(bins []HistoBin2D, path, title string) (*Histo2D, error) {
	a, err := axis.NewAxis2DFromBins(bins)
	if err != nil {
		return nil, err
	}
	return newHisto2D(a, path, title), nil
}

func NewHisto2DWithState(bins []HistoBin2D, total dbn.Dbn2D, outflows [axis.NumOutflows]dbn.Dbn2D, path, title string) (*Histo2D, error) {
	a, err := axis.NewAxis2DWithState(bins, total, outflows)
	if err != nil {
		return nil, err
	}
	return newHisto2D(a, path, title), nil
}

func (h *Histo2D) Type() string {
	return TypeHisto2D
}

// Fill adds one weighted sample. Samples outside the axis range go to the matching outflow,
// samples in a gap between bins only count towards the total.
func (h *Histo2D) Fill(x, y, weight float64) error {
	if math.IsNaN(x) || math.IsNaN(y) {
		return errors.NewRange("cannot fill a NaN coordinate")
	}
	if h.axis.NumBins() == 0 {
		return errors.NewRange("cannot fill a histogram without bins")
	}
	h.axis.Total().Fill(x, y, weight)
	if dx, dy := h.axis.Direction(x, y); dx != 0 || dy != 0 {
		o, err := h.axis.Outflow(dx, dy)
		if err != nil {
			return err
		}
		o.Fill(x, y, weight)
		return nil
	}
	b, err := h.axis.BinAt(x, y)
	if err == errors.ErrNoBin {
		return nil
	}
	if err != nil {
		return err
	}
	b.Dbn().Fill(x, y, weight)
	return nil
}

// FillBin fills bin i at its midpoint.
func (h *Histo2D) FillBin(i int, weight float64) error {
	b, err := h.axis.Bin(i)
	if err != nil {
		return err
	}
	x, y := b.Midpoint()
	return h.Fill(x, y, weight)
}

func (h *Histo2D) Reset() {
	h.axis.Reset()
}

func (h *Histo2D) ScaleW(f float64) {
	h.recordScale(f)
	h.axis.ScaleW(f)
}

func (h *Histo2D) ScaleXY(fx, fy float64) error {
	return h.axis.ScaleXY(fx, fy)
}

func (h *Histo2D) Normalize(normTo float64, includeOverflows bool) error {
	integral := h.Integral(includeOverflows)
	if integral == 0 {
		return errors.NewDegenerateStatistics("cannot normalize a histogram with zero integral")
	}
	h.ScaleW(normTo / integral)
	return nil
}

func (h *Histo2D) MergeBins(from, to int) error { return h.axis.MergeBins(from, to) }
func (h *Histo2D) Rebin(nx, ny int) error       { return h.axis.Rebin(nx, ny) }
func (h *Histo2D) AddBin(xlo, xhi, ylo, yhi float64) error {
	return h.axis.AddBin(xlo, xhi, ylo, yhi)
}
func (h *Histo2D) EraseBin(i int) error { return h.axis.EraseBin(i) }

func (h *Histo2D) Axis() *Histo2DAxis {
	return h.axis
}

func (h *Histo2D) NumBins() int                       { return h.axis.NumBins() }
func (h *Histo2D) NumBinsX() int                      { return h.axis.NumBinsX() }
func (h *Histo2D) NumBinsY() int                      { return h.axis.NumBinsY() }
func (h *Histo2D) Bins() []HistoBin2D                 { return h.axis.Bins() }
func (h *Histo2D) Bin(i int) (*HistoBin2D, error)     { return h.axis.Bin(i) }
func (h *Histo2D) BinIndex(x, y float64) (int, error) { return h.axis.BinIndex(x, y) }
func (h *Histo2D) TotalDbn() *dbn.Dbn2D               { return h.axis.Total() }
func (h *Histo2D) XMin() float64                      { return h.axis.XMin() }
func (h *Histo2D) XMax() float64                      { return h.axis.XMax() }
func (h *Histo2D) YMin() float64                      { return h.axis.YMin() }
func (h *Histo2D) YMax() float64                      { return h.axis.YMax() }

// Outflow returns the accumulator for direction (dx, dy); see axis.OutflowIndex.
func (h *Histo2D) Outflow(dx, dy int) (*dbn.Dbn2D, error) {
	return h.axis.Outflow(dx, dy)
}

// BinHeight returns the weight density of bin i: sumW / area.
func (h *Histo2D) BinHeight(i int) (float64, error) {
	b, err := h.axis.Bin(i)
	if err != nil {
		return 0, err
	}
	return b.Dbn().SumW() / b.Area(), nil
}

func (h *Histo2D) BinHeightErr(i int) (float64, error) {
	b, err := h.axis.Bin(i)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(b.Dbn().SumW2()) / b.Area(), nil
}

func (h *Histo2D) dbnSum(includeOverflows bool) dbn.Dbn2D {
	if includeOverflows {
		return *h.axis.Total()
	}
	var d dbn.Dbn2D
	bins := h.axis.Bins()
	for i := range bins {
		d.Add(bins[i].Dbn())
	}
	return d
}

func (h *Histo2D) Integral(includeOverflows bool) float64 {
	d := h.dbnSum(includeOverflows)
	return d.SumW()
}

func (h *Histo2D) NumEntries(includeOverflows bool) uint64 {
	d := h.dbnSum(includeOverflows)
	return d.NumEntries()
}

func (h *Histo2D) EffNumEntries(includeOverflows bool) (float64, error) {
	d := h.dbnSum(includeOverflows)
	return d.EffNumEntries()
}

func (h *Histo2D) SumW(includeOverflows bool) float64 {
	d := h.dbnSum(includeOverflows)
	return d.SumW()
}

func (h *Histo2D) SumW2(includeOverflows bool) float64 {
	d := h.dbnSum(includeOverflows)
	return d.SumW2()
}

func (h *Histo2D) XMean(includeOverflows bool) (float64, error) {
	d := h.dbnSum(includeOverflows)
	return d.XMean()
}

func (h *Histo2D) YMean(includeOverflows bool) (float64, error) {
	d := h.dbnSum(includeOverflows)
	return d.YMean()
}

func (h *Histo2D) XVariance(includeOverflows bool) (float64, error) {
	d := h.dbnSum(includeOverflows)
	return d.XVariance()
}

func (h *Histo2D) YVariance(includeOverflows bool) (float64, error) {
	d := h.dbnSum(includeOverflows)
	return d.YVariance()
}

func (h *Histo2D) XStdDev(includeOverflows bool) (float64, error) {
	d := h.dbnSum(includeOverflows)
	return d.XStdDev()
}

func (h *Histo2D) YStdDev(includeOverflows bool) (float64, error) {
	d := h.dbnSum(includeOverflows)
	return d.YStdDev()
}

func (h *Histo2D) XStdErr(includeOverflows bool) (float64, error) {
	d := h.dbnSum(includeOverflows)
	return d.XStdErr()
}

func (h *Histo2D) YStdErr(includeOverflows bool) (float64, error) {
	d := h.dbnSum(includeOverflows)
	return d.YStdErr()
}

func (h *Histo2D) SameBinning(o *Histo2D) bool {
	return h.axis.SameBinning(o.axis)
}

func (h *Histo2D) Add(o *Histo2D) error {
	if err := h.axis.Add(o.axis); err != nil {
		return err
	}
	h.RmAnnotation(ScaledByKey)
	return nil
}

func (h *Histo2D) Subtract(o *Histo2D) error {
	if err := h.axis.Subtract(o.axis); err != nil {
		return err
	}
	h.RmAnnotation(ScaledByKey)
	return nil
}

func (h *Histo2D) Clone() *Histo2D {
	return &Histo2D{
		AnalysisObject: h.cloneIdentity(),
		axis:           h.axis.Clone(),
	}
}

func AddHisto2D(a, b *Histo2D) (*Histo2D, error) {
	c := a.Clone()
	if a.Path() != b.Path() {
		c.SetPath("")
	}
	if err := c.Add(b); err != nil {
		return nil, err
	}
	return c, nil
}

func SubtractHisto2D(a, b *Histo2D) (*Histo2D, error) {
	c := a.Clone()
	if a.Path() != b.Path() {
		c.SetPath("")
	}
	if err := c.Subtract(b); err != nil {
		return nil, err
	}
	return c, nil
}
