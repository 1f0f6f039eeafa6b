package ao

import (
	"math"

	"github.com/yodaproject/yoda/axis"
	"github.com/yodaproject/yoda/bin"
	"github.com/yodaproject/yoda/dbn"
	"github.com/yodaproject/yoda/errors"
)

type ProfileBin1D = bin.Bin1D[dbn.Dbn2D, *dbn.Dbn2D]
type Profile1DAxis = axis.Axis1D[dbn.Dbn2D, *dbn.Dbn2D]

// Profile1D tracks the weighted mean and spread of y as a function of binned x.
type Profile1D struct {
	AnalysisObject
	axis *Profile1DAxis
}

func newProfile1D(a *Profile1DAxis, path, title string) *Profile1D {
	return &Profile1D{
		AnalysisObject: newAnalysisObject(path, title),
		axis:           a,
	}
}

func NewProfile1D(edges []float64, path, title string) (*Profile1D, error) {
	a, err := axis.NewAxis1D[dbn.Dbn2D](edges)
	if err != nil {
		return nil, err
	}
	return newProfile1D(a, path, title), nil
}

func NewProfile1DLinear(n int, lo, hi float64, path, title string) (*Profile1D, error) {
	a, err := axis.NewAxis1DLinear[dbn.Dbn2D](n, lo, hi)
	if err != nil {
		return nil, err
	}
	return newProfile1D(a, path, title), nil
}

func NewProfile1DFromBins(bins []ProfileBin1D, path, title string) (*Profile1D, error) {
	a, err := axis.NewAxis1DFromBins(bins)
	if err != nil {
		return nil, err
	}
	return newProfile1D(a, path, title), nil
}

func NewProfile1DWithState(bins []ProfileBin1D, total, underflow, overflow dbn.Dbn2D, path, title string) (*Profile1D, error) {
	a, err := axis.NewAxis1DWithState(bins, total, underflow, overflow)
	if err != nil {
		return nil, err
	}
	return newProfile1D(a, path, title), nil
}

func (p *Profile1D) Type() string {
	return TypeProfile1D
}

func (p *Profile1D) Fill(x, y, weight float64) error {
	if math.IsNaN(x) {
		return errors.NewRange("cannot fill a NaN coordinate")
	}
	p.axis.Total().Fill(x, y, weight)
	switch {
	case x < p.axis.XMin():
		p.axis.Underflow().Fill(x, y, weight)
	case x >= p.axis.XMax():
		p.axis.Overflow().Fill(x, y, weight)
	default:
		b, err := p.axis.BinAt(x)
		if err != nil {
			return err
		}
		b.Dbn().Fill(x, y, weight)
	}
	return nil
}

func (p *Profile1D) FillBin(i int, y, weight float64) error {
	b, err := p.axis.Bin(i)
	if err != nil {
		return err
	}
	return p.Fill(b.Midpoint(), y, weight)
}

func (p *Profile1D) Reset() {
	p.axis.Reset()
}

func (p *Profile1D) ScaleW(f float64) {
	p.recordScale(f)
	p.axis.ScaleW(f)
}

func (p *Profile1D) ScaleX(f float64) error {
	return p.axis.ScaleX(f)
}

func (p *Profile1D) MergeBins(from, to int) error  { return p.axis.MergeBins(from, to) }
func (p *Profile1D) Rebin(n int) error             { return p.axis.Rebin(n) }
func (p *Profile1D) AddBin(lo, hi float64) error   { return p.axis.AddBin(lo, hi) }
func (p *Profile1D) AddBins(edges []float64) error { return p.axis.AddBins(edges) }
func (p *Profile1D) EraseBin(i int) error          { return p.axis.EraseBin(i) }

func (p *Profile1D) Axis() *Profile1DAxis {
	return p.axis
}

func (p *Profile1D) NumBins() int                     { return p.axis.NumBins() }
func (p *Profile1D) Bins() []ProfileBin1D             { return p.axis.Bins() }
func (p *Profile1D) Bin(i int) (*ProfileBin1D, error) { return p.axis.Bin(i) }
func (p *Profile1D) BinIndex(x float64) (int, error)  { return p.axis.FindBinIndex(x) }
func (p *Profile1D) Edges() []float64                 { return p.axis.Edges() }
func (p *Profile1D) XMin() float64                    { return p.axis.XMin() }
func (p *Profile1D) XMax() float64                    { return p.axis.XMax() }
func (p *Profile1D) TotalDbn() *dbn.Dbn2D             { return p.axis.Total() }
func (p *Profile1D) Underflow() *dbn.Dbn2D            { return p.axis.Underflow() }
func (p *Profile1D) Overflow() *dbn.Dbn2D             { return p.axis.Overflow() }

// BinMean returns the weighted mean of y in bin i.
func (p *Profile1D) BinMean(i int) (float64, error) {
	b, err := p.axis.Bin(i)
	if err != nil {
		return 0, err
	}
	return b.Dbn().YMean()
}

func (p *Profile1D) BinStdDev(i int) (float64, error) {
	b, err := p.axis.Bin(i)
	if err != nil {
		return 0, err
	}
	return b.Dbn().YStdDev()
}

// BinStdErr returns the standard error on the mean of y in bin i.
func (p *Profile1D) BinStdErr(i int) (float64, error) {
	b, err := p.axis.Bin(i)
	if err != nil {
		return 0, err
	}
	return b.Dbn().YStdErr()
}

func (p *Profile1D) dbnSum(includeOverflows bool) dbn.Dbn2D {
	if includeOverflows {
		return *p.axis.Total()
	}
	var d dbn.Dbn2D
	bins := p.axis.Bins()
	for i := range bins {
		d.Add(bins[i].Dbn())
	}
	return d
}

func (p *Profile1D) NumEntries(includeOverflows bool) uint64 {
	d := p.dbnSum(includeOverflows)
	return d.NumEntries()
}

func (p *Profile1D) EffNumEntries(includeOverflows bool) (float64, error) {
	d := p.dbnSum(includeOverflows)
	return d.EffNumEntries()
}

func (p *Profile1D) SumW(includeOverflows bool) float64 {
	d := p.dbnSum(includeOverflows)
	return d.SumW()
}

func (p *Profile1D) SumW2(includeOverflows bool) float64 {
	d := p.dbnSum(includeOverflows)
	return d.SumW2()
}

func (p *Profile1D) XMean(includeOverflows bool) (float64, error) {
	d := p.dbnSum(includeOverflows)
	return d.XMean()
}

func (p *Profile1D) YMean(includeOverflows bool) (float64, error) {
	d := p.dbnSum(includeOverflows)
	return d.YMean()
}

func (p *Profile1D) XStdDev(includeOverflows bool) (float64, error) {
	d := p.dbnSum(includeOverflows)
	return d.XStdDev()
}

func (p *Profile1D) YStdDev(includeOverflows bool) (float64, error) {
	d := p.dbnSum(includeOverflows)
	return d.YStdDev()
}

func (p *Profile1D) SameBinning(o *Profile1D) bool {
	return p.axis.SameBinning(o.axis)
}

func (p *Profile1D) Add(o *Profile1D) error {
	if err := p.axis.Add(o.axis); err != nil {
		return err
	}
	p.RmAnnotation(ScaledByKey)
	return nil
}

func (p *Profile1D) Subtract(o *Profile1D) error {
	if err := p.axis.Subtract(o.axis); err != nil {
		return err
	}
	p.RmAnnotation(ScaledByKey)
	return nil
}

func (p *Profile1D) Clone() *Profile1D {
	return &Profile1D{
		AnalysisObject: p.cloneIdentity(),
		axis:           p.axis.Clone(),
	}
}

func AddProfile1D(a, b *Profile1D) (*Profile1D, error) {
	c := a.Clone()
	if a.Path() != b.Path() {
		c.SetPath("")
	}
	if err := c.Add(b); err != nil {
		return nil, err
	}
	return c, nil
}

func SubtractProfile1D(a, b *Profile1D) (*Profile1D, error) {
	c := a.Clone()
	if a.Path() != b.Path() {
		c.SetPath("")
	}
	if err := c.Subtract(b); err != nil {
		return nil, err
	}
	return c, nil
}
