package ao

import (
	"math"

	"github.com/yodaproject/yoda/axis"
	"github.com/yodaproject/yoda/bin"
	"github.com/yodaproject/yoda/dbn"
	"github.com/yodaproject/yoda/errors"
)

type ProfileBin2D = bin.Bin2D[dbn.Dbn3D, *dbn.Dbn3D]
type Profile2DAxis = axis.Axis2D[dbn.Dbn3D, *dbn.Dbn3D]

// Profile2D tracks the weighted mean and spread of z as a function of binned (x, y).
type Profile2D struct {
	AnalysisObject
	axis *Profile2DAxis
}

func newProfile2D(a *Profile2DAxis, path, title string) *Profile2D {
	return &Profile2D{
		AnalysisObject: newAnalysisObject(path, title),
		axis:           a,
	}
}

func NewProfile2D(xEdges, yEdges []float64, path, title string) (*Profile2D, error) {
	a, err := axis.NewAxis2D[dbn.Dbn3D](xEdges, yEdges)
	if err != nil {
		return nil, err
	}
	return newProfile2D(a, path, title), nil
}

func NewProfile2DLinear(nx int, xlo, xhi float64, ny int, ylo, yhi float64, path, title string) (*Profile2D, error) {
	a, err := axis.NewAxis2DLinear[dbn.Dbn3D](nx, xlo, xhi, ny, ylo, yhi)
	if err != nil {
		return nil, err
	}
	return newProfile2D(a, path, title), nil
}

func NewProfile2DFromBins(bins []ProfileBin2D, path, title string) (*Profile2D, error) {
	a, err := axis.NewAxis2DFromBins(bins)
	if err != nil {
		return nil, err
	}
	return newProfile2D(a, path, title), nil
}

func NewProfile2DWithState(bins []ProfileBin2D, total dbn.Dbn3D, outflows [axis.NumOutflows]dbn.Dbn3D, path, title string) (*Profile2D, error) {
	a, err := axis.NewAxis2DWithState(bins, total, outflows)
	if err != nil {
		return nil, err
	}
	return newProfile2D(a, path, title), nil
}

func (p *Profile2D) Type() string {
	return TypeProfile2D
}

func (p *Profile2D) Fill(x, y, z, weight float64) error {
	if math.IsNaN(x) || math.IsNaN(y) {
		return errors.NewRange("cannot fill a NaN coordinate")
	}
	if p.axis.NumBins() == 0 {
		return errors.NewRange("cannot fill a profile without bins")
	}
	p.axis.Total().Fill(x, y, z, weight)
	if dx, dy := p.axis.Direction(x, y); dx != 0 || dy != 0 {
		o, err := p.axis.Outflow(dx, dy)
		if err != nil {
			return err
		}
		o.Fill(x, y, z, weight)
		return nil
	}
	b, err := p.axis.BinAt(x, y)
	if err == errors.ErrNoBin {
		return nil
	}
	if err != nil {
		return err
	}
	b.Dbn().Fill(x, y, z, weight)
	return nil
}

func (p *Profile2D) FillBin(i int, z, weight float64) error {
	b, err := p.axis.Bin(i)
	if err != nil {
		return err
	}
	x, y := b.Midpoint()
	return p.Fill(x, y, z, weight)
}

func (p *Profile2D) Reset() {
	p.axis.Reset()
}

func (p *Profile2D) ScaleW(f float64) {
	p.recordScale(f)
	p.axis.ScaleW(f)
}

func (p *Profile2D) ScaleXY(fx, fy float64) error {
	return p.axis.ScaleXY(fx, fy)
}

func (p *Profile2D) MergeBins(from, to int) error { return p.axis.MergeBins(from, to) }
func (p *Profile2D) Rebin(nx, ny int) error       { return p.axis.Rebin(nx, ny) }
func (p *Profile2D) AddBin(xlo, xhi, ylo, yhi float64) error {
	return p.axis.AddBin(xlo, xhi, ylo, yhi)
}
func (p *Profile2D) EraseBin(i int) error { return p.axis.EraseBin(i) }

func (p *Profile2D) Axis() *Profile2DAxis {
	return p.axis
}

func (p *Profile2D) NumBins() int                       { return p.axis.NumBins() }
func (p *Profile2D) NumBinsX() int                      { return p.axis.NumBinsX() }
func (p *Profile2D) NumBinsY() int                      { return p.axis.NumBinsY() }
func (p *Profile2D) Bins() []ProfileBin2D               { return p.axis.Bins() }
func (p *Profile2D) Bin(i int) (*ProfileBin2D, error)   { return p.axis.Bin(i) }
func (p *Profile2D) BinIndex(x, y float64) (int, error) { return p.axis.BinIndex(x, y) }
func (p *Profile2D) TotalDbn() *dbn.Dbn3D               { return p.axis.Total() }
func (p *Profile2D) XMin() float64                      { return p.axis.XMin() }
func (p *Profile2D) XMax() float64                      { return p.axis.XMax() }
func (p *Profile2D) YMin() float64                      { return p.axis.YMin() }
func (p *Profile2D) YMax() float64                      { return p.axis.YMax() }

func (p *Profile2D) Outflow(dx, dy int) (*dbn.Dbn3D, error) {
	return p.axis.Outflow(dx, dy)
}

// BinMean returns the weighted mean of z in bin i.
func (p *Profile2D) BinMean(i int) (float64, error) {
	b, err := p.axis.Bin(i)
	if err != nil {
		return 0, err
	}
	return b.Dbn().ZMean()
}

func (p *Profile2D) BinStdDev(i int) (float64, error) {
	b, err := p.axis.Bin(i)
	if err != nil {
		return 0, err
	}
	return b.Dbn().ZStdDev()
}

func (p *Profile2D) BinStdErr(i int) (float64, error) {
	b, err := p.axis.Bin(i)
	if err != nil {
		return 0, err
	}
	return b.Dbn().ZStdErr()
}

func (p *Profile2D) dbnSum(includeOverflows bool) dbn.Dbn3D {
	if includeOverflows {
		return *p.axis.Total()
	}
	var d dbn.Dbn3D
	bins := p.axis.Bins()
	for i := range bins {
		d.Add(bins[i].Dbn())
	}
	return d
}

func (p *Profile2D) NumEntries(includeOverflows bool) uint64 {
	d := p.dbnSum(includeOverflows)
	return d.NumEntries()
}

func (p *Profile2D) SumW(includeOverflows bool) float64 {
	d := p.dbnSum(includeOverflows)
	return d.SumW()
}

func (p *Profile2D) SumW2(includeOverflows bool) float64 {
	d := p.dbnSum(includeOverflows)
	return d.SumW2()
}

func (p *Profile2D) ZMean(includeOverflows bool) (float64, error) {
	d := p.dbnSum(includeOverflows)
	return d.ZMean()
}

func (p *Profile2D) SameBinning(o *Profile2D) bool {
	return p.axis.SameBinning(o.axis)
}

func (p *Profile2D) Add(o *Profile2D) error {
	if err := p.axis.Add(o.axis); err != nil {
		return err
	}
	p.RmAnnotation(ScaledByKey)
	return nil
}

func (p *Profile2D) Subtract(o *Profile2D) error {
	if err := p.axis.Subtract(o.axis); err != nil {
		return err
	}
	p.RmAnnotation(ScaledByKey)
	return nil
}

func (p *Profile2D) Clone() *Profile2D {
	return &Profile2D{
		AnalysisObject: p.cloneIdentity(),
		axis:           p.axis.Clone(),
	}
}
