package ao

import (
	"math"

	"github.com/yodaproject/yoda/errors"
)

// MkScatter converts a histogram to a point set: one point per bin at the bin midpoint,
// x errors spanning the bin, y the bin height with its error.
func MkScatter(h *Histo1D) *Scatter2D {
	s := NewScatter2D(h.Path(), h.Title())
	copyAnnotations(&s.AnalysisObject, &h.AnalysisObject)
	bins := h.Bins()
	for i := range bins {
		b := &bins[i]
		hw := b.Width() / 2
		s.AddPoint(Point2D{
			X: b.Midpoint(), XErrMinus: hw, XErrPlus: hw,
			Y:         b.Dbn().SumW() / b.Width(),
			YErrMinus: math.Sqrt(b.Dbn().SumW2()) / b.Width(),
			YErrPlus:  math.Sqrt(b.Dbn().SumW2()) / b.Width(),
		})
	}
	return s
}

// MkScatterProfile converts a profile to a point set of bin means and their standard errors.
// Bins without enough entries give NaN.
func MkScatterProfile(p *Profile1D) *Scatter2D {
	s := NewScatter2D(p.Path(), p.Title())
	copyAnnotations(&s.AnalysisObject, &p.AnalysisObject)
	bins := p.Bins()
	for i := range bins {
		b := &bins[i]
		hw := b.Width() / 2
		y, err := b.Dbn().YMean()
		if err != nil {
			y = math.NaN()
		}
		ey, err := b.Dbn().YStdErr()
		if err != nil {
			ey = math.NaN()
		}
		s.AddPoint(Point2D{
			X: b.Midpoint(), XErrMinus: hw, XErrPlus: hw,
			Y: y, YErrMinus: ey, YErrPlus: ey,
		})
	}
	return s
}

// MkScatter2D converts a 2D histogram to a 3D point set of bin heights.
func MkScatter2D(h *Histo2D) *Scatter3D {
	s := NewScatter3D(h.Path(), h.Title())
	copyAnnotations(&s.AnalysisObject, &h.AnalysisObject)
	bins := h.Bins()
	for i := range bins {
		b := &bins[i]
		x, y := b.Midpoint()
		ez := math.Sqrt(b.Dbn().SumW2()) / b.Area()
		s.AddPoint(Point3D{
			X: x, XErrMinus: b.WidthX() / 2, XErrPlus: b.WidthX() / 2,
			Y: y, YErrMinus: b.WidthY() / 2, YErrPlus: b.WidthY() / 2,
			Z: b.Dbn().SumW() / b.Area(), ZErrMinus: ez, ZErrPlus: ez,
		})
	}
	return s
}

// MkScatterProfile2D converts a 2D profile to a 3D point set of bin means.
func MkScatterProfile2D(p *Profile2D) *Scatter3D {
	s := NewScatter3D(p.Path(), p.Title())
	copyAnnotations(&s.AnalysisObject, &p.AnalysisObject)
	bins := p.Bins()
	for i := range bins {
		b := &bins[i]
		x, y := b.Midpoint()
		z, err := b.Dbn().ZMean()
		if err != nil {
			z = math.NaN()
		}
		ez, err := b.Dbn().ZStdErr()
		if err != nil {
			ez = math.NaN()
		}
		s.AddPoint(Point3D{
			X: x, XErrMinus: b.WidthX() / 2, XErrPlus: b.WidthX() / 2,
			Y: y, YErrMinus: b.WidthY() / 2, YErrPlus: b.WidthY() / 2,
			Z: z, ZErrMinus: ez, ZErrPlus: ez,
		})
	}
	return s
}

func copyAnnotations(dst, src *AnalysisObject) {
	for _, k := range src.AnnotationKeys() {
		if k == ScaledByKey {
			continue
		}
		v, _ := src.Annotation(k)
		dst.SetAnnotation(k, v)
	}
}

// ratioErr returns the error on num/den for uncorrelated num and den.
func ratioErr(num, numErr, den, denErr float64) float64 {
	if num == 0 {
		return math.Abs(numErr / den)
	}
	r := num / den
	return math.Abs(r) * math.Sqrt(math.Pow(numErr/num, 2)+math.Pow(denErr/den, 2))
}

// Divide returns the bin-by-bin ratio num/den of two identically binned histograms,
// assuming uncorrelated errors. Bins with an empty denominator give NaN points.
func Divide(num, den *Histo1D) (*Scatter2D, error) {
	if !num.SameBinning(den) {
		return nil, errors.NewBinningMismatch("cannot divide histograms with different binnings")
	}
	s := NewScatter2D(num.Path(), num.Title())
	nb, db := num.Bins(), den.Bins()
	for i := range nb {
		b := &nb[i]
		hw := b.Width() / 2
		p := Point2D{X: b.Midpoint(), XErrMinus: hw, XErrPlus: hw}
		n, d := b.Dbn().SumW(), db[i].Dbn().SumW()
		if d == 0 {
			p.Y, p.YErrMinus, p.YErrPlus = math.NaN(), math.NaN(), math.NaN()
		} else {
			ey := ratioErr(n, math.Sqrt(b.Dbn().SumW2()), d, math.Sqrt(db[i].Dbn().SumW2()))
			p.Y, p.YErrMinus, p.YErrPlus = n/d, ey, ey
		}
		s.AddPoint(p)
	}
	return s, nil
}

// Divide2D returns the bin-by-bin ratio num/den of two identically binned 2D histograms.
func Divide2D(num, den *Histo2D) (*Scatter3D, error) {
	if !num.SameBinning(den) {
		return nil, errors.NewBinningMismatch("cannot divide 2D histograms with different binnings")
	}
	s := NewScatter3D(num.Path(), num.Title())
	nb, db := num.Bins(), den.Bins()
	for i := range nb {
		b := &nb[i]
		x, y := b.Midpoint()
		p := Point3D{
			X: x, XErrMinus: b.WidthX() / 2, XErrPlus: b.WidthX() / 2,
			Y: y, YErrMinus: b.WidthY() / 2, YErrPlus: b.WidthY() / 2,
		}
		n, d := b.Dbn().SumW(), db[i].Dbn().SumW()
		if d == 0 {
			p.Z, p.ZErrMinus, p.ZErrPlus = math.NaN(), math.NaN(), math.NaN()
		} else {
			ez := ratioErr(n, math.Sqrt(b.Dbn().SumW2()), d, math.Sqrt(db[i].Dbn().SumW2()))
			p.Z, p.ZErrMinus, p.ZErrPlus = n/d, ez, ez
		}
		s.AddPoint(p)
	}
	return s, nil
}

// Efficiency returns the bin-by-bin fraction accepted/total with binomial errors,
// where accepted is a subset of total. A fraction outside [0, 1] is a Range error.
func Efficiency(accepted, total *Histo1D) (*Scatter2D, error) {
	if !accepted.SameBinning(total) {
		return nil, errors.NewBinningMismatch("cannot compute efficiency of histograms with different binnings")
	}
	s := NewScatter2D(accepted.Path(), accepted.Title())
	ab, tb := accepted.Bins(), total.Bins()
	for i := range ab {
		b := &ab[i]
		hw := b.Width() / 2
		p := Point2D{X: b.Midpoint(), XErrMinus: hw, XErrPlus: hw}
		na, nt := b.Dbn().SumW(), tb[i].Dbn().SumW()
		if nt == 0 {
			p.Y, p.YErrMinus, p.YErrPlus = math.NaN(), math.NaN(), math.NaN()
			s.AddPoint(p)
			continue
		}
		eff := na / nt
		if eff < 0 || eff > 1 {
			return nil, errors.NewRangef("efficiency %g in bin %d outside [0, 1]", eff, i)
		}
		// weighted binomial error, with sumW2 standing in for the counts
		ey := math.Sqrt(math.Abs(((1-2*eff)*b.Dbn().SumW2() + eff*eff*tb[i].Dbn().SumW2()) / (nt * nt)))
		p.Y, p.YErrMinus, p.YErrPlus = eff, ey, ey
		s.AddPoint(p)
	}
	return s, nil
}

// Asymm returns the bin-by-bin asymmetry (a-b)/(a+b).
func Asymm(a, b *Histo1D) (*Scatter2D, error) {
	diff, err := SubtractHisto1D(a, b)
	if err != nil {
		return nil, err
	}
	sum, err := AddHisto1D(a, b)
	if err != nil {
		return nil, err
	}
	return Divide(diff, sum)
}

// ToIntegralHisto returns the running integral of h: point i holds the summed weight
// of bins 0..i, optionally starting from the underflow, with a sqrt(N) error.
func ToIntegralHisto(h *Histo1D, includeUnderflow bool) *Scatter2D {
	s := NewScatter2D(h.Path(), h.Title())
	integral := 0.0
	if includeUnderflow {
		integral = h.Underflow().SumW()
	}
	bins := h.Bins()
	for i := range bins {
		b := &bins[i]
		integral += b.Dbn().SumW()
		hw := b.Width() / 2
		ey := math.Sqrt(math.Abs(integral))
		s.AddPoint(Point2D{
			X: b.Midpoint(), XErrMinus: hw, XErrPlus: hw,
			Y: integral, YErrMinus: ey, YErrPlus: ey,
		})
	}
	return s
}

// ToIntegralEfficiencyHisto returns the running integral of h divided by its full integral,
// i.e. the efficiency of a cut at each bin's upper edge, with binomial errors.
func ToIntegralEfficiencyHisto(h *Histo1D, includeUnderflow, includeOverflow bool) (*Scatter2D, error) {
	s := ToIntegralHisto(h, includeUnderflow)
	integral := h.Integral(false)
	if includeUnderflow {
		integral += h.Underflow().SumW()
	}
	if includeOverflow {
		integral += h.Overflow().SumW()
	}
	if integral == 0 {
		return nil, errors.NewDegenerateStatistics("cannot compute integral efficiency of a histogram with zero integral")
	}
	integralErr := math.Sqrt(math.Abs(integral))
	out := NewScatter2D(h.Path(), h.Title())
	for _, p := range s.points {
		eff := p.Y / integral
		ey := math.Sqrt(math.Abs(((1-2*eff)*p.YErrMinus*p.YErrMinus + eff*eff*integralErr*integralErr) / (integral * integral)))
		p.Y, p.YErrMinus, p.YErrPlus = eff, ey, ey
		out.AddPoint(p)
	}
	return out, nil
}
