// Package dbn implements weighted moment accumulators: the running sums from which
// means, variances and standard errors of a weighted sample are derived.
package dbn

import (
	"math"

	"github.com/yodaproject/yoda/errors"
)

// Dbn1D accumulates the weighted moments of a one-dimensional sample.
type Dbn1D struct {
	numFills uint64
	sumW     float64
	sumW2    float64
	sumWX    float64
	sumWX2   float64
}

// NewDbn1D returns a Dbn1D with the given state. Used when restoring persisted objects.
func NewDbn1D(numFills uint64, sumW, sumW2, sumWX, sumWX2 float64) Dbn1D {
	return Dbn1D{
		numFills: numFills,
		sumW:     sumW,
		sumW2:    sumW2,
		sumWX:    sumWX,
		sumWX2:   sumWX2,
	}
}

// Fill adds one sample. The weight is not checked: zero and negative weights are accepted.
func (d *Dbn1D) Fill(x, weight float64) {
	d.numFills++
	d.sumW += weight
	d.sumW2 += weight * weight
	d.sumWX += weight * x
	d.sumWX2 += weight * x * x
}

func (d *Dbn1D) Reset() {
	*d = Dbn1D{}
}

// ScaleW rescales the weights of all accumulated samples by f.
// sumW and sumWX scale by f, sumW2 and sumWX2 by f².
func (d *Dbn1D) ScaleW(f float64) {
	sf2 := f * f
	d.sumW *= f
	d.sumW2 *= sf2
	d.sumWX *= f
	d.sumWX2 *= sf2
}

// ScaleX rescales the coordinate of all accumulated samples by f.
func (d *Dbn1D) ScaleX(f float64) {
	d.sumWX *= f
	d.sumWX2 *= f * f
}

func (d *Dbn1D) Add(o *Dbn1D) {
	d.numFills += o.numFills
	d.sumW += o.sumW
	d.sumW2 += o.sumW2
	d.sumWX += o.sumWX
	d.sumWX2 += o.sumWX2
}

// Subtract removes o from d as if o's samples had been filled into d with negated weights.
// The fill count and the squared-weight sum still grow, so uncertainties add in quadrature.
func (d *Dbn1D) Subtract(o *Dbn1D) {
	d.numFills += o.numFills
	d.sumW -= o.sumW
	d.sumW2 += o.sumW2
	d.sumWX -= o.sumWX
	d.sumWX2 -= o.sumWX2
}

func (d *Dbn1D) Clone() Dbn1D {
	return *d
}

func (d *Dbn1D) NumEntries() uint64 {
	return d.numFills
}

func (d *Dbn1D) SumW() float64 {
	return d.sumW
}

func (d *Dbn1D) SumW2() float64 {
	return d.sumW2
}

func (d *Dbn1D) SumWX() float64 {
	return d.sumWX
}

func (d *Dbn1D) SumWX2() float64 {
	return d.sumWX2
}

// EffNumEntries returns sumW²/sumW2, the number of equally weighted samples
// that would give the same statistical power.
func (d *Dbn1D) EffNumEntries() (float64, error) {
	if d.sumW2 == 0 {
		return 0, errors.NewDegenerateStatistics("effective number of entries undefined: sum of squared weights is zero")
	}
	return d.sumW * d.sumW / d.sumW2, nil
}

func (d *Dbn1D) Mean() (float64, error) {
	if d.sumW == 0 {
		return 0, errors.NewDegenerateStatistics("mean undefined: sum of weights is zero")
	}
	return d.sumWX / d.sumW, nil
}

// Variance returns the unbiased weighted variance.
func (d *Dbn1D) Variance() (float64, error) {
	if d.sumW == 0 {
		return 0, errors.NewDegenerateStatistics("variance undefined: sum of weights is zero")
	}
	den := d.sumW*d.sumW - d.sumW2
	if den == 0 {
		return 0, errors.NewDegenerateStatistics("variance undefined: not enough effective entries")
	}
	num := d.sumWX2*d.sumW - d.sumWX*d.sumWX
	return num / den, nil
}

func (d *Dbn1D) StdDev() (float64, error) {
	v, err := d.Variance()
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, errors.NewDegenerateStatisticsf("standard deviation undefined: negative variance %g", v)
	}
	return math.Sqrt(v), nil
}

// StdErr returns the standard error on the mean.
func (d *Dbn1D) StdErr() (float64, error) {
	effN, err := d.EffNumEntries()
	if err != nil {
		return 0, err
	}
	if effN == 0 {
		return 0, errors.NewDegenerateStatistics("standard error undefined: effective number of entries is zero")
	}
	v, err := d.Variance()
	if err != nil {
		return 0, err
	}
	if v/effN < 0 {
		return 0, errors.NewDegenerateStatisticsf("standard error undefined: negative variance %g", v)
	}
	return math.Sqrt(v / effN), nil
}
