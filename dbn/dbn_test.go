package dbn

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/yodaproject/yoda/errors"
)

type sample struct {
	x, w float64
}

func fill1D(samples ...sample) Dbn1D {
	var d Dbn1D
	for _, s := range samples {
		d.Fill(s.x, s.w)
	}
	return d
}

func TestDbn1DStatistics(t *testing.T) {
	cases := []struct {
		name       string
		samples    []sample
		expMean    float64
		expVar     float64
		expEffN    float64
		expStdErr  float64
		expEntries uint64
	}{
		{
			name:       "unit weights",
			samples:    []sample{{1, 1}, {2, 1}, {3, 1}},
			expMean:    2,
			expVar:     1,
			expEffN:    3,
			expStdErr:  math.Sqrt(1.0 / 3.0),
			expEntries: 3,
		},
		{
			name:       "doubled weights",
			samples:    []sample{{1, 2}, {3, 2}},
			expMean:    2,
			expVar:     2,
			expEffN:    2,
			expStdErr:  1,
			expEntries: 2,
		},
		{
			name:       "mixed weights",
			samples:    []sample{{0, 1}, {4, 3}},
			expMean:    3,
			expVar:     8,
			expEffN:    1.6,
			expStdErr:  math.Sqrt(5),
			expEntries: 2,
		},
	}
	for _, c := range cases {
		d := fill1D(c.samples...)
		if d.NumEntries() != c.expEntries {
			t.Fatalf("case %q: expected %d entries, got %d", c.name, c.expEntries, d.NumEntries())
		}
		mean, err := d.Mean()
		if err != nil || mean != c.expMean {
			t.Fatalf("case %q: expected mean %g, got %g (err %v)", c.name, c.expMean, mean, err)
		}
		variance, err := d.Variance()
		if err != nil || math.Abs(variance-c.expVar) > 1e-12 {
			t.Fatalf("case %q: expected variance %g, got %g (err %v)", c.name, c.expVar, variance, err)
		}
		effN, err := d.EffNumEntries()
		if err != nil || math.Abs(effN-c.expEffN) > 1e-12 {
			t.Fatalf("case %q: expected effN %g, got %g (err %v)", c.name, c.expEffN, effN, err)
		}
		stdErr, err := d.StdErr()
		if err != nil || math.Abs(stdErr-c.expStdErr) > 1e-12 {
			t.Fatalf("case %q: expected stderr %g, got %g (err %v)", c.name, c.expStdErr, stdErr, err)
		}
	}
}

func TestDbn1DDegenerate(t *testing.T) {
	Convey("Given an empty accumulator", t, func() {
		var d Dbn1D
		Convey("mean, variance and effective entries are undefined", func() {
			_, err := d.Mean()
			So(err, ShouldHaveSameTypeAs, errors.DegenerateStatistics(""))
			_, err = d.Variance()
			So(err, ShouldHaveSameTypeAs, errors.DegenerateStatistics(""))
			_, err = d.EffNumEntries()
			So(err, ShouldHaveSameTypeAs, errors.DegenerateStatistics(""))
			_, err = d.StdErr()
			So(err, ShouldNotBeNil)
		})
	})
	Convey("Given a single unit-weight fill", t, func() {
		d := fill1D(sample{5, 1})
		Convey("the mean is defined but the variance is not", func() {
			mean, err := d.Mean()
			So(err, ShouldBeNil)
			So(mean, ShouldEqual, 5)
			_, err = d.Variance()
			So(err, ShouldHaveSameTypeAs, errors.DegenerateStatistics(""))
		})
	})
	Convey("Given fills whose weights cancel", t, func() {
		d := fill1D(sample{1, 1}, sample{2, -1})
		Convey("the fills are counted but the mean is undefined", func() {
			So(d.NumEntries(), ShouldEqual, 2)
			So(d.SumW(), ShouldEqual, 0)
			So(d.SumW2(), ShouldEqual, 2)
			_, err := d.Mean()
			So(err, ShouldNotBeNil)
		})
	})
}

func TestDbn1DCombination(t *testing.T) {
	Convey("Given two accumulators", t, func() {
		a := fill1D(sample{1, 1}, sample{2, 2})
		b := fill1D(sample{3, 1}, sample{4, 1})

		Convey("adding sums every field", func() {
			c := a.Clone()
			c.Add(&b)
			So(c.NumEntries(), ShouldEqual, 4)
			So(c.SumW(), ShouldEqual, 5)
			So(c.SumW2(), ShouldEqual, 7)
			So(c.SumWX(), ShouldEqual, 1+4+3+4)
			So(c.SumWX2(), ShouldEqual, 1+8+9+16)
		})
		Convey("subtracting negates the weighted sums", func() {
			c := a.Clone()
			c.Subtract(&b)
			So(c.NumEntries(), ShouldEqual, 4)
			So(c.SumW(), ShouldEqual, 1)
			So(c.SumW2(), ShouldEqual, 7)
			So(c.SumWX(), ShouldEqual, 5-7)
			So(c.SumWX2(), ShouldEqual, 9-25)
		})
		Convey("subtraction matches filling with negated weights", func() {
			c := a.Clone()
			c.Subtract(&b)
			exp := fill1D(sample{1, 1}, sample{2, 2}, sample{3, -1}, sample{4, -1})
			So(cmp.Equal(c, exp, cmp.AllowUnexported(Dbn1D{})), ShouldBeTrue)
		})
		Convey("adding then subtracting restores the weighted sums", func() {
			c := a.Clone()
			c.Add(&b)
			c.Subtract(&b)
			So(c.SumW(), ShouldEqual, a.SumW())
			So(c.SumWX(), ShouldEqual, a.SumWX())
			So(c.SumWX2(), ShouldEqual, a.SumWX2())
		})
	})
}

func TestDbn1DScale(t *testing.T) {
	d := fill1D(sample{1, 1}, sample{3, 2})
	orig := d.Clone()

	d.ScaleW(4)
	if d.SumW() != 12 || d.SumW2() != 16*5 || d.SumWX() != 28 || d.SumWX2() != 16*19 {
		t.Fatalf("unexpected state after ScaleW(4): %+v", d)
	}
	d.ScaleW(0.25)
	if diff := cmp.Diff(orig, d, cmp.AllowUnexported(Dbn1D{})); diff != "" {
		t.Fatalf("ScaleW round trip mismatch (-want +got):\n%s", diff)
	}

	d.ScaleX(2)
	mean, _ := d.Mean()
	origMean, _ := orig.Mean()
	if mean != 2*origMean {
		t.Fatalf("expected mean %g after ScaleX(2), got %g", 2*origMean, mean)
	}

	d.Reset()
	if diff := cmp.Diff(Dbn1D{}, d, cmp.AllowUnexported(Dbn1D{})); diff != "" {
		t.Fatalf("Reset left state behind: %s", diff)
	}
}

func TestDbn1DScaleWSecondOrder(t *testing.T) {
	cases := []struct {
		f         float64
		expSumWX  float64
		expSumWX2 float64
	}{
		{2, 4, 16},
		{-1, -2, 4},
		{0.5, 1, 1},
	}
	for _, c := range cases {
		var d Dbn1D
		d.Fill(2, 1)
		d.ScaleW(c.f)
		if d.SumWX() != c.expSumWX || d.SumWX2() != c.expSumWX2 {
			t.Fatalf("ScaleW(%g): expected sumWX=%g sumWX2=%g, got %g %g", c.f, c.expSumWX, c.expSumWX2, d.SumWX(), d.SumWX2())
		}
	}
}

func TestDbn2D(t *testing.T) {
	Convey("Given a 2D accumulator with a few fills", t, func() {
		var d Dbn2D
		d.Fill(1, 10, 1)
		d.Fill(3, 30, 1)

		Convey("each projection tracks its own coordinate", func() {
			So(d.NumEntries(), ShouldEqual, 2)
			So(d.SumW(), ShouldEqual, 2)
			So(d.SumWX(), ShouldEqual, 4)
			So(d.SumWY(), ShouldEqual, 40)
			So(d.SumWXY(), ShouldEqual, 100)
			ym, err := d.YMean()
			So(err, ShouldBeNil)
			So(ym, ShouldEqual, 20)
		})
		Convey("ScaleXY rescales the cross term by both factors", func() {
			d.ScaleXY(2, 3)
			So(d.SumWX(), ShouldEqual, 8)
			So(d.SumWY(), ShouldEqual, 120)
			So(d.SumWXY(), ShouldEqual, 600)
		})
		Convey("subtracting itself leaves zero weight but doubled fills", func() {
			o := d.Clone()
			d.Subtract(&o)
			So(d.NumEntries(), ShouldEqual, 4)
			So(d.SumW(), ShouldEqual, 0)
			So(d.SumWXY(), ShouldEqual, 0)
			So(d.SumW2(), ShouldEqual, 4)
		})
		Convey("state can be restored through the constructor", func() {
			r := NewDbn2D(d.NumEntries(), d.SumW(), d.SumW2(), d.SumWX(), d.SumWX2(), d.SumWY(), d.SumWY2(), d.SumWXY())
			So(cmp.Equal(r, d, cmp.AllowUnexported(Dbn2D{}, Dbn1D{})), ShouldBeTrue)
		})
	})
}

func TestDbn3D(t *testing.T) {
	Convey("Given a 3D accumulator", t, func() {
		var d Dbn3D
		d.Fill(1, 2, 3, 2)
		d.Fill(1, 2, 5, 2)

		Convey("the z mean is the profiled value", func() {
			zm, err := d.ZMean()
			So(err, ShouldBeNil)
			So(zm, ShouldEqual, 4)
			So(d.SumWXY(), ShouldEqual, 8)
			So(d.SumWXZ(), ShouldEqual, 16)
			So(d.SumWYZ(), ShouldEqual, 32)
		})
		Convey("ScaleZ leaves x and y untouched", func() {
			d.ScaleZ(10)
			So(d.SumWZ(), ShouldEqual, 160)
			So(d.SumWX(), ShouldEqual, 4)
			So(d.SumWXY(), ShouldEqual, 8)
			So(d.SumWXZ(), ShouldEqual, 160)
		})
		Convey("ScaleW scales all first order sums", func() {
			d.ScaleW(0.5)
			So(d.SumW(), ShouldEqual, 2)
			So(d.SumW2(), ShouldEqual, 2)
			So(d.SumWZ(), ShouldEqual, 8)
		})
	})
}
