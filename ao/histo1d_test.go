package ao

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/yodaproject/yoda/errors"
)

func mustHisto1D(t *testing.T, path string, edges ...float64) *Histo1D {
	h, err := NewHisto1D(edges, path, "")
	if err != nil {
		t.Fatalf("failed to create histogram over %v: %s", edges, err)
	}
	return h
}

func binSumWs(h *Histo1D) []float64 {
	var out []float64
	bins := h.Bins()
	for i := range bins {
		out = append(out, bins[i].Dbn().SumW())
	}
	return out
}

func TestHisto1DFill(t *testing.T) {
	h := mustHisto1D(t, "/h", 0, 1, 2, 3)
	if err := h.Fill(0.5, 2); err != nil {
		t.Fatalf("fill failed: %s", err)
	}
	if err := h.Fill(2.5, 3); err != nil {
		t.Fatalf("fill failed: %s", err)
	}
	if diff := cmp.Diff([]float64{2, 0, 3}, binSumWs(h)); diff != "" {
		t.Fatalf("bin weights mismatch (-want +got):\n%s", diff)
	}
	if h.Underflow().SumW() != 0 || h.Overflow().SumW() != 0 {
		t.Fatalf("expected empty under/overflow, got %g and %g", h.Underflow().SumW(), h.Overflow().SumW())
	}
	if h.TotalDbn().SumW() != 5 || h.TotalDbn().NumEntries() != 2 {
		t.Fatalf("expected total sumW 5 over 2 entries, got %g over %d", h.TotalDbn().SumW(), h.TotalDbn().NumEntries())
	}
	mean, err := h.XMean(true)
	if err != nil || mean != (0.5*2+2.5*3)/5 {
		t.Fatalf("unexpected mean %g (err %v)", mean, err)
	}
}

func TestHisto1DOverflows(t *testing.T) {
	Convey("Given a histogram over [0, 3)", t, func() {
		h := mustHisto1D(t, "/h", 0, 1, 2, 3)

		Convey("fills outside go to the under and overflow", func() {
			So(h.Fill(-1, 1), ShouldBeNil)
			So(h.Fill(3, 2), ShouldBeNil)
			So(h.Fill(100, 1), ShouldBeNil)
			So(h.Underflow().SumW(), ShouldEqual, 1)
			So(h.Overflow().SumW(), ShouldEqual, 3)
			So(h.Integral(false), ShouldEqual, 0)
			So(h.Integral(true), ShouldEqual, 4)
		})
		Convey("NaN is rejected without touching the total", func() {
			So(h.Fill(math.NaN(), 1), ShouldHaveSameTypeAs, errors.Range(""))
			So(h.TotalDbn().NumEntries(), ShouldEqual, 0)
		})
		Convey("the total is the sum of bins and overflows", func() {
			for _, x := range []float64{-3, 0.1, 1.5, 1.7, 2.2, 9} {
				So(h.Fill(x, x*x), ShouldBeNil)
			}
			sum := h.Underflow().SumW() + h.Overflow().SumW() + h.Integral(false)
			So(math.Abs(sum-h.TotalDbn().SumW()), ShouldBeLessThan, 1e-12)
		})
	})
}

func TestHisto1DMergeKeepsIntegral(t *testing.T) {
	h, err := NewHisto1DLinear(10, 0, 10, "/lin", "")
	if err != nil {
		t.Fatalf("failed to create histogram: %s", err)
	}
	for i := 0; i < 100; i++ {
		if err := h.Fill(float64(i)/10, 1+float64(i%3)); err != nil {
			t.Fatalf("fill failed: %s", err)
		}
	}
	before := h.Integral(false)
	if err := h.MergeBins(2, 5); err != nil {
		t.Fatalf("merge failed: %s", err)
	}
	if h.NumBins() != 7 {
		t.Fatalf("expected 7 bins after merge, got %d", h.NumBins())
	}
	if err := h.Rebin(2); err != nil {
		t.Fatalf("rebin failed: %s", err)
	}
	if after := h.Integral(false); math.Abs(after-before) > 1e-9 {
		t.Fatalf("integral changed from %g to %g", before, after)
	}
}

func TestHisto1DScaling(t *testing.T) {
	Convey("Given a filled histogram", t, func() {
		h := mustHisto1D(t, "/h", 0, 1, 2, 3)
		So(h.Fill(0.5, 2), ShouldBeNil)
		So(h.Fill(1.5, 4), ShouldBeNil)

		Convey("scaling by f and 1/f restores the weights", func() {
			h.ScaleW(4)
			So(h.Integral(true), ShouldEqual, 24)
			h.ScaleW(0.25)
			So(binSumWs(h), ShouldResemble, []float64{2, 4, 0})
			v, ok := h.Annotation(ScaledByKey)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "1")
		})
		Convey("normalizing sets the integral", func() {
			So(h.Normalize(1, false), ShouldBeNil)
			So(math.Abs(h.Integral(false)-1), ShouldBeLessThan, 1e-12)
			v, _ := h.Annotation(ScaledByKey)
			So(v, ShouldEqual, "0.16666666666666666")
		})
		Convey("an empty histogram cannot be normalized", func() {
			h.Reset()
			So(h.Normalize(1, true), ShouldHaveSameTypeAs, errors.DegenerateStatistics(""))
		})
		Convey("adding drops the scale annotation", func() {
			h.ScaleW(2)
			o := mustHisto1D(t, "/h", 0, 1, 2, 3)
			So(h.Add(o), ShouldBeNil)
			_, ok := h.Annotation(ScaledByKey)
			So(ok, ShouldBeFalse)
		})
		Convey("bin heights are densities", func() {
			So(h.ScaleX(2), ShouldBeNil)
			height, err := h.BinHeight(0)
			So(err, ShouldBeNil)
			So(height, ShouldEqual, 1)
		})
	})
}

func TestHisto1DCombination(t *testing.T) {
	Convey("Given two histograms", t, func() {
		a := mustHisto1D(t, "/a", 0, 1, 2, 3)
		b := mustHisto1D(t, "/b", 0, 1, 2, 3)
		So(a.Fill(0.5, 3), ShouldBeNil)
		So(b.Fill(0.5, 1), ShouldBeNil)

		Convey("the sum is a new object without a common path", func() {
			c, err := AddHisto1D(a, b)
			So(err, ShouldBeNil)
			So(c.Path(), ShouldEqual, "")
			So(binSumWs(c), ShouldResemble, []float64{4, 0, 0})
			So(binSumWs(a), ShouldResemble, []float64{3, 0, 0})
		})
		Convey("the difference subtracts the weights", func() {
			c, err := SubtractHisto1D(a, b)
			So(err, ShouldBeNil)
			So(binSumWs(c), ShouldResemble, []float64{2, 0, 0})
			So(c.Bins()[0].Dbn().NumEntries(), ShouldEqual, 2)
		})
		Convey("different binnings are a mismatch", func() {
			d := mustHisto1D(t, "/d", 0, 1, 2, 4)
			_, err := AddHisto1D(a, d)
			So(err, ShouldHaveSameTypeAs, errors.BinningMismatch(""))
			So(a.Subtract(d), ShouldHaveSameTypeAs, errors.BinningMismatch(""))
		})
	})
}

func TestHisto1DIntegrals(t *testing.T) {
	h := mustHisto1D(t, "/h", 0, 1, 2, 3)
	h.Fill(-1, 1)
	h.Fill(0.5, 2)
	h.Fill(1.5, 3)
	h.Fill(2.5, 4)
	cases := []struct {
		to        int
		underflow bool
		exp       float64
	}{
		{0, false, 2},
		{1, false, 5},
		{2, false, 9},
		{2, true, 10},
	}
	for _, c := range cases {
		got, err := h.IntegralTo(c.to, c.underflow)
		if err != nil || got != c.exp {
			t.Fatalf("IntegralTo(%d, %t): expected %g, got %g (err %v)", c.to, c.underflow, c.exp, got, err)
		}
	}
	if _, err := h.IntegralRange(2, 1); err == nil {
		t.Fatalf("expected an error for a reversed range")
	}
}
