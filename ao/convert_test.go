package ao

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/yodaproject/yoda/errors"
)

func filledHisto1D(t *testing.T, path string, weights ...float64) *Histo1D {
	h := mustHisto1D(t, path, 0, 1, 2, 3)
	for i, w := range weights {
		if w == 0 {
			continue
		}
		if err := h.FillBin(i, w); err != nil {
			t.Fatalf("fill failed: %s", err)
		}
	}
	return h
}

func TestMkScatter(t *testing.T) {
	h, err := NewHisto1D([]float64{0, 2, 3}, "/h", "title")
	if err != nil {
		t.Fatalf("failed to create histogram: %s", err)
	}
	h.SetAnnotation("Unit", "GeV")
	h.Fill(1, 4)
	s := MkScatter(h)
	if s.Path() != "/h" || s.Title() != "title" {
		t.Fatalf("identity not carried over: %q %q", s.Path(), s.Title())
	}
	if v, _ := s.Annotation("Unit"); v != "GeV" {
		t.Fatalf("expected annotation to be carried over, got %q", v)
	}
	p, err := s.Point(0)
	if err != nil {
		t.Fatalf("missing point: %s", err)
	}
	exp := Point2D{X: 1, XErrMinus: 1, XErrPlus: 1, Y: 2, YErrMinus: 2, YErrPlus: 2}
	if p != exp {
		t.Fatalf("expected %+v, got %+v", exp, p)
	}
}

func TestDivide(t *testing.T) {
	Convey("Given a numerator and a denominator", t, func() {
		num := filledHisto1D(t, "/num", 2, 0, 3)
		den := filledHisto1D(t, "/den", 4, 1, 0)

		Convey("the ratio is taken bin by bin", func() {
			s, err := Divide(num, den)
			So(err, ShouldBeNil)
			So(s.NumPoints(), ShouldEqual, 3)
			p0, _ := s.Point(0)
			So(p0.Y, ShouldEqual, 0.5)
			So(p0.YErrMinus, ShouldAlmostEqual, 0.5*math.Sqrt(4.0/4+16.0/16), 1e-12)
		})
		Convey("an empty numerator bin takes its error from the numerator", func() {
			s, _ := Divide(num, den)
			p1, _ := s.Point(1)
			So(p1.Y, ShouldEqual, 0)
			So(p1.YErrMinus, ShouldEqual, 0)
		})
		Convey("an empty denominator bin gives NaN", func() {
			s, _ := Divide(num, den)
			p2, _ := s.Point(2)
			So(math.IsNaN(p2.Y), ShouldBeTrue)
		})
		Convey("different binnings are a mismatch", func() {
			other := mustHisto1D(t, "/o", 0, 1, 2, 4)
			_, err := Divide(num, other)
			So(err, ShouldHaveSameTypeAs, errors.BinningMismatch(""))
		})
	})
}

func TestEfficiency(t *testing.T) {
	Convey("Given accepted and total counts", t, func() {
		acc := mustHisto1D(t, "/acc", 0, 1, 2, 3)
		tot := mustHisto1D(t, "/tot", 0, 1, 2, 3)
		for i := 0; i < 4; i++ {
			tot.Fill(0.5, 1)
			tot.Fill(1.5, 1)
		}
		acc.Fill(0.5, 1)
		for i := 0; i < 4; i++ {
			acc.Fill(1.5, 1)
		}

		Convey("the efficiency has a binomial error", func() {
			s, err := Efficiency(acc, tot)
			So(err, ShouldBeNil)
			p0, _ := s.Point(0)
			So(p0.Y, ShouldEqual, 0.25)
			So(p0.YErrMinus, ShouldAlmostEqual, math.Sqrt(0.25*0.75/4), 1e-12)
			p1, _ := s.Point(1)
			So(p1.Y, ShouldEqual, 1)
			So(p1.YErrMinus, ShouldEqual, 0)
			p2, _ := s.Point(2)
			So(math.IsNaN(p2.Y), ShouldBeTrue)
		})
		Convey("more accepted than total is a Range error", func() {
			acc.Fill(0.5, 10)
			_, err := Efficiency(acc, tot)
			So(err, ShouldHaveSameTypeAs, errors.Range(""))
		})
	})
}

func TestAsymm(t *testing.T) {
	a := filledHisto1D(t, "/a", 3, 1, 0)
	b := filledHisto1D(t, "/b", 1, 1, 0)
	s, err := Asymm(a, b)
	if err != nil {
		t.Fatalf("asymmetry failed: %s", err)
	}
	exp := []float64{0.5, 0}
	for i, e := range exp {
		p, _ := s.Point(i)
		if p.Y != e {
			t.Fatalf("point %d: expected %g, got %g", i, e, p.Y)
		}
	}
}

func TestIntegralHisto(t *testing.T) {
	Convey("Given a histogram with underflow", t, func() {
		h := filledHisto1D(t, "/h", 1, 2, 3)
		So(h.Fill(-1, 4), ShouldBeNil)
		So(h.Fill(10, 2), ShouldBeNil)

		Convey("the running integral accumulates", func() {
			s := ToIntegralHisto(h, false)
			last, _ := s.Point(2)
			So(last.Y, ShouldEqual, 6)
			So(last.YErrMinus, ShouldAlmostEqual, math.Sqrt(6), 1e-12)
			s = ToIntegralHisto(h, true)
			first, _ := s.Point(0)
			So(first.Y, ShouldEqual, 5)
		})
		Convey("the integral efficiency ends at the covered fraction", func() {
			s, err := ToIntegralEfficiencyHisto(h, true, true)
			So(err, ShouldBeNil)
			last, _ := s.Point(2)
			So(last.Y, ShouldAlmostEqual, 10.0/12, 1e-12)
			s, err = ToIntegralEfficiencyHisto(h, true, false)
			So(err, ShouldBeNil)
			last, _ = s.Point(2)
			So(last.Y, ShouldEqual, 1)
		})
		Convey("an empty histogram has no integral efficiency", func() {
			h.Reset()
			_, err := ToIntegralEfficiencyHisto(h, true, true)
			So(err, ShouldHaveSameTypeAs, errors.DegenerateStatistics(""))
		})
	})
}

func TestDivide2D(t *testing.T) {
	num, _ := NewHisto2DLinear(2, 0, 2, 1, 0, 1, "/n", "")
	den, _ := NewHisto2DLinear(2, 0, 2, 1, 0, 1, "/d", "")
	num.Fill(0.5, 0.5, 1)
	den.Fill(0.5, 0.5, 4)
	s, err := Divide2D(num, den)
	if err != nil {
		t.Fatalf("divide failed: %s", err)
	}
	p, _ := s.Point(0)
	if p.Z != 0.25 {
		t.Fatalf("expected ratio 0.25, got %g", p.Z)
	}
	p, _ = s.Point(1)
	if !math.IsNaN(p.Z) {
		t.Fatalf("expected NaN for an empty denominator, got %g", p.Z)
	}
}
