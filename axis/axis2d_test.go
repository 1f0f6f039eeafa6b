package axis

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/yodaproject/yoda/bin"
	"github.com/yodaproject/yoda/dbn"
	"github.com/yodaproject/yoda/errors"
)

type axis2D = Axis2D[dbn.Dbn2D, *dbn.Dbn2D]
type bin2D = bin.Bin2D[dbn.Dbn2D, *dbn.Dbn2D]

func mustBin2D(t *testing.T, xlo, xhi, ylo, yhi float64) bin2D {
	b, err := bin.NewBin2D[dbn.Dbn2D](xlo, xhi, ylo, yhi)
	if err != nil {
		t.Fatalf("failed to create bin: %s", err)
	}
	return b
}

func mustGrid(t *testing.T) *axis2D {
	a, err := NewAxis2D[dbn.Dbn2D]([]float64{0, 1, 2, 3}, []float64{0, 1, 2})
	if err != nil {
		t.Fatalf("failed to create grid: %s", err)
	}
	return a
}

func TestOutflowIndex(t *testing.T) {
	seen := make(map[int]bool)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			i, err := OutflowIndex(dx, dy)
			if dx == 0 && dy == 0 {
				if _, ok := err.(errors.Range); !ok {
					t.Fatalf("expected a Range error for (0, 0), got %v", err)
				}
				continue
			}
			if err != nil {
				t.Fatalf("(%d, %d): unexpected error %s", dx, dy, err)
			}
			if i < 0 || i >= NumOutflows || seen[i] {
				t.Fatalf("(%d, %d): index %d invalid or reused", dx, dy, i)
			}
			seen[i] = true
			gx, gy, err := OutflowDirection(i)
			if err != nil || gx != dx || gy != dy {
				t.Fatalf("index %d: expected direction (%d, %d), got (%d, %d) (err %v)", i, dx, dy, gx, gy, err)
			}
		}
	}
	if _, err := OutflowIndex(2, 0); err == nil {
		t.Fatalf("expected an error for direction (2, 0)")
	}
	if _, _, err := OutflowDirection(NumOutflows); err == nil {
		t.Fatalf("expected an error for index %d", NumOutflows)
	}
}

func TestAxis2DLookup(t *testing.T) {
	Convey("Given a 3x2 grid", t, func() {
		a := mustGrid(t)
		So(a.NumBins(), ShouldEqual, 6)
		So(a.NumBinsX(), ShouldEqual, 3)
		So(a.NumBinsY(), ShouldEqual, 2)
		So(a.IsGrid(), ShouldBeTrue)

		Convey("lookups follow the half-open edges", func() {
			b, err := a.BinAt(1, 1.5)
			So(err, ShouldBeNil)
			So(b.XMin(), ShouldEqual, 1)
			So(b.YMin(), ShouldEqual, 1)
		})
		Convey("points outside give a Range error and a direction", func() {
			_, err := a.BinIndex(3, 0.5)
			So(err, ShouldHaveSameTypeAs, errors.Range(""))
			dx, dy := a.Direction(3, 0.5)
			So(dx, ShouldEqual, 1)
			So(dy, ShouldEqual, 0)
			dx, dy = a.Direction(-1, -1)
			So(dx, ShouldEqual, -1)
			So(dy, ShouldEqual, -1)
		})
		Convey("opposite outflows are distinct accumulators", func() {
			right, err := a.Outflow(1, 0)
			So(err, ShouldBeNil)
			left, err := a.Outflow(-1, 0)
			So(err, ShouldBeNil)
			right.Fill(5, 0.5, 1)
			So(right.SumW(), ShouldEqual, 1)
			So(left.SumW(), ShouldEqual, 0)
			_, err = a.Outflow(0, 0)
			So(err, ShouldHaveSameTypeAs, errors.Range(""))
		})
		Convey("an erased bin leaves a gap", func() {
			i, err := a.BinIndex(1.5, 0.5)
			So(err, ShouldBeNil)
			So(a.EraseBin(i), ShouldBeNil)
			So(a.NumBins(), ShouldEqual, 5)
			So(a.IsGrid(), ShouldBeFalse)
			_, err = a.BinIndex(1.5, 0.5)
			So(err, ShouldEqual, errors.ErrNoBin)
			So(a.Rebin(2, 1), ShouldHaveSameTypeAs, errors.Grid(""))
		})
	})
}

func TestAxis2DBins(t *testing.T) {
	Convey("Given an irregular set of bins", t, func() {
		a, err := NewAxis2DFromBins([]bin2D{
			mustBin2D(t, 0, 2, 0, 1),
			mustBin2D(t, 0, 1, 1, 2),
			mustBin2D(t, 1, 2, 1, 2),
		})
		So(err, ShouldBeNil)
		So(a.NumBins(), ShouldEqual, 3)
		So(a.IsGrid(), ShouldBeFalse)

		Convey("a wide bin covers both of its cells", func() {
			i0, err := a.BinIndex(0.5, 0.5)
			So(err, ShouldBeNil)
			i1, err := a.BinIndex(1.5, 0.5)
			So(err, ShouldBeNil)
			So(i0, ShouldEqual, i1)
		})
		Convey("an overlapping bin is rejected and the axis is unchanged", func() {
			err := a.AddBin(1.5, 3, 0.5, 1.5)
			So(err, ShouldHaveSameTypeAs, errors.Grid(""))
			So(a.NumBins(), ShouldEqual, 3)
		})
		Convey("a bin next to the range extends it", func() {
			So(a.AddBin(2, 3, 0, 2), ShouldBeNil)
			So(a.XMax(), ShouldEqual, 3)
			So(a.NumBins(), ShouldEqual, 4)
		})
		Convey("a merge rectangle crossed by a bin is rejected", func() {
			// lower-left of the upper-left bin to the upper-right of the upper-right bin is fine
			from, _ := a.BinIndex(0.5, 1.5)
			to, _ := a.BinIndex(1.5, 1.5)
			So(a.MergeBins(from, to), ShouldBeNil)
			So(a.NumBins(), ShouldEqual, 2)

			b, err := NewAxis2DFromBins([]bin2D{
				mustBin2D(t, 0, 2, 0, 1),
				mustBin2D(t, 0, 1, 1, 2),
				mustBin2D(t, 1, 2, 1, 2),
			})
			So(err, ShouldBeNil)
			// the wide bottom bin sticks out of [0, 1) x [0, 2)
			from, _ = b.BinIndex(0.5, 0.5)
			to, _ = b.BinIndex(0.5, 1.5)
			So(b.MergeBins(from, to), ShouldHaveSameTypeAs, errors.Grid(""))
			So(b.NumBins(), ShouldEqual, 3)
		})
	})
}

func TestAxis2DMergeAndRebin(t *testing.T) {
	Convey("Given a filled 3x2 grid", t, func() {
		a := mustGrid(t)
		for i := range a.bins {
			x, y := a.bins[i].Midpoint()
			a.bins[i].Dbn().Fill(x, y, 1)
		}

		Convey("merging a 2x2 block sums four bins", func() {
			from, _ := a.BinIndex(0.5, 0.5)
			to, _ := a.BinIndex(1.5, 1.5)
			So(a.MergeBins(from, to), ShouldBeNil)
			So(a.NumBins(), ShouldEqual, 3)
			b, err := a.BinAt(0.1, 1.9)
			So(err, ShouldBeNil)
			So(b.Dbn().SumW(), ShouldEqual, 4)
			So(b.Area(), ShouldEqual, 4)
		})
		Convey("a rebinned grid keeps the total weight", func() {
			So(a.Rebin(2, 2), ShouldBeNil)
			So(a.NumBins(), ShouldEqual, 2)
			So(a.IsGrid(), ShouldBeTrue)
			sum := 0.0
			for i := range a.bins {
				sum += a.bins[i].Dbn().SumW()
			}
			So(sum, ShouldEqual, 6)
		})
		Convey("scaling rebuilds the index", func() {
			So(a.ScaleXY(2, 10), ShouldBeNil)
			So(a.XEdges(), ShouldResemble, []float64{0, 2, 4, 6})
			So(a.YEdges(), ShouldResemble, []float64{0, 10, 20})
			_, err := a.BinAt(5, 15)
			So(err, ShouldBeNil)
		})
	})
}

func TestAxis2DSameBinning(t *testing.T) {
	Convey("Given the same bins in a different order", t, func() {
		a, err := NewAxis2DFromBins([]bin2D{mustBin2D(t, 0, 1, 0, 1), mustBin2D(t, 1, 2, 0, 1)})
		So(err, ShouldBeNil)
		b, err := NewAxis2DFromBins([]bin2D{mustBin2D(t, 1, 2, 0, 1), mustBin2D(t, 0, 1, 0, 1)})
		So(err, ShouldBeNil)
		So(a.SameBinning(b), ShouldBeTrue)
		So(a.Add(b), ShouldBeNil)

		Convey("a different rectangle is a mismatch", func() {
			c, err := NewAxis2DFromBins([]bin2D{mustBin2D(t, 0, 1, 0, 1), mustBin2D(t, 1, 3, 0, 1)})
			So(err, ShouldBeNil)
			So(a.SameBinning(c), ShouldBeFalse)
			So(a.Subtract(c), ShouldHaveSameTypeAs, errors.BinningMismatch(""))
		})
	})
}
