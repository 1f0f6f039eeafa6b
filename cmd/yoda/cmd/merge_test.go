package cmd

import (
	stderrors "errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/yodaproject/yoda/ao"
	"github.com/yodaproject/yoda/errors"
	"github.com/yodaproject/yoda/format"
)

func histo(t *testing.T, path string, edges []float64, fills ...float64) *ao.Histo1D {
	h, err := ao.NewHisto1D(edges, path, "")
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range fills {
		h.Fill(x, 1)
	}
	return h
}

func paths(objs []ao.Object) []string {
	var out []string
	for _, o := range objs {
		out = append(out, o.Path())
	}
	return out
}

func TestMergeObjects(t *testing.T) {
	Convey("When merging objects from several files", t, func() {
		edges := []float64{0, 1, 2}
		s1 := ao.NewScatter2D("/x/s", "")
		s1.AddPoint(ao.Point2D{X: 1, Y: 1})
		s2 := ao.NewScatter2D("/x/s", "")
		s2.AddPoint(ao.Point2D{X: 2, Y: 2})

		a := []ao.Object{histo(t, "/x/h10", edges, 0.5), histo(t, "/x/h1", edges, 0.5), s1}
		b := []ao.Object{histo(t, "/x/h1", edges, 1.5, 1.5), histo(t, "/x/h2", edges), s2}

		merged, err := mergeObjects([][]ao.Object{a, b})
		So(err, ShouldBeNil)

		Convey("objects are ordered by natural path order", func() {
			So(paths(merged), ShouldResemble, []string{"/x/h1", "/x/h2", "/x/h10", "/x/s"})
		})
		Convey("histograms with the same path are added", func() {
			h := merged[0].(*ao.Histo1D)
			So(h.NumEntries(true), ShouldEqual, 3)
			bins := h.Bins()
			So(bins[0].Dbn().SumW(), ShouldEqual, 1)
			So(bins[1].Dbn().SumW(), ShouldEqual, 2)
		})
		Convey("point sets with the same path are combined", func() {
			s := merged[3].(*ao.Scatter2D)
			So(s.NumPoints(), ShouldEqual, 2)
		})
	})
}

func TestMergeMismatch(t *testing.T) {
	a := []ao.Object{histo(t, "/h", []float64{0, 1, 2})}
	b := []ao.Object{histo(t, "/h", []float64{0, 2})}
	_, err := mergeObjects([][]ao.Object{a, b})
	var mismatch errors.BinningMismatch
	if !stderrors.As(err, &mismatch) {
		t.Fatalf("expected a binning mismatch, got %v", err)
	}
}

func TestReadAll(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i, name := range []string{"a.yoda", "b.yoda.gz", "c.dat"} {
		path := filepath.Join(dir, name)
		h := histo(t, "/h", []float64{0, 1}, 0.5)
		h.SetTitle(name)
		if err := format.WriteFile(path, []ao.Object{h}, -1); err != nil {
			t.Fatalf("case %d: write failed: %s", i, err)
		}
		files = append(files, path)
	}
	sets, err := readAll(files, 2)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	var titles []string
	for _, s := range sets {
		for _, o := range s {
			titles = append(titles, o.Title())
		}
	}
	if diff := cmp.Diff([]string{"a.yoda", "b.yoda.gz", "c.dat"}, titles); diff != "" {
		t.Fatalf("results out of order (-want +got):\n%s", diff)
	}

	if _, err := readAll(append(files, filepath.Join(dir, "missing.yoda")), 0); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
