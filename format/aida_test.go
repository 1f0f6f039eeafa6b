package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yodaproject/yoda/ao"
	"github.com/yodaproject/yoda/errors"
)

func TestAIDARoundTrip(t *testing.T) {
	s := ao.NewScatter2D("/a/s", "S")
	s.AddPoint(ao.Point2D{X: 1, XErrMinus: 0.5, XErrPlus: 0.5, Y: 0.1 + 0.2, YErrMinus: 0.1, YErrPlus: 0.2})
	s.SetAnnotation("Note", "x")

	h, err := ao.NewHisto1D([]float64{0, 2}, "/top", "")
	if err != nil {
		t.Fatal(err)
	}
	h.Fill(1, 4)

	var buf bytes.Buffer
	if err := NewAIDAWriter().Write(&buf, []ao.Object{s, h}); err != nil {
		t.Fatalf("unexpected write error: %s", err)
	}
	objs, err := NewAIDAReader().Read(&buf)
	if err != nil {
		t.Fatalf("unexpected read error: %s", err)
	}
	if len(objs) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(objs))
	}

	got := objs[0].(*ao.Scatter2D)
	if got.Path() != "/a/s" || got.Title() != "S" {
		t.Fatalf("unexpected identity path=%q title=%q", got.Path(), got.Title())
	}
	if diff := cmp.Diff(s.Points(), got.Points()); diff != "" {
		t.Fatalf("points mismatch (-want +got):\n%s", diff)
	}
	if v, _ := got.Annotation("Note"); v != "x" {
		t.Fatalf("expected annotation Note=x, got %q", v)
	}

	fromHisto := objs[1].(*ao.Scatter2D)
	if fromHisto.Path() != "/top" {
		t.Fatalf("expected path /top, got %q", fromHisto.Path())
	}
	exp := []ao.Point2D{{X: 1, XErrMinus: 1, XErrPlus: 1, Y: 2, YErrMinus: 2, YErrPlus: 2}}
	if diff := cmp.Diff(exp, fromHisto.Points()); diff != "" {
		t.Fatalf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestAIDAReadLatin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\" ?>\n" + aidaDoctype + "\n" +
		"<aida version=\"3.3\">\n" +
		"  <dataPointSet name=\"d01\" dimension=\"2\" path=\"/REF\" title=\"caf\xe9\">\n" +
		"    <dataPoint>\n" +
		"      <measurement value=\"1\" errorPlus=\"0.5\" errorMinus=\"0.5\"/>\n" +
		"      <measurement value=\"3\" errorPlus=\"1\" errorMinus=\"1\"/>\n" +
		"    </dataPoint>\n" +
		"  </dataPointSet>\n" +
		"  <dataPointSet name=\"bad\" dimension=\"2\" path=\"/REF\">\n" +
		"    <dataPoint><measurement value=\"1\"/></dataPoint>\n" +
		"  </dataPointSet>\n" +
		"</aida>\n"

	objs, err := NewAIDAReader().Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected read error: %s", err)
	}
	if len(objs) != 1 {
		t.Fatalf("expected the malformed set to be dropped, got %d objects", len(objs))
	}
	s := objs[0].(*ao.Scatter2D)
	if s.Path() != "/REF/d01" || s.Title() != "café" {
		t.Fatalf("unexpected identity path=%q title=%q", s.Path(), s.Title())
	}
	exp := []ao.Point2D{{X: 1, XErrMinus: 0.5, XErrPlus: 0.5, Y: 3, YErrMinus: 1, YErrPlus: 1}}
	if diff := cmp.Diff(exp, s.Points()); diff != "" {
		t.Fatalf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestAIDAReadDimensions(t *testing.T) {
	doc := "<aida version=\"3.3\">\n" +
		"  <dataPointSet name=\"empty\" dimension=\"2\" path=\"/REF\"></dataPointSet>\n" +
		"  <dataPointSet name=\"d3\" dimension=\"3\" path=\"/REF\">\n" +
		"    <dataPoint>\n" +
		"      <measurement value=\"1\"/><measurement value=\"2\"/><measurement value=\"3\" errorPlus=\"0.5\" errorMinus=\"0.25\"/>\n" +
		"    </dataPoint>\n" +
		"  </dataPointSet>\n" +
		"</aida>\n"
	objs, err := NewAIDAReader().Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected read error: %s", err)
	}
	if len(objs) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(objs))
	}
	empty, ok := objs[0].(*ao.Scatter2D)
	if !ok || empty.NumPoints() != 0 || empty.Path() != "/REF/empty" {
		t.Fatalf("expected an empty Scatter2D at /REF/empty, got %T %+v", objs[0], objs[0])
	}
	s3, ok := objs[1].(*ao.Scatter3D)
	if !ok {
		t.Fatalf("expected a *ao.Scatter3D, got %T", objs[1])
	}
	exp := []ao.Point3D{{X: 1, Y: 2, Z: 3, ZErrMinus: 0.25, ZErrPlus: 0.5}}
	if diff := cmp.Diff(exp, s3.Points()); diff != "" {
		t.Fatalf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestAIDAReadBroken(t *testing.T) {
	_, err := NewAIDAReader().Read(strings.NewReader("<aida><dataPointSet>"))
	if _, ok := err.(errors.Format); !ok {
		t.Fatalf("expected a format error, got %v", err)
	}
}

func TestSplitAIDAPath(t *testing.T) {
	cases := []struct {
		path, dir, name string
	}{
		{"/a/b/c", "/a/b", "c"},
		{"/top", "/", "top"},
		{"bare", "", "bare"},
	}
	for _, c := range cases {
		dir, name := splitAIDAPath(c.path)
		if dir != c.dir || name != c.name {
			t.Fatalf("%q: expected (%q, %q), got (%q, %q)", c.path, c.dir, c.name, dir, name)
		}
		if got := joinAIDAPath(dir, name); got != c.path {
			t.Fatalf("%q: join gave %q", c.path, got)
		}
	}
}
