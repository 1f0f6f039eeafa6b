package format

import (
	"bufio"
	"io"

	"github.com/yodaproject/yoda/ao"
	"github.com/yodaproject/yoda/errors"
)

// The flat format writes every object as a table of points:
//
//	VALUE    val errminus errplus
//	HISTO1D  xlow xhigh val errminus errplus
//	HISTO2D  xlow xhigh ylow yhigh val errminus errplus
//
// Binned objects are converted to point sets first, so reading a flat file
// gives scatters. Points are placed at the centre of their x (and y) range.
var flatBlocks = map[string]blockType{
	"VALUE":   blockScatter1D,
	"HISTO1D": blockScatter2D,
	"HISTO2D": blockScatter3D,
}

var flatNames = map[blockType]string{
	blockScatter1D: "VALUE",
	blockScatter2D: "HISTO1D",
	blockScatter3D: "HISTO2D",
}

// FlatReader reads the flat table format.
type FlatReader struct{}

func NewFlatReader() *FlatReader {
	return &FlatReader{}
}

func (r *FlatReader) Read(rd io.Reader) ([]ao.Object, error) {
	return readBlocks(rd, flatBlocks, true)
}

func (s *parserState) parseFlatRow(fields []string) error {
	st := &s.stage
	switch s.context {
	case blockScatter1D:
		if len(fields) != 3 {
			return wrongFieldCount(len(fields), 3)
		}
		v, err := parseFloats(fields)
		if err != nil {
			return err
		}
		st.points1D = append(st.points1D, ao.Point1D{X: v[0], XErrMinus: v[1], XErrPlus: v[2]})
	case blockScatter2D:
		if len(fields) != 5 {
			return wrongFieldCount(len(fields), 5)
		}
		v, err := parseFloats(fields)
		if err != nil {
			return err
		}
		x, ex := centre(v[0], v[1])
		st.points2D = append(st.points2D, ao.Point2D{
			X: x, XErrMinus: ex, XErrPlus: ex,
			Y: v[2], YErrMinus: v[3], YErrPlus: v[4],
		})
	case blockScatter3D:
		if len(fields) != 7 {
			return wrongFieldCount(len(fields), 7)
		}
		v, err := parseFloats(fields)
		if err != nil {
			return err
		}
		x, ex := centre(v[0], v[1])
		y, ey := centre(v[2], v[3])
		st.points3D = append(st.points3D, ao.Point3D{
			X: x, XErrMinus: ex, XErrPlus: ex,
			Y: y, YErrMinus: ey, YErrPlus: ey,
			Z: v[4], ZErrMinus: v[5], ZErrPlus: v[6],
		})
	}
	return nil
}

func centre(lo, hi float64) (float64, float64) {
	return (lo + hi) / 2, (hi - lo) / 2
}

// FlatWriter writes the flat table format.
type FlatWriter struct {
	precision int
}

func NewFlatWriter() *FlatWriter {
	return &FlatWriter{precision: 6}
}

func (w *FlatWriter) SetPrecision(p int) {
	w.precision = p
}

// asScatter converts binned objects to the point set the flat and AIDA formats hold.
func asScatter(o ao.Object) (ao.Object, error) {
	switch v := o.(type) {
	case *ao.Histo1D:
		return ao.MkScatter(v), nil
	case *ao.Profile1D:
		return ao.MkScatterProfile(v), nil
	case *ao.Histo2D:
		return ao.MkScatter2D(v), nil
	case *ao.Profile2D:
		return ao.MkScatterProfile2D(v), nil
	case *ao.Scatter1D, *ao.Scatter2D, *ao.Scatter3D:
		return o, nil
	}
	return nil, errors.NewFormatf("cannot convert object of type %s to points", o.Type())
}

func (w *FlatWriter) Write(out io.Writer, objs []ao.Object) error {
	bw := bufio.NewWriter(out)
	for _, o := range objs {
		sc, err := asScatter(o)
		if err != nil {
			return err
		}
		if err := w.writeObject(bw, o, sc); err != nil {
			return err
		}
		objectsWritten.Inc()
	}
	return bw.Flush()
}

// writeObject writes the points of sc under the identity of the original object o.
func (w *FlatWriter) writeObject(bw *bufio.Writer, o, sc ao.Object) error {
	rw := &rowWriter{w: bw, precision: w.precision}
	var block string
	switch v := sc.(type) {
	case *ao.Scatter1D:
		block = flatNames[blockScatter1D]
		writeHeader(bw, block, o)
		bw.WriteString("# val\t errminus\t errplus\n")
		for _, p := range v.Points() {
			rw.float(p.X, p.XErrMinus, p.XErrPlus).end()
		}
	case *ao.Scatter2D:
		block = flatNames[blockScatter2D]
		writeHeader(bw, block, o)
		bw.WriteString("# xlow\t xhigh\t val\t errminus\t errplus\n")
		for _, p := range v.Points() {
			rw.float(p.XMin(), p.XMax(), p.Y, p.YErrMinus, p.YErrPlus).end()
		}
	case *ao.Scatter3D:
		block = flatNames[blockScatter3D]
		writeHeader(bw, block, o)
		bw.WriteString("# xlow\t xhigh\t ylow\t yhigh\t val\t errminus\t errplus\n")
		for _, p := range v.Points() {
			rw.float(p.XMin(), p.XMax(), p.YMin(), p.YMax(), p.Z, p.ZErrMinus, p.ZErrPlus).end()
		}
	default:
		return errors.NewFormatf("cannot write object of type %s", o.Type())
	}
	writeFooter(bw, block)
	return nil
}
