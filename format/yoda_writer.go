package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yodaproject/yoda/ao"
	"github.com/yodaproject/yoda/axis"
	"github.com/yodaproject/yoda/dbn"
	"github.com/yodaproject/yoda/errors"
)

// YODAWriter writes the native block format.
type YODAWriter struct {
	precision int
}

func NewYODAWriter() *YODAWriter {
	return &YODAWriter{precision: -1}
}

func (w *YODAWriter) SetPrecision(p int) {
	w.precision = p
}

func (w *YODAWriter) Write(out io.Writer, objs []ao.Object) error {
	bw := bufio.NewWriter(out)
	for _, o := range objs {
		if err := w.writeObject(bw, o); err != nil {
			return err
		}
		objectsWritten.Inc()
	}
	return bw.Flush()
}

// rowWriter accumulates tab separated rows with a shared float precision.
type rowWriter struct {
	w         *bufio.Writer
	precision int
	fields    []string
}

func (r *rowWriter) float(vals ...float64) *rowWriter {
	for _, v := range vals {
		r.fields = append(r.fields, strconv.FormatFloat(v, 'e', r.precision, 64))
	}
	return r
}

func (r *rowWriter) count(n uint64) *rowWriter {
	r.fields = append(r.fields, strconv.FormatUint(n, 10))
	return r
}

func (r *rowWriter) label(l ...string) *rowWriter {
	r.fields = append(r.fields, l...)
	return r
}

func (r *rowWriter) dbn1D(d *dbn.Dbn1D) *rowWriter {
	return r.float(d.SumW(), d.SumW2(), d.SumWX(), d.SumWX2()).count(d.NumEntries())
}

func (r *rowWriter) dbn2D(d *dbn.Dbn2D) *rowWriter {
	return r.float(d.SumW(), d.SumW2(), d.SumWX(), d.SumWX2(), d.SumWY(), d.SumWY2(), d.SumWXY()).count(d.NumEntries())
}

func (r *rowWriter) dbn3D(d *dbn.Dbn3D) *rowWriter {
	return r.float(d.SumW(), d.SumW2(), d.SumWX(), d.SumWX2(), d.SumWY(), d.SumWY2(),
		d.SumWZ(), d.SumWZ2(), d.SumWXY(), d.SumWXZ(), d.SumWYZ()).count(d.NumEntries())
}

func (r *rowWriter) end() {
	r.w.WriteString(strings.Join(r.fields, "\t"))
	r.w.WriteByte('\n')
	r.fields = r.fields[:0]
}

// writeHeader writes the BEGIN marker and the identity and annotation lines.
func writeHeader(w *bufio.Writer, block string, o ao.Object) {
	fmt.Fprintf(w, "# BEGIN %s %s\n", block, o.Path())
	fmt.Fprintf(w, "Path=%s\n", o.Path())
	fmt.Fprintf(w, "Title=%s\n", o.Title())
	fmt.Fprintf(w, "Type=%s\n", o.Type())
	for _, k := range o.AnnotationKeys() {
		switch k {
		case "Path", "Title", "Type":
			continue
		}
		v, _ := o.Annotation(k)
		fmt.Fprintf(w, "%s=%s\n", k, v)
	}
}

func writeFooter(w *bufio.Writer, block string) {
	fmt.Fprintf(w, "# END %s\n\n", block)
}

func (w *YODAWriter) writeObject(bw *bufio.Writer, o ao.Object) error {
	rw := &rowWriter{w: bw, precision: w.precision}
	var block string
	switch v := o.(type) {
	case *ao.Histo1D:
		block = blockNames[blockHisto1D]
		writeHeader(bw, block, o)
		bw.WriteString("# xlow\t xhigh\t sumw\t sumw2\t sumwx\t sumwx2\t numEntries\n")
		rw.label("Total", "Total").dbn1D(v.TotalDbn()).end()
		rw.label("Underflow", "Underflow").dbn1D(v.Underflow()).end()
		rw.label("Overflow", "Overflow").dbn1D(v.Overflow()).end()
		bins := v.Bins()
		for i := range bins {
			b := &bins[i]
			rw.float(b.XMin(), b.XMax()).dbn1D(b.Dbn()).end()
		}
	case *ao.Profile1D:
		block = blockNames[blockProfile1D]
		writeHeader(bw, block, o)
		bw.WriteString("# xlow\t xhigh\t sumw\t sumw2\t sumwx\t sumwx2\t sumwy\t sumwy2\t sumwxy\t numEntries\n")
		rw.label("Total", "Total").dbn2D(v.TotalDbn()).end()
		rw.label("Underflow", "Underflow").dbn2D(v.Underflow()).end()
		rw.label("Overflow", "Overflow").dbn2D(v.Overflow()).end()
		bins := v.Bins()
		for i := range bins {
			b := &bins[i]
			rw.float(b.XMin(), b.XMax()).dbn2D(b.Dbn()).end()
		}
	case *ao.Histo2D:
		block = blockNames[blockHisto2D]
		writeHeader(bw, block, o)
		bw.WriteString("# xlow\t xhigh\t ylow\t yhigh\t sumw\t sumw2\t sumwx\t sumwx2\t sumwy\t sumwy2\t sumwxy\t numEntries\n")
		rw.label("Total", "Total").dbn2D(v.TotalDbn()).end()
		for i := 0; i < axis.NumOutflows; i++ {
			dx, dy, _ := axis.OutflowDirection(i)
			d, err := v.Outflow(dx, dy)
			if err != nil {
				return err
			}
			rw.label("Outflow", fmt.Sprintf("%d:%d", dx, dy)).dbn2D(d).end()
		}
		bins := v.Bins()
		for i := range bins {
			b := &bins[i]
			rw.float(b.XMin(), b.XMax(), b.YMin(), b.YMax()).dbn2D(b.Dbn()).end()
		}
	case *ao.Profile2D:
		block = blockNames[blockProfile2D]
		writeHeader(bw, block, o)
		bw.WriteString("# xlow\t xhigh\t ylow\t yhigh\t sumw\t sumw2\t sumwx\t sumwx2\t sumwy\t sumwy2\t sumwz\t sumwz2\t sumwxy\t sumwxz\t sumwyz\t numEntries\n")
		rw.label("Total", "Total").dbn3D(v.TotalDbn()).end()
		for i := 0; i < axis.NumOutflows; i++ {
			dx, dy, _ := axis.OutflowDirection(i)
			d, err := v.Outflow(dx, dy)
			if err != nil {
				return err
			}
			rw.label("Outflow", fmt.Sprintf("%d:%d", dx, dy)).dbn3D(d).end()
		}
		bins := v.Bins()
		for i := range bins {
			b := &bins[i]
			rw.float(b.XMin(), b.XMax(), b.YMin(), b.YMax()).dbn3D(b.Dbn()).end()
		}
	case *ao.Scatter1D:
		block = blockNames[blockScatter1D]
		writeHeader(bw, block, o)
		bw.WriteString("# xval\t xerr-\t xerr+\n")
		for _, p := range v.Points() {
			rw.float(p.X, p.XErrMinus, p.XErrPlus).end()
		}
	case *ao.Scatter2D:
		block = blockNames[blockScatter2D]
		writeHeader(bw, block, o)
		bw.WriteString("# xval\t xerr-\t xerr+\t yval\t yerr-\t yerr+\n")
		for _, p := range v.Points() {
			rw.float(p.X, p.XErrMinus, p.XErrPlus, p.Y, p.YErrMinus, p.YErrPlus).end()
		}
	case *ao.Scatter3D:
		block = blockNames[blockScatter3D]
		writeHeader(bw, block, o)
		bw.WriteString("# xval\t xerr-\t xerr+\t yval\t yerr-\t yerr+\t zval\t zerr-\t zerr+\n")
		for _, p := range v.Points() {
			rw.float(p.X, p.XErrMinus, p.XErrPlus, p.Y, p.YErrMinus, p.YErrPlus, p.Z, p.ZErrMinus, p.ZErrPlus).end()
		}
	default:
		return errors.NewFormatf("cannot write object of type %s", o.Type())
	}
	writeFooter(bw, block)
	return nil
}
