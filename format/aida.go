package format

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/yodaproject/yoda/ao"
	"github.com/yodaproject/yoda/errors"
	"golang.org/x/text/encoding/charmap"
)

const aidaDoctype = `<!DOCTYPE aida SYSTEM "http://aida.freehep.org/schemas/3.3/aida.dtd">`

// AIDA holds binned objects only as point sets: <dataPointSet> elements
// with one <measurement> per dimension in each <dataPoint>.
type aidaDoc struct {
	XMLName        xml.Name            `xml:"aida"`
	Version        string              `xml:"version,attr"`
	Implementation *aidaImplementation `xml:"implementation"`
	Sets           []aidaDataPointSet  `xml:"dataPointSet"`
}

type aidaImplementation struct {
	Package string `xml:"package,attr"`
	Version string `xml:"version,attr"`
}

type aidaDataPointSet struct {
	Name       string          `xml:"name,attr"`
	Dimension  int             `xml:"dimension,attr"`
	Path       string          `xml:"path,attr"`
	Title      string          `xml:"title,attr"`
	Annotation *aidaAnnotation `xml:"annotation"`
	Points     []aidaDataPoint `xml:"dataPoint"`
}

type aidaAnnotation struct {
	Items []aidaItem `xml:"item"`
}

type aidaItem struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}

type aidaDataPoint struct {
	Measurements []aidaMeasurement `xml:"measurement"`
}

type aidaMeasurement struct {
	Value      string `xml:"value,attr"`
	ErrorPlus  string `xml:"errorPlus,attr"`
	ErrorMinus string `xml:"errorMinus,attr"`
}

// charsetReader lets the decoder accept the latin-1 documents legacy tools write.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	case "us-ascii", "ascii":
		return input, nil
	}
	return nil, fmt.Errorf("unsupported charset %q", label)
}

// joinAIDAPath builds an object path from the directory and name attributes.
func joinAIDAPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return strings.TrimSuffix(dir, "/") + "/" + name
}

// splitAIDAPath is the inverse of joinAIDAPath.
func splitAIDAPath(path string) (string, string) {
	i := strings.LastIndex(path, "/")
	switch {
	case i == -1:
		return "", path
	case i == 0:
		return "/", path[1:]
	}
	return path[:i], path[i+1:]
}

// AIDAReader reads the AIDA XML format. Each dataPointSet becomes a scatter
// of its dimension.
type AIDAReader struct{}

func NewAIDAReader() *AIDAReader {
	return &AIDAReader{}
}

func (r *AIDAReader) Read(rd io.Reader) ([]ao.Object, error) {
	defer track()()

	dec := xml.NewDecoder(rd)
	dec.CharsetReader = charsetReader
	var doc aidaDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.NewFormatf("failed to parse AIDA document: %s", err)
	}

	var objs []ao.Object
	for _, set := range doc.Sets {
		obj, err := set.toObject()
		if err != nil {
			objectsDropped.Inc()
			log.WithFields(log.Fields{"name": set.Name, "err": err}).Warn("dropping dataPointSet")
			continue
		}
		objectsRead.Inc()
		objs = append(objs, obj)
	}
	return objs, nil
}

func (m aidaMeasurement) parse() (ao.ValueErrs, error) {
	var v ao.ValueErrs
	var err error
	if v.Value, err = strconv.ParseFloat(strings.TrimSpace(m.Value), 64); err != nil {
		return v, fmt.Errorf("bad measurement value %q", m.Value)
	}
	if m.ErrorMinus != "" {
		if v.ErrMinus, err = strconv.ParseFloat(strings.TrimSpace(m.ErrorMinus), 64); err != nil {
			return v, fmt.Errorf("bad errorMinus %q", m.ErrorMinus)
		}
	}
	if m.ErrorPlus != "" {
		if v.ErrPlus, err = strconv.ParseFloat(strings.TrimSpace(m.ErrorPlus), 64); err != nil {
			return v, fmt.Errorf("bad errorPlus %q", m.ErrorPlus)
		}
	}
	return v, nil
}

func (set aidaDataPointSet) toObject() (ao.Object, error) {
	path := joinAIDAPath(set.Path, set.Name)
	dim := set.Dimension
	if dim < 1 || dim > 3 {
		return nil, fmt.Errorf("unsupported dimension %d", dim)
	}

	// cols[j] holds the measurements of dimension j, one per point
	cols := make([][]ao.ValueErrs, dim)
	for i, p := range set.Points {
		if len(p.Measurements) != dim {
			return nil, fmt.Errorf("point %d has %d measurements, expected %d", i, len(p.Measurements), dim)
		}
		for j, m := range p.Measurements {
			v, err := m.parse()
			if err != nil {
				return nil, fmt.Errorf("point %d: %s", i, err)
			}
			cols[j] = append(cols[j], v)
		}
	}

	var obj ao.Object
	switch dim {
	case 1:
		s := ao.NewScatter1D(path, set.Title)
		for _, x := range cols[0] {
			s.AddPoint(ao.Point1D{X: x.Value, XErrMinus: x.ErrMinus, XErrPlus: x.ErrPlus})
		}
		obj = s
	case 2:
		s, err := ao.NewScatter2DFromErrors(path, set.Title, cols[0], cols[1])
		if err != nil {
			return nil, err
		}
		obj = s
	case 3:
		s := ao.NewScatter3D(path, set.Title)
		for i := range cols[0] {
			x, y, z := cols[0][i], cols[1][i], cols[2][i]
			s.AddPoint(ao.Point3D{
				X: x.Value, XErrMinus: x.ErrMinus, XErrPlus: x.ErrPlus,
				Y: y.Value, YErrMinus: y.ErrMinus, YErrPlus: y.ErrPlus,
				Z: z.Value, ZErrMinus: z.ErrMinus, ZErrPlus: z.ErrPlus,
			})
		}
		obj = s
	}
	if set.Annotation != nil {
		for _, item := range set.Annotation.Items {
			switch item.Key {
			case "Path", "Title", "Type":
				continue
			}
			obj.SetAnnotation(item.Key, item.Value)
		}
	}
	return obj, nil
}

// AIDAWriter writes the AIDA XML format. Binned objects are written as the
// point sets MkScatter and friends produce.
type AIDAWriter struct {
	precision int
}

func NewAIDAWriter() *AIDAWriter {
	return &AIDAWriter{precision: -1}
}

func (w *AIDAWriter) SetPrecision(p int) {
	w.precision = p
}

func (w *AIDAWriter) measurement(v, errMinus, errPlus float64) aidaMeasurement {
	return aidaMeasurement{
		Value:      strconv.FormatFloat(v, 'e', w.precision, 64),
		ErrorPlus:  strconv.FormatFloat(errPlus, 'e', w.precision, 64),
		ErrorMinus: strconv.FormatFloat(errMinus, 'e', w.precision, 64),
	}
}

func (w *AIDAWriter) dataPointSet(o, sc ao.Object) aidaDataPointSet {
	dir, name := splitAIDAPath(o.Path())
	set := aidaDataPointSet{
		Name:  name,
		Path:  dir,
		Title: o.Title(),
	}
	items := []aidaItem{{Key: "Type", Value: o.Type()}}
	for _, k := range o.AnnotationKeys() {
		v, _ := o.Annotation(k)
		items = append(items, aidaItem{Key: k, Value: v})
	}
	set.Annotation = &aidaAnnotation{Items: items}

	switch v := sc.(type) {
	case *ao.Scatter1D:
		set.Dimension = 1
		for _, p := range v.Points() {
			set.Points = append(set.Points, aidaDataPoint{Measurements: []aidaMeasurement{
				w.measurement(p.X, p.XErrMinus, p.XErrPlus),
			}})
		}
	case *ao.Scatter2D:
		set.Dimension = 2
		for _, p := range v.Points() {
			set.Points = append(set.Points, aidaDataPoint{Measurements: []aidaMeasurement{
				w.measurement(p.X, p.XErrMinus, p.XErrPlus),
				w.measurement(p.Y, p.YErrMinus, p.YErrPlus),
			}})
		}
	case *ao.Scatter3D:
		set.Dimension = 3
		for _, p := range v.Points() {
			set.Points = append(set.Points, aidaDataPoint{Measurements: []aidaMeasurement{
				w.measurement(p.X, p.XErrMinus, p.XErrPlus),
				w.measurement(p.Y, p.YErrMinus, p.YErrPlus),
				w.measurement(p.Z, p.ZErrMinus, p.ZErrPlus),
			}})
		}
	}
	return set
}

func (w *AIDAWriter) Write(out io.Writer, objs []ao.Object) error {
	doc := aidaDoc{
		Version:        "3.3",
		Implementation: &aidaImplementation{Package: "YODA", Version: "1.0"},
	}
	for _, o := range objs {
		sc, err := asScatter(o)
		if err != nil {
			return err
		}
		doc.Sets = append(doc.Sets, w.dataPointSet(o, sc))
	}

	bw := bufio.NewWriter(out)
	bw.WriteString(xml.Header)
	bw.WriteString(aidaDoctype)
	bw.WriteByte('\n')
	enc := xml.NewEncoder(bw)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	bw.WriteByte('\n')
	objectsWritten.Add(len(objs))
	return bw.Flush()
}
