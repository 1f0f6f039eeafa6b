package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/yodaproject/yoda/ao"
	"github.com/yodaproject/yoda/axis"
	"github.com/yodaproject/yoda/bin"
	"github.com/yodaproject/yoda/dbn"
	"github.com/yodaproject/yoda/errors"
)

const annotationPrefix = "Annotation:"

// maxLineSize bounds a single line. Annotations can carry long strings.
const maxLineSize = 16 * 1024 * 1024

type blockType int

const (
	blockNone blockType = iota
	blockHisto1D
	blockHisto2D
	blockProfile1D
	blockProfile2D
	blockScatter1D
	blockScatter2D
	blockScatter3D
)

var blockNames = map[blockType]string{
	blockHisto1D:   "YODA_HISTO1D",
	blockHisto2D:   "YODA_HISTO2D",
	blockProfile1D: "YODA_PROFILE1D",
	blockProfile2D: "YODA_PROFILE2D",
	blockScatter1D: "YODA_SCATTER1D",
	blockScatter2D: "YODA_SCATTER2D",
	blockScatter3D: "YODA_SCATTER3D",
}

var blockObjectTypes = map[blockType]string{
	blockHisto1D:   ao.TypeHisto1D,
	blockHisto2D:   ao.TypeHisto2D,
	blockProfile1D: ao.TypeProfile1D,
	blockProfile2D: ao.TypeProfile2D,
	blockScatter1D: ao.TypeScatter1D,
	blockScatter2D: ao.TypeScatter2D,
	blockScatter3D: ao.TypeScatter3D,
}

// yodaBlocks maps the marker names of the native format to block types.
var yodaBlocks = func() map[string]blockType {
	m := make(map[string]blockType, len(blockNames))
	for t, n := range blockNames {
		m[n] = t
	}
	return m
}()

func (b blockType) String() string {
	if n, ok := blockNames[b]; ok {
		return n
	}
	return "none"
}

// marker is a parsed "# BEGIN <type> [label]" or "# END <type>" line.
// typ is blockNone for a well-formed marker naming an unsupported type.
type marker struct {
	begin bool
	typ   blockType
	name  string
	label string
}

func parseMarker(line string, types map[string]blockType) (marker, bool) {
	if !strings.HasPrefix(line, "#") {
		return marker{}, false
	}
	fields := strings.Fields(line[1:])
	if len(fields) < 2 {
		return marker{}, false
	}
	var m marker
	switch fields[0] {
	case "BEGIN":
		m.begin = true
	case "END":
	default:
		return marker{}, false
	}
	m.name = fields[1]
	m.typ = types[m.name]
	if len(fields) > 2 {
		m.label = strings.Join(fields[2:], " ")
	}
	return m, true
}

// staging holds the rows of the block being read until its END marker.
type staging struct {
	path        string
	title       string
	annotations map[string]string

	histoBins1D                       []ao.HistoBin1D
	histoTotal1D, underflow, overflow dbn.Dbn1D

	profileBins1D                             []ao.ProfileBin1D
	profileTotal1D, profileUnder, profileOver dbn.Dbn2D

	histoBins2D  []ao.HistoBin2D
	histoTotal2D dbn.Dbn2D
	outflows2D   [axis.NumOutflows]dbn.Dbn2D

	profileBins2D   []ao.ProfileBin2D
	profileTotal2D  dbn.Dbn3D
	profileOutflows [axis.NumOutflows]dbn.Dbn3D

	points1D []ao.Point1D
	points2D []ao.Point2D
	points3D []ao.Point3D
}

// parserState is the complete state of one read. Each call to Read gets its own,
// so concurrent reads of different streams don't interact.
type parserState struct {
	types map[string]blockType
	flat  bool // rows use the flat table grammar

	context blockType
	stage   staging
	lineNum int

	sawMarker  bool
	sawContent bool

	objs []ao.Object
}

func newParserState(types map[string]blockType, flat bool) *parserState {
	return &parserState{
		types: types,
		flat:  flat,
	}
}

func (s *parserState) logger() *log.Entry {
	return log.WithFields(log.Fields{
		"line":    s.lineNum,
		"context": s.context.String(),
	})
}

func (s *parserState) reset() {
	s.context = blockNone
	s.stage = staging{}
}

func (s *parserState) feed(line string) {
	s.lineNum++
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}

	if m, ok := parseMarker(trimmed, s.types); ok {
		s.sawMarker = true
		s.handleMarker(m)
		return
	}
	if strings.HasPrefix(trimmed, "#") {
		return
	}
	s.sawContent = true

	if s.context == blockNone {
		s.logger().Debug("ignoring line outside of a block")
		return
	}

	if key, value, ok := parseAnnotation(line); ok {
		s.annotate(key, value)
		return
	}

	if err := s.parseRow(strings.Fields(trimmed)); err != nil {
		linesSkipped.Inc()
		s.logger().WithField("err", err).Warn("skipping malformed line")
	}
}

func (s *parserState) handleMarker(m marker) {
	if m.begin {
		if s.context != blockNone {
			s.logger().WithField("marker", m.name).Debug("ignoring BEGIN marker inside a block")
			return
		}
		if m.typ == blockNone {
			s.logger().WithField("marker", m.name).Debug("skipping unsupported block")
			return
		}
		s.context = m.typ
		s.stage.path = m.label
		return
	}
	if s.context == blockNone || m.typ != s.context {
		s.logger().WithField("marker", m.name).Debug("ignoring unmatched END marker")
		return
	}
	obj, err := s.materialize()
	if err != nil {
		objectsDropped.Inc()
		s.logger().WithFields(log.Fields{"path": s.stage.path, "err": err}).Warn("dropping block")
	} else {
		objectsRead.Inc()
		s.objs = append(s.objs, obj)
	}
	s.reset()
}

// parseAnnotation splits "key=value" lines, which may carry an "Annotation:" prefix.
// Keys never contain whitespace. The value is kept verbatim up to the line terminator.
func parseAnnotation(line string) (string, string, bool) {
	line = strings.TrimLeft(strings.TrimRight(line, "\r\n"), " \t")
	if strings.HasPrefix(line, annotationPrefix) {
		line = strings.TrimLeft(line[len(annotationPrefix):], " \t")
	}
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimRight(key, " \t")
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}
	return key, value, true
}

func (s *parserState) annotate(key, value string) {
	switch key {
	case "Path":
		s.stage.path = value
	case "Title":
		s.stage.title = value
	case "Type":
		if s.flat {
			return
		}
		if exp := blockObjectTypes[s.context]; !strings.EqualFold(value, exp) {
			s.logger().WithFields(log.Fields{"type": value, "expected": exp}).Warn("type annotation does not match block")
		}
	default:
		if s.stage.annotations == nil {
			s.stage.annotations = make(map[string]string)
		}
		s.stage.annotations[key] = value
	}
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", f)
		}
		out[i] = v
	}
	return out, nil
}

// parseCount parses an entry count. Some writers emit counts in float notation.
func parseCount(f string) (uint64, error) {
	if n, err := strconv.ParseUint(f, 10, 64); err == nil {
		return n, nil
	}
	v, err := strconv.ParseFloat(f, 64)
	if err != nil || v < 0 || v != float64(uint64(v)) {
		return 0, fmt.Errorf("bad entry count %q", f)
	}
	return uint64(v), nil
}

func isLabel(f string) bool {
	_, err := strconv.ParseFloat(f, 64)
	return err != nil
}

func wrongFieldCount(got int, exp ...int) error {
	return fmt.Errorf("expected %v fields, got %d", exp, got)
}

// sumw sumw2 sumwx sumwx2 numEntries
func parseDbn1D(fields []string) (dbn.Dbn1D, error) {
	v, err := parseFloats(fields[:4])
	if err != nil {
		return dbn.Dbn1D{}, err
	}
	n, err := parseCount(fields[4])
	if err != nil {
		return dbn.Dbn1D{}, err
	}
	return dbn.NewDbn1D(n, v[0], v[1], v[2], v[3]), nil
}

// sumw sumw2 sumwx sumwx2 sumwy sumwy2 [sumwxy] numEntries
func parseDbn2D(fields []string) (dbn.Dbn2D, error) {
	v, err := parseFloats(fields[:len(fields)-1])
	if err != nil {
		return dbn.Dbn2D{}, err
	}
	n, err := parseCount(fields[len(fields)-1])
	if err != nil {
		return dbn.Dbn2D{}, err
	}
	var sumWXY float64
	if len(v) == 7 {
		sumWXY = v[6]
	}
	return dbn.NewDbn2D(n, v[0], v[1], v[2], v[3], v[4], v[5], sumWXY), nil
}

// sumw sumw2 sumwx sumwx2 sumwy sumwy2 sumwz sumwz2 sumwxy sumwxz sumwyz numEntries
func parseDbn3D(fields []string) (dbn.Dbn3D, error) {
	v, err := parseFloats(fields[:11])
	if err != nil {
		return dbn.Dbn3D{}, err
	}
	n, err := parseCount(fields[11])
	if err != nil {
		return dbn.Dbn3D{}, err
	}
	return dbn.NewDbn3D(n, v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7], v[8], v[9], v[10]), nil
}

// parseOutflow parses the "dx:dy" label of an outflow row into its index.
func parseOutflow(f string) (int, error) {
	a, b, ok := strings.Cut(f, ":")
	if !ok {
		return 0, fmt.Errorf("bad outflow label %q", f)
	}
	dx, err1 := strconv.Atoi(a)
	dy, err2 := strconv.Atoi(b)
	if err1 != nil || err2 != nil {
		return 0, fmt.Errorf("bad outflow label %q", f)
	}
	return axis.OutflowIndex(dx, dy)
}

func (s *parserState) parseRow(fields []string) error {
	if s.flat {
		return s.parseFlatRow(fields)
	}
	st := &s.stage
	switch s.context {
	case blockHisto1D:
		if len(fields) != 7 {
			return wrongFieldCount(len(fields), 7)
		}
		d, err := parseDbn1D(fields[2:])
		if err != nil {
			return err
		}
		if isLabel(fields[0]) {
			if fields[0] != fields[1] {
				return fmt.Errorf("mismatched row labels %q and %q", fields[0], fields[1])
			}
			switch fields[0] {
			case "Total":
				st.histoTotal1D = d
			case "Underflow":
				st.underflow = d
			case "Overflow":
				st.overflow = d
			default:
				return fmt.Errorf("unknown row label %q", fields[0])
			}
			return nil
		}
		e, err := parseFloats(fields[:2])
		if err != nil {
			return err
		}
		b, err := bin.NewBin1DWithDbn[dbn.Dbn1D, *dbn.Dbn1D](e[0], e[1], d)
		if err != nil {
			return err
		}
		st.histoBins1D = append(st.histoBins1D, b)

	case blockProfile1D:
		if len(fields) != 9 && len(fields) != 10 {
			return wrongFieldCount(len(fields), 9, 10)
		}
		d, err := parseDbn2D(fields[2:])
		if err != nil {
			return err
		}
		if isLabel(fields[0]) {
			if fields[0] != fields[1] {
				return fmt.Errorf("mismatched row labels %q and %q", fields[0], fields[1])
			}
			switch fields[0] {
			case "Total":
				st.profileTotal1D = d
			case "Underflow":
				st.profileUnder = d
			case "Overflow":
				st.profileOver = d
			default:
				return fmt.Errorf("unknown row label %q", fields[0])
			}
			return nil
		}
		e, err := parseFloats(fields[:2])
		if err != nil {
			return err
		}
		b, err := bin.NewBin1DWithDbn[dbn.Dbn2D, *dbn.Dbn2D](e[0], e[1], d)
		if err != nil {
			return err
		}
		st.profileBins1D = append(st.profileBins1D, b)

	case blockHisto2D:
		if isLabel(fields[0]) {
			if len(fields) != 10 {
				return wrongFieldCount(len(fields), 10)
			}
			d, err := parseDbn2D(fields[2:])
			if err != nil {
				return err
			}
			switch fields[0] {
			case "Total":
				if fields[1] != "Total" {
					return fmt.Errorf("mismatched row labels %q and %q", fields[0], fields[1])
				}
				st.histoTotal2D = d
			case "Outflow":
				i, err := parseOutflow(fields[1])
				if err != nil {
					return err
				}
				st.outflows2D[i] = d
			default:
				return fmt.Errorf("unknown row label %q", fields[0])
			}
			return nil
		}
		if len(fields) != 12 {
			return wrongFieldCount(len(fields), 12)
		}
		e, err := parseFloats(fields[:4])
		if err != nil {
			return err
		}
		d, err := parseDbn2D(fields[4:])
		if err != nil {
			return err
		}
		b, err := bin.NewBin2DWithDbn[dbn.Dbn2D, *dbn.Dbn2D](e[0], e[1], e[2], e[3], d)
		if err != nil {
			return err
		}
		st.histoBins2D = append(st.histoBins2D, b)

	case blockProfile2D:
		if isLabel(fields[0]) {
			if len(fields) != 14 {
				return wrongFieldCount(len(fields), 14)
			}
			d, err := parseDbn3D(fields[2:])
			if err != nil {
				return err
			}
			switch fields[0] {
			case "Total":
				if fields[1] != "Total" {
					return fmt.Errorf("mismatched row labels %q and %q", fields[0], fields[1])
				}
				st.profileTotal2D = d
			case "Outflow":
				i, err := parseOutflow(fields[1])
				if err != nil {
					return err
				}
				st.profileOutflows[i] = d
			default:
				return fmt.Errorf("unknown row label %q", fields[0])
			}
			return nil
		}
		if len(fields) != 16 {
			return wrongFieldCount(len(fields), 16)
		}
		e, err := parseFloats(fields[:4])
		if err != nil {
			return err
		}
		d, err := parseDbn3D(fields[4:])
		if err != nil {
			return err
		}
		b, err := bin.NewBin2DWithDbn[dbn.Dbn3D, *dbn.Dbn3D](e[0], e[1], e[2], e[3], d)
		if err != nil {
			return err
		}
		st.profileBins2D = append(st.profileBins2D, b)

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
		if len(fields) != 6 {
			return wrongFieldCount(len(fields), 6)
		}
		v, err := parseFloats(fields)
		if err != nil {
			return err
		}
		st.points2D = append(st.points2D, ao.Point2D{
			X: v[0], XErrMinus: v[1], XErrPlus: v[2],
			Y: v[3], YErrMinus: v[4], YErrPlus: v[5],
		})

	case blockScatter3D:
		if len(fields) != 9 {
			return wrongFieldCount(len(fields), 9)
		}
		v, err := parseFloats(fields)
		if err != nil {
			return err
		}
		st.points3D = append(st.points3D, ao.Point3D{
			X: v[0], XErrMinus: v[1], XErrPlus: v[2],
			Y: v[3], YErrMinus: v[4], YErrPlus: v[5],
			Z: v[6], ZErrMinus: v[7], ZErrPlus: v[8],
		})
	}
	return nil
}

// materialize builds the object for the current block from the staged rows.
func (s *parserState) materialize() (ao.Object, error) {
	st := &s.stage
	var obj ao.Object
	switch s.context {
	case blockHisto1D:
		h, err := ao.NewHisto1DWithState(st.histoBins1D, st.histoTotal1D, st.underflow, st.overflow, st.path, st.title)
		if err != nil {
			return nil, err
		}
		obj = h
	case blockProfile1D:
		p, err := ao.NewProfile1DWithState(st.profileBins1D, st.profileTotal1D, st.profileUnder, st.profileOver, st.path, st.title)
		if err != nil {
			return nil, err
		}
		obj = p
	case blockHisto2D:
		h, err := ao.NewHisto2DWithState(st.histoBins2D, st.histoTotal2D, st.outflows2D, st.path, st.title)
		if err != nil {
			return nil, err
		}
		obj = h
	case blockProfile2D:
		p, err := ao.NewProfile2DWithState(st.profileBins2D, st.profileTotal2D, st.profileOutflows, st.path, st.title)
		if err != nil {
			return nil, err
		}
		obj = p
	case blockScatter1D:
		sc := ao.NewScatter1D(st.path, st.title)
		sc.AddPoints(st.points1D)
		obj = sc
	case blockScatter2D:
		sc := ao.NewScatter2D(st.path, st.title)
		sc.AddPoints(st.points2D)
		obj = sc
	case blockScatter3D:
		sc := ao.NewScatter3D(st.path, st.title)
		sc.AddPoints(st.points3D)
		obj = sc
	default:
		return nil, errors.NewFormatf("no object for block type %s", s.context)
	}
	for k, v := range st.annotations {
		obj.SetAnnotation(k, v)
	}
	return obj, nil
}

// finish ends the read and returns the objects, or a FormatError when the
// stream had content but no block markers.
func (s *parserState) finish() ([]ao.Object, error) {
	if s.context != blockNone {
		objectsDropped.Inc()
		s.logger().WithField("path", s.stage.path).Warn("dropping unterminated block")
		s.reset()
	}
	if s.sawContent && !s.sawMarker {
		return nil, errors.NewFormat("no block markers found")
	}
	return s.objs, nil
}

// scanLines calls fn for each line of r, with any trailing \r removed.
func scanLines(r io.Reader, fn func(line string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		linesRead.Inc()
		bytesRead.AddUint64(uint64(len(line)) + 1)
		fn(line)
	}
	return scanner.Err()
}

// YODAReader reads the native block format.
type YODAReader struct{}

func NewYODAReader() *YODAReader {
	return &YODAReader{}
}

func (r *YODAReader) Read(rd io.Reader) ([]ao.Object, error) {
	return readBlocks(rd, yodaBlocks, false)
}

func readBlocks(rd io.Reader, types map[string]blockType, flat bool) ([]ao.Object, error) {
	defer track()()

	s := newParserState(types, flat)
	if err := scanLines(rd, s.feed); err != nil {
		return nil, errors.NewFormatf("line %d: %s", s.lineNum+1, err)
	}
	return s.finish()
}
