package ao

import (
	"sort"

	"github.com/yodaproject/yoda/errors"
)

// Scatter1D is a set of 1D points, kept sorted by value.
type Scatter1D struct {
	AnalysisObject
	points []Point1D
}

func NewScatter1D(path, title string) *Scatter1D {
	return &Scatter1D{AnalysisObject: newAnalysisObject(path, title)}
}

func (s *Scatter1D) Type() string {
	return TypeScatter1D
}

func (s *Scatter1D) AddPoint(p Point1D) {
	i := sort.Search(len(s.points), func(i int) bool { return s.points[i].X > p.X })
	s.points = append(s.points, Point1D{})
	copy(s.points[i+1:], s.points[i:])
	s.points[i] = p
}

func (s *Scatter1D) AddPoints(ps []Point1D) {
	for _, p := range ps {
		s.AddPoint(p)
	}
}

func (s *Scatter1D) NumPoints() int {
	return len(s.points)
}

func (s *Scatter1D) Point(i int) (Point1D, error) {
	if i < 0 || i >= len(s.points) {
		return Point1D{}, errors.NewRangef("point index %d out of range [0, %d)", i, len(s.points))
	}
	return s.points[i], nil
}

// Points returns a copy of the points in sorted order.
func (s *Scatter1D) Points() []Point1D {
	return append([]Point1D(nil), s.points...)
}

// Combine adds all points of o.
func (s *Scatter1D) Combine(o *Scatter1D) {
	s.AddPoints(o.points)
}

func (s *Scatter1D) ScaleX(f float64) {
	for i := range s.points {
		s.points[i].scaleX(f)
	}
	if f < 0 {
		sort.SliceStable(s.points, func(i, j int) bool { return s.points[i].X < s.points[j].X })
	}
}

func (s *Scatter1D) Clone() *Scatter1D {
	return &Scatter1D{
		AnalysisObject: s.cloneIdentity(),
		points:         s.Points(),
	}
}

// Scatter2D is a set of 2D points, kept sorted by x, then y.
type Scatter2D struct {
	AnalysisObject
	points []Point2D
}

func NewScatter2D(path, title string) *Scatter2D {
	return &Scatter2D{AnalysisObject: newAnalysisObject(path, title)}
}

// NewScatter2DFromErrors builds a point set from per-dimension value and error lists,
// which must have equal lengths.
func NewScatter2DFromErrors(path, title string, xs, ys []ValueErrs) (*Scatter2D, error) {
	if len(xs) != len(ys) {
		return nil, errors.NewRangef("x and y lists differ in length: %d vs %d", len(xs), len(ys))
	}
	s := NewScatter2D(path, title)
	for i := range xs {
		s.AddPoint(Point2D{
			X: xs[i].Value, XErrMinus: xs[i].ErrMinus, XErrPlus: xs[i].ErrPlus,
			Y: ys[i].Value, YErrMinus: ys[i].ErrMinus, YErrPlus: ys[i].ErrPlus,
		})
	}
	return s, nil
}

func (s *Scatter2D) Type() string {
	return TypeScatter2D
}

func less2D(a, b Point2D) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

func (s *Scatter2D) AddPoint(p Point2D) {
	i := sort.Search(len(s.points), func(i int) bool { return less2D(p, s.points[i]) })
	s.points = append(s.points, Point2D{})
	copy(s.points[i+1:], s.points[i:])
	s.points[i] = p
}

func (s *Scatter2D) AddPoints(ps []Point2D) {
	for _, p := range ps {
		s.AddPoint(p)
	}
}

func (s *Scatter2D) NumPoints() int {
	return len(s.points)
}

func (s *Scatter2D) Point(i int) (Point2D, error) {
	if i < 0 || i >= len(s.points) {
		return Point2D{}, errors.NewRangef("point index %d out of range [0, %d)", i, len(s.points))
	}
	return s.points[i], nil
}

func (s *Scatter2D) Points() []Point2D {
	return append([]Point2D(nil), s.points...)
}

func (s *Scatter2D) Combine(o *Scatter2D) {
	s.AddPoints(o.points)
}

func (s *Scatter2D) resort() {
	sort.SliceStable(s.points, func(i, j int) bool { return less2D(s.points[i], s.points[j]) })
}

func (s *Scatter2D) ScaleX(f float64) {
	for i := range s.points {
		s.points[i].scaleX(f)
	}
	s.resort()
}

func (s *Scatter2D) ScaleY(f float64) {
	for i := range s.points {
		s.points[i].scaleY(f)
	}
	s.resort()
}

func (s *Scatter2D) Clone() *Scatter2D {
	return &Scatter2D{
		AnalysisObject: s.cloneIdentity(),
		points:         s.Points(),
	}
}

// Scatter3D is a set of 3D points, kept sorted by x, then y, then z.
type Scatter3D struct {
	AnalysisObject
	points []Point3D
}

func NewScatter3D(path, title string) *Scatter3D {
	return &Scatter3D{AnalysisObject: newAnalysisObject(path, title)}
}

func (s *Scatter3D) Type() string {
	return TypeScatter3D
}

func less3D(a, b Point3D) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

func (s *Scatter3D) AddPoint(p Point3D) {
	i := sort.Search(len(s.points), func(i int) bool { return less3D(p, s.points[i]) })
	s.points = append(s.points, Point3D{})
	copy(s.points[i+1:], s.points[i:])
	s.points[i] = p
}

func (s *Scatter3D) AddPoints(ps []Point3D) {
	for _, p := range ps {
		s.AddPoint(p)
	}
}

func (s *Scatter3D) NumPoints() int {
	return len(s.points)
}

func (s *Scatter3D) Point(i int) (Point3D, error) {
	if i < 0 || i >= len(s.points) {
		return Point3D{}, errors.NewRangef("point index %d out of range [0, %d)", i, len(s.points))
	}
	return s.points[i], nil
}

func (s *Scatter3D) Points() []Point3D {
	return append([]Point3D(nil), s.points...)
}

func (s *Scatter3D) Combine(o *Scatter3D) {
	s.AddPoints(o.points)
}

func (s *Scatter3D) resort() {
	sort.SliceStable(s.points, func(i, j int) bool { return less3D(s.points[i], s.points[j]) })
}

func (s *Scatter3D) ScaleX(f float64) {
	for i := range s.points {
		s.points[i].scaleX(f)
	}
	s.resort()
}

func (s *Scatter3D) ScaleY(f float64) {
	for i := range s.points {
		s.points[i].scaleY(f)
	}
	s.resort()
}

func (s *Scatter3D) ScaleZ(f float64) {
	for i := range s.points {
		s.points[i].scaleZ(f)
	}
	s.resort()
}

func (s *Scatter3D) Clone() *Scatter3D {
	return &Scatter3D{
		AnalysisObject: s.cloneIdentity(),
		points:         s.Points(),
	}
}
