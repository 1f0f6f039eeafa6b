package ao

import "math"

// ValueErrs is one coordinate of a point: a value with asymmetric errors.
type ValueErrs struct {
	Value    float64
	ErrMinus float64
	ErrPlus  float64
}

// Point1D is a value with asymmetric errors.
type Point1D struct {
	X         float64
	XErrMinus float64
	XErrPlus  float64
}

func (p Point1D) XMin() float64 { return p.X - p.XErrMinus }
func (p Point1D) XMax() float64 { return p.X + p.XErrPlus }

// XErrAvg returns the mean of the two x errors.
func (p Point1D) XErrAvg() float64 { return (p.XErrMinus + p.XErrPlus) / 2 }

func (p *Point1D) scaleX(f float64) {
	p.X *= f
	p.XErrMinus *= math.Abs(f)
	p.XErrPlus *= math.Abs(f)
}

type Point2D struct {
	X         float64
	XErrMinus float64
	XErrPlus  float64
	Y         float64
	YErrMinus float64
	YErrPlus  float64
}

func (p Point2D) XMin() float64    { return p.X - p.XErrMinus }
func (p Point2D) XMax() float64    { return p.X + p.XErrPlus }
func (p Point2D) YMin() float64    { return p.Y - p.YErrMinus }
func (p Point2D) YMax() float64    { return p.Y + p.YErrPlus }
func (p Point2D) XErrAvg() float64 { return (p.XErrMinus + p.XErrPlus) / 2 }
func (p Point2D) YErrAvg() float64 { return (p.YErrMinus + p.YErrPlus) / 2 }

func (p *Point2D) scaleX(f float64) {
	p.X *= f
	p.XErrMinus *= math.Abs(f)
	p.XErrPlus *= math.Abs(f)
}

func (p *Point2D) scaleY(f float64) {
	p.Y *= f
	p.YErrMinus *= math.Abs(f)
	p.YErrPlus *= math.Abs(f)
}

type Point3D struct {
	X         float64
	XErrMinus float64
	XErrPlus  float64
	Y         float64
	YErrMinus float64
	YErrPlus  float64
	Z         float64
	ZErrMinus float64
	ZErrPlus  float64
}

func (p Point3D) XMin() float64    { return p.X - p.XErrMinus }
func (p Point3D) XMax() float64    { return p.X + p.XErrPlus }
func (p Point3D) YMin() float64    { return p.Y - p.YErrMinus }
func (p Point3D) YMax() float64    { return p.Y + p.YErrPlus }
func (p Point3D) ZMin() float64    { return p.Z - p.ZErrMinus }
func (p Point3D) ZMax() float64    { return p.Z + p.ZErrPlus }
func (p Point3D) ZErrAvg() float64 { return (p.ZErrMinus + p.ZErrPlus) / 2 }

func (p *Point3D) scaleX(f float64) {
	p.X *= f
	p.XErrMinus *= math.Abs(f)
	p.XErrPlus *= math.Abs(f)
}

func (p *Point3D) scaleY(f float64) {
	p.Y *= f
	p.YErrMinus *= math.Abs(f)
	p.YErrPlus *= math.Abs(f)
}

func (p *Point3D) scaleZ(f float64) {
	p.Z *= f
	p.ZErrMinus *= math.Abs(f)
	p.ZErrPlus *= math.Abs(f)
}
