package dbn

// Dbn3D accumulates the weighted moments of a three-dimensional sample.
// It is the content of 2D profile bins: x and y locate the bin, z is the profiled value.
type Dbn3D struct {
	x      Dbn1D
	y      Dbn1D
	z      Dbn1D
	sumWXY float64
	sumWXZ float64
	sumWYZ float64
}

func NewDbn3D(numFills uint64, sumW, sumW2, sumWX, sumWX2, sumWY, sumWY2, sumWZ, sumWZ2, sumWXY, sumWXZ, sumWYZ float64) Dbn3D {
	return Dbn3D{
		x:      NewDbn1D(numFills, sumW, sumW2, sumWX, sumWX2),
		y:      NewDbn1D(numFills, sumW, sumW2, sumWY, sumWY2),
		z:      NewDbn1D(numFills, sumW, sumW2, sumWZ, sumWZ2),
		sumWXY: sumWXY,
		sumWXZ: sumWXZ,
		sumWYZ: sumWYZ,
	}
}

func (d *Dbn3D) Fill(x, y, z, weight float64) {
	d.x.Fill(x, weight)
	d.y.Fill(y, weight)
	d.z.Fill(z, weight)
	d.sumWXY += weight * x * y
	d.sumWXZ += weight * x * z
	d.sumWYZ += weight * y * z
}

func (d *Dbn3D) Reset() {
	*d = Dbn3D{}
}

func (d *Dbn3D) ScaleW(f float64) {
	d.x.ScaleW(f)
	d.y.ScaleW(f)
	d.z.ScaleW(f)
	d.sumWXY *= f
	d.sumWXZ *= f
	d.sumWYZ *= f
}

func (d *Dbn3D) ScaleX(f float64) {
	d.x.ScaleX(f)
	d.sumWXY *= f
	d.sumWXZ *= f
}

func (d *Dbn3D) ScaleY(f float64) {
	d.y.ScaleX(f)
	d.sumWXY *= f
	d.sumWYZ *= f
}

func (d *Dbn3D) ScaleZ(f float64) {
	d.z.ScaleX(f)
	d.sumWXZ *= f
	d.sumWYZ *= f
}

func (d *Dbn3D) ScaleXY(fx, fy float64) {
	d.ScaleX(fx)
	d.ScaleY(fy)
}

func (d *Dbn3D) Add(o *Dbn3D) {
	d.x.Add(&o.x)
	d.y.Add(&o.y)
	d.z.Add(&o.z)
	d.sumWXY += o.sumWXY
	d.sumWXZ += o.sumWXZ
	d.sumWYZ += o.sumWYZ
}

func (d *Dbn3D) Subtract(o *Dbn3D) {
	d.x.Subtract(&o.x)
	d.y.Subtract(&o.y)
	d.z.Subtract(&o.z)
	d.sumWXY -= o.sumWXY
	d.sumWXZ -= o.sumWXZ
	d.sumWYZ -= o.sumWYZ
}

func (d *Dbn3D) Clone() Dbn3D {
	return *d
}

func (d *Dbn3D) XDbn() Dbn1D { return d.x }
func (d *Dbn3D) YDbn() Dbn1D { return d.y }
func (d *Dbn3D) ZDbn() Dbn1D { return d.z }

func (d *Dbn3D) NumEntries() uint64 { return d.x.numFills }
func (d *Dbn3D) SumW() float64      { return d.x.sumW }
func (d *Dbn3D) SumW2() float64     { return d.x.sumW2 }
func (d *Dbn3D) SumWX() float64     { return d.x.sumWX }
func (d *Dbn3D) SumWX2() float64    { return d.x.sumWX2 }
func (d *Dbn3D) SumWY() float64     { return d.y.sumWX }
func (d *Dbn3D) SumWY2() float64    { return d.y.sumWX2 }
func (d *Dbn3D) SumWZ() float64     { return d.z.sumWX }
func (d *Dbn3D) SumWZ2() float64    { return d.z.sumWX2 }
func (d *Dbn3D) SumWXY() float64    { return d.sumWXY }
func (d *Dbn3D) SumWXZ() float64    { return d.sumWXZ }
func (d *Dbn3D) SumWYZ() float64    { return d.sumWYZ }

func (d *Dbn3D) EffNumEntries() (float64, error) { return d.x.EffNumEntries() }
func (d *Dbn3D) XMean() (float64, error)         { return d.x.Mean() }
func (d *Dbn3D) YMean() (float64, error)         { return d.y.Mean() }
func (d *Dbn3D) ZMean() (float64, error)         { return d.z.Mean() }
func (d *Dbn3D) ZVariance() (float64, error)     { return d.z.Variance() }
func (d *Dbn3D) ZStdDev() (float64, error)       { return d.z.StdDev() }
func (d *Dbn3D) ZStdErr() (float64, error)       { return d.z.StdErr() }
