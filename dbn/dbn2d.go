package dbn

// Dbn2D accumulates the weighted moments of a two-dimensional sample.
// Its x and y projections are full Dbn1D accumulators; the cross term is kept separately.
type Dbn2D struct {
	x      Dbn1D
	y      Dbn1D
	sumWXY float64
}

func NewDbn2D(numFills uint64, sumW, sumW2, sumWX, sumWX2, sumWY, sumWY2, sumWXY float64) Dbn2D {
	return Dbn2D{
		x:      NewDbn1D(numFills, sumW, sumW2, sumWX, sumWX2),
		y:      NewDbn1D(numFills, sumW, sumW2, sumWY, sumWY2),
		sumWXY: sumWXY,
	}
}

func (d *Dbn2D) Fill(x, y, weight float64) {
	d.x.Fill(x, weight)
	d.y.Fill(y, weight)
	d.sumWXY += weight * x * y
}

func (d *Dbn2D) Reset() {
	*d = Dbn2D{}
}

func (d *Dbn2D) ScaleW(f float64) {
	d.x.ScaleW(f)
	d.y.ScaleW(f)
	d.sumWXY *= f
}

func (d *Dbn2D) ScaleX(f float64) {
	d.x.ScaleX(f)
	d.sumWXY *= f
}

func (d *Dbn2D) ScaleY(f float64) {
	d.y.ScaleX(f)
	d.sumWXY *= f
}

func (d *Dbn2D) ScaleXY(fx, fy float64) {
	d.ScaleX(fx)
	d.ScaleY(fy)
}

func (d *Dbn2D) Add(o *Dbn2D) {
	d.x.Add(&o.x)
	d.y.Add(&o.y)
	d.sumWXY += o.sumWXY
}

// Subtract has the same negated-weight semantics as Dbn1D.Subtract.
func (d *Dbn2D) Subtract(o *Dbn2D) {
	d.x.Subtract(&o.x)
	d.y.Subtract(&o.y)
	d.sumWXY -= o.sumWXY
}

func (d *Dbn2D) Clone() Dbn2D {
	return *d
}

// XDbn returns a copy of the x projection.
func (d *Dbn2D) XDbn() Dbn1D {
	return d.x
}

// YDbn returns a copy of the y projection.
func (d *Dbn2D) YDbn() Dbn1D {
	return d.y
}

func (d *Dbn2D) NumEntries() uint64 { return d.x.numFills }
func (d *Dbn2D) SumW() float64      { return d.x.sumW }
func (d *Dbn2D) SumW2() float64     { return d.x.sumW2 }
func (d *Dbn2D) SumWX() float64     { return d.x.sumWX }
func (d *Dbn2D) SumWX2() float64    { return d.x.sumWX2 }
func (d *Dbn2D) SumWY() float64     { return d.y.sumWX }
func (d *Dbn2D) SumWY2() float64    { return d.y.sumWX2 }
func (d *Dbn2D) SumWXY() float64    { return d.sumWXY }

func (d *Dbn2D) EffNumEntries() (float64, error) { return d.x.EffNumEntries() }
func (d *Dbn2D) XMean() (float64, error)         { return d.x.Mean() }
func (d *Dbn2D) YMean() (float64, error)         { return d.y.Mean() }
func (d *Dbn2D) XVariance() (float64, error)     { return d.x.Variance() }
func (d *Dbn2D) YVariance() (float64, error)     { return d.y.Variance() }
func (d *Dbn2D) XStdDev() (float64, error)       { return d.x.StdDev() }
func (d *Dbn2D) YStdDev() (float64, error)       { return d.y.StdDev() }
func (d *Dbn2D) XStdErr() (float64, error)       { return d.x.StdErr() }
func (d *Dbn2D) YStdErr() (float64, error)       { return d.y.StdErr() }
