package bin

// Bin2D covers the rectangle [xMin, xMax) x [yMin, yMax) and holds one accumulator.
type Bin2D[T any, PT Content[T]] struct {
	xMin float64
	xMax float64
	yMin float64
	yMax float64
	dbn  T
}

func NewBin2D[T any, PT Content[T]](xMin, xMax, yMin, yMax float64) (Bin2D[T, PT], error) {
	var d T
	return NewBin2DWithDbn[T, PT](xMin, xMax, yMin, yMax, d)
}

func NewBin2DWithDbn[T any, PT Content[T]](xMin, xMax, yMin, yMax float64, d T) (Bin2D[T, PT], error) {
	if err := checkEdges(xMin, xMax, "x"); err != nil {
		return Bin2D[T, PT]{}, err
	}
	if err := checkEdges(yMin, yMax, "y"); err != nil {
		return Bin2D[T, PT]{}, err
	}
	return Bin2D[T, PT]{
		xMin: xMin,
		xMax: xMax,
		yMin: yMin,
		yMax: yMax,
		dbn:  d,
	}, nil
}

func (b *Bin2D[T, PT]) XMin() float64 { return b.xMin }
func (b *Bin2D[T, PT]) XMax() float64 { return b.xMax }
func (b *Bin2D[T, PT]) YMin() float64 { return b.yMin }
func (b *Bin2D[T, PT]) YMax() float64 { return b.yMax }

func (b *Bin2D[T, PT]) WidthX() float64 {
	return b.xMax - b.xMin
}

func (b *Bin2D[T, PT]) WidthY() float64 {
	return b.yMax - b.yMin
}

func (b *Bin2D[T, PT]) Area() float64 {
	return b.WidthX() * b.WidthY()
}

func (b *Bin2D[T, PT]) Midpoint() (float64, float64) {
	return (b.xMin + b.xMax) / 2, (b.yMin + b.yMax) / 2
}

func (b *Bin2D[T, PT]) Contains(x, y float64) bool {
	return x >= b.xMin && x < b.xMax && y >= b.yMin && y < b.yMax
}

// Within reports whether b lies entirely inside the rectangle [xlo, xhi) x [ylo, yhi).
func (b *Bin2D[T, PT]) Within(xlo, xhi, ylo, yhi float64) bool {
	return b.xMin >= xlo && b.xMax <= xhi && b.yMin >= ylo && b.yMax <= yhi
}

func (b *Bin2D[T, PT]) Dbn() PT {
	return PT(&b.dbn)
}

func (b *Bin2D[T, PT]) SameEdges(o *Bin2D[T, PT]) bool {
	return b.xMin == o.xMin && b.xMax == o.xMax && b.yMin == o.yMin && b.yMax == o.yMax
}

func (b *Bin2D[T, PT]) Reset() {
	PT(&b.dbn).Reset()
}

func (b *Bin2D[T, PT]) ScaleW(f float64) {
	PT(&b.dbn).ScaleW(f)
}

func (b *Bin2D[T, PT]) Add(o *Bin2D[T, PT]) {
	PT(&b.dbn).Add(&o.dbn)
}

func (b *Bin2D[T, PT]) Subtract(o *Bin2D[T, PT]) {
	PT(&b.dbn).Subtract(&o.dbn)
}
