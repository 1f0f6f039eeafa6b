package bin

// Bin1D covers [xMin, xMax) and holds one accumulator.
type Bin1D[T any, PT Content[T]] struct {
	xMin float64
	xMax float64
	dbn  T
}

func NewBin1D[T any, PT Content[T]](xMin, xMax float64) (Bin1D[T, PT], error) {
	var d T
	return NewBin1DWithDbn[T, PT](xMin, xMax, d)
}

// NewBin1DWithDbn returns a bin holding a copy of d.
func NewBin1DWithDbn[T any, PT Content[T]](xMin, xMax float64, d T) (Bin1D[T, PT], error) {
	if err := checkEdges(xMin, xMax, "x"); err != nil {
		return Bin1D[T, PT]{}, err
	}
	return Bin1D[T, PT]{
		xMin: xMin,
		xMax: xMax,
		dbn:  d,
	}, nil
}

func (b *Bin1D[T, PT]) XMin() float64 {
	return b.xMin
}

func (b *Bin1D[T, PT]) XMax() float64 {
	return b.xMax
}

func (b *Bin1D[T, PT]) Edges() (float64, float64) {
	return b.xMin, b.xMax
}

func (b *Bin1D[T, PT]) Width() float64 {
	return b.xMax - b.xMin
}

func (b *Bin1D[T, PT]) Midpoint() float64 {
	return (b.xMin + b.xMax) / 2
}

func (b *Bin1D[T, PT]) Contains(x float64) bool {
	return x >= b.xMin && x < b.xMax
}

// Dbn returns the bin's accumulator. It aliases the bin: fills through it land in the bin.
func (b *Bin1D[T, PT]) Dbn() PT {
	return PT(&b.dbn)
}

func (b *Bin1D[T, PT]) SameEdges(o *Bin1D[T, PT]) bool {
	return b.xMin == o.xMin && b.xMax == o.xMax
}

func (b *Bin1D[T, PT]) Reset() {
	PT(&b.dbn).Reset()
}

func (b *Bin1D[T, PT]) ScaleW(f float64) {
	PT(&b.dbn).ScaleW(f)
}

// Add merges o's content into b. Edges are not compared; callers combine bins of identical binnings.
func (b *Bin1D[T, PT]) Add(o *Bin1D[T, PT]) {
	PT(&b.dbn).Add(&o.dbn)
}

func (b *Bin1D[T, PT]) Subtract(o *Bin1D[T, PT]) {
	PT(&b.dbn).Subtract(&o.dbn)
}
