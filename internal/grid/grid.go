package grid

// Point is a pixel coordinate.
type Point struct {
	X int
	Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the delta from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect represents a widget position and size
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// At returns r moved so its top-left corner is p.
func (r Rect) At(p Point) Rect {
	r.X, r.Y = p.X, p.Y
	return r
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// controlGap is the vertical space between the key block and the control row.
const controlGap = 2

// Metrics describes key and control sizes.
type Metrics struct {
	KeyWidth    int
	KeyHeight   int
	Padding     int // space on every side of a key
	ControlSize int
}

// Frame is the resolved geometry of the overlay in window coordinates.
type Frame struct {
	Width  int
	Height int
	Lock   Rect // lock indicator, bottom left
	Handle Rect // drag handle, bottom right
}

// Cell returns the grid rectangle for a key at row, col.
func (m Metrics) Cell(row, col int) Rect {
	return Rect{
		X:      m.Padding + col*(m.KeyWidth+2*m.Padding),
		Y:      m.Padding + row*(m.KeyHeight+2*m.Padding),
		Width:  m.KeyWidth,
		Height: m.KeyHeight,
	}
}

// Compute lays out a key grid of rows x cols with the control row below it.
func (m Metrics) Compute(rows, cols int) Frame {
	keysWidth := cols * (m.KeyWidth + 2*m.Padding)
	keysHeight := rows * (m.KeyHeight + 2*m.Padding)

	width := keysWidth
	if minWidth := 2 * m.ControlSize; width < minWidth {
		width = minWidth
	}
	controlY := keysHeight + controlGap

	return Frame{
		Width:  width,
		Height: controlY + m.ControlSize,
		Lock: Rect{
			X:      0,
			Y:      controlY,
			Width:  m.ControlSize,
			Height: m.ControlSize,
		},
		Handle: Rect{
			X:      width - m.ControlSize,
			Y:      controlY,
			Width:  m.ControlSize,
			Height: m.ControlSize,
		},
	}
}

// Intersects reports whether a and b overlap.
func Intersects(a, b Rect) bool {
	return a.X < b.X+b.Width &&
		a.X+a.Width > b.X &&
		a.Y < b.Y+b.Height &&
		a.Y+a.Height > b.Y
}

// Clip returns the part of r inside bounds, or false if they do not overlap.
func Clip(r, bounds Rect) (Rect, bool) {
	if !Intersects(r, bounds) {
		return Rect{}, false
	}
	x0, y0 := max(r.X, bounds.X), max(r.Y, bounds.Y)
	x1 := min(r.X+r.Width, bounds.X+bounds.Width)
	y1 := min(r.Y+r.Height, bounds.Y+bounds.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}
