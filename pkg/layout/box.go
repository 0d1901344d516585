package layout

// Box is the rectangle occupied by one node. Y grows downward.
type Box struct {
	NodeID      string
	Left, Right float64
	Top, Bottom float64
}

// Width returns the horizontal span of the box.
func (b Box) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span of the box.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return (b.Left + b.Right) / 2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// At returns the coordinates of the given anchor of the box.
func (b Box) At(a Anchor) Point {
	if a == AnchorCenter {
		return Point{X: b.CenterX(), Y: b.CenterY()}
	}
	return Point{X: b.Left, Y: b.Top}
}

// Overlaps reports whether two boxes share any interior area.
func (b Box) Overlaps(o Box) bool {
	return b.Left < o.Right && o.Left < b.Right && b.Top < o.Bottom && o.Top < b.Bottom
}
