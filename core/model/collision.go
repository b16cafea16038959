package model

// Rect is an axis-aligned box; its far edges are X+W and Y+H, inclusive.
type Rect struct {
	X, Y, W, H int
}

// Overlaps reports whether a and b touch or intersect. Boxes sharing only an
// edge collide. A separating gap on either axis rules out a collision before
// the other axis is looked at.
func Overlaps(a, b Rect) bool {
	if a.Y > b.Y+b.H || a.Y+a.H < b.Y {
		return false
	}
	if a.X > b.X+b.W || a.X+a.W < b.X {
		return false
	}
	return true
}
