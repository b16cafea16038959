package model

import "testing"

func TestOverlapsIdentical(t *testing.T) {
	rects := []Rect{{0, 0, 4, 4}, {10, 20, 60, 5}, {129, 129, 0, 0}}
	for _, r := range rects {
		if !Overlaps(r, r) {
			t.Fatalf("rect %+v does not overlap itself", r)
		}
	}
}

func TestOverlapsSymmetric(t *testing.T) {
	rects := []Rect{
		{0, 0, 4, 4}, {4, 0, 4, 4}, {5, 0, 4, 4}, {2, 2, 1, 1},
		{0, 10, 30, 2}, {50, 50, 20, 3}, {60, 48, 4, 4}, {71, 50, 4, 4},
	}
	for _, a := range rects {
		for _, b := range rects {
			if Overlaps(a, b) != Overlaps(b, a) {
				t.Fatalf("asymmetric result for %+v and %+v", a, b)
			}
		}
	}
}

func TestOverlapsGapNeverCollides(t *testing.T) {
	a := Rect{X: 10, Y: 10, W: 4, H: 4}
	gaps := []Rect{
		{X: 15, Y: 10, W: 4, H: 4}, // right
		{X: 1, Y: 10, W: 4, H: 4},  // left
		{X: 10, Y: 15, W: 4, H: 4}, // below
		{X: 10, Y: 1, W: 4, H: 4},  // above
	}
	for _, b := range gaps {
		if Overlaps(a, b) {
			t.Fatalf("%+v and %+v are separated but collide", a, b)
		}
	}
}

func TestOverlapsSharedEdgeCollides(t *testing.T) {
	ball := Ball{X: 60, Y: 60, Speed: 5, Radius: 4}.Rect()
	below := Obstacle{X: 40, Y: 64, Width: 30, Height: 3}.Rect()
	if !Overlaps(ball, below) {
		t.Fatalf("ball bottom edge touching obstacle top must collide")
	}
	side := Obstacle{X: 64, Y: 50, Width: 20, Height: 20}.Rect()
	if !Overlaps(ball, side) {
		t.Fatalf("ball right edge touching obstacle left must collide")
	}
}
