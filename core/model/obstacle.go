package model

import "sync/atomic"

type Obstacle struct {
	X      int
	Y      int
	Speed  int
	Width  int
	Height int
}

// Live reports whether the obstacle is inside a field of the given height.
func (o Obstacle) Live(height int) bool {
	return o.Y >= 0 && o.Y < height
}

func (o Obstacle) Rect() Rect {
	return Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

// Slot pairs an obstacle value with its index in the pool.
type Slot struct {
	Index    int
	Obstacle Obstacle
}

// Pool is a fixed arena of obstacle slots. Each slot is replaced as a whole
// through an atomic pointer, so a reader on another task sees either the old or
// the new obstacle, never a mix. Advance, Respawn and RetireAll must only be
// called by one task at a time; readers may run concurrently with them.
type Pool struct {
	slots  []atomic.Pointer[Obstacle]
	height int
}

// NewPool allocates capacity slots, all retired.
func NewPool(capacity, height int) *Pool {
	p := &Pool{slots: make([]atomic.Pointer[Obstacle], capacity), height: height}
	p.RetireAll()
	return p
}

func (p *Pool) Cap() int { return len(p.slots) }

func (p *Pool) Get(i int) Obstacle { return *p.slots[i].Load() }

func (p *Pool) store(i int, o Obstacle) { p.slots[i].Store(&o) }

// RetireAll moves every slot just below the visible area.
func (p *Pool) RetireAll() {
	for i := range p.slots {
		p.store(i, Obstacle{Y: p.height + 1})
	}
}

// Snapshot copies every slot, live or retired.
func (p *Pool) Snapshot() []Obstacle {
	out := make([]Obstacle, len(p.slots))
	for i := range p.slots {
		out[i] = p.Get(i)
	}
	return out
}

// Live returns the slots currently inside the field.
func (p *Pool) Live() []Slot {
	var out []Slot
	for i := range p.slots {
		if o := p.Get(i); o.Live(p.height) {
			out = append(out, Slot{Index: i, Obstacle: o})
		}
	}
	return out
}

// Advance moves every live obstacle down by its own speed and returns the new
// values of the slots that moved.
func (p *Pool) Advance() []Slot {
	var moved []Slot
	for i := range p.slots {
		o := p.Get(i)
		if !o.Live(p.height) {
			continue
		}
		o.Y += o.Speed
		p.store(i, o)
		moved = append(moved, Slot{Index: i, Obstacle: o})
	}
	return moved
}

// Respawn replaces the first retired slot with next() if the topmost live
// obstacle is at least minClearance below the spawn line. At most one slot
// changes per call.
func (p *Pool) Respawn(minClearance int, next func() Obstacle) (Slot, bool) {
	minY := p.height
	free := -1
	for i := range p.slots {
		o := p.Get(i)
		if o.Live(p.height) {
			if o.Y < minY {
				minY = o.Y
			}
			continue
		}
		if free < 0 && o.Y >= p.height {
			free = i
		}
	}
	if free < 0 || minY < minClearance {
		return Slot{}, false
	}
	o := next()
	p.store(free, o)
	return Slot{Index: free, Obstacle: o}, true
}

// Hit returns the first live obstacle overlapping r.
func (p *Pool) Hit(r Rect) (Slot, bool) {
	for i := range p.slots {
		o := p.Get(i)
		if !o.Live(p.height) {
			continue
		}
		if Overlaps(r, o.Rect()) {
			return Slot{Index: i, Obstacle: o}, true
		}
	}
	return Slot{}, false
}
