package indicator

import (
	"errors"
	"sync"
	"testing"
)

type fakeBar struct {
	mu      sync.Mutex
	pins    [Pins]bool
	writes  int
	initErr error
	onSet   func(i int, on bool)
}

func (f *fakeBar) Init() error { return f.initErr }

func (f *fakeBar) SetPin(i int, on bool) {
	f.mu.Lock()
	f.pins[i] = on
	f.writes++
	hook := f.onSet
	f.mu.Unlock()
	if hook != nil {
		hook(i, on)
	}
}

func (f *fakeBar) lit() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int
	for i, on := range f.pins {
		if on {
			out = append(out, i)
		}
	}
	return out
}

func TestUpdateLightsSymmetricPair(t *testing.T) {
	bar := &fakeBar{}
	m := NewMapper(bar, 130)
	if err := m.Probe(); err != nil {
		t.Fatal(err)
	}
	m.Update(65) // 65/16 = 4
	if got := bar.lit(); len(got) != 2 || got[0] != 4 || got[1] != 11 {
		t.Fatalf("lit pins = %v, want [4 11]", got)
	}
	m.Update(0)
	if got := bar.lit(); len(got) != 2 || got[0] != 0 || got[1] != 15 {
		t.Fatalf("lit pins = %v, want [0 15]", got)
	}
}

func TestUpdateClampsRow(t *testing.T) {
	m := NewMapper(&fakeBar{}, 130)
	if r := m.RowFor(129); r != 7 {
		t.Fatalf("RowFor(129) = %d, want 7", r)
	}
	if r := m.RowFor(-5); r != 0 {
		t.Fatalf("RowFor(-5) = %d, want 0", r)
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	bar := &fakeBar{}
	m := NewMapper(bar, 130)
	m.Probe()
	m.Update(40)
	writes := bar.writes
	for i := 0; i < 10; i++ {
		m.Update(40)
		m.Update(47) // same row
	}
	if bar.writes != writes {
		t.Fatalf("repeated updates for the same row wrote pins (%d -> %d)", writes, bar.writes)
	}
}

func TestUpdateFromTwoTasksConverges(t *testing.T) {
	bar := &fakeBar{}
	m := NewMapper(bar, 130)
	m.Probe()
	var wg sync.WaitGroup
	for task := 0; task < 2; task++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				m.Update(100)
			}
		}()
	}
	wg.Wait()
	if m.Row() != 6 {
		t.Fatalf("row = %d, want 6", m.Row())
	}
	if got := bar.lit(); len(got) != 2 || got[0] != 6 || got[1] != 9 {
		t.Fatalf("lit pins = %v, want [6 9]", got)
	}
}

func TestInterleavedUpdatesLeaveOneRowLit(t *testing.T) {
	bar := &fakeBar{}
	m := NewMapper(bar, 130)
	m.Probe()
	m.Update(0)

	// A second task moves the ball again while the first is switching rows.
	fired := false
	bar.onSet = func(i int, on bool) {
		if !fired && !on {
			fired = true
			m.Update(48)
		}
	}
	m.Update(32)
	if !fired {
		t.Fatalf("old row was not switched off")
	}
	if m.Row() != 3 {
		t.Fatalf("row = %d, want 3", m.Row())
	}
	if got := bar.lit(); len(got) != 2 || got[0] != 3 || got[1] != 12 {
		t.Fatalf("lit pins = %v, want [3 12]", got)
	}
}

func TestMissingBarDegradesToNoop(t *testing.T) {
	bar := &fakeBar{initErr: errors.New("no ack")}
	m := NewMapper(bar, 130)
	if err := m.Probe(); err == nil {
		t.Fatalf("expected probe error")
	}
	m.Update(65)
	m.ShowOff(40, func(int) { t.Fatalf("show-off slept without a bar") })
	if bar.writes != 0 {
		t.Fatalf("absent bar received %d writes", bar.writes)
	}

	nilMapper := NewMapper(nil, 130)
	if err := nilMapper.Probe(); !errors.Is(err, ErrNoDriver) {
		t.Fatalf("expected ErrNoDriver, got %v", err)
	}
	nilMapper.Update(10)
}

func TestShowOffSweepsAndLeavesDark(t *testing.T) {
	bar := &fakeBar{}
	m := NewMapper(bar, 130)
	m.Probe()
	m.Update(65)
	var seen [][]int
	m.ShowOff(40, func(units int) {
		if units != 40 {
			t.Fatalf("sleep %d, want 40", units)
		}
		seen = append(seen, bar.lit())
	})
	if len(seen) != 15 {
		t.Fatalf("steps = %d, want 15", len(seen))
	}
	if first := seen[0]; len(first) != 2 || first[0] != 7 || first[1] != 8 {
		t.Fatalf("first step lit %v, want [7 8]", first)
	}
	if mid := seen[7]; len(mid) != 2 || mid[0] != 0 || mid[1] != 15 {
		t.Fatalf("middle step lit %v, want [0 15]", mid)
	}
	if got := bar.lit(); len(got) != 0 {
		t.Fatalf("bar not dark after show-off: %v", got)
	}
	if m.Row() != -1 {
		t.Fatalf("row not reset after show-off")
	}
}
