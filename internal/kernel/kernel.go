// Package kernel runs game tasks as goroutines with a fixed-size task table.
package kernel

import (
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Nikodemek/ballgame/core/engine"
	game_log "github.com/Nikodemek/ballgame/internal/log"
)

var ErrTaskTableFull = errors.New("kernel: task table full")

// Kernel implements engine.Scheduler. Goroutines have no priorities or stacks
// to size, so both are only recorded and logged.
type Kernel struct {
	tick   time.Duration
	sleep  func(time.Duration)
	group  errgroup.Group
	nextID atomic.Int32
	live   atomic.Int32
	logger *game_log.Logger
}

func New(tick time.Duration, maxTasks int, logger *game_log.Logger) *Kernel {
	k := &Kernel{tick: tick, sleep: time.Sleep, logger: logger}
	k.group.SetLimit(maxTasks)
	return k
}

// Spawn starts t on its own goroutine, or fails when every slot is taken.
func (k *Kernel) Spawn(t engine.Task) (engine.TaskHandle, error) {
	id := int(k.nextID.Add(1))
	h := engine.TaskHandle{ID: id, Name: t.Name, Priority: t.Priority}
	ok := k.group.TryGo(func() error {
		k.live.Add(1)
		defer k.live.Add(-1)
		k.logger.Debugf("[KERNEL] task %d %q started (prio %d, stack %d)", id, t.Name, t.Priority, t.Stack)
		t.Run()
		k.logger.Debugf("[KERNEL] task %d %q terminated", id, t.Name)
		return nil
	})
	if !ok {
		k.logger.Errorf("[KERNEL] no slot for task %q", t.Name)
		return engine.TaskHandle{}, ErrTaskTableFull
	}
	return h, nil
}

// Sleep blocks for ticks kernel ticks. Zero ticks yields the processor.
func (k *Kernel) Sleep(ticks uint32) {
	if ticks == 0 {
		runtime.Gosched()
		return
	}
	k.sleep(time.Duration(ticks) * k.tick)
}

// Live reports how many tasks are running.
func (k *Kernel) Live() int { return int(k.live.Load()) }

// Wait blocks until every spawned task has returned.
func (k *Kernel) Wait() {
	_ = k.group.Wait()
}
