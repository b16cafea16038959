package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Nikodemek/ballgame/core/indicator"
	"github.com/Nikodemek/ballgame/core/model"
	"github.com/Nikodemek/ballgame/core/tilt"
	"github.com/Nikodemek/ballgame/internal/config"
	game_log "github.com/Nikodemek/ballgame/internal/log"
)

var ErrMissingHardware = errors.New("engine: missing hardware")

// Controller owns the game state and moves it between idle and running.
// Start and Stop may be called from any goroutine, including the game tasks.
type Controller struct {
	cfg     config.Config
	hw      Hardware
	logger  *game_log.Logger
	field   model.Field
	sampler *tilt.Sampler
	curve   tilt.Curve
	pool    *model.Pool
	spawner *model.Spawner
	mapper  *indicator.Mapper

	inProgress atomic.Bool
	current    atomic.Pointer[session]
}

// New wires a controller to the board. Scheduler, ADC and Display are required.
func New(cfg config.Config, hw Hardware, logger *game_log.Logger) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case hw.Scheduler == nil:
		return nil, fmt.Errorf("%w: scheduler", ErrMissingHardware)
	case hw.ADC == nil:
		return nil, fmt.Errorf("%w: adc", ErrMissingHardware)
	case hw.Display == nil:
		return nil, fmt.Errorf("%w: display", ErrMissingHardware)
	}
	if logger == nil {
		logger = game_log.Discard()
	}
	seed := uint64(cfg.Frontend.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	field := model.Field{Width: cfg.Display.Width, Height: cfg.Display.Height}
	c := &Controller{
		cfg:     cfg,
		hw:      hw,
		logger:  logger,
		field:   field,
		sampler: tilt.NewSampler(hw.ADC, cfg.Tilt),
		curve:   tilt.NewCurve(cfg.Tilt),
		pool:    model.NewPool(cfg.Obstacles.Capacity, field.Height),
		spawner: model.NewSpawner(cfg.Obstacles, field.Width, seed),
	}
	var drv indicator.Driver
	if cfg.Indicator.Enabled {
		drv = hw.Indicator
	}
	c.mapper = indicator.NewMapper(drv, field.Height)
	logger.Debugf("[ENGINE] controller ready: field=%dx%d pool=%d seed=%d", field.Width, field.Height, c.pool.Cap(), seed)
	return c, nil
}

// Start begins a session. It is a no-op while one is running.
func (c *Controller) Start() {
	if !c.inProgress.CompareAndSwap(false, true) {
		return
	}
	if prev := c.current.Load(); prev != nil {
		prev.tasks.Wait()
	}

	s := newSession(c.cfg.Difficulty)
	s.ref[tilt.AxisX] = c.sampler.Calibrate(tilt.AxisX)
	s.ref[tilt.AxisY] = c.sampler.Calibrate(tilt.AxisY)
	s.ball.Store(c.startBall())
	c.current.Store(s)
	c.logger.Infof("[ENGINE] session started, reference x=%d y=%d", s.ref[tilt.AxisX], s.ref[tilt.AxisY])

	if c.cfg.Indicator.Enabled {
		if err := c.mapper.Probe(); err != nil {
			c.logger.Warnf("[ENGINE] indicator unavailable: %v", err)
		}
	}
	c.initScene(s)
	c.mapper.ShowOff(c.cfg.Indicator.ShowOffDelay, c.pause)
	c.play(SoundStart)

	for _, t := range c.tasks(s) {
		s.tasks.Add(1)
		run := t.Run
		t.Run = func() {
			defer s.tasks.Done()
			run()
		}
		h, err := c.hw.Scheduler.Spawn(t)
		if err != nil {
			s.tasks.Done()
			c.logger.Errorf("[ENGINE] spawn %s: %v", t.Name, err)
			c.end(s)
			return
		}
		c.logger.Debugf("[ENGINE] spawned %s as task %d", h.Name, h.ID)
	}
}

// Stop ends the running session. It is a no-op while idle. The tasks notice at
// the top of their next iteration, so one more iteration of each may still run.
func (c *Controller) Stop() {
	if s := c.current.Load(); s != nil {
		c.end(s)
	}
}

// end stops s if it is still active. Tasks of an earlier session call it with
// their own session, which is already inactive.
func (c *Controller) end(s *session) {
	if !s.active.CompareAndSwap(true, false) {
		return
	}
	s.cancel()
	c.inProgress.Store(false)
	c.logger.Infof("[ENGINE] session stopped after %d ticks, score %d", s.clock.Elapsed(), s.clock.Score())
	c.play(SoundStop)
	c.mapper.ShowOff(c.cfg.Indicator.ShowOffDelay, c.pause)
	c.drawScore(s.clock.Score())
}

func (c *Controller) Running() bool { return c.inProgress.Load() }

// Score of the current or last session, zero before the first one.
func (c *Controller) Score() uint32 {
	if s := c.current.Load(); s != nil {
		return s.clock.Score()
	}
	return 0
}

// Elapsed returns the tick count of the current or last session.
func (c *Controller) Elapsed() uint32 {
	if s := c.current.Load(); s != nil {
		return s.clock.Elapsed()
	}
	return 0
}

// Delay returns the obstacle delay of the current or last session.
func (c *Controller) Delay() uint32 {
	if s := c.current.Load(); s != nil {
		return s.clock.Delay()
	}
	return uint32(c.cfg.Difficulty.InitialDelay)
}

// Wait blocks until the tasks of the current session have returned.
func (c *Controller) Wait() {
	if s := c.current.Load(); s != nil {
		s.tasks.Wait()
	}
}

// Ball returns the ball of the current or last session.
func (c *Controller) Ball() model.Ball {
	if s := c.current.Load(); s != nil {
		return *s.ball.Load()
	}
	return *c.startBall()
}

// Obstacles returns every pool slot, live or retired.
func (c *Controller) Obstacles() []model.Obstacle { return c.pool.Snapshot() }

func (c *Controller) Field() model.Field { return c.field }

// IndicatorRow returns the lit indicator row, or -1.
func (c *Controller) IndicatorRow() int { return c.mapper.Row() }

func (c *Controller) startBall() *model.Ball {
	b := c.cfg.Ball
	return &model.Ball{X: b.StartX, Y: b.StartY, Speed: b.Speed, Radius: b.Radius}
}

// pause sleeps for a duration given in delay units. Negative durations do not
// sleep.
func (c *Controller) pause(units int) {
	if units < 0 {
		return
	}
	c.hw.Scheduler.Sleep(uint32(units / c.cfg.Kernel.SleepDivisor))
}

func (c *Controller) play(id string) {
	if c.hw.Sound != nil && c.cfg.Frontend.Sound {
		c.hw.Sound.Play(id)
	}
}
