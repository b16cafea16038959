package engine

import (
	"github.com/Nikodemek/ballgame/core/model"
	"github.com/Nikodemek/ballgame/core/tilt"
)

func (c *Controller) tasks(s *session) []Task {
	k := c.cfg.Kernel
	return []Task{
		{Name: "tilt-x", Run: func() { c.tiltLoop(s, tilt.AxisX) }, Stack: k.TiltStack, Priority: k.Priority},
		{Name: "tilt-y", Run: func() { c.tiltLoop(s, tilt.AxisY) }, Stack: k.TiltStack, Priority: k.Priority},
		{Name: "obstacles", Run: func() { c.obstacleLoop(s) }, Stack: k.ObstacleStack, Priority: k.Priority},
		{Name: "time", Run: func() { c.timeLoop(s) }, Stack: k.TimeStack, Priority: k.Priority},
	}
}

func (c *Controller) tiltLoop(s *session, a tilt.Axis) {
	for s.running() {
		c.pause(c.tiltStep(s, a))
	}
	c.logger.Debugf("[ENGINE] tilt-%s task done", a)
}

// tiltStep reads one sample, moves the ball if the board is tilted far enough
// and returns how long to sleep.
func (c *Controller) tiltStep(s *session, a tilt.Axis) int {
	m := c.curve.Resolve(a, c.sampler.Deviation(s.ref[a], a))
	if m.Strength > 0 {
		c.moveBall(s, m.Dir)
	} else if s.active.Load() {
		// An obstacle erase may have uncovered part of the ball.
		c.paintBall(s, s.ball.Load())
	}
	return m.Delay
}

// moveBall publishes the moved ball as one pointer swap. The other tilt task
// may move it concurrently; a lost swap is retried against the fresh value.
func (c *Controller) moveBall(s *session, dir model.Direction) {
	for {
		old := s.ball.Load()
		next, ok := old.Step(dir, c.field)
		if !ok || next == *old {
			if s.active.Load() {
				c.paintBall(s, old)
			}
			return
		}
		if !s.ball.CompareAndSwap(old, &next) {
			continue
		}
		c.eraseRect(old.Rect())
		c.paintBall(s, &next)
		c.mapper.Update(next.Y)
		c.checkCollision(s)
		return
	}
}

// paintBall draws b. If another task has published a newer ball meanwhile, the
// stale picture is replaced by the current one until they agree, so the task
// that publishes last also paints last.
func (c *Controller) paintBall(s *session, b *model.Ball) {
	c.fillRect(b.Rect())
	for {
		cur := s.ball.Load()
		if cur == b {
			return
		}
		c.eraseRect(b.Rect())
		c.fillRect(cur.Rect())
		b = cur
	}
}

func (c *Controller) obstacleLoop(s *session) {
	c.pause(c.cfg.Obstacles.SpawnDelay)
	for s.running() {
		c.obstacleStep(s)
	}
	c.logger.Debugf("[ENGINE] obstacle task done")
}

func (c *Controller) obstacleStep(s *session) {
	c.pause(int(s.clock.Delay()))
	c.advanceObstacles()
	c.checkCollision(s)
	if slot, ok := c.pool.Respawn(c.cfg.Obstacles.MinClearance, c.spawner.Next); ok {
		c.logger.Debugf("[ENGINE] respawned slot %d: %+v", slot.Index, slot.Obstacle)
	}
}

// advanceObstacles erases every live obstacle, then moves and redraws them.
// The ball is left to the tilt tasks.
func (c *Controller) advanceObstacles() {
	for _, sl := range c.pool.Live() {
		c.eraseRect(sl.Obstacle.Rect())
	}
	for _, sl := range c.pool.Advance() {
		if sl.Obstacle.Live(c.field.Height) {
			c.fillRect(sl.Obstacle.Rect())
		}
	}
}

func (c *Controller) checkCollision(s *session) {
	b := s.ball.Load()
	sl, hit := c.pool.Hit(b.Rect())
	if !hit || !s.active.Load() {
		return
	}
	c.logger.Infof("[ENGINE] ball at (%d,%d) hit obstacle %d at (%d,%d)", b.X, b.Y, sl.Index, sl.Obstacle.X, sl.Obstacle.Y)
	c.play(SoundCrash)
	c.end(s)
}

func (c *Controller) timeLoop(s *session) {
	for s.running() {
		c.timeStep(s)
	}
	c.logger.Debugf("[ENGINE] time task done")
}

func (c *Controller) timeStep(s *session) {
	if s.clock.Tick() {
		c.logger.Debugf("[ENGINE] obstacle delay now %d", s.clock.Delay())
	}
	c.pause(c.cfg.Difficulty.TickDelay)
}
