package engine

import "context"

// keyPollTicks is how often ServeKeys reads the joystick.
const keyPollTicks = 2

// ServeKeys runs the idle loop of the board: CENTER toggles the session and UP
// starts one. It returns once ctx is done.
func (c *Controller) ServeKeys(ctx context.Context, keys Keypad) {
	for ctx.Err() == nil {
		switch keys.PollKey() {
		case KeyCenter:
			if c.Running() {
				c.Stop()
			} else {
				c.Start()
			}
		case KeyUp:
			if !c.Running() {
				c.Start()
			}
		}
		c.hw.Scheduler.Sleep(keyPollTicks)
	}
}
