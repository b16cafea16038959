package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Nikodemek/ballgame/core/difficulty"
	"github.com/Nikodemek/ballgame/core/model"
	"github.com/Nikodemek/ballgame/internal/config"
)

// session is the state one Start hands to its four tasks.
type session struct {
	ctx    context.Context
	cancel context.CancelFunc
	active atomic.Bool
	clock  *difficulty.Clock
	ball   atomic.Pointer[model.Ball]
	ref    [2]uint16
	tasks  sync.WaitGroup
}

func newSession(cfg config.Difficulty) *session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &session{ctx: ctx, cancel: cancel, clock: difficulty.NewClock(cfg)}
	s.active.Store(true)
	return s
}

// running is checked once at the top of every task iteration.
func (s *session) running() bool { return s.ctx.Err() == nil }
