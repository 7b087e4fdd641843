// Package mixer implements the frame loop: the single-threaded cooperative
// tick that drains reload signals, runs queued commands, mixes the effect
// pool onto the installation, serialises the universe, and hands it off to
// the DMX transmitter.
package mixer

import (
	"context"
	"time"

	"github.com/robmorgan/lumacue/effect"
	"github.com/robmorgan/lumacue/installation"
	"github.com/robmorgan/lumacue/logger"
	"k8s.io/utils/clock"
)

// TickInterval is the mixer's fixed ~30Hz cadence.
const TickInterval = time.Second / 30

// SendStatus is the outcome of handing a universe to the transmitter this
// tick, surfaced to the console/UI.
type SendStatus int

const (
	SendOK SendStatus = iota
	SendError
)

// Mixer owns the installation, effect pool, and their wiring to the
// transmitter and pattern-reload signal queues. It is the sole owner of
// all three; no other goroutine may observe or mutate them.
type Mixer struct {
	Installation *installation.Installation
	Pool         *effect.Pool

	Clock clock.Clock

	// Universes is the bounded single-producer/single-consumer channel the
	// transmitter drains. A full channel means the transmitter is behind;
	// the mixer does not block on it (non-blocking send, see §4.9/§5).
	Universes chan []byte

	// ReloadSignal is the single-producer/single-consumer channel the
	// pattern-directory watcher feeds; any number of pending signals
	// collapse into one bulk pattern reload per tick.
	ReloadSignal chan struct{}

	// LastStatus is the most recent universe hand-off result.
	LastStatus SendStatus
}

// New builds a Mixer. universeBuf sizes the bounded universe channel (use
// a small buffer, e.g. 1, so few frames wait for the transmitter). When the
// channel is full, Tick drops the new frame and records SendError.
func New(inst *installation.Installation, pool *effect.Pool, clk clock.Clock, universeBuf int) *Mixer {
	return &Mixer{
		Installation: inst,
		Pool:         pool,
		Clock:        clk,
		Universes:    make(chan []byte, universeBuf),
		ReloadSignal: make(chan struct{}, 64),
	}
}

// Tick runs exactly one frame: reload-drain, run commands, apply effects,
// build the universe, non-blocking send to the transmitter. The order is
// fixed and matches the frame loop's documented ordering guarantee.
func (m *Mixer) Tick() {
	if m.drainReloadSignal() {
		m.Pool.ReloadPatterns()
	}

	m.Pool.RunCommands()
	m.Pool.ApplyTo(m.Installation)
	universe := m.Installation.BuildUniverse()

	// BuildUniverse already allocates a fresh slice each call; the copy
	// keeps the sent frame independent of it all the same.
	frame := make([]byte, len(universe))
	copy(frame, universe)

	select {
	case m.Universes <- frame:
		m.LastStatus = SendOK
	default:
		m.LastStatus = SendError
		logger.GetProjectLogger().Warn("universe channel full, dropping frame")
	}
}

// drainReloadSignal consumes every pending reload notification, returning
// true if at least one was drained.
func (m *Mixer) drainReloadSignal() bool {
	drained := false
	for {
		select {
		case <-m.ReloadSignal:
			drained = true
		default:
			return drained
		}
	}
}

// Run drives Tick on a fixed ~30Hz ticker until ctx is cancelled.
func (m *Mixer) Run(ctx context.Context) {
	ticker := m.Clock.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			m.Tick()
		}
	}
}
