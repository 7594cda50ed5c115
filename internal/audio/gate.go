// Package audio decides whether speech may be routed to a headset and plays
// synthesized MP3 audio.
package audio

import (
	"context"
	"errors"
	"time"

	"github.com/walles/headsetharry-sub000/internal/logger"
)

// ErrNoHeadset means no headset route could be established and nothing
// should be spoken
var ErrNoHeadset = errors.New("no headset connected")

// Stream is the output stream an announcement should play on
type Stream int

const (
	// StreamMedia is the media/music stream, used for A2DP and wired
	// headsets
	StreamMedia Stream = iota
	// StreamVoiceCall is the in-call stream, used over Bluetooth SCO
	StreamVoiceCall
)

func (s Stream) String() string {
	switch s {
	case StreamMedia:
		return "media"
	case StreamVoiceCall:
		return "voice-call"
	default:
		return "unknown"
	}
}

// Router exposes the platform's audio routing state and controls
type Router interface {
	A2DPActive(ctx context.Context) bool
	WiredHeadsetConnected(ctx context.Context) bool

	// StartSCO requests Bluetooth SCO negotiation. Connection state is
	// observed through SCOConnected.
	StartSCO(ctx context.Context) error
	StopSCO(ctx context.Context) error
	SCOConnected(ctx context.Context) bool
}

// Route is an acquired audio path. Release must be called after speech
// completes so SCO enabled by the gate is torn down again.
type Route struct {
	Stream Stream

	gate       *Gate
	scoEnabled bool
}

// Release tears down any SCO connection the gate itself enabled
func (r *Route) Release(ctx context.Context) {
	if !r.scoEnabled {
		return
	}
	r.scoEnabled = false
	if err := r.gate.router.StopSCO(ctx); err != nil {
		r.gate.log.Warn("Failed to stop SCO: %v", err)
	}
}

// Gate decides whether audio output should proceed at all, and on which
// stream. First match wins: A2DP, wired headset, negotiated SCO, then the
// assume-headset override for emulated environments.
type Gate struct {
	router        Router
	assumeHeadset bool
	scoTimeout    time.Duration
	scoPoll       time.Duration
	now           func() time.Time
	sleep         func(time.Duration)
	log           *logger.Logger
}

// NewGate creates a gate over the given router. assumeHeadset makes the
// gate proceed on the media stream when no real headset is found.
func NewGate(router Router, assumeHeadset bool, scoTimeout, scoPoll time.Duration) *Gate {
	if scoTimeout <= 0 {
		scoTimeout = 3 * time.Second
	}
	if scoPoll <= 0 {
		scoPoll = 500 * time.Millisecond
	}
	return &Gate{
		router:        router,
		assumeHeadset: assumeHeadset,
		scoTimeout:    scoTimeout,
		scoPoll:       scoPoll,
		now:           time.Now,
		sleep:         time.Sleep,
		log:           logger.GetDefaultLogger().WithComponent("audio"),
	}
}

// SetClock replaces the gate's wall clock and sleeper, for tests
func (g *Gate) SetClock(now func() time.Time, sleep func(time.Duration)) {
	g.now = now
	g.sleep = sleep
}

// Acquire establishes an audio route, or returns ErrNoHeadset when nothing
// is connected and the assume-headset override is off
func (g *Gate) Acquire(ctx context.Context) (*Route, error) {
	if g.router.A2DPActive(ctx) {
		g.log.Debug("A2DP active, using media stream")
		return &Route{Stream: StreamMedia, gate: g}, nil
	}

	if g.router.WiredHeadsetConnected(ctx) {
		g.log.Debug("Wired headset connected, using media stream")
		return &Route{Stream: StreamMedia, gate: g}, nil
	}

	if ok := g.negotiateSCO(ctx); ok {
		g.log.Debug("SCO negotiated, using voice-call stream")
		return &Route{Stream: StreamVoiceCall, gate: g, scoEnabled: true}, nil
	}

	if g.assumeHeadset {
		g.log.Debug("No headset but assume-headset is on, using media stream")
		return &Route{Stream: StreamMedia, gate: g}, nil
	}

	return nil, ErrNoHeadset
}

// negotiateSCO starts SCO and polls for a connection within the budget.
// Failure to connect leaves SCO stopped.
func (g *Gate) negotiateSCO(ctx context.Context) bool {
	if err := g.router.StartSCO(ctx); err != nil {
		g.log.Debug("SCO start refused: %v", err)
		return false
	}

	deadline := g.now().Add(g.scoTimeout)
	for {
		if g.router.SCOConnected(ctx) {
			return true
		}
		if err := ctx.Err(); err != nil {
			break
		}
		if g.now().Add(g.scoPoll).After(deadline) {
			break
		}
		g.sleep(g.scoPoll)
	}

	g.log.Debug("SCO did not connect within %v", g.scoTimeout)
	if err := g.router.StopSCO(ctx); err != nil {
		g.log.Warn("Failed to stop SCO after timeout: %v", err)
	}
	return false
}
