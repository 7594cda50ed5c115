package audio

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRouter struct {
	a2dp  bool
	wired bool

	scoStartErr     error
	scoConnectAfter int // SCOConnected polls before reporting connected, -1 = never

	scoPolls  int
	scoStarts int
	scoStops  int
}

func (f *fakeRouter) A2DPActive(context.Context) bool { return f.a2dp }

func (f *fakeRouter) WiredHeadsetConnected(context.Context) bool { return f.wired }

func (f *fakeRouter) StartSCO(context.Context) error {
	f.scoStarts++
	return f.scoStartErr
}

func (f *fakeRouter) StopSCO(context.Context) error {
	f.scoStops++
	return nil
}

func (f *fakeRouter) SCOConnected(context.Context) bool {
	f.scoPolls++
	if f.scoConnectAfter < 0 {
		return false
	}
	return f.scoPolls > f.scoConnectAfter
}

// testClock drives the gate's time without real sleeping
type testClock struct {
	at time.Time
}

func (c *testClock) now() time.Time        { return c.at }
func (c *testClock) sleep(d time.Duration) { c.at = c.at.Add(d) }

func newTestGate(router *fakeRouter, assumeHeadset bool) *Gate {
	g := NewGate(router, assumeHeadset, 3*time.Second, 500*time.Millisecond)
	clock := &testClock{at: time.Unix(1000, 0)}
	g.SetClock(clock.now, clock.sleep)
	return g
}

func TestAcquire_A2DP(t *testing.T) {
	router := &fakeRouter{a2dp: true, wired: true}
	route, err := newTestGate(router, false).Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	if route.Stream != StreamMedia {
		t.Errorf("Expected media stream, got %s", route.Stream)
	}
	if router.scoStarts != 0 {
		t.Error("SCO should not be attempted when A2DP is active")
	}

	route.Release(context.Background())
	if router.scoStops != 0 {
		t.Error("Release must not stop SCO the gate never enabled")
	}
}

func TestAcquire_WiredHeadset(t *testing.T) {
	router := &fakeRouter{wired: true}
	route, err := newTestGate(router, false).Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	if route.Stream != StreamMedia {
		t.Errorf("Expected media stream, got %s", route.Stream)
	}
}

func TestAcquire_SCONegotiated(t *testing.T) {
	router := &fakeRouter{scoConnectAfter: 2}
	route, err := newTestGate(router, false).Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	if route.Stream != StreamVoiceCall {
		t.Errorf("Expected voice-call stream, got %s", route.Stream)
	}
	if router.scoStarts != 1 {
		t.Errorf("Expected 1 SCO start, got %d", router.scoStarts)
	}

	route.Release(context.Background())
	if router.scoStops != 1 {
		t.Errorf("Release must stop gate-enabled SCO, got %d stops", router.scoStops)
	}

	// Releasing twice must not stop SCO twice
	route.Release(context.Background())
	if router.scoStops != 1 {
		t.Errorf("Second release stopped SCO again, got %d stops", router.scoStops)
	}
}

func TestAcquire_SCOTimeout(t *testing.T) {
	router := &fakeRouter{scoConnectAfter: -1}
	_, err := newTestGate(router, false).Acquire(context.Background())
	if !errors.Is(err, ErrNoHeadset) {
		t.Fatalf("Expected ErrNoHeadset, got %v", err)
	}

	// 3 s budget at 500 ms per poll allows 7 connection checks
	if router.scoPolls < 2 || router.scoPolls > 8 {
		t.Errorf("Unexpected poll count %d", router.scoPolls)
	}
	if router.scoStops != 1 {
		t.Errorf("Failed negotiation must stop SCO, got %d stops", router.scoStops)
	}
}

func TestAcquire_SCOStartRefused(t *testing.T) {
	router := &fakeRouter{scoStartErr: errors.New("no bluetooth"), scoConnectAfter: 0}
	_, err := newTestGate(router, false).Acquire(context.Background())
	if !errors.Is(err, ErrNoHeadset) {
		t.Fatalf("Expected ErrNoHeadset, got %v", err)
	}
	if router.scoPolls != 0 {
		t.Error("Refused SCO start should not be polled")
	}
}

func TestAcquire_AssumeHeadset(t *testing.T) {
	router := &fakeRouter{scoConnectAfter: -1}
	route, err := newTestGate(router, true).Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	if route.Stream != StreamMedia {
		t.Errorf("Expected media stream, got %s", route.Stream)
	}
	if router.scoStarts != 1 {
		t.Error("SCO should still be attempted before the override kicks in")
	}
}

func TestAcquire_NoHeadset(t *testing.T) {
	router := &fakeRouter{scoConnectAfter: -1}
	_, err := newTestGate(router, false).Acquire(context.Background())
	if !errors.Is(err, ErrNoHeadset) {
		t.Fatalf("Expected ErrNoHeadset, got %v", err)
	}
}

func TestStreamString(t *testing.T) {
	if StreamMedia.String() != "media" {
		t.Errorf("Unexpected name %q", StreamMedia.String())
	}
	if StreamVoiceCall.String() != "voice-call" {
		t.Errorf("Unexpected name %q", StreamVoiceCall.String())
	}
}
