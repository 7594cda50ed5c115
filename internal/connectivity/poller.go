// Package connectivity provides a background poller that turns WiFi status
// changes into announcement triggers.
package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/walles/headsetharry-sub000/internal/announce"
	"github.com/walles/headsetharry-sub000/internal/logger"
)

// DefaultIntervalSeconds is the default poll interval
const DefaultIntervalSeconds = 10

// Config holds the poller's runtime options. The yaml-facing settings
// live in the config package; callers map them onto this.
type Config struct {
	Enabled         bool
	IntervalSeconds int
}

// DefaultConfig returns the default poller configuration
func DefaultConfig() *Config {
	return &Config{
		Enabled:         false,
		IntervalSeconds: DefaultIntervalSeconds,
	}
}

// Callback is called when the WiFi state changes
type Callback func(ssid string, connected bool)

// Poller watches a WiFi status source and fires a callback whenever the
// SSID or connection state changes
type Poller struct {
	cfg      *Config
	source   announce.WiFiStatus
	callback Callback
	log      *logger.Logger

	mu       sync.RWMutex
	running  bool
	stopChan chan struct{}

	lastSSID      string
	lastConnected bool
	primed        bool
}

// New creates a poller over the given WiFi status source
func New(cfg *Config, source announce.WiFiStatus, callback Callback) *Poller {
	return &Poller{
		cfg:      cfg,
		source:   source,
		callback: callback,
		log:      logger.GetDefaultLogger().WithComponent("connectivity"),
	}
}

// Start begins the poll loop. Disabled or already-running pollers are
// no-ops.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if !p.cfg.Enabled || p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stopChan = make(chan struct{})
	p.mu.Unlock()

	interval := p.pollInterval()
	p.log.Info("WiFi poller started (interval: %v)", interval)

	// Prime with the current state so startup doesn't announce
	p.observe(ctx)

	go p.loop(ctx, interval)
}

// pollInterval returns the configured interval, falling back to the
// default when the configured value is zero or negative
func (p *Poller) pollInterval() time.Duration {
	if p.cfg.IntervalSeconds < 1 {
		return DefaultIntervalSeconds * time.Second
	}
	return time.Duration(p.cfg.IntervalSeconds) * time.Second
}

// Stop stops the poller
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	p.running = false
	close(p.stopChan)
	p.log.Info("WiFi poller stopped")
}

// IsRunning returns whether the poller is running
func (p *Poller) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

func (p *Poller) loop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.Stop()
			return
		case <-p.stopChan:
			return
		case <-ticker.C:
			p.checkOnce(ctx)
		}
	}
}

// observe records the current state without firing the callback
func (p *Poller) observe(ctx context.Context) {
	ssid, connected := p.source.Current(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastSSID = ssid
	p.lastConnected = connected
	p.primed = true
}

// checkOnce compares the current state against the last observation and
// fires the callback on change
func (p *Poller) checkOnce(ctx context.Context) {
	ssid, connected := p.source.Current(ctx)

	p.mu.Lock()
	changed := !p.primed || ssid != p.lastSSID || connected != p.lastConnected
	p.lastSSID = ssid
	p.lastConnected = connected
	p.primed = true
	callback := p.callback
	p.mu.Unlock()

	if !changed || callback == nil {
		return
	}

	p.log.Debug("WiFi state changed: ssid=%q connected=%v", ssid, connected)
	callback(ssid, connected)
}

// ForceCheck triggers an immediate state comparison (for testing/debug)
func (p *Poller) ForceCheck(ctx context.Context) {
	p.checkOnce(ctx)
}
