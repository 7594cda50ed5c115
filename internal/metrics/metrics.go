package metrics

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
)

// Collector holds all metrics
type Collector struct {
	eventsTotal   map[string]*atomic.Int64 // by event kind
	outcomesTotal map[string]*atomic.Int64 // by outcome
	speechSeconds atomic.Int64
	mu            sync.RWMutex
}

// NewCollector creates a new metrics collector
func NewCollector() *Collector {
	return &Collector{
		eventsTotal:   make(map[string]*atomic.Int64),
		outcomesTotal: make(map[string]*atomic.Int64),
	}
}

// IncrementEvents increments the event counter for an event kind
func (c *Collector) IncrementEvents(kind string) {
	c.mu.Lock()
	counter, ok := c.eventsTotal[kind]
	if !ok {
		counter = &atomic.Int64{}
		c.eventsTotal[kind] = counter
	}
	c.mu.Unlock()
	counter.Add(1)
}

// IncrementOutcome increments the counter for an announcement outcome
// (announced, suppressed, no_headset, no_engine, error, nothing)
func (c *Collector) IncrementOutcome(outcome string) {
	c.mu.Lock()
	counter, ok := c.outcomesTotal[outcome]
	if !ok {
		counter = &atomic.Int64{}
		c.outcomesTotal[outcome] = counter
	}
	c.mu.Unlock()
	counter.Add(1)
}

// AddSpeechSeconds adds time spent with speech playing
func (c *Collector) AddSpeechSeconds(seconds int) {
	c.speechSeconds.Add(int64(seconds))
}

// GetEventsTotal returns event counts by kind
func (c *Collector) GetEventsTotal() map[string]int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make(map[string]int64)
	for kind, counter := range c.eventsTotal {
		result[kind] = counter.Load()
	}
	return result
}

// GetOutcomesTotal returns announcement counts by outcome
func (c *Collector) GetOutcomesTotal() map[string]int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make(map[string]int64)
	for outcome, counter := range c.outcomesTotal {
		result[outcome] = counter.Load()
	}
	return result
}

// GetSpeechSeconds returns total speech playback time in seconds
func (c *Collector) GetSpeechSeconds() int64 {
	return c.speechSeconds.Load()
}

// WritePrometheus writes metrics in Prometheus text format
func (c *Collector) WritePrometheus(w io.Writer) {
	// Events total
	fmt.Fprintln(w, "# HELP headsetharry_events_total Events received by kind")
	fmt.Fprintln(w, "# TYPE headsetharry_events_total counter")
	events := c.GetEventsTotal()
	for _, kind := range sortedKeys(events) {
		fmt.Fprintf(w, "headsetharry_events_total{kind=%q} %d\n", kind, events[kind])
	}

	fmt.Fprintln(w)

	// Outcomes total
	fmt.Fprintln(w, "# HELP headsetharry_announcements_total Announcement attempts by outcome")
	fmt.Fprintln(w, "# TYPE headsetharry_announcements_total counter")
	outcomes := c.GetOutcomesTotal()
	for _, outcome := range sortedKeys(outcomes) {
		fmt.Fprintf(w, "headsetharry_announcements_total{outcome=%q} %d\n", outcome, outcomes[outcome])
	}

	fmt.Fprintln(w)

	// Speech time
	fmt.Fprintln(w, "# HELP headsetharry_speech_seconds_total Total speech playback time")
	fmt.Fprintln(w, "# TYPE headsetharry_speech_seconds_total counter")
	fmt.Fprintf(w, "headsetharry_speech_seconds_total %d\n", c.GetSpeechSeconds())
}

// sortedKeys returns sorted keys of a map
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Handler returns an HTTP handler for the metrics endpoint
func (c *Collector) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		c.WritePrometheus(w)
	}
}

// Global collector instance
var defaultCollector = NewCollector()

// Default returns the default metrics collector
func Default() *Collector {
	return defaultCollector
}

// IncrementEvents increments events on the default collector
func IncrementEvents(kind string) {
	defaultCollector.IncrementEvents(kind)
}

// IncrementOutcome increments outcomes on the default collector
func IncrementOutcome(outcome string) {
	defaultCollector.IncrementOutcome(outcome)
}

// Handler returns the default collector's HTTP handler
func Handler() http.HandlerFunc {
	return defaultCollector.Handler()
}
