package metrics

import (
	"bytes"
	"strings"
	"testing"
)

func TestCollectorEventsTotal(t *testing.T) {
	c := NewCollector()

	c.IncrementEvents("sms")
	c.IncrementEvents("sms")
	c.IncrementEvents("wifi")

	events := c.GetEventsTotal()

	if events["sms"] != 2 {
		t.Errorf("Expected sms=2, got %d", events["sms"])
	}
	if events["wifi"] != 1 {
		t.Errorf("Expected wifi=1, got %d", events["wifi"])
	}
}

func TestCollectorOutcomes(t *testing.T) {
	c := NewCollector()

	c.IncrementOutcome("announced")
	c.IncrementOutcome("announced")
	c.IncrementOutcome("suppressed")
	c.IncrementOutcome("no_headset")

	outcomes := c.GetOutcomesTotal()

	if outcomes["announced"] != 2 {
		t.Errorf("Expected announced=2, got %d", outcomes["announced"])
	}
	if outcomes["suppressed"] != 1 {
		t.Errorf("Expected suppressed=1, got %d", outcomes["suppressed"])
	}
	if outcomes["no_headset"] != 1 {
		t.Errorf("Expected no_headset=1, got %d", outcomes["no_headset"])
	}
}

func TestCollectorSpeechSeconds(t *testing.T) {
	c := NewCollector()

	c.AddSpeechSeconds(3)
	c.AddSpeechSeconds(2)

	if c.GetSpeechSeconds() != 5 {
		t.Errorf("Expected 5 speech seconds, got %d", c.GetSpeechSeconds())
	}
}

func TestPrometheusFormat(t *testing.T) {
	c := NewCollector()

	c.IncrementEvents("sms")
	c.IncrementEvents("sms")
	c.IncrementOutcome("announced")
	c.AddSpeechSeconds(7)

	buf := &bytes.Buffer{}
	c.WritePrometheus(buf)
	output := buf.String()

	// Check for expected metrics
	expectedLines := []string{
		"# HELP headsetharry_events_total Events received by kind",
		"# TYPE headsetharry_events_total counter",
		`headsetharry_events_total{kind="sms"} 2`,
		"# HELP headsetharry_announcements_total Announcement attempts by outcome",
		"# TYPE headsetharry_announcements_total counter",
		`headsetharry_announcements_total{outcome="announced"} 1`,
		"# HELP headsetharry_speech_seconds_total Total speech playback time",
		"# TYPE headsetharry_speech_seconds_total counter",
		"headsetharry_speech_seconds_total 7",
	}

	for _, line := range expectedLines {
		if !strings.Contains(output, line) {
			t.Errorf("Missing expected line: %s\nGot:\n%s", line, output)
		}
	}
}

func TestCollectorConcurrency(t *testing.T) {
	c := NewCollector()

	// Run concurrent increments
	done := make(chan struct{})

	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				c.IncrementEvents("sms")
				c.IncrementOutcome("announced")
				c.AddSpeechSeconds(1)
			}
			done <- struct{}{}
		}()
	}

	// Wait for all goroutines
	for i := 0; i < 10; i++ {
		<-done
	}

	events := c.GetEventsTotal()
	outcomes := c.GetOutcomesTotal()

	if events["sms"] != 1000 {
		t.Errorf("Expected sms=1000, got %d", events["sms"])
	}
	if outcomes["announced"] != 1000 {
		t.Errorf("Expected announced=1000, got %d", outcomes["announced"])
	}
	if c.GetSpeechSeconds() != 1000 {
		t.Errorf("Expected 1000 speech seconds, got %d", c.GetSpeechSeconds())
	}
}

func TestDefaultCollector(t *testing.T) {
	// Reset default collector for clean test
	defaultCollector = NewCollector()

	IncrementEvents("email")
	IncrementOutcome("no_engine")

	c := Default()
	events := c.GetEventsTotal()
	outcomes := c.GetOutcomesTotal()

	if events["email"] != 1 {
		t.Error("Default collector IncrementEvents failed")
	}
	if outcomes["no_engine"] != 1 {
		t.Error("Default collector IncrementOutcome failed")
	}
}
