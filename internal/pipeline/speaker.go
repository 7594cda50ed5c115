// Package pipeline drives events through announcement building, duplicate
// suppression, headset gating, engine negotiation and speech output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/walles/headsetharry-sub000/internal/announce"
	"github.com/walles/headsetharry-sub000/internal/audio"
	"github.com/walles/headsetharry-sub000/internal/config"
	"github.com/walles/headsetharry-sub000/internal/dailylog"
	"github.com/walles/headsetharry-sub000/internal/logger"
	"github.com/walles/headsetharry-sub000/internal/metrics"
	"github.com/walles/headsetharry-sub000/internal/store"
	"github.com/walles/headsetharry-sub000/internal/tts"
	"github.com/walles/headsetharry-sub000/pkg/types"
)

// Outcome classifies what happened to one announcement attempt
type Outcome string

const (
	OutcomeAnnounced  Outcome = "announced"
	OutcomeSuppressed Outcome = "suppressed"
	OutcomeNoHeadset  Outcome = "no_headset"
	OutcomeNoEngine   Outcome = "no_engine"
	OutcomeNothing    Outcome = "nothing"
	OutcomeDisabled   Outcome = "disabled"
	OutcomeError      Outcome = "error"
)

// History persists announcement attempts and per-kind capability flags
type History interface {
	SetCapability(kind string, enabled bool) error
	Capability(kind string) (bool, error)
	RecordAnnouncement(r *store.AnnouncementRecord) error
}

// Builders bundles one announcement builder per event kind
type Builders struct {
	SMS          *announce.SMSBuilder
	MMS          *announce.MMSBuilder
	Email        *announce.EmailBuilder
	Calendar     *announce.CalendarBuilder
	WiFi         *announce.WiFiBuilder
	Notification *announce.NotificationBuilder
}

// Speaker turns events into speech. One announcement is in flight at a
// time; concurrent events wait their turn.
type Speaker struct {
	mu sync.Mutex

	builders   Builders
	suppressor *announce.Suppressor
	gate       *audio.Gate
	negotiator *tts.Negotiator
	history    History
	daily      *dailylog.Writer
	collector  *metrics.Collector
	log        *logger.Logger
}

// NewSpeaker wires the announcement pipeline together. history and daily
// may be nil when persistence is disabled.
func NewSpeaker(
	builders Builders,
	suppressor *announce.Suppressor,
	gate *audio.Gate,
	negotiator *tts.Negotiator,
	history History,
	daily *dailylog.Writer,
	collector *metrics.Collector,
) *Speaker {
	if collector == nil {
		collector = metrics.Default()
	}
	return &Speaker{
		builders:   builders,
		suppressor: suppressor,
		gate:       gate,
		negotiator: negotiator,
		history:    history,
		daily:      daily,
		collector:  collector,
		log:        logger.GetDefaultLogger().WithComponent("pipeline"),
	}
}

// Announce runs one event through the full pipeline and reports what
// happened. Only infrastructure failures surface as errors; quiet outcomes
// like suppression or a missing headset are normal results.
func (s *Speaker) Announce(ctx context.Context, ev announce.Event) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kind := ev.Kind()
	s.collector.IncrementEvents(kind)

	if enabled := s.capability(kind); !enabled {
		s.log.Debug("Announcements for %s are disabled, skipping", kind)
		s.collector.IncrementOutcome(string(OutcomeDisabled))
		return OutcomeDisabled, nil
	}

	a, err := s.build(ctx, ev)
	if err != nil {
		if errors.Is(err, announce.ErrNothingToAnnounce) {
			s.collector.IncrementOutcome(string(OutcomeNothing))
			return OutcomeNothing, nil
		}
		if errors.Is(err, announce.ErrPermissionDenied) {
			s.log.Warn("Permission denied for %s events, disabling them", kind)
			if s.history != nil {
				if err := s.history.SetCapability(kind, false); err != nil {
					s.log.Error("Failed to persist capability flag: %v", err)
				}
			}
			s.record(kind, a, OutcomeError)
			return OutcomeError, err
		}
		s.record(kind, a, OutcomeError)
		return OutcomeError, fmt.Errorf("building %s announcement: %w", kind, err)
	}

	if s.suppressor.IsDuplicate(a) {
		s.log.Debug("Suppressing duplicate %s announcement: %s", kind, a.String())
		s.record(kind, a, OutcomeSuppressed)
		return OutcomeSuppressed, nil
	}

	route, err := s.gate.Acquire(ctx)
	if err != nil {
		if errors.Is(err, audio.ErrNoHeadset) {
			s.log.Info("No headset, staying quiet about %s: %s", kind, a.String())
			s.record(kind, a, OutcomeNoHeadset)
			return OutcomeNoHeadset, nil
		}
		s.record(kind, a, OutcomeError)
		return OutcomeError, fmt.Errorf("acquiring audio route: %w", err)
	}
	defer route.Release(ctx)

	outcome, err := s.speak(ctx, a)
	s.record(kind, a, outcome)
	if err != nil {
		return outcome, err
	}

	s.log.Info("Announced %s on %s stream: %s", kind, route.Stream, a.String())
	return outcome, nil
}

// speak negotiates an engine per distinct segment locale and plays the
// segments in order. All engines bound during the call are shut down
// before returning.
func (s *Speaker) speak(ctx context.Context, a types.Announcement) (Outcome, error) {
	bound := make(map[string]tts.Bound)
	defer func() {
		for _, b := range bound {
			if err := b.Engine.Shutdown(); err != nil {
				s.log.Warn("Engine %s shutdown failed: %v", b.Engine.ID(), err)
			}
		}
	}()

	started := time.Now()

	for _, segment := range a {
		key := segment.Locale.String()
		b, ok := bound[key]
		if !ok {
			var err error
			b, err = s.negotiator.Negotiate(ctx, segment.Locale)
			if err != nil {
				if errors.Is(err, tts.ErrNoEngine) {
					s.log.Warn("No engine speaks %s, giving up", segment.Locale)
					return OutcomeNoEngine, nil
				}
				return OutcomeError, fmt.Errorf("negotiating engine for %s: %w", segment.Locale, err)
			}
			bound[key] = b
		}

		if err := b.Engine.Speak(ctx, b.Locale, segment.Text); err != nil {
			return OutcomeError, fmt.Errorf("speaking with %s: %w", b.Engine.ID(), err)
		}
	}

	s.collector.AddSpeechSeconds(int(time.Since(started).Seconds()))
	return OutcomeAnnounced, nil
}

// build dispatches the event to its kind's builder
func (s *Speaker) build(ctx context.Context, ev announce.Event) (types.Announcement, error) {
	switch ev := ev.(type) {
	case announce.SMSEvent:
		return s.builders.SMS.Build(ctx, ev)
	case announce.MMSEvent:
		return s.builders.MMS.Build(ctx, ev)
	case announce.EmailEvent:
		return s.builders.Email.Build(ctx, ev)
	case announce.CalendarEvent:
		return s.builders.Calendar.Build(ctx, ev)
	case announce.WiFiEvent:
		return s.builders.WiFi.Build(ctx, ev)
	case announce.NotificationEvent:
		return s.builders.Notification.Build(ctx, ev)
	default:
		return nil, fmt.Errorf("unknown event kind %q", ev.Kind())
	}
}

// capability reports whether announcements of a kind are enabled.
// Persistence failures default to enabled so a broken database never mutes
// the whole app.
func (s *Speaker) capability(kind string) bool {
	if s.history == nil {
		return true
	}
	enabled, err := s.history.Capability(kind)
	if err != nil {
		s.log.Error("Failed to load capability for %s: %v", kind, err)
		return true
	}
	return enabled
}

// record persists one attempt to history, daily log and metrics
func (s *Speaker) record(kind string, a types.Announcement, outcome Outcome) {
	s.collector.IncrementOutcome(string(outcome))

	text := ""
	locale := ""
	if len(a) > 0 {
		text = a.String()
		locale = a[0].Locale.String()
	}

	if s.history != nil {
		err := s.history.RecordAnnouncement(&store.AnnouncementRecord{
			ID:      uuid.New().String(),
			Kind:    kind,
			Locale:  locale,
			Text:    text,
			Outcome: string(outcome),
		})
		if err != nil {
			s.log.Error("Failed to record announcement: %v", err)
		}
	}

	if s.daily != nil {
		err := s.daily.Log(dailylog.Entry{
			Kind:    kind,
			Locale:  locale,
			Text:    text,
			Outcome: string(outcome),
		})
		if err != nil {
			s.log.Error("Failed to write daily log: %v", err)
		}
	}
}

// ApplyConfig applies reloadable settings to a running pipeline
func (s *Speaker) ApplyConfig(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	window := time.Duration(cfg.Speech.SuppressionWindowSeconds) * time.Second
	s.suppressor.SetWindow(window)
	logger.SetLevel(logger.ParseLevel(cfg.Log.Level))
	s.log.Info("Applied config: suppression window %v, log level %s", window, cfg.Log.Level)
}
