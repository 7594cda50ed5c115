package announce

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/walles/headsetharry-sub000/internal/i18n"
	"github.com/walles/headsetharry-sub000/internal/logger"
	"github.com/walles/headsetharry-sub000/pkg/types"
)

// StaleAlarmThreshold is how far a fired alarm's requested time may differ
// from the current time before the firing is dropped as stale
const StaleAlarmThreshold = 45 * time.Second

// CalendarBuilder announces fired calendar alarms. Alarm timestamps are
// correlated against the platform calendar store to find matching events;
// declined events and redundant re-firings of the same (event, alarm) pair
// are skipped.
type CalendarBuilder struct {
	detect LanguageDetector
	table  *i18n.Table
	source CalendarSource
	now    Clock
	log    *logger.Logger

	mu          sync.Mutex
	lastEventID int64
	lastAlarm   time.Time
	hasLast     bool
}

// NewCalendarBuilder creates a calendar announcement builder. A nil clock
// uses time.Now.
func NewCalendarBuilder(detect LanguageDetector, table *i18n.Table, source CalendarSource, now Clock) *CalendarBuilder {
	if now == nil {
		now = time.Now
	}
	return &CalendarBuilder{
		detect: detect,
		table:  table,
		source: source,
		now:    now,
		log:    logger.GetDefaultLogger().WithComponent("announce"),
	}
}

// Build produces the announcement for one fired alarm, covering all
// matching non-declined events
func (b *CalendarBuilder) Build(ctx context.Context, ev CalendarEvent) (types.Announcement, error) {
	drift := b.now().Sub(ev.AlarmAt)
	if drift < 0 {
		drift = -drift
	}
	if drift > StaleAlarmThreshold {
		b.log.Debug("Dropping stale calendar alarm for %s (drift %s)", ev.AlarmAt, drift)
		return nil, ErrNothingToAnnounce
	}

	ids, err := b.source.EventIDsAt(ctx, ev.AlarmAt)
	if err != nil {
		return nil, fmt.Errorf("querying alarms at %s: %w", ev.AlarmAt, err)
	}

	var out types.Announcement
	var announcedID int64
	announced := false

	for _, id := range ids {
		if b.isRepeatFiring(id, ev.AlarmAt) {
			b.log.Debug("Skipping repeated firing for event %d at %s", id, ev.AlarmAt)
			continue
		}

		entry, err := b.source.EventByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("fetching event %d: %w", id, err)
		}
		if entry.Declined {
			continue
		}

		title := strings.TrimSpace(entry.Title)
		if title == "" {
			continue
		}

		detected, ok := b.detect.Detect(title)
		if !ok {
			detected, _ = b.detect.Detect(entry.Description)
		}
		phrasing := detected
		if phrasing.IsZero() {
			phrasing = b.table.DefaultLocale()
		}

		res, err := b.table.Resolve(phrasing, i18n.KeyCalendarReminder)
		if err != nil {
			return nil, err
		}
		segment, err := Format(res.Locale, res.Get(i18n.KeyCalendarReminder), Arg{Locale: detected, Text: title})
		if err != nil {
			return nil, err
		}
		if len(out) > 0 {
			out = out.Append(res.Locale, ". ")
		}
		for _, seg := range segment {
			out = out.Append(seg.Locale, seg.Text)
		}

		announcedID = id
		announced = true
	}

	if !announced {
		return nil, ErrNothingToAnnounce
	}

	b.mu.Lock()
	b.lastEventID = announcedID
	b.lastAlarm = ev.AlarmAt
	b.hasLast = true
	b.mu.Unlock()

	return out, nil
}

// isRepeatFiring compares by value equality of both id and timestamp
func (b *CalendarBuilder) isRepeatFiring(id int64, alarm time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasLast && b.lastEventID == id && b.lastAlarm.Equal(alarm)
}
