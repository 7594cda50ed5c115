package announce

import (
	"context"
	"errors"
	"testing"
	"time"
)

func calendarFixture(clock *fakeClock, alarm time.Time) *fakeCalendar {
	return &fakeCalendar{
		idsByAlarm: map[int64][]int64{
			alarm.UnixMilli(): {1234},
		},
		entries: map[int64]CalendarEntry{
			1234: {ID: 1234, Title: "hej tandläkaren"},
		},
	}
}

func TestCalendar_AnnouncesMatchingEvent(t *testing.T) {
	alarm := time.Date(2015, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{at: alarm.Add(2 * time.Second)}
	b := NewCalendarBuilder(swedishAndEnglish(), englishTable(), calendarFixture(clock, alarm), clock.Now)

	a, err := b.Build(context.Background(), CalendarEvent{AlarmAt: alarm})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := a.String(); got != "Kalenderpåminnelse: hej tandläkaren" {
		t.Errorf("spoken text = %q", got)
	}
}

func TestCalendar_StaleAlarmDropped(t *testing.T) {
	alarm := time.Date(2015, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{at: alarm.Add(46 * time.Second)}
	b := NewCalendarBuilder(swedishAndEnglish(), englishTable(), calendarFixture(clock, alarm), clock.Now)

	_, err := b.Build(context.Background(), CalendarEvent{AlarmAt: alarm})
	if !errors.Is(err, ErrNothingToAnnounce) {
		t.Errorf("error = %v, want ErrNothingToAnnounce for stale alarm", err)
	}
}

func TestCalendar_RepeatFiringDeduplicated(t *testing.T) {
	alarm := time.Date(2015, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{at: alarm}
	b := NewCalendarBuilder(swedishAndEnglish(), englishTable(), calendarFixture(clock, alarm), clock.Now)

	if _, err := b.Build(context.Background(), CalendarEvent{AlarmAt: alarm}); err != nil {
		t.Fatalf("first firing: %v", err)
	}

	// Identical (eventId, timestamp) pair fires again
	_, err := b.Build(context.Background(), CalendarEvent{AlarmAt: alarm})
	if !errors.Is(err, ErrNothingToAnnounce) {
		t.Errorf("second identical firing should announce nothing, got %v", err)
	}
}

func TestCalendar_DifferentTimestampNotDuplicate(t *testing.T) {
	alarm := time.Date(2015, 6, 1, 9, 0, 0, 0, time.UTC)
	later := alarm.Add(5 * time.Millisecond)
	clock := &fakeClock{at: alarm}

	source := calendarFixture(clock, alarm)
	source.idsByAlarm[later.UnixMilli()] = []int64{1234}
	b := NewCalendarBuilder(swedishAndEnglish(), englishTable(), source, clock.Now)

	if _, err := b.Build(context.Background(), CalendarEvent{AlarmAt: alarm}); err != nil {
		t.Fatalf("first firing: %v", err)
	}
	if _, err := b.Build(context.Background(), CalendarEvent{AlarmAt: later}); err != nil {
		t.Errorf("same id at a different timestamp should not be a duplicate: %v", err)
	}
}

func TestCalendar_DifferentEventNotDuplicate(t *testing.T) {
	alarm := time.Date(2015, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{at: alarm}

	source := calendarFixture(clock, alarm)
	source.entries[5678] = CalendarEntry{ID: 5678, Title: "hej frisören"}
	b := NewCalendarBuilder(swedishAndEnglish(), englishTable(), source, clock.Now)

	if _, err := b.Build(context.Background(), CalendarEvent{AlarmAt: alarm}); err != nil {
		t.Fatalf("first firing: %v", err)
	}

	source.idsByAlarm[alarm.UnixMilli()] = []int64{5678}
	if _, err := b.Build(context.Background(), CalendarEvent{AlarmAt: alarm}); err != nil {
		t.Errorf("different event at the same timestamp should not be a duplicate: %v", err)
	}
}

func TestCalendar_DeclinedEventsExcluded(t *testing.T) {
	alarm := time.Date(2015, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{at: alarm}

	source := calendarFixture(clock, alarm)
	entry := source.entries[1234]
	entry.Declined = true
	source.entries[1234] = entry
	b := NewCalendarBuilder(swedishAndEnglish(), englishTable(), source, clock.Now)

	_, err := b.Build(context.Background(), CalendarEvent{AlarmAt: alarm})
	if !errors.Is(err, ErrNothingToAnnounce) {
		t.Errorf("declined-only alarm should announce nothing, got %v", err)
	}
}

func TestCalendar_NoMatchingEvents(t *testing.T) {
	alarm := time.Date(2015, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{at: alarm}
	b := NewCalendarBuilder(swedishAndEnglish(), englishTable(), &fakeCalendar{}, clock.Now)

	_, err := b.Build(context.Background(), CalendarEvent{AlarmAt: alarm})
	if !errors.Is(err, ErrNothingToAnnounce) {
		t.Errorf("error = %v, want ErrNothingToAnnounce", err)
	}
}

func TestCalendar_SourceErrorPropagates(t *testing.T) {
	alarm := time.Date(2015, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{at: alarm}
	source := &fakeCalendar{err: ErrPermissionDenied}
	b := NewCalendarBuilder(swedishAndEnglish(), englishTable(), source, clock.Now)

	_, err := b.Build(context.Background(), CalendarEvent{AlarmAt: alarm})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("error = %v, want wrapped ErrPermissionDenied", err)
	}
}
