package announce

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/walles/headsetharry-sub000/internal/i18n"
	"github.com/walles/headsetharry-sub000/pkg/types"
)

func localeOf(t *testing.T, s string) types.Locale {
	t.Helper()
	loc, err := types.ParseLocale(s)
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

// Shared fakes for the builder tests

var (
	enUS = types.Locale{Language: "en", Region: "US"}
	svSE = types.Locale{Language: "sv", Region: "SE"}
)

// fakeDetector matches text against substring rules instead of running a
// real classifier
type fakeDetector struct {
	rules map[string]types.Locale // substring -> locale
}

func (f *fakeDetector) Detect(text string) (types.Locale, bool) {
	for needle, loc := range f.rules {
		if strings.Contains(text, needle) {
			return loc, true
		}
	}
	return types.Locale{}, false
}

// swedishAndEnglish detects anything containing "hej" as Swedish and
// anything containing "hello" as English
func swedishAndEnglish() *fakeDetector {
	return &fakeDetector{rules: map[string]types.Locale{
		"hej":   svSE,
		"hello": enUS,
	}}
}

type fakeContacts struct {
	names map[string]string
}

func (f *fakeContacts) LookupName(_ context.Context, number string) (string, bool) {
	name, ok := f.names[number]
	return name, ok
}

type fakeCalendar struct {
	idsByAlarm map[int64][]int64 // alarm unix millis -> event ids
	entries    map[int64]CalendarEntry
	err        error
}

func (f *fakeCalendar) EventIDsAt(_ context.Context, alarm time.Time) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.idsByAlarm[alarm.UnixMilli()], nil
}

func (f *fakeCalendar) EventByID(_ context.Context, id int64) (CalendarEntry, error) {
	if f.err != nil {
		return CalendarEntry{}, f.err
	}
	return f.entries[id], nil
}

type fakeWifi struct {
	ssid      string
	connected bool
}

func (f *fakeWifi) Current(context.Context) (string, bool) {
	return f.ssid, f.connected
}

// fakeClock is an adjustable Clock
type fakeClock struct {
	at time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.at
}

func (f *fakeClock) Advance(d time.Duration) {
	f.at = f.at.Add(d)
}

func englishTable() *i18n.Table {
	return i18n.New(enUS)
}
