// Package announce turns raw platform events into locale-tagged speakable
// announcements.
//
// One builder exists per event kind. A builder either returns a non-empty
// sequence of localized segments or ErrNothingToAnnounce; it never returns
// an empty announcement.
package announce

import (
	"context"
	"errors"
	"time"

	"github.com/walles/headsetharry-sub000/pkg/types"
)

// ErrNothingToAnnounce signals that an event produced no speakable output.
// Not a failure; the event is simply dropped.
var ErrNothingToAnnounce = errors.New("nothing to announce")

// ErrPermissionDenied is wrapped by collaborators when the platform denies
// access to their backing data (e.g. the calendar provider)
var ErrPermissionDenied = errors.New("permission denied")

// Clock returns the current time; injectable for tests
type Clock func() time.Time

// LanguageDetector picks the best-matching locale for a piece of text
type LanguageDetector interface {
	Detect(text string) (types.Locale, bool)
}

// ContactLookup resolves a phone number to a display name
type ContactLookup interface {
	LookupName(ctx context.Context, phoneNumber string) (name string, ok bool)
}

// CalendarEntry is one calendar event as reported by the platform
type CalendarEntry struct {
	ID          int64
	Title       string
	Description string
	Declined    bool
}

// CalendarSource answers queries against the platform calendar store
type CalendarSource interface {
	// EventIDsAt returns the ids of events with an alarm at exactly the
	// given instant
	EventIDsAt(ctx context.Context, alarm time.Time) ([]int64, error)
	// EventByID fetches a single event
	EventByID(ctx context.Context, id int64) (CalendarEntry, error)
}

// WiFiStatus reports the current connection state
type WiFiStatus interface {
	Current(ctx context.Context) (ssid string, connected bool)
}
