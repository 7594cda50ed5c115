package announce

import (
	"sync"
	"time"

	"github.com/walles/headsetharry-sub000/pkg/types"
)

// DefaultSuppressionWindow is how long an identical announcement is
// suppressed after it was last spoken
const DefaultSuppressionWindow = 5 * time.Second

// Suppressor drops immediate repeats of the most recent announcement.
// Comparison is structural over the full segment sequence, locale
// included, not over the originating event data.
type Suppressor struct {
	mu              sync.Mutex
	window          time.Duration
	now             Clock
	lastKey         string
	lastAt          time.Time
	hasLast         bool
	refreshOnRepeat bool
}

// NewSuppressor creates a suppressor with the given window. A nil clock
// uses time.Now. A zero or negative window falls back to the default.
func NewSuppressor(window time.Duration, now Clock) *Suppressor {
	if window <= 0 {
		window = DefaultSuppressionWindow
	}
	if now == nil {
		now = time.Now
	}
	return &Suppressor{window: window, now: now}
}

// SetWindow changes the suppression window; used by config hot-reload
func (s *Suppressor) SetWindow(window time.Duration) {
	if window <= 0 {
		window = DefaultSuppressionWindow
	}
	s.mu.Lock()
	s.window = window
	s.mu.Unlock()
}

// SetRefreshOnRepeat selects whether a suppressed repeat moves the window
// forward. Off by default: the window is measured from the first
// occurrence, so a steady stream of repeats eventually gets spoken again.
func (s *Suppressor) SetRefreshOnRepeat(refresh bool) {
	s.mu.Lock()
	s.refreshOnRepeat = refresh
	s.mu.Unlock()
}

// IsDuplicate reports whether the announcement matches the previous one
// within the window. A non-duplicate is recorded as the new comparison
// point; the first-ever call is never a duplicate.
func (s *Suppressor) IsDuplicate(a types.Announcement) bool {
	key := a.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.hasLast && s.lastKey == key && now.Sub(s.lastAt) <= s.window {
		if s.refreshOnRepeat {
			s.lastAt = now
		}
		return true
	}

	s.lastKey = key
	s.lastAt = now
	s.hasLast = true
	return false
}
