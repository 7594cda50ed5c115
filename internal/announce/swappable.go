package announce

import (
	"sync"

	"github.com/walles/headsetharry-sub000/pkg/types"
)

// SwappableDetector is a LanguageDetector whose backing detector can be
// replaced while builders keep using it. Config reloads swap in a detector
// built from the new candidate locales without rebuilding the pipeline.
type SwappableDetector struct {
	mu    sync.RWMutex
	inner LanguageDetector
}

// NewSwappableDetector wraps the given detector. A nil inner detector
// means detection always comes up empty.
func NewSwappableDetector(inner LanguageDetector) *SwappableDetector {
	return &SwappableDetector{inner: inner}
}

// Detect delegates to the current backing detector
func (d *SwappableDetector) Detect(text string) (types.Locale, bool) {
	d.mu.RLock()
	inner := d.inner
	d.mu.RUnlock()

	if inner == nil {
		return types.Locale{}, false
	}
	return inner.Detect(text)
}

// Swap replaces the backing detector
func (d *SwappableDetector) Swap(inner LanguageDetector) {
	d.mu.Lock()
	d.inner = inner
	d.mu.Unlock()
}
