// Package tts negotiates a working text-to-speech engine for a locale and
// speaks announcements through it.
package tts

import (
	"context"

	"github.com/walles/headsetharry-sub000/pkg/types"
)

// Engine is one installed text-to-speech engine. Engines are probed in
// priority order by the Negotiator; an engine that failed to initialize or
// does not support the wanted locale is shut down and skipped.
type Engine interface {
	// ID identifies the engine for configuration and logs
	ID() string

	// Init prepares the engine for use. An engine must be initialized
	// before SupportsLocale or Speak is called.
	Init(ctx context.Context) error

	// SupportsLocale reports whether the engine can speak the locale at
	// exactly the given precision
	SupportsLocale(ctx context.Context, locale types.Locale) bool

	// Speak synthesizes and plays text in the given locale, blocking
	// until playback finishes or ctx is done
	Speak(ctx context.Context, locale types.Locale, text string) error

	// Shutdown releases platform audio/TTS resources. Safe to call on a
	// never-initialized engine.
	Shutdown() error
}

// Provider enumerates the installed engines, platform default first,
// the rest in platform-reported order
type Provider interface {
	Engines(ctx context.Context) ([]Engine, error)
}

// StaticProvider serves a fixed engine list
type StaticProvider struct {
	engines []Engine
}

// NewStaticProvider creates a provider over the given engines; order is
// probe order
func NewStaticProvider(engines ...Engine) *StaticProvider {
	return &StaticProvider{engines: engines}
}

// Engines returns the configured engine list
func (p *StaticProvider) Engines(context.Context) ([]Engine, error) {
	return p.engines, nil
}
