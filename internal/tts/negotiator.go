package tts

import (
	"context"
	"errors"
	"fmt"

	"github.com/walles/headsetharry-sub000/internal/logger"
	"github.com/walles/headsetharry-sub000/pkg/types"
)

// ErrNoEngine means no installed engine could speak the wanted locale at
// any precision
var ErrNoEngine = errors.New("no engine supports locale")

// Bound is a successfully negotiated engine together with the locale
// precision it accepted
type Bound struct {
	Engine Engine
	Locale types.Locale
}

// Negotiator probes installed engines until one accepts the wanted locale.
//
// For each engine the locale is tried at decreasing precision (full locale,
// then language+region, then bare language) before moving on to the next
// engine. Engines that were initialized but rejected are shut down before
// the next one is probed, so at most one engine holds platform resources at
// a time.
type Negotiator struct {
	provider Provider
	log      *logger.Logger
}

// NewNegotiator creates a negotiator over the given engine provider
func NewNegotiator(provider Provider) *Negotiator {
	return &Negotiator{
		provider: provider,
		log:      logger.GetDefaultLogger().WithComponent("tts"),
	}
}

// Negotiate finds an engine that can speak the given locale. The caller owns
// the returned engine and must Shutdown it after speaking.
func (n *Negotiator) Negotiate(ctx context.Context, locale types.Locale) (Bound, error) {
	engines, err := n.provider.Engines(ctx)
	if err != nil {
		return Bound{}, fmt.Errorf("listing engines: %w", err)
	}

	for _, engine := range engines {
		if err := ctx.Err(); err != nil {
			return Bound{}, err
		}

		if err := engine.Init(ctx); err != nil {
			n.log.Warn("Engine %s failed to initialize: %v", engine.ID(), err)
			if shutErr := engine.Shutdown(); shutErr != nil {
				n.log.Warn("Engine %s shutdown failed: %v", engine.ID(), shutErr)
			}
			continue
		}

		accepted, ok := n.probe(ctx, engine, locale)
		if ok {
			n.log.Debug("Engine %s accepted locale %s for %s", engine.ID(), accepted, locale)
			return Bound{Engine: engine, Locale: accepted}, nil
		}

		n.log.Debug("Engine %s does not support %s at any precision", engine.ID(), locale)
		if err := engine.Shutdown(); err != nil {
			n.log.Warn("Engine %s shutdown failed: %v", engine.ID(), err)
		}
	}

	return Bound{}, fmt.Errorf("%w: %s", ErrNoEngine, locale)
}

// probe tries the locale at each precision against one initialized engine
func (n *Negotiator) probe(ctx context.Context, engine Engine, locale types.Locale) (types.Locale, bool) {
	for _, candidate := range locale.Precisions() {
		if engine.SupportsLocale(ctx, candidate) {
			return candidate, true
		}
	}
	return types.Locale{}, false
}
