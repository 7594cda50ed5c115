// Package types holds the locale and announcement types shared across the
// announcement pipeline.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFormat is returned when a locale identifier string cannot be parsed
var ErrInvalidFormat = errors.New("invalid locale format")

// Locale identifies a language, optionally narrowed by region and variant.
// Equality is component-wise; the zero value is "no locale".
type Locale struct {
	Language string `json:"language"`
	Region   string `json:"region,omitempty"`
	Variant  string `json:"variant,omitempty"`
}

// ParseLocale parses a locale identifier of the form "xx", "xx_YY" or
// "xx_YY_ZZZ". Identifiers using "-" as separator are accepted when the
// string contains no "_". A third part starting with "#" marks a parse
// boundary and is ignored rather than treated as a variant.
func ParseLocale(s string) (Locale, error) {
	if s == "" {
		return Locale{}, fmt.Errorf("%w: empty string", ErrInvalidFormat)
	}

	sep := "_"
	if !strings.Contains(s, "_") {
		sep = "-"
	}
	parts := strings.Split(s, sep)

	for _, part := range parts {
		if part == "" {
			return Locale{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
	}

	switch len(parts) {
	case 1:
		return Locale{Language: parts[0]}, nil
	case 2:
		return Locale{Language: parts[0], Region: parts[1]}, nil
	case 3:
		if strings.HasPrefix(parts[2], "#") {
			return Locale{Language: parts[0], Region: parts[1]}, nil
		}
		return Locale{Language: parts[0], Region: parts[1], Variant: parts[2]}, nil
	default:
		return Locale{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
}

// MustParseLocale is ParseLocale for known-good literals; it panics on error.
func MustParseLocale(s string) Locale {
	l, err := ParseLocale(s)
	if err != nil {
		panic(err)
	}
	return l
}

// String renders the locale back into "xx_YY_ZZZ" form
func (l Locale) String() string {
	parts := []string{l.Language}
	if l.Region != "" {
		parts = append(parts, l.Region)
	}
	if l.Variant != "" {
		parts = append(parts, l.Variant)
	}
	return strings.Join(parts, "_")
}

// IsZero reports whether the locale is unset
func (l Locale) IsZero() bool {
	return l.Language == ""
}

// LessPrecise returns the locale with its most specific component dropped
// (variant first, then region). ok is false when the locale is already
// language-only and cannot be widened further.
func (l Locale) LessPrecise() (widened Locale, ok bool) {
	switch {
	case l.Variant != "":
		return Locale{Language: l.Language, Region: l.Region}, true
	case l.Region != "":
		return Locale{Language: l.Language}, true
	default:
		return Locale{}, false
	}
}

// Precisions returns the fallback chain from most to least precise:
// full locale, then without variant, then language-only. The chain holds
// at most 3 entries and always at least 1.
func (l Locale) Precisions() []Locale {
	chain := []Locale{l}
	for {
		widened, ok := chain[len(chain)-1].LessPrecise()
		if !ok {
			return chain
		}
		chain = append(chain, widened)
	}
}
