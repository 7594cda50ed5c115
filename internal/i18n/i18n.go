// Package i18n resolves message keys into localized phrasings.
//
// Resolution falls back through requested locale, system default locale,
// and finally the base English bundle, and always reports which locale was
// actually used so callers can tag spoken output correctly.
package i18n

import (
	"errors"
	"fmt"

	"github.com/walles/headsetharry-sub000/pkg/types"
)

// ErrUnknownKey is returned when a message key does not exist in the base bundle
var ErrUnknownKey = errors.New("unknown resource key")

// Message keys known to every bundle (the base bundle is authoritative)
const (
	KeySMSFrom            = "sms_from"
	KeySMSUnknownLanguage = "sms_unknown_language"
	KeySMSEmpty           = "sms_empty"
	KeySenderUnknown      = "sender_unknown"
	KeyMMSFrom            = "mms_from"
	KeyEmailFrom          = "email_from"
	KeyEmailFromSubject   = "email_from_subject"
	KeyCalendarReminder   = "calendar_reminder"
	KeyWifiConnectedTo    = "wifi_connected_to"
	KeyWifiDisconnected   = "wifi_disconnected"
	KeyWifiHidden         = "wifi_hidden"
	KeySystemMessage      = "system_message"
)

// baseLanguage is the bundle every key must resolve in
const baseLanguage = "en"

// bundle is one language's message table together with the locale the
// bundle declares itself to be for.
type bundle struct {
	locale   types.Locale
	messages map[string]string
}

var bundles = map[string]bundle{
	"en": {
		locale: types.Locale{Language: "en"},
		messages: map[string]string{
			KeySMSFrom:            "SMS from %s: %s",
			KeySMSUnknownLanguage: "SMS in an unrecognized language from %s: %s",
			KeySMSEmpty:           "Empty SMS from %s",
			KeySenderUnknown:      "an unknown sender",
			KeyMMSFrom:            "MMS from %s",
			KeyEmailFrom:          "Email from %s",
			KeyEmailFromSubject:   "Email from %s: %s",
			KeyCalendarReminder:   "Calendar reminder: %s",
			KeyWifiConnectedTo:    "Connected to %s",
			KeyWifiDisconnected:   "WiFi disconnected",
			KeyWifiHidden:         "Connected to a hidden network",
			KeySystemMessage:      "System message: %s",
		},
	},
	"sv": {
		locale: types.Locale{Language: "sv"},
		messages: map[string]string{
			KeySMSFrom:            "SMS från %s: %s",
			KeySMSUnknownLanguage: "SMS på ett okänt språk från %s: %s",
			KeySMSEmpty:           "Tomt SMS från %s",
			KeySenderUnknown:      "en okänd avsändare",
			KeyMMSFrom:            "MMS från %s",
			KeyEmailFrom:          "E-post från %s",
			KeyEmailFromSubject:   "E-post från %s: %s",
			KeyCalendarReminder:   "Kalenderpåminnelse: %s",
			KeyWifiConnectedTo:    "Ansluten till %s",
			KeyWifiDisconnected:   "WiFi frånkopplat",
			KeyWifiHidden:         "Ansluten till ett dolt nätverk",
			KeySystemMessage:      "Systemmeddelande: %s",
		},
	},
}

// Resolved is the outcome of a lookup: the strings plus the locale they
// were actually taken from.
type Resolved struct {
	Locale  types.Locale
	Strings map[string]string
}

// Get is a convenience accessor for a single resolved string
func (r Resolved) Get(key string) string {
	return r.Strings[key]
}

// Table resolves message keys against the built-in bundles.
// Lookups never mutate shared state; Table is safe for concurrent use.
type Table struct {
	systemDefault types.Locale
}

// New creates a string table with the given system default locale
func New(systemDefault types.Locale) *Table {
	return &Table{systemDefault: systemDefault}
}

// DefaultLocale returns the configured system default locale
func (t *Table) DefaultLocale() types.Locale {
	return t.systemDefault
}

// Resolve looks up keys for the requested locale, falling back through the
// system default locale to the base English bundle. The returned locale is
// the one the strings were actually taken from. Bundles are keyed by
// language, so a regional request served by its own language's bundle
// keeps its region: resolving sv_SE from the "sv" bundle reports sv_SE,
// letting speech engines prefer the regional voice. Only a fallback to a
// different candidate changes the reported locale. Requesting a key
// missing from the base bundle fails with ErrUnknownKey.
func (t *Table) Resolve(requested types.Locale, keys ...string) (Resolved, error) {
	base := bundles[baseLanguage]
	for _, key := range keys {
		if _, ok := base.messages[key]; !ok {
			return Resolved{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}
	}

	for _, candidate := range []types.Locale{requested, t.systemDefault, base.locale} {
		if candidate.IsZero() {
			continue
		}
		b, ok := bundles[candidate.Language]
		if !ok {
			continue
		}
		// A bundle declaring a different language than asked for counts
		// as a miss, not a near-match.
		if b.locale.Language != candidate.Language {
			continue
		}
		if resolved, ok := collect(b, candidate, keys); ok {
			return resolved, nil
		}
	}

	resolved, _ := collect(base, base.locale, keys)
	return resolved, nil
}

func collect(b bundle, used types.Locale, keys []string) (Resolved, bool) {
	strings := make(map[string]string, len(keys))
	for _, key := range keys {
		msg, ok := b.messages[key]
		if !ok {
			return Resolved{}, false
		}
		strings[key] = msg
	}
	return Resolved{Locale: used, Strings: strings}, true
}
