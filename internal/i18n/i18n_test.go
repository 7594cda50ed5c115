package i18n

import (
	"errors"
	"testing"

	"github.com/walles/headsetharry-sub000/pkg/types"
)

var (
	enUS = types.Locale{Language: "en", Region: "US"}
	svSE = types.Locale{Language: "sv", Region: "SE"}
)

func TestResolve_RequestedLocale(t *testing.T) {
	table := New(enUS)

	resolved, err := table.Resolve(svSE, KeySMSEmpty)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Locale != svSE {
		t.Errorf("used locale = %v, want %v", resolved.Locale, svSE)
	}
	if got := resolved.Get(KeySMSEmpty); got != "Tomt SMS från %s" {
		t.Errorf("sms_empty = %q, want Swedish phrasing", got)
	}
}

// Bundles are keyed by language. A regional request served by its own
// language's bundle keeps the region so speech engines can prefer the
// regional voice; variants survive the same way.
func TestResolve_RegionalRequestKeepsItsRegion(t *testing.T) {
	table := New(enUS)

	tests := []struct {
		requested types.Locale
	}{
		{svSE},
		{types.Locale{Language: "sv"}},
		{types.Locale{Language: "sv", Region: "FI"}},
		{types.Locale{Language: "en", Region: "GB", Variant: "slang"}},
	}

	for _, test := range tests {
		resolved, err := table.Resolve(test.requested, KeySMSEmpty)
		if err != nil {
			t.Fatalf("Resolve(%v): %v", test.requested, err)
		}
		if resolved.Locale != test.requested {
			t.Errorf("used locale = %v, want the requested %v", resolved.Locale, test.requested)
		}
	}
}

func TestResolve_FallsBackToSystemDefault(t *testing.T) {
	table := New(svSE)

	// No Finnish bundle ships; the system default (Swedish) should win
	resolved, err := table.Resolve(types.Locale{Language: "fi"}, KeyWifiDisconnected)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Locale != svSE {
		t.Errorf("used locale = %v, want system default %v", resolved.Locale, svSE)
	}
	if got := resolved.Get(KeyWifiDisconnected); got != "WiFi frånkopplat" {
		t.Errorf("wifi_disconnected = %q, want Swedish phrasing", got)
	}
}

func TestResolve_FallsBackToBase(t *testing.T) {
	// Neither the requested nor the system default language has a bundle
	table := New(types.Locale{Language: "fi"})

	resolved, err := table.Resolve(types.Locale{Language: "de"}, KeyMMSFrom)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Locale.Language != "en" {
		t.Errorf("used locale = %v, want base English", resolved.Locale)
	}
	if got := resolved.Get(KeyMMSFrom); got != "MMS from %s" {
		t.Errorf("mms_from = %q, want English phrasing", got)
	}
}

func TestResolve_UnknownKey(t *testing.T) {
	table := New(enUS)

	if _, err := table.Resolve(enUS, "no_such_key"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("error = %v, want ErrUnknownKey", err)
	}
}

func TestResolve_MultipleKeys(t *testing.T) {
	table := New(enUS)

	resolved, err := table.Resolve(enUS, KeySMSFrom, KeySenderUnknown)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(resolved.Strings) != 2 {
		t.Errorf("resolved %d strings, want 2", len(resolved.Strings))
	}
	if resolved.Get(KeySenderUnknown) != "an unknown sender" {
		t.Errorf("sender_unknown = %q", resolved.Get(KeySenderUnknown))
	}
}

func TestResolve_ZeroRequestedLocale(t *testing.T) {
	table := New(svSE)

	resolved, err := table.Resolve(types.Locale{}, KeySystemMessage)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Locale != svSE {
		t.Errorf("zero requested locale should use system default, got %v", resolved.Locale)
	}
}

func TestResolve_AllKeysPresentInAllBundles(t *testing.T) {
	// Every bundle must cover the base key set, otherwise fallback could
	// mix languages within one resolution.
	base := bundles[baseLanguage]
	for lang, b := range bundles {
		for key := range base.messages {
			if _, ok := b.messages[key]; !ok {
				t.Errorf("bundle %q is missing key %q", lang, key)
			}
		}
	}
}
