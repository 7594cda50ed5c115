package announce

import (
	"context"
	"strings"
	"unicode"

	"github.com/walles/headsetharry-sub000/internal/i18n"
	"github.com/walles/headsetharry-sub000/pkg/types"
)

// UnknownSSID is the platform's sentinel for a missing network name
const UnknownSSID = "<unknown ssid>"

// WiFiBuilder announces the current WiFi connection state. There is no
// event payload; the builder reads live state from the status source.
type WiFiBuilder struct {
	detect LanguageDetector
	table  *i18n.Table
	wifi   WiFiStatus
}

// NewWiFiBuilder creates a WiFi announcement builder
func NewWiFiBuilder(detect LanguageDetector, table *i18n.Table, wifi WiFiStatus) *WiFiBuilder {
	return &WiFiBuilder{detect: detect, table: table, wifi: wifi}
}

// Build produces the announcement for the current connection state
func (b *WiFiBuilder) Build(ctx context.Context, _ WiFiEvent) (types.Announcement, error) {
	ssid, connected := b.wifi.Current(ctx)

	if !connected || ssid == UnknownSSID {
		res, err := b.table.Resolve(b.table.DefaultLocale(), i18n.KeyWifiDisconnected)
		if err != nil {
			return nil, err
		}
		return Format(res.Locale, res.Get(i18n.KeyWifiDisconnected))
	}

	if strings.TrimSpace(ssid) == "" {
		res, err := b.table.Resolve(b.table.DefaultLocale(), i18n.KeyWifiHidden)
		if err != nil {
			return nil, err
		}
		return Format(res.Locale, res.Get(i18n.KeyWifiHidden))
	}

	spoken := Spacify(ssid)

	detected, _ := b.detect.Detect(spoken)
	phrasing := detected
	if phrasing.IsZero() {
		phrasing = b.table.DefaultLocale()
	}

	res, err := b.table.Resolve(phrasing, i18n.KeyWifiConnectedTo)
	if err != nil {
		return nil, err
	}
	return Format(res.Locale, res.Get(i18n.KeyWifiConnectedTo), Arg{Locale: detected, Text: spoken})
}

// Spacify rewrites an SSID into something a speech engine can pronounce:
// "-" and "_" become spaces, and a space is inserted at lowercase-to-
// uppercase and letter/digit transitions. "OwnitPownit-99" reads as
// "Ownit Pownit 99".
func Spacify(ssid string) string {
	mapped := strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, ssid)

	runes := []rune(mapped)
	var sb strings.Builder
	for i, r := range runes {
		if i > 0 && splitBetween(runes[i-1], r) {
			sb.WriteRune(' ')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func splitBetween(prev, next rune) bool {
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(next):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(next):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(next):
		return true
	default:
		return false
	}
}
