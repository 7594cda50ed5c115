package types

import "strings"

// LocalizedText is one segment of an announcement in one language.
// Segments are immutable once built.
type LocalizedText struct {
	Locale Locale `json:"locale"`
	Text   string `json:"text"`
}

// Announcement is an ordered, non-empty sequence of localized segments.
// Builders either return a non-empty sequence or signal "nothing to
// announce" with an error; an empty Announcement never reaches the
// speech path.
type Announcement []LocalizedText

// Append adds text in the given locale, merging into the previous segment
// when the locale matches so each segment is a maximal same-locale run.
func (a Announcement) Append(locale Locale, text string) Announcement {
	if text == "" {
		return a
	}
	if n := len(a); n > 0 && a[n-1].Locale == locale {
		a[n-1].Text += text
		return a
	}
	return append(a, LocalizedText{Locale: locale, Text: text})
}

// String renders the spoken text without locale tags, for logs
func (a Announcement) String() string {
	var sb strings.Builder
	for i, seg := range a {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// Key returns a stable identity for duplicate comparison: structural
// equality over the full segment sequence, locale included.
func (a Announcement) Key() string {
	var sb strings.Builder
	for _, seg := range a {
		sb.WriteString(seg.Locale.String())
		sb.WriteString("\x1f")
		sb.WriteString(seg.Text)
		sb.WriteString("\x1e")
	}
	return sb.String()
}

// Locales returns the distinct locales in segment order
func (a Announcement) Locales() []Locale {
	var out []Locale
	seen := make(map[Locale]bool)
	for _, seg := range a {
		if !seen[seg.Locale] {
			seen[seg.Locale] = true
			out = append(out, seg.Locale)
		}
	}
	return out
}
