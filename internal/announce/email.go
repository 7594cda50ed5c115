package announce

import (
	"context"
	"strings"

	"github.com/walles/headsetharry-sub000/internal/i18n"
	"github.com/walles/headsetharry-sub000/pkg/types"
)

// EmailBuilder announces incoming email. Language is detected from the
// subject, falling back to the body when the subject gives no confident
// match; the body itself is never spoken.
type EmailBuilder struct {
	detect LanguageDetector
	table  *i18n.Table
}

// NewEmailBuilder creates an email announcement builder
func NewEmailBuilder(detect LanguageDetector, table *i18n.Table) *EmailBuilder {
	return &EmailBuilder{detect: detect, table: table}
}

// Build produces the announcement for one email
func (b *EmailBuilder) Build(ctx context.Context, ev EmailEvent) (types.Announcement, error) {
	sender := strings.TrimSpace(CensorSender(ev.Sender))
	subject := strings.TrimSpace(ev.Subject)

	var detected types.Locale
	if subject != "" {
		if loc, ok := b.detect.Detect(subject); ok {
			detected = loc
		} else if body := strings.TrimSpace(ev.Body); body != "" {
			if loc, ok := b.detect.Detect(body); ok {
				detected = loc
			}
		}
	}

	// No confident detection: the device default applies silently
	phrasing := detected
	if phrasing.IsZero() {
		phrasing = b.table.DefaultLocale()
	}

	if subject == "" {
		res, err := b.table.Resolve(b.table.DefaultLocale(), i18n.KeyEmailFrom, i18n.KeySenderUnknown)
		if err != nil {
			return nil, err
		}
		if sender == "" {
			sender = res.Get(i18n.KeySenderUnknown)
		}
		return Format(res.Locale, res.Get(i18n.KeyEmailFrom), Arg{Text: sender})
	}

	res, err := b.table.Resolve(phrasing, i18n.KeyEmailFromSubject, i18n.KeySenderUnknown)
	if err != nil {
		return nil, err
	}
	if sender == "" {
		sender = res.Get(i18n.KeySenderUnknown)
	}
	return Format(res.Locale, res.Get(i18n.KeyEmailFromSubject),
		Arg{Text: sender},
		Arg{Locale: detected, Text: subject})
}

// CensorSender strips an upstream "label: " prefix from a sender display
// string: everything up to and including the first ": " is removed. Text
// without ": " passes through unchanged.
func CensorSender(sender string) string {
	idx := strings.Index(sender, ": ")
	if idx < 0 {
		return sender
	}
	return sender[idx+2:]
}
