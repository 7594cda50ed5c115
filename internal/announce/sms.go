package announce

import (
	"context"
	"strings"

	"github.com/walles/headsetharry-sub000/internal/i18n"
	"github.com/walles/headsetharry-sub000/internal/logger"
	"github.com/walles/headsetharry-sub000/pkg/types"
)

// SMSBuilder announces incoming text messages. The body is spoken in its
// detected language; the surrounding phrasing follows the body's language
// where a bundle exists, the default locale otherwise.
type SMSBuilder struct {
	detect   LanguageDetector
	table    *i18n.Table
	contacts ContactLookup
	log      *logger.Logger
}

// NewSMSBuilder creates an SMS announcement builder
func NewSMSBuilder(detect LanguageDetector, table *i18n.Table, contacts ContactLookup) *SMSBuilder {
	return &SMSBuilder{
		detect:   detect,
		table:    table,
		contacts: contacts,
		log:      logger.GetDefaultLogger().WithComponent("announce"),
	}
}

// Build produces the announcement for one SMS
func (b *SMSBuilder) Build(ctx context.Context, ev SMSEvent) (types.Announcement, error) {
	body := strings.TrimSpace(ev.Body)

	if body == "" {
		res, err := b.table.Resolve(b.table.DefaultLocale(), i18n.KeySMSEmpty, i18n.KeySenderUnknown)
		if err != nil {
			return nil, err
		}
		sender := resolveSender(ctx, b.contacts, ev.Sender, res.Get(i18n.KeySenderUnknown))
		return Format(res.Locale, res.Get(i18n.KeySMSEmpty), Arg{Text: sender})
	}

	detected, ok := b.detect.Detect(body)
	if !ok {
		// Degraded confidence is announced explicitly, not papered over
		b.log.Debug("SMS body language not recognized")
		res, err := b.table.Resolve(b.table.DefaultLocale(), i18n.KeySMSUnknownLanguage, i18n.KeySenderUnknown)
		if err != nil {
			return nil, err
		}
		sender := resolveSender(ctx, b.contacts, ev.Sender, res.Get(i18n.KeySenderUnknown))
		return Format(res.Locale, res.Get(i18n.KeySMSUnknownLanguage),
			Arg{Text: sender},
			Arg{Text: body})
	}

	res, err := b.table.Resolve(detected, i18n.KeySMSFrom, i18n.KeySenderUnknown)
	if err != nil {
		return nil, err
	}
	sender := resolveSender(ctx, b.contacts, ev.Sender, res.Get(i18n.KeySenderUnknown))
	return Format(res.Locale, res.Get(i18n.KeySMSFrom),
		Arg{Text: sender},
		Arg{Locale: detected, Text: body})
}

// resolveSender maps a phone number to a contact name, falling back to the
// localized unknown-sender placeholder for empty or unresolvable numbers
func resolveSender(ctx context.Context, contacts ContactLookup, number, unknown string) string {
	number = strings.TrimSpace(number)
	if number == "" || contacts == nil {
		return unknown
	}
	name, ok := contacts.LookupName(ctx, number)
	if !ok || strings.TrimSpace(name) == "" {
		return unknown
	}
	return name
}
