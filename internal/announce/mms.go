package announce

import (
	"context"

	"github.com/walles/headsetharry-sub000/internal/i18n"
	"github.com/walles/headsetharry-sub000/pkg/types"
)

// MMSBuilder announces incoming multimedia messages. No text body is
// available, so there is nothing to detect a language from; the
// announcement is always in the device default locale.
type MMSBuilder struct {
	table    *i18n.Table
	contacts ContactLookup
}

// NewMMSBuilder creates an MMS announcement builder
func NewMMSBuilder(table *i18n.Table, contacts ContactLookup) *MMSBuilder {
	return &MMSBuilder{table: table, contacts: contacts}
}

// Build produces the sender-only announcement for one MMS
func (b *MMSBuilder) Build(ctx context.Context, ev MMSEvent) (types.Announcement, error) {
	res, err := b.table.Resolve(b.table.DefaultLocale(), i18n.KeyMMSFrom, i18n.KeySenderUnknown)
	if err != nil {
		return nil, err
	}
	sender := resolveSender(ctx, b.contacts, ev.Sender, res.Get(i18n.KeySenderUnknown))
	return Format(res.Locale, res.Get(i18n.KeyMMSFrom), Arg{Text: sender})
}
