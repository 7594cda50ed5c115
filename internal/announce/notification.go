package announce

import (
	"context"
	"strings"

	"github.com/walles/headsetharry-sub000/internal/i18n"
	"github.com/walles/headsetharry-sub000/pkg/types"
)

// NotificationBuilder wraps a system notification's transient header text
// in a "system message" phrasing
type NotificationBuilder struct {
	detect LanguageDetector
	table  *i18n.Table
}

// NewNotificationBuilder creates a system notification announcement builder
func NewNotificationBuilder(detect LanguageDetector, table *i18n.Table) *NotificationBuilder {
	return &NotificationBuilder{detect: detect, table: table}
}

// Build produces the announcement for one notification
func (b *NotificationBuilder) Build(ctx context.Context, ev NotificationEvent) (types.Announcement, error) {
	text := strings.TrimSpace(ev.Ticker)
	if text == "" {
		return nil, ErrNothingToAnnounce
	}

	detected, _ := b.detect.Detect(text)
	phrasing := detected
	if phrasing.IsZero() {
		phrasing = b.table.DefaultLocale()
	}

	res, err := b.table.Resolve(phrasing, i18n.KeySystemMessage)
	if err != nil {
		return nil, err
	}
	return Format(res.Locale, res.Get(i18n.KeySystemMessage), Arg{Locale: detected, Text: text})
}
