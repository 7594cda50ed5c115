package announce

import (
	"context"
	"errors"
	"testing"
)

func TestNotification_WrapsTickerText(t *testing.T) {
	b := NewNotificationBuilder(swedishAndEnglish(), englishTable())

	a, err := b.Build(context.Background(), NotificationEvent{Ticker: "hello from some app"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(a) != 1 || a[0].Text != "System message: hello from some app" {
		t.Errorf("unexpected announcement: %+v", a)
	}
}

func TestNotification_SwedishTicker(t *testing.T) {
	b := NewNotificationBuilder(swedishAndEnglish(), englishTable())

	a, err := b.Build(context.Background(), NotificationEvent{Ticker: "hej från appen"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if a[0].Locale != svSE {
		t.Errorf("locale = %v, want %v", a[0].Locale, svSE)
	}
	if a[0].Text != "Systemmeddelande: hej från appen" {
		t.Errorf("text = %q", a[0].Text)
	}
}

func TestNotification_EmptyTicker(t *testing.T) {
	b := NewNotificationBuilder(swedishAndEnglish(), englishTable())

	_, err := b.Build(context.Background(), NotificationEvent{Ticker: "  "})
	if !errors.Is(err, ErrNothingToAnnounce) {
		t.Errorf("error = %v, want ErrNothingToAnnounce", err)
	}
}

func TestMMS_SenderOnly(t *testing.T) {
	contacts := &fakeContacts{names: map[string]string{"+46701234567": "Johan"}}
	b := NewMMSBuilder(englishTable(), contacts)

	a, err := b.Build(context.Background(), MMSEvent{Sender: "+46701234567"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// Always the device default locale: there is no text to detect from
	if len(a) != 1 || a[0].Text != "MMS from Johan" || a[0].Locale != enUS {
		t.Errorf("unexpected announcement: %+v", a)
	}
}

func TestMMS_UnknownSender(t *testing.T) {
	b := NewMMSBuilder(englishTable(), &fakeContacts{})

	a, err := b.Build(context.Background(), MMSEvent{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if a[0].Text != "MMS from an unknown sender" {
		t.Errorf("text = %q", a[0].Text)
	}
}
