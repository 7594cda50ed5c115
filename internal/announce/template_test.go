package announce

import (
	"errors"
	"testing"

	"github.com/walles/headsetharry-sub000/pkg/types"
)

func TestFormat_SingleLocale(t *testing.T) {
	a, err := Format(enUS, "SMS from %s: %s", Arg{Text: "Johan"}, Arg{Text: "hi there"})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	if len(a) != 1 {
		t.Fatalf("segment count = %d, want 1 (same-locale runs merge)", len(a))
	}
	if a[0].Text != "SMS from Johan: hi there" {
		t.Errorf("text = %q", a[0].Text)
	}
	if a[0].Locale != enUS {
		t.Errorf("locale = %v, want %v", a[0].Locale, enUS)
	}
}

func TestFormat_TrailingSecondaryLocale(t *testing.T) {
	a, err := Format(enUS, "SMS from %s: %s",
		Arg{Text: "Johan"},
		Arg{Locale: svSE, Text: "hej hej"})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	want := types.Announcement{
		{Locale: enUS, Text: "SMS from Johan: "},
		{Locale: svSE, Text: "hej hej"},
	}
	if len(a) != len(want) {
		t.Fatalf("segment count = %d, want %d: %+v", len(a), len(want), a)
	}
	for i := range want {
		if a[i] != want[i] {
			t.Errorf("segment[%d] = %+v, want %+v", i, a[i], want[i])
		}
	}
}

func TestFormat_SecondaryLocaleNotFinal(t *testing.T) {
	_, err := Format(enUS, "%s sent %s",
		Arg{Locale: svSE, Text: "hej"},
		Arg{Text: "something"})
	if !errors.Is(err, ErrFormatContract) {
		t.Errorf("error = %v, want ErrFormatContract", err)
	}
}

func TestFormat_ArgCountMismatch(t *testing.T) {
	if _, err := Format(enUS, "from %s: %s", Arg{Text: "x"}); err == nil {
		t.Error("expected error for too few arguments")
	}
	if _, err := Format(enUS, "from %s", Arg{Text: "x"}, Arg{Text: "y"}); err == nil {
		t.Error("expected error for too many arguments")
	}
}

func TestFormat_ZeroLocaleArgUsesPrimary(t *testing.T) {
	a, err := Format(svSE, "MMS från %s", Arg{Text: "Johan"})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if len(a) != 1 || a[0].Locale != svSE {
		t.Errorf("unexpected segments: %+v", a)
	}
}

func TestFormat_SecondaryMatchingPrimaryMergesIntoOneSegment(t *testing.T) {
	// An explicitly tagged argument in the primary locale is not
	// "secondary" and must not split segments
	a, err := Format(enUS, "System message: %s", Arg{Locale: enUS, Text: "hello"})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if len(a) != 1 {
		t.Errorf("segment count = %d, want 1: %+v", len(a), a)
	}
}

func TestFormat_NoArguments(t *testing.T) {
	a, err := Format(enUS, "WiFi disconnected")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if len(a) != 1 || a[0].Text != "WiFi disconnected" {
		t.Errorf("unexpected segments: %+v", a)
	}
}
