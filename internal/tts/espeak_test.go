package tts

import (
	"context"
	"testing"

	"github.com/walles/headsetharry-sub000/pkg/types"
)

const voicesOutput = `Pty Language Age/Gender VoiceName          File          Other Languages
 5  af             M  afrikaans            other/af
 5  en             M  default              default
 2  en-gb          M  english              en            (en-uk 2)(en 2)
 5  sv             M  swedish              other/sv
`

func TestParseVoices(t *testing.T) {
	voices := parseVoices([]byte(voicesOutput))

	for _, want := range []string{"af", "en", "en-gb", "sv"} {
		if !voices[want] {
			t.Errorf("Expected voice %q in inventory", want)
		}
	}
	if voices["pty"] || voices["language"] {
		t.Error("Header line should not produce voices")
	}
	if len(voices) != 4 {
		t.Errorf("Expected 4 voices, got %d", len(voices))
	}
}

func TestVoiceName(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"sv", "sv"},
		{"sv_SE", "sv-se"},
		{"en_GB", "en-gb"},
		{"sv_SE_lulea", "sv-se-lulea"},
	}

	for _, tt := range tests {
		locale, err := types.ParseLocale(tt.locale)
		if err != nil {
			t.Fatalf("ParseLocale(%q): %v", tt.locale, err)
		}
		if got := voiceName(locale); got != tt.want {
			t.Errorf("voiceName(%s) = %q, want %q", tt.locale, got, tt.want)
		}
	}
}

func TestEspeakSupportsLocale(t *testing.T) {
	e := NewEspeak("espeak")
	e.voices = parseVoices([]byte(voicesOutput))

	ctx := context.Background()

	sv, _ := types.ParseLocale("sv")
	if !e.SupportsLocale(ctx, sv) {
		t.Error("Expected sv to be supported")
	}

	svSE, _ := types.ParseLocale("sv_SE")
	if e.SupportsLocale(ctx, svSE) {
		t.Error("sv_SE is not in the inventory, lower precision is the negotiator's job")
	}

	enGB, _ := types.ParseLocale("en_GB")
	if !e.SupportsLocale(ctx, enGB) {
		t.Error("Expected en_GB to map onto the en-gb voice")
	}
}

func TestEspeakSpeak_NoBinary(t *testing.T) {
	e := &Espeak{}
	sv, _ := types.ParseLocale("sv")
	if err := e.Speak(context.Background(), sv, "hej"); err != ErrNoEspeak {
		t.Errorf("Expected ErrNoEspeak, got %v", err)
	}
}
