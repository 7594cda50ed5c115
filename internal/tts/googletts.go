package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hegedustibor/htgo-tts/voices"

	"github.com/walles/headsetharry-sub000/internal/logger"
	"github.com/walles/headsetharry-sub000/pkg/types"
)

// chunkRunes is the longest text the translate endpoint accepts per request
const chunkRunes = 200

// AudioPlayer plays synthesized MP3 audio, blocking until playback finishes
type AudioPlayer interface {
	PlayMP3(ctx context.Context, data []byte) error
}

// googleLanguages are the language codes the translate endpoint is known to
// synthesize
var googleLanguages = map[string]bool{
	"da": true,
	"de": true,
	"en": true,
	"es": true,
	"fi": true,
	"fr": true,
	"it": true,
	"ja": true,
	"nl": true,
	"no": true,
	"pl": true,
	"pt": true,
	"ru": true,
	"sv": true,
}

// GoogleTTS speaks through Google Translate's unofficial speech endpoint.
// Synthesized MP3 audio is played through the injected player.
type GoogleTTS struct {
	endpoint string
	client   *http.Client
	player   AudioPlayer
	log      *logger.Logger
}

// NewGoogleTTS creates a Google Translate speech engine playing through the
// given player
func NewGoogleTTS(player AudioPlayer) *GoogleTTS {
	return &GoogleTTS{
		endpoint: "https://translate.google.com/translate_tts",
		client:   &http.Client{Timeout: 15 * time.Second},
		player:   player,
		log:      logger.GetDefaultLogger().WithComponent("googletts"),
	}
}

// ID implements Engine
func (g *GoogleTTS) ID() string {
	return "google-translate"
}

// Init implements Engine. The endpoint needs no session setup.
func (g *GoogleTTS) Init(context.Context) error {
	return nil
}

// SupportsLocale reports whether the endpoint synthesizes the locale's
// language. Region and variant are only honored where the endpoint
// distinguishes them, so only bare-language locales are accepted and more
// precise ones fall through to the negotiator's next precision step.
func (g *GoogleTTS) SupportsLocale(_ context.Context, locale types.Locale) bool {
	if locale.Region != "" || locale.Variant != "" {
		return voiceFor(locale) != strings.ToLower(locale.Language)
	}
	return googleLanguages[strings.ToLower(locale.Language)]
}

// voiceFor maps a locale onto the endpoint's tl parameter. Regional voices
// exist for a handful of languages; everything else uses the bare language
// code.
func voiceFor(locale types.Locale) string {
	lang := strings.ToLower(locale.Language)
	region := strings.ToUpper(locale.Region)

	if lang == "en" && region == "GB" {
		return voices.EnglishUK
	}

	switch lang {
	case "en":
		return voices.English
	case "es":
		return voices.Spanish
	case "fr":
		return voices.French
	case "de":
		return voices.German
	case "pt":
		return voices.Portuguese
	}
	return lang
}

// Speak fetches MP3 audio for the text in 200-rune chunks and plays the
// concatenated result
func (g *GoogleTTS) Speak(ctx context.Context, locale types.Locale, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	voice := voiceFor(locale)
	runes := []rune(text)
	buf := bytes.NewBuffer(nil)

	for start := 0; start < len(runes); start += chunkRunes {
		end := start + chunkRunes
		if end > len(runes) {
			end = len(runes)
		}
		audio, err := g.fetchChunk(ctx, string(runes[start:end]), voice)
		if err != nil {
			return err
		}
		buf.Write(audio)
	}

	return g.player.PlayMP3(ctx, buf.Bytes())
}

func (g *GoogleTTS) fetchChunk(ctx context.Context, text, voice string) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("q", text)
	params.Set("tl", voice)
	params.Set("total", "1")
	params.Set("idx", "0")
	params.Set("textlen", fmt.Sprintf("%d", len([]rune(text))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("google tts status %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

// Shutdown implements Engine. The HTTP client holds no audio resources.
func (g *GoogleTTS) Shutdown() error {
	return nil
}
