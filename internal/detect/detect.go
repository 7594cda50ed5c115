// Package detect scores free text against a configured set of candidate
// locales and picks the best-matching one.
package detect

import (
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/walles/headsetharry-sub000/internal/logger"
	"github.com/walles/headsetharry-sub000/pkg/types"
)

// minimumRelativeDistance is lingua's confidence threshold: below it the
// classifier reports no language rather than a shaky best guess.
const minimumRelativeDistance = 0.25

// Detector maps text to one of the configured candidate locales using an
// n-gram statistical classifier. Results are deterministic for a fixed
// candidate set and input.
type Detector struct {
	detector lingua.LanguageDetector
	// byLanguage maps a detected lingua language back to the first
	// configured candidate locale carrying that language
	byLanguage map[lingua.Language]types.Locale
	log        *logger.Logger
}

// New builds a detector for the given candidate locales. Locales whose
// language the classifier has no profile for are skipped with a warning.
// With fewer than two usable candidates the classifier cannot discriminate
// and detection is disabled (Detect always reports no match).
func New(candidates []types.Locale) *Detector {
	d := &Detector{
		byLanguage: make(map[lingua.Language]types.Locale),
		log:        logger.GetDefaultLogger().WithComponent("detect"),
	}

	supported := isoIndex()

	var langs []lingua.Language
	for _, loc := range candidates {
		lang, ok := supported[strings.ToLower(loc.Language)]
		if !ok {
			d.log.Warn("No language profile for candidate locale %s, skipping", loc)
			continue
		}
		if _, dup := d.byLanguage[lang]; dup {
			continue
		}
		d.byLanguage[lang] = loc
		langs = append(langs, lang)
	}

	if len(langs) < 2 {
		d.log.Warn("Need at least 2 candidate locales for detection, have %d: detection disabled", len(langs))
		return d
	}

	d.detector = lingua.NewLanguageDetectorBuilder().
		FromLanguages(langs...).
		WithMinimumRelativeDistance(minimumRelativeDistance).
		WithPreloadedLanguageModels().
		Build()

	return d
}

// Detect returns the candidate locale best matching text, or ok=false when
// the text is empty, detection is disabled, or no candidate clears the
// classifier's confidence threshold.
func (d *Detector) Detect(text string) (types.Locale, bool) {
	text = strings.TrimSpace(text)
	if text == "" || d.detector == nil {
		return types.Locale{}, false
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		d.log.Debug("No confident language match for %q", text)
		return types.Locale{}, false
	}

	loc, ok := d.byLanguage[lang]
	return loc, ok
}

// isoIndex maps lowercase ISO 639-1 codes to lingua languages
func isoIndex() map[string]lingua.Language {
	index := make(map[string]lingua.Language)
	for _, lang := range lingua.AllLanguages() {
		index[strings.ToLower(lang.IsoCode639_1().String())] = lang
	}
	return index
}
