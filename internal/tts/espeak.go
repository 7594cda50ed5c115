package tts

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/walles/headsetharry-sub000/internal/logger"
	"github.com/walles/headsetharry-sub000/pkg/types"
)

// ErrNoEspeak is returned when neither espeak-ng nor espeak is installed
var ErrNoEspeak = errors.New("no espeak binary available")

// Espeak speaks through a local espeak or espeak-ng binary. Init discovers
// the binary and its voice inventory; SupportsLocale checks against that
// inventory.
type Espeak struct {
	mu      sync.Mutex
	command string
	voices  map[string]bool // lowercase voice language codes, e.g. "en", "en-gb"
	log     *logger.Logger
}

// NewEspeak creates an uninitialized espeak engine. If command is empty the
// binary is auto-detected at Init.
func NewEspeak(command string) *Espeak {
	return &Espeak{
		command: command,
		log:     logger.GetDefaultLogger().WithComponent("espeak"),
	}
}

// ID implements Engine
func (e *Espeak) ID() string {
	return "espeak"
}

// Init locates the binary and loads its voice list
func (e *Espeak) Init(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.command == "" {
		for _, cmd := range []string{"espeak-ng", "espeak"} {
			if _, err := exec.LookPath(cmd); err == nil {
				e.command = cmd
				break
			}
		}
	}
	if e.command == "" {
		return ErrNoEspeak
	}

	out, err := exec.CommandContext(ctx, e.command, "--voices").Output()
	if err != nil {
		return fmt.Errorf("listing %s voices: %w", e.command, err)
	}

	e.voices = parseVoices(out)
	e.log.Debug("Loaded %d voices from %s", len(e.voices), e.command)
	return nil
}

// parseVoices extracts the language column from `espeak --voices` output.
// The first line is a header; data lines look like:
//
//	 5  sv             M  swedish              other/sv
func parseVoices(out []byte) map[string]bool {
	voices := make(map[string]bool)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	first := true
	for scanner.Scan() {
		if first {
			first = false
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		voices[strings.ToLower(fields[1])] = true
	}
	return voices
}

// SupportsLocale reports whether the voice inventory covers the locale at
// exactly the given precision
func (e *Espeak) SupportsLocale(_ context.Context, locale types.Locale) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.voices[voiceName(locale)]
}

// voiceName maps a locale onto espeak's lowercase dashed voice naming
func voiceName(locale types.Locale) string {
	name := strings.ToLower(locale.Language)
	if locale.Region != "" {
		name += "-" + strings.ToLower(locale.Region)
	}
	if locale.Variant != "" {
		name += "-" + strings.ToLower(locale.Variant)
	}
	return name
}

// Speak synthesizes and plays text through the binary, blocking until
// playback finishes
func (e *Espeak) Speak(ctx context.Context, locale types.Locale, text string) error {
	e.mu.Lock()
	command := e.command
	e.mu.Unlock()

	if command == "" {
		return ErrNoEspeak
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	cmd := exec.CommandContext(ctx, command, "-v", voiceName(locale), text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", command, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Shutdown implements Engine. Espeak holds no persistent resources.
func (e *Espeak) Shutdown() error {
	return nil
}
