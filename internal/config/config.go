// Package config loads and validates the daemon configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Speech       SpeechConfig       `yaml:"speech"`
	Audio        AudioConfig        `yaml:"audio"`
	Store        StoreConfig        `yaml:"store"`
	Connectivity ConnectivityConfig `yaml:"connectivity"`
	DailyLog     DailyLogConfig     `yaml:"dailyLog"`
	Metrics      MetricsConfig      `yaml:"metrics"`
	Log          LogConfig          `yaml:"log"`
}

// SpeechConfig controls language detection, phrasing and TTS negotiation
type SpeechConfig struct {
	// CandidateLocales are the locales the language detector scores text
	// against. Operator-configured, not auto-derived.
	CandidateLocales []string `yaml:"candidateLocales"`
	// DefaultLocale is the device default, used when detection is
	// inconclusive or irrelevant (MMS, WiFi disconnect)
	DefaultLocale string `yaml:"defaultLocale"`
	// SuppressionWindowSeconds is how long an identical announcement is
	// suppressed after it was last spoken (default: 5)
	SuppressionWindowSeconds int `yaml:"suppressionWindowSeconds"`
	// Engines lists TTS engine ids in probe order; the platform default
	// engine goes first. Empty = all built-in engines.
	Engines []string `yaml:"engines"`
}

// AudioConfig controls headset detection and audio routing
type AudioConfig struct {
	// AssumeHeadset skips headset detection entirely. Meant for
	// development and simulator runs.
	AssumeHeadset bool `yaml:"assumeHeadset"`
	// ScoTimeoutSeconds bounds Bluetooth SCO negotiation (default: 3)
	ScoTimeoutSeconds int `yaml:"scoTimeoutSeconds"`
	// ScoPollMillis is the SCO connection poll interval (default: 500)
	ScoPollMillis int `yaml:"scoPollMillis"`
}

// StoreConfig holds the history/capability database location
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ConnectivityConfig controls the WiFi status poller
type ConnectivityConfig struct {
	Enabled      bool `yaml:"enabled"`
	IntervalSecs int  `yaml:"intervalSeconds"`
}

// DailyLogConfig controls the exportable diagnostic log
type DailyLogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// MetricsConfig holds metrics endpoint configuration
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Bind    string `yaml:"bind"`
	Path    string `yaml:"path"` // default: /metrics
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: info)
}

func Default() *Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".headsetharry")
	return &Config{
		Speech: SpeechConfig{
			CandidateLocales:         []string{"en_US", "sv_SE"},
			DefaultLocale:            "en_US",
			SuppressionWindowSeconds: 5,
			Engines:                  nil, // all built-in engines, default first
		},
		Audio: AudioConfig{
			AssumeHeadset:     false,
			ScoTimeoutSeconds: 3,
			ScoPollMillis:     500,
		},
		Store: StoreConfig{
			Path: filepath.Join(base, "history.db"),
		},
		Connectivity: ConnectivityConfig{
			Enabled:      true,
			IntervalSecs: 10,
		},
		DailyLog: DailyLogConfig{
			Enabled: true,
			Path:    filepath.Join(base, "log"),
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Bind:    "localhost:18085",
			Path:    "/metrics",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the config file at path, layered over Default(). A .env file
// in the working directory and HEADSETHARRY_* environment variables
// override the file, so deployments can tweak without editing yaml.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No file is fine; defaults plus env apply
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HEADSETHARRY_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HEADSETHARRY_DEFAULT_LOCALE"); v != "" {
		cfg.Speech.DefaultLocale = v
	}
	if v := os.Getenv("HEADSETHARRY_LOCALES"); v != "" {
		cfg.Speech.CandidateLocales = splitList(v)
	}
	if v := os.Getenv("HEADSETHARRY_ASSUME_HEADSET"); v != "" {
		cfg.Audio.AssumeHeadset, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("HEADSETHARRY_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ValidationResult holds the result of config validation
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// IsValid returns true if there are no errors
func (v *ValidationResult) IsValid() bool {
	return len(v.Errors) == 0
}

// Validate checks the configuration for required fields and common issues
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}

	if c.Speech.DefaultLocale == "" {
		result.Errors = append(result.Errors, "speech.defaultLocale must be set")
	} else if _, err := language.Parse(normalizeTag(c.Speech.DefaultLocale)); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("speech.defaultLocale %q is not a valid locale", c.Speech.DefaultLocale))
	}

	for _, code := range c.Speech.CandidateLocales {
		if _, err := language.Parse(normalizeTag(code)); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("candidate locale %q is not a valid locale code and will be skipped", code))
		}
	}
	if len(c.Speech.CandidateLocales) < 2 {
		result.Warnings = append(result.Warnings, "fewer than 2 candidate locales: language detection will be disabled")
	}

	if c.Speech.SuppressionWindowSeconds < 0 {
		result.Errors = append(result.Errors, "speech.suppressionWindowSeconds must not be negative")
	}
	if c.Audio.ScoTimeoutSeconds < 1 {
		result.Warnings = append(result.Warnings, "audio.scoTimeoutSeconds < 1, SCO negotiation will likely never succeed")
	}
	if c.Connectivity.Enabled && c.Connectivity.IntervalSecs < 1 {
		result.Warnings = append(result.Warnings, "connectivity poll interval < 1 second, using the 10 second default")
	}

	return result
}

// normalizeTag maps our "xx_YY" identifiers onto BCP 47 for validation
func normalizeTag(code string) string {
	return strings.ReplaceAll(code, "_", "-")
}
