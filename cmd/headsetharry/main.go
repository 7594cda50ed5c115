package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/walles/headsetharry-sub000/internal/announce"
	"github.com/walles/headsetharry-sub000/internal/audio"
	"github.com/walles/headsetharry-sub000/internal/config"
	"github.com/walles/headsetharry-sub000/internal/connectivity"
	"github.com/walles/headsetharry-sub000/internal/dailylog"
	"github.com/walles/headsetharry-sub000/internal/detect"
	"github.com/walles/headsetharry-sub000/internal/i18n"
	"github.com/walles/headsetharry-sub000/internal/logger"
	"github.com/walles/headsetharry-sub000/internal/metrics"
	"github.com/walles/headsetharry-sub000/internal/pipeline"
	"github.com/walles/headsetharry-sub000/internal/store"
	"github.com/walles/headsetharry-sub000/internal/tts"
	"github.com/walles/headsetharry-sub000/internal/watcher"
	"github.com/walles/headsetharry-sub000/pkg/types"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		cmdRun()
	case "check":
		cmdCheck()
	case "version", "-v", "--version":
		cmdVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Headset Harry speaks phone events through your headset.

Usage:
  headsetharry <command> [configPath]

Commands:
  run            Run the announcement pipeline, reading JSON-line events
                 from stdin (one object per line, e.g.
                 {"type":"sms","body":"hej","sender":"+46701234567"})
  check          Validate the configuration and exit
  version        Print version
  help           Show this help`)
}

func configPath() string {
	if len(os.Args) > 2 {
		return os.Args[2]
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".headsetharry", "config.yaml")
}

func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	result := cfg.Validate()
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "⚠️  %s\n", warning)
	}
	if !result.IsValid() {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "❌ %s\n", e)
		}
		os.Exit(1)
	}

	return cfg
}

func cmdCheck() {
	path := configPath()
	loadConfig(path)
	fmt.Printf("✅ Config OK: %s\n", path)
}

func cmdRun() {
	path := configPath()
	cfg := loadConfig(path)

	logger.Init(&logger.Config{Level: cfg.Log.Level})
	log := logger.GetDefaultLogger().WithComponent("main")
	log.Info("Headset Harry v%s starting", version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defaultLocale, err := types.ParseLocale(cfg.Speech.DefaultLocale)
	if err != nil {
		log.Error("Bad default locale %q: %v", cfg.Speech.DefaultLocale, err)
		os.Exit(1)
	}

	detector := announce.NewSwappableDetector(detect.New(parseCandidates(cfg.Speech.CandidateLocales, log)))
	table := i18n.New(defaultLocale)
	sim := NewSimulator()

	builders := pipeline.Builders{
		SMS:          announce.NewSMSBuilder(detector, table, sim),
		MMS:          announce.NewMMSBuilder(table, sim),
		Email:        announce.NewEmailBuilder(detector, table),
		Calendar:     announce.NewCalendarBuilder(detector, table, sim, time.Now),
		WiFi:         announce.NewWiFiBuilder(detector, table, sim),
		Notification: announce.NewNotificationBuilder(detector, table),
	}

	suppressor := announce.NewSuppressor(
		time.Duration(cfg.Speech.SuppressionWindowSeconds)*time.Second, nil)

	gate := audio.NewGate(sim, cfg.Audio.AssumeHeadset,
		time.Duration(cfg.Audio.ScoTimeoutSeconds)*time.Second,
		time.Duration(cfg.Audio.ScoPollMillis)*time.Millisecond)

	negotiator := tts.NewNegotiator(tts.NewStaticProvider(buildEngines(cfg.Speech.Engines, log)...))

	history, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		log.Error("Failed to open history store: %v", err)
		os.Exit(1)
	}
	defer history.Close()

	daily := dailylog.NewWriter(cfg.DailyLog.Path, cfg.DailyLog.Enabled)

	speaker := pipeline.NewSpeaker(builders, suppressor, gate, negotiator, history, daily, metrics.Default())

	if cfg.Metrics.Enabled {
		startMetricsServer(cfg.Metrics, log)
	}

	cw := watcher.NewConfigWatcher(path, 0, func() {
		reloaded, err := config.Load(path)
		if err != nil {
			log.Error("Config reload failed: %v", err)
			return
		}
		if result := reloaded.Validate(); !result.IsValid() {
			log.Error("Reloaded config is invalid, keeping the old one")
			return
		}
		detector.Swap(detect.New(parseCandidates(reloaded.Speech.CandidateLocales, log)))
		speaker.ApplyConfig(reloaded)
	})
	cw.Start(ctx)

	poller := connectivity.New(&connectivity.Config{
		Enabled:         cfg.Connectivity.Enabled,
		IntervalSeconds: cfg.Connectivity.IntervalSecs,
	}, sim, func(string, bool) {
		if _, err := speaker.Announce(ctx, announce.WiFiEvent{}); err != nil {
			log.Warn("WiFi announcement failed: %v", err)
		}
	})
	poller.Start(ctx)
	defer poller.Stop()

	log.Info("Reading events from stdin")
	if err := sim.Run(ctx, os.Stdin, speaker); err != nil && ctx.Err() == nil {
		log.Error("Event loop failed: %v", err)
		os.Exit(1)
	}

	log.Info("Shutting down")
}

// parseCandidates turns configured locale codes into locales, dropping the
// unparseable ones
func parseCandidates(codes []string, log *logger.Logger) []types.Locale {
	candidates := make([]types.Locale, 0, len(codes))
	for _, code := range codes {
		locale, err := types.ParseLocale(code)
		if err != nil {
			log.Warn("Skipping bad candidate locale %q: %v", code, err)
			continue
		}
		candidates = append(candidates, locale)
	}
	return candidates
}

// buildEngines instantiates TTS engines in configured probe order. An empty
// list means all built-in engines, local engine first.
func buildEngines(ids []string, log *logger.Logger) []tts.Engine {
	if len(ids) == 0 {
		ids = []string{"espeak", "google-translate"}
	}

	engines := make([]tts.Engine, 0, len(ids))
	for _, id := range ids {
		switch id {
		case "espeak":
			engines = append(engines, tts.NewEspeak(""))
		case "google-translate":
			engines = append(engines, tts.NewGoogleTTS(audio.NewPlayer()))
		default:
			log.Warn("Unknown TTS engine %q in config, skipping", id)
		}
	}
	return engines
}

func startMetricsServer(cfg config.MetricsConfig, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc(cfg.Path, metrics.Handler())

	go func() {
		log.Info("Metrics on http://%s%s", cfg.Bind, cfg.Path)
		if err := http.ListenAndServe(cfg.Bind, mux); err != nil {
			log.Error("Metrics server failed: %v", err)
		}
	}()
}
