package dailylog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is one announcement outcome to log
type Entry struct {
	Kind    string
	Locale  string
	Text    string
	Outcome string
	At      time.Time
}

// Writer handles writing announcement outcomes to daily log files
type Writer struct {
	basePath string
	enabled  bool
}

// NewWriter creates a new daily log writer
func NewWriter(workspacePath string, enabled bool) *Writer {
	return &Writer{
		basePath: filepath.Join(workspacePath, "announcements"),
		enabled:  enabled,
	}
}

// Log appends an entry to today's log file
func (w *Writer) Log(entry Entry) error {
	if !w.enabled {
		return nil
	}

	// Ensure log directory exists
	if err := os.MkdirAll(w.basePath, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	at := entry.At
	if at.IsZero() {
		at = time.Now()
	}

	date := at.Format("2006-01-02")
	logPath := filepath.Join(w.basePath, date+".md")

	line := formatEntry(entry, at)

	// Append to file
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open daily log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to write to daily log: %w", err)
	}

	return nil
}

// formatEntry formats an entry as a markdown log line
func formatEntry(entry Entry, at time.Time) string {
	timestamp := at.Format("15:04:05")

	// Format:
	// ## 15:04:05 [sms/announced] sv_SE
	// Announcement text
	//
	header := fmt.Sprintf("## %s [%s/%s]", timestamp, entry.Kind, entry.Outcome)
	if entry.Locale != "" {
		header += " " + entry.Locale
	}
	return fmt.Sprintf("%s\n%s\n\n", header, entry.Text)
}

// Enable enables daily logging
func (w *Writer) Enable() {
	w.enabled = true
}

// Disable disables daily logging
func (w *Writer) Disable() {
	w.enabled = false
}

// IsEnabled returns whether daily logging is enabled
func (w *Writer) IsEnabled() bool {
	return w.enabled
}
