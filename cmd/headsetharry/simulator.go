package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/walles/headsetharry-sub000/internal/announce"
	"github.com/walles/headsetharry-sub000/internal/logger"
	"github.com/walles/headsetharry-sub000/internal/pipeline"
)

// Simulator feeds events from a JSON-lines stream into the pipeline and
// stands in for the platform collaborators (contacts, calendar, WiFi
// state, headset routing). One object per line, selected by "type":
//
//	{"type":"contact","number":"+46701234567","name":"Johan"}
//	{"type":"calendar_event","id":1,"title":"Lunch","alarmAt":"2026-08-30T12:00:00Z"}
//	{"type":"wifi_state","ssid":"Home","connected":true}
//	{"type":"headset","wired":true}
//	{"type":"sms","body":"hej hej","sender":"+46701234567"}
//	{"type":"mms","sender":"+46701234567"}
//	{"type":"email","sender":"Amazon.com: order update","subject":"Shipped"}
//	{"type":"calendar","alarmAt":"2026-08-30T12:00:00Z"}
//	{"type":"wifi"}
//	{"type":"notification","ticker":"Battery low"}
type Simulator struct {
	mu sync.Mutex

	contacts map[string]string
	events   map[int64]announce.CalendarEntry
	alarms   map[int64][]int64 // unix-milli alarm -> event ids

	ssid      string
	connected bool

	wired bool
	a2dp  bool
	sco   bool

	log *logger.Logger
}

// NewSimulator creates a simulator with no contacts, no calendar and no
// headset connected
func NewSimulator() *Simulator {
	return &Simulator{
		contacts: make(map[string]string),
		events:   make(map[int64]announce.CalendarEntry),
		alarms:   make(map[int64][]int64),
		log:      logger.GetDefaultLogger().WithComponent("simulator"),
	}
}

// simLine is the union of all line shapes the simulator accepts
type simLine struct {
	Type string `json:"type"`

	// contact
	Number string `json:"number"`
	Name   string `json:"name"`

	// calendar_event
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Declined    bool   `json:"declined"`

	// wifi_state
	SSID      string `json:"ssid"`
	Connected bool   `json:"connected"`

	// headset
	Wired bool `json:"wired"`
	A2DP  bool `json:"a2dp"`
	SCO   bool `json:"sco"`

	// events
	Body    string `json:"body"`
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Ticker  string `json:"ticker"`
	AlarmAt string `json:"alarmAt"`
}

// Run reads lines from r until EOF or ctx cancellation, updating simulator
// state and pushing events through the speaker
func (s *Simulator) Run(ctx context.Context, r io.Reader, speaker *pipeline.Speaker) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var line simLine
		if err := json.Unmarshal([]byte(text), &line); err != nil {
			s.log.Warn("Skipping unparseable line: %v", err)
			continue
		}

		if err := s.apply(ctx, line, speaker); err != nil {
			s.log.Warn("Line %q failed: %v", line.Type, err)
		}
	}
	return scanner.Err()
}

func (s *Simulator) apply(ctx context.Context, line simLine, speaker *pipeline.Speaker) error {
	switch line.Type {
	case "contact":
		s.mu.Lock()
		s.contacts[line.Number] = line.Name
		s.mu.Unlock()
		return nil

	case "calendar_event":
		alarm, err := parseAlarm(line.AlarmAt)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.events[line.ID] = announce.CalendarEntry{
			ID:          line.ID,
			Title:       line.Title,
			Description: line.Description,
			Declined:    line.Declined,
		}
		key := alarm.UnixMilli()
		s.alarms[key] = append(s.alarms[key], line.ID)
		s.mu.Unlock()
		return nil

	case "wifi_state":
		s.mu.Lock()
		s.ssid = line.SSID
		s.connected = line.Connected
		s.mu.Unlock()
		return nil

	case "headset":
		s.mu.Lock()
		s.wired = line.Wired
		s.a2dp = line.A2DP
		s.sco = line.SCO
		s.mu.Unlock()
		return nil

	case "sms":
		return s.announce(ctx, speaker, announce.SMSEvent{Body: line.Body, Sender: line.Sender})

	case "mms":
		return s.announce(ctx, speaker, announce.MMSEvent{Sender: line.Sender})

	case "email":
		return s.announce(ctx, speaker, announce.EmailEvent{
			Sender:  line.Sender,
			Subject: line.Subject,
			Body:    line.Body,
		})

	case "calendar":
		alarm, err := parseAlarm(line.AlarmAt)
		if err != nil {
			return err
		}
		return s.announce(ctx, speaker, announce.CalendarEvent{AlarmAt: alarm})

	case "wifi":
		return s.announce(ctx, speaker, announce.WiFiEvent{})

	case "notification":
		return s.announce(ctx, speaker, announce.NotificationEvent{Ticker: line.Ticker})

	default:
		return fmt.Errorf("unknown line type %q", line.Type)
	}
}

func (s *Simulator) announce(ctx context.Context, speaker *pipeline.Speaker, ev announce.Event) error {
	outcome, err := speaker.Announce(ctx, ev)
	if err != nil {
		return err
	}
	s.log.Info("%s -> %s", ev.Kind(), outcome)
	return nil
}

func parseAlarm(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	alarm, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad alarmAt %q: %w", value, err)
	}
	return alarm, nil
}

// LookupName implements announce.ContactLookup
func (s *Simulator) LookupName(_ context.Context, number string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.contacts[number]
	return name, ok
}

// EventIDsAt implements announce.CalendarSource
func (s *Simulator) EventIDsAt(_ context.Context, alarm time.Time) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alarms[alarm.UnixMilli()], nil
}

// EventByID implements announce.CalendarSource
func (s *Simulator) EventByID(_ context.Context, id int64) (announce.CalendarEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.events[id]
	if !ok {
		return announce.CalendarEntry{}, fmt.Errorf("no calendar event %d", id)
	}
	return entry, nil
}

// Current implements announce.WiFiStatus
func (s *Simulator) Current(context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ssid, s.connected
}

// A2DPActive implements audio.Router
func (s *Simulator) A2DPActive(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a2dp
}

// WiredHeadsetConnected implements audio.Router
func (s *Simulator) WiredHeadsetConnected(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wired
}

// StartSCO implements audio.Router
func (s *Simulator) StartSCO(context.Context) error {
	return nil
}

// StopSCO implements audio.Router
func (s *Simulator) StopSCO(context.Context) error {
	return nil
}

// SCOConnected implements audio.Router
func (s *Simulator) SCOConnected(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sco
}
