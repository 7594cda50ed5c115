package announce

import "time"

// Event is implemented by all per-kind announcement requests
type Event interface {
	// Kind names the event type for capability flags, metrics and logs
	Kind() string
}

// SMSEvent carries an incoming text message
type SMSEvent struct {
	Body   string `json:"body"`
	Sender string `json:"sender"` // phone number
}

func (SMSEvent) Kind() string { return "sms" }

// MMSEvent carries an incoming multimedia message. No body is available,
// only the sender.
type MMSEvent struct {
	Sender string `json:"sender"` // phone number
}

func (MMSEvent) Kind() string { return "mms" }

// EmailEvent carries an incoming email. The body is used for language
// detection only and is never spoken.
type EmailEvent struct {
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (EmailEvent) Kind() string { return "email" }

// CalendarEvent is a fired calendar alarm
type CalendarEvent struct {
	AlarmAt time.Time `json:"alarmAt"`
}

func (CalendarEvent) Kind() string { return "calendar" }

// WiFiEvent signals a connectivity change; the builder reads live state
type WiFiEvent struct{}

func (WiFiEvent) Kind() string { return "wifi" }

// NotificationEvent carries a system notification's transient header text
type NotificationEvent struct {
	Ticker string `json:"ticker"`
}

func (NotificationEvent) Kind() string { return "notification" }
