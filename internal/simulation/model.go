package simulation

import (
	"errors"
	"time"

	"github.com/medflow-ai/caseroom/internal/caseroom"
	"github.com/medflow-ai/caseroom/internal/fixtures"
)

// Event types carried on the bus. External producers raise alerts; the
// injector mirrors every alert it applied.
const (
	EventAlertRaised  = "alert.raised"
	EventAlertApplied = "alert.applied"
)

// EventSource names this service on published events
const EventSource = "caseroom-injector"

var (
	// ErrSourceExhausted is returned by Next once a finite source has
	// delivered every event.
	ErrSourceExhausted = errors.New("event source exhausted")
	// ErrSourceClosed is returned by Next after Close.
	ErrSourceClosed = errors.New("event source closed")
)

// Step is one scripted alert, fired Delay after the feed starts.
type Step struct {
	Delay time.Duration
	Event caseroom.AlertEvent
}

// DefaultScript returns the demo's three live alerts.
func DefaultScript() []Step {
	live := fixtures.LiveEvents()
	steps := make([]Step, 0, len(live))
	for _, le := range live {
		steps = append(steps, Step{Delay: le.Delay, Event: le.Event})
	}
	return steps
}

// ScriptEntry describes a step for the script endpoint
type ScriptEntry struct {
	DelayMS  int64              `json:"delay_ms"`
	AlertID  string             `json:"alert_id"`
	RoomID   string             `json:"room_id"`
	Domain   caseroom.Domain    `json:"domain"`
	Severity caseroom.RiskLevel `json:"severity"`
	Title    string             `json:"title"`
}

// Describe lists steps as script entries
func Describe(steps []Step) []ScriptEntry {
	out := make([]ScriptEntry, 0, len(steps))
	for _, s := range steps {
		out = append(out, ScriptEntry{
			DelayMS:  s.Delay.Milliseconds(),
			AlertID:  s.Event.Alert.ID,
			RoomID:   s.Event.Alert.RoomID,
			Domain:   s.Event.Alert.Domain,
			Severity: s.Event.Alert.Severity,
			Title:    s.Event.Alert.Title,
		})
	}
	return out
}

// AppliedAlert is the payload of an alert.applied event
type AppliedAlert struct {
	Event  caseroom.AlertEvent `json:"event"`
	Change caseroom.Change     `json:"change"`
}

// HistoryEntry is one applied alert read back from the event store
type HistoryEntry struct {
	EventID     string             `json:"event_id"`
	AppliedAt   time.Time          `json:"applied_at"`
	AlertID     string             `json:"alert_id"`
	RoomID      string             `json:"room_id"`
	Domain      caseroom.Domain    `json:"domain"`
	Severity    caseroom.RiskLevel `json:"severity"`
	RoomCreated bool               `json:"room_created"`
}

// InjectResponse is returned by the manual inject endpoint
type InjectResponse struct {
	Success   bool            `json:"success"`
	AlertID   string          `json:"alert_id"`
	Change    caseroom.Change `json:"change"`
	Timestamp time.Time       `json:"timestamp"`
}
