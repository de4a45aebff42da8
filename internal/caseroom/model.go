// Package caseroom holds the clinical workspace state: patients, case rooms,
// the alert feed, per-room chat and timeline, per-patient domain insights and
// summaries. State changes only through Apply.
package caseroom

import (
	"fmt"

	"github.com/medflow-ai/caseroom/internal/shared/errors"
)

var (
	ErrRoomNotFound    = fmt.Errorf("case room: %w", errors.ErrNotFound)
	ErrPatientNotFound = fmt.Errorf("patient: %w", errors.ErrNotFound)
)

// RiskLevel is the coarse severity shared by patients, rooms and alerts.
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
)

// Rank orders risk levels for the room list. Unset counts as low.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskCritical:
		return 3
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}

func (r RiskLevel) Label() string {
	switch r {
	case RiskCritical:
		return "긴급"
	case RiskHigh:
		return "고위험"
	case RiskMedium:
		return "중위험"
	default:
		return "저위험"
	}
}

func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskCritical, RiskHigh, RiskMedium, RiskLow:
		return true
	}
	return false
}

// PatientStatus is the bedside stability flag.
type PatientStatus string

const (
	StatusUnstable PatientStatus = "unstable"
	StatusWatch    PatientStatus = "watch"
	StatusStable   PatientStatus = "stable"
)

func (s PatientStatus) Label() string {
	switch s {
	case StatusUnstable:
		return "불안정"
	case StatusWatch:
		return "관찰"
	default:
		return "안정"
	}
}

// StatusForSeverity maps an alert severity onto the patient status.
func StatusForSeverity(sev RiskLevel) PatientStatus {
	switch sev {
	case RiskCritical, RiskHigh:
		return StatusUnstable
	case RiskMedium:
		return StatusWatch
	default:
		return StatusStable
	}
}

// RoomStatus describes how a case room came to be listed.
type RoomStatus string

const (
	RoomAuto     RoomStatus = "auto"
	RoomPinned   RoomStatus = "pinned"
	RoomManual   RoomStatus = "manual"
	RoomArchived RoomStatus = "archived"
)

func (s RoomStatus) Label() string {
	switch s {
	case RoomPinned:
		return "고정"
	case RoomManual:
		return "수동 생성"
	case RoomArchived:
		return "아카이브"
	default:
		return "자동 활성"
	}
}

// Domain is one of the four analysis categories.
type Domain string

const (
	DomainECG     Domain = "ecg"
	DomainImaging Domain = "imaging"
	DomainICU     Domain = "icu"
	DomainNeuro   Domain = "neuro"
)

// Domains lists every domain in display order.
var Domains = []Domain{DomainECG, DomainImaging, DomainICU, DomainNeuro}

func (d Domain) Label() string {
	switch d {
	case DomainECG:
		return "ECG"
	case DomainImaging:
		return "Imaging"
	case DomainICU:
		return "ICU Risk"
	case DomainNeuro:
		return "Neuro"
	}
	return string(d)
}

func (d Domain) IsValid() bool {
	switch d {
	case DomainECG, DomainImaging, DomainICU, DomainNeuro:
		return true
	}
	return false
}

// MessageType controls how a chat entry is styled.
type MessageType string

const (
	MessageClinician MessageType = "clinician"
	MessageAI        MessageType = "ai"
	MessageAlert     MessageType = "alert"
	MessageSystem    MessageType = "system"
)

func (t MessageType) IsValid() bool {
	switch t {
	case MessageClinician, MessageAI, MessageAlert, MessageSystem:
		return true
	}
	return false
}

// TimelineType tags a timeline entry.
type TimelineType string

const (
	TimelineAI       TimelineType = "ai"
	TimelineClinical TimelineType = "clinical"
	TimelineLab      TimelineType = "lab"
	TimelineSystem   TimelineType = "system"
)

func (t TimelineType) IsValid() bool {
	switch t {
	case TimelineAI, TimelineClinical, TimelineLab, TimelineSystem:
		return true
	}
	return false
}

type InsightStatus string

const (
	InsightActive InsightStatus = "active"
	InsightNoData InsightStatus = "no-data"
)

type Quality string

const (
	QualityGood    Quality = "good"
	QualityLimited Quality = "limited"
	QualityMissing Quality = "missing"
)

// ConnectionState is the decorative feed connection indicator.
type ConnectionState string

const (
	ConnConnecting   ConnectionState = "connecting"
	ConnConnected    ConnectionState = "connected"
	ConnDisconnected ConnectionState = "disconnected"
)

func (c ConnectionState) Label() string {
	switch c {
	case ConnConnected:
		return "연결됨"
	case ConnConnecting:
		return "연결중"
	default:
		return "연결 끊김"
	}
}

// Patient is a roster entry.
type Patient struct {
	ID            string        `json:"id"`
	PatientID     string        `json:"patient_id"`
	Name          string        `json:"name"`
	Age           int           `json:"age"`
	Gender        string        `json:"gender"`
	Location      string        `json:"location"`
	Bed           string        `json:"bed"`
	DiagnosisTags []string      `json:"diagnosis_tags"`
	RiskLevel     RiskLevel     `json:"risk_level"`
	Status        PatientStatus `json:"status"`
	EHRID         string        `json:"ehr_id"`
	PACSID        string        `json:"pacs_id"`
}

// Room is a case room or team channel.
type Room struct {
	ID            string     `json:"id"`
	Label         string     `json:"label"`
	Sublabel      string     `json:"sublabel"`
	PatientID     string     `json:"patient_id,omitempty"`
	PatientCode   string     `json:"patient_code,omitempty"`
	RiskLevel     RiskLevel  `json:"risk_level,omitempty"`
	Status        RoomStatus `json:"status,omitempty"`
	Activation    string     `json:"activation,omitempty"`
	RecentDomains []Domain   `json:"recent_domains,omitempty"`
	UpdatedAt     string     `json:"updated_at"`
	Unread        int        `json:"unread"`
}

// AlertFeedItem is one entry of the global alert feed.
type AlertFeedItem struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	PatientID string    `json:"patient_id"`
	Domain    Domain    `json:"domain"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	Time      string    `json:"time"`
	Severity  RiskLevel `json:"severity"`
	Change    string    `json:"change"`
}

type Message struct {
	ID      string      `json:"id"`
	Sender  string      `json:"sender"`
	Role    string      `json:"role"`
	Time    string      `json:"time"`
	Type    MessageType `json:"type"`
	Content string      `json:"content"`
}

type TimelineEvent struct {
	Time  string       `json:"time"`
	Label string       `json:"label"`
	Type  TimelineType `json:"type"`
}

// Indicator is a standardized label/value pair shown instead of raw output.
type Indicator struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DomainInsight is the per-patient, per-domain analysis bundle. A no-data
// insight carries only Note.
type DomainInsight struct {
	Key          Domain        `json:"key"`
	Title        string        `json:"title"`
	Status       InsightStatus `json:"status"`
	LastUpdated  string        `json:"last_updated"`
	Standardized []Indicator   `json:"standardized"`
	Drivers      []string      `json:"drivers,omitempty"`
	RawOutputs   []string      `json:"raw_outputs"`
	Evidence     []string      `json:"evidence"`
	Confidence   string        `json:"confidence"`
	Quality      Quality       `json:"quality"`
	Note         string        `json:"note,omitempty"`
}

// Indicator returns the standardized value for label.
func (d DomainInsight) Indicator(label string) (string, bool) {
	for _, ind := range d.Standardized {
		if ind.Label == label {
			return ind.Value, true
		}
	}
	return "", false
}

type LlmSummary struct {
	LastUpdated string      `json:"last_updated"`
	Structured  []Indicator `json:"structured"`
	Narrative   string      `json:"narrative"`
	Evidence    []string    `json:"evidence"`
}

// InsightUpdate is a partial DomainInsight. Nil fields keep the current value.
type InsightUpdate struct {
	Domain       Domain         `json:"domain"`
	LastUpdated  string         `json:"last_updated"`
	Standardized []Indicator    `json:"standardized"`
	Drivers      []string       `json:"drivers,omitempty"`
	RawOutputs   []string       `json:"raw_outputs,omitempty"`
	Evidence     []string       `json:"evidence,omitempty"`
	Confidence   *string        `json:"confidence,omitempty"`
	Quality      *Quality       `json:"quality,omitempty"`
	Status       *InsightStatus `json:"status,omitempty"`
}

type ActivityLog struct {
	Time  string `json:"time"`
	Label string `json:"label"`
	Actor string `json:"actor"`
}

type SystemStatus struct {
	Websocket   string   `json:"websocket"`
	LastSync    string   `json:"last_sync"`
	DataLatency string   `json:"data_latency"`
	Warnings    []string `json:"warnings"`
}

// AlertEvent is one bundle delivered by the feed.
type AlertEvent struct {
	Alert         AlertFeedItem  `json:"alert"`
	Message       Message        `json:"message"`
	Timeline      TimelineEvent  `json:"timeline"`
	InsightUpdate *InsightUpdate `json:"insight_update,omitempty"`
	SummaryUpdate *LlmSummary    `json:"summary_update,omitempty"`
}

// Validate checks the fields Apply depends on.
func (e AlertEvent) Validate() error {
	details := map[string]string{}

	if e.Alert.ID == "" {
		details["alert.id"] = "required"
	}
	if e.Alert.RoomID == "" {
		details["alert.room_id"] = "required"
	}
	if e.Alert.PatientID == "" {
		details["alert.patient_id"] = "required"
	}
	if !e.Alert.Domain.IsValid() {
		details["alert.domain"] = "must be one of ecg, imaging, icu, neuro"
	}
	if !e.Alert.Severity.IsValid() {
		details["alert.severity"] = "must be one of critical, high, medium, low"
	}
	if e.Alert.Time == "" {
		details["alert.time"] = "required"
	}
	if e.Alert.Title == "" {
		details["alert.title"] = "required"
	}
	if !e.Message.Type.IsValid() {
		details["message.type"] = "must be one of clinician, ai, alert, system"
	}
	if !e.Timeline.Type.IsValid() {
		details["timeline.type"] = "must be one of ai, clinical, lab, system"
	}
	if e.InsightUpdate != nil && !e.InsightUpdate.Domain.IsValid() {
		details["insight_update.domain"] = "must be one of ecg, imaging, icu, neuro"
	}

	if len(details) > 0 {
		return errors.Validation("invalid alert event", details)
	}
	return nil
}
