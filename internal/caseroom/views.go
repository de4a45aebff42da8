package caseroom

import (
	"sort"
	"strconv"
	"strings"

	"github.com/medflow-ai/caseroom/internal/auth"
	"github.com/medflow-ai/caseroom/internal/document"
)

// NoData is shown wherever a domain indicator is unavailable.
const NoData = "No data"

// SortRooms orders rooms by risk rank, then by most recent update. Equal
// rooms keep their stored order. The input is not modified.
func SortRooms(rooms []Room) []Room {
	out := cloneRooms(rooms)
	if out == nil {
		out = []Room{}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].RiskLevel.Rank(), out[j].RiskLevel.Rank()
		if ri != rj {
			return ri > rj
		}
		return out[i].UpdatedAt > out[j].UpdatedAt
	})
	return out
}

// SortedRooms returns the active case rooms in display order.
func (s State) SortedRooms() []Room {
	return SortRooms(s.Rooms)
}

// Room looks a room up across active and archived rooms.
func (s State) Room(id string) (Room, error) {
	for _, r := range s.Rooms {
		if r.ID == id {
			return r, nil
		}
	}
	for _, r := range s.Archived {
		if r.ID == id {
			return r, nil
		}
	}
	return Room{}, ErrRoomNotFound
}

// ActiveRoom resolves the selected room, falling back to the first active
// room. ok is false only when there are no active rooms and id is unknown.
func (s State) ActiveRoom(id string) (Room, bool) {
	if r, err := s.Room(id); err == nil {
		return r, true
	}
	if len(s.Rooms) == 0 {
		return Room{}, false
	}
	return s.Rooms[0], true
}

// Patient looks a patient up in the roster.
func (s State) Patient(id string) (Patient, error) {
	if p, ok := findPatient(s.Patients, id); ok {
		return p, nil
	}
	return Patient{}, ErrPatientNotFound
}

// PatientForRoom resolves the room's patient; nil means no selection.
func (s State) PatientForRoom(r Room) *Patient {
	if r.PatientID == "" {
		return nil
	}
	p, ok := findPatient(s.Patients, r.PatientID)
	if !ok {
		return nil
	}
	return &p
}

// Summary returns the patient's LLM summary, if any.
func (s State) Summary(patientID string) (LlmSummary, bool) {
	sum, ok := s.Summaries[patientID]
	return sum, ok
}

// SearchDocuments searches the documents attached to a patient.
func (s State) SearchDocuments(patientID, query string) []document.Document {
	return document.Search(s.Documents[patientID], query)
}

// Overview is the patient overview panel.
type Overview struct {
	Patient        Patient         `json:"patient"`
	RiskLabel      string          `json:"risk_label"`
	StatusLabel    string          `json:"status_label"`
	DomainSnapshot []Indicator     `json:"domain_snapshot"`
	RecentEvents   []TimelineEvent `json:"recent_events"`
}

// BuildOverview summarises one indicator per domain and the last three
// timeline events, newest first.
func BuildOverview(p Patient, insights []DomainInsight, timeline []TimelineEvent) Overview {
	imaging := findIndicator(insights, DomainImaging, "Urgency Flag")
	if imaging == NoData {
		imaging = findIndicator(insights, DomainImaging, "Lesion Detected")
	}

	recent := make([]TimelineEvent, 0, 3)
	for i := len(timeline) - 1; i >= 0 && len(recent) < 3; i-- {
		recent = append(recent, timeline[i])
	}

	return Overview{
		Patient:     p,
		RiskLabel:   p.RiskLevel.Label(),
		StatusLabel: p.Status.Label(),
		DomainSnapshot: []Indicator{
			{Label: "Cardio Risk", Value: findIndicator(insights, DomainECG, "Arrhythmia Risk")},
			{Label: "ICU Deterioration", Value: findIndicator(insights, DomainICU, "Risk Level")},
			{Label: "Imaging Alert", Value: imaging},
			{Label: "Neuro Risk", Value: findIndicator(insights, DomainNeuro, "Decline Risk Level")},
		},
		RecentEvents: recent,
	}
}

func findIndicator(insights []DomainInsight, d Domain, label string) string {
	for _, in := range insights {
		if in.Key != d {
			continue
		}
		if in.Status == InsightNoData {
			return NoData
		}
		if v, ok := in.Indicator(label); ok {
			return v
		}
		return NoData
	}
	return NoData
}

// InsightCard is a DomainInsight prepared for one viewer role.
type InsightCard struct {
	DomainInsight
	Label        string `json:"label"`
	QualityLabel string `json:"quality_label"`
	RiskScore    int    `json:"risk_score,omitempty"`
	// Restricted is set when raw outputs and evidence were withheld.
	Restricted bool `json:"restricted"`
}

// InsightCards builds the cards for role. Roles without raw access get the
// standardized indicators only.
func InsightCards(insights []DomainInsight, role auth.Role) []InsightCard {
	canViewRaw := auth.CanViewRaw(role)
	cards := make([]InsightCard, 0, len(insights))
	for _, in := range insights {
		card := InsightCard{
			DomainInsight: cloneInsight(in),
			Label:         in.Key.Label(),
			QualityLabel:  string(in.Quality),
		}
		if in.Key == DomainICU {
			card.RiskScore = RiskScore(in)
		}
		if !canViewRaw {
			card.RawOutputs = nil
			card.Evidence = nil
			card.Restricted = true
		}
		cards = append(cards, card)
	}
	return cards
}

// RiskScore parses the leading number of the "Risk Score" indicator
// ("82 / 100" -> 82). Missing or malformed values yield 0.
func RiskScore(in DomainInsight) int {
	v, ok := in.Indicator("Risk Score")
	if !ok {
		return 0
	}
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return n
}

// View is everything the workspace screen renders for one room and role.
type View struct {
	Role            auth.Role       `json:"role"`
	Roles           []auth.Role     `json:"roles"`
	Connection      ConnectionState `json:"connection"`
	ConnectionLabel string          `json:"connection_label"`
	System          SystemStatus    `json:"system"`

	Alerts   []AlertFeedItem `json:"alerts"`
	Rooms    []Room          `json:"rooms"`
	Archived []Room          `json:"archived"`

	ActiveRoom *Room           `json:"active_room,omitempty"`
	Patient    *Patient        `json:"patient,omitempty"`
	Messages   []Message       `json:"messages"`
	Timeline   []TimelineEvent `json:"timeline"`
	Insights   []InsightCard   `json:"insights"`
	Summary    *LlmSummary     `json:"summary,omitempty"`
	Overview   *Overview       `json:"overview,omitempty"`

	AuditVisible bool                `json:"audit_visible"`
	Activity     []ActivityLog       `json:"activity,omitempty"`
	Documents    []document.Document `json:"documents"`
}

// BuildView derives the workspace screen for roomID as seen by role.
func BuildView(s State, roomID string, role auth.Role) View {
	v := View{
		Role:            role,
		Roles:           auth.Roles,
		Connection:      s.Connection,
		ConnectionLabel: s.Connection.Label(),
		System:          s.System,
		Alerts:          s.Alerts,
		Rooms:           s.SortedRooms(),
		Archived:        s.Archived,
		Messages:        []Message{},
		Timeline:        []TimelineEvent{},
		Insights:        []InsightCard{},
		Documents:       []document.Document{},
		AuditVisible:    auth.CanViewAudit(role),
	}

	room, ok := s.ActiveRoom(roomID)
	if !ok {
		return v
	}
	v.ActiveRoom = &room
	if msgs := s.Messages[room.ID]; msgs != nil {
		v.Messages = msgs
	}
	if tl := s.Timelines[room.ID]; tl != nil {
		v.Timeline = tl
	}

	p := s.PatientForRoom(room)
	if p == nil {
		return v
	}
	v.Patient = p

	insights := s.Insights[p.ID]
	v.Insights = InsightCards(insights, role)
	if sum, ok := s.Summary(p.ID); ok {
		v.Summary = &sum
	}
	ov := BuildOverview(*p, insights, v.Timeline)
	v.Overview = &ov
	v.Documents = s.SearchDocuments(p.ID, "")

	if v.AuditVisible {
		v.Activity = s.Activity[p.ID]
		if v.Activity == nil {
			v.Activity = []ActivityLog{}
		}
	}
	return v
}
