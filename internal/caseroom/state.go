package caseroom

import (
	"github.com/medflow-ai/caseroom/internal/document"
)

// State is the whole workspace at one point in time. Values are treated as
// immutable: Apply returns a new State and never writes through the old one.
type State struct {
	Patients   []Patient                      `json:"patients"`
	Rooms      []Room                         `json:"rooms"`
	Archived   []Room                         `json:"archived"`
	Alerts     []AlertFeedItem                `json:"alerts"`
	Messages   map[string][]Message           `json:"messages"`
	Timelines  map[string][]TimelineEvent     `json:"timelines"`
	Insights   map[string][]DomainInsight     `json:"insights"`
	Summaries  map[string]LlmSummary          `json:"summaries"`
	Activity   map[string][]ActivityLog       `json:"activity"`
	Documents  map[string][]document.Document `json:"documents"`
	System     SystemStatus                   `json:"system"`
	Connection ConnectionState                `json:"connection"`
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s

	out.Patients = make([]Patient, len(s.Patients))
	for i, p := range s.Patients {
		p.DiagnosisTags = cloneSlice(p.DiagnosisTags)
		out.Patients[i] = p
	}
	out.Rooms = cloneRooms(s.Rooms)
	out.Archived = cloneRooms(s.Archived)
	out.Alerts = cloneSlice(s.Alerts)
	out.Messages = cloneListMap(s.Messages)
	out.Timelines = cloneListMap(s.Timelines)
	out.Activity = cloneListMap(s.Activity)

	out.Insights = make(map[string][]DomainInsight, len(s.Insights))
	for k, list := range s.Insights {
		cp := make([]DomainInsight, len(list))
		for i, in := range list {
			cp[i] = cloneInsight(in)
		}
		out.Insights[k] = cp
	}

	out.Summaries = make(map[string]LlmSummary, len(s.Summaries))
	for k, sum := range s.Summaries {
		out.Summaries[k] = cloneSummary(sum)
	}

	out.Documents = make(map[string][]document.Document, len(s.Documents))
	for k, docs := range s.Documents {
		cp := make([]document.Document, len(docs))
		for i, d := range docs {
			d.Tags = cloneSlice(d.Tags)
			cp[i] = d
		}
		out.Documents[k] = cp
	}

	out.System.Warnings = cloneSlice(s.System.Warnings)
	return out
}

func cloneRooms(rooms []Room) []Room {
	if rooms == nil {
		return nil
	}
	out := make([]Room, len(rooms))
	for i, r := range rooms {
		r.RecentDomains = cloneSlice(r.RecentDomains)
		out[i] = r
	}
	return out
}

func cloneInsight(in DomainInsight) DomainInsight {
	in.Standardized = cloneSlice(in.Standardized)
	in.Drivers = cloneSlice(in.Drivers)
	in.RawOutputs = cloneSlice(in.RawOutputs)
	in.Evidence = cloneSlice(in.Evidence)
	return in
}

func cloneSummary(s LlmSummary) LlmSummary {
	s.Structured = cloneSlice(s.Structured)
	s.Evidence = cloneSlice(s.Evidence)
	return s
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneListMap[T any](in map[string][]T) map[string][]T {
	if in == nil {
		return nil
	}
	out := make(map[string][]T, len(in))
	for k, v := range in {
		out[k] = cloneSlice(v)
	}
	return out
}

// shallow copy of the outer map only; callers replace the entries they touch
func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
