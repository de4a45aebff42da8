package caseroom

// maxRecentDomains caps Room.RecentDomains.
const maxRecentDomains = 3

// lastSyncJustNow is written to SystemStatus.LastSync on every applied alert.
const lastSyncJustNow = "just now"

// Change describes what Apply did to the room list.
type Change struct {
	RoomID      string `json:"room_id"`
	RoomCreated bool   `json:"room_created"`
}

// Apply folds one alert bundle into s and returns the new state. s is left
// untouched: every collection the event touches is copied first.
func Apply(s State, ev AlertEvent) (State, Change) {
	alert := ev.Alert
	next := s

	alerts := make([]AlertFeedItem, 0, len(s.Alerts)+1)
	alerts = append(alerts, alert)
	next.Alerts = append(alerts, s.Alerts...)

	next.Messages = copyMap(s.Messages)
	next.Messages[alert.RoomID] = appendCopy(s.Messages[alert.RoomID], ev.Message)

	next.Timelines = copyMap(s.Timelines)
	next.Timelines[alert.RoomID] = appendCopy(s.Timelines[alert.RoomID], ev.Timeline)

	next.Patients = applyPatientRisk(s.Patients, alert)

	var change Change
	next.Rooms, change = upsertRoom(s.Rooms, s.Patients, alert)

	if ev.InsightUpdate != nil {
		next.Insights = copyMap(s.Insights)
		next.Insights[alert.PatientID] = mergeInsight(s.Insights[alert.PatientID], *ev.InsightUpdate)
	}
	if ev.SummaryUpdate != nil {
		next.Summaries = copyMap(s.Summaries)
		next.Summaries[alert.PatientID] = cloneSummary(*ev.SummaryUpdate)
	}

	next.System.LastSync = lastSyncJustNow
	return next, change
}

func appendCopy[T any](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, list...)
	return append(out, item)
}

func applyPatientRisk(patients []Patient, alert AlertFeedItem) []Patient {
	out := make([]Patient, len(patients))
	copy(out, patients)
	for i := range out {
		if out[i].ID == alert.PatientID {
			out[i].RiskLevel = alert.Severity
			out[i].Status = StatusForSeverity(alert.Severity)
		}
	}
	return out
}

// upsertRoom bumps the active room the alert targets, or prepends a new one.
// Archived rooms are never touched: an alert for an archived id opens a new
// active room.
func upsertRoom(rooms []Room, roster []Patient, alert AlertFeedItem) ([]Room, Change) {
	for i, current := range rooms {
		if current.ID != alert.RoomID {
			continue
		}
		out := make([]Room, len(rooms))
		copy(out, rooms)

		room := current
		room.UpdatedAt = alert.Time
		room.Unread = current.Unread + 1
		if room.Status == "" {
			room.Status = RoomAuto
		}
		room.Activation = alert.Title
		room.RiskLevel = alert.Severity
		room.RecentDomains = pushRecentDomain(current.RecentDomains, alert.Domain)
		out[i] = room

		return out, Change{RoomID: room.ID}
	}

	room := Room{
		ID:            alert.RoomID,
		Label:         alert.PatientID,
		Sublabel:      alert.Title,
		PatientID:     alert.PatientID,
		RiskLevel:     alert.Severity,
		Status:        RoomAuto,
		Activation:    alert.Title,
		RecentDomains: []Domain{alert.Domain},
		UpdatedAt:     alert.Time,
		Unread:        1,
	}
	if p, ok := findPatient(roster, alert.PatientID); ok {
		room.Label = p.Name
		room.Sublabel = p.Bed + " · " + alert.Title
		room.PatientCode = p.PatientID
	}

	out := make([]Room, 0, len(rooms)+1)
	out = append(out, room)
	return append(out, rooms...), Change{RoomID: room.ID, RoomCreated: true}
}

func pushRecentDomain(recent []Domain, d Domain) []Domain {
	out := make([]Domain, 0, maxRecentDomains)
	out = append(out, d)
	for _, existing := range recent {
		if len(out) == maxRecentDomains {
			break
		}
		if existing != d {
			out = append(out, existing)
		}
	}
	return out
}

// mergeInsight replaces the matching domain entry field by field, or appends
// a new entry built from the update.
func mergeInsight(current []DomainInsight, up InsightUpdate) []DomainInsight {
	out := make([]DomainInsight, len(current), len(current)+1)
	copy(out, current)

	for i, in := range out {
		if in.Key != up.Domain {
			continue
		}
		if up.Status != nil {
			in.Status = *up.Status
		}
		if up.LastUpdated != "" {
			in.LastUpdated = up.LastUpdated
		}
		if up.Standardized != nil {
			in.Standardized = cloneSlice(up.Standardized)
		}
		if up.Drivers != nil {
			in.Drivers = cloneSlice(up.Drivers)
		}
		if up.RawOutputs != nil {
			in.RawOutputs = cloneSlice(up.RawOutputs)
		}
		if up.Evidence != nil {
			in.Evidence = cloneSlice(up.Evidence)
		}
		if up.Confidence != nil {
			in.Confidence = *up.Confidence
		}
		if up.Quality != nil {
			in.Quality = *up.Quality
		}
		out[i] = in
		return out
	}

	added := DomainInsight{
		Key:          up.Domain,
		Title:        up.Domain.Label(),
		Status:       InsightActive,
		LastUpdated:  up.LastUpdated,
		Standardized: cloneSlice(up.Standardized),
		Drivers:      cloneSlice(up.Drivers),
		RawOutputs:   cloneSlice(up.RawOutputs),
		Evidence:     cloneSlice(up.Evidence),
		Confidence:   "-",
		Quality:      QualityLimited,
	}
	if up.Status != nil {
		added.Status = *up.Status
	}
	if up.Confidence != nil {
		added.Confidence = *up.Confidence
	}
	if up.Quality != nil {
		added.Quality = *up.Quality
	}
	if added.RawOutputs == nil {
		added.RawOutputs = []string{}
	}
	if added.Evidence == nil {
		added.Evidence = []string{}
	}
	return append(out, added)
}

func findPatient(roster []Patient, id string) (Patient, bool) {
	for _, p := range roster {
		if p.ID == id {
			return p, true
		}
	}
	return Patient{}, false
}
