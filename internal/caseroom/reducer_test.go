package caseroom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medflow-ai/caseroom/internal/caseroom"
	"github.com/medflow-ai/caseroom/internal/fixtures"
)

func roomByID(t *testing.T, s caseroom.State, id string) caseroom.Room {
	t.Helper()
	for _, r := range s.Rooms {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("room %s not in active rooms", id)
	return caseroom.Room{}
}

func insightFor(t *testing.T, s caseroom.State, patientID string, d caseroom.Domain) caseroom.DomainInsight {
	t.Helper()
	for _, in := range s.Insights[patientID] {
		if in.Key == d {
			return in
		}
	}
	t.Fatalf("no %s insight for %s", d, patientID)
	return caseroom.DomainInsight{}
}

func customAlert(roomID, patientID string, d caseroom.Domain, sev caseroom.RiskLevel, at string) caseroom.AlertEvent {
	return caseroom.AlertEvent{
		Alert: caseroom.AlertFeedItem{
			ID: "alert-" + roomID + "-" + at, RoomID: roomID, PatientID: patientID,
			Domain: d, Title: "Manual alert", Time: at, Severity: sev,
		},
		Message:  caseroom.Message{ID: "msg-" + at, Type: caseroom.MessageAlert, Time: at, Content: "manual"},
		Timeline: caseroom.TimelineEvent{Time: at, Label: "manual", Type: caseroom.TimelineSystem},
	}
}

func TestApplyImagingLiveEvent(t *testing.T) {
	seed := fixtures.Seed()
	require.Equal(t, 2, roomByID(t, seed, "room-pt-004").Unread)

	next, change := caseroom.Apply(seed, fixtures.LiveEvents()[0].Event)

	room := roomByID(t, next, "room-pt-004")
	assert.Equal(t, 3, room.Unread)
	assert.Equal(t, "14:25", room.UpdatedAt)
	assert.Equal(t, "Imaging result available", room.Activation)
	assert.Equal(t, caseroom.RiskHigh, room.RiskLevel)
	assert.Equal(t, []caseroom.Domain{caseroom.DomainImaging}, room.RecentDomains)
	assert.Equal(t, caseroom.Change{RoomID: "room-pt-004"}, change)

	require.NotEmpty(t, next.Alerts)
	assert.Equal(t, "alert-imaging-live", next.Alerts[0].ID)
	assert.Len(t, next.Alerts, len(seed.Alerts)+1)

	msgs := next.Messages["room-pt-004"]
	assert.Equal(t, "msg-live-001", msgs[len(msgs)-1].ID)
	tl := next.Timelines["room-pt-004"]
	assert.Equal(t, "Imaging result available (Lesion detected)", tl[len(tl)-1].Label)

	p, err := next.Patient("pt-004")
	require.NoError(t, err)
	assert.Equal(t, caseroom.RiskHigh, p.RiskLevel)
	assert.Equal(t, caseroom.StatusUnstable, p.Status)

	img := insightFor(t, next, "pt-004", caseroom.DomainImaging)
	v, _ := img.Indicator("Volume")
	assert.Equal(t, "13.1 ml", v)
	assert.Equal(t, "0.92", img.Confidence)
	assert.Equal(t, "14:25", img.LastUpdated)

	assert.Equal(t, "14:25", next.Summaries["pt-004"].LastUpdated)
	assert.Equal(t, "just now", next.System.LastSync)
}

func TestApplyLeavesInputUntouched(t *testing.T) {
	seed := fixtures.Seed()
	before := seed.Clone()

	for _, le := range fixtures.LiveEvents() {
		caseroom.Apply(seed, le.Event)
	}
	caseroom.Apply(seed, customAlert("room-new", "pt-002", caseroom.DomainNeuro, caseroom.RiskLow, "15:00"))

	assert.Equal(t, before, seed)
}

func TestApplyIncrementsUnreadAndStampsTime(t *testing.T) {
	for _, le := range fixtures.LiveEvents() {
		t.Run(le.Event.Alert.ID, func(t *testing.T) {
			seed := fixtures.Seed()
			prev := roomByID(t, seed, le.Event.Alert.RoomID)

			next, _ := caseroom.Apply(seed, le.Event)
			got := roomByID(t, next, le.Event.Alert.RoomID)

			assert.Equal(t, prev.Unread+1, got.Unread)
			assert.Equal(t, le.Event.Alert.Time, got.UpdatedAt)
		})
	}
}

func TestApplyCreatesRoomForNewPatient(t *testing.T) {
	seed := fixtures.Seed()
	ev := customAlert("room-pt-002-live", "pt-002", caseroom.DomainNeuro, caseroom.RiskMedium, "14:40")

	next, change := caseroom.Apply(seed, ev)

	assert.True(t, change.RoomCreated)
	require.Len(t, next.Rooms, len(seed.Rooms)+1)

	created := next.Rooms[0]
	assert.Equal(t, "room-pt-002-live", created.ID)
	assert.Equal(t, 1, created.Unread)
	assert.Equal(t, caseroom.RoomAuto, created.Status)
	assert.Equal(t, "이영희", created.Label)
	assert.Equal(t, "NEU-07 · Manual alert", created.Sublabel)
	assert.Equal(t, "MRN-203921", created.PatientCode)
	assert.Equal(t, []caseroom.Domain{caseroom.DomainNeuro}, created.RecentDomains)

	count := 0
	for _, r := range next.Rooms {
		if r.ID == "room-pt-002-live" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestApplyForArchivedRoomOpensActiveRoom(t *testing.T) {
	seed := fixtures.Seed()
	ev := customAlert("room-pt-002", "pt-002", caseroom.DomainNeuro, caseroom.RiskHigh, "14:50")

	next, change := caseroom.Apply(seed, ev)

	assert.True(t, change.RoomCreated)
	assert.Equal(t, "room-pt-002", next.Rooms[0].ID)
	assert.Equal(t, 1, next.Rooms[0].Unread)
	assert.Equal(t, seed.Archived, next.Archived)
	assert.Equal(t, 0, next.Archived[0].Unread)
}

func TestApplyUnknownPatientFallsBackToID(t *testing.T) {
	next, _ := caseroom.Apply(fixtures.Seed(), customAlert("room-pt-999", "pt-999", caseroom.DomainECG, caseroom.RiskLow, "15:10"))

	created := next.Rooms[0]
	assert.Equal(t, "pt-999", created.Label)
	assert.Equal(t, "Manual alert", created.Sublabel)
	assert.Empty(t, created.PatientCode)
}

func TestApplyReinjectUpdatesInPlace(t *testing.T) {
	ev := fixtures.LiveEvents()[1].Event
	seed := fixtures.Seed()

	once, _ := caseroom.Apply(seed, ev)
	twice, change := caseroom.Apply(once, ev)

	assert.False(t, change.RoomCreated)
	assert.Len(t, twice.Rooms, len(seed.Rooms))
	assert.Equal(t, roomByID(t, seed, "room-pt-003").Unread+2, roomByID(t, twice, "room-pt-003").Unread)
}

func TestApplyRecentDomains(t *testing.T) {
	s := fixtures.Seed()
	require.Equal(t, []caseroom.Domain{caseroom.DomainECG, caseroom.DomainICU}, roomByID(t, s, "room-pt-001").RecentDomains)

	steps := []struct {
		domain caseroom.Domain
		want   []caseroom.Domain
	}{
		{caseroom.DomainImaging, []caseroom.Domain{caseroom.DomainImaging, caseroom.DomainECG, caseroom.DomainICU}},
		{caseroom.DomainNeuro, []caseroom.Domain{caseroom.DomainNeuro, caseroom.DomainImaging, caseroom.DomainECG}},
		{caseroom.DomainECG, []caseroom.Domain{caseroom.DomainECG, caseroom.DomainNeuro, caseroom.DomainImaging}},
	}

	for _, step := range steps {
		s, _ = caseroom.Apply(s, customAlert("room-pt-001", "pt-001", step.domain, caseroom.RiskHigh, "15:00"))
		assert.Equal(t, step.want, roomByID(t, s, "room-pt-001").RecentDomains)
	}
}

func TestApplyRoomStatusDefaultsToAuto(t *testing.T) {
	s := fixtures.Seed()
	s.Rooms[2].Status = ""

	next, _ := caseroom.Apply(s, fixtures.LiveEvents()[0].Event)
	assert.Equal(t, caseroom.RoomAuto, roomByID(t, next, "room-pt-004").Status)

	pinned, _ := caseroom.Apply(fixtures.Seed(), fixtures.LiveEvents()[1].Event)
	assert.Equal(t, caseroom.RoomPinned, roomByID(t, pinned, "room-pt-003").Status)
}

func TestApplyPatientStatusFromSeverity(t *testing.T) {
	tests := []struct {
		sev  caseroom.RiskLevel
		want caseroom.PatientStatus
	}{
		{caseroom.RiskCritical, caseroom.StatusUnstable},
		{caseroom.RiskHigh, caseroom.StatusUnstable},
		{caseroom.RiskMedium, caseroom.StatusWatch},
		{caseroom.RiskLow, caseroom.StatusStable},
	}

	for _, tt := range tests {
		t.Run(string(tt.sev), func(t *testing.T) {
			next, _ := caseroom.Apply(fixtures.Seed(), customAlert("room-pt-001", "pt-001", caseroom.DomainECG, tt.sev, "15:00"))
			p, err := next.Patient("pt-001")
			require.NoError(t, err)
			assert.Equal(t, tt.sev, p.RiskLevel)
			assert.Equal(t, tt.want, p.Status)
		})
	}
}

func TestApplyInsightMerge(t *testing.T) {
	t.Run("partial update keeps unset fields", func(t *testing.T) {
		ev := customAlert("room-pt-001", "pt-001", caseroom.DomainICU, caseroom.RiskHigh, "15:00")
		ev.InsightUpdate = &caseroom.InsightUpdate{
			Domain:       caseroom.DomainICU,
			LastUpdated:  "15:00",
			Standardized: []caseroom.Indicator{{Label: "Risk Score", Value: "95 / 100"}},
		}

		next, _ := caseroom.Apply(fixtures.Seed(), ev)
		icu := insightFor(t, next, "pt-001", caseroom.DomainICU)

		assert.Equal(t, "15:00", icu.LastUpdated)
		assert.Equal(t, 95, caseroom.RiskScore(icu))
		assert.Equal(t, []string{"HR 상승", "BP 변동성", "SpO2 하락"}, icu.Drivers)
		assert.Equal(t, "0.82", icu.Confidence)
		assert.Equal(t, caseroom.QualityLimited, icu.Quality)
		assert.Len(t, next.Insights["pt-001"], 4)
	})

	t.Run("no-data entry becomes active when status is given", func(t *testing.T) {
		active := caseroom.InsightActive
		ev := customAlert("room-pt-001", "pt-001", caseroom.DomainNeuro, caseroom.RiskMedium, "15:00")
		ev.InsightUpdate = &caseroom.InsightUpdate{
			Domain:       caseroom.DomainNeuro,
			LastUpdated:  "15:00",
			Standardized: []caseroom.Indicator{{Label: "Decline Risk Level", Value: "LOW"}},
			Status:       &active,
		}

		next, _ := caseroom.Apply(fixtures.Seed(), ev)
		neuro := insightFor(t, next, "pt-001", caseroom.DomainNeuro)
		assert.Equal(t, caseroom.InsightActive, neuro.Status)
	})

	t.Run("missing domain is appended with defaults", func(t *testing.T) {
		s := fixtures.Seed()
		delete(s.Insights, "pt-003")

		ev := customAlert("room-pt-003", "pt-003", caseroom.DomainNeuro, caseroom.RiskMedium, "15:00")
		ev.InsightUpdate = &caseroom.InsightUpdate{
			Domain:       caseroom.DomainNeuro,
			LastUpdated:  "15:00",
			Standardized: []caseroom.Indicator{{Label: "Decline Risk Level", Value: "LOW"}},
		}

		next, _ := caseroom.Apply(s, ev)
		require.Len(t, next.Insights["pt-003"], 1)

		added := next.Insights["pt-003"][0]
		assert.Equal(t, "Neuro", added.Title)
		assert.Equal(t, caseroom.InsightActive, added.Status)
		assert.Equal(t, "-", added.Confidence)
		assert.Equal(t, caseroom.QualityLimited, added.Quality)
		assert.Equal(t, []string{}, added.RawOutputs)
		assert.Equal(t, []string{}, added.Evidence)
	})
}

func TestApplyWithoutDeltasKeepsInsightsAndSummary(t *testing.T) {
	seed := fixtures.Seed()
	next, _ := caseroom.Apply(seed, customAlert("room-pt-001", "pt-001", caseroom.DomainECG, caseroom.RiskHigh, "15:00"))

	assert.Equal(t, seed.Insights, next.Insights)
	assert.Equal(t, seed.Summaries, next.Summaries)
}
