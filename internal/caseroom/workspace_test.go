package caseroom_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medflow-ai/caseroom/internal/caseroom"
	"github.com/medflow-ai/caseroom/internal/fixtures"
	"github.com/medflow-ai/caseroom/internal/shared/errors"
)

func TestWorkspaceInject(t *testing.T) {
	ws := caseroom.NewWorkspace(fixtures.Seed)
	before := ws.Snapshot()

	change, err := ws.Inject(fixtures.LiveEvents()[0].Event)
	require.NoError(t, err)
	assert.Equal(t, "room-pt-004", change.RoomID)

	after := ws.Snapshot()
	assert.Equal(t, "alert-imaging-live", after.Alerts[0].ID)
	assert.Equal(t, "alert-icu", before.Alerts[0].ID, "earlier snapshots are not affected")
}

func TestWorkspaceInjectRejectsInvalidEvent(t *testing.T) {
	ws := caseroom.NewWorkspace(fixtures.Seed)

	ev := fixtures.LiveEvents()[0].Event
	ev.Alert.RoomID = ""
	ev.Alert.Severity = "extreme"

	_, err := ws.Inject(ev)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrValidation)

	appErr := errors.From(err)
	assert.Contains(t, appErr.Details, "alert.room_id")
	assert.Contains(t, appErr.Details, "alert.severity")

	assert.Equal(t, fixtures.Seed().Alerts, ws.Snapshot().Alerts)
}

func TestWorkspaceResetKeepsConnection(t *testing.T) {
	ws := caseroom.NewWorkspace(fixtures.Seed)
	ws.SetConnection(caseroom.ConnConnected)

	for _, le := range fixtures.LiveEvents() {
		_, err := ws.Inject(le.Event)
		require.NoError(t, err)
	}
	require.Len(t, ws.Snapshot().Alerts, 6)

	ws.Reset()
	s := ws.Snapshot()
	assert.Len(t, s.Alerts, 3)
	assert.Equal(t, "2 min ago", s.System.LastSync)
	assert.Equal(t, caseroom.ConnConnected, s.Connection)
}

func TestWorkspaceConcurrentInject(t *testing.T) {
	ws := caseroom.NewWorkspace(fixtures.Seed)
	ev := fixtures.LiveEvents()[1].Event

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = ws.Inject(ev)
			_ = caseroom.BuildView(ws.Snapshot(), "room-pt-003", "Nurse")
		}()
	}
	wg.Wait()

	s := ws.Snapshot()
	assert.Len(t, s.Alerts, 23)
	assert.Equal(t, 21, roomByID(t, s, "room-pt-003").Unread)
}

func TestAlertEventValidate(t *testing.T) {
	for _, le := range fixtures.LiveEvents() {
		assert.NoError(t, le.Event.Validate())
	}

	bad := caseroom.AlertEvent{}
	err := bad.Validate()
	require.Error(t, err)
	details := errors.From(err).Details
	for _, key := range []string{"alert.id", "alert.room_id", "alert.patient_id", "alert.domain", "alert.severity", "alert.time", "alert.title", "message.type", "timeline.type"} {
		assert.Contains(t, details, key)
	}

	withUpdate := fixtures.LiveEvents()[0].Event
	withUpdate.InsightUpdate.Domain = "xray"
	assert.Error(t, withUpdate.Validate())
}
