package simulation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medflow-ai/caseroom/internal/caseroom"
	"github.com/medflow-ai/caseroom/internal/fixtures"
	"github.com/medflow-ai/caseroom/internal/shared/events"
)

// fakeBus records published events and hands subscribers to the test.
type fakeBus struct {
	mu        sync.Mutex
	published []events.Event
	handlers  map[string]events.Handler
	failWith  error
}

func newFakeBus() *fakeBus {
	return &fakeBus{handlers: map[string]events.Handler{}}
}

func (b *fakeBus) Publish(ctx context.Context, event events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failWith != nil {
		return b.failWith
	}
	b.published = append(b.published, event)
	return nil
}

func (b *fakeBus) Subscribe(ctx context.Context, pattern, consumerName string, handler events.Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[pattern] = handler
	return nil
}

func (b *fakeBus) Close()        {}
func (b *fakeBus) Health() error { return nil }

func (b *fakeBus) sent() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]events.Event(nil), b.published...)
}

// Recent returns published events newest first, round-tripped through JSON
// the way the store hands them back.
func (b *fakeBus) Recent(ctx context.Context, eventType string, limit int) ([]events.Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failWith != nil {
		return nil, b.failWith
	}

	out := []events.Event{}
	for i := len(b.published) - 1; i >= 0 && len(out) < limit; i-- {
		if b.published[i].Type != eventType {
			continue
		}
		raw, err := json.Marshal(b.published[i])
		if err != nil {
			return nil, err
		}
		var ev events.Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func (b *fakeBus) handler(pattern string) events.Handler {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.handlers[pattern]
}

const fast = 1000.0

func TestDefaultScript(t *testing.T) {
	steps := DefaultScript()
	require.Len(t, steps, 3)

	entries := Describe(steps)
	assert.Equal(t, int64(5000), entries[0].DelayMS)
	assert.Equal(t, int64(12000), entries[1].DelayMS)
	assert.Equal(t, int64(20000), entries[2].DelayMS)
	assert.Equal(t, "alert-imaging-live", entries[0].AlertID)
	assert.Equal(t, "room-pt-003", entries[1].RoomID)
}

func TestScriptedSourceDeliversInFiringOrder(t *testing.T) {
	// listed out of order on purpose
	steps := []Step{
		{Delay: 30 * time.Millisecond, Event: fixtures.LiveEvents()[2].Event},
		{Delay: 5 * time.Millisecond, Event: fixtures.LiveEvents()[0].Event},
	}
	src := NewScriptedSource(steps, 1)
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	first, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alert-imaging-live", first.Alert.ID)

	second, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alert-ecg-live", second.Alert.ID)

	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, ErrSourceExhausted)
}

func TestScriptedSourceOrderHoldsAtHighSpeed(t *testing.T) {
	live := fixtures.LiveEvents()
	steps := []Step{
		{Delay: 20 * time.Second, Event: live[2].Event},
		{Delay: 5 * time.Second, Event: live[0].Event},
		{Delay: 12 * time.Second, Event: live[1].Event},
		{Delay: 12 * time.Second, Event: live[2].Event},
	}
	want := []string{"alert-imaging-live", "alert-icu-live", "alert-ecg-live", "alert-ecg-live"}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for run := 0; run < 200; run++ {
		src := NewScriptedSource(steps, 1e7)
		got := make([]string, 0, len(steps))
		for range steps {
			ev, err := src.Next(ctx)
			require.NoError(t, err)
			got = append(got, ev.Alert.ID)
		}
		_, err := src.Next(ctx)
		assert.ErrorIs(t, err, ErrSourceExhausted)
		require.NoError(t, src.Close())
		require.Equal(t, want, got, "run %d", run)
	}
}

func TestReplayOrderHoldsAtHighSpeed(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for run := 0; run < 100; run++ {
		ws := caseroom.NewWorkspace(fixtures.Seed)
		require.NoError(t, NewInjector(ws, nil, 0).Replay(ctx, DefaultScript(), 1e7))

		s := ws.Snapshot()
		require.Len(t, s.Alerts, 6)
		require.Equal(t, "alert-ecg-live", s.Alerts[0].ID, "run %d", run)
		require.Equal(t, "alert-icu-live", s.Alerts[1].ID, "run %d", run)
		require.Equal(t, "alert-imaging-live", s.Alerts[2].ID, "run %d", run)
		require.Equal(t, caseroom.ConnConnected, s.Connection, "run %d", run)
	}
}

func TestScriptedSourceSpeed(t *testing.T) {
	src := NewScriptedSource(DefaultScript(), fast)
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := src.Next(ctx)
		require.NoError(t, err)
	}
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestScriptedSourceCloseAndCancel(t *testing.T) {
	steps := []Step{{Delay: time.Hour, Event: fixtures.LiveEvents()[0].Event}}

	closed := NewScriptedSource(steps, 1)
	require.NoError(t, closed.Close())
	_, err := closed.Next(context.Background())
	assert.ErrorIs(t, err, ErrSourceClosed)

	src := NewScriptedSource(steps, 1)
	defer src.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInjectorRunScript(t *testing.T) {
	ws := caseroom.NewWorkspace(fixtures.Seed)
	bus := newFakeBus()
	inj := NewInjector(ws, bus, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, inj.Replay(ctx, DefaultScript(), fast))

	s := ws.Snapshot()
	require.Len(t, s.Alerts, 6)
	assert.Equal(t, "alert-ecg-live", s.Alerts[0].ID)
	assert.Equal(t, "alert-icu-live", s.Alerts[1].ID)
	assert.Equal(t, "alert-imaging-live", s.Alerts[2].ID)
	assert.Equal(t, "just now", s.System.LastSync)
	assert.Equal(t, caseroom.ConnConnected, s.Connection)

	published := bus.sent()
	require.Len(t, published, 3)
	for _, e := range published {
		assert.Equal(t, EventAlertApplied, e.Type)
		assert.Equal(t, EventSource, e.Source)
	}
	assert.Equal(t, "alert-imaging-live", published[0].CorrelationID)
}

func TestInjectorFirstLiveEvent(t *testing.T) {
	ws := caseroom.NewWorkspace(fixtures.Seed)
	inj := NewInjector(ws, nil, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, inj.Replay(ctx, DefaultScript()[:1], fast))

	s := ws.Snapshot()
	room, err := s.Room("room-pt-004")
	require.NoError(t, err)
	assert.Equal(t, 3, room.Unread)
	assert.Equal(t, "14:25", room.UpdatedAt)
	assert.Equal(t, "alert-imaging-live", s.Alerts[0].ID)
}

func TestInjectorCancellationStopsUpdates(t *testing.T) {
	ws := caseroom.NewWorkspace(fixtures.Seed)
	inj := NewInjector(ws, nil, time.Hour)

	steps := []Step{{Delay: 50 * time.Millisecond, Event: fixtures.LiveEvents()[0].Event}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- inj.Run(ctx, NewScriptedSource(steps, 1)) }()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("injector did not stop")
	}

	// the timer that would have fired is gone
	time.Sleep(100 * time.Millisecond)
	s := ws.Snapshot()
	assert.Len(t, s.Alerts, 3)
	assert.Equal(t, caseroom.ConnConnecting, s.Connection)
}

func TestInjectorRejectsInvalidEventAndContinues(t *testing.T) {
	ws := caseroom.NewWorkspace(fixtures.Seed)
	inj := NewInjector(ws, nil, time.Millisecond)

	bad := fixtures.LiveEvents()[0].Event
	bad.Alert.Domain = "xray"
	steps := []Step{
		{Delay: time.Millisecond, Event: bad},
		{Delay: 2 * time.Millisecond, Event: fixtures.LiveEvents()[1].Event},
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, inj.Run(ctx, NewScriptedSource(steps, 1)))

	s := ws.Snapshot()
	assert.Len(t, s.Alerts, 4)
	assert.Equal(t, "alert-icu-live", s.Alerts[0].ID)
}

func TestInjectorPublishFailureDoesNotFailApply(t *testing.T) {
	ws := caseroom.NewWorkspace(fixtures.Seed)
	bus := newFakeBus()
	bus.failWith = errors.New("kurrentdb unavailable")
	inj := NewInjector(ws, bus, 0)

	change, err := inj.Apply(context.Background(), fixtures.LiveEvents()[0].Event)
	require.NoError(t, err)
	assert.Equal(t, "room-pt-004", change.RoomID)
}

func TestBusSourceFeedsInjector(t *testing.T) {
	ws := caseroom.NewWorkspace(fixtures.Seed)
	bus := newFakeBus()
	inj := NewInjector(ws, bus, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, err := NewBusSource(ctx, bus, "caseroom-feed")
	require.NoError(t, err)

	handler := bus.handler(EventAlertRaised)
	require.NotNil(t, handler)

	done := make(chan error, 1)
	go func() { done <- inj.Run(ctx, src) }()

	raised := events.NewEvent(EventAlertRaised, "external-feed", fixtures.LiveEvents()[1].Event)
	// round-trip through JSON as the store would
	raw, err := json.Marshal(raised)
	require.NoError(t, err)
	var stored events.Event
	require.NoError(t, json.Unmarshal(raw, &stored))

	require.NoError(t, handler(ctx, stored))

	assert.Eventually(t, func() bool {
		return len(ws.Snapshot().Alerts) == 4
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "alert-icu-live", ws.Snapshot().Alerts[0].ID)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	for _, e := range bus.sent() {
		assert.Equal(t, EventAlertApplied, e.Type)
	}
}

func TestBusSourceRejectsBadPayload(t *testing.T) {
	bus := newFakeBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, err := NewBusSource(ctx, bus, "caseroom-feed")
	require.NoError(t, err)
	defer src.Close()

	err = bus.handler(EventAlertRaised)(ctx, events.NewEvent(EventAlertRaised, "x", "not an alert"))
	assert.Error(t, err)

	require.NoError(t, src.Close())
	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, ErrSourceClosed)
}

func newSimServer(t *testing.T) (*httptest.Server, *caseroom.Workspace) {
	t.Helper()
	ws := caseroom.NewWorkspace(fixtures.Seed)
	h := NewHandler(NewInjector(ws, nil, 0), ws, DefaultScript())
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv, ws
}

func postJSON(t *testing.T, url string, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestInjectEndpoint(t *testing.T) {
	srv, ws := newSimServer(t)

	code, body := postJSON(t, srv.URL+"/inject", `{
		"alert": {
			"room_id": "room-pt-002-live",
			"patient_id": "pt-002",
			"domain": "neuro",
			"severity": "medium",
			"title": "Neuro decline risk rising",
			"time": "14:40"
		}
	}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	change := body["change"].(map[string]any)
	assert.Equal(t, true, change["room_created"])

	s := ws.Snapshot()
	assert.Equal(t, "room-pt-002-live", s.Rooms[0].ID)
	assert.Equal(t, "NEU-07 · Neuro decline risk rising", s.Rooms[0].Sublabel)
	assert.NotEmpty(t, s.Alerts[0].ID)

	msgs := s.Messages["room-pt-002-live"]
	require.Len(t, msgs, 1)
	assert.Equal(t, caseroom.MessageAlert, msgs[0].Type)
	assert.Equal(t, "14:40", msgs[0].Time)
}

func TestInjectEndpointValidation(t *testing.T) {
	srv, ws := newSimServer(t)

	code, body := postJSON(t, srv.URL+"/inject", `{"alert": {"patient_id": "pt-001", "domain": "ecg", "severity": "severe", "title": "x", "time": "15:00"}}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	details := body["details"].(map[string]any)
	assert.Contains(t, details, "alert.room_id")
	assert.Contains(t, details, "alert.severity")

	code, body = postJSON(t, srv.URL+"/inject", `{not json`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "BAD_REQUEST", body["code"])

	assert.Len(t, ws.Snapshot().Alerts, 3)
}

func TestResetEndpoint(t *testing.T) {
	srv, ws := newSimServer(t)
	_, err := ws.Inject(fixtures.LiveEvents()[0].Event)
	require.NoError(t, err)

	code, _ := postJSON(t, srv.URL+"/reset", `{}`)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, ws.Snapshot().Alerts, 3)
}

func TestScriptEndpoint(t *testing.T) {
	srv, _ := newSimServer(t)

	resp, err := http.Get(srv.URL + "/script")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Data  []ScriptEntry `json:"data"`
		Total int           `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 3, body.Total)
	assert.Equal(t, "alert-ecg-live", body.Data[2].AlertID)
}

func getJSON(t *testing.T, url string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHistoryEndpoint(t *testing.T) {
	ws := caseroom.NewWorkspace(fixtures.Seed)
	bus := newFakeBus()
	injector := NewInjector(ws, bus, 0)
	srv := httptest.NewServer(NewHandler(injector, ws, DefaultScript()).WithHistory(bus).Routes())
	defer srv.Close()

	for _, le := range fixtures.LiveEvents() {
		_, err := injector.Apply(context.Background(), le.Event)
		require.NoError(t, err)
	}

	code, body := getJSON(t, srv.URL+"/history?role=Admin")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["enabled"])
	assert.Equal(t, float64(3), body["total"])
	first := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "alert-ecg-live", first["alert_id"])
	assert.Equal(t, "room-pt-001", first["room_id"])

	code, body = getJSON(t, srv.URL+"/history?role=Admin&limit=1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["total"])

	code, body = getJSON(t, srv.URL+"/history?role=Admin&limit=zero")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "BAD_REQUEST", body["code"])

	code, body = getJSON(t, srv.URL+"/history?role=Nurse")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", body["code"])

	code, _ = getJSON(t, srv.URL+"/history")
	assert.Equal(t, http.StatusForbidden, code)
}

func TestHistoryEndpointWithoutStore(t *testing.T) {
	srv, _ := newSimServer(t)

	code, body := getJSON(t, srv.URL+"/history?role=Admin")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["enabled"])
	assert.Empty(t, body["data"])
}
