package simulation

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medflow-ai/caseroom/internal/auth"
	"github.com/medflow-ai/caseroom/internal/caseroom"
	"github.com/medflow-ai/caseroom/internal/shared/errors"
	"github.com/medflow-ai/caseroom/internal/shared/events"
)

// Handler provides HTTP handlers for simulation
type Handler struct {
	injector *Injector
	ws       *caseroom.Workspace
	steps    []Step
	history  events.Reader
}

// NewHandler creates a new simulation handler
func NewHandler(injector *Injector, ws *caseroom.Workspace, steps []Step) *Handler {
	return &Handler{injector: injector, ws: ws, steps: steps}
}

// WithHistory serves GET /history from r.
func (h *Handler) WithHistory(r events.Reader) *Handler {
	h.history = r
	return h
}

// Routes registers the simulation routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/inject", h.Inject)
	r.Post("/reset", h.Reset)
	r.Get("/script", h.Script)
	r.Get("/history", h.History)

	return r
}

// Inject applies an operator-supplied alert bundle
func (h *Handler) Inject(w http.ResponseWriter, r *http.Request) {
	var ev caseroom.AlertEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, errors.BadRequest("Invalid request body"))
		return
	}
	fillDefaults(&ev)

	change, err := h.injector.Apply(r.Context(), ev)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, InjectResponse{
		Success:   true,
		AlertID:   ev.Alert.ID,
		Change:    change,
		Timestamp: time.Now().UTC(),
	})
}

// Reset restores the seed state
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.ws.Reset()
	log.Info().Msg("workspace reset to seed state")

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"timestamp": time.Now().UTC(),
	})
}

// Script lists the scripted live events
func (h *Handler) Script(w http.ResponseWriter, r *http.Request) {
	entries := Describe(h.steps)
	writeJSON(w, http.StatusOK, map[string]any{
		"data":  entries,
		"total": len(entries),
	})
}

// History lists the applied alerts mirrored to the event store, newest
// first; Admin only. ?limit= caps the result (default 50).
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	role, err := caseroom.ResolveRole(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if !auth.CanViewAudit(role) {
		writeError(w, errors.Forbidden("applied alert history is visible to Admin only"))
		return
	}

	if h.history == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"enabled": false,
			"data":    []HistoryEntry{},
			"total":   0,
		})
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, errors.BadRequest("limit must be a positive integer"))
			return
		}
		limit = n
	}

	stored, err := h.history.Recent(r.Context(), EventAlertApplied, limit)
	if err != nil {
		writeError(w, errors.Wrap(err, "failed to read applied alerts"))
		return
	}

	entries := make([]HistoryEntry, 0, len(stored))
	for _, ev := range stored {
		var applied AppliedAlert
		if err := events.DecodeData(ev, &applied); err != nil {
			log.Warn().Err(err).Str("event_id", ev.ID).Msg("skipping applied alert")
			continue
		}
		entries = append(entries, HistoryEntry{
			EventID:     ev.ID,
			AppliedAt:   ev.Timestamp,
			AlertID:     applied.Event.Alert.ID,
			RoomID:      applied.Change.RoomID,
			Domain:      applied.Event.Alert.Domain,
			Severity:    applied.Event.Alert.Severity,
			RoomCreated: applied.Change.RoomCreated,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"enabled": true,
		"data":    entries,
		"total":   len(entries),
	})
}

// fillDefaults completes a manual alert so only the alert itself is
// required: ids, message and timeline entry are derived when absent.
func fillDefaults(ev *caseroom.AlertEvent) {
	if ev.Alert.ID == "" {
		ev.Alert.ID = "alert-" + uuid.New().String()
	}
	if ev.Message.ID == "" {
		ev.Message.ID = "msg-" + uuid.New().String()
	}
	if ev.Message.Type == "" {
		ev.Message.Type = caseroom.MessageAlert
	}
	if ev.Message.Sender == "" {
		ev.Message.Sender = "MedFlow AI"
	}
	if ev.Message.Time == "" {
		ev.Message.Time = ev.Alert.Time
	}
	if ev.Message.Content == "" {
		ev.Message.Content = ev.Alert.Title
		if ev.Alert.Detail != "" {
			ev.Message.Content += ". " + ev.Alert.Detail
		}
	}
	if ev.Timeline.Type == "" {
		ev.Timeline.Type = caseroom.TimelineAI
	}
	if ev.Timeline.Time == "" {
		ev.Timeline.Time = ev.Alert.Time
	}
	if ev.Timeline.Label == "" {
		ev.Timeline.Label = ev.Alert.Title
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	appErr := errors.From(err)
	writeJSON(w, appErr.HTTPStatus, map[string]any{
		"error":   appErr.Message,
		"code":    appErr.Code,
		"details": appErr.Details,
	})
}
