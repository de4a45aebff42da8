package caseroom

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/medflow-ai/caseroom/internal/auth"
	"github.com/medflow-ai/caseroom/internal/document"
	"github.com/medflow-ai/caseroom/internal/shared/errors"
	"github.com/medflow-ai/caseroom/internal/shared/metrics"
)

// RoleHeader carries the viewer role when no role query parameter is given.
const RoleHeader = "X-Workspace-Role"

// Handler provides HTTP handlers for the workspace
type Handler struct {
	ws *Workspace
}

// NewHandler creates a new workspace handler
func NewHandler(ws *Workspace) *Handler {
	return &Handler{ws: ws}
}

// Routes registers the workspace routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/workspace", h.GetWorkspace)
	r.Get("/status", h.GetStatus)
	r.Get("/alerts", h.ListAlerts)

	r.Route("/rooms", func(r chi.Router) {
		r.Get("/", h.ListRooms)
		r.Get("/{roomID}", h.GetRoom)
	})

	r.Route("/patients", func(r chi.Router) {
		r.Get("/", h.ListPatients)
		r.Route("/{patientID}", func(r chi.Router) {
			r.Get("/", h.GetPatient)
			r.Get("/insights", h.GetInsights)
			r.Get("/summary", h.GetSummary)
			r.Get("/documents", h.SearchDocuments)
			r.Get("/audit", h.GetAudit)
		})
	})

	return r
}

// GetWorkspace returns the full workspace view for ?room= and the viewer role
func (h *Handler) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	role, err := ResolveRole(r)
	if err != nil {
		writeError(w, err)
		return
	}

	view := BuildView(h.ws.Snapshot(), r.URL.Query().Get("room"), role)
	writeJSON(w, http.StatusOK, view)
}

// GetStatus returns the system status and feed connection state
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	s := h.ws.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"system":           s.System,
		"connection":       s.Connection,
		"connection_label": s.Connection.Label(),
	})
}

// ListAlerts returns the alert feed, newest first
func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts := h.ws.Snapshot().Alerts
	writeJSON(w, http.StatusOK, map[string]any{
		"alerts": alerts,
		"total":  len(alerts),
	})
}

// ListRooms returns the sorted active rooms and the archived rooms
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	s := h.ws.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"active":   s.SortedRooms(),
		"archived": s.Archived,
	})
}

// GetRoom returns a room with its messages and timeline
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	s := h.ws.Snapshot()

	room, err := s.Room(roomID)
	if err != nil {
		writeError(w, errors.NotFound("room", roomID))
		return
	}

	messages := s.Messages[room.ID]
	if messages == nil {
		messages = []Message{}
	}
	timeline := s.Timelines[room.ID]
	if timeline == nil {
		timeline = []TimelineEvent{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"room":     room,
		"messages": messages,
		"timeline": timeline,
	})
}

// ListPatients returns the patient roster
func (h *Handler) ListPatients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"patients": h.ws.Snapshot().Patients,
	})
}

// GetPatient returns a patient by ID
func (h *Handler) GetPatient(w http.ResponseWriter, r *http.Request) {
	p, ok := h.patient(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetInsights returns the patient's domain insight cards filtered for the role
func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	role, err := ResolveRole(r)
	if err != nil {
		writeError(w, err)
		return
	}
	p, ok := h.patient(w, r)
	if !ok {
		return
	}

	cards := InsightCards(h.ws.Snapshot().Insights[p.ID], role)
	writeJSON(w, http.StatusOK, map[string]any{
		"role":     role,
		"insights": cards,
	})
}

// GetSummary returns the patient's LLM summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	p, ok := h.patient(w, r)
	if !ok {
		return
	}

	sum, found := h.ws.Snapshot().Summary(p.ID)
	if !found {
		writeError(w, errors.NotFound("summary", p.ID))
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// SearchDocuments filters the patient's documents by ?q=
func (h *Handler) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	p, ok := h.patient(w, r)
	if !ok {
		return
	}

	res := document.NewSearchResult(h.ws.Snapshot().Documents[p.ID], r.URL.Query().Get("q"))
	metrics.RecordDocumentSearch(res.Total)
	writeJSON(w, http.StatusOK, res)
}

// GetAudit returns the patient's activity log; Admin only
func (h *Handler) GetAudit(w http.ResponseWriter, r *http.Request) {
	role, err := ResolveRole(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if !auth.CanViewAudit(role) {
		writeError(w, errors.Forbidden("audit log is visible to Admin only"))
		return
	}
	p, ok := h.patient(w, r)
	if !ok {
		return
	}

	logs := h.ws.Snapshot().Activity[p.ID]
	if logs == nil {
		logs = []ActivityLog{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"patient_id": p.ID,
		"activity":   logs,
	})
}

func (h *Handler) patient(w http.ResponseWriter, r *http.Request) (Patient, bool) {
	patientID := chi.URLParam(r, "patientID")
	p, err := h.ws.Snapshot().Patient(patientID)
	if err != nil {
		writeError(w, errors.NotFound("patient", patientID))
		return Patient{}, false
	}
	return p, true
}

// ResolveRole reads the viewer role from ?role=, then the X-Workspace-Role
// header, defaulting to Doctor.
func ResolveRole(r *http.Request) (auth.Role, error) {
	raw := r.URL.Query().Get("role")
	if raw == "" {
		raw = r.Header.Get(RoleHeader)
	}
	role, err := auth.ParseRole(raw)
	if err != nil {
		return "", errors.BadRequest(err.Error())
	}
	return role, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	appErr := errors.From(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}

	writeJSON(w, appErr.HTTPStatus, map[string]any{
		"error":   appErr.Message,
		"code":    appErr.Code,
		"details": appErr.Details,
	})
}

