package site

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/medflow-ai/caseroom/internal/auth"
	"github.com/medflow-ai/caseroom/internal/caseroom"
	"github.com/medflow-ai/caseroom/internal/document"
	"github.com/medflow-ai/caseroom/internal/shared/errors"
	"github.com/medflow-ai/caseroom/internal/shared/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type anchors struct {
	Hero, Features, Architecture, Demo, Mobile, Footer string
}

var sectionAnchors = anchors{
	Hero:         AnchorHero,
	Features:     AnchorFeatures,
	Architecture: AnchorArchitecture,
	Demo:         AnchorDemo,
	Mobile:       AnchorMobile,
	Footer:       AnchorFooter,
}

// alertCard is a feed item with the link that opens its room.
type alertCard struct {
	caseroom.AlertFeedItem
	Href string
}

// roomItem is a room list entry.
type roomItem struct {
	caseroom.Room
	Href   string
	Active bool
}

type roleLink struct {
	Label  string
	Href   string
	Active bool
}

// page is the view model for the landing template.
type page struct {
	Content       Content
	Anchors       anchors
	View          caseroom.View
	AlertCards    []alertCard
	RoomItems     []roomItem
	ArchivedItems []roomItem
	RoleLinks     []roleLink
	Query         string
	Results       []document.Document
}

// Handler serves the landing page with the live demo workspace.
type Handler struct {
	ws      *caseroom.Workspace
	content Content
}

// NewHandler creates a landing page handler backed by ws.
func NewHandler(ws *caseroom.Workspace, content Content) *Handler {
	return &Handler{ws: ws, content: content}
}

// Routes registers the landing page route
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Landing)
	return r
}

// Landing renders every section. ?room= selects the case room, ?role= the
// viewer role and ?q= filters the selected patient's documents.
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	role, err := caseroom.ResolveRole(r)
	if err != nil {
		appErr := errors.From(err)
		http.Error(w, appErr.Message, appErr.HTTPStatus)
		return
	}

	query := r.URL.Query().Get("q")
	p := h.buildPage(h.ws.Snapshot(), r.URL.Query().Get("room"), role, query)

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "page", p); err != nil {
		log.Error().Err(err).Msg("failed to render landing page")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) buildPage(s caseroom.State, roomID string, role auth.Role, query string) page {
	v := caseroom.BuildView(s, roomID, role)

	activeID := ""
	if v.ActiveRoom != nil {
		activeID = v.ActiveRoom.ID
	}

	p := page{
		Content:       h.content,
		Anchors:       sectionAnchors,
		View:          v,
		AlertCards:    make([]alertCard, 0, len(v.Alerts)),
		RoomItems:     roomItems(v.Rooms, activeID, role),
		ArchivedItems: roomItems(v.Archived, activeID, role),
		Query:         query,
		Results:       v.Documents,
	}

	for _, a := range v.Alerts {
		p.AlertCards = append(p.AlertCards, alertCard{AlertFeedItem: a, Href: roomHref(a.RoomID, role)})
	}
	for _, rl := range auth.Roles {
		p.RoleLinks = append(p.RoleLinks, roleLink{
			Label:  string(rl),
			Href:   roomHref(activeID, rl),
			Active: rl == role,
		})
	}
	if query != "" && v.Patient != nil {
		p.Results = s.SearchDocuments(v.Patient.ID, query)
		metrics.RecordDocumentSearch(len(p.Results))
	}

	return p
}

func roomItems(rooms []caseroom.Room, activeID string, role auth.Role) []roomItem {
	items := make([]roomItem, 0, len(rooms))
	for _, r := range rooms {
		items = append(items, roomItem{Room: r, Href: roomHref(r.ID, role), Active: r.ID == activeID})
	}
	return items
}

func roomHref(roomID string, role auth.Role) string {
	q := url.Values{}
	if roomID != "" {
		q.Set("room", roomID)
	}
	q.Set("role", string(role))
	return "/?" + q.Encode() + "#" + AnchorDemo
}
