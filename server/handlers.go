package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/christineastoria/custom-slide-annotation/agent"
	"github.com/christineastoria/custom-slide-annotation/builder"
	"github.com/christineastoria/custom-slide-annotation/config"
	"github.com/christineastoria/custom-slide-annotation/deck"
	"github.com/christineastoria/custom-slide-annotation/i18n"
	"github.com/christineastoria/custom-slide-annotation/models"
	"github.com/christineastoria/custom-slide-annotation/preview"
)

// Version is reported by the health endpoint.
var Version = "dev"

// Handler serves the conversion and deck-building API.
type Handler struct {
	cfg    config.Config
	store  *builder.Store
	reader *deck.Reader
	writer *deck.Writer
	logger func(string)
}

// NewHandler creates a handler. logger may be nil.
func NewHandler(cfg config.Config, store *builder.Store, logger func(string)) *Handler {
	return &Handler{
		cfg:    cfg,
		store:  store,
		reader: deck.NewReader(deck.Options{Logger: logger}),
		writer: deck.NewWriter(deck.Options{Logger: logger}),
		logger: logger,
	}
}

func (h *Handler) log(format string, args ...interface{}) {
	if h.logger != nil {
		h.logger(fmt.Sprintf(format, args...))
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError logs err with its service context and answers with message,
// or a generic message for server faults.
func (h *Handler) writeError(w http.ResponseWriter, err error, message string) {
	status := statusFor(err)
	h.log("[API] %d %v", status, err)
	if status == http.StatusInternalServerError {
		message = i18n.T("api.internal_error")
	}
	http.Error(w, message, status)
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return invalid(err)
	}
	return nil
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health reports liveness
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: Version})
}

// ParseRequest carries a deck file.
type ParseRequest struct {
	PPTXBase64 string `json:"pptx_base64"`
}

// PresentationResponse wraps a canvas document.
type PresentationResponse struct {
	Presentation *models.Document `json:"presentation"`
}

// Parse converts an uploaded deck into the canvas document. Unreadable
// decks come back as a document with its error field set.
// POST /api/parse
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, WrapError("deck", "parse", err), i18n.T("api.invalid_request"))
		return
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(req.PPTXBase64))
	if err != nil {
		h.writeError(w, WrapError("deck", "parse", invalid(err)), i18n.T("api.invalid_base64"))
		return
	}

	doc := h.reader.Read(data)
	h.log("[API] parsed %d bytes into %d slides", len(data), len(doc.Slides))
	writeJSON(w, http.StatusOK, PresentationResponse{Presentation: doc})
}

// SaveRequest carries an edited canvas document.
type SaveRequest struct {
	Presentation *models.Document `json:"presentation"`
}

// SaveResponse carries the rebuilt deck.
type SaveResponse struct {
	PPTXBase64 string `json:"pptx_base64"`
	Success    bool   `json:"success"`
}

// SavePresentation rebuilds a deck from the edited document
// POST /api/save-presentation
func (h *Handler) SavePresentation(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, WrapError("deck", "save", err), i18n.T("api.invalid_request"))
		return
	}
	if req.Presentation == nil {
		h.writeError(w, WrapError("deck", "save", invalid(errors.New("presentation is required"))), i18n.T("api.invalid_request"))
		return
	}

	data, err := h.writer.Write(req.Presentation)
	if err != nil {
		h.writeError(w, WrapError("deck", "save", err), "")
		return
	}
	writeJSON(w, http.StatusOK, SaveResponse{
		PPTXBase64: base64.StdEncoding.EncodeToString(data),
		Success:    true,
	})
}

// PreviewRequest selects a slide to render.
type PreviewRequest struct {
	Presentation *models.Document `json:"presentation"`
	Slide        int              `json:"slide"`
	Width        int              `json:"width"`
}

// Preview renders one slide as PNG
// POST /api/preview
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, WrapError("preview", "render", err), i18n.T("api.invalid_request"))
		return
	}
	width := req.Width
	if width <= 0 {
		width = h.cfg.PreviewWidth
	}

	data, err := preview.RenderPNG(req.Presentation, req.Slide, preview.Options{Width: width, MaxSide: h.cfg.MaxPreviewWidth})
	if err != nil {
		switch {
		case errors.Is(err, preview.ErrNoDocument):
			h.writeError(w, WrapError("preview", "render", invalid(err)), i18n.T("api.invalid_request"))
			return
		case errors.Is(err, preview.ErrSlideOutOfRange):
			h.writeError(w, WrapError("preview", "render", invalid(err)), i18n.T("api.slide_out_of_range", req.Slide))
			return
		case errors.Is(err, preview.ErrTooLarge):
			h.writeError(w, WrapError("preview", "render", invalid(err)), i18n.T("api.preview_too_large", h.cfg.MaxPreviewWidth))
			return
		}
		h.writeError(w, WrapError("preview", "render", err), "")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// CreateSessionRequest names the new deck.
type CreateSessionRequest struct {
	Title string `json:"title"`
}

// SessionResponse describes a builder session.
type SessionResponse struct {
	ID           string           `json:"id"`
	Title        string           `json:"title,omitempty"`
	Finalized    bool             `json:"finalized"`
	Presentation *models.Document `json:"presentation,omitempty"`
	PPTXBase64   string           `json:"pptx_base64,omitempty"`
}

// CreateSession starts a builder session
// POST /api/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
			h.writeError(w, WrapError("builder", "create", err), i18n.T("api.invalid_request"))
			return
		}
	}
	id, _ := h.store.Create(req.Title)
	h.log("[API] created session %s", id)
	writeJSON(w, http.StatusCreated, SessionResponse{ID: id, Title: req.Title})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request, op string) (string, *builder.Session, bool) {
	id := mux.Vars(r)["id"]
	s, ok := h.store.Get(id)
	if !ok {
		h.writeError(w, WrapError("builder", op, fmt.Errorf("%w: session %s", ErrNotFound, id)), i18n.T("api.session_not_found"))
		return id, nil, false
	}
	return id, s, true
}

// GetSession returns the session's current document
// GET /api/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, s, ok := h.session(w, r, "get")
	if !ok {
		return
	}
	resp := SessionResponse{
		ID:           id,
		Title:        s.Title(),
		Finalized:    s.Finalized(),
		Presentation: s.Document(),
	}
	if out := s.Output(); out != nil {
		resp.PPTXBase64 = base64.StdEncoding.EncodeToString(out)
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteSession drops a session
// DELETE /api/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !h.store.Delete(id) {
		h.writeError(w, WrapError("builder", "delete", fmt.Errorf("%w: session %s", ErrNotFound, id)), i18n.T("api.session_not_found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToolResponse carries a tool's result text.
type ToolResponse struct {
	Result string `json:"result"`
}

// InvokeTool runs one deck tool against the session; the body is the tool's
// JSON arguments.
// POST /api/sessions/{id}/tools/{name}
func (h *Handler) InvokeTool(w http.ResponseWriter, r *http.Request) {
	_, s, ok := h.session(w, r, "tool")
	if !ok {
		return
	}
	name := mux.Vars(r)["name"]
	tl, ok := agent.FindTool(agent.NewDeckTools(s, h.logger), name)
	if !ok {
		h.writeError(w, WrapError("agent", name, fmt.Errorf("%w: tool %s", ErrNotFound, name)), i18n.T("api.tool_not_found", name))
		return
	}

	args, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, WrapError("agent", name, err), i18n.T("api.invalid_request"))
		return
	}
	result, err := tl.InvokableRun(r.Context(), string(args))
	if err != nil {
		h.writeError(w, WrapError("agent", name, invalid(err)), i18n.T("api.invalid_request"))
		return
	}
	writeJSON(w, http.StatusOK, ToolResponse{Result: result})
}
