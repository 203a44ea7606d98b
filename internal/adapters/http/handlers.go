// Package httpadapter exposes the puzzle core to the presentation
// layer as a JSON API.
package httpadapter

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gofrs/uuid/v5"

	"svw.info/sumgrid/internal/domain"
	"svw.info/sumgrid/internal/session"
	"svw.info/sumgrid/internal/usecase"
)

type Handler struct {
	UC           *usecase.Service
	DefaultLevel int
}

func New(uc *usecase.Service, defaultLevel int) *Handler {
	if defaultLevel < 1 {
		defaultLevel = 1
	}
	return &Handler{UC: uc, DefaultLevel: defaultLevel}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/api/session", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleSnapshot)
			r.Delete("/", h.handleDelete)
			r.Post("/cell", h.handleCell)
			r.Post("/submit", h.handleSubmit)
			r.Post("/hint", h.handleHint)
			r.Post("/reset", h.handleReset)
			r.Post("/next", h.handleNext)
		})
	})
}

type errResp struct {
	Error string `json:"error"`
}

func renderErr(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errResp{Error: msg})
}

// sessionResp is the uniform reply: the session id, the snapshot, and
// for mutating intents whether the intent landed.
type sessionResp struct {
	ID       string          `json:"id"`
	Applied  *bool           `json:"applied,omitempty"`
	Snapshot domain.Snapshot `json:"snapshot"`
}

func snapshotOf(id uuid.UUID, sess *session.Session, applied *bool) sessionResp {
	return sessionResp{ID: id.String(), Applied: applied, Snapshot: sess.Snapshot()}
}

// lookup resolves the {id} route param to a live session.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (uuid.UUID, *session.Session, bool) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		renderErr(w, r, http.StatusBadRequest, "invalid session id")
		return uuid.Nil, nil, false
	}
	sess, err := h.UC.Get(id)
	if err != nil {
		renderErr(w, r, http.StatusNotFound, err.Error())
		return uuid.Nil, nil, false
	}
	return id, sess, true
}

// ---- Create ----

type createReq struct {
	Level int `json:"level,omitempty"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := render.DecodeJSON(r.Body, &req); err != nil && err != io.EOF {
		renderErr(w, r, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	level := req.Level
	if level < 1 {
		level = h.DefaultLevel
	}
	id, sess := h.UC.Create(level)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, snapshotOf(id, sess, nil))
}

// ---- Observe ----

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, snapshotOf(id, sess, nil))
}

// ---- Intents ----

type cellReq struct {
	Index int    `json:"index"`
	Value string `json:"value"`
}

func (h *Handler) handleCell(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req cellReq
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderErr(w, r, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	applied := sess.EditCell(req.Index, req.Value)
	render.JSON(w, r, snapshotOf(id, sess, &applied))
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	accepted := sess.Submit()
	render.JSON(w, r, snapshotOf(id, sess, &accepted))
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	applied := sess.Hint()
	render.JSON(w, r, snapshotOf(id, sess, &applied))
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	sess.Reset()
	render.JSON(w, r, snapshotOf(id, sess, nil))
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	applied := sess.AdvanceOrRetry()
	render.JSON(w, r, snapshotOf(id, sess, &applied))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := h.UC.Remove(id); err != nil {
		renderErr(w, r, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
