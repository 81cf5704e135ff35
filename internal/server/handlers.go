package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/stahnma/gh-repopanel/internal/panel"
	"github.com/stahnma/gh-repopanel/internal/projects"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// SubmitRequest is the body of POST /api/panel/submit.
type SubmitRequest struct {
	Handle string `json:"handle"`
}

// SelectRequest is the body of the facet and sort endpoints.
type SelectRequest struct {
	Value string `json:"value"`
}

// ProjectsResponse is the body of GET /api/projects.
type ProjectsResponse struct {
	Projects   []projects.Project `json:"projects"`
	Categories []string           `json:"categories"`
	Empty      bool               `json:"empty"`
}

type handlers struct {
	panel   Panel
	catalog *projects.Catalog
	logger  *zap.Logger
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func (h *handlers) getPanel(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.panel.Render())
}

func (h *handlers) submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.badRequest(w, r, "Invalid request payload")
		return
	}
	view, err := h.panel.OnSubmit(r.Context(), req.Handle)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, view)
}

func (h *handlers) facet(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.badRequest(w, r, "Invalid request payload")
		return
	}
	view, err := h.panel.OnFacetChange(req.Value)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, view)
}

func (h *handlers) sort(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.badRequest(w, r, "Invalid request payload")
		return
	}
	view, err := h.panel.OnSortChange(req.Value)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, view)
}

func (h *handlers) projects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	found, err := h.catalog.Find(projects.Query{
		Category: q.Get("category"),
		Search:   q.Get("q"),
		Sort:     q.Get("sort"),
	})
	if err != nil {
		h.badRequest(w, r, err.Error())
		return
	}
	render.JSON(w, r, ProjectsResponse{
		Projects:   found,
		Categories: h.catalog.Categories(),
		Empty:      len(found) == 0,
	})
}

func (h *handlers) badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, ErrorResponse{Error: msg, Kind: panel.KindValidation.String()})
}

// fail writes err with the status matching its kind.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Warn("panel request failed",
			zap.String("request_id", GetRequestID(r.Context())), zap.Error(err))
	}
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: err.Error(), Kind: kind})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, panel.ErrSuperseded):
		return http.StatusConflict, "superseded"
	case errors.Is(err, panel.ErrUnknownFacet), errors.Is(err, panel.ErrUnknownSort):
		return http.StatusBadRequest, panel.KindValidation.String()
	}
	switch k := panel.KindOf(err); k {
	case panel.KindValidation:
		return http.StatusBadRequest, k.String()
	case panel.KindNotFound:
		return http.StatusNotFound, k.String()
	case panel.KindRateLimited:
		return http.StatusTooManyRequests, k.String()
	case panel.KindService:
		return http.StatusBadGateway, k.String()
	}
	return http.StatusInternalServerError, "internal"
}
