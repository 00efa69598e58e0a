package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Molmash/molmash/internal/auth"
	"github.com/Molmash/molmash/internal/domain"
	"github.com/Molmash/molmash/internal/repository"
	"github.com/Molmash/molmash/internal/service"
	"github.com/Molmash/molmash/pkg/httputil"
	"github.com/Molmash/molmash/pkg/pagination"
)

// ProjectHandler handles HTTP requests for project endpoints.
type ProjectHandler struct {
	service *service.ProjectService
	gate    *auth.Gate
	logger  *slog.Logger
}

// NewProjectHandler creates a new project HTTP handler.
func NewProjectHandler(svc *service.ProjectService, gate *auth.Gate, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{service: svc, gate: gate, logger: logger}
}

// List handles GET /api/v1/projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Check(IdentityFromContext(r.Context()), domain.ActionList, domain.ResourceProject); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	filter := repository.ContentFilter{
		Search:  r.URL.Query().Get("search"),
		OrderBy: r.URL.Query().Get("ordering"),
	}

	result, err := h.service.List(r.Context(), filter, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// Get handles GET /api/v1/projects/{id}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Check(IdentityFromContext(r.Context()), domain.ActionRetrieve, domain.ResourceProject); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	project, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: project})
}

// Create handles POST /api/v1/projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Check(IdentityFromContext(r.Context()), domain.ActionCreate, domain.ResourceProject); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	form, err := parseContentForm(w, r)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}
	defer form.close()

	project, err := h.service.Create(r.Context(), service.CreateProjectInput{
		Title: deref(form.Title),
		Text:  deref(form.Text),
		Image: form.image,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: project})
}

// Update handles PUT and PATCH /api/v1/projects/{id}. Omitted fields are
// left unchanged.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Check(IdentityFromContext(r.Context()), domain.ActionUpdate, domain.ResourceProject); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	form, err := parseContentForm(w, r)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}
	defer form.close()

	project, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), service.UpdateProjectInput{
		Title: form.Title,
		Text:  form.Text,
		Image: form.image,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: project})
}

// Delete handles DELETE /api/v1/projects/{id}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Check(IdentityFromContext(r.Context()), domain.ActionDestroy, domain.ResourceProject); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
