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

// BlogHandler handles HTTP requests for blog endpoints.
type BlogHandler struct {
	service *service.BlogService
	gate    *auth.Gate
	logger  *slog.Logger
}

// NewBlogHandler creates a new blog HTTP handler.
func NewBlogHandler(svc *service.BlogService, gate *auth.Gate, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{service: svc, gate: gate, logger: logger}
}

// List handles GET /api/v1/blogs
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Check(IdentityFromContext(r.Context()), domain.ActionList, domain.ResourceBlog); err != nil {
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

// Get handles GET /api/v1/blogs/{id}
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Check(IdentityFromContext(r.Context()), domain.ActionRetrieve, domain.ResourceBlog); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	blog, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: blog})
}

// Create handles POST /api/v1/blogs
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Check(IdentityFromContext(r.Context()), domain.ActionCreate, domain.ResourceBlog); err != nil {
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

	blog, err := h.service.Create(r.Context(), service.CreateBlogInput{
		Title:    deref(form.Title),
		Subject:  deref(form.Subject),
		Category: deref(form.Category),
		Text:     deref(form.Text),
		Image:    form.image,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: blog})
}

// Update handles PUT and PATCH /api/v1/blogs/{id}. Omitted fields are
// left unchanged.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Check(IdentityFromContext(r.Context()), domain.ActionUpdate, domain.ResourceBlog); err != nil {
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

	blog, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), service.UpdateBlogInput{
		Title:    form.Title,
		Subject:  form.Subject,
		Category: form.Category,
		Text:     form.Text,
		Image:    form.image,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: blog})
}

// Delete handles DELETE /api/v1/blogs/{id}
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Check(IdentityFromContext(r.Context()), domain.ActionDestroy, domain.ResourceBlog); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
