package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Molmash/molmash/internal/service"
	"github.com/Molmash/molmash/pkg/httputil"
	"github.com/Molmash/molmash/pkg/validator"
)

// NoteHandler handles HTTP requests for contact-form submissions.
type NoteHandler struct {
	service *service.NoteService
	logger  *slog.Logger
}

// NewNoteHandler creates a new contact-form HTTP handler.
func NewNoteHandler(svc *service.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{service: svc, logger: logger}
}

// RequestNoteRequest is the JSON request body for a contact-form submission.
type RequestNoteRequest struct {
	Phone string `json:"phone" validate:"required,intl_phone"`
	Name  string `json:"name" validate:"required,cyr_lat_name"`
	Email string `json:"email" validate:"required,email"`
}

// Submit handles POST /api/v1/request-note
func (h *NoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req RequestNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	err := h.service.Submit(r.Context(), service.RequestNoteInput{
		Phone: req.Phone,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"successMessage": "Ваша заявка успешно принята.",
	})
}
