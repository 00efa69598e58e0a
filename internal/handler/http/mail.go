package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Molmash/molmash/internal/auth"
	"github.com/Molmash/molmash/internal/domain"
	"github.com/Molmash/molmash/internal/service"
	"github.com/Molmash/molmash/pkg/httputil"
	"github.com/Molmash/molmash/pkg/validator"
)

// MailHandler handles HTTP requests for mailing-list subscriptions.
type MailHandler struct {
	service *service.MailService
	gate    *auth.Gate
	logger  *slog.Logger
}

// NewMailHandler creates a new mailing-list HTTP handler.
func NewMailHandler(svc *service.MailService, gate *auth.Gate, logger *slog.Logger) *MailHandler {
	return &MailHandler{service: svc, gate: gate, logger: logger}
}

// SubscribeRequest is the JSON request body for a subscription.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Subscribe handles POST /api/v1/mail
func (h *MailHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Check(IdentityFromContext(r.Context()), domain.ActionCreate, domain.ResourceSubscription); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req SubscribeRequest
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

	subscription, err := h.service.Subscribe(r.Context(), req.Email)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: subscription})
}
