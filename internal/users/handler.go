package users

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gatehouse-api/gatehouse/internal/platform/httpx"
	"github.com/gatehouse-api/gatehouse/internal/shared"
)

// Handler wires HTTP endpoints for profile mutations. The gate has
// already established an authenticated user before either runs.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

type modEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type modPassRequest struct {
	Pass string `json:"pass" validate:"required"`
}

// ModEmail changes the authenticated user's email address.
func (h *Handler) ModEmail(w http.ResponseWriter, r *http.Request) {
	var req modEmailRequest
	if isJSON(r) {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.RespondError(w, shared.ErrValidation)
			return
		}
	} else {
		req.Email = r.FormValue("email")
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	user := shared.UserFromContext(r.Context())
	if err := h.service.ChangeEmail(r.Context(), user, req.Email); err != nil {
		if !errors.Is(err, shared.ErrEmailTaken) {
			h.logger.Error("change email", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, struct{}{})
}

// ModPass changes the authenticated user's password.
func (h *Handler) ModPass(w http.ResponseWriter, r *http.Request) {
	var req modPassRequest
	if isJSON(r) {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.RespondError(w, shared.ErrValidation)
			return
		}
	} else {
		req.Pass = r.FormValue("pass")
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	user := shared.UserFromContext(r.Context())
	if err := h.service.ChangePassword(r.Context(), user, req.Pass); err != nil {
		h.logger.Error("change password", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, struct{}{})
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}
