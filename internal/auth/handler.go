package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gatehouse-api/gatehouse/internal/platform/httpx"
	"github.com/gatehouse-api/gatehouse/internal/shared"
)

// LoginMetrics counts login outcomes.
type LoginMetrics interface {
	RecordLogin(outcome string)
}

// Handler wires HTTP endpoints for the session lifecycle pages.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	sessions  *SessionManager
	metrics   LoginMetrics
	validator *validator.Validate
}

// NewHandler constructs a Handler instance. metrics may be nil.
func NewHandler(logger *slog.Logger, service *Service, sessions *SessionManager, metrics LoginMetrics) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		service:   service,
		sessions:  sessions,
		metrics:   metrics,
		validator: validator.New(),
	}
}

type credentials struct {
	Email string `json:"email" validate:"required,email"`
	Pass  string `json:"pass" validate:"required"`
}

type userEnvelope struct {
	User *shared.User `json:"user"`
}

// Index returns the authenticated user. The gate guarantees a user is
// present by the time this runs.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, userEnvelope{User: shared.UserFromContext(r.Context())})
}

// Login verifies credentials and issues a fresh session cookie pair.
// A failed check is an in-band 400; the response never says whether
// the email exists.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := httpx.DecodeJSON(r, &creds); err != nil {
			httpx.RespondError(w, shared.ErrValidation)
			return
		}
	} else {
		creds.Email = r.FormValue("email")
		creds.Pass = r.FormValue("pass")
	}
	if err := h.validator.Struct(creds); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	user, err := h.service.Verify(r.Context(), creds.Email, creds.Pass)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			h.recordLogin("failure")
			httpx.RespondError(w, err)
			return
		}
		h.logger.Error("verify credentials", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	sess, err := h.sessions.Create(r.Context(), user)
	if err != nil {
		h.logger.Error("create session", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	for _, cookie := range h.sessions.LoginCookies(sess, time.Now()) {
		http.SetCookie(w, cookie)
	}
	h.recordLogin("success")
	httpx.JSON(w, http.StatusOK, userEnvelope{User: user})
}

// Logout deletes the presented session and expires the cookie pair.
// Logging out an already-deleted session succeeds.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	user := shared.UserFromContext(r.Context())
	sessionID, token := SessionFromRequest(r)

	if err := h.sessions.Delete(r.Context(), sessionID, token, user); err != nil {
		h.logger.Error("delete session", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	for _, cookie := range h.sessions.LogoutCookies() {
		http.SetCookie(w, cookie)
	}
	httpx.JSON(w, http.StatusOK, struct{}{})
}

func (h *Handler) recordLogin(outcome string) {
	if h.metrics != nil {
		h.metrics.RecordLogin(outcome)
	}
}
