package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gatehouse-api/gatehouse/internal/auth"
	"github.com/gatehouse-api/gatehouse/internal/observability"
	"github.com/gatehouse-api/gatehouse/internal/platform/httpx"
	"github.com/gatehouse-api/gatehouse/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger       *slog.Logger
	Config       *Config
	Sessions     *auth.SessionManager
	AuthHandler  *auth.Handler
	UsersHandler *users.Handler
	Metrics      *observability.Metrics
}

// NewRouter constructs the chi.Router. Pages are a mapping from path
// to handler; an unknown page and an unsupported method are handled
// responses, never panics. Every page except login sits behind the
// session gate.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "page not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httpx.Problem(w, http.StatusMethodNotAllowed, "Method Not Allowed", "")
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Group(func(pages chi.Router) {
		pages.Use(RequireJSON)
		pages.Use(params.Sessions.Middleware)

		// Login performs its own credential check and is reachable
		// without a session.
		page(pages, "/login", params.AuthHandler.Login)

		pages.Group(func(gated chi.Router) {
			gated.Use(auth.RequireUser)
			page(gated, "/", params.AuthHandler.Index)
			page(gated, "/index", params.AuthHandler.Index)
			page(gated, "/logout", params.AuthHandler.Logout)
			page(gated, "/usermodemail", params.UsersHandler.ModEmail)
			page(gated, "/usermodpass", params.UsersHandler.ModPass)
		})
	})

	return r
}

// page registers a handler for the two supported methods. chi answers
// anything else with the MethodNotAllowed responder above.
func page(r chi.Router, pattern string, handler http.HandlerFunc) {
	r.Get(pattern, handler)
	r.Post(pattern, handler)
}
