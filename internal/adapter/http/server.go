package adapthttp

import (
	"net/http"

	"weighttrack/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/oauth2"
)

// Services groups the application services the HTTP adapter drives.
type Services struct {
	Auth    *app.AuthService
	Persons *app.PersonService
	Weights *app.WeightService
	Goals   *app.GoalService
	Summary *app.SummaryService
}

// Options tunes the HTTP adapter.
type Options struct {
	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string
	// TrustForwardAuth accepts the Remote-User header set by a reverse proxy.
	TrustForwardAuth bool
	// SSORedirectURL is where the SSO callback sends the browser, with the
	// access token in the URL fragment.
	SSORedirectURL string
}

// OIDCConfig holds the single sign-on provider settings.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	Services
	opts       Options
	oidcConfig OIDCConfig
}

// New creates a Server wired to the given application services.
func New(svc Services, opts Options) *Server {
	if opts.SSORedirectURL == "" {
		opts.SSORedirectURL = "/"
	}
	return &Server{Services: svc, opts: opts}
}

// WithOIDC enables single sign-on through the given provider.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(withNoCache)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
		r.Get("/config", s.handleConfig)
		r.Get("/sso/login", s.handleSSOLogin)
		r.Get("/sso/callback", s.handleSSOCallback)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/me", s.handleMe)

		r.Get("/persons", s.handleListPersons)
		r.Post("/persons", s.handleCreatePerson)
		r.Route("/persons/{id}", func(r chi.Router) {
			r.Put("/", s.handleUpdatePerson)
			r.Delete("/", s.handleDeletePerson)
			r.Get("/weights", s.handleListWeights)
			r.Post("/weights", s.handleCreateWeight)
			r.Get("/goals", s.handleListGoals)
			r.Post("/goals", s.handleCreateGoal)
			r.Get("/summary", s.handleSummary)
		})

		r.Put("/weights/{id}", s.handleUpdateWeight)
		r.Delete("/weights/{id}", s.handleDeleteWeight)

		r.Put("/goals/{id}", s.handleUpdateGoal)
		r.Delete("/goals/{id}", s.handleDeleteGoal)
		r.Post("/goals/{id}/milestones", s.handleCreateMilestone)

		r.Put("/milestones/{id}", s.handleUpdateMilestone)
		r.Delete("/milestones/{id}", s.handleDeleteMilestone)
	})

	return r
}
