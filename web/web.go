// Package web serves the admin console pages. Every page is rendered on the
// server; row actions are plain form posts answered with a redirect back to
// the dashboard.
package web

import (
	"context"
	"crypto/sha256"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	root "github.com/collabhub/admin-console"
	"github.com/collabhub/admin-console/audit"
	"github.com/collabhub/admin-console/backend"
	"github.com/collabhub/admin-console/errors"
	"github.com/collabhub/admin-console/guard"
	"github.com/collabhub/admin-console/listing"
	"github.com/collabhub/admin-console/validator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/csrf"
	"go.vocdoni.io/dvote/log"
)

// Backend is the platform backend as used by the console.
type Backend interface {
	listing.Backend
	Login(ctx context.Context, email, password string) (*backend.Identity, []*http.Cookie, error)
	Register(ctx context.Context, req *backend.RegisterRequest) error
}

type Config struct {
	Host     string
	Port     int
	Backend  Backend
	Registry *listing.Registry
	// Audit receives an event for every accepted row action. Optional.
	Audit audit.Publisher
	// CSRFSecret seeds the key of the form tokens. Every console replica
	// must share it.
	CSRFSecret string
	// SecureCookies marks the relayed session and CSRF cookies as HTTPS only.
	SecureCookies bool
}

// Server is the console HTTP server.
type Server struct {
	host          string
	port          int
	backend       Backend
	registry      *listing.Registry
	audit         audit.Publisher
	validator     *validator.Validator
	pages         map[string]*template.Template
	csrfKey       []byte
	secureCookies bool
	router        http.Handler
}

// New creates the console server. It does not start it. Use Start() for that.
func New(conf *Config) (*Server, error) {
	if conf == nil || conf.Backend == nil {
		return nil, fmt.Errorf("missing backend")
	}
	registry := conf.Registry
	if registry == nil {
		registry = listing.NewRegistry(nil)
	}
	publisher := conf.Audit
	if publisher == nil {
		publisher = audit.Nop{}
	}
	pages, err := loadPages(root.Assets)
	if err != nil {
		return nil, err
	}
	key := sha256.Sum256([]byte(conf.CSRFSecret))
	s := &Server{
		host:          conf.Host,
		port:          conf.Port,
		backend:       conf.Backend,
		registry:      registry,
		audit:         publisher,
		validator:     validator.New(),
		pages:         pages,
		csrfKey:       key[:],
		secureCookies: conf.SecureCookies,
	}
	s.router = s.initRouter()
	return s, nil
}

// Router returns the HTTP handler of the console.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the console HTTP server (non blocking).
func (s *Server) Start() {
	go func() {
		srv := &http.Server{
			Addr:              fmt.Sprintf("%s:%d", s.host, s.port),
			Handler:           s.router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		if err := srv.ListenAndServe(); err != nil {
			log.Fatalf("failed to start the console server: %v", err)
		}
	}()
}

// initRouter creates the router with all the routes and middleware.
func (s *Server) initRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(45 * time.Second))

	r.Get(pingEndpoint, func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte(".")); err != nil {
			log.Warnw("failed to write ping response", "error", err)
		}
	})
	r.Handle(staticEndpoint, staticHandler(root.Assets))

	r.Group(func(r chi.Router) {
		r.Use(csrf.Protect(s.csrfKey,
			csrf.Secure(s.secureCookies),
			csrf.Path("/"),
			csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				errors.ErrForbidden.Withf("invalid form token: %v", csrf.FailureReason(r)).Write(w)
			})),
		))
		r.Use(guard.Middleware)

		// public pages
		log.Infow("new route", "method", "GET", "path", landingEndpoint)
		r.Get(landingEndpoint, s.landingHandler)
		log.Infow("new route", "method", "GET", "path", termsEndpoint)
		r.Get(termsEndpoint, s.termsHandler)
		log.Infow("new route", "method", "GET", "path", loginEndpoint)
		r.Get(loginEndpoint, s.loginPageHandler)
		log.Infow("new route", "method", "POST", "path", loginEndpoint)
		r.Post(loginEndpoint, s.loginHandler)
		log.Infow("new route", "method", "GET", "path", signupEndpoint)
		r.Get(signupEndpoint, s.signupPageHandler)
		log.Infow("new route", "method", "POST", "path", signupEndpoint)
		r.Post(signupEndpoint, s.signupHandler)
		log.Infow("new route", "method", "GET", "path", registerEndpoint)
		r.Get(registerEndpoint, s.signupPageHandler)
		log.Infow("new route", "method", "POST", "path", logoutEndpoint)
		r.Post(logoutEndpoint, s.logoutHandler)

		// dashboard, the guard only lets requests with a session cookie in
		log.Infow("new route", "method", "GET", "path", dashboardEndpoint)
		r.Get(dashboardEndpoint, s.dashboardHandler)
		log.Infow("new route", "method", "GET", "path", modalEndpoint)
		r.Get(modalEndpoint, s.modalHandler)
		log.Infow("new route", "method", "POST", "path", verifyCreatorEndpoint)
		r.Post(verifyCreatorEndpoint, s.verifyCreatorHandler)
		log.Infow("new route", "method", "POST", "path", verifyBrandEndpoint)
		r.Post(verifyBrandEndpoint, s.verifyBrandHandler)
		log.Infow("new route", "method", "POST", "path", deleteAccountEndpoint)
		r.Post(deleteAccountEndpoint, s.deleteAccountHandler)
		log.Infow("new route", "method", "POST", "path", videoStatusEndpoint)
		r.Post(videoStatusEndpoint, s.videoStatusHandler)
		log.Infow("new route", "method", "POST", "path", paymentEndpoint)
		r.Post(paymentEndpoint, s.paymentHandler)
	})
	return r
}

// escapedParam returns the unescaped chi URL parameter key.
func escapedParam(r *http.Request, key string) (string, bool) {
	v, err := url.PathUnescape(chi.URLParam(r, key))
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}
