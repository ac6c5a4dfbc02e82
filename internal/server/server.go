// Package server provides the HTTP JSON API for the careers portal.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/careers-portal/internal/careers"
	"github.com/jonathan/careers-portal/internal/config"
	"github.com/jonathan/careers-portal/internal/db"
	"github.com/jonathan/careers-portal/internal/identity"
	"github.com/jonathan/careers-portal/internal/mail"
	"github.com/jonathan/careers-portal/internal/server/middleware"
)

const shutdownTimeout = 30 * time.Second

// pinger reports database reachability for /health.
type pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	db            *db.DB
	health        pinger
	careers       *careers.Service
	identity      identity.Provider
	logger        logrus.FieldLogger
	corsOrigin    string
	secureCookies bool
}

// Deps are the collaborators a Server is built from.
type Deps struct {
	Careers  *careers.Service
	Identity identity.Provider
	Logger   logrus.FieldLogger
	// Health is optional; when set, /health pings it.
	Health pinger

	Port          int
	CORSOrigin    string
	SecureCookies bool
}

// New connects to the database, builds the mail transport, identity provider
// and careers service from cfg, and returns a ready-to-start server.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sender, err := mail.NewSender(cfg.Mail, logger)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create mail sender: %w", err)
	}

	provider, err := newIdentityProvider(cfg, database)
	if err != nil {
		database.Close()
		return nil, err
	}

	svc := careers.New(database, sender, careers.Options{
		StaffEmail: cfg.Mail.StaffEmail,
		Logger:     logger,
	})

	s := NewWithDeps(Deps{
		Careers:       svc,
		Identity:      provider,
		Logger:        logger,
		Health:        database,
		Port:          cfg.Port,
		CORSOrigin:    cfg.CORSOrigin,
		SecureCookies: cfg.IsProduction(),
	})
	s.db = database

	logger.WithFields(logrus.Fields{
		"identity_provider": cfg.Identity.Provider,
		"mail_provider":     cfg.Mail.Provider,
		"staff_notices":     cfg.Mail.StaffEmail != "",
	}).Info("server configured")

	return s, nil
}

func newIdentityProvider(cfg *config.Config, database *db.DB) (identity.Provider, error) {
	if cfg.Identity.Provider == config.IdentityGoTrue {
		return identity.NewGoTrue(cfg.Identity.GoTrueURL, cfg.Identity.GoTrueAPIKey), nil
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	return identity.NewLocal(database, passwordConfig, identity.NewTokenService(jwtConfig)), nil
}

// NewWithDeps builds a server around already constructed collaborators.
func NewWithDeps(d Deps) *Server {
	logger := d.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Server{
		health:        d.Health,
		careers:       d.Careers,
		identity:      d.Identity,
		logger:        logger,
		corsOrigin:    d.CORSOrigin,
		secureCookies: d.SecureCookies,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", d.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with logging and CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	admin := middleware.RequireSession(s.identity, s.logger)
	adminRoute := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, admin(h))
	}

	mux.HandleFunc("GET /health", s.handleHealth)

	// Public job board and intake
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.HandleFunc("POST /apply", s.handleApply)

	// Session
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/logout", s.handleLogout)
	mux.HandleFunc("GET /auth/me", s.handleMe)

	// Admin job registry
	adminRoute("GET /admin/jobs", s.handleAdminListJobs)
	adminRoute("POST /admin/jobs", s.handleCreateJob)
	adminRoute("PATCH /admin/jobs/{id}", s.handleUpdateJob)
	adminRoute("DELETE /admin/jobs/{id}", s.handleDeleteJob)

	// Admin applications
	adminRoute("GET /admin/applications", s.handleListApplications)
	adminRoute("PATCH /admin/applications", s.handleUpdateApplication)
	adminRoute("DELETE /admin/applications", s.handleDeleteApplication)
	adminRoute("GET /admin/applications/stats", s.handleApplicationStats)
	adminRoute("POST /admin/applications/send-email", s.handleSendEmail)
	adminRoute("GET /admin/applications/{id}", s.handleGetApplication)

	return s.withLogging(s.withCORS(mux))
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully and closes the database pool.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.WithField("addr", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	if s.db != nil {
		s.db.Close()
	}
	s.logger.Info("server stopped")
	return err
}

// withCORS adds CORS headers. A configured origin enables credentialed requests.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.corsOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs one line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		entry := s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_addr": r.RemoteAddr,
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Warn("request completed")
			return
		}
		entry.Info("request completed")
	})
}
