// Package httpapi exposes the session store to view processes over a local
// HTTP surface. It is the process boundary the auth gate and the screens talk
// to; all state lives in the injected session store.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/NigelSimon20/adnab-qr-code-app/internal/logging"
	"github.com/NigelSimon20/adnab-qr-code-app/internal/session"
)

// Server is the HTTP API server.
type Server struct {
	router     *mux.Router
	httpServer *http.Server
	store      *session.Store
	log        logging.Logger
}

// Config holds server timeouts and the listen address.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// NewServer wires the routes onto a session store.
func NewServer(cfg Config, store *session.Store, log logging.Logger) *Server {
	s := &Server{
		router: mux.NewRouter(),
		store:  store,
		log:    log.With("component", "httpapi"),
	}
	s.routes()

	readTimeout := cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 10 * time.Second
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/session", s.handleGetSession).Methods(http.MethodGet)
	api.HandleFunc("/session/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/session/logout", s.handleLogout).Methods(http.MethodPost)
	api.HandleFunc("/qr/regenerate", s.handleRegenerateQR).Methods(http.MethodPost)
	api.HandleFunc("/notifications", s.handleListNotifications).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}", s.handleGetNotification).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", s.handleMarkRead).Methods(http.MethodPost)
}

// Handler returns the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving and blocks until the listener fails or is shut down.
func (s *Server) Start() error {
	s.log.Info(context.Background(), "http api listening", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
