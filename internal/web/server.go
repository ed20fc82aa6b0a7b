// Package web serves the public batch catalog and the route-guarded admin
// panel as server-rendered pages over the backend REST API.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/andiamoid/andiamo-admin/internal/client/api"
	"github.com/andiamoid/andiamo-admin/internal/client/config"
	"github.com/andiamoid/andiamo-admin/internal/client/guard"
	"github.com/andiamoid/andiamo-admin/internal/client/session"
	"github.com/andiamoid/andiamo-admin/internal/logging"
	"github.com/gorilla/mux"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server renders the public catalog and the admin panel. It shares one
// session.Manager: the frontend acts for a single admin operator.
type Server struct {
	cfg     *config.Config
	log     logging.Logger
	client  api.Client
	session *session.Manager
	tmpl    *template.Template
	router  *mux.Router
}

func NewServer(cfg *config.Config, log logging.Logger, client api.Client, sess *session.Manager) (*Server, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     cfg,
		log:     log.With("component", "web"),
		client:  client,
		session: sess,
		tmpl:    tmpl,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/", s.handleCatalog).Methods(http.MethodGet)
	r.HandleFunc("/batches/{id:[0-9]+}", s.handleBatchDetail).Methods(http.MethodGet)

	// The login page stays outside the guard; everything else under /admin
	// goes through it.
	r.HandleFunc(guard.LoginPath, s.handleLoginForm).Methods(http.MethodGet)
	r.HandleFunc(guard.LoginPath, s.handleLoginSubmit).Methods(http.MethodPost)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(guard.Middleware(s.session.Snapshot))
	admin.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	admin.HandleFunc("/batches", s.handleAdminBatches).Methods(http.MethodGet)
	admin.HandleFunc("/settings", s.handleSettingsForm).Methods(http.MethodGet)
	admin.HandleFunc("/settings", s.handleSettingsSubmit).Methods(http.MethodPost)
	admin.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)

	s.router = r
}

// Router exposes the handler tree (tests mount it on httptest servers).
func (s *Server) Router() http.Handler { return s.router }

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info(r.Context(), "http request",
			"method", r.Method, "path", r.URL.Path,
			"status", rec.status, "duration", time.Since(start))
	})
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "web frontend listening", "addr", s.cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
