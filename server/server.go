package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/overlay/pkg/config"
	"github.com/umputun/overlay/pkg/domain"
	"github.com/umputun/overlay/pkg/store"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/storage.go -pkg mocks -skip-ensure -fmt goimports . Storage

//go:embed templates/*.html
var templatesFS embed.FS

// Server represents HTTP server instance
type Server struct {
	config  ConfigProvider
	store   Store
	storage Storage
	version string
	debug   bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
	templates  *template.Template
}

// Store is the settings state the server drives
type Store interface {
	Snapshot() store.State
	Update(p domain.Patch) domain.Settings
	Reset() domain.Settings
	Undo() (domain.Settings, bool)
	Redo() (domain.Settings, bool)
	History() (snapshots []domain.Settings, cursor int)
	Serialize() domain.Record
	Deserialize(data []byte) (domain.Settings, error)
	ContentFor(style string) domain.Content
}

// Storage persists serialized settings records
type Storage interface {
	SaveRecord(ctx context.Context, rec domain.Record) error
	ListSaved(ctx context.Context, limit int) ([]domain.SavedConfig, error)
	GetSaved(ctx context.Context, id int64) ([]byte, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetStoreConfig() config.StoreConfig
}

// New initializes a new server instance
func New(cfg ConfigProvider, store Store, storage Storage, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		store:     store,
		storage:   storage,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
		templates: template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadTimeout:       timeout,
		ReadHeaderTimeout: timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("overlay", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024)) // settings records are small
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /{$}", s.previewPageHandler)
	s.router.HandleFunc("GET /preview", s.previewAreaHandler)

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /settings", s.getSettingsHandler)
		r.HandleFunc("PATCH /settings", s.updateSettingsHandler)
		r.HandleFunc("POST /settings/apply", s.applyHandler)
		r.HandleFunc("POST /settings/reset", s.resetHandler)
		r.HandleFunc("POST /settings/undo", s.undoHandler)
		r.HandleFunc("POST /settings/redo", s.redoHandler)
		r.HandleFunc("GET /settings/history", s.historyHandler)

		r.HandleFunc("POST /settings/save", s.saveHandler)
		r.HandleFunc("GET /settings/saved", s.listSavedHandler)
		r.HandleFunc("POST /settings/saved/{id}/restore", s.restoreSavedHandler)
		r.HandleFunc("GET /settings/export", s.exportHandler)
		r.HandleFunc("POST /settings/import", s.importHandler)

		r.HandleFunc("GET /content/{style}", s.contentHandler)
		r.HandleFunc("POST /controls/{id}", s.controlHandler)
	})
}
