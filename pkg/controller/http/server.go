package http

import (
	"context"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/asclepius/frontend"
	"github.com/secmon-lab/asclepius/pkg/domain/model"
	"github.com/secmon-lab/asclepius/pkg/usecase"
	"github.com/secmon-lab/asclepius/pkg/utils/logging"
)

// maxBodySize limits JSON request bodies
const maxBodySize = 1 << 20

// DiagnosisUseCase matches a symptom description to the closest case
type DiagnosisUseCase interface {
	Match(input string) *model.Diagnosis
}

// ChatUseCase relays one conversation turn upstream
type ChatUseCase interface {
	Chat(ctx context.Context, input usecase.ChatInput) (*usecase.ChatOutput, error)
}

type Server struct {
	router    *chi.Mux
	chat      ChatUseCase
	diagnosis DiagnosisUseCase
}

type Options func(*Server)

func WithChat(uc ChatUseCase) Options {
	return func(s *Server) {
		s.chat = uc
	}
}

func WithDiagnosis(uc DiagnosisUseCase) Options {
	return func(s *Server) {
		s.diagnosis = uc
	}
}

func New(opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.chat == nil {
		// Requests are still validated; relaying reports the missing upstream as a 500.
		s.chat = usecase.NewChatUseCase(nil)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)
	r.With(limitBody(maxBodySize)).Post("/chat", chatHandler(s.chat))

	if s.diagnosis != nil {
		r.With(limitBody(maxBodySize)).Post("/api/diagnose", diagnoseHandler(s.diagnosis))
	}

	// Static file serving for the web UI (catch-all, must be last)
	staticFS, err := fs.Sub(frontend.StaticFiles, "dist")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to bind dist dir for static")
	}

	r.Get("/*", spaHandler(staticFS))

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "healthy"})
}

// spaHandler serves static files and falls back to index.html for unknown paths
func spaHandler(staticFS fs.FS) http.HandlerFunc {
	fileServer := http.FileServer(http.FS(staticFS))

	return func(w http.ResponseWriter, r *http.Request) {
		urlPath := strings.TrimPrefix(r.URL.Path, "/")
		if urlPath == "" {
			urlPath = "index.html"
		}

		if _, err := fs.Stat(staticFS, urlPath); err != nil {
			index, err := fs.ReadFile(staticFS, "index.html")
			if err != nil {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			if _, err := w.Write(index); err != nil {
				logging.From(r.Context()).Warn("failed to write index.html", "error", err)
			}
			return
		}

		fileServer.ServeHTTP(w, r)
	}
}
