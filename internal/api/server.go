package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/talentflow/engine/internal/config"
	"github.com/talentflow/engine/internal/hiring"
	"github.com/talentflow/engine/internal/sim"
	"github.com/talentflow/engine/internal/store"
)

// Server represents the HTTP API server
type Server struct {
	config  config.ServerConfig
	router  *chi.Mux
	service *hiring.Service
	sim     *sim.Simulator
	repo    store.Repository
	bus     *store.Bus
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	service *hiring.Service,
	simulator *sim.Simulator,
	repo store.Repository,
	bus *store.Bus,
) *Server {
	s := &Server{
		config:  cfg,
		service: service,
		sim:     simulator,
		repo:    repo,
		bus:     bus,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (outside the simulated API - no artificial latency)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		// Live-query subscriptions bypass the simulator: pushes reflect
		// committed writes, which already paid their latency.
		r.Get("/live", s.handleLiveWS)

		r.Group(func(r chi.Router) {
			r.Use(s.simulateMiddleware)

			// Jobs
			r.Route("/jobs", func(r chi.Router) {
				r.Get("/", s.handleListJobs)
				r.Post("/", s.handleCreateJob)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetJob)
					r.Patch("/", s.handlePatchJob)
					r.Delete("/", s.handleDeleteJob)
					r.Patch("/reorder", s.handleReorderJob)
				})
			})

			// Candidates
			r.Route("/candidates", func(r chi.Router) {
				r.Get("/", s.handleListCandidates)
				r.Post("/", s.handleCreateCandidate)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetCandidate)
					r.Patch("/", s.handlePatchCandidate)
					r.Get("/timeline", s.handleTimeline)
					r.Get("/notes", s.handleListNotes)
					r.Post("/notes", s.handleAddNote)
				})
			})

			// Assessments
			r.Route("/assessments/{jobId}", func(r chi.Router) {
				r.Get("/", s.handleGetAssessment)
				r.Put("/", s.handlePutAssessment)
				r.Post("/submit", s.handleSubmitAssessment)
			})

			// Notifications
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", s.handleListNotifications)
				r.Delete("/read", s.handleClearReadNotifications)
				r.Patch("/{id}/read", s.handleMarkNotificationRead)
			})

			// Activity feed dismissals
			r.Route("/activities", func(r chi.Router) {
				r.Get("/hidden", s.handleListHiddenActivities)
				r.Post("/{id}/hide", s.handleHideActivity)
				r.Delete("/{id}/hide", s.handleUnhideActivity)
			})

			// Profile
			r.Get("/profile", s.handleGetProfile)
			r.Patch("/profile", s.handlePatchProfile)
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "service not ready")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
