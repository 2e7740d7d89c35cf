// Package admin serves the daemon's operational HTTP surface: health,
// metrics, index statistics, and maintenance triggers. The search API
// itself is not exposed here; callers embed the engine or go through
// the platform gateway.
package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	dombatch "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/batch"
	searchuc "github.com/swm-sink/la-factoria-content-factory-sub002/internal/usecase/search"
	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/version"
)

// pingTimeout bounds the database ping inside the health check.
const pingTimeout = 2 * time.Second

// Pinger reports database liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatsSource exposes index statistics.
type StatsSource interface {
	GetIndexStats(ctx context.Context) searchuc.Stats
}

// Maintainer runs index maintenance on demand.
type Maintainer interface {
	ReindexAll(ctx context.Context, batchSize int, since time.Time) dombatch.Report
	CleanupOrphans(ctx context.Context) (int, error)
}

// Server is the admin HTTP server.
type Server struct {
	store      Pinger
	stats      StatsSource
	maintainer Maintainer
	batchSize  int
	logger     *zap.Logger
}

// NewServer creates an admin server. maintainer may be nil when the
// daemon runs without an indexing pipeline; the maintenance routes
// then respond 404. Pass an untyped nil: a nil concrete pointer in a
// non-nil interface still mounts the routes.
func NewServer(store Pinger, stats StatsSource, maintainer Maintainer, batchSize int, logger *zap.Logger) *Server {
	return &Server{
		store:      store,
		stats:      stats,
		maintainer: maintainer,
		batchSize:  batchSize,
		logger:     logger,
	}
}

// Router builds the chi router with all admin routes mounted. tokens
// enables bearer auth on the maintenance routes; health and metrics
// are always open.
func (s *Server) Router(tokens []string) chi.Router {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(BearerAuthMiddleware(tokens))

	r.Get("/healthz", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/admin/stats", s.IndexStats)
	if s.maintainer != nil {
		r.Post("/admin/reindex", s.Reindex)
		r.Post("/admin/cleanup", s.Cleanup)
	}
	return r
}

// HealthCheck handles GET /healthz. Degraded means the database ping
// failed; the process itself is still up.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("health ping failed", zap.Error(err))
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	stats := s.stats.GetIndexStats(ctx)
	writeJSON(w, code, map[string]any{
		"status":    status,
		"version":   version.Version,
		"documents": stats.TotalDocuments,
	})
}

// IndexStats handles GET /admin/stats.
func (s *Server) IndexStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.GetIndexStats(r.Context()))
}

// Reindex handles POST /admin/reindex. The optional since_hours query
// parameter limits the pass to recently updated content; zero or
// absent means a full rebuild. The pass runs synchronously and the
// report is returned, so callers should allow for a long request.
func (s *Server) Reindex(w http.ResponseWriter, r *http.Request) {
	since := time.Time{}
	if raw := r.URL.Query().Get("since_hours"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours < 0 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "since_hours must be a non-negative integer")
			return
		}
		if hours > 0 {
			since = time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
		}
	}

	report := s.maintainer.ReindexAll(r.Context(), s.batchSize, since)
	s.logger.Info("manual reindex finished",
		zap.Int("total", report.Total),
		zap.Int("success", report.Success),
		zap.Int("failed", report.Failed),
	)
	writeJSON(w, http.StatusOK, report)
}

// Cleanup handles POST /admin/cleanup.
func (s *Server) Cleanup(w http.ResponseWriter, r *http.Request) {
	removed, err := s.maintainer.CleanupOrphans(r.Context())
	if err != nil {
		s.logger.Error("orphan cleanup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "cleanup failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

// errorResponse is the admin API error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	codeBadRequest    = "bad_request"
	codeUnauthorized  = "unauthorized"
	codeInternalError = "internal_error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
