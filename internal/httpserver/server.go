package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/driftlab/beacon-analytics/internal/config"
	"github.com/driftlab/beacon-analytics/internal/database"
	"github.com/driftlab/beacon-analytics/internal/metrics"
	"github.com/driftlab/beacon-analytics/internal/middleware"
	"github.com/driftlab/beacon-analytics/internal/reports"
	"github.com/driftlab/beacon-analytics/internal/storage"
)

// Dependencies holds all external dependencies for the server.
type Dependencies struct {
	DB      *database.PostgresDB
	Redis   *database.RedisDB
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// Server wraps HTTP handlers, the fact store and the reporting service.
type Server struct {
	store   storage.FactStore
	reports *reports.Service
	db      *database.PostgresDB
	redis   *database.RedisDB
	logger  *zap.Logger
	config  *config.Config
	metrics *metrics.Metrics
}

// NewServer constructs a new http.Handler with all routes registered.
func NewServer(deps *Dependencies) http.Handler {
	var store storage.FactStore
	if deps.DB != nil {
		store = storage.NewPostgresStore(deps.DB.Pool)
	} else {
		store = storage.NewMemoryStore()
	}

	var reportCache *redis.Client
	if deps.Redis != nil {
		reportCache = deps.Redis.Client
	}
	reportSvc := reports.NewService(store, reportCache, deps.Config.Reports, deps.Logger, deps.Metrics)

	s := &Server{
		store:   store,
		reports: reportSvc,
		db:      deps.DB,
		redis:   deps.Redis,
		logger:  deps.Logger,
		config:  deps.Config,
		metrics: deps.Metrics,
	}

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", s.handleHealth)

	// Prometheus metrics
	if deps.Config.Metrics.Enabled {
		mux.Handle(deps.Config.Metrics.Path, metrics.Handler())
	}

	// Fact ingestion
	mux.HandleFunc("/campaigns", s.handleCampaigns)
	mux.HandleFunc("/campaigns/", s.handleCampaignByID)
	mux.HandleFunc("/links", s.handleLinks)
	mux.HandleFunc("/content", s.handleContent)
	mux.HandleFunc("/products", s.handleProducts)
	mux.HandleFunc("/billing/deposits", s.handleDeposits)
	mux.HandleFunc("/billing/usage", s.handleUsage)

	// Reporting
	mux.HandleFunc("/reports/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("/reports/products", s.handleProductReport)
	mux.HandleFunc("/reports/providers", s.handleProviderReport)
	mux.HandleFunc("/reports/sequences", s.handleSequenceReport)

	// Middleware chain, innermost first.
	var handler http.Handler = mux
	handler = middleware.NewAuthMiddleware(deps.Config.Auth, deps.Logger).Handler(handler)
	handler = middleware.NewRateLimitMiddleware(deps.Config.RateLimit, deps.Logger, deps.Metrics).Handler(handler)
	handler = middleware.NewLoggingMiddleware(deps.Logger, deps.Metrics).Handler(handler)
	handler = middleware.NewRecoveryMiddleware(deps.Logger).Handler(handler)

	return handler
}

// ---- Health Check ----

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	ctx := r.Context()
	if s.db != nil {
		if err := s.db.Health(ctx); err != nil {
			status["postgres"] = "unreachable"
		} else {
			status["postgres"] = "ok"
		}
	}
	if s.redis != nil {
		if err := s.redis.Health(ctx); err != nil {
			status["redis"] = "unreachable"
		} else {
			status["redis"] = "ok"
		}
	}
	s.writeJSON(w, http.StatusOK, status)
}

// ---- Helpers ----

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, message string, status int) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error(op, zap.Error(err))
	s.errorResponse(w, "internal error", http.StatusInternalServerError)
}
