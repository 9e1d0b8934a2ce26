package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"log/slog"

	"paytrack/internal/cache"
	"paytrack/internal/core"
	"paytrack/internal/services"
)

type Server struct {
	http.Server

	workplaces *services.WorkplaceService
	shifts     *services.ShiftService
	expenses   *services.ExpenseService
	goals      *services.GoalService
	summary    *services.SummaryService

	rateLimiter *rateLimiter

	// Read-side caches for the derived endpoints. Any write invalidates
	// both wholesale; recomputing is cheap enough that finer-grained
	// invalidation is not worth the bookkeeping.
	summaryCache *cache.LRUCache[core.FortnightSummary]
	statsCache   *cache.LRUCache[core.Stats]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run http.Server.
func NewServer(
	addr string,
	workplaces *services.WorkplaceService,
	shifts *services.ShiftService,
	expenses *services.ExpenseService,
	goals *services.GoalService,
	summary *services.SummaryService,
) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		workplaces:       workplaces,
		shifts:           shifts,
		expenses:         expenses,
		goals:            goals,
		summary:          summary,
		rateLimiter:      newRateLimiter(),
		summaryCache:     cache.NewLRUCache[core.FortnightSummary](100, 5*time.Minute),
		statsCache:       cache.NewLRUCache[core.Stats](10, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/workplaces", s.withMiddleware(s.handleListWorkplaces))
	mux.HandleFunc("POST /api/workplaces", s.withMiddleware(s.handleCreateWorkplace))
	mux.HandleFunc("GET /api/workplaces/{id}", s.withMiddleware(s.handleGetWorkplace))
	mux.HandleFunc("PUT /api/workplaces/{id}", s.withMiddleware(s.handleUpdateWorkplace))
	mux.HandleFunc("DELETE /api/workplaces/{id}", s.withMiddleware(s.handleDeleteWorkplace))

	mux.HandleFunc("GET /api/shifts", s.withMiddleware(s.handleListShifts))
	mux.HandleFunc("POST /api/shifts", s.withMiddleware(s.handleCreateShift))
	mux.HandleFunc("GET /api/shifts/{id}", s.withMiddleware(s.handleGetShift))
	mux.HandleFunc("PUT /api/shifts/{id}", s.withMiddleware(s.handleUpdateShift))
	mux.HandleFunc("DELETE /api/shifts/{id}", s.withMiddleware(s.handleDeleteShift))
	mux.HandleFunc("GET /api/search/shifts", s.withMiddleware(s.handleListShifts))
	mux.HandleFunc("GET /api/export/shifts", s.withMiddleware(s.handleExportShifts))

	mux.HandleFunc("GET /api/expenses", s.withMiddleware(s.handleListExpenses))
	mux.HandleFunc("GET /api/expenses/summary", s.withMiddleware(s.handleExpenseSummary))
	mux.HandleFunc("POST /api/expenses", s.withMiddleware(s.handleCreateExpense))
	mux.HandleFunc("GET /api/expenses/{id}", s.withMiddleware(s.handleGetExpense))
	mux.HandleFunc("PUT /api/expenses/{id}", s.withMiddleware(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.withMiddleware(s.handleDeleteExpense))

	mux.HandleFunc("GET /api/goals", s.withMiddleware(s.handleListGoals))
	mux.HandleFunc("POST /api/goals", s.withMiddleware(s.handleCreateGoal))
	mux.HandleFunc("GET /api/goals/{id}", s.withMiddleware(s.handleGetGoal))
	mux.HandleFunc("PUT /api/goals/{id}", s.withMiddleware(s.handleUpdateGoal))
	mux.HandleFunc("DELETE /api/goals/{id}", s.withMiddleware(s.handleDeleteGoal))
	mux.HandleFunc("POST /api/goals/{id}/contribute", s.withMiddleware(s.handleContribute))
	mux.HandleFunc("GET /api/goals/{id}/contributions", s.withMiddleware(s.handleListContributions))

	mux.HandleFunc("GET /api/summary/fortnight", s.withMiddleware(s.handleFortnightSummary))
	mux.HandleFunc("GET /api/summary/weekly", s.withMiddleware(s.handleWeeklySummary))
	mux.HandleFunc("GET /api/summary/monthly", s.withMiddleware(s.handleMonthlySummary))
	mux.HandleFunc("GET /api/stats", s.withMiddleware(s.handleStats))

	return s
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// invalidateDerived drops the cached summary and stats views after any write.
func (s *Server) invalidateDerived() {
	s.summaryCache.Clear()
	s.statsCache.Clear()
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cleaned := s.summaryCache.CleanExpired() + s.statsCache.CleanExpired()
			if cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines and then drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
