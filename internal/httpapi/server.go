// Package httpapi exposes the expense service as a JSON HTTP API.
package httpapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	"expensed/internal/middleware/cors"
	"expensed/internal/middleware/ratelimit"
	"expensed/internal/middleware/trace"
	"expensed/internal/services"
)

// Server wraps http.Server with the expense routes and their
// middleware chain.
type Server struct {
	http.Server
	svc          *services.ExpenseService
	rateLimiter  *ratelimit.Limiter
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a
// ready-to-run server.
func NewServer(addr string, svc *services.ExpenseService, corsCfg cors.Config) *Server {
	s := &Server{
		svc:         svc,
		rateLimiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("POST /expenses", s.withRateLimit(http.HandlerFunc(s.handleCreateExpense)))
	mux.HandleFunc("GET /expenses", s.handleListExpenses)
	mux.HandleFunc("DELETE /expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("GET /analytics/summary", s.handleSummary)

	tracer := trace.NewMiddleware(nil)
	handler := tracer.Middleware(cors.Middleware(corsCfg)(mux))

	s.Server = http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
	return s
}

// withRateLimit rejects clients exceeding the per-minute write budget.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := trace.ClientIP(r)
		if !s.rateLimiter.Allow(clientIP) {
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, errorBody{
				Detail: "Rate limit exceeded. Please try again later.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown stops the server and its background goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
