// Package server provides the HTTP REST API for the hosted profile
// audit service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/devlens/devlens/internal/analysis"
	"github.com/devlens/devlens/internal/audit"
	"github.com/devlens/devlens/internal/config"
	"github.com/devlens/devlens/internal/server/middleware"
	"github.com/devlens/devlens/internal/server/ratelimit"
)

// Store is the persistence surface the server needs. *db.DB satisfies it.
type Store interface {
	DBClient
	SubscriptionStore
	PipelineStore
}

// Assistant powers the recruiter helper endpoints: profile chat,
// interview-question generation, and resume scoring. None of these
// consume audit credits. *analysis.Analyzer satisfies it.
type Assistant interface {
	ChatAboutProfile(ctx context.Context, username, question, chatContext string) (string, error)
	GenerateInterviewQuestions(ctx context.Context, username, jobDescription string) (*analysis.InterviewQuestions, error)
	ScoreResume(ctx context.Context, resumeText, jobDescription string) (*analysis.ResumeScore, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	fetcher     audit.Fetcher
	analyzer    audit.ProfileAnalyzer
	assistant   Assistant
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	logger      *zap.Logger
}

// Config holds server configuration
type Config struct {
	Port      int
	Store     Store
	Fetcher   audit.Fetcher
	Analyzer  audit.ProfileAnalyzer
	Assistant Assistant
	Logger    *zap.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	s := &Server{
		store:     cfg.Store,
		fetcher:   cfg.Fetcher,
		analyzer:  cfg.Analyzer,
		assistant: cfg.Assistant,
		logger:    cfg.Logger,
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Initialize authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(cfg.Store, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	identify := middleware.IdentityMiddleware(s.jwtService.AsTokenValidator())
	authOnly := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Auth
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.Handle("PUT /auth/password", authOnly(http.HandlerFunc(s.handleUpdatePassword)))

	// Audits
	mux.Handle("POST /analyses", identify(http.HandlerFunc(s.handleCreateAnalysis)))
	mux.Handle("POST /analyses/stream", identify(http.HandlerFunc(s.handleStreamAnalysis)))
	mux.Handle("POST /comparisons", identify(http.HandlerFunc(s.handleCreateComparison)))
	mux.Handle("POST /chat", identify(http.HandlerFunc(s.handleChat)))

	// Recruiter helpers
	mux.Handle("POST /interview-questions", identify(http.HandlerFunc(s.handleInterviewQuestions)))
	mux.Handle("POST /resume-score", identify(http.HandlerFunc(s.handleResumeScore)))

	// Subscription
	mux.Handle("GET /subscription", identify(http.HandlerFunc(s.handleGetSubscription)))
	mux.Handle("POST /subscription/upgrade", identify(http.HandlerFunc(s.handleUpgrade)))

	// Talent pipeline folders
	mux.Handle("GET /folders", identify(http.HandlerFunc(s.handleListFolders)))
	mux.Handle("POST /folders", identify(http.HandlerFunc(s.handleCreateFolder)))
	mux.Handle("PUT /folders/{id}", identify(http.HandlerFunc(s.handleEditFolder)))
	mux.Handle("DELETE /folders/{id}", identify(http.HandlerFunc(s.handleDeleteFolder)))
	mux.Handle("POST /folders/{id}/candidates", identify(http.HandlerFunc(s.handleAddCandidate)))
	mux.Handle("DELETE /folders/{id}/candidates/{username}", identify(http.HandlerFunc(s.handleRemoveCandidate)))

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for streamed audits
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler exposes the configured handler chain, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Instance-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleRegister handles user registration requests.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Register(w, r)
}

// handleLogin handles user login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Login(w, r)
}

// handleUpdatePassword handles password update requests.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
}

// extractClientID extracts the client identifier from the request.
// For now this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Int("remaining", info.Remaining),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
