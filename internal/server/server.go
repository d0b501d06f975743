package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jbsdesign/InterviewPrepCoach/internal/coach"
	"github.com/jbsdesign/InterviewPrepCoach/internal/config"
	"github.com/jbsdesign/InterviewPrepCoach/internal/db"
	"github.com/jbsdesign/InterviewPrepCoach/internal/llm"
	"github.com/jbsdesign/InterviewPrepCoach/internal/server/middleware"
	"github.com/jbsdesign/InterviewPrepCoach/internal/server/ratelimit"
	"github.com/jbsdesign/InterviewPrepCoach/internal/storage"
)

// Store is the persistence surface the handlers use. *db.DB implements it;
// tests substitute an in-memory fake.
type Store interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*db.UserProfile, error)
	UpsertProfile(ctx context.Context, p *db.UserProfile) (*db.UserProfile, error)
	SetResumeFileName(ctx context.Context, userID uuid.UUID, fallbackFullName, fileName string) error
	ListRoles(ctx context.Context, userID uuid.UUID) ([]db.Role, error)
	CreateRole(ctx context.Context, r *db.Role) (*db.Role, error)
	GetRoleForUser(ctx context.Context, roleID, userID uuid.UUID) (*db.Role, error)
	UpdateRole(ctx context.Context, r *db.Role) (*db.Role, error)
	DeleteRole(ctx context.Context, roleID uuid.UUID) error
	ListInterviews(ctx context.Context, roleID uuid.UUID) ([]db.RoleInterview, error)
	CreateInterview(ctx context.Context, iv *db.RoleInterview) (*db.RoleInterview, error)
	GetInterviewForUser(ctx context.Context, interviewID, userID uuid.UUID) (*db.RoleInterview, error)
	UpdateInterview(ctx context.Context, iv *db.RoleInterview) (*db.RoleInterview, error)
	DeleteInterview(ctx context.Context, interviewID uuid.UUID) error
	ListUpcomingInterviews(ctx context.Context, userID uuid.UUID, now time.Time) ([]db.UpcomingInterview, error)
	ListPrepItems(ctx context.Context, roleID uuid.UUID) ([]db.RolePrepItem, error)
	CreatePrepItem(ctx context.Context, item *db.RolePrepItem) (*db.RolePrepItem, error)
	GetPrepItemForUser(ctx context.Context, itemID, userID uuid.UUID) (*db.RolePrepItem, error)
	UpdatePrepItem(ctx context.Context, item *db.RolePrepItem) (*db.RolePrepItem, error)
	DeletePrepItem(ctx context.Context, itemID uuid.UUID) error
	Close()
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          Store
	documents   *storage.DocumentStore
	agent       *coach.Agent
	llm         llm.Client
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	validator   *validator.Validate
	requireAuth func(http.Handler) http.Handler
}

// Config holds server configuration
type Config struct {
	Port         int
	DatabaseURL  string
	OpenAIAPIKey string
	UploadDir    string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:        database,
		documents: storage.NewDocumentStore(cfg.UploadDir),
		validator: validator.New(),
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)
	s.requireAuth = middleware.Auth(s.jwtService.AsTokenValidator())

	// Without an API key the practice interview runs on the scripted engine
	// and the speech endpoints report themselves unavailable.
	if cfg.OpenAIAPIKey != "" {
		s.llm = llm.NewOpenAI(cfg.OpenAIAPIKey)
	}
	s.agent = coach.NewAgent(s.llm)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Model and audio calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Authentication
	mux.HandleFunc("POST /auth/signup", s.authHandler.Signup)
	mux.HandleFunc("POST /auth/signin", s.authHandler.Signin)
	mux.Handle("GET /auth/me", s.authed(s.authHandler.MeWithUserID))
	mux.Handle("POST /auth/password", s.authed(s.authHandler.UpdatePasswordWithUserID))

	// Profile and resume
	mux.Handle("GET /profile", s.authed(s.handleGetProfile))
	mux.Handle("PUT /profile", s.authed(s.handlePutProfile))
	mux.Handle("POST /profile/resume", s.authed(s.handleUploadResume))
	mux.Handle("POST /profile/resume/extract", s.authed(s.handleExtractResume))

	// Supporting documents
	mux.Handle("GET /profile/documents", s.authed(s.handleListDocuments))
	mux.Handle("POST /profile/documents", s.authed(s.handleUploadDocuments))
	mux.Handle("DELETE /profile/documents/{storedName}", s.authed(s.handleDeleteDocument))

	// Target roles
	mux.Handle("GET /roles", s.authed(s.handleListRoles))
	mux.Handle("POST /roles", s.authed(s.handleCreateRole))
	mux.Handle("GET /roles/{roleId}", s.authed(s.handleGetRole))
	mux.Handle("PATCH /roles/{roleId}", s.authed(s.handleUpdateRole))
	mux.Handle("DELETE /roles/{roleId}", s.authed(s.handleDeleteRole))

	// Interview schedule
	mux.Handle("GET /roles/{roleId}/interviews", s.authed(s.handleListInterviews))
	mux.Handle("POST /roles/{roleId}/interviews", s.authed(s.handleCreateInterview))
	mux.Handle("GET /interviews/upcoming", s.authed(s.handleUpcomingInterviews))
	mux.Handle("PATCH /interviews/{interviewId}", s.authed(s.handleUpdateInterview))
	mux.Handle("DELETE /interviews/{interviewId}", s.authed(s.handleDeleteInterview))

	// Prep checklist
	mux.Handle("GET /roles/{roleId}/prep-items", s.authed(s.handleListPrepItems))
	mux.Handle("POST /roles/{roleId}/prep-items", s.authed(s.handleCreatePrepItem))
	mux.Handle("PATCH /prep-items/{itemId}", s.authed(s.handleUpdatePrepItem))
	mux.Handle("DELETE /prep-items/{itemId}", s.authed(s.handleDeletePrepItem))

	// Practice interview. These work without a session; a valid token only
	// enriches the interviewer with the caller's stored profile.
	mux.HandleFunc("POST /practice-interview", s.handlePracticeInterview)
	mux.HandleFunc("POST /practice-interview/transcribe", s.handleTranscribe)
	mux.HandleFunc("POST /practice-interview/tts", s.handleSpeech)

	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// authed wraps a handler with token validation and hands it the
// authenticated user ID.
func (s *Server) authed(h func(http.ResponseWriter, *http.Request, uuid.UUID)) http.Handler {
	return s.requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := middleware.GetUserID(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		h(w, r, userID)
	}))
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

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
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
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
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// Uses the IP address from RemoteAddr; X-Forwarded-For would need a
// trusted proxy list before it could be honored.
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

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
