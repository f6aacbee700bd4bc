package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/socialhub/socialhub-go/internal/hubnode"
)

// Server represents the HTTP API server
type Server struct {
	node       *hubnode.Node
	jwtAuth    *JWTAuth
	handlers   *Handlers
	middleware *Middleware
	server     *http.Server
	log        zerolog.Logger
}

// Config holds server configuration
type Config struct {
	Port      string
	SecretKey string
	Logger    zerolog.Logger
}

// NewServer creates a new HTTP API server
func NewServer(node *hubnode.Node, config Config) *Server {
	// Use default secret key if not provided (for development)
	secretKey := config.SecretKey
	if secretKey == "" {
		secretKey = "socialhub-dev-secret-key-change-in-production"
	}

	log := config.Logger.With().Str("component", "httpapi").Logger()
	jwtAuth := NewJWTAuth(secretKey)
	handlers := NewHandlers(node, jwtAuth, log)
	middleware := NewMiddleware(jwtAuth, log)

	server := &Server{
		node:       node,
		jwtAuth:    jwtAuth,
		handlers:   handlers,
		middleware: middleware,
		log:        log,
	}

	mux := server.setupRoutes()
	httpServer := &http.Server{
		Addr:           ":" + config.Port,
		Handler:        mux,
		ReadTimeout:    30 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	server.server = httpServer
	return server
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// Apply global middleware
	withMiddleware := func(handler http.HandlerFunc) http.Handler {
		return s.middleware.Recovery(
			s.middleware.Logging(
				s.middleware.CORS(handler)))
	}

	// Authentication endpoints (no auth required)
	mux.Handle("/api/v1/auth/login", withMiddleware(s.handlers.Login))

	// Profile endpoints (auth required for mutations, open for views)
	mux.Handle("/api/v1/profiles", withMiddleware(s.handleProfiles))
	mux.Handle("/api/v1/profiles/", withMiddleware(s.handleProfileByID))

	// Publication endpoints (auth required)
	mux.Handle("/api/v1/publications/post", withMiddleware(s.middleware.AuthRequired(s.postOnly(s.handlers.Post))))
	mux.Handle("/api/v1/publications/comment", withMiddleware(s.middleware.AuthRequired(s.postOnly(s.handlers.Comment))))
	mux.Handle("/api/v1/publications/mirror", withMiddleware(s.middleware.AuthRequired(s.postOnly(s.handlers.Mirror))))

	// Interaction endpoints (auth required)
	mux.Handle("/api/v1/follow", withMiddleware(s.middleware.AuthRequired(s.postOnly(s.handlers.Follow))))
	mux.Handle("/api/v1/collect", withMiddleware(s.middleware.AuthRequired(s.postOnly(s.handlers.Collect))))

	// Signed meta-transaction endpoints (no auth: the signature authorizes)
	mux.Handle("/api/v1/sig/", withMiddleware(s.handleSig))

	// Signature maintenance
	mux.Handle("/api/v1/nonce/", withMiddleware(s.handleNonce))
	mux.Handle("/api/v1/signatures/cancel", withMiddleware(s.middleware.AuthRequired(s.postOnly(s.handlers.CancelSignatures))))

	// Event endpoints (open: the feed is public protocol data)
	mux.Handle("/api/v1/events", withMiddleware(s.getOnly(s.handlers.ReadEvents)))
	mux.Handle("/api/v1/events/stream", withMiddleware(s.getOnly(s.handlers.StreamEvents)))

	// Admin endpoints (admin auth required)
	mux.Handle("/api/v1/admin/state", withMiddleware(s.middleware.AdminRequired(s.postOnly(s.handlers.AdminSetState))))
	mux.Handle("/api/v1/admin/whitelist", withMiddleware(s.middleware.AdminRequired(s.postOnly(s.handlers.AdminWhitelist))))
	mux.Handle("/api/v1/admin/governance", withMiddleware(s.middleware.AdminRequired(s.postOnly(s.handlers.AdminSetGovernance))))
	mux.Handle("/api/v1/admin/emergency-admin", withMiddleware(s.middleware.AdminRequired(s.postOnly(s.handlers.AdminSetEmergencyAdmin))))
	mux.Handle("/api/v1/admin/stats", withMiddleware(s.middleware.AdminRequired(s.getOnly(s.handlers.AdminGetStats))))

	// Health endpoint (no auth required)
	mux.Handle("/api/v1/health", withMiddleware(s.handlers.Health))

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	// Root endpoint with API info
	mux.Handle("/", withMiddleware(s.handleRoot))

	return mux
}

// Method dispatch helpers

func (s *Server) postOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			s.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func (s *Server) getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			s.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

// handleProfiles routes /api/v1/profiles
func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.middleware.AuthRequired(s.handlers.CreateProfile)(w, r)
	default:
		s.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleProfileByID routes /api/v1/profiles/{id}[/...] and the by-handle and
// default sub-paths.
func (s *Server) handleProfileByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/profiles/")
	if rest == "" {
		s.writeError(w, "Profile ID required", http.StatusBadRequest)
		return
	}

	// /api/v1/profiles/by-handle/{handle}
	if handle, ok := strings.CutPrefix(rest, "by-handle/"); ok {
		if r.Method != http.MethodGet {
			s.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.handlers.GetProfileByHandle(w, r, handle)
		return
	}

	// /api/v1/profiles/default
	if rest == "default" {
		if r.Method != http.MethodPost {
			s.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.middleware.AuthRequired(s.handlers.SetDefaultProfile)(w, r)
		return
	}

	segments := strings.Split(rest, "/")
	profileID, err := strconv.ParseUint(segments[0], 10, 64)
	if err != nil {
		s.writeError(w, "Invalid profile ID", http.StatusBadRequest)
		return
	}

	// /api/v1/profiles/{id}
	if len(segments) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.handlers.GetProfile(w, r, profileID)
		case http.MethodDelete:
			s.middleware.AuthRequired(func(w http.ResponseWriter, r *http.Request) {
				s.handlers.BurnProfile(w, r, profileID)
			})(w, r)
		default:
			s.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// /api/v1/profiles/{id}/publications/{pubId}
	if segments[1] == "publications" {
		if len(segments) != 3 || r.Method != http.MethodGet {
			s.writeError(w, "Publication ID required", http.StatusBadRequest)
			return
		}
		pubID, err := strconv.ParseUint(segments[2], 10, 64)
		if err != nil {
			s.writeError(w, "Invalid publication ID", http.StatusBadRequest)
			return
		}
		s.handlers.GetPublication(w, r, profileID, pubID)
		return
	}

	// /api/v1/profiles/{id}/{action} mutations (auth required)
	if len(segments) != 2 || r.Method != http.MethodPost {
		s.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var action http.HandlerFunc
	switch segments[1] {
	case "dispatcher":
		action = func(w http.ResponseWriter, r *http.Request) { s.handlers.SetDispatcher(w, r, profileID) }
	case "image-uri":
		action = func(w http.ResponseWriter, r *http.Request) { s.handlers.SetProfileImageURI(w, r, profileID) }
	case "follow-nft-uri":
		action = func(w http.ResponseWriter, r *http.Request) { s.handlers.SetFollowNFTURI(w, r, profileID) }
	case "follow-module":
		action = func(w http.ResponseWriter, r *http.Request) { s.handlers.SetFollowModule(w, r, profileID) }
	case "transfer":
		action = func(w http.ResponseWriter, r *http.Request) { s.handlers.TransferProfile(w, r, profileID) }
	case "approve":
		action = func(w http.ResponseWriter, r *http.Request) { s.handlers.ApproveProfile(w, r, profileID) }
	default:
		s.writeError(w, "Not found", http.StatusNotFound)
		return
	}
	s.middleware.AuthRequired(action)(w, r)
}

// handleSig routes /api/v1/sig/{action}
func (s *Server) handleSig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	action := strings.TrimPrefix(r.URL.Path, "/api/v1/sig/")
	switch action {
	case "post":
		s.handlers.SigPost(w, r)
	case "comment":
		s.handlers.SigComment(w, r)
	case "mirror":
		s.handlers.SigMirror(w, r)
	case "follow":
		s.handlers.SigFollow(w, r)
	case "collect":
		s.handlers.SigCollect(w, r)
	case "burn":
		s.handlers.SigBurn(w, r)
	case "set-dispatcher":
		s.handlers.SigSetDispatcher(w, r)
	case "set-follow-module":
		s.handlers.SigSetFollowModule(w, r)
	case "set-profile-image-uri":
		s.handlers.SigSetProfileImageURI(w, r)
	case "set-follow-nft-uri":
		s.handlers.SigSetFollowNFTURI(w, r)
	case "set-default-profile":
		s.handlers.SigSetDefaultProfile(w, r)
	default:
		s.writeError(w, "Unknown signed action", http.StatusNotFound)
	}
}

// handleNonce routes /api/v1/nonce/{address}
func (s *Server) handleNonce(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	address := strings.TrimPrefix(r.URL.Path, "/api/v1/nonce/")
	if address == "" {
		s.writeError(w, "Address required", http.StatusBadRequest)
		return
	}
	s.handlers.GetNonce(w, r, address)
}

// handleRoot provides API information
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, "Not found", http.StatusNotFound)
		return
	}

	info := map[string]interface{}{
		"service":     "Social Hub HTTP API",
		"version":     "1.0.0",
		"description": "RESTful HTTP API for the social hub protocol",
		"endpoints": map[string]interface{}{
			"auth": map[string]string{
				"login": "POST /api/v1/auth/login",
			},
			"profiles": map[string]string{
				"create":   "POST /api/v1/profiles",
				"get":      "GET /api/v1/profiles/{id}",
				"byHandle": "GET /api/v1/profiles/by-handle/{handle}",
				"burn":     "DELETE /api/v1/profiles/{id}",
				"mutate":   "POST /api/v1/profiles/{id}/{dispatcher|image-uri|follow-nft-uri|follow-module|transfer|approve}",
				"default":  "POST /api/v1/profiles/default",
			},
			"publications": map[string]string{
				"post":    "POST /api/v1/publications/post",
				"comment": "POST /api/v1/publications/comment",
				"mirror":  "POST /api/v1/publications/mirror",
				"get":     "GET /api/v1/profiles/{id}/publications/{pubId}",
			},
			"interactions": map[string]string{
				"follow":  "POST /api/v1/follow",
				"collect": "POST /api/v1/collect",
			},
			"signatures": map[string]string{
				"relay":  "POST /api/v1/sig/{action}",
				"nonce":  "GET /api/v1/nonce/{address}",
				"cancel": "POST /api/v1/signatures/cancel",
			},
			"events": map[string]string{
				"read":   "GET /api/v1/events?from={seq}&limit={n}",
				"stream": "GET /api/v1/events/stream",
			},
			"admin": map[string]string{
				"state":          "POST /api/v1/admin/state",
				"whitelist":      "POST /api/v1/admin/whitelist",
				"governance":     "POST /api/v1/admin/governance",
				"emergencyAdmin": "POST /api/v1/admin/emergency-admin",
				"stats":          "GET /api/v1/admin/stats",
			},
			"health":  "GET /api/v1/health",
			"metrics": "GET /metrics",
		},
		"authentication": "Bearer JWT token required for most mutating endpoints",
	}

	s.writeJSON(w, info, http.StatusOK)
}

// Helper methods

// writeError writes an error response as JSON
func (s *Server) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
