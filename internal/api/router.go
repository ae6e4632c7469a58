package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/borga-dev/borga/internal/api/handler"
	"github.com/borga-dev/borga/internal/api/middleware"
	"github.com/borga-dev/borga/internal/catalog"
	"github.com/borga-dev/borga/internal/gate"
	"github.com/borga-dev/borga/internal/services/auth"
	"github.com/borga-dev/borga/internal/services/group"
	"github.com/borga-dev/borga/internal/services/user"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	AuthService  *auth.Service
	UserService  *user.Service
	GroupService *group.Service
	Gate         *gate.Gate
	Catalog      *catalog.Client
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	userHandler := handler.NewUserHandler(cfg.AuthService, cfg.UserService)
	groupHandler := handler.NewGroupHandler(cfg.GroupService, cfg.Gate, cfg.Catalog)
	gamesHandler := handler.NewGamesHandler(cfg.Gate, cfg.Catalog)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// User routes (registration and listing need no auth)
	api.HandleFunc("/users", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users", userHandler.List).Methods(http.MethodGet)

	// Protected user routes
	me := api.PathPrefix("/users/me").Subrouter()
	me.Use(authMiddleware)
	me.HandleFunc("", userHandler.DeregisterMe).Methods(http.MethodDelete)
	me.HandleFunc("/groups", userHandler.MyGroups).Methods(http.MethodGet)
	me.HandleFunc("/groups", userHandler.AttachGroup).Methods(http.MethodPost)
	me.HandleFunc("/groups/{id}", userHandler.DetachGroup).Methods(http.MethodDelete)

	// Catalog search (paced by the admission gate, no auth)
	api.HandleFunc("/games", gamesHandler.Search).Methods(http.MethodGet)

	// Group routes (reads are public, writes require auth)
	api.HandleFunc("/groups", groupHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id}", groupHandler.Get).Methods(http.MethodGet)

	groups := api.PathPrefix("/groups").Subrouter()
	groups.Use(authMiddleware)
	groups.HandleFunc("", groupHandler.Create).Methods(http.MethodPost)
	groups.HandleFunc("/{id}", groupHandler.Update).Methods(http.MethodPatch)
	groups.HandleFunc("/{id}", groupHandler.Delete).Methods(http.MethodDelete)
	groups.HandleFunc("/{id}/games", groupHandler.AddGame).Methods(http.MethodPost)
	groups.HandleFunc("/{id}/games/{game_id}", groupHandler.RemoveGame).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
