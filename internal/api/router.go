package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleship/internal/api/handler"
	"github.com/mcoot/battleship/internal/api/middleware"
	"github.com/mcoot/battleship/internal/api/response"
	"github.com/mcoot/battleship/internal/services/auth"
	"github.com/mcoot/battleship/internal/services/registry"
	"github.com/mcoot/battleship/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	Registry    registry.RegistryInterface
	Hub         *ws.Hub
	WSRouter    *ws.Router
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	userHandler := handler.NewUserHandler(cfg.AuthService)
	roomHandler := handler.NewRoomHandler(cfg.Registry)
	wsHandler := handler.NewWSHandler(cfg.WSRouter)

	authMiddleware := middleware.Auth(cfg.AuthService)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Legacy token issue and the socket itself live outside the versioned prefix
	r.HandleFunc("/token", userHandler.IssueTokenFromQuery).Methods(http.MethodPost)
	r.Handle("/ws", authMiddleware(http.HandlerFunc(wsHandler.Connect))).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/token", userHandler.IssueToken).Methods(http.MethodPost)
	api.HandleFunc("/users/register", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", userHandler.Login).Methods(http.MethodPost)

	users := api.PathPrefix("/users").Subrouter()
	users.Use(authMiddleware)
	users.HandleFunc("/me", userHandler.GetMe).Methods(http.MethodGet)

	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.Use(authMiddleware)
	rooms.HandleFunc("", roomHandler.List).Methods(http.MethodGet)
	rooms.HandleFunc("/{id}", roomHandler.Get).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler(cfg.Registry, cfg.Hub)).Methods(http.MethodGet)

	return r
}

func healthHandler(reg registry.RegistryInterface, hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response.OK(w, response.Health{
			Status: "ok",
			Rooms:  len(reg.Rooms()),
			Conns:  hub.ClientCount(),
		})
	}
}
