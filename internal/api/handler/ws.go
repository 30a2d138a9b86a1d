package handler

import (
	"net/http"

	"github.com/mcoot/battleship/internal/api/middleware"
	"github.com/mcoot/battleship/internal/ws"
)

// WSHandler upgrades authenticated requests into game sessions
type WSHandler struct {
	router *ws.Router
}

// NewWSHandler creates a new websocket handler
func NewWSHandler(router *ws.Router) *WSHandler {
	return &WSHandler{router: router}
}

// Connect handles GET /ws
func (h *WSHandler) Connect(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	h.router.Serve(w, r, *user)
}
