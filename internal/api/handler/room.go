package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleship/internal/api/response"
	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/services/registry"
	"github.com/mcoot/battleship/internal/ws"
)

// RoomHandler exposes read-only views of the lobby
type RoomHandler struct {
	registry registry.RegistryInterface
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(reg registry.RegistryInterface) *RoomHandler {
	return &RoomHandler{
		registry: reg,
	}
}

// List handles GET /api/v1/rooms
func (h *RoomHandler) List(w http.ResponseWriter, _ *http.Request) {
	rooms := h.registry.Rooms()
	out := make([]ws.RoomDTO, 0, len(rooms))
	for _, v := range rooms {
		out = append(out, ws.NewRoomDTO(v))
	}
	response.OK(w, out)
}

// Get handles GET /api/v1/rooms/{id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.RoomID(mux.Vars(r)["id"])

	view, err := h.registry.GetRoom(id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, ws.NewRoomDTO(view))
}
