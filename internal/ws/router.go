package ws

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/services/registry"
)

// Config holds per-connection settings
type Config struct {
	SendBuffer int
}

// Router runs the session of every connection: snapshot on connect,
// command dispatch, error replies and disconnect cleanup
type Router struct {
	registry  registry.RegistryInterface
	hub       *Hub
	validator *Validator
	upgrader  websocket.Upgrader
	cfg       Config
	logger    *slog.Logger
}

// NewRouter creates a Router
func NewRouter(reg registry.RegistryInterface, hub *Hub, validator *Validator, cfg Config, logger *slog.Logger) *Router {
	return &Router{
		registry:  reg,
		hub:       hub,
		validator: validator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		cfg:    cfg,
		logger: logger.With(slog.String("component", "ws-router")),
	}
}

// Serve upgrades the request and runs the session of user until it disconnects
func (rt *Router) Serve(w http.ResponseWriter, r *http.Request, user model.User) {
	conn, err := rt.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error
		rt.logger.Warn("ws upgrade failed", slog.Any("error", err))
		return
	}

	client := newClient(conn, user, rt.cfg.SendBuffer, rt.logger)
	rt.connect(client)

	go client.writePump()
	client.readPump(rt.handle)

	rt.disconnect(client)
}

// connect registers the client and queues its lobby snapshot
// Runs under the registry lock so no event can slip in between
func (rt *Router) connect(c *Client) {
	rt.registry.Snapshot(c.user.ID, func(lobby model.Lobby) {
		rt.hub.Register(c)

		rooms, err := EncodeExistingRooms(lobby.Rooms)
		if err != nil {
			rt.logger.Error("ws failed to encode rooms", slog.Any("error", err))
			return
		}
		c.Send(rooms)

		positions, err := EncodeExistingPositions(lobby.Positions)
		if err != nil {
			rt.logger.Error("ws failed to encode positions", slog.Any("error", err))
			return
		}
		c.Send(positions)
	})
}

// disconnect unregisters the client and frees the user's seat on their last connection
func (rt *Router) disconnect(c *Client) {
	if rt.hub.Unregister(c) {
		rt.registry.LeaveAll(c.user.ID)
	}
}

// handle processes one inbound frame and replies with an error if it was rejected
func (rt *Router) handle(c *Client, messageType int, data []byte) {
	var err error
	if messageType != websocket.TextMessage {
		err = ErrUnsupportedPayload
	} else {
		err = rt.Dispatch(c.user, data)
	}
	if err == nil {
		return
	}

	text, known := ErrorText(err)
	if !known {
		rt.logger.Error("ws command failed",
			slog.String("user_id", string(c.user.ID)),
			slog.Any("error", err))
	} else {
		rt.logger.Debug("ws command rejected",
			slog.String("user_id", string(c.user.ID)),
			slog.Any("error", err))
	}
	c.Send(EncodeError(text))
}

// Dispatch decodes, validates and executes one text frame on behalf of user
func (rt *Router) Dispatch(user model.User, data []byte) error {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if !rt.validator.Known(frame.Type) {
		return ErrUnknownType
	}
	if err := rt.validator.Validate(frame.Type, frame.Payload); err != nil {
		return err
	}

	switch frame.Type {
	case TypeCreateRoom:
		var p CreateRoomPayload
		if err := decode(frame.Payload, &p); err != nil {
			return err
		}
		_, err := rt.registry.CreateRoom(user, p.Name, p.Password)
		return err

	case TypeJoinRoom:
		var p JoinRoomPayload
		if err := decode(frame.Payload, &p); err != nil {
			return err
		}
		return rt.registry.JoinRoom(user, model.RoomID(p.RoomID), p.Password)

	case TypeLeaveRoom:
		var p RoomPayload
		if err := decode(frame.Payload, &p); err != nil {
			return err
		}
		return rt.registry.LeaveRoom(user.ID, model.RoomID(p.RoomID))

	case TypeSetPositions:
		var p SetPositionsPayload
		if err := decode(frame.Payload, &p); err != nil {
			return err
		}
		return rt.registry.SetPositions(user.ID, model.RoomID(p.RoomID), p.Positions)

	case TypeStartGame:
		var p RoomPayload
		if err := decode(frame.Payload, &p); err != nil {
			return err
		}
		return rt.registry.StartGame(model.RoomID(p.RoomID))

	case TypeMoveGame:
		var p MoveGamePayload
		if err := decode(frame.Payload, &p); err != nil {
			return err
		}
		return rt.registry.Move(user.ID, model.RoomID(p.RoomID), p.Position.Index())
	}

	return ErrUnknownType
}

func decode(payload json.RawMessage, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
