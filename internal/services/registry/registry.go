package registry

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/mcoot/battleship/internal/dependencies/idgen"
	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/services/room"
)

// Sink receives every event relayed by the registry, in mutation order
type Sink interface {
	Publish(event model.Event)
}

// entry is a registered room plus its subscription state
type entry struct {
	room   *room.Room
	active bool // false once the room is deleted; later events are dropped
}

// Registry owns every room in the process
// All commands run under one lock so that room and game state has a single writer
type Registry struct {
	mu     sync.Mutex
	rooms  []*entry
	ids    idgen.Generator
	sink   Sink
	logger *slog.Logger
}

// New creates an empty registry that relays events to sink
func New(ids idgen.Generator, sink Sink, logger *slog.Logger) *Registry {
	return &Registry{
		ids:    ids,
		sink:   sink,
		logger: logger.With(slog.String("component", "registry")),
	}
}

// CreateRoom creates a room seated with user
func (r *Registry) CreateRoom(user model.User, name, password string) (model.RoomView, error) {
	secret, err := room.HashPassword(password)
	if err != nil {
		return model.RoomView{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.occupied(user.ID) != nil {
		return model.RoomView{}, model.ErrUserAlreadyInOtherRoom
	}

	id := model.RoomID(r.ids.NewID())
	e := &entry{active: true}
	rm := room.New(id, name, secret, user, r.relay(e, id))
	e.room = rm
	r.rooms = append(r.rooms, e)

	view := rm.View()
	r.publish(model.Event{
		Type:    model.EventRoomCreate,
		RoomID:  id,
		Payload: model.RoomCreatePayload{Room: view},
	})

	r.logger.Info("room created",
		slog.String("room_id", string(id)),
		slog.String("user_id", string(user.ID)),
	)
	return view, nil
}

// GetRoom returns the public state of a room
func (r *Registry) GetRoom(roomID model.RoomID) (model.RoomView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, err := r.find(roomID)
	if err != nil {
		return model.RoomView{}, err
	}
	return rm.View(), nil
}

// JoinRoom seats user in the room, leaving any other room first
// The password is checked without holding the lock; a room's secret never changes
func (r *Registry) JoinRoom(user model.User, roomID model.RoomID, password string) error {
	r.mu.Lock()
	target, err := r.find(roomID)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	secret := target.Password()
	r.mu.Unlock()

	passwordOK := secret.Matches(password)

	r.mu.Lock()
	defer r.mu.Unlock()

	// the room may have been deleted while the password was checked
	target, err = r.find(roomID)
	if err != nil {
		return err
	}

	if current := r.occupied(user.ID); current != nil && current != target {
		current.Leave(user.ID)
	}

	return target.Admit(user, passwordOK)
}

// LeaveRoom removes the user from the room
func (r *Registry) LeaveRoom(userID model.UserID, roomID model.RoomID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, err := r.find(roomID)
	if err != nil {
		return err
	}
	rm.Leave(userID)
	return nil
}

// LeaveAll removes the user from whatever room they occupy
func (r *Registry) LeaveAll(userID model.UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range slices.Clone(r.rooms) {
		if e.room.HasUser(userID) {
			e.room.Leave(userID)
		}
	}
}

// SetPositions stores the user's layout in the room
func (r *Registry) SetPositions(userID model.UserID, roomID model.RoomID, positions model.Matrix[model.PositionCell]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, err := r.find(roomID)
	if err != nil {
		return err
	}
	return rm.SetPositions(userID, positions)
}

// StartGame starts the room's game when both layouts are in
func (r *Registry) StartGame(roomID model.RoomID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, err := r.find(roomID)
	if err != nil {
		return err
	}
	rm.StartGame()
	return nil
}

// Move fires a shot in the room's game
func (r *Registry) Move(userID model.UserID, roomID model.RoomID, index model.Index) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, err := r.find(roomID)
	if err != nil {
		return err
	}
	return rm.Move(userID, index)
}

// Rooms returns every room in creation order
func (r *Registry) Rooms() []model.RoomView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.views()
}

// PositionsFor returns the layouts the user has submitted, keyed by room
func (r *Registry) PositionsFor(userID model.UserID) map[model.RoomID]model.Matrix[model.PositionCell] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.positions(userID)
}

// Snapshot calls fn with a consistent view of the lobby for userID
// No event is relayed while fn runs, so fn can subscribe to the sink without gaps
func (r *Registry) Snapshot(userID model.UserID, fn func(model.Lobby)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fn(model.Lobby{
		Rooms:     r.views(),
		Positions: r.positions(userID),
	})
}

// relay returns the emitter handed to a room
// It stamps the room id and removes the room on delete
func (r *Registry) relay(e *entry, id model.RoomID) model.Emitter {
	return func(event model.Event) {
		if !e.active {
			return
		}
		event.RoomID = id
		if event.Type == model.EventRoomDelete {
			e.active = false
			r.remove(id)
			r.logger.Info("room deleted", slog.String("room_id", string(id)))
		}
		r.publish(event)
	}
}

func (r *Registry) publish(event model.Event) {
	if r.sink != nil {
		r.sink.Publish(event)
	}
}

func (r *Registry) find(roomID model.RoomID) (*room.Room, error) {
	for _, e := range r.rooms {
		if e.room.ID() == roomID {
			return e.room, nil
		}
	}
	return nil, model.ErrRoomNotFound
}

func (r *Registry) occupied(userID model.UserID) *room.Room {
	for _, e := range r.rooms {
		if e.room.HasUser(userID) {
			return e.room
		}
	}
	return nil
}

func (r *Registry) remove(roomID model.RoomID) {
	r.rooms = slices.DeleteFunc(r.rooms, func(e *entry) bool {
		return e.room.ID() == roomID
	})
}

func (r *Registry) views() []model.RoomView {
	views := make([]model.RoomView, 0, len(r.rooms))
	for _, e := range r.rooms {
		views = append(views, e.room.View())
	}
	return views
}

func (r *Registry) positions(userID model.UserID) map[model.RoomID]model.Matrix[model.PositionCell] {
	result := make(map[model.RoomID]model.Matrix[model.PositionCell])
	for _, e := range r.rooms {
		if p, ok := e.room.PositionsOf(userID); ok {
			result[e.room.ID()] = p
		}
	}
	return result
}

// Interface for dependency injection
type RegistryInterface interface {
	CreateRoom(user model.User, name, password string) (model.RoomView, error)
	GetRoom(roomID model.RoomID) (model.RoomView, error)
	JoinRoom(user model.User, roomID model.RoomID, password string) error
	LeaveRoom(userID model.UserID, roomID model.RoomID) error
	LeaveAll(userID model.UserID)
	SetPositions(userID model.UserID, roomID model.RoomID, positions model.Matrix[model.PositionCell]) error
	StartGame(roomID model.RoomID) error
	Move(userID model.UserID, roomID model.RoomID, index model.Index) error
	Rooms() []model.RoomView
	PositionsFor(userID model.UserID) map[model.RoomID]model.Matrix[model.PositionCell]
	Snapshot(userID model.UserID, fn func(model.Lobby))
}

var _ RegistryInterface = (*Registry)(nil)
