package room

import (
	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/services/fleet"
	"github.com/mcoot/battleship/internal/services/game"
)

// seat is a player slot in a room
type seat struct {
	user      model.User
	positions *model.PositionField // nil until a valid layout is submitted
}

func (s *seat) view() model.RoomPlayerView {
	return model.RoomPlayerView{User: s.user, HasPositions: s.positions != nil}
}

// Room is the lobby state machine of a single match
// Not safe for concurrent use; the registry serializes access
type Room struct {
	id           model.RoomID
	name         string
	password     Password
	player1      seat
	player2      *seat
	game         *game.Game
	state        model.RoomState
	emit         model.Emitter
}

// New creates a room seated with its creator
// The password is hashed by the caller with HashPassword
func New(id model.RoomID, name string, password Password, creator model.User, emit model.Emitter) *Room {
	if emit == nil {
		emit = func(model.Event) {}
	}

	return &Room{
		id:       id,
		name:     name,
		password: password,
		player1:  seat{user: creator},
		state:    model.RoomStateAwaitingPlayer2,
		emit:     emit,
	}
}

// ID returns the room id
func (r *Room) ID() model.RoomID {
	return r.id
}

// State returns the room lifecycle state
func (r *Room) State() model.RoomState {
	return r.state
}

// HasUser returns true if the user holds either seat
func (r *Room) HasUser(userID model.UserID) bool {
	return r.seatOf(userID) != nil
}

// Password returns the hashed room secret
func (r *Room) Password() Password {
	return r.password
}

// Join seats user as player2 after checking the password
func (r *Room) Join(user model.User, password string) error {
	return r.Admit(user, r.password.Matches(password))
}

// Admit seats user as player2 given an already checked password
// The password verdict only applies once the room is known to have a free seat
func (r *Room) Admit(user model.User, passwordOK bool) error {
	if r.state == model.RoomStateDeleted {
		return model.ErrRoomNotFound
	}
	if r.HasUser(user.ID) {
		return model.ErrUserAlreadyInRoom
	}
	if r.player2 != nil {
		return model.ErrRoomIsBusy
	}
	if !passwordOK {
		return model.ErrWrongRoomPassword
	}

	r.player2 = &seat{user: user}
	r.state = model.RoomStatePositioning

	r.emit(model.Event{
		Type:    model.EventRoomJoin,
		Payload: model.RoomJoinPayload{User: user},
	})
	return nil
}

// Leave removes the user from the room
// The creator leaving deletes the room; anyone else not seated is ignored
func (r *Room) Leave(userID model.UserID) {
	switch {
	case r.state == model.RoomStateDeleted:
		return
	case userID == r.player1.user.ID:
		r.state = model.RoomStateDeleted
		r.emit(model.Event{
			Type:    model.EventRoomDelete,
			Payload: model.RoomDeletePayload{},
		})
	case r.player2 != nil && userID == r.player2.user.ID:
		r.player2 = nil
		r.state = model.RoomStateAwaitingPlayer2
		r.emit(model.Event{
			Type:    model.EventRoomLeave,
			Payload: model.RoomLeavePayload{UserID: userID},
		})
	}
}

// SetPositions stores the user's ship layout
// Ignored once a game exists or when the user is not seated
func (r *Room) SetPositions(userID model.UserID, positions model.Matrix[model.PositionCell]) error {
	if r.state == model.RoomStateDeleted {
		return model.ErrRoomNotFound
	}

	field := model.NewPositionField(positions)
	if err := fleet.Check(field); err != nil {
		return err
	}

	s := r.seatOf(userID)
	if s == nil || r.game != nil {
		return nil
	}

	s.positions = field
	r.emit(model.Event{
		Type:    model.EventRoomPositionsSet,
		Payload: model.RoomPositionsSetPayload{UserID: userID},
	})
	return nil
}

// StartGame creates the game once both layouts are in
// Does nothing if a game already exists or a layout is missing
func (r *Room) StartGame() {
	if r.game != nil || r.player2 == nil || r.player1.positions == nil || r.player2.positions == nil {
		return
	}

	r.game = game.New(
		r.player1.user, r.player1.positions,
		r.player2.user, r.player2.positions,
		r.emit,
	)
	r.state = model.RoomStatePlaying

	r.emit(model.Event{
		Type:    model.EventGameStart,
		Payload: model.GameStartPayload{Game: r.game.View()},
	})
}

// Game returns the room's game
func (r *Room) Game() (*game.Game, error) {
	if r.game == nil {
		return nil, model.ErrGameNotStartedYet
	}
	return r.game, nil
}

// Move forwards a shot to the game
// The game stops accepting moves once player2 has left
func (r *Room) Move(userID model.UserID, index model.Index) error {
	g, err := r.Game()
	if err != nil {
		return err
	}
	if r.state != model.RoomStatePlaying {
		return nil
	}
	g.Move(userID, index)
	return nil
}

// PositionsOf returns the layout submitted by the user
func (r *Room) PositionsOf(userID model.UserID) (model.Matrix[model.PositionCell], bool) {
	s := r.seatOf(userID)
	if s == nil || s.positions == nil {
		return model.Matrix[model.PositionCell]{}, false
	}
	return s.positions.Snapshot(), true
}

// View returns the public state of the room
func (r *Room) View() model.RoomView {
	view := model.RoomView{
		ID:          r.id,
		Name:        r.name,
		HasPassword: !r.password.Open(),
		State:       r.state,
		Player1:     r.player1.view(),
	}
	if r.player2 != nil {
		p2 := r.player2.view()
		view.Player2 = &p2
	}
	if r.game != nil && r.state == model.RoomStatePlaying {
		g := r.game.View()
		view.Game = &g
	}
	return view
}

func (r *Room) seatOf(userID model.UserID) *seat {
	if userID == r.player1.user.ID {
		return &r.player1
	}
	if r.player2 != nil && userID == r.player2.user.ID {
		return r.player2
	}
	return nil
}
