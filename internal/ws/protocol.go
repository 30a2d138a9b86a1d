package ws

import (
	"encoding/json"
	"fmt"

	"github.com/mcoot/battleship/internal/model"
)

// MessageType is the type tag of a frame
type MessageType string

// Inbound message types
const (
	TypeCreateRoom   MessageType = "CreateRoom"
	TypeJoinRoom     MessageType = "JoinRoom"
	TypeLeaveRoom    MessageType = "LeaveRoom"
	TypeSetPositions MessageType = "SetPositions"
	TypeStartGame    MessageType = "StartGame"
	TypeMoveGame     MessageType = "MoveGame"
)

// Outbound message types
const (
	TypeExistingRooms     MessageType = "ExistingRooms"
	TypeExistingPositions MessageType = "ExistingPositions"
	TypeRoomCreate        MessageType = "RoomCreate"
	TypeRoomJoin          MessageType = "RoomJoin"
	TypeRoomLeave         MessageType = "RoomLeave"
	TypeRoomDelete        MessageType = "RoomDelete"
	TypeRoomPositionsSet  MessageType = "RoomPositionsSet"
	TypeGameStart         MessageType = "GameStart"
	TypeGameHit           MessageType = "GameHit"
	TypeGameMiss          MessageType = "GameMiss"
	TypeGameDestroy       MessageType = "GameDestroy"
	TypeGameEnd           MessageType = "GameEnd"
	TypeError             MessageType = "Error"
)

// eventTypes maps domain events to their outbound message type
var eventTypes = map[model.EventType]MessageType{
	model.EventRoomCreate:       TypeRoomCreate,
	model.EventRoomJoin:         TypeRoomJoin,
	model.EventRoomLeave:        TypeRoomLeave,
	model.EventRoomDelete:       TypeRoomDelete,
	model.EventRoomPositionsSet: TypeRoomPositionsSet,
	model.EventGameStart:        TypeGameStart,
	model.EventGameHit:          TypeGameHit,
	model.EventGameMiss:         TypeGameMiss,
	model.EventGameDestroy:      TypeGameDestroy,
	model.EventGameEnd:          TypeGameEnd,
}

// Frame is the envelope of every message in both directions
type Frame struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// outFrame is an outbound envelope before encoding
type outFrame struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload"`
}

// Inbound payloads

// CreateRoomPayload is the body of CreateRoom
type CreateRoomPayload struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// JoinRoomPayload is the body of JoinRoom
type JoinRoomPayload struct {
	RoomID   string `json:"roomId"`
	Password string `json:"password"`
}

// RoomPayload names the target room of LeaveRoom and StartGame
type RoomPayload struct {
	RoomID string `json:"roomId"`
}

// SetPositionsPayload is the body of SetPositions
type SetPositionsPayload struct {
	RoomID    string                          `json:"roomId"`
	Positions model.Matrix[model.PositionCell] `json:"positions"`
}

// MoveGamePayload is the body of MoveGame
type MoveGamePayload struct {
	RoomID   string   `json:"roomId"`
	Position Position `json:"position"`
}

// Position is a cell index encoded as [row, col]
type Position [2]int

// NewPosition converts a model index
func NewPosition(i model.Index) Position {
	return Position{i.Row, i.Col}
}

// Index converts to a model index
func (p Position) Index() model.Index {
	return model.Index{Row: p[0], Col: p[1]}
}

// Outbound DTOs

// UserDTO is the public part of a user
type UserDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoomPlayerDTO is a seated player as shown in room lists
type RoomPlayerDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	HasPositions bool   `json:"hasPositions"`
}

// GamePlayerDTO is a player in a running game with their shot board
type GamePlayerDTO struct {
	ID      string                         `json:"id"`
	Name    string                         `json:"name"`
	Attacks model.Matrix[model.AttackCell] `json:"attacks"`
}

// GameDTO is the public state of a game
type GameDTO struct {
	Player1        GamePlayerDTO `json:"player1"`
	Player2        GamePlayerDTO `json:"player2"`
	MovingPlayerID string        `json:"movingPlayerId"`
	Winner         *UserDTO      `json:"winner,omitempty"`
}

// RoomDTO is the public state of a room
type RoomDTO struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	HasPassword bool           `json:"hasPassword"`
	Player1     RoomPlayerDTO  `json:"player1"`
	Player2     *RoomPlayerDTO `json:"player2,omitempty"`
	Game        *GameDTO       `json:"game,omitempty"`
}

// RoomJoinDTO announces a player joining a room
type RoomJoinDTO struct {
	RoomID string  `json:"roomId"`
	User   UserDTO `json:"user"`
}

// RoomUserDTO names a user in a room, for RoomLeave and RoomPositionsSet
type RoomUserDTO struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

// RoomDeleteDTO announces a deleted room
type RoomDeleteDTO struct {
	RoomID string `json:"roomId"`
}

// GameStartDTO announces a started game
type GameStartDTO struct {
	RoomID string  `json:"roomId"`
	Game   GameDTO `json:"game"`
}

// GameShotDTO reports a hit or a miss
type GameShotDTO struct {
	RoomID   string   `json:"roomId"`
	UserID   string   `json:"userId"`
	Position Position `json:"position"`
}

// GameDestroyDTO reports a sunk ship with all its cells
type GameDestroyDTO struct {
	RoomID string     `json:"roomId"`
	UserID string     `json:"userId"`
	Ship   []Position `json:"ship"`
}

// GameEndDTO announces the winner
type GameEndDTO struct {
	RoomID string  `json:"roomId"`
	Winner UserDTO `json:"winner"`
}

// ErrorDTO carries the text of a rejected message
type ErrorDTO struct {
	Text string `json:"text"`
}

// Conversions

// NewUserDTO converts a model user
func NewUserDTO(u model.User) UserDTO {
	return UserDTO{ID: string(u.ID), Name: u.Name}
}

// NewRoomDTO converts a room view
func NewRoomDTO(v model.RoomView) RoomDTO {
	dto := RoomDTO{
		ID:          string(v.ID),
		Name:        v.Name,
		HasPassword: v.HasPassword,
		Player1:     newRoomPlayerDTO(v.Player1),
	}
	if v.Player2 != nil {
		p2 := newRoomPlayerDTO(*v.Player2)
		dto.Player2 = &p2
	}
	if v.Game != nil {
		g := NewGameDTO(*v.Game)
		dto.Game = &g
	}
	return dto
}

func newRoomPlayerDTO(p model.RoomPlayerView) RoomPlayerDTO {
	return RoomPlayerDTO{ID: string(p.User.ID), Name: p.User.Name, HasPositions: p.HasPositions}
}

// NewGameDTO converts a game view
func NewGameDTO(v model.GameView) GameDTO {
	dto := GameDTO{
		Player1:        newGamePlayerDTO(v.Player1),
		Player2:        newGamePlayerDTO(v.Player2),
		MovingPlayerID: string(v.MovingPlayerID),
	}
	if v.Winner != nil {
		w := NewUserDTO(*v.Winner)
		dto.Winner = &w
	}
	return dto
}

func newGamePlayerDTO(p model.GamePlayerView) GamePlayerDTO {
	return GamePlayerDTO{ID: string(p.User.ID), Name: p.User.Name, Attacks: p.Attacks}
}

// EncodeEvent renders a domain event as an outbound frame
func EncodeEvent(e model.Event) ([]byte, error) {
	msgType, ok := eventTypes[e.Type]
	if !ok {
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}

	roomID := string(e.RoomID)
	var payload any
	switch p := e.Payload.(type) {
	case model.RoomCreatePayload:
		payload = NewRoomDTO(p.Room)
	case model.RoomJoinPayload:
		payload = RoomJoinDTO{RoomID: roomID, User: NewUserDTO(p.User)}
	case model.RoomLeavePayload:
		payload = RoomUserDTO{RoomID: roomID, UserID: string(p.UserID)}
	case model.RoomDeletePayload:
		payload = RoomDeleteDTO{RoomID: roomID}
	case model.RoomPositionsSetPayload:
		payload = RoomUserDTO{RoomID: roomID, UserID: string(p.UserID)}
	case model.GameStartPayload:
		payload = GameStartDTO{RoomID: roomID, Game: NewGameDTO(p.Game)}
	case model.GameShotPayload:
		payload = GameShotDTO{RoomID: roomID, UserID: string(p.UserID), Position: NewPosition(p.Position)}
	case model.GameDestroyPayload:
		ship := make([]Position, len(p.Ship))
		for i, c := range p.Ship {
			ship[i] = NewPosition(c)
		}
		payload = GameDestroyDTO{RoomID: roomID, UserID: string(p.UserID), Ship: ship}
	case model.GameEndPayload:
		payload = GameEndDTO{RoomID: roomID, Winner: NewUserDTO(p.Winner)}
	default:
		return nil, fmt.Errorf("unexpected payload %T for event %q", e.Payload, e.Type)
	}

	return encode(msgType, payload)
}

// EncodeExistingRooms renders the lobby room list
func EncodeExistingRooms(rooms []model.RoomView) ([]byte, error) {
	dtos := make([]RoomDTO, len(rooms))
	for i, r := range rooms {
		dtos[i] = NewRoomDTO(r)
	}
	return encode(TypeExistingRooms, dtos)
}

// EncodeExistingPositions renders a user's submitted layouts keyed by room id
func EncodeExistingPositions(positions map[model.RoomID]model.Matrix[model.PositionCell]) ([]byte, error) {
	out := make(map[string]model.Matrix[model.PositionCell], len(positions))
	for id, m := range positions {
		out[string(id)] = m
	}
	return encode(TypeExistingPositions, out)
}

// EncodeError renders an error message for a single connection
func EncodeError(text string) []byte {
	data, _ := encode(TypeError, ErrorDTO{Text: text})
	return data
}

func encode(msgType MessageType, payload any) ([]byte, error) {
	return json.Marshal(outFrame{Type: msgType, Payload: payload})
}
