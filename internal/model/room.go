package model

// RoomID uniquely identifies a room
type RoomID string

// RoomState represents where a room is in its lifecycle
type RoomState string

const (
	RoomStateAwaitingPlayer2 RoomState = "awaiting_player2" // Only the creator is seated
	RoomStatePositioning     RoomState = "positioning"      // Both seated, placing ships
	RoomStatePlaying         RoomState = "playing"          // Game instantiated
	RoomStateDeleted         RoomState = "deleted"          // Creator left, never reused
)

// RoomPlayerView is a seated player as seen by every client
type RoomPlayerView struct {
	User         User
	HasPositions bool
}

// GamePlayerView is one side of a game as seen by every client
type GamePlayerView struct {
	User    User
	Attacks Matrix[AttackCell]
}

// GameView is the public state of a game
type GameView struct {
	Player1        GamePlayerView
	Player2        GamePlayerView
	MovingPlayerID UserID
	Winner         *User // nil while the game is in progress
}

// RoomView is the public state of a room
type RoomView struct {
	ID          RoomID
	Name        string
	HasPassword bool
	State       RoomState
	Player1     RoomPlayerView
	Player2     *RoomPlayerView // nil until someone joins
	Game        *GameView       // nil until the game starts
}

// Lobby is a consistent snapshot of every room plus the viewer's own placements
type Lobby struct {
	Rooms     []RoomView
	Positions map[RoomID]Matrix[PositionCell]
}
