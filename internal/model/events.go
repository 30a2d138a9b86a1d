package model

// EventType identifies the type of event
type EventType string

const (
	// Room events
	EventRoomCreate       EventType = "room_create"
	EventRoomJoin         EventType = "room_join"
	EventRoomLeave        EventType = "room_leave"
	EventRoomDelete       EventType = "room_delete"
	EventRoomPositionsSet EventType = "room_positions_set"

	// Game events
	EventGameStart   EventType = "game_start"
	EventGameHit     EventType = "game_hit"
	EventGameMiss    EventType = "game_miss"
	EventGameDestroy EventType = "game_destroy"
	EventGameEnd     EventType = "game_end"
)

// Event is the base structure for all domain events
type Event struct {
	Type    EventType
	RoomID  RoomID // Attached by the registry when relaying
	Payload any    // Type-specific data
}

// Emitter receives events synchronously from the component that raised them
type Emitter func(Event)

// RoomCreatePayload contains data for room create events
type RoomCreatePayload struct {
	Room RoomView
}

// RoomJoinPayload contains data for room join events
type RoomJoinPayload struct {
	User User
}

// RoomLeavePayload contains data for room leave events
type RoomLeavePayload struct {
	UserID UserID
}

// RoomDeletePayload contains data for room delete events
type RoomDeletePayload struct{}

// RoomPositionsSetPayload contains data for positions set events
type RoomPositionsSetPayload struct {
	UserID UserID
}

// GameStartPayload contains data for game start events
type GameStartPayload struct {
	Game GameView
}

// GameShotPayload contains data for hit and miss events
type GameShotPayload struct {
	UserID   UserID // The attacker
	Position Index
}

// GameDestroyPayload contains data for destroy events
type GameDestroyPayload struct {
	UserID UserID // The attacker
	Ship   Ship
}

// GameEndPayload contains data for game end events
type GameEndPayload struct {
	Winner User
}
