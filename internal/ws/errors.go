package ws

import (
	"errors"

	"github.com/mcoot/battleship/internal/model"
)

// Boundary errors, raised before a command reaches the registry
var (
	ErrUnsupportedPayload = errors.New("binary frames are not supported")
	ErrMalformedMessage   = errors.New("unable to parse message")
	ErrUnknownType        = errors.New("unknown message type")
	ErrInvalidPayload     = errors.New("message payload does not match schema")
)

// textInternal is sent for any error without a client-facing text
const textInternal = "Internal server error"

var errorTexts = []struct {
	err  error
	text string
}{
	{ErrUnsupportedPayload, "Not supported message payload"},
	{ErrMalformedMessage, "Unable to parse message"},
	{ErrUnknownType, "Not supported message type"},
	{ErrInvalidPayload, "Message data is wrong"},
	{model.ErrRoomNotFound, "Room not found"},
	{model.ErrWrongRoomPassword, "Wrong room password"},
	{model.ErrUserAlreadyInRoom, "User already in room"},
	{model.ErrRoomIsBusy, "Can't join, room is full"},
	{model.ErrUserAlreadyInOtherRoom, "User already in other room"},
	{model.ErrGameNotStartedYet, "Game not started yet"},
	{model.ErrInvalidField, "Invalid ships positions"},
}

// ErrorText returns the text shown to the client for err
// The second result is false when err is not a known rejection
func ErrorText(err error) (string, bool) {
	for _, e := range errorTexts {
		if errors.Is(err, e.err) {
			return e.text, true
		}
	}
	return textInternal, false
}
