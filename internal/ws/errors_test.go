package ws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/services/fleet"
)

func TestErrorText(t *testing.T) {
	tests := []struct {
		err   error
		text  string
		known bool
	}{
		{ErrUnsupportedPayload, "Not supported message payload", true},
		{fmt.Errorf("%w: eof", ErrMalformedMessage), "Unable to parse message", true},
		{ErrUnknownType, "Not supported message type", true},
		{fmt.Errorf("%w: bad", ErrInvalidPayload), "Message data is wrong", true},
		{model.ErrRoomNotFound, "Room not found", true},
		{model.ErrWrongRoomPassword, "Wrong room password", true},
		{model.ErrUserAlreadyInRoom, "User already in room", true},
		{model.ErrRoomIsBusy, "Can't join, room is full", true},
		{model.ErrUserAlreadyInOtherRoom, "User already in other room", true},
		{model.ErrGameNotStartedYet, "Game not started yet", true},
		{fleet.ErrShipsTouching, "Invalid ships positions", true},
		{errors.New("boom"), "Internal server error", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			text, known := ErrorText(tt.err)
			assert.Equal(t, tt.text, text)
			assert.Equal(t, tt.known, known)
		})
	}
}
