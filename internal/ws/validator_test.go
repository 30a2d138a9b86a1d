package ws

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship/internal/testutil"
)

const testRoomID = "00000000-0000-4000-8000-000000000001"

func positionsJSON(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(testutil.ValidFleet())
	require.NoError(t, err)
	return string(data)
}

func TestValidator(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	positions := positionsJSON(t)
	badCell := strings.Replace(positions, `"ship"`, `"boat"`, 1)
	shortRow := strings.Replace(positions, `["empty","empty","empty","empty","empty","empty","empty","empty","empty","empty"]`, `["empty"]`, 1)

	tests := []struct {
		name    string
		msgType MessageType
		payload string
		valid   bool
	}{
		{"create room", TypeCreateRoom, `{"name":"R","password":""}`, true},
		{"create room empty name", TypeCreateRoom, `{"name":"","password":""}`, false},
		{"create room long name", TypeCreateRoom, `{"name":"` + strings.Repeat("x", 33) + `","password":""}`, false},
		{"create room long password", TypeCreateRoom, `{"name":"R","password":"` + strings.Repeat("x", 33) + `"}`, false},
		{"create room missing password", TypeCreateRoom, `{"name":"R"}`, false},
		{"create room wrong type", TypeCreateRoom, `{"name":5,"password":""}`, false},
		{"join room", TypeJoinRoom, `{"roomId":"` + testRoomID + `","password":"x"}`, true},
		{"join room short id", TypeJoinRoom, `{"roomId":"abc","password":""}`, false},
		{"leave room", TypeLeaveRoom, `{"roomId":"` + testRoomID + `"}`, true},
		{"leave room missing id", TypeLeaveRoom, `{}`, false},
		{"start game", TypeStartGame, `{"roomId":"` + testRoomID + `"}`, true},
		{"set positions", TypeSetPositions, `{"roomId":"` + testRoomID + `","positions":` + positions + `}`, true},
		{"set positions bad cell", TypeSetPositions, `{"roomId":"` + testRoomID + `","positions":` + badCell + `}`, false},
		{"set positions short row", TypeSetPositions, `{"roomId":"` + testRoomID + `","positions":` + shortRow + `}`, false},
		{"set positions no rows", TypeSetPositions, `{"roomId":"` + testRoomID + `","positions":[]}`, false},
		{"move", TypeMoveGame, `{"roomId":"` + testRoomID + `","position":[0,9]}`, true},
		{"move out of range", TypeMoveGame, `{"roomId":"` + testRoomID + `","position":[0,10]}`, false},
		{"move negative", TypeMoveGame, `{"roomId":"` + testRoomID + `","position":[-1,0]}`, false},
		{"move fractional", TypeMoveGame, `{"roomId":"` + testRoomID + `","position":[1.5,0]}`, false},
		{"move three coords", TypeMoveGame, `{"roomId":"` + testRoomID + `","position":[1,2,3]}`, false},
		{"missing payload", TypeStartGame, ``, false},
		{"array payload", TypeStartGame, `[]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.msgType, json.RawMessage(tt.payload))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidPayload)
			}
		})
	}
}

func TestValidatorUnknownType(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	assert.False(t, v.Known("Bogus"))
	assert.True(t, v.Known(TypeCreateRoom))
	assert.False(t, v.Known(TypeExistingRooms))
	assert.ErrorIs(t, v.Validate("Bogus", json.RawMessage(`{}`)), ErrUnknownType)
}
