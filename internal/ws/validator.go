package ws

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/mcoot/battleship/internal/model"
)

const (
	idLength       = 36
	maxNameLength  = 32
	maxPasswordLen = 32
)

// Validator checks inbound payloads against a JSON schema per message type
type Validator struct {
	schemas map[MessageType]*jsonschema.Resolved
}

// NewValidator resolves the schemas of every inbound message type
func NewValidator() (*Validator, error) {
	raw := map[MessageType]*jsonschema.Schema{
		TypeCreateRoom: object(map[string]*jsonschema.Schema{
			"name":     str(1, maxNameLength),
			"password": str(0, maxPasswordLen),
		}),
		TypeJoinRoom: object(map[string]*jsonschema.Schema{
			"roomId":   roomID(),
			"password": str(0, maxPasswordLen),
		}),
		TypeLeaveRoom: object(map[string]*jsonschema.Schema{
			"roomId": roomID(),
		}),
		TypeStartGame: object(map[string]*jsonschema.Schema{
			"roomId": roomID(),
		}),
		TypeSetPositions: object(map[string]*jsonschema.Schema{
			"roomId":    roomID(),
			"positions": positions(),
		}),
		TypeMoveGame: object(map[string]*jsonschema.Schema{
			"roomId":   roomID(),
			"position": position(),
		}),
	}

	v := &Validator{schemas: make(map[MessageType]*jsonschema.Resolved, len(raw))}
	for msgType, schema := range raw {
		resolved, err := schema.Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s schema: %w", msgType, err)
		}
		v.schemas[msgType] = resolved
	}
	return v, nil
}

// Known returns true if msgType is an inbound message type
func (v *Validator) Known(msgType MessageType) bool {
	_, ok := v.schemas[msgType]
	return ok
}

// Validate checks payload against the schema of msgType
func (v *Validator) Validate(msgType MessageType, payload json.RawMessage) error {
	schema, ok := v.schemas[msgType]
	if !ok {
		return ErrUnknownType
	}

	var instance any
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &instance); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}
	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

func object(properties map[string]*jsonschema.Schema) *jsonschema.Schema {
	required := make([]string, 0, len(properties))
	for name := range properties {
		required = append(required, name)
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

func str(minLen, maxLen int) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:      "string",
		MinLength: ptr(minLen),
		MaxLength: ptr(maxLen),
	}
}

func roomID() *jsonschema.Schema {
	return str(idLength, idLength)
}

func positions() *jsonschema.Schema {
	row := &jsonschema.Schema{
		Type:     "array",
		MinItems: ptr(model.FieldSize),
		MaxItems: ptr(model.FieldSize),
		Items: &jsonschema.Schema{
			Type: "string",
			Enum: []any{string(model.PositionEmpty), string(model.PositionShip)},
		},
	}
	return &jsonschema.Schema{
		Type:     "array",
		MinItems: ptr(model.FieldSize),
		MaxItems: ptr(model.FieldSize),
		Items:    row,
	}
}

func position() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "array",
		MinItems: ptr(2),
		MaxItems: ptr(2),
		Items: &jsonschema.Schema{
			Type:    "integer",
			Minimum: ptr(0.0),
			Maximum: ptr(float64(model.FieldSize - 1)),
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}
