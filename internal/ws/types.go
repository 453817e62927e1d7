package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages exchanged over a
// game socket.
type MessageType string

const (
	MessageTypeSelect    MessageType = "select"
	MessageTypePromote   MessageType = "promote"
	MessageTypeUndo      MessageType = "undo"
	MessageTypeReset     MessageType = "reset"
	MessageTypeOpponent  MessageType = "opponent"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message is the envelope for every websocket frame.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type SelectPayload struct {
	Square string `json:"square"`
}

type PromotePayload struct {
	Piece string `json:"piece"`
}

type OpponentPayload struct {
	Enabled bool `json:"enabled"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage encodes v as the payload of a message of type t.
func NewMessage(t MessageType, v any) (Message, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: payload}, nil
}

// ErrorMessage builds an error frame. It cannot fail.
func ErrorMessage(err error) Message {
	payload, _ := json.Marshal(ErrorPayload{Error: err.Error()})
	return Message{Type: MessageTypeError, Payload: payload}
}

// Decode unmarshals the payload into v.
func (m Message) Decode(v any) error {
	if len(m.Payload) == 0 {
		return json.Unmarshal([]byte("{}"), v)
	}
	return json.Unmarshal(m.Payload, v)
}
