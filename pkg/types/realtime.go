package types

import "encoding/json"

// Events pushed to realtime observers.
const (
	EventMessage       string = "message"
	EventAlert         string = "alert"
	EventRFIDError     string = "rfidError"
	EventCommandStatus string = "commandStatus"
	EventJoinedRoom    string = "joinedRoom"
	EventLeftRoom      string = "leftRoom"
	EventError         string = "error"
)

// Requests sent by realtime observers.
const (
	EventJoinRoom  string = "joinRoom"
	EventLeaveRoom string = "leaveRoom"
)

// RealtimeEvent is the envelope of every message exchanged over the realtime connection.
type RealtimeEvent struct {
	Event string          `json:"event"`
	Room  string          `json:"room,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func NewRealtimeEvent(event, room string, data any) (RealtimeEvent, error) {
	e := RealtimeEvent{Event: event, Room: room}

	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return RealtimeEvent{}, err
		}
		e.Data = b
	}

	return e, nil
}

type RealtimeError struct {
	Reason string `json:"reason"`
}
