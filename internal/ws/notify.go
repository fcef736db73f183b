package ws

import (
	"encoding/json"
	"time"
)

// Event is the envelope of every message pushed to clients.
type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

func encodeEvent(event string, payload any) ([]byte, error) {
	return json.Marshal(Event{
		Type:      event,
		Data:      payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
