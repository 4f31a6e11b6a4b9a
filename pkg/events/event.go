package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all learner events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ROADMAP_ADOPTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeUserRegistered      = "USER_REGISTERED"
	TypeUserSignedOut       = "USER_SIGNED_OUT"
	TypeRoadmapAdopted      = "ROADMAP_ADOPTED"
	TypeTaskToggled         = "TASK_TOGGLED"
	TypeStreakContinued     = "STREAK_CONTINUED"
	TypeNotificationCreated = "NOTIFICATION_CREATED"
	TypeResumeAnalyzed      = "RESUME_ANALYZED"
)

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// ForUser builds an event owned by userID. The owner is stored in the
// payload under "user_id" so consumers can route it.
func ForUser(eventType string, userID uuid.UUID, data map[string]interface{}, at time.Time) BaseEvent {
	payload := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		payload[k] = v
	}
	payload["user_id"] = userID.String()
	return BaseEvent{Type: eventType, Data: payload, OccurredAt: at}
}

// UserID extracts the owner set by ForUser.
func UserID(e Event) (uuid.UUID, bool) {
	raw, ok := e.Payload()["user_id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

type envelope struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}

// Marshal encodes an event for a message bus.
func Marshal(e Event) ([]byte, error) {
	return json.Marshal(envelope{
		Type:       e.EventType(),
		OccurredAt: e.Timestamp(),
		Data:       e.Payload(),
	})
}

// Unmarshal is the inverse of Marshal.
func Unmarshal(data []byte) (BaseEvent, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return BaseEvent{}, fmt.Errorf("decode event: %w", err)
	}
	if env.Type == "" {
		return BaseEvent{}, fmt.Errorf("decode event: missing type")
	}
	if env.Data == nil {
		env.Data = map[string]interface{}{}
	}
	return BaseEvent{Type: env.Type, Data: env.Data, OccurredAt: env.OccurredAt}, nil
}
