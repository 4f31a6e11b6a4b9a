package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Role      string
	Content   string
	CreatedAt time.Time
}

// ChatTranscript is the mentor conversation of one user. It lives in memory
// only and expires after a period of inactivity.
type ChatTranscript struct {
	UserId    uuid.UUID
	Messages  []ChatMessage
	UpdatedAt time.Time
}
