package entity

import (
	"time"

	"github.com/google/uuid"
)

type LearnerStateEntry struct {
	UserId    uuid.UUID
	Key       string
	Value     string
	UpdatedAt time.Time
}
