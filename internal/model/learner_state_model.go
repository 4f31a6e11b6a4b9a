package model

import (
	"time"

	"github.com/google/uuid"
)

// LearnerStateEntry is one key of a learner's persisted state.
type LearnerStateEntry struct {
	UserId    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key       string    `gorm:"type:varchar(64);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (LearnerStateEntry) TableName() string {
	return "learner_state"
}
