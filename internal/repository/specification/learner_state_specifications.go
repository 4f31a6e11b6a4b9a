package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByStateKeys narrows learner state rows to the given keys.
type ByStateKeys struct {
	Keys []string
}

func (s ByStateKeys) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("key IN ?", s.Keys)
}
