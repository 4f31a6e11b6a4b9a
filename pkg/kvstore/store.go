// Package kvstore is the per-learner persisted key-value store. Every value
// is an opaque string; callers decide the encoding (JSON for structures,
// raw text for dates, track names and flags).
package kvstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type Key string

const (
	KeyLastVisitDate        Key = "lastVisitDate"
	KeyStreakData           Key = "streakData"
	KeyIsOnboarded          Key = "isOnboarded"
	KeyUserTasks            Key = "userTasks"
	KeyDailyTasks           Key = "dailyTasks"
	KeyDailyTasksDate       Key = "dailyTasksDate"
	KeyDailyTasksSourceHash Key = "dailyTasksSourceHash"
	KeyRoadmapData          Key = "roadmapData"
	KeySelectedTrack        Key = "selectedTrack"
	KeyActiveTab            Key = "activeTab"
	KeyNotifications        Key = "notifications"
)

// AllKeys lists every key the learner state uses, in a stable order.
var AllKeys = []Key{
	KeyLastVisitDate,
	KeyStreakData,
	KeyIsOnboarded,
	KeyUserTasks,
	KeyDailyTasks,
	KeyDailyTasksDate,
	KeyDailyTasksSourceHash,
	KeyRoadmapData,
	KeySelectedTrack,
	KeyActiveTab,
	KeyNotifications,
}

var ErrNilOwner = errors.New("kvstore: owner id is empty")

// Op is a single write inside a Batch.
type Op struct {
	Key    Key
	Value  string
	Delete bool
}

// Batch is an ordered list of writes applied atomically by Store.Apply.
type Batch struct {
	ops []Op
}

func NewBatch() *Batch {
	return &Batch{}
}

func (b *Batch) Set(key Key, value string) *Batch {
	b.ops = append(b.ops, Op{Key: key, Value: value})
	return b
}

func (b *Batch) Delete(keys ...Key) *Batch {
	for _, k := range keys {
		b.ops = append(b.ops, Op{Key: k, Delete: true})
	}
	return b
}

func (b *Batch) Ops() []Op {
	if b == nil {
		return nil
	}
	return b.ops
}

func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.ops)
}

// Store persists learner state per owner.
//
// Get reports found=false for a missing key. GetMany omits missing keys from
// the result. Apply writes the whole batch or nothing.
type Store interface {
	Get(ctx context.Context, owner uuid.UUID, key Key) (value string, found bool, err error)
	GetMany(ctx context.Context, owner uuid.UUID, keys ...Key) (map[Key]string, error)
	Apply(ctx context.Context, owner uuid.UUID, batch *Batch) error
}

func checkOwner(owner uuid.UUID) error {
	if owner == uuid.Nil {
		return ErrNilOwner
	}
	return nil
}
