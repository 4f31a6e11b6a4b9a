package kvstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps learner state in process memory. State is lost on
// restart; use it for development and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	cache *cache.Cache
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func memoryKey(owner uuid.UUID, key Key) string {
	return owner.String() + ":" + string(key)
}

func (s *MemoryStore) Get(_ context.Context, owner uuid.UUID, key Key) (string, bool, error) {
	if err := checkOwner(owner); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if x, found := s.cache.Get(memoryKey(owner, key)); found {
		return x.(string), true, nil
	}
	return "", false, nil
}

func (s *MemoryStore) GetMany(_ context.Context, owner uuid.UUID, keys ...Key) (map[Key]string, error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[Key]string, len(keys))
	for _, k := range keys {
		if x, found := s.cache.Get(memoryKey(owner, k)); found {
			out[k] = x.(string)
		}
	}
	return out, nil
}

func (s *MemoryStore) Apply(_ context.Context, owner uuid.UUID, batch *Batch) error {
	if err := checkOwner(owner); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, op := range batch.Ops() {
		if op.Delete {
			s.cache.Delete(memoryKey(owner, op.Key))
			continue
		}
		s.cache.Set(memoryKey(owner, op.Key), op.Value, cache.NoExpiration)
	}
	return nil
}
