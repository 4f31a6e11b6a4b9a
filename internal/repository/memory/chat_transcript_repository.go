package memory

import (
	"sync"
	"time"

	"edumate-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type ChatTranscriptRepository struct {
	cache *cache.Cache
	mu    sync.Mutex
	limit int
}

// NewChatTranscriptRepository keeps transcripts for ttl after their last
// message and trims each to the newest limit messages.
func NewChatTranscriptRepository(ttl time.Duration, limit int) *ChatTranscriptRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ChatTranscriptRepository{
		cache: cache.New(ttl, 10*time.Minute),
		limit: limit,
	}
}

func (r *ChatTranscriptRepository) Get(userID uuid.UUID) (*entity.ChatTranscript, bool) {
	if x, found := r.cache.Get(userID.String()); found {
		t := x.(*entity.ChatTranscript)
		cp := *t
		cp.Messages = append([]entity.ChatMessage(nil), t.Messages...)
		return &cp, true
	}
	return nil, false
}

// Append adds messages to the user's transcript, creating it if needed, and
// returns the stored copy.
func (r *ChatTranscriptRepository) Append(userID uuid.UUID, msgs ...entity.ChatMessage) *entity.ChatTranscript {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.Get(userID)
	if !ok {
		t = &entity.ChatTranscript{UserId: userID}
	}
	t.Messages = append(t.Messages, msgs...)
	if r.limit > 0 && len(t.Messages) > r.limit {
		t.Messages = t.Messages[len(t.Messages)-r.limit:]
	}
	if n := len(msgs); n > 0 {
		t.UpdatedAt = msgs[n-1].CreatedAt
	}

	r.cache.Set(userID.String(), t, cache.DefaultExpiration)

	cp := *t
	cp.Messages = append([]entity.ChatMessage(nil), t.Messages...)
	return &cp
}

func (r *ChatTranscriptRepository) Delete(userID uuid.UUID) {
	r.cache.Delete(userID.String())
}
