package service

import (
	"context"
	"sync"
	"time"

	"edumate-be/internal/entity"
	"edumate-be/internal/pkg/logger"
	"edumate-be/internal/repository/contract"
	"edumate-be/internal/repository/specification"
	"edumate-be/internal/repository/unitofwork"
	"edumate-be/pkg/clock"
	"edumate-be/pkg/events"
	"edumate-be/pkg/kvstore"
	"edumate-be/pkg/learner"
	"edumate-be/pkg/llm"

	"github.com/google/uuid"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// fakeUserRepo understands the ByEmail and ByID specifications only.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return contract.ErrDuplicateEmail
		}
	}
	cp := *u
	r.users[u.Id] = &cp
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if matches(u, specs) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateLastSignIn(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.LastSignInAt = &at
	}
	return nil
}

func matches(u *entity.User, specs []specification.Specification) bool {
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByEmail:
			if u.Email != specification.NormalizeEmail(spec.Email) {
				return false
			}
		case specification.ByID:
			if u.Id != spec.ID {
				return false
			}
		}
	}
	return true
}

type fakeUoW struct {
	users *fakeUserRepo
}

func (f *fakeUoW) Begin(context.Context) error                              { return nil }
func (f *fakeUoW) Commit() error                                            { return nil }
func (f *fakeUoW) Rollback() error                                          { return nil }
func (f *fakeUoW) UserRepository() contract.UserRepository                  { return f.users }
func (f *fakeUoW) LearnerStateRepository() contract.LearnerStateRepository { return nil }

type fakeFactory struct {
	users *fakeUserRepo
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &fakeUoW{users: f.users}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

type fakeProvider struct {
	mu      sync.Mutex
	reply   string
	err     error
	history [][]llm.Message
}

func (p *fakeProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history = append(p.history, append([]llm.Message(nil), history...))
	return p.reply, p.err
}

func (p *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (p *fakeProvider) last() []llm.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.history[len(p.history)-1]
}

func newTestEngine(pub learner.Publisher) *learner.Engine {
	return learner.NewEngine(kvstore.NewMemoryStore(), clock.Fixed{At: testNow}, nil, pub, logger.NewNopLogger(), learner.Options{})
}
