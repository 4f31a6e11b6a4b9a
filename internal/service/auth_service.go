package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"edumate-be/internal/dto"
	"edumate-be/internal/entity"
	"edumate-be/internal/pkg/logger"
	"edumate-be/internal/pkg/serverutils"
	"edumate-be/internal/repository/contract"
	"edumate-be/internal/repository/specification"
	"edumate-be/internal/repository/unitofwork"
	"edumate-be/pkg/clock"
	"edumate-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountBlocked     = errors.New("user account is blocked")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthState is what auth listeners receive. SignedIn is false after a
// sign-out.
type AuthState struct {
	UserID   uuid.UUID
	Email    string
	SignedIn bool
}

type AuthListener func(ctx context.Context, state AuthState)

type IAuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error)
	SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.AuthResponse, error)
	SignOut(ctx context.Context, userID uuid.UUID, email string) error
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserDTO, error)
	// Subscribe registers a listener for sign-in and sign-out. The returned
	// function removes it.
	Subscribe(listener AuthListener) func()
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher EventPublisher
	jwtSecret      string
	tokenTTL       time.Duration
	clock          clock.Clock
	logger         logger.ILogger

	mu        sync.RWMutex
	nextID    int
	listeners map[int]AuthListener
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher EventPublisher,
	jwtSecret string,
	tokenTTL time.Duration,
	clk clock.Clock,
	log logger.ILogger,
) IAuthService {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &authService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		jwtSecret:      jwtSecret,
		tokenTTL:       tokenTTL,
		clock:          clk,
		logger:         log,
		listeners:      make(map[int]AuthListener),
	}
}

func (s *authService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	email := specification.NormalizeEmail(req.Email)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: string(hash),
		Status:       entity.UserStatusActive,
		LastSignInAt: &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		if errors.Is(err, contract.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info("AuthService", "User registered", map[string]interface{}{"user_id": user.Id.String()})
	s.publish(ctx, events.ForUser(events.TypeUserRegistered, user.Id, map[string]interface{}{
		"email": user.Email,
	}, now))

	return s.session(ctx, user)
}

func (s *authService) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Status == entity.UserStatusBlocked {
		return nil, ErrAccountBlocked
	}

	if err := uow.UserRepository().UpdateLastSignIn(ctx, user.Id, s.clock.Now()); err != nil {
		s.logger.Warn("AuthService", "Failed to update last sign-in", map[string]interface{}{
			"user_id": user.Id.String(),
			"error":   err,
		})
	}

	return s.session(ctx, user)
}

// SignOut only notifies listeners; access tokens are stateless and expire
// on their own.
func (s *authService) SignOut(ctx context.Context, userID uuid.UUID, email string) error {
	s.notify(ctx, AuthState{UserID: userID, Email: email})
	s.publish(ctx, events.ForUser(events.TypeUserSignedOut, userID, nil, s.clock.Now()))
	return nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserDTO, error) {
	user, err := s.uowFactory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByID{ID: userID})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &dto.UserDTO{Id: user.Id, Email: user.Email, FullName: user.FullName}, nil
}

func (s *authService) Subscribe(listener AuthListener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *authService) session(ctx context.Context, user *entity.User) (*dto.AuthResponse, error) {
	token, err := serverutils.IssueToken(s.jwtSecret, user.Id, user.Email, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.notify(ctx, AuthState{UserID: user.Id, Email: user.Email, SignedIn: true})

	return &dto.AuthResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		User: dto.UserDTO{
			Id:       user.Id,
			Email:    user.Email,
			FullName: user.FullName,
		},
	}, nil
}

func (s *authService) notify(ctx context.Context, state AuthState) {
	s.mu.RLock()
	listeners := make([]AuthListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()

	for _, l := range listeners {
		l(ctx, state)
	}
}

func (s *authService) publish(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("AuthService", "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err,
		})
	}
}
