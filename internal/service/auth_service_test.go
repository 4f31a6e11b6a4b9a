package service

import (
	"context"
	"testing"
	"time"

	"edumate-be/internal/dto"
	"edumate-be/internal/entity"
	"edumate-be/internal/pkg/logger"
	"edumate-be/pkg/clock"
	"edumate-be/pkg/events"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuth(t *testing.T) (IAuthService, *fakeUserRepo, *recordingPublisher) {
	t.Helper()
	repo := newFakeUserRepo()
	pub := &recordingPublisher{}
	svc := NewAuthService(&fakeFactory{users: repo}, pub, testSecret, time.Hour, clock.Fixed{At: time.Now()}, logger.NewNopLogger())
	return svc, repo, pub
}

func TestAuthService_SignUpAndSignIn(t *testing.T) {
	svc, repo, pub := newAuth(t)
	ctx := context.Background()

	var states []AuthState
	unsubscribe := svc.Subscribe(func(_ context.Context, s AuthState) { states = append(states, s) })
	defer unsubscribe()

	res, err := svc.SignUp(ctx, &dto.SignUpRequest{Email: " Ada@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.Equal(t, int64(3600), res.ExpiresIn)

	stored, _ := repo.FindOne(ctx)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.PasswordHash)

	token, err := jwt.Parse(res.AccessToken, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, res.User.Id.String(), claims["user_id"])
	assert.Equal(t, "ada@example.com", claims["email"])

	_, err = svc.SignUp(ctx, &dto.SignUpRequest{Email: "ada@example.com", Password: "another"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.SignIn(ctx, &dto.SignInRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, &dto.SignInRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	again, err := svc.SignIn(ctx, &dto.SignInRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, res.User.Id, again.User.Id)

	require.Len(t, states, 2)
	assert.True(t, states[1].SignedIn)
	assert.Equal(t, []string{events.TypeUserRegistered}, pub.types())
}

func TestAuthService_BlockedUser(t *testing.T) {
	svc, repo, _ := newAuth(t)
	ctx := context.Background()

	res, err := svc.SignUp(ctx, &dto.SignUpRequest{Email: "bob@example.com", Password: "secret1"})
	require.NoError(t, err)

	u, _ := repo.FindOne(ctx)
	u.Status = entity.UserStatusBlocked
	require.NoError(t, repo.Update(ctx, u))

	_, err = svc.SignIn(ctx, &dto.SignInRequest{Email: "bob@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrAccountBlocked)

	me, err := svc.Me(ctx, res.User.Id)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", me.Email)
}

func TestAuthService_SignOutNotifiesListeners(t *testing.T) {
	svc, _, pub := newAuth(t)
	id := uuid.New()

	var got []AuthState
	unsubscribe := svc.Subscribe(func(_ context.Context, s AuthState) { got = append(got, s) })

	require.NoError(t, svc.SignOut(context.Background(), id, "x@example.com"))
	require.Len(t, got, 1)
	assert.False(t, got[0].SignedIn)
	assert.Equal(t, id, got[0].UserID)
	assert.Contains(t, pub.types(), events.TypeUserSignedOut)

	unsubscribe()
	require.NoError(t, svc.SignOut(context.Background(), id, "x@example.com"))
	assert.Len(t, got, 1)
}

func TestAuthService_MeUnknownUser(t *testing.T) {
	svc, _, _ := newAuth(t)
	_, err := svc.Me(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
