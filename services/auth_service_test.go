package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsfest/sportsday-live/utils"
)

const testSecret = "test-secret-key"

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)
	return NewAuthService("admin@sportsday.local", hash, testSecret)
}

func TestLoginIssuesAdminToken(t *testing.T) {
	svc := newTestAuthService(t)

	token, err := svc.Login(context.Background(), LoginInput{
		Email:    "admin@sportsday.local",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	actor, err := svc.ActorFromToken(token)
	require.NoError(t, err)
	assert.True(t, actor.CanEdit)
	assert.Equal(t, "admin@sportsday.local", actor.Name)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginInput{Email: "admin@sportsday.local", Password: "wrong"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Email: "someone@else.local", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}

func TestActorFromTokenRejectsInvalidTokens(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.ActorFromToken("not-a-token")
	assert.ErrorIs(t, err, ErrForbiddenOperation)

	// Токен, подписанный другим секретом.
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin@sportsday.local",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := foreign.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = svc.ActorFromToken(signed)
	assert.ErrorIs(t, err, ErrForbiddenOperation)

	// Просроченный токен.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin@sportsday.local",
		"role": "admin",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	signed, err = expired.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.ActorFromToken(signed)
	assert.ErrorIs(t, err, ErrForbiddenOperation)
}

// Токен без роли admin валиден, но способности к редактированию не даёт.
func TestActorWithoutAdminRoleCannotEdit(t *testing.T) {
	svc := newTestAuthService(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "guest@sportsday.local",
		"role": "viewer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	actor, err := svc.ActorFromToken(signed)
	require.NoError(t, err)
	assert.False(t, actor.CanEdit)
}
