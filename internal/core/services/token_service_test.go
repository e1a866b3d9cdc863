package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
	"github.com/comitanigiacomo/mishabitos-api/internal/core/services"
)

func TestTokenService_GenerateAndValidate(t *testing.T) {
	secret := "super-secret-key-for-testing"
	issuer := "mishabitos-test"
	userID := "user-123"

	t.Run("Success: round trip", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewTokenService(secret, issuer, time.Hour, repo)

		repo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)

		token, err := svc.GenerateToken(userID)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		got, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("Fail: expired token", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewTokenService(secret, issuer, -time.Minute, repo)

		token, err := svc.GenerateToken(userID)
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Fail: wrong secret", func(t *testing.T) {
		repo := new(MockUserRepo)
		other := services.NewTokenService("another-secret", issuer, time.Hour, repo)
		svc := services.NewTokenService(secret, issuer, time.Hour, repo)

		token, err := other.GenerateToken(userID)
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("Fail: wrong issuer", func(t *testing.T) {
		repo := new(MockUserRepo)
		other := services.NewTokenService(secret, "someone-else", time.Hour, repo)
		svc := services.NewTokenService(secret, issuer, time.Hour, repo)

		token, err := other.GenerateToken(userID)
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("Fail: none algorithm is rejected", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewTokenService(secret, issuer, time.Hour, repo)

		claims := jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("Fail: deleted user", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewTokenService(secret, issuer, time.Hour, repo)

		repo.On("GetByID", mock.Anything, userID).Return(nil, domain.ErrUserNotFound)

		token, err := svc.GenerateToken(userID)
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})
}
