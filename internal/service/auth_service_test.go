package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fon-raspored/raspored-api/internal/models"
	appErrors "github.com/fon-raspored/raspored-api/pkg/errors"
)

func TestAuthServiceIssueAndValidate(t *testing.T) {
	svc := NewAuthService(AuthConfig{Secret: "secret", Expiration: time.Hour})

	token, expiresAt, err := svc.IssueToken(&models.User{ID: "user-1", Username: "ana", Email: "ana@fon.bg.ac.rs", Role: models.RoleStudent})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestAuthServiceRejectsWrongSecretAndExpired(t *testing.T) {
	issuer := NewAuthService(AuthConfig{Secret: "other", Expiration: time.Hour})
	token, _, err := issuer.IssueToken(&models.User{ID: "user-1", Role: models.RoleAdmin})
	require.NoError(t, err)

	svc := NewAuthService(AuthConfig{Secret: "secret"})
	_, err = svc.ValidateToken(token)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))

	same := NewAuthService(AuthConfig{Secret: "other", Expiration: time.Hour})
	same.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = same.ValidateToken(token)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}

func TestAuthServiceRejectsUnknownRoleAndAlgorithm(t *testing.T) {
	svc := NewAuthService(AuthConfig{Secret: "secret"})

	token, _, err := svc.IssueToken(&models.User{ID: "user-1", Role: "TEACHER"})
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &models.JWTClaims{UserID: "user-1", Role: models.RoleAdmin})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(unsigned)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))

	_, err = svc.ValidateToken("")
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}
