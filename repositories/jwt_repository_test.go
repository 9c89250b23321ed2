package repositories

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkmarble/caseview-backend/models"
)

func signedToken(t *testing.T, key *rsa.PrivateKey, method jwt.SigningMethod, claims Claims) string {
	t.Helper()
	var signingKey any = key
	if method == jwt.SigningMethodHS256 {
		signingKey = []byte("secret")
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString(signingKey)
	require.NoError(t, err)
	return token
}

func TestJwtRepository_Validate(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	repo := NewJwtRepository(&key.PublicKey)
	ctx := context.Background()

	valid := Claims{
		Email:       "alice@example.com",
		Permissions: []string{"CASEVIEW_READ", "ADD_COMMENT", "NOT_A_PERMISSION"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	t.Run("valid token", func(t *testing.T) {
		creds, err := repo.Validate(ctx, signedToken(t, key, jwt.SigningMethodRS256, valid))

		require.NoError(t, err)
		assert.Equal(t, models.UserId("alice"), creds.ActorIdentity.UserId)
		assert.Equal(t, "alice@example.com", creds.ActorIdentity.Email)
		assert.Equal(t, []models.Permission{models.CASEVIEW_READ, models.ADD_COMMENT}, creds.Permissions)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := valid
		expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

		_, err := repo.Validate(ctx, signedToken(t, key, jwt.SigningMethodRS256, expired))

		assert.ErrorIs(t, err, models.UnAuthorizedError)
	})

	t.Run("signed with another key", func(t *testing.T) {
		_, err := repo.Validate(ctx, signedToken(t, otherKey, jwt.SigningMethodRS256, valid))

		assert.ErrorIs(t, err, models.UnAuthorizedError)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		_, err := repo.Validate(ctx, signedToken(t, key, jwt.SigningMethodHS256, valid))

		assert.ErrorIs(t, err, models.UnAuthorizedError)
	})

	t.Run("missing subject", func(t *testing.T) {
		anonymous := valid
		anonymous.Subject = ""

		_, err := repo.Validate(ctx, signedToken(t, key, jwt.SigningMethodRS256, anonymous))

		assert.ErrorIs(t, err, models.UnAuthorizedError)
	})
}
