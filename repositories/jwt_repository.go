package repositories

import (
	"context"
	"crypto/rsa"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/utils"
)

// Claims are issued by the identity provider. The subject is the caller's user id.
type Claims struct {
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

var ValidationAlgo = jwt.SigningMethodRS256

type JwtRepository struct {
	verificationKey *rsa.PublicKey
}

func NewJwtRepository(key *rsa.PublicKey) *JwtRepository {
	return &JwtRepository{verificationKey: key}
}

func (repo *JwtRepository) Validate(ctx context.Context, token string) (models.Credentials, error) {
	keyFunc := func(token *jwt.Token) (any, error) {
		method, ok := token.Method.(*jwt.SigningMethodRSA)
		if !ok || method != ValidationAlgo {
			return nil, errors.Wrapf(models.UnAuthorizedError,
				"unexpected signing method: %v", token.Header["alg"])
		}
		return repo.verificationKey, nil
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, keyFunc,
		jwt.WithValidMethods([]string{ValidationAlgo.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return models.Credentials{}, errors.Join(
			models.UnAuthorizedError,
			errors.Wrap(err, "Error parsing jwt token claims"),
		)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return models.Credentials{}, errors.Wrap(models.UnAuthorizedError, "invalid jwt token")
	}

	permissions := make([]models.Permission, 0, len(claims.Permissions))
	for _, p := range claims.Permissions {
		permission, known := models.PermissionFromString(p)
		if !known {
			utils.LoggerFromContext(ctx).DebugContext(ctx, "ignoring unknown permission", "permission", p)
			continue
		}
		permissions = append(permissions, permission)
	}

	return models.Credentials{
		ActorIdentity: models.Identity{
			UserId: models.UserId(claims.Subject),
			Email:  claims.Email,
		},
		Permissions: permissions,
	}, nil
}
