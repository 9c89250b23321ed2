package utils

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/checkmarble/caseview-backend/models"
)

const ExternalUserHeader = "X-External-User"

type validator interface {
	Validate(ctx context.Context, token string) (models.Credentials, error)
}

type Authentication struct {
	Validator validator
}

// Middleware validates the bearer token and stores the caller credentials in the request
// context. The optional external user header is attached to the credentials as is.
func (a *Authentication) Middleware(c *gin.Context) {
	ctx := c.Request.Context()
	jwtToken, err := ParseAuthorizationBearerHeader(c.Request.Header)
	if err != nil {
		_ = c.Error(fmt.Errorf("could not parse authorization header: %w", err))
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if jwtToken == "" {
		_ = c.Error(errors.Wrap(models.UnAuthorizedError, "missing bearer token"))
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	credentials, err := a.Validator.Validate(ctx, jwtToken)
	if err != nil {
		if !errors.Is(err, models.UnAuthorizedError) {
			LogAndReportSentryError(ctx, err)
		}
		_ = c.Error(fmt.Errorf("validator.Validate error: %w", err))
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	credentials.ExternalUser = strings.TrimSpace(c.GetHeader(ExternalUserHeader))

	newContext := StoreCredentialsInContext(ctx, credentials)
	logger := LoggerFromContext(newContext).With(slog.String("user_id", string(credentials.ActorIdentity.UserId)))
	if credentials.ExternalUser != "" {
		logger = logger.With(slog.String("external_user", credentials.ExternalUser))
	}
	c.Request = c.Request.WithContext(StoreLoggerInContext(newContext, logger))
	c.Next()
}

func NewAuthentication(validator validator) Authentication {
	return Authentication{
		Validator: validator,
	}
}

func ParseAuthorizationBearerHeader(header http.Header) (string, error) {
	authorization := header.Get("Authorization")
	if authorization == "" {
		return "", nil
	}

	authHeader := strings.Split(authorization, "Bearer ")
	if len(authHeader) != 2 {
		return "", fmt.Errorf("malformed token: %w", models.UnAuthorizedError)
	}
	return authHeader[1], nil
}
