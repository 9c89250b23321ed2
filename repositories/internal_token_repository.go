package repositories

import (
	"context"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/checkmarble/caseview-backend/infra"
	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/repositories/httpmodels"
	"github.com/checkmarble/caseview-backend/utils"
)

const (
	internalTokenCacheKey = "internal_token"
	defaultTokenTTL       = 5 * time.Minute
	// tokens are dropped from the cache this long before they expire
	tokenExpiryMargin = 30 * time.Second
)

// InternalTokenRepository fetches the service-to-service token used for calls made on behalf
// of the application itself, as opposed to on behalf of a user.
type InternalTokenRepository struct {
	client *http.Client
	config infra.InternalTokenConfig
	cache  *expirable.LRU[string, string]
}

func NewInternalTokenRepository(client *http.Client, config infra.InternalTokenConfig) InternalTokenRepository {
	ttl := config.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return InternalTokenRepository{
		client: client,
		config: config,
		cache:  expirable.NewLRU[string, string](1, nil, ttl),
	}
}

// GetInternalToken returns an empty token and no error when no token service is configured.
func (repo InternalTokenRepository) GetInternalToken(ctx context.Context) (string, error) {
	if repo.config.Url == "" {
		return "", nil
	}
	if token, ok := repo.cache.Get(internalTokenCacheKey); ok {
		return token, nil
	}

	var token httpmodels.HTTPInternalTokenResponse
	err := retry.Do(
		func() error {
			req, err := newJSONRequest(ctx, http.MethodPost, repo.config.Url,
				httpmodels.HTTPInternalTokenRequest{
					ClientId:     repo.config.ClientId,
					ClientSecret: repo.config.ClientSecret,
				})
			if err != nil {
				return retry.Unrecoverable(err)
			}
			return doJSON(ctx, repo.client, "internal_token", models.ErrAuthUnavailable, req, &token)
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.LastErrorOnly(true),
		retry.Delay(100*time.Millisecond),
		retry.OnRetry(func(n uint, err error) {
			utils.LoggerFromContext(ctx).DebugContext(ctx, "retrying internal token fetch",
				"attempt", n+1, "error", err.Error())
		}),
	)
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "could not fetch internal token"), models.ErrAuthUnavailable)
	}
	if token.AccessToken == "" {
		return "", errors.Wrap(models.ErrAuthUnavailable, "token service returned an empty token")
	}

	// only cache tokens that outlive the default cache ttl
	if token.ExpiresIn == 0 || time.Duration(token.ExpiresIn)*time.Second-tokenExpiryMargin >= repo.cacheTTL() {
		repo.cache.Add(internalTokenCacheKey, token.AccessToken)
	}
	return token.AccessToken, nil
}

func (repo InternalTokenRepository) cacheTTL() time.Duration {
	if repo.config.TokenTTL <= 0 {
		return defaultTokenTTL
	}
	return repo.config.TokenTTL
}
