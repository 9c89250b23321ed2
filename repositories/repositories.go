package repositories

import (
	"net/http"
	"time"

	"github.com/checkmarble/caseview-backend/infra"
)

const defaultRequestTimeout = 30 * time.Second

type Repositories struct {
	BpsRepository           BpsRepository
	AntivirusRepository     AntivirusRepository
	InternalTokenRepository InternalTokenRepository
}

type options struct {
	bpsClient       *http.Client
	antivirusClient *http.Client
	tokenClient     *http.Client
}

type Option func(*options)

func WithBpsHttpClient(client *http.Client) Option {
	return func(o *options) {
		o.bpsClient = client
	}
}

func WithAntivirusHttpClient(client *http.Client) Option {
	return func(o *options) {
		o.antivirusClient = client
	}
}

func WithInternalTokenHttpClient(client *http.Client) Option {
	return func(o *options) {
		o.tokenClient = client
	}
}

func httpClientWithTimeout(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &http.Client{Timeout: timeout}
}

func NewRepositories(
	bpsConfig infra.BpsConfig,
	antivirusConfig infra.AntivirusConfig,
	tokenConfig infra.InternalTokenConfig,
	opts ...Option,
) Repositories {
	o := options{
		bpsClient:       httpClientWithTimeout(bpsConfig.RequestTimeout),
		antivirusClient: httpClientWithTimeout(antivirusConfig.RequestTimeout),
		tokenClient:     httpClientWithTimeout(defaultRequestTimeout),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return Repositories{
		BpsRepository:           NewBpsRepository(o.bpsClient, bpsConfig.BaseUrl),
		AntivirusRepository:     NewAntivirusRepository(o.antivirusClient, antivirusConfig.BaseUrl),
		InternalTokenRepository: NewInternalTokenRepository(o.tokenClient, tokenConfig),
	}
}
