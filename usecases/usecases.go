package usecases

import (
	"github.com/checkmarble/caseview-backend/infra"
	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/repositories"
	"github.com/checkmarble/caseview-backend/usecases/catalog"
	"github.com/checkmarble/caseview-backend/usecases/characteristics"
	"github.com/checkmarble/caseview-backend/usecases/locks"
)

const DefaultBpsDateFormat = "yyyy-MM-dd'T'HH:mm:ss.SSSZ"

type Usecases struct {
	Repositories      repositories.Repositories
	filterConfig      infra.FilterConfig
	converter         characteristics.Converter
	contentSizeMax    int
	scanConcurrency   int
	defaultDateFormat string
	// process wide, shared by every request
	dataDefinitionCache *catalog.Cache[models.MergedCharacteristicMetaData]
}

type Option func(*options)

func WithFilterConfig(config infra.FilterConfig) Option {
	return func(o *options) {
		o.filterConfig = config
	}
}

func WithDateLayouts(internalDateLayout, outputDateLayout string) Option {
	return func(o *options) {
		o.internalDateLayout = internalDateLayout
		o.outputDateLayout = outputDateLayout
	}
}

func WithCommentContentSizeMax(size int) Option {
	return func(o *options) {
		o.contentSizeMax = size
	}
}

func WithScanConcurrency(concurrency int) Option {
	return func(o *options) {
		o.scanConcurrency = concurrency
	}
}

func WithDefaultDateFormat(format string) Option {
	return func(o *options) {
		o.defaultDateFormat = format
	}
}

type options struct {
	filterConfig       infra.FilterConfig
	internalDateLayout string
	outputDateLayout   string
	contentSizeMax     int
	scanConcurrency    int
	defaultDateFormat  string
}

func newUsecasesWithOptions(repositories repositories.Repositories, o *options) Usecases {
	if o.contentSizeMax == 0 {
		o.contentSizeMax = DefaultCommentContentSizeMax
	}
	if o.scanConcurrency == 0 {
		o.scanConcurrency = defaultScanConcurrency
	}
	if o.defaultDateFormat == "" {
		o.defaultDateFormat = DefaultBpsDateFormat
	}
	return Usecases{
		Repositories:        repositories,
		filterConfig:        o.filterConfig,
		converter:           characteristics.NewConverter(o.internalDateLayout, o.outputDateLayout),
		contentSizeMax:      o.contentSizeMax,
		scanConcurrency:     o.scanConcurrency,
		defaultDateFormat:   o.defaultDateFormat,
		dataDefinitionCache: catalog.NewCache[models.MergedCharacteristicMetaData](),
	}
}

func NewUsecases(repositories repositories.Repositories, opts ...Option) Usecases {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return newUsecasesWithOptions(repositories, o)
}

func (usecases *Usecases) FilterConfig() infra.FilterConfig {
	return usecases.filterConfig
}

func (usecases *Usecases) NewLockVerifier() locks.LockVerifier {
	return locks.NewLockVerifier(usecases.Repositories.BpsRepository)
}
