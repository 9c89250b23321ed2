package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/checkmarble/caseview-backend/api"
	"github.com/checkmarble/caseview-backend/infra"
	"github.com/checkmarble/caseview-backend/pure_utils"
	"github.com/checkmarble/caseview-backend/repositories"
	"github.com/checkmarble/caseview-backend/usecases"
	"github.com/checkmarble/caseview-backend/utils"
)

func RunServer(config CompiledConfig) error {
	apiConfig := api.Configuration{
		Env:                   utils.GetEnv("ENV", "development"),
		AppName:               "caseview-backend",
		AppVersion:            config.Version,
		Port:                  utils.GetRequiredEnv[string]("PORT"),
		RequestLoggingLevel:   utils.GetEnv("REQUEST_LOGGING_LEVEL", "info"),
		AllowedOrigins:        splitList(utils.GetEnv("CORS_ALLOWED_ORIGINS", "")),
		DefaultTimeout:        utils.GetEnv("DEFAULT_TIMEOUT", 30*time.Second),
		CommentTimeout:        utils.GetEnv("COMMENT_TIMEOUT", 55*time.Second),
		MaxCommentUploadBytes: int64(utils.GetEnv("COMMENT_MAX_UPLOAD_MB", 30)) * 1024 * 1024,
		EnablePrometheus:      utils.GetEnv("ENABLE_PROMETHEUS", false),
	}
	bpsConfig := infra.BpsConfig{
		BaseUrl:            utils.GetRequiredEnv[string]("BPS_BASE_URL"),
		RequestTimeout:     utils.GetEnv("BPS_REQUEST_TIMEOUT", 30*time.Second),
		InternalDateLayout: utils.GetEnv("BPS_INTERNAL_DATE_LAYOUT", time.RFC3339),
		DefaultDateFormat:  utils.GetEnv("BPS_DEFAULT_DATE_FORMAT", usecases.DefaultBpsDateFormat),
	}
	antivirusConfig := infra.AntivirusConfig{
		BaseUrl:        utils.GetRequiredEnv[string]("ANTIVIRUS_BASE_URL"),
		RequestTimeout: utils.GetEnv("ANTIVIRUS_REQUEST_TIMEOUT", 30*time.Second),
		MaxConcurrency: utils.GetEnv("ANTIVIRUS_MAX_CONCURRENCY", 4),
	}
	tokenConfig := infra.InternalTokenConfig{
		Url:          utils.GetEnv("INTERNAL_TOKEN_URL", ""),
		ClientId:     utils.GetEnv("INTERNAL_TOKEN_CLIENT_ID", ""),
		ClientSecret: utils.GetEnv("INTERNAL_TOKEN_CLIENT_SECRET", ""),
		TokenTTL:     utils.GetEnv("INTERNAL_TOKEN_TTL", 5*time.Minute),
	}
	tracingConfig := infra.TelemetryConfiguration{
		Enabled:         utils.GetEnv("ENABLE_TRACING", false),
		ApplicationName: apiConfig.AppName,
		SamplingRate:    0.1,
	}
	serverConfig := ServerConfig{
		filterConfigFile:  utils.GetEnv("FILTER_CONFIG_FILE", ""),
		jwtPublicKey:      utils.GetRequiredEnv[string]("AUTHENTICATION_JWT_PUBLIC_KEY"),
		loggingFormat:     utils.GetEnv("LOGGING_FORMAT", "text"),
		loggingLevel:      utils.GetEnv("LOGGING_LEVEL", "info"),
		sentryDsn:         utils.GetEnv("SENTRY_DSN", ""),
		commentContentMax: utils.GetEnv("COMMENT_CONTENT_SIZE_MAX", usecases.DefaultCommentContentSizeMax),
		outputDateLayout:  utils.GetEnv("OUTPUT_DATE_LAYOUT", time.DateOnly),
	}

	logger := utils.NewLogger(serverConfig.loggingFormat, utils.ParseLogLevel(serverConfig.loggingLevel))
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	if err := serverConfig.Validate(); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	infra.SetupSentry(serverConfig.sentryDsn, apiConfig.Env, config.Version)
	defer sentry.Flush(3 * time.Second)

	telemetryRessources, err := infra.InitTelemetry(tracingConfig, config.Version)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		telemetryRessources = infra.NoopTelemetry()
	}

	filterConfig, err := infra.LoadFilterConfig(serverConfig.filterConfigFile)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	logger.InfoContext(ctx, "loaded filter configuration",
		slog.Int("filters", len(filterConfig.Definitions())))

	repos := repositories.NewRepositories(bpsConfig, antivirusConfig, tokenConfig,
		repositories.WithBpsHttpClient(tracedHttpClient(bpsConfig.RequestTimeout, telemetryRessources)),
		repositories.WithAntivirusHttpClient(tracedHttpClient(antivirusConfig.RequestTimeout, telemetryRessources)),
		repositories.WithInternalTokenHttpClient(tracedHttpClient(10*time.Second, telemetryRessources)),
	)
	uc := usecases.NewUsecases(repos,
		usecases.WithFilterConfig(filterConfig),
		usecases.WithDateLayouts(bpsConfig.InternalDateLayout, serverConfig.outputDateLayout),
		usecases.WithDefaultDateFormat(bpsConfig.DefaultDateFormat),
		usecases.WithCommentContentSizeMax(serverConfig.commentContentMax),
		usecases.WithScanConcurrency(antivirusConfig.MaxConcurrency),
	)

	jwtRepository := repositories.NewJwtRepository(infra.MustParseVerificationKey(serverConfig.jwtPublicKey))
	auth := utils.NewAuthentication(jwtRepository)

	router := api.InitRouterMiddlewares(ctx, apiConfig, telemetryRessources)
	server := api.NewServer(router, apiConfig, uc, auth)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server", slog.String("port", apiConfig.Port))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while serving the app"))
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while shutting down the server"))
		return err
	}
	if err := telemetryRessources.Shutdown(shutdownCtx); err != nil {
		logger.WarnContext(ctx, "could not flush traces", "error", err.Error())
	}

	return nil
}

func tracedHttpClient(timeout time.Duration, telemetryRessources infra.TelemetryRessources) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithTracerProvider(telemetryRessources.TracerProvider),
			otelhttp.WithPropagators(telemetryRessources.TextMapPropagator),
		),
	}
}

func splitList(s string) []string {
	return pure_utils.Filter(
		pure_utils.Map(strings.Split(s, ","), strings.TrimSpace),
		func(v string) bool { return v != "" },
	)
}
