package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/checkmarble/caseview-backend/utils"
)

type config struct {
	ignorePath []string

	defaultLevel     slog.Level
	clientErrorLevel slog.Level
	serverErrorLevel slog.Level
}

type LoggerOption func(*config)

func WithIgnorePath(s []string) LoggerOption {
	return func(c *config) {
		c.ignorePath = s
	}
}

// WithDefaultLevel sets the level of successful requests, eg "debug" to silence them in production.
func WithDefaultLevel(level string) LoggerOption {
	return func(c *config) {
		if level != "" {
			c.defaultLevel = utils.ParseLogLevel(level)
		}
	}
}

// NewLogging writes one access log per request, with the logger of the request context so
// that the correlation id and the caller identity are part of it.
func NewLogging(options ...LoggerOption) gin.HandlerFunc {
	l := &config{
		defaultLevel:     slog.LevelInfo,
		clientErrorLevel: slog.LevelWarn,
		serverErrorLevel: slog.LevelError,
	}

	for _, option := range options {
		option(l)
	}

	ignore := make(map[string]struct{}, len(l.ignorePath))
	for _, path := range l.ignorePath {
		ignore[path] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := ignore[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		start := time.Now()
		c.Next()
		latency := time.Since(start).Milliseconds()
		status := c.Writer.Status()
		dataLength := max(c.Writer.Size(), 0)

		level := l.defaultLevel
		if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
			level = l.clientErrorLevel
		}
		if status >= http.StatusInternalServerError {
			level = l.serverErrorLevel
		}

		attributes := []slog.Attr{
			slog.Int("status", status),
			slog.Int64("latency", latency),
			slog.String("client_ip", c.ClientIP()),
			slog.String("method", c.Request.Method),
			slog.String("route", c.FullPath()),
			slog.Int("data_length", dataLength),
			slog.String("user_agent", c.Request.UserAgent()),
		}
		if c.Errors != nil {
			attributes = append(attributes, slog.String("error", c.Errors.String()))
		}
		ctx := c.Request.Context()
		utils.LoggerFromContext(ctx).LogAttrs(ctx, level,
			fmt.Sprintf("%s %s", c.Request.Method, path), attributes...)
	}
}
