package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/checkmarble/caseview-backend/utils"
)

const CorrelationIdHeader = "X-Correlation-Id"

// NewCorrelationId reuses the caller's correlation id, or generates one. The id is echoed in
// the response and attached to the request logger.
func NewCorrelationId(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationId := c.GetHeader(CorrelationIdHeader)
		if correlationId == "" {
			correlationId = uuid.NewString()
		}
		c.Header(CorrelationIdHeader, correlationId)

		ctx := utils.StoreCorrelationIdInContext(c.Request.Context(), correlationId)
		ctx = utils.StoreLoggerInContext(ctx, logger.With(slog.String("correlation_id", correlationId)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
