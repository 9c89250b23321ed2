package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/checkmarble/caseview-backend/dto"
	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/utils"
)

func presentError(ctx context.Context, c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	logger := utils.LoggerFromContext(ctx)
	errorResponse := dto.APIErrorResponse{Message: err.Error()}

	var lockedByOther models.CaseLockedByOtherError
	switch {
	case errors.As(err, &lockedByOther):
		logger.InfoContext(ctx, fmt.Sprintf("LockConflictError: %v", err))
		errorResponse.ErrorCode = dto.LockedByOther
		errorResponse.LockedBy = lockedByOther.LockedBy
		errorResponse.LockedAt = lockedByOther.LockedAt.Ptr()
		c.JSON(http.StatusLocked, errorResponse)
	case errors.Is(err, models.ErrCaseNotLocked):
		logger.InfoContext(ctx, fmt.Sprintf("LockConflictError: %v", err))
		errorResponse.ErrorCode = dto.NotLocked
		c.JSON(http.StatusLocked, errorResponse)
	case errors.Is(err, models.ErrUnexpectedLockSubject):
		logger.WarnContext(ctx, fmt.Sprintf("LockConflictError: %v", err))
		errorResponse.ErrorCode = dto.InvalidLockedResource
		c.JSON(http.StatusLocked, errorResponse)
	case errors.Is(err, models.LockConflictError):
		logger.InfoContext(ctx, fmt.Sprintf("LockConflictError: %v", err))
		c.JSON(http.StatusLocked, errorResponse)

	case errors.Is(err, models.BadParameterError):
		logger.InfoContext(ctx, fmt.Sprintf("BadParameterError: %v", err))
		c.JSON(http.StatusBadRequest, errorResponse)
	case errors.Is(err, models.UnAuthorizedError):
		logger.InfoContext(ctx, fmt.Sprintf("UnAuthorizedError: %v", err))
		c.JSON(http.StatusUnauthorized, errorResponse)
	case errors.Is(err, models.ForbiddenError):
		logger.InfoContext(ctx, fmt.Sprintf("ForbiddenError: %v", err))
		c.JSON(http.StatusForbidden, errorResponse)
	case errors.Is(err, models.NotFoundError):
		logger.InfoContext(ctx, fmt.Sprintf("NotFoundError: %v", err))
		c.JSON(http.StatusNotFound, errorResponse)
	case errors.Is(err, models.ConflictError):
		logger.InfoContext(ctx, fmt.Sprintf("ConflictError: %v", err))
		c.JSON(http.StatusConflict, errorResponse)

	case errors.Is(err, models.ErrAuthUnavailable):
		logger.WarnContext(ctx, fmt.Sprintf("AuthUnavailable: %v", err))
		c.JSON(http.StatusServiceUnavailable, dto.APIErrorResponse{
			Message:   "The internal authentication service is unavailable.",
			ErrorCode: dto.AuthUnavailable,
		})
	case errors.Is(err, models.ErrBpsUnavailable):
		utils.LogAndReportSentryError(ctx, err)
		c.JSON(http.StatusBadGateway, dto.APIErrorResponse{
			Message:   "The business process system call failed.",
			ErrorCode: dto.BpsUnavailable,
		})

	default:
		utils.LogAndReportSentryError(ctx, err)
		c.JSON(http.StatusInternalServerError, dto.APIErrorResponse{
			Message: "An unexpected error occurred. Please try again later, or contact support if the problem persists.",
		})
	}
	return true
}
