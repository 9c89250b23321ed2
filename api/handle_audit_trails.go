package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/checkmarble/caseview-backend/dto"
	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/pure_utils"
	"github.com/checkmarble/caseview-backend/usecases"
)

func handleListAuditTrails(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri dto.CaseviewUri
		if err := c.ShouldBindUri(&uri); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewAuditTrailUsecase()
		history, err := usecase.GetAuditTrails(ctx, uri.CaseviewId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, pure_utils.Map(history, dto.AdaptAuditTrailDto))
	}
}

func handleGetAuditTrailDetails(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		historyId := c.Param("history_id")

		usecase := usecasesWithCreds(ctx, uc).NewAuditTrailUsecase()
		details, err := usecase.GetAuditTrailDetails(ctx, historyId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptAuditTrailDetailsDto(details))
	}
}
