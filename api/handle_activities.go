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

type activitiesQuery struct {
	FilterId string `form:"filterId" binding:"required"`
}

func handleListCaseviewActivities(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri dto.CaseviewUri
		if err := c.ShouldBindUri(&uri); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		var query activitiesQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		filter, err := uc.FilterConfig().Get(query.FilterId)
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewActivityUsecase()
		timeline, err := usecase.GetSingleLogActivitiesForCase(ctx, uri.CaseviewId, filter.UpdateServiceId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, pure_utils.Map(timeline, dto.AdaptTimelineItemDto))
	}
}
