package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/checkmarble/caseview-backend/dto"
	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/usecases"
)

type dataDefinitionQuery struct {
	ServiceId string `form:"serviceId" binding:"required"`
}

func handleGetServiceDataDefinition(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var query dataDefinitionQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewDataDefinitionUsecase()
		definition, err := usecase.GetUsecaseServiceDataDefinition(ctx, query.ServiceId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptServiceDataDefinitionDto(definition))
	}
}

func presentMergedDataDefinitions(c *gin.Context, merged *models.MergedCharacteristicMetaData, err error) {
	ctx := c.Request.Context()
	if merged == nil && err == nil {
		err = errors.Wrap(models.ErrAuthUnavailable, "merged data definitions could not be built")
	}
	if presentError(ctx, c, err) {
		return
	}
	c.JSON(http.StatusOK, dto.AdaptMergedDataDefinitionsDto(*merged))
}

func handleGetMergedDataDefinitions(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usecase := usecasesWithCreds(ctx, uc).NewDataDefinitionUsecase()
		merged, err := usecase.GetMergedFlatDataDefinitions(ctx)
		presentMergedDataDefinitions(c, merged, err)
	}
}

func handleRefreshMergedDataDefinitions(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usecase := usecasesWithCreds(ctx, uc).NewDataDefinitionUsecase()
		merged, err := usecase.RepopulateMergedFlatDataDefinitions(ctx)
		presentMergedDataDefinitions(c, merged, err)
	}
}
