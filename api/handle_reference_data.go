package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/checkmarble/caseview-backend/dto"
	"github.com/checkmarble/caseview-backend/pure_utils"
	"github.com/checkmarble/caseview-backend/usecases"
)

func handleListSecurityPolicies(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usecase := usecasesWithCreds(ctx, uc).NewReferenceDataUsecase()
		policies, err := usecase.GetSecurityPolicies(ctx)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, pure_utils.Map(policies, dto.AdaptSecurityPolicyDto))
	}
}

func handleListValidValues(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usecase := usecasesWithCreds(ctx, uc).NewReferenceDataUsecase()
		validValues, err := usecase.GetValidValues(ctx)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, pure_utils.Map(validValues, dto.AdaptValidValueListDto))
	}
}
