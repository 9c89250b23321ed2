package api

import (
	"net/http"
	"net/url"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/checkmarble/caseview-backend/dto"
	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/pure_utils"
	"github.com/checkmarble/caseview-backend/usecases"
)

// criteriaFromQuery keeps the query parameters that are not list options. Repeated parameters
// become lists.
func criteriaFromQuery(query url.Values) map[string]any {
	criteria := make(map[string]any, len(query))
	for key, values := range query {
		if slices.Contains(dto.CaseviewListQueryParams, key) || len(values) == 0 {
			continue
		}
		if len(values) == 1 {
			criteria[key] = values[0]
		} else {
			criteria[key] = values
		}
	}
	return criteria
}

func formatOrDefault(format string, filter models.FilterDefinition) string {
	if format == "" {
		return string(filter.Format)
	}
	return format
}

func handleListCaseviews(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var query dto.CaseviewListQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		filter, err := uc.FilterConfig().Get(query.FilterId)
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewCaseviewUsecase()
		page, err := usecase.SearchMultipleCases(ctx, models.SearchCasesInput{
			ServiceId:   filter.BpsServiceId,
			BusinessKey: filter.BusinessKey,
			Format:      formatOrDefault(query.Format, filter),
			Actions: pure_utils.Map(query.Actions, func(a string) models.SearchAction {
				return models.SearchAction(a)
			}),
			Criteria: criteriaFromQuery(c.Request.URL.Query()),
			Page:     query.Page,
			PageSize: query.PageSize,
		})
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptCaseviewListPageDto(page))
	}
}

func handleGetCaseview(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri dto.CaseviewUri
		if err := c.ShouldBindUri(&uri); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		var query dto.CaseviewQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		filter, err := uc.FilterConfig().Get(query.FilterId)
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewCaseviewUsecase()
		caseview, err := usecase.GetSingleCaseSearch(ctx, models.GetSingleCaseInput{
			ServiceId:   filter.BpsServiceId,
			BusinessKey: filter.BusinessKey,
			CaseviewId:  uri.CaseviewId,
			Format:      formatOrDefault(query.Format, filter),
			RespectLock: query.RespectLock,
		})
		if presentError(ctx, c, err) {
			return
		}
		if caseview == nil {
			c.Status(http.StatusNoContent)
			return
		}

		c.JSON(http.StatusOK, dto.AdaptCaseviewDto(*caseview))
	}
}

func updateInput(uri dto.CaseviewUri, query dto.CaseviewQuery, filter models.FilterDefinition) (models.UpdateSingleCaseInput, error) {
	if filter.UpdateServiceId == "" {
		return models.UpdateSingleCaseInput{}, errors.Wrapf(models.BadParameterError,
			"filter %s has no update service", filter.FilterId)
	}
	return models.UpdateSingleCaseInput{
		ServiceId:                  filter.UpdateServiceId,
		BusinessKey:                filter.BusinessKey,
		CaseviewId:                 uri.CaseviewId,
		Format:                     formatOrDefault(query.Format, filter),
		RetainLock:                 query.RetainLock,
		ExternalUserCharacteristic: filter.ExternalUserCharacteristic,
	}, nil
}

func handleSearchAndUpdateCaseview(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri dto.CaseviewUri
		if err := c.ShouldBindUri(&uri); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		var query dto.CaseviewQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		filter, err := uc.FilterConfig().Get(query.FilterId)
		if presentError(ctx, c, err) {
			return
		}
		input, err := updateInput(uri, query, filter)
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewCaseviewUsecase()
		caseview, err := usecase.GetSingleCaseUpdate(ctx, input)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptCaseviewDto(caseview))
	}
}

func handlePatchCaseview(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri dto.CaseviewUri
		if err := c.ShouldBindUri(&uri); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		var query dto.CaseviewQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		var data map[string]any
		if err := c.ShouldBindJSON(&data); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		filter, err := uc.FilterConfig().Get(query.FilterId)
		if presentError(ctx, c, err) {
			return
		}
		input, err := updateInput(uri, query, filter)
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewCaseviewUsecase()
		caseview, err := usecase.PatchCase(ctx, models.PatchCaseInput{
			UpdateSingleCaseInput: input,
			Data:                  data,
		})
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptCaseviewDto(caseview))
	}
}
