package usecases

import (
	"context"
	"encoding/json"
	"maps"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-set/v2"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/pure_utils"
	"github.com/checkmarble/caseview-backend/usecases/security"
	"github.com/checkmarble/caseview-backend/utils"
)

type CaseviewRepository interface {
	Search(ctx context.Context, input models.SearchInput) ([]json.RawMessage, error)
	Count(ctx context.Context, input models.CountInput) (*int64, error)
	GetLockStatusBatch(ctx context.Context, caseviewIds []string) (map[string]models.LockStatus, error)
	ExecuteUpdateService(ctx context.Context, input models.UpdateServiceInput) (json.RawMessage, error)
}

type LockVerifier interface {
	VerifyAccess(ctx context.Context, caseviewId string, respectLock, isUpdate bool, effectiveUserId string) error
}

type CaseviewUsecase struct {
	enforceSecurity security.EnforceSecurityCaseview
	credentials     models.Credentials
	repository      CaseviewRepository
	lockVerifier    LockVerifier
}

// SearchMultipleCases runs the search and/or count actions in parallel. Searched cases are
// returned with their lock owner.
func (usecase *CaseviewUsecase) SearchMultipleCases(
	ctx context.Context,
	input models.SearchCasesInput,
) (models.CaseviewListPage, error) {
	if err := usecase.enforceSecurity.ReadCaseview(); err != nil {
		return models.CaseviewListPage{}, err
	}
	format, err := models.PayloadFormatFrom(input.Format)
	if err != nil {
		return models.CaseviewListPage{}, err
	}
	// with neither search nor count, no remote call is made and the page is empty
	actions := set.From(input.Actions)

	ctx, span := utils.StartSpan(ctx, "CaseviewUsecase.SearchMultipleCases",
		attribute.String("service_id", input.ServiceId),
		attribute.StringSlice("actions", pure_utils.Map(input.Actions, func(a models.SearchAction) string {
			return string(a)
		})))
	defer span.End()

	var (
		rows       []json.RawMessage
		totalCount *int64
	)
	group := errgroup.Group{}
	if actions.Contains(models.ActionSearch) {
		group.Go(func() (err error) {
			rows, err = usecase.repository.Search(ctx, models.SearchInput{
				ServiceId:    input.ServiceId,
				Criteria:     input.Criteria,
				Flat:         format.IsFlat(),
				Page:         input.Page,
				PageSize:     input.PageSize,
				UserId:       usecase.credentials.EffectiveUserId(),
				ExternalUser: usecase.credentials.ExternalUser,
			})
			return errors.Wrap(err, "could not search cases")
		})
	}
	if actions.Contains(models.ActionCount) {
		group.Go(func() (err error) {
			totalCount, err = usecase.repository.Count(ctx, models.CountInput{
				ServiceId: input.ServiceId,
				Criteria:  input.Criteria,
				Flat:      format.IsFlat(),
			})
			return errors.Wrap(err, "could not count cases")
		})
	}
	if err := group.Wait(); err != nil {
		return models.CaseviewListPage{}, err
	}

	page := models.CaseviewListPage{Page: input.Page, PageSize: input.PageSize}
	if actions.Contains(models.ActionSearch) {
		caseviews, err := toCaseviews(rows, input.BusinessKey, format)
		if err != nil {
			return models.CaseviewListPage{}, err
		}
		page.Caseviews, err = usecase.withLocks(ctx, caseviews)
		if err != nil {
			return models.CaseviewListPage{}, err
		}
	}
	if actions.Contains(models.ActionCount) {
		page.TotalCount = totalCount
		if page.Caseviews != nil {
			page.CaseListCount = pure_utils.Ptr(len(page.Caseviews))
		}
	}
	return page, nil
}

func (usecase *CaseviewUsecase) withLocks(ctx context.Context, caseviews []models.Caseview) ([]models.CaseviewWithLock, error) {
	out := make([]models.CaseviewWithLock, 0, len(caseviews))
	if len(caseviews) == 0 {
		return out, nil
	}

	ids := pure_utils.Distinct(pure_utils.Map(caseviews, func(c models.Caseview) string { return c.CaseviewId }))
	locks, err := usecase.repository.GetLockStatusBatch(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "could not get lock statuses")
	}
	for _, c := range caseviews {
		// a case missing from the lock map is not locked
		lock := locks[c.CaseviewId]
		out = append(out, models.CaseviewWithLock{
			Caseview: c,
			LockedBy: lock.UserId,
			LockedAt: lock.Timestamp,
		})
	}
	return out, nil
}

// GetSingleCaseSearch returns nil when BPS has no row, or when its first row is another case.
func (usecase *CaseviewUsecase) GetSingleCaseSearch(ctx context.Context, input models.GetSingleCaseInput) (*models.Caseview, error) {
	if err := usecase.enforceSecurity.ReadCaseview(); err != nil {
		return nil, err
	}
	format, err := models.PayloadFormatFrom(input.Format)
	if err != nil {
		return nil, err
	}

	ctx, span := utils.StartSpan(ctx, "CaseviewUsecase.GetSingleCaseSearch",
		attribute.String("caseview_id", input.CaseviewId))
	defer span.End()

	if err := usecase.lockVerifier.VerifyAccess(ctx, input.CaseviewId, input.RespectLock, false,
		usecase.credentials.EffectiveUserId()); err != nil {
		return nil, err
	}

	rows, err := usecase.repository.Search(ctx, models.SearchInput{
		ServiceId:    input.ServiceId,
		Criteria:     businessKeyPayload(input.BusinessKey, input.CaseviewId, format),
		Flat:         format.IsFlat(),
		UserId:       usecase.credentials.EffectiveUserId(),
		ExternalUser: usecase.credentials.ExternalUser,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not search case")
	}
	caseviews, err := toCaseviews(rows, input.BusinessKey, format)
	if err != nil {
		return nil, err
	}
	if len(caseviews) == 0 {
		return nil, nil
	}

	logger := utils.LoggerFromContext(ctx)
	first := caseviews[0]
	if first.CaseviewId != input.CaseviewId {
		logger.WarnContext(ctx, "First BPS data element not the expected caseviewId. Returning empty.",
			"caseview_id", input.CaseviewId, "received_caseview_id", first.CaseviewId)
		return nil, nil
	}
	if len(caseviews) > 1 {
		logger.WarnContext(ctx, "Additional BPS data elements being ignored",
			"caseview_id", input.CaseviewId, "rows", len(caseviews))
	}
	return &first, nil
}

// GetSingleCaseUpdate runs the update service of a case without data change, which has BPS
// lock the case for the caller when retainLock is set.
func (usecase *CaseviewUsecase) GetSingleCaseUpdate(ctx context.Context, input models.UpdateSingleCaseInput) (models.Caseview, error) {
	if err := usecase.enforceSecurity.ReadCaseview(); err != nil {
		return models.Caseview{}, err
	}
	return usecase.runUpdateService(ctx, input, nil, false)
}

func (usecase *CaseviewUsecase) PatchCase(ctx context.Context, input models.PatchCaseInput) (models.Caseview, error) {
	if err := usecase.enforceSecurity.UpdateCaseview(); err != nil {
		return models.Caseview{}, err
	}
	return usecase.runUpdateService(ctx, input.UpdateSingleCaseInput, input.Data, true)
}

func (usecase *CaseviewUsecase) runUpdateService(
	ctx context.Context,
	input models.UpdateSingleCaseInput,
	patch map[string]any,
	isUpdate bool,
) (models.Caseview, error) {
	format, err := models.PayloadFormatFrom(input.Format)
	if err != nil {
		return models.Caseview{}, err
	}

	ctx, span := utils.StartSpan(ctx, "CaseviewUsecase.runUpdateService",
		attribute.String("caseview_id", input.CaseviewId),
		attribute.Bool("is_update", isUpdate))
	defer span.End()

	if err := usecase.lockVerifier.VerifyAccess(ctx, input.CaseviewId, true, isUpdate,
		usecase.credentials.EffectiveUserId()); err != nil {
		return models.Caseview{}, err
	}

	data := maps.Clone(patch)
	if data == nil {
		data = make(map[string]any, 2)
	}
	putPayloadValue(data, input.BusinessKey, input.CaseviewId, format)
	if input.ExternalUserCharacteristic != "" && usecase.credentials.ExternalUser != "" {
		putPayloadValue(data, input.ExternalUserCharacteristic, usecase.credentials.ExternalUser, format)
	}

	row, err := usecase.repository.ExecuteUpdateService(ctx, models.UpdateServiceInput{
		ServiceId:    input.ServiceId,
		RetainLock:   input.RetainLock,
		Data:         data,
		Flat:         format.IsFlat(),
		UserId:       usecase.credentials.EffectiveUserId(),
		ExternalUser: usecase.credentials.ExternalUser,
	})
	if err != nil {
		return models.Caseview{}, errors.Wrap(err, "could not run update service")
	}
	caseviewId, err := businessKeyOf(row, input.BusinessKey, format)
	if err != nil {
		return models.Caseview{}, err
	}
	return models.Caseview{CaseviewId: caseviewId, Data: row}, nil
}

func toCaseviews(rows []json.RawMessage, businessKey string, format models.PayloadFormat) ([]models.Caseview, error) {
	caseviews := make([]models.Caseview, 0, len(rows))
	for _, row := range rows {
		id, err := businessKeyOf(row, businessKey, format)
		if err != nil {
			return nil, err
		}
		caseviews = append(caseviews, models.Caseview{CaseviewId: id, Data: row})
	}
	return caseviews, nil
}

// businessKeyOf reads the business key of a BPS row: a top level field named after the key for
// flat payloads, the object path the dotted key describes for hierarchical ones.
func businessKeyOf(row json.RawMessage, businessKey string, format models.PayloadFormat) (string, error) {
	var result gjson.Result
	if format.IsFlat() {
		result = gjson.GetBytes(row, gjson.Escape(businessKey))
	} else {
		result = gjson.GetBytes(row, businessKey)
	}
	if !result.Exists() || result.Type == gjson.Null || result.String() == "" {
		return "", errors.Wrapf(models.ErrMissingBusinessKey, "business key %s", businessKey)
	}
	return result.String(), nil
}

func businessKeyPayload(businessKey, caseviewId string, format models.PayloadFormat) map[string]any {
	payload := map[string]any{}
	putPayloadValue(payload, businessKey, caseviewId, format)
	return payload
}

// putPayloadValue sets key to value, creating the intermediate objects of a dotted key in
// hierarchical payloads.
func putPayloadValue(payload map[string]any, key string, value any, format models.PayloadFormat) {
	if format.IsFlat() {
		payload[key] = value
		return
	}
	parts := strings.Split(key, ".")
	current := payload
	for _, part := range parts[:len(parts)-1] {
		// copied so that objects shared with the caller are left untouched
		next, ok := current[part].(map[string]any)
		if ok {
			next = maps.Clone(next)
		} else {
			next = map[string]any{}
		}
		current[part] = next
		current = next
	}
	current[parts[len(parts)-1]] = value
}
