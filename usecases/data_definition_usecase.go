package usecases

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/usecases/catalog"
	"github.com/checkmarble/caseview-backend/usecases/security"
	"github.com/checkmarble/caseview-backend/utils"
)

type DataDefinitionRepository interface {
	GetDataDefinition(ctx context.Context, serviceId, authToken string) (*models.UsecaseServiceDataDefinition, error)
}

type InternalTokenRepository interface {
	GetInternalToken(ctx context.Context) (string, error)
}

type ServiceIdLister interface {
	ServiceIds() []string
}

type DataDefinitionUsecase struct {
	enforceSecurity   security.EnforceSecurityCaseview
	repository        DataDefinitionRepository
	tokenRepository   InternalTokenRepository
	services          ServiceIdLister
	cache             *catalog.Cache[models.MergedCharacteristicMetaData]
	defaultDateFormat string
}

// GetUsecaseServiceDataDefinition returns the input and output definitions of one BPS service.
func (usecase *DataDefinitionUsecase) GetUsecaseServiceDataDefinition(
	ctx context.Context,
	serviceId string,
) (models.UsecaseServiceDataDefinition, error) {
	if err := usecase.enforceSecurity.ReadCaseview(); err != nil {
		return models.UsecaseServiceDataDefinition{}, err
	}
	definition, err := usecase.repository.GetDataDefinition(ctx, serviceId, "")
	if err != nil {
		return models.UsecaseServiceDataDefinition{}, err
	}
	if definition == nil {
		return models.UsecaseServiceDataDefinition{}, errors.Wrapf(models.NotFoundError,
			"no data definition for service %s", serviceId)
	}
	return *definition, nil
}

// GetMergedFlatDataDefinitions returns the cached catalog of the characteristics of every
// registered service, building it on a miss. It returns nil without error when no internal
// token could be obtained.
func (usecase *DataDefinitionUsecase) GetMergedFlatDataDefinitions(ctx context.Context) (*models.MergedCharacteristicMetaData, error) {
	if err := usecase.enforceSecurity.ReadCaseview(); err != nil {
		return nil, err
	}
	return usecase.cache.GetOrBuild(ctx, usecase.buildMergedFlatDataDefinitions)
}

func (usecase *DataDefinitionUsecase) RepopulateMergedFlatDataDefinitions(ctx context.Context) (*models.MergedCharacteristicMetaData, error) {
	if err := usecase.enforceSecurity.RefreshDataDefinitions(); err != nil {
		return nil, err
	}
	utils.LoggerFromContext(ctx).InfoContext(ctx, "Cleaning merged data definition cache.")
	usecase.cache.Evict()
	return usecase.cache.GetOrBuild(ctx, usecase.buildMergedFlatDataDefinitions)
}

func (usecase *DataDefinitionUsecase) buildMergedFlatDataDefinitions(ctx context.Context) (*models.MergedCharacteristicMetaData, error) {
	ctx, span := utils.StartSpan(ctx, "DataDefinitionUsecase.buildMergedFlatDataDefinitions")
	defer span.End()
	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "Calling BPS data definition endpoint to build the merged data definitions")

	token, err := usecase.tokenRepository.GetInternalToken(ctx)
	if err != nil || token == "" {
		logger.WarnContext(ctx, "No internal token available, merged data definitions not built",
			"error", fmt.Sprint(err))
		utils.MetricCatalogBuildCount.With(prometheus.Labels{"outcome": "no_token"}).Inc()
		return nil, nil
	}

	serviceIds := usecase.services.ServiceIds()
	span.SetAttributes(attribute.Int("services", len(serviceIds)))

	definitions := make([]*models.UsecaseServiceDataDefinition, len(serviceIds))
	group := errgroup.Group{}
	for i, serviceId := range serviceIds {
		group.Go(func() error {
			definition, err := usecase.repository.GetDataDefinition(ctx, serviceId, token)
			if err != nil {
				return errors.Wrapf(err, "could not get data definition of %s", serviceId)
			}
			definitions[i] = definition
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		utils.MetricCatalogBuildCount.With(prometheus.Labels{"outcome": "error"}).Inc()
		return nil, err
	}

	merged := mergeDataDefinitions(definitions)
	merged.DateFormat = dateFormatOf(definitions)
	if merged.DateFormat == "" {
		logger.WarnContext(ctx, fmt.Sprintf("BPS Does not return date time format, %s used as default.",
			usecase.defaultDateFormat))
		merged.DateFormat = usecase.defaultDateFormat
	}
	utils.MetricCatalogBuildCount.With(prometheus.Labels{"outcome": "success"}).Inc()
	return &merged, nil
}

// mergeDataDefinitions flattens the array markers of the keys. On collision the first
// definition, in service then declaration order, wins.
func mergeDataDefinitions(definitions []*models.UsecaseServiceDataDefinition) models.MergedCharacteristicMetaData {
	merged := models.MergedCharacteristicMetaData{DataDefinitions: map[string]models.CharacteristicType{}}
	for _, definition := range definitions {
		if definition == nil {
			continue
		}
		for _, characteristic := range definition.Characteristics() {
			key := models.FlatCharacteristicKey(characteristic.Key)
			if _, exists := merged.DataDefinitions[key]; !exists {
				merged.DataDefinitions[key] = characteristic.Type
			}
		}
	}
	return merged
}

func dateFormatOf(definitions []*models.UsecaseServiceDataDefinition) string {
	for _, definition := range definitions {
		if definition != nil && definition.DateFormat != "" {
			return definition.DateFormat
		}
	}
	return ""
}
