package usecases

import (
	"context"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/usecases/security"
)

type ReferenceDataRepository interface {
	GetSecurityPolicies(ctx context.Context) ([]models.SecurityPolicy, error)
	GetValidValues(ctx context.Context) ([]models.ValidValueList, error)
}

// ReferenceDataUsecase serves the BPS data the front end needs to render cases: security
// policies and the valid values of enumerated characteristics.
type ReferenceDataUsecase struct {
	enforceSecurity security.EnforceSecurityCaseview
	repository      ReferenceDataRepository
}

func (usecase *ReferenceDataUsecase) GetSecurityPolicies(ctx context.Context) ([]models.SecurityPolicy, error) {
	if err := usecase.enforceSecurity.ReadCaseview(); err != nil {
		return nil, err
	}
	return usecase.repository.GetSecurityPolicies(ctx)
}

func (usecase *ReferenceDataUsecase) GetValidValues(ctx context.Context) ([]models.ValidValueList, error) {
	if err := usecase.enforceSecurity.ReadCaseview(); err != nil {
		return nil, err
	}
	return usecase.repository.GetValidValues(ctx)
}
