package usecases

import (
	"context"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/usecases/security"
)

type AuditTrailRepository interface {
	GetHistory(ctx context.Context, caseviewId string) ([]models.HistoryRecord, error)
	GetHistoryDetails(ctx context.Context, historyId string) (models.HistoryDetails, error)
}

type AuditTrailUsecase struct {
	enforceSecurity security.EnforceSecurityCaseview
	repository      AuditTrailRepository
}

// GetAuditTrails lists every BPS service execution on the case, searches included.
func (usecase *AuditTrailUsecase) GetAuditTrails(ctx context.Context, caseviewId string) ([]models.HistoryRecord, error) {
	if err := usecase.enforceSecurity.ReadCaseview(); err != nil {
		return nil, err
	}
	history, err := usecase.repository.GetHistory(ctx, caseviewId)
	if err != nil {
		return nil, err
	}
	return sanitiseHistory(history), nil
}

func (usecase *AuditTrailUsecase) GetAuditTrailDetails(ctx context.Context, historyId string) (models.HistoryDetails, error) {
	if err := usecase.enforceSecurity.ReadCaseview(); err != nil {
		return models.HistoryDetails{}, err
	}
	return usecase.repository.GetHistoryDetails(ctx, historyId)
}
