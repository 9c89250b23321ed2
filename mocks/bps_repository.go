package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/checkmarble/caseview-backend/models"
)

type BpsRepository struct {
	mock.Mock
}

func (r *BpsRepository) GetDocuments(ctx context.Context, caseviewId string) ([]models.Document, error) {
	args := r.Called(ctx, caseviewId)
	return args.Get(0).([]models.Document), args.Error(1)
}

func (r *BpsRepository) GetNotes(ctx context.Context, caseviewId string) ([]models.BpsNote, error) {
	args := r.Called(ctx, caseviewId)
	return args.Get(0).([]models.BpsNote), args.Error(1)
}

func (r *BpsRepository) GetHistory(ctx context.Context, caseviewId string) ([]models.HistoryRecord, error) {
	args := r.Called(ctx, caseviewId)
	return args.Get(0).([]models.HistoryRecord), args.Error(1)
}

func (r *BpsRepository) GetHistoryDetails(ctx context.Context, historyId string) (models.HistoryDetails, error) {
	args := r.Called(ctx, historyId)
	return args.Get(0).(models.HistoryDetails), args.Error(1)
}

func (r *BpsRepository) GetLockStatus(ctx context.Context, caseviewId string) (models.LockStatus, error) {
	args := r.Called(ctx, caseviewId)
	return args.Get(0).(models.LockStatus), args.Error(1)
}

func (r *BpsRepository) GetLockStatusBatch(ctx context.Context, caseviewIds []string) (map[string]models.LockStatus, error) {
	args := r.Called(ctx, caseviewIds)
	return args.Get(0).(map[string]models.LockStatus), args.Error(1)
}

func (r *BpsRepository) Unlock(ctx context.Context, input models.UnlockInput) error {
	args := r.Called(ctx, input)
	return args.Error(0)
}

func (r *BpsRepository) PostNote(ctx context.Context, input models.PostNoteInput) (models.PostNoteResult, error) {
	args := r.Called(ctx, input)
	return args.Get(0).(models.PostNoteResult), args.Error(1)
}

func (r *BpsRepository) Search(ctx context.Context, input models.SearchInput) ([]json.RawMessage, error) {
	args := r.Called(ctx, input)
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func (r *BpsRepository) Count(ctx context.Context, input models.CountInput) (*int64, error) {
	args := r.Called(ctx, input)
	return args.Get(0).(*int64), args.Error(1)
}

func (r *BpsRepository) ExecuteUpdateService(ctx context.Context, input models.UpdateServiceInput) (json.RawMessage, error) {
	args := r.Called(ctx, input)
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (r *BpsRepository) GetDataDefinition(ctx context.Context, serviceId, authToken string) (*models.UsecaseServiceDataDefinition, error) {
	args := r.Called(ctx, serviceId, authToken)
	return args.Get(0).(*models.UsecaseServiceDataDefinition), args.Error(1)
}

func (r *BpsRepository) GetDocumentContent(ctx context.Context, documentKey, documentType string) (models.DocumentContent, error) {
	args := r.Called(ctx, documentKey, documentType)
	return args.Get(0).(models.DocumentContent), args.Error(1)
}

func (r *BpsRepository) GetNoteAttachmentContent(ctx context.Context, commentId, attachmentId string) (models.DocumentContent, error) {
	args := r.Called(ctx, commentId, attachmentId)
	return args.Get(0).(models.DocumentContent), args.Error(1)
}

func (r *BpsRepository) GetSecurityPolicies(ctx context.Context) ([]models.SecurityPolicy, error) {
	args := r.Called(ctx)
	return args.Get(0).([]models.SecurityPolicy), args.Error(1)
}

func (r *BpsRepository) GetValidValues(ctx context.Context) ([]models.ValidValueList, error) {
	args := r.Called(ctx)
	return args.Get(0).([]models.ValidValueList), args.Error(1)
}
