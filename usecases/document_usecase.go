package usecases

import (
	"context"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/usecases/security"
)

type DocumentRepository interface {
	GetDocumentContent(ctx context.Context, documentKey, documentType string) (models.DocumentContent, error)
	GetNoteAttachmentContent(ctx context.Context, commentId, attachmentId string) (models.DocumentContent, error)
}

type DocumentUsecase struct {
	enforceSecurity security.EnforceSecurityCaseview
	repository      DocumentRepository
}

func (usecase *DocumentUsecase) GetDocumentContent(ctx context.Context, documentKey, documentType string) (models.DocumentContent, error) {
	if err := usecase.enforceSecurity.ReadCaseview(); err != nil {
		return models.DocumentContent{}, err
	}
	return usecase.repository.GetDocumentContent(ctx, documentKey, documentType)
}

// GetNoteAttachmentContent is refused to callers who may not see attachments in the timeline.
func (usecase *DocumentUsecase) GetNoteAttachmentContent(ctx context.Context, commentId, attachmentId string) (models.DocumentContent, error) {
	if err := usecase.enforceSecurity.ReadCaseview(); err != nil {
		return models.DocumentContent{}, err
	}
	if !usecase.enforceSecurity.CanViewAttachments() {
		return models.DocumentContent{}, usecase.enforceSecurity.Permission(models.VIEW_ATTACHMENT)
	}
	return usecase.repository.GetNoteAttachmentContent(ctx, commentId, attachmentId)
}
