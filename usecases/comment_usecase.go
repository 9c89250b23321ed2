package usecases

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/pure_utils"
	"github.com/checkmarble/caseview-backend/usecases/security"
	"github.com/checkmarble/caseview-backend/utils"
)

const (
	DefaultCommentContentSizeMax = 2000
	defaultScanConcurrency       = 4
)

type NoteRepository interface {
	PostNote(ctx context.Context, input models.PostNoteInput) (models.PostNoteResult, error)
}

type AttachmentScanner interface {
	Scan(ctx context.Context, attachment models.Attachment) (models.ScanResult, error)
}

type CommentUsecase struct {
	enforceSecurity security.EnforceSecurityCaseview
	credentials     models.Credentials
	repository      NoteRepository
	scanner         AttachmentScanner
	contentSizeMax  int
	scanConcurrency int
}

// PostCommentWithAttachments posts the comment once, with the attachments that passed the
// permission and virus checks. Attachments refused locally or by BPS are reported, not fatal.
func (usecase *CommentUsecase) PostCommentWithAttachments(
	ctx context.Context,
	caseviewId string,
	text string,
	attachments []models.Attachment,
) (models.CreatedComment, error) {
	if err := usecase.enforceSecurity.CreateComment(); err != nil {
		return models.CreatedComment{}, err
	}
	if pure_utils.IsBlank(text) {
		return models.CreatedComment{}, errors.Wrap(models.BadParameterError, "comment content is required")
	}

	ctx, span := utils.StartSpan(ctx, "CommentUsecase.PostCommentWithAttachments",
		attribute.String("caseview_id", caseviewId),
		attribute.Int("attachments", len(attachments)))
	defer span.End()
	logger := utils.LoggerFromContext(ctx)

	var (
		valid   []models.Attachment
		invalid []models.InvalidAttachmentMeta
	)
	if !usecase.enforceSecurity.CanAddAttachments() {
		if len(attachments) > 0 {
			logger.InfoContext(ctx, "attachments dropped: missing add attachment permission",
				"count", len(attachments))
		}
		for _, a := range attachments {
			invalid = append(invalid, models.InvalidAttachmentMeta{
				FileName:    a.FileName,
				Code:        models.NoAttachPermission,
				Description: models.NoAttachPermissionText,
			})
		}
	} else {
		valid, invalid = usecase.scanAttachments(ctx, attachments)
	}

	result, err := usecase.repository.PostNote(ctx, models.PostNoteInput{
		CaseviewId:   caseviewId,
		Content:      text,
		UserId:       usecase.credentials.EffectiveUserId(),
		ExternalUser: usecase.credentials.ExternalUser,
		Attachments:  valid,
	})
	if err != nil {
		return models.CreatedComment{}, errors.Wrap(err, "could not post note")
	}

	for _, refused := range result.InvalidAttachments {
		invalid = append(invalid, models.InvalidAttachmentMeta{
			FileName:    refused.FileName,
			Code:        refused.Result.ErrorCode(),
			Description: refused.Description,
		})
	}
	if len(invalid) > 0 {
		logger.InfoContext(ctx, fmt.Sprintf("%d attachment(s) not persisted", len(invalid)),
			"invalid_attachments", pure_utils.Map(invalid, models.InvalidAttachmentMeta.String))
	}

	note := result.Note
	return models.CreatedComment{
		Comment: models.Comment{
			Id:               note.Id,
			BusinessKey:      note.BusinessKey,
			Content:          pure_utils.Abbreviate(note.Content, usecase.contentSizeMax),
			UserId:           note.UserId,
			CreatedAt:        note.CreatedAt,
			ValidAttachments: note.Attachments,
		},
		InvalidAttachments: invalid,
	}, nil
}

// scanAttachments scans in parallel, both returned slices keeping the input order. A scanner
// failure makes the scan incomplete for that attachment only.
func (usecase *CommentUsecase) scanAttachments(
	ctx context.Context,
	attachments []models.Attachment,
) ([]models.Attachment, []models.InvalidAttachmentMeta) {
	results := make([]models.ScanResult, len(attachments))

	group := errgroup.Group{}
	group.SetLimit(max(usecase.scanConcurrency, 1))
	for i, attachment := range attachments {
		group.Go(func() error {
			result, err := usecase.scanner.Scan(ctx, attachment)
			if err != nil {
				utils.LoggerFromContext(ctx).WarnContext(ctx, "attachment scan failed",
					"file_name", attachment.FileName, "error", err.Error())
				result = models.ScanResult{Status: models.ScanIncomplete}
			}
			utils.MetricAttachmentScanCount.With(prometheus.Labels{"status": string(result.Status)}).Inc()
			results[i] = result
			return nil
		})
	}
	_ = group.Wait()

	valid := make([]models.Attachment, 0, len(attachments))
	var invalid []models.InvalidAttachmentMeta
	for i, attachment := range attachments {
		if results[i].Passed() {
			valid = append(valid, attachment)
			continue
		}
		invalid = append(invalid, results[i].InvalidAttachment(attachment.FileName))
	}
	return valid, invalid
}

// commentsFromNotes drops the notes missing a mandatory field, and hides the attachments of the
// others when the caller may not view them.
func commentsFromNotes(ctx context.Context, notes []models.BpsNote, canViewAttachments bool, contentSizeMax int) []models.Comment {
	logger := utils.LoggerFromContext(ctx)
	comments := make([]models.Comment, 0, len(notes))
	for _, note := range notes {
		if pure_utils.IsBlank(note.UserId) || pure_utils.IsBlank(note.BusinessKey) ||
			pure_utils.IsBlank(note.Id) || pure_utils.IsBlank(note.Content) {
			logger.WarnContext(ctx, "Filtering out non-compliant BPS Note", "note_id", note.Id,
				"business_key", note.BusinessKey)
			continue
		}

		attachments := note.Attachments
		if len(attachments) > 0 && !canViewAttachments {
			logger.DebugContext(ctx, "Valid attachment(s) exist but no permission to view, return empty attachment.")
			attachments = []models.AttachmentMeta{}
		}
		if attachments == nil {
			attachments = []models.AttachmentMeta{}
		}

		comments = append(comments, models.Comment{
			Id:               note.Id,
			BusinessKey:      note.BusinessKey,
			Content:          pure_utils.Abbreviate(note.Content, contentSizeMax),
			UserId:           note.UserId,
			CreatedAt:        note.CreatedAt,
			ValidAttachments: attachments,
		})
	}
	return comments
}
