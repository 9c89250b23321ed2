package api

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/checkmarble/caseview-backend/dto"
	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/usecases"
)

func readAttachment(header *multipart.FileHeader) (models.Attachment, error) {
	file, err := header.Open()
	if err != nil {
		return models.Attachment{}, errors.Wrapf(err, "could not open attachment %s", header.Filename)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.Attachment{}, errors.Wrapf(err, "could not read attachment %s", header.Filename)
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}
	return models.Attachment{
		FileName:    header.Filename,
		ContentType: contentType,
		Content:     content,
	}, nil
}

func handlePostComment(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri dto.CaseviewUri
		if err := c.ShouldBindUri(&uri); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		var form dto.PostCommentForm
		if err := c.ShouldBind(&form); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		attachments := make([]models.Attachment, 0, len(form.Attachments))
		for _, header := range form.Attachments {
			attachment, err := readAttachment(header)
			if err != nil {
				presentError(ctx, c, errors.Mark(err, models.BadParameterError))
				return
			}
			attachments = append(attachments, attachment)
		}

		usecase := usecasesWithCreds(ctx, uc).NewCommentUsecase()
		comment, err := usecase.PostCommentWithAttachments(ctx, uri.CaseviewId, form.Comment, attachments)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusCreated, dto.AdaptCreatedCommentDto(comment))
	}
}
