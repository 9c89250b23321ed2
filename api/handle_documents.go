package api

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/usecases"
)

func presentContent(c *gin.Context, content models.DocumentContent) {
	contentType := content.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if content.FileName != "" {
		c.Header("Content-Disposition",
			mime.FormatMediaType("attachment", map[string]string{"filename": content.FileName}))
	}
	c.Header("Content-Length", fmt.Sprint(len(content.Content)))
	c.Data(http.StatusOK, contentType, content.Content)
}

func handleGetDocumentContent(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := usecasesWithCreds(ctx, uc).NewDocumentUsecase()
		content, err := usecase.GetDocumentContent(ctx, c.Param("document_key"), c.Query("documentType"))
		if presentError(ctx, c, err) {
			return
		}

		presentContent(c, content)
	}
}

func handleGetCommentAttachment(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := usecasesWithCreds(ctx, uc).NewDocumentUsecase()
		content, err := usecase.GetNoteAttachmentContent(ctx, c.Param("comment_id"), c.Param("attachment_id"))
		if presentError(ctx, c, err) {
			return
		}

		presentContent(c, content)
	}
}
