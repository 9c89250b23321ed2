package dto

import (
	"mime/multipart"
	"time"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/pure_utils"
)

type PostCommentForm struct {
	Comment     string                  `form:"comment"`
	Attachments []*multipart.FileHeader `form:"attachments[]"`
}

type AttachmentMetaDto struct {
	Id       string `json:"id"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
	FileType string `json:"file_type"`
}

func AdaptAttachmentMetaDto(a models.AttachmentMeta) AttachmentMetaDto {
	return AttachmentMetaDto{Id: a.Id, FileName: a.FileName, FileSize: a.FileSize, FileType: a.FileType}
}

type InvalidAttachmentDto struct {
	FileName    string `json:"file_name"`
	ErrorCode   string `json:"error_code"`
	Description string `json:"description"`
}

func AdaptInvalidAttachmentDto(a models.InvalidAttachmentMeta) InvalidAttachmentDto {
	return InvalidAttachmentDto{FileName: a.FileName, ErrorCode: string(a.Code), Description: a.Description}
}

type CommentDto struct {
	Id               string              `json:"id"`
	BusinessKey      string              `json:"business_key"`
	Content          string              `json:"content"`
	UserId           string              `json:"user_id"`
	CreatedAt        time.Time           `json:"created_at"`
	ValidAttachments []AttachmentMetaDto `json:"valid_attachments"`
}

func AdaptCommentDto(c models.Comment) CommentDto {
	return CommentDto{
		Id:               c.Id,
		BusinessKey:      c.BusinessKey,
		Content:          c.Content,
		UserId:           c.UserId,
		CreatedAt:        c.CreatedAt,
		ValidAttachments: pure_utils.Map(c.ValidAttachments, AdaptAttachmentMetaDto),
	}
}

type CreatedCommentDto struct {
	CommentDto
	InvalidAttachments []InvalidAttachmentDto `json:"invalid_attachments"`
}

func AdaptCreatedCommentDto(c models.CreatedComment) CreatedCommentDto {
	return CreatedCommentDto{
		CommentDto:         AdaptCommentDto(c.Comment),
		InvalidAttachments: pure_utils.Map(c.InvalidAttachments, AdaptInvalidAttachmentDto),
	}
}
