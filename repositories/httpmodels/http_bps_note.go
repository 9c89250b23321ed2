package httpmodels

import (
	"time"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/pure_utils"
)

type HTTPBpsAttachment struct {
	Id       string `json:"id"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	FileType string `json:"fileType"`
}

type HTTPBpsNote struct {
	Id          string              `json:"id"`
	BusinessKey string              `json:"businessKey"`
	Content     string              `json:"content"`
	UserId      string              `json:"userId"`
	CreatedAt   time.Time           `json:"createdAt"`
	Attachments []HTTPBpsAttachment `json:"attachments"`
}

type HTTPBpsInvalidAttachment struct {
	FileName    string `json:"fileName"`
	Result      string `json:"result"`
	Description string `json:"description"`
}

type HTTPBpsPostNoteResponse struct {
	Note               HTTPBpsNote                `json:"note"`
	InvalidAttachments []HTTPBpsInvalidAttachment `json:"invalidAttachments"`
}

func AdaptBpsAttachment(a HTTPBpsAttachment) models.AttachmentMeta {
	return models.AttachmentMeta{
		Id:       a.Id,
		FileName: a.FileName,
		FileSize: a.FileSize,
		FileType: a.FileType,
	}
}

func AdaptBpsNote(n HTTPBpsNote) models.BpsNote {
	return models.BpsNote{
		Id:          n.Id,
		BusinessKey: n.BusinessKey,
		Content:     n.Content,
		UserId:      n.UserId,
		CreatedAt:   n.CreatedAt,
		Attachments: pure_utils.Map(n.Attachments, AdaptBpsAttachment),
	}
}

func AdaptBpsPostNoteResponse(r HTTPBpsPostNoteResponse) models.PostNoteResult {
	return models.PostNoteResult{
		Note: AdaptBpsNote(r.Note),
		InvalidAttachments: pure_utils.Map(r.InvalidAttachments, func(a HTTPBpsInvalidAttachment) models.BpsInvalidAttachment {
			return models.BpsInvalidAttachment{
				FileName:    a.FileName,
				Result:      models.BpsAttachmentResult(a.Result),
				Description: a.Description,
			}
		}),
	}
}
