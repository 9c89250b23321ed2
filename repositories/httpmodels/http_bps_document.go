package httpmodels

import (
	"time"

	"github.com/checkmarble/caseview-backend/models"
)

type HTTPBpsDocument struct {
	Id          string    `json:"id"`
	DocumentKey string    `json:"documentKey"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	UserId      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func AdaptBpsDocument(d HTTPBpsDocument) models.Document {
	return models.Document{
		Id:          d.Id,
		DocumentKey: d.DocumentKey,
		Name:        d.Name,
		Type:        d.Type,
		UserId:      d.UserId,
		CreatedAt:   d.CreatedAt,
	}
}
