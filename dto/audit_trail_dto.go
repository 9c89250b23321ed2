package dto

import (
	"time"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/pure_utils"
)

type AuditTrailDto struct {
	Id          string    `json:"id"`
	BusinessKey string    `json:"business_key"`
	ServiceId   string    `json:"service_id"`
	Type        string    `json:"type"`
	UserId      string    `json:"user_id"`
	Completed   time.Time `json:"completed"`
}

func AdaptAuditTrailDto(r models.HistoryRecord) AuditTrailDto {
	return AuditTrailDto{
		Id:          r.Id,
		BusinessKey: r.BusinessKey,
		ServiceId:   r.ServiceId,
		Type:        string(r.Type),
		UserId:      r.UserId,
		Completed:   r.Completed,
	}
}

type AuditTrailCharacteristicDto struct {
	Key      string `json:"key"`
	Value    any    `json:"value"`
	DataType string `json:"data_type"`
}

type AuditTrailDetailsDto struct {
	HistoryId       string                        `json:"history_id"`
	Characteristics []AuditTrailCharacteristicDto `json:"characteristics"`
}

func AdaptAuditTrailDetailsDto(d models.HistoryDetails) AuditTrailDetailsDto {
	return AuditTrailDetailsDto{
		HistoryId: d.HistoryId,
		Characteristics: pure_utils.Map(d.Characteristics, func(c models.HistoryCharacteristic) AuditTrailCharacteristicDto {
			return AuditTrailCharacteristicDto{Key: c.Key, Value: c.Value, DataType: c.DataType}
		}),
	}
}
