package httpmodels

import (
	"encoding/json"
	"time"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/pure_utils"
)

type HTTPBpsCharacteristicChange struct {
	CurrentValue  json.RawMessage `json:"currentValue"`
	PreviousValue json.RawMessage `json:"previousValue"`
	DataType      string          `json:"dataType"`
}

type HTTPBpsHistory struct {
	HistoryId       string                                 `json:"historyId"`
	BusinessKey     string                                 `json:"businessKey"`
	ServiceId       string                                 `json:"serviceId"`
	BundleType      string                                 `json:"bundleType"`
	UserId          string                                 `json:"userId"`
	Completed       time.Time                              `json:"completed"`
	Characteristics map[string]HTTPBpsCharacteristicChange `json:"characteristics"`
}

type HTTPBpsHistoryCharacteristic struct {
	Key      string          `json:"key"`
	Value    json.RawMessage `json:"value"`
	DataType string          `json:"dataType"`
}

type HTTPBpsHistoryDetails struct {
	HistoryId       string                         `json:"historyId"`
	Characteristics []HTTPBpsHistoryCharacteristic `json:"characteristics"`
}

func AdaptBpsHistory(h HTTPBpsHistory) models.HistoryRecord {
	characteristics := make(map[string]models.CharacteristicChange, len(h.Characteristics))
	for key, c := range h.Characteristics {
		characteristics[key] = models.CharacteristicChange{
			CurrentValue:  decodeValue(c.CurrentValue),
			PreviousValue: decodeValue(c.PreviousValue),
			DataType:      c.DataType,
		}
	}
	return models.HistoryRecord{
		Id:              h.HistoryId,
		BusinessKey:     h.BusinessKey,
		ServiceId:       h.ServiceId,
		Type:            models.BundleTypeFrom(h.BundleType),
		UserId:          h.UserId,
		Completed:       h.Completed,
		Characteristics: characteristics,
	}
}

func AdaptBpsHistoryDetails(d HTTPBpsHistoryDetails) models.HistoryDetails {
	return models.HistoryDetails{
		HistoryId: d.HistoryId,
		Characteristics: pure_utils.Map(d.Characteristics, func(c HTTPBpsHistoryCharacteristic) models.HistoryCharacteristic {
			return models.HistoryCharacteristic{
				Key:      c.Key,
				Value:    decodeValue(c.Value),
				DataType: c.DataType,
			}
		}),
	}
}
