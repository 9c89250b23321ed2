package httpmodels

import (
	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/pure_utils"
)

type HTTPBpsCharacteristicMeta struct {
	Key         string `json:"key"`
	DataType    string `json:"dataType"`
	Description string `json:"description"`
	Format      string `json:"format"`
}

type HTTPBpsDataDefinition struct {
	ServiceId        string                      `json:"serviceId"`
	DateFormat       string                      `json:"dateFormat"`
	InputDefinition  []HTTPBpsCharacteristicMeta `json:"inputDefinition"`
	OutputDefinition []HTTPBpsCharacteristicMeta `json:"outputDefinition"`
}

func adaptBpsCharacteristicMeta(c HTTPBpsCharacteristicMeta) models.CharacteristicDefinition {
	return models.CharacteristicDefinition{
		Key: c.Key,
		Type: models.CharacteristicType{
			DataType:    c.DataType,
			Description: c.Description,
			Format:      c.Format,
		},
	}
}

func AdaptBpsDataDefinition(d HTTPBpsDataDefinition) models.UsecaseServiceDataDefinition {
	return models.UsecaseServiceDataDefinition{
		ServiceId:        d.ServiceId,
		DateFormat:       d.DateFormat,
		InputDefinition:  pure_utils.Map(d.InputDefinition, adaptBpsCharacteristicMeta),
		OutputDefinition: pure_utils.Map(d.OutputDefinition, adaptBpsCharacteristicMeta),
	}
}
