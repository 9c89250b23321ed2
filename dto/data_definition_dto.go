package dto

import (
	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/pure_utils"
)

type CharacteristicTypeDto struct {
	DataType    string `json:"data_type"`
	Description string `json:"description,omitempty"`
	Format      string `json:"format,omitempty"`
}

func AdaptCharacteristicTypeDto(t models.CharacteristicType) CharacteristicTypeDto {
	return CharacteristicTypeDto{DataType: t.DataType, Description: t.Description, Format: t.Format}
}

type CharacteristicDefinitionDto struct {
	Key string `json:"key"`
	CharacteristicTypeDto
}

func AdaptCharacteristicDefinitionDto(c models.CharacteristicDefinition) CharacteristicDefinitionDto {
	return CharacteristicDefinitionDto{Key: c.Key, CharacteristicTypeDto: AdaptCharacteristicTypeDto(c.Type)}
}

type ServiceDataDefinitionDto struct {
	ServiceId        string                        `json:"service_id"`
	DateFormat       string                        `json:"date_format,omitempty"`
	InputDefinition  []CharacteristicDefinitionDto `json:"input_definition"`
	OutputDefinition []CharacteristicDefinitionDto `json:"output_definition"`
}

func AdaptServiceDataDefinitionDto(d models.UsecaseServiceDataDefinition) ServiceDataDefinitionDto {
	return ServiceDataDefinitionDto{
		ServiceId:        d.ServiceId,
		DateFormat:       d.DateFormat,
		InputDefinition:  pure_utils.Map(d.InputDefinition, AdaptCharacteristicDefinitionDto),
		OutputDefinition: pure_utils.Map(d.OutputDefinition, AdaptCharacteristicDefinitionDto),
	}
}

type MergedDataDefinitionsDto struct {
	DataDefinitions map[string]CharacteristicTypeDto `json:"data_definitions"`
	DateFormat      string                           `json:"date_format"`
}

func AdaptMergedDataDefinitionsDto(m models.MergedCharacteristicMetaData) MergedDataDefinitionsDto {
	definitions := make(map[string]CharacteristicTypeDto, len(m.DataDefinitions))
	for key, t := range m.DataDefinitions {
		definitions[key] = AdaptCharacteristicTypeDto(t)
	}
	return MergedDataDefinitionsDto{DataDefinitions: definitions, DateFormat: m.DateFormat}
}
