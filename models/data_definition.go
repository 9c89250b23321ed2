package models

import "regexp"

// ArrayIndexPattern matches the "[n]" markers of repeated characteristics, eg "applicant[0].name".
var ArrayIndexPattern = regexp.MustCompile(`\[\d+\]`)

type CharacteristicType struct {
	DataType    string
	Description string
	Format      string
}

type CharacteristicDefinition struct {
	Key  string
	Type CharacteristicType
}

type UsecaseServiceDataDefinition struct {
	ServiceId        string
	DateFormat       string
	InputDefinition  []CharacteristicDefinition
	OutputDefinition []CharacteristicDefinition
}

// Characteristics returns the input definition followed by the output definition, in declaration order.
func (d UsecaseServiceDataDefinition) Characteristics() []CharacteristicDefinition {
	out := make([]CharacteristicDefinition, 0, len(d.InputDefinition)+len(d.OutputDefinition))
	out = append(out, d.InputDefinition...)
	return append(out, d.OutputDefinition...)
}

type MergedCharacteristicMetaData struct {
	DataDefinitions map[string]CharacteristicType
	DateFormat      string
}

func FlatCharacteristicKey(key string) string {
	return ArrayIndexPattern.ReplaceAllString(key, "")
}
