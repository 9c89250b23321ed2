package characteristics

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToStrongTyped(t *testing.T) {
	converter := NewConverter("2006-01-02", "02/01/2006 15:04")
	ctx := context.Background()

	tests := []struct {
		name     string
		value    any
		dataType string
		expected any
	}{
		{name: "nil stays nil", value: nil, dataType: DataTypeNumeric, expected: nil},
		{name: "integer", value: json.Number("0042"), dataType: DataTypeNumericInteger, expected: json.Number("42")},
		{name: "big integer", value: "123456789012345678901234567890", dataType: DataTypeNumericInteger,
			expected: json.Number("123456789012345678901234567890")},
		{name: "decimal keeps scale", value: json.Number("12.50"), dataType: DataTypeNumeric, expected: json.Number("12.50")},
		{name: "big decimal from string", value: "3.14", dataType: DataTypeBigDecimal, expected: json.Number("3.14")},
		{name: "boolean true", value: "TRUE", dataType: DataTypeBoolean, expected: true},
		{name: "boolean anything else", value: "yes", dataType: DataTypeBoolean, expected: false},
		{name: "date reformatted at midnight utc", value: "2024-03-01", dataType: DataTypeDate, expected: "01/03/2024 00:00"},
		{name: "string untouched", value: "abc", dataType: DataTypeString, expected: "abc"},
		{name: "unknown type untouched", value: json.Number("1"), dataType: "Custom", expected: json.Number("1")},
		{name: "invalid integer returned raw", value: "abc", dataType: DataTypeNumericInteger, expected: "abc"},
		{name: "invalid decimal returned raw", value: "1,5", dataType: DataTypeNumeric, expected: "1,5"},
		{name: "invalid date returned raw", value: "01/03/2024", dataType: DataTypeDate, expected: "01/03/2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, converter.ToStrongTyped(ctx, tt.value, tt.dataType))
		})
	}
}
