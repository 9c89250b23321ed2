package characteristics

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/checkmarble/caseview-backend/utils"
)

const (
	DataTypeNumericInteger = "NumericInteger"
	DataTypeNumeric        = "Numeric"
	DataTypeBigDecimal     = "BigDecimal"
	DataTypeBoolean        = "Boolean"
	DataTypeDate           = "Date"
	DataTypeString         = "String"
	DataTypeAny            = "Any"

	DefaultInternalDateLayout = "2006-01-02"
	DefaultOutputDateLayout   = time.RFC3339
)

// Converter gives BPS characteristic values, received loosely typed, the type their data
// definition declares. Numbers are kept as json.Number so that no precision is lost.
type Converter struct {
	InternalDateLayout string
	OutputDateLayout   string
}

func NewConverter(internalDateLayout, outputDateLayout string) Converter {
	if internalDateLayout == "" {
		internalDateLayout = DefaultInternalDateLayout
	}
	if outputDateLayout == "" {
		outputDateLayout = DefaultOutputDateLayout
	}
	return Converter{InternalDateLayout: internalDateLayout, OutputDateLayout: outputDateLayout}
}

// ToStrongTyped never fails: a value that cannot be converted is logged and returned as is.
func (c Converter) ToStrongTyped(ctx context.Context, value any, dataType string) any {
	if value == nil {
		return nil
	}
	converted, err := c.convert(fmt.Sprint(value), dataType, value)
	if err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx,
			fmt.Sprintf("Unable to convert value [%v] to data type [%s]", value, dataType),
			"error", err.Error())
		return value
	}
	return converted
}

func (c Converter) convert(s, dataType string, raw any) (any, error) {
	switch dataType {
	case DataTypeNumericInteger:
		i, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, errors.Newf("%q is not an integer", s)
		}
		return json.Number(i.String()), nil
	case DataTypeNumeric, DataTypeBigDecimal:
		var n json.Number
		if err := json.Unmarshal([]byte(s), &n); err != nil {
			return nil, errors.Newf("%q is not a decimal number", s)
		}
		return n, nil
	case DataTypeBoolean:
		return strings.EqualFold(s, "true"), nil
	case DataTypeDate:
		d, err := time.ParseInLocation(c.InternalDateLayout, s, time.UTC)
		if err != nil {
			return nil, errors.Wrapf(err, "%q is not a date", s)
		}
		y, m, day := d.Date()
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC).Format(c.OutputDateLayout), nil
	default:
		return raw, nil
	}
}
