package httpmodels

import (
	"bytes"
	"encoding/json"
)

// HTTPBpsResponse is the envelope wrapping every BPS json payload.
type HTTPBpsResponse[T any] struct {
	Data    *T     `json:"data"`
	Message string `json:"message,omitempty"`
}

type HTTPBpsError struct {
	Message *string `json:"message,omitempty"`
	Code    *string `json:"code,omitempty"`
}

// decodeValue decodes a raw json value keeping numbers as json.Number, so that they can
// be compared and converted without losing precision.
func decodeValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var out any
	if err := decoder.Decode(&out); err != nil {
		return string(raw)
	}
	return out
}
