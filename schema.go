package discordauth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// fields is a decoded JSON object awaiting validation against a model schema.
// Lookups report a *SchemaViolation naming the field on any mismatch.
type fields struct {
	model string
	data  map[string]any
}

// decodeFields decodes body as a JSON object. Numbers are kept as json.Number
// so large integers survive intact.
func decodeFields(model string, body []byte) (*fields, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, &SchemaViolation{Model: model, Reason: fmt.Sprintf("body is not a JSON object: %v", err)}
	}
	if data == nil {
		return nil, &SchemaViolation{Model: model, Reason: "body is null"}
	}
	return &fields{model: model, data: data}, nil
}

func (f *fields) violation(name, reason string) error {
	return &SchemaViolation{Model: f.model, Field: name, Reason: reason}
}

// lookup returns the raw value and whether it is present and non-null.
func (f *fields) lookup(name string) (any, bool) {
	v, ok := f.data[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (f *fields) requiredString(name string) (string, error) {
	v, ok := f.lookup(name)
	if !ok {
		return "", f.violation(name, "is required")
	}
	s, ok := v.(string)
	if !ok {
		return "", f.violation(name, fmt.Sprintf("must be a string, got %s", jsonType(v)))
	}
	return s, nil
}

func (f *fields) optionalString(name string) (*string, error) {
	if _, ok := f.lookup(name); !ok {
		return nil, nil
	}
	s, err := f.requiredString(name)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (f *fields) requiredInt(name string) (int64, error) {
	v, ok := f.lookup(name)
	if !ok {
		return 0, f.violation(name, "is required")
	}
	n, ok := toInt64(v)
	if !ok {
		return 0, f.violation(name, fmt.Sprintf("must be an integer, got %s", jsonType(v)))
	}
	return n, nil
}

func (f *fields) optionalInt(name string) (*int64, error) {
	if _, ok := f.lookup(name); !ok {
		return nil, nil
	}
	n, err := f.requiredInt(name)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (f *fields) requiredBool(name string) (bool, error) {
	v, ok := f.lookup(name)
	if !ok {
		return false, f.violation(name, "is required")
	}
	b, ok := v.(bool)
	if !ok {
		return false, f.violation(name, fmt.Sprintf("must be a boolean, got %s", jsonType(v)))
	}
	return b, nil
}

func (f *fields) optionalBool(name string) (*bool, error) {
	if _, ok := f.lookup(name); !ok {
		return nil, nil
	}
	b, err := f.requiredBool(name)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// toInt64 accepts the integer representations produced by encoding/json
// (json.Number, float64) and by oauth2's form-encoded token parsing (int64).
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || n > math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

func jsonType(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, int64, int:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
