package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

var (
	// ErrNoJSON means the reply holds no bracketed span of the wanted kind.
	ErrNoJSON = errors.New("no json found in llm response")
	// ErrInvalidJSON means the span was found but does not parse.
	ErrInvalidJSON = errors.New("invalid json in llm response")
)

// ExtractJSONObject returns the span from the first '{' to the last '}'.
// Models often wrap the object in prose or code fences.
func ExtractJSONObject(raw string) (string, error) {
	return extractSpan(raw, "{", "}")
}

// ExtractJSONArray returns the span from the first '[' to the last ']'.
func ExtractJSONArray(raw string) (string, error) {
	return extractSpan(raw, "[", "]")
}

// DecodeObject extracts the object span from raw and unmarshals it into v.
func DecodeObject(raw string, v any) error {
	span, err := ExtractJSONObject(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(span), v); err != nil {
		return errors.Join(ErrInvalidJSON, err)
	}
	return nil
}

// DecodeArray extracts the array span from raw and unmarshals it into v.
func DecodeArray(raw string, v any) error {
	span, err := ExtractJSONArray(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(span), v); err != nil {
		return errors.Join(ErrInvalidJSON, err)
	}
	return nil
}

func extractSpan(raw, open, close string) (string, error) {
	payload := strings.TrimSpace(raw)
	if payload == "" {
		return "", ErrNoJSON
	}
	if strings.HasPrefix(payload, open) && json.Valid([]byte(payload)) {
		return payload, nil
	}

	start := strings.Index(payload, open)
	end := strings.LastIndex(payload, close)
	if start == -1 || end == -1 || end <= start {
		return "", ErrNoJSON
	}

	candidate := payload[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", ErrInvalidJSON
	}
	return candidate, nil
}
