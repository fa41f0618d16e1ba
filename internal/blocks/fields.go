package blocks

import (
	"encoding/json"
	"fmt"
)

// decodeFields unpacks a raw fields bag into a typed fields struct.
func decodeFields(fields map[string]any, out any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encoding fields: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding fields: %w", err)
	}
	return nil
}

// encodeFields packs a typed fields struct back into a raw fields bag.
func encodeFields(in any) (map[string]any, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encoding fields: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding fields: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// isEmptyValue reports whether a card property value counts as unset: nil,
// empty string, or empty list.
func isEmptyValue(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return typed == ""
	case []any:
		return len(typed) == 0
	case []string:
		return len(typed) == 0
	default:
		return false
	}
}

// valueEquals reports whether a card property value matches a filter value.
// Multi-value properties match when any element equals the candidate.
func valueEquals(value any, candidate string) bool {
	switch typed := value.(type) {
	case string:
		return typed == candidate
	case []any:
		for _, v := range typed {
			if s, ok := v.(string); ok && s == candidate {
				return true
			}
		}
		return false
	case []string:
		for _, s := range typed {
			if s == candidate {
				return true
			}
		}
		return false
	default:
		return false
	}
}
