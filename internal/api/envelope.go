package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The backend serializer wraps collections in a reference-preserving
// envelope: {"$id":"1","$values":[...]}. decodeValues unwraps it and never
// leaks the wrapper shape upward. A bare JSON array is accepted too, and an
// absent $values field yields an empty slice rather than an error.
func decodeValues[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []T{}, nil
	}
	if trimmed[0] == '[' {
		var out []T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("decode collection: %w", err)
		}
		return out, nil
	}
	var env struct {
		Values []T `json:"$values"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Values == nil {
		return []T{}, nil
	}
	return env.Values, nil
}
