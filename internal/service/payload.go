package service

import (
	"encoding/json"
	"fmt"
)

// overlayPayload applies a changed-fields-only delta object on top of a base
// payload object. Top-level keys in delta win; keys only present in base are
// preserved. An empty base is treated as an empty object.
func overlayPayload(base, delta json.RawMessage) (json.RawMessage, error) {
	merged := make(map[string]json.RawMessage)

	if len(base) > 0 {
		if err := json.Unmarshal(base, &merged); err != nil {
			return nil, fmt.Errorf("decode base payload: %w", err)
		}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(delta, &fields); err != nil {
		return nil, fmt.Errorf("decode delta payload: %w", err)
	}
	for k, v := range fields {
		merged[k] = v
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encode merged payload: %w", err)
	}
	return out, nil
}
