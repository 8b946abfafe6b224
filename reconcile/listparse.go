package reconcile

import (
	"encoding/json"
	"fmt"
)

// ParseListLenient decodes a form field that may arrive as a JSON array
// string. A decode failure or a non-array result degrades to treating the
// raw value as a single-element list; it never hard-fails. An empty value
// yields an empty list.
func ParseListLenient(raw string) []string {
	if raw == "" {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return list
	}

	// Not a string array. A JSON scalar still counts as a one-element list,
	// as does plain unquoted text.
	var single string
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		return []string{single}
	}
	return []string{raw}
}

// ParseListStrict decodes a form field that must be a JSON array of strings.
// Unlike ParseListLenient there is no fallback: malformed input is a terminal
// validation error. An empty value yields an empty list.
func ParseListStrict(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("expected a JSON array of strings: %w", err)
	}
	return list, nil
}
