package settings

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// GetPath returns the raw JSON found at a dotted path inside the value stored
// under key, e.g. GetPath("editor", "font.size").
func (s *Store) GetPath(key, path string) (json.RawMessage, error) {
	var result json.RawMessage
	err := s.apply("get", false, func(doc map[string]json.RawMessage) error {
		raw, ok := doc[key]
		if !ok {
			return notFoundError("get", key)
		}
		res := gjson.GetBytes(raw, path)
		if !res.Exists() {
			return notFoundError("get", key+"."+path)
		}
		result = json.RawMessage(res.Raw)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetPath sets a dotted path inside the value stored under key. A missing key
// starts from an empty object.
func (s *Store) SetPath(key, path string, value any) error {
	return s.apply("set", true, func(doc map[string]json.RawMessage) error {
		raw, err := json.Marshal(value)
		if err != nil {
			return typeError("set", key, err)
		}

		current, ok := doc[key]
		if !ok {
			current = json.RawMessage(emptyDocument)
		}
		if parsed := gjson.ParseBytes(current); !parsed.IsObject() && !parsed.IsArray() {
			return typeError("set", key, errors.New("value is not an object or array"))
		}

		updated, err := sjson.SetRawBytes(current, path, raw)
		if err != nil {
			return typeError("set", key, fmt.Errorf("failed to set path %s: %w", path, err))
		}
		doc[key] = updated
		return nil
	})
}
