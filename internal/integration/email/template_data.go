package email

import (
	"encoding/json"
	"fmt"
)

// Template data is stored as a JSON object on the queue row. Jobs go through
// a struct with json tags on the way in and on the way out, so the keys stay
// in one place.

func encodeTemplateData(data interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode template data: %w", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to encode template data: %w", err)
	}
	return out, nil
}

func decodeTemplateData(data map[string]interface{}, target interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to decode template data: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to decode template data: %w", err)
	}
	return nil
}
