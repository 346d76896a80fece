package jsonutil

import (
	"encoding/json"
	"fmt"
)

// FlexibleBoolValue converts a json.RawMessage to a bool, handling the 0/1
// integers that SQLite-backed exporters emit for boolean columns. Empty
// and null values are false.
func FlexibleBoolValue(raw json.RawMessage) (bool, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return false, nil
	}

	var boolVal bool
	if err := json.Unmarshal(raw, &boolVal); err == nil {
		return boolVal, nil
	}

	var numVal float64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		return numVal != 0, nil
	}

	return false, fmt.Errorf("value %s is not a boolean", string(raw))
}
