package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Nested marketplace records (profiles, service offerings, pricing and so on)
// are stored as JSONB columns. Every such type implements driver.Valuer and
// sql.Scanner through these two helpers.

func jsonbValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func jsonbScan(dst interface{}, value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("jsonb scan: unsupported type %T", value)
	}

	return json.Unmarshal(data, dst)
}
