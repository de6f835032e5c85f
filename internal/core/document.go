// AngelaMos | 2026
// document.go

package core

import (
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
)

// ScanDocument decodes a JSONB column value into dest. A NULL column leaves
// dest untouched.
func ScanDocument(src any, dest any) error {
	var data []byte

	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan document: unsupported type %T", src)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("scan document: %w", err)
	}

	return nil
}

// DocumentValue encodes v for a JSONB column.
func DocumentValue(v any) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return string(data), nil
}
