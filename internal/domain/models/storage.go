package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StorageSettings is the free-form key/value payload of a storage backend,
// stored as jsonb.
type StorageSettings map[string]string

func (s StorageSettings) Value() (driver.Value, error) {
	if s == nil {
		return []byte("{}"), nil
	}

	return json.Marshal(s)
}

func (s *StorageSettings) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	default:
		return fmt.Errorf("unsupported type %T for storage settings", src)
	}
}

type StorageConfig struct {
	ID        string          `json:"id" db:"id"`
	Type      string          `json:"type" db:"type"`
	Name      string          `json:"name" db:"name"`
	Config    StorageSettings `json:"config" db:"config"`
	IsActive  bool            `json:"is_active" db:"is_active"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

type CreateStorageConfig struct {
	Type     string          `json:"type" validate:"required,oneof=s3 ftp http local"`
	Name     string          `json:"name" validate:"required"`
	Config   StorageSettings `json:"config"`
	IsActive bool            `json:"is_active"`
}

// UpdateStorageConfig carries a partial change set; nil fields are left
// unchanged.
type UpdateStorageConfig struct {
	Type     *string         `json:"type" validate:"omitempty,oneof=s3 ftp http local"`
	Name     *string         `json:"name"`
	Config   StorageSettings `json:"config"`
	IsActive *bool           `json:"is_active"`
}

type ConnectionTest struct {
	Type   string          `json:"type" validate:"required,oneof=s3 ftp http local"`
	Config StorageSettings `json:"config"`
}

type ConnectionTestResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
