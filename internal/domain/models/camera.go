package models

import "time"

const (
	StatusOnline  = "online"
	StatusOffline = "offline"

	DefaultPort                 = 554
	DefaultRecordingIntervalMin = 10
	DefaultRetentionDays        = 3
)

type Camera struct {
	ID                   string    `json:"id" db:"id"`
	Name                 string    `json:"name" db:"name"`
	IPAddress            string    `json:"ip_address" db:"ip_address"`
	Port                 int       `json:"port" db:"port"`
	StreamURL            string    `json:"stream_url" db:"stream_url"`
	Status               string    `json:"status" db:"status"`
	GroupName            *string   `json:"group_name" db:"group_name"`
	RecordingIntervalMin int       `json:"recording_interval_min" db:"recording_interval_min"`
	RetentionDays        int       `json:"retention_days" db:"retention_days"`
	AddedAt              time.Time `json:"added_at" db:"added_at"`
}

type CreateCamera struct {
	Name                 string `json:"name" validate:"required"`
	IPAddress            string `json:"ip_address" validate:"required"`
	Port                 int    `json:"port" validate:"omitempty,gt=0,lte=65535"`
	StreamURL            string `json:"stream_url"`
	GroupName            string `json:"group_name"`
	RecordingIntervalMin int    `json:"recording_interval_min" validate:"omitempty,gt=0"`
	RetentionDays        int    `json:"retention_days" validate:"omitempty,gt=0"`
}

// UpdateCamera carries a partial change set. A nil field is left unchanged;
// a pointer to the zero value overwrites. GroupName set to "" clears the
// camera's group.
type UpdateCamera struct {
	Name                 *string `json:"name"`
	GroupName            *string `json:"group_name"`
	Status               *string `json:"status" validate:"omitempty,oneof=online offline"`
	RecordingIntervalMin *int    `json:"recording_interval_min" validate:"omitempty,gt=0"`
	RetentionDays        *int    `json:"retention_days" validate:"omitempty,gt=0"`
}
