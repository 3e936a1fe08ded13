package models

import "time"

// Segment is one presumed recorded clip, spanning one recording interval.
// Segments are materialized from a camera's policy on demand and never
// persisted; the id is a deterministic function of camera id and start time.
type Segment struct {
	ID          string    `json:"id"`
	CameraID    string    `json:"camera_id"`
	Timestamp   time.Time `json:"timestamp"`
	Duration    int       `json:"duration"`
	FilePath    string    `json:"file_path,omitempty"`
	StorageType string    `json:"storage_type,omitempty"`
}
