package models

import (
	"time"

	"gorm.io/datatypes"
)

// Permission is the persisted copy of a catalog entry, kept for reporting and foreign tooling.
// The in-memory catalog remains the source of truth.
type Permission struct {
	Key         string                      `gorm:"column:permission_key;primaryKey;size:128" json:"key"`
	Category    string                      `gorm:"not null;index;size:64" json:"category"`
	Name        string                      `gorm:"not null" json:"name"`
	Description string                      `json:"description"`
	DependsOn   datatypes.JSONSlice[string] `json:"depends_on"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
