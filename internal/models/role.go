package models

import "gorm.io/datatypes"

// Role stores a named permission bundle. Permissions may hold the "*" wildcard.
type Role struct {
	BaseModel

	Name        string                      `gorm:"uniqueIndex;not null;size:128" json:"name"`
	Description string                      `json:"description"`
	Color       string                      `gorm:"size:16" json:"color"`
	Icon        string                      `gorm:"size:64" json:"icon"`
	IsTemplate  bool                        `gorm:"default:false;index" json:"is_template"`
	Permissions datatypes.JSONSlice[string] `json:"permissions"`
}
