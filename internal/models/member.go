package models

import (
	"strings"

	"gorm.io/gorm"
)

// Member is an organization participant. ManagerID is a lookup key, not an owned relation;
// direct reports are found by querying manager_id.
type Member struct {
	BaseModel

	Name       string  `gorm:"not null" json:"name"`
	Email      string  `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Department string  `gorm:"index;size:128" json:"department"`
	RoleID     *string `gorm:"size:64;index" json:"role_id"`
	Role       *Role   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"role,omitempty"`
	ManagerID  *string `gorm:"size:64;index" json:"manager_id"`
}

// BeforeSave trims free-text fields and normalises empty references to NULL.
func (m *Member) BeforeSave(tx *gorm.DB) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	m.Department = strings.TrimSpace(m.Department)
	m.RoleID = nilIfBlank(m.RoleID)
	m.ManagerID = nilIfBlank(m.ManagerID)
	return nil
}

func nilIfBlank(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
