package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/charlesng35/orgauthz/internal/hierarchy"
	"github.com/charlesng35/orgauthz/internal/models"
)

// MemberDirectory implements hierarchy.Directory over the members table.
type MemberDirectory struct {
	db *gorm.DB
}

// NewMemberDirectory constructs a MemberDirectory using the provided database handle.
func NewMemberDirectory(db *gorm.DB) (*MemberDirectory, error) {
	if db == nil {
		return nil, errors.New("member directory: db is required")
	}
	return &MemberDirectory{db: db}, nil
}

// Member loads a member with its role name.
func (d *MemberDirectory) Member(ctx context.Context, id string) (*hierarchy.Member, error) {
	ctx = ensureContext(ctx)

	var record models.Member
	if err := d.db.WithContext(ctx).Preload("Role").First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, hierarchy.ErrMemberNotFound
		}
		return nil, fmt.Errorf("member directory: load member: %w", err)
	}

	member := &hierarchy.Member{
		ID:         record.ID,
		Name:       record.Name,
		Department: record.Department,
	}
	if record.Role != nil {
		member.Role = record.Role.Name
	}
	if record.ManagerID != nil {
		member.ManagerID = *record.ManagerID
	}
	return member, nil
}

// DirectReports returns the ids of members managed by managerID.
func (d *MemberDirectory) DirectReports(ctx context.Context, managerID string) ([]string, error) {
	ctx = ensureContext(ctx)

	var ids []string
	if err := d.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("manager_id = ?", managerID).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("member directory: load direct reports: %w", err)
	}
	return ids, nil
}
