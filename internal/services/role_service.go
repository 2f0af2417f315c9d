package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/charlesng35/orgauthz/internal/models"
	"github.com/charlesng35/orgauthz/internal/permissions"
	"github.com/charlesng35/orgauthz/pkg/logger"
)

// RoleService resolves stored roles into effective grant sets.
type RoleService struct {
	db      *gorm.DB
	catalog *permissions.Catalog
}

// NewRoleService constructs a RoleService.
func NewRoleService(db *gorm.DB, catalog *permissions.Catalog) (*RoleService, error) {
	if db == nil {
		return nil, errors.New("role service: db is required")
	}
	if catalog == nil {
		return nil, errors.New("role service: catalog is required")
	}
	return &RoleService{db: db, catalog: catalog}, nil
}

// GetRole loads a stored role.
func (s *RoleService) GetRole(ctx context.Context, roleID string) (*models.Role, error) {
	ctx = ensureContext(ctx)

	roleID = strings.TrimSpace(roleID)
	if roleID == "" {
		return nil, ErrRoleNotFound
	}

	var role models.Role
	if err := s.db.WithContext(ctx).First(&role, "id = ?", roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("role service: load role: %w", err)
	}
	return &role, nil
}

// EffectivePermissions resolves the stored permission list of a role.
func (s *RoleService) EffectivePermissions(ctx context.Context, roleID string) (permissions.EffectiveGrantSet, error) {
	role, err := s.GetRole(ctx, roleID)
	if err != nil {
		return permissions.EffectiveGrantSet{}, err
	}

	set := s.catalog.ResolveKeys(role.Permissions)
	s.reportUnknown(set, zap.String("role_id", role.ID))
	return set, nil
}

// MemberGrants returns the grants of the member's role. Members without a role get nothing.
func (s *RoleService) MemberGrants(ctx context.Context, memberID string) (permissions.Grants, error) {
	ctx = ensureContext(ctx)

	var member models.Member
	if err := s.db.WithContext(ctx).Preload("Role").First(&member, "id = ?", strings.TrimSpace(memberID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return permissions.Grants{}, ErrMemberNotFound
		}
		return permissions.Grants{}, fmt.Errorf("role service: load member: %w", err)
	}

	if member.Role == nil {
		return permissions.Grants{}, nil
	}
	return permissions.ParseGrants(member.Role.Permissions), nil
}

// MemberPermissions resolves the effective grant set of a member.
func (s *RoleService) MemberPermissions(ctx context.Context, memberID string) (permissions.EffectiveGrantSet, error) {
	grants, err := s.MemberGrants(ctx, memberID)
	if err != nil {
		return permissions.EffectiveGrantSet{}, err
	}

	set := s.catalog.Resolve(grants)
	s.reportUnknown(set, zap.String("member_id", memberID))
	return set, nil
}

func (s *RoleService) reportUnknown(set permissions.EffectiveGrantSet, subject zap.Field) {
	if unknown := set.Unknown(); len(unknown) > 0 {
		logger.WithModule("permissions").Warn("stale role definition references unknown permissions",
			subject,
			zap.Strings("unknown_keys", unknown),
		)
	}
}
