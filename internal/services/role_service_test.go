package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/orgauthz/internal/permissions"
)

func newRoleService(t *testing.T) *RoleService {
	t.Helper()
	svc, err := NewRoleService(seedOrg(t), permissions.Default())
	require.NoError(t, err)
	return svc
}

func TestNewRoleServiceValidatesDependencies(t *testing.T) {
	_, err := NewRoleService(nil, permissions.Default())
	require.Error(t, err)
	_, err = NewRoleService(seedOrg(t), nil)
	require.Error(t, err)
}

func TestRoleServiceEffectivePermissionsForWildcardRole(t *testing.T) {
	svc := newRoleService(t)

	set, err := svc.EffectivePermissions(context.Background(), "administrator")
	require.NoError(t, err)
	require.Equal(t, permissions.Default().Keys(), set.Effective())
}

func TestRoleServiceEffectivePermissionsReportsUnknownKeys(t *testing.T) {
	svc := newRoleService(t)

	set, err := svc.EffectivePermissions(context.Background(), "stale")
	require.NoError(t, err)
	require.Equal(t, []string{"calendar.view"}, set.Unknown())
	require.True(t, set.Has("reports.view"))
}

func TestRoleServiceMissingRole(t *testing.T) {
	svc := newRoleService(t)

	_, err := svc.EffectivePermissions(context.Background(), "ghost")
	require.True(t, errors.Is(err, ErrRoleNotFound))

	_, err = svc.GetRole(context.Background(), " ")
	require.True(t, errors.Is(err, ErrRoleNotFound))
}

func TestRoleServiceMemberPermissions(t *testing.T) {
	svc := newRoleService(t)

	set, err := svc.MemberPermissions(context.Background(), "sarah")
	require.NoError(t, err)
	require.True(t, set.Has("messages.send"))
	require.True(t, set.Has("members.view"))
	require.False(t, set.Has("roles.manage"))

	set, err = svc.MemberPermissions(context.Background(), "hannah")
	require.NoError(t, err)
	require.Zero(t, set.Len(), "members without a role get nothing")

	_, err = svc.MemberPermissions(context.Background(), "ghost")
	require.True(t, errors.Is(err, ErrMemberNotFound))
}

func TestRoleServiceBacksPermissionChecker(t *testing.T) {
	svc := newRoleService(t)
	checker, err := permissions.NewChecker(permissions.Default(), svc)
	require.NoError(t, err)

	ok, err := checker.Check(context.Background(), "mike", "tasks.delete")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = checker.Check(context.Background(), "sarah", "tasks.delete")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = checker.Check(context.Background(), "admin-a", "settings.manage")
	require.NoError(t, err)
	require.True(t, ok)
}
