package permissions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestNewCatalogPreservesCategoryOrder(t *testing.T) {
	catalog, err := NewCatalog(
		Category{ID: "tasks", Name: "Tasks", Permissions: []Permission{
			{Key: "tasks.view"},
			{Key: "tasks.edit_any", DependsOn: []string{"tasks.view"}},
		}},
		Category{ID: "contacts", Name: "Contacts", Permissions: []Permission{{Key: "contacts.view"}}},
	)
	require.NoError(t, err)

	cats := catalog.Categories()
	require.Len(t, cats, 2)
	require.Equal(t, "tasks", cats[0].ID)
	require.Equal(t, "contacts", cats[1].ID)
	require.Equal(t, "tasks.view", cats[0].Permissions[0].Key)
	require.Equal(t, "tasks", cats[0].Permissions[1].Category)
	require.Equal(t, []string{"contacts.view", "tasks.edit_any", "tasks.view"}, catalog.Keys())
}

func TestNewCatalogRejectsDuplicateKeysAcrossCategories(t *testing.T) {
	_, err := NewCatalog(
		Category{ID: "tasks", Permissions: []Permission{{Key: "tasks.view"}}},
		Category{ID: "tasks2", Permissions: []Permission{{Key: "tasks2.view"}}},
		Category{ID: "tasks", Permissions: []Permission{{Key: "tasks.view"}}},
	)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidPermission))

	_, err = NewCatalog(
		Category{ID: "tasks", Permissions: []Permission{{Key: "tasks.view"}, {Key: "tasks.view"}}},
	)
	require.ErrorIs(t, err, ErrDuplicatePermission)
}

func TestNewCatalogAggregatesConfigurationErrors(t *testing.T) {
	_, err := NewCatalog(
		Category{ID: "tasks", Permissions: []Permission{
			{Key: ""},
			{Key: "contacts.view"},
			{Key: "tasks.edit", DependsOn: []string{"tasks.missing"}},
		}},
	)
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 3)
	require.ErrorIs(t, err, ErrInvalidPermission)
	require.ErrorIs(t, err, ErrUnknownPermission)
	require.ErrorContains(t, err, "tasks.edit depends on tasks.missing")
}

func TestNewCatalogRejectsSelfDependency(t *testing.T) {
	_, err := NewCatalog(Category{ID: "tasks", Permissions: []Permission{
		{Key: "tasks.view", DependsOn: []string{"tasks.view"}},
	}})
	require.ErrorIs(t, err, ErrCircularDependency)
}

func TestCatalogGetReturnsCopy(t *testing.T) {
	catalog := Default()

	perm, ok := catalog.Get("tasks.edit_any")
	require.True(t, ok)
	require.Equal(t, "tasks", perm.Category)
	require.Equal(t, []string{"tasks.edit_own"}, perm.DependsOn)

	perm.DependsOn[0] = "mutated"
	again, _ := catalog.Get("tasks.edit_any")
	require.Equal(t, []string{"tasks.edit_own"}, again.DependsOn)

	_, ok = catalog.Get("tasks.fly")
	require.False(t, ok)
}

func TestCatalogHasTrimsLikeGet(t *testing.T) {
	catalog := Default()

	require.True(t, catalog.Has(" tasks.view "))
	_, ok := catalog.Get(" tasks.view ")
	require.True(t, ok)
	require.False(t, catalog.Has(" "))
}

func TestDefaultCatalogIsValid(t *testing.T) {
	_, err := NewCatalog(coreCategories()...)
	require.NoError(t, err)
	require.Greater(t, Default().Len(), 30)
}
