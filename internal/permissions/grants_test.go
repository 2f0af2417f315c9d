package permissions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(
		Category{ID: "spaces", Name: "Spaces", Permissions: []Permission{
			{Key: "spaces.view"},
		}},
		Category{ID: "tasks", Name: "Tasks", Permissions: []Permission{
			{Key: "tasks.view", DependsOn: []string{"spaces.view"}},
			{Key: "tasks.edit_own", DependsOn: []string{"tasks.view"}},
			{Key: "tasks.edit_any", DependsOn: []string{"tasks.edit_own"}},
			{Key: "tasks.delete", DependsOn: []string{"tasks.edit_any"}},
		}},
		Category{ID: "reports", Name: "Reports", Permissions: []Permission{
			{Key: "reports.view"},
		}},
	)
	require.NoError(t, err)
	return catalog
}

func TestResolveWildcardYieldsFullCatalog(t *testing.T) {
	catalog := testCatalog(t)

	set := catalog.Resolve(AllPermissions())
	require.Equal(t, catalog.Keys(), set.Effective())
	require.Empty(t, set.Unknown())

	fromStrings := catalog.ResolveKeys([]string{"tasks.view", "*"})
	require.Equal(t, catalog.Keys(), fromStrings.Effective())
}

func TestResolveAddsTransitivePrerequisites(t *testing.T) {
	catalog := testCatalog(t)

	set := catalog.Resolve(Keys("tasks.delete"))
	require.Equal(t, []string{"spaces.view", "tasks.delete", "tasks.edit_any", "tasks.edit_own", "tasks.view"}, set.Effective())
	require.False(t, set.Has("reports.view"))

	for _, key := range set.Effective() {
		for _, dep := range catalog.Prerequisites(key) {
			require.True(t, set.Has(dep), "%s requires %s", key, dep)
		}
	}
}

func TestResolveKeepsAndFlagsUnknownKeys(t *testing.T) {
	catalog := testCatalog(t)

	set := catalog.Resolve(Keys("tasks.view", "legacy.export"))
	require.True(t, set.Has("legacy.export"))
	require.Equal(t, []string{"legacy.export"}, set.Unknown())
	require.Equal(t, []string{"legacy.export", "spaces.view", "tasks.view"}, set.Effective())
}

func TestResolveIsIdempotent(t *testing.T) {
	catalog := testCatalog(t)

	inputs := [][]string{
		nil,
		{"tasks.edit_any"},
		{"reports.view", "tasks.view", "ghost.key"},
		{"*"},
	}
	for _, input := range inputs {
		first := catalog.ResolveKeys(input)
		second := catalog.ResolveKeys(first.Effective())
		require.Equal(t, first.Effective(), second.Effective(), "input %v", input)
	}
}

func TestResolveIsOrderIndependent(t *testing.T) {
	catalog := testCatalog(t)

	a := catalog.Resolve(Keys("reports.view", "tasks.edit_own", " tasks.view "))
	b := catalog.Resolve(Keys("tasks.view", "tasks.edit_own", "reports.view", "tasks.view"))
	require.Equal(t, a.Effective(), b.Effective())
}

func TestResolveEmptyGrantsNothing(t *testing.T) {
	catalog := testCatalog(t)

	set := catalog.Resolve(Grants{})
	require.Zero(t, set.Len())
	require.False(t, IsGranted(set, "spaces.view"))
}

func TestIsGrantedIsPlainMembership(t *testing.T) {
	set := NewGrantSet("tasks.delete")
	require.True(t, IsGranted(set, "tasks.delete"))
	require.False(t, IsGranted(set, "tasks.view"))
	require.False(t, IsGranted(EffectiveGrantSet{}, "tasks.view"))
}

func TestHasAllPrerequisitesOnHandAssembledSets(t *testing.T) {
	catalog := testCatalog(t)

	partial := NewGrantSet("tasks.edit_any", "tasks.edit_own")
	require.False(t, catalog.HasAllPrerequisites(partial, "tasks.edit_any"))
	require.Equal(t, []string{"spaces.view", "tasks.view"}, catalog.MissingPrerequisites(partial, "tasks.edit_any"))

	complete := NewGrantSet("spaces.view", "tasks.view", "tasks.edit_own", "tasks.edit_any")
	require.True(t, catalog.HasAllPrerequisites(complete, "tasks.edit_any"))
	require.False(t, catalog.HasAllPrerequisites(complete, "tasks.delete"))
	require.False(t, catalog.HasAllPrerequisites(complete, ""))

	resolved := catalog.Resolve(Keys("tasks.delete"))
	for _, key := range resolved.Effective() {
		require.True(t, catalog.HasAllPrerequisites(resolved, key))
	}
}

func TestParseGrantsWildcard(t *testing.T) {
	require.True(t, ParseGrants([]string{"*"}).IsAll())
	require.True(t, ParseGrants([]string{"tasks.view", " * "}).IsAll())
	require.False(t, ParseGrants([]string{"tasks.view"}).IsAll())
	require.False(t, ParseGrants(nil).IsAll())

	require.Equal(t, []string{"*"}, AllPermissions().Strings())
	require.Empty(t, AllPermissions().Keys())
	require.Equal(t, []string{"a.b", "c.d"}, Keys("c.d", "", "a.b", "c.d").Strings())
}

func TestGrantsJSONRoundTripsWildcard(t *testing.T) {
	raw, err := json.Marshal(AllPermissions())
	require.NoError(t, err)
	require.JSONEq(t, `["*"]`, string(raw))

	var decoded Grants
	require.NoError(t, json.Unmarshal([]byte(`["tasks.view","tasks.edit_own"]`), &decoded))
	require.False(t, decoded.IsAll())
	require.Equal(t, []string{"tasks.edit_own", "tasks.view"}, decoded.Keys())
}

func TestEffectiveGrantSetJSON(t *testing.T) {
	catalog := testCatalog(t)

	raw, err := json.Marshal(catalog.Resolve(Keys("tasks.view", "ghost.key")))
	require.NoError(t, err)
	require.JSONEq(t, `{"effective":["ghost.key","spaces.view","tasks.view"],"unknown_keys":["ghost.key"]}`, string(raw))
}
