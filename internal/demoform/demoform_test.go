package demoform_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/formdeck/formdeck/internal/demoform"
	"github.com/formdeck/formdeck/internal/formpath"
	"github.com/formdeck/formdeck/internal/formtree"
	"github.com/formdeck/formdeck/internal/registry"
)

func TestCatalog_ParentsPrecedeChildren(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range demoform.Catalog() {
		if f.Parent != "" {
			parent := formpath.Parse(f.Parent)
			require.True(t, seen[parent[0]], "fragment %q lists parent %q before it is declared", f.Name, f.Parent)
		}
		seen[f.Name] = true
	}
}

func TestCatalog_NamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range demoform.Catalog() {
		require.False(t, seen[f.Name], "duplicate fragment name %q", f.Name)
		seen[f.Name] = true
	}
}

func TestByName(t *testing.T) {
	f, ok := demoform.ByName("shipping")
	require.True(t, ok)
	require.Equal(t, "shipping", f.Name)
	require.Equal(t, "account", f.Parent)

	_, ok = demoform.ByName("nonexistent")
	require.False(t, ok)
}

func TestFragment_Path(t *testing.T) {
	prefs, ok := demoform.ByName("preferences")
	require.True(t, ok)
	require.Equal(t, "account.profile.preferences", prefs.Path().String())

	account, ok := demoform.ByName("account")
	require.True(t, ok)
	require.Equal(t, "account", account.Path().String())
}

func TestFragment_BuildPreservesFieldOrder(t *testing.T) {
	shipping, ok := demoform.ByName("shipping")
	require.True(t, ok)

	group := shipping.Build()
	require.Equal(t, []string{"street", "city", "postal_code", "country"}, group.Keys())
}

func TestFragment_BuildWiresChangeHooks(t *testing.T) {
	account, ok := demoform.ByName("account")
	require.True(t, ok)

	group := account.Build()
	node, found := group.Child("email")
	require.True(t, found)
	field, isField := node.(*formtree.Field)
	require.True(t, isField)

	require.False(t, field.Touched(), "untouched before first SetValue")
	require.True(t, field.Valid(), "fields start valid")

	field.SetValue("not-an-email")
	require.True(t, field.Touched(), "SetValue should mark the field touched")
	require.False(t, field.Valid(), "bad email should invalidate")

	field.SetValue("ada@example.com")
	require.True(t, field.Valid(), "good email should validate")
}

func TestFragment_BuildIsIndependentPerCall(t *testing.T) {
	profile, ok := demoform.ByName("profile")
	require.True(t, ok)

	first := profile.Build()
	second := profile.Build()

	node, _ := first.Child("display_name")
	node.(*formtree.Field).SetValue("Ada")

	other, _ := second.Child("display_name")
	require.Equal(t, "", other.(*formtree.Field).Value(), "builds must not share field state")
}

func TestMount_RootAndNested(t *testing.T) {
	reg := registry.New()

	account, _ := demoform.ByName("account")
	ev, err := demoform.Mount(reg, account)
	require.NoError(t, err)
	require.Equal(t, registry.KindForm, ev.Kind)
	require.Equal(t, "account", ev.Path)

	profile, _ := demoform.ByName("profile")
	ev, err = demoform.Mount(reg, profile)
	require.NoError(t, err)
	require.Equal(t, registry.KindElement, ev.Kind)
	require.Equal(t, "account.profile", ev.Path)
}

func TestMount_MissingParentFails(t *testing.T) {
	reg := registry.New()

	prefs, _ := demoform.ByName("preferences")
	_, err := demoform.Mount(reg, prefs)
	require.ErrorIs(t, err, registry.ErrPathNotFound)
}

func TestMountAll_AssemblesFullForm(t *testing.T) {
	reg := registry.New()
	require.NoError(t, demoform.MountAll(reg))

	for _, f := range demoform.Catalog() {
		_, found := reg.Control(f.Path())
		require.True(t, found, "fragment %q should resolve at %q", f.Name, f.Path())
	}

	require.Len(t, reg.History(), len(demoform.Catalog()), "one event per fragment")

	// Deepest path resolves through two groups
	node, found := reg.Control(formpath.Parse("account.profile.preferences.language"))
	require.True(t, found)
	require.Equal(t, formtree.KindField, node.Kind())
}
