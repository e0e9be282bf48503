package formtree

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGroup_AttachPreservesInsertionOrder(t *testing.T) {
	g := NewGroup()
	g.Attach("first", NewField(1))
	g.Attach("second", NewField(2))
	g.Attach("third", NewField(3))

	require.Equal(t, []string{"first", "second", "third"}, g.Keys())
	require.Equal(t, 3, g.Len())
}

func TestGroup_AttachAt(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  []string
	}{
		{name: "at zero prepends", index: 0, want: []string{"new", "a", "b"}},
		{name: "in the middle", index: 1, want: []string{"a", "new", "b"}},
		{name: "at length appends", index: 2, want: []string{"a", "b", "new"}},
		{name: "past length clamps to append", index: 99, want: []string{"a", "b", "new"}},
		{name: "negative appends", index: -1, want: []string{"a", "b", "new"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGroup()
			g.Attach("a", NewField(nil))
			g.Attach("b", NewField(nil))

			g.AttachAt("new", NewField(nil), tt.index)
			require.Equal(t, tt.want, g.Keys())
		})
	}
}

func TestGroup_AttachExistingKeyMovesToEnd(t *testing.T) {
	g := NewGroup()
	g.Attach("a", NewField(1))
	g.Attach("b", NewField(2))

	replacement := NewField(99)
	g.Attach("a", replacement)

	require.Equal(t, []string{"b", "a"}, g.Keys())
	got, ok := g.Child("a")
	require.True(t, ok)
	require.Same(t, replacement, got)
}

func TestGroup_AttachAtExistingKeyMeasuresIndexAfterRemoval(t *testing.T) {
	g := NewGroup()
	g.Attach("a", NewField(nil))
	g.Attach("b", NewField(nil))
	g.Attach("c", NewField(nil))

	// "a" is detached first, leaving [b c]; index 1 lands between them.
	g.AttachAt("a", NewField(nil), 1)
	require.Equal(t, []string{"b", "a", "c"}, g.Keys())
}

func TestGroup_DetachKeepsSiblingOrder(t *testing.T) {
	g := NewGroup()
	g.Attach("a", NewField(nil))
	g.Attach("b", NewField(nil))
	g.Attach("c", NewField(nil))

	require.True(t, g.Detach("b"))
	require.Equal(t, []string{"a", "c"}, g.Keys())

	require.False(t, g.Detach("b"), "second detach of the same key should report absence")
	require.Equal(t, []string{"a", "c"}, g.Keys())
}

func TestGroup_ChildMissing(t *testing.T) {
	g := NewGroup()
	node, ok := g.Child("nope")
	require.False(t, ok)
	require.Nil(t, node)
}

func TestGroup_KeysReturnsCopy(t *testing.T) {
	g := NewGroup()
	g.Attach("a", NewField(nil))
	keys := g.Keys()
	keys[0] = "mutated"

	require.Equal(t, []string{"a"}, g.Keys())
}

func TestGroup_SetDisabledDoesNotCascade(t *testing.T) {
	child := NewField(nil)
	g := NewGroup()
	g.Attach("child", child)

	g.SetDisabled(true)
	require.True(t, g.Disabled())
	require.False(t, child.Disabled(), "disabling a group must not touch its children")
}

func TestGroup_NestedChildLookup(t *testing.T) {
	inner := NewGroup()
	inner.Attach("street", NewField("main st"))
	outer := NewGroup()
	outer.Attach("shipping", inner)

	node, ok := outer.Child("shipping")
	require.True(t, ok)
	street, ok := node.Child("street")
	require.True(t, ok)
	require.Equal(t, "main st", street.(*Field).Value())
}

// Property: a group's order always matches a plain slice model under
// random attach/detach/splice sequences.
func TestGroup_OrderMatchesModel_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g := NewGroup()
		model := []string{}

		modelRemove := func(key string) {
			for i, k := range model {
				if k == key {
					model = append(model[:i], model[i+1:]...)
					return
				}
			}
		}
		modelInsert := func(key string, index int) {
			if index < 0 || index > len(model) {
				index = len(model)
			}
			model = append(model, "")
			copy(model[index+1:], model[index:])
			model[index] = key
		}

		keyGen := rapid.StringMatching(`[a-e]`)
		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			key := keyGen.Draw(rt, "key")
			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0:
				g.Attach(key, NewField(nil))
				modelRemove(key)
				modelInsert(key, -1)
			case 1:
				index := rapid.IntRange(-1, 6).Draw(rt, "index")
				g.AttachAt(key, NewField(nil), index)
				modelRemove(key)
				modelInsert(key, index)
			case 2:
				g.Detach(key)
				modelRemove(key)
			}
			require.Equal(rt, model, g.Keys())
			require.Equal(rt, len(model), g.Len())
		}
	})
}
