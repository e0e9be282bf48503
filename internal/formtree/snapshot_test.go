package formtree

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTake_CopiesFieldState(t *testing.T) {
	f := NewField("hello")
	f.SetTouched(true)
	f.SetValid(false)

	snap := Take(f)
	require.Equal(t, KindField, snap.Kind)
	require.Equal(t, "hello", snap.Value)
	require.True(t, snap.Touched)
	require.False(t, snap.Valid)

	// A snapshot is detached from the live node.
	f.SetValue("changed")
	require.Equal(t, "hello", snap.Value)
}

func TestTake_GroupKeepsOrder(t *testing.T) {
	root := buildSampleTree()
	snap := Take(root)

	require.Equal(t, KindGroup, snap.Kind)
	require.Equal(t, []string{"checkout"}, snap.Keys)
	checkout := snap.Children["checkout"]
	require.Equal(t, []string{"email", "shipping"}, checkout.Keys)
}

func TestSnapshot_YAMLOrder(t *testing.T) {
	g := NewGroup()
	g.Attach("zebra", NewField(1))
	g.Attach("apple", NewField(2))
	g.Attach("mango", NewField(3))

	out, err := yaml.Marshal(Take(g))
	require.NoError(t, err)

	text := string(out)
	zebra := strings.Index(text, "zebra")
	apple := strings.Index(text, "apple")
	mango := strings.Index(text, "mango")
	require.True(t, zebra >= 0 && apple >= 0 && mango >= 0, "all keys present:\n%s", text)
	require.True(t, zebra < apple && apple < mango, "children must serialize in insertion order, not sorted:\n%s", text)
}

func TestSnapshot_YAMLFieldShape(t *testing.T) {
	f := NewField("main st")
	f.SetTouched(true)

	out, err := yaml.Marshal(Take(f))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	require.Equal(t, "field", decoded["kind"])
	require.Equal(t, "main st", decoded["value"])
	require.Equal(t, true, decoded["touched"])
	require.Equal(t, true, decoded["valid"])
	require.Equal(t, false, decoded["disabled"])
}

func TestSnapshot_JSONOrderAndShape(t *testing.T) {
	g := NewGroup()
	g.Attach("zebra", NewField("z"))
	g.Attach("apple", NewField(nil))

	out, err := json.Marshal(Take(g))
	require.NoError(t, err)

	text := string(out)
	require.Less(t, strings.Index(text, `"zebra"`), strings.Index(text, `"apple"`),
		"JSON children must keep insertion order: %s", text)

	// Output must still be valid JSON.
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Equal(t, "group", decoded["kind"])
	children := decoded["children"].(map[string]any)
	apple := children["apple"].(map[string]any)
	require.Nil(t, apple["value"])
}
