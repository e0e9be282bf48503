package formpath

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Path
	}{
		{name: "empty string is root", input: "", want: Path{}},
		{name: "single segment", input: "checkout", want: Path{"checkout"}},
		{name: "nested segments", input: "checkout.shipping.street", want: Path{"checkout", "shipping", "street"}},
		{name: "consecutive dots keep empty segment", input: "a..b", want: Path{"a", "", "b"}},
		{name: "leading dot keeps empty segment", input: ".a", want: Path{"", "a"}},
		{name: "trailing dot keeps empty segment", input: "a.", want: Path{"a", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			require.True(t, got.Equal(tt.want), "Parse(%q) = %v, want %v", tt.input, got, tt.want)
		})
	}
}

func TestParse_LoneDotIsTwoEmptySegments(t *testing.T) {
	// "." is not the root path. It parses to two empty segments, neither
	// of which ever resolves.
	p := Parse(".")
	require.Equal(t, 2, len(p))
	require.False(t, p.IsRoot())
}

func TestString_RoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "a.b", "a.b.c", "with-dash.under_score"} {
		require.Equal(t, s, Parse(s).String())
	}
}

func TestNew_CopiesSegments(t *testing.T) {
	segs := []string{"a", "b"}
	p := New(segs...)
	segs[0] = "mutated"
	require.Equal(t, "a.b", p.String(), "New should copy its input")
}

func TestJoin_DoesNotAliasParent(t *testing.T) {
	base := Parse("checkout.shipping")
	street := base.Join("street")
	city := base.Join("city")

	require.Equal(t, "checkout.shipping.street", street.String())
	require.Equal(t, "checkout.shipping.city", city.String())
	require.Equal(t, "checkout.shipping", base.String(), "Join must not modify the receiver")
}

func TestParentAndLeaf(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantParent string
		wantLeaf   string
	}{
		{name: "nested", path: "a.b.c", wantParent: "a.b", wantLeaf: "c"},
		{name: "single", path: "a", wantParent: "", wantLeaf: "a"},
		{name: "root", path: "", wantParent: "", wantLeaf: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse(tt.path)
			require.Equal(t, tt.wantParent, p.Parent().String())
			require.Equal(t, tt.wantLeaf, p.Leaf())
		})
	}
}

func TestDottedKeyIsIndistinguishable(t *testing.T) {
	// No escaping: a key containing the delimiter parses into two
	// segments, identical to a genuinely nested path.
	require.True(t, Parse("a.b").Equal(New("a", "b")))
	require.Equal(t, New("a.b").String(), New("a", "b").String())
}

func TestEqual(t *testing.T) {
	require.True(t, Parse("a.b").Equal(Parse("a.b")))
	require.False(t, Parse("a.b").Equal(Parse("a.c")))
	require.False(t, Parse("a.b").Equal(Parse("a.b.c")))
	require.True(t, Path{}.Equal(Parse("")))
}

func TestParseStringRoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		segGen := rapid.StringMatching(`[a-zA-Z0-9_-]{1,12}`)
		segs := rapid.SliceOfN(segGen, 0, 8).Draw(rt, "segs")

		p := New(segs...)
		back := Parse(p.String())
		if len(segs) == 0 {
			require.True(rt, back.IsRoot())
			return
		}
		require.True(rt, back.Equal(p), "Parse(String()) must reproduce delimiter-free paths")
	})
}

func FuzzParse(f *testing.F) {
	f.Add("")
	f.Add("a")
	f.Add("a.b.c")
	f.Add("..")
	f.Add(".a.")
	f.Add("unicode🎯.key")
	f.Add(strings.Repeat("seg.", 100))

	f.Fuzz(func(t *testing.T, input string) {
		p := Parse(input)

		// String must reproduce the input exactly: Split and Join are
		// inverse for every string, including empty segments.
		if input != "" && p.String() != input {
			t.Errorf("Parse(%q).String() = %q", input, p.String())
		}

		// Derived paths must never panic and must stay consistent.
		parent := p.Parent()
		if !p.IsRoot() {
			if got := parent.Join(p.Leaf()); !got.Equal(p) {
				t.Errorf("Parent().Join(Leaf()) = %v, want %v", got, p)
			}
		}
	})
}
