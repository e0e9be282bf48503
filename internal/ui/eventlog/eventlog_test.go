package eventlog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/formdeck/formdeck/internal/formpath"
	"github.com/formdeck/formdeck/internal/formtree"
	"github.com/formdeck/formdeck/internal/registry"

	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg := registry.New()

	account := formtree.NewGroup()
	reg.RegisterRoot("account", account)

	_, err := reg.RegisterElement(formpath.Parse("account"), "email", formtree.NewField(""))
	require.NoError(t, err)
	_, err = reg.RegisterElement(formpath.Parse("account"), "password", formtree.NewField(""))
	require.NoError(t, err)

	return reg
}

func TestView_Empty(t *testing.T) {
	m := New(registry.New(), true)
	m.SetSize(60, 10)

	require.Contains(t, m.View(), "No registrations yet.")
}

func TestView_ShowsSeqKindPath(t *testing.T) {
	reg := newTestRegistry(t)
	m := New(reg, true)
	m.SetSize(60, 10)

	view := m.View()

	require.Contains(t, view, "#0")
	require.Contains(t, view, "#1")
	require.Contains(t, view, "#2")
	require.Contains(t, view, "form")
	require.Contains(t, view, "element")
	require.Contains(t, view, "account")
	require.Contains(t, view, "account.email")
	require.Contains(t, view, "account.password")
}

func TestView_SeqHidden(t *testing.T) {
	reg := newTestRegistry(t)
	m := New(reg, false)
	m.SetSize(60, 10)

	view := m.View()

	require.NotContains(t, view, "#0")
	require.Contains(t, view, "account.email")

	m.SetShowSeq(true)
	require.Contains(t, m.View(), "#0")
}

func TestView_FollowTracksTail(t *testing.T) {
	reg := newTestRegistry(t)
	m := New(reg, true)
	m.SetSize(60, 3) // Viewport shows 2 of 3 events

	require.True(t, m.Following())

	view := m.View()
	require.Contains(t, view, "account.password") // Newest visible
	require.Contains(t, view, "↑ 1 earlier")
	require.NotContains(t, view, "newer")

	// New registrations stay in view while following.
	for i := range 5 {
		_, err := reg.RegisterElement(formpath.Parse("account"), fmt.Sprintf("extra%d", i), formtree.NewField(""))
		require.NoError(t, err)
	}

	view = m.View()
	require.Contains(t, view, "account.extra4")
	require.NotContains(t, view, "newer")
}

func TestScrollUp_DisengagesFollow(t *testing.T) {
	reg := newTestRegistry(t)
	m := New(reg, true)
	m.SetSize(60, 3)

	_ = m.View() // Snap to tail
	m.ScrollUp(1)
	require.False(t, m.Following())

	view := m.View()
	require.Contains(t, view, "↓ 1 newer")

	// New events do not move the viewport while not following.
	_, err := reg.RegisterElement(formpath.Parse("account"), "extra", formtree.NewField(""))
	require.NoError(t, err)

	view = m.View()
	require.NotContains(t, view, "account.extra")
	require.Contains(t, view, "↓ 2 newer")
}

func TestScrollDown_ReengagesFollowAtTail(t *testing.T) {
	reg := newTestRegistry(t)
	m := New(reg, true)
	m.SetSize(60, 3)

	_ = m.View()
	m.ScrollUp(1)
	require.False(t, m.Following())

	m.ScrollDown(1)
	require.True(t, m.Following())
}

func TestScrollUp_ClampsAtTop(t *testing.T) {
	reg := newTestRegistry(t)
	m := New(reg, true)
	m.SetSize(60, 3)

	_ = m.View()
	m.ScrollUp(100)
	require.Equal(t, 0, m.scrollTop)

	view := m.View()
	require.NotContains(t, view, "earlier")
	require.Contains(t, view, "#0")
}

func TestView_TruncatesLongPaths(t *testing.T) {
	reg := registry.New()
	reg.RegisterRoot("root", formtree.NewGroup())

	parent := formpath.Parse("root")
	for _, seg := range []string{"alpha", "bravo", "charlie", "delta"} {
		group := formtree.NewGroup()
		_, err := reg.RegisterElement(parent, seg, group)
		require.NoError(t, err)
		parent = parent.Join(seg)
	}

	m := New(reg, false)
	m.SetSize(30, 10)

	view := m.View()
	require.Contains(t, view, "...")
	for _, line := range strings.Split(view, "\n") {
		require.LessOrEqual(t, lineWidth(line), 30, "line overflows pane: %q", line)
	}
}

// lineWidth measures the printable width of a rendered line.
func lineWidth(line string) int {
	// Strip the SGR sequences lipgloss may emit in test environments.
	for {
		start := strings.Index(line, "\x1b[")
		if start < 0 {
			break
		}
		end := strings.IndexByte(line[start:], 'm')
		if end < 0 {
			break
		}
		line = line[:start] + line[start+end+1:]
	}
	return len([]rune(line))
}
