package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/formdeck/formdeck/internal/formpath"
	"github.com/formdeck/formdeck/internal/formtree"
)

func TestWaitForPath_FiresImmediatelyWhenPresent(t *testing.T) {
	r := New()
	r.RegisterRoot("main", formtree.NewGroup())
	field := formtree.NewField("v")
	_, err := r.RegisterElement(formpath.Parse("main"), "ready", field)
	require.NoError(t, err)

	var got formtree.Node
	r.WaitForPath(formpath.Parse("main.ready"), func(n formtree.Node) { got = n })

	require.Same(t, field, got)
	require.Zero(t, r.Events().Len(), "an immediate hit leaves no subscription behind")
}

func TestWaitForPath_FiresOnLaterRegistration(t *testing.T) {
	r := New()
	r.RegisterRoot("main", formtree.NewGroup())

	calls := 0
	var got formtree.Node
	r.WaitForPath(formpath.Parse("main.later"), func(n formtree.Node) {
		calls++
		got = n
	})
	require.Zero(t, calls)

	field := formtree.NewField("v")
	_, err := r.RegisterElement(formpath.Parse("main"), "later", field)
	require.NoError(t, err)

	require.Equal(t, 1, calls)
	require.Same(t, field, got)

	// Re-registering must not fire the spent wait again.
	_, err = r.RegisterElement(formpath.Parse("main"), "later", formtree.NewField("w"), Overwrite())
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestWaitForPath_ResolvedBySubtreeAttach(t *testing.T) {
	r := New()
	r.RegisterRoot("main", formtree.NewGroup())

	calls := 0
	r.WaitForPath(formpath.Parse("main.shipping.street"), func(formtree.Node) { calls++ })

	// The awaited path never gets its own event. It becomes resolvable
	// because a parent subtree containing it is attached.
	shipping := formtree.NewGroup()
	shipping.Attach("street", formtree.NewField("main st"))
	_, err := r.RegisterElement(formpath.Parse("main"), "shipping", shipping)
	require.NoError(t, err)

	require.Equal(t, 1, calls)
}

func TestWaitForPath_CancelStopsWait(t *testing.T) {
	r := New()
	r.RegisterRoot("main", formtree.NewGroup())

	calls := 0
	sub := r.WaitForPath(formpath.Parse("main.never"), func(formtree.Node) { calls++ })
	sub.Cancel()

	_, err := r.RegisterElement(formpath.Parse("main"), "never", formtree.NewField(nil))
	require.NoError(t, err)

	require.Zero(t, calls)
}

func TestWaitForPath_CancelAfterImmediateFireIsHarmless(t *testing.T) {
	r := New()
	r.RegisterRoot("main", formtree.NewGroup())

	sub := r.WaitForPath(formpath.Parse("main"), func(formtree.Node) {})
	require.NotPanics(t, func() { sub.Cancel() })
}

func TestWaitForPath_ReentrantRegistrationInCallback(t *testing.T) {
	r := New()
	r.RegisterRoot("main", formtree.NewGroup())

	// A component waiting for its parent registers itself on arrival.
	r.WaitForPath(formpath.Parse("main.parent"), func(formtree.Node) {
		_, err := r.RegisterElement(formpath.Parse("main.parent"), "child", formtree.NewField(nil))
		require.NoError(t, err)
	})

	_, err := r.RegisterElement(formpath.Parse("main"), "parent", formtree.NewGroup())
	require.NoError(t, err)

	_, ok := r.Control(formpath.Parse("main.parent.child"))
	require.True(t, ok)
}

func TestWaitForPath_MultipleWaitersSamePath(t *testing.T) {
	r := New()
	r.RegisterRoot("main", formtree.NewGroup())

	var fired []string
	r.WaitForPath(formpath.Parse("main.x"), func(formtree.Node) { fired = append(fired, "w1") })
	r.WaitForPath(formpath.Parse("main.x"), func(formtree.Node) { fired = append(fired, "w2") })

	_, err := r.RegisterElement(formpath.Parse("main"), "x", formtree.NewField(nil))
	require.NoError(t, err)

	require.Equal(t, []string{"w1", "w2"}, fired)
}
