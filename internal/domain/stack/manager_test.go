package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navkit/navd/internal/shared/types"
)

func TestNeverEmpty(t *testing.T) {
	m := NewManager(types.Home())

	ops := []func(){
		func() { m.Push(types.Login()) },
		func() { m.Pop() },
		func() { m.Pop() },
		func() { m.Pop() },
		func() { m.Replace(types.Profile("1")) },
		func() { m.ReplaceAll(types.Login()) },
		func() { m.Pop() },
		func() { m.Push(types.Detail(1, "a")) },
		func() { m.ReplaceAll(types.Home()) },
	}

	for _, op := range ops {
		op()
		assert.GreaterOrEqual(t, m.Len(), 1)
	}
}

func TestPopGuard(t *testing.T) {
	m := NewManager(types.Home())

	assert.False(t, m.CanPop())
	assert.False(t, m.Pop())

	snap := m.Snapshot()
	assert.Equal(t, uint64(0), snap.Seq)
	assert.Equal(t, []types.Page{types.Home()}, snap.Pages)
}

func TestPushPopInverse(t *testing.T) {
	m := NewManager(types.Home())
	m.Push(types.Profile("123"))

	before := m.Snapshot()

	m.Push(types.Detail(42, "Book"))
	assert.True(t, m.CanPop())
	assert.True(t, m.Pop())

	after := m.Snapshot()
	assert.Equal(t, before.Pages, after.Pages)
}

func TestReplaceAsymmetry(t *testing.T) {
	t.Run("single page stack pushes instead", func(t *testing.T) {
		m := NewManager(types.Home())
		m.Replace(types.Login())

		snap := m.Snapshot()
		assert.Equal(t, []types.Page{types.Home(), types.Login()}, snap.Pages)
	})

	t.Run("deeper stack swaps the top", func(t *testing.T) {
		m := NewManager(types.Home())
		m.Push(types.Login())
		m.Push(types.Profile("123"))

		m.Replace(types.Detail(7, "Pen"))

		snap := m.Snapshot()
		assert.Equal(t, []types.Page{types.Home(), types.Login(), types.Detail(7, "Pen")}, snap.Pages)
	})
}

func TestReplaceAllResets(t *testing.T) {
	m := NewManager(types.Home())
	m.Push(types.Login())
	m.Push(types.Profile("123"))
	m.Push(types.Detail(1, "a"))

	m.ReplaceAll(types.Login())

	snap := m.Snapshot()
	assert.Equal(t, []types.Page{types.Login()}, snap.Pages)
}

func TestDuplicatePagesAllowed(t *testing.T) {
	m := NewManager(types.Home())
	m.Push(types.Profile("123"))
	m.Push(types.Profile("123"))

	snap := m.Snapshot()
	assert.Equal(t, 3, snap.Len())
	assert.Equal(t, snap.Pages[1], snap.Pages[2])
}

func TestSnapshotOrdering(t *testing.T) {
	m := NewManager(types.Home())

	var seen []types.Snapshot
	id := m.Subscribe(func(s types.Snapshot) {
		seen = append(seen, s)
	})
	defer m.Unsubscribe(id)

	m.Push(types.Login())               // seq 1
	m.Pop()                             // seq 2
	m.Push(types.Profile("123"))        // seq 3
	m.Replace(types.Detail(42, "Book")) // seq 4, swaps the top

	// Initial snapshot plus one per applied mutation, in order
	require.Len(t, seen, 5)
	for i, s := range seen {
		assert.Equal(t, uint64(i), s.Seq)
	}
	assert.Equal(t, []string{"home"}, seen[0].Keys())
	assert.Equal(t, []string{"home", "login"}, seen[1].Keys())
	assert.Equal(t, []string{"home"}, seen[2].Keys())
	assert.Equal(t, []string{"home", "profile:123"}, seen[3].Keys())
	assert.Equal(t, []string{"home", "detail:42:Book"}, seen[4].Keys())
}

func TestGuardedPopEmitsNothing(t *testing.T) {
	m := NewManager(types.Home())

	var count int
	id := m.Subscribe(func(types.Snapshot) { count++ })
	defer m.Unsubscribe(id)

	require.Equal(t, 1, count) // immediate snapshot on subscribe

	m.Pop()
	assert.Equal(t, 1, count)
}

func TestSnapshotIsACopy(t *testing.T) {
	m := NewManager(types.Home())
	m.Push(types.Login())

	snap := m.Snapshot()
	snap.Pages[0] = types.Profile("tampered")

	fresh := m.Snapshot()
	assert.Equal(t, types.Home(), fresh.Pages[0])
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	m := NewManager(types.Home())

	var count int
	id := m.Subscribe(func(types.Snapshot) { count++ })

	m.Push(types.Login())
	require.Equal(t, 2, count)

	m.Unsubscribe(id)
	m.Push(types.Profile("123"))
	assert.Equal(t, 2, count)
}

func TestStats(t *testing.T) {
	m := NewManager(types.Home())
	m.Push(types.Profile("123"))
	id := m.Subscribe(func(types.Snapshot) {})
	defer m.Unsubscribe(id)

	stats := m.Stats()
	assert.Equal(t, 2, stats.Depth)
	assert.Equal(t, "profile:123", stats.Top)
	assert.Equal(t, uint64(1), stats.Seq)
	assert.Equal(t, 1, stats.Subscribers)
}
