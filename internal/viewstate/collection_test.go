package viewstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesorapp/tesoreria_backend/internal/viewstate"
)

type item struct {
	ID   string
	Name string
}

func newTestCollection() *viewstate.Collection[item] {
	return viewstate.NewCollection(func(i item) string { return i.ID })
}

func TestReplaceSwapsSnapshot(t *testing.T) {
	c := newTestCollection()
	c.Replace([]item{{ID: "a"}, {ID: "b"}})
	assert.Equal(t, 2, c.Len())

	c.Replace([]item{{ID: "c"}})
	snap := c.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "c", snap[0].ID)
}

func TestUpsertReplacesInPlace(t *testing.T) {
	c := newTestCollection()
	c.Replace([]item{{ID: "a", Name: "old"}, {ID: "b"}})

	c.Upsert(item{ID: "a", Name: "new"})

	snap := c.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "new", snap[0].Name)
	assert.Equal(t, "a", snap[0].ID) // position preserved
}

func TestUpsertAppendsWhenMissing(t *testing.T) {
	c := newTestCollection()
	c.Upsert(item{ID: "x"})
	assert.Equal(t, 1, c.Len())
}

func TestPrependPutsNewestFirst(t *testing.T) {
	c := newTestCollection()
	c.Replace([]item{{ID: "old"}})
	c.Prepend(item{ID: "new"})

	snap := c.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "new", snap[0].ID)
}

func TestRemoveSplicesOut(t *testing.T) {
	c := newTestCollection()
	c.Replace([]item{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	assert.True(t, c.Remove("b"))
	assert.False(t, c.Remove("b"))

	snap := c.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "a", snap[0].ID)
	assert.Equal(t, "c", snap[1].ID)
}

func TestGetFindsByID(t *testing.T) {
	c := newTestCollection()
	c.Replace([]item{{ID: "a", Name: "first"}})

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "first", got.Name)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestSnapshotIsACopy(t *testing.T) {
	c := newTestCollection()
	c.Replace([]item{{ID: "a", Name: "orig"}})

	snap := c.Snapshot()
	snap[0].Name = "mutated"

	fresh, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "orig", fresh.Name)
}

func TestSubscribeCoalescesNotifications(t *testing.T) {
	c := newTestCollection()
	ch, cancel := c.Subscribe()
	defer cancel()

	c.Prepend(item{ID: "a"})
	c.Prepend(item{ID: "b"})
	c.Prepend(item{ID: "c"})

	// At least one coalesced signal is pending.
	select {
	case <-ch:
	default:
		t.Fatal("expected a pending change signal")
	}
}

func TestCancelledSubscriptionGetsNoSignal(t *testing.T) {
	c := newTestCollection()
	ch, cancel := c.Subscribe()
	cancel()

	c.Prepend(item{ID: "a"})

	select {
	case <-ch:
		t.Fatal("cancelled subscription should not be notified")
	default:
	}
}
