package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveSnapshot(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		require.True(t, ok, "snapshot channel closed")
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return Snapshot{}
	}
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewMemoryStore()
	defer m.Close()

	require.NoError(t, m.Write(ctx, CollectionSchedules, "futsal", json.RawMessage(`[{"id":1}]`)))

	ch, err := m.Subscribe(ctx, CollectionSchedules, nil)
	require.NoError(t, err)

	snap := receiveSnapshot(t, ch)
	assert.Equal(t, CollectionSchedules, snap.Collection)
	assert.JSONEq(t, `[{"id":1}]`, string(snap.Values["futsal"]))
}

func TestSubscribeSeedsEmptyCollection(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewMemoryStore()
	defer m.Close()

	seed := map[string]json.RawMessage{"futsal": json.RawMessage(`[{"id":1}]`)}
	ch, err := m.Subscribe(ctx, CollectionSchedules, seed)
	require.NoError(t, err)

	snap := receiveSnapshot(t, ch)
	assert.JSONEq(t, `[{"id":1}]`, string(snap.Values["futsal"]))

	// Непустая коллекция повторно не засевается.
	require.NoError(t, m.Write(ctx, CollectionSchedules, "futsal", json.RawMessage(`[]`)))
	ch2, err := m.Subscribe(ctx, CollectionSchedules, seed)
	require.NoError(t, err)
	snap2 := receiveSnapshot(t, ch2)
	assert.JSONEq(t, `[]`, string(snap2.Values["futsal"]))
}

// Писатель получает уведомление о собственной записи, как любой подписчик.
func TestWriterReceivesOwnWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewMemoryStore()
	defer m.Close()

	ch, err := m.Subscribe(ctx, CollectionResults, nil)
	require.NoError(t, err)
	receiveSnapshot(t, ch) // initial

	require.NoError(t, m.Write(ctx, CollectionResults, "chess", json.RawMessage(`[{"id":9}]`)))

	snap := receiveSnapshot(t, ch)
	assert.JSONEq(t, `[{"id":9}]`, string(snap.Values["chess"]))
}

func TestSnapshotsArriveInCommitOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewMemoryStore()
	defer m.Close()

	ch, err := m.Subscribe(ctx, CollectionLiveMatches, nil)
	require.NoError(t, err)
	receiveSnapshot(t, ch) // initial

	for i := 0; i < 20; i++ {
		value, err := json.Marshal(i)
		require.NoError(t, err)
		require.NoError(t, m.Write(ctx, CollectionLiveMatches, LiveMatchesKey, value))
	}

	for i := 0; i < 20; i++ {
		snap := receiveSnapshot(t, ch)
		var got int
		require.NoError(t, json.Unmarshal(snap.Values[LiveMatchesKey], &got))
		assert.Equal(t, i, got)
	}
}

func TestSnapshotsAreIsolatedFromLaterWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewMemoryStore()
	defer m.Close()

	ch, err := m.Subscribe(ctx, CollectionBrackets, nil)
	require.NoError(t, err)
	receiveSnapshot(t, ch)

	require.NoError(t, m.Write(ctx, CollectionBrackets, "futsal", json.RawMessage(`{"v":1}`)))
	first := receiveSnapshot(t, ch)
	require.NoError(t, m.Write(ctx, CollectionBrackets, "futsal", json.RawMessage(`{"v":2}`)))

	assert.JSONEq(t, `{"v":1}`, string(first.Values["futsal"]))
}

func TestUnknownCollectionRejected(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	defer m.Close()

	_, err := m.Subscribe(ctx, Collection("bogus"), nil)
	assert.ErrorIs(t, err, ErrUnknownCollection)

	err = m.Write(ctx, Collection("bogus"), "k", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestCloseStopsSubscribersAndWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewMemoryStore()
	ch, err := m.Subscribe(ctx, CollectionSchedules, nil)
	require.NoError(t, err)
	receiveSnapshot(t, ch)

	require.NoError(t, m.Close())

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after store close")
	}

	assert.ErrorIs(t, m.Write(ctx, CollectionSchedules, "k", json.RawMessage(`{}`)), ErrStoreClosed)
	_, err = m.Subscribe(ctx, CollectionSchedules, nil)
	assert.ErrorIs(t, err, ErrStoreClosed)
}
