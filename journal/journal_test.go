package journal

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const userA = "Hzn3n914JaSpnxo5mBbmuCDmGL6mxWN9Ac2HzEXFSGtb"
const userB = "BWbmXj5ckAaWCAtzMZ97qnJhBAKegoXtgNrv9BUpAB11"

func openTestStore(t *testing.T) *Store {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestOpen(t *testing.T) {
	_, err := Open("")
	require.ErrorContains(t, err, "directory is required")

	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	_, err = store.Record(context.Background(), &Entry{Instruction: "initialize", User: userA})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// entries survive reopening
	store, err = Open(dir)
	require.NoError(t, err)
	defer store.Close()
	entries, err := store.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestRecordAndUpdate(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	id, err := store.Record(ctx, &Entry{
		Instruction: "deposit",
		User:        userA,
		PDA:         "2vrq5j5todLePqB7vBVbqPNkLyhSmbiDSCJoB8ADgy2v",
		Amount:      50_000_000,
	})
	require.NoError(t, err)
	require.Len(t, id, 36)

	entry, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, StatusPending, entry.Status)
	require.Equal(t, now, entry.CreatedAt)
	require.EqualValues(t, 50_000_000, entry.Amount)

	now = now.Add(time.Minute)
	require.NoError(t, store.Update(ctx, id, StatusConfirmed, "5sig", ""))
	entry, err = store.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, entry.Status)
	require.Equal(t, "5sig", entry.Signature)
	require.Equal(t, now, entry.UpdatedAt)

	require.NoError(t, store.Update(ctx, id, StatusFailed, "", "InsufficientFunds"))
	entry, err = store.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, StatusFailed, entry.Status)
	require.Equal(t, "5sig", entry.Signature)
	require.Equal(t, "InsufficientFunds", entry.Error)

	err = store.Update(ctx, "missing", StatusConfirmed, "", "")
	require.True(t, errors.Is(err, ErrNotFound))
	_, err = store.Get(ctx, "missing")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestList(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	vectors := []struct {
		user        string
		instruction string
		offset      time.Duration
	}{
		{userA, "initialize", 0},
		{userB, "initialize", time.Second},
		{userA, "deposit", 2 * time.Second},
		{userA, "withdraw", 3 * time.Second},
	}
	for _, v := range vectors {
		_, err := store.Record(ctx, &Entry{
			User:        v.user,
			Instruction: v.instruction,
			CreatedAt:   start.Add(v.offset),
		})
		require.NoError(t, err)
	}

	entries, err := store.List(ctx, userA)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "withdraw", entries[0].Instruction)
	require.Equal(t, "deposit", entries[1].Instruction)
	require.Equal(t, "initialize", entries[2].Instruction)

	entries, err = store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 4)

	entries, err = store.List(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, entries)
}
