package events

import (
	"sync"
	"testing"

	"github.com/lazharichir/handreplay/hand"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventStore(t *testing.T) {
	store := NewInMemoryEventStore()

	handID := "hand-123"

	t.Run("Append and load events", func(t *testing.T) {
		started := PhaseStarted{HandID: handID, Snapshot: 1, Street: hand.StreetBlindsAntes}
		applied := ActionApplied{
			HandID:   handID,
			Snapshot: 2,
			Street:   hand.StreetBlindsAntes,
			Player:   "P1",
			Kind:     "small blind",
			Label:    "small blind 5",
			Amount:   decimal.NewFromInt(5),
		}
		settled := HandSettled{HandID: handID, Snapshot: 3}

		require.NoError(t, store.Append(started))
		require.NoError(t, store.Append(applied))
		require.NoError(t, store.Append(&settled))

		loaded, err := store.LoadEvents(handID)
		require.NoError(t, err)
		require.Len(t, loaded, 3)
		assert.Equal(t, "phase-started", loaded[0].EventName())
		assert.Equal(t, applied, loaded[1])
		assert.Equal(t, "hand-settled", loaded[2].EventName())
	})

	t.Run("Load events for non-existent hand", func(t *testing.T) {
		loaded, err := store.LoadEvents("missing")
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("Events without a hand ID are rejected", func(t *testing.T) {
		err := store.Append(UnhandledActionKind{RawKind: "unknown_kind"})
		assert.Error(t, err)
	})

	t.Run("Loaded slice is a copy", func(t *testing.T) {
		loaded, err := store.LoadEvents(handID)
		require.NoError(t, err)
		loaded[0] = nil

		again, err := store.LoadEvents(handID)
		require.NoError(t, err)
		assert.NotNil(t, again[0])
	})

	t.Run("HandIDs and Reset", func(t *testing.T) {
		require.NoError(t, store.Append(PhaseStarted{HandID: "a-hand", Street: hand.StreetFlop}))
		assert.Equal(t, []string{"a-hand", handID}, store.HandIDs())

		store.Reset("a-hand")
		assert.Equal(t, []string{handID}, store.HandIDs())
	})
}

func TestInMemoryEventStoreConcurrentAppend(t *testing.T) {
	store := NewInMemoryEventStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Append(PhaseStarted{HandID: "h", Snapshot: i})
		}(i)
	}
	wg.Wait()

	loaded, err := store.LoadEvents("h")
	require.NoError(t, err)
	assert.Len(t, loaded, 20)
}

func TestGetHandID(t *testing.T) {
	assert.Equal(t, "x", GetHandID(HandSettled{HandID: "x"}))
	assert.Equal(t, "y", GetHandID(&ActionApplied{HandID: "y"}))
	assert.Equal(t, "", GetHandID(UnhandledActionKind{}))
}
