package activity_test

import (
	"context"
	"errors"
	"hash/fnv"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/seldt/wellspring/internal/domain/activity"
	"github.com/seldt/wellspring/internal/repository/mocks"
	"github.com/seldt/wellspring/internal/store"
)

func TestLegacyID_Pure(t *testing.T) {
	id := "2f1c9a04-6e7b-4c11-9b3e-0d5c1a2b3c4d"
	require.Equal(t, activity.LegacyID(id), activity.LegacyID(id))
}

func TestLegacyID_MatchesFNV1a32(t *testing.T) {
	for _, id := range []string{"", "a", "hello", "2f1c9a04-6e7b-4c11"} {
		h := fnv.New32a()
		_, _ = h.Write([]byte(id))
		require.Equal(t, int64(h.Sum32()), activity.LegacyID(id), "input %q", id)
	}
}

func TestLegacyID_NonNegative(t *testing.T) {
	// Ids hashing into the upper half of uint32 space must not come out
	// negative.
	require.GreaterOrEqual(t, activity.LegacyID("2f1c9a04-6e7b-4c11-9b3e-0d5c1a2b3c4d"), int64(0))
	require.GreaterOrEqual(t, activity.LegacyID(""), int64(0))
}

// Collisions are theoretically possible and deliberately unhandled; this
// guards against a regression in the hash itself, not against collisions
// ever happening.
func TestLegacyID_NoCollisionsAcross10kRandomIDs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const alphabet = "abcdef0123456789-"

	seen := make(map[int64]string, 10000)
	for i := 0; i < 10000; i++ {
		buf := make([]byte, 36)
		for j := range buf {
			buf[j] = alphabet[rng.Intn(len(alphabet))]
		}
		id := string(buf)
		h := activity.LegacyID(id)
		if prev, ok := seen[h]; ok && prev != id {
			t.Fatalf("collision between %q and %q at %d", prev, id, h)
		}
		seen[h] = id
	}
}

func TestBridge_Resolve_FastPathFromCache(t *testing.T) {
	ctx := context.Background()
	legacy := activity.LegacyID("real-id")

	st := &mocks.RecordStore{}
	st.On("List", ctx, "user1").Return([]store.Record{
		{ID: "real-id", Metadata: store.Metadata{HashID: &legacy}},
	}, nil)

	bridge := activity.NewBridge(st, nil)
	id, err := bridge.Resolve(ctx, "user1", legacy)
	require.NoError(t, err)
	require.Equal(t, "real-id", id)
	st.AssertNotCalled(t, "SetHashID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBridge_Resolve_FallbackScanWritesCacheBack(t *testing.T) {
	ctx := context.Background()
	legacy := activity.LegacyID("real-id")

	st := &mocks.RecordStore{}
	st.On("List", ctx, "user1").Return([]store.Record{
		{ID: "decoy"},
		{ID: "real-id"},
	}, nil)
	st.On("SetHashID", ctx, "user1", "real-id", legacy).Return(nil)

	bridge := activity.NewBridge(st, nil)
	id, err := bridge.Resolve(ctx, "user1", legacy)
	require.NoError(t, err)
	require.Equal(t, "real-id", id)
	st.AssertCalled(t, "SetHashID", ctx, "user1", "real-id", legacy)
}

func TestBridge_Resolve_CacheWriteFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	legacy := activity.LegacyID("real-id")

	st := &mocks.RecordStore{}
	st.On("List", ctx, "user1").Return([]store.Record{{ID: "real-id"}}, nil)
	st.On("SetHashID", ctx, "user1", "real-id", legacy).Return(errors.New("write denied"))

	bridge := activity.NewBridge(st, nil)
	id, err := bridge.Resolve(ctx, "user1", legacy)
	require.NoError(t, err)
	require.Equal(t, "real-id", id)
}

func TestBridge_Resolve_NotFound(t *testing.T) {
	ctx := context.Background()

	st := &mocks.RecordStore{}
	st.On("List", ctx, "user1").Return([]store.Record{{ID: "other"}}, nil)

	bridge := activity.NewBridge(st, nil)
	_, err := bridge.Resolve(ctx, "user1", 12345)
	require.ErrorIs(t, err, activity.ErrActivityNotFound)
}
