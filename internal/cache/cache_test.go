package cache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seldt/wellspring/internal/cache"
	"github.com/seldt/wellspring/internal/store"
)

func TestSnapshot_Lifecycle(t *testing.T) {
	s := cache.NewSnapshot()

	_, ok := s.Records()
	require.False(t, ok, "unprimed cache serves nothing")

	s.Replace([]store.Record{{ID: "a"}, {ID: "b"}})
	got, ok := s.Records()
	require.True(t, ok)
	require.Len(t, got, 2)

	s.Clear()
	_, ok = s.Records()
	require.False(t, ok)
}

func TestSnapshot_ReplaceIsWholesale(t *testing.T) {
	s := cache.NewSnapshot()
	s.Replace([]store.Record{{ID: "a"}, {ID: "b"}})
	s.Replace([]store.Record{{ID: "c"}})

	got, ok := s.Records()
	require.True(t, ok)
	require.Len(t, got, 1)
	require.Equal(t, "c", got[0].ID)
}

func TestSnapshot_ReturnsCopies(t *testing.T) {
	s := cache.NewSnapshot()
	s.Replace([]store.Record{{ID: "a", Title: "original"}})

	got, _ := s.Records()
	got[0].Title = "mutated"

	again, _ := s.Records()
	require.Equal(t, "original", again[0].Title)
}

func TestSnapshot_ReplaceEmptyStillPrimes(t *testing.T) {
	s := cache.NewSnapshot()
	s.Replace(nil)
	got, ok := s.Records()
	require.True(t, ok)
	require.Empty(t, got)
}
