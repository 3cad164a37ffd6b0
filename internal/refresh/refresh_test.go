package refresh_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seldt/wellspring/internal/domain/activity"
	"github.com/seldt/wellspring/internal/refresh"
)

type stubLister struct {
	feed  []activity.Activity
	err   error
	calls int
}

func (s *stubLister) Today(_ context.Context, _ string) ([]activity.Activity, error) {
	s.calls++
	return s.feed, s.err
}

func TestRefresher_RolloverRefetchesToday(t *testing.T) {
	lister := &stubLister{feed: []activity.Activity{{Title: "Walk"}}}
	r, err := refresh.New(lister, "user1", time.UTC, nil)
	require.NoError(t, err)

	r.Rollover()
	require.Equal(t, 1, lister.calls)
}

func TestRefresher_RolloverSwallowsErrors(t *testing.T) {
	lister := &stubLister{err: errors.New("backend down")}
	r, err := refresh.New(lister, "user1", time.UTC, nil)
	require.NoError(t, err)

	require.NotPanics(t, r.Rollover)
	require.Equal(t, 1, lister.calls)
}

func TestRefresher_StartStop(t *testing.T) {
	r, err := refresh.New(&stubLister{}, "user1", time.UTC, nil)
	require.NoError(t, err)
	r.Start()
	r.Stop()
}
