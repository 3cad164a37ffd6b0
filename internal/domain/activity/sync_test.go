package activity_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seldt/wellspring/internal/caldate"
	"github.com/seldt/wellspring/internal/domain/activity"
	"github.com/seldt/wellspring/internal/store"
)

func newSynchronizer(loc *time.Location) *activity.Synchronizer {
	return activity.NewSynchronizer(caldate.NewLocalizer(loc), slog.Default())
}

func storeRecord(id, startISO string) store.Record {
	return store.Record{
		ID:        id,
		Owner:     "user1",
		Title:     "Activity " + id,
		TypeRef:   "neutral",
		StartTime: startISO,
		Status:    "planned",
		Metadata:  store.Metadata{Version: store.MetadataVersion},
	}
}

func TestSynchronize_TodayFeedEqualsDayGrid(t *testing.T) {
	// The core cross-view invariant: for a fixed snapshot, the today feed
	// and the day grid asking about the same day agree on membership and
	// order exactly.
	snapshot := []store.Record{
		storeRecord("c", "2025-06-02T15:00:00Z"),
		storeRecord("a", "2025-06-02T08:00:00Z"),
		storeRecord("b", "2025-06-02T08:00:00Z"),
		storeRecord("elsewhere", "2025-06-03T08:00:00Z"),
	}
	s := newSynchronizer(time.UTC)
	day := caldate.NewDay(2025, time.June, 2)

	feed := s.Synchronize(snapshot, activity.DayWindow(day))
	grid := s.Synchronize(snapshot, activity.Window{From: day, To: day})

	require.Equal(t, feed, grid)

	var feedIDs []string
	for _, act := range feed {
		feedIDs = append(feedIDs, act.ID)
	}
	// Sorted by start time; the 08:00 tie is broken by creation order.
	require.Equal(t, []string{"a", "b", "c"}, feedIDs)
}

func TestSynchronize_DropsUnparsableWithoutShiftingOthers(t *testing.T) {
	snapshot := []store.Record{
		storeRecord("a", "2025-06-02T08:00:00Z"),
		storeRecord("broken", "yesterday at nine"),
		storeRecord("b", "2025-06-02T09:00:00Z"),
	}
	s := newSynchronizer(time.UTC)
	got := s.Synchronize(snapshot, activity.DayWindow(caldate.NewDay(2025, time.June, 2)))

	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].ID)
	require.Equal(t, "b", got[1].ID)
}

func TestSynchronize_LocalizesWithInjectedZone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 23:30 UTC on June 1 is June 2 in Tokyo: the record belongs to the
	// Tokyo viewer's June 2, not the instant's source day.
	snapshot := []store.Record{storeRecord("late", "2025-06-01T23:30:00Z")}

	utcView := newSynchronizer(time.UTC).Synchronize(snapshot, activity.DayWindow(caldate.NewDay(2025, time.June, 2)))
	require.Empty(t, utcView)

	tokyoView := newSynchronizer(tokyo).Synchronize(snapshot, activity.DayWindow(caldate.NewDay(2025, time.June, 2)))
	require.Len(t, tokyoView, 1)
	require.Equal(t, "2025-06-02", tokyoView[0].Date.String())
}

func TestSynchronize_StableSortTieBreak(t *testing.T) {
	// Four records at the identical instant keep creation order.
	snapshot := []store.Record{
		storeRecord("w", "2025-06-02T08:00:00Z"),
		storeRecord("x", "2025-06-02T08:00:00Z"),
		storeRecord("y", "2025-06-02T08:00:00Z"),
		storeRecord("z", "2025-06-02T08:00:00Z"),
	}
	s := newSynchronizer(time.UTC)
	got := s.Synchronize(snapshot, activity.DayWindow(caldate.NewDay(2025, time.June, 2)))

	var ids []string
	for _, act := range got {
		ids = append(ids, act.ID)
	}
	require.Equal(t, []string{"w", "x", "y", "z"}, ids)
}

func TestSynchronize_DoesNotMutateSnapshot(t *testing.T) {
	snapshot := []store.Record{
		storeRecord("a", "2025-06-02T08:00:00Z"),
	}
	orig := snapshot[0]

	s := newSynchronizer(time.UTC)
	_ = s.Synchronize(snapshot, activity.DayWindow(caldate.NewDay(2025, time.June, 2)))
	require.Equal(t, orig, snapshot[0])
}

func TestSynchronize_BridgesLegacyIDs(t *testing.T) {
	snapshot := []store.Record{storeRecord("a", "2025-06-02T08:00:00Z")}
	s := newSynchronizer(time.UTC)
	got := s.Synchronize(snapshot, activity.DayWindow(caldate.NewDay(2025, time.June, 2)))
	require.Len(t, got, 1)
	require.Equal(t, activity.LegacyID("a"), got[0].LegacyID)
}

func TestSynchronize_ExpandsRecurringSeriesInWindow(t *testing.T) {
	reminder := 10
	template := storeRecord("tmpl", "2025-06-01T08:00:00Z")
	template.Metadata.ReminderMinutes = &reminder

	member := storeRecord("m1", "2025-06-02T08:00:00Z")
	member.Metadata.Recurring = &store.RecurringMeta{
		OriginalID:       "tmpl",
		Type:             "daily",
		Interval:         1,
		OccurrenceNumber: 3,
	}

	s := newSynchronizer(time.UTC)
	got := s.Synchronize([]store.Record{template, member},
		activity.Window{From: caldate.NewDay(2025, time.June, 1), To: caldate.NewDay(2025, time.June, 7)})

	// Template, materialized member, and synthesized occurrences for the
	// missing dates implied by occurrence number 3 (June 3 and June 4;
	// June 2 is taken by the materialized member).
	require.Len(t, got, 4)

	dates := map[string]bool{}
	for _, act := range got {
		dates[act.Date.String()] = true
	}
	require.True(t, dates["2025-06-01"])
	require.True(t, dates["2025-06-02"])
	require.True(t, dates["2025-06-03"])
	require.True(t, dates["2025-06-04"])
}
