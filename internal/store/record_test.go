package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seldt/wellspring/internal/store"
)

func validRecord() store.Record {
	return store.Record{
		ID:        "9f2c1a7e",
		Owner:     "user1",
		Title:     "Morning walk",
		TypeRef:   "restorative",
		StartTime: "2025-06-01T08:00:00Z",
		Status:    "planned",
		Metadata:  store.Metadata{Version: store.MetadataVersion, Importance: 2},
	}
}

func TestRecord_Validate(t *testing.T) {
	rec := validRecord()
	require.NoError(t, rec.Validate())
}

func TestRecord_Validate_RejectsUnknownStatus(t *testing.T) {
	rec := validRecord()
	rec.Status = "someday"
	require.Error(t, rec.Validate())
}

func TestRecord_Validate_RejectsUnknownKind(t *testing.T) {
	rec := validRecord()
	rec.TypeRef = "energizing"
	require.Error(t, rec.Validate())
}

func TestRecord_Validate_RecurringRules(t *testing.T) {
	rec := validRecord()
	rec.Metadata.Recurring = &store.RecurringMeta{
		OriginalID:       "abc",
		Type:             "weekly",
		Interval:         2,
		OccurrenceNumber: 3,
	}
	require.NoError(t, rec.Validate())

	rec.Metadata.Recurring.Interval = 0
	require.Error(t, rec.Validate())

	rec.Metadata.Recurring.Interval = 1
	rec.Metadata.Recurring.Type = "yearly"
	require.Error(t, rec.Validate())
}

func TestRecord_Validate_DoesNotParseStartTime(t *testing.T) {
	// Unparsable instants are dropped on read, not rejected on write.
	rec := validRecord()
	rec.StartTime = "not-a-time"
	require.NoError(t, rec.Validate())
}

func TestMetadata_Validate_Color(t *testing.T) {
	m := store.Metadata{Version: 1, Color: "#AED6F1"}
	require.NoError(t, m.Validate())
	m.Color = "skyblue"
	require.Error(t, m.Validate())
}
