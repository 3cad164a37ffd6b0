package repository

import (
	"context"
	"time"

	"github.com/seldt/wellspring/internal/store"
)

// RecordStore is the backend activity store. It is a plain CRUD surface:
// no recurrence awareness, no transactions spanning more than one call.
type RecordStore interface {
	Create(ctx context.Context, owner string, rec *store.Record) error
	Get(ctx context.Context, owner, id string) (*store.Record, error)
	Update(ctx context.Context, owner string, rec *store.Record) error
	Delete(ctx context.Context, owner, id string) error
	List(ctx context.Context, owner string) ([]store.Record, error)
	// SetHashID writes the cached legacy-id metadata field without
	// touching the rest of the record.
	SetHashID(ctx context.Context, owner, id string, hashID int64) error
}

// Clock supplies "now" so today-relative behavior is injectable.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }
