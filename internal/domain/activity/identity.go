package activity

import (
	"context"
	"log/slog"

	"github.com/seldt/wellspring/internal/repository"
)

// FNV-1a, 32-bit.
const (
	fnvOffset32 uint32 = 0x811c9dc5
	fnvPrime32  uint32 = 0x01000193
)

// LegacyID maps a backend opaque id to the small non-negative integer the
// legacy UI paths expect: FNV-1a folded over the id's UTF-8 bytes, taken
// as an unsigned 32-bit value. Pure; the same input always yields the
// same output.
//
// The scheme is not collision-free: two distinct backend ids may map to
// the same integer, and no detection or resolution is attempted. That is
// a documented limitation of the legacy compatibility layer.
func LegacyID(id string) int64 {
	h := fnvOffset32
	for _, b := range []byte(id) {
		h ^= uint32(b)
		h *= fnvPrime32
	}
	return int64(h)
}

// Bridge resolves legacy integer ids back to backend opaque ids.
type Bridge struct {
	store  repository.RecordStore
	logger *slog.Logger
}

// NewBridge creates an identity bridge over the backend store.
func NewBridge(store repository.RecordStore, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{store: store, logger: logger}
}

// Resolve finds the backend id whose legacy hash equals legacyID. The
// cached hash_id metadata field is checked first; if no record carries a
// matching cache entry the forward hash is recomputed for every record
// the owner has, and matches have their cache written back
// opportunistically for next time. Returns ErrActivityNotFound when no
// record matches.
func (b *Bridge) Resolve(ctx context.Context, owner string, legacyID int64) (string, error) {
	records, err := b.store.List(ctx, owner)
	if err != nil {
		return "", err
	}

	for i := range records {
		if h := records[i].Metadata.HashID; h != nil && *h == legacyID {
			return records[i].ID, nil
		}
	}

	for i := range records {
		rec := &records[i]
		if LegacyID(rec.ID) != legacyID {
			continue
		}
		if rec.Metadata.HashID == nil {
			if err := b.store.SetHashID(ctx, owner, rec.ID, legacyID); err != nil {
				b.logger.Warn("failed to cache legacy id", "id", rec.ID, "error", err)
			}
		}
		return rec.ID, nil
	}

	return "", ErrActivityNotFound
}
