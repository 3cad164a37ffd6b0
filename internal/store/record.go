// Package store defines the backend store's record shape: the schema the
// remote store persists and transmits. Instants travel as RFC3339 strings
// and are not trusted until the synchronizer parses them; the metadata
// object is explicit and versioned, validated once at this boundary rather
// than re-checked at every read site.
package store

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MetadataVersion identifies the current metadata object layout.
const MetadataVersion = 1

// RecurringMeta marks a record as a non-template member of a series.
type RecurringMeta struct {
	OriginalID       string `json:"original_id" validate:"required"`
	Type             string `json:"type" validate:"required,oneof=daily weekly monthly"`
	Interval         int    `json:"interval" validate:"required,gte=1"`
	OccurrenceNumber int    `json:"occurrence_number" validate:"gte=1"`
}

// Metadata is the presentation and scheduling extras carried by a record.
type Metadata struct {
	Version         int            `json:"version" validate:"gte=0,lte=1"`
	Importance      int            `json:"importance" validate:"gte=0,lte=5"`
	Color           string         `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Emoji           string         `json:"emoji,omitempty" validate:"omitempty,max=16"`
	ReminderMinutes *int           `json:"reminder_minutes,omitempty" validate:"omitempty,gte=0"`
	Recurring       *RecurringMeta `json:"recurring,omitempty"`
	// HashID caches the legacy integer id so reverse lookups can skip the
	// full rehash scan. Zero means never populated.
	HashID *int64 `json:"hash_id,omitempty" validate:"omitempty,gte=0"`
}

// Record is one persisted row, backend shape.
type Record struct {
	ID          string   `json:"id" validate:"required"`
	Owner       string   `json:"owner" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	TypeRef     string   `json:"type_ref" validate:"required,oneof=restorative neutral mixed depleting"`
	StartTime   string   `json:"start_time" validate:"required"`
	EndTime     *string  `json:"end_time,omitempty"`
	Status      string   `json:"status" validate:"required,oneof=planned completed"`
	Metadata    Metadata `json:"metadata"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the record against the boundary rules. It does not parse
// StartTime; an unparsable instant is dropped on read, not rejected on write.
func (r *Record) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid record %s: %w", r.ID, err)
	}
	return nil
}

// Validate checks stand-alone metadata, for callers patching metadata only.
func (m *Metadata) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("invalid metadata: %w", err)
	}
	return nil
}
