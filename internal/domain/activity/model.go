package activity

import (
	"time"

	"github.com/seldt/wellspring/internal/caldate"
)

// Kind classifies what an activity does to the person doing it
type Kind string

const (
	KindRestorative Kind = "restorative"
	KindNeutral     Kind = "neutral"
	KindMixed       Kind = "mixed"
	KindDepleting   Kind = "depleting"
)

// Status is the per-occurrence completion state. It is independently
// mutable per occurrence; there is no group-level status.
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusCompleted Status = "completed"
)

// RecurrenceType is the unit a series advances by.
type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
)

// Recurring links a non-template occurrence back to its series. Occurrence
// 0 of a series (the template) never carries this; every other member
// points at the template's id via OriginalID.
type Recurring struct {
	OriginalID       string         `json:"original_id"`
	Type             RecurrenceType `json:"type"`
	Interval         int            `json:"interval"`
	OccurrenceNumber int            `json:"occurrence_number"`
}

// Activity is one schedulable unit in canonical (parsed, localized) form.
type Activity struct {
	ID          string `json:"id"`
	LegacyID    int64  `json:"legacy_id"`
	Owner       string `json:"owner"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Kind        Kind   `json:"kind"`

	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	// Date is the activity's calendar day in the viewer's zone, derived
	// once from StartTime. It is never compared as an instant.
	Date caldate.Day `json:"date"`

	Status Status `json:"status"`

	Importance      int    `json:"importance"`
	Color           string `json:"color,omitempty"`
	Emoji           string `json:"emoji,omitempty"`
	ReminderMinutes *int   `json:"reminder_minutes,omitempty"`

	Recurring *Recurring `json:"recurring,omitempty"`

	// Transient marks an occurrence synthesized by the expander for the
	// current window; it has no backing store record.
	Transient bool `json:"transient,omitempty"`

	// Seq is the record's creation order within the owner's collection,
	// used as the stable sort tie-breaker. Synthesized occurrences
	// inherit their template's Seq.
	Seq int `json:"-"`
}

// SeriesKey returns the id grouping this activity's series: the template's
// own id, or the OriginalID a member points at.
func (a *Activity) SeriesKey() string {
	if a.Recurring != nil {
		return a.Recurring.OriginalID
	}
	return a.ID
}
