package activity

import "github.com/seldt/wellspring/internal/caldate"

// Default series lengths when the caller doesn't cap a new series.
const (
	DefaultDailyOccurrences   = 10
	DefaultWeeklyOccurrences  = 30
	DefaultMonthlyOccurrences = 30
)

// RecurringOptions describes a requested series.
type RecurringOptions struct {
	Type           RecurrenceType `json:"type"`
	Interval       int            `json:"interval"`
	MaxOccurrences int            `json:"max_occurrences,omitempty"`
}

// EffectiveMax returns the explicit occurrence cap, or the per-type default.
func (o RecurringOptions) EffectiveMax() int {
	if o.MaxOccurrences > 0 {
		return o.MaxOccurrences
	}
	switch o.Type {
	case RecurrenceDaily:
		return DefaultDailyOccurrences
	case RecurrenceMonthly:
		return DefaultMonthlyOccurrences
	default:
		return DefaultWeeklyOccurrences
	}
}

// Window is an inclusive calendar-day range.
type Window struct {
	From caldate.Day `json:"from"`
	To   caldate.Day `json:"to"`
}

// SingleDay reports whether the window covers exactly one calendar day,
// the granularity at which no forward generation happens.
func (w Window) SingleDay() bool {
	return w.From == w.To
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d caldate.Day) bool {
	return !d.Before(w.From) && !d.After(w.To)
}

// DayWindow is the single-day window for d.
func DayWindow(d caldate.Day) Window {
	return Window{From: d, To: d}
}

// DeleteScope selects how much of a series a delete removes.
type DeleteScope string

const (
	DeleteSingle DeleteScope = "single"
	DeleteAll    DeleteScope = "all"
)

// CreateRequest describes an activity creation request.
type CreateRequest struct {
	Title           string            `json:"title"`
	Description     string            `json:"description,omitempty"`
	Kind            Kind              `json:"kind,omitempty"`
	StartTime       string            `json:"start_time"`
	EndTime         *string           `json:"end_time,omitempty"`
	Importance      int               `json:"importance,omitempty"`
	Color           string            `json:"color,omitempty"`
	Emoji           string            `json:"emoji,omitempty"`
	ReminderMinutes *int              `json:"reminder_minutes,omitempty"`
	Recurring       *RecurringOptions `json:"recurring,omitempty"`
}

// UpdateRequest describes a partial update. Nil fields are left untouched.
// A non-nil Recurring regenerates the whole series under a new template.
type UpdateRequest struct {
	Title           *string           `json:"title,omitempty"`
	Description     *string           `json:"description,omitempty"`
	Kind            *Kind             `json:"kind,omitempty"`
	StartTime       *string           `json:"start_time,omitempty"`
	EndTime         *string           `json:"end_time,omitempty"`
	Status          *Status           `json:"status,omitempty"`
	Importance      *int              `json:"importance,omitempty"`
	Color           *string           `json:"color,omitempty"`
	Emoji           *string           `json:"emoji,omitempty"`
	ReminderMinutes *int              `json:"reminder_minutes,omitempty"`
	Recurring       *RecurringOptions `json:"recurring,omitempty"`
}
