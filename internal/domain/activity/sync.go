package activity

import (
	"log/slog"
	"sort"
	"time"

	"github.com/seldt/wellspring/internal/caldate"
	"github.com/seldt/wellspring/internal/store"
)

// Synchronizer is the single authoritative path from backend-shaped
// records to the list a presentation surface renders. Every surface that
// asks for the same window over the same snapshot gets identical
// membership in identical order; that property is the point of this type.
type Synchronizer struct {
	localizer caldate.Localizer
	logger    *slog.Logger
}

// NewSynchronizer creates a Synchronizer converting instants to calendar
// days in the given localizer's zone.
func NewSynchronizer(localizer caldate.Localizer, logger *slog.Logger) *Synchronizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer{localizer: localizer, logger: logger}
}

// Synchronize runs the pipeline: validate, localize, expand, filter,
// sort. Records whose start instant fails to parse are dropped and
// logged, never propagated; the input snapshot is never mutated.
func (s *Synchronizer) Synchronize(snapshot []store.Record, win Window) []Activity {
	canonical := s.Canonicalize(snapshot)

	expanded := ExpandWindow(canonical, win)

	// The expander already scoped its output, but the filter contract is
	// on localized dates, so re-check rather than trust the layering.
	filtered := make([]Activity, 0, len(expanded))
	for _, act := range expanded {
		if win.Contains(act.Date) {
			filtered = append(filtered, act)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if !filtered[i].StartTime.Equal(filtered[j].StartTime) {
			return filtered[i].StartTime.Before(filtered[j].StartTime)
		}
		return filtered[i].Seq < filtered[j].Seq
	})

	return filtered
}

// Canonicalize validates and localizes a backend snapshot into the
// canonical collection: parsed instants, derived calendar days, legacy
// ids bridged. Invalid records are observable in the logs but never
// block the rest of the collection.
func (s *Synchronizer) Canonicalize(snapshot []store.Record) []Activity {
	canonical := make([]Activity, 0, len(snapshot))
	for i, rec := range snapshot {
		act, err := s.canonicalizeOne(rec, i)
		if err != nil {
			s.logger.Warn("dropping record with unparsable start instant",
				"id", rec.ID, "start_time", rec.StartTime, "error", err)
			continue
		}
		canonical = append(canonical, act)
	}
	return canonical
}

func (s *Synchronizer) canonicalizeOne(rec store.Record, seq int) (Activity, error) {
	start, err := time.Parse(time.RFC3339, rec.StartTime)
	if err != nil {
		return Activity{}, err
	}

	var end *time.Time
	if rec.EndTime != nil {
		if t, err := time.Parse(time.RFC3339, *rec.EndTime); err == nil {
			end = &t
		} else {
			s.logger.Warn("ignoring unparsable end instant", "id", rec.ID, "end_time", *rec.EndTime)
		}
	}

	act := Activity{
		ID:              rec.ID,
		LegacyID:        LegacyID(rec.ID),
		Owner:           rec.Owner,
		Title:           rec.Title,
		Description:     rec.Description,
		Kind:            Kind(rec.TypeRef),
		StartTime:       start,
		EndTime:         end,
		Date:            s.localizer.DayOf(start),
		Status:          Status(rec.Status),
		Importance:      rec.Metadata.Importance,
		Color:           rec.Metadata.Color,
		Emoji:           rec.Metadata.Emoji,
		ReminderMinutes: rec.Metadata.ReminderMinutes,
		Seq:             seq,
	}
	if r := rec.Metadata.Recurring; r != nil {
		act.Recurring = &Recurring{
			OriginalID:       r.OriginalID,
			Type:             RecurrenceType(r.Type),
			Interval:         r.Interval,
			OccurrenceNumber: r.OccurrenceNumber,
		}
	}
	return act, nil
}

// Localizer exposes the zone context the synchronizer localizes into.
func (s *Synchronizer) Localizer() caldate.Localizer {
	return s.localizer
}
