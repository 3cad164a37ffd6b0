package activity

import (
	"fmt"
	"time"

	"github.com/seldt/wellspring/internal/caldate"
)

// Generate expands a series template into its full ordered occurrence
// list. Occurrence 0 is the template unchanged; occurrence i is a copy
// with a freshly minted id, its date advanced by interval*i units, and
// member metadata pointing back at the template.
//
// Id minting is an input so the function stays deterministic: given the
// same template, options, and id sequence it always returns the same list.
// Month advancement follows the clamp policy (see caldate.Day.AddMonths).
func Generate(template Activity, opts RecurringOptions, newID func() string) ([]Activity, error) {
	if template.Recurring != nil {
		return nil, ErrTemplateHasRecurrence
	}
	if newID == nil {
		return nil, fmt.Errorf("%w: nil id source", ErrInvalidInput)
	}
	if err := validateRecurringOptions(opts); err != nil {
		return nil, err
	}

	count := opts.EffectiveMax()
	series := make([]Activity, 0, count)
	series = append(series, template)

	for i := 1; i < count; i++ {
		occ := template
		occ.ID = newID()
		occ.LegacyID = LegacyID(occ.ID)
		occ.Date = advance(template.Date, opts.Type, opts.Interval*i)
		occ.StartTime, occ.EndTime = shiftTimes(template, occ.Date)
		occ.Recurring = &Recurring{
			OriginalID:       template.ID,
			Type:             opts.Type,
			Interval:         opts.Interval,
			OccurrenceNumber: i,
		}
		series = append(series, occ)
	}

	return series, nil
}

func validateRecurringOptions(opts RecurringOptions) error {
	switch opts.Type {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidRecurrence, opts.Type)
	}
	if opts.Interval < 1 {
		return fmt.Errorf("%w: interval %d", ErrInvalidRecurrence, opts.Interval)
	}
	if opts.MaxOccurrences < 0 {
		return fmt.Errorf("%w: max occurrences %d", ErrInvalidRecurrence, opts.MaxOccurrences)
	}
	return nil
}

// advance moves a calendar day forward by steps units of typ.
func advance(d caldate.Day, typ RecurrenceType, steps int) caldate.Day {
	switch typ {
	case RecurrenceWeekly:
		return d.AddWeeks(steps)
	case RecurrenceMonthly:
		return d.AddMonths(steps)
	default:
		return d.AddDays(steps)
	}
}

// shiftTimes rebases the template's instants onto day, keeping the
// time-of-day and the start-to-end span intact.
func shiftTimes(template Activity, day caldate.Day) (time.Time, *time.Time) {
	start := template.StartTime
	midnight := template.Date.In(start.Location())
	shifted := day.In(start.Location()).Add(start.Sub(midnight))
	if template.EndTime == nil {
		return shifted, nil
	}
	end := shifted.Add(template.EndTime.Sub(start))
	return shifted, &end
}
