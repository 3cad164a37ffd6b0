package activity

import (
	"fmt"

	"github.com/seldt/wellspring/internal/caldate"
)

// seriesShape is what the expander can reconstruct about a series from
// its materialized members: the advancement parameters and the highest
// occurrence number ever observed.
type seriesShape struct {
	template *Activity
	typ      RecurrenceType
	interval int
	maxSeen  int
}

// ExpandWindow returns the window's activities: every materialized record
// whose date falls inside the window, plus transient occurrences
// synthesized for any series whose generated date sequence reaches into
// the window without a materialized member on that date. Synthesized
// instances are never persisted.
//
// Single-day windows never forward-generate: only records whose own date
// equals the requested day are returned, as is.
//
// The function never mutates collection, and its output (content and
// order) is fully determined by its inputs.
func ExpandWindow(collection []Activity, win Window) []Activity {
	out := make([]Activity, 0, len(collection))
	for _, act := range collection {
		if win.Contains(act.Date) {
			out = append(out, act)
		}
	}
	if win.SingleDay() {
		return out
	}

	covered := make(map[string]map[caldate.Day]bool)
	shapes := make(map[string]*seriesShape)
	var order []string

	for i := range collection {
		act := &collection[i]
		key := act.SeriesKey()

		if act.Recurring == nil {
			// A template alone says nothing about its series; the
			// advancement parameters live on its members.
			if shape, ok := shapes[key]; ok {
				shape.template = act
			} else if hasMemberLater(collection[i+1:], key) {
				shapes[key] = &seriesShape{template: act}
				order = append(order, key)
			}
			markCovered(covered, key, act.Date)
			continue
		}

		shape, ok := shapes[key]
		if !ok {
			shape = &seriesShape{}
			shapes[key] = shape
			order = append(order, key)
		}
		shape.typ = act.Recurring.Type
		shape.interval = act.Recurring.Interval
		if act.Recurring.OccurrenceNumber > shape.maxSeen {
			shape.maxSeen = act.Recurring.OccurrenceNumber
		}
		markCovered(covered, key, act.Date)
	}

	for _, key := range order {
		shape := shapes[key]
		// Without the template there is no reliable anchor: month
		// advancement clamps, so walking backwards from a member is
		// lossy. Such a series contributes only its materialized rows.
		if shape.template == nil || shape.interval < 1 {
			continue
		}
		anchor := shape.template.Date
		for i := 1; i <= shape.maxSeen; i++ {
			day := advance(anchor, shape.typ, shape.interval*i)
			if !win.Contains(day) || covered[key][day] {
				continue
			}
			out = append(out, synthesize(*shape.template, shape, i, day))
		}
	}

	return out
}

func synthesize(template Activity, shape *seriesShape, n int, day caldate.Day) Activity {
	occ := template
	// Deterministic transient id: series key plus occurrence number.
	// Store ids are UUIDs, so the '#' form cannot collide with them.
	occ.ID = fmt.Sprintf("%s#%d", template.ID, n)
	occ.LegacyID = LegacyID(occ.ID)
	occ.Date = day
	occ.StartTime, occ.EndTime = shiftTimes(template, day)
	occ.Recurring = &Recurring{
		OriginalID:       template.ID,
		Type:             shape.typ,
		Interval:         shape.interval,
		OccurrenceNumber: n,
	}
	occ.Transient = true
	return occ
}

func markCovered(covered map[string]map[caldate.Day]bool, key string, day caldate.Day) {
	if covered[key] == nil {
		covered[key] = make(map[caldate.Day]bool)
	}
	covered[key][day] = true
}

func hasMemberLater(rest []Activity, key string) bool {
	for i := range rest {
		if rest[i].Recurring != nil && rest[i].Recurring.OriginalID == key {
			return true
		}
	}
	return false
}
