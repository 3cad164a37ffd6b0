// Package ical renders a synchronized activity window as an iCalendar
// feed, so external calendar clients can subscribe to the same list the
// in-app surfaces render.
package ical

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/seldt/wellspring/internal/domain/activity"
)

const prodID = "-//wellspring//activity feed//EN"

// Export serializes an already-synchronized activity list. The list
// arrives filtered and sorted; this layer only translates, it never
// re-orders or re-filters.
func Export(activities []activity.Activity) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(prodID)

	for _, act := range activities {
		ev := cal.AddEvent(eventUID(act))
		ev.SetDtStampTime(act.StartTime)
		ev.SetStartAt(act.StartTime)
		if act.EndTime != nil {
			ev.SetEndAt(*act.EndTime)
		} else {
			// Backends storing open-ended activities still need a DTEND
			// for grid clients; default to a 30 minute block.
			ev.SetEndAt(act.StartTime.Add(30 * time.Minute))
		}

		summary := act.Title
		if act.Emoji != "" {
			summary = act.Emoji + " " + act.Title
		}
		ev.SetSummary(summary)
		if act.Description != "" {
			ev.SetDescription(act.Description)
		}
		ev.SetProperty(ics.ComponentProperty("CATEGORIES"), string(act.Kind))

		if act.Status == activity.StatusCompleted {
			ev.SetStatus(ics.ObjectStatusCompleted)
		} else {
			ev.SetStatus(ics.ObjectStatusConfirmed)
		}
	}

	return cal.Serialize()
}

// eventUID keeps transient occurrences distinguishable from persisted
// ones across exports; both are stable for a fixed snapshot and window.
func eventUID(act activity.Activity) string {
	return fmt.Sprintf("%s@wellspring", act.ID)
}
