// Package refresh keeps session-local state aligned with the calendar:
// when "today" rolls over at local midnight, the snapshot cache is
// re-primed so every surface recomputes its window from fresh data, and
// upcoming reminders for the new day are logged.
package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/seldt/wellspring/internal/domain/activity"
)

// Lister is the slice of the activity service the refresher needs.
type Lister interface {
	Today(ctx context.Context, owner string) ([]activity.Activity, error)
}

// Refresher re-primes the today view on a schedule.
type Refresher struct {
	service Lister
	owner   string
	cron    *cron.Cron
	logger  *slog.Logger
}

// New creates a Refresher firing at local midnight in loc.
func New(service Lister, owner string, loc *time.Location, logger *slog.Logger) (*Refresher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Refresher{
		service: service,
		owner:   owner,
		cron:    cron.New(cron.WithLocation(loc)),
		logger:  logger,
	}
	if _, err := r.cron.AddFunc("0 0 * * *", r.Rollover); err != nil {
		return nil, err
	}
	return r, nil
}

// Start begins the schedule.
func (r *Refresher) Start() {
	r.cron.Start()
}

// Stop halts the schedule and waits for a running rollover to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

// Rollover refetches today's feed, which re-primes the snapshot cache as
// a side effect of listing, and logs reminders due today. Errors are
// logged, not propagated; the next tick tries again.
func (r *Refresher) Rollover() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	feed, err := r.service.Today(ctx, r.owner)
	if err != nil {
		r.logger.Warn("midnight rollover refresh failed", "error", err)
		return
	}
	r.logger.Info("rolled over to a new day", "activities", len(feed))

	for _, act := range feed {
		if act.ReminderMinutes == nil {
			continue
		}
		r.logger.Info("reminder scheduled",
			"activity", act.Title,
			"at", act.StartTime.Add(-time.Duration(*act.ReminderMinutes)*time.Minute))
	}
}
