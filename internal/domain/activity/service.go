package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/seldt/wellspring/internal/cache"
	"github.com/seldt/wellspring/internal/repository"
	"github.com/seldt/wellspring/internal/store"
)

// Service exposes the legacy-compatible operation surface over the
// backend store: create, update, delete by legacy integer id, and the
// synchronized window-scoped list every presentation surface reads.
//
// Mutations are optimistic: the local snapshot cache is updated before
// the remote call and rolled back if it fails. There is no retry and no
// cancellation of in-flight remote calls; if two mutations targeting the
// same id race, the last response to resolve wins.
type Service struct {
	store  repository.RecordStore
	cache  *cache.Snapshot
	sync   *Synchronizer
	bridge *Bridge
	clock  repository.Clock
	logger *slog.Logger
	newID  func() string
}

// NewService creates a new activity service.
func NewService(
	st repository.RecordStore,
	snap *cache.Snapshot,
	sync *Synchronizer,
	clock repository.Clock,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = repository.ClockFunc(time.Now)
	}
	return &Service{
		store:  st,
		cache:  snap,
		sync:   sync,
		bridge: NewBridge(st, logger),
		clock:  clock,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// Create persists a new activity and, when recurrence options are given,
// its entire generated series in one pass. Returns the legacy integer id
// of the template.
func (s *Service) Create(ctx context.Context, owner string, req CreateRequest) (int64, error) {
	if req.Title == "" {
		return 0, fmt.Errorf("%w: title required", ErrInvalidInput)
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return 0, fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	var end *time.Time
	if req.EndTime != nil {
		t, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return 0, fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
		}
		end = &t
	}

	kind := req.Kind
	if kind == "" {
		kind = KindNeutral
	}

	template := Activity{
		ID:              s.newID(),
		Owner:           owner,
		Title:           req.Title,
		Description:     req.Description,
		Kind:            kind,
		StartTime:       start,
		EndTime:         end,
		Date:            s.sync.Localizer().DayOf(start),
		Status:          StatusPlanned,
		Importance:      req.Importance,
		Color:           req.Color,
		Emoji:           req.Emoji,
		ReminderMinutes: req.ReminderMinutes,
	}
	template.LegacyID = LegacyID(template.ID)

	series := []Activity{template}
	if req.Recurring != nil {
		series, err = Generate(template, *req.Recurring, s.newID)
		if err != nil {
			return 0, err
		}
	}

	if err := s.persistSeries(ctx, owner, series); err != nil {
		return 0, err
	}
	return template.LegacyID, nil
}

// Update applies a partial update to the activity behind a legacy id.
// An unknown id is reported as ErrActivityNotFound, a recoverable
// transient condition, never a fatal failure. A request carrying
// recurrence options destroys the former series and regenerates a fresh
// one under a new template id.
func (s *Service) Update(ctx context.Context, owner string, legacyID int64, req UpdateRequest) error {
	id, err := s.bridge.Resolve(ctx, owner, legacyID)
	if err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			s.logger.Info("update of unknown legacy id ignored", "legacy_id", legacyID)
			return ErrActivityNotFound
		}
		return err
	}

	if req.Recurring != nil {
		return s.regenerate(ctx, owner, id, req)
	}

	rec, err := s.store.Get(ctx, owner, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("loading activity: %w", err)
	}

	updated := *rec
	if err := applyFields(&updated, req); err != nil {
		return err
	}

	rollback := s.optimisticUpsert(updated)
	if err := s.store.Update(ctx, owner, &updated); err != nil {
		rollback()
		if errors.Is(err, repository.ErrNotFound) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("updating activity: %w", err)
	}
	return nil
}

// Delete removes the activity behind a legacy id. Scope "all" removes the
// whole series the record belongs to. Unknown ids are a no-op.
func (s *Service) Delete(ctx context.Context, owner string, legacyID int64, scope DeleteScope) error {
	if scope == "" {
		scope = DeleteSingle
	}

	id, err := s.bridge.Resolve(ctx, owner, legacyID)
	if err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			s.logger.Info("delete of unknown legacy id ignored", "legacy_id", legacyID)
			return nil
		}
		return err
	}

	records, err := s.store.List(ctx, owner)
	if err != nil {
		return fmt.Errorf("listing activities: %w", err)
	}
	canonical := s.sync.Canonicalize(records)

	ids := ResolveDeletion(canonical, id, scope)
	if len(ids) == 0 {
		return nil
	}

	rollback := s.optimisticRemove(ids)
	if err := s.deleteAll(ctx, owner, ids); err != nil {
		rollback()
		return err
	}
	return nil
}

// List returns the synchronized activity list for the window. A nil
// window means "today". Every surface calls this and nothing else, so a
// today feed and a day grid asking about the same day read exactly the
// same bytes. When the backend is unreachable the primed snapshot cache
// answers instead.
func (s *Service) List(ctx context.Context, owner string, win *Window) ([]Activity, error) {
	w := s.effectiveWindow(win)

	records, err := s.store.List(ctx, owner)
	if err != nil {
		if cached, ok := s.cache.Records(); ok {
			s.logger.Warn("backend unavailable, serving cached snapshot", "error", err)
			return s.sync.Synchronize(cached, w), nil
		}
		return nil, fmt.Errorf("listing activities: %w", err)
	}

	s.cache.Replace(records)
	return s.sync.Synchronize(records, w), nil
}

// Today returns today's feed: the single-day synchronized list for the
// current day in the viewer's zone.
func (s *Service) Today(ctx context.Context, owner string) ([]Activity, error) {
	return s.List(ctx, owner, nil)
}

func (s *Service) effectiveWindow(win *Window) Window {
	if win != nil {
		return *win
	}
	return DayWindow(s.sync.Localizer().DayOf(s.clock.Now()))
}

// regenerate replaces an entire series: two sequential remote
// round-trips with no wrapping transaction. The new series is created
// and confirmed first, then the old group is deleted, so the series is
// never transiently empty. A failure between the steps surfaces as a
// PartialFailureError and the authoritative snapshot is re-fetched so
// local state resynchronizes instead of being patched by hand.
func (s *Service) regenerate(ctx context.Context, owner, id string, req UpdateRequest) error {
	rec, err := s.store.Get(ctx, owner, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("loading activity: %w", err)
	}

	patched := *rec
	if err := applyFields(&patched, req); err != nil {
		return err
	}
	canonicalOne := s.sync.Canonicalize([]store.Record{patched})
	if len(canonicalOne) == 0 {
		return fmt.Errorf("%w: unparsable start time", ErrInvalidInput)
	}

	template := canonicalOne[0]
	template.ID = s.newID()
	template.LegacyID = LegacyID(template.ID)
	template.Recurring = nil
	template.Status = StatusPlanned

	series, err := Generate(template, *req.Recurring, s.newID)
	if err != nil {
		return err
	}

	records, err := s.store.List(ctx, owner)
	if err != nil {
		return fmt.Errorf("listing activities: %w", err)
	}
	oldIDs := ResolveDeletion(s.sync.Canonicalize(records), id, DeleteAll)

	if err := s.persistSeries(ctx, owner, series); err != nil {
		s.resync(ctx, owner)
		return &PartialFailureError{Step: StepCreateNewSeries, Err: err}
	}

	if err := s.deleteAll(ctx, owner, oldIDs); err != nil {
		s.resync(ctx, owner)
		return &PartialFailureError{Step: StepDeleteOldSeries, Err: err}
	}

	s.resync(ctx, owner)
	return nil
}

func (s *Service) persistSeries(ctx context.Context, owner string, series []Activity) error {
	recs := make([]store.Record, len(series))
	for i := range series {
		recs[i] = toStoreRecord(series[i])
	}

	rollback := s.optimisticAppend(recs)
	for i := range recs {
		if err := s.store.Create(ctx, owner, &recs[i]); err != nil {
			rollback()
			return fmt.Errorf("creating activity %s: %w", recs[i].ID, err)
		}
	}
	return nil
}

func (s *Service) deleteAll(ctx context.Context, owner string, ids []string) error {
	for _, id := range ids {
		err := s.store.Delete(ctx, owner, id)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("deleting activity %s: %w", id, err)
		}
	}
	return nil
}

// resync pulls the authoritative snapshot after a partial failure. Best
// effort; if the backend is still down the stale cache stays in place.
func (s *Service) resync(ctx context.Context, owner string) {
	records, err := s.store.List(ctx, owner)
	if err != nil {
		s.logger.Warn("resync after regeneration failed", "error", err)
		return
	}
	s.cache.Replace(records)
}

// optimisticAppend, optimisticUpsert, and optimisticRemove apply a
// mutation to the cached snapshot ahead of the remote call and return a
// rollback restoring the prior snapshot wholesale.
func (s *Service) optimisticAppend(recs []store.Record) func() {
	prev, ok := s.cache.Records()
	if !ok {
		return func() {}
	}
	s.cache.Replace(append(prev, recs...))
	return func() { s.cache.Replace(prev) }
}

func (s *Service) optimisticUpsert(rec store.Record) func() {
	prev, ok := s.cache.Records()
	if !ok {
		return func() {}
	}
	next := make([]store.Record, len(prev))
	copy(next, prev)
	for i := range next {
		if next[i].ID == rec.ID {
			next[i] = rec
			break
		}
	}
	s.cache.Replace(next)
	return func() { s.cache.Replace(prev) }
}

func (s *Service) optimisticRemove(ids []string) func() {
	prev, ok := s.cache.Records()
	if !ok {
		return func() {}
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	next := make([]store.Record, 0, len(prev))
	for _, rec := range prev {
		if !drop[rec.ID] {
			next = append(next, rec)
		}
	}
	s.cache.Replace(next)
	return func() { s.cache.Replace(prev) }
}

func applyFields(rec *store.Record, req UpdateRequest) error {
	if req.Title != nil {
		rec.Title = *req.Title
	}
	if req.Description != nil {
		rec.Description = *req.Description
	}
	if req.Kind != nil {
		rec.TypeRef = string(*req.Kind)
	}
	if req.StartTime != nil {
		if _, err := time.Parse(time.RFC3339, *req.StartTime); err != nil {
			return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
		}
		rec.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		if _, err := time.Parse(time.RFC3339, *req.EndTime); err != nil {
			return fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
		}
		rec.EndTime = req.EndTime
	}
	if req.Status != nil {
		rec.Status = string(*req.Status)
	}
	if req.Importance != nil {
		rec.Metadata.Importance = *req.Importance
	}
	if req.Color != nil {
		rec.Metadata.Color = *req.Color
	}
	if req.Emoji != nil {
		rec.Metadata.Emoji = *req.Emoji
	}
	if req.ReminderMinutes != nil {
		rec.Metadata.ReminderMinutes = req.ReminderMinutes
	}
	return nil
}

func toStoreRecord(act Activity) store.Record {
	hashID := act.LegacyID
	rec := store.Record{
		ID:        act.ID,
		Owner:     act.Owner,
		Title:     act.Title,
		TypeRef:   string(act.Kind),
		StartTime: act.StartTime.UTC().Format(time.RFC3339),
		Status:    string(act.Status),
		Metadata: store.Metadata{
			Version:         store.MetadataVersion,
			Importance:      act.Importance,
			Color:           act.Color,
			Emoji:           act.Emoji,
			ReminderMinutes: act.ReminderMinutes,
			HashID:          &hashID,
		},
	}
	rec.Description = act.Description
	if act.EndTime != nil {
		end := act.EndTime.UTC().Format(time.RFC3339)
		rec.EndTime = &end
	}
	if act.Recurring != nil {
		rec.Metadata.Recurring = &store.RecurringMeta{
			OriginalID:       act.Recurring.OriginalID,
			Type:             string(act.Recurring.Type),
			Interval:         act.Recurring.Interval,
			OccurrenceNumber: act.Recurring.OccurrenceNumber,
		}
	}
	return rec
}
