package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/baharkarakas/legion/internal/apperr"
	"github.com/baharkarakas/legion/internal/events"
	"github.com/baharkarakas/legion/internal/models"
	"github.com/baharkarakas/legion/internal/normalize"
	repo "github.com/baharkarakas/legion/internal/repository"
)

const entityRecord = "record"

type RecordService struct {
	base
}

func NewRecordService(store repo.Store, em events.Emitter) *RecordService {
	return &RecordService{base: newBase(store, em)}
}

func recordNotFound(id string) func() error {
	return func() error { return apperr.NotFound("Can't find record with the id '%s'", id) }
}

func recordDuplicate(workout, memberID string) func() error {
	return func() error {
		return apperr.Duplicate("Member '%s' already has a record for workout '%s'", memberID, workout)
	}
}

// List filters by exact workout and member id.
func (s *RecordService) List(ctx context.Context, f models.RecordFilter) ([]models.Record, error) {
	all, err := s.store.Records().List(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}
	out := make([]models.Record, 0, len(all))
	for _, r := range all {
		if f.Workout != "" && r.Workout != f.Workout {
			continue
		}
		if f.MemberID != "" && r.MemberID != f.MemberID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// ForWorkout lists the records of one workout and fails with NotFound when
// there are none.
func (s *RecordService) ForWorkout(ctx context.Context, workoutID string) ([]models.Record, error) {
	out, err := s.List(ctx, models.RecordFilter{Workout: workoutID})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, apperr.NotFound("Can't find records for workout with the id '%s'", workoutID)
	}
	return out, nil
}

func (s *RecordService) Get(ctx context.Context, id string) (models.Record, error) {
	r, err := s.store.Records().GetByID(ctx, id)
	return r, storeErr(err, recordNotFound(id), nil)
}

// Create ignores any client member link and derives it from MemberID.
func (s *RecordService) Create(ctx context.Context, in models.NewRecord) (models.Record, error) {
	all, err := s.store.Records().List(ctx)
	if err != nil {
		return models.Record{}, apperr.Store(err)
	}
	r := models.Record{
		ID:       uuid.NewString(),
		Workout:  in.Workout,
		MemberID: in.MemberID,
		Record:   in.Record,
		Member:   models.MemberLink(in.MemberID),
	}
	dup := recordDuplicate(r.Workout, r.MemberID)
	if err := ensureUnique(all, recordID, recordPair, r.ID, recordPair(r), dup); err != nil {
		return models.Record{}, err
	}

	created, err := s.store.Records().Create(ctx, r)
	if err != nil {
		return models.Record{}, storeErr(err, nil, dup)
	}
	s.changed(entityRecord, events.ActionCreated, created.ID)
	return created, nil
}

// Update checks the pair the record will have after p is applied.
func (s *RecordService) Update(ctx context.Context, id string, p models.RecordPatch) (models.Record, error) {
	cur, err := s.store.Records().GetByID(ctx, id)
	if err != nil {
		return models.Record{}, storeErr(err, recordNotFound(id), nil)
	}
	next := p.Apply(cur)
	dup := recordDuplicate(next.Workout, next.MemberID)

	if p.Workout != nil || p.MemberID != nil {
		all, err := s.store.Records().List(ctx)
		if err != nil {
			return models.Record{}, apperr.Store(err)
		}
		if err := ensureUnique(all, recordID, recordPair, id, recordPair(next), dup); err != nil {
			return models.Record{}, err
		}
	}

	updated, err := s.store.Records().Update(ctx, next)
	if err != nil {
		return models.Record{}, storeErr(err, recordNotFound(id), dup)
	}
	s.changed(entityRecord, events.ActionUpdated, id)
	return updated, nil
}

func (s *RecordService) Delete(ctx context.Context, id string) error {
	if err := s.store.Records().Delete(ctx, id); err != nil {
		return storeErr(err, recordNotFound(id), nil)
	}
	s.changed(entityRecord, events.ActionDeleted, id)
	return nil
}

func recordID(r models.Record) string { return r.ID }

// recordPair is the composite key; ensureUnique normalizes it as a whole.
func recordPair(r models.Record) string {
	return normalize.Text(r.Workout) + "\x00" + normalize.Text(r.MemberID)
}
