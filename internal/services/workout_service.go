package services

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/legion/internal/apperr"
	"github.com/baharkarakas/legion/internal/events"
	"github.com/baharkarakas/legion/internal/models"
	"github.com/baharkarakas/legion/internal/query"
	repo "github.com/baharkarakas/legion/internal/repository"
)

const entityWorkout = "workout"

// TimestampLayout is how createdAt and updatedAt are written.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

type WorkoutService struct {
	base

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewWorkoutService(store repo.Store, em events.Emitter) *WorkoutService {
	seed := uint64(time.Now().UnixNano())
	return &WorkoutService{
		base: newBase(store, em),
		rnd:  rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

func workoutNotFound(id string) func() error {
	return func() error { return apperr.NotFound("Can't find workout with the id '%s'", id) }
}

func workoutDuplicate(name string) func() error {
	return func() error { return apperr.Duplicate("Workout with the name '%s' already exists", name) }
}

func (s *WorkoutService) stamp() string { return s.now().UTC().Format(TimestampLayout) }

func (s *WorkoutService) List(ctx context.Context, p query.WorkoutParams) ([]models.Workout, error) {
	all, err := s.store.Workouts().List(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return query.Workouts(all, p)
}

// Random returns one workout from the filtered pool. Length and page are ignored.
func (s *WorkoutService) Random(ctx context.Context, p query.WorkoutParams) (models.Workout, error) {
	all, err := s.store.Workouts().List(ctx)
	if err != nil {
		return models.Workout{}, apperr.Store(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return query.Random(all, p, s.rnd)
}

func (s *WorkoutService) Get(ctx context.Context, id string) (models.Workout, error) {
	w, err := s.store.Workouts().GetByID(ctx, id)
	return w, storeErr(err, workoutNotFound(id), nil)
}

// Create stamps createdAt and updatedAt with the same instant.
func (s *WorkoutService) Create(ctx context.Context, in models.NewWorkout) (models.Workout, error) {
	all, err := s.store.Workouts().List(ctx)
	if err != nil {
		return models.Workout{}, apperr.Store(err)
	}
	now := s.stamp()
	w := models.Workout{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Mode:        in.Mode,
		Equipment:   in.Equipment,
		Exercises:   in.Exercises,
		TrainerTips: in.TrainerTips,
		CreatedAt:   now,
		UpdatedAt:   now,
	}.Clone()
	if err := ensureUnique(all, workoutID, workoutName, w.ID, w.Name, workoutDuplicate(w.Name)); err != nil {
		return models.Workout{}, err
	}

	created, err := s.store.Workouts().Create(ctx, w)
	if err != nil {
		return models.Workout{}, storeErr(err, nil, workoutDuplicate(w.Name))
	}
	s.changed(entityWorkout, events.ActionCreated, created.ID)
	return created, nil
}

// Update merges p over the stored workout and always restamps updatedAt.
func (s *WorkoutService) Update(ctx context.Context, id string, p models.WorkoutPatch) (models.Workout, error) {
	cur, err := s.store.Workouts().GetByID(ctx, id)
	if err != nil {
		return models.Workout{}, storeErr(err, workoutNotFound(id), nil)
	}
	next := p.Apply(cur)
	next.UpdatedAt = s.stamp()

	if p.Name != nil {
		all, err := s.store.Workouts().List(ctx)
		if err != nil {
			return models.Workout{}, apperr.Store(err)
		}
		if err := ensureUnique(all, workoutID, workoutName, id, next.Name, workoutDuplicate(next.Name)); err != nil {
			return models.Workout{}, err
		}
	}

	updated, err := s.store.Workouts().Update(ctx, next)
	if err != nil {
		return models.Workout{}, storeErr(err, workoutNotFound(id), workoutDuplicate(next.Name))
	}
	s.changed(entityWorkout, events.ActionUpdated, id)
	return updated, nil
}

func (s *WorkoutService) Delete(ctx context.Context, id string) error {
	if err := s.store.Workouts().Delete(ctx, id); err != nil {
		return storeErr(err, workoutNotFound(id), nil)
	}
	s.changed(entityWorkout, events.ActionDeleted, id)
	return nil
}

func workoutID(w models.Workout) string   { return w.ID }
func workoutName(w models.Workout) string { return w.Name }
