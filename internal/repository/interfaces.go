package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/legion/internal/models"
)

var (
	ErrNotFound = errors.New("repository: not found")
	// ErrConflict is returned when a write violates a store-level unique key.
	ErrConflict = errors.New("repository: unique key conflict")
)

type Members interface {
	List(ctx context.Context) ([]models.Member, error)
	GetByID(ctx context.Context, id string) (models.Member, error)
	Create(ctx context.Context, m models.Member) (models.Member, error)
	Update(ctx context.Context, m models.Member) (models.Member, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type Workouts interface {
	List(ctx context.Context) ([]models.Workout, error)
	GetByID(ctx context.Context, id string) (models.Workout, error)
	Create(ctx context.Context, w models.Workout) (models.Workout, error)
	Update(ctx context.Context, w models.Workout) (models.Workout, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type Records interface {
	List(ctx context.Context) ([]models.Record, error)
	GetByID(ctx context.Context, id string) (models.Record, error)
	Create(ctx context.Context, r models.Record) (models.Record, error)
	Update(ctx context.Context, r models.Record) (models.Record, error)
	Delete(ctx context.Context, id string) error
	// DeleteByMember removes every record of memberID and returns the removed ids.
	DeleteByMember(ctx context.Context, memberID string) ([]string, error)
	Count(ctx context.Context) (int, error)
}

type Users interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	Create(ctx context.Context, u models.User) (models.User, error)
	Update(ctx context.Context, u models.User) (models.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// Store is the persistence capability the services depend on. Both the
// relational and the JSON-file backends implement it.
type Store interface {
	Members() Members
	Workouts() Workouts
	Records() Records
	Users() Users

	// WithTx runs fn against a transactional view of the store. Writes made
	// through tx become visible together when fn returns nil and are
	// discarded otherwise.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	Close() error
}
