package services

import (
	"errors"
	"time"

	"github.com/baharkarakas/legion/internal/apperr"
	"github.com/baharkarakas/legion/internal/events"
	"github.com/baharkarakas/legion/internal/metrics"
	"github.com/baharkarakas/legion/internal/normalize"
	repo "github.com/baharkarakas/legion/internal/repository"
)

// Hasher is the password hashing the services need; auth.Hasher satisfies it.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) error
}

// base holds what every orchestrator shares.
type base struct {
	store  repo.Store
	events events.Emitter
	now    func() time.Time
}

func newBase(store repo.Store, em events.Emitter) base {
	return base{store: store, events: em, now: time.Now}
}

// changed counts the mutation and emits one event per id.
func (b base) changed(entity, action string, ids ...string) {
	metrics.MutationsTotal.WithLabelValues(entity, action).Add(float64(len(ids)))
	if b.events == nil || len(ids) == 0 {
		return
	}
	at := b.now()
	evs := make([]events.Event, len(ids))
	for i, id := range ids {
		evs[i] = events.New(entity, action, id, at)
	}
	b.events.Emit(evs...)
}

// ensureUnique fails with dup when an item other than selfID already holds
// want once both are normalized.
func ensureUnique[T any](items []T, id, key func(T) string, selfID, want string, dup func() error) error {
	want = normalize.Text(want)
	for _, it := range items {
		if id(it) != selfID && normalize.Text(key(it)) == want {
			return dup()
		}
	}
	return nil
}

// storeErr maps repository sentinels onto tagged errors. notFound and dup may
// be nil when the call cannot produce that sentinel.
func storeErr(err error, notFound, dup func() error) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && errors.Is(err, repo.ErrNotFound):
		return notFound()
	case dup != nil && errors.Is(err, repo.ErrConflict):
		return dup()
	}
	return apperr.Store(err)
}
