//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/baharkarakas/legion/internal/db"
	"github.com/baharkarakas/legion/internal/models"
	repo "github.com/baharkarakas/legion/internal/repository"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("legion"),
		postgrescontainer.WithUsername("legion"),
		postgrescontainer.WithPassword("legion"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, waitForDatabase(ctx, connStr))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(ctx, pool))

	s := NewStore(pool)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Second)
	}
}

func TestStoreEnforcesUniqueKeys(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.Members().Create(ctx, models.Member{ID: "m1", Name: "Jason", Email: "jason@mail.com"})
	require.NoError(t, err)
	_, err = s.Members().Create(ctx, models.Member{ID: "m2", Name: "Other", Email: " JASON@mail.com "})
	require.ErrorIs(t, err, repo.ErrConflict)

	_, err = s.Workouts().Create(ctx, models.Workout{ID: "w1", Name: "Tommy V"})
	require.NoError(t, err)
	_, err = s.Workouts().Create(ctx, models.Workout{ID: "w2", Name: "tommy v"})
	require.ErrorIs(t, err, repo.ErrConflict)

	_, err = s.Records().Create(ctx, models.Record{ID: "r1", Workout: "w1", MemberID: "m1", Record: "160 reps"})
	require.NoError(t, err)
	_, err = s.Records().Create(ctx, models.Record{ID: "r2", Workout: "w1", MemberID: "m1", Record: "170 reps"})
	require.ErrorIs(t, err, repo.ErrConflict)

	_, err = s.Members().GetByID(ctx, "missing")
	require.ErrorIs(t, err, repo.ErrNotFound)
	require.ErrorIs(t, s.Workouts().Delete(ctx, "missing"), repo.ErrNotFound)
}

func TestWorkoutArraysRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	in := models.Workout{
		ID:          "w1",
		Name:        "Dead Push-Ups",
		Mode:        "AMRAP 10",
		Equipment:   []string{"barbell"},
		Exercises:   []string{"15 deadlifts", "15 hand-release push-ups"},
		TrainerTips: []string{"Deadlifts are meant to be light and fast"},
		CreatedAt:   "1/25/2022, 1:15:44 PM",
		UpdatedAt:   "2022-03-10T08:21:56.000Z",
	}
	_, err := s.Workouts().Create(ctx, in)
	require.NoError(t, err)

	got, err := s.Workouts().GetByID(ctx, "w1")
	require.NoError(t, err)
	require.Equal(t, in, got)

	_, err = s.Workouts().Create(ctx, models.Workout{ID: "w2", Name: "Bare"})
	require.NoError(t, err)
	bare, err := s.Workouts().GetByID(ctx, "w2")
	require.NoError(t, err)
	require.Equal(t, []string{}, bare.Equipment)

	all, err := s.Workouts().List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "w1", all[0].ID)
}

func TestWithTxCommitsAndRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.Members().Create(ctx, models.Member{ID: "m1", Name: "Catrin", Email: "catrin@mail.com"})
	require.NoError(t, err)
	for _, r := range []models.Record{
		{ID: "r1", Workout: "w1", MemberID: "m1", Record: "160 reps"},
		{ID: "r2", Workout: "w2", MemberID: "m1", Record: "7:23 minutes"},
	} {
		_, err = s.Records().Create(ctx, r)
		require.NoError(t, err)
	}

	boom := errors.New("boom")
	err = s.WithTx(ctx, func(tx repo.Store) error {
		require.NoError(t, tx.Members().Delete(ctx, "m1"))
		_, err := tx.Records().DeleteByMember(ctx, "m1")
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)
	n, err := s.Records().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	var removed []string
	err = s.WithTx(ctx, func(tx repo.Store) error {
		if err := tx.Members().Delete(ctx, "m1"); err != nil {
			return err
		}
		removed, err = tx.Records().DeleteByMember(ctx, "m1")
		return err
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"r1", "r2"}, removed)

	_, err = s.Members().GetByID(ctx, "m1")
	require.ErrorIs(t, err, repo.ErrNotFound)
	n, err = s.Records().Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}
