// Package seed loads the bundled demo data into an empty store.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/baharkarakas/legion/internal/models"
	repo "github.com/baharkarakas/legion/internal/repository"
)

//go:embed seed.json
var bundled []byte

type Hasher interface {
	Hash(plain string) (string, error)
}

type memberSeed struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"dateOfBirth"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type userSeed struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	OrganizationID string `json:"organizationId"`
	Name           string `json:"name"`
}

// Snapshot is the seed document. Passwords are plain text and hashed on insert.
type Snapshot struct {
	Members  []memberSeed     `json:"members"`
	Workouts []models.Workout `json:"workouts"`
	Records  []models.Record  `json:"records"`
	Users    []userSeed       `json:"users"`
}

// Result counts the rows written per collection.
type Result struct {
	Members, Workouts, Users, Records int
}

func Bundled() (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(bundled, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode seed: %w", err)
	}
	return s, nil
}

// Run inserts each collection of snap only when that collection is empty.
// Everything happens in one transaction, so a conflicting row leaves the
// store untouched.
func Run(ctx context.Context, store repo.Store, h Hasher, snap Snapshot, log *slog.Logger) (Result, error) {
	if log == nil {
		log = slog.Default()
	}
	var res Result
	err := store.WithTx(ctx, func(tx repo.Store) error {
		var err error
		if res.Members, err = seedMembers(ctx, tx.Members(), h, snap.Members); err != nil {
			return fmt.Errorf("seed members: %w", err)
		}
		if res.Workouts, err = seedWorkouts(ctx, tx.Workouts(), snap.Workouts); err != nil {
			return fmt.Errorf("seed workouts: %w", err)
		}
		if res.Users, err = seedUsers(ctx, tx.Users(), h, snap.Users); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		if res.Records, err = seedRecords(ctx, tx.Records(), snap.Records); err != nil {
			return fmt.Errorf("seed records: %w", err)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	log.Info("seed done",
		"members", res.Members,
		"workouts", res.Workouts,
		"users", res.Users,
		"records", res.Records,
	)
	return res, nil
}

type counter interface {
	Count(ctx context.Context) (int, error)
}

func empty(ctx context.Context, c counter) (bool, error) {
	n, err := c.Count(ctx)
	return n == 0, err
}

func seedMembers(ctx context.Context, r repo.Members, h Hasher, in []memberSeed) (int, error) {
	if ok, err := empty(ctx, r); err != nil || !ok {
		return 0, err
	}
	for _, s := range in {
		m := models.Member{ID: s.ID, Name: s.Name, Gender: s.Gender, DateOfBirth: s.DateOfBirth, Email: s.Email}
		if s.Password != "" {
			hash, err := h.Hash(s.Password)
			if err != nil {
				return 0, err
			}
			m.PasswordHash = hash
		}
		if _, err := r.Create(ctx, m); err != nil {
			return 0, fmt.Errorf("member %s: %w", s.ID, err)
		}
	}
	return len(in), nil
}

func seedWorkouts(ctx context.Context, r repo.Workouts, in []models.Workout) (int, error) {
	if ok, err := empty(ctx, r); err != nil || !ok {
		return 0, err
	}
	for _, w := range in {
		if _, err := r.Create(ctx, w.Clone()); err != nil {
			return 0, fmt.Errorf("workout %s: %w", w.ID, err)
		}
	}
	return len(in), nil
}

func seedUsers(ctx context.Context, r repo.Users, h Hasher, in []userSeed) (int, error) {
	if ok, err := empty(ctx, r); err != nil || !ok {
		return 0, err
	}
	for _, s := range in {
		hash, err := h.Hash(s.Password)
		if err != nil {
			return 0, err
		}
		u := models.User{
			ID:             s.ID,
			Email:          s.Email,
			PasswordHash:   hash,
			Role:           s.Role,
			OrganizationID: s.OrganizationID,
			Name:           s.Name,
		}
		if _, err := r.Create(ctx, u); err != nil {
			return 0, fmt.Errorf("user %s: %w", s.ID, err)
		}
	}
	return len(in), nil
}

func seedRecords(ctx context.Context, r repo.Records, in []models.Record) (int, error) {
	if ok, err := empty(ctx, r); err != nil || !ok {
		return 0, err
	}
	for _, rec := range in {
		rec.Member = models.MemberLink(rec.MemberID)
		if _, err := r.Create(ctx, rec); err != nil {
			return 0, fmt.Errorf("record %s: %w", rec.ID, err)
		}
	}
	return len(in), nil
}
