package filestore

import (
	"context"
	"fmt"

	"github.com/baharkarakas/legion/internal/models"
	"github.com/baharkarakas/legion/internal/normalize"
	repo "github.com/baharkarakas/legion/internal/repository"
)

func memberID(d memberDoc) string         { return d.ID }
func memberEmail(d memberDoc) string      { return d.Email }
func workoutID(w models.Workout) string   { return w.ID }
func workoutName(w models.Workout) string { return w.Name }
func recordID(r models.Record) string     { return r.ID }
func userID(d userDoc) string             { return d.ID }
func userEmail(d userDoc) string          { return d.Email }

func recordPair(r models.Record) string {
	return normalize.Text(r.Workout) + "\x00" + normalize.Text(r.MemberID)
}

func conflict(key string) error { return fmt.Errorf("%w: %s", repo.ErrConflict, key) }

// ---------- members ----------

type membersRepo struct{ a access }

func (r membersRepo) List(ctx context.Context) ([]models.Member, error) {
	var out []models.Member
	err := r.a.read(ctx, func(s *snapshot) error {
		out = make([]models.Member, len(s.Members))
		for i, d := range s.Members {
			out[i] = d.model()
		}
		return nil
	})
	return out, err
}

func (r membersRepo) GetByID(ctx context.Context, id string) (models.Member, error) {
	var m models.Member
	err := r.a.read(ctx, func(s *snapshot) error {
		i := indexByID(s.Members, memberID, id)
		if i < 0 {
			return repo.ErrNotFound
		}
		m = s.Members[i].model()
		return nil
	})
	return m, err
}

func (r membersRepo) Create(ctx context.Context, m models.Member) (models.Member, error) {
	err := r.a.write(ctx, func(s *snapshot) error {
		if indexByID(s.Members, memberID, m.ID) >= 0 {
			return conflict("members_pkey")
		}
		if taken(s.Members, memberID, memberEmail, m.ID, m.Email) {
			return conflict("members_email_key")
		}
		s.Members = append(s.Members, memberToDoc(m))
		return nil
	})
	return m, err
}

func (r membersRepo) Update(ctx context.Context, m models.Member) (models.Member, error) {
	err := r.a.write(ctx, func(s *snapshot) error {
		i := indexByID(s.Members, memberID, m.ID)
		if i < 0 {
			return repo.ErrNotFound
		}
		if taken(s.Members, memberID, memberEmail, m.ID, m.Email) {
			return conflict("members_email_key")
		}
		s.Members[i] = memberToDoc(m)
		return nil
	})
	return m, err
}

func (r membersRepo) Delete(ctx context.Context, id string) error {
	return r.a.write(ctx, func(s *snapshot) error {
		i := indexByID(s.Members, memberID, id)
		if i < 0 {
			return repo.ErrNotFound
		}
		s.Members = append(s.Members[:i], s.Members[i+1:]...)
		return nil
	})
}

func (r membersRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.a.read(ctx, func(s *snapshot) error { n = len(s.Members); return nil })
	return n, err
}

// ---------- workouts ----------

type workoutsRepo struct{ a access }

func (r workoutsRepo) List(ctx context.Context) ([]models.Workout, error) {
	var out []models.Workout
	err := r.a.read(ctx, func(s *snapshot) error {
		out = make([]models.Workout, len(s.Workouts))
		for i, w := range s.Workouts {
			out[i] = w.Clone()
		}
		return nil
	})
	return out, err
}

func (r workoutsRepo) GetByID(ctx context.Context, id string) (models.Workout, error) {
	var w models.Workout
	err := r.a.read(ctx, func(s *snapshot) error {
		i := indexByID(s.Workouts, workoutID, id)
		if i < 0 {
			return repo.ErrNotFound
		}
		w = s.Workouts[i].Clone()
		return nil
	})
	return w, err
}

func (r workoutsRepo) Create(ctx context.Context, w models.Workout) (models.Workout, error) {
	w = w.Clone()
	err := r.a.write(ctx, func(s *snapshot) error {
		if indexByID(s.Workouts, workoutID, w.ID) >= 0 {
			return conflict("workouts_pkey")
		}
		if taken(s.Workouts, workoutID, workoutName, w.ID, w.Name) {
			return conflict("workouts_name_key")
		}
		s.Workouts = append(s.Workouts, w.Clone())
		return nil
	})
	return w, err
}

func (r workoutsRepo) Update(ctx context.Context, w models.Workout) (models.Workout, error) {
	w = w.Clone()
	err := r.a.write(ctx, func(s *snapshot) error {
		i := indexByID(s.Workouts, workoutID, w.ID)
		if i < 0 {
			return repo.ErrNotFound
		}
		if taken(s.Workouts, workoutID, workoutName, w.ID, w.Name) {
			return conflict("workouts_name_key")
		}
		s.Workouts[i] = w.Clone()
		return nil
	})
	return w, err
}

func (r workoutsRepo) Delete(ctx context.Context, id string) error {
	return r.a.write(ctx, func(s *snapshot) error {
		i := indexByID(s.Workouts, workoutID, id)
		if i < 0 {
			return repo.ErrNotFound
		}
		s.Workouts = append(s.Workouts[:i], s.Workouts[i+1:]...)
		return nil
	})
}

func (r workoutsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.a.read(ctx, func(s *snapshot) error { n = len(s.Workouts); return nil })
	return n, err
}

// ---------- records ----------

type recordsRepo struct{ a access }

func (r recordsRepo) List(ctx context.Context) ([]models.Record, error) {
	var out []models.Record
	err := r.a.read(ctx, func(s *snapshot) error {
		out = append([]models.Record{}, s.Records...)
		return nil
	})
	return out, err
}

func (r recordsRepo) GetByID(ctx context.Context, id string) (models.Record, error) {
	var rec models.Record
	err := r.a.read(ctx, func(s *snapshot) error {
		i := indexByID(s.Records, recordID, id)
		if i < 0 {
			return repo.ErrNotFound
		}
		rec = s.Records[i]
		return nil
	})
	return rec, err
}

func (r recordsRepo) Create(ctx context.Context, rec models.Record) (models.Record, error) {
	err := r.a.write(ctx, func(s *snapshot) error {
		if indexByID(s.Records, recordID, rec.ID) >= 0 {
			return conflict("records_pkey")
		}
		if taken(s.Records, recordID, recordPair, rec.ID, recordPair(rec)) {
			return conflict("records_workout_member_key")
		}
		s.Records = append(s.Records, rec)
		return nil
	})
	return rec, err
}

func (r recordsRepo) Update(ctx context.Context, rec models.Record) (models.Record, error) {
	err := r.a.write(ctx, func(s *snapshot) error {
		i := indexByID(s.Records, recordID, rec.ID)
		if i < 0 {
			return repo.ErrNotFound
		}
		if taken(s.Records, recordID, recordPair, rec.ID, recordPair(rec)) {
			return conflict("records_workout_member_key")
		}
		s.Records[i] = rec
		return nil
	})
	return rec, err
}

func (r recordsRepo) Delete(ctx context.Context, id string) error {
	return r.a.write(ctx, func(s *snapshot) error {
		i := indexByID(s.Records, recordID, id)
		if i < 0 {
			return repo.ErrNotFound
		}
		s.Records = append(s.Records[:i], s.Records[i+1:]...)
		return nil
	})
}

func (r recordsRepo) DeleteByMember(ctx context.Context, memberID string) ([]string, error) {
	var removed []string
	err := r.a.write(ctx, func(s *snapshot) error {
		kept := s.Records[:0]
		for _, rec := range s.Records {
			if rec.MemberID == memberID {
				removed = append(removed, rec.ID)
				continue
			}
			kept = append(kept, rec)
		}
		s.Records = kept
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (r recordsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.a.read(ctx, func(s *snapshot) error { n = len(s.Records); return nil })
	return n, err
}

// ---------- users ----------

type usersRepo struct{ a access }

func (r usersRepo) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := r.a.read(ctx, func(s *snapshot) error {
		out = make([]models.User, len(s.Users))
		for i, d := range s.Users {
			out[i] = d.model()
		}
		return nil
	})
	return out, err
}

func (r usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := r.a.read(ctx, func(s *snapshot) error {
		i := indexByID(s.Users, userID, id)
		if i < 0 {
			return repo.ErrNotFound
		}
		u = s.Users[i].model()
		return nil
	})
	return u, err
}

func (r usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	err := r.a.write(ctx, func(s *snapshot) error {
		if indexByID(s.Users, userID, u.ID) >= 0 {
			return conflict("users_pkey")
		}
		if taken(s.Users, userID, userEmail, u.ID, u.Email) {
			return conflict("users_email_key")
		}
		s.Users = append(s.Users, userToDoc(u))
		return nil
	})
	return u, err
}

func (r usersRepo) Update(ctx context.Context, u models.User) (models.User, error) {
	err := r.a.write(ctx, func(s *snapshot) error {
		i := indexByID(s.Users, userID, u.ID)
		if i < 0 {
			return repo.ErrNotFound
		}
		if taken(s.Users, userID, userEmail, u.ID, u.Email) {
			return conflict("users_email_key")
		}
		s.Users[i] = userToDoc(u)
		return nil
	})
	return u, err
}

func (r usersRepo) Delete(ctx context.Context, id string) error {
	return r.a.write(ctx, func(s *snapshot) error {
		i := indexByID(s.Users, userID, id)
		if i < 0 {
			return repo.ErrNotFound
		}
		s.Users = append(s.Users[:i], s.Users[i+1:]...)
		return nil
	})
}

func (r usersRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.a.read(ctx, func(s *snapshot) error { n = len(s.Users); return nil })
	return n, err
}
