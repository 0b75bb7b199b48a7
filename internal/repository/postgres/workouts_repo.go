package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/baharkarakas/legion/internal/models"
)

type workoutsRepo struct{ q querier }

const workoutColumns = `id, name, mode, equipment, exercises, trainer_tips, created_at, updated_at`

func scanWorkout(row pgx.Row) (models.Workout, error) {
	var w models.Workout
	err := row.Scan(&w.ID, &w.Name, &w.Mode, &w.Equipment, &w.Exercises, &w.TrainerTips, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return models.Workout{}, mapErr(err)
	}
	return w.Clone(), nil
}

func (r *workoutsRepo) List(ctx context.Context) ([]models.Workout, error) {
	rows, err := r.q.Query(ctx, `SELECT `+workoutColumns+` FROM workouts ORDER BY seq`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.Workout{}
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, mapErr(rows.Err())
}

func (r *workoutsRepo) GetByID(ctx context.Context, id string) (models.Workout, error) {
	return scanWorkout(r.q.QueryRow(ctx, `SELECT `+workoutColumns+` FROM workouts WHERE id=$1`, id))
}

func (r *workoutsRepo) Create(ctx context.Context, w models.Workout) (models.Workout, error) {
	w = w.Clone()
	return scanWorkout(r.q.QueryRow(ctx,
		`INSERT INTO workouts(id, name, mode, equipment, exercises, trainer_tips, created_at, updated_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING `+workoutColumns,
		w.ID, w.Name, w.Mode, w.Equipment, w.Exercises, w.TrainerTips, w.CreatedAt, w.UpdatedAt,
	))
}

func (r *workoutsRepo) Update(ctx context.Context, w models.Workout) (models.Workout, error) {
	w = w.Clone()
	return scanWorkout(r.q.QueryRow(ctx,
		`UPDATE workouts
		    SET name=$2, mode=$3, equipment=$4, exercises=$5, trainer_tips=$6, created_at=$7, updated_at=$8
		  WHERE id=$1
		  RETURNING `+workoutColumns,
		w.ID, w.Name, w.Mode, w.Equipment, w.Exercises, w.TrainerTips, w.CreatedAt, w.UpdatedAt,
	))
}

func (r *workoutsRepo) Delete(ctx context.Context, id string) error {
	return execDelete(ctx, r.q, `DELETE FROM workouts WHERE id=$1`, id)
}

func (r *workoutsRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.q, `SELECT count(*) FROM workouts`)
}
