package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/baharkarakas/legion/internal/models"
)

type recordsRepo struct{ q querier }

const recordColumns = `id, workout_id, member_id, record, member`

func scanRecord(row pgx.Row) (models.Record, error) {
	var rec models.Record
	err := row.Scan(&rec.ID, &rec.Workout, &rec.MemberID, &rec.Record, &rec.Member)
	return rec, mapErr(err)
}

func (r *recordsRepo) List(ctx context.Context) ([]models.Record, error) {
	rows, err := r.q.Query(ctx, `SELECT `+recordColumns+` FROM records ORDER BY seq`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, mapErr(rows.Err())
}

func (r *recordsRepo) GetByID(ctx context.Context, id string) (models.Record, error) {
	return scanRecord(r.q.QueryRow(ctx, `SELECT `+recordColumns+` FROM records WHERE id=$1`, id))
}

func (r *recordsRepo) Create(ctx context.Context, rec models.Record) (models.Record, error) {
	return scanRecord(r.q.QueryRow(ctx,
		`INSERT INTO records(id, workout_id, member_id, record, member)
		 VALUES($1,$2,$3,$4,$5)
		 RETURNING `+recordColumns,
		rec.ID, rec.Workout, rec.MemberID, rec.Record, rec.Member,
	))
}

func (r *recordsRepo) Update(ctx context.Context, rec models.Record) (models.Record, error) {
	return scanRecord(r.q.QueryRow(ctx,
		`UPDATE records
		    SET workout_id=$2, member_id=$3, record=$4, member=$5
		  WHERE id=$1
		  RETURNING `+recordColumns,
		rec.ID, rec.Workout, rec.MemberID, rec.Record, rec.Member,
	))
}

func (r *recordsRepo) Delete(ctx context.Context, id string) error {
	return execDelete(ctx, r.q, `DELETE FROM records WHERE id=$1`, id)
}

func (r *recordsRepo) DeleteByMember(ctx context.Context, memberID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `DELETE FROM records WHERE member_id=$1 RETURNING id`, memberID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, mapErr(err)
		}
		ids = append(ids, id)
	}
	return ids, mapErr(rows.Err())
}

func (r *recordsRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.q, `SELECT count(*) FROM records`)
}
