package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/baharkarakas/legion/internal/models"
)

type membersRepo struct{ q querier }

const memberColumns = `id, name, gender, date_of_birth, email, password_hash`

func scanMember(row pgx.Row) (models.Member, error) {
	var m models.Member
	err := row.Scan(&m.ID, &m.Name, &m.Gender, &m.DateOfBirth, &m.Email, &m.PasswordHash)
	return m, mapErr(err)
}

func (r *membersRepo) List(ctx context.Context) ([]models.Member, error) {
	rows, err := r.q.Query(ctx, `SELECT `+memberColumns+` FROM members ORDER BY seq`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, mapErr(rows.Err())
}

func (r *membersRepo) GetByID(ctx context.Context, id string) (models.Member, error) {
	return scanMember(r.q.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE id=$1`, id))
}

func (r *membersRepo) Create(ctx context.Context, m models.Member) (models.Member, error) {
	return scanMember(r.q.QueryRow(ctx,
		`INSERT INTO members(id, name, gender, date_of_birth, email, password_hash)
		 VALUES($1,$2,$3,$4,$5,$6)
		 RETURNING `+memberColumns,
		m.ID, m.Name, m.Gender, m.DateOfBirth, m.Email, m.PasswordHash,
	))
}

func (r *membersRepo) Update(ctx context.Context, m models.Member) (models.Member, error) {
	return scanMember(r.q.QueryRow(ctx,
		`UPDATE members
		    SET name=$2, gender=$3, date_of_birth=$4, email=$5, password_hash=$6
		  WHERE id=$1
		  RETURNING `+memberColumns,
		m.ID, m.Name, m.Gender, m.DateOfBirth, m.Email, m.PasswordHash,
	))
}

func (r *membersRepo) Delete(ctx context.Context, id string) error {
	return execDelete(ctx, r.q, `DELETE FROM members WHERE id=$1`, id)
}

func (r *membersRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.q, `SELECT count(*) FROM members`)
}
