// internal/repository/postgres/users_repo.go
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/baharkarakas/legion/internal/models"
)

type usersRepo struct{ q querier }

const userColumns = `id, email, password_hash, role, organization_id, name`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.OrganizationID, &u.Name)
	return u, mapErr(err)
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY seq`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, mapErr(rows.Err())
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	return scanUser(r.q.QueryRow(ctx,
		`INSERT INTO users(id, email, password_hash, role, organization_id, name)
		 VALUES($1,$2,$3,$4,$5,$6)
		 RETURNING `+userColumns,
		u.ID, u.Email, u.PasswordHash, u.Role, u.OrganizationID, u.Name,
	))
}

func (r *usersRepo) Update(ctx context.Context, u models.User) (models.User, error) {
	return scanUser(r.q.QueryRow(ctx,
		`UPDATE users
		    SET email=$2, password_hash=$3, role=$4, organization_id=$5, name=$6, updated_at=now()
		  WHERE id=$1
		  RETURNING `+userColumns,
		u.ID, u.Email, u.PasswordHash, u.Role, u.OrganizationID, u.Name,
	))
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	return execDelete(ctx, r.q, `DELETE FROM users WHERE id=$1`, id)
}

func (r *usersRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.q, `SELECT count(*) FROM users`)
}
