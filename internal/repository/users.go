package repository

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

func (r *Repository) RoleByEmail(ctx context.Context, email string) (entity.Role, error) {
	sqlQuery := `SELECT role FROM users WHERE lower(email) = lower($1)`

	var role entity.Role

	err := r.db.QueryRow(ctx, sqlQuery, email).Scan(&role)
	if err != nil {
		return "", mapErr(err, entity.ErrUserNotFound)
	}

	return role, nil
}

func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	var n int

	err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n)
	if err != nil {
		return 0, mapErr(err, entity.ErrUserNotFound)
	}

	return n, nil
}

func (r *Repository) Users(ctx context.Context) ([]entity.UserRecord, error) {
	sqlQuery :=
		`SELECT id, email, name, role, created_at, updated_at
		FROM users
		ORDER BY email`

	rows, err := r.db.Query(ctx, sqlQuery)
	if err != nil {
		return nil, mapErr(err, entity.ErrUserNotFound)
	}
	defer rows.Close()

	users := make([]entity.UserRecord, 0)

	for rows.Next() {
		var u entity.UserRecord

		err = rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, err
		}

		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *Repository) UpdateUserRole(
	ctx context.Context,
	userID uuid.UUID,
	role entity.Role,
	updatedAt time.Time,
) (entity.UserRecord, error) {
	sqlQuery :=
		`UPDATE users
		SET role = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, email, name, role, created_at, updated_at`

	var u entity.UserRecord

	err := r.db.QueryRow(ctx, sqlQuery, role, updatedAt, userID).Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return entity.UserRecord{}, mapErr(err, entity.ErrUserNotFound)
	}

	return u, nil
}
