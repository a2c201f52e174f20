package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

const (
	pgCodeUndefinedTable = "42P01"
	pgCodeForeignKey     = "23503"
	pgCodeCheckViolation = "23514"
)

type Repository struct {
	db *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{
		db: pool,
	}
}

// mapErr translates driver errors into entity errors. notFound is returned
// for an empty result.
func mapErr(err, notFound error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeUndefinedTable:
			return errors.Join(entity.ErrStoreNotProvisioned, err)
		case pgCodeForeignKey, pgCodeCheckViolation:
			return errors.Join(entity.ErrValidation, err)
		}
	}

	return err
}
