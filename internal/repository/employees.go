package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

const employeeColumns = `id, name, email, phone, department, position, created_at, updated_at`

func scanEmployee(row pgx.Row) (entity.Employee, error) {
	var e entity.Employee

	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Email,
		&e.Phone,
		&e.Department,
		&e.Position,
		&e.CreatedAt,
		&e.UpdatedAt,
	)

	return e, err
}

func (r *Repository) EmployeeByEmail(ctx context.Context, email string) (entity.Employee, error) {
	sqlQuery := `SELECT ` + employeeColumns + ` FROM employees WHERE lower(email) = lower($1)`

	e, err := scanEmployee(r.db.QueryRow(ctx, sqlQuery, email))
	if err != nil {
		return entity.Employee{}, mapErr(err, entity.ErrEmployeeNotFound)
	}

	return e, nil
}

func (r *Repository) EmployeeByID(ctx context.Context, id uuid.UUID) (entity.Employee, error) {
	sqlQuery := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(r.db.QueryRow(ctx, sqlQuery, id))
	if err != nil {
		return entity.Employee{}, mapErr(err, entity.ErrEmployeeNotFound)
	}

	return e, nil
}

func (r *Repository) CountEmployees(ctx context.Context) (int, error) {
	var n int

	err := r.db.QueryRow(ctx, `SELECT count(*) FROM employees`).Scan(&n)
	if err != nil {
		return 0, mapErr(err, entity.ErrEmployeeNotFound)
	}

	return n, nil
}

func (r *Repository) Employees(ctx context.Context) ([]entity.Employee, error) {
	sqlQuery := `SELECT ` + employeeColumns + ` FROM employees ORDER BY name`

	rows, err := r.db.Query(ctx, sqlQuery)
	if err != nil {
		return nil, mapErr(err, entity.ErrEmployeeNotFound)
	}
	defer rows.Close()

	employees := make([]entity.Employee, 0)

	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}

		employees = append(employees, e)
	}

	return employees, rows.Err()
}

// CreateEmployee is used by fixtures and the seed path; the service only reads employees.
func (r *Repository) CreateEmployee(ctx context.Context, e entity.Employee) error {
	sqlQuery :=
		`INSERT INTO employees (id, name, email, phone, department, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, sqlQuery,
		e.ID, e.Name, e.Email, e.Phone, e.Department, e.Position, e.CreatedAt, e.UpdatedAt,
	)

	return mapErr(err, entity.ErrEmployeeNotFound)
}
