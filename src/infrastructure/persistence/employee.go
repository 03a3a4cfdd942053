package persistence

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/staffdesk/staffdesk/src/config"
	"github.com/staffdesk/staffdesk/src/domain"
	"github.com/staffdesk/staffdesk/src/domain/repository"
)

const employeeColumns = `id, name, email, position, department, salary, hire_date, created_at, updated_at`

type employeeRepository struct {
	DB config.PgxIface
}

func NewEmployeeRepository(db config.PgxIface) repository.EmployeeRepository {
	return &employeeRepository{db}
}

func (self *employeeRepository) GetAll(ctx context.Context) ([]domain.Employee, error) {
	employees := []domain.Employee{}
	if err := pgxscan.Select(
		ctx, self.DB, &employees,
		`SELECT `+employeeColumns+` FROM employees ORDER BY created_at DESC, id DESC`,
	); err != nil {
		return nil, err
	}
	return employees, nil
}

func (self *employeeRepository) GetById(ctx context.Context, id int64) (*domain.Employee, error) {
	employee := domain.Employee{}
	if err := pgxscan.Get(
		ctx, self.DB, &employee,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`,
		id,
	); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

func (self *employeeRepository) Insert(ctx context.Context, employee *domain.Employee) error {
	return mapError(self.DB.QueryRow(
		ctx,
		`INSERT INTO employees (name, email, position, department, salary, hire_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		employee.Name, employee.Email, employee.Position, employee.Department, employee.Salary, employee.HireDate,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt))
}

func (self *employeeRepository) Update(ctx context.Context, employee *domain.Employee) (int64, error) {
	tag, err := self.DB.Exec(
		ctx,
		`UPDATE employees
		SET name = $1, email = $2, position = $3, department = $4, salary = $5, hire_date = $6, updated_at = now()
		WHERE id = $7`,
		employee.Name, employee.Email, employee.Position, employee.Department, employee.Salary, employee.HireDate,
		employee.ID,
	)
	if err != nil {
		return 0, mapError(err)
	}
	return tag.RowsAffected(), nil
}

func (self *employeeRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := self.DB.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (self *employeeRepository) SeedIfEmpty(ctx context.Context, employees []domain.Employee) (inserted int, err error) {
	err = pgx.BeginFunc(ctx, self.DB, func(tx pgx.Tx) error {
		var count int64
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
			return err
		}
		if count != 0 {
			return nil
		}

		for _, employee := range employees {
			tag, err := tx.Exec(
				ctx,
				`INSERT INTO employees (name, email, position, department, salary, hire_date)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				employee.Name, employee.Email, employee.Position, employee.Department, employee.Salary, employee.HireDate,
			)
			if err != nil {
				return mapError(err)
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		inserted = 0
	}
	return
}
