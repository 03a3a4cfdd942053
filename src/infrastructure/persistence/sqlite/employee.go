package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/staffdesk/staffdesk/src/domain"
	"github.com/staffdesk/staffdesk/src/domain/repository"
)

const employeeColumns = `id, name, email, position, department, salary, hire_date, created_at, updated_at`

type employeeRepository struct {
	DB *sql.DB
}

func NewEmployeeRepository(db *sql.DB) repository.EmployeeRepository {
	return &employeeRepository{db}
}

type scanner interface {
	Scan(...any) error
}

func scanEmployee(row scanner) (employee domain.Employee, err error) {
	var createdAt, updatedAt string
	if err = row.Scan(
		&employee.ID, &employee.Name, &employee.Email, &employee.Position,
		&employee.Department, &employee.Salary, &employee.HireDate,
		&createdAt, &updatedAt,
	); err != nil {
		return
	}
	if employee.CreatedAt, err = parseTime(createdAt); err != nil {
		err = errors.WithMessagef(err, "Invalid created_at of employee %d", employee.ID)
		return
	}
	if employee.UpdatedAt, err = parseTime(updatedAt); err != nil {
		err = errors.WithMessagef(err, "Invalid updated_at of employee %d", employee.ID)
	}
	return
}

func (self *employeeRepository) GetAll(ctx context.Context) ([]domain.Employee, error) {
	rows, err := self.DB.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (self *employeeRepository) GetById(ctx context.Context, id int64) (*domain.Employee, error) {
	employee, err := scanEmployee(self.DB.QueryRowContext(
		ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (self *employeeRepository) Insert(ctx context.Context, employee *domain.Employee) error {
	return insert(ctx, self.DB, employee)
}

type execer interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, employee *domain.Employee) error {
	ts := now()
	result, err := db.ExecContext(
		ctx,
		`INSERT INTO employees (name, email, position, department, salary, hire_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		employee.Name, employee.Email, employee.Position, employee.Department, employee.Salary, employee.HireDate,
		formatTime(ts), formatTime(ts),
	)
	if err != nil {
		return mapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	employee.ID = id
	employee.CreatedAt = ts
	employee.UpdatedAt = ts
	return nil
}

func (self *employeeRepository) Update(ctx context.Context, employee *domain.Employee) (int64, error) {
	ts := now()
	result, err := self.DB.ExecContext(
		ctx,
		`UPDATE employees
		SET name = ?, email = ?, position = ?, department = ?, salary = ?, hire_date = ?, updated_at = ?
		WHERE id = ?`,
		employee.Name, employee.Email, employee.Position, employee.Department, employee.Salary, employee.HireDate,
		formatTime(ts), employee.ID,
	)
	if err != nil {
		return 0, mapError(err)
	}
	employee.UpdatedAt = ts
	return result.RowsAffected()
}

func (self *employeeRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := self.DB.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (self *employeeRepository) SeedIfEmpty(ctx context.Context, employees []domain.Employee) (int, error) {
	tx, err := self.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var count int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		return 0, err
	}
	if count != 0 {
		return 0, nil
	}

	for i := range employees {
		if err := insert(ctx, tx, &employees[i]); err != nil {
			return 0, errors.WithMessagef(err, "While inserting %q", employees[i].Email)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(employees), nil
}
