package sqlite

import (
	"context"
	"database/sql"

	"github.com/staffdesk/staffdesk/src/domain/repository"
)

type statisticsRepository struct {
	DB *sql.DB
}

func NewStatisticsRepository(db *sql.DB) repository.StatisticsRepository {
	return &statisticsRepository{db}
}

func (self statisticsRepository) Count(ctx context.Context) (count int64, err error) {
	err = self.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count)
	return
}

func (self statisticsRepository) TotalSalary(ctx context.Context) (total float64, err error) {
	err = self.DB.QueryRowContext(ctx, `SELECT COALESCE(SUM(salary), 0.0) FROM employees`).Scan(&total)
	return
}

func (self statisticsRepository) AverageSalary(ctx context.Context) (average float64, err error) {
	err = self.DB.QueryRowContext(ctx, `SELECT COALESCE(AVG(salary), 0.0) FROM employees`).Scan(&average)
	return
}

func (self statisticsRepository) ByDepartment(ctx context.Context) ([]repository.DepartmentCount, error) {
	rows, err := self.DB.QueryContext(ctx, `
		SELECT department, COUNT(*) AS count
		FROM employees
		GROUP BY department
		ORDER BY department`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []repository.DepartmentCount{}
	for rows.Next() {
		v := repository.DepartmentCount{}
		if err := rows.Scan(&v.Department, &v.Count); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}
