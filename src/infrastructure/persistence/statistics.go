package persistence

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/staffdesk/staffdesk/src/config"
	"github.com/staffdesk/staffdesk/src/domain/repository"
)

type statisticsRepository struct {
	DB config.PgxIface
}

func NewStatisticsRepository(db config.PgxIface) repository.StatisticsRepository {
	return &statisticsRepository{db}
}

func (self statisticsRepository) Count(ctx context.Context) (count int64, err error) {
	err = self.DB.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count)
	return
}

func (self statisticsRepository) TotalSalary(ctx context.Context) (total float64, err error) {
	err = self.DB.QueryRow(ctx, `SELECT COALESCE(SUM(salary), 0) FROM employees`).Scan(&total)
	return
}

func (self statisticsRepository) AverageSalary(ctx context.Context) (average float64, err error) {
	err = self.DB.QueryRow(ctx, `SELECT COALESCE(AVG(salary), 0) FROM employees`).Scan(&average)
	return
}

func (self statisticsRepository) ByDepartment(ctx context.Context) ([]repository.DepartmentCount, error) {
	result := []repository.DepartmentCount{}
	if err := pgxscan.Select(
		ctx, self.DB, &result,
		`SELECT department, COUNT(*) AS count
		FROM employees
		GROUP BY department
		ORDER BY department`,
	); err != nil {
		return nil, err
	}
	return result, nil
}
