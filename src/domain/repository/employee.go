package repository

import (
	"context"

	"github.com/staffdesk/staffdesk/src/domain"
)

type EmployeeRepository interface {
	GetAll(context.Context) ([]domain.Employee, error)
	GetById(context.Context, int64) (*domain.Employee, error)
	Insert(context.Context, *domain.Employee) error
	Update(context.Context, *domain.Employee) (int64, error)
	Delete(context.Context, int64) (int64, error)
	SeedIfEmpty(context.Context, []domain.Employee) (int, error)
}
