package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/staffdesk/staffdesk/src/domain"
	"github.com/staffdesk/staffdesk/src/domain/repository"
)

type EmployeeRepository struct {
	mock.Mock
}

var _ repository.EmployeeRepository = &EmployeeRepository{}

func (_m *EmployeeRepository) GetAll(ctx context.Context) ([]domain.Employee, error) {
	ret := _m.Called(ctx)
	var r0 []domain.Employee
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Employee)
	}
	return r0, ret.Error(1)
}

func (_m *EmployeeRepository) GetById(ctx context.Context, id int64) (*domain.Employee, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Employee
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Employee)
	}
	return r0, ret.Error(1)
}

func (_m *EmployeeRepository) Insert(ctx context.Context, employee *domain.Employee) error {
	return _m.Called(ctx, employee).Error(0)
}

func (_m *EmployeeRepository) Update(ctx context.Context, employee *domain.Employee) (int64, error) {
	ret := _m.Called(ctx, employee)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *EmployeeRepository) Delete(ctx context.Context, id int64) (int64, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *EmployeeRepository) SeedIfEmpty(ctx context.Context, employees []domain.Employee) (int, error) {
	ret := _m.Called(ctx, employees)
	return ret.Int(0), ret.Error(1)
}

type StatisticsRepository struct {
	mock.Mock
}

var _ repository.StatisticsRepository = &StatisticsRepository{}

func (_m *StatisticsRepository) Count(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *StatisticsRepository) TotalSalary(ctx context.Context) (float64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(float64), ret.Error(1)
}

func (_m *StatisticsRepository) AverageSalary(ctx context.Context) (float64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(float64), ret.Error(1)
}

func (_m *StatisticsRepository) ByDepartment(ctx context.Context) ([]repository.DepartmentCount, error) {
	ret := _m.Called(ctx)
	var r0 []repository.DepartmentCount
	if v := ret.Get(0); v != nil {
		r0 = v.([]repository.DepartmentCount)
	}
	return r0, ret.Error(1)
}

type SessionRepository struct {
	mock.Mock
}

var _ repository.SessionRepository = &SessionRepository{}

func (_m *SessionRepository) DeleteExpiredBy(ctx context.Context, expiry time.Time) (int64, error) {
	ret := _m.Called(ctx, expiry)
	return ret.Get(0).(int64), ret.Error(1)
}
