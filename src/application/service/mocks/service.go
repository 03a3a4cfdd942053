package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/staffdesk/staffdesk/src/application/service"
	"github.com/staffdesk/staffdesk/src/domain"
	"github.com/staffdesk/staffdesk/src/domain/repository"
)

type EmployeeService struct {
	mock.Mock
}

var _ service.EmployeeService = &EmployeeService{}

func (_m *EmployeeService) GetAll(ctx context.Context) ([]domain.Employee, error) {
	ret := _m.Called(ctx)
	var r0 []domain.Employee
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Employee)
	}
	return r0, ret.Error(1)
}

func (_m *EmployeeService) GetById(ctx context.Context, id int64) (*domain.Employee, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Employee
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Employee)
	}
	return r0, ret.Error(1)
}

func (_m *EmployeeService) Create(ctx context.Context, input domain.EmployeeInput) (*domain.Employee, error) {
	ret := _m.Called(ctx, input)
	var r0 *domain.Employee
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Employee)
	}
	return r0, ret.Error(1)
}

func (_m *EmployeeService) Update(ctx context.Context, id int64, input domain.EmployeeInput) (*domain.Employee, error) {
	ret := _m.Called(ctx, id, input)
	var r0 *domain.Employee
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Employee)
	}
	return r0, ret.Error(1)
}

func (_m *EmployeeService) Delete(ctx context.Context, id int64) error {
	return _m.Called(ctx, id).Error(0)
}

func (_m *EmployeeService) Seed(ctx context.Context, inputs []domain.EmployeeInput) (int, error) {
	ret := _m.Called(ctx, inputs)
	return ret.Int(0), ret.Error(1)
}

type StatisticsService struct {
	mock.Mock
}

var _ service.StatisticsService = &StatisticsService{}

func (_m *StatisticsService) Summary(ctx context.Context) (repository.EmployeeStatistics, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(repository.EmployeeStatistics), ret.Error(1)
}

type SessionService struct {
	mock.Mock
}

var _ service.SessionService = &SessionService{}

func (_m *SessionService) PruneExpired(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}
