package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/staffdesk/staffdesk/src/domain"
	"github.com/staffdesk/staffdesk/src/domain/repository"
)

type EmployeeService interface {
	GetAll(context.Context) ([]domain.Employee, error)
	GetById(context.Context, int64) (*domain.Employee, error)
	Create(context.Context, domain.EmployeeInput) (*domain.Employee, error)
	Update(context.Context, int64, domain.EmployeeInput) (*domain.Employee, error)
	Delete(context.Context, int64) error
	Seed(context.Context, []domain.EmployeeInput) (int, error)
}

type employeeService struct {
	logger             zerolog.Logger
	employeeRepository repository.EmployeeRepository
}

func NewEmployeeService(employeeRepository repository.EmployeeRepository, logger *zerolog.Logger) EmployeeService {
	return &employeeService{
		logger:             logger.With().Str("component", "EmployeeService").Logger(),
		employeeRepository: employeeRepository,
	}
}

func (self employeeService) GetAll(ctx context.Context) ([]domain.Employee, error) {
	self.logger.Trace().Msg("Getting all Employees")
	employees, err := self.employeeRepository.GetAll(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "Could not select existing Employees")
	}
	self.logger.Trace().Int("count", len(employees)).Msg("Got all Employees")
	return employees, nil
}

func (self employeeService) GetById(ctx context.Context, id int64) (*domain.Employee, error) {
	logger := self.logger.With().Int64("id", id).Logger()
	logger.Trace().Msg("Getting Employee by ID")
	employee, err := self.employeeRepository.GetById(ctx, id)
	if err != nil {
		return nil, errors.WithMessagef(err, "Could not select existing Employee by ID %d", id)
	}
	logger.Trace().Bool("found", employee != nil).Msg("Got Employee by ID")
	return employee, nil
}

func (self employeeService) Create(ctx context.Context, input domain.EmployeeInput) (*domain.Employee, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	logger := self.logger.With().Str("email", input.Email).Logger()
	logger.Trace().Msg("Creating Employee")
	employee := input.Employee()
	if err := self.employeeRepository.Insert(ctx, &employee); err != nil {
		return nil, errors.WithMessage(err, "Could not insert Employee")
	}
	logger.Debug().Int64("id", employee.ID).Msg("Created Employee")
	return &employee, nil
}

func (self employeeService) Update(ctx context.Context, id int64, input domain.EmployeeInput) (*domain.Employee, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	logger := self.logger.With().Int64("id", id).Logger()
	logger.Trace().Msg("Updating Employee")
	employee := input.Employee()
	employee.ID = id
	changes, err := self.employeeRepository.Update(ctx, &employee)
	if err != nil {
		return nil, errors.WithMessagef(err, "Could not update Employee %d", id)
	}
	if changes == 0 {
		return nil, domain.ErrNotFound
	}
	logger.Debug().Msg("Updated Employee")
	return &employee, nil
}

func (self employeeService) Delete(ctx context.Context, id int64) error {
	logger := self.logger.With().Int64("id", id).Logger()
	logger.Trace().Msg("Deleting Employee")
	changes, err := self.employeeRepository.Delete(ctx, id)
	if err != nil {
		return errors.WithMessagef(err, "Could not delete Employee %d", id)
	}
	if changes == 0 {
		return domain.ErrNotFound
	}
	logger.Debug().Msg("Deleted Employee")
	return nil
}

func (self employeeService) Seed(ctx context.Context, inputs []domain.EmployeeInput) (int, error) {
	employees := make([]domain.Employee, 0, len(inputs))
	for i, input := range inputs {
		input.Normalize()
		if err := input.Validate(); err != nil {
			return 0, errors.WithMessagef(err, "Invalid sample Employee %d", i)
		}
		employees = append(employees, input.Employee())
	}

	self.logger.Trace().Int("samples", len(employees)).Msg("Seeding Employees")
	inserted, err := self.employeeRepository.SeedIfEmpty(ctx, employees)
	if err != nil {
		return 0, errors.WithMessage(err, "Could not seed Employees")
	}
	if inserted == 0 {
		self.logger.Debug().Msg("Employees table is not empty, skipped seeding")
	} else {
		self.logger.Info().Int("inserted", inserted).Msg("Inserted sample Employees")
	}
	return inserted, nil
}
