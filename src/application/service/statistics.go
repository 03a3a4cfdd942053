package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/staffdesk/staffdesk/src/domain/repository"
)

type StatisticsService interface {
	Summary(context.Context) (repository.EmployeeStatistics, error)
}

type statisticsService struct {
	logger               zerolog.Logger
	statisticsRepository repository.StatisticsRepository
}

func NewStatisticsService(statisticsRepository repository.StatisticsRepository, logger *zerolog.Logger) StatisticsService {
	return &statisticsService{
		logger:               logger.With().Str("component", "StatisticsService").Logger(),
		statisticsRepository: statisticsRepository,
	}
}

// Summary runs the four aggregate queries concurrently.
// The first failure cancels the others and fails the summary.
func (self statisticsService) Summary(ctx context.Context) (stats repository.EmployeeStatistics, err error) {
	self.logger.Trace().Msg("Computing statistics")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Total, err = self.statisticsRepository.Count(gctx)
		return errors.WithMessage(err, "While counting Employees")
	})
	g.Go(func() (err error) {
		stats.TotalSalary, err = self.statisticsRepository.TotalSalary(gctx)
		return errors.WithMessage(err, "While summing salaries")
	})
	g.Go(func() (err error) {
		stats.AverageSalary, err = self.statisticsRepository.AverageSalary(gctx)
		return errors.WithMessage(err, "While averaging salaries")
	})
	g.Go(func() (err error) {
		stats.ByDepartment, err = self.statisticsRepository.ByDepartment(gctx)
		return errors.WithMessage(err, "While grouping Employees by department")
	})

	if err = g.Wait(); err != nil {
		return repository.EmployeeStatistics{}, err
	}

	self.logger.Trace().
		Int64("total", stats.Total).
		Int("departments", len(stats.ByDepartment)).
		Msg("Computed statistics")
	return stats, nil
}
