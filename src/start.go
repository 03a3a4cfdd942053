package staffdesk

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cirello.io/oversight"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/staffdesk/staffdesk/src/application/component"
	"github.com/staffdesk/staffdesk/src/application/component/web"
	"github.com/staffdesk/staffdesk/src/application/service"
	"github.com/staffdesk/staffdesk/src/config"
	"github.com/staffdesk/staffdesk/src/domain"
)

type StartCmd struct {
	DBOpts

	WebListen         string   `arg:"--web-listen,env:STAFFDESK_WEB_LISTEN" default:":8080"`
	WebCookieAuth     string   `arg:"--web-cookie-auth" help:"file that contains the cookie authentication key"`
	WebCookieEnc      string   `arg:"--web-cookie-enc" help:"file that contains the cookie encryption key"`
	WebAllowedOrigins []string `arg:"--web-allowed-origins,env:STAFFDESK_WEB_ALLOWED_ORIGINS" help:"origins allowed to call the API from a browser (default: any)"`

	NoSeed   bool   `arg:"--no-seed" help:"do not insert sample employees into an empty database"`
	SeedFile string `arg:"--seed-file" help:"YAML file with sample employees to use instead of the built-in ones"`

	SessionPruneInterval time.Duration `arg:"--session-prune-interval" default:"1h" help:"how often expired sessions are deleted from PostgreSQL"`
}

func (cmd StartCmd) Run(logger *zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instance, err := NewInstance(ctx, cmd, logger)
	if err != nil {
		return err
	}
	defer instance.Close()

	return instance.Run(ctx)
}

func NewInstance(ctx context.Context, cmd StartCmd, logger *zerolog.Logger) (Instance, error) {
	instance := Instance{logger: logger}

	if cmd.SessionPruneInterval <= 0 {
		return instance, errors.Errorf("Session prune interval must be positive, got %s", cmd.SessionPruneInterval)
	}

	storage, err := cmd.DBOpts.Open(ctx, logger)
	if err != nil {
		return instance, errors.WithMessage(err, "While opening storage")
	}
	instance.storage = storage

	employeeService := service.NewEmployeeService(storage.Employees, logger)
	statisticsService := service.NewStatisticsService(storage.Statistics, logger)

	if !cmd.NoSeed {
		if _, err := seed(ctx, employeeService, cmd.SeedFile); err != nil {
			storage.Close()
			return instance, err
		}
	}

	cfg, err := config.NewWebConfig(cmd.WebListen, cmd.WebAllowedOrigins, cmd.WebCookieAuth, cmd.WebCookieEnc, cmd.DatabaseUrl, logger)
	if err != nil {
		storage.Close()
		return instance, err
	}

	instance.Web = &web.Web{
		Config:            cfg,
		Logger:            logger.With().Str("component", "Web").Logger(),
		EmployeeService:   employeeService,
		StatisticsService: statisticsService,
		Metrics:           config.NewMetrics(),
	}

	if storage.Sessions != nil {
		instance.SessionPruner = &component.SessionPruner{
			Logger:         logger.With().Str("component", "SessionPruner").Logger(),
			SessionService: service.NewSessionService(storage.Sessions, logger),
			Interval:       cmd.SessionPruneInterval,
		}
	}

	return instance, nil
}

// seed inserts sample employees if the table is empty.
func seed(ctx context.Context, employeeService service.EmployeeService, seedFile string) (int, error) {
	var samples []domain.EmployeeInput
	var err error
	if seedFile == "" {
		samples, err = domain.SampleEmployees()
	} else {
		samples, err = domain.LoadSeedFile(seedFile)
	}
	if err != nil {
		return 0, errors.WithMessage(err, "While loading sample employees")
	}

	return employeeService.Seed(ctx, samples)
}

type Instance struct {
	Web           *web.Web
	SessionPruner *component.SessionPruner

	logger  *zerolog.Logger
	storage *Storage
}

func (self Instance) Close() {
	if self.storage != nil {
		self.storage.Close()
	}
}

func (self Instance) Run(ctx context.Context) error {
	self.logger.Info().Msg("Starting components")

	supervisor := oversight.New(
		oversight.WithLogger(&config.SupervisorLogger{Logger: self.logger}),
		oversight.WithSpecification(
			10,                    // number of restarts
			1*time.Minute,         // within this time period
			oversight.OneForOne(), // restart every task on its own
		),
	)

	if self.Web != nil {
		if err := supervisor.Add(self.Web.Start); err != nil {
			return err
		}
	}

	if self.SessionPruner != nil {
		if err := supervisor.Add(self.SessionPruner.Start); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := supervisor.Start(ctx); err != nil && ctx.Err() == nil {
		return errors.WithMessage(err, "While starting supervisor")
	}

	<-ctx.Done()
	self.logger.Info().Msg("Stopped components")
	return nil
}
