package staffdesk

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/staffdesk/staffdesk/src/application/service"
)

type SeedCmd struct {
	DBOpts

	SeedFile string `arg:"--seed-file" help:"YAML file with sample employees to use instead of the built-in ones"`
}

func (cmd SeedCmd) Run(logger *zerolog.Logger) error {
	ctx := context.Background()

	storage, err := cmd.DBOpts.Open(ctx, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	inserted, err := seed(ctx, service.NewEmployeeService(storage.Employees, logger), cmd.SeedFile)
	if err != nil {
		return err
	}

	logger.Info().Int("inserted", inserted).Msg("Seeded")
	return nil
}
