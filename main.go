package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog"

	staffdesk "github.com/staffdesk/staffdesk/src"
	"github.com/staffdesk/staffdesk/src/config"
	"github.com/staffdesk/staffdesk/src/domain"
)

var buildVersion = "dev"
var buildCommit = "dirty"

func main() {
	args := &CLI{}
	parser, err := parseArgs(args)
	abort(parser, err)

	debug := flag.Bool("debug", args.Debug, "sets log level to debug")
	logger := config.ConfigureLogger(*debug)

	domain.Build.Version = buildVersion
	domain.Build.Commit = buildCommit

	abort(parser, Run(parser, args, logger))
}

type CLI struct {
	Debug  bool                 `arg:"--debug" help:"debugging output"`
	Start  *staffdesk.StartCmd  `arg:"subcommand:start" help:"run the web server"`
	Seed   *staffdesk.SeedCmd   `arg:"subcommand:seed" help:"insert sample employees into an empty database"`
	List   *staffdesk.ListCmd   `arg:"subcommand:list" help:"list employees of a running server"`
	Stats  *staffdesk.StatsCmd  `arg:"subcommand:stats" help:"show employee statistics of a running server"`
	Delete *staffdesk.DeleteCmd `arg:"subcommand:delete" help:"delete an employee on a running server"`
}

func Version() string {
	return fmt.Sprintf("%s (%s)", buildVersion, buildCommit)
}

func (CLI) Version() string {
	return fmt.Sprintf("staffdesk %s", Version())
}

func abort(parser *arg.Parser, err error) {
	switch err {
	case nil:
		return
	case arg.ErrHelp:
		parser.WriteHelp(os.Stderr)
		os.Exit(0)
	case arg.ErrVersion:
		fmt.Fprintln(os.Stdout, Version())
		os.Exit(0)
	default:
		fmt.Fprint(os.Stderr, err, "\n")
		os.Exit(1)
	}
}

func parseArgs(args *CLI) (parser *arg.Parser, err error) {
	parser, err = arg.NewParser(arg.Config{}, args)
	if err != nil {
		return
	}

	err = parser.Parse(os.Args[1:])
	return
}

func Run(parser *arg.Parser, args *CLI, logger *zerolog.Logger) error {
	switch {
	case args.Start != nil:
		return args.Start.Run(logger)
	case args.Seed != nil:
		return args.Seed.Run(logger)
	case args.List != nil:
		return args.List.Run(logger)
	case args.Stats != nil:
		return args.Stats.Run(logger)
	case args.Delete != nil:
		return args.Delete.Run(logger)
	default:
		parser.WriteHelp(os.Stderr)
	}
	return nil
}
