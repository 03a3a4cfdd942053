package staffdesk

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog"

	"github.com/staffdesk/staffdesk/src/client"
	"github.com/staffdesk/staffdesk/src/domain"
	"github.com/staffdesk/staffdesk/src/domain/repository"
)

type ClientOpts struct {
	ApiUrl  string        `arg:"--api-url,env:STAFFDESK_API_URL" default:"http://127.0.0.1:8080" help:"base URL of a running staffdesk server"`
	Timeout time.Duration `arg:"--timeout" default:"30s"`
}

func (opts ClientOpts) connect(logger *zerolog.Logger) (*client.Client, context.Context, context.CancelFunc, error) {
	c, err := client.New(opts.ApiUrl, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	return c, ctx, cancel, nil
}

type ListCmd struct {
	ClientOpts
}

func (cmd ListCmd) Run(logger *zerolog.Logger) error {
	c, ctx, cancel, err := cmd.connect(logger)
	if err != nil {
		return err
	}
	defer cancel()

	employees, err := c.Employees(ctx)
	if err != nil {
		return err
	}

	renderEmployees(os.Stdout, employees)
	return nil
}

type StatsCmd struct {
	ClientOpts
}

func (cmd StatsCmd) Run(logger *zerolog.Logger) error {
	c, ctx, cancel, err := cmd.connect(logger)
	if err != nil {
		return err
	}
	defer cancel()

	stats, err := c.Statistics(ctx)
	if err != nil {
		return err
	}

	renderStatistics(os.Stdout, stats)
	return nil
}

type DeleteCmd struct {
	ClientOpts

	Id int64 `arg:"positional,required" help:"ID of the employee to delete"`
}

func (cmd DeleteCmd) Run(logger *zerolog.Logger) error {
	c, ctx, cancel, err := cmd.connect(logger)
	if err != nil {
		return err
	}
	defer cancel()

	if err := c.Delete(ctx, cmd.Id); err != nil {
		return err
	}

	fmt.Printf("Deleted employee %d\n", cmd.Id)
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
)

func newTable(numberColumns ...int) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			for _, c := range numberColumns {
				if c == col {
					return numberStyle
				}
			}
			return cellStyle
		})
}

func renderEmployees(w io.Writer, employees []domain.Employee) {
	if len(employees) == 0 {
		fmt.Fprintln(w, "No employees.")
		return
	}

	t := newTable(0, 5).Headers("ID", "NAME", "EMAIL", "POSITION", "DEPARTMENT", "SALARY", "HIRED")
	for _, e := range employees {
		t.Row(
			strconv.FormatInt(e.ID, 10),
			e.Name,
			e.Email,
			e.Position,
			e.Department,
			strconv.FormatFloat(e.Salary, 'f', 2, 64),
			e.HireDate,
		)
	}
	fmt.Fprintln(w, t.Render())
}

func renderStatistics(w io.Writer, stats repository.EmployeeStatistics) {
	summary := newTable(1).
		Headers("", "").
		Row("Employees", strconv.FormatInt(stats.Total, 10)).
		Row("Total salary", strconv.FormatFloat(stats.TotalSalary, 'f', 2, 64)).
		Row("Average salary", strconv.FormatFloat(stats.AverageSalary, 'f', 2, 64))
	fmt.Fprintln(w, summary.Render())

	if len(stats.ByDepartment) == 0 {
		return
	}

	departments := newTable(1).Headers("DEPARTMENT", "EMPLOYEES")
	for _, d := range stats.ByDepartment {
		departments.Row(d.Department, strconv.FormatInt(d.Count, 10))
	}
	fmt.Fprintln(w, departments.Render())
}
