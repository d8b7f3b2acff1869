package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/simaogato/wealthflow-planner/internal/adapter/repository/memory"
	"github.com/simaogato/wealthflow-planner/internal/config"
	"github.com/simaogato/wealthflow-planner/internal/domain"
	"github.com/simaogato/wealthflow-planner/internal/export"
	"github.com/simaogato/wealthflow-planner/internal/report"
	"github.com/simaogato/wealthflow-planner/internal/usecase/dashboard"
	"github.com/simaogato/wealthflow-planner/internal/usecase/projection"
	"github.com/simaogato/wealthflow-planner/internal/usecase/scenario"
)

var commands = []subcommands.Command{
	&projectCmd{},
	&exportCmd{},
	&chartCmd{},
}

// scenarioFlags are shared by every command.
type scenarioFlags struct {
	file      string
	maxMonths int
}

func (s *scenarioFlags) register(f *flag.FlagSet) {
	f.StringVar(&s.file, "f", "scenario.yaml", "The scenario file to project.")
	f.IntVar(&s.maxMonths, "max-months", projection.DefaultMaxProjectionMonths, "Refuse projections longer than this many months.")
}

// run loads the scenario and projects it to its target.
func (s *scenarioFlags) run(ctx context.Context) (*config.Scenario, *domain.Portfolio, error) {
	sc, err := config.Load(s.file)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", s.file, err)
	}
	p, err := scenario.NewBuilder(s.maxMonths).Run(ctx, sc)
	if err != nil {
		return nil, nil, fmt.Errorf("project %s: %w", s.file, err)
	}
	return sc, p, nil
}

func histories(p *domain.Portfolio) ([]export.AccountHistory, error) {
	var out []export.AccountHistory
	for _, name := range p.AccountNames() {
		h, err := p.AccountHistory(name)
		if err != nil {
			return nil, err
		}
		out = append(out, export.AccountHistory{Name: name, Snapshots: h})
	}
	return out, nil
}

type projectCmd struct {
	scenarioFlags
	yearly bool
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project a scenario to its target and print the balances" }
func (*projectCmd) Usage() string {
	return `projector project [-f <scenario.yaml>] [-yearly]

  Builds the accounts and rules of the scenario, projects them month by month
  to the scenario's target and prints every account's balance.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	c.scenarioFlags.register(f)
	f.BoolVar(&c.yearly, "yearly", false, "Also print each account's balance at every birthday.")
}

func (c *projectCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.execute(ctx, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *projectCmd) execute(ctx context.Context, w io.Writer) error {
	sc, p, err := c.run(ctx)
	if err != nil {
		return err
	}
	formatter, err := report.NewFormatter(sc.Currency)
	if err != nil {
		return err
	}

	// the dashboard reads sessions, so hand it the projected portfolio as one
	repo := memory.NewSessionRepository()
	session := domain.NewSession(sc.Name, p)
	if err := repo.Create(ctx, session); err != nil {
		return err
	}
	dash := dashboard.NewDashboardService(repo)

	summary, err := dash.GetSummary(ctx, session.ID)
	if err != nil {
		return err
	}
	r := report.Report{Title: sc.Name, Target: scenario.Target(sc), Summary: summary}
	if c.yearly {
		r.Yearly = make(map[string][]dashboard.YearlyBalance)
		for _, name := range p.AccountNames() {
			series, err := dash.YearlyBalances(ctx, session.ID, name)
			if err != nil {
				return err
			}
			r.Yearly[name] = series
		}
	}
	return report.Write(w, formatter, r)
}

type exportCmd struct {
	scenarioFlags
	out string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "project a scenario and write every snapshot as CSV" }
func (*exportCmd) Usage() string {
	return `projector export [-f <scenario.yaml>] [-o <file.csv>]

  Writes account,date,amount rows for every snapshot of every account.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.scenarioFlags.register(f)
	f.StringVar(&c.out, "o", "-", "Output file, - for stdout.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *exportCmd) execute(ctx context.Context) error {
	_, p, err := c.run(ctx)
	if err != nil {
		return err
	}
	h, err := histories(p)
	if err != nil {
		return err
	}

	if c.out == "-" {
		return export.WriteHistoryCSV(os.Stdout, h)
	}
	f, err := os.Create(c.out)
	if err != nil {
		return err
	}
	if err := export.WriteHistoryCSV(f, h); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type chartCmd struct {
	scenarioFlags
	out string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "project a scenario and draw the balances over time" }
func (*chartCmd) Usage() string {
	return `projector chart [-f <scenario.yaml>] [-o <file.png>]

  Draws one line per account. The image format follows the file extension.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	c.scenarioFlags.register(f)
	f.StringVar(&c.out, "o", "balances.png", "Output image file.")
}

func (c *chartCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("chart written to %s\n", c.out)
	return subcommands.ExitSuccess
}

func (c *chartCmd) execute(ctx context.Context) error {
	sc, p, err := c.run(ctx)
	if err != nil {
		return err
	}
	h, err := histories(p)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s: balances until %s", sc.Name, scenario.Target(sc))
	return export.RenderChart(c.out, title, h)
}

