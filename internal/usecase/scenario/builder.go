package scenario

import (
	"context"
	"fmt"

	"github.com/simaogato/wealthflow-planner/internal/config"
	"github.com/simaogato/wealthflow-planner/internal/date"
	"github.com/simaogato/wealthflow-planner/internal/domain"
	"github.com/simaogato/wealthflow-planner/internal/usecase/projection"
)

// Builder turns scenario files into portfolios
type Builder struct {
	MaxProjectionMonths int
}

// NewBuilder creates a new Builder instance.
// maxProjectionMonths <= 0 selects projection.DefaultMaxProjectionMonths.
func NewBuilder(maxProjectionMonths int) *Builder {
	if maxProjectionMonths <= 0 {
		maxProjectionMonths = projection.DefaultMaxProjectionMonths
	}
	return &Builder{MaxProjectionMonths: maxProjectionMonths}
}

// Build configures a portfolio from the scenario: accounts first, then
// contribution and withdrawal rules, each in file order. Nothing is projected.
func (b *Builder) Build(s *config.Scenario) (*domain.Portfolio, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}

	p := domain.NewPortfolio(s.Birthdate)
	for _, a := range s.Accounts {
		strategy, err := a.Strategy()
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", a.Name, err)
		}
		if err := p.AddAccount(a.Name, a.InitialAmount, a.StartDate, strategy); err != nil {
			return nil, err
		}
	}
	for i, c := range s.Contributions {
		rule, err := c.Rule()
		if err != nil {
			return nil, fmt.Errorf("contributions[%d]: %w", i, err)
		}
		if err := p.AddContributionRule(rule); err != nil {
			return nil, fmt.Errorf("contributions[%d]: %w", i, err)
		}
	}
	for i, w := range s.Withdrawals {
		rule, err := w.Rule()
		if err != nil {
			return nil, fmt.Errorf("withdrawals[%d]: %w", i, err)
		}
		if err := p.AddWithdrawalRule(rule); err != nil {
			return nil, fmt.Errorf("withdrawals[%d]: %w", i, err)
		}
	}
	return p, nil
}

// Target returns the date the scenario projects to.
func Target(s *config.Scenario) date.Date {
	if s.Target.Age != nil {
		return s.Birthdate.AddYears(*s.Target.Age)
	}
	return s.Target.Date
}

// Run builds the scenario and projects it to its target.
func (b *Builder) Run(ctx context.Context, s *config.Scenario) (*domain.Portfolio, error) {
	p, err := b.Build(s)
	if err != nil {
		return nil, err
	}

	target := Target(s)
	if months := p.MonthsToDate(target); months > b.MaxProjectionMonths {
		return nil, fmt.Errorf("%w: reaching %s takes %d months, limit is %d",
			domain.ErrInvalidProjection, target, months, b.MaxProjectionMonths)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.ProjectToDate(target); err != nil {
		return nil, err
	}
	return p, nil
}

// Seed stores the scenario, unprojected, as a new session named after it
func (b *Builder) Seed(ctx context.Context, repo domain.SessionRepository, s *config.Scenario) (*domain.Session, error) {
	p, err := b.Build(s)
	if err != nil {
		return nil, err
	}

	session := domain.NewSession(s.Name, p)
	if err := session.Validate(); err != nil {
		return nil, err
	}
	if err := repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
