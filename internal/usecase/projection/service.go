package projection

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-planner/internal/date"
	"github.com/simaogato/wealthflow-planner/internal/domain"
)

// DefaultMaxProjectionMonths bounds a single projection request (100 years).
const DefaultMaxProjectionMonths = 1200

// CreateSessionInput represents the input for opening a planning session
type CreateSessionInput struct {
	Name      string
	Birthdate date.Date
}

// AddAccountInput represents the input for opening an account.
// Exactly one of AnnualRate or RateSchedule must be set.
type AddAccountInput struct {
	Name          string
	InitialAmount decimal.Decimal
	StartDate     date.Date
	AnnualRate    *float64
	RateSchedule  []domain.RateTier
}

// ContributionInput represents a contribution rule as sent by a caller
type ContributionInput struct {
	AccountName        string
	Amount             decimal.Decimal
	StartAge           int
	EndAge             int
	AnnualIncreaseRate float64
}

// WithdrawalInput represents a withdrawal rule as sent by a caller
type WithdrawalInput struct {
	AccountName string
	Amount      decimal.Decimal
	StartAge    int
	EndAge      int
}

// RuleKind selects the contribution or withdrawal rule list
type RuleKind string

const (
	RuleKindContribution RuleKind = "CONTRIBUTION"
	RuleKindWithdrawal   RuleKind = "WITHDRAWAL"
)

// RuleSet is a snapshot of a session's rules
type RuleSet struct {
	Contributions []domain.ContributionRule
	Withdrawals   []domain.WithdrawalRule
}

// Service runs planning sessions: it owns no state itself, every portfolio lives
// in its session and every call locks that session.
type Service struct {
	SessionRepo         domain.SessionRepository
	MaxProjectionMonths int
}

// NewProjectionService creates a new Service instance.
// maxProjectionMonths <= 0 selects DefaultMaxProjectionMonths.
func NewProjectionService(sessionRepo domain.SessionRepository, maxProjectionMonths int) *Service {
	if maxProjectionMonths <= 0 {
		maxProjectionMonths = DefaultMaxProjectionMonths
	}
	return &Service{
		SessionRepo:         sessionRepo,
		MaxProjectionMonths: maxProjectionMonths,
	}
}

// CreateSession opens a new session with an empty portfolio
func (s *Service) CreateSession(ctx context.Context, input CreateSessionInput) (*domain.Session, error) {
	if input.Birthdate.IsZero() {
		return nil, fmt.Errorf("%w: birthdate is required", domain.ErrConfiguration)
	}

	session := domain.NewSession(input.Name, domain.NewPortfolio(input.Birthdate))
	if err := session.Validate(); err != nil {
		return nil, err
	}
	if err := s.SessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession retrieves a session by ID
func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return s.SessionRepo.GetByID(ctx, id)
}

// ListSessions retrieves every open session
func (s *Service) ListSessions(ctx context.Context) ([]*domain.Session, error) {
	return s.SessionRepo.List(ctx)
}

// DeleteSession closes a session
func (s *Service) DeleteSession(ctx context.Context, id uuid.UUID) error {
	return s.SessionRepo.Delete(ctx, id)
}

// View runs fn with exclusive access to the session's portfolio. fn must not keep
// the portfolio after returning.
func (s *Service) View(ctx context.Context, id uuid.UUID, fn func(p *domain.Portfolio) error) error {
	session, err := s.SessionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return session.Do(fn)
}

// AddAccount opens an account in the session's portfolio
func (s *Service) AddAccount(ctx context.Context, id uuid.UUID, input AddAccountInput) error {
	if input.StartDate.IsZero() {
		return fmt.Errorf("%w: account %q needs a start date", domain.ErrConfiguration, input.Name)
	}
	strategy, err := buildStrategy(input)
	if err != nil {
		return err
	}
	return s.View(ctx, id, func(p *domain.Portfolio) error {
		return p.AddAccount(input.Name, input.InitialAmount.InexactFloat64(), input.StartDate, strategy)
	})
}

func buildStrategy(input AddAccountInput) (domain.InterestStrategy, error) {
	switch {
	case input.AnnualRate != nil && len(input.RateSchedule) > 0:
		return nil, fmt.Errorf("%w: account %q has both an annual rate and a rate schedule", domain.ErrConfiguration, input.Name)
	case input.AnnualRate != nil:
		return domain.NewFixedRate(*input.AnnualRate)
	case len(input.RateSchedule) > 0:
		return domain.NewScheduledRate(input.RateSchedule)
	default:
		return nil, fmt.Errorf("%w: account %q needs an annual rate or a rate schedule", domain.ErrConfiguration, input.Name)
	}
}

// RemoveAccount drops an account; its rules stay but no longer match
func (s *Service) RemoveAccount(ctx context.Context, id uuid.UUID, name string) error {
	return s.View(ctx, id, func(p *domain.Portfolio) error {
		return p.RemoveAccount(name)
	})
}

// AddContributionRule registers a contribution rule and returns its index
func (s *Service) AddContributionRule(ctx context.Context, id uuid.UUID, input ContributionInput) (int, error) {
	rule, err := input.rule()
	if err != nil {
		return 0, err
	}
	var index int
	err = s.View(ctx, id, func(p *domain.Portfolio) error {
		if err := p.AddContributionRule(rule); err != nil {
			return err
		}
		index = len(p.ContributionRules()) - 1
		return nil
	})
	return index, err
}

// AddWithdrawalRule registers a withdrawal rule and returns its index
func (s *Service) AddWithdrawalRule(ctx context.Context, id uuid.UUID, input WithdrawalInput) (int, error) {
	rule, err := input.rule()
	if err != nil {
		return 0, err
	}
	var index int
	err = s.View(ctx, id, func(p *domain.Portfolio) error {
		if err := p.AddWithdrawalRule(rule); err != nil {
			return err
		}
		index = len(p.WithdrawalRules()) - 1
		return nil
	})
	return index, err
}

// UpdateContributionRule replaces the contribution rule at index
func (s *Service) UpdateContributionRule(ctx context.Context, id uuid.UUID, index int, input ContributionInput) error {
	rule, err := input.rule()
	if err != nil {
		return err
	}
	return s.View(ctx, id, func(p *domain.Portfolio) error {
		return p.UpdateContributionRule(index, rule)
	})
}

// UpdateWithdrawalRule replaces the withdrawal rule at index
func (s *Service) UpdateWithdrawalRule(ctx context.Context, id uuid.UUID, index int, input WithdrawalInput) error {
	rule, err := input.rule()
	if err != nil {
		return err
	}
	return s.View(ctx, id, func(p *domain.Portfolio) error {
		return p.UpdateWithdrawalRule(index, rule)
	})
}

// RemoveRule deletes the rule at index from the list selected by kind
func (s *Service) RemoveRule(ctx context.Context, id uuid.UUID, kind RuleKind, index int) error {
	return s.View(ctx, id, func(p *domain.Portfolio) error {
		switch kind {
		case RuleKindContribution:
			return p.RemoveContributionRule(index)
		case RuleKindWithdrawal:
			return p.RemoveWithdrawalRule(index)
		default:
			return fmt.Errorf("%w: rule kind must be CONTRIBUTION or WITHDRAWAL, got %q", domain.ErrInvalidIndex, kind)
		}
	})
}

// Rules returns a copy of the session's rules
func (s *Service) Rules(ctx context.Context, id uuid.UUID) (*RuleSet, error) {
	var rules RuleSet
	err := s.View(ctx, id, func(p *domain.Portfolio) error {
		rules.Contributions = p.ContributionRules()
		rules.Withdrawals = p.WithdrawalRules()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rules, nil
}

// Deposit adds a one-off amount to an account on its current date
func (s *Service) Deposit(ctx context.Context, id uuid.UUID, name string, amount decimal.Decimal) error {
	return s.View(ctx, id, func(p *domain.Portfolio) error {
		return p.Deposit(name, amount.InexactFloat64())
	})
}

// Withdraw removes a one-off amount from an account on its current date
func (s *Service) Withdraw(ctx context.Context, id uuid.UUID, name string, amount decimal.Decimal) error {
	return s.View(ctx, id, func(p *domain.Portfolio) error {
		return p.Withdraw(name, amount.InexactFloat64())
	})
}

// AdvanceOneMonth advances every account of the session by one month
func (s *Service) AdvanceOneMonth(ctx context.Context, id uuid.UUID) error {
	return s.View(ctx, id, func(p *domain.Portfolio) error {
		return p.AdvanceOneMonth()
	})
}

// ProjectToDate advances the session until every account has reached target.
// Requests needing more than MaxProjectionMonths are refused before anything moves.
func (s *Service) ProjectToDate(ctx context.Context, id uuid.UUID, target date.Date) error {
	return s.View(ctx, id, func(p *domain.Portfolio) error {
		return s.project(ctx, p, target)
	})
}

// ProjectToAge advances the session until the person reaches targetAge.
// targetAge must be in [0, domain.MaxTargetAge].
func (s *Service) ProjectToAge(ctx context.Context, id uuid.UUID, targetAge int) error {
	if targetAge < 0 || targetAge > domain.MaxTargetAge {
		return fmt.Errorf("%w: target age %d not in [0, %d]", domain.ErrInvalidProjection, targetAge, domain.MaxTargetAge)
	}
	return s.View(ctx, id, func(p *domain.Portfolio) error {
		return s.project(ctx, p, p.DateAtAge(targetAge))
	})
}

func (s *Service) project(ctx context.Context, p *domain.Portfolio, target date.Date) error {
	if months := p.MonthsToDate(target); months > s.MaxProjectionMonths {
		return fmt.Errorf("%w: reaching %s takes %d months, limit is %d",
			domain.ErrInvalidProjection, target, months, s.MaxProjectionMonths)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.ProjectToDate(target)
}

// Balance is one account's position as reported by Balances
type Balance struct {
	Name   string
	Amount float64
	Date   date.Date
}

// Balances returns the current position of every account in insertion order
func (s *Service) Balances(ctx context.Context, id uuid.UUID) ([]Balance, error) {
	var balances []Balance
	err := s.View(ctx, id, func(p *domain.Portfolio) error {
		for _, name := range p.AccountNames() {
			amount, err := p.Balance(name)
			if err != nil {
				return err
			}
			on, err := p.CurrentDate(name)
			if err != nil {
				return err
			}
			balances = append(balances, Balance{Name: name, Amount: amount, Date: on})
		}
		return nil
	})
	return balances, err
}

// AccountHistory returns a copy of an account's snapshots
func (s *Service) AccountHistory(ctx context.Context, id uuid.UUID, name string) ([]domain.Snapshot, error) {
	var history []domain.Snapshot
	err := s.View(ctx, id, func(p *domain.Portfolio) error {
		var err error
		history, err = p.AccountHistory(name)
		return err
	})
	return history, err
}

func (in ContributionInput) rule() (domain.ContributionRule, error) {
	return domain.NewContributionRule(in.AccountName, in.Amount.InexactFloat64(), in.StartAge, in.EndAge, in.AnnualIncreaseRate)
}

func (in WithdrawalInput) rule() (domain.WithdrawalRule, error) {
	return domain.NewWithdrawalRule(in.AccountName, in.Amount.InexactFloat64(), in.StartAge, in.EndAge)
}
