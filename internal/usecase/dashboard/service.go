package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-planner/internal/date"
	"github.com/simaogato/wealthflow-planner/internal/domain"
)

// displayPlaces is the number of decimals amounts are rounded to for display.
const displayPlaces = 2

// AccountSummary is one account's position at its current date
type AccountSummary struct {
	Name        string
	Balance     decimal.Decimal
	CurrentDate date.Date
	Age         int     // person's age on CurrentDate
	AnnualRate  float64 // rate in force on CurrentDate
}

// Summary represents the calculated position of a planning session
type Summary struct {
	SessionID uuid.UUID
	Name      string
	Birthdate date.Date
	Total     decimal.Decimal
	Accounts  []AccountSummary
}

// YearlyBalance is an account's balance on the first month-start at or after a birthday
type YearlyBalance struct {
	Age     int
	Date    date.Date
	Balance decimal.Decimal
}

// DashboardService handles read-only views over planning sessions
type DashboardService struct {
	SessionRepo domain.SessionRepository
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(sessionRepo domain.SessionRepository) *DashboardService {
	return &DashboardService{SessionRepo: sessionRepo}
}

// GetSummary calculates the session's position
// Logic:
//   - Accounts: current balance, date, age and rate of each account, in insertion order
//   - Total: sum of the unrounded balances, rounded once at the end
func (s *DashboardService) GetSummary(ctx context.Context, id uuid.UUID) (*Summary, error) {
	session, err := s.SessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := &Summary{SessionID: session.ID, Name: session.Name}
	err = session.Do(func(p *domain.Portfolio) error {
		summary.Birthdate = p.Birthdate()
		summary.Total = Round(p.TotalBalance())
		for _, name := range p.AccountNames() {
			history, err := p.AccountHistory(name)
			if err != nil {
				return err
			}
			last := history[len(history)-1]
			rate, err := p.AnnualRateAt(name, last.Date)
			if err != nil {
				return err
			}
			summary.Accounts = append(summary.Accounts, AccountSummary{
				Name:        name,
				Balance:     Round(last.Amount),
				CurrentDate: last.Date,
				Age:         p.AgeOn(last.Date),
				AnnualRate:  rate,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to summarize session %s: %w", id, err)
	}
	return summary, nil
}

// YearlyBalances returns the balance series of one account by age, suitable for a chart.
// The first point is the inception snapshot; then one point per birthday reached.
func (s *DashboardService) YearlyBalances(ctx context.Context, id uuid.UUID, account string) ([]YearlyBalance, error) {
	session, err := s.SessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var series []YearlyBalance
	err = session.Do(func(p *domain.Portfolio) error {
		history, err := p.AccountHistory(account)
		if err != nil {
			return err
		}
		series = yearly(p, history)
		return nil
	})
	return series, err
}

func yearly(p *domain.Portfolio, history []domain.Snapshot) []YearlyBalance {
	first := history[0]
	series := []YearlyBalance{{Age: p.AgeOn(first.Date), Date: first.Date, Balance: Round(first.Amount)}}

	i := 0
	for age := p.AgeOn(first.Date) + 1; ; age++ {
		birthday := p.DateAtAge(age)
		for i < len(history) && history[i].Date.Before(birthday) {
			i++
		}
		if i == len(history) {
			return series
		}
		series = append(series, YearlyBalance{Age: age, Date: history[i].Date, Balance: Round(history[i].Amount)})
	}
}

// Round converts a float amount to a decimal rounded for display.
func Round(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(displayPlaces)
}
