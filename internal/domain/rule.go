package domain

import (
	"fmt"
	"math"

	"github.com/simaogato/wealthflow-planner/internal/date"
)

// AgeWindow is the half-open age interval [StartAge, EndAge) during which a rule applies.
type AgeWindow struct {
	StartAge int
	EndAge   int
}

// Contains reports whether age falls inside the window. EndAge itself is excluded.
func (w AgeWindow) Contains(age int) bool {
	return w.StartAge <= age && age < w.EndAge
}

func (w AgeWindow) validate(kind string) error {
	if w.StartAge >= w.EndAge {
		return fmt.Errorf("%w: start age must be less than end age for %s rule (%d >= %d)",
			ErrInvalidAmount, kind, w.StartAge, w.EndAge)
	}
	return nil
}

// ContributionRule is a recurring monthly deposit into one account while the person's
// age is inside the window. The amount escalates once per completed year since StartAge.
// Build it with NewContributionRule; the fields must not be changed afterwards.
type ContributionRule struct {
	AccountName        string
	Amount             float64 // base monthly deposit
	AgeWindow                  // [StartAge, EndAge)
	AnnualIncreaseRate float64 // 0.02 for a 2% raise each year, 0 for none
}

// NewContributionRule returns a validated contribution rule.
func NewContributionRule(accountName string, amount float64, startAge, endAge int, annualIncreaseRate float64) (ContributionRule, error) {
	r := ContributionRule{
		AccountName:        accountName,
		Amount:             amount,
		AgeWindow:          AgeWindow{StartAge: startAge, EndAge: endAge},
		AnnualIncreaseRate: annualIncreaseRate,
	}
	if err := r.Validate(); err != nil {
		return ContributionRule{}, err
	}
	return r, nil
}

// Validate ensures the contribution rule adheres to domain rules.
func (r ContributionRule) Validate() error {
	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) || r.Amount < 0 {
		return fmt.Errorf("%w: contribution amount must be non-negative, got %v", ErrInvalidAmount, r.Amount)
	}
	if math.IsNaN(r.AnnualIncreaseRate) || r.AnnualIncreaseRate < 0 || r.AnnualIncreaseRate > 1 {
		return fmt.Errorf("%w: annual increase rate must be between 0.0 and 1.0, got %v", ErrInvalidAmount, r.AnnualIncreaseRate)
	}
	return r.AgeWindow.validate("contribution")
}

// AmountAt returns the escalated monthly amount on a simulated date, given the birthdate.
// Escalation compounds once per completed year since the person turned StartAge.
func (r ContributionRule) AmountAt(birthdate, on date.Date) float64 {
	if r.AnnualIncreaseRate == 0 {
		return r.Amount
	}
	months := date.MonthsBetween(birthdate.AddYears(r.StartAge), on)
	if months < 0 {
		months = 0
	}
	return r.Amount * math.Pow(1+r.AnnualIncreaseRate, float64(months/12))
}

// WithdrawalRule is a recurring monthly withdrawal from one account while the person's
// age is inside the window. Build it with NewWithdrawalRule.
type WithdrawalRule struct {
	AccountName string
	Amount      float64 // monthly withdrawal, strictly positive
	AgeWindow
}

// NewWithdrawalRule returns a validated withdrawal rule.
func NewWithdrawalRule(accountName string, amount float64, startAge, endAge int) (WithdrawalRule, error) {
	r := WithdrawalRule{
		AccountName: accountName,
		Amount:      amount,
		AgeWindow:   AgeWindow{StartAge: startAge, EndAge: endAge},
	}
	if err := r.Validate(); err != nil {
		return WithdrawalRule{}, err
	}
	return r, nil
}

// Validate ensures the withdrawal rule adheres to domain rules.
func (r WithdrawalRule) Validate() error {
	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) || r.Amount <= 0 {
		return fmt.Errorf("%w: withdrawal amount must be positive, got %v", ErrInvalidAmount, r.Amount)
	}
	return r.AgeWindow.validate("withdrawal")
}
