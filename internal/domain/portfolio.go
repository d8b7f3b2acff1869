package domain

import (
	"fmt"
	"math"

	"github.com/simaogato/wealthflow-planner/internal/date"
)

// MaxTargetAge is the oldest age a projection may target.
const MaxTargetAge = 200

// Portfolio holds every account of one person, the recurring rules that feed or drain
// them, and the birthdate the rules' age windows are measured against.
// A Portfolio is not safe for concurrent use; callers serialize access.
type Portfolio struct {
	birthdate         date.Date
	names             []string // insertion order
	accounts          map[string]*Account
	contributionRules []ContributionRule
	withdrawalRules   []WithdrawalRule
}

// NewPortfolio returns an empty portfolio for a person born on birthdate.
func NewPortfolio(birthdate date.Date) *Portfolio {
	return &Portfolio{
		birthdate: birthdate,
		accounts:  make(map[string]*Account),
	}
}

func (p *Portfolio) Birthdate() date.Date { return p.birthdate }

// AgeOn returns the person's age in whole years on the given date.
func (p *Portfolio) AgeOn(on date.Date) int { return date.YearsBetween(p.birthdate, on) }

// DateAtAge returns the date the person turns age.
func (p *Portfolio) DateAtAge(age int) date.Date { return p.birthdate.AddYears(age) }

// AddAccount opens a new account. Names are unique within the portfolio.
func (p *Portfolio) AddAccount(name string, initialAmount float64, startDate date.Date, strategy InterestStrategy) error {
	if _, ok := p.accounts[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateAccount, name)
	}
	account, err := NewAccount(name, initialAmount, startDate, strategy)
	if err != nil {
		return err
	}
	p.accounts[name] = account
	p.names = append(p.names, name)
	return nil
}

// RemoveAccount drops an account. Rules that target it stay registered but no longer match.
func (p *Portfolio) RemoveAccount(name string) error {
	if _, err := p.account(name); err != nil {
		return err
	}
	delete(p.accounts, name)
	for i, n := range p.names {
		if n == name {
			p.names = append(p.names[:i], p.names[i+1:]...)
			break
		}
	}
	return nil
}

// AccountNames returns the account names in insertion order.
func (p *Portfolio) AccountNames() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Balance returns the current balance of the named account.
func (p *Portfolio) Balance(name string) (float64, error) {
	account, err := p.account(name)
	if err != nil {
		return 0, err
	}
	return account.CurrentAmount(), nil
}

// CurrentDate returns the date the named account has been projected to.
func (p *Portfolio) CurrentDate(name string) (date.Date, error) {
	account, err := p.account(name)
	if err != nil {
		return date.Date{}, err
	}
	return account.CurrentDate(), nil
}

// AnnualRateAt returns the annual rate the named account's strategy applies on a date.
func (p *Portfolio) AnnualRateAt(name string, on date.Date) (float64, error) {
	account, err := p.account(name)
	if err != nil {
		return 0, err
	}
	return account.Strategy().AnnualRateAt(on), nil
}

// AccountHistory returns a copy of the named account's snapshots.
func (p *Portfolio) AccountHistory(name string) ([]Snapshot, error) {
	account, err := p.account(name)
	if err != nil {
		return nil, err
	}
	return account.History(), nil
}

// TotalBalance sums the current balance of every account.
func (p *Portfolio) TotalBalance() float64 {
	total := 0.0
	for _, name := range p.names {
		total += p.accounts[name].CurrentAmount()
	}
	return total
}

// Deposit adds amount to the named account on its current date.
func (p *Portfolio) Deposit(name string, amount float64) error {
	account, err := p.account(name)
	if err != nil {
		return err
	}
	return account.Add(amount)
}

// Withdraw removes amount from the named account on its current date.
func (p *Portfolio) Withdraw(name string, amount float64) error {
	account, err := p.account(name)
	if err != nil {
		return err
	}
	return account.Subtract(amount)
}

// AddContributionRule registers a contribution rule. Its account must exist now.
func (p *Portfolio) AddContributionRule(rule ContributionRule) error {
	if err := p.checkRule(rule.AccountName, rule.Validate); err != nil {
		return err
	}
	p.contributionRules = append(p.contributionRules, rule)
	return nil
}

// AddWithdrawalRule registers a withdrawal rule. Its account must exist now.
func (p *Portfolio) AddWithdrawalRule(rule WithdrawalRule) error {
	if err := p.checkRule(rule.AccountName, rule.Validate); err != nil {
		return err
	}
	p.withdrawalRules = append(p.withdrawalRules, rule)
	return nil
}

// UpdateContributionRule replaces the rule at index i, with the same checks as AddContributionRule.
func (p *Portfolio) UpdateContributionRule(i int, rule ContributionRule) error {
	if err := checkIndex(i, len(p.contributionRules)); err != nil {
		return err
	}
	if err := p.checkRule(rule.AccountName, rule.Validate); err != nil {
		return err
	}
	p.contributionRules[i] = rule
	return nil
}

// UpdateWithdrawalRule replaces the rule at index i, with the same checks as AddWithdrawalRule.
func (p *Portfolio) UpdateWithdrawalRule(i int, rule WithdrawalRule) error {
	if err := checkIndex(i, len(p.withdrawalRules)); err != nil {
		return err
	}
	if err := p.checkRule(rule.AccountName, rule.Validate); err != nil {
		return err
	}
	p.withdrawalRules[i] = rule
	return nil
}

// RemoveContributionRule deletes the rule at index i; later rules shift down.
func (p *Portfolio) RemoveContributionRule(i int) error {
	if err := checkIndex(i, len(p.contributionRules)); err != nil {
		return err
	}
	p.contributionRules = append(p.contributionRules[:i], p.contributionRules[i+1:]...)
	return nil
}

// RemoveWithdrawalRule deletes the rule at index i; later rules shift down.
func (p *Portfolio) RemoveWithdrawalRule(i int) error {
	if err := checkIndex(i, len(p.withdrawalRules)); err != nil {
		return err
	}
	p.withdrawalRules = append(p.withdrawalRules[:i], p.withdrawalRules[i+1:]...)
	return nil
}

// ContributionRules returns a copy of the contribution rules in registration order.
func (p *Portfolio) ContributionRules() []ContributionRule {
	out := make([]ContributionRule, len(p.contributionRules))
	copy(out, p.contributionRules)
	return out
}

// WithdrawalRules returns a copy of the withdrawal rules in registration order.
func (p *Portfolio) WithdrawalRules() []WithdrawalRule {
	out := make([]WithdrawalRule, len(p.withdrawalRules))
	copy(out, p.withdrawalRules)
	return out
}

// AdvanceOneMonth moves every account forward one month. For each account the
// contributions and withdrawals matching the person's age on the account's current
// date are applied first, so they earn that month's growth.
func (p *Portfolio) AdvanceOneMonth() error {
	for _, name := range p.names {
		account := p.accounts[name]
		on := account.CurrentDate()
		age := p.AgeOn(on)

		for _, rule := range p.contributionRules {
			if rule.AccountName != name || !rule.Contains(age) {
				continue
			}
			if err := account.Add(rule.AmountAt(p.birthdate, on)); err != nil {
				return fmt.Errorf("contribution to %q on %s: %w", name, on, err)
			}
		}
		for _, rule := range p.withdrawalRules {
			if rule.AccountName != name || !rule.Contains(age) {
				continue
			}
			if err := account.Subtract(rule.Amount); err != nil {
				return fmt.Errorf("withdrawal from %q on %s: %w", name, on, err)
			}
		}
		account.AdvanceOneMonth()
	}
	return nil
}

// MonthsToDate returns how many AdvanceOneMonth calls ProjectToDate(target) would make.
// Targets too far away to count in an int report math.MaxInt.
func (p *Portfolio) MonthsToDate(target date.Date) int {
	months := 0
	for _, name := range p.names {
		on := p.accounts[name].CurrentDate()
		if !on.Before(target) {
			continue
		}
		years := target.Year() - on.Year()
		if years >= math.MaxInt/12 {
			return math.MaxInt
		}
		// every advance lands on the 1st, so a target past the 1st needs one more month
		n := years*12 + int(target.Month()) - int(on.Month())
		if target.Day() > 1 {
			n++
		}
		if n > months {
			months = n
		}
	}
	return months
}

// ProjectToDate advances all accounts together until every one of them has reached
// target. Accounts that get there first keep advancing, and keep applying their
// rules, while slower accounts catch up.
func (p *Portfolio) ProjectToDate(target date.Date) error {
	for p.anyBefore(target) {
		if err := p.AdvanceOneMonth(); err != nil {
			return err
		}
	}
	return nil
}

// ProjectToAge projects every account to the date the person turns targetAge.
func (p *Portfolio) ProjectToAge(targetAge int) error {
	return p.ProjectToDate(p.DateAtAge(targetAge))
}

func (p *Portfolio) anyBefore(target date.Date) bool {
	for _, name := range p.names {
		if p.accounts[name].CurrentDate().Before(target) {
			return true
		}
	}
	return false
}

func (p *Portfolio) account(name string) (*Account, error) {
	account, ok := p.accounts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAccount, name)
	}
	return account, nil
}

func (p *Portfolio) checkRule(accountName string, validate func() error) error {
	if err := validate(); err != nil {
		return err
	}
	_, err := p.account(accountName)
	return err
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidIndex, i, n)
	}
	return nil
}
