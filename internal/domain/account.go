package domain

import (
	"fmt"
	"math"

	"github.com/simaogato/wealthflow-planner/internal/date"
)

// Snapshot is one (date, amount) record in an account's history.
type Snapshot struct {
	Date   date.Date
	Amount float64
}

// Account is a named balance with its own growth strategy and an append-only history.
// The history is never empty: the first snapshot is the inception snapshot, the last
// one holds the current date and balance. Balances may go negative (overdraft).
type Account struct {
	name     string
	history  []Snapshot
	strategy InterestStrategy
}

// NewAccount opens an account with initialAmount on startDate.
func NewAccount(name string, initialAmount float64, startDate date.Date, strategy InterestStrategy) (*Account, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: account name cannot be empty", ErrConfiguration)
	}
	if strategy == nil {
		return nil, fmt.Errorf("%w: account %q has no interest strategy", ErrConfiguration, name)
	}
	if math.IsNaN(initialAmount) || math.IsInf(initialAmount, 0) {
		return nil, fmt.Errorf("%w: initial amount must be a finite number", ErrInvalidAmount)
	}
	return &Account{
		name:     name,
		history:  []Snapshot{{Date: startDate, Amount: initialAmount}},
		strategy: strategy,
	}, nil
}

func (a *Account) Name() string                { return a.name }
func (a *Account) Strategy() InterestStrategy  { return a.strategy }
func (a *Account) CurrentAmount() float64      { return a.history[len(a.history)-1].Amount }
func (a *Account) CurrentDate() date.Date      { return a.history[len(a.history)-1].Date }
func (a *Account) HistoryLen() int             { return len(a.history) }
func (a *Account) InceptionSnapshot() Snapshot { return a.history[0] }

// History returns a copy of every snapshot, oldest first.
func (a *Account) History() []Snapshot {
	out := make([]Snapshot, len(a.history))
	copy(out, a.history)
	return out
}

// Add records a same-day deposit. Zero still appends a snapshot.
func (a *Account) Add(amount float64) error {
	if err := validateCashAmount(amount, "add"); err != nil {
		return err
	}
	a.record(amount)
	return nil
}

// Subtract records a same-day withdrawal of amount (a magnitude). Zero still appends a snapshot.
func (a *Account) Subtract(amount float64) error {
	if err := validateCashAmount(amount, "subtract"); err != nil {
		return err
	}
	a.record(-amount)
	return nil
}

// AdvanceOneMonth compounds the current balance by the strategy's monthly rate and
// moves the account to the first day of the following month.
func (a *Account) AdvanceOneMonth() {
	last := a.history[len(a.history)-1]
	rate := a.strategy.MonthlyRateAt(last.Date)
	a.history = append(a.history, Snapshot{
		Date:   last.Date.FirstOfNextMonth(),
		Amount: last.Amount * (1 + rate),
	})
}

func (a *Account) record(delta float64) {
	last := a.history[len(a.history)-1]
	a.history = append(a.history, Snapshot{Date: last.Date, Amount: last.Amount + delta})
}

func validateCashAmount(amount float64, op string) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: cannot %s a non-finite amount", ErrInvalidAmount, op)
	}
	if amount < 0 {
		return fmt.Errorf("%w: cannot %s a negative amount (%v)", ErrInvalidAmount, op, amount)
	}
	return nil
}
