package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-planner/internal/date"
)

// constantRate returns the same monthly rate for every date.
type constantRate float64

func (r constantRate) MonthlyRateAt(date.Date) float64 { return float64(r) }
func (r constantRate) AnnualRateAt(date.Date) float64  { return 0 }

func newTestAccount(t *testing.T, rate float64) *Account {
	t.Helper()
	account, err := NewAccount("savings", 1000, date.MustParse("2023-01-01"), constantRate(rate))
	require.NoError(t, err)
	return account
}

func TestAccount_Initialization(t *testing.T) {
	account := newTestAccount(t, 0.05)

	assert.Equal(t, "savings", account.Name())
	assert.Equal(t, 1000.0, account.CurrentAmount())
	assert.Equal(t, date.MustParse("2023-01-01"), account.CurrentDate())
	assert.Equal(t, []Snapshot{{Date: date.MustParse("2023-01-01"), Amount: 1000}}, account.History())
}

func TestNewAccount_Invalid(t *testing.T) {
	_, err := NewAccount("", 0, date.MustParse("2023-01-01"), constantRate(0))
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewAccount("savings", 0, date.MustParse("2023-01-01"), nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestAccount_AddAndSubtract(t *testing.T) {
	tests := []struct {
		name    string
		apply   func(a *Account) error
		want    float64
		wantErr bool
	}{
		{"add", func(a *Account) error { return a.Add(500) }, 1500, false},
		{"subtract", func(a *Account) error { return a.Subtract(200) }, 800, false},
		{"add zero", func(a *Account) error { return a.Add(0) }, 1000, false},
		{"subtract zero", func(a *Account) error { return a.Subtract(0) }, 1000, false},
		{"overdraft", func(a *Account) error { return a.Subtract(1500) }, -500, false},
		{"add negative", func(a *Account) error { return a.Add(-100) }, 1000, true},
		{"subtract negative", func(a *Account) error { return a.Subtract(-50) }, 1000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := newTestAccount(t, 0.05)

			err := tt.apply(account)

			assert.Equal(t, tt.want, account.CurrentAmount())
			assert.Equal(t, date.MustParse("2023-01-01"), account.CurrentDate())
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				assert.Len(t, account.History(), 1, "a rejected amount must not append")
			} else {
				assert.NoError(t, err)
				assert.Len(t, account.History(), 2)
			}
		})
	}
}

func TestAccount_AdvanceOneMonth(t *testing.T) {
	account := newTestAccount(t, 0.05)

	account.AdvanceOneMonth()

	assert.InDelta(t, 1050.0, account.CurrentAmount(), 1e-9)
	assert.Equal(t, date.MustParse("2023-02-01"), account.CurrentDate())
	assert.Len(t, account.History(), 2)
}

func TestAccount_AdvanceOneMonth_YearRollover(t *testing.T) {
	account, err := NewAccount("savings", 100, date.MustParse("2023-12-15"), constantRate(0))
	require.NoError(t, err)

	account.AdvanceOneMonth()
	assert.Equal(t, date.MustParse("2024-01-01"), account.CurrentDate())

	account.AdvanceOneMonth()
	assert.Equal(t, date.MustParse("2024-02-01"), account.CurrentDate())
}

func TestAccount_MultipleOperations(t *testing.T) {
	account := newTestAccount(t, 0.05)

	account.AdvanceOneMonth()            // Feb 1
	require.NoError(t, account.Add(100)) // Feb 1
	account.AdvanceOneMonth()            // Mar 1

	assert.InDelta(t, (1000*1.05+100)*1.05, account.CurrentAmount(), 1e-9)
	assert.Equal(t, date.MustParse("2023-03-01"), account.CurrentDate())
	assert.Len(t, account.History(), 4)
}

func TestAccount_LargeGrowthRate(t *testing.T) {
	account := newTestAccount(t, 10) // 1000% a month

	account.AdvanceOneMonth()

	assert.InDelta(t, 11000.0, account.CurrentAmount(), 1e-6)
}

func TestAccount_HistoryIsACopy(t *testing.T) {
	account := newTestAccount(t, 0)

	history := account.History()
	history[0].Amount = 42

	assert.Equal(t, 1000.0, account.CurrentAmount())
	assert.Len(t, account.History(), 1)
}
