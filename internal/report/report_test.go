package report

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-planner/internal/date"
	"github.com/simaogato/wealthflow-planner/internal/usecase/dashboard"
)

func TestFormatter(t *testing.T) {
	usd, err := NewFormatter("USD")
	require.NoError(t, err)
	assert.Equal(t, "$1,234.57", usd.Format(decimal.RequireFromString("1234.567")))
	assert.Equal(t, "-$12.50", usd.Format(decimal.RequireFromString("-12.5")))

	jpy, err := NewFormatter("JPY")
	require.NoError(t, err)
	assert.Equal(t, "¥1,235", jpy.Format(decimal.RequireFromString("1234.5")))

	huge := decimal.RequireFromString("100000000000000000")
	assert.Equal(t, "100000000000000000.00 USD", usd.Format(huge))
	assert.Equal(t, "-100000000000000000.00 USD", usd.Format(huge.Neg()))
	assert.Equal(t, "$90,000,000,000,000,000.00", usd.Format(decimal.RequireFromString("90000000000000000")))

	_, err = NewFormatter("XYZ")
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	f, err := NewFormatter("USD")
	require.NoError(t, err)

	r := Report{
		Title:  "retirement",
		Target: date.MustParse("2024-01-01"),
		Summary: &dashboard.Summary{
			Birthdate: date.MustParse("1990-01-01"),
			Total:     decimal.RequireFromString("10400"),
			Accounts: []dashboard.AccountSummary{{
				Name:        "pension",
				Balance:     decimal.RequireFromString("10400"),
				CurrentDate: date.MustParse("2024-01-01"),
				Age:         34,
				AnnualRate:  0.04,
			}},
		},
		Yearly: map[string][]dashboard.YearlyBalance{
			"pension": {
				{Age: 33, Date: date.MustParse("2023-01-01"), Balance: decimal.RequireFromString("10000")},
				{Age: 34, Date: date.MustParse("2024-01-01"), Balance: decimal.RequireFromString("10400")},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, f, r))

	out := buf.String()
	assert.Contains(t, out, "retirement (USD)")
	assert.Contains(t, out, "born 1990-01-01, projected to 2024-01-01")
	assert.Contains(t, out, "pension")
	assert.Contains(t, out, "4.00%")
	assert.Contains(t, out, "$10,400.00")
	assert.Contains(t, out, "$10,000.00")
	assert.Contains(t, out, "pension by age")
}
