package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-planner/internal/date"
)

func TestNewFixedRate(t *testing.T) {
	tests := []struct {
		name    string
		annual  float64
		wantErr bool
		errMsg  string
	}{
		{name: "zero rate", annual: 0},
		{name: "four percent", annual: 0.04},
		{name: "negative but above -100%", annual: -0.5},
		{name: "large growth", annual: 10},
		{name: "minus one hundred percent", annual: -1, wantErr: true, errMsg: "greater than -100%"},
		{name: "below minus one hundred percent", annual: -1.5, wantErr: true, errMsg: "greater than -100%"},
		{name: "not a number", annual: math.NaN(), wantErr: true, errMsg: "finite"},
		{name: "infinite", annual: math.Inf(1), wantErr: true, errMsg: "finite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := NewFixedRate(tt.annual)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfiguration)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, rate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.annual, rate.AnnualRateAt(date.Date{}))
		})
	}
}

func TestFixedRate_CompoundsToAnnual(t *testing.T) {
	for _, annual := range []float64{-0.9, -0.2, 0, 0.01, 0.04, 0.07, 0.5, 2} {
		rate, err := NewFixedRate(annual)
		require.NoError(t, err)

		monthly := rate.MonthlyRateAt(date.MustParse("2023-01-01"))
		assert.InDelta(t, 1+annual, math.Pow(1+monthly, 12), 1e-9, "annual %v", annual)
	}
}

func TestFixedRate_IgnoresDate(t *testing.T) {
	rate, err := NewFixedRate(0.04)
	require.NoError(t, err)

	assert.InDelta(t, 0.0032737, rate.MonthlyRateAt(date.MustParse("1990-01-01")), 1e-7)
	assert.Equal(t, rate.MonthlyRateAt(date.MustParse("1990-01-01")), rate.MonthlyRateAt(date.MustParse("2090-06-15")))
}

func TestScheduledRate(t *testing.T) {
	schedule, err := NewScheduledRate([]RateTier{
		{From: date.MustParse("2023-01-01"), AnnualRate: 0.06},
		{From: date.MustParse("2040-01-01"), AnnualRate: 0.03},
	})
	require.NoError(t, err)

	tests := []struct {
		on   string
		want float64
	}{
		{"2000-01-01", 0.06}, // before the first tier
		{"2023-01-01", 0.06},
		{"2039-12-31", 0.06},
		{"2040-01-01", 0.03},
		{"2070-05-01", 0.03},
	}
	for _, tt := range tests {
		t.Run(tt.on, func(t *testing.T) {
			on := date.MustParse(tt.on)
			assert.Equal(t, tt.want, schedule.AnnualRateAt(on))
			assert.InDelta(t, MonthlyRate(tt.want), schedule.MonthlyRateAt(on), 1e-15)
		})
	}
	assert.Len(t, schedule.Tiers(), 2)
}

func TestNewScheduledRate_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		tiers []RateTier
	}{
		{"empty", nil},
		{"invalid rate", []RateTier{{From: date.MustParse("2023-01-01"), AnnualRate: -2}}},
		{"same date twice", []RateTier{
			{From: date.MustParse("2023-01-01"), AnnualRate: 0.01},
			{From: date.MustParse("2023-01-01"), AnnualRate: 0.02},
		}},
		{"unsorted", []RateTier{
			{From: date.MustParse("2030-01-01"), AnnualRate: 0.01},
			{From: date.MustParse("2023-01-01"), AnnualRate: 0.02},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScheduledRate(tt.tiers)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}
