package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-planner/internal/date"
)

func TestNewContributionRule(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		start    int
		end      int
		increase float64
		wantErr  bool
		errMsg   string
	}{
		{name: "valid with escalation", amount: 500, start: 30, end: 65, increase: 0.02},
		{name: "zero amount is allowed", amount: 0, start: 30, end: 65},
		{name: "full escalation is allowed", amount: 100, start: 30, end: 31, increase: 1},
		{name: "negative amount", amount: -100, start: 30, end: 65, increase: 0.02, wantErr: true, errMsg: "non-negative"},
		{name: "NaN amount", amount: math.NaN(), start: 30, end: 65, wantErr: true, errMsg: "non-negative"},
		{name: "start after end", amount: 100, start: 30, end: 25, wantErr: true, errMsg: "start age must be less than end age"},
		{name: "start equals end", amount: 100, start: 30, end: 30, wantErr: true, errMsg: "start age must be less than end age"},
		{name: "escalation above one", amount: 100, start: 30, end: 65, increase: 1.5, wantErr: true, errMsg: "between 0.0 and 1.0"},
		{name: "negative escalation", amount: 100, start: 30, end: 65, increase: -0.1, wantErr: true, errMsg: "between 0.0 and 1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := NewContributionRule("pension", tt.amount, tt.start, tt.end, tt.increase)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "pension", rule.AccountName)
			assert.Equal(t, AgeWindow{StartAge: tt.start, EndAge: tt.end}, rule.AgeWindow)
		})
	}
}

func TestNewWithdrawalRule(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		start   int
		end     int
		wantErr bool
		errMsg  string
	}{
		{name: "valid", amount: 1000, start: 65, end: 85},
		{name: "negative amount", amount: -500, start: 65, end: 85, wantErr: true, errMsg: "must be positive"},
		{name: "zero amount", amount: 0, start: 65, end: 85, wantErr: true, errMsg: "must be positive"},
		{name: "start after end", amount: 1000, start: 70, end: 60, wantErr: true, errMsg: "start age must be less than end age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWithdrawalRule("pension", tt.amount, tt.start, tt.end)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAgeWindow_Contains(t *testing.T) {
	w := AgeWindow{StartAge: 33, EndAge: 34}

	assert.False(t, w.Contains(32))
	assert.True(t, w.Contains(33))
	assert.False(t, w.Contains(34), "end age is excluded")
}

func TestContributionRule_AmountAt(t *testing.T) {
	birth := date.MustParse("1990-01-01")
	rule, err := NewContributionRule("pension", 500, 33, 36, 0.10)
	require.NoError(t, err)

	tests := []struct {
		on   string
		want float64
	}{
		{"2023-01-01", 500},
		{"2023-12-01", 500},
		{"2024-01-01", 550},
		{"2024-06-01", 550},
		{"2025-01-01", 605},
		{"2025-12-01", 605},
	}
	for _, tt := range tests {
		t.Run(tt.on, func(t *testing.T) {
			assert.InDelta(t, tt.want, rule.AmountAt(birth, date.MustParse(tt.on)), 1e-9)
		})
	}
}

func TestContributionRule_AmountAt_MidYearBirthday(t *testing.T) {
	// escalation counts years since the 33rd birthday, not calendar years
	birth := date.MustParse("1990-07-15")
	rule, err := NewContributionRule("pension", 100, 33, 40, 0.5)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, rule.AmountAt(birth, date.MustParse("2024-07-01")), 1e-9)
	assert.InDelta(t, 150.0, rule.AmountAt(birth, date.MustParse("2024-08-01")), 1e-9)
}
