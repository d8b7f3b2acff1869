package http

import (
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-planner/internal/date"
)

// CreateSessionRequest represents the request body for opening a session
type CreateSessionRequest struct {
	Name      string    `json:"name"`
	Birthdate date.Date `json:"birthdate"` // YYYY-MM-DD
}

// RateTierRequest is one step of a rate schedule
type RateTierRequest struct {
	From       date.Date `json:"from"`
	AnnualRate float64   `json:"annual_rate"`
}

// AddAccountRequest represents the request body for opening an account.
// Exactly one of annual_rate or rate_schedule must be set.
type AddAccountRequest struct {
	Name          string            `json:"name" binding:"required"`
	InitialAmount decimal.Decimal   `json:"initial_amount"` // "1234.56" or 1234.56
	StartDate     date.Date         `json:"start_date"`
	AnnualRate    *float64          `json:"annual_rate,omitempty"`
	RateSchedule  []RateTierRequest `json:"rate_schedule,omitempty"`
}

// ContributionRequest represents a contribution rule
type ContributionRequest struct {
	AccountName        string          `json:"account_name" binding:"required"`
	Amount             decimal.Decimal `json:"amount"`
	StartAge           int             `json:"start_age"`
	EndAge             int             `json:"end_age"`
	AnnualIncreaseRate float64         `json:"annual_increase_rate,omitempty"`
}

// WithdrawalRequest represents a withdrawal rule
type WithdrawalRequest struct {
	AccountName string          `json:"account_name" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	StartAge    int             `json:"start_age"`
	EndAge      int             `json:"end_age"`
}

// AmountRequest is the body of a one-off deposit or withdrawal
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ProjectRequest names where a projection stops: a date or an age, not both
type ProjectRequest struct {
	TargetDate *date.Date `json:"target_date,omitempty"`
	TargetAge  *int       `json:"target_age,omitempty"`
}

// SessionResponse describes a session
type SessionResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"` // RFC 3339
}

// AccountSummaryResponse is one account of a summary
type AccountSummaryResponse struct {
	Name        string    `json:"name"`
	Balance     string    `json:"balance"`
	CurrentDate date.Date `json:"current_date"`
	Age         int       `json:"age"`
	AnnualRate  float64   `json:"annual_rate"`
}

// SummaryResponse is a session's position
type SummaryResponse struct {
	SessionResponse
	Birthdate date.Date                `json:"birthdate"`
	Total     string                   `json:"total"`
	Accounts  []AccountSummaryResponse `json:"accounts"`
}

// BalanceResponse is one account's current balance
type BalanceResponse struct {
	Name   string    `json:"name"`
	Amount string    `json:"amount"`
	Date   date.Date `json:"date"`
}

// BalancesResponse lists every account's current balance
type BalancesResponse struct {
	Balances []BalanceResponse `json:"balances"`
	Total    string            `json:"total"`
}

// SnapshotResponse is one history entry
type SnapshotResponse struct {
	Date   date.Date `json:"date"`
	Amount string    `json:"amount"`
}

// YearlyBalanceResponse is an account's balance at a birthday
type YearlyBalanceResponse struct {
	Age     int       `json:"age"`
	Date    date.Date `json:"date"`
	Balance string    `json:"balance"`
}

// RuleResponse describes a registered rule
type RuleResponse struct {
	Index              int     `json:"index"`
	AccountName        string  `json:"account_name"`
	Amount             string  `json:"amount"`
	StartAge           int     `json:"start_age"`
	EndAge             int     `json:"end_age"`
	AnnualIncreaseRate float64 `json:"annual_increase_rate,omitempty"`
}

// RulesResponse lists a session's rules
type RulesResponse struct {
	Contributions []RuleResponse `json:"contributions"`
	Withdrawals   []RuleResponse `json:"withdrawals"`
}

// IndexResponse returns the index of a newly registered rule
type IndexResponse struct {
	Index int `json:"index"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
