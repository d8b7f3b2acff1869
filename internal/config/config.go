package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/simaogato/wealthflow-planner/internal/date"
	"github.com/simaogato/wealthflow-planner/internal/domain"
)

// Scenario is the on-disk shape of a planning scenario (YAML).
type Scenario struct {
	Name          string               `yaml:"name"`
	Birthdate     date.Date            `yaml:"birthdate"`
	Currency      string               `yaml:"currency"`
	Accounts      []AccountConfig      `yaml:"accounts"`
	Contributions []ContributionConfig `yaml:"contributions"`
	Withdrawals   []WithdrawalConfig   `yaml:"withdrawals"`
	Target        TargetConfig         `yaml:"target"`
}

type AccountConfig struct {
	Name          string       `yaml:"name"`
	InitialAmount float64      `yaml:"initial_amount"`
	StartDate     date.Date    `yaml:"start_date"`
	AnnualRate    *float64     `yaml:"annual_rate"`
	RateSchedule  []RateConfig `yaml:"rate_schedule"`
}

type RateConfig struct {
	From       date.Date `yaml:"from"`
	AnnualRate float64   `yaml:"annual_rate"`
}

type ContributionConfig struct {
	Account            string  `yaml:"account"`
	Amount             float64 `yaml:"amount"`
	StartAge           int     `yaml:"start_age"`
	EndAge             int     `yaml:"end_age"`
	AnnualIncreaseRate float64 `yaml:"annual_increase_rate"`
}

type WithdrawalConfig struct {
	Account  string  `yaml:"account"`
	Amount   float64 `yaml:"amount"`
	StartAge int     `yaml:"start_age"`
	EndAge   int     `yaml:"end_age"`
}

// TargetConfig names where the projection stops: an age or a date, not both.
type TargetConfig struct {
	Age  *int      `yaml:"age"`
	Date date.Date `yaml:"date"`
}

// DefaultCurrency is used when a scenario does not name one.
const DefaultCurrency = "EUR"

// Load reads, defaults and validates a scenario file.
func Load(path string) (*Scenario, error) {
	s, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadUnchecked reads a scenario file without defaulting or validating it.
// Useful for debugging/printing partial scenarios.
func LoadUnchecked(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse decodes a scenario from YAML bytes. Unknown keys are rejected.
func Parse(raw []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return &s, nil
}

func (s *Scenario) applyDefaults() {
	if s.Currency == "" {
		s.Currency = DefaultCurrency
	}
	if s.Name == "" {
		s.Name = "scenario"
	}
}

// Validate checks the scenario shape. Amount, rate and age checks are left to the
// domain constructors so that the rules live in one place.
func (s *Scenario) Validate() error {
	if s == nil {
		return errors.New("scenario is nil")
	}
	if s.Birthdate.IsZero() {
		return errors.New("birthdate is required")
	}
	if len(s.Accounts) == 0 {
		return errors.New("at least one account is required")
	}
	for i, a := range s.Accounts {
		if a.Name == "" {
			return fmt.Errorf("accounts[%d]: name is required", i)
		}
		if a.StartDate.IsZero() {
			return fmt.Errorf("account %q: start_date is required", a.Name)
		}
		if (a.AnnualRate == nil) == (len(a.RateSchedule) == 0) {
			return fmt.Errorf("account %q: exactly one of annual_rate or rate_schedule is required", a.Name)
		}
	}
	if (s.Target.Age == nil) == s.Target.Date.IsZero() {
		return errors.New("target: exactly one of age or date is required")
	}
	if age := s.Target.Age; age != nil && (*age < 0 || *age > domain.MaxTargetAge) {
		return fmt.Errorf("target: age %d not in [0, %d]", *age, domain.MaxTargetAge)
	}
	return nil
}

// Strategy builds the account's interest strategy.
func (a AccountConfig) Strategy() (domain.InterestStrategy, error) {
	if a.AnnualRate != nil {
		return domain.NewFixedRate(*a.AnnualRate)
	}
	tiers := make([]domain.RateTier, 0, len(a.RateSchedule))
	for _, r := range a.RateSchedule {
		tiers = append(tiers, domain.RateTier{From: r.From, AnnualRate: r.AnnualRate})
	}
	return domain.NewScheduledRate(tiers)
}

// Rule builds the validated domain rule.
func (c ContributionConfig) Rule() (domain.ContributionRule, error) {
	return domain.NewContributionRule(c.Account, c.Amount, c.StartAge, c.EndAge, c.AnnualIncreaseRate)
}

// Rule builds the validated domain rule.
func (w WithdrawalConfig) Rule() (domain.WithdrawalRule, error) {
	return domain.NewWithdrawalRule(w.Account, w.Amount, w.StartAge, w.EndAge)
}
