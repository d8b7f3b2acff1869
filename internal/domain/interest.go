package domain

import (
	"fmt"
	"math"
	"sort"

	"github.com/simaogato/wealthflow-planner/internal/date"
)

// InterestStrategy supplies the growth rate an account earns.
// Implementations must be pure: asking for a rate never changes the strategy.
type InterestStrategy interface {
	// MonthlyRateAt returns the multiplicative growth for the month starting at on,
	// e.g. 0.00327 for 4% a year compounded monthly.
	MonthlyRateAt(on date.Date) float64

	// AnnualRateAt returns the annual rate the monthly rate was derived from.
	AnnualRateAt(on date.Date) float64
}

// MonthlyRate converts an annual rate into its monthly compounding equivalent.
func MonthlyRate(annual float64) float64 {
	return math.Pow(1+annual, 1.0/12) - 1
}

func validateAnnualRate(annual float64) error {
	if math.IsNaN(annual) || math.IsInf(annual, 0) {
		return fmt.Errorf("%w: annual rate must be a finite number", ErrConfiguration)
	}
	if annual <= -1 {
		return fmt.Errorf("%w: annual rate must be greater than -100%%, got %v", ErrConfiguration, annual)
	}
	return nil
}

// FixedRate grows an account at the same rate whatever the date.
type FixedRate struct {
	annual  float64
	monthly float64
}

// NewFixedRate returns a FixedRate for the given annual rate (0.04 for 4%).
func NewFixedRate(annual float64) (*FixedRate, error) {
	if err := validateAnnualRate(annual); err != nil {
		return nil, err
	}
	return &FixedRate{annual: annual, monthly: MonthlyRate(annual)}, nil
}

func (r *FixedRate) MonthlyRateAt(date.Date) float64 { return r.monthly }
func (r *FixedRate) AnnualRateAt(date.Date) float64  { return r.annual }

// RateTier is one step of a ScheduledRate: AnnualRate applies from From onwards.
type RateTier struct {
	From       date.Date
	AnnualRate float64
}

// ScheduledRate changes rate on given dates, e.g. a lower expected return once
// savings are moved to bonds. Dates before the first tier use the first tier.
type ScheduledRate struct {
	tiers   []RateTier
	monthly []float64
}

// NewScheduledRate validates tiers (non-empty, strictly increasing dates, valid rates)
// and precomputes each tier's monthly rate.
func NewScheduledRate(tiers []RateTier) (*ScheduledRate, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: rate schedule must have at least one tier", ErrConfiguration)
	}
	s := &ScheduledRate{
		tiers:   make([]RateTier, len(tiers)),
		monthly: make([]float64, len(tiers)),
	}
	copy(s.tiers, tiers)
	for i, tier := range s.tiers {
		if err := validateAnnualRate(tier.AnnualRate); err != nil {
			return nil, fmt.Errorf("tier %d: %w", i, err)
		}
		if i > 0 && !tier.From.After(s.tiers[i-1].From) {
			return nil, fmt.Errorf("%w: tier %d starts on %s, not after %s", ErrConfiguration, i, tier.From, s.tiers[i-1].From)
		}
		s.monthly[i] = MonthlyRate(tier.AnnualRate)
	}
	return s, nil
}

// tierAt returns the index of the tier in force on on.
func (s *ScheduledRate) tierAt(on date.Date) int {
	// first tier starting strictly after on, minus one
	i := sort.Search(len(s.tiers), func(i int) bool { return s.tiers[i].From.After(on) }) - 1
	if i < 0 {
		return 0
	}
	return i
}

func (s *ScheduledRate) MonthlyRateAt(on date.Date) float64 { return s.monthly[s.tierAt(on)] }
func (s *ScheduledRate) AnnualRateAt(on date.Date) float64  { return s.tiers[s.tierAt(on)].AnnualRate }

// Tiers returns a copy of the schedule.
func (s *ScheduledRate) Tiers() []RateTier {
	out := make([]RateTier, len(s.tiers))
	copy(out, s.tiers)
	return out
}

var (
	_ InterestStrategy = (*FixedRate)(nil)
	_ InterestStrategy = (*ScheduledRate)(nil)
)
