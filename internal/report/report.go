package report

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-planner/internal/date"
	"github.com/simaogato/wealthflow-planner/internal/usecase/dashboard"
)

// Formatter displays amounts in one currency.
type Formatter struct {
	currency *money.Currency
}

// NewFormatter returns a Formatter for an ISO 4217 code such as "EUR".
func NewFormatter(code string) (*Formatter, error) {
	cur := money.GetCurrency(code)
	if cur == nil {
		return nil, fmt.Errorf("unknown currency %q", code)
	}
	return &Formatter{currency: cur}, nil
}

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// Format renders amount with the currency's symbol, grouping and fraction digits.
// Amounts whose minor units overflow an int64 are written plainly, followed by the code.
func (f *Formatter) Format(amount decimal.Decimal) string {
	fraction := int32(f.currency.Fraction)
	minor := amount.Round(fraction).Shift(fraction)
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return amount.StringFixed(fraction) + " " + f.currency.Code
	}
	return f.currency.Formatter().Format(minor.IntPart())
}

// Report is what Write prints for a projected scenario.
type Report struct {
	Title   string
	Target  date.Date
	Summary *dashboard.Summary
	Yearly  map[string][]dashboard.YearlyBalance // optional, by account name
}

// Write prints the account positions, then a yearly table for each account in Yearly.
func Write(w io.Writer, f *Formatter, r Report) error {
	s := r.Summary
	fmt.Fprintf(w, "%s (%s)\n", r.Title, f.currency.Code)
	fmt.Fprintf(w, "born %s, projected to %s\n\n", s.Birthdate, r.Target)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ACCOUNT\tDATE\tAGE\tRATE\tBALANCE\t")
	for _, a := range s.Accounts {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f%%\t%s\t\n", a.Name, a.CurrentDate, a.Age, a.AnnualRate*100, f.Format(a.Balance))
	}
	fmt.Fprintf(tw, "TOTAL\t\t\t\t%s\t\n", f.Format(s.Total))
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, a := range s.Accounts {
		series, ok := r.Yearly[a.Name]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "\n%s by age\n", a.Name)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "AGE\tDATE\tBALANCE\t")
		for _, p := range series {
			fmt.Fprintf(tw, "%d\t%s\t%s\t\n", p.Age, p.Date, f.Format(p.Balance))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
