package date

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

const readDateFormat = "2006-1-2" // permissive read format, allows single-digit month/day

// Format is the ISO-8601 layout used to write dates.
const Format = "2006-01-02"

// Date is a calendar day with no time-of-day or location.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
// Out-of-range values roll over the way time.Date does (e.g. month 13 is January of the next year).
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.Time().Date()
	return d
}

// Of returns the calendar day of t in t's own location.
func Of(t time.Time) Date { return New(t.Date()) }

// Today returns the current date.
func Today() Date { return Of(time.Now()) }

// Time returns the canonical representation of the day (midnight UTC).
func (d Date) Time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) Year() int         { return d.y }
func (d Date) Month() time.Month { return d.m }
func (d Date) Day() int          { return d.d }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether d is before x.
func (d Date) Before(x Date) bool { return d.Compare(x) < 0 }

// After reports whether d is after x.
func (d Date) After(x Date) bool { return d.Compare(x) > 0 }

// Equal reports whether d and x are the same day.
func (d Date) Equal(x Date) bool { return d == x }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after x.
func (d Date) Compare(x Date) int {
	switch {
	case d.y != x.y:
		return cmp(d.y, x.y)
	case d.m != x.m:
		return cmp(int(d.m), int(x.m))
	default:
		return cmp(d.d, x.d)
	}
}

func cmp(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// FirstOfNextMonth returns the first day of the calendar month following d.
func (d Date) FirstOfNextMonth() Date {
	if d.m == time.December {
		return Date{d.y + 1, time.January, 1}
	}
	return Date{d.y, d.m + 1, 1}
}

// AddYears returns the same day n years later. A 29th of February lands on the 28th
// when the target year is not a leap year, instead of rolling into March.
func (d Date) AddYears(n int) Date {
	y := d.y + n
	day := d.d
	if last := daysIn(y, d.m); day > last {
		day = last
	}
	return Date{y, d.m, day}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthsBetween returns the number of whole calendar months from from to to.
// A month is complete once the day-of-month of from has been reached again, clamped
// to the last day of to's month, so MonthsBetween(Jan 31, Feb 28) is 1 and
// MonthsBetween(Jan 31, Feb 27) is 0. The result is negative when to is before from.
func MonthsBetween(from, to Date) int {
	months := (to.y-from.y)*12 + int(to.m) - int(from.m)
	day := from.d
	if last := daysIn(to.y, to.m); day > last {
		day = last
	}
	switch {
	case months > 0 && to.d < day:
		months--
	case months < 0 && to.d > day:
		months++
	}
	return months
}

// YearsBetween returns the number of whole years from from to to, rounded towards
// negative infinity so that a day before from yields -1 rather than 0.
func YearsBetween(from, to Date) int {
	months := MonthsBetween(from, to)
	years := months / 12
	if months%12 != 0 && months < 0 {
		years--
	}
	return years
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.Time().Format(Format) }

// Parse parses a Date from a string. It is lenient and accepts "2025-7-1".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, Format, err)
	}
	return Of(on), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(str))
}

func (d Date) MarshalYAML() (interface{}, error) { return d.String(), nil }

// UnmarshalYAML reads the raw scalar so that unquoted dates are not resolved as timestamps first.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", node.Line)
	}
	return d.UnmarshalText([]byte(node.Value))
}

var (
	_ json.Marshaler   = Date{}
	_ json.Unmarshaler = (*Date)(nil)
	_ yaml.Marshaler   = Date{}
	_ yaml.Unmarshaler = (*Date)(nil)
)
