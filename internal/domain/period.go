package domain

import (
	"fmt"
	"time"
)

// PeriodLayout is the textual form of a YearMonth in config files and output.
const PeriodLayout = "2006-01"

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth creates a calendar month
func NewYearMonth(year int, month time.Month) YearMonth {
	return YearMonth{Year: year, Month: month}
}

// YearMonthOf returns the calendar month containing t
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses a "YYYY-MM" string
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(PeriodLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid period %q (expected YYYY-MM): %w", s, err)
	}
	return YearMonthOf(t), nil
}

// Index is a monotonically increasing month number, convenient for arithmetic.
func (p YearMonth) Index() int {
	return p.Year*12 + int(p.Month) - 1
}

// yearMonthFromIndex is the inverse of Index
func yearMonthFromIndex(i int) YearMonth {
	return YearMonth{Year: i / 12, Month: time.Month(i%12 + 1)}
}

// AddMonths returns the month n months later (earlier when n is negative).
func (p YearMonth) AddMonths(n int) YearMonth {
	return yearMonthFromIndex(p.Index() + n)
}

// MonthsUntil returns the number of months from p to q; negative when q precedes p.
func (p YearMonth) MonthsUntil(q YearMonth) int {
	return q.Index() - p.Index()
}

// Before reports whether p precedes q
func (p YearMonth) Before(q YearMonth) bool { return p.Index() < q.Index() }

// After reports whether p follows q
func (p YearMonth) After(q YearMonth) bool { return p.Index() > q.Index() }

// FirstDay returns midnight UTC on the first day of the month
func (p YearMonth) FirstDay() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether the month is unset
func (p YearMonth) IsZero() bool { return p.Year == 0 && p.Month == 0 }

// Validate checks the month is a plausible calendar month
func (p YearMonth) Validate() error {
	if p.Month < time.January || p.Month > time.December {
		return fmt.Errorf("month must be between 1 and 12, got %d", p.Month)
	}
	if p.Year < 1900 || p.Year > 2200 {
		return fmt.Errorf("year %d is out of range", p.Year)
	}
	return nil
}

func (p YearMonth) String() string {
	if p.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// MarshalText renders the month as YYYY-MM
func (p YearMonth) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses YYYY-MM; an empty value leaves the month unset.
func (p *YearMonth) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*p = YearMonth{}
		return nil
	}
	parsed, err := ParseYearMonth(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Range is an inclusive span of calendar months.
type Range struct {
	Start YearMonth `yaml:"start" json:"start"`
	End   YearMonth `yaml:"end" json:"end"`
}

// NewRange creates a range of n months starting at start
func NewRange(start YearMonth, months int) Range {
	return Range{Start: start, End: start.AddMonths(months - 1)}
}

// Months returns the number of calendar months covered, inclusive.
func (r Range) Months() int {
	return r.Start.MonthsUntil(r.End) + 1
}

// Periods lists every month in the range in chronological order.
func (r Range) Periods() []YearMonth {
	n := r.Months()
	if n <= 0 {
		return nil
	}
	periods := make([]YearMonth, n)
	for i := range periods {
		periods[i] = r.Start.AddMonths(i)
	}
	return periods
}

// Validate checks both ends and their order
func (r Range) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return NewValidationError("range.start", "%v", err)
	}
	if err := r.End.Validate(); err != nil {
		return NewValidationError("range.end", "%v", err)
	}
	if r.End.Before(r.Start) {
		return NewValidationError("range", "end %s is before start %s", r.End, r.Start)
	}
	return nil
}
