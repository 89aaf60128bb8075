package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
)

// Period is a calendar month used as an accounting bucket. Its text form is "MM-YYYY".
type Period struct {
	year  int
	month time.Month
}

// New returns the period for the given year and month, normalising out-of-range months.
func New(year int, month time.Month) Period {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{year: t.Year(), month: t.Month()}
}

// Of returns the period containing t.
func Of(t time.Time) Period {
	return Period{year: t.Year(), month: t.Month()}
}

// Parse reads an "MM-YYYY" token.
func Parse(s string) (Period, error) {
	mm, yyyy, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok || len(mm) != 2 || len(yyyy) != 4 {
		return Period{}, fmt.Errorf("%w: period %q must be MM-YYYY", apperr.ErrValidation, s)
	}

	month, err := strconv.Atoi(mm)
	if err != nil || month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: period %q has an invalid month", apperr.ErrValidation, s)
	}

	year, err := strconv.Atoi(yyyy)
	if err != nil || year < 1 {
		return Period{}, fmt.Errorf("%w: period %q has an invalid year", apperr.ErrValidation, s)
	}

	return Period{year: year, month: time.Month(month)}, nil
}

func (p Period) Year() int         { return p.year }
func (p Period) Month() time.Month { return p.month }
func (p Period) IsZero() bool      { return p.year == 0 }

func (p Period) String() string {
	if p.IsZero() {
		return ""
	}

	return fmt.Sprintf("%02d-%04d", int(p.month), p.year)
}

// AddMonths moves the period n months forward (or backwards when n is negative).
func (p Period) AddMonths(n int) Period {
	return New(p.year, p.month+time.Month(n))
}

func (p Period) Next() Period { return p.AddMonths(1) }

// Before reports whether p is earlier than o in calendar order.
func (p Period) Before(o Period) bool {
	if p.year != o.year {
		return p.year < o.year
	}

	return p.month < o.month
}

// Start returns the first day of the period at midnight in loc.
func (p Period) Start(loc *time.Location) time.Time {
	return time.Date(p.year, p.month, 1, 0, 0, 0, 0, loc)
}

// Days returns the number of days in the period.
func (p Period) Days() int {
	return time.Date(p.year, p.month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Period) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}

	*p = parsed

	return nil
}

// Window returns the selectable periods around now: the two upcoming months (for advance billing),
// the current month and the trailing eleven months, newest first.
func Window(now time.Time) []Period {
	current := Of(now)
	periods := make([]Period, 0, 14)

	for i := 2; i >= -11; i-- {
		periods = append(periods, current.AddMonths(i))
	}

	return periods
}
