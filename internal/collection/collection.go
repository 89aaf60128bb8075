package collection

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/income"
	"github.com/MrJamesThe3rd/tablero/internal/period"
)

// ErrDuplicateCollection is returned when the client already paid for the service month.
var ErrDuplicateCollection = income.ErrDuplicate

// Urgency ranks how soon a payment falls due.
type Urgency string

const (
	UrgencyOverdue  Urgency = "overdue"
	UrgencyDueToday Urgency = "due_today"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyThisWeek Urgency = "this_week"
	UrgencyNormal   Urgency = "normal"
)

// Classify maps a distance in days to an urgency.
func Classify(daysUntil int) Urgency {
	switch {
	case daysUntil < 0:
		return UrgencyOverdue
	case daysUntil == 0:
		return UrgencyDueToday
	case daysUntil <= 3:
		return UrgencyUrgent
	case daysUntil <= 7:
		return UrgencyThisWeek
	default:
		return UrgencyNormal
	}
}

// PendingEntry is the next expected payment of one active client.
type PendingEntry struct {
	ClientID         uuid.UUID
	ClientName       string
	MonthlyFee       decimal.Decimal
	PaymentDay       int
	DueDate          time.Time
	DaysUntil        int
	Urgency          Urgency
	MonthApplied     period.Period
	AlreadyCollected bool
}

// PendingList is ordered by DaysUntil, most urgent first. TotalPending only counts
// entries that are not collected yet.
type PendingList struct {
	Period       period.Period
	Today        time.Time
	Entries      []PendingEntry
	TotalPending decimal.Decimal
}

// NextOccurrence returns the first date on or after today that falls on day of month.
// Months shorter than day use their last day.
func NextOccurrence(today time.Time, day int) time.Time {
	today = truncateDay(today)
	y, m, _ := today.Date()

	occ := clampedDate(y, m, day, today.Location())
	if occ.Before(today) {
		occ = clampedDate(y, m+1, day, today.Location())
	}

	return occ
}

// DaysBetween counts calendar days from a to b, ignoring the time of day.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)

	return int(to.Sub(from).Hours() / 24)
}

func clampedDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	if last := period.Of(first).Days(); day > last {
		day = last
	}

	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, loc)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
