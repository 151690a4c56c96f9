package billing

import "time"

// categoryInterval returns the number of months between consecutive
// installments of a category, or 0 for phases without due dates.
func categoryInterval(c Category) int {
	switch c {
	case CategoryMonthly:
		return 1
	case CategoryHalfYearly:
		return 6
	}
	return 0
}

// AddMonths advances a date by whole months with day-of-month clamping:
// when the source day does not exist in the target month the result lands
// on the last day of that month, never spilling into the next one.
// Jan 31 plus one month is Feb 29 in a leap year and Feb 28 otherwise.
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, hh, mm, ss, t.Nanosecond(), t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

// DueDate computes the due date of the next payable installment in a
// category. The chain is anchored on the date the previous installment in
// the same category was paid, falling back to the allotment payment date
// for the first installment. Booking, allotment and possession phases
// have no due dates, and nothing is due before allotment is paid.
func DueDate(category Category, allotmentPaid *time.Time, previousPaid *time.Time) *time.Time {
	interval := categoryInterval(category)
	if interval == 0 || allotmentPaid == nil {
		return nil
	}
	anchor := *allotmentPaid
	if previousPaid != nil {
		anchor = *previousPaid
	}
	due := AddMonths(anchor, interval)
	return &due
}
