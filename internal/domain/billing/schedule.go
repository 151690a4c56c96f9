package billing

import (
	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Schedule holds the expected amount of every installment for one unit,
// derived from that unit's total payable. The split is exhaustive: the
// five phase shares sum to 100% of the total.
type Schedule struct {
	Total          decimal.Decimal
	Booking        decimal.Decimal
	Allotment      decimal.Decimal
	MonthlyEach    decimal.Decimal
	HalfYearlyFull decimal.Decimal
	HalfYearlyHalf decimal.Decimal
	Possession     decimal.Decimal
}

// NewSchedule derives the installment amounts for a unit's total payable.
// A negative total is rejected; every other total splits cleanly. The
// half-yearly share is split over 5.5 units because the sixth installment
// is half the size of the first five.
func NewSchedule(total decimal.Decimal) (Schedule, error) {
	if total.IsNegative() {
		return Schedule{}, shared.NewDomainError("INVALID_TOTAL", "Total payable cannot be negative")
	}
	halfYearlyFull := total.Mul(categories[CategoryHalfYearly].Share).Div(halfYearlyShareUnits)
	return Schedule{
		Total:          total,
		Booking:        total.Mul(categories[CategoryBooking].Share),
		Allotment:      total.Mul(categories[CategoryAllotment].Share),
		MonthlyEach:    total.Mul(categories[CategoryMonthly].Share).DivRound(decimal.NewFromInt(33), 16),
		HalfYearlyFull: halfYearlyFull,
		HalfYearlyHalf: halfYearlyFull.Div(decimal.NewFromInt(2)),
		Possession:     total.Mul(categories[CategoryPossession].Share),
	}, nil
}

// ExpectedAmount returns the expected amount of a specific installment.
// All installments within a category are equal except the sixth
// half-yearly one, which is half the regular half-yearly amount.
func (s Schedule) ExpectedAmount(category Category, installmentNumber int) decimal.Decimal {
	switch category {
	case CategoryBooking:
		return s.Booking
	case CategoryAllotment:
		return s.Allotment
	case CategoryMonthly:
		return s.MonthlyEach
	case CategoryHalfYearly:
		if installmentNumber == categories[CategoryHalfYearly].Installments {
			return s.HalfYearlyHalf
		}
		return s.HalfYearlyFull
	case CategoryPossession:
		return s.Possession
	}
	return decimal.Zero
}
