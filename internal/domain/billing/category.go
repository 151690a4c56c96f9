package billing

import (
	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Category represents one of the five fixed payment phases. The phase
// structure is a fixed business policy of the building, not configuration:
// every unit is sold on the same 15/10/40/25/10 split.
type Category string

const (
	CategoryBooking    Category = "booking"
	CategoryAllotment  Category = "allotment"
	CategoryMonthly    Category = "monthly"
	CategoryHalfYearly Category = "half_yearly"
	CategoryPossession Category = "possession"
)

// CategoryConfig describes a payment phase: its share of the total payable
// and how many installments it is collected in.
type CategoryConfig struct {
	Label        string
	Share        decimal.Decimal
	Installments int
}

// halfYearlyShareUnits is the divisor for the half-yearly phase. The sixth
// installment carries half the weight of the first five, so the 25% share
// is split across 5.5 equal units rather than 6.
var halfYearlyShareUnits = decimal.NewFromFloat(5.5)

// categories holds the fixed phase policy, in payment order.
var categories = map[Category]CategoryConfig{
	CategoryBooking:    {Label: "Booking", Share: decimal.New(15, -2), Installments: 1},
	CategoryAllotment:  {Label: "Allotment", Share: decimal.New(10, -2), Installments: 1},
	CategoryMonthly:    {Label: "Monthly", Share: decimal.New(40, -2), Installments: 33},
	CategoryHalfYearly: {Label: "Half-Yearly", Share: decimal.New(25, -2), Installments: 6},
	CategoryPossession: {Label: "On-Possession", Share: decimal.New(10, -2), Installments: 1},
}

// CategoryOrder lists the categories in display and payment order
var CategoryOrder = []Category{
	CategoryBooking,
	CategoryAllotment,
	CategoryMonthly,
	CategoryHalfYearly,
	CategoryPossession,
}

// Config returns the phase configuration for a category
func (c Category) Config() CategoryConfig {
	return categories[c]
}

// IsValid returns true if the category is one of the five fixed phases
func (c Category) IsValid() bool {
	_, ok := categories[c]
	return ok
}

// HasComputedDueDate returns true for the phases whose installments carry
// a due date chained off the allotment date. Booking, allotment and
// possession are payable on demand once unlocked and have no due date.
func (c Category) HasComputedDueDate() bool {
	return c == CategoryMonthly || c == CategoryHalfYearly
}

// ValidateCategory rejects anything outside the fixed phase set
func ValidateCategory(c Category) error {
	if !c.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Unknown payment category")
	}
	return nil
}

// ValidateInstallmentNumber rejects installment numbers outside the
// category's fixed installment count
func ValidateInstallmentNumber(c Category, n int) error {
	if err := ValidateCategory(c); err != nil {
		return err
	}
	if n < 1 || n > c.Config().Installments {
		return shared.NewDomainError("INVALID_INSTALLMENT", "Installment number out of range for category")
	}
	return nil
}
