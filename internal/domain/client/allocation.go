package client

import (
	"time"

	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Allocation links a client to a unit. It carries the per-unit discount,
// the resulting discounted price and the allotment date that anchors the
// installment due-date chain. A unit has at most one live allocation.
type Allocation struct {
	shared.BaseEntity
	ClientMembership   string
	UnitID             uuid.UUID
	AllotedDate        time.Time
	DiscountPercentage float64
	DiscountedPrice    decimal.Decimal
	Notes              string
}

// NewAllocation creates an allocation for a unit. The discounted price is
// resolved by the billing context before the allocation is created.
func NewAllocation(clientMembership string, unitID uuid.UUID, discountPct float64, discountedPrice decimal.Decimal) (*Allocation, error) {
	if _, err := ParseMembershipNumber(clientMembership); err != nil {
		return nil, err
	}
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit ID cannot be empty")
	}
	if discountedPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Discounted price cannot be negative")
	}

	return &Allocation{
		BaseEntity:         shared.NewBaseEntity(),
		ClientMembership:   clientMembership,
		UnitID:             unitID,
		AllotedDate:        time.Now(),
		DiscountPercentage: discountPct,
		DiscountedPrice:    discountedPrice,
	}, nil
}

// UpdateDiscount replaces the discount and its resolved price in place
func (a *Allocation) UpdateDiscount(discountPct float64, discountedPrice decimal.Decimal) error {
	if discountedPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Discounted price cannot be negative")
	}
	a.DiscountPercentage = discountPct
	a.DiscountedPrice = discountedPrice
	a.Touch()
	return nil
}

// SetNotes replaces the free-text notes shown on the payment statement
func (a *Allocation) SetNotes(notes string) {
	a.Notes = notes
	a.Touch()
}
