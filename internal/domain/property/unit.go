package property

import (
	"strings"

	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// UnitStatus represents the sales status of a unit
type UnitStatus string

const (
	UnitStatusAvailable UnitStatus = "available"
	UnitStatusSold      UnitStatus = "sold"
)

// UnitType represents the usage category of a unit
type UnitType string

const (
	UnitTypeResidential UnitType = "residential"
	UnitTypeCommercial  UnitType = "commercial"
)

// FloorOrder lists the building's floors from bottom to top. Unit listings
// and floor dropdowns follow this order rather than lexicographic order.
var FloorOrder = []string{
	"lower-ground",
	"ground",
	"first",
	"second",
	"third",
	"fourth",
	"fifth",
	"sixth",
	"seventh",
	"eighth",
	"ninth",
}

// Unit represents a sellable apartment or shop in the building.
// It is the aggregate root of the property context. Status is written
// exclusively by the allocation coordinator: a unit is sold if and only
// if a live allocation references it.
type Unit struct {
	shared.BaseEntity
	FloorID   string
	Number    string
	Type      UnitType
	Bedrooms  int
	Bathrooms int
	Area      decimal.Decimal
	Price     decimal.Decimal
	Status    UnitStatus
}

// NewUnit creates a new available unit
func NewUnit(floorID, number string, unitType UnitType, price decimal.Decimal) (*Unit, error) {
	if strings.TrimSpace(floorID) == "" {
		return nil, shared.NewDomainError("INVALID_FLOOR", "Floor ID cannot be empty")
	}
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Unit number cannot be empty")
	}
	if err := validateUnitType(unitType); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &Unit{
		BaseEntity: shared.NewBaseEntity(),
		FloorID:    floorID,
		Number:     number,
		Type:       unitType,
		Price:      price,
		Status:     UnitStatusAvailable,
	}, nil
}

// MarkSold transitions the unit to sold. Only an available unit can be sold.
func (u *Unit) MarkSold() error {
	if u.Status == UnitStatusSold {
		return shared.ErrUnitNotAvailable
	}
	u.Status = UnitStatusSold
	u.Touch()
	return nil
}

// MarkAvailable reverts the unit to available when its allocation is removed.
func (u *Unit) MarkAvailable() {
	u.Status = UnitStatusAvailable
	u.Touch()
}

// IsAvailable returns true if the unit can be allocated
func (u *Unit) IsAvailable() bool {
	return u.Status == UnitStatusAvailable
}

func validateUnitType(t UnitType) error {
	switch t {
	case UnitTypeResidential, UnitTypeCommercial:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Unit type must be 'residential' or 'commercial'")
	}
}
