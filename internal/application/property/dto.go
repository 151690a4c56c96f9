package property

import (
	"github.com/eyrie/backend/internal/domain/property"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitResponse is one unit in the building listing
type UnitResponse struct {
	ID        uuid.UUID       `json:"id"`
	FloorID   string          `json:"floor_id"`
	Number    string          `json:"number"`
	Type      string          `json:"type"`
	Bedrooms  int             `json:"bedrooms,omitempty"`
	Bathrooms int             `json:"bathrooms,omitempty"`
	Area      decimal.Decimal `json:"area,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status"`
}

// FloorResponse is one floor with its units, bottom to top
type FloorResponse struct {
	FloorID string         `json:"floor_id"`
	Units   []UnitResponse `json:"units"`
}

// ListingResponse is the whole building grouped by floor
type ListingResponse struct {
	Floors []FloorResponse `json:"floors"`
	Total  int             `json:"total"`
}

// ToUnitResponse maps a unit to the API view
func ToUnitResponse(u *property.Unit) UnitResponse {
	return UnitResponse{
		ID:        u.ID,
		FloorID:   u.FloorID,
		Number:    u.Number,
		Type:      string(u.Type),
		Bedrooms:  u.Bedrooms,
		Bathrooms: u.Bathrooms,
		Area:      u.Area,
		Price:     u.Price,
		Status:    string(u.Status),
	}
}
