package client

import (
	"time"

	"github.com/eyrie/backend/internal/domain/client"
	"github.com/eyrie/backend/internal/domain/property"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitSelection identifies a unit the way the sales office refers to it,
// by floor and unit number, together with the discount negotiated for it.
type UnitSelection struct {
	FloorID            string  `json:"floor_id" binding:"required"`
	UnitNumber         string  `json:"unit_number" binding:"required"`
	DiscountPercentage float64 `json:"discount_percentage"`
}

// DiscountUpdate changes the discount on an existing allocation
type DiscountUpdate struct {
	UnitID             uuid.UUID `json:"unit_id" binding:"required"`
	DiscountPercentage float64   `json:"discount_percentage"`
}

// CreateClientRequest carries a new client and the units to allocate
type CreateClientRequest struct {
	Name           string          `json:"name" binding:"required"`
	CNIC           string          `json:"cnic"`
	PassportNumber string          `json:"passport_number"`
	Address        string          `json:"address"`
	Email          string          `json:"email"`
	ContactNumber  string          `json:"contact_number"`
	OtherContact   string          `json:"other_contact"`
	NextOfKin      string          `json:"next_of_kin"`
	AgentName      string          `json:"agent_name"`
	Units          []UnitSelection `json:"units" binding:"required,min=1,dive"`
}

// UpdateClientRequest carries basic-field edits plus apartment changes.
// Basic fields are always applied; the three apartment lists are each
// optional and independent.
type UpdateClientRequest struct {
	Name           string `json:"name"`
	CNIC           string `json:"cnic"`
	PassportNumber string `json:"passport_number"`
	Address        string `json:"address"`
	Email          string `json:"email"`
	ContactNumber  string `json:"contact_number"`
	OtherContact   string `json:"other_contact"`
	NextOfKin      string `json:"next_of_kin"`
	AgentName      string `json:"agent_name"`
	Status         string `json:"status"`

	UnitsToAdd        []UnitSelection  `json:"units_to_add" binding:"omitempty,dive"`
	UnitsToRemove     []uuid.UUID      `json:"units_to_remove"`
	DiscountsToUpdate []DiscountUpdate `json:"discounts_to_update" binding:"omitempty,dive"`
}

// AllocatedUnitResponse is one unit held by a client
type AllocatedUnitResponse struct {
	UnitID             uuid.UUID       `json:"unit_id"`
	FloorID            string          `json:"floor_id"`
	UnitNumber         string          `json:"unit_number"`
	Type               string          `json:"type"`
	BasePrice          decimal.Decimal `json:"base_price"`
	DiscountPercentage float64         `json:"discount_percentage"`
	DiscountedPrice    decimal.Decimal `json:"discounted_price"`
	AllotedDate        time.Time       `json:"alloted_date"`
	Notes              string          `json:"notes,omitempty"`
}

// ClientResponse is the full client view returned by the API
type ClientResponse struct {
	MembershipNumber string                  `json:"membership_number"`
	Name             string                  `json:"name"`
	CNIC             string                  `json:"cnic,omitempty"`
	PassportNumber   string                  `json:"passport_number,omitempty"`
	Address          string                  `json:"address,omitempty"`
	Email            string                  `json:"email,omitempty"`
	ContactNumber    string                  `json:"contact_number,omitempty"`
	OtherContact     string                  `json:"other_contact,omitempty"`
	NextOfKin        string                  `json:"next_of_kin,omitempty"`
	AgentName        string                  `json:"agent_name,omitempty"`
	InstallmentPlan  string                  `json:"installment_plan"`
	Status           string                  `json:"status"`
	AmountPayable    decimal.Decimal         `json:"amount_payable"`
	Units            []AllocatedUnitResponse `json:"units"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// ClientListResponse is the compact client view used in listings
type ClientListResponse struct {
	MembershipNumber string          `json:"membership_number"`
	Name             string          `json:"name"`
	CNIC             string          `json:"cnic,omitempty"`
	ContactNumber    string          `json:"contact_number,omitempty"`
	AgentName        string          `json:"agent_name,omitempty"`
	Status           string          `json:"status"`
	AmountPayable    decimal.Decimal `json:"amount_payable"`
	UnitCount        int             `json:"unit_count"`
	CreatedAt        time.Time       `json:"created_at"`
}

// UpdateNotesRequest replaces the notes attached to one allocation
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// ToClientResponse maps a client and its allocations to the API view.
// Units without a resolvable record are rendered from the allocation alone.
func ToClientResponse(c *client.Client, allocations []client.Allocation, units map[uuid.UUID]*property.Unit) *ClientResponse {
	resp := &ClientResponse{
		MembershipNumber: c.MembershipNumber,
		Name:             c.Name,
		CNIC:             c.CNIC,
		PassportNumber:   c.PassportNumber,
		Address:          c.Address,
		Email:            c.Email,
		ContactNumber:    c.ContactNumber,
		OtherContact:     c.OtherContact,
		NextOfKin:        c.NextOfKin,
		AgentName:        c.AgentName,
		InstallmentPlan:  c.InstallmentPlan,
		Status:           string(c.Status),
		AmountPayable:    c.AmountPayable,
		Units:            make([]AllocatedUnitResponse, 0, len(allocations)),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	for _, a := range allocations {
		au := AllocatedUnitResponse{
			UnitID:             a.UnitID,
			DiscountPercentage: a.DiscountPercentage,
			DiscountedPrice:    a.DiscountedPrice,
			AllotedDate:        a.AllotedDate,
			Notes:              a.Notes,
		}
		if u, ok := units[a.UnitID]; ok && u != nil {
			au.FloorID = u.FloorID
			au.UnitNumber = u.Number
			au.Type = string(u.Type)
			au.BasePrice = u.Price
		}
		resp.Units = append(resp.Units, au)
	}
	return resp
}

// ToClientListResponse maps a client to the compact listing view
func ToClientListResponse(c *client.Client, unitCount int) ClientListResponse {
	return ClientListResponse{
		MembershipNumber: c.MembershipNumber,
		Name:             c.Name,
		CNIC:             c.CNIC,
		ContactNumber:    c.ContactNumber,
		AgentName:        c.AgentName,
		Status:           string(c.Status),
		AmountPayable:    c.AmountPayable,
		UnitCount:        unitCount,
		CreatedAt:        c.CreatedAt,
	}
}
