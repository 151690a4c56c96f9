package models

import (
	"time"

	"github.com/eyrie/backend/internal/domain/client"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientModel is the persistence model for clients. The membership number
// is the primary key; clients have no surrogate ID.
type ClientModel struct {
	MembershipNumber string          `gorm:"type:varchar(20);primary_key"`
	Name             string          `gorm:"type:varchar(200);not null"`
	CNIC             string          `gorm:"type:varchar(50);index"`
	PassportNumber   string          `gorm:"type:varchar(50)"`
	Address          string          `gorm:"type:text"`
	Email            string          `gorm:"type:varchar(200)"`
	ContactNumber    string          `gorm:"type:varchar(50)"`
	OtherContact     string          `gorm:"type:varchar(50)"`
	NextOfKin        string          `gorm:"type:varchar(200)"`
	AgentName        string          `gorm:"type:varchar(200);index"`
	InstallmentPlan  string          `gorm:"type:varchar(50)"`
	Status           string          `gorm:"type:varchar(20);not null;index"`
	AmountPayable    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName specifies the table name for ClientModel
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts ClientModel to a domain Client
func (m *ClientModel) ToDomain() *client.Client {
	return &client.Client{
		MembershipNumber: m.MembershipNumber,
		Name:             m.Name,
		CNIC:             m.CNIC,
		PassportNumber:   m.PassportNumber,
		Address:          m.Address,
		Email:            m.Email,
		ContactNumber:    m.ContactNumber,
		OtherContact:     m.OtherContact,
		NextOfKin:        m.NextOfKin,
		AgentName:        m.AgentName,
		InstallmentPlan:  m.InstallmentPlan,
		Status:           client.ClientStatus(m.Status),
		AmountPayable:    m.AmountPayable,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// FromDomain populates ClientModel from a domain Client
func (m *ClientModel) FromDomain(c *client.Client) {
	m.MembershipNumber = c.MembershipNumber
	m.Name = c.Name
	m.CNIC = c.CNIC
	m.PassportNumber = c.PassportNumber
	m.Address = c.Address
	m.Email = c.Email
	m.ContactNumber = c.ContactNumber
	m.OtherContact = c.OtherContact
	m.NextOfKin = c.NextOfKin
	m.AgentName = c.AgentName
	m.InstallmentPlan = c.InstallmentPlan
	m.Status = string(c.Status)
	m.AmountPayable = c.AmountPayable
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// AllocationModel is the persistence model for client-unit allocations.
// A unit can have at most one live allocation.
type AllocationModel struct {
	BaseModel
	ClientMembership   string          `gorm:"type:varchar(20);not null;index"`
	UnitID             uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_allocations_unit"`
	AllotedDate        time.Time       `gorm:"not null"`
	DiscountPercentage float64         `gorm:"not null;default:0"`
	DiscountedPrice    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Notes              string          `gorm:"type:text"`
}

// TableName specifies the table name for AllocationModel
func (AllocationModel) TableName() string {
	return "allocations"
}

// ToDomain converts AllocationModel to a domain Allocation
func (m *AllocationModel) ToDomain() *client.Allocation {
	return &client.Allocation{
		BaseEntity:         m.BaseModel.ToDomain(),
		ClientMembership:   m.ClientMembership,
		UnitID:             m.UnitID,
		AllotedDate:        m.AllotedDate,
		DiscountPercentage: m.DiscountPercentage,
		DiscountedPrice:    m.DiscountedPrice,
		Notes:              m.Notes,
	}
}

// FromDomain populates AllocationModel from a domain Allocation
func (m *AllocationModel) FromDomain(a *client.Allocation) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.ClientMembership = a.ClientMembership
	m.UnitID = a.UnitID
	m.AllotedDate = a.AllotedDate
	m.DiscountPercentage = a.DiscountPercentage
	m.DiscountedPrice = a.DiscountedPrice
	m.Notes = a.Notes
}
