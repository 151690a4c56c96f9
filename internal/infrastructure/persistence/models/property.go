package models

import (
	"github.com/eyrie/backend/internal/domain/property"
	"github.com/shopspring/decimal"
)

// UnitModel is the persistence model for property units
type UnitModel struct {
	BaseModel
	FloorID   string          `gorm:"type:varchar(50);not null;index;uniqueIndex:idx_units_floor_number,priority:1"`
	Number    string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_units_floor_number,priority:2"`
	Type      string          `gorm:"type:varchar(20);not null"`
	Bedrooms  int             `gorm:"not null;default:0"`
	Bathrooms int             `gorm:"not null;default:0"`
	Area      decimal.Decimal `gorm:"type:decimal(12,2)"`
	Price     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status    string          `gorm:"type:varchar(20);not null;index"`
}

// TableName specifies the table name for UnitModel
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts UnitModel to a domain Unit
func (m *UnitModel) ToDomain() *property.Unit {
	return &property.Unit{
		BaseEntity: m.BaseModel.ToDomain(),
		FloorID:    m.FloorID,
		Number:     m.Number,
		Type:       property.UnitType(m.Type),
		Bedrooms:   m.Bedrooms,
		Bathrooms:  m.Bathrooms,
		Area:       m.Area,
		Price:      m.Price,
		Status:     property.UnitStatus(m.Status),
	}
}

// FromDomain populates UnitModel from a domain Unit
func (m *UnitModel) FromDomain(u *property.Unit) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.FloorID = u.FloorID
	m.Number = u.Number
	m.Type = string(u.Type)
	m.Bedrooms = u.Bedrooms
	m.Bathrooms = u.Bathrooms
	m.Area = u.Area
	m.Price = u.Price
	m.Status = string(u.Status)
}
