package models

import (
	"time"

	"github.com/eyrie/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for installment payments. The
// composite unique index is the storage-level guard against paying the
// same installment twice; the application surfaces its violation as
// INSTALLMENT_ALREADY_PAID.
type PaymentModel struct {
	BaseModel
	ClientMembership  string          `gorm:"type:varchar(20);not null;index;uniqueIndex:idx_payments_installment,priority:1"`
	UnitID            uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_payments_installment,priority:2"`
	Category          string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_payments_installment,priority:3"`
	InstallmentNumber int             `gorm:"not null;uniqueIndex:idx_payments_installment,priority:4"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Method            string          `gorm:"type:varchar(30);not null"`
	Reference         string          `gorm:"type:varchar(100)"`
	PaidDate          time.Time       `gorm:"not null;index"`
	DueDate           *time.Time
	Remarks           string `gorm:"type:text"`
}

// TableName specifies the table name for PaymentModel
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts PaymentModel to a domain Payment
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseEntity:        m.BaseModel.ToDomain(),
		ClientMembership:  m.ClientMembership,
		UnitID:            m.UnitID,
		Category:          billing.Category(m.Category),
		InstallmentNumber: m.InstallmentNumber,
		Amount:            m.Amount,
		Method:            billing.PaymentMethod(m.Method),
		Reference:         m.Reference,
		PaidDate:          m.PaidDate,
		DueDate:           m.DueDate,
		Remarks:           m.Remarks,
	}
}

// FromDomain populates PaymentModel from a domain Payment
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.ClientMembership = p.ClientMembership
	m.UnitID = p.UnitID
	m.Category = string(p.Category)
	m.InstallmentNumber = p.InstallmentNumber
	m.Amount = p.Amount
	m.Method = string(p.Method)
	m.Reference = p.Reference
	m.PaidDate = p.PaidDate
	m.DueDate = p.DueDate
	m.Remarks = p.Remarks
}
