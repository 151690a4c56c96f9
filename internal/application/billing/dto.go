package billing

import (
	"time"

	"github.com/eyrie/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest records one settled installment. Amount is
// optional; when omitted the expected amount from the unit's schedule is
// recorded instead.
type CreatePaymentRequest struct {
	ClientMembership  string          `json:"client_membership" binding:"required,membership"`
	UnitID            uuid.UUID       `json:"unit_id" binding:"required"`
	Category          string          `json:"category" binding:"required"`
	InstallmentNumber int             `json:"installment_number" binding:"required,min=1"`
	Amount            decimal.Decimal `json:"amount"`
	Method            string          `json:"method" binding:"required"`
	Reference         string          `json:"reference"`
	PaidDate          *time.Time      `json:"paid_date"`
	Remarks           string          `json:"remarks"`
}

// PaymentResponse is one recorded installment payment
type PaymentResponse struct {
	ID                uuid.UUID       `json:"id"`
	ClientMembership  string          `json:"client_membership"`
	UnitID            uuid.UUID       `json:"unit_id"`
	Category          string          `json:"category"`
	InstallmentNumber int             `json:"installment_number"`
	Amount            decimal.Decimal `json:"amount"`
	Method            string          `json:"method"`
	Reference         string          `json:"reference,omitempty"`
	PaidDate          time.Time       `json:"paid_date"`
	DueDate           *time.Time      `json:"due_date,omitempty"`
	Remarks           string          `json:"remarks,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// InstallmentRowResponse is one statement line
type InstallmentRowResponse struct {
	InstallmentNumber int              `json:"installment_number"`
	Expected          decimal.Decimal  `json:"expected_amount"`
	State             string           `json:"state"`
	DueDate           *time.Time       `json:"due_date,omitempty"`
	Payment           *PaymentResponse `json:"payment,omitempty"`
}

// CategoryStatementResponse groups statement lines by phase
type CategoryStatementResponse struct {
	Category     string                   `json:"category"`
	Label        string                   `json:"label"`
	Payable      bool                     `json:"payable"`
	Installments []InstallmentRowResponse `json:"installments"`
}

// StatementResponse is the reconciled installment plan for one allocation
type StatementResponse struct {
	ClientMembership   string                      `json:"client_membership"`
	ClientName         string                      `json:"client_name"`
	UnitID             uuid.UUID                   `json:"unit_id"`
	FloorID            string                      `json:"floor_id"`
	UnitNumber         string                      `json:"unit_number"`
	BasePrice          decimal.Decimal             `json:"base_price"`
	DiscountPercentage float64                     `json:"discount_percentage"`
	TotalPayable       decimal.Decimal             `json:"total_payable"`
	TotalReceived      decimal.Decimal             `json:"total_received"`
	TotalRemaining     decimal.Decimal             `json:"total_remaining"`
	Progress           float64                     `json:"progress"`
	AllotmentPaidDate  *time.Time                  `json:"allotment_paid_date,omitempty"`
	Notes              string                      `json:"notes,omitempty"`
	Categories         []CategoryStatementResponse `json:"categories"`
}

// ProgressResponse is the payment progress of one allocation
type ProgressResponse struct {
	ClientMembership string          `json:"client_membership"`
	UnitID           uuid.UUID       `json:"unit_id"`
	TotalPayable     decimal.Decimal `json:"total_payable"`
	TotalReceived    decimal.Decimal `json:"total_received"`
	TotalRemaining   decimal.Decimal `json:"total_remaining"`
	Progress         float64         `json:"progress"`
}

// ToPaymentResponse maps a payment to the API view
func ToPaymentResponse(p *billing.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:                p.ID,
		ClientMembership:  p.ClientMembership,
		UnitID:            p.UnitID,
		Category:          string(p.Category),
		InstallmentNumber: p.InstallmentNumber,
		Amount:            p.Amount,
		Method:            string(p.Method),
		Reference:         p.Reference,
		PaidDate:          p.PaidDate,
		DueDate:           p.DueDate,
		Remarks:           p.Remarks,
		CreatedAt:         p.CreatedAt,
	}
}
