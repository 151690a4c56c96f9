package billing

import (
	"strings"
	"time"

	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how an installment was settled
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "Cash"
	MethodBankTransfer PaymentMethod = "Bank Transfer"
	MethodCheque       PaymentMethod = "Cheque"
	MethodPayOrder     PaymentMethod = "Pay-order"
)

// ValidPaymentMethods lists the accepted settlement methods
var ValidPaymentMethods = []PaymentMethod{
	MethodCash,
	MethodBankTransfer,
	MethodCheque,
	MethodPayOrder,
}

// IsValid returns true if the method is one of the accepted ones
func (m PaymentMethod) IsValid() bool {
	for _, v := range ValidPaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

// Payment is an immutable record of one settled installment. The ledger
// never stores planned installments; the schedule is derived and only
// actual receipts are persisted.
type Payment struct {
	shared.BaseEntity
	ClientMembership  string
	UnitID            uuid.UUID
	Category          Category
	InstallmentNumber int
	Amount            decimal.Decimal
	Method            PaymentMethod
	Reference         string
	PaidDate          time.Time
	DueDate           *time.Time
	Remarks           string
}

// NewPayment records a settled installment. Amount defaults are resolved
// by the caller from the unit's schedule; a zero amount is rejected here
// because a receipt for nothing is never meaningful.
func NewPayment(clientMembership string, unitID uuid.UUID, category Category, installmentNumber int, amount decimal.Decimal, method PaymentMethod, paidDate time.Time) (*Payment, error) {
	if strings.TrimSpace(clientMembership) == "" {
		return nil, shared.NewDomainError("INVALID_MEMBERSHIP", "Client membership cannot be empty")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit ID cannot be empty")
	}
	if err := ValidateInstallmentNumber(category, installmentNumber); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}
	if paidDate.IsZero() {
		paidDate = time.Now()
	}

	return &Payment{
		BaseEntity:        shared.NewBaseEntity(),
		ClientMembership:  clientMembership,
		UnitID:            unitID,
		Category:          category,
		InstallmentNumber: installmentNumber,
		Amount:            amount,
		Method:            method,
		PaidDate:          paidDate,
	}, nil
}

// SetDueDate records the due date the installment carried when it was
// settled. Only monthly and half-yearly installments have one.
func (p *Payment) SetDueDate(due *time.Time) {
	p.DueDate = due
}

// SetReference attaches a cheque or transfer reference to the receipt
func (p *Payment) SetReference(ref string) {
	p.Reference = ref
	p.Touch()
}

// SetRemarks attaches free-text remarks to the receipt
func (p *Payment) SetRemarks(remarks string) {
	p.Remarks = remarks
	p.Touch()
}
