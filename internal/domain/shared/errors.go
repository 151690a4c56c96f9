package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists     = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState      = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrUnitNotAvailable  = NewDomainError("UNIT_NOT_AVAILABLE", "Unit is not available for allocation")
	ErrNoUnitsResolved   = NewDomainError("NO_UNITS_RESOLVED", "None of the requested units could be resolved")
	ErrInstallmentLocked = NewDomainError("INSTALLMENT_LOCKED", "Installment is not payable yet")
	ErrInstallmentPaid   = NewDomainError("INSTALLMENT_ALREADY_PAID", "Installment has already been paid")
	ErrAllotmentNotPaid  = NewDomainError("ALLOTMENT_NOT_PAID", "Allotment installment has not been paid")
)
