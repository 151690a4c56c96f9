package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_FAILED"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeConflict   = "CONFLICT"
)

// Domain error codes surfaced through the API. These mirror the codes
// raised by the domain layer so clients can branch on them.
const (
	ErrCodeUnitNotAvailable = "UNIT_NOT_AVAILABLE"
	ErrCodeNoUnitsResolved  = "NO_UNITS_RESOLVED"
	ErrCodeInstallmentLock  = "INSTALLMENT_LOCKED"
	ErrCodeInstallmentPaid  = "INSTALLMENT_ALREADY_PAID"
	ErrCodeAllotmentNotPaid = "ALLOTMENT_NOT_PAID"
)

// GetHTTPStatus maps an error code to its HTTP status. Codes that don't
// match a known class are treated as bad requests rather than server
// faults, because domain errors are raised on caller input.
func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case "ALREADY_EXISTS", ErrCodeConflict, ErrCodeInstallmentPaid, ErrCodeUnitNotAvailable:
		return http.StatusConflict
	case ErrCodeInstallmentLock, ErrCodeAllotmentNotPaid, "INVALID_STATE":
		return http.StatusUnprocessableEntity
	case ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
