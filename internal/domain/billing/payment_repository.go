package billing

import (
	"context"

	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByMembershipAndUnit finds all payments a client made against one
	// unit, ordered by category and installment number
	FindByMembershipAndUnit(ctx context.Context, membership string, unitID uuid.UUID) ([]Payment, error)

	// FindByMembership finds all payments a client made across units
	FindByMembership(ctx context.Context, membership string) ([]Payment, error)

	// FindAll finds payments across all clients, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)

	// Save records a payment. Implementations must reject a second payment
	// for the same (membership, unit, category, installment) with
	// shared.ErrInstallmentPaid.
	Save(ctx context.Context, p *Payment) error

	// DeleteByMembershipAndUnits deletes the payments a client made against
	// the given units
	DeleteByMembershipAndUnits(ctx context.Context, membership string, unitIDs []uuid.UUID) error

	// DeleteByMembership deletes every payment a client made
	DeleteByMembership(ctx context.Context, membership string) error

	// Count counts all payments
	Count(ctx context.Context) (int64, error)
}
