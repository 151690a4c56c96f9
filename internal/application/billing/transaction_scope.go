package billing

import (
	"context"

	"github.com/eyrie/backend/internal/domain/billing"
	"github.com/eyrie/backend/internal/domain/client"
	"github.com/eyrie/backend/internal/domain/property"
)

// TransactionScope provides transactional access to the repositories the
// payment pipeline touches. Recording a payment re-validates the cursor
// against the ledger inside the same transaction that inserts the row,
// so two racing payments for one installment cannot both pass.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the payment pipeline's
// repositories within one transaction
type TransactionalRepositories interface {
	// ClientRepo returns the client repository scoped to the current transaction
	ClientRepo() client.ClientRepository
	// AllocationRepo returns the allocation repository scoped to the current transaction
	AllocationRepo() client.AllocationRepository
	// UnitRepo returns the unit repository scoped to the current transaction
	UnitRepo() property.UnitRepository
	// PaymentRepo returns the payment repository scoped to the current transaction
	PaymentRepo() billing.PaymentRepository
}

// NoOpTransactionScope runs functions without a real transaction. Used in tests.
type NoOpTransactionScope struct {
	clientRepo     client.ClientRepository
	allocationRepo client.AllocationRepository
	unitRepo       property.UnitRepository
	paymentRepo    billing.PaymentRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	clientRepo client.ClientRepository,
	allocationRepo client.AllocationRepository,
	unitRepo property.UnitRepository,
	paymentRepo billing.PaymentRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		clientRepo:     clientRepo,
		allocationRepo: allocationRepo,
		unitRepo:       unitRepo,
		paymentRepo:    paymentRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ClientRepo returns the client repository.
func (s *NoOpTransactionScope) ClientRepo() client.ClientRepository { return s.clientRepo }

// AllocationRepo returns the allocation repository.
func (s *NoOpTransactionScope) AllocationRepo() client.AllocationRepository {
	return s.allocationRepo
}

// UnitRepo returns the unit repository.
func (s *NoOpTransactionScope) UnitRepo() property.UnitRepository { return s.unitRepo }

// PaymentRepo returns the payment repository.
func (s *NoOpTransactionScope) PaymentRepo() billing.PaymentRepository { return s.paymentRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
