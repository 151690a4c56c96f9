package persistence

import (
	"context"

	appbilling "github.com/eyrie/backend/internal/application/billing"
	appclient "github.com/eyrie/backend/internal/application/client"
	"github.com/eyrie/backend/internal/domain/billing"
	"github.com/eyrie/backend/internal/domain/client"
	"github.com/eyrie/backend/internal/domain/property"
	"gorm.io/gorm"
)

// GormTransactionScope implements the application transaction scopes
// using GORM transactions. The client coordinator and the payment
// pipeline declare structurally identical scope interfaces, so one
// concrete scope serves both.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appclient.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// BillingScope adapts the scope to the payment pipeline's interface
func (s *GormTransactionScope) BillingScope() appbilling.TransactionScope {
	return &gormBillingScope{db: s.db}
}

type gormBillingScope struct {
	db *gorm.DB
}

// Execute runs the given function within a database transaction.
func (s *gormBillingScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ClientRepo returns the client repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ClientRepo() client.ClientRepository {
	return NewGormClientRepository(r.tx)
}

// AllocationRepo returns the allocation repository scoped to the current transaction.
func (r *gormTransactionalRepositories) AllocationRepo() client.AllocationRepository {
	return NewGormAllocationRepository(r.tx)
}

// UnitRepo returns the unit repository scoped to the current transaction.
func (r *gormTransactionalRepositories) UnitRepo() property.UnitRepository {
	return NewGormUnitRepository(r.tx)
}

// PaymentRepo returns the payment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PaymentRepo() billing.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

var _ appclient.TransactionScope = (*GormTransactionScope)(nil)
var _ appbilling.TransactionScope = (*gormBillingScope)(nil)
var _ appclient.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
var _ appbilling.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
