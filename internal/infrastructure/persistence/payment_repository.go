package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/eyrie/backend/internal/domain/billing"
	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/eyrie/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormPaymentRepository implements billing.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMembershipAndUnit finds all payments a client made against one
// unit, ordered by category and installment number
func (r *GormPaymentRepository) FindByMembershipAndUnit(ctx context.Context, membership string, unitID uuid.UUID) ([]billing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("client_membership = ? AND unit_id = ?", membership, unitID).
		Order("category ASC, installment_number ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindByMembership finds all payments a client made across units
func (r *GormPaymentRepository) FindByMembership(ctx context.Context, membership string) ([]billing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("client_membership = ?", membership).
		Order("paid_date DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindAll finds payments across all clients, newest first
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Payment, error) {
	var paymentModels []models.PaymentModel
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{}).Order("paid_date DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// Save records a payment. A violation of the composite installment index
// surfaces as shared.ErrInstallmentPaid so racing duplicates fail cleanly.
func (r *GormPaymentRepository) Save(ctx context.Context, p *billing.Payment) error {
	var model models.PaymentModel
	model.FromDomain(p)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrInstallmentPaid
		}
		return err
	}
	return nil
}

// DeleteByMembershipAndUnits deletes the payments a client made against
// the given units
func (r *GormPaymentRepository) DeleteByMembershipAndUnits(ctx context.Context, membership string, unitIDs []uuid.UUID) error {
	if len(unitIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("client_membership = ? AND unit_id IN ?", membership, unitIDs).
		Delete(&models.PaymentModel{}).Error
}

// DeleteByMembership deletes every payment a client made
func (r *GormPaymentRepository) DeleteByMembership(ctx context.Context, membership string) error {
	return r.db.WithContext(ctx).
		Where("client_membership = ?", membership).
		Delete(&models.PaymentModel{}).Error
}

// Count counts all payments
func (r *GormPaymentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).Count(&count).Error
	return count, err
}

// isUniqueViolation detects a unique constraint failure from PostgreSQL
// (class 23505) or from other drivers by message, so the SQLite-backed
// tests exercise the same path
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func toDomainPayments(paymentModels []models.PaymentModel) []billing.Payment {
	payments := make([]billing.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments
}

var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
