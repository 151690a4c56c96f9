package persistence

import (
	"context"
	"errors"

	"github.com/eyrie/backend/internal/domain/client"
	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/eyrie/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAllocationRepository implements client.AllocationRepository using GORM
type GormAllocationRepository struct {
	db *gorm.DB
}

// NewGormAllocationRepository creates a new GormAllocationRepository
func NewGormAllocationRepository(db *gorm.DB) *GormAllocationRepository {
	return &GormAllocationRepository{db: db}
}

// FindByID finds an allocation by its ID
func (r *GormAllocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.Allocation, error) {
	var model models.AllocationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMembership finds all allocations held by a client
func (r *GormAllocationRepository) FindByMembership(ctx context.Context, membership string) ([]client.Allocation, error) {
	var allocationModels []models.AllocationModel
	if err := r.db.WithContext(ctx).
		Where("client_membership = ?", membership).
		Order("alloted_date ASC").
		Find(&allocationModels).Error; err != nil {
		return nil, err
	}
	allocations := make([]client.Allocation, len(allocationModels))
	for i := range allocationModels {
		allocations[i] = *allocationModels[i].ToDomain()
	}
	return allocations, nil
}

// FindByMembershipAndUnit finds the allocation linking a client to a unit
func (r *GormAllocationRepository) FindByMembershipAndUnit(ctx context.Context, membership string, unitID uuid.UUID) (*client.Allocation, error) {
	var model models.AllocationModel
	if err := r.db.WithContext(ctx).
		Where("client_membership = ? AND unit_id = ?", membership, unitID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUnit finds the live allocation for a unit, if any
func (r *GormAllocationRepository) FindByUnit(ctx context.Context, unitID uuid.UUID) (*client.Allocation, error) {
	var model models.AllocationModel
	if err := r.db.WithContext(ctx).
		Where("unit_id = ?", unitID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an allocation
func (r *GormAllocationRepository) Save(ctx context.Context, a *client.Allocation) error {
	var model models.AllocationModel
	model.FromDomain(a)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteByMembershipAndUnits deletes the allocations linking a client to
// the given unit IDs
func (r *GormAllocationRepository) DeleteByMembershipAndUnits(ctx context.Context, membership string, unitIDs []uuid.UUID) error {
	if len(unitIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("client_membership = ? AND unit_id IN ?", membership, unitIDs).
		Delete(&models.AllocationModel{}).Error
}

// DeleteByMembership deletes every allocation held by a client
func (r *GormAllocationRepository) DeleteByMembership(ctx context.Context, membership string) error {
	return r.db.WithContext(ctx).
		Where("client_membership = ?", membership).
		Delete(&models.AllocationModel{}).Error
}

var _ client.AllocationRepository = (*GormAllocationRepository)(nil)
