package persistence

import (
	"context"
	"errors"

	"github.com/eyrie/backend/internal/domain/property"
	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/eyrie/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUnitRepository implements property.UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// FindByID finds a unit by its ID
func (r *GormUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Unit, error) {
	var model models.UnitModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByFloorAndNumber resolves a unit from its floor and unit number
func (r *GormUnitRepository) FindByFloorAndNumber(ctx context.Context, floorID, number string) (*property.Unit, error) {
	var model models.UnitModel
	if err := r.db.WithContext(ctx).
		Where("floor_id = ? AND number = ?", floorID, number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all units, ordered by floor then unit number
func (r *GormUnitRepository) FindAll(ctx context.Context) ([]property.Unit, error) {
	var unitModels []models.UnitModel
	if err := r.db.WithContext(ctx).
		Order("floor_id ASC, number ASC").
		Find(&unitModels).Error; err != nil {
		return nil, err
	}
	return toDomainUnits(unitModels), nil
}

// FindByFloor finds all units on a floor
func (r *GormUnitRepository) FindByFloor(ctx context.Context, floorID string) ([]property.Unit, error) {
	var unitModels []models.UnitModel
	if err := r.db.WithContext(ctx).
		Where("floor_id = ?", floorID).
		Order("number ASC").
		Find(&unitModels).Error; err != nil {
		return nil, err
	}
	return toDomainUnits(unitModels), nil
}

// FindByStatus finds all units with the given status
func (r *GormUnitRepository) FindByStatus(ctx context.Context, status property.UnitStatus) ([]property.Unit, error) {
	var unitModels []models.UnitModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("floor_id ASC, number ASC").
		Find(&unitModels).Error; err != nil {
		return nil, err
	}
	return toDomainUnits(unitModels), nil
}

// FindByIDs finds multiple units by their IDs
func (r *GormUnitRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]property.Unit, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var unitModels []models.UnitModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&unitModels).Error; err != nil {
		return nil, err
	}
	return toDomainUnits(unitModels), nil
}

// ListFloors returns the distinct floor IDs that have units
func (r *GormUnitRepository) ListFloors(ctx context.Context) ([]string, error) {
	var floors []string
	if err := r.db.WithContext(ctx).
		Model(&models.UnitModel{}).
		Distinct("floor_id").
		Pluck("floor_id", &floors).Error; err != nil {
		return nil, err
	}
	return floors, nil
}

// Save creates or updates a unit
func (r *GormUnitRepository) Save(ctx context.Context, unit *property.Unit) error {
	var model models.UnitModel
	model.FromDomain(unit)
	return r.db.WithContext(ctx).Save(&model).Error
}

// UpdateStatus updates only the status column of a unit
func (r *GormUnitRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status property.UnitStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.UnitModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all units
func (r *GormUnitRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UnitModel{}).Count(&count).Error
	return count, err
}

func toDomainUnits(unitModels []models.UnitModel) []property.Unit {
	units := make([]property.Unit, len(unitModels))
	for i := range unitModels {
		units[i] = *unitModels[i].ToDomain()
	}
	return units
}

var _ property.UnitRepository = (*GormUnitRepository)(nil)
