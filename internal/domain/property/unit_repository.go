package property

import (
	"context"

	"github.com/google/uuid"
)

// UnitRepository defines the interface for unit persistence
type UnitRepository interface {
	// FindByID finds a unit by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Unit, error)

	// FindByFloorAndNumber resolves a unit from its floor and unit number
	FindByFloorAndNumber(ctx context.Context, floorID, number string) (*Unit, error)

	// FindAll finds all units, ordered by floor then unit number
	FindAll(ctx context.Context) ([]Unit, error)

	// FindByFloor finds all units on a floor
	FindByFloor(ctx context.Context, floorID string) ([]Unit, error)

	// FindByStatus finds all units with the given status
	FindByStatus(ctx context.Context, status UnitStatus) ([]Unit, error)

	// FindByIDs finds multiple units by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Unit, error)

	// ListFloors returns the distinct floor IDs that have units
	ListFloors(ctx context.Context) ([]string, error)

	// Save creates or updates a unit
	Save(ctx context.Context, unit *Unit) error

	// UpdateStatus updates only the status column of a unit
	UpdateStatus(ctx context.Context, id uuid.UUID, status UnitStatus) error

	// Count counts all units
	Count(ctx context.Context) (int64, error)
}
