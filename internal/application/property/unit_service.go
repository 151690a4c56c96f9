package property

import (
	"context"

	"github.com/eyrie/backend/internal/domain/property"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListingCache fronts the unit-listing query with a short TTL. A miss or
// a cache failure falls through to storage; the cache is never the source
// of truth.
type ListingCache interface {
	// Get returns the cached listing, or nil on a miss
	Get(ctx context.Context) *ListingResponse
	// Set stores the listing until the TTL expires
	Set(ctx context.Context, listing *ListingResponse)
	// Invalidate drops the cached listing immediately
	Invalidate(ctx context.Context)
}

// UnitService serves the building's unit inventory
type UnitService struct {
	unitRepo property.UnitRepository
	cache    ListingCache
	logger   *zap.Logger
}

// NewUnitService creates a new UnitService
func NewUnitService(unitRepo property.UnitRepository, cache ListingCache, logger *zap.Logger) *UnitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnitService{
		unitRepo: unitRepo,
		cache:    cache,
		logger:   logger,
	}
}

// Listing returns every unit grouped by floor in building order. The
// result is served from cache when fresh; forceRefresh bypasses and
// repopulates it.
func (s *UnitService) Listing(ctx context.Context, forceRefresh bool) (*ListingResponse, error) {
	if s.cache != nil {
		if forceRefresh {
			s.cache.Invalidate(ctx)
		} else if cached := s.cache.Get(ctx); cached != nil {
			return cached, nil
		}
	}

	units, err := s.unitRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	listing := groupByFloor(units)
	s.logger.Debug("unit listing refreshed",
		zap.Int("units", listing.Total),
		zap.Int("floors", len(listing.Floors)),
		zap.Bool("forced", forceRefresh))

	if s.cache != nil {
		s.cache.Set(ctx, listing)
	}
	return listing, nil
}

// Get retrieves one unit by ID
func (s *UnitService) Get(ctx context.Context, id uuid.UUID) (*UnitResponse, error) {
	u, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUnitResponse(u)
	return &resp, nil
}

// Floors returns the floor IDs that have units, in building order
func (s *UnitService) Floors(ctx context.Context) ([]string, error) {
	floors, err := s.unitRepo.ListFloors(ctx)
	if err != nil {
		return nil, err
	}
	return sortFloors(floors), nil
}

// Invalidate drops the cached listing. Exposed so allocation changes in
// other services can force the next read to hit storage.
func (s *UnitService) Invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

// groupByFloor arranges units into floors ordered bottom to top, with
// unknown floor IDs appended after the known ones
func groupByFloor(units []property.Unit) *ListingResponse {
	byFloor := make(map[string][]UnitResponse)
	for i := range units {
		byFloor[units[i].FloorID] = append(byFloor[units[i].FloorID], ToUnitResponse(&units[i]))
	}

	listing := &ListingResponse{Total: len(units)}
	seen := make(map[string]bool)
	for _, floorID := range property.FloorOrder {
		if rows, ok := byFloor[floorID]; ok {
			listing.Floors = append(listing.Floors, FloorResponse{FloorID: floorID, Units: rows})
			seen[floorID] = true
		}
	}
	for i := range units {
		floorID := units[i].FloorID
		if !seen[floorID] {
			listing.Floors = append(listing.Floors, FloorResponse{FloorID: floorID, Units: byFloor[floorID]})
			seen[floorID] = true
		}
	}
	return listing
}

// sortFloors orders floor IDs in building order, unknown ones last
func sortFloors(floors []string) []string {
	present := make(map[string]bool, len(floors))
	for _, f := range floors {
		present[f] = true
	}
	var out []string
	for _, f := range property.FloorOrder {
		if present[f] {
			out = append(out, f)
			delete(present, f)
		}
	}
	for _, f := range floors {
		if present[f] {
			out = append(out, f)
			delete(present, f)
		}
	}
	return out
}
