package client

import (
	"context"

	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByMembership finds a client by membership number
	FindByMembership(ctx context.Context, membership string) (*Client, error)

	// FindAll finds all clients ordered by creation time descending
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)

	// Search finds clients whose name, CNIC, passport, agent or membership
	// number contains the query, case-insensitively
	Search(ctx context.Context, query string) ([]Client, error)

	// ListMembershipNumbers returns every assigned membership number
	ListMembershipNumbers(ctx context.Context) ([]string, error)

	// Save creates or updates a client
	Save(ctx context.Context, c *Client) error

	// Delete deletes a client by membership number
	Delete(ctx context.Context, membership string) error

	// Count counts all clients
	Count(ctx context.Context) (int64, error)
}

// AllocationRepository defines the interface for allocation persistence
type AllocationRepository interface {
	// FindByID finds an allocation by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Allocation, error)

	// FindByMembership finds all allocations held by a client
	FindByMembership(ctx context.Context, membership string) ([]Allocation, error)

	// FindByMembershipAndUnit finds the allocation linking a client to a unit
	FindByMembershipAndUnit(ctx context.Context, membership string, unitID uuid.UUID) (*Allocation, error)

	// FindByUnit finds the live allocation for a unit, if any
	FindByUnit(ctx context.Context, unitID uuid.UUID) (*Allocation, error)

	// Save creates or updates an allocation
	Save(ctx context.Context, a *Allocation) error

	// DeleteByMembershipAndUnits deletes the allocations linking a client
	// to the given unit IDs
	DeleteByMembershipAndUnits(ctx context.Context, membership string, unitIDs []uuid.UUID) error

	// DeleteByMembership deletes every allocation held by a client
	DeleteByMembership(ctx context.Context, membership string) error
}
