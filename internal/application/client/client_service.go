package client

import (
	"context"
	"errors"

	"github.com/eyrie/backend/internal/domain/billing"
	"github.com/eyrie/backend/internal/domain/client"
	"github.com/eyrie/backend/internal/domain/property"
	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ListingInvalidator drops the cached unit listing after an operation
// changes unit statuses. Allocation changes flip units between available
// and sold, so a stale listing would show sold units as open.
type ListingInvalidator interface {
	Invalidate(ctx context.Context)
}

// ClientService coordinates clients, their unit allocations and the unit
// sales statuses. Every mutating operation runs in one transaction so an
// allocation failure never leaves a half-created client behind.
type ClientService struct {
	scope       TransactionScope
	invalidator ListingInvalidator
	logger      *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(scope TransactionScope, invalidator ListingInvalidator, logger *zap.Logger) *ClientService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientService{
		scope:       scope,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Create registers a new client and allocates the requested units. Units
// that cannot be resolved by floor and number are skipped with a warning;
// if none resolve the whole operation is rejected. The membership number
// is assigned inside the transaction so concurrent creates cannot both
// claim the same one.
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	var resp *ClientResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.ClientRepo().ListMembershipNumbers(ctx)
		if err != nil {
			return err
		}
		membership := client.NextMembershipNumber(existing)

		c, err := client.NewClient(membership, req.Name)
		if err != nil {
			return err
		}
		if err := s.applyBasicFields(c, req.Email, req.ContactNumber, req.OtherContact, req.CNIC, req.PassportNumber); err != nil {
			return err
		}
		c.Address = req.Address
		c.NextOfKin = req.NextOfKin
		c.AgentName = req.AgentName

		units, allocations, err := s.resolveAndAllocate(ctx, repos, membership, req.Units)
		if err != nil {
			return err
		}

		prices := make([]decimal.Decimal, len(allocations))
		for i, a := range allocations {
			prices[i] = a.DiscountedPrice
		}
		c.SetAmountPayable(billing.ResolveAggregatePayable(prices))

		if err := repos.ClientRepo().Save(ctx, c); err != nil {
			return err
		}
		for i := range allocations {
			if err := repos.AllocationRepo().Save(ctx, &allocations[i]); err != nil {
				return err
			}
		}
		for _, u := range units {
			if err := repos.UnitRepo().Save(ctx, u); err != nil {
				return err
			}
		}

		resp = ToClientResponse(c, allocations, unitMap(units))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return resp, nil
}

// Get retrieves a client with its allocated units
func (s *ClientService) Get(ctx context.Context, membership string) (*ClientResponse, error) {
	var resp *ClientResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		c, err := repos.ClientRepo().FindByMembership(ctx, membership)
		if err != nil {
			return err
		}
		allocations, err := repos.AllocationRepo().FindByMembership(ctx, membership)
		if err != nil {
			return err
		}
		units, err := s.loadUnits(ctx, repos, allocations)
		if err != nil {
			return err
		}
		resp = ToClientResponse(c, allocations, units)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List retrieves clients page by page, newest first
func (s *ClientService) List(ctx context.Context, filter shared.Filter) ([]ClientListResponse, int64, error) {
	var responses []ClientListResponse
	var total int64

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		clients, err := repos.ClientRepo().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err = repos.ClientRepo().Count(ctx)
		if err != nil {
			return err
		}
		responses = make([]ClientListResponse, len(clients))
		for i := range clients {
			allocations, err := repos.AllocationRepo().FindByMembership(ctx, clients[i].MembershipNumber)
			if err != nil {
				return err
			}
			responses[i] = ToClientListResponse(&clients[i], len(allocations))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// Search finds clients matching a free-text query against name, CNIC,
// passport, agent and membership number
func (s *ClientService) Search(ctx context.Context, query string) ([]ClientListResponse, error) {
	var responses []ClientListResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		clients, err := repos.ClientRepo().Search(ctx, query)
		if err != nil {
			return err
		}
		responses = make([]ClientListResponse, len(clients))
		for i := range clients {
			allocations, err := repos.AllocationRepo().FindByMembership(ctx, clients[i].MembershipNumber)
			if err != nil {
				return err
			}
			responses[i] = ToClientListResponse(&clients[i], len(allocations))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// NextMembership previews the membership number the next client will get
func (s *ClientService) NextMembership(ctx context.Context) (string, error) {
	var next string
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.ClientRepo().ListMembershipNumbers(ctx)
		if err != nil {
			return err
		}
		next = client.NextMembershipNumber(existing)
		return nil
	})
	return next, err
}

// Update applies basic-field edits and apartment changes in one
// transaction. Added units are allocated and marked sold, removed units
// are released back to available with their ledger rows cleared, and
// discount updates re-resolve the discounted price in place. The
// aggregate payable is recomputed from whatever allocations remain.
func (s *ClientService) Update(ctx context.Context, membership string, req UpdateClientRequest) (*ClientResponse, error) {
	var resp *ClientResponse
	statusChanged := false
	unitsChanged := len(req.UnitsToAdd) > 0 || len(req.UnitsToRemove) > 0

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		c, err := repos.ClientRepo().FindByMembership(ctx, membership)
		if err != nil {
			return err
		}

		if req.Name != "" {
			c.Name = req.Name
		}
		if err := s.applyBasicFields(c, req.Email, req.ContactNumber, req.OtherContact, req.CNIC, req.PassportNumber); err != nil {
			return err
		}
		if req.Address != "" {
			c.Address = req.Address
		}
		if req.NextOfKin != "" {
			c.NextOfKin = req.NextOfKin
		}
		if req.AgentName != "" {
			c.AgentName = req.AgentName
		}
		switch client.ClientStatus(req.Status) {
		case client.ClientStatusActive:
			if !c.IsActive() {
				statusChanged = true
			}
			c.Activate()
		case client.ClientStatusInactive:
			if c.IsActive() {
				statusChanged = true
			}
			c.Deactivate()
		}

		if len(req.UnitsToRemove) > 0 {
			if err := s.releaseUnits(ctx, repos, membership, req.UnitsToRemove); err != nil {
				return err
			}
		}

		if len(req.UnitsToAdd) > 0 {
			units, allocations, err := s.resolveAndAllocate(ctx, repos, membership, req.UnitsToAdd)
			if err != nil {
				return err
			}
			for i := range allocations {
				if err := repos.AllocationRepo().Save(ctx, &allocations[i]); err != nil {
					return err
				}
			}
			for _, u := range units {
				if err := repos.UnitRepo().Save(ctx, u); err != nil {
					return err
				}
			}
		}

		for _, du := range req.DiscountsToUpdate {
			a, err := repos.AllocationRepo().FindByMembershipAndUnit(ctx, membership, du.UnitID)
			if err != nil {
				return err
			}
			u, err := repos.UnitRepo().FindByID(ctx, du.UnitID)
			if err != nil {
				return err
			}
			pct := billing.ClampDiscount(du.DiscountPercentage)
			if err := a.UpdateDiscount(pct, billing.ResolvePrice(u.Price, pct)); err != nil {
				return err
			}
			if err := repos.AllocationRepo().Save(ctx, a); err != nil {
				return err
			}
		}

		allocations, err := repos.AllocationRepo().FindByMembership(ctx, membership)
		if err != nil {
			return err
		}
		prices := make([]decimal.Decimal, len(allocations))
		for i, a := range allocations {
			prices[i] = a.DiscountedPrice
		}
		c.SetAmountPayable(billing.ResolveAggregatePayable(prices))

		if err := repos.ClientRepo().Save(ctx, c); err != nil {
			return err
		}

		units, err := s.loadUnits(ctx, repos, allocations)
		if err != nil {
			return err
		}
		resp = ToClientResponse(c, allocations, units)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if unitsChanged || statusChanged {
		s.invalidate(ctx)
	}
	return resp, nil
}

// Delete removes a client, releasing every allocated unit back to the
// market and clearing the client's ledger. Allocations are cleared before
// unit statuses revert and the client row goes last, so an interrupted
// delete never strands a unit as sold.
func (s *ClientService) Delete(ctx context.Context, membership string) error {
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.ClientRepo().FindByMembership(ctx, membership); err != nil {
			return err
		}
		allocations, err := repos.AllocationRepo().FindByMembership(ctx, membership)
		if err != nil {
			return err
		}

		if err := repos.PaymentRepo().DeleteByMembership(ctx, membership); err != nil {
			return err
		}
		if err := repos.AllocationRepo().DeleteByMembership(ctx, membership); err != nil {
			return err
		}
		for _, a := range allocations {
			u, err := repos.UnitRepo().FindByID(ctx, a.UnitID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					continue
				}
				return err
			}
			u.MarkAvailable()
			if err := repos.UnitRepo().Save(ctx, u); err != nil {
				return err
			}
		}
		return repos.ClientRepo().Delete(ctx, membership)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// UpdateNotes replaces the statement notes on one allocation
func (s *ClientService) UpdateNotes(ctx context.Context, membership string, unitID uuid.UUID, notes string) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		a, err := repos.AllocationRepo().FindByMembershipAndUnit(ctx, membership, unitID)
		if err != nil {
			return err
		}
		a.SetNotes(notes)
		return repos.AllocationRepo().Save(ctx, a)
	})
}

// resolveAndAllocate turns floor+number selections into sold units and
// allocation rows. Selections that do not resolve are skipped with a
// warning; a selection that resolves to an already sold unit fails the
// operation instead, because silently dropping it would hide a double
// sale.
func (s *ClientService) resolveAndAllocate(ctx context.Context, repos TransactionalRepositories, membership string, selections []UnitSelection) ([]*property.Unit, []client.Allocation, error) {
	var units []*property.Unit
	var allocations []client.Allocation

	for _, sel := range selections {
		u, err := repos.UnitRepo().FindByFloorAndNumber(ctx, sel.FloorID, sel.UnitNumber)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				s.logger.Warn("skipping unresolvable unit selection",
					zap.String("floor_id", sel.FloorID),
					zap.String("unit_number", sel.UnitNumber),
					zap.String("client_membership", membership))
				continue
			}
			return nil, nil, err
		}
		if err := u.MarkSold(); err != nil {
			return nil, nil, err
		}

		pct := billing.ClampDiscount(sel.DiscountPercentage)
		a, err := client.NewAllocation(membership, u.ID, pct, billing.ResolvePrice(u.Price, pct))
		if err != nil {
			return nil, nil, err
		}
		units = append(units, u)
		allocations = append(allocations, *a)
	}

	if len(allocations) == 0 {
		return nil, nil, shared.ErrNoUnitsResolved
	}
	return units, allocations, nil
}

// releaseUnits deletes the allocations and ledger rows for the given
// units and reverts the units to available
func (s *ClientService) releaseUnits(ctx context.Context, repos TransactionalRepositories, membership string, unitIDs []uuid.UUID) error {
	if err := repos.PaymentRepo().DeleteByMembershipAndUnits(ctx, membership, unitIDs); err != nil {
		return err
	}
	if err := repos.AllocationRepo().DeleteByMembershipAndUnits(ctx, membership, unitIDs); err != nil {
		return err
	}
	for _, id := range unitIDs {
		u, err := repos.UnitRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return err
		}
		u.MarkAvailable()
		if err := repos.UnitRepo().Save(ctx, u); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClientService) applyBasicFields(c *client.Client, email, contact, otherContact, cnic, passport string) error {
	if email != "" || contact != "" || otherContact != "" {
		mergedEmail := email
		if mergedEmail == "" {
			mergedEmail = c.Email
		}
		mergedContact := contact
		if mergedContact == "" {
			mergedContact = c.ContactNumber
		}
		mergedOther := otherContact
		if mergedOther == "" {
			mergedOther = c.OtherContact
		}
		if err := c.SetContact(mergedEmail, mergedContact, mergedOther); err != nil {
			return err
		}
	}
	if cnic != "" || passport != "" {
		mergedCNIC := cnic
		if mergedCNIC == "" {
			mergedCNIC = c.CNIC
		}
		mergedPassport := passport
		if mergedPassport == "" {
			mergedPassport = c.PassportNumber
		}
		c.SetIdentity(mergedCNIC, mergedPassport)
	}
	return nil
}

func (s *ClientService) loadUnits(ctx context.Context, repos TransactionalRepositories, allocations []client.Allocation) (map[uuid.UUID]*property.Unit, error) {
	ids := make([]uuid.UUID, len(allocations))
	for i, a := range allocations {
		ids[i] = a.UnitID
	}
	if len(ids) == 0 {
		return map[uuid.UUID]*property.Unit{}, nil
	}
	units, err := repos.UnitRepo().FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	m := make(map[uuid.UUID]*property.Unit, len(units))
	for i := range units {
		m[units[i].ID] = &units[i]
	}
	return m, nil
}

func (s *ClientService) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}
}

func unitMap(units []*property.Unit) map[uuid.UUID]*property.Unit {
	m := make(map[uuid.UUID]*property.Unit, len(units))
	for _, u := range units {
		m[u.ID] = u
	}
	return m
}
