package billing

import (
	"context"
	"testing"
	"time"

	"github.com/eyrie/backend/internal/domain/billing"
	"github.com/eyrie/backend/internal/domain/client"
	"github.com/eyrie/backend/internal/domain/property"
	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClientRepository is a map-backed client.ClientRepository for testing
type mockClientRepository struct {
	clients map[string]*client.Client
}

func newMockClientRepository() *mockClientRepository {
	return &mockClientRepository{clients: make(map[string]*client.Client)}
}

func (m *mockClientRepository) FindByMembership(_ context.Context, membership string) (*client.Client, error) {
	c, ok := m.clients[membership]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *mockClientRepository) FindAll(_ context.Context, _ shared.Filter) ([]client.Client, error) {
	return nil, nil
}

func (m *mockClientRepository) Search(_ context.Context, _ string) ([]client.Client, error) {
	return nil, nil
}

func (m *mockClientRepository) ListMembershipNumbers(_ context.Context) ([]string, error) {
	return nil, nil
}

func (m *mockClientRepository) Save(_ context.Context, c *client.Client) error {
	copied := *c
	m.clients[c.MembershipNumber] = &copied
	return nil
}

func (m *mockClientRepository) Delete(_ context.Context, membership string) error {
	delete(m.clients, membership)
	return nil
}

func (m *mockClientRepository) Count(_ context.Context) (int64, error) {
	return int64(len(m.clients)), nil
}

// mockAllocationRepository is a map-backed client.AllocationRepository for testing
type mockAllocationRepository struct {
	allocations map[uuid.UUID]*client.Allocation
}

func newMockAllocationRepository() *mockAllocationRepository {
	return &mockAllocationRepository{allocations: make(map[uuid.UUID]*client.Allocation)}
}

func (m *mockAllocationRepository) FindByID(_ context.Context, id uuid.UUID) (*client.Allocation, error) {
	a, ok := m.allocations[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *mockAllocationRepository) FindByMembership(_ context.Context, membership string) ([]client.Allocation, error) {
	var out []client.Allocation
	for _, a := range m.allocations {
		if a.ClientMembership == membership {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockAllocationRepository) FindByMembershipAndUnit(_ context.Context, membership string, unitID uuid.UUID) (*client.Allocation, error) {
	for _, a := range m.allocations {
		if a.ClientMembership == membership && a.UnitID == unitID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockAllocationRepository) FindByUnit(_ context.Context, unitID uuid.UUID) (*client.Allocation, error) {
	for _, a := range m.allocations {
		if a.UnitID == unitID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockAllocationRepository) Save(_ context.Context, a *client.Allocation) error {
	copied := *a
	m.allocations[a.ID] = &copied
	return nil
}

func (m *mockAllocationRepository) DeleteByMembershipAndUnits(_ context.Context, _ string, _ []uuid.UUID) error {
	return nil
}

func (m *mockAllocationRepository) DeleteByMembership(_ context.Context, _ string) error {
	return nil
}

// mockUnitRepository is a map-backed property.UnitRepository for testing
type mockUnitRepository struct {
	units map[uuid.UUID]*property.Unit
}

func newMockUnitRepository() *mockUnitRepository {
	return &mockUnitRepository{units: make(map[uuid.UUID]*property.Unit)}
}

func (m *mockUnitRepository) FindByID(_ context.Context, id uuid.UUID) (*property.Unit, error) {
	u, ok := m.units[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUnitRepository) FindByFloorAndNumber(_ context.Context, _, _ string) (*property.Unit, error) {
	return nil, shared.ErrNotFound
}

func (m *mockUnitRepository) FindAll(_ context.Context) ([]property.Unit, error) { return nil, nil }

func (m *mockUnitRepository) FindByFloor(_ context.Context, _ string) ([]property.Unit, error) {
	return nil, nil
}

func (m *mockUnitRepository) FindByStatus(_ context.Context, _ property.UnitStatus) ([]property.Unit, error) {
	return nil, nil
}

func (m *mockUnitRepository) FindByIDs(_ context.Context, _ []uuid.UUID) ([]property.Unit, error) {
	return nil, nil
}

func (m *mockUnitRepository) ListFloors(_ context.Context) ([]string, error) { return nil, nil }

func (m *mockUnitRepository) Save(_ context.Context, u *property.Unit) error {
	copied := *u
	m.units[u.ID] = &copied
	return nil
}

func (m *mockUnitRepository) UpdateStatus(_ context.Context, _ uuid.UUID, _ property.UnitStatus) error {
	return nil
}

func (m *mockUnitRepository) Count(_ context.Context) (int64, error) {
	return int64(len(m.units)), nil
}

// mockPaymentRepository is a map-backed billing.PaymentRepository that
// enforces installment uniqueness the way the real storage does
type mockPaymentRepository struct {
	payments map[uuid.UUID]*billing.Payment
}

func newMockPaymentRepository() *mockPaymentRepository {
	return &mockPaymentRepository{payments: make(map[uuid.UUID]*billing.Payment)}
}

func (m *mockPaymentRepository) FindByID(_ context.Context, id uuid.UUID) (*billing.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockPaymentRepository) FindByMembershipAndUnit(_ context.Context, membership string, unitID uuid.UUID) ([]billing.Payment, error) {
	var out []billing.Payment
	for _, p := range m.payments {
		if p.ClientMembership == membership && p.UnitID == unitID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPaymentRepository) FindByMembership(_ context.Context, membership string) ([]billing.Payment, error) {
	var out []billing.Payment
	for _, p := range m.payments {
		if p.ClientMembership == membership {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPaymentRepository) FindAll(_ context.Context, _ shared.Filter) ([]billing.Payment, error) {
	var out []billing.Payment
	for _, p := range m.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockPaymentRepository) Save(_ context.Context, p *billing.Payment) error {
	for _, existing := range m.payments {
		if existing.ClientMembership == p.ClientMembership &&
			existing.UnitID == p.UnitID &&
			existing.Category == p.Category &&
			existing.InstallmentNumber == p.InstallmentNumber {
			return shared.ErrInstallmentPaid
		}
	}
	copied := *p
	m.payments[p.ID] = &copied
	return nil
}

func (m *mockPaymentRepository) DeleteByMembershipAndUnits(_ context.Context, _ string, _ []uuid.UUID) error {
	return nil
}

func (m *mockPaymentRepository) DeleteByMembership(_ context.Context, _ string) error { return nil }

func (m *mockPaymentRepository) Count(_ context.Context) (int64, error) {
	return int64(len(m.payments)), nil
}

type paymentFixture struct {
	clients     *mockClientRepository
	allocations *mockAllocationRepository
	units       *mockUnitRepository
	payments    *mockPaymentRepository
	service     *PaymentService
	membership  string
	unitID      uuid.UUID
}

// newPaymentFixture seeds one client holding one 9,000,000 allocation
// (10,000,000 base at 10% discount)
func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	ctx := context.Background()

	f := &paymentFixture{
		clients:     newMockClientRepository(),
		allocations: newMockAllocationRepository(),
		units:       newMockUnitRepository(),
		payments:    newMockPaymentRepository(),
		membership:  "EA-1",
	}
	f.service = NewPaymentService(NewNoOpTransactionScope(f.clients, f.allocations, f.units, f.payments))

	c, err := client.NewClient("EA-1", "Ayesha Khan")
	require.NoError(t, err)
	require.NoError(t, f.clients.Save(ctx, c))

	u, err := property.NewUnit("third", "A-301", property.UnitTypeResidential, decimal.NewFromInt(10000000))
	require.NoError(t, err)
	require.NoError(t, u.MarkSold())
	require.NoError(t, f.units.Save(ctx, u))
	f.unitID = u.ID

	a, err := client.NewAllocation("EA-1", u.ID, 10, billing.ResolvePrice(u.Price, 10))
	require.NoError(t, err)
	require.NoError(t, f.allocations.Save(ctx, a))

	return f
}

func (f *paymentFixture) pay(t *testing.T, category billing.Category, n int, paidDate time.Time) *PaymentResponse {
	t.Helper()
	resp, err := f.service.Create(context.Background(), CreatePaymentRequest{
		ClientMembership:  f.membership,
		UnitID:            f.unitID,
		Category:          string(category),
		InstallmentNumber: n,
		Method:            string(billing.MethodCash),
		PaidDate:          &paidDate,
	})
	require.NoError(t, err)
	return resp
}

func TestPaymentServiceCreate(t *testing.T) {
	ctx := context.Background()
	jan5 := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)

	t.Run("booking payment defaults to the expected amount", func(t *testing.T) {
		f := newPaymentFixture(t)
		resp := f.pay(t, billing.CategoryBooking, 1, jan5)
		assert.True(t, decimal.NewFromInt(1350000).Equal(resp.Amount), "15%% of 9,000,000")
		assert.Nil(t, resp.DueDate)
	})

	t.Run("explicit amount overrides the expected one", func(t *testing.T) {
		f := newPaymentFixture(t)
		resp, err := f.service.Create(ctx, CreatePaymentRequest{
			ClientMembership:  f.membership,
			UnitID:            f.unitID,
			Category:          string(billing.CategoryBooking),
			InstallmentNumber: 1,
			Amount:            decimal.NewFromInt(1000000),
			Method:            string(billing.MethodCheque),
			Reference:         "CHQ-44812",
			PaidDate:          &jan5,
		})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1000000).Equal(resp.Amount))
		assert.Equal(t, "CHQ-44812", resp.Reference)
	})

	t.Run("monthly before allotment is rejected", func(t *testing.T) {
		f := newPaymentFixture(t)
		_, err := f.service.Create(ctx, CreatePaymentRequest{
			ClientMembership:  f.membership,
			UnitID:            f.unitID,
			Category:          string(billing.CategoryMonthly),
			InstallmentNumber: 1,
			Method:            string(billing.MethodCash),
		})
		assert.ErrorIs(t, err, shared.ErrAllotmentNotPaid)
	})

	t.Run("half yearly before allotment is rejected", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.pay(t, billing.CategoryBooking, 1, jan5)

		_, err := f.service.Create(ctx, CreatePaymentRequest{
			ClientMembership:  f.membership,
			UnitID:            f.unitID,
			Category:          string(billing.CategoryHalfYearly),
			InstallmentNumber: 1,
			Method:            string(billing.MethodCash),
		})
		assert.ErrorIs(t, err, shared.ErrAllotmentNotPaid)
	})

	t.Run("locked possession is rejected", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.pay(t, billing.CategoryBooking, 1, jan5)
		f.pay(t, billing.CategoryAllotment, 1, jan31)

		_, err := f.service.Create(ctx, CreatePaymentRequest{
			ClientMembership:  f.membership,
			UnitID:            f.unitID,
			Category:          string(billing.CategoryPossession),
			InstallmentNumber: 1,
			Method:            string(billing.MethodCash),
		})
		assert.ErrorIs(t, err, shared.ErrInstallmentLocked)
	})

	t.Run("skipping past the cursor is rejected", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.pay(t, billing.CategoryBooking, 1, jan5)
		f.pay(t, billing.CategoryAllotment, 1, jan31)

		_, err := f.service.Create(ctx, CreatePaymentRequest{
			ClientMembership:  f.membership,
			UnitID:            f.unitID,
			Category:          string(billing.CategoryMonthly),
			InstallmentNumber: 2,
			Method:            string(billing.MethodCash),
		})
		assert.ErrorIs(t, err, shared.ErrInstallmentLocked)
	})

	t.Run("paying the same installment twice is rejected", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.pay(t, billing.CategoryBooking, 1, jan5)

		_, err := f.service.Create(ctx, CreatePaymentRequest{
			ClientMembership:  f.membership,
			UnitID:            f.unitID,
			Category:          string(billing.CategoryBooking),
			InstallmentNumber: 1,
			Method:            string(billing.MethodCash),
		})
		assert.ErrorIs(t, err, shared.ErrInstallmentPaid)
	})

	t.Run("monthly payment records its clamped due date", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.pay(t, billing.CategoryBooking, 1, jan5)
		f.pay(t, billing.CategoryAllotment, 1, jan31)

		resp := f.pay(t, billing.CategoryMonthly, 1, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
		require.NotNil(t, resp.DueDate)
		assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), *resp.DueDate)
	})

	t.Run("unknown allocation fails", func(t *testing.T) {
		f := newPaymentFixture(t)
		_, err := f.service.Create(ctx, CreatePaymentRequest{
			ClientMembership:  "EA-9",
			UnitID:            f.unitID,
			Category:          string(billing.CategoryBooking),
			InstallmentNumber: 1,
			Method:            string(billing.MethodCash),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("invalid category or installment fails before any lookup", func(t *testing.T) {
		f := newPaymentFixture(t)
		_, err := f.service.Create(ctx, CreatePaymentRequest{
			ClientMembership:  f.membership,
			UnitID:            f.unitID,
			Category:          "rent",
			InstallmentNumber: 1,
			Method:            string(billing.MethodCash),
		})
		assert.Error(t, err)

		_, err = f.service.Create(ctx, CreatePaymentRequest{
			ClientMembership:  f.membership,
			UnitID:            f.unitID,
			Category:          string(billing.CategoryMonthly),
			InstallmentNumber: 34,
			Method:            string(billing.MethodCash),
		})
		assert.Error(t, err)
	})
}

func TestPaymentServiceStatement(t *testing.T) {
	ctx := context.Background()
	jan5 := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)

	f := newPaymentFixture(t)
	f.pay(t, billing.CategoryBooking, 1, jan5)
	f.pay(t, billing.CategoryAllotment, 1, jan31)

	stmt, err := f.service.GetStatement(ctx, f.membership, f.unitID)
	require.NoError(t, err)

	t.Run("header carries client, unit and totals", func(t *testing.T) {
		assert.Equal(t, "Ayesha Khan", stmt.ClientName)
		assert.Equal(t, "A-301", stmt.UnitNumber)
		assert.True(t, decimal.NewFromInt(9000000).Equal(stmt.TotalPayable))
		assert.True(t, decimal.NewFromInt(2250000).Equal(stmt.TotalReceived))
		assert.InDelta(t, 25.0, stmt.Progress, 0.0001)
		require.NotNil(t, stmt.AllotmentPaidDate)
		assert.Equal(t, jan31, *stmt.AllotmentPaidDate)
	})

	t.Run("category payability is carried per group", func(t *testing.T) {
		require.Len(t, stmt.Categories, 5)
		assert.True(t, stmt.Categories[2].Payable, "monthly after allotment")
		assert.True(t, stmt.Categories[3].Payable, "half yearly after allotment")
		assert.False(t, stmt.Categories[4].Payable, "possession locked")
	})

	t.Run("next payable monthly row carries the due date", func(t *testing.T) {
		rows := stmt.Categories[2].Installments
		require.Len(t, rows, 33)
		assert.Equal(t, string(billing.StateNextPayable), rows[0].State)
		require.NotNil(t, rows[0].DueDate)
		assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), *rows[0].DueDate)
		assert.Equal(t, string(billing.StateLocked), rows[1].State)
	})
}

func TestPaymentServiceProgressAndList(t *testing.T) {
	ctx := context.Background()
	jan5 := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	f := newPaymentFixture(t)
	f.pay(t, billing.CategoryBooking, 1, jan5)

	t.Run("progress reflects received over payable", func(t *testing.T) {
		progress, err := f.service.GetProgress(ctx, f.membership, f.unitID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1350000).Equal(progress.TotalReceived))
		assert.InDelta(t, 15.0, progress.Progress, 0.0001)
	})

	t.Run("listing filters by membership", func(t *testing.T) {
		mine, err := f.service.List(ctx, f.membership, uuid.Nil, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		other, err := f.service.List(ctx, "EA-9", uuid.Nil, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Empty(t, other)
	})

	t.Run("listing narrows to one allocation", func(t *testing.T) {
		mine, err := f.service.List(ctx, f.membership, f.unitID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		none, err := f.service.List(ctx, f.membership, uuid.New(), shared.DefaultFilter())
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
