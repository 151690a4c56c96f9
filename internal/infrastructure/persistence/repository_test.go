package persistence

import (
	"context"
	"testing"
	"time"

	appclient "github.com/eyrie/backend/internal/application/client"
	"github.com/eyrie/backend/internal/domain/billing"
	"github.com/eyrie/backend/internal/domain/client"
	"github.com/eyrie/backend/internal/domain/property"
	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/eyrie/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UnitModel{},
		&models.ClientModel{},
		&models.AllocationModel{},
		&models.PaymentModel{},
	)
	require.NoError(t, err)
	return db
}

func newTestUnit(t *testing.T, floorID, number string) *property.Unit {
	t.Helper()
	u, err := property.NewUnit(floorID, number, property.UnitTypeResidential, decimal.NewFromInt(10000000))
	require.NoError(t, err)
	return u
}

func TestGormUnitRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormUnitRepository(db)

	u := newTestUnit(t, "third", "A-301")
	require.NoError(t, repo.Save(ctx, u))

	t.Run("round trips through the model", func(t *testing.T) {
		found, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "A-301", found.Number)
		assert.Equal(t, property.UnitStatusAvailable, found.Status)
		assert.True(t, u.Price.Equal(found.Price))
	})

	t.Run("resolves by floor and number", func(t *testing.T) {
		found, err := repo.FindByFloorAndNumber(ctx, "third", "A-301")
		require.NoError(t, err)
		assert.Equal(t, u.ID, found.ID)

		_, err = repo.FindByFloorAndNumber(ctx, "third", "A-999")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("updates status in place", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, u.ID, property.UnitStatusSold))
		sold, err := repo.FindByStatus(ctx, property.UnitStatusSold)
		require.NoError(t, err)
		assert.Len(t, sold, 1)

		err = repo.UpdateStatus(ctx, uuid.New(), property.UnitStatusSold)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lists distinct floors", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, newTestUnit(t, "ground", "S-1")))
		require.NoError(t, repo.Save(ctx, newTestUnit(t, "ground", "S-2")))

		floors, err := repo.ListFloors(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"third", "ground"}, floors)
	})
}

func TestGormClientRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormClientRepository(db)

	c, err := client.NewClient("EA-1", "Ayesha Khan")
	require.NoError(t, err)
	c.AgentName = "M. Saleem"
	require.NoError(t, repo.Save(ctx, c))

	t.Run("finds by membership", func(t *testing.T) {
		found, err := repo.FindByMembership(ctx, "EA-1")
		require.NoError(t, err)
		assert.Equal(t, "Ayesha Khan", found.Name)

		_, err = repo.FindByMembership(ctx, "EA-2")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("search matches name agent and membership", func(t *testing.T) {
		byName, err := repo.Search(ctx, "ayesha")
		require.NoError(t, err)
		assert.Len(t, byName, 1)

		byAgent, err := repo.Search(ctx, "saleem")
		require.NoError(t, err)
		assert.Len(t, byAgent, 1)

		byMembership, err := repo.Search(ctx, "EA-1")
		require.NoError(t, err)
		assert.Len(t, byMembership, 1)

		none, err := repo.Search(ctx, "zzz")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("lists membership numbers", func(t *testing.T) {
		numbers, err := repo.ListMembershipNumbers(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"EA-1"}, numbers)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "EA-1"))
		assert.ErrorIs(t, repo.Delete(ctx, "EA-1"), shared.ErrNotFound)
	})
}

func TestGormAllocationRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormAllocationRepository(db)
	unit := newTestUnit(t, "third", "A-301")

	a, err := client.NewAllocation("EA-1", unit.ID, 10, decimal.NewFromInt(9000000))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, a))

	t.Run("finds by membership and unit", func(t *testing.T) {
		found, err := repo.FindByMembershipAndUnit(ctx, "EA-1", unit.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(9000000).Equal(found.DiscountedPrice))
	})

	t.Run("a unit holds at most one live allocation", func(t *testing.T) {
		other, err := client.NewAllocation("EA-2", unit.ID, 0, decimal.NewFromInt(10000000))
		require.NoError(t, err)
		assert.Error(t, repo.Save(ctx, other), "unique index on unit_id rejects a double sale")
	})

	t.Run("deleting by membership releases the unit index", func(t *testing.T) {
		require.NoError(t, repo.DeleteByMembership(ctx, "EA-1"))
		_, err := repo.FindByUnit(ctx, unit.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		other, err := client.NewAllocation("EA-2", unit.ID, 0, decimal.NewFromInt(10000000))
		require.NoError(t, err)
		assert.NoError(t, repo.Save(ctx, other))
	})
}

func TestGormPaymentRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)
	unit := newTestUnit(t, "third", "A-301")
	paidDate := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	newPayment := func(t *testing.T, category billing.Category, n int) *billing.Payment {
		t.Helper()
		p, err := billing.NewPayment("EA-1", unit.ID, category, n,
			decimal.NewFromInt(1350000), billing.MethodCash, paidDate)
		require.NoError(t, err)
		return p
	}

	t.Run("saves and reads back", func(t *testing.T) {
		p := newPayment(t, billing.CategoryBooking, 1)
		require.NoError(t, repo.Save(ctx, p))

		found, err := repo.FindByMembershipAndUnit(ctx, "EA-1", unit.ID)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, billing.CategoryBooking, found[0].Category)
	})

	t.Run("rejects a duplicate installment", func(t *testing.T) {
		dup := newPayment(t, billing.CategoryBooking, 1)
		err := repo.Save(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrInstallmentPaid)
	})

	t.Run("same installment number in another category is fine", func(t *testing.T) {
		p := newPayment(t, billing.CategoryAllotment, 1)
		assert.NoError(t, repo.Save(ctx, p))
	})

	t.Run("delete by membership clears the ledger", func(t *testing.T) {
		require.NoError(t, repo.DeleteByMembership(ctx, "EA-1"))
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestGormTransactionScopeRollback(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	scope := NewGormTransactionScope(db)

	sentinel := shared.NewDomainError("BOOM", "forced failure")
	err := scope.Execute(ctx, func(repos appclient.TransactionalRepositories) error {
		c, err := client.NewClient("EA-1", "Ayesha Khan")
		if err != nil {
			return err
		}
		if err := repos.ClientRepo().Save(ctx, c); err != nil {
			return err
		}
		u := newTestUnit(t, "third", "A-301")
		if err := repos.UnitRepo().Save(ctx, u); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = NewGormClientRepository(db).FindByMembership(ctx, "EA-1")
	assert.ErrorIs(t, err, shared.ErrNotFound, "client insert rolled back")

	count, err := NewGormUnitRepository(db).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "unit insert rolled back")
}
