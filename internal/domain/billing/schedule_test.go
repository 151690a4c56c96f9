package billing

import (
	"testing"

	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchedule(t *testing.T) {
	total := decimal.NewFromInt(9000000)
	s, err := NewSchedule(total)
	require.NoError(t, err)

	t.Run("phase amounts follow the fixed split", func(t *testing.T) {
		assert.True(t, decimal.NewFromInt(1350000).Equal(s.Booking), "booking %s", s.Booking)
		assert.True(t, decimal.NewFromInt(900000).Equal(s.Allotment), "allotment %s", s.Allotment)
		assert.True(t, decimal.NewFromInt(900000).Equal(s.Possession), "possession %s", s.Possession)

		monthlyEach, _ := s.MonthlyEach.Float64()
		assert.InDelta(t, 3600000.0/33, monthlyEach, 0.001)

		hyFull, _ := s.HalfYearlyFull.Float64()
		assert.InDelta(t, 2250000.0/5.5, hyFull, 0.001)
	})

	t.Run("sixth half yearly installment is half the regular one", func(t *testing.T) {
		assert.True(t, s.HalfYearlyHalf.Mul(decimal.NewFromInt(2)).Equal(s.HalfYearlyFull))
	})

	t.Run("all installments sum back to the total", func(t *testing.T) {
		sum := decimal.Zero
		for _, cat := range CategoryOrder {
			for n := 1; n <= cat.Config().Installments; n++ {
				sum = sum.Add(s.ExpectedAmount(cat, n))
			}
		}
		diff := sum.Sub(total).Abs()
		assert.True(t, diff.LessThan(decimal.NewFromFloat(0.01)), "sum %s differs from total by %s", sum, diff)
	})
}

func TestNewScheduleRejectsNegativeTotal(t *testing.T) {
	_, err := NewSchedule(decimal.NewFromInt(-9000000))
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TOTAL", domainErr.Code)

	t.Run("ledger refuses the same total", func(t *testing.T) {
		_, err := NewLedger(decimal.NewFromInt(-9000000), nil)
		assert.Error(t, err)
	})

	t.Run("zero total is still valid", func(t *testing.T) {
		s, err := NewSchedule(decimal.Zero)
		require.NoError(t, err)
		assert.True(t, s.Booking.IsZero())
	})
}

func TestScheduleExpectedAmount(t *testing.T) {
	s := mustSchedule(t, decimal.NewFromInt(9000000))

	t.Run("monthly installments are all equal", func(t *testing.T) {
		assert.True(t, s.ExpectedAmount(CategoryMonthly, 1).Equal(s.ExpectedAmount(CategoryMonthly, 33)))
	})

	t.Run("half yearly five equals full and six equals half", func(t *testing.T) {
		assert.True(t, s.ExpectedAmount(CategoryHalfYearly, 5).Equal(s.HalfYearlyFull))
		assert.True(t, s.ExpectedAmount(CategoryHalfYearly, 6).Equal(s.HalfYearlyHalf))
	})

	t.Run("unknown category yields zero", func(t *testing.T) {
		assert.True(t, s.ExpectedAmount(Category("rent"), 1).IsZero())
	})
}

func TestValidateInstallmentNumber(t *testing.T) {
	assert.NoError(t, ValidateInstallmentNumber(CategoryMonthly, 1))
	assert.NoError(t, ValidateInstallmentNumber(CategoryMonthly, 33))
	assert.Error(t, ValidateInstallmentNumber(CategoryMonthly, 0))
	assert.Error(t, ValidateInstallmentNumber(CategoryMonthly, 34))
	assert.Error(t, ValidateInstallmentNumber(CategoryBooking, 2))
	assert.Error(t, ValidateInstallmentNumber(Category("rent"), 1))
}
