package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolvePrice(t *testing.T) {
	base := decimal.NewFromInt(10000000)

	t.Run("applies discount and rounds to whole rupee", func(t *testing.T) {
		assert.True(t, decimal.NewFromInt(9000000).Equal(ResolvePrice(base, 10)))
		assert.True(t, decimal.NewFromInt(8750000).Equal(ResolvePrice(base, 12.5)))
	})

	t.Run("zero discount returns base price", func(t *testing.T) {
		assert.True(t, base.Equal(ResolvePrice(base, 0)))
	})

	t.Run("negative discount is clamped to zero", func(t *testing.T) {
		assert.True(t, base.Equal(ResolvePrice(base, -5)))
	})

	t.Run("discount above hundred is clamped to hundred", func(t *testing.T) {
		assert.True(t, ResolvePrice(base, 150).IsZero())
	})

	t.Run("rounds half up on fractional rupees", func(t *testing.T) {
		// 999 at 0.05% discount is 998.5005, which rounds to 999
		got := ResolvePrice(decimal.NewFromInt(999), 0.05)
		assert.True(t, decimal.NewFromInt(999).Equal(got), "got %s", got)
	})
}

func TestClampDiscount(t *testing.T) {
	assert.Equal(t, 0.0, ClampDiscount(-1))
	assert.Equal(t, 0.0, ClampDiscount(0))
	assert.Equal(t, 42.5, ClampDiscount(42.5))
	assert.Equal(t, 100.0, ClampDiscount(100))
	assert.Equal(t, 100.0, ClampDiscount(100.01))
}

func TestResolveAggregatePayable(t *testing.T) {
	t.Run("sums per unit discounted prices", func(t *testing.T) {
		total := ResolveAggregatePayable([]decimal.Decimal{
			decimal.NewFromInt(9000000),
			decimal.NewFromInt(4500000),
		})
		assert.True(t, decimal.NewFromInt(13500000).Equal(total))
	})

	t.Run("empty allocation set sums to zero", func(t *testing.T) {
		assert.True(t, ResolveAggregatePayable(nil).IsZero())
	})
}
