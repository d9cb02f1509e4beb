package domain_test

import (
	"testing"

	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile(t *testing.T) {
	t.Run("NilLines", func(t *testing.T) {
		catalog := []domain.Product{{ID: "A", Cost: 10}}
		items := domain.Reconcile(nil, catalog)
		require.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("MatchedLines", func(t *testing.T) {
		lines := []domain.CartLine{
			{ProductID: "A", Qty: 2},
			{ProductID: "B", Qty: 1},
		}
		catalog := []domain.Product{
			{ID: "A", Cost: 10},
			{ID: "B", Cost: 5},
		}

		items := domain.Reconcile(lines, catalog)
		require.Len(t, items, 2)

		var costs []int
		for _, it := range items {
			cost, ok := it.Cost()
			require.True(t, ok)
			costs = append(costs, cost)
		}
		assert.Equal(t, []int{10, 5}, costs)
		assert.Equal(t, 25, domain.TotalValue(items))
		assert.Equal(t, 3, domain.TotalCount(items))
	})

	t.Run("UnmatchedLine", func(t *testing.T) {
		lines := []domain.CartLine{{ProductID: "Z", Qty: 3}}

		items := domain.Reconcile(lines, nil)
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Qty)
		assert.False(t, items[0].Matched())
		_, ok := items[0].Cost()
		assert.False(t, ok)
		assert.Equal(t, 0, domain.TotalValue(items))
	})

	t.Run("PreservesLineOrder", func(t *testing.T) {
		lines := []domain.CartLine{
			{ProductID: "C", Qty: 1},
			{ProductID: "A", Qty: 4},
			{ProductID: "X", Qty: 0},
			{ProductID: "B", Qty: 2},
		}
		catalog := []domain.Product{
			{ID: "A", Name: "a"},
			{ID: "B", Name: "b"},
			{ID: "C", Name: "c"},
		}

		items := domain.Reconcile(lines, catalog)
		require.Len(t, items, len(lines))
		for i, l := range lines {
			assert.Equal(t, l.ProductID, items[i].ProductID)
			assert.Equal(t, l.Qty, items[i].Qty)
		}
	})

	t.Run("FirstCatalogMatchWins", func(t *testing.T) {
		lines := []domain.CartLine{{ProductID: "A", Qty: 1}}
		catalog := []domain.Product{
			{ID: "A", Cost: 7},
			{ID: "A", Cost: 9},
		}

		items := domain.Reconcile(lines, catalog)
		require.Len(t, items, 1)
		assert.Equal(t, 7, items[0].Product.Cost)
	})

	t.Run("DoesNotAliasCatalog", func(t *testing.T) {
		lines := []domain.CartLine{{ProductID: "A", Qty: 1}}
		catalog := []domain.Product{{ID: "A", Cost: 7}}

		items := domain.Reconcile(lines, catalog)
		catalog[0].Cost = 100
		assert.Equal(t, 7, items[0].Product.Cost)
	})
}

func TestAggregation(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, 0, domain.TotalValue(nil))
		assert.Equal(t, 0, domain.TotalCount(nil))
		assert.Equal(t, 0, domain.TotalValue([]domain.CartItem{}))
		assert.Equal(t, 0, domain.TotalCount([]domain.CartItem{}))
	})

	t.Run("MixedItems", func(t *testing.T) {
		items := []domain.CartItem{
			{ProductID: "A", Qty: 3, Product: &domain.Product{ID: "A", Cost: 4}},
			{ProductID: "Z", Qty: 2},
			{ProductID: "B", Qty: 0, Product: &domain.Product{ID: "B", Cost: 50}},
		}

		var expected int
		for _, it := range items {
			if it.Product != nil {
				expected += it.Qty * it.Product.Cost
			}
		}
		assert.Equal(t, expected, domain.TotalValue(items))
		assert.Equal(t, 5, domain.TotalCount(items))
	})

	t.Run("Summarize", func(t *testing.T) {
		items := []domain.CartItem{
			{ProductID: "A", Qty: 2, Product: &domain.Product{ID: "A", Cost: 10}},
		}

		s := domain.Summarize(items)
		assert.Equal(t, domain.OrderSummary{
			Products: 2,
			Subtotal: 20,
			Shipping: domain.ShippingCharge,
			Total:    20 + domain.ShippingCharge,
		}, s)
	})

	t.Run("VisibleItems", func(t *testing.T) {
		items := []domain.CartItem{
			{ProductID: "A", Qty: 1},
			{ProductID: "B", Qty: 0},
		}

		vs := domain.VisibleItems(items)
		require.Len(t, vs, 1)
		assert.Equal(t, "A", vs[0].ProductID)
		assert.Len(t, items, 2)
	})
}
