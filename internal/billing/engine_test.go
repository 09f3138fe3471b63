package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/clinic-client/internal/domain/model"
)

// testCatalog mirrors the seeded service list used across the tests.
var testCatalog = SliceCatalog{
	{ID: 1, Name: "General Consultation", Price: 500, Category: model.CategoryConsultation, IsActive: true},
	{ID: 2, Name: "Blood Test", Price: 300, Category: model.CategoryLaboratory, IsActive: true},
	{ID: 3, Name: "Chest X-Ray", Price: 800, Category: model.CategoryRadiology, IsActive: true},
}

func TestEngine_AddItem(t *testing.T) {
	e := NewEngine(testCatalog)

	t.Run("first item gets ID 1 and quantity 1", func(t *testing.T) {
		items := e.AddItem(nil)
		require.Len(t, items, 1)
		assert.Equal(t, int64(1), items[0].ID)
		assert.Equal(t, int64(0), items[0].ServiceID)
		assert.Equal(t, 1, items[0].Quantity)
		assert.Equal(t, 0.0, items[0].LineTotal)
	})

	t.Run("IDs stay monotonic after removals", func(t *testing.T) {
		items := e.AddItem(nil)
		items = e.AddItem(items)
		items = e.AddItem(items)
		items = e.RemoveItem(items, 2)

		items = e.AddItem(items)
		require.Len(t, items, 3)
		assert.Equal(t, int64(4), items[2].ID, "new ID must exceed every ID ever assigned")
	})

	t.Run("input slice is not modified", func(t *testing.T) {
		original := e.AddItem(nil)
		_ = e.AddItem(original)
		assert.Len(t, original, 1)
	})
}

func TestEngine_UpdateItem(t *testing.T) {
	e := NewEngine(testCatalog)

	t.Run("SetService resolves name and price from catalog", func(t *testing.T) {
		items := e.AddItem(nil)
		items = e.UpdateItem(items, 1, SetService{ServiceID: 1})

		require.Len(t, items, 1)
		assert.Equal(t, int64(1), items[0].ServiceID)
		assert.Equal(t, "General Consultation", items[0].ServiceName)
		assert.Equal(t, 500.0, items[0].UnitPrice)
		assert.Equal(t, 500.0, items[0].LineTotal)
	})

	t.Run("SetService with unknown ID keeps previous name and price", func(t *testing.T) {
		items := e.AddItem(nil)
		items = e.UpdateItem(items, 1, SetService{ServiceID: 1})
		items = e.UpdateItem(items, 1, SetService{ServiceID: 999})

		assert.Equal(t, int64(999), items[0].ServiceID)
		assert.Equal(t, "General Consultation", items[0].ServiceName)
		assert.Equal(t, 500.0, items[0].UnitPrice)
	})

	t.Run("SetQuantity recomputes line total", func(t *testing.T) {
		items := e.AddItem(nil)
		items = e.UpdateItem(items, 1, SetService{ServiceID: 2})
		items = e.UpdateItem(items, 1, SetQuantity{Quantity: 3})

		assert.Equal(t, 3, items[0].Quantity)
		assert.Equal(t, 900.0, items[0].LineTotal)
	})

	t.Run("SetUnitPrice overrides the catalog price", func(t *testing.T) {
		items := e.AddItem(nil)
		items = e.UpdateItem(items, 1, SetService{ServiceID: 1})
		items = e.UpdateItem(items, 1, SetQuantity{Quantity: 2})
		items = e.UpdateItem(items, 1, SetUnitPrice{Price: 450})

		assert.Equal(t, 450.0, items[0].UnitPrice)
		assert.Equal(t, 900.0, items[0].LineTotal)
	})

	t.Run("unknown item ID is a no-op", func(t *testing.T) {
		items := e.AddItem(nil)
		updated := e.UpdateItem(items, 42, SetQuantity{Quantity: 5})
		assert.Equal(t, items, updated)
	})

	t.Run("only the targeted item changes", func(t *testing.T) {
		items := e.AddItem(nil)
		items = e.AddItem(items)
		items = e.UpdateItem(items, 1, SetService{ServiceID: 1})
		items = e.UpdateItem(items, 2, SetService{ServiceID: 2})

		items = e.UpdateItem(items, 2, SetQuantity{Quantity: 4})
		assert.Equal(t, 500.0, items[0].LineTotal)
		assert.Equal(t, 1200.0, items[1].LineTotal)
	})
}

// TestEngine_LineTotalInvariant verifies LineTotal == UnitPrice * Quantity
// after every mutation in an arbitrary operation sequence.
func TestEngine_LineTotalInvariant(t *testing.T) {
	e := NewEngine(testCatalog)

	checkInvariant := func(t *testing.T, items []LineItem) {
		t.Helper()
		for _, item := range items {
			assert.Equal(t, item.UnitPrice*float64(item.Quantity), item.LineTotal,
				"item %d violates the line total invariant", item.ID)
		}
	}

	var items []LineItem
	steps := []func([]LineItem) []LineItem{
		func(it []LineItem) []LineItem { return e.AddItem(it) },
		func(it []LineItem) []LineItem { return e.UpdateItem(it, 1, SetService{ServiceID: 3}) },
		func(it []LineItem) []LineItem { return e.AddItem(it) },
		func(it []LineItem) []LineItem { return e.UpdateItem(it, 2, SetService{ServiceID: 1}) },
		func(it []LineItem) []LineItem { return e.UpdateItem(it, 2, SetQuantity{Quantity: 7}) },
		func(it []LineItem) []LineItem { return e.UpdateItem(it, 1, SetUnitPrice{Price: 750}) },
		func(it []LineItem) []LineItem { return e.RemoveItem(it, 2) },
		func(it []LineItem) []LineItem { return e.AddItem(it) },
		func(it []LineItem) []LineItem { return e.UpdateItem(it, 3, SetQuantity{Quantity: 2}) },
	}
	for _, step := range steps {
		items = step(items)
		checkInvariant(t, items)
	}
}

func TestEngine_RemoveItem(t *testing.T) {
	e := NewEngine(testCatalog)

	t.Run("removes the targeted item", func(t *testing.T) {
		items := e.AddItem(nil)
		items = e.AddItem(items)
		items = e.RemoveItem(items, 1)

		require.Len(t, items, 1)
		assert.Equal(t, int64(2), items[0].ID)
	})

	t.Run("unknown ID is a no-op", func(t *testing.T) {
		items := e.AddItem(nil)
		assert.Equal(t, items, e.RemoveItem(items, 99))
	})
}

func TestEngine_ComputeTotals(t *testing.T) {
	e := NewEngine(testCatalog)

	// Two consultations and one blood test, the canonical worked example.
	draft := e.AddItem(nil)
	draft = e.UpdateItem(draft, 1, SetService{ServiceID: 1})
	draft = e.UpdateItem(draft, 1, SetQuantity{Quantity: 2})
	draft = e.AddItem(draft)
	draft = e.UpdateItem(draft, 2, SetService{ServiceID: 2})

	tests := []struct {
		name     string
		items    []LineItem
		discount Discount
		expected Totals
	}{
		{
			name:     "ten percent discount",
			items:    draft,
			discount: Discount{Kind: DiscountPercentage, Value: 10},
			expected: Totals{Subtotal: 1300, DiscountAmount: 130, GrandTotal: 1170},
		},
		{
			name:     "zero percent discount",
			items:    draft,
			discount: Discount{Kind: DiscountPercentage, Value: 0},
			expected: Totals{Subtotal: 1300, DiscountAmount: 0, GrandTotal: 1300},
		},
		{
			name:     "flat discount",
			items:    draft,
			discount: Discount{Kind: DiscountAmount, Value: 300},
			expected: Totals{Subtotal: 1300, DiscountAmount: 300, GrandTotal: 1000},
		},
		{
			name: "flat discount exceeding subtotal goes negative",
			items: func() []LineItem {
				it := e.AddItem(nil)
				it = e.UpdateItem(it, 1, SetService{ServiceID: 1})
				return it
			}(),
			discount: Discount{Kind: DiscountAmount, Value: 700},
			expected: Totals{Subtotal: 500, DiscountAmount: 700, GrandTotal: -200},
		},
		{
			name:     "empty bill",
			items:    nil,
			discount: Discount{Kind: DiscountPercentage, Value: 10},
			expected: Totals{},
		},
		{
			name:     "unknown discount kind applies nothing",
			items:    draft,
			discount: Discount{Kind: "coupon", Value: 50},
			expected: Totals{Subtotal: 1300, DiscountAmount: 0, GrandTotal: 1300},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.ComputeTotals(tt.items, tt.discount))
		})
	}
}

// TestEngine_TotalsDeterminism verifies that totals depend only on the final
// item state, not on the mutation path that produced it.
func TestEngine_TotalsDeterminism(t *testing.T) {
	e := NewEngine(testCatalog)
	discount := Discount{Kind: DiscountPercentage, Value: 10}

	// Path A: straight construction.
	a := e.AddItem(nil)
	a = e.UpdateItem(a, 1, SetService{ServiceID: 1})
	a = e.UpdateItem(a, 1, SetQuantity{Quantity: 2})
	a = e.AddItem(a)
	a = e.UpdateItem(a, 2, SetService{ServiceID: 2})

	// Path B: detours through removed items and overwritten fields.
	b := e.AddItem(nil)
	b = e.UpdateItem(b, 1, SetService{ServiceID: 3})
	b = e.AddItem(b)
	b = e.RemoveItem(b, 1)
	b = e.UpdateItem(b, 2, SetService{ServiceID: 1})
	b = e.UpdateItem(b, 2, SetQuantity{Quantity: 5})
	b = e.UpdateItem(b, 2, SetQuantity{Quantity: 2})
	b = e.AddItem(b)
	b = e.UpdateItem(b, 3, SetService{ServiceID: 2})

	totalsA := e.ComputeTotals(a, discount)
	totalsB := e.ComputeTotals(b, discount)
	assert.Equal(t, totalsA, totalsB)
	assert.Equal(t, Totals{Subtotal: 1300, DiscountAmount: 130, GrandTotal: 1170}, totalsA)

	// Recomputation over unchanged items is stable.
	assert.Equal(t, totalsA, e.ComputeTotals(a, discount))
}
