// Package billing implements the bill computation engine: line-item
// aggregation, discount application and grand-total derivation.
//
// Every operation is a pure function over its inputs; the caller owns the
// item slice and passes it explicitly. Totals are recomputed from scratch
// on every call, so there is no stale-total state to invalidate.
package billing

import (
	"github.com/guttosm/clinic-client/internal/domain/dto"
	"github.com/guttosm/clinic-client/internal/domain/model"
)

// DiscountKind selects how a discount value is interpreted.
type DiscountKind string

const (
	// DiscountPercentage applies value as a percentage of the subtotal.
	DiscountPercentage DiscountKind = dto.DiscountTypePercentage
	// DiscountAmount applies value as a flat amount.
	DiscountAmount DiscountKind = dto.DiscountTypeAmount
)

// LineItem is one service entry on a bill draft.
// Invariant: LineTotal == UnitPrice * Quantity after every mutation.
// A ServiceID of 0 marks the item as incomplete; it still contributes its
// LineTotal to the subtotal but blocks submission.
type LineItem struct {
	ID          int64
	ServiceID   int64
	ServiceName string
	Quantity    int
	UnitPrice   float64
	LineTotal   float64
}

// Discount specifies the discount applied to a bill.
type Discount struct {
	Kind  DiscountKind
	Value float64
}

// Totals holds the derived bill figures. Never stored; always recomputed.
type Totals struct {
	Subtotal       float64
	DiscountAmount float64
	GrandTotal     float64
}

// Catalog resolves service details when a line item selects a service.
type Catalog interface {
	ServiceByID(id int64) (model.Service, bool)
}

// CatalogFunc adapts a function to the Catalog interface.
type CatalogFunc func(id int64) (model.Service, bool)

// ServiceByID calls the underlying function.
func (f CatalogFunc) ServiceByID(id int64) (model.Service, bool) {
	return f(id)
}

// SliceCatalog is a Catalog backed by a service list, as fetched from
// GET /services/.
type SliceCatalog []model.Service

// ServiceByID scans the list for a matching service ID.
func (c SliceCatalog) ServiceByID(id int64) (model.Service, bool) {
	for _, svc := range c {
		if svc.ID == id {
			return svc, true
		}
	}
	return model.Service{}, false
}

// Change is a tagged mutation applied to a single line item.
// Exactly one of SetService, SetQuantity or SetUnitPrice implements it.
type Change interface {
	apply(item LineItem, catalog Catalog) LineItem
}

// SetService selects the service for a line item. Name and unit price are
// resolved from the catalog; an unknown ID changes only the ServiceID,
// leaving the previous name and price in place.
type SetService struct {
	ServiceID int64
}

func (c SetService) apply(item LineItem, catalog Catalog) LineItem {
	item.ServiceID = c.ServiceID
	if catalog != nil {
		if svc, ok := catalog.ServiceByID(c.ServiceID); ok {
			item.ServiceName = svc.Name
			item.UnitPrice = svc.Price
		}
	}
	return item
}

// SetQuantity changes the quantity of a line item.
type SetQuantity struct {
	Quantity int
}

func (c SetQuantity) apply(item LineItem, _ Catalog) LineItem {
	item.Quantity = c.Quantity
	return item
}

// SetUnitPrice overrides the unit price of a line item.
type SetUnitPrice struct {
	Price float64
}

func (c SetUnitPrice) apply(item LineItem, _ Catalog) LineItem {
	item.UnitPrice = c.Price
	return item
}

// Engine applies line-item mutations and computes bill totals.
// It carries no state besides the service catalog collaborator.
type Engine struct {
	catalog Catalog
}

// NewEngine creates an engine resolving services through the given catalog.
func NewEngine(catalog Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// AddItem appends a new incomplete line item and returns the new sequence.
// The input slice is not modified. Item IDs are assigned monotonically so
// insertion order is also billing order.
func (e *Engine) AddItem(items []LineItem) []LineItem {
	next := int64(1)
	for _, item := range items {
		if item.ID >= next {
			next = item.ID + 1
		}
	}

	out := make([]LineItem, len(items), len(items)+1)
	copy(out, items)
	return append(out, LineItem{
		ID:       next,
		Quantity: 1,
	})
}

// UpdateItem applies a change to the item with the given ID and returns the
// new sequence. The line total is unconditionally recomputed afterwards.
// An unknown ID returns the input unchanged.
func (e *Engine) UpdateItem(items []LineItem, id int64, change Change) []LineItem {
	idx := indexOf(items, id)
	if idx < 0 {
		return items
	}

	out := make([]LineItem, len(items))
	copy(out, items)

	item := change.apply(out[idx], e.catalog)
	item.LineTotal = item.UnitPrice * float64(item.Quantity)
	out[idx] = item
	return out
}

// RemoveItem deletes the item with the given ID and returns the new
// sequence. An unknown ID returns the input unchanged.
func (e *Engine) RemoveItem(items []LineItem, id int64) []LineItem {
	idx := indexOf(items, id)
	if idx < 0 {
		return items
	}

	out := make([]LineItem, 0, len(items)-1)
	out = append(out, items[:idx]...)
	out = append(out, items[idx+1:]...)
	return out
}

// ComputeTotals derives subtotal, discount amount and grand total from the
// current items and discount. Percentage discounts are value% of the
// subtotal; amount discounts are taken as-is. Neither is clamped, so a flat
// discount larger than the subtotal yields a negative grand total.
func (e *Engine) ComputeTotals(items []LineItem, discount Discount) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal
	}

	var discountAmount float64
	switch discount.Kind {
	case DiscountPercentage:
		discountAmount = subtotal * discount.Value / 100
	case DiscountAmount:
		discountAmount = discount.Value
	}

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		GrandTotal:     subtotal - discountAmount,
	}
}

func indexOf(items []LineItem, id int64) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
