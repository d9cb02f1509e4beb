package domain

// ShippingCharge is the flat shipping fee shown in the order details.
const ShippingCharge = 2

type OrderSummary struct {
	Products int
	Subtotal int
	Shipping int
	Total    int
}

// Reconcile joins cart lines with catalog products preserving the order of
// lines. A nil lines returns an empty slice.
//
// The first catalog product with a matching id wins. Lines without a match
// are kept with a nil Product.
func Reconcile(lines []CartLine, catalog []Product) []CartItem {
	items := make([]CartItem, 0, len(lines))
	if len(lines) == 0 {
		return items
	}

	index := make(map[string]int, len(catalog))
	for i := range catalog {
		if _, ok := index[catalog[i].ID]; !ok {
			index[catalog[i].ID] = i
		}
	}

	for _, l := range lines {
		it := CartItem{ProductID: l.ProductID, Qty: l.Qty}
		if i, ok := index[l.ProductID]; ok {
			p := catalog[i]
			it.Product = &p
		}
		items = append(items, it)
	}
	return items
}

// TotalValue returns the sum of qty * cost over items.
// Unmatched items contribute zero.
func TotalValue(items []CartItem) int {
	var total int
	for _, it := range items {
		total += it.Value()
	}
	return total
}

// TotalCount returns the sum of quantities over items.
func TotalCount(items []CartItem) int {
	var n int
	for _, it := range items {
		n += it.Qty
	}
	return n
}

func Summarize(items []CartItem) OrderSummary {
	subtotal := TotalValue(items)
	return OrderSummary{
		Products: TotalCount(items),
		Subtotal: subtotal,
		Shipping: ShippingCharge,
		Total:    subtotal + ShippingCharge,
	}
}

// VisibleItems returns items with a positive quantity.
func VisibleItems(items []CartItem) []CartItem {
	vs := make([]CartItem, 0, len(items))
	for _, it := range items {
		if it.Visible() {
			vs = append(vs, it)
		}
	}
	return vs
}

// FindItem returns the cart item for productID.
func FindItem(items []CartItem, productID string) (CartItem, bool) {
	for _, it := range items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return CartItem{}, false
}
