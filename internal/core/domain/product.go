package domain

type Product struct {
	ID       string
	Name     string
	Category string
	Cost     int
	Rating   int
	Image    string
	Stock    *int
}

type CartLine struct {
	ProductID string
	Qty       int
}

// A CartItem is a cart line joined with its catalog product.
//
// Product is nil when the catalog has no record for ProductID.
type CartItem struct {
	ProductID string
	Qty       int
	Product   *Product
}

func (it CartItem) Matched() bool {
	return it.Product != nil
}

// Cost reports the unit cost and whether the item matched a product.
func (it CartItem) Cost() (int, bool) {
	if it.Product == nil {
		return 0, false
	}
	return it.Product.Cost, true
}

// Visible reports whether the item is shown to the user.
// Items with zero quantity stay in the list but are hidden.
func (it CartItem) Visible() bool {
	return it.Qty > 0
}

// Value returns qty * cost, zero for unmatched items.
func (it CartItem) Value() int {
	cost, ok := it.Cost()
	if !ok {
		return 0
	}
	return it.Qty * cost
}
