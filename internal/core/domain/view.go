package domain

// NoProductsNotice is shown instead of an empty product grid.
const NoProductsNotice = "No Products Found"

// A ProductsView is the product grid currently on screen.
type ProductsView struct {
	Products []Product
	Notice   string
	Query    string
}

type CartView struct {
	Items []CartItem
	Total int
	Count int
}

func NewCartView(items []CartItem) CartView {
	return CartView{
		Items: VisibleItems(items),
		Total: TotalValue(items),
		Count: TotalCount(items),
	}
}

type ProductsPage struct {
	ProductsView
	LoggedIn bool
	Username string
	Cart     CartView
}

type CheckoutPage struct {
	Cart      CartView
	Summary   OrderSummary
	Addresses AddressSelection
	Balance   int
}

type ThanksPage struct {
	Username string
	Balance  int
}
