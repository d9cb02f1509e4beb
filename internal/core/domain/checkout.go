package domain

type Order struct {
	AddressID string
	Total     int
	Balance   int
}

// ValidateCheckout checks whether an order may be placed.
//
// Gates are evaluated in order and the first failing one is returned:
// balance, address book, address selection.
func ValidateCheckout(items []CartItem, balance int, addrs AddressSelection) error {
	if TotalValue(items) > balance {
		return ErrInsufficientBalance
	}
	if len(addrs.All) == 0 {
		return ErrNoAddresses
	}
	if addrs.Selected == "" {
		return ErrAddressNotSelected
	}
	return nil
}
