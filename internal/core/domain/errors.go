package domain

import (
	"errors"
	"fmt"
)

// ErrBackendUnreachable is returned when the remote API gives no response.
var ErrBackendUnreachable = errors.New("backend unreachable")

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// A ValidationError blocks a user action before any remote call.
// Message is shown to the user as is.
type ValidationError struct {
	Message  string
	Severity Severity
}

func (e *ValidationError) Error() string {
	return e.Message
}

func warning(msg string) *ValidationError {
	return &ValidationError{Message: msg, Severity: SeverityWarning}
}

func invalid(msg string) *ValidationError {
	return &ValidationError{Message: msg, Severity: SeverityError}
}

// Checkout gates.
var (
	ErrInsufficientBalance = warning("You do not have enough balance in your wallet for this purchase")
	ErrNoAddresses         = warning("Please add a new address before proceeding")
	ErrAddressNotSelected  = warning("Please select one shipping address to proceed.")
)

// Cart rules.
var (
	ErrNotLoggedIn     = warning("Login to add an item to the cart")
	ErrAlreadyInCart   = warning("Item already in cart. Use sidebar cart to update quantity or remove item")
	ErrInvalidQuantity = invalid("Quantity must not be negative")
	ErrItemNotInCart   = invalid("Item is not in the cart")
	ErrUnknownAddress  = invalid("Address not found")
	ErrEmptyAddress    = invalid("Address must not be empty")
)

// Login and registration field checks.
var (
	ErrUsernameRequired = invalid("Username is a required field")
	ErrUsernameTooShort = invalid("Username must be at least 6 characters")
	ErrPasswordRequired = invalid("Password is a required field")
	ErrPasswordTooShort = invalid("Password must be at least 6 characters")
	ErrPasswordMismatch = invalid("Passwords do not match")
)

// A RemoteError is a non-success response of the remote API.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote status %d: %s", e.StatusCode, e.Message)
}
