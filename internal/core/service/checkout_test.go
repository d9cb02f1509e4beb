package service

import (
	"errors"
	"testing"

	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testAddresses = []domain.Address{
	{ID: "addr1", Text: "Baker st. 221b"},
	{ID: "addr2", Text: "Privet Drive 4"},
}

func checkoutBackend() *MockBackend {
	backend := new(MockBackend)
	backend.On("Products", mock.Anything).Return(testCatalog, nil)
	backend.On("Cart", mock.Anything, "tok").
		Return([]domain.CartLine{
			{ProductID: "A", Qty: 2},
			{ProductID: "B", Qty: 1},
		}, nil)
	backend.On("Addresses", mock.Anything, "tok").Return(testAddresses, nil)
	return backend
}

func TestCheckoutPage(t *testing.T) {
	s := New(t.Context(), checkoutBackend(), loggedInKV())

	page, err := s.CheckoutPage(t.Context(), "sid")
	require.NoError(t, err)
	assert.Equal(t, 25, page.Cart.Total)
	assert.Equal(t, domain.OrderSummary{
		Products: 3, Subtotal: 25, Shipping: 2, Total: 27,
	}, page.Summary)
	assert.Equal(t, testAddresses, page.Addresses.All)
	assert.Empty(t, page.Addresses.Selected)
	assert.Equal(t, 5000, page.Balance)
}

func TestCheckout(t *testing.T) {
	t.Run("InsufficientBalance", func(t *testing.T) {
		kv := newFakeKV()
		kv.login("sid", "tok", "crio.do", "24")
		backend := checkoutBackend()

		s := New(t.Context(), backend, kv)
		_, err := s.SelectAddress(t.Context(), "sid", "addr1")
		require.NoError(t, err)

		_, err = s.Checkout(t.Context(), "sid")
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
		backend.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NoAddresses", func(t *testing.T) {
		backend := new(MockBackend)
		backend.On("Products", mock.Anything).Return(testCatalog, nil)
		backend.On("Cart", mock.Anything, "tok").Return([]domain.CartLine{}, nil)
		backend.On("Addresses", mock.Anything, "tok").Return([]domain.Address{}, nil)

		s := New(t.Context(), backend, loggedInKV())

		_, err := s.Checkout(t.Context(), "sid")
		assert.ErrorIs(t, err, domain.ErrNoAddresses)
	})

	t.Run("AddressNotSelected", func(t *testing.T) {
		s := New(t.Context(), checkoutBackend(), loggedInKV())

		_, err := s.Checkout(t.Context(), "sid")
		assert.ErrorIs(t, err, domain.ErrAddressNotSelected)
	})

	t.Run("RemoteRejectionKeepsBalance", func(t *testing.T) {
		kv := loggedInKV()
		backend := checkoutBackend()
		backend.On("Checkout", mock.Anything, "tok", "addr1").
			Return(&domain.RemoteError{StatusCode: 400, Message: "Wallet balance not sufficient"})

		s := New(t.Context(), backend, kv)
		_, err := s.SelectAddress(t.Context(), "sid", "addr1")
		require.NoError(t, err)

		_, err = s.Checkout(t.Context(), "sid")
		var remoteErr *domain.RemoteError
		require.ErrorAs(t, err, &remoteErr)

		sess, err := s.LoadSession(t.Context(), "sid")
		require.NoError(t, err)
		assert.Equal(t, 5000, sess.Balance)
		backend.AssertNotCalled(t, "Balance", mock.Anything, mock.Anything)
	})

	t.Run("LocalDecrement", func(t *testing.T) {
		kv := loggedInKV()
		backend := checkoutBackend()
		backend.On("Checkout", mock.Anything, "tok", "addr2").Return(nil)
		backend.On("Balance", mock.Anything, "tok").Return(0, false, nil)

		events := new(MockEvents)
		events.On("ProduceEvent", mock.Anything, mock.MatchedBy(
			func(evt domain.ClientEvent) bool {
				return evt.Type == domain.OrderEvent &&
					evt.AddressID == "addr2" && evt.Total == 25 && evt.Qty == 3
			},
		)).Return(errors.New("broker down"))

		s := New(t.Context(), backend, kv, EventsOpt(events))
		_, err := s.SelectAddress(t.Context(), "sid", "addr2")
		require.NoError(t, err)

		order, err := s.Checkout(t.Context(), "sid")
		require.NoError(t, err)
		assert.Equal(t, domain.Order{AddressID: "addr2", Total: 25, Balance: 4975}, order)

		sess, err := s.LoadSession(t.Context(), "sid")
		require.NoError(t, err)
		assert.Equal(t, 4975, sess.Balance)
		assert.Equal(t, "tok", sess.Token)

		_, hasCart := s.views.get("sid").cart()
		assert.False(t, hasCart)
		events.AssertExpectations(t)
	})

	t.Run("AuthoritativeBalance", func(t *testing.T) {
		kv := loggedInKV()
		backend := checkoutBackend()
		backend.On("Checkout", mock.Anything, "tok", "addr1").Return(nil)
		backend.On("Balance", mock.Anything, "tok").Return(4900, true, nil)

		s := New(t.Context(), backend, kv)
		_, err := s.SelectAddress(t.Context(), "sid", "addr1")
		require.NoError(t, err)

		order, err := s.Checkout(t.Context(), "sid")
		require.NoError(t, err)
		assert.Equal(t, 4900, order.Balance)

		page, err := s.ThanksPage(t.Context(), "sid")
		require.NoError(t, err)
		assert.Equal(t, 4900, page.Balance)
	})

	t.Run("BalanceRefreshFailure", func(t *testing.T) {
		backend := checkoutBackend()
		backend.On("Checkout", mock.Anything, "tok", "addr1").Return(nil)
		backend.On("Balance", mock.Anything, "tok").
			Return(0, false, domain.ErrBackendUnreachable)

		s := New(t.Context(), backend, loggedInKV())
		_, err := s.SelectAddress(t.Context(), "sid", "addr1")
		require.NoError(t, err)

		order, err := s.Checkout(t.Context(), "sid")
		require.NoError(t, err)
		assert.Equal(t, 4975, order.Balance)
	})
}

func TestAddresses(t *testing.T) {
	t.Run("SelectUnknown", func(t *testing.T) {
		s := New(t.Context(), checkoutBackend(), loggedInKV())

		_, err := s.SelectAddress(t.Context(), "sid", "nope")
		assert.ErrorIs(t, err, domain.ErrUnknownAddress)
	})

	t.Run("DeleteSelectedClearsSelection", func(t *testing.T) {
		backend := checkoutBackend()
		backend.On("DeleteAddress", mock.Anything, "tok", "addr1").
			Return(testAddresses[1:], nil)

		s := New(t.Context(), backend, loggedInKV())
		_, err := s.SelectAddress(t.Context(), "sid", "addr1")
		require.NoError(t, err)

		addrs, err := s.DeleteAddress(t.Context(), "sid", "addr1")
		require.NoError(t, err)
		assert.Equal(t, testAddresses[1:], addrs.All)
		assert.Empty(t, addrs.Selected)
	})

	t.Run("AddEmpty", func(t *testing.T) {
		backend := new(MockBackend)
		s := New(t.Context(), backend, loggedInKV())

		_, err := s.AddAddress(t.Context(), "sid", "  ")
		assert.ErrorIs(t, err, domain.ErrEmptyAddress)
		backend.AssertNotCalled(t, "AddAddress", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AddKeepsSelection", func(t *testing.T) {
		backend := checkoutBackend()
		all := append(testAddresses[:2:2], domain.Address{ID: "addr3", Text: "Elm st. 13"})
		backend.On("AddAddress", mock.Anything, "tok", "Elm st. 13").Return(all, nil)

		s := New(t.Context(), backend, loggedInKV())
		_, err := s.SelectAddress(t.Context(), "sid", "addr2")
		require.NoError(t, err)

		addrs, err := s.AddAddress(t.Context(), "sid", "Elm st. 13")
		require.NoError(t, err)
		assert.Len(t, addrs.All, 3)
		assert.Equal(t, "addr2", addrs.Selected)
	})
}

func TestThanksPageRequiresLogin(t *testing.T) {
	s := New(t.Context(), new(MockBackend), newFakeKV())

	_, err := s.ThanksPage(t.Context(), "sid")
	assert.ErrorIs(t, err, domain.ErrNotLoggedIn)
}
