package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/niksmo/qkart/internal/core/domain"
)

func (s *Service) CheckoutPage(
	ctx context.Context, sessionID string,
) (domain.CheckoutPage, error) {
	const op = "Service.CheckoutPage"

	sess, err := s.loggedInSession(ctx, sessionID)
	if err != nil {
		return domain.CheckoutPage{}, fmt.Errorf("%s: %w", op, err)
	}

	v := s.views.get(sessionID)

	items, err := s.loadCart(ctx, sess, v)
	if err != nil {
		return domain.CheckoutPage{}, fmt.Errorf("%s: %w", op, err)
	}

	addrs, err := s.loadAddresses(ctx, sess, v)
	if err != nil {
		return domain.CheckoutPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.CheckoutPage{
		Cart:      domain.NewCartView(items),
		Summary:   domain.Summarize(items),
		Addresses: addrs,
		Balance:   sess.Balance,
	}, nil
}

func (s *Service) AddAddress(
	ctx context.Context, sessionID, text string,
) (domain.AddressSelection, error) {
	const op = "Service.AddAddress"

	sess, err := s.loggedInSession(ctx, sessionID)
	if err != nil {
		return domain.AddressSelection{}, fmt.Errorf("%s: %w", op, err)
	}

	if strings.TrimSpace(text) == "" {
		return domain.AddressSelection{}, fmt.Errorf("%s: %w", op, domain.ErrEmptyAddress)
	}

	all, err := s.backend.AddAddress(ctx, sess.Token, text)
	if err != nil {
		return domain.AddressSelection{}, fmt.Errorf("%s: %w", op, err)
	}

	v := s.views.get(sessionID)
	return v.setAddresses(func(cur domain.AddressSelection) domain.AddressSelection {
		return cur.Replace(all)
	}), nil
}

// DeleteAddress removes an address. Deleting the selected address clears
// the selection.
func (s *Service) DeleteAddress(
	ctx context.Context, sessionID, addressID string,
) (domain.AddressSelection, error) {
	const op = "Service.DeleteAddress"

	sess, err := s.loggedInSession(ctx, sessionID)
	if err != nil {
		return domain.AddressSelection{}, fmt.Errorf("%s: %w", op, err)
	}

	all, err := s.backend.DeleteAddress(ctx, sess.Token, addressID)
	if err != nil {
		return domain.AddressSelection{}, fmt.Errorf("%s: %w", op, err)
	}

	v := s.views.get(sessionID)
	return v.setAddresses(func(cur domain.AddressSelection) domain.AddressSelection {
		return cur.Replace(all)
	}), nil
}

func (s *Service) SelectAddress(
	ctx context.Context, sessionID, addressID string,
) (domain.AddressSelection, error) {
	const op = "Service.SelectAddress"

	sess, err := s.loggedInSession(ctx, sessionID)
	if err != nil {
		return domain.AddressSelection{}, fmt.Errorf("%s: %w", op, err)
	}

	v := s.views.get(sessionID)

	addrs, ok := v.addressSelection()
	if !ok {
		if addrs, err = s.loadAddresses(ctx, sess, v); err != nil {
			return domain.AddressSelection{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	if !addrs.Has(addressID) {
		return domain.AddressSelection{}, fmt.Errorf("%s: %w", op, domain.ErrUnknownAddress)
	}

	return v.setAddresses(func(cur domain.AddressSelection) domain.AddressSelection {
		cur.Selected = addressID
		return cur
	}), nil
}

// Checkout validates the cart against the wallet and address selection and
// places the order.
//
// The stored balance changes only after the backend confirmed the order.
// It is refreshed from the backend when possible, otherwise decremented by
// the order total.
func (s *Service) Checkout(
	ctx context.Context, sessionID string,
) (domain.Order, error) {
	const op = "Service.Checkout"
	log := slog.With("op", op)

	sess, err := s.loggedInSession(ctx, sessionID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	v := s.views.get(sessionID)

	items, err := s.currentCart(ctx, sess, v)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	addrs, ok := v.addressSelection()
	if !ok {
		if addrs, err = s.loadAddresses(ctx, sess, v); err != nil {
			return domain.Order{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := domain.ValidateCheckout(items, sess.Balance, addrs); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.backend.Checkout(ctx, sess.Token, addrs.Selected); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	total := domain.TotalValue(items)
	order := domain.Order{
		AddressID: addrs.Selected,
		Total:     total,
		Balance:   s.balanceAfterOrder(ctx, sess, total),
	}

	err = s.kv.Set(ctx, sessionID, map[string]string{
		domain.SessionBalanceKey: strconv.Itoa(order.Balance),
	})
	if err != nil {
		log.Error("failed to store balance", "err", err)
	}

	v.resetCart()
	v.setAddresses(func(cur domain.AddressSelection) domain.AddressSelection {
		cur.Selected = ""
		return cur
	})

	s.emit(ctx, domain.ClientEvent{
		Type:      domain.OrderEvent,
		SessionID: sess.ID,
		Username:  sess.Username,
		AddressID: order.AddressID,
		Qty:       domain.TotalCount(items),
		Total:     total,
	})

	log.Info("order placed", "username", sess.Username, "total", total)
	return order, nil
}

func (s *Service) balanceAfterOrder(
	ctx context.Context, sess domain.Session, total int,
) int {
	const op = "Service.balanceAfterOrder"

	balance, ok, err := s.backend.Balance(ctx, sess.Token)
	if err != nil {
		slog.Warn("failed to refresh balance, using local value",
			"op", op, "err", err)
		return sess.Balance - total
	}
	if !ok {
		return sess.Balance - total
	}
	return balance
}

func (s *Service) ThanksPage(
	ctx context.Context, sessionID string,
) (domain.ThanksPage, error) {
	const op = "Service.ThanksPage"

	sess, err := s.loggedInSession(ctx, sessionID)
	if err != nil {
		return domain.ThanksPage{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.ThanksPage{Username: sess.Username, Balance: sess.Balance}, nil
}

func (s *Service) loadAddresses(
	ctx context.Context, sess domain.Session, v *view,
) (domain.AddressSelection, error) {
	const op = "Service.loadAddresses"

	all, err := s.backend.Addresses(ctx, sess.Token)
	if err != nil {
		return domain.AddressSelection{}, fmt.Errorf("%s: %w", op, err)
	}

	return v.setAddresses(func(cur domain.AddressSelection) domain.AddressSelection {
		return cur.Replace(all)
	}), nil
}
