package service

import (
	"context"
	"fmt"

	"github.com/niksmo/qkart/internal/core/domain"
)

func (s *Service) CartView(
	ctx context.Context, sessionID string,
) (domain.CartView, error) {
	const op = "Service.CartView"

	sess, err := s.loggedInSession(ctx, sessionID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.loadCart(ctx, sess, s.views.get(sessionID))
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.NewCartView(items), nil
}

// AddToCart sets the quantity of productID in the cart.
//
// The view cart is replaced with the server response only when the upsert
// succeeds.
func (s *Service) AddToCart(
	ctx context.Context,
	sessionID, productID string,
	qty int,
	preventDuplicate bool,
) (domain.CartView, error) {
	const op = "Service.AddToCart"

	sess, err := s.loggedInSession(ctx, sessionID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	if qty < 0 {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, domain.ErrInvalidQuantity)
	}

	v := s.views.get(sessionID)

	if preventDuplicate {
		items, err := s.currentCart(ctx, sess, v)
		if err != nil {
			return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
		}
		if _, ok := domain.FindItem(items, productID); ok {
			return domain.CartView{}, fmt.Errorf("%s: %w", op, domain.ErrAlreadyInCart)
		}
	}

	items, err := s.upsert(ctx, sess, v, productID, qty)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.NewCartView(items), nil
}

// ChangeQuantity applies delta to the quantity of a cart item.
// Decrementing to zero sends zero to the server, which owns line removal.
func (s *Service) ChangeQuantity(
	ctx context.Context, sessionID, productID string, delta int,
) (domain.CartView, error) {
	const op = "Service.ChangeQuantity"

	sess, err := s.loggedInSession(ctx, sessionID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	v := s.views.get(sessionID)

	items, err := s.currentCart(ctx, sess, v)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	it, ok := domain.FindItem(items, productID)
	if !ok {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, domain.ErrItemNotInCart)
	}

	qty := it.Qty + delta
	if qty < 0 {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, domain.ErrInvalidQuantity)
	}

	items, err = s.upsert(ctx, sess, v, productID, qty)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.NewCartView(items), nil
}

func (s *Service) upsert(
	ctx context.Context,
	sess domain.Session,
	v *view,
	productID string,
	qty int,
) ([]domain.CartItem, error) {
	const op = "Service.upsert"

	lines, err := s.backend.UpsertCart(
		ctx, sess.Token, domain.CartLine{ProductID: productID, Qty: qty},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	catalog, err := s.catalog(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := domain.Reconcile(lines, catalog)
	v.setCart(items)

	s.emit(ctx, domain.ClientEvent{
		Type:      domain.CartUpdateEvent,
		SessionID: sess.ID,
		Username:  sess.Username,
		ProductID: productID,
		Qty:       qty,
		Total:     domain.TotalValue(items),
	})
	return items, nil
}

// currentCart returns the view cart, loading it on first use.
func (s *Service) currentCart(
	ctx context.Context, sess domain.Session, v *view,
) ([]domain.CartItem, error) {
	if items, ok := v.cart(); ok {
		return items, nil
	}
	return s.loadCart(ctx, sess, v)
}

// loadCart fetches the server cart and reconciles it with the catalog.
func (s *Service) loadCart(
	ctx context.Context, sess domain.Session, v *view,
) ([]domain.CartItem, error) {
	const op = "Service.loadCart"

	lines, err := s.backend.Cart(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	catalog, err := s.catalog(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := domain.Reconcile(lines, catalog)
	v.setCart(items)
	return items, nil
}
