package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/niksmo/qkart/internal/core/domain"
	"golang.org/x/sync/singleflight"
)

func (s *Service) ProductsPage(
	ctx context.Context, sessionID string,
) (domain.ProductsPage, error) {
	const op = "Service.ProductsPage"

	sess, err := s.LoadSession(ctx, sessionID)
	if err != nil {
		return domain.ProductsPage{}, fmt.Errorf("%s: %w", op, err)
	}

	v := s.views.get(sessionID)

	pv, ok := v.productsView()
	if !ok {
		pv, err = s.search(ctx, sess, v, "")
		if err != nil {
			return domain.ProductsPage{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	page := domain.ProductsPage{
		ProductsView: pv,
		LoggedIn:     sess.LoggedIn(),
		Username:     sess.Username,
	}
	if !sess.LoggedIn() {
		return page, nil
	}

	items, err := s.loadCart(ctx, sess, v)
	if err != nil {
		return domain.ProductsPage{}, fmt.Errorf("%s: %w", op, err)
	}
	page.Cart = domain.NewCartView(items)
	return page, nil
}

// Search runs an immediate search. A blank query lists the full catalog.
func (s *Service) Search(
	ctx context.Context, sessionID, query string,
) (domain.ProductsView, error) {
	const op = "Service.Search"

	sess, err := s.LoadSession(ctx, sessionID)
	if err != nil {
		return domain.ProductsView{}, fmt.Errorf("%s: %w", op, err)
	}

	pv, err := s.search(ctx, sess, s.views.get(sessionID), query)
	if err != nil {
		return domain.ProductsView{}, fmt.Errorf("%s: %w", op, err)
	}
	return pv, nil
}

// ScheduleSearch debounces a keystroke of the search box. Only the last
// query of a burst is searched for, once the input pauses.
func (s *Service) ScheduleSearch(sessionID, query string) {
	v := s.views.get(sessionID)
	v.debouncer.Debounce(func() {
		s.debouncedSearch(sessionID, v, query)
	})
}

func (s *Service) debouncedSearch(sessionID string, v *view, query string) {
	const op = "Service.debouncedSearch"
	log := slog.With("op", op)

	ctx, cancel := context.WithTimeout(s.ctx, s.searchTimeout)
	defer cancel()

	sess, err := s.LoadSession(ctx, sessionID)
	if err != nil {
		log.Error("failed to load session", "err", err)
		return
	}

	if _, err := s.search(ctx, sess, v, query); err != nil {
		log.Warn("search failed", "err", err)
	}
}

// search fetches products for query and applies them to the view unless
// the response is older than the one on screen. It returns what is on
// screen afterwards.
func (s *Service) search(
	ctx context.Context, sess domain.Session, v *view, query string,
) (domain.ProductsView, error) {
	const op = "Service.search"
	log := slog.With("op", op)

	seq := v.seq.next()

	full := strings.TrimSpace(query) == ""
	var (
		ps  []domain.Product
		err error
	)
	if full {
		ps, err = s.backend.Products(ctx)
	} else {
		ps, err = s.backend.SearchProducts(ctx, query)
	}
	if err != nil {
		v.discardBefore(seq)
		return domain.ProductsView{}, fmt.Errorf("%s: %w", op, err)
	}

	pv := domain.ProductsView{Products: ps, Query: query}
	if len(ps) == 0 {
		pv.Notice = domain.NoProductsNotice
	}

	if !v.applyProducts(seq, pv, full) {
		log.Debug("stale search response discarded", "seq", seq, "query", query)
		current, _ := v.productsView()
		return current, nil
	}

	if !full {
		s.emit(ctx, domain.ClientEvent{
			Type:      domain.SearchEvent,
			SessionID: sess.ID,
			Username:  sess.Username,
			Query:     query,
			Results:   len(ps),
		})
	}
	return pv, nil
}

const catalogFetchKey = "catalog"

// catalog returns the full catalog cached by the view, fetching it once.
// Cart items are always joined with the full catalog, never with a search
// result.
func (s *Service) catalog(ctx context.Context, v *view) ([]domain.Product, error) {
	const op = "Service.catalog"

	if ps := v.cachedCatalog(); ps != nil {
		return ps, nil
	}

	// Misses of all sessions share one fetch, bounded by searchTimeout
	// and not by any single caller.
	ch := s.catalogFetch.DoChan(catalogFetchKey, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(
			context.WithoutCancel(ctx), s.searchTimeout,
		)
		defer cancel()
		return s.backend.Products(fetchCtx)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, fmt.Errorf("%s: %w", op, res.Err)
	}
	ps, _ := res.Val.([]domain.Product)
	if ps == nil {
		ps = []domain.Product{}
	}
	v.setCatalog(ps)
	return ps, nil
}
