package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/jellydator/ttlcache/v3"
	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/pkg/debounce"
)

// A view holds the ephemeral page state of one session.
type view struct {
	mu          sync.Mutex
	products    domain.ProductsView
	hasProducts bool
	catalog     []domain.Product
	items       []domain.CartItem
	hasCart     bool
	addresses   domain.AddressSelection
	hasAddrs    bool
	appliedSeq  uint64

	seq       sequencer
	debouncer *debounce.Debouncer
}

// views keeps a view per session. A view expires after ttl without
// access and its pending search is cancelled.
type views struct {
	mu    sync.Mutex
	clock clock.Clock
	delay time.Duration
	cache *ttlcache.Cache[string, *view]
}

func newViews(c clock.Clock, delay, ttl time.Duration) *views {
	cache := ttlcache.New[string, *view](
		ttlcache.WithTTL[string, *view](ttl),
	)
	cache.OnEviction(func(
		_ context.Context, reason ttlcache.EvictionReason, it *ttlcache.Item[string, *view],
	) {
		it.Value().debouncer.Stop()
		if reason == ttlcache.EvictionReasonExpired {
			slog.Debug("idle view evicted", "op", "views.OnEviction")
		}
	})
	return &views{clock: c, delay: delay, cache: cache}
}

func (vs *views) get(sessionID string) *view {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if it := vs.cache.Get(sessionID); it != nil {
		return it.Value()
	}

	v := &view{
		debouncer: debounce.New(vs.delay, debounce.ClockOpt(vs.clock)),
	}
	vs.cache.Set(sessionID, v, ttlcache.DefaultTTL)
	return v
}

func (vs *views) drop(sessionID string) {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if it := vs.cache.Get(sessionID); it != nil {
		it.Value().debouncer.Stop()
	}
	vs.cache.Delete(sessionID)
}

// run deletes expired views until stop is called.
func (vs *views) run() {
	vs.cache.Start()
}

func (vs *views) stop() {
	vs.cache.Stop()
}

func (vs *views) stopAll() {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	for _, it := range vs.cache.Items() {
		it.Value().debouncer.Stop()
	}
	vs.cache.DeleteAll()
}

func (v *view) setCart(items []domain.CartItem) {
	v.mu.Lock()
	v.items = items
	v.hasCart = true
	v.mu.Unlock()
}

func (v *view) cart() ([]domain.CartItem, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.items, v.hasCart
}

func (v *view) resetCart() {
	v.mu.Lock()
	v.items = nil
	v.hasCart = false
	v.mu.Unlock()
}

func (v *view) setAddresses(fn func(domain.AddressSelection) domain.AddressSelection) domain.AddressSelection {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.addresses = fn(v.addresses)
	v.hasAddrs = true
	return v.addresses
}

func (v *view) addressSelection() (domain.AddressSelection, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.addresses, v.hasAddrs
}

func (v *view) cachedCatalog() []domain.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.catalog
}

func (v *view) setCatalog(ps []domain.Product) {
	v.mu.Lock()
	v.catalog = ps
	v.mu.Unlock()
}

func (v *view) productsView() (domain.ProductsView, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.products, v.hasProducts
}

// applyProducts stores pv unless a newer search was applied already.
// It reports whether pv was applied.
func (v *view) applyProducts(seq uint64, pv domain.ProductsView, full bool) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if seq <= v.appliedSeq {
		return false
	}
	v.appliedSeq = seq
	v.products = pv
	v.hasProducts = true
	if full {
		v.catalog = pv.Products
	}
	return true
}

// discardBefore marks seq as applied without changing the products, so
// responses of older searches are dropped.
func (v *view) discardBefore(seq uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if seq > v.appliedSeq {
		v.appliedSeq = seq
	}
}
