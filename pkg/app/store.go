// Package app wires the storefront's stores into one context object
// constructed at process start. There is no hidden global; tests build as
// many isolated stores as they need.
package app

import (
	"context"
	"time"

	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
)

type Config struct {
	// StartAuthenticated logs the seeded admin in at construction. Demo
	// behavior; defaults to logged out.
	StartAuthenticated bool
}

type Store struct {
	Catalog    service.CatalogService
	Cart       service.CartService
	Wishlist   service.WishlistService
	Session    service.SessionService
	Checkout   service.CheckoutService
	Categories service.CategoryService

	resetters []resetter
}

// resetter is a slice's reset hook plus its declared reset scope. Slices
// that survive a logout reset keep their state; everything else returns to
// its empty shape.
type resetter struct {
	reset          func() error
	survivesLogout bool
}

type Deps struct {
	Feed       model.ProductFeed
	Slots      model.SlotStore
	Tokens     model.SlotStore
	Orders     model.OrderRepository
	Dispatcher service.EventDispatcher
	Checkout   CheckoutDeps
}

type CheckoutDeps struct {
	ProcessingDelay time.Duration
	Sleep           service.SleepFunc
	Now             func() time.Time
}

func New(cfg Config, deps Deps) *Store {
	if deps.Tokens == nil {
		deps.Tokens = deps.Slots
	}

	catalog := service.NewCatalogService(deps.Feed, deps.Dispatcher)
	cart := service.NewCartService(deps.Slots, deps.Dispatcher)
	wishlist := service.NewWishlistService(deps.Slots, deps.Dispatcher)
	session := service.NewSessionService(service.SessionConfig{
		StartAuthenticated: cfg.StartAuthenticated,
	}, deps.Tokens, deps.Dispatcher)
	checkout := service.NewCheckoutService(
		cart,
		deps.Orders,
		deps.Dispatcher,
		deps.Checkout.ProcessingDelay,
		deps.Checkout.Sleep,
		deps.Checkout.Now,
	)
	categories := service.NewCategoryService(catalog.List)

	s := &Store{
		Catalog:    catalog,
		Cart:       cart,
		Wishlist:   wishlist,
		Session:    session,
		Checkout:   checkout,
		Categories: categories,
	}

	s.resetters = []resetter{
		{reset: func() error { return nil }, survivesLogout: true}, // session
		{reset: cart.Clear},
		{reset: wishlist.Clear},
		{reset: func() error { catalog.Reset(); return nil }},
	}
	return s
}

// Initialize rehydrates the persisted slices. Called once at process start.
func (s *Store) Initialize() error {
	if err := s.Cart.Initialize(); err != nil {
		return err
	}
	return s.Wishlist.Initialize()
}

// Logout ends the session and resets every slice that does not survive a
// logout reset.
func (s *Store) Logout() error {
	if err := s.Session.Logout(); err != nil {
		return err
	}
	return s.ResetScope()
}

// ResetScope resets the non-surviving slices.
func (s *Store) ResetScope() error {
	for _, r := range s.resetters {
		if r.survivesLogout {
			continue
		}
		if err := r.reset(); err != nil {
			return err
		}
	}
	return nil
}

// RefreshCatalog is a convenience for startup wiring.
func (s *Store) RefreshCatalog(ctx context.Context) error {
	return s.Catalog.Refresh(ctx)
}
