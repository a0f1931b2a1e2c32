package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"storefront/pkg/domain/model"
)

type CatalogService interface {
	// Refresh replaces the catalog with the feed's listing. While a refresh
	// is in flight Loading reports true. On failure the prior list is kept
	// and Err reports the failure. There is no retry.
	Refresh(ctx context.Context) error
	List() []model.Product
	Get(ctx context.Context, id string) (*model.Product, error)
	Add(product model.Product) (*model.Product, error)
	Update(product model.Product) error
	Remove(id string) error
	Loading() bool
	Err() error
	Reset()
}

func NewCatalogService(feed model.ProductFeed, dispatcher EventDispatcher) CatalogService {
	return &catalogService{feed: feed, dispatcher: dispatcher}
}

type catalogService struct {
	mu         sync.Mutex
	products   []model.Product
	loading    bool
	lastErr    error
	generation uint64

	group      singleflight.Group
	feed       model.ProductFeed
	dispatcher EventDispatcher
}

func (s *catalogService) Refresh(ctx context.Context) error {
	_, err, _ := s.group.Do("refresh", func() (any, error) {
		s.mu.Lock()
		s.generation++
		generation := s.generation
		s.loading = true
		s.lastErr = nil
		s.mu.Unlock()

		products, err := s.feed.FetchAll(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()

		// A reset or a newer refresh owns the state now; discard this
		// completion instead of clobbering it.
		if generation != s.generation {
			return nil, err
		}

		s.loading = false
		if err != nil {
			s.lastErr = err
			return nil, err
		}
		s.products = products
		return nil, nil
	})
	return err
}

func (s *catalogService) List() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]model.Product, len(s.products))
	copy(products, s.products)
	return products
}

// Get looks the product up in the held list first and falls back to a single
// feed request. An absent product is a normal outcome, reported as (nil, nil).
func (s *catalogService) Get(ctx context.Context, id string) (*model.Product, error) {
	s.mu.Lock()
	for i := range s.products {
		if s.products[i].ID == id {
			product := s.products[i]
			s.mu.Unlock()
			return &product, nil
		}
	}
	s.mu.Unlock()

	if s.feed == nil {
		return nil, nil
	}
	return s.feed.FetchByID(ctx, id)
}

func (s *catalogService) Add(product model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if strings.EqualFold(s.products[i].Title, product.Title) {
			return nil, model.ErrDuplicateTitle
		}
	}

	product.ID = uuid.NewString()
	s.products = append(s.products, product)

	_ = s.dispatcher.Dispatch(model.ProductAdded{ProductID: product.ID, Title: product.Title})
	return &product, nil
}

// Update replaces the whole record; the storefront never mutates a product
// in place.
func (s *catalogService) Update(product model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == product.ID {
			s.products[i] = product
			return nil
		}
	}
	return model.ErrProductNotFound
}

func (s *catalogService) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			_ = s.dispatcher.Dispatch(model.ProductRemoved{ProductID: id})
			return nil
		}
	}
	return model.ErrProductNotFound
}

func (s *catalogService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *catalogService) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Reset empties the catalog and invalidates any in-flight refresh.
func (s *catalogService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.products = nil
	s.loading = false
	s.lastErr = nil
}
