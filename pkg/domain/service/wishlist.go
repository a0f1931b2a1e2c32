package service

import (
	"sync"

	"storefront/pkg/domain/model"
)

type WishlistService interface {
	Initialize() error
	// Toggle adds the product when absent and removes it when present.
	// It reports whether the product ended up in the wishlist.
	Toggle(product model.Product) (bool, error)
	Add(product model.Product) error
	Remove(productID string) error
	Clear() error
	Items() []model.Product
	Contains(productID string) bool
}

func NewWishlistService(slots model.SlotStore, dispatcher EventDispatcher) WishlistService {
	return &wishlistService{slots: slots, dispatcher: dispatcher}
}

type wishlistService struct {
	mu         sync.Mutex
	items      []model.Product
	slots      model.SlotStore
	dispatcher EventDispatcher
}

func (s *wishlistService) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snapshot model.WishlistSnapshot
	ok, err := s.slots.Load(model.SlotWishlist, &snapshot)
	if err != nil {
		return err
	}
	if !ok {
		s.items = nil
		return nil
	}
	s.items = snapshot.Items
	return nil
}

func (s *wishlistService) Toggle(product model.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(product.ID) >= 0 {
		if err := s.remove(product.ID); err != nil {
			return true, err
		}
		_ = s.dispatcher.Dispatch(model.WishlistToggled{ProductID: product.ID, Added: false})
		return false, nil
	}

	s.items = append(s.items, product)
	if err := s.persist(); err != nil {
		return false, err
	}
	_ = s.dispatcher.Dispatch(model.WishlistToggled{ProductID: product.ID, Added: true})
	return true, nil
}

func (s *wishlistService) Add(product model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Set semantics: adding a present product is a no-op.
	if s.indexOf(product.ID) >= 0 {
		return nil
	}

	s.items = append(s.items, product)
	return s.persist()
}

func (s *wishlistService) Remove(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(productID) < 0 {
		return nil
	}
	return s.remove(productID)
}

func (s *wishlistService) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.persist()
}

func (s *wishlistService) Items() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.Product, len(s.items))
	copy(items, s.items)
	return items
}

func (s *wishlistService) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(productID) >= 0
}

func (s *wishlistService) indexOf(productID string) int {
	for i := range s.items {
		if s.items[i].ID == productID {
			return i
		}
	}
	return -1
}

// remove and persist; callers hold the lock.
func (s *wishlistService) remove(productID string) error {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID == productID {
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	return s.persist()
}

func (s *wishlistService) persist() error {
	return s.slots.Save(model.SlotWishlist, model.WishlistSnapshot{Items: s.items})
}
