package service

import (
	"sync"

	"storefront/pkg/domain/model"
)

// Shipping is free above this subtotal, otherwise a flat rate applies.
// Fixed business constants of the storefront.
const (
	freeShippingThreshold = 100
	flatShippingRate      = 10
)

type CartService interface {
	Initialize() error
	AddItem(product model.Product, quantity int) error
	RemoveItem(productID string) error
	SetQuantity(productID string, quantity int) error
	Clear() error
	Items() []model.CartEntry
	Totals() model.CartTotals
}

func NewCartService(slots model.SlotStore, dispatcher EventDispatcher) CartService {
	return &cartService{slots: slots, dispatcher: dispatcher}
}

type cartService struct {
	mu         sync.Mutex
	items      []model.CartEntry
	slots      model.SlotStore
	dispatcher EventDispatcher
}

func (s *cartService) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snapshot model.CartSnapshot
	ok, err := s.slots.Load(model.SlotCart, &snapshot)
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

func (s *cartService) AddItem(product model.Product, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	newQuantity := quantity
	found := false
	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			s.items[i].Quantity += quantity
			newQuantity = s.items[i].Quantity
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, model.CartEntry{Product: product, Quantity: quantity})
	}

	if err := s.persist(); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.CartItemAdded{
		ProductID:   product.ID,
		Added:       quantity,
		NewQuantity: newQuantity,
	})
	return nil
}

func (s *cartService) RemoveItem(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	removed := false
	for _, entry := range s.items {
		if entry.Product.ID == productID {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	s.items = kept

	// Removing an absent entry is a valid no-op.
	if !removed {
		return nil
	}

	if err := s.persist(); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.CartItemRemoved{ProductID: productID})
	return nil
}

func (s *cartService) SetQuantity(productID string, quantity int) error {
	// The quantity floor is enforced here so the invariant holds regardless
	// of the caller.
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items[i].Quantity = quantity
			return s.persist()
		}
	}
	return nil
}

func (s *cartService) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	if err := s.persist(); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.CartCleared{})
	return nil
}

func (s *cartService) Items() []model.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.CartEntry, len(s.items))
	copy(items, s.items)
	return items
}

func (s *cartService) Totals() model.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()

	var subtotal float64
	for _, entry := range s.items {
		subtotal += entry.Product.Price * float64(entry.Quantity)
	}

	shipping := float64(flatShippingRate)
	if subtotal > freeShippingThreshold {
		shipping = 0
	}

	return model.CartTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}

func (s *cartService) persist() error {
	return s.slots.Save(model.SlotCart, model.CartSnapshot{Items: s.items})
}
