package tests

import (
	"context"
	"encoding/json"

	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
)

type mockSlotStore struct {
	slots     map[string][]byte
	saveCount int
	failSave  error
}

func newMockSlotStore() *mockSlotStore {
	return &mockSlotStore{slots: make(map[string][]byte)}
}

func (m *mockSlotStore) Save(slot string, v any) error {
	if m.failSave != nil {
		return m.failSave
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.slots[slot] = data
	m.saveCount++
	return nil
}

func (m *mockSlotStore) Load(slot string, v any) (bool, error) {
	data, ok := m.slots[slot]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, nil
	}
	return true, nil
}

func (m *mockSlotStore) Delete(slot string) error {
	delete(m.slots, slot)
	return nil
}

func (m *mockSlotStore) preload(slot string, v any) {
	data, _ := json.Marshal(v)
	m.slots[slot] = data
}

type mockEventDispatcher struct {
	events []service.Event
}

func (m *mockEventDispatcher) Dispatch(event service.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventDispatcher) Reset() {
	m.events = nil
}

type mockFeed struct {
	products []model.Product
	err      error
	block    chan struct{}
	calls    int
}

func (m *mockFeed) FetchAll(_ context.Context) ([]model.Product, error) {
	m.calls++
	if m.block != nil {
		<-m.block
	}
	return m.products, m.err
}

func (m *mockFeed) FetchByID(_ context.Context, id string) (*model.Product, error) {
	for i := range m.products {
		if m.products[i].ID == id {
			product := m.products[i]
			return &product, nil
		}
	}
	return nil, nil
}

type mockOrderRepository struct {
	store  map[string]*model.Order
	nextID int
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{store: make(map[string]*model.Order)}
}

func (m *mockOrderRepository) NextID() (string, error) {
	m.nextID++
	return string(rune('A' + m.nextID - 1)), nil
}

func (m *mockOrderRepository) Create(order *model.Order) error {
	copied := *order
	m.store[order.ID] = &copied
	return nil
}

func (m *mockOrderRepository) Update(order *model.Order) error {
	if _, ok := m.store[order.ID]; !ok {
		return model.ErrOrderNotFound
	}
	copied := *order
	m.store[order.ID] = &copied
	return nil
}

func (m *mockOrderRepository) Find(id string) (*model.Order, error) {
	order, ok := m.store[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *mockOrderRepository) List() ([]model.Order, error) {
	orders := make([]model.Order, 0, len(m.store))
	for _, order := range m.store {
		orders = append(orders, *order)
	}
	return orders, nil
}
