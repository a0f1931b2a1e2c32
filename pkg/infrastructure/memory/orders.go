// Package memory holds the in-process repositories.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/pkg/domain/model"
)

type OrderRepository struct {
	mu     sync.Mutex
	orders []*model.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) NextID() (string, error) {
	return uuid.NewString(), nil
}

func (r *OrderRepository) Create(order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *order
	r.orders = append(r.orders, &copied)
	return nil
}

func (r *OrderRepository) Update(order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == order.ID {
			copied := *order
			r.orders[i] = &copied
			return nil
		}
	}
	return model.ErrOrderNotFound
}

func (r *OrderRepository) Find(id string) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range r.orders {
		if order.ID == id {
			copied := *order
			return &copied, nil
		}
	}
	return nil, model.ErrOrderNotFound
}

func (r *OrderRepository) List() ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := make([]model.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, *order)
	}
	return orders, nil
}

// Seed installs orders without touching existing ones. Used for the admin
// console demo data.
func (r *OrderRepository) Seed(orders []model.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range orders {
		copied := orders[i]
		r.orders = append(r.orders, &copied)
	}
}

// DemoOrders is the admin console's sample order book.
func DemoOrders() []model.Order {
	return []model.Order{
		{
			ID:       "ORD-001",
			Customer: "John Doe",
			Email:    "john.doe@example.com",
			Status:   model.OrderCompleted,
			Items: []model.OrderItem{
				{ProductID: "1", Title: "Wireless Headphones", Quantity: 1, Price: 89.99},
				{ProductID: "2", Title: "Phone Case", Quantity: 1, Price: 39.99},
			},
			Subtotal:  129.98,
			Shipping:  0,
			Total:     129.98,
			CreatedAt: time.Date(2023, time.April, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:       "ORD-002",
			Customer: "Jane Smith",
			Email:    "jane.smith@example.com",
			Status:   model.OrderProcessing,
			Items: []model.OrderItem{
				{ProductID: "3", Title: "Smart Watch", Quantity: 1, Price: 199.99},
				{ProductID: "4", Title: "Charging Cable", Quantity: 2, Price: 29.99},
			},
			Subtotal:  259.97,
			Shipping:  0,
			Total:     259.97,
			CreatedAt: time.Date(2023, time.April, 13, 0, 0, 0, 0, time.UTC),
		},
	}
}
