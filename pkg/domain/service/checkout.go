package service

import (
	"context"
	"time"

	"storefront/pkg/domain/model"
)

type CheckoutDetails struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Address       model.Address
	PaymentMethod string
}

type CheckoutService interface {
	// PlaceOrder simulates payment processing, records the order and removes
	// the ordered items from the cart. An empty cart is rejected.
	PlaceOrder(ctx context.Context, details CheckoutDetails) (*model.Order, error)
	Orders() ([]model.Order, error)
	SetStatus(orderID string, status model.OrderStatus) error
}

// SleepFunc waits for the processing delay. Injectable so tests run on a
// fake clock.
type SleepFunc func(ctx context.Context, d time.Duration)

func SleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func NewCheckoutService(
	cart CartService,
	orders model.OrderRepository,
	dispatcher EventDispatcher,
	processingDelay time.Duration,
	sleep SleepFunc,
	now func() time.Time,
) CheckoutService {
	if sleep == nil {
		sleep = SleepContext
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &checkoutService{
		cart:            cart,
		orders:          orders,
		dispatcher:      dispatcher,
		processingDelay: processingDelay,
		sleep:           sleep,
		now:             now,
	}
}

type checkoutService struct {
	cart            CartService
	orders          model.OrderRepository
	dispatcher      EventDispatcher
	processingDelay time.Duration
	sleep           SleepFunc
	now             func() time.Time
}

func (s *checkoutService) PlaceOrder(ctx context.Context, details CheckoutDetails) (*model.Order, error) {
	entries := s.cart.Items()
	if len(entries) == 0 {
		return nil, model.ErrEmptyCart
	}
	totals := s.cart.Totals()

	s.sleep(ctx, s.processingDelay)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	orderID, err := s.orders.NextID()
	if err != nil {
		return nil, err
	}

	items := make([]model.OrderItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, model.OrderItem{
			ProductID: entry.Product.ID,
			Title:     entry.Product.Title,
			Quantity:  entry.Quantity,
			Price:     entry.Product.Price,
		})
	}

	order := &model.Order{
		ID:        orderID,
		Customer:  details.FirstName + " " + details.LastName,
		Email:     details.Email,
		Status:    model.OrderPending,
		Items:     items,
		Subtotal:  totals.Subtotal,
		Shipping:  totals.Shipping,
		Total:     totals.Total,
		CreatedAt: s.now(),
	}

	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	// Remove only the entries this order captured; items added while the
	// processing delay ran stay in the cart.
	for _, entry := range entries {
		if err := s.cart.RemoveItem(entry.Product.ID); err != nil {
			return nil, err
		}
	}

	_ = s.dispatcher.Dispatch(model.OrderPlaced{OrderID: order.ID, Total: order.Total})
	return order, nil
}

func (s *checkoutService) Orders() ([]model.Order, error) {
	return s.orders.List()
}

func (s *checkoutService) SetStatus(orderID string, status model.OrderStatus) error {
	if !status.Valid() {
		return model.ErrInvalidOrderStatus
	}

	order, err := s.orders.Find(orderID)
	if err != nil {
		return err
	}

	oldStatus := order.Status
	if oldStatus == status {
		return nil
	}

	order.Status = status
	if err := s.orders.Update(order); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.OrderStatusChanged{
		OrderID:   orderID,
		OldStatus: oldStatus,
		NewStatus: status,
	})
	return nil
}
