package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
)

func setupCheckout(t *testing.T) (service.CheckoutService, service.CartService, *mockOrderRepository, *mockEventDispatcher, *[]time.Duration) {
	t.Helper()
	dispatcher := &mockEventDispatcher{}
	cart := service.NewCartService(newMockSlotStore(), dispatcher)
	orders := newMockOrderRepository()

	var slept []time.Duration
	sleep := func(_ context.Context, d time.Duration) { slept = append(slept, d) }

	now := func() time.Time { return time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC) }
	checkout := service.NewCheckoutService(cart, orders, dispatcher, time.Second, sleep, now)
	return checkout, cart, orders, dispatcher, &slept
}

func TestPlaceOrder(t *testing.T) {
	checkout, cart, orders, dispatcher, slept := setupCheckout(t)
	require.NoError(t, cart.AddItem(product("p1", "Widget", 20), 1))
	dispatcher.Reset()

	order, err := checkout.PlaceOrder(context.Background(), service.CheckoutDetails{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@mail.com",
	})

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, model.OrderPending, order.Status)
	assert.Equal(t, "Jane Doe", order.Customer)
	assert.InDelta(t, 20, order.Subtotal, 1e-9)
	assert.InDelta(t, 10, order.Shipping, 1e-9)
	assert.InDelta(t, 30, order.Total, 1e-9)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "p1", order.Items[0].ProductID)

	// The simulated processing delay ran on the injected clock.
	require.Len(t, *slept, 1)
	assert.Equal(t, time.Second, (*slept)[0])

	assert.Empty(t, cart.Items(), "checkout removes the ordered items")

	saved, err := orders.Find(order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, saved.Status)

	var placed bool
	for _, event := range dispatcher.events {
		if _, ok := event.(model.OrderPlaced); ok {
			placed = true
		}
	}
	assert.True(t, placed)
}

func TestPlaceOrderKeepsItemsAddedDuringProcessing(t *testing.T) {
	dispatcher := &mockEventDispatcher{}
	cart := service.NewCartService(newMockSlotStore(), dispatcher)
	orders := newMockOrderRepository()

	late := product("p2", "Gadget", 5)
	sleep := func(context.Context, time.Duration) {
		require.NoError(t, cart.AddItem(late, 1))
	}
	checkout := service.NewCheckoutService(cart, orders, dispatcher, time.Second, sleep, nil)
	require.NoError(t, cart.AddItem(product("p1", "Widget", 20), 1))

	order, err := checkout.PlaceOrder(context.Background(), service.CheckoutDetails{FirstName: "Jane"})
	require.NoError(t, err)

	// The order captures the cart as it was when checkout started.
	require.Len(t, order.Items, 1)
	assert.Equal(t, "p1", order.Items[0].ProductID)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].Product.ID)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	checkout, _, _, _, slept := setupCheckout(t)

	_, err := checkout.PlaceOrder(context.Background(), service.CheckoutDetails{})

	assert.ErrorIs(t, err, model.ErrEmptyCart)
	assert.Empty(t, *slept, "no processing delay for a rejected order")
}

func TestSetOrderStatus(t *testing.T) {
	checkout, cart, _, dispatcher, _ := setupCheckout(t)
	require.NoError(t, cart.AddItem(product("p1", "Widget", 20), 1))
	order, err := checkout.PlaceOrder(context.Background(), service.CheckoutDetails{FirstName: "Jane"})
	require.NoError(t, err)
	dispatcher.Reset()

	t.Run("Success", func(t *testing.T) {
		require.NoError(t, checkout.SetStatus(order.ID, model.OrderCompleted))

		orders, err := checkout.Orders()
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, model.OrderCompleted, orders[0].Status)

		require.Len(t, dispatcher.events, 1)
		event, ok := dispatcher.events[0].(model.OrderStatusChanged)
		require.True(t, ok)
		assert.Equal(t, model.OrderPending, event.OldStatus)
		assert.Equal(t, model.OrderCompleted, event.NewStatus)
	})

	t.Run("Same status is a no-op", func(t *testing.T) {
		dispatcher.Reset()
		require.NoError(t, checkout.SetStatus(order.ID, model.OrderCompleted))
		assert.Empty(t, dispatcher.events)
	})

	t.Run("Invalid status", func(t *testing.T) {
		assert.ErrorIs(t, checkout.SetStatus(order.ID, "shipped?"), model.ErrInvalidOrderStatus)
	})

	t.Run("Unknown order", func(t *testing.T) {
		assert.ErrorIs(t, checkout.SetStatus("missing", model.OrderCancelled), model.ErrOrderNotFound)
	})
}
