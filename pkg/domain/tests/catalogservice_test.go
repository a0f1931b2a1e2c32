package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
)

func TestRefresh(t *testing.T) {
	feed := &mockFeed{products: []model.Product{
		product("1", "Widget", 49.5),
		product("2", "Gadget", 15),
	}}
	catalog := service.NewCatalogService(feed, &mockEventDispatcher{})

	require.NoError(t, catalog.Refresh(context.Background()))

	assert.Len(t, catalog.List(), 2)
	assert.False(t, catalog.Loading())
	assert.NoError(t, catalog.Err())
}

func TestRefreshFailureKeepsPriorList(t *testing.T) {
	feed := &mockFeed{products: []model.Product{product("1", "Widget", 49.5)}}
	catalog := service.NewCatalogService(feed, &mockEventDispatcher{})
	require.NoError(t, catalog.Refresh(context.Background()))

	feed.err = errors.New("feed unavailable")
	err := catalog.Refresh(context.Background())

	require.Error(t, err)
	assert.Len(t, catalog.List(), 1, "prior list is retained on failure")
	assert.Error(t, catalog.Err())
	assert.False(t, catalog.Loading())
}

func TestStaleRefreshIsDiscarded(t *testing.T) {
	feed := &mockFeed{
		products: []model.Product{product("1", "Widget", 49.5)},
		block:    make(chan struct{}),
	}
	catalog := service.NewCatalogService(feed, &mockEventDispatcher{})

	done := make(chan error, 1)
	go func() { done <- catalog.Refresh(context.Background()) }()

	require.Eventually(t, catalog.Loading, time.Second, 5*time.Millisecond)

	// The consumer lost interest before the fetch completed.
	catalog.Reset()
	close(feed.block)
	require.NoError(t, <-done)

	assert.Empty(t, catalog.List(), "a stale completion must not repopulate the catalog")
	assert.False(t, catalog.Loading())
}

func TestAddProduct(t *testing.T) {
	catalog := service.NewCatalogService(&mockFeed{}, &mockEventDispatcher{})
	_, err := catalog.Add(model.Product{Title: "widget", Price: 10})
	require.NoError(t, err)

	t.Run("Assigns a fresh id", func(t *testing.T) {
		added, err := catalog.Add(model.Product{Title: "gadget", Price: 5})
		require.NoError(t, err)
		assert.NotEmpty(t, added.ID)
	})

	t.Run("Rejects duplicate title regardless of case", func(t *testing.T) {
		_, err := catalog.Add(model.Product{Title: "Widget", Price: 12})
		assert.ErrorIs(t, err, model.ErrDuplicateTitle)
	})
}

func TestGetProduct(t *testing.T) {
	feed := &mockFeed{products: []model.Product{product("7", "Feed only", 3)}}
	catalog := service.NewCatalogService(feed, &mockEventDispatcher{})
	added, err := catalog.Add(model.Product{Title: "Held", Price: 10})
	require.NoError(t, err)

	t.Run("Held list first", func(t *testing.T) {
		got, err := catalog.Get(context.Background(), added.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Held", got.Title)
	})

	t.Run("Falls back to a single feed request", func(t *testing.T) {
		got, err := catalog.Get(context.Background(), "7")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Feed only", got.Title)
	})

	t.Run("Absent is a normal outcome", func(t *testing.T) {
		got, err := catalog.Get(context.Background(), "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestUpdateAndRemoveProduct(t *testing.T) {
	catalog := service.NewCatalogService(&mockFeed{}, &mockEventDispatcher{})
	added, err := catalog.Add(model.Product{Title: "Widget", Price: 10})
	require.NoError(t, err)

	t.Run("Update replaces the whole record", func(t *testing.T) {
		updated := *added
		updated.Price = 12.5
		require.NoError(t, catalog.Update(updated))

		got, err := catalog.Get(context.Background(), added.ID)
		require.NoError(t, err)
		assert.InDelta(t, 12.5, got.Price, 1e-9)
	})

	t.Run("Update unknown id", func(t *testing.T) {
		assert.ErrorIs(t, catalog.Update(model.Product{ID: "missing"}), model.ErrProductNotFound)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, catalog.Remove(added.ID))
		assert.ErrorIs(t, catalog.Remove(added.ID), model.ErrProductNotFound)
	})
}
