package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
)

func TestCategories(t *testing.T) {
	categories := service.NewCategoryService(nil)

	created, err := categories.Add("Home Audio")
	require.NoError(t, err)
	assert.Equal(t, "home-audio", created.Slug)

	t.Run("Duplicate name regardless of case", func(t *testing.T) {
		_, err := categories.Add("home audio")
		assert.ErrorIs(t, err, model.ErrDuplicateCategory)
	})

	t.Run("Rename", func(t *testing.T) {
		require.NoError(t, categories.Rename(created.ID, "Speakers"))
		list := categories.List()
		require.Len(t, list, 1)
		assert.Equal(t, "speakers", list[0].Slug)

		assert.ErrorIs(t, categories.Rename("missing", "X"), model.ErrCategoryNotFound)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, categories.Remove(created.ID))
		assert.Empty(t, categories.List())
		assert.ErrorIs(t, categories.Remove(created.ID), model.ErrCategoryNotFound)
	})
}

func TestCategoryProductCounts(t *testing.T) {
	products := func() []model.Product {
		return []model.Product{
			{ID: "p1", Title: "Lipstick", Category: "beauty"},
			{ID: "p2", Title: "Mascara", Category: "Beauty"},
			{ID: "p3", Title: "Sofa", Category: "furniture"},
		}
	}
	categories := service.NewCategoryService(products)

	_, err := categories.Add("Beauty")
	require.NoError(t, err)
	_, err = categories.Add("Home Audio")
	require.NoError(t, err)

	list := categories.List()
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].ProductCount, "tag match is case-insensitive")
	assert.Equal(t, 0, list[1].ProductCount)
}
