package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/app/repositories"
	"github.com/shringarlabs/shringar/pkg/database"
	"github.com/shringarlabs/shringar/pkg/errs"
)

func seedFilterCatalog(t *testing.T) {
	t.Helper()
	products := []models.Product{
		{Slug: "ubtan", Name: "Herbal Ubtan", Price: 299, Category: "skincare", Tags: []string{"face", "bestseller"}, InStock: true},
		{Slug: "kumkumadi-oil", Name: "Kumkumadi Oil", Price: 549, Category: "skincare", Tags: []string{"face"}, InStock: true},
		{Slug: "kajal", Name: "Herbal Kajal", Price: 149, Category: "makeup", Tags: []string{"eyes", "bestseller"}, InStock: true},
		{Slug: "hair-oil", Name: "Bhringraj Hair Oil", Price: 399, Category: "haircare", Tags: []string{"hair"}, InStock: false},
	}
	for i := range products {
		require.NoError(t, database.DB.Create(&products[i]).Error)
	}
}

func TestProductListFilters(t *testing.T) {
	setupTestDB(t)
	seedFilterCatalog(t)
	svc := NewProductService()

	byCategory, _, err := svc.List(repositories.ProductQuery{Category: "skincare"})
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	byTag, _, err := svc.List(repositories.ProductQuery{Tag: "bestseller"})
	require.NoError(t, err)
	require.Len(t, byTag, 2)

	inStock := true
	available, _, err := svc.List(repositories.ProductQuery{InStock: &inStock})
	require.NoError(t, err)
	assert.Len(t, available, 3)

	midRange, _, err := svc.List(repositories.ProductQuery{MinPrice: 200, MaxPrice: 400})
	require.NoError(t, err)
	require.Len(t, midRange, 2)
	for _, p := range midRange {
		assert.GreaterOrEqual(t, p.Price, int64(200))
		assert.LessOrEqual(t, p.Price, int64(400))
	}

	paged, pagination, err := svc.List(repositories.ProductQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, paged, 2)
	assert.Equal(t, int64(4), pagination.Total)
}

func TestProductCreateDuplicateSlugConflicts(t *testing.T) {
	setupTestDB(t)
	svc := NewProductService()

	_, err := svc.Create(ProductInput{Slug: "rose-water", Name: "Rose Water", Price: 199})
	require.NoError(t, err)

	_, err = svc.Create(ProductInput{Slug: "rose-water", Name: "Another Rose Water", Price: 249})
	var conflict *errs.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "rose-water", conflict.Ref)
}

func TestProductSetStock(t *testing.T) {
	setupTestDB(t)
	seedFilterCatalog(t)
	svc := NewProductService()

	updated, err := svc.SetStock("hair-oil", true)
	require.NoError(t, err)
	assert.True(t, updated.InStock)

	stored, err := svc.Get("hair-oil")
	require.NoError(t, err)
	assert.True(t, stored.InStock)
}
