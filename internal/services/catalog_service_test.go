// internal/services/catalog_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlethreads/storefront/internal/models"
)

func TestListProductsTotalStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil)

	plain := createTestProduct(t, db, "Plain", 1000, 7)
	withVariants := createTestProduct(t, db, "Sized", 1500, 99)
	createTestVariant(t, db, withVariants.ID, "S", "", 2)
	createTestVariant(t, db, withVariants.ID, "M", "", 3)

	products, err := svc.ListProducts()
	require.NoError(t, err)
	require.Len(t, products, 2)

	byID := map[uint]ProductSummary{}
	for _, p := range products {
		byID[p.ID] = p
	}

	// Variant stocks win over the product-level figure when present.
	assert.Equal(t, 7, byID[plain.ID].TotalStock)
	assert.Equal(t, 5, byID[withVariants.ID].TotalStock)
}

func TestGetProductDetail(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil)

	product := createTestProduct(t, db, "Romper", 1000, 5)
	require.NoError(t, db.Create(&models.ProductImage{ProductID: product.ID, ImagePath: "/uploads/products/1/a.jpg"}).Error)
	require.NoError(t, db.Create(&models.ProductImage{ProductID: product.ID, ImagePath: "/uploads/products/1/b.jpg"}).Error)
	createTestVariant(t, db, product.ID, "S", "Blue", 2)

	detail, err := svc.GetProductDetail(product.ID)
	require.NoError(t, err)

	assert.Equal(t, "Romper", detail.Product.Title)
	assert.ElementsMatch(t, []string{"/uploads/products/1/a.jpg", "/uploads/products/1/b.jpg"}, detail.Gallery)
	require.Len(t, detail.Variants, 1)
	assert.Equal(t, "S", detail.Variants[0].Size)
}

func TestGetProductDetailCoverFallback(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil)

	product := &models.Product{Title: "Romper", Price: 1000, ImagePath: "/uploads/cover.jpg"}
	require.NoError(t, db.Create(product).Error)

	detail, err := svc.GetProductDetail(product.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/cover.jpg"}, detail.Gallery)
}

func TestGetProductDetailNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil)

	_, err := svc.GetProductDetail(404)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateProductWithVariants(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil)

	product, err := svc.CreateProduct(CreateProductInput{
		Title: "Tee",
		Price: 800,
		Variants: []VariantInput{
			{Size: "S", Color: "Blue", Stock: 2},
			{Size: "", Color: "", Stock: 10}, // blank form row, skipped
			{Size: "M", Stock: -3},           // clamped to zero
		},
	})
	require.NoError(t, err)

	var variants []models.ProductVariant
	require.NoError(t, db.Where("product_id = ?", product.ID).Order("id ASC").Find(&variants).Error)
	require.Len(t, variants, 2)
	assert.Equal(t, "S", variants[0].Size)
	assert.Equal(t, 0, variants[1].Stock)
}

func TestCreateProductValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil)

	_, err := svc.CreateProduct(CreateProductInput{Price: 100})
	assert.Error(t, err)

	_, err = svc.CreateProduct(CreateProductInput{Title: "Tee", Price: -1})
	assert.Error(t, err)
}

func TestAttachImagesSetsCover(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil)
	product := createTestProduct(t, db, "Tee", 800, 1)

	urls := []string{"/uploads/products/1/a.jpg", "/uploads/products/1/b.jpg"}
	require.NoError(t, svc.AttachImages(product.ID, urls))

	var fresh models.Product
	require.NoError(t, db.First(&fresh, product.ID).Error)
	assert.Equal(t, urls[0], fresh.ImagePath)

	// A later batch must not displace the existing cover.
	require.NoError(t, svc.AttachImages(product.ID, []string{"/uploads/products/1/c.jpg"}))
	require.NoError(t, db.First(&fresh, product.ID).Error)
	assert.Equal(t, urls[0], fresh.ImagePath)

	var count int64
	require.NoError(t, db.Model(&models.ProductImage{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestDeleteProductCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil)

	product := createTestProduct(t, db, "Tee", 800, 1)
	require.NoError(t, db.Create(&models.ProductImage{ProductID: product.ID, ImagePath: "/uploads/a.jpg"}).Error)
	createTestVariant(t, db, product.ID, "S", "", 1)

	require.NoError(t, svc.DeleteProduct(product.ID))

	var imageCount, variantCount int64
	require.NoError(t, db.Model(&models.ProductImage{}).Where("product_id = ?", product.ID).Count(&imageCount).Error)
	require.NoError(t, db.Model(&models.ProductVariant{}).Where("product_id = ?", product.ID).Count(&variantCount).Error)
	assert.Zero(t, imageCount)
	assert.Zero(t, variantCount)

	assert.ErrorIs(t, svc.DeleteProduct(product.ID), ErrProductNotFound)
}
