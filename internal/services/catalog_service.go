// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/littlethreads/storefront/internal/models"
	"github.com/littlethreads/storefront/internal/utils"
)

type CatalogService struct {
	db      *gorm.DB
	storage *StorageService
}

// ProductSummary is a product with its resolved total stock: the sum of
// variant stocks, falling back to the product-level figure when no
// variants exist.
type ProductSummary struct {
	models.Product
	TotalStock int `json:"total_stock"`
}

type ProductDetail struct {
	Product  models.Product
	Gallery  []string
	Variants []models.ProductVariant
}

type VariantInput struct {
	Size  string
	Color string
	Stock int
}

type CreateProductInput struct {
	Title       string `validate:"required"`
	Price       int    `validate:"min=0"`
	Description string
	Stock       int `validate:"min=0"`
	Variants    []VariantInput
}

func NewCatalogService(db *gorm.DB, storage *StorageService) *CatalogService {
	return &CatalogService{
		db:      db,
		storage: storage,
	}
}

// ListProducts returns all products newest-first. The correlated
// subquery is plain SQL-92 so it runs unchanged on both backends.
func (s *CatalogService) ListProducts() ([]ProductSummary, error) {
	var products []ProductSummary
	err := s.db.Model(&models.Product{}).
		Select("products.*, COALESCE((SELECT SUM(stock) FROM product_variants WHERE product_variants.product_id = products.id), products.stock) AS total_stock").
		Order("products.created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProductDetail returns the product, its gallery and its variants.
// The gallery order is randomized per request; it is display-only and
// never persisted.
func (s *CatalogService) GetProductDetail(id uint) (*ProductDetail, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var images []models.ProductImage
	if err := s.db.Where("product_id = ?", product.ID).Order("id DESC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}

	gallery := make([]string, 0, len(images))
	for _, img := range images {
		gallery = append(gallery, img.ImagePath)
	}
	if len(gallery) == 0 && product.ImagePath != "" {
		gallery = []string{product.ImagePath}
	}
	rand.Shuffle(len(gallery), func(i, j int) {
		gallery[i], gallery[j] = gallery[j], gallery[i]
	})

	var variants []models.ProductVariant
	if err := s.db.Where("product_id = ?", product.ID).Order("id ASC").Find(&variants).Error; err != nil {
		return nil, fmt.Errorf("failed to load variants: %w", err)
	}

	return &ProductDetail{
		Product:  product,
		Gallery:  gallery,
		Variants: variants,
	}, nil
}

// CreateProduct creates the product row and its variant rows. Variant
// rows need at least a size or a color; stock is clamped at zero.
func (s *CatalogService) CreateProduct(in CreateProductInput) (*models.Product, error) {
	if err := utils.ValidateStruct(&in); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product := &models.Product{
		Title:       in.Title,
		Price:       in.Price,
		Description: in.Description,
		Stock:       in.Stock,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		for _, v := range in.Variants {
			if v.Size == "" && v.Color == "" {
				continue
			}
			stock := v.Stock
			if stock < 0 {
				stock = 0
			}
			variant := &models.ProductVariant{
				ProductID: product.ID,
				Size:      v.Size,
				Color:     v.Color,
				Stock:     stock,
			}
			if err := tx.Create(variant).Error; err != nil {
				return fmt.Errorf("failed to create variant: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// AttachImages records uploaded gallery URLs for a product. The first
// image becomes the cover when none is set yet.
func (s *CatalogService) AttachImages(productID uint, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		for _, u := range urls {
			img := &models.ProductImage{ProductID: productID, ImagePath: u}
			if err := tx.Create(img).Error; err != nil {
				return fmt.Errorf("failed to record image: %w", err)
			}
		}

		if product.ImagePath == "" {
			if err := tx.Model(&product).Update("image_path", urls[0]).Error; err != nil {
				return fmt.Errorf("failed to set cover image: %w", err)
			}
		}

		return nil
	})
}

// DeleteProduct removes the product; the database cascades to images and
// variants, and stored objects are cleaned up best-effort afterwards.
func (s *CatalogService) DeleteProduct(id uint) error {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	var images []models.ProductImage
	if err := s.db.Where("product_id = ?", id).Find(&images).Error; err != nil {
		return fmt.Errorf("failed to load images: %w", err)
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if s.storage != nil {
		for _, img := range images {
			if err := s.storage.Delete(img.ImagePath); err != nil {
				logrus.WithError(err).WithField("url", img.ImagePath).Warn("Failed to delete stored image")
			}
		}
		if product.ImagePath != "" {
			if err := s.storage.Delete(product.ImagePath); err != nil {
				logrus.WithError(err).WithField("url", product.ImagePath).Warn("Failed to delete cover image")
			}
		}
	}

	return nil
}
