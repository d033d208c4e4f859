// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/littlethreads/storefront/internal/models"
	"github.com/littlethreads/storefront/internal/utils"
)

type OrderService struct {
	db *gorm.DB
}

type PlaceOrderInput struct {
	ProductID  uint `validate:"required"`
	Quantity   int
	VariantID  uint
	BuyerName  string
	BuyerEmail string

	ShipName     string
	ShipPhone    string
	ShipPostcode string
	ShipAddr1    string
	ShipAddr2    string
	ShipMemo     string
}

// OrderWithProduct joins the product title for order listings; the title
// survives product deletion as NULL (rendered as a dash).
type OrderWithProduct struct {
	models.Order
	ProductTitle string `json:"product_title"`
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// PlaceOrder validates the request against current stock and records a
// pending order. Validation and insert run in one transaction so two
// concurrent orders cannot both pass against the same stock row and
// leave an unservable order behind. No stock moves here: inventory is
// decremented at fulfillment, when payment is confirmed.
func (s *OrderService) PlaceOrder(in PlaceOrderInput, principal *Principal) (*models.Order, error) {
	if err := utils.ValidateStruct(&in); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, in.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		amount := product.Price * qty

		var variants []models.ProductVariant
		if err := tx.Where("product_id = ?", product.ID).Find(&variants).Error; err != nil {
			return fmt.Errorf("failed to load variants: %w", err)
		}

		var variantID *uint
		var optionSize, optionColor string
		if len(variants) > 0 {
			var chosen *models.ProductVariant
			for i := range variants {
				if variants[i].ID == in.VariantID {
					chosen = &variants[i]
					break
				}
			}
			if chosen == nil {
				return ErrInvalidOption
			}
			if chosen.Stock < qty {
				return ErrInsufficientStock
			}
			id := chosen.ID
			variantID = &id
			optionSize = chosen.Size
			optionColor = chosen.Color
		} else if product.Stock < qty {
			return ErrInsufficientStock
		}

		// Session identity is authoritative; submitted form values are
		// fallback only.
		buyerName := in.BuyerName
		buyerEmail := in.BuyerEmail
		var userID *uint
		if principal != nil {
			uid := principal.ID
			userID = &uid
			if principal.Name != "" {
				buyerName = principal.Name
			}
			if principal.Email != "" {
				buyerEmail = principal.Email
			}
		}

		productID := product.ID
		order = &models.Order{
			ProductID:    &productID,
			UserID:       userID,
			VariantID:    variantID,
			OptionSize:   optionSize,
			OptionColor:  optionColor,
			Quantity:     qty,
			Amount:       amount,
			BuyerName:    buyerName,
			BuyerEmail:   buyerEmail,
			Status:       models.OrderStatusPending,
			ShipName:     in.ShipName,
			ShipPhone:    in.ShipPhone,
			ShipPostcode: in.ShipPostcode,
			ShipAddr1:    in.ShipAddr1,
			ShipAddr2:    in.ShipAddr2,
			ShipMemo:     in.ShipMemo,
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		order.Product = &product
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// MarkPaid transitions a pending order to paid and decrements the
// targeted stock row by the order quantity, floored at zero. The
// transition fires at most once: a repeated call returns
// ErrOrderAlreadyPaid without touching stock.
func (s *OrderService) MarkPaid(orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if order.Status == models.OrderStatusPaid {
			return ErrOrderAlreadyPaid
		}

		// CASE instead of GREATEST: portable across sqlite and postgres.
		decrement := gorm.Expr(
			"CASE WHEN stock >= ? THEN stock - ? ELSE 0 END",
			order.Quantity, order.Quantity,
		)

		if order.VariantID != nil {
			if err := tx.Model(&models.ProductVariant{}).
				Where("id = ?", *order.VariantID).
				UpdateColumn("stock", decrement).Error; err != nil {
				return fmt.Errorf("failed to decrement variant stock: %w", err)
			}
		} else if order.ProductID != nil {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", *order.ProductID).
				UpdateColumn("stock", decrement).Error; err != nil {
				return fmt.Errorf("failed to decrement product stock: %w", err)
			}
		}

		if err := tx.Model(&order).Update("status", models.OrderStatusPaid).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// ListUserOrders returns a buyer's own orders newest-first.
func (s *OrderService) ListUserOrders(userID uint) ([]OrderWithProduct, error) {
	var orders []OrderWithProduct
	err := s.db.Model(&models.Order{}).
		Select("orders.*, products.title AS product_title").
		Joins("LEFT JOIN products ON products.id = orders.product_id").
		Where("orders.user_id = ?", userID).
		Order("orders.created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListOrders returns all orders for the seller dashboard, paginated.
func (s *OrderService) ListOrders(params utils.PaginationParams) ([]OrderWithProduct, int64, error) {
	query := s.db.Model(&models.Order{}).
		Select("orders.*, products.title AS product_title").
		Joins("LEFT JOIN products ON products.id = orders.product_id")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"orders.created_at", "orders.status", "orders.amount"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []OrderWithProduct
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, total, nil
}
