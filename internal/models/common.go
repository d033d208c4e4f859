// internal/models/common.go
package models

import (
	"time"
)

// Base model with common fields. Deletes are physical: the schema relies
// on FK cascade from products to images/variants, which a soft-delete
// column would bypass.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enums
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
)
