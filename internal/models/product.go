// internal/models/product.go
package models

type Product struct {
	BaseModel
	Title       string `json:"title" gorm:"size:255;not null"`
	Price       int    `json:"price" gorm:"not null"` // minor currency units
	Description string `json:"description" gorm:"type:text"`
	ImagePath   string `json:"image_path" gorm:"size:512"` // cover image URL
	Stock       int    `json:"stock" gorm:"default:0"`     // used only when no variants exist

	// Relationships
	Images   []ProductImage   `json:"images,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Variants []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type ProductImage struct {
	BaseModel
	ProductID uint   `json:"product_id" gorm:"not null;index"`
	ImagePath string `json:"image_path" gorm:"size:512;not null"`
}

type ProductVariant struct {
	BaseModel
	ProductID uint   `json:"product_id" gorm:"not null;index"`
	Size      string `json:"size" gorm:"size:64"`
	Color     string `json:"color" gorm:"size:64"`
	Stock     int    `json:"stock" gorm:"default:0"`
}
