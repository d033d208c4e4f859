// internal/models/order.go
package models

type Order struct {
	BaseModel
	ProductID   *uint       `json:"product_id" gorm:"index"`
	UserID      *uint       `json:"user_id" gorm:"index"`
	VariantID   *uint       `json:"variant_id"`
	OptionSize  string      `json:"option_size" gorm:"size:64"`
	OptionColor string      `json:"option_color" gorm:"size:64"`
	Quantity    int         `json:"quantity" gorm:"not null"`
	Amount      int         `json:"amount" gorm:"not null"` // price * quantity at creation time
	BuyerName   string      `json:"buyer_name" gorm:"size:255"`
	BuyerEmail  string      `json:"buyer_email" gorm:"size:255"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(32);default:'pending';index"`

	// Shipping fields, added after the first release as additive columns.
	ShipName     string `json:"ship_name" gorm:"size:100"`
	ShipPhone    string `json:"ship_phone" gorm:"size:30"`
	ShipPostcode string `json:"ship_postcode" gorm:"size:10"`
	ShipAddr1    string `json:"ship_addr1" gorm:"size:255"`
	ShipAddr2    string `json:"ship_addr2" gorm:"size:255"`
	ShipMemo     string `json:"ship_memo" gorm:"size:255"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL"`
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}
