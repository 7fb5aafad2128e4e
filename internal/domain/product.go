package domain

import "time"

// Product represents a catalog item offered for quotation
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:120" json:"name"`
	Description *string   `json:"description"`
	Sku         *string   `gorm:"uniqueIndex;size:50" json:"sku"` // optional, unique when present
	ImageURL    *string   `gorm:"size:1024" json:"image_url"`     // durable blob-store URL (optional)
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}
