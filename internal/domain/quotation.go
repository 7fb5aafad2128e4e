package domain

import "time"

// Quotation status values. A quotation starts Pending and moves to
// Responded exactly once, when an admin supplies a response.
const (
	QuotationPending   = "Pending"
	QuotationResponded = "Responded"
)

// Quotation is a customer's request for a quote over a set of products.
// Items are owned exclusively by the quotation: they are created with it
// and removed with it, never edited piecemeal.
type Quotation struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerName  string          `gorm:"size:100" json:"customer_name"`
	CustomerEmail string          `gorm:"size:100" json:"customer_email"`
	CustomerPhone *string         `gorm:"size:20" json:"customer_phone"`
	Status        string          `gorm:"size:20" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	AdminResponse *string         `json:"admin_response"`
	Items         []QuotationItem `gorm:"foreignKey:QuotationID" json:"items"`
}

// TableName Specify table name
func (Quotation) TableName() string {
	return "quotations"
}

// QuotationItem is a product/quantity line on a quotation. The product
// reference is non-owning; the quotation reference is.
type QuotationItem struct {
	ID          int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Quantity    int   `json:"quantity"`
	QuotationID int64 `gorm:"index" json:"quotation_id"`
	ProductID   int64 `gorm:"index" json:"product_id"`
}

// TableName Specify table name
func (QuotationItem) TableName() string {
	return "quotation_items"
}
