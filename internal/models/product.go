package models

// Product is a catalog entry. Code is the supplier/barcode identifier used
// by the scan flow; the schema does not make it unique, lookups take the
// first match. Quantity is the stock level and may go negative.
type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null;index" json:"name"`
	Code        string  `gorm:"not null;index" json:"code"`
	Description string  `json:"description"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`
	Quantity    int     `gorm:"not null;default:0" json:"quantity"`
}
