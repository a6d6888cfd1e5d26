package models

// Customer entity. FiscalID and FiscalName are the only required fields.
type Customer struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	FiscalID   string `gorm:"not null;index" json:"fiscal_id"`
	FiscalName string `gorm:"not null;index" json:"fiscal_name"`
	TradeName  string `gorm:"index" json:"trade_name"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}
