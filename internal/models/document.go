package models

import "time"

// DocumentKind selects which persistence and layout rules apply to a commit.
type DocumentKind string

const (
	KindInvoice      DocumentKind = "Sale"
	KindDeliveryNote DocumentKind = "Delivery"
	KindTicket       DocumentKind = "Ticket"
)

// Valid reports whether k is one of the three known kinds.
func (k DocumentKind) Valid() bool {
	switch k {
	case KindInvoice, KindDeliveryNote, KindTicket:
		return true
	}
	return false
}

// FilePrefix is the historical file-name prefix for generated documents.
func (k DocumentKind) FilePrefix() string {
	switch k {
	case KindDeliveryNote:
		return "albaran"
	case KindTicket:
		return "ticket"
	default:
		return "factura"
	}
}

// Invoice is a document header row. Only Invoice commits create one;
// delivery notes and tickets consume the same number sequence but persist
// ledger rows only. The ID is allocated as max(existing)+1, not by the
// database. CustomerName is free text, not a Customer foreign key.
type Invoice struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CustomerName string    `gorm:"not null;index" json:"customer_name"`
	IssuedAt     time.Time `gorm:"not null" json:"issued_at"`
	Total        float64   `gorm:"not null" json:"total"`
}

// LedgerEntry is one line-item record of a completed sale, delivery or
// ticket. Append-only; DocumentID and ProductName are plain values with no
// enforced foreign keys, so deleting a product leaves its history intact.
type LedgerEntry struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	DocumentID  uint         `gorm:"not null;index" json:"document_id"`
	Kind        DocumentKind `gorm:"not null" json:"kind"`
	ProductName string       `json:"product_name"`
	Quantity    int          `json:"quantity"`
	UnitPrice   float64      `json:"unit_price"`
	LineTotal   float64      `json:"line_total"`
	RecordedAt  time.Time    `gorm:"not null;index" json:"recorded_at"`
}

// CartLine is a transient sale-workflow line. It is never persisted; the
// ledger row written at commit time carries the same shape. ProductID is
// captured at add time so commit never re-resolves products by name.
type CartLine struct {
	ProductID   uint    `json:"product_id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}
