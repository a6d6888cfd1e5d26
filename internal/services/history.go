package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jjbarja/ferreteria/internal/models"
)

// InvoiceFilter narrows the invoice-history listing. Empty fields are
// ignored. Product matches invoices through their ledger rows, since line
// items never live on the header.
type InvoiceFilter struct {
	Customer string
	Product  string
	Date     string
}

// HistoryService reads the flat ledger and the invoice headers.
type HistoryService struct{ DB *gorm.DB }

func NewHistoryService(db *gorm.DB) *HistoryService { return &HistoryService{DB: db} }

// Ledger returns every transaction row, newest first.
func (s *HistoryService) Ledger() ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	if err := s.DB.Order("recorded_at desc, id desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Invoices returns headers matching the filter.
func (s *HistoryService) Invoices(f InvoiceFilter) ([]models.Invoice, error) {
	q := s.DB.Model(&models.Invoice{})
	if c := strings.TrimSpace(f.Customer); c != "" {
		q = q.Where("customer_name LIKE ?", "%"+c+"%")
	}
	if p := strings.TrimSpace(f.Product); p != "" {
		q = q.Where("id IN (?)", s.DB.Model(&models.LedgerEntry{}).
			Select("document_id").
			Where("product_name LIKE ?", "%"+p+"%"))
	}
	if d := strings.TrimSpace(f.Date); d != "" {
		day, err := time.Parse("2006-01-02", d)
		if err != nil {
			// an unparseable date matches nothing
			return []models.Invoice{}, nil
		}
		q = q.Where("issued_at >= ? AND issued_at < ?", day, day.AddDate(0, 0, 1))
	}
	var invoices []models.Invoice
	if err := q.Order("id").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}
