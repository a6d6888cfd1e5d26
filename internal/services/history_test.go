package services

import (
	"testing"
	"time"

	"github.com/jjbarja/ferreteria/internal/models"
)

func TestHistoryLedgerNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewHistoryService(db)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	db.Create(&models.LedgerEntry{DocumentID: 1, Kind: models.KindInvoice, ProductName: "old", RecordedAt: base})
	db.Create(&models.LedgerEntry{DocumentID: 2, Kind: models.KindTicket, ProductName: "new", RecordedAt: base.Add(time.Hour)})

	entries, err := svc.Ledger()
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	if len(entries) != 2 || entries[0].ProductName != "new" {
		t.Fatalf("expected newest first, got %+v", entries)
	}
}

func TestHistoryInvoiceFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewHistoryService(db)

	d1 := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 2, 16, 0, 0, 0, time.UTC)
	db.Create(&models.Invoice{ID: 1, CustomerName: "Ana García", IssuedAt: d1, Total: 10})
	db.Create(&models.Invoice{ID: 2, CustomerName: "Bruno", IssuedAt: d2, Total: 20})
	db.Create(&models.LedgerEntry{DocumentID: 1, Kind: models.KindInvoice, ProductName: "Hammer", RecordedAt: d1})
	db.Create(&models.LedgerEntry{DocumentID: 2, Kind: models.KindInvoice, ProductName: "Rope", RecordedAt: d2})

	all, err := svc.Invoices(InvoiceFilter{})
	if err != nil {
		t.Fatalf("invoices: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(all))
	}

	byCustomer, _ := svc.Invoices(InvoiceFilter{Customer: "García"})
	if len(byCustomer) != 1 || byCustomer[0].ID != 1 {
		t.Fatalf("customer filter failed: %+v", byCustomer)
	}

	byProduct, _ := svc.Invoices(InvoiceFilter{Product: "Rope"})
	if len(byProduct) != 1 || byProduct[0].ID != 2 {
		t.Fatalf("product filter failed: %+v", byProduct)
	}

	byDate, _ := svc.Invoices(InvoiceFilter{Date: "2024-03-02"})
	if len(byDate) != 1 || byDate[0].ID != 2 {
		t.Fatalf("date filter failed: %+v", byDate)
	}

	badDate, _ := svc.Invoices(InvoiceFilter{Date: "not-a-date"})
	if len(badDate) != 0 {
		t.Fatalf("unparseable date should match nothing, got %+v", badDate)
	}

	combined, _ := svc.Invoices(InvoiceFilter{Customer: "Bruno", Product: "Hammer"})
	if len(combined) != 0 {
		t.Fatalf("conjunctive filters should exclude, got %+v", combined)
	}
}
