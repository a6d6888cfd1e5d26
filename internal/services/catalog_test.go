package services

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jjbarja/ferreteria/internal/models"
	"github.com/jjbarja/ferreteria/internal/validation"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Customer{}, &models.Invoice{}, &models.LedgerEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func isValidationError(err error) bool {
	var verr *validation.Error
	return errors.As(err, &verr)
}

func TestCatalogAddThenFindByCode(t *testing.T) {
	svc := NewCatalogService(setupTestDB(t))

	created, err := svc.Add(ProductInput{Name: "Hammer", Code: "H1", Description: "claw hammer", UnitPrice: 9.99, Quantity: 10})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	found, err := svc.FindByCode("H1")
	if err != nil {
		t.Fatalf("find by code: %v", err)
	}
	if found.Name != "Hammer" || found.Code != "H1" || found.Description != "claw hammer" || found.UnitPrice != 9.99 || found.Quantity != 10 {
		t.Fatalf("fields not preserved: %+v", found)
	}
}

func TestCatalogFindByCodeFirstMatch(t *testing.T) {
	svc := NewCatalogService(setupTestDB(t))
	first, _ := svc.Add(ProductInput{Name: "Nail A", Code: "DUP", UnitPrice: 1})
	if _, err := svc.Add(ProductInput{Name: "Nail B", Code: "DUP", UnitPrice: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}
	found, err := svc.FindByCode("DUP")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.ID != first.ID {
		t.Fatalf("expected first match id=%d got %d", first.ID, found.ID)
	}
}

func TestCatalogValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)

	cases := []struct {
		name string
		in   ProductInput
	}{
		{"missing name", ProductInput{Code: "X", UnitPrice: 1}},
		{"missing code", ProductInput{Name: "X", UnitPrice: 1}},
		{"negative price", ProductInput{Name: "X", Code: "X", UnitPrice: -0.01}},
	}
	for _, tc := range cases {
		if _, err := svc.Add(tc.in); !isValidationError(err) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 0 {
		t.Fatalf("store mutated by rejected input: %d rows", count)
	}
}

func TestCatalogUpdateOverwritesAllFields(t *testing.T) {
	svc := NewCatalogService(setupTestDB(t))
	p, _ := svc.Add(ProductInput{Name: "Old", Code: "C1", Description: "old", UnitPrice: 1, Quantity: 1})

	updated, err := svc.Update(p.ID, ProductInput{Name: "New", Code: "C2", Description: "new", UnitPrice: 2.5, Quantity: 7})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "New" || updated.Code != "C2" || updated.Description != "new" || updated.UnitPrice != 2.5 || updated.Quantity != 7 {
		t.Fatalf("update did not overwrite: %+v", updated)
	}

	if _, err := svc.Update(9999, ProductInput{Name: "X", Code: "X", UnitPrice: 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogDelete(t *testing.T) {
	svc := NewCatalogService(setupTestDB(t))
	p, _ := svc.Add(ProductInput{Name: "Gone", Code: "G", UnitPrice: 1})
	if err := svc.Delete(p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on stale delete, got %v", err)
	}
}

func TestCatalogSearch(t *testing.T) {
	svc := NewCatalogService(setupTestDB(t))
	svc.Add(ProductInput{Name: "Martillo grande", Code: "M-100", UnitPrice: 5})
	svc.Add(ProductInput{Name: "Destornillador", Code: "D-200", UnitPrice: 3})

	byName, err := svc.Search("martillo")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byName) != 1 || byName[0].Name != "Martillo grande" {
		t.Fatalf("name search failed: %+v", byName)
	}

	byCode, err := svc.Search("D-200")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byCode) != 1 || byCode[0].Code != "D-200" {
		t.Fatalf("code search failed: %+v", byCode)
	}
}
