package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jjbarja/ferreteria/internal/config"
	"github.com/jjbarja/ferreteria/internal/models"
	"github.com/jjbarja/ferreteria/internal/pdf"
	"github.com/jjbarja/ferreteria/internal/services"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Customer{}, &models.Invoice{}, &models.LedgerEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	renderer := pdf.NewRenderer(t.TempDir(), config.Issuer{Name: "FERRETERIA JJBARJA"}, 0.21)
	saleSvc := services.NewSaleService(db, renderer, 0.21)
	return New(db, saleSvc, services.NewSession())
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestRouter(t)
	for _, path := range []string{"/health", "/healthz"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, w.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: decode: %v", path, err)
		}
		if body["status"] != "ok" {
			t.Fatalf("%s: unexpected body %v", path, body)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestRouter(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/products", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", w.Code)
	}

	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/sale/commit", nil))
	if w2.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", w2.Code)
	}
}

func TestFullSaleOverHTTP(t *testing.T) {
	h := newTestRouter(t)

	// create a product
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/products",
		strings.NewReader(`{"name":"Hammer","code":"H1","unit_price":9.99,"quantity":10}`)))
	if w.Code != http.StatusCreated {
		t.Fatalf("create product: %d body=%s", w.Code, w.Body.String())
	}
	var p models.Product
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode product: %v", err)
	}

	// cart + commit
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sale/lines",
		strings.NewReader(`{"product_id":1,"quantity":2}`)))
	if w.Code != http.StatusCreated {
		t.Fatalf("add line: %d body=%s", w.Code, w.Body.String())
	}
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sale/commit",
		strings.NewReader(`{"customer_name":"Ana","customer_address":"Calle X"}`)))
	if w.Code != http.StatusCreated {
		t.Fatalf("commit: %d body=%s", w.Code, w.Body.String())
	}

	// the ledger and invoice history both show the sale
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history/ledger", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Hammer") {
		t.Fatalf("ledger: %d body=%s", w.Code, w.Body.String())
	}
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history/invoices?customer=Ana", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "19.98") {
		t.Fatalf("invoices: %d body=%s", w.Code, w.Body.String())
	}
}
