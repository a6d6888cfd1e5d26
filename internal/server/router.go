package server

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/jjbarja/ferreteria/internal/handlers"
	"github.com/jjbarja/ferreteria/internal/httpx"
	"github.com/jjbarja/ferreteria/internal/services"
)

// New constructs the root http.Handler with all routes applied. The sale
// session passed in is the process-wide working state for cart building.
func New(db *gorm.DB, saleSvc *services.SaleService, sess *services.Session) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Product endpoints. List/Create via /products; Update/Delete via
	// /products/update & /products/delete for simplicity.
	ph := handlers.NewProductHandler(services.NewCatalogService(db))
	mux.HandleFunc("/products", listCreate(ph.List, ph.Create))
	mux.HandleFunc("/products/update", postOnly(ph.Update))
	mux.HandleFunc("/products/delete", postOnly(ph.Delete))
	mux.HandleFunc("/products/search", getOnly(ph.Search))
	mux.HandleFunc("/products/scan", getOnly(ph.Scan))

	// Customer endpoints. No update route: customers are deleted and
	// recreated, as they always were.
	ch := handlers.NewCustomerHandler(services.NewCustomerService(db))
	mux.HandleFunc("/customers", listCreate(ch.List, ch.Create))
	mux.HandleFunc("/customers/delete", postOnly(ch.Delete))
	mux.HandleFunc("/customers/search", getOnly(ch.Search))

	// Sale workflow endpoints
	sh := handlers.NewSaleHandler(saleSvc, sess)
	mux.HandleFunc("/sale/lines", listCreate(sh.Lines, sh.AddLine))
	mux.HandleFunc("/sale/clear", postOnly(sh.Clear))
	mux.HandleFunc("/sale/commit", postOnly(sh.Commit))

	// History endpoints
	hh := handlers.NewHistoryHandler(services.NewHistoryService(db))
	mux.HandleFunc("/history/ledger", getOnly(hh.Ledger))
	mux.HandleFunc("/history/invoices", getOnly(hh.Invoices))

	return mux
}

func listCreate(get, post http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			get(w, r)
		case http.MethodPost:
			post(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}
}

func getOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", "GET")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	}
}

func postOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	}
}
