package handlers

import (
	"net/http"

	"github.com/jjbarja/ferreteria/internal/httpx"
	"github.com/jjbarja/ferreteria/internal/services"
)

type HistoryHandler struct {
	Svc *services.HistoryService
}

func NewHistoryHandler(svc *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{Svc: svc}
}

// Ledger: GET /history/ledger
func (h *HistoryHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Svc.Ledger()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSONList(w, entries, len(entries))
}

// Invoices: GET /history/invoices?customer=&product=&date=
func (h *HistoryHandler) Invoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	invoices, err := h.Svc.Invoices(services.InvoiceFilter{
		Customer: q.Get("customer"),
		Product:  q.Get("product"),
		Date:     q.Get("date"),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSONList(w, invoices, len(invoices))
}
