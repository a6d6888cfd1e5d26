package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jjbarja/ferreteria/internal/httpx"
	"github.com/jjbarja/ferreteria/internal/models"
	"github.com/jjbarja/ferreteria/internal/services"
)

// SaleHandler exposes the document-creation workflow over one session: the
// carts live exactly as long as the process, like the working state of the
// old desktop window.
type SaleHandler struct {
	Svc     *services.SaleService
	Session *services.Session
}

func NewSaleHandler(svc *services.SaleService, sess *services.Session) *SaleHandler {
	return &SaleHandler{Svc: svc, Session: sess}
}

func kindFromQuery(r *http.Request) models.DocumentKind {
	kind := models.DocumentKind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = models.KindInvoice
	}
	return kind
}

// Lines: GET /sale/lines?kind=...
func (h *SaleHandler) Lines(w http.ResponseWriter, r *http.Request) {
	kind := kindFromQuery(r)
	if !kind.Valid() {
		httpx.JSONError(w, http.StatusBadRequest, "unknown_document_kind", nil)
		return
	}
	lines := h.Session.Lines(kind)
	var total float64
	for _, l := range lines {
		total += l.LineTotal
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": lines, "total": total})
}

// AddLine: POST /sale/lines
func (h *SaleHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind      models.DocumentKind `json:"kind"`
		ProductID uint                `json:"product_id"`
		Quantity  int                 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.Kind == "" {
		req.Kind = models.KindInvoice
	}
	line, err := h.Svc.AddLine(h.Session, req.Kind, req.ProductID, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, line)
}

// Clear: POST /sale/clear?kind=...
func (h *SaleHandler) Clear(w http.ResponseWriter, r *http.Request) {
	kind := kindFromQuery(r)
	if !kind.Valid() {
		httpx.JSONError(w, http.StatusBadRequest, "unknown_document_kind", nil)
		return
	}
	h.Session.Clear(kind)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// Commit: POST /sale/commit
func (h *SaleHandler) Commit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind            models.DocumentKind `json:"kind"`
		CustomerName    string              `json:"customer_name"`
		CustomerAddress string              `json:"customer_address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.Kind == "" {
		req.Kind = models.KindInvoice
	}
	res, err := h.Svc.Commit(h.Session, req.Kind, req.CustomerName, req.CustomerAddress)
	if err != nil {
		if res != nil {
			// persisted but not rendered; report with the allocated id
			httpx.JSONError(w, http.StatusInternalServerError, "render_failed", map[string]any{"document_id": res.DocumentID})
			return
		}
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, res)
}
