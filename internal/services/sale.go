package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/jjbarja/ferreteria/internal/models"
	"github.com/jjbarja/ferreteria/internal/pdf"
	"github.com/jjbarja/ferreteria/internal/validation"
)

// DocumentRenderer writes a printable document and returns its path.
// Satisfied by *pdf.Renderer.
type DocumentRenderer interface {
	Render(doc pdf.Document) (string, error)
}

// Session holds the transient carts built while documents are assembled.
// One accumulator serves Invoice and Ticket commits, an independent one
// serves DeliveryNote; both vanish on restart. The sale workflow threads a
// session through every call instead of keeping ambient globals.
type Session struct {
	mu    sync.Mutex
	carts map[models.DocumentKind][]models.CartLine
}

func NewSession() *Session {
	return &Session{carts: make(map[models.DocumentKind][]models.CartLine)}
}

// Tickets are rung up from the invoice cart, as they always were.
func cartKey(kind models.DocumentKind) models.DocumentKind {
	if kind == models.KindTicket {
		return models.KindInvoice
	}
	return kind
}

// Lines returns a copy of the active cart for the given kind.
func (s *Session) Lines(kind models.DocumentKind) []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[cartKey(kind)]
	out := make([]models.CartLine, len(lines))
	copy(out, lines)
	return out
}

// Clear discards the active cart for the given kind.
func (s *Session) Clear(kind models.DocumentKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartKey(kind))
}

func (s *Session) append(kind models.DocumentKind, line models.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := cartKey(kind)
	s.carts[key] = append(s.carts[key], line)
}

// CommitResult reports what a successful commit persisted and emitted.
// Subtotal and Tax are the tax-inclusive breakdown and are only computed
// for the Invoice kind. SkippedProducts lists cart lines whose product row
// had vanished before commit; their ledger rows exist but no stock moved.
type CommitResult struct {
	DocumentID      uint                `json:"document_id"`
	Kind            models.DocumentKind `json:"kind"`
	Total           float64             `json:"total"`
	Subtotal        float64             `json:"subtotal,omitempty"`
	Tax             float64             `json:"tax,omitempty"`
	FilePath        string              `json:"file_path"`
	SkippedProducts []string            `json:"skipped_products,omitempty"`
}

// SaleService drives the document-creation workflow: cart accumulation,
// number allocation, ledger and stock persistence, and document emission.
type SaleService struct {
	DB       *gorm.DB
	Renderer DocumentRenderer
	VATRate  float64

	// serializes max(id)+1 allocation across commits
	allocMu sync.Mutex
}

func NewSaleService(db *gorm.DB, r DocumentRenderer, vatRate float64) *SaleService {
	return &SaleService{DB: db, Renderer: r, VATRate: vatRate}
}

// AddLine appends a product to the active cart. Description and unit price
// are captured now; a later price edit does not touch lines already in the
// cart. The product id rides on the line so commit never resolves products
// by name.
func (s *SaleService) AddLine(sess *Session, kind models.DocumentKind, productID uint, quantity int) (models.CartLine, error) {
	v := validation.Violations{}
	validation.PositiveInt("quantity", quantity, v)
	if !kind.Valid() {
		v["kind"] = "unknown_document_kind"
	}
	if err := v.Err(); err != nil {
		return models.CartLine{}, err
	}
	var p models.Product
	if err := s.DB.First(&p, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartLine{}, ErrNotFound
		}
		return models.CartLine{}, err
	}
	line := models.CartLine{
		ProductID:   p.ID,
		Description: p.Name,
		Quantity:    quantity,
		UnitPrice:   p.UnitPrice,
		LineTotal:   float64(quantity) * p.UnitPrice,
	}
	sess.append(kind, line)
	return line, nil
}

// Commit turns the active cart into a numbered document: one ledger row per
// line, a header row for the Invoice kind, and a stock decrement per line,
// all inside one transaction. The PDF is rendered only after the
// transaction commits, then the cart is cleared. A render failure still
// returns the populated result alongside the error; the store is already
// consistent at that point.
func (s *SaleService) Commit(sess *Session, kind models.DocumentKind, customerName, customerAddress string) (*CommitResult, error) {
	v := validation.Violations{}
	validation.Required("customer_name", customerName, v)
	validation.Required("customer_address", customerAddress, v)
	if !kind.Valid() {
		v["kind"] = "unknown_document_kind"
	}
	lines := sess.Lines(kind)
	if len(lines) == 0 {
		v["cart"] = "empty"
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	var total float64
	for _, l := range lines {
		total += l.LineTotal
	}

	res := &CommitResult{Kind: kind, Total: total}
	if kind == models.KindInvoice {
		res.Subtotal = total / (1 + s.VATRate)
		res.Tax = total - res.Subtotal
	}

	s.allocMu.Lock()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		id, err := nextDocumentID(tx)
		if err != nil {
			return err
		}
		res.DocumentID = id
		for _, l := range lines {
			entry := models.LedgerEntry{
				DocumentID:  id,
				Kind:        kind,
				ProductName: l.Description,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
				LineTotal:   l.LineTotal,
				RecordedAt:  now,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		if kind == models.KindInvoice {
			header := models.Invoice{ID: id, CustomerName: customerName, IssuedAt: now, Total: total}
			if err := tx.Create(&header).Error; err != nil {
				return err
			}
		}
		for _, l := range lines {
			upd := tx.Model(&models.Product{}).
				Where("id = ?", l.ProductID).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", l.Quantity))
			if upd.Error != nil {
				return upd.Error
			}
			if upd.RowsAffected == 0 {
				res.SkippedProducts = append(res.SkippedProducts, l.Description)
			}
		}
		return nil
	})
	s.allocMu.Unlock()
	if err != nil {
		return nil, err
	}

	sess.Clear(kind)

	path, renderErr := s.Renderer.Render(pdf.Document{
		Kind:            kind,
		ID:              res.DocumentID,
		IssuedAt:        now,
		CustomerName:    customerName,
		CustomerAddress: customerAddress,
		Lines:           lines,
		Total:           total,
	})
	if renderErr != nil {
		return res, fmt.Errorf("document %d persisted but rendering failed: %w", res.DocumentID, renderErr)
	}
	res.FilePath = path
	return res, nil
}

// nextDocumentID allocates max(invoice id)+1. Delivery notes and tickets
// consume the same sequence but leave no header behind, so the number they
// used can be handed out again until the next invoice lands; the ledger
// alone records them. This matches how the shop has always numbered its
// paperwork.
func nextDocumentID(tx *gorm.DB) (uint, error) {
	var maxID int64
	if err := tx.Model(&models.Invoice{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
		return 0, err
	}
	return uint(maxID) + 1, nil
}
