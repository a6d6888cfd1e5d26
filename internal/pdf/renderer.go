// Package pdf renders the three printable document kinds. Layouts follow
// the shop's historical paperwork: A5 pages for invoices and delivery
// notes, a narrow receipt whose height grows with the line count for
// tickets.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	mcfg "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jjbarja/ferreteria/internal/config"
	"github.com/jjbarja/ferreteria/internal/models"
)

const mmPerInch = 25.4

// Document is the snapshot a commit hands to the renderer.
type Document struct {
	Kind            models.DocumentKind
	ID              uint
	IssuedAt        time.Time
	CustomerName    string
	CustomerAddress string
	Lines           []models.CartLine
	Total           float64
}

// Renderer writes documents into OutputDir, silently overwriting an
// existing file of the same name. Issuer identity and the VAT rate are
// injected so nothing about the business is baked into the layouts.
type Renderer struct {
	OutputDir string
	Issuer    config.Issuer
	VATRate   float64
}

func NewRenderer(outputDir string, issuer config.Issuer, vatRate float64) *Renderer {
	return &Renderer{OutputDir: outputDir, Issuer: issuer, VATRate: vatRate}
}

// Render produces {prefix}_{id}.pdf in the output directory and returns the
// written path.
func (r *Renderer) Render(doc Document) (string, error) {
	var m core.Maroto
	switch doc.Kind {
	case models.KindTicket:
		m = r.ticket(doc)
	case models.KindDeliveryNote:
		m = r.deliveryNote(doc)
	default:
		m = r.invoice(doc)
	}
	generated, err := m.Generate()
	if err != nil {
		return "", fmt.Errorf("generate %s %d: %w", doc.Kind.FilePrefix(), doc.ID, err)
	}
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(r.OutputDir, fmt.Sprintf("%s_%d.pdf", doc.Kind.FilePrefix(), doc.ID))
	if err := generated.Save(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

func (r *Renderer) invoice(doc Document) core.Maroto {
	m := maroto.New(a5Config())
	r.pageHeader(m, doc, fmt.Sprintf("Factura ID: %d", doc.ID), r.Issuer.Name)
	itemTable(m, doc.Lines)

	subtotal := doc.Total / (1 + r.VATRate)
	tax := doc.Total - subtotal
	m.AddRow(6)
	totalRow(m, "Subtotal (sin IVA):", subtotal)
	totalRow(m, fmt.Sprintf("IVA (%.0f%%):", r.VATRate*100), tax)
	totalRow(m, "Total (con IVA):", doc.Total)

	m.AddRow(6)
	note(m, "Observaciones:")
	note(m, "Para cambios y devoluciones, dispone de 15 días; el artículo debe estar en perfecto estado y con su ticket.")
	note(m, "Las devoluciones se efectuarán mediante vale sin fecha de caducidad. No se admiten cambios en herramientas,")
	note(m, "salvo defecto de fábrica. Todos los artículos tienen garantía según RDL 1/2007 del 16 de noviembre.")
	return m
}

func (r *Renderer) deliveryNote(doc Document) core.Maroto {
	m := maroto.New(a5Config())
	r.pageHeader(m, doc, fmt.Sprintf("Albarán ID: %d", doc.ID), r.Issuer.Name+" - ALBARÁN")
	itemTable(m, doc.Lines)

	m.AddRow(6)
	totalRow(m, "TOTAL ALBARÁN:", doc.Total)

	m.AddRow(6)
	note(m, "Observaciones:")
	note(m, "No se admiten reclamaciones ni devoluciones pasados 7 días.")
	return m
}

func (r *Renderer) ticket(doc Document) core.Maroto {
	width := 3 * mmPerInch
	height := (1.5 + 0.3*float64(len(doc.Lines)) + 2) * mmPerInch
	cfg := mcfg.NewBuilder().
		WithDimensions(width, height).
		WithLeftMargin(4).
		WithTopMargin(4).
		WithRightMargin(4).
		Build()
	m := maroto.New(cfg)

	m.AddRow(6, text.NewCol(12, r.Issuer.Name, props.Text{Style: fontstyle.Bold, Size: 10}))
	m.AddRow(4, text.NewCol(12, r.Issuer.Address+", "+r.Issuer.City, props.Text{Size: 7}))
	m.AddRow(4, text.NewCol(12, r.Issuer.Phone, props.Text{Size: 7}))
	m.AddRow(5, text.NewCol(12, "Fecha: "+doc.IssuedAt.Format("2006-01-02 15:04:05"), props.Text{Style: fontstyle.Bold, Size: 7}))
	m.AddRow(2, line.NewCol(12))

	m.AddRow(4,
		text.NewCol(6, "Producto", props.Text{Style: fontstyle.Bold, Size: 7}),
		text.NewCol(2, "Cant.", props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Center}),
		text.NewCol(2, "Precio", props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Right}),
	)
	for _, l := range doc.Lines {
		m.AddRow(4,
			text.NewCol(6, l.Description, props.Text{Size: 7}),
			text.NewCol(2, fmt.Sprintf("%d", l.Quantity), props.Text{Size: 7, Align: align.Center}),
			text.NewCol(2, euros(l.UnitPrice), props.Text{Size: 7, Align: align.Right}),
			text.NewCol(2, euros(l.LineTotal), props.Text{Size: 7, Align: align.Right}),
		)
	}
	m.AddRow(2, line.NewCol(12))
	m.AddRow(5, text.NewCol(12, "TOTAL: "+euros(doc.Total), props.Text{Style: fontstyle.Bold, Size: 9}))
	m.AddRow(6, text.NewCol(12, "¡Gracias por su visita!", props.Text{Size: 7, Align: align.Center}))
	return m
}

func a5Config() *entity.Config {
	return mcfg.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).
		WithTopMargin(8).
		WithRightMargin(8).
		Build()
}

// pageHeader draws the customer block on the left, the issuer block on the
// right and the centered business title, shared by invoice and delivery
// note.
func (r *Renderer) pageHeader(m core.Maroto, doc Document, title, centered string) {
	m.AddRow(5,
		text.NewCol(7, title, props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(5, r.Issuer.Address, props.Text{Size: 8, Align: align.Right}),
	)
	m.AddRow(4,
		text.NewCol(7, "Cliente: "+doc.CustomerName, props.Text{Size: 8}),
		text.NewCol(5, r.Issuer.City, props.Text{Size: 8, Align: align.Right}),
	)
	m.AddRow(4,
		text.NewCol(7, "Dirección: "+doc.CustomerAddress, props.Text{Size: 8}),
		text.NewCol(5, r.Issuer.Email, props.Text{Size: 8, Align: align.Right}),
	)
	m.AddRow(4,
		text.NewCol(7, "Fecha: "+doc.IssuedAt.Format("2006-01-02 15:04:05"), props.Text{Size: 8}),
		text.NewCol(5, r.Issuer.TaxID, props.Text{Size: 8, Align: align.Right}),
	)
	m.AddRow(4,
		text.NewCol(7, "", props.Text{Size: 8}),
		text.NewCol(5, r.Issuer.Phone, props.Text{Size: 8, Align: align.Right}),
	)
	m.AddRow(8, text.NewCol(12, centered, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center}))
}

func itemTable(m core.Maroto, lines []models.CartLine) {
	m.AddRow(5,
		text.NewCol(6, "Descripción / Producto", props.Text{Style: fontstyle.Bold, Size: 7}),
		text.NewCol(2, "Cantidad", props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Center}),
		text.NewCol(2, "Precio", props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Right}),
	)
	m.AddRow(1, line.NewCol(12))
	for _, l := range lines {
		m.AddRow(5,
			text.NewCol(6, l.Description, props.Text{Size: 7}),
			text.NewCol(2, fmt.Sprintf("%d", l.Quantity), props.Text{Size: 7, Align: align.Center}),
			text.NewCol(2, euros(l.UnitPrice), props.Text{Size: 7, Align: align.Right}),
			text.NewCol(2, euros(l.LineTotal), props.Text{Size: 7, Align: align.Right}),
		)
	}
	m.AddRow(1, line.NewCol(12))
}

func totalRow(m core.Maroto, label string, amount float64) {
	m.AddRow(5,
		text.NewCol(8, label, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
		text.NewCol(4, euros(amount), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
	)
}

func note(m core.Maroto, s string) {
	m.AddRow(3, text.NewCol(12, s, props.Text{Size: 7}))
}

func euros(v float64) string { return fmt.Sprintf("%.2f €", v) }
