// Package pdf renders invoice documents.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/cmlabs-hris/biztime-backend-go/internal/domain/invoice"
	"github.com/jung-kurt/gofpdf"
)

const dateLayout = "2006-01-02"

// RenderInvoice lays out a single A4 page for the invoice detail view.
func RenderInvoice(inv invoice.InvoiceDetailResponse) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("Invoice #%d", inv.ID), true)
	doc.SetCreator("biztime", true)
	doc.AddPage()

	doc.SetFont("Arial", "B", 18)
	doc.CellFormat(0, 12, fmt.Sprintf("Invoice #%d", inv.ID), "", 1, "L", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 8, "Billed to", "B", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 11)
	if inv.Company != nil {
		row(doc, "Company", fmt.Sprintf("%s (%s)", inv.Company.Name, inv.Company.Code))
		if inv.Company.Description != nil && *inv.Company.Description != "" {
			doc.MultiCell(0, 6, *inv.Company.Description, "", "L", false)
		}
	} else {
		row(doc, "Company", "unknown")
	}
	doc.Ln(4)

	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 8, "Details", "B", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 11)
	row(doc, "Issued", inv.AddDate.Format(dateLayout))
	row(doc, "Amount", inv.Amt.StringFixed(2))
	if inv.Paid {
		paid := "yes"
		if inv.PaidDate != nil {
			paid = "on " + inv.PaidDate.Format(dateLayout)
		}
		row(doc, "Paid", paid)
	} else {
		row(doc, "Paid", "no")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice %d: %w", inv.ID, err)
	}
	return buf.Bytes(), nil
}

func row(doc *gofpdf.Fpdf, label, value string) {
	doc.CellFormat(40, 7, label, "", 0, "L", false, 0, "")
	doc.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}
