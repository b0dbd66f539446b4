package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/farmkart/farmkart-api/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// RenderInvoice lays out the invoice as a single portrait A4 page.
func (g *Generator) RenderInvoice(invoice *model.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Invoice %s dated %s", invoice.InvoiceNumber, formatDate(invoice.CreatedAt)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Due %s", formatDate(invoice.DueDate)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	addPartyBlock(pdf, g.fontName, "Supplier", invoice.Farmer)
	pdf.Ln(2)
	addPartyBlock(pdf, g.fontName, "Bill to", invoice.Buyer)
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Order details", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)

	headers := []string{"Item", "Quantity", "Unit price", "Amount"}
	colWidths := []float64{90, 30, 30, 30}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	if invoice.Order != nil {
		for _, item := range invoice.Order.Items {
			row := []string{
				item.Title,
				formatAmount(item.Quantity, 2),
				formatAmount(item.Price, 2),
				formatAmount(item.Price*item.Quantity, 2),
			}
			drawTableRow(pdf, g.fontName, row, colWidths, false)
		}
	}

	pdf.Ln(2)
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total due: %s", formatAmount(invoice.Amount, 2)), "", 1, "R", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s", invoice.Status), "", 1, "R", false, 0, "")
	if invoice.PaidAt != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("Paid on %s", formatDate(*invoice.PaidAt)), "", 1, "R", false, 0, "")
	}

	if invoice.Status == model.InvoiceOverdue {
		pdf.SetTextColor(200, 0, 0)
		pdf.MultiCell(0, 6, "This invoice is past its due date.", "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addPartyBlock(pdf *gofpdf.Fpdf, fontName, title string, party *model.UserSummary) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(0, 6, title, "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	name := ""
	organization := ""
	if party != nil {
		name = party.FullName
		organization = party.FarmName
		if organization == "" {
			organization = party.CompanyName
		}
	}
	lines := []string{safeValue(name)}
	if organization != "" {
		lines = append(lines, organization)
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatAmount(value float64, precision int) string {
	format := fmt.Sprintf("%%.%df", precision)
	return fmt.Sprintf(format, value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}
