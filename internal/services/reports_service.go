package services

import (
	"bytes"
	"fmt"
	"time"

	"loyaltyadmin/internal/currency"
	"loyaltyadmin/internal/repositories"
	"loyaltyadmin/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReportsService builds the invoice summary PDF handed out by the admin
// screens. Totals are grouped per currency; amounts are never converted.
type ReportsService struct {
	InvoiceRepo repositories.InvoiceRepository
	RequestID   string
	Loader      func(repositories.InvoiceFilter) ([]repositories.CurrencyTotal, error)
}

func (s ReportsService) InvoiceSummaryPDF(f repositories.InvoiceFilter) ([]byte, string, error) {
	load := s.Loader
	if load == nil {
		load = s.InvoiceRepo.TotalsByCurrency
	}
	totals, err := load(f)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "reports", "invoice_summary", fmt.Sprintf("currencies=%d", len(totals)))
	return buildInvoiceSummaryPDF(f, totals)
}

func buildInvoiceSummaryPDF(f repositories.InvoiceFilter, totals []repositories.CurrencyTotal) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice Summary", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE SUMMARY")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Generated: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(6)
	if f.FromDate != "" || f.ToDate != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Period: %s - %s", orDash(f.FromDate), orDash(f.ToDate)))
		pdf.Ln(6)
	}
	if f.Search != "" {
		pdf.Cell(0, 6, "Search: "+f.Search)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(40, 8, "Currency", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Invoices", "1", 0, "R", false, 0, "")
	pdf.CellFormat(60, 8, "Total Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	count := 0
	for _, t := range totals {
		pdf.CellFormat(40, 8, t.Currency, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%d", t.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(60, 8, currency.FormatWithCode(t.Amount, t.Currency), "1", 1, "R", false, 0, "")
		count += t.Count
	}
	if len(totals) == 0 {
		pdf.CellFormat(140, 8, "No invoices match the filter", "1", 1, "C", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total invoices: %d", count))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("INVOICE_SUMMARY_%s.pdf", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
