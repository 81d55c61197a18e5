package services

import (
	"bytes"
	"strings"
	"testing"

	"loyaltyadmin/internal/repositories"
)

func TestInvoiceSummaryPDF(t *testing.T) {
	loader := func(f repositories.InvoiceFilter) ([]repositories.CurrencyTotal, error) {
		return []repositories.CurrencyTotal{
			{Currency: "SAR", Count: 40, Amount: 125000.50},
			{Currency: "USD", Count: 57, Amount: 9800},
		}, nil
	}

	svc := ReportsService{Loader: loader}

	pdf, filename, err := svc.InvoiceSummaryPDF(repositories.InvoiceFilter{FromDate: "2026-01-01"})
	if err != nil {
		t.Fatalf("InvoiceSummaryPDF returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF document")
	}
	if !strings.HasPrefix(filename, "INVOICE_SUMMARY_") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestInvoiceSummaryPDFEmpty(t *testing.T) {
	loader := func(f repositories.InvoiceFilter) ([]repositories.CurrencyTotal, error) {
		return nil, nil
	}

	svc := ReportsService{Loader: loader}

	pdf, _, err := svc.InvoiceSummaryPDF(repositories.InvoiceFilter{})
	if err != nil {
		t.Fatalf("InvoiceSummaryPDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("expected a document even with no matching invoices")
	}
}
