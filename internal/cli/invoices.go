package cli

import (
	"fmt"
	"os"
	"strconv"

	"loyaltyadmin/internal/currency"
	"loyaltyadmin/internal/repositories"
	"loyaltyadmin/internal/view"

	"github.com/spf13/cobra"
)

func invoiceLayout() view.List[repositories.Invoice] {
	return view.List[repositories.Invoice]{
		ID: func(r repositories.Invoice) int64 { return r.ID },
		Columns: []view.Column[repositories.Invoice]{
			{Field: "id", Title: "ID", Width: 6, Value: func(r repositories.Invoice) string { return strconv.FormatInt(r.ID, 10) }},
			{Field: "invoiceNumber", Title: "Number", Width: 14, Value: func(r repositories.Invoice) string { return r.InvoiceNumber }},
			{Field: "customerName", Title: "Customer", Width: 24, Value: func(r repositories.Invoice) string { return r.CustomerName }},
			{Field: "amount", Title: "Amount", Width: 16, Value: func(r repositories.Invoice) string {
				return currency.FormatWithCode(r.Amount, r.Currency)
			}},
			{Field: "createdAt", Title: "Created", Width: 19, Value: func(r repositories.Invoice) string { return r.CreatedAt }},
		},
	}
}

func newInvoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Browse invoices and download summary reports",
	}
	cmd.AddCommand(newInvoicesListCmd(), newInvoicesReportCmd(), newInvoicesDeleteCmd())
	return cmd
}

func newInvoicesListCmd() *cobra.Command {
	var opts listOptions
	var currencyCode, fromDate, toDate string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := map[string]string{}
			if currencyCode != "" {
				filters["currency"] = currencyCode
			}
			if fromDate != "" {
				filters["fromDate"] = fromDate
			}
			if toDate != "" {
				filters["toDate"] = toDate
			}
			return runList(cmd.Context(), "invoices", "invoices", "totalInvoices", "search",
				invoiceLayout(), filters, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&currencyCode, "currency", "", "Filter by currency code")
	cmd.Flags().StringVar(&fromDate, "from", "", "Only invoices on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toDate, "to", "", "Only invoices on or before this date (YYYY-MM-DD)")
	return cmd
}

func newInvoicesReportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Download the invoice summary PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			pdf, err := newAPIClient().InvoiceReportPDF(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Printf("Report written to %s (%d bytes)\n", out, len(pdf))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "invoice-summary.pdf", "Output file")
	return cmd
}

func newInvoicesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete id...",
		Short: "Delete invoices by id (one batched request)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return runDelete[repositories.Invoice](cmd.Context(), "invoices", "invoices", "totalInvoices", ids)
		},
	}
}
