package cli

import (
	"fmt"
	"strconv"

	"loyaltyadmin/internal/currency"
	"loyaltyadmin/internal/repositories"
	"loyaltyadmin/internal/view"

	"github.com/spf13/cobra"
)

func investorLayout() view.List[repositories.Investor] {
	return view.List[repositories.Investor]{
		ID: func(r repositories.Investor) int64 { return r.ID },
		Columns: []view.Column[repositories.Investor]{
			{Field: "id", Title: "ID", Width: 6, Value: func(r repositories.Investor) string { return strconv.FormatInt(r.ID, 10) }},
			{Field: "fullName", Title: "Name", Width: 24, Value: func(r repositories.Investor) string { return r.FullName }},
			{Field: "phone", Title: "Phone", Width: 14, Value: func(r repositories.Investor) string { return r.Phone }},
			{Field: "investedAmount", Title: "Invested", Width: 16, Value: func(r repositories.Investor) string {
				return currency.FormatWithCode(r.InvestedAmount, r.Currency)
			}},
			{Field: "sharePercent", Title: "Share %", Width: 8, Value: func(r repositories.Investor) string {
				return strconv.FormatFloat(r.SharePercent, 'f', 2, 64)
			}},
			{Field: "createdAt", Title: "Created", Width: 19, Value: func(r repositories.Investor) string { return r.CreatedAt }},
		},
	}
}

func newInvestorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "investors",
		Short: "Browse and edit investors",
	}
	cmd.AddCommand(newInvestorsListCmd(), newInvestorsDeleteCmd(), newInvestorsImportCmd())
	return cmd
}

func newInvestorsListCmd() *cobra.Command {
	var opts listOptions
	var currencyCode string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List investors",
		Long: `List investors one page at a time.

Examples:
  # First page, default sort
  loyadm investors list

  # Search by name, sorted by invested amount
  loyadm investors list --search ahmed --sort investedAmount --order desc

  # Only SAR investors as JSON
  loyadm investors list --currency SAR --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := map[string]string{}
			if currencyCode != "" {
				filters["currency"] = currencyCode
			}
			return runList(cmd.Context(), "investors", "investors", "totalInvestors", "fullName",
				investorLayout(), filters, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&currencyCode, "currency", "", "Filter by currency code")
	return cmd
}

func newInvestorsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete id...",
		Short: "Delete investors by id (one batched request)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return runDelete[repositories.Investor](cmd.Context(), "investors", "investors", "totalInvestors", ids)
		},
	}
}

func newInvestorsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import file.csv",
		Short: "Bulk-import investors from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport[repositories.Investor](cmd.Context(), "investors", "investors", "totalInvestors", args[0])
		},
	}
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
