package cli

import (
	"strconv"

	"loyaltyadmin/internal/currency"
	"loyaltyadmin/internal/repositories"
	"loyaltyadmin/internal/view"

	"github.com/spf13/cobra"
)

func customerLayout() view.List[repositories.Customer] {
	return view.List[repositories.Customer]{
		ID: func(r repositories.Customer) int64 { return r.ID },
		Columns: []view.Column[repositories.Customer]{
			{Field: "id", Title: "ID", Width: 6, Value: func(r repositories.Customer) string { return strconv.FormatInt(r.ID, 10) }},
			{Field: "fullName", Title: "Name", Width: 24, Value: func(r repositories.Customer) string { return r.FullName }},
			{Field: "phone", Title: "Phone", Width: 14, Value: func(r repositories.Customer) string { return r.Phone }},
			{Field: "points", Title: "Points", Width: 8, Value: func(r repositories.Customer) string { return strconv.FormatInt(r.Points, 10) }},
			{Field: "totalSpent", Title: "Spent", Width: 14, Value: func(r repositories.Customer) string {
				return currency.FormatAmount(r.TotalSpent)
			}},
			{Field: "createdAt", Title: "Created", Width: 19, Value: func(r repositories.Customer) string { return r.CreatedAt }},
		},
	}
}

func newCustomersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Browse and edit loyalty customers",
	}
	cmd.AddCommand(newCustomersListCmd(), newCustomersDeleteCmd(), newCustomersImportCmd())
	return cmd
}

func newCustomersListCmd() *cobra.Command {
	var opts listOptions
	var minPoints int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := map[string]string{}
			if minPoints > 0 {
				filters["minPoints"] = strconv.Itoa(minPoints)
			}
			return runList(cmd.Context(), "customers", "customers", "totalCustomers", "fullName",
				customerLayout(), filters, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVar(&minPoints, "min-points", 0, "Only customers with at least this many points")
	return cmd
}

func newCustomersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete id...",
		Short: "Delete customers by id (one batched request)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return runDelete[repositories.Customer](cmd.Context(), "customers", "customers", "totalCustomers", ids)
		},
	}
}

func newCustomersImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import file.csv",
		Short: "Bulk-import customers from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport[repositories.Customer](cmd.Context(), "customers", "customers", "totalCustomers", args[0])
		},
	}
}
