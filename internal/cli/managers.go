package cli

import (
	"strconv"

	"loyaltyadmin/internal/repositories"
	"loyaltyadmin/internal/view"

	"github.com/spf13/cobra"
)

func managerLayout() view.List[repositories.Manager] {
	return view.List[repositories.Manager]{
		ID: func(r repositories.Manager) int64 { return r.ID },
		Columns: []view.Column[repositories.Manager]{
			{Field: "id", Title: "ID", Width: 6, Value: func(r repositories.Manager) string { return strconv.FormatInt(r.ID, 10) }},
			{Field: "fullName", Title: "Name", Width: 24, Value: func(r repositories.Manager) string { return r.FullName }},
			{Field: "userName", Title: "Username", Width: 16, Value: func(r repositories.Manager) string { return r.UserName }},
			{Field: "role", Title: "Role", Width: 12, Value: func(r repositories.Manager) string { return r.Role }},
			{Field: "createdAt", Title: "Created", Width: 19, Value: func(r repositories.Manager) string { return r.CreatedAt }},
		},
	}
}

func newManagersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "managers",
		Short: "Browse and edit manager accounts",
	}
	cmd.AddCommand(newManagersListCmd(), newManagersDeleteCmd())
	return cmd
}

func newManagersListCmd() *cobra.Command {
	var opts listOptions
	var role string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List managers",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := map[string]string{}
			if role != "" {
				filters["role"] = role
			}
			return runList(cmd.Context(), "managers", "managers", "totalManagers", "fullName",
				managerLayout(), filters, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&role, "role", "", "Filter by role")
	return cmd
}

func newManagersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete id...",
		Short: "Delete managers by id (one batched request)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return runDelete[repositories.Manager](cmd.Context(), "managers", "managers", "totalManagers", ids)
		},
	}
}
