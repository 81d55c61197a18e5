package cli

import (
	"strconv"

	"loyaltyadmin/internal/repositories"
	"loyaltyadmin/internal/view"

	"github.com/spf13/cobra"
)

func auditLogLayout() view.List[repositories.AuditLog] {
	return view.List[repositories.AuditLog]{
		ID: func(r repositories.AuditLog) int64 { return r.ID },
		Columns: []view.Column[repositories.AuditLog]{
			{Field: "id", Title: "ID", Width: 6, Value: func(r repositories.AuditLog) string { return strconv.FormatInt(r.ID, 10) }},
			{Field: "createdAt", Title: "When", Width: 19, Value: func(r repositories.AuditLog) string { return r.CreatedAt }},
			{Field: "userName", Title: "User", Width: 14, Value: func(r repositories.AuditLog) string { return r.UserName }},
			{Field: "table", Title: "Table", Width: 12, Value: func(r repositories.AuditLog) string { return r.TableName }},
			{Field: "action", Title: "Action", Width: 12, Value: func(r repositories.AuditLog) string { return r.Action }},
			{Title: "Detail", Width: 24, Value: func(r repositories.AuditLog) string { return r.Detail }},
		},
	}
}

func newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Browse the audit trail",
	}
	cmd.AddCommand(newLogsListCmd())
	return cmd
}

func newLogsListCmd() *cobra.Command {
	var opts listOptions
	var table, screen, fromDate, toDate string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List audit entries",
		Long: `List audit entries, newest first by default.

Examples:
  # Everything done to customers this month
  loyadm logs list --table customers --from 2026-08-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := map[string]string{}
			if table != "" {
				filters["table"] = table
			}
			if screen != "" {
				filters["screen"] = screen
			}
			if fromDate != "" {
				filters["fromDate"] = fromDate
			}
			if toDate != "" {
				filters["toDate"] = toDate
			}
			return runList(cmd.Context(), "logs", "logs", "totalLogs", "userName",
				auditLogLayout(), filters, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&table, "table", "", "Filter by affected table")
	cmd.Flags().StringVar(&screen, "screen", "", "Filter by originating screen")
	cmd.Flags().StringVar(&fromDate, "from", "", "Only entries on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toDate, "to", "", "Only entries on or before this date (YYYY-MM-DD)")
	return cmd
}
