package cli

import (
	"fmt"
	"strconv"

	"loyaltyadmin/internal/repositories"
	"loyaltyadmin/internal/view"

	"github.com/spf13/cobra"
)

func rewardLayout() view.List[repositories.Reward] {
	return view.List[repositories.Reward]{
		ID: func(r repositories.Reward) int64 { return r.ID },
		Columns: []view.Column[repositories.Reward]{
			{Field: "id", Title: "ID", Width: 6, Value: func(r repositories.Reward) string { return strconv.FormatInt(r.ID, 10) }},
			{Field: "customerName", Title: "Customer", Width: 24, Value: func(r repositories.Reward) string { return r.CustomerName }},
			{Field: "points", Title: "Points", Width: 8, Value: func(r repositories.Reward) string { return strconv.FormatInt(r.Points, 10) }},
			{Field: "status", Title: "Status", Width: 10, Value: func(r repositories.Reward) string { return r.Status }},
			{Field: "requestedAt", Title: "Requested", Width: 19, Value: func(r repositories.Reward) string { return r.RequestedAt }},
		},
	}
}

func newRewardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "Browse and decide reward requests",
	}
	cmd.AddCommand(newRewardsListCmd(), newRewardsApproveCmd(), newRewardsRejectCmd(), newRewardsDeleteCmd())
	return cmd
}

func newRewardsListCmd() *cobra.Command {
	var opts listOptions
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reward requests",
		Long: `List reward requests.

Examples:
  # Pending requests only
  loyadm rewards list --status pending`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := map[string]string{}
			if status != "" {
				filters["status"] = status
			}
			return runList(cmd.Context(), "rewards", "rewards", "totalRewards", "customerName",
				rewardLayout(), filters, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&status, "status", "", "Filter by status: pending, approved or rejected")
	return cmd
}

func newRewardsApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve id",
		Short: "Approve a pending reward request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return decideReward(cmd, args[0], true)
		},
	}
}

func newRewardsRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject id",
		Short: "Reject a pending reward request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return decideReward(cmd, args[0], false)
		},
	}
}

func decideReward(cmd *cobra.Command, arg string, approve bool) error {
	ids, err := parseIDs([]string{arg})
	if err != nil {
		return err
	}
	if err := newAPIClient().DecideReward(cmd.Context(), ids[0], approve); err != nil {
		return err
	}
	if approve {
		fmt.Printf("Reward %d approved\n", ids[0])
	} else {
		fmt.Printf("Reward %d rejected\n", ids[0])
	}
	return nil
}

func newRewardsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete id...",
		Short: "Delete reward requests by id (one batched request)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return runDelete[repositories.Reward](cmd.Context(), "rewards", "rewards", "totalRewards", ids)
		},
	}
}
