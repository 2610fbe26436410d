package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zangef1/SACPWorkflow/internal/slurm"
)

// newNodesCmd creates the 'nodes' command.
func newNodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nodes",
		Short: "Show cluster node availability",
		Long: `Query the scheduler for per-node CPU availability. Useful before a
large submission round to judge how much will start immediately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := slurm.CheckNodes(GetContext(), "")
			if err != nil {
				return err
			}
			fmt.Println("Current node availability:")
			fmt.Print(table)
			return nil
		},
	}
}
