package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zangef1/SACPWorkflow/internal/collect"
	"github.com/zangef1/SACPWorkflow/internal/pathutil"
	"github.com/zangef1/SACPWorkflow/internal/progress"
)

// newCollectCmd creates the 'collect' command.
func newCollectCmd() *cobra.Command {
	var (
		dest  string
		split int
	)

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Stage finished molecules into SACP collection directories",
		Long: `Copy each converted molecule's lig.top and lig.slv into a SACP
collection under the destination directory. With --split N the
molecules are distributed across SACP_1 through SACP_N; the default is
a single SACP directory.

Molecules missing either file are skipped with a warning but keep
their slot in the distribution, so reruns after fixing them land each
molecule in the same collection. A free-space preflight runs before
the first copy, and a verify pass re-counts every collection after the
last one.

Example:
  sacpflow collect --dest /work/batches
  sacpflow collect --dest /work/batches --split 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			library, err := pathutil.Resolve(libraryRoot(cfg))
			if err != nil {
				return err
			}
			destDir, err := pathutil.Resolve(dest)
			if err != nil {
				return err
			}

			collector, err := collect.NewCollector(library, destDir, split, GetLogger())
			if err != nil {
				return err
			}

			rep := progress.NewReporter()
			rep.Start(-1, "staging molecules")
			collector.OnStaged = func(string) { rep.Add(1) }
			result, err := collector.Build()
			rep.Finish()
			if err != nil {
				return err
			}

			fmt.Printf("\nStaged %d molecule(s), skipped %d\n", len(result.Staged), len(result.Skipped))
			for _, name := range result.Skipped {
				fmt.Printf("  skipped: %s\n", name)
			}

			verify, err := collector.Verify()
			if err != nil {
				return err
			}
			fmt.Println("\nVerification:")
			for _, count := range verify.Counts {
				fmt.Printf("  %s: %d molecule(s)\n", count.Dir, count.Count)
			}
			fmt.Printf("  total: %d\n", verify.Total)
			if !verify.OK() {
				for _, name := range verify.Missing {
					fmt.Printf("  missing files: %s\n", name)
				}
				return fmt.Errorf("verification found %d molecule(s) with missing files", len(verify.Missing))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dest, "dest", "d", "", "Directory receiving the SACP collection(s) (required)")
	cmd.Flags().IntVar(&split, "split", 1, "Number of SACP directories to distribute molecules across")
	cmd.MarkFlagRequired("dest")

	return cmd
}
