package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zangef1/SACPWorkflow/internal/config"
	"github.com/zangef1/SACPWorkflow/internal/models"
	"github.com/zangef1/SACPWorkflow/internal/pipeline"
	"github.com/zangef1/SACPWorkflow/internal/selection"
	"github.com/zangef1/SACPWorkflow/internal/track"
)

// newOptCmd creates the 'opt' command group.
func newOptCmd() *cobra.Command {
	optCmd := &cobra.Command{
		Use:   "opt",
		Short: "Structure optimization stage",
		Long: `Track and submit Gaussian structure optimizations.

Commands:
  status  - Show every molecule and its optimization state
  list    - Show only molecules still needing a run (the set submit indexes)
  submit  - Render scripts and submit selected molecules to the scheduler`,
	}

	optCmd.AddCommand(newOptStatusCmd())
	optCmd.AddCommand(newOptListCmd())
	optCmd.AddCommand(newOptSubmitCmd())

	return optCmd
}

// optScan lists library molecules carrying an optimization deck.
func optScan(cfg *config.Config) ([]models.JobRecord, error) {
	return scanLibrary(libraryRoot(cfg), track.OptMarkers, track.ClassifyOpt)
}

// newOptStatusCmd creates the 'opt status' command.
func newOptStatusCmd() *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the optimization state of every molecule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			jobs, err := optScan(cfg)
			if err != nil {
				return err
			}
			printJobTable(jobs)
			return writeStatusReport(reportPath, "optimization", jobs)
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "Write the status table as CSV to this path")

	return cmd
}

// newOptListCmd creates the 'opt list' command. The listed indices are
// exactly the indices 'opt submit --indices' refers to.
func newOptListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List molecules still needing an optimization run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			jobs, err := optScan(cfg)
			if err != nil {
				return err
			}
			printJobTable(pipeline.FilterIncomplete(jobs))
			return nil
		},
	}
}

// newOptSubmitCmd creates the 'opt submit' command.
func newOptSubmitCmd() *cobra.Command {
	var (
		selFlags   selection.Flags
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit optimization jobs for the selected molecules",
		Long: `Submit one scheduler job per selected molecule. Selection indices
refer to the 'opt list' table: molecules whose log already shows normal
termination are not eligible.

Rendered scripts and the scheduler's log files land in a timestamped
gaussian_jobs_<ts>/ directory under the working directory.

Example:
  sacpflow opt submit --all
  sacpflow opt submit -i 1,3,5
  sacpflow opt submit -n 10 -s 21 --report opt_run.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := selection.FromFlags(selFlags)
			if err != nil {
				return err
			}
			cfg, err := loadValidConfig()
			if err != nil {
				return err
			}
			jobs, err := optScan(cfg)
			if err != nil {
				return err
			}

			selected, err := policy.Apply(pipeline.FilterIncomplete(jobs))
			if err != nil {
				return err
			}
			if len(selected) == 0 {
				fmt.Println("No jobs to submit")
				return nil
			}
			printSelection("Submitting", selected)

			summary, runDir, err := newPipeline(cfg).SubmitOpt(GetContext(), selected, cfg.Scheduler.Opt)
			if err != nil {
				return err
			}
			fmt.Printf("\nScripts and scheduler logs in %s\n", runDir)
			printSummary("Submitted", summary)
			return writeSummaryReport(reportPath, "optimization", summary)
		},
	}

	addSelectionFlags(cmd, &selFlags)
	cmd.Flags().StringVar(&reportPath, "report", "", "Write per-job outcomes as CSV to this path")

	return cmd
}
