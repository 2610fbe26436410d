package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zangef1/SACPWorkflow/internal/prep"
	"github.com/zangef1/SACPWorkflow/internal/selection"
	"github.com/zangef1/SACPWorkflow/internal/track"
)

// newRespCmd creates the 'resp' command group.
func newRespCmd() *cobra.Command {
	respCmd := &cobra.Command{
		Use:   "resp",
		Short: "RESP charge calculation stage",
		Long: `Set up and submit RESP charge runs for optimized molecules.

Commands:
  setup   - Create RESP/ directories with checkpoints and charge decks
  list    - Show molecules with a RESP deck and their run state
  submit  - Submit selected RESP runs to the scheduler`,
	}

	respCmd.AddCommand(newRespSetupCmd())
	respCmd.AddCommand(newRespListCmd())
	respCmd.AddCommand(newRespSubmitCmd())

	return respCmd
}

// newRespSetupCmd creates the 'resp setup' command.
func newRespSetupCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create RESP input directories for optimized molecules",
		Long: `For every molecule holding a checkpoint and a geometry file, create
a RESP/ subdirectory, copy the checkpoints in, and write the RESP deck
with the charge and multiplicity read from the geometry.

Molecules already holding RESP/mpp.com are skipped unless --force.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			summary, err := prep.SetupResp(prep.RespOptions{
				LibraryDir: libraryRoot(cfg),
				Force:      force,
			}, GetLogger())
			if err != nil {
				return err
			}
			printPrepSummary(summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Regenerate RESP decks that already exist")

	return cmd
}

// newRespListCmd creates the 'resp list' command.
func newRespListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List molecules with a RESP deck",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			jobs, err := scanLibrary(libraryRoot(cfg), track.RespMarkers, track.ClassifyResp)
			if err != nil {
				return err
			}
			printJobTable(jobs)
			return nil
		},
	}
}

// newRespSubmitCmd creates the 'resp submit' command. Eligibility is
// the RESP deck alone: rerunning a finished charge calculation is the
// operator's call, so no completion filter applies.
func newRespSubmitCmd() *cobra.Command {
	var (
		selFlags   selection.Flags
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit RESP runs for the selected molecules",
		Long: `Submit one scheduler job per selected molecule, running inside its
RESP/ subdirectory with a resp_ job-name prefix. Scripts and scheduler
logs land in a timestamped resp_jobs_<ts>/ directory.

Example:
  sacpflow resp submit --all
  sacpflow resp submit -n 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := selection.FromFlags(selFlags)
			if err != nil {
				return err
			}
			cfg, err := loadValidConfig()
			if err != nil {
				return err
			}
			jobs, err := scanLibrary(libraryRoot(cfg), track.RespMarkers, track.ClassifyResp)
			if err != nil {
				return err
			}

			selected, err := policy.Apply(jobs)
			if err != nil {
				return err
			}
			if len(selected) == 0 {
				fmt.Println("No jobs to submit")
				return nil
			}
			printSelection("Submitting", selected)

			summary, runDir, err := newPipeline(cfg).SubmitResp(GetContext(), selected, cfg.Scheduler.Resp)
			if err != nil {
				return err
			}
			fmt.Printf("\nScripts and scheduler logs in %s\n", runDir)
			printSummary("Submitted", summary)
			return writeSummaryReport(reportPath, "resp", summary)
		},
	}

	addSelectionFlags(cmd, &selFlags)
	cmd.Flags().StringVar(&reportPath, "report", "", "Write per-job outcomes as CSV to this path")

	return cmd
}
