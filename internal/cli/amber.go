package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zangef1/SACPWorkflow/internal/amber"
	"github.com/zangef1/SACPWorkflow/internal/selection"
	"github.com/zangef1/SACPWorkflow/internal/track"
)

// newAmberCmd creates the 'amber' command group.
func newAmberCmd() *cobra.Command {
	amberCmd := &cobra.Command{
		Use:   "amber",
		Short: "AMBER parameter generation stage",
		Long: `Run the AmberTools chain (antechamber, parmchk2, tleap) over
molecules with a finished RESP run, producing lig.top and lig.crd in
each molecule's RESP/AMBER directory.

Commands:
  list  - Show eligible molecules and whether parameters already exist
  run   - Run the tool chain for the selected molecules`,
	}

	amberCmd.AddCommand(newAmberListCmd())
	amberCmd.AddCommand(newAmberRunCmd())

	return amberCmd
}

// newAmberListCmd creates the 'amber list' command.
func newAmberListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List molecules with a RESP log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			jobs, err := scanLibrary(libraryRoot(cfg), track.AmberMarkers, track.ClassifyAmber)
			if err != nil {
				return err
			}
			printJobTable(jobs)
			return nil
		},
	}
}

// newAmberRunCmd creates the 'amber run' command. This stage runs
// locally; nothing goes through the scheduler. Eligibility is the RESP
// log's existence alone, since the tools reject a truncated log with a
// better diagnostic than a marker probe would give.
func newAmberRunCmd() *cobra.Command {
	var (
		selFlags   selection.Flags
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate AMBER parameters for the selected molecules",
		Long: `Run antechamber, parmchk2, and tleap for each selected molecule.
Without a selection flag every eligible molecule is processed.

Example:
  sacpflow amber run
  sacpflow amber run -n 20
  sacpflow amber run -i 4,7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := selectionOrAll(selFlags)
			if err != nil {
				return err
			}
			cfg, err := loadValidConfig()
			if err != nil {
				return err
			}
			jobs, err := scanLibrary(libraryRoot(cfg), track.AmberMarkers, track.ClassifyAmber)
			if err != nil {
				return err
			}

			selected, err := policy.Apply(jobs)
			if err != nil {
				return err
			}
			if len(selected) == 0 {
				fmt.Println("No jobs to process")
				return nil
			}
			printSelection("Processing", selected)

			runner := amber.NewRunner(amber.Tools{
				Antechamber: cfg.Amber.Antechamber,
				Parmchk:     cfg.Amber.Parmchk,
				Tleap:       cfg.Amber.Tleap,
			}, GetLogger())
			summary := runner.ParameterizeAll(GetContext(), selected)

			printSummary("Processed", summary)
			return writeSummaryReport(reportPath, "amber", summary)
		},
	}

	addSelectionFlags(cmd, &selFlags)
	cmd.Flags().StringVar(&reportPath, "report", "", "Write per-job outcomes as CSV to this path")

	return cmd
}
