package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zangef1/SACPWorkflow/internal/progress"
	"github.com/zangef1/SACPWorkflow/internal/selection"
	"github.com/zangef1/SACPWorkflow/internal/track"
)

// newConvertCmd creates the 'convert' command.
func newConvertCmd() *cobra.Command {
	var (
		selFlags   selection.Flags
		listOnly   bool
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Build solvent parameter files from AMBER products",
		Long: `Merge each molecule's PDB coordinates, PREPI atom types, and
topology charges into the fixed-column lig.slv file the MMC engine
reads. Eligible molecules carry MOL.pdb and MOL.prepi in RESP/AMBER;
without a selection flag all of them are converted.

Example:
  sacpflow convert
  sacpflow convert --list
  sacpflow convert -i 2,3 --report convert_run.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := selectionOrAll(selFlags)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			jobs, err := scanLibrary(libraryRoot(cfg), track.ConvertMarkers, track.ClassifyConvert)
			if err != nil {
				return err
			}
			if listOnly {
				printJobTable(jobs)
				return nil
			}

			selected, err := policy.Apply(jobs)
			if err != nil {
				return err
			}
			if len(selected) == 0 {
				fmt.Println("No jobs to convert")
				return nil
			}

			rep := progress.NewReporter()
			rep.Start(len(selected), "converting")
			summary := newPipeline(cfg).ConvertAll(selected, func(string) { rep.Add(1) })
			rep.Finish()

			printSummary("Converted", summary)
			return writeSummaryReport(reportPath, "convert", summary)
		},
	}

	addSelectionFlags(cmd, &selFlags)
	cmd.Flags().BoolVarP(&listOnly, "list", "l", false, "List eligible molecules without converting")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write per-job outcomes as CSV to this path")

	return cmd
}
