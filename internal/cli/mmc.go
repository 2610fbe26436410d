package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zangef1/SACPWorkflow/internal/config"
	"github.com/zangef1/SACPWorkflow/internal/constants"
	"github.com/zangef1/SACPWorkflow/internal/models"
	"github.com/zangef1/SACPWorkflow/internal/pathutil"
	"github.com/zangef1/SACPWorkflow/internal/selection"
	"github.com/zangef1/SACPWorkflow/internal/track"
)

// newMMCCmd creates the 'mmc' command group.
func newMMCCmd() *cobra.Command {
	var collectionDir string

	mmcCmd := &cobra.Command{
		Use:   "mmc",
		Short: "MMC batch simulation stage",
		Long: `Track and submit MMC simulations over a SACP collection. Molecules
are chunked into batches; each batch becomes one scheduler job running
its members concurrently under GNU parallel.

Commands:
  list    - Show collected molecules and whether output exists
  submit  - Chunk the selected molecules into batches and submit them`,
	}

	mmcCmd.PersistentFlags().StringVarP(&collectionDir, "collection", "C", "", "SACP collection directory (required)")
	mmcCmd.MarkPersistentFlagRequired("collection")

	mmcCmd.AddCommand(newMMCListCmd(&collectionDir))
	mmcCmd.AddCommand(newMMCSubmitCmd(&collectionDir))

	return mmcCmd
}

// mmcPreflight checks the simulation preconditions and resolves the
// collection (descending one nested SACP level) and the engine binary.
// Both paths are made absolute: batch scripts run from molecule
// directories, so a relative binary path would dangle at execution.
func mmcPreflight(collectionDir string, cfg *config.Config) (string, string, error) {
	collection, err := pathutil.Resolve(collectionDir)
	if err != nil {
		return "", "", err
	}
	if !track.DirExists(collection) {
		return "", "", fmt.Errorf("SACP directory not found: %s", collectionDir)
	}
	dir := track.ResolveNested(collection, constants.CollectionDirName)
	programDir := cfg.MMC.ProgramDir
	if programDir != "" {
		if programDir, err = pathutil.Resolve(programDir); err != nil {
			return "", "", err
		}
	}
	if !track.DirExists(programDir) {
		return "", "", fmt.Errorf("MMC directory not found: %s", cfg.MMC.ProgramDir)
	}
	binary := filepath.Join(programDir, constants.MMCBinary)
	if !track.FileExists(binary) {
		return "", "", fmt.Errorf("%s not found in %s", constants.MMCBinary, cfg.MMC.ProgramDir)
	}
	return dir, binary, nil
}

// mmcScan lists collected molecules carrying a simulation input.
func mmcScan(dir string) ([]models.JobRecord, error) {
	return scanLibrary(dir, track.MMCMarkers, track.ClassifyMMC)
}

// newMMCListCmd creates the 'mmc list' command.
func newMMCListCmd(collectionDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List collected molecules ready for simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dir, _, err := mmcPreflight(*collectionDir, cfg)
			if err != nil {
				return err
			}
			jobs, err := mmcScan(dir)
			if err != nil {
				return err
			}
			printJobTable(jobs)
			return nil
		},
	}
}

// newMMCSubmitCmd creates the 'mmc submit' command.
func newMMCSubmitCmd(collectionDir *string) *cobra.Command {
	var (
		selFlags   selection.Flags
		batchSize  int
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit MMC batches for the selected molecules",
		Long: `Chunk the selected molecules by batch size and submit one scheduler
job per chunk. Every chunk member shares its batch's outcome in the
summary. Without a selection flag every collected molecule is
submitted.

Batch scripts land in slurm_logs/ under the working directory, along
with the scheduler's per-batch log files.

Example:
  sacpflow mmc submit -C /work/batches/SACP
  sacpflow mmc submit -C /work/batches/SACP_2 --batch-size 16 -n 32`,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := selectionOrAll(selFlags)
			if err != nil {
				return err
			}
			cfg, err := loadValidConfig()
			if err != nil {
				return err
			}
			dir, binary, err := mmcPreflight(*collectionDir, cfg)
			if err != nil {
				return err
			}
			jobs, err := mmcScan(dir)
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
			if batchSize == 0 {
				batchSize = cfg.MMC.BatchSize
			}
			fmt.Printf("Submitting %d molecule(s) in batches of %d\n", len(selected), batchSize)

			summary, logsDir, err := newPipeline(cfg).SubmitBatches(GetContext(), selected, cfg.Scheduler.MMC, binary, batchSize)
			if err != nil {
				return err
			}
			fmt.Printf("\nBatch scripts and scheduler logs in %s\n", logsDir)
			printSummary("Submitted", summary)
			return writeSummaryReport(reportPath, "mmc", summary)
		},
	}

	addSelectionFlags(cmd, &selFlags)
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Molecules per batch (default from config)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write per-job outcomes as CSV to this path")

	return cmd
}
