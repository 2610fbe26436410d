package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zangef1/SACPWorkflow/internal/config"
	"github.com/zangef1/SACPWorkflow/internal/models"
	"github.com/zangef1/SACPWorkflow/internal/pathutil"
	"github.com/zangef1/SACPWorkflow/internal/pipeline"
	"github.com/zangef1/SACPWorkflow/internal/prep"
	"github.com/zangef1/SACPWorkflow/internal/report"
	"github.com/zangef1/SACPWorkflow/internal/selection"
	"github.com/zangef1/SACPWorkflow/internal/slurm"
	"github.com/zangef1/SACPWorkflow/internal/track"
)

// libraryRoot resolves the molecule library directory: the configured
// path, or the parent of the working directory when unset. Stage tools
// conventionally live in a File_Prep directory inside the library, so
// the parent is the library itself.
func libraryRoot(cfg *config.Config) string {
	if cfg.Library != "" {
		return cfg.Library
	}
	return ".."
}

// newPipeline builds the stage orchestrator from the configuration.
func newPipeline(cfg *config.Config) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Submitter: &slurm.CommandSubmitter{Command: cfg.Scheduler.Submit},
		Env:       cfg.Env,
		Log:       GetLogger(),
	}
}

// addSelectionFlags registers the job selection flags shared by the
// stage commands.
func addSelectionFlags(cmd *cobra.Command, f *selection.Flags) {
	cmd.Flags().BoolVarP(&f.All, "all", "a", false, "Select every eligible job")
	cmd.Flags().StringVarP(&f.Indices, "indices", "i", "", "Comma-separated 1-based job indices, e.g. 1,3,5")
	cmd.Flags().IntVarP(&f.Number, "number", "n", 0, "Select a run of N jobs")
	cmd.Flags().IntVarP(&f.Start, "start", "s", 0, "1-based start of the run (with --number)")
}

// selectionOrAll builds the selection policy, defaulting to every
// eligible job when no selection flag is given. Commands whose original
// tools required an explicit choice call selection.FromFlags directly.
func selectionOrAll(f selection.Flags) (selection.Policy, error) {
	if !f.All && f.Indices == "" && f.Number == 0 {
		return selection.All{}, nil
	}
	return selection.FromFlags(f)
}

// scanLibrary lists the marker-bearing molecule directories under root
// in lexical order, classified by stage. The root is resolved first so
// job records carry absolute paths even for the ".." default.
func scanLibrary(root string, markers []string, classify track.ClassifyFunc) ([]models.JobRecord, error) {
	resolved, err := pathutil.Resolve(root)
	if err != nil {
		return nil, err
	}
	result, err := track.Scan(track.ScanOptions{
		RootDir:  resolved,
		Markers:  markers,
		Classify: classify,
	})
	if err != nil {
		return nil, err
	}
	return result.Jobs, nil
}

// printJobTable renders an indexed status table. The indices are the
// ones index-based selection consumes.
func printJobTable(jobs []models.JobRecord) {
	if len(jobs) == 0 {
		fmt.Println("No jobs found")
		return
	}
	fmt.Printf("%-5s %-32s %-24s %s\n", "IDX", "MOLECULE", "STATUS", "DETAIL")
	for i, job := range jobs {
		fmt.Printf("%-5d %-32s %-24s %s\n", i+1, job.Name, job.Stage, job.Detail)
	}
	fmt.Printf("\n%d job(s)\n", len(jobs))
}

// printSelection echoes what a stage command is about to act on.
func printSelection(action string, jobs []models.JobRecord) {
	fmt.Printf("%s %d job(s):\n", action, len(jobs))
	for _, job := range jobs {
		fmt.Printf("  - %s\n", job.Name)
	}
}

// printSummary renders the end-of-run outcome split. Successes carry
// their scheduler job ID when the stage submitted anything.
func printSummary(action string, summary *models.SubmissionSummary) {
	fmt.Printf("\n%s %d of %d job(s)\n", action, len(summary.Successes), summary.Total())
	for _, s := range summary.Successes {
		if s.JobID != "" {
			fmt.Printf("  %s: job %s\n", s.Job.Name, s.JobID)
		} else {
			fmt.Printf("  %s: done\n", s.Job.Name)
		}
	}
	if len(summary.Failures) > 0 {
		fmt.Printf("\nFailed %d job(s):\n", len(summary.Failures))
		for _, f := range summary.Failures {
			fmt.Printf("  %s: %s\n", f.Job.Name, f.Reason)
		}
	}
}

// printPrepSummary renders the outcome of a preparation pass.
func printPrepSummary(summary *prep.Summary) {
	fmt.Printf("\nPrepared %d, skipped %d, failed %d\n",
		len(summary.Done), len(summary.Skipped), len(summary.Failed))
	for _, name := range summary.Failed {
		fmt.Printf("  failed: %s\n", name)
	}
}

// writeSummaryReport exports the run report when --report was given.
func writeSummaryReport(path, stage string, summary *models.SubmissionSummary) error {
	if path == "" {
		return nil
	}
	if err := report.Write(path, report.FromSummary(stage, summary)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	GetLogger().Info().Str("path", path).Msg("report written")
	return nil
}

// writeStatusReport exports a status scan when --report was given.
func writeStatusReport(path, stage string, jobs []models.JobRecord) error {
	if path == "" {
		return nil
	}
	if err := report.Write(path, report.FromRecords(stage, jobs)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	GetLogger().Info().Str("path", path).Msg("report written")
	return nil
}
