// Package report exports per-molecule outcomes as CSV so a large run
// can be triaged in a spreadsheet afterwards. Reports are write-only
// output; pipeline state stays derived from the filesystem.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zangef1/SACPWorkflow/internal/models"
)

// Row is one molecule outcome in a run report.
type Row struct {
	Molecule string
	Stage    string
	Status   string
	JobID    string
	Detail   string
}

var header = []string{"Molecule", "Stage", "Status", "JobID", "Detail", "Timestamp"}

// FromSummary flattens a submission summary into rows for a stage.
// Successes carrying a scheduler ID read "submitted"; local stages
// without one read "done".
func FromSummary(stage string, summary *models.SubmissionSummary) []Row {
	rows := make([]Row, 0, summary.Total())
	for _, outcome := range summary.Successes {
		status := "done"
		if outcome.JobID != "" {
			status = "submitted"
		}
		rows = append(rows, Row{
			Molecule: outcome.Job.Name,
			Stage:    stage,
			Status:   status,
			JobID:    outcome.JobID,
		})
	}
	for _, outcome := range summary.Failures {
		rows = append(rows, Row{
			Molecule: outcome.Job.Name,
			Stage:    stage,
			Status:   "failed",
			Detail:   outcome.Reason,
		})
	}
	return rows
}

// FromRecords converts scanned job records into rows, preserving scan
// order. Status is the classified stage name.
func FromRecords(stage string, jobs []models.JobRecord) []Row {
	rows := make([]Row, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, Row{
			Molecule: job.Name,
			Stage:    stage,
			Status:   job.Stage.String(),
			Detail:   job.Detail,
		})
	}
	return rows
}

// Write renders rows as CSV at path. The report lands via a temporary
// sibling and rename, so a reader never sees a partial file. Every row
// carries the same timestamp, making concatenated reports attributable
// to their runs.
func Write(path string, rows []Row) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".report-*.csv")
	if err != nil {
		return fmt.Errorf("create report temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	now := time.Now().Format(time.RFC3339)
	writer := csv.NewWriter(tmp)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	for _, row := range rows {
		record := []string{row.Molecule, row.Stage, row.Status, row.JobID, row.Detail, now}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("install report: %w", err)
	}
	return nil
}
