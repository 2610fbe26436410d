// Package pipeline orchestrates stage operations: scan state off the
// filesystem, act on the operator's selection, and fold per-molecule
// outcomes into a summary. Everything here is synchronous; concurrency
// belongs to the scheduler across allocations and to GNU parallel
// inside a batch allocation.
package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/zangef1/SACPWorkflow/internal/logging"
	"github.com/zangef1/SACPWorkflow/internal/models"
	"github.com/zangef1/SACPWorkflow/internal/slurm"
)

// Pipeline carries the dependencies every stage operation shares.
type Pipeline struct {
	Submitter slurm.Submitter
	Env       slurm.Environment
	Log       *logging.Logger

	// RunRoot receives the per-round script and scheduler-log
	// directories. Empty means the working directory, which is where
	// operators expect to find them.
	RunRoot string
}

// FilterIncomplete narrows a scan to molecules still needing their
// optimization run. Submission and list output share this filtered
// order, so the indices an operator reads are the indices selection
// consumes.
func FilterIncomplete(jobs []models.JobRecord) []models.JobRecord {
	var out []models.JobRecord
	for _, job := range jobs {
		if job.Stage != models.StageOptDone {
			out = append(out, job)
		}
	}
	return out
}

// newRunDir creates a per-round directory under RunRoot and returns its
// absolute path. Scheduler log paths render into scripts, so they must
// not depend on the submission working directory.
func (p *Pipeline) newRunDir(prefix string) (string, error) {
	parent := p.RunRoot
	if parent == "" {
		parent = "."
	}
	dir, err := slurm.NewRunDir(parent, prefix)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve run directory: %w", err)
	}
	return abs, nil
}
