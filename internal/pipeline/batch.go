package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zangef1/SACPWorkflow/internal/constants"
	"github.com/zangef1/SACPWorkflow/internal/models"
	"github.com/zangef1/SACPWorkflow/internal/slurm"
)

// SubmitBatches chunks the selected simulation directories and submits
// one GNU parallel job per chunk. A chunk shares one scheduler outcome,
// so every member carries its batch's job ID or its failure reason.
func (p *Pipeline) SubmitBatches(ctx context.Context, jobs []models.JobRecord, params slurm.Params, binary string, batchSize int) (*models.SubmissionSummary, string, error) {
	if batchSize < 1 {
		return nil, "", fmt.Errorf("batch size must be at least 1, got %d", batchSize)
	}
	logsDir, err := p.batchLogsDir()
	if err != nil {
		return nil, "", err
	}
	binAbs, err := filepath.Abs(binary)
	if err != nil {
		return nil, "", fmt.Errorf("resolve simulation binary: %w", err)
	}

	summary := &models.SubmissionSummary{}
	for start := 0; start < len(jobs); start += batchSize {
		end := start + batchSize
		if end > len(jobs) {
			end = len(jobs)
		}
		chunk := jobs[start:end]
		number := start/batchSize + 1

		if reason := p.batchFails(ctx, chunk, number, logsDir, binAbs, params); reason != "" {
			for _, job := range chunk {
				summary.AddFailure(job, reason)
			}
			continue
		}

		jobID, err := p.Submitter.Submit(ctx, slurm.BatchScriptPath(logsDir, number))
		if err != nil {
			p.Log.Error().Int("batch", number).Msg(err.Error())
			for _, job := range chunk {
				summary.AddFailure(job, err.Error())
			}
			continue
		}
		p.Log.Info().
			Int("batch", number).
			Str("job_id", jobID).
			Int("molecules", len(chunk)).
			Msg("submitted batch")
		for _, job := range chunk {
			summary.AddSuccess(job, jobID)
		}
	}
	return summary, logsDir, nil
}

// batchFails prepares one batch script and returns a failure reason, or
// the empty string once the script is on disk and ready to submit.
func (p *Pipeline) batchFails(ctx context.Context, chunk []models.JobRecord, number int, logsDir, binary string, params slurm.Params) string {
	if err := ctx.Err(); err != nil {
		return err.Error()
	}
	workDirs := make([]string, 0, len(chunk))
	for _, job := range chunk {
		dir, err := filepath.Abs(job.Dir)
		if err != nil {
			return fmt.Sprintf("resolve %s: %v", job.Dir, err)
		}
		workDirs = append(workDirs, dir)
	}
	batch := slurm.BatchJob{
		JobName:  fmt.Sprintf("MMC_batch_%d", number),
		Number:   number,
		LogDir:   logsDir,
		Binary:   binary,
		WorkDirs: workDirs,
		Params:   params,
		Env:      p.Env,
	}
	if err := slurm.WriteBatchScript(slurm.BatchScriptPath(logsDir, number), batch); err != nil {
		return err.Error()
	}
	return ""
}

// batchLogsDir resolves the fixed scheduler-log directory batch rounds
// share. Batch scripts are numbered from 1 each round and a later round
// overwrites them; the %j-suffixed scheduler logs accumulate.
func (p *Pipeline) batchLogsDir() (string, error) {
	parent := p.RunRoot
	if parent == "" {
		parent = "."
	}
	dir := filepath.Join(parent, constants.MMCLogsDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create logs directory: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve logs directory: %w", err)
	}
	return abs, nil
}
