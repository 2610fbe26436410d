package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/zangef1/SACPWorkflow/internal/constants"
	"github.com/zangef1/SACPWorkflow/internal/models"
	"github.com/zangef1/SACPWorkflow/internal/slurm"
)

// gaussianSpec is what distinguishes the two single-molecule Gaussian
// stages; the script template and submission loop are shared.
type gaussianSpec struct {
	namePrefix string // scheduler job name prefix
	workSub    string // subdirectory of the molecule dir holding the deck
	runPrefix  string // per-round directory prefix
}

// SubmitOpt renders and submits one optimization job per selected
// molecule. The returned run directory holds the rendered scripts and
// receives the scheduler logs.
func (p *Pipeline) SubmitOpt(ctx context.Context, jobs []models.JobRecord, params slurm.Params) (*models.SubmissionSummary, string, error) {
	return p.submitGaussian(ctx, gaussianSpec{runPrefix: constants.OptRunDirPrefix}, jobs, params)
}

// SubmitResp renders and submits one RESP charge job per selected
// molecule. Jobs run inside the molecule's RESP subdirectory and carry
// a resp_ name prefix, keeping the two Gaussian stages apart in the
// queue listing.
func (p *Pipeline) SubmitResp(ctx context.Context, jobs []models.JobRecord, params slurm.Params) (*models.SubmissionSummary, string, error) {
	return p.submitGaussian(ctx, gaussianSpec{
		namePrefix: "resp_",
		workSub:    constants.RespDirName,
		runPrefix:  constants.RespRunDirPrefix,
	}, jobs, params)
}

func (p *Pipeline) submitGaussian(ctx context.Context, spec gaussianSpec, jobs []models.JobRecord, params slurm.Params) (*models.SubmissionSummary, string, error) {
	runDir, err := p.newRunDir(spec.runPrefix)
	if err != nil {
		return nil, "", err
	}

	summary := &models.SubmissionSummary{}
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			summary.AddFailure(job, err.Error())
			continue
		}
		workDir, err := filepath.Abs(filepath.Join(job.Dir, spec.workSub))
		if err != nil {
			summary.AddFailure(job, fmt.Sprintf("resolve work directory: %v", err))
			continue
		}
		jobName := spec.namePrefix + job.Name
		scriptPath := slurm.GaussianScriptPath(runDir, jobName)
		script := slurm.GaussianJob{
			JobName: jobName,
			WorkDir: workDir,
			LogDir:  runDir,
			Params:  params,
			Env:     p.Env,
		}
		if err := slurm.WriteGaussianScript(scriptPath, script); err != nil {
			summary.AddFailure(job, err.Error())
			continue
		}
		jobID, err := p.Submitter.Submit(ctx, scriptPath)
		if err != nil {
			p.Log.Warn().Str("molecule", job.Name).Msg(err.Error())
			summary.AddFailure(job, err.Error())
			continue
		}
		p.Log.Info().Str("molecule", job.Name).Str("job_id", jobID).Msg("submitted")
		summary.AddSuccess(job, jobID)
	}
	return summary, runDir, nil
}
