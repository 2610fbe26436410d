// Package amber drives the AmberTools parameterization chain. Each
// molecule's finished RESP log is fed through antechamber, parmchk2,
// and tleap inside RESP/AMBER, ending in the lig.top/lig.crd pair the
// collection stage ships.
package amber

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/zangef1/SACPWorkflow/internal/constants"
	"github.com/zangef1/SACPWorkflow/internal/logging"
	"github.com/zangef1/SACPWorkflow/internal/models"
)

// Tools names the AmberTools binaries the chain invokes. Values come
// from the amber section of the configuration.
type Tools struct {
	Antechamber string
	Parmchk     string
	Tleap       string
}

// Runner executes the parameterization chain, one molecule at a time.
// The chain runs locally; these tools finish in seconds and get no
// scheduler job of their own.
type Runner struct {
	tools Tools
	log   *logging.Logger
}

// NewRunner builds a Runner invoking the given tool binaries.
func NewRunner(tools Tools, log *logging.Logger) *Runner {
	return &Runner{tools: tools, log: log}
}

// tleapScript drives the topology build. The file names line up with
// the antechamber/parmchk2 outputs written into the same directory.
var tleapScript = fmt.Sprintf(`source %s
loadamberprep %s
loadAmberParams %s
LIG = loadpdb %s
saveAmberParm LIG %s %s
quit
`, constants.TleapLeaprc, constants.PrepiFile, constants.FrcmodFile,
	constants.PdbFile, constants.TopFile, constants.CrdFile)

// step is one tool invocation plus the failure reason it records.
type step struct {
	name   string
	reason string
	argv   []string
}

// chain lists the antechamber and parmchk2 invocations in execution
// order. The RESP log is passed by absolute path because every step
// runs with RESP/AMBER as its working directory.
func (r *Runner) chain(logPath string) []step {
	return []step{
		{
			name:   "mol2",
			reason: "mol2 generation failed",
			argv: []string{r.tools.Antechamber, "-fi", "gout", "-fo", "mol2",
				"-pf", "y", "-i", logPath, "-o", constants.Mol2File, "-c", "resp"},
		},
		{
			name:   "prepi",
			reason: "prepi generation failed",
			argv: []string{r.tools.Antechamber, "-fi", "gout", "-fo", "prepi",
				"-pf", "y", "-i", logPath, "-o", constants.PrepiFile, "-c", "resp"},
		},
		{
			name:   "frcmod",
			reason: "parmchk2 failed",
			argv: []string{r.tools.Parmchk, "-f", "prepi",
				"-i", constants.PrepiFile, "-o", constants.FrcmodFile},
		},
		{
			name:   "pdb",
			reason: "PDB generation failed",
			argv: []string{r.tools.Antechamber, "-fi", "prepi", "-fo", "pdb",
				"-i", constants.PrepiFile, "-o", constants.PdbFile},
		},
	}
}

// Parameterize runs the full chain for one molecule directory. The
// returned error carries the failure reason for the summary; a nil
// return means lig.top and lig.crd were built.
func (r *Runner) Parameterize(ctx context.Context, moleculeDir string) error {
	logPath, err := filepath.Abs(filepath.Join(moleculeDir, constants.RespDirName, constants.GaussianLog))
	if err != nil {
		return fmt.Errorf("resolve log path: %w", err)
	}
	amberDir := filepath.Join(moleculeDir, constants.RespDirName, constants.AmberDirName)
	if err := os.MkdirAll(amberDir, 0755); err != nil {
		return fmt.Errorf("create parameter directory: %w", err)
	}

	for _, st := range r.chain(logPath) {
		if _, err := r.runTool(ctx, amberDir, st.name, st.argv); err != nil {
			return errors.New(st.reason)
		}
	}

	if err := os.WriteFile(filepath.Join(amberDir, constants.TleapInput), []byte(tleapScript), 0644); err != nil {
		return fmt.Errorf("write %s: %w", constants.TleapInput, err)
	}
	stderr, err := r.runTool(ctx, amberDir, "tleap", []string{r.tools.Tleap, "-f", constants.TleapInput})
	if err != nil {
		// tleap reports the offending atom or parameter on stderr, and
		// that text is the only useful diagnostic, so it rides along.
		return fmt.Errorf("tleap failed:\n%s", stderr)
	}
	return nil
}

// ParameterizeAll runs the chain over every selected molecule. A failed
// molecule is recorded and the loop moves on; one bad structure must
// not sink the batch.
func (r *Runner) ParameterizeAll(ctx context.Context, jobs []models.JobRecord) *models.SubmissionSummary {
	summary := &models.SubmissionSummary{}
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			summary.AddFailure(job, err.Error())
			continue
		}
		r.log.Info().Str("molecule", job.Name).Msg("generating parameters")
		if err := r.Parameterize(ctx, job.Dir); err != nil {
			r.log.Warn().Str("molecule", job.Name).Msg(err.Error())
			summary.AddFailure(job, err.Error())
			continue
		}
		r.log.Info().Str("molecule", job.Name).Msg("parameters built")
		summary.AddSuccess(job, "")
	}
	return summary
}

// runTool executes one tool with dir as the working directory. Output
// lands in the debug log either way; the raw stderr comes back for the
// tleap failure message.
func (r *Runner) runTool(ctx context.Context, dir, name string, argv []string) (string, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	r.log.Debug().
		Str("step", name).
		Str("stdout", strings.TrimSpace(stdout.String())).
		Str("stderr", strings.TrimSpace(stderr.String())).
		Msg("tool finished")
	return stderr.String(), err
}
