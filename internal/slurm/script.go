// Package slurm renders scheduler submission scripts and hands them to
// sbatch. Every submission round gets its own timestamped run directory
// holding the rendered scripts and the scheduler logs, so a failed
// round can be inspected and resubmitted by hand.
package slurm

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/zangef1/SACPWorkflow/internal/constants"
)

//go:embed templates
var templates embed.FS

var (
	gaussianTmpl = template.Must(template.ParseFS(templates, "templates/gaussian.sh.tmpl"))
	batchTmpl    = template.Must(template.ParseFS(templates, "templates/batch.sh.tmpl"))
)

// Params is the scheduler resource request rendered into a script.
type Params struct {
	Partition string `yaml:"partition"`
	Time      string `yaml:"time"`
	Nodes     int    `yaml:"nodes"`
	Tasks     int    `yaml:"tasks"`
}

var timeLimitRe = regexp.MustCompile(`^\d{1,3}:\d{2}:\d{2}$`)

// Validate collects every problem with the resource request. An empty
// slice means the params are usable.
func (p Params) Validate() []string {
	var problems []string
	if p.Partition == "" {
		problems = append(problems, "partition is required")
	}
	if !timeLimitRe.MatchString(p.Time) {
		problems = append(problems, fmt.Sprintf("time limit %q is not H:MM:SS", p.Time))
	}
	if p.Nodes < 1 {
		problems = append(problems, fmt.Sprintf("nodes must be at least 1, got %d", p.Nodes))
	}
	if p.Tasks < 1 {
		problems = append(problems, fmt.Sprintf("tasks must be at least 1, got %d", p.Tasks))
	}
	return problems
}

// Environment carries the site-specific module and path settings every
// rendered script needs.
type Environment struct {
	GaussianModule  string `yaml:"gaussian_module"`
	GaussianProfile string `yaml:"gaussian_profile"`
	GaussianBinary  string `yaml:"gaussian_binary"`
	ParallelModule  string `yaml:"parallel_module"`
	ScratchRoot     string `yaml:"scratch_root"`
}

// GaussianJob parameterizes a single-molecule script. The same template
// serves the optimization and RESP stages; they differ only in job name
// and working directory.
type GaussianJob struct {
	JobName string // scheduler job name, also tags the scratch directory
	WorkDir string // absolute directory holding the mpp.com deck
	LogDir  string // absolute run directory receiving scheduler logs
	Params  Params
	Env     Environment
}

// BatchJob parameterizes a script that fans one simulation task per
// molecule through GNU parallel. The task count follows the chunk size.
type BatchJob struct {
	JobName  string
	Number   int      // 1-based batch ordinal, used in log and script naming
	LogDir   string   // absolute run directory receiving scheduler logs
	Binary   string   // absolute path to the simulation executable
	WorkDirs []string // absolute molecule directories in this chunk
	Params   Params
	Env      Environment
}

// Commands builds the quoted command list handed to parallel: one
// cd-and-run pipeline per molecule directory.
func (b BatchJob) Commands() string {
	quoted := make([]string, len(b.WorkDirs))
	for i, dir := range b.WorkDirs {
		cmd := fmt.Sprintf("cd %s && %s < %s > %s", dir, b.Binary, constants.MMCInput, constants.MMCOutput)
		quoted[i] = `"` + cmd + `"`
	}
	return strings.Join(quoted, " ")
}

// WriteGaussianScript renders the single-job script to path and marks
// it executable.
func WriteGaussianScript(path string, job GaussianJob) error {
	return writeScript(path, gaussianTmpl, job)
}

// WriteBatchScript renders the parallel batch script to path and marks
// it executable.
func WriteBatchScript(path string, job BatchJob) error {
	return writeScript(path, batchTmpl, job)
}

func writeScript(path string, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render script: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0755); err != nil {
		return fmt.Errorf("write script: %w", err)
	}
	return nil
}

// NewRunDir creates the timestamped directory scripts and scheduler
// logs for one submission round go into.
func NewRunDir(parent, prefix string) (string, error) {
	dir := filepath.Join(parent, prefix+time.Now().Format(constants.RunDirTimeFormat))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create run directory: %w", err)
	}
	return dir, nil
}

// GaussianScriptPath names the rendered script for one molecule job.
func GaussianScriptPath(runDir, jobName string) string {
	return filepath.Join(runDir, "submit_"+jobName+".sh")
}

// BatchScriptPath names the rendered script for one batch ordinal.
func BatchScriptPath(runDir string, number int) string {
	return filepath.Join(runDir, fmt.Sprintf("batch_%d_submit.sh", number))
}
