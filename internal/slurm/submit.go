package slurm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Submitter hands a rendered script to the scheduler. Implementations
// must not retry: a rejected submission surfaces immediately so the
// operator sees the scheduler's own complaint.
type Submitter interface {
	// Submit enqueues the script at path and returns the scheduler job ID.
	Submit(ctx context.Context, scriptPath string) (string, error)
}

// CommandSubmitter submits by invoking the sbatch binary.
type CommandSubmitter struct {
	Command string // submit binary, overridable for tests
}

// NewCommandSubmitter returns a submitter using sbatch from PATH.
func NewCommandSubmitter() *CommandSubmitter {
	return &CommandSubmitter{Command: "sbatch"}
}

// Submit runs the submit command and parses the job ID out of its
// stdout. On failure the scheduler's stderr becomes the error text,
// verbatim, since that is the message worth showing the operator.
func (s *CommandSubmitter) Submit(ctx context.Context, scriptPath string) (string, error) {
	cmd := exec.CommandContext(ctx, s.Command, scriptPath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		reason := strings.TrimSpace(stderr.String())
		if reason == "" {
			reason = err.Error()
		}
		return "", errors.New(reason)
	}
	return ParseJobID(stdout.String())
}

// ParseJobID extracts the scheduler job ID from submit output. sbatch
// prints "Submitted batch job 49229449"; the ID is the last
// whitespace-separated token.
func ParseJobID(output string) (string, error) {
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return "", fmt.Errorf("scheduler produced no output")
	}
	return fields[len(fields)-1], nil
}

// CheckNodes asks the scheduler for its node availability table
// (hostname plus allocated/idle/other/total CPU counts).
func CheckNodes(ctx context.Context, infoCommand string) (string, error) {
	if infoCommand == "" {
		infoCommand = "sinfo"
	}
	cmd := exec.CommandContext(ctx, infoCommand, "-o", "%n %C")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		reason := strings.TrimSpace(stderr.String())
		if reason == "" {
			reason = err.Error()
		}
		return "", fmt.Errorf("node query failed: %s", reason)
	}
	return stdout.String(), nil
}
