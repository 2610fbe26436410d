// Package track derives pipeline state from the filesystem. A molecule's
// stage is a pure function of which artifacts its directory holds, so a
// scan is repeatable and nothing is cached between invocations.
package track

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zangef1/SACPWorkflow/internal/localfs"
	"github.com/zangef1/SACPWorkflow/internal/models"
)

// ClassifyFunc assigns a stage and a human-readable detail to one job
// directory. Implementations must not mutate the directory.
type ClassifyFunc func(dir string) (models.Stage, string)

// ScanOptions configures a scan of a jobs directory.
type ScanOptions struct {
	RootDir  string       // directory whose immediate subdirectories are molecule jobs
	Markers  []string     // relative paths that must all exist for a subdirectory to count as a job
	Exclude  []string     // directory names skipped entirely, e.g. a tooling dir living in the library
	Classify ClassifyFunc // stage assignment, applied to every job found
}

// ScanResult describes one pass over a jobs directory.
type ScanResult struct {
	Jobs       []models.JobRecord // marker-bearing jobs in lexical name order
	TotalCount int                // subdirectories inspected, jobs or not
}

// Scan inspects the immediate subdirectories of RootDir and classifies
// every one carrying the marker. Jobs come back in lexical name order,
// which is the order index-based selection refers to.
func Scan(opts ScanOptions) (ScanResult, error) {
	if opts.RootDir == "" {
		return ScanResult{}, fmt.Errorf("jobs directory is required")
	}
	info, err := os.Stat(opts.RootDir)
	if err != nil {
		return ScanResult{}, fmt.Errorf("cannot access jobs directory %s: %w", opts.RootDir, err)
	}
	if !info.IsDir() {
		return ScanResult{}, fmt.Errorf("%s is not a directory", opts.RootDir)
	}

	entries, err := os.ReadDir(opts.RootDir)
	if err != nil {
		return ScanResult{}, fmt.Errorf("cannot read jobs directory %s: %w", opts.RootDir, err)
	}

	var result ScanResult
	// os.ReadDir returns entries sorted by name, which pins the indices
	// shown by list commands and consumed by index selection.
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if localfs.IsHiddenName(name) || excluded(name, opts.Exclude) {
			continue
		}
		result.TotalCount++
		dir := filepath.Join(opts.RootDir, name)
		if !hasMarkers(dir, opts.Markers) {
			continue
		}
		job := models.JobRecord{Name: name, Dir: dir}
		if opts.Classify != nil {
			job.Stage, job.Detail = opts.Classify(dir)
		}
		result.Jobs = append(result.Jobs, job)
	}
	return result, nil
}

func excluded(name string, exclude []string) bool {
	for _, ex := range exclude {
		if name == ex {
			return true
		}
	}
	return false
}

func hasMarkers(dir string, markers []string) bool {
	for _, marker := range markers {
		if !FileExists(filepath.Join(dir, marker)) {
			return false
		}
	}
	return true
}

// ResolveNested descends into a nested collection directory when one
// exists. Collections are often addressed by their parent (the path the
// setup step was pointed at), so a root containing a single SACP child
// means the caller wants that child.
func ResolveNested(root, child string) string {
	nested := filepath.Join(root, child)
	if DirExists(nested) {
		return nested
	}
	return root
}
