// Package selection narrows a scanned job list down to the subset an
// operation should act on. All user-facing indices are 1-based and refer
// to the lexical order the matching list command prints.
package selection

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zangef1/SACPWorkflow/internal/models"
)

// Policy picks a subset of an ordered job list.
type Policy interface {
	// Apply returns the selected subset, preserving list order.
	Apply(jobs []models.JobRecord) ([]models.JobRecord, error)
	// String describes the policy for log output.
	String() string
}

// All selects every job.
type All struct{}

// Apply returns jobs unchanged.
func (All) Apply(jobs []models.JobRecord) ([]models.JobRecord, error) {
	return jobs, nil
}

func (All) String() string { return "all jobs" }

// Indices selects explicitly numbered jobs. Any index outside the list
// fails the whole selection; nothing is partially selected.
type Indices []int

// Apply resolves each index against jobs, in the order given.
func (idx Indices) Apply(jobs []models.JobRecord) ([]models.JobRecord, error) {
	selected := make([]models.JobRecord, 0, len(idx))
	for _, i := range idx {
		if i < 1 || i > len(jobs) {
			return nil, fmt.Errorf("index %d out of range (valid: 1-%d)", i, len(jobs))
		}
		selected = append(selected, jobs[i-1])
	}
	return selected, nil
}

func (idx Indices) String() string {
	parts := make([]string, len(idx))
	for i, n := range idx {
		parts[i] = strconv.Itoa(n)
	}
	return "indices " + strings.Join(parts, ",")
}

// Count selects a contiguous run: N jobs beginning at the 1-based Start
// index. The upper bound clamps to the end of the list; a start outside
// the list is an error rather than an empty selection.
type Count struct {
	Start int
	N     int
}

// Apply slices the run out of jobs.
func (c Count) Apply(jobs []models.JobRecord) ([]models.JobRecord, error) {
	if c.N < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", c.N)
	}
	start := c.Start - 1
	if start < 0 || start >= len(jobs) {
		return nil, fmt.Errorf("start index %d out of range (valid: 1-%d)", c.Start, len(jobs))
	}
	end := start + c.N
	if end > len(jobs) {
		end = len(jobs)
	}
	return jobs[start:end], nil
}

func (c Count) String() string {
	return fmt.Sprintf("%d jobs starting at index %d", c.N, c.Start)
}

// Flags carries raw selection flags as given on a command line.
type Flags struct {
	All     bool
	Indices string // comma-separated 1-based indices
	Number  int    // size of a contiguous run
	Start   int    // 1-based start of the run; 0 means the beginning
}

// FromFlags validates the flag combination and builds the policy it
// describes. Exactly one of all/indices/number must be set, and the
// check happens before anything touches the filesystem.
func FromFlags(f Flags) (Policy, error) {
	if f.Number < 0 {
		return nil, fmt.Errorf("--number must be positive, got %d", f.Number)
	}

	modes := 0
	if f.All {
		modes++
	}
	if f.Indices != "" {
		modes++
	}
	if f.Number > 0 {
		modes++
	}
	if modes == 0 {
		return nil, fmt.Errorf("no selection given: use --all, --indices, or --number")
	}
	if modes > 1 {
		return nil, fmt.Errorf("--all, --indices, and --number are mutually exclusive")
	}

	switch {
	case f.All:
		return All{}, nil
	case f.Indices != "":
		return ParseIndexList(f.Indices)
	default:
		start := f.Start
		if start == 0 {
			start = 1
		}
		return Count{Start: start, N: f.Number}, nil
	}
}

// ParseIndexList parses a comma-separated list of 1-based indices such
// as "1,3,5". Whitespace around entries is ignored; range checking is
// deferred to Apply, which knows the list length.
func ParseIndexList(s string) (Indices, error) {
	parts := strings.Split(s, ",")
	indices := make(Indices, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty entry in index list %q", s)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q in list", part)
		}
		indices = append(indices, n)
	}
	return indices, nil
}
