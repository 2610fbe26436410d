// Package collect stages parameterized molecules into batch collection
// directories for the simulation stage. A collection is a flat set of
// molecule directories each holding the lig.top/lig.slv pair; large
// libraries split across numbered collections so each batch lands on
// its own scheduler allocation.
package collect

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zangef1/SACPWorkflow/internal/constants"
	"github.com/zangef1/SACPWorkflow/internal/diskspace"
	"github.com/zangef1/SACPWorkflow/internal/localfs"
	"github.com/zangef1/SACPWorkflow/internal/logging"
	"github.com/zangef1/SACPWorkflow/internal/models"
	"github.com/zangef1/SACPWorkflow/internal/track"
)

// Collector builds and verifies collection directories.
type Collector struct {
	// OnStaged, when set, observes each staged molecule in distribution
	// order. The CLI hangs its progress bar off this hook.
	OnStaged func(name string)

	library string
	base    string
	split   int
	dirs    []string
	log     *logging.Logger
}

// NewCollector validates the library path and resolves the collection
// layout under dest: a single SACP/ for split 1, SACP_1..SACP_N
// otherwise. Split values below 1 are clamped to 1.
func NewCollector(library, dest string, split int, log *logging.Logger) (*Collector, error) {
	if !track.DirExists(library) {
		return nil, fmt.Errorf("library path does not exist: %s", library)
	}
	if split < 1 {
		split = 1
	}
	var dirs []string
	if split == 1 {
		dirs = []string{filepath.Join(dest, constants.CollectionDirName)}
	} else {
		for i := 0; i < split; i++ {
			dirs = append(dirs, filepath.Join(dest, fmt.Sprintf("%s_%d", constants.CollectionDirName, i+1)))
		}
	}
	return &Collector{library: library, base: dest, split: split, dirs: dirs, log: log}, nil
}

// Dirs returns the collection directories the collector targets.
func (c *Collector) Dirs() []string { return c.dirs }

// BuildResult tallies one collection pass.
type BuildResult struct {
	Staged  []string // molecule names copied, in distribution order
	Skipped []string // molecules left behind for missing parameter files
}

// Build creates the collection directories and distributes every
// molecule's parameter pair into them. Distribution position comes from
// the full library listing, so a skipped molecule leaves a gap rather
// than shifting its neighbors into a different collection. The free
// space preflight runs before anything is created.
func (c *Collector) Build() (*BuildResult, error) {
	scan, err := track.Scan(track.ScanOptions{
		RootDir: c.library,
		Exclude: []string{constants.FilePrepDirName},
	})
	if err != nil {
		return nil, err
	}

	type staging struct {
		job  models.JobRecord
		dest string
		top  string
		slv  string
	}

	var (
		plan       []staging
		result     BuildResult
		totalBytes int64
	)
	perDir := ceilDiv(len(scan.Jobs), c.split)
	for idx, job := range scan.Jobs {
		top, slv, ok := c.ligandFiles(job)
		if !ok {
			result.Skipped = append(result.Skipped, job.Name)
			continue
		}
		chunk := idx / perDir
		if chunk > c.split-1 {
			chunk = c.split - 1
		}
		plan = append(plan, staging{job: job, dest: c.dirs[chunk], top: top, slv: slv})
		totalBytes += fileSize(top) + fileSize(slv)
	}

	if err := diskspace.CheckAvailableSpace(c.base, totalBytes, 1+constants.DiskSpaceBufferPercent); err != nil {
		return nil, err
	}

	for _, dir := range c.dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create collection directory: %w", err)
		}
		c.log.Info().Str("dir", dir).Msg("created collection directory")
	}

	for _, st := range plan {
		molDir := filepath.Join(st.dest, st.job.Name)
		if err := os.MkdirAll(molDir, 0755); err != nil {
			return nil, fmt.Errorf("create %s: %w", molDir, err)
		}
		if err := localfs.CopyFile(st.top, filepath.Join(molDir, constants.TopFile)); err != nil {
			return nil, fmt.Errorf("copy %s: %w", st.top, err)
		}
		if err := localfs.CopyFile(st.slv, filepath.Join(molDir, constants.SlvFile)); err != nil {
			return nil, fmt.Errorf("copy %s: %w", st.slv, err)
		}
		c.log.Info().
			Str("molecule", st.job.Name).
			Str("collection", filepath.Base(st.dest)).
			Msg("copied ligand files")
		result.Staged = append(result.Staged, st.job.Name)
		if c.OnStaged != nil {
			c.OnStaged(st.job.Name)
		}
	}

	c.log.Info().
		Int("molecules", len(result.Staged)).
		Int("collections", c.split).
		Msg("collection build finished")
	return &result, nil
}

// ligandFiles locates the molecule's parameter pair. A missing AMBER
// directory and a missing file inside one draw distinct warnings.
func (c *Collector) ligandFiles(job models.JobRecord) (top, slv string, ok bool) {
	amberDir := filepath.Join(job.Dir, constants.RespDirName, constants.AmberDirName)
	if !track.DirExists(amberDir) {
		c.log.Warn().Str("molecule", job.Name).Msg("AMBER directory not found")
		return "", "", false
	}
	top = filepath.Join(amberDir, constants.TopFile)
	slv = filepath.Join(amberDir, constants.SlvFile)
	if !track.FileExists(top) || !track.FileExists(slv) {
		c.log.Warn().Str("molecule", job.Name).Msg("missing ligand files")
		return "", "", false
	}
	return top, slv, true
}

// DirCount is one collection directory's molecule tally.
type DirCount struct {
	Dir   string
	Count int
}

// VerifyResult re-counts a staged collection.
type VerifyResult struct {
	Counts  []DirCount
	Missing []string // collection/molecule entries lacking a ligand file
	Total   int
}

// OK reports whether every staged molecule holds both ligand files.
func (v *VerifyResult) OK() bool { return len(v.Missing) == 0 }

// Verify re-lists every collection directory and checks each staged
// molecule for the parameter pair. It trusts nothing from the build
// pass; the count comes from the directories as they are now.
func (c *Collector) Verify() (*VerifyResult, error) {
	result := &VerifyResult{}
	for _, dir := range c.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("cannot read collection directory %s: %w", dir, err)
		}
		count := 0
		for _, entry := range entries {
			if !entry.IsDir() || localfs.IsHiddenName(entry.Name()) {
				continue
			}
			count++
			molDir := filepath.Join(dir, entry.Name())
			if !track.FileExists(filepath.Join(molDir, constants.TopFile)) ||
				!track.FileExists(filepath.Join(molDir, constants.SlvFile)) {
				name := filepath.Base(dir) + "/" + entry.Name()
				c.log.Error().Str("molecule", name).Msg("staged molecule is missing ligand files")
				result.Missing = append(result.Missing, name)
			}
		}
		c.log.Info().
			Str("collection", filepath.Base(dir)).
			Int("molecules", count).
			Msg("verified collection")
		result.Counts = append(result.Counts, DirCount{Dir: filepath.Base(dir), Count: count})
		result.Total += count
	}
	c.log.Info().Int("total", result.Total).Msg("total molecules across collections")
	return result, nil
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
