package prep

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/zangef1/SACPWorkflow/internal/constants"
	"github.com/zangef1/SACPWorkflow/internal/localfs"
	"github.com/zangef1/SACPWorkflow/internal/logging"
	"github.com/zangef1/SACPWorkflow/internal/track"
)

// slvaRe matches the SLVA directive of an MMC input template. Both
// numeric fields (the directive count and the trailing comment count)
// get replaced with the molecule's atom count.
var slvaRe = regexp.MustCompile(`(SLVA\s+)\d+(\s+1\s+MOL\s+1\s+\w+\s+!\s+Read\s+)\d+(\s+solvent atoms)`)

// MMCInputOptions configures an MMC input-generation pass.
type MMCInputOptions struct {
	CollectionDir string // collection root; descends one nested SACP level
	TemplatePath  string // simulation input template carrying the SLVA directive
	ProteinDir    string // optional; its files are copied into every molecule dir
	Force         bool   // rewrite simulation inputs that already exist
}

// WriteMMCInputs writes a prot.inp for every molecule directory in the
// collection holding a solvent file: the template's SLVA directive is
// patched with the molecule's atom count, and the shared protein files
// are copied alongside when a protein directory is configured.
func WriteMMCInputs(opts MMCInputOptions, log *logging.Logger) (*Summary, error) {
	if !track.DirExists(opts.CollectionDir) {
		return nil, fmt.Errorf("collection directory not found: %s", opts.CollectionDir)
	}
	template, err := os.ReadFile(opts.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("reading input template: %w", err)
	}
	if opts.ProteinDir != "" && !track.DirExists(opts.ProteinDir) {
		return nil, fmt.Errorf("protein directory not found: %s", opts.ProteinDir)
	}

	root := track.ResolveNested(opts.CollectionDir, constants.CollectionDirName)
	log.Debug().Str("dir", root).Msg("processing collection directory")

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading collection: %w", err)
	}

	summary := &Summary{}
	for _, entry := range entries {
		if !entry.IsDir() || localfs.IsHiddenName(entry.Name()) {
			continue
		}
		name := entry.Name()
		molDir := filepath.Join(root, name)
		slvPath := filepath.Join(molDir, constants.SlvFile)
		if !track.FileExists(slvPath) {
			continue
		}

		inputPath := filepath.Join(molDir, constants.MMCInput)
		if !opts.Force && track.FileExists(inputPath) {
			log.Debug().Str("molecule", name).Msg("simulation input already present")
			summary.Skipped = append(summary.Skipped, name)
			continue
		}

		atoms, err := countAtomLines(slvPath)
		if err != nil {
			log.Warn().Str("molecule", name).Err(err).Msg("could not count solvent atoms")
			summary.Failed = append(summary.Failed, name)
			continue
		}

		patched := patchSlvaCount(string(template), atoms)
		if patched == string(template) {
			log.Warn().Str("molecule", name).Msg("no SLVA line was modified in the template")
		}
		if err := os.WriteFile(inputPath, []byte(patched), 0o644); err != nil {
			log.Warn().Str("molecule", name).Err(err).Msg("writing simulation input failed")
			summary.Failed = append(summary.Failed, name)
			continue
		}

		if opts.ProteinDir != "" {
			copyProteinFiles(opts.ProteinDir, molDir, log)
		}

		log.Info().Str("molecule", name).Int("atoms", atoms).Msg("wrote simulation input")
		summary.Done = append(summary.Done, name)
	}
	return summary, nil
}

// patchSlvaCount rewrites both numeric fields of the SLVA directive with
// the molecule's atom count. A template without a matching directive
// comes back unchanged.
func patchSlvaCount(template string, atoms int) string {
	count := strconv.Itoa(atoms)
	return slvaRe.ReplaceAllString(template, "${1}"+count+"${2}"+count+"${3}")
}

// countAtomLines counts the non-blank lines of a solvent file, one per atom.
func countAtomLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			count++
		}
	}
	return count, scanner.Err()
}

// copyProteinFiles copies every non-hidden regular file from proteinDir
// into molDir. A failed copy is logged and does not fail the molecule;
// the verify step of the next stage will catch anything missing.
func copyProteinFiles(proteinDir, molDir string, log *logging.Logger) {
	entries, err := localfs.ListDirectory(proteinDir, localfs.ListOptions{})
	if err != nil {
		log.Error().Str("dir", proteinDir).Err(err).Msg("listing protein directory failed")
		return
	}
	for _, entry := range entries {
		if entry.IsDir {
			continue
		}
		if err := localfs.CopyFile(entry.Path, filepath.Join(molDir, entry.Name)); err != nil {
			log.Error().Str("file", entry.Name).Err(err).Msg("copying protein file failed")
			continue
		}
		log.Debug().Str("file", entry.Name).Str("dest", filepath.Base(molDir)).Msg("copied protein file")
	}
}
