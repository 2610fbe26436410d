package prep

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zangef1/SACPWorkflow/internal/constants"
	"github.com/zangef1/SACPWorkflow/internal/localfs"
	"github.com/zangef1/SACPWorkflow/internal/logging"
	"github.com/zangef1/SACPWorkflow/internal/track"
)

// GaussianOptions configures a deck-scaffolding pass.
type GaussianOptions struct {
	InputDir     string // directory scanned for .g geometry files
	OutputDir    string // library root receiving one directory per molecule
	TemplatePath string // route-section template prepended to every deck
	Force        bool   // rewrite decks that already exist
}

// ScaffoldDecks builds one job directory per geometry file found in
// opts.InputDir: the geometry is copied in and a deck is written by
// splicing the molecule block onto the route template. Directories whose
// deck already exists are skipped unless Force is set.
func ScaffoldDecks(opts GaussianOptions, log *logging.Logger) (*Summary, error) {
	if !track.DirExists(opts.InputDir) {
		return nil, fmt.Errorf("%s is not a valid directory", opts.InputDir)
	}
	template, err := os.ReadFile(opts.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("reading deck template: %w", err)
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	names := track.FilesWithExt(opts.InputDir, constants.GeometryExt)
	if len(names) == 0 {
		log.Warn().Str("dir", opts.InputDir).Msg("no geometry files found")
		return &Summary{}, nil
	}

	summary := &Summary{}
	for _, name := range names {
		base := strings.TrimSuffix(name, constants.GeometryExt)
		jobDir := filepath.Join(opts.OutputDir, base)
		deckPath := filepath.Join(jobDir, constants.GaussianInput)

		if !opts.Force && track.FileExists(deckPath) {
			log.Debug().Str("molecule", base).Msg("deck already present")
			summary.Skipped = append(summary.Skipped, base)
			continue
		}

		if err := scaffoldOne(opts.InputDir, name, jobDir, deckPath, string(template)); err != nil {
			log.Warn().Str("molecule", base).Err(err).Msg("deck scaffolding failed")
			summary.Failed = append(summary.Failed, base)
			continue
		}

		log.Info().Str("molecule", base).Msg("prepared Gaussian input")
		summary.Done = append(summary.Done, base)
	}
	return summary, nil
}

func scaffoldOne(inputDir, geometryName, jobDir, deckPath, template string) error {
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return err
	}

	src := filepath.Join(inputDir, geometryName)
	if err := localfs.CopyFile(src, filepath.Join(jobDir, geometryName)); err != nil {
		return fmt.Errorf("copying geometry: %w", err)
	}

	geometry, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading geometry: %w", err)
	}
	return os.WriteFile(deckPath, []byte(scaffoldDeck(template, string(geometry))), 0o644)
}

// scaffoldDeck splices the molecule block onto the route template. The
// trailing blank line is part of the deck format.
func scaffoldDeck(template, geometry string) string {
	block := collectGeometry(geometry)
	return strings.TrimRight(template, " \t\r\n") + "\n\n" + strings.Join(block, "") + "\n"
}
