package prep

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zangef1/SACPWorkflow/internal/constants"
	"github.com/zangef1/SACPWorkflow/internal/localfs"
	"github.com/zangef1/SACPWorkflow/internal/logging"
	"github.com/zangef1/SACPWorkflow/internal/track"
)

// respDeckTemplate is the fixed RESP route deck. The charge and
// multiplicity slot in with two spaces between them; the checkpoint name
// and ESP filenames are part of the format the downstream tools expect.
const respDeckTemplate = `%%mem=35MW
%%chk=mpp
%%nproc=16
#HF/6-31G* Guess=read Geom=checkpoint SCF=tight Test Pop=MK iop(6/33=2) iop(6/42=6) iop(6/50=1) opt nosymm

mpp

%s  %s

antechamber-ini.esp

antechamber.esp
`

// RespOptions configures a RESP setup pass over the molecule library.
type RespOptions struct {
	LibraryDir string // library scanned for finished optimizations
	Force      bool   // regenerate RESP decks that already exist
}

// SetupResp prepares the RESP subdirectory of every eligible molecule:
// one carrying at least one checkpoint and one geometry file. All
// checkpoints are copied in and a RESP deck is written with the charge
// and multiplicity read from the first geometry.
func SetupResp(opts RespOptions, log *logging.Logger) (*Summary, error) {
	if !track.DirExists(opts.LibraryDir) {
		return nil, fmt.Errorf("%s is not a valid directory", opts.LibraryDir)
	}
	entries, err := os.ReadDir(opts.LibraryDir)
	if err != nil {
		return nil, fmt.Errorf("reading library: %w", err)
	}

	summary := &Summary{}
	for _, entry := range entries {
		if !entry.IsDir() || localfs.IsHiddenName(entry.Name()) {
			continue
		}
		name := entry.Name()
		dir := filepath.Join(opts.LibraryDir, name)

		chkFiles := track.FilesWithExt(dir, constants.CheckpointExt)
		gFiles := track.FilesWithExt(dir, constants.GeometryExt)
		if len(chkFiles) == 0 || len(gFiles) == 0 {
			continue
		}

		respDir := filepath.Join(dir, constants.RespDirName)
		deckPath := filepath.Join(respDir, constants.GaussianInput)
		if !opts.Force && track.FileExists(deckPath) {
			log.Debug().Str("molecule", name).Msg("RESP deck already present")
			summary.Skipped = append(summary.Skipped, name)
			continue
		}

		charge, mult, err := chargeMultiplicity(filepath.Join(dir, gFiles[0]))
		if err != nil {
			log.Warn().Str("molecule", name).Err(err).Msg("could not determine charge and multiplicity, skipping")
			summary.Failed = append(summary.Failed, name)
			continue
		}

		if err := writeRespDir(dir, respDir, deckPath, chkFiles, charge, mult); err != nil {
			log.Warn().Str("molecule", name).Err(err).Msg("RESP setup failed")
			summary.Failed = append(summary.Failed, name)
			continue
		}

		log.Info().
			Str("molecule", name).
			Str("charge", charge).
			Str("multiplicity", mult).
			Msg("created RESP input")
		summary.Done = append(summary.Done, name)
	}
	return summary, nil
}

func writeRespDir(molDir, respDir, deckPath string, chkFiles []string, charge, mult string) error {
	if err := os.MkdirAll(respDir, 0o755); err != nil {
		return err
	}
	// The RESP run reads the optimized wavefunction from the checkpoint,
	// so every checkpoint the optimization produced travels with the deck.
	for _, chk := range chkFiles {
		if err := localfs.CopyFile(filepath.Join(molDir, chk), filepath.Join(respDir, chk)); err != nil {
			return fmt.Errorf("copying %s: %w", chk, err)
		}
	}
	deck := fmt.Sprintf(respDeckTemplate, charge, mult)
	return os.WriteFile(deckPath, []byte(deck), 0o644)
}
