package pipeline

import (
	"path/filepath"

	"github.com/zangef1/SACPWorkflow/internal/codec"
	"github.com/zangef1/SACPWorkflow/internal/constants"
	"github.com/zangef1/SACPWorkflow/internal/models"
	"github.com/zangef1/SACPWorkflow/internal/track"
)

// ConvertAll runs the solvent-file conversion over each selected
// molecule, writing lig.slv next to the parameterization products.
// onDone observes completed molecules, in order, for progress display.
func (p *Pipeline) ConvertAll(jobs []models.JobRecord, onDone func(name string)) *models.SubmissionSummary {
	summary := &models.SubmissionSummary{}
	for _, job := range jobs {
		amberDir := filepath.Join(job.Dir, constants.RespDirName, constants.AmberDirName)
		topPath := filepath.Join(amberDir, constants.TopFile)
		if !track.FileExists(topPath) {
			p.Log.Warn().Str("molecule", job.Name).Msg("missing " + constants.TopFile)
			summary.AddFailure(job, "missing "+constants.TopFile)
			continue
		}
		result, err := codec.Convert(codec.Options{
			PDBPath:   filepath.Join(amberDir, constants.PdbFile),
			PrepiPath: filepath.Join(amberDir, constants.PrepiFile),
			TopPath:   topPath,
			OutPath:   filepath.Join(amberDir, constants.SlvFile),
		})
		if err != nil {
			p.Log.Warn().Str("molecule", job.Name).Msg(err.Error())
			summary.AddFailure(job, err.Error())
			continue
		}
		if result.ChargeCount != result.Atoms {
			// Extra charges in the topology still bind positionally;
			// worth a look but not worth failing the molecule.
			p.Log.Warn().
				Str("molecule", job.Name).
				Int("atoms", result.Atoms).
				Int("charges", result.ChargeCount).
				Msg("topology charge count differs from atom count")
		}
		p.Log.Info().Str("molecule", job.Name).Int("atoms", result.Atoms).Msg("solvent file written")
		summary.AddSuccess(job, "")
		if onDone != nil {
			onDone(job.Name)
		}
	}
	return summary
}
