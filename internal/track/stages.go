package track

import (
	"path/filepath"

	"github.com/zangef1/SACPWorkflow/internal/constants"
	"github.com/zangef1/SACPWorkflow/internal/models"
)

const detailReady = "ready"

// Marker sets recognizing a subdirectory as a job for each stage scan.
// Stage commands pair these with the matching classifier below.
var (
	OptMarkers     = []string{constants.GaussianInput}
	RespMarkers    = []string{filepath.Join(constants.RespDirName, constants.GaussianInput)}
	AmberMarkers   = []string{filepath.Join(constants.RespDirName, constants.GaussianLog)}
	ConvertMarkers = []string{
		filepath.Join(constants.RespDirName, constants.AmberDirName, constants.PdbFile),
		filepath.Join(constants.RespDirName, constants.AmberDirName, constants.PrepiFile),
	}
	MMCMarkers = []string{constants.MMCInput}
)

// ClassifyOpt reads the optimization state off a molecule directory.
func ClassifyOpt(dir string) (models.Stage, string) {
	verdict, detail := ProbeLog(filepath.Join(dir, constants.GaussianLog))
	switch verdict {
	case LogComplete:
		return models.StageOptDone, detail
	case LogMissing:
		return models.StageInputReady, detail
	case LogUnreadable:
		return models.StageFailed, detail
	default:
		return models.StageIncomplete, detail
	}
}

// ClassifyResp reads the RESP charge run state. The deck lives in the
// RESP/ subdirectory; its log decides the verdict.
func ClassifyResp(dir string) (models.Stage, string) {
	verdict, detail := ProbeLog(filepath.Join(dir, constants.RespDirName, constants.GaussianLog))
	switch verdict {
	case LogComplete:
		return models.StageRespDone, detail
	case LogMissing:
		return models.StageRespReady, detailReady
	case LogUnreadable:
		return models.StageFailed, detail
	default:
		return models.StageIncomplete, detail
	}
}

// ClassifyAmber reports whether parameterization products already exist
// for a molecule whose RESP run has produced a log.
func ClassifyAmber(dir string) (models.Stage, string) {
	amberDir := filepath.Join(dir, constants.RespDirName, constants.AmberDirName)
	if FileExists(filepath.Join(amberDir, constants.TopFile)) &&
		FileExists(filepath.Join(amberDir, constants.CrdFile)) {
		return models.StageParamsDone, models.DetailCompleted
	}
	return models.StageRespDone, detailReady
}

// ClassifyConvert reports whether the solvent parameter file has been
// generated from the parameterization products.
func ClassifyConvert(dir string) (models.Stage, string) {
	amberDir := filepath.Join(dir, constants.RespDirName, constants.AmberDirName)
	if FileExists(filepath.Join(amberDir, constants.SlvFile)) {
		return models.StageConvertDone, models.DetailCompleted
	}
	return models.StageParamsDone, detailReady
}

// ClassifyMMC reads the simulation state of a collected molecule
// directory. Output presence is the only signal; the engine writes
// prot.out incrementally, so an existing file may still be mid-run.
func ClassifyMMC(dir string) (models.Stage, string) {
	if FileExists(filepath.Join(dir, constants.MMCOutput)) {
		return models.StageMMCDone, "output present"
	}
	return models.StageMMCReady, detailReady
}
