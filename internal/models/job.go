// Package models defines data structures shared across the pipeline.
package models

// Stage identifies where a molecule sits in the pipeline. The value is
// derived from artifact presence at scan time and never persisted.
type Stage int

const (
	StageUnknown Stage = iota
	// StageDiscovered - molecule directory exists but holds no input deck.
	StageDiscovered
	// StageInputReady - optimization deck present, no log yet.
	StageInputReady
	// StageIncomplete - a log exists but does not carry the success marker.
	// Indistinguishable from "still running" without elapsed-time tracking,
	// which the tracker deliberately does not do.
	StageIncomplete
	// StageOptDone - optimization log shows normal termination.
	StageOptDone
	// StageRespPending - optimization products present, RESP not set up.
	StageRespPending
	// StageRespReady - RESP deck written, RESP run not yet complete.
	StageRespReady
	// StageRespDone - RESP log shows normal termination.
	StageRespDone
	// StageParamsDone - parameter generation products present.
	StageParamsDone
	// StageConvertDone - solvent parameter file written.
	StageConvertDone
	// StageCollected - staged into a batch collection directory.
	StageCollected
	// StageMMCReady - simulation input present, no output yet.
	StageMMCReady
	// StageMMCDone - simulation output file present. The engine writes it
	// incrementally, so presence does not prove the run finished cleanly.
	StageMMCDone
	// StageFailed - directory or artifact could not be read.
	StageFailed
)

var stageNames = map[Stage]string{
	StageUnknown:     "unknown",
	StageDiscovered:  "discovered",
	StageInputReady:  "input ready",
	StageIncomplete:  "incomplete",
	StageOptDone:     "optimization complete",
	StageRespPending: "awaiting RESP setup",
	StageRespReady:   "RESP ready",
	StageRespDone:    "RESP complete",
	StageParamsDone:  "parameters built",
	StageConvertDone: "converted",
	StageCollected:   "collected",
	StageMMCReady:    "MMC ready",
	StageMMCDone:     "MMC complete",
	StageFailed:      "failed",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Diagnostic details attached to JobRecords by the stage classifiers.
const (
	DetailNoLog      = "no log file found"
	DetailIncomplete = "incomplete or error"
	DetailCompleted  = "completed"
)

// JobRecord is one molecule directory as seen by a single scan. It is
// created transiently per invocation; the filesystem is the only durable
// state between runs.
type JobRecord struct {
	Name   string // directory basename, unique within a scan
	Dir    string // absolute path to the directory
	Stage  Stage
	Detail string // free-text diagnostic, e.g. "no log file found"
}
