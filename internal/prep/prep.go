// Package prep assembles the input files each pipeline stage consumes:
// Gaussian decks scaffolded from geometry files, RESP follow-up decks
// derived from finished optimizations, and MMC simulation inputs patched
// with per-molecule atom counts.
package prep

// Summary reports the per-directory outcomes of a preparation pass.
// The three slices are disjoint; every directory the pass considered
// eligible lands in exactly one of them.
type Summary struct {
	Done    []string // directories prepared in this pass
	Skipped []string // directories already prepared and left untouched
	Failed  []string // directories that could not be prepared
}
