package prep

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// chargeMultRe matches a bare "charge multiplicity" pair, the line that
// opens the molecule block in a geometry file.
var chargeMultRe = regexp.MustCompile(`^-?\d+\s+-?\d+$`)

// skipGeometryLine reports whether a cleaned geometry line is a comment,
// a "Put ..." instruction, or blank. These never reach a deck.
func skipGeometryLine(clean string) bool {
	return clean == "" || strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "Put")
}

// collectGeometry returns the molecule block of a geometry file: every
// raw line from the charge/multiplicity line onward, with comment and
// blank lines dropped. Lines keep their original newlines so the block
// can be spliced into a deck verbatim.
func collectGeometry(content string) []string {
	var block []string
	collecting := false
	for _, line := range strings.SplitAfter(content, "\n") {
		clean := strings.TrimSpace(line)
		if skipGeometryLine(clean) {
			continue
		}
		if chargeMultRe.MatchString(clean) {
			collecting = true
			block = append(block, line)
			continue
		}
		if collecting {
			block = append(block, line)
		}
	}
	return block
}

// chargeMultiplicity extracts the charge and multiplicity from the first
// matching line of the geometry file at path. The values stay strings;
// decks receive them verbatim.
func chargeMultiplicity(path string) (charge, mult string, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	for _, line := range strings.Split(string(content), "\n") {
		clean := strings.TrimSpace(line)
		if skipGeometryLine(clean) {
			continue
		}
		if chargeMultRe.MatchString(clean) {
			fields := strings.Fields(clean)
			return fields[0], fields[1], nil
		}
	}
	return "", "", fmt.Errorf("no charge and multiplicity line in %s", filepath.Base(path))
}
