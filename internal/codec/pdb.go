// Package codec reads the fixed-column chemistry formats the pipeline
// consumes (PDB coordinates, PREPI atom types, Amber topology charges)
// and writes the solvent parameter format the simulation engine reads.
//
// All three readers follow the column conventions of the files
// antechamber and tleap emit; they are deliberately strict about
// layout because downstream tools index by column, not by token.
package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Atom is one ATOM record from a PDB file.
type Atom struct {
	Serial  int
	Name    string
	X, Y, Z float64
}

// ParsePDB extracts ATOM records using the fixed PDB column layout:
// serial in columns 7-11, atom name in 13-16, coordinates in three
// 8-column fields starting at column 31. Records other than ATOM are
// ignored. The returned order is the file order, which also fixes the
// atom order of the generated solvent file.
func ParsePDB(r io.Reader) ([]Atom, error) {
	var atoms []Atom
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !strings.HasPrefix(line, "ATOM") {
			continue
		}
		if len(line) < 54 {
			return nil, fmt.Errorf("line %d: ATOM record too short (%d columns)", lineNo, len(line))
		}
		serial, err := strconv.Atoi(strings.TrimSpace(line[6:11]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad atom serial %q", lineNo, strings.TrimSpace(line[6:11]))
		}
		name := strings.TrimSpace(line[12:16])
		if name == "" {
			return nil, fmt.Errorf("line %d: empty atom name", lineNo)
		}
		x, err := parseCoord(line[30:38])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad x coordinate: %v", lineNo, err)
		}
		y, err := parseCoord(line[38:46])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad y coordinate: %v", lineNo, err)
		}
		z, err := parseCoord(line[46:54])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad z coordinate: %v", lineNo, err)
		}
		atoms = append(atoms, Atom{Serial: serial, Name: name, X: x, Y: y, Z: z})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read PDB: %w", err)
	}
	return atoms, nil
}

func parseCoord(field string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(field), 64)
}
