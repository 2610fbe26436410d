package codec

import (
	"bytes"
	"fmt"
	"os"
)

// MissingAtomError reports an atom that appears in the coordinate order
// but has no type or charge binding. The conversion aborts before
// writing anything, so a half-built solvent file can never reach the
// collection step.
type MissingAtomError struct {
	Atom string
	What string // "type" or "charge"
}

func (e *MissingAtomError) Error() string {
	return fmt.Sprintf("missing %s for atom %s", e.What, e.Atom)
}

// Options names the three parameterization products feeding a
// conversion and the solvent file it produces.
type Options struct {
	PDBPath   string
	PrepiPath string
	TopPath   string
	OutPath   string
}

// Result summarizes a completed conversion. Callers compare Atoms
// against ChargeCount: a topology carrying extra charges is suspicious
// but not fatal, since the atom order still binds every atom.
type Result struct {
	Atoms       int // solvent records written
	ChargeCount int // charges found in the topology
}

// Convert merges PDB coordinates, PREPI atom types, and topology
// charges into a solvent parameter file. Charges bind positionally:
// the i-th charge belongs to the i-th atom of the coordinate order.
// The entire file is rendered in memory and installed with a rename,
// so the target either keeps its old content or gains the complete
// new one.
func Convert(opts Options) (Result, error) {
	atoms, err := parsePDBFile(opts.PDBPath)
	if err != nil {
		return Result{}, err
	}
	types, err := parsePrepiFile(opts.PrepiPath)
	if err != nil {
		return Result{}, err
	}
	charges, err := parseTopFile(opts.TopPath)
	if err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	for i, atom := range atoms {
		atomType, ok := types[atom.Name]
		if !ok {
			return Result{}, &MissingAtomError{Atom: atom.Name, What: "type"}
		}
		if i >= len(charges) {
			return Result{}, &MissingAtomError{Atom: atom.Name, What: "charge"}
		}
		fmt.Fprintln(&buf, FormatSlvLine(atomType, atom.X, atom.Y, atom.Z, charges[i], atom.Name))
	}

	tmp := opts.OutPath + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return Result{}, fmt.Errorf("write solvent file: %w", err)
	}
	if err := os.Rename(tmp, opts.OutPath); err != nil {
		os.Remove(tmp)
		return Result{}, fmt.Errorf("install solvent file: %w", err)
	}
	return Result{Atoms: len(atoms), ChargeCount: len(charges)}, nil
}

func parsePDBFile(path string) ([]Atom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open coordinates: %w", err)
	}
	defer f.Close()
	atoms, err := ParsePDB(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(atoms) == 0 {
		return nil, fmt.Errorf("%s: no ATOM records", path)
	}
	return atoms, nil
}

func parsePrepiFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open atom types: %w", err)
	}
	defer f.Close()
	types, err := ParsePrepi(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("%s: no atom types between CORRECT and LOOP", path)
	}
	return types, nil
}

func parseTopFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open topology: %w", err)
	}
	defer f.Close()
	charges, err := ParseTopCharges(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return charges, nil
}
