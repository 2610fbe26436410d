package codec

import "fmt"

// formatCoord renders a value in the solvent file's numeric style: five
// decimals with the sign folded into the leading column, so positive
// and negative values line up in the same width.
func formatCoord(v float64) string {
	if v >= 0 {
		return fmt.Sprintf(" %7.5f", v)
	}
	return fmt.Sprintf("-%7.5f", -v)
}

// FormatSlvLine renders one atom's solvent record: a two-character type
// column, the three coordinates, the charge, then the fixed residue
// columns and the atom name. Column widths are what the simulation
// engine's reader expects; nothing here is configurable.
func FormatSlvLine(atomType string, x, y, z, charge float64, name string) string {
	return fmt.Sprintf(" %-2s      %s  %s  %s  %s    1  MOL  %s",
		atomType, formatCoord(x), formatCoord(y), formatCoord(z), formatCoord(charge), name)
}
