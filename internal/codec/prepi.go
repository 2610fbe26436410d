package codec

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParsePrepi extracts atom-name to force-field-type bindings from a
// PREPI file. The bindings live in the internal-coordinate table
// between the CORRECT header and the LOOP section; the three DUMM rows
// that pad the table carry no real atoms and are skipped. Rows with
// fewer than eight fields are headers or continuations, not atoms.
func ParsePrepi(r io.Reader) (map[string]string, error) {
	types := make(map[string]string)
	scanner := bufio.NewScanner(r)
	inTable := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "CORRECT") {
			inTable = true
			continue
		}
		if inTable && strings.Contains(line, "LOOP") {
			break
		}
		if !inTable || strings.TrimSpace(line) == "" || strings.Contains(line, "DUMM") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 8 {
			types[fields[1]] = fields[2]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read PREPI: %w", err)
	}
	return types, nil
}
