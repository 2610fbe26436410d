package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zangef1/SACPWorkflow/internal/constants"
)

// ParseTopCharges extracts partial charges from an Amber topology. The
// %FLAG CHARGE section stores them premultiplied by the charge scale in
// 16-column fields (FORMAT 5E16.8); the %FORMAT line directly under the
// flag is skipped. The section runs to the next %FLAG, or to the end of
// the file for a truncated topology. Charges come back in electron
// units, in file order.
func ParseTopCharges(r io.Reader) ([]float64, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read topology: %w", err)
	}

	start, end := -1, len(lines)
	for i, line := range lines {
		if strings.Contains(line, "%FLAG CHARGE") {
			start = i + 2 // the %FORMAT line sits between the flag and the data
			continue
		}
		if start >= 0 && strings.Contains(line, "%FLAG") {
			end = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("topology has no %%FLAG CHARGE section")
	}
	if start > len(lines) {
		start = len(lines)
	}

	var charges []float64
	for i := start; i < end; i++ {
		line := lines[i]
		// Fields are 16 columns wide; the stripped length decides how
		// many of them a (possibly short) final line holds.
		width := len(strings.TrimSpace(line))
		for j := 0; j < width; j += 16 {
			hi := j + 16
			if hi > len(line) {
				hi = len(line)
			}
			field := strings.TrimSpace(line[j:hi])
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("topology line %d: bad charge field %q", i+1, field)
			}
			charges = append(charges, v/constants.ChargeScale)
		}
	}
	return charges, nil
}
