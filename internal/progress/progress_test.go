package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewReporter_PipedOutputIsSilent(t *testing.T) {
	// Test processes never have a terminal on stderr.
	if _, ok := NewReporter().(NoOpProgress); !ok {
		t.Errorf("Expected no-op reporter without a terminal, got %T", NewReporter())
	}
}

func TestCLIProgress_RendersCounts(t *testing.T) {
	var buf bytes.Buffer
	p := NewCLIProgress(&buf)
	p.Start(3, "converting")
	p.Add(1)
	p.Add(2)
	p.Finish()

	out := buf.String()
	if !strings.Contains(out, "converting") {
		t.Errorf("Expected description in output:\n%s", out)
	}
	if !strings.Contains(out, "3/3") {
		t.Errorf("Expected completed count in output:\n%s", out)
	}
}

func TestCLIProgress_AddBeforeStartIsSafe(t *testing.T) {
	p := NewCLIProgress(&bytes.Buffer{})
	p.Add(1)
	p.Finish()
}
