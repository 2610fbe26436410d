package amber

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zangef1/SACPWorkflow/internal/logging"
	"github.com/zangef1/SACPWorkflow/internal/models"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(io.Discard)
}

func writeTool(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("Failed to write fake %s: %v", name, err)
	}
	return path
}

// recordingTools builds a tool set whose members append their working
// directory and command line to argvLog and exit 0.
func recordingTools(t *testing.T, argvLog string) Tools {
	t.Helper()
	dir := t.TempDir()
	body := fmt.Sprintf(`printf '%%s|%%s %%s\n' "$PWD" "$(basename "$0")" "$*" >> %q`, argvLog)
	return Tools{
		Antechamber: writeTool(t, dir, "antechamber", body),
		Parmchk:     writeTool(t, dir, "parmchk2", body),
		Tleap:       writeTool(t, dir, "tleap", body),
	}
}

func makeMolecule(t *testing.T, root, name string) string {
	t.Helper()
	molDir := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Join(molDir, "RESP"), 0755); err != nil {
		t.Fatalf("Failed to create molecule: %v", err)
	}
	if err := os.WriteFile(filepath.Join(molDir, "RESP", "mpp.log"), []byte("RESP run output\n"), 0644); err != nil {
		t.Fatalf("Failed to write log: %v", err)
	}
	return molDir
}

func TestParameterize_ChainOrder(t *testing.T) {
	argvLog := filepath.Join(t.TempDir(), "argv.log")
	molDir := makeMolecule(t, t.TempDir(), "mol_a")
	runner := NewRunner(recordingTools(t, argvLog), testLogger())

	if err := runner.Parameterize(context.Background(), molDir); err != nil {
		t.Fatalf("Parameterize failed: %v", err)
	}

	logPath := filepath.Join(molDir, "RESP", "mpp.log")
	want := []string{
		"antechamber -fi gout -fo mol2 -pf y -i " + logPath + " -o MOL.mol2 -c resp",
		"antechamber -fi gout -fo prepi -pf y -i " + logPath + " -o MOL.prepi -c resp",
		"parmchk2 -f prepi -i MOL.prepi -o MOL.frcmod",
		"antechamber -fi prepi -fo pdb -i MOL.prepi -o MOL.pdb",
		"tleap -f tleap.in",
	}

	data, err := os.ReadFile(argvLog)
	if err != nil {
		t.Fatalf("Failed to read argv log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != len(want) {
		t.Fatalf("Expected %d tool runs, got %d:\n%s", len(want), len(lines), data)
	}
	amberSuffix := filepath.Join("mol_a", "RESP", "AMBER")
	for i, line := range lines {
		pwd, cmdline, ok := strings.Cut(line, "|")
		if !ok {
			t.Fatalf("Malformed argv log line %q", line)
		}
		if !strings.HasSuffix(pwd, amberSuffix) {
			t.Errorf("Step %d ran in %s, expected the AMBER directory", i+1, pwd)
		}
		if cmdline != want[i] {
			t.Errorf("Step %d:\n  got  %q\n  want %q", i+1, cmdline, want[i])
		}
	}
}

func TestParameterize_WritesTleapScript(t *testing.T) {
	argvLog := filepath.Join(t.TempDir(), "argv.log")
	molDir := makeMolecule(t, t.TempDir(), "mol_a")
	runner := NewRunner(recordingTools(t, argvLog), testLogger())

	if err := runner.Parameterize(context.Background(), molDir); err != nil {
		t.Fatalf("Parameterize failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(molDir, "RESP", "AMBER", "tleap.in"))
	if err != nil {
		t.Fatalf("Failed to read tleap.in: %v", err)
	}
	want := "source leaprc.gaff\n" +
		"loadamberprep MOL.prepi\n" +
		"loadAmberParams MOL.frcmod\n" +
		"LIG = loadpdb MOL.pdb\n" +
		"saveAmberParm LIG lig.top lig.crd\n" +
		"quit\n"
	if string(data) != want {
		t.Errorf("tleap.in mismatch:\n  got  %q\n  want %q", data, want)
	}
}

func TestParameterize_StepFailureStopsChain(t *testing.T) {
	argvLog := filepath.Join(t.TempDir(), "argv.log")
	molDir := makeMolecule(t, t.TempDir(), "mol_a")

	tools := recordingTools(t, argvLog)
	brokenDir := t.TempDir()
	record := fmt.Sprintf(`printf '%%s|%%s %%s\n' "$PWD" "$(basename "$0")" "$*" >> %q`, argvLog)
	tools.Parmchk = writeTool(t, brokenDir, "parmchk2", record+"\nexit 1")

	runner := NewRunner(tools, testLogger())
	err := runner.Parameterize(context.Background(), molDir)
	if err == nil {
		t.Fatal("Expected failure from parmchk2")
	}
	if err.Error() != "parmchk2 failed" {
		t.Errorf("Expected reason %q, got %q", "parmchk2 failed", err.Error())
	}

	// mol2, prepi, and the failing parmchk2 ran; pdb and tleap did not.
	data, _ := os.ReadFile(argvLog)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("Expected chain to stop after 3 runs, got %d:\n%s", len(lines), data)
	}
}

func TestParameterize_TleapFailureCarriesStderr(t *testing.T) {
	molDir := makeMolecule(t, t.TempDir(), "mol_a")

	binDir := t.TempDir()
	tools := Tools{
		Antechamber: writeTool(t, binDir, "antechamber", "exit 0"),
		Parmchk:     writeTool(t, binDir, "parmchk2", "exit 0"),
		Tleap: writeTool(t, binDir, "tleap",
			`echo "FATAL: Atom .R<MOL 1>.A<H1 2> does not have a type." >&2; exit 1`),
	}

	runner := NewRunner(tools, testLogger())
	err := runner.Parameterize(context.Background(), molDir)
	if err == nil {
		t.Fatal("Expected failure from tleap")
	}
	if !strings.HasPrefix(err.Error(), "tleap failed:\n") {
		t.Errorf("Expected tleap failure prefix, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "does not have a type") {
		t.Errorf("Expected tleap stderr in reason, got %q", err.Error())
	}
}

func TestParameterizeAll_ContinuesPastFailures(t *testing.T) {
	root := t.TempDir()
	molA := makeMolecule(t, root, "mol_a")
	molB := makeMolecule(t, root, "mol_b")

	// antechamber rejects mol_a only; every other invocation succeeds.
	binDir := t.TempDir()
	tools := Tools{
		Antechamber: writeTool(t, binDir, "antechamber",
			`case "$*" in *mol_a*) exit 1;; esac; exit 0`),
		Parmchk: writeTool(t, binDir, "parmchk2", "exit 0"),
		Tleap:   writeTool(t, binDir, "tleap", "exit 0"),
	}

	runner := NewRunner(tools, testLogger())
	jobs := []models.JobRecord{
		{Name: "mol_a", Dir: molA},
		{Name: "mol_b", Dir: molB},
	}
	summary := runner.ParameterizeAll(context.Background(), jobs)

	if summary.Total() != 2 {
		t.Fatalf("Expected 2 outcomes, got %d", summary.Total())
	}
	if len(summary.Failures) != 1 || summary.Failures[0].Job.Name != "mol_a" {
		t.Fatalf("Expected mol_a to fail, got %+v", summary.Failures)
	}
	if summary.Failures[0].Reason != "mol2 generation failed" {
		t.Errorf("Expected mol2 failure reason, got %q", summary.Failures[0].Reason)
	}
	if len(summary.Successes) != 1 || summary.Successes[0].Job.Name != "mol_b" {
		t.Errorf("Expected mol_b to succeed, got %+v", summary.Successes)
	}
}

func TestParameterizeAll_CanceledContext(t *testing.T) {
	molDir := makeMolecule(t, t.TempDir(), "mol_a")
	runner := NewRunner(recordingTools(t, filepath.Join(t.TempDir(), "argv.log")), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary := runner.ParameterizeAll(ctx, []models.JobRecord{{Name: "mol_a", Dir: molDir}})

	if len(summary.Failures) != 1 {
		t.Fatalf("Expected canceled run to be recorded as failure, got %+v", summary)
	}
}
