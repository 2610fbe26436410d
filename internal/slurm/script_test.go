package slurm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testEnv() Environment {
	return Environment{
		GaussianModule:  "gaussian/g16",
		GaussianProfile: "/shared/gaussian/g16/bsd/g16.profile",
		GaussianBinary:  "g16",
		ParallelModule:  "parallel",
		ScratchRoot:     "/scratch",
	}
}

func TestWriteGaussianScript(t *testing.T) {
	dir := t.TempDir()
	path := GaussianScriptPath(dir, "mol_001")

	err := WriteGaussianScript(path, GaussianJob{
		JobName: "mol_001",
		WorkDir: "/work/library/mol_001",
		LogDir:  dir,
		Params:  Params{Partition: "short", Time: "5:59:00", Nodes: 1, Tasks: 16},
		Env:     testEnv(),
	})
	if err != nil {
		t.Fatalf("WriteGaussianScript failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read script: %v", err)
	}
	script := string(content)

	for _, want := range []string{
		"#SBATCH --job-name=mol_001",
		"#SBATCH --time=5:59:00",
		"#SBATCH -N 1",
		"#SBATCH -n 16",
		"#SBATCH --partition=short",
		"module load gaussian/g16",
		"source /shared/gaussian/g16/bsd/g16.profile",
		"work=/work/library/mol_001",
		"g16 mpp.com",
		"exit $job_status",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("Script missing %q:\n%s", want, script)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat script: %v", err)
	}
	if info.Mode().Perm()&0111 == 0 {
		t.Errorf("Expected executable script, got mode %v", info.Mode())
	}
}

func TestWriteBatchScript(t *testing.T) {
	dir := t.TempDir()
	path := BatchScriptPath(dir, 2)

	err := WriteBatchScript(path, BatchJob{
		JobName:  "MMC_batch_2",
		Number:   2,
		LogDir:   dir,
		Binary:   "/opt/mmc/mmc.bin",
		WorkDirs: []string{"/sacp/mol_a", "/sacp/mol_b", "/sacp/mol_c"},
		Params:   Params{Partition: "short", Time: "47:59:00", Nodes: 1},
		Env:      testEnv(),
	})
	if err != nil {
		t.Fatalf("WriteBatchScript failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read script: %v", err)
	}
	script := string(content)

	for _, want := range []string{
		"#SBATCH --job-name=MMC_batch_2",
		"#SBATCH --ntasks=3",
		"#SBATCH --cpus-per-task=1",
		"module load parallel",
		"parallel --jobs 3 :::",
		`"cd /sacp/mol_a && /opt/mmc/mmc.bin < prot.inp > prot.out"`,
		`"cd /sacp/mol_c && /opt/mmc/mmc.bin < prot.inp > prot.out"`,
		"batch_2_slurm_%j.out",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("Script missing %q:\n%s", want, script)
		}
	}
}

func TestBatchScriptPath(t *testing.T) {
	got := BatchScriptPath("/runs", 7)
	if filepath.Base(got) != "batch_7_submit.sh" {
		t.Errorf("Expected batch_7_submit.sh, got %s", got)
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		problems int
	}{
		{name: "valid", params: Params{Partition: "short", Time: "5:59:00", Nodes: 1, Tasks: 16}},
		{name: "long time limit", params: Params{Partition: "long", Time: "123:00:00", Nodes: 1, Tasks: 1}},
		{name: "missing partition", params: Params{Time: "5:59:00", Nodes: 1, Tasks: 16}, problems: 1},
		{name: "bad time format", params: Params{Partition: "short", Time: "6 hours", Nodes: 1, Tasks: 16}, problems: 1},
		{name: "everything wrong", params: Params{}, problems: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := tt.params.Validate()
			if len(problems) != tt.problems {
				t.Errorf("Expected %d problems, got %d: %v", tt.problems, len(problems), problems)
			}
		})
	}
}
