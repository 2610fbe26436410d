package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scheduler.Opt.Time != "5:59:00" {
		t.Errorf("Expected opt time 5:59:00, got %s", cfg.Scheduler.Opt.Time)
	}
	if cfg.Scheduler.MMC.Time != "47:59:00" {
		t.Errorf("Expected mmc time 47:59:00, got %s", cfg.Scheduler.MMC.Time)
	}
	if cfg.MMC.BatchSize != 8 {
		t.Errorf("Expected batch size 8, got %d", cfg.MMC.BatchSize)
	}
	if cfg.Amber.Parmchk != "parmchk2" {
		t.Errorf("Expected parmchk2, got %s", cfg.Amber.Parmchk)
	}
	if cfg.Scheduler.Submit != "sbatch" {
		t.Errorf("Expected sbatch submit command, got %s", cfg.Scheduler.Submit)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Scheduler.Opt.Partition != "short" {
		t.Errorf("Expected default partition, got %s", cfg.Scheduler.Opt.Partition)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `library: /work/library
scheduler:
  opt:
    partition: long
    time: "23:59:00"
    nodes: 2
    tasks: 32
mmc:
  program_dir: /opt/mmc
  batch_size: 4
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Library != "/work/library" {
		t.Errorf("Expected library override, got %s", cfg.Library)
	}
	if cfg.Scheduler.Opt.Partition != "long" || cfg.Scheduler.Opt.Tasks != 32 {
		t.Errorf("Expected opt overrides, got %+v", cfg.Scheduler.Opt)
	}
	// Sections absent from the file keep their defaults.
	if cfg.Scheduler.Resp.Time != "5:59:00" {
		t.Errorf("Expected resp defaults preserved, got %+v", cfg.Scheduler.Resp)
	}
	if cfg.MMC.ProgramDir != "/opt/mmc" || cfg.MMC.BatchSize != 4 {
		t.Errorf("Expected mmc overrides, got %+v", cfg.MMC)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("scheduler: ["), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestMergeOverrides_Precedence(t *testing.T) {
	t.Setenv(EnvLibrary, "/env/library")
	t.Setenv(EnvMMCDir, "/env/mmc")

	cfg := DefaultConfig()
	cfg.Library = "/file/library"
	cfg.MMC.ProgramDir = "/file/mmc"

	// Environment beats the file.
	cfg.MergeOverrides("", "")
	if cfg.Library != "/env/library" || cfg.MMC.ProgramDir != "/env/mmc" {
		t.Errorf("Expected env overrides, got %s / %s", cfg.Library, cfg.MMC.ProgramDir)
	}

	// Flags beat the environment.
	cfg.MergeOverrides("/flag/library", "/flag/mmc")
	if cfg.Library != "/flag/library" || cfg.MMC.ProgramDir != "/flag/mmc" {
		t.Errorf("Expected flag overrides, got %s / %s", cfg.Library, cfg.MMC.ProgramDir)
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scheduler.Opt.Partition = ""
	cfg.Scheduler.Resp.Time = "whenever"
	cfg.MMC.BatchSize = 0
	cfg.Amber.Tleap = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"scheduler.opt", "scheduler.resp", "batch_size", "amber.tleap"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected %q in validation error, got:\n%s", want, msg)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Library = "/work/library"
	cfg.MMC.ProgramDir = "/opt/mmc"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Library != cfg.Library {
		t.Errorf("Expected library %s, got %s", cfg.Library, loaded.Library)
	}
	if loaded.Scheduler.Opt != cfg.Scheduler.Opt {
		t.Errorf("Expected opt params %+v, got %+v", cfg.Scheduler.Opt, loaded.Scheduler.Opt)
	}
}
