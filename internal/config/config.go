// Package config loads and validates the pipeline configuration.
// Precedence, highest to lowest: command-line flags, environment
// variables, the YAML config file, built-in defaults. A missing config
// file is not an error; the defaults describe a stock cluster setup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zangef1/SACPWorkflow/internal/slurm"
)

// Environment variables honored between flags and the config file.
const (
	EnvLibrary    = "SACPFLOW_LIBRARY"
	EnvMMCDir     = "SACPFLOW_MMC_DIR"
	EnvConfigPath = "SACPFLOW_CONFIG"
)

// SchedulerConfig holds the per-stage scheduler resource requests.
type SchedulerConfig struct {
	// Submit - submit binary handed the rendered scripts
	Submit string `yaml:"submit_command"`
	// Opt - geometry optimization runs (one molecule per job)
	Opt slurm.Params `yaml:"opt"`
	// Resp - RESP charge runs (one molecule per job)
	Resp slurm.Params `yaml:"resp"`
	// MMC - batch simulation runs; Tasks is taken from the chunk size at
	// submission time, so the configured value only seeds validation
	MMC slurm.Params `yaml:"mmc"`
}

// MMCConfig points at the simulation engine and sizes its batches.
type MMCConfig struct {
	ProgramDir string `yaml:"program_dir"` // directory holding mmc.bin
	BatchSize  int    `yaml:"batch_size"`  // molecules per scheduler job
}

// AmberConfig names the AmberTools binaries the parameterization stage
// invokes. Override these when the cluster installs versioned or
// wrapped copies.
type AmberConfig struct {
	Antechamber string `yaml:"antechamber"`
	Parmchk     string `yaml:"parmchk"`
	Tleap       string `yaml:"tleap"`
}

// Config is the full tool configuration.
type Config struct {
	// Library - default molecule library directory the stage commands
	// scan; empty means the parent of the working directory, matching
	// how the pipeline directories are laid out on the cluster.
	Library string `yaml:"library"`

	Scheduler SchedulerConfig   `yaml:"scheduler"`
	Env       slurm.Environment `yaml:"environment"`
	Amber     AmberConfig       `yaml:"amber"`
	MMC       MMCConfig         `yaml:"mmc"`
}

// DefaultConfig returns the stock cluster setup.
func DefaultConfig() *Config {
	gaussian := slurm.Params{
		Partition: "short",
		Time:      "5:59:00",
		Nodes:     1,
		Tasks:     16,
	}
	return &Config{
		Scheduler: SchedulerConfig{
			Submit: "sbatch",
			Opt:    gaussian,
			Resp:   gaussian,
			MMC: slurm.Params{
				Partition: "short",
				Time:      "47:59:00",
				Nodes:     1,
				Tasks:     1,
			},
		},
		Env: slurm.Environment{
			GaussianModule:  "gaussian/g16",
			GaussianProfile: "/shared/centos7/gaussian/g16/bsd/g16.profile",
			GaussianBinary:  "g16",
			ParallelModule:  "parallel",
			ScratchRoot:     "/scratch",
		},
		Amber: AmberConfig{
			Antechamber: "antechamber",
			Parmchk:     "parmchk2",
			Tleap:       "tleap",
		},
		MMC: MMCConfig{
			BatchSize: 8,
		},
	}
}

// Load reads the config file at path on top of the defaults. An empty
// path falls back to SACPFLOW_CONFIG, then the default location. A file
// that does not exist yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = GetDefaultConfigPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// MergeOverrides applies environment variables and then command-line
// flags on top of the loaded config. Empty values leave the config
// untouched.
func (c *Config) MergeOverrides(libraryFlag, mmcDirFlag string) {
	if env := os.Getenv(EnvLibrary); env != "" {
		c.Library = env
	}
	if env := os.Getenv(EnvMMCDir); env != "" {
		c.MMC.ProgramDir = env
	}
	if libraryFlag != "" {
		c.Library = libraryFlag
	}
	if mmcDirFlag != "" {
		c.MMC.ProgramDir = mmcDirFlag
	}
}

// Validate collects every problem with the configuration into one
// error, so the operator fixes a bad config in a single round.
func (c *Config) Validate() error {
	var problems []string
	for _, section := range []struct {
		name   string
		params slurm.Params
	}{
		{"scheduler.opt", c.Scheduler.Opt},
		{"scheduler.resp", c.Scheduler.Resp},
		{"scheduler.mmc", c.Scheduler.MMC},
	} {
		for _, p := range section.params.Validate() {
			problems = append(problems, section.name+": "+p)
		}
	}
	if c.Scheduler.Submit == "" {
		problems = append(problems, "scheduler.submit_command is required")
	}
	if c.MMC.BatchSize < 1 {
		problems = append(problems, fmt.Sprintf("mmc.batch_size must be at least 1, got %d", c.MMC.BatchSize))
	}
	if c.Env.GaussianBinary == "" {
		problems = append(problems, "environment.gaussian_binary is required")
	}
	for _, tool := range []struct {
		name  string
		value string
	}{
		{"amber.antechamber", c.Amber.Antechamber},
		{"amber.parmchk", c.Amber.Parmchk},
		{"amber.tleap", c.Amber.Tleap},
	} {
		if tool.value == "" {
			problems = append(problems, tool.name+" is required")
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration:\n  %s", strings.Join(problems, "\n  "))
}

// Save writes the configuration as YAML, creating the parent directory
// if needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// ConfigDirName is the per-user configuration directory name.
const ConfigDirName = "sacpflow"

// getConfigDir returns the platform-appropriate config directory:
// %APPDATA%\sacpflow on Windows, ~/.config/sacpflow elsewhere.
func getConfigDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, ConfigDirName)
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", ConfigDirName)
	}
	return ""
}

// GetDefaultConfigPath returns where Load looks for the config file
// when neither the flag nor SACPFLOW_CONFIG names one.
func GetDefaultConfigPath() string {
	dir := getConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}
