package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zangef1/SACPWorkflow/internal/config"
	"github.com/zangef1/SACPWorkflow/internal/slurm"
	"github.com/zangef1/SACPWorkflow/internal/track"
)

// newConfigCmd creates the 'config' command group.
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sacpflow configuration",
		Long: `Configuration management commands.

Commands:
  init  - Write a default configuration file to edit
  show  - Display the effective configuration
  path  - Show the configuration file path`,
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigPathCmd())

	return configCmd
}

// resolveConfigPath mirrors the load order: the --config flag, then
// SACPFLOW_CONFIG, then the per-user default location.
func resolveConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if env := os.Getenv(config.EnvConfigPath); env != "" {
		return env
	}
	return config.GetDefaultConfigPath()
}

// newConfigInitCmd creates the 'config init' command.
func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write the stock cluster configuration to the config path so site
settings can be edited in one place. Use --force to overwrite an
existing file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolveConfigPath()
			if path == "" {
				return fmt.Errorf("no config path available; pass --config")
			}
			if !force && track.FileExists(path) {
				fmt.Printf("Configuration already exists at: %s\n", path)
				fmt.Println("Use --force to overwrite or 'config show' to view it.")
				return nil
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			fmt.Printf("Wrote default configuration to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	return cmd
}

// newConfigShowCmd creates the 'config show' command.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Long: `Display the configuration after applying the file, environment
variables, and flags, which is what every other command runs with.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			path := resolveConfigPath()
			if track.FileExists(path) {
				fmt.Printf("Configuration file: %s\n", path)
			} else {
				fmt.Printf("Configuration file: %s (not present, using defaults)\n", path)
			}
			fmt.Printf("Library: %s\n", libraryRoot(cfg))
			fmt.Println("Scheduler:")
			fmt.Printf("  submit command: %s\n", cfg.Scheduler.Submit)
			printParams("opt", cfg.Scheduler.Opt)
			printParams("resp", cfg.Scheduler.Resp)
			printParams("mmc", cfg.Scheduler.MMC)
			fmt.Println("Environment:")
			fmt.Printf("  gaussian module: %s\n", cfg.Env.GaussianModule)
			fmt.Printf("  gaussian profile: %s\n", cfg.Env.GaussianProfile)
			fmt.Printf("  gaussian binary: %s\n", cfg.Env.GaussianBinary)
			fmt.Printf("  parallel module: %s\n", cfg.Env.ParallelModule)
			fmt.Printf("  scratch root: %s\n", cfg.Env.ScratchRoot)
			fmt.Println("AMBER tools:")
			fmt.Printf("  antechamber: %s\n", cfg.Amber.Antechamber)
			fmt.Printf("  parmchk: %s\n", cfg.Amber.Parmchk)
			fmt.Printf("  tleap: %s\n", cfg.Amber.Tleap)
			fmt.Println("MMC:")
			fmt.Printf("  program dir: %s\n", cfg.MMC.ProgramDir)
			fmt.Printf("  batch size: %d\n", cfg.MMC.BatchSize)

			if err := cfg.Validate(); err != nil {
				fmt.Printf("\n%v\n", err)
			}
			return nil
		},
	}
}

func printParams(name string, p slurm.Params) {
	fmt.Printf("  %s: partition=%s time=%s nodes=%d tasks=%d\n",
		name, p.Partition, p.Time, p.Nodes, p.Tasks)
}

// newConfigPathCmd creates the 'config path' command.
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(resolveConfigPath())
		},
	}
}
