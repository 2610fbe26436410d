// Package cli implements the sacpflow command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zangef1/SACPWorkflow/internal/config"
	"github.com/zangef1/SACPWorkflow/internal/logging"
	"github.com/zangef1/SACPWorkflow/internal/version"
)

var (
	// Global flags
	cfgFile     string
	libraryFlag string
	mmcDirFlag  string
	verbose     bool

	// Global logger
	logger *logging.Logger

	// Global context for signal handling
	rootContext context.Context
	cancelFunc  context.CancelFunc
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sacpflow",
		Short: "SACP pipeline automation for molecule libraries",
		Long: `sacpflow ` + version.Version + ` - drives a molecule library through the
SACP simulation pipeline on a SLURM cluster:

  prep      scaffold Gaussian input decks from geometry files
  opt       submit and track structure optimizations
  resp      set up and submit RESP charge runs
  amber     run the AMBER parameter-generation tool chain
  convert   build solvent parameter files from AMBER products
  collect   stage finished molecules into SACP collections
  inputs    generate MMC simulation inputs
  mmc       submit MMC batches under GNU parallel

Pipeline state lives in the filesystem: every stage derives a
molecule's status from the artifacts earlier stages left in its
directory, so any stage can be rerun or resumed by pointing the tool
at the same library.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize logger
			logger = logging.NewDefaultCLILogger()
			if verbose {
				logging.SetGlobalLevel(-1) // zerolog.DebugLevel
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&libraryFlag, "library", "L", "", "Molecule library directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&mmcDirFlag, "mmc-dir", "", "MMC program directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")

	rootCmd.Version = version.Version + " (built " + version.BuildTime + ")"

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	// Create a context that can be cancelled by signals
	rootContext, cancelFunc = context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		for sig := range sigChan {
			// A closed channel delivers nil and ends the loop.
			if sig != nil {
				fmt.Fprintf(os.Stderr, "\nReceived %v, cancelling...\n", sig)
				cancelFunc()
			}
		}
	}()

	rootCmd := NewRootCmd()
	AddCommands(rootCmd)
	err := rootCmd.Execute()

	signal.Stop(sigChan)
	close(sigChan)

	return err
}

// AddCommands adds all subcommands to the root command.
func AddCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newPrepCmd())
	rootCmd.AddCommand(newOptCmd())
	rootCmd.AddCommand(newRespCmd())
	rootCmd.AddCommand(newAmberCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newCollectCmd())
	rootCmd.AddCommand(newInputsCmd())
	rootCmd.AddCommand(newMMCCmd())
	rootCmd.AddCommand(newNodesCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// GetLogger returns the global CLI logger.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewDefaultCLILogger()
	}
	return logger
}

// GetContext returns the global CLI context with signal handling. It is
// cancelled when the user presses Ctrl+C.
func GetContext() context.Context {
	if rootContext == nil {
		return context.Background()
	}
	return rootContext
}

// loadConfig loads the configuration with environment and flag
// overrides applied, without validating it. Commands that submit jobs
// or invoke the chemistry tools use loadValidConfig instead.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg.MergeOverrides(libraryFlag, mmcDirFlag)
	return cfg, nil
}

// loadValidConfig loads the configuration and rejects it with every
// problem listed when it cannot drive a run.
func loadValidConfig() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
