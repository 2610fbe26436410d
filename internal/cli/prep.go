package cli

import (
	"github.com/spf13/cobra"

	"github.com/zangef1/SACPWorkflow/internal/pathutil"
	"github.com/zangef1/SACPWorkflow/internal/prep"
)

// newPrepCmd creates the 'prep' command.
func newPrepCmd() *cobra.Command {
	var (
		inputDir     string
		outputDir    string
		templatePath string
		force        bool
	)

	cmd := &cobra.Command{
		Use:   "prep",
		Short: "Scaffold Gaussian input decks from geometry files",
		Long: `Scan a directory for .g geometry files and build one molecule
directory per file under the library root, each holding a copy of the
geometry and an mpp.com deck spliced from the route template.

Existing decks are left untouched unless --force.

Example:
  sacpflow prep -i ./geometries -t ./template.com
  sacpflow prep -i ./geometries -o /work/library -t ./template.com --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = libraryRoot(cfg)
			}
			input, err := pathutil.Resolve(inputDir)
			if err != nil {
				return err
			}
			output, err := pathutil.Resolve(outputDir)
			if err != nil {
				return err
			}
			template, err := pathutil.Resolve(templatePath)
			if err != nil {
				return err
			}

			summary, err := prep.ScaffoldDecks(prep.GaussianOptions{
				InputDir:     input,
				OutputDir:    output,
				TemplatePath: template,
				Force:        force,
			}, GetLogger())
			if err != nil {
				return err
			}
			printPrepSummary(summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory containing .g geometry files (required)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Library directory receiving molecule folders (default: configured library)")
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Route-section template file (required)")
	cmd.Flags().BoolVar(&force, "force", false, "Rewrite decks that already exist")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("template")

	return cmd
}
