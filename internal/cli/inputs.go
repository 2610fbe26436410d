package cli

import (
	"github.com/spf13/cobra"

	"github.com/zangef1/SACPWorkflow/internal/pathutil"
	"github.com/zangef1/SACPWorkflow/internal/prep"
)

// newInputsCmd creates the 'inputs' command.
func newInputsCmd() *cobra.Command {
	var (
		collectionDir string
		templatePath  string
		proteinDir    string
		force         bool
	)

	cmd := &cobra.Command{
		Use:   "inputs",
		Short: "Generate MMC simulation inputs for collected molecules",
		Long: `Write a prot.inp for every collected molecule holding a solvent
file: the template's SLVA directive is patched with the molecule's
atom count, and the shared protein files are copied alongside when a
protein directory is given.

The collection root descends one nested SACP/ level automatically, so
the directory handed to 'collect --dest' works here unchanged.

Example:
  sacpflow inputs --collection /work/batches/SACP -t ./prot_template.inp
  sacpflow inputs --collection /work/batches/SACP_2 -t ./prot_template.inp -p ./protein`,
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, err := pathutil.Resolve(collectionDir)
			if err != nil {
				return err
			}
			template, err := pathutil.Resolve(templatePath)
			if err != nil {
				return err
			}
			protein := proteinDir
			if protein != "" {
				if protein, err = pathutil.Resolve(protein); err != nil {
					return err
				}
			}

			summary, err := prep.WriteMMCInputs(prep.MMCInputOptions{
				CollectionDir: collection,
				TemplatePath:  template,
				ProteinDir:    protein,
				Force:         force,
			}, GetLogger())
			if err != nil {
				return err
			}
			printPrepSummary(summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&collectionDir, "collection", "C", "", "SACP collection directory (required)")
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Simulation input template carrying the SLVA directive (required)")
	cmd.Flags().StringVarP(&proteinDir, "protein", "p", "", "Directory of protein files copied into every molecule dir")
	cmd.Flags().BoolVar(&force, "force", false, "Rewrite simulation inputs that already exist")
	cmd.MarkFlagRequired("collection")
	cmd.MarkFlagRequired("template")

	return cmd
}
