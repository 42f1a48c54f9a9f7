package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vesselx/internal/application/commands"
	"vesselx/internal/domain"
)

var templateCmd = &cobra.Command{
	Use:   "template <portal|ivc>",
	Short: "Fill an empty tree with an anatomical template",
	Long: `Fill an empty tree with the named branches of a vessel template. Template
points start unplaced; give each one a position with set-position before
extracting.

Examples:
  vesselx-cli -s $ID template portal
  vesselx-cli -s $ID template ivc`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{domain.PortalVeinTemplate.Name, domain.InferiorCavaVeinTemplate.Name},
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireSession()
		if err != nil {
			return err
		}

		result, err := commands.NewApplyTemplateCommand(GetEnv().Store, id, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
}
