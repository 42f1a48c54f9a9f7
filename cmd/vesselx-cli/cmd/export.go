package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vesselx/internal/application/commands"
)

var (
	exportName    string
	exportOpen    bool
	importReplace bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the fiducial and adjacency CSV files",
	Long: `Export the tree to the configured export directory as two files:
<name>_fiducials.csv (id,x,y,z,parentId in depth-first order) and
<name>_adjacency.csv (the parent/child matrix). The name defaults to the
session name.

Examples:
  vesselx-cli -s $ID export
  vesselx-cli -s $ID export --name p07_portal --open`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireSession()
		if err != nil {
			return err
		}

		result, err := commands.NewExportCommand(GetEnv().Store, GetEnv().Exporter, id, exportName).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		fmt.Println(result.Files.MatrixPath)

		if exportOpen {
			return GetEnv().Editor.OpenFile(result.Files.FiducialPath)
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <fiducials.csv>",
	Short: "Load a tree from a fiducial CSV file",
	Long: `Rebuild the session tree from a fiducial CSV written by export.
Parents must appear before their children. A session that already has points
is left alone unless --replace is given.

Example:
  vesselx-cli -s $ID import ~/exports/p07_portal_fiducials.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireSession()
		if err != nil {
			return err
		}

		loadCmd := commands.NewImportCommand(GetEnv().Store, GetEnv().Exporter, id, args[0], importReplace)
		result, err := loadCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportName, "name", "n", "", "base file name (default: session name)")
	exportCmd.Flags().BoolVar(&exportOpen, "open", false, "open the fiducial file in $EDITOR")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "replace a non-empty tree")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
