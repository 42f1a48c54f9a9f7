package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vesselx/internal/application"
	"vesselx/internal/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <node-id>",
	Short: "Delete a point from the tree",
	Long: `Delete a point. Its children move up to its parent and take its place
among the siblings, in order.

The root can only be deleted when it has exactly one child, which becomes
the new root.

Example:
  vesselx-cli -s $ID delete node_3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireSession()
		if err != nil {
			return err
		}

		result, err := commands.NewDeleteNodeCommand(GetEnv().Store, id, application.NodeID(args[0])).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
