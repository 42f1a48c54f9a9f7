package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vesselx/internal/application"
	"vesselx/internal/application/commands"
)

var addRootCmd = &cobra.Command{
	Use:   "add-root <x,y,z>",
	Short: "Place the root of an empty tree",
	Long: `Place the first point of the tree. Fails when the tree already has a root.

Example:
  vesselx-cli -s $ID add-root 12.5,-40,88`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireSession()
		if err != nil {
			return err
		}
		pos, err := application.ParsePosition(args[0])
		if err != nil {
			return err
		}

		result, err := commands.NewAddRootCommand(GetEnv().Store, id, pos).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var addChildCmd = &cobra.Command{
	Use:   "add-child <parent-id> <x,y,z>",
	Short: "Append a point as the last child of a node",
	Long: `Append a new point under an existing node. Siblings keep their order and
the new point goes last.

Example:
  vesselx-cli -s $ID add-child node_0 14,-38,90`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireSession()
		if err != nil {
			return err
		}
		pos, err := application.ParsePosition(args[1])
		if err != nil {
			return err
		}

		addCmd := commands.NewAddChildCommand(GetEnv().Store, id, application.NodeID(args[0]), pos)
		result, err := addCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var insertBeforeCmd = &cobra.Command{
	Use:   "insert-before <node-id> <x,y,z>",
	Short: "Insert a point between a node and its parent",
	Long: `Insert a new point on the edge above a node. The new point takes the
node's place among its siblings and the node becomes its only child.
The root has no edge above it and cannot be used.

Example:
  vesselx-cli -s $ID insert-before node_2 13,-39,89`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireSession()
		if err != nil {
			return err
		}
		pos, err := application.ParsePosition(args[1])
		if err != nil {
			return err
		}

		insertCmd := commands.NewInsertBeforeCommand(GetEnv().Store, id, application.NodeID(args[0]), pos)
		result, err := insertCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var (
	placeAnchor string
	placeBefore bool
)

var placeCmd = &cobra.Command{
	Use:   "place <x,y,z>",
	Short: "Place a clicked point the way the viewer does",
	Long: `Place one point. After a template is applied each call positions the next
unplaced template node. Otherwise an empty tree gets its root, and the
--anchor node gets a new child, or with --before a new point on the edge
above it.

Examples:
  vesselx-cli -s $ID template portal
  vesselx-cli -s $ID place 12.5,-40,88
  vesselx-cli -s $ID place --anchor node_3 14,-38,90
  vesselx-cli -s $ID place --anchor node_3 --before 13,-39,89`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireSession()
		if err != nil {
			return err
		}
		pos, err := application.ParsePosition(args[0])
		if err != nil {
			return err
		}

		result, err := commands.NewPlaceCommand(GetEnv().Store, id, application.NodeID(placeAnchor), placeBefore, pos).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	placeCmd.Flags().StringVarP(&placeAnchor, "anchor", "a", "", "selected node the point attaches to")
	placeCmd.Flags().BoolVarP(&placeBefore, "before", "b", false, "insert above the anchor instead of adding a child")

	rootCmd.AddCommand(placeCmd)
	rootCmd.AddCommand(addRootCmd)
	rootCmd.AddCommand(addChildCmd)
	rootCmd.AddCommand(insertBeforeCmd)
}
