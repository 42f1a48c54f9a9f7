package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vesselx/internal/adapters/filesystem"
	"vesselx/internal/application"
	"vesselx/internal/application/commands"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the branch tree",
	Long: `Display the branch tree of the session, one point per line, indented by depth.
With --edges print the parent/child pairs instead, with --polyline the points of
the single line drawn through the whole tree.

Examples:
  vesselx-cli -s $ID tree
  vesselx-cli -s $ID tree --edges
  vesselx-cli -s $ID tree --polyline`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireSession()
		if err != nil {
			return err
		}
		result, err := commands.NewShowTreeCommand(GetEnv().Store, id).Execute(cmd.Context())
		if err != nil {
			return err
		}

		switch {
		case showEdges && showPolyline:
			return fmt.Errorf("--edges and --polyline are mutually exclusive")
		case showEdges:
			if out := application.FormatEdges(result.Tree); out != "" {
				fmt.Println(out)
			}
		case showPolyline:
			if out := application.FormatPolyline(result.Tree); out != "" {
				fmt.Println(out)
			}
		default:
			fmt.Printf("%s (%d nodes)\n", result.Session.Name, result.Tree.Len())
			fmt.Println(application.FormatTree(result.Tree))
		}
		return nil
	},
}

var (
	showEdges    bool
	showPolyline bool
	showMatrix   bool
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Print the depth-first point sequence",
	Long: `Print the depth-first sequence of the tree: index, id, position and parent.
With --matrix print the adjacency matrix instead, rows and columns in the
same order.

Examples:
  vesselx-cli -s $ID sequence
  vesselx-cli -s $ID sequence --matrix`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireSession()
		if err != nil {
			return err
		}
		result, err := commands.NewShowTreeCommand(GetEnv().Store, id).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if showMatrix {
			return filesystem.WriteMatrix(cmd.OutOrStdout(), result.Tree.AdjacencyMatrix())
		}
		if len(result.Sequence) > 0 {
			fmt.Println(application.FormatSequence(result.Sequence))
		}
		return nil
	},
}

func init() {
	treeCmd.Flags().BoolVar(&showEdges, "edges", false, "print parent/child pairs")
	treeCmd.Flags().BoolVar(&showPolyline, "polyline", false, "print the polyline walk of the tree")
	sequenceCmd.Flags().BoolVar(&showMatrix, "matrix", false, "print the adjacency matrix")
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(sequenceCmd)
}
