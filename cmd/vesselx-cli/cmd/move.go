package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vesselx/internal/application"
	"vesselx/internal/application/commands"
)

var moveRelative bool

var moveCmd = &cobra.Command{
	Use:   "move <node-id> <index>",
	Short: "Reorder a point among its siblings",
	Long: `Move a point to a new zero-based index among its siblings.
With --by the index is an offset from the current position and is clamped
to the sibling range.

Examples:
  vesselx-cli -s $ID move node_4 0        # make node_4 the first child
  vesselx-cli -s $ID move --by node_4 1   # swap with the next sibling`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireSession()
		if err != nil {
			return err
		}
		nodeID := application.NodeID(args[0])
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return &application.ValidationError{Field: "index", Message: fmt.Sprintf("not an integer: %q", args[1])}
		}

		var result *commands.ReorderResult
		if moveRelative {
			result, err = commands.NewShiftChildCommand(GetEnv().Store, id, nodeID, n).Execute(cmd.Context())
		} else {
			result, err = commands.NewReorderChildCommand(GetEnv().Store, id, "", nodeID, n).Execute(cmd.Context())
		}
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	moveCmd.Flags().BoolVar(&moveRelative, "by", false, "treat index as an offset")
	rootCmd.AddCommand(moveCmd)
}
