package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vesselx/internal/application"
	"vesselx/internal/application/commands"
)

var setPositionCmd = &cobra.Command{
	Use:   "set-position <node-id> <x,y,z>",
	Short: "Move a point to new RAS coordinates",
	Long: `Set the position of a point. Locked points refuse to move. Positioning a
template point marks it as placed.

Example:
  vesselx-cli -s $ID set-position PortalVein 10,-42,85`,
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

		setCmd := commands.NewSetPositionCommand(GetEnv().Store, id, application.NodeID(args[0]), pos)
		result, err := setCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func lockCommand(use, short string, locked bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <node-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireSession()
			if err != nil {
				return err
			}

			lockCmd := commands.NewSetLockedCommand(GetEnv().Store, id, application.NodeID(args[0]), locked)
			result, err := lockCmd.Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(setPositionCmd)
	rootCmd.AddCommand(lockCommand("lock", "Lock a point so it keeps its position", true))
	rootCmd.AddCommand(lockCommand("unlock", "Allow a locked point to move again", false))
}
