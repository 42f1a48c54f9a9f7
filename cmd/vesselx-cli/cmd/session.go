package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vesselx/internal/application/commands"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage segmentation sessions",
	Long: `Create, list and delete sessions. Each session stores one branch tree.

Examples:
  vesselx-cli session new "patient 07 portal"
  vesselx-cli session list
  vesselx-cli session delete 3f0c...`,
}

var sessionNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create an empty session",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		createCmd := commands.NewCreateSessionCommand(GetEnv().Store, strings.Join(args, " "))
		result, err := createCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Session.ID)
		return nil
	},
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, most recently edited first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := commands.NewListSessionsCommand(GetEnv().Store).Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, s := range sessions {
			fmt.Printf("%s  %-30s %4d nodes  %s\n", s.ID, s.Name, s.NodeCount, s.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deleteCmd := commands.NewDeleteSessionCommand(GetEnv().Store, args[0])
		result, err := deleteCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionNewCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	rootCmd.AddCommand(sessionCmd)
}
