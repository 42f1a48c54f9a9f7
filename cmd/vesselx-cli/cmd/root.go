package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vesselx/internal/application"
	"vesselx/internal/config"
	"vesselx/internal/wiring"
)

var (
	configPath string
	dataDir    string
	logLevel   string
	sessionID  string
	env        *wiring.Env
)

var rootCmd = &cobra.Command{
	Use:   "vesselx-cli",
	Short: "CLI for editing vessel branch trees",
	Long: `vesselx-cli edits the vessel branch trees used to seed liver vessel
segmentation. A session holds one tree of RAS points; commands add, insert,
delete, move and lock points, export the fiducial and adjacency CSV files and
hand the tree to the configured extraction program.

Most commands act on the session given with --session or $VESSELX_SESSION.
Put -- before a position that starts with a minus sign.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		e, err := wiring.Open(configPath, wiring.Overrides{DataDir: dataDir, LogLevel: logLevel})
		if err != nil {
			return err
		}
		env = e
		cmd.SetContext(env.Context(cmd.Context()))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if env == nil {
			return nil
		}
		return env.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.Path(), "path to the config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "directory holding the session database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&sessionID, "session", "s", os.Getenv("VESSELX_SESSION"), "session ID")
}

// GetEnv returns the initialized environment
func GetEnv() *wiring.Env {
	return env
}

// requireSession returns the selected session ID
func requireSession() (string, error) {
	if sessionID == "" {
		return "", &application.ValidationError{Field: "session", Message: "set --session or $VESSELX_SESSION"}
	}
	return sessionID, nil
}
