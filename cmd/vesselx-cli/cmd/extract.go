package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vesselx/internal/application/commands"
	"vesselx/internal/domain"
)

var extractStrategy string

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Run vessel extraction on the tree",
	Long: fmt.Sprintf(`Hand the tree to the configured extraction program. The strategy decides
how points are grouped into seed and stopper lists; available strategies:
  %s

Every point must be placed and the tree needs at least two points.

Examples:
  vesselx-cli -s $ID extract
  vesselx-cli -s $ID extract --strategy branch`, strings.Join(domain.StrategyNames(), ", ")),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireSession()
		if err != nil {
			return err
		}
		strategy := extractStrategy
		if strategy == "" {
			strategy = GetEnv().Config.Extractor.Strategy
		}

		result, err := commands.NewExtractCommand(GetEnv().Store, GetEnv().Extractor, id, strategy).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractStrategy, "strategy", "", "seed strategy (default from config)")
	rootCmd.AddCommand(extractCmd)
}
