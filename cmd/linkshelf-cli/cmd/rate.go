package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"linkshelf/internal/app"
	"linkshelf/internal/application/commands"
)

var rateCmd = &cobra.Command{
	Use:   "rate <path> <rating> <score> [reason...]",
	Short: "Set a rating on a node",
	Long: `Set a named rating on a category or link.

If the node already has a value for the rating, the old value is
archived and can be brought back with "linkshelf-cli restore-rating".

Examples:
  linkshelf-cli rate "Work > Docs" Content.Quality 8 "clear and current"`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid score %q: must be an integer", args[2])
		}
		reason := strings.Join(args[3:], " ")
		ctx := context.Background()

		return mutate(func(a *app.App) (string, error) {
			result, err := commands.NewRateCommand(a.Archive(), args[0], args[1], score, reason).Execute(ctx)
			if err != nil {
				return "", err
			}
			return result.Message, nil
		})
	},
}

func init() {
	rootCmd.AddCommand(rateCmd)
}
