package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"linkshelf/internal/app"
	"linkshelf/internal/application/commands"
	"linkshelf/internal/styles"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Permanently delete an archive entry",
	Long: `Permanently delete an archive entry and everything under it.

Only archived entries can be deleted; archive a node first.
Warning: This operation cannot be undone.

Examples:
  linkshelf-cli delete 3f2a9c1e          # Asks for confirmation
  linkshelf-cli delete 3f2a9c1e --yes    # No prompt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		ctx := context.Background()

		confirmed := deleteYes
		if !confirmed {
			confirmed = confirm(fmt.Sprintf("Permanently delete %s? This cannot be undone.", id))
		}
		if !confirmed {
			fmt.Println(styles.MutedText.Render("Cancelled."))
			return nil
		}

		return mutate(func(a *app.App) (string, error) {
			result, err := commands.NewDeleteCommand(a.Archive(), id, confirmed).Execute(ctx)
			if err != nil {
				return "", err
			}
			return result.Message, nil
		})
	},
}

// confirm asks a yes/no question on stdin, defaulting to no
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", styles.WarningMsg.Render(question))
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "delete without asking for confirmation")
	rootCmd.AddCommand(deleteCmd)
}
