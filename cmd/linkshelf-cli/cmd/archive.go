package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"linkshelf/internal/app"
	"linkshelf/internal/application/commands"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <path>",
	Short: "Archive a category or link",
	Long: `Move a category (with everything under it) or a link into the archive.

The node remembers the full path of its parent so it can be restored
there later. Paths are category and link names joined with " > ".

Examples:
  linkshelf-cli archive "Work > Projects > Alpha"   # Archive a category
  linkshelf-cli archive "Work > Docs > Go spec"     # Archive a link`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return mutate(func(a *app.App) (string, error) {
			result, err := commands.NewArchiveCommand(a.Archive(), args[0]).Execute(ctx)
			if err != nil {
				return "", err
			}
			return result.Message, nil
		})
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
}
