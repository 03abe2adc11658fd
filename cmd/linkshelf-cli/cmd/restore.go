package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"linkshelf/internal/app"
	"linkshelf/internal/application/commands"
	"linkshelf/internal/styles"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore an archive entry",
	Long: `Restore an archived category, link or rating value by its ID.

A unique prefix of the ID is enough (see "linkshelf-cli list").
A category whose original parent no longer exists is restored at the
top level. A link whose original category no longer exists stays in
the archive.

Examples:
  linkshelf-cli restore 3f2a9c1e`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRestore(commands.NewRestoreCommand, args[0])
	},
}

var restoreRatingCmd = &cobra.Command{
	Use:   "restore-rating <id>",
	Short: "Restore an archived rating value",
	Long: `Restore an archived rating value onto the node it was taken from.

If the node currently has a value for that rating, the current value
is archived in its place, so restoring twice swaps the values back.

Examples:
  linkshelf-cli restore-rating 9b41d07a`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRestore(commands.NewRestoreRatingCommand, args[0])
	},
}

func runRestore(newCommand func(commands.Archiver, string) *commands.RestoreCommand, id string) error {
	ctx := context.Background()
	var degraded bool
	err := mutate(func(a *app.App) (string, error) {
		result, err := newCommand(a.Archive(), id).Execute(ctx)
		if err != nil {
			return "", err
		}
		degraded = result.Degraded
		return result.Message, nil
	})
	if err == nil && degraded {
		fmt.Println(styles.WarningMsg.Render("Original location was missing; the category was restored at the top level."))
	}
	return err
}

func init() {
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(restoreRatingCmd)
}
