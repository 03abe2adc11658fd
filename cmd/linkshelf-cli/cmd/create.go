package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"linkshelf/internal/app"
	"linkshelf/internal/application/commands"
)

var (
	categoryParent      string
	categoryDescription string
)

var addCategoryCmd = &cobra.Command{
	Use:   "add-category <name>",
	Short: "Create a category",
	Long: `Create a new category, at the top level or under --parent.

Examples:
  linkshelf-cli add-category Work
  linkshelf-cli add-category Projects --parent Work
  linkshelf-cli add-category Alpha --parent "Work > Projects" -m "first client"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return mutate(func(a *app.App) (string, error) {
			createCmd := commands.NewAddCategoryCommand(a.Tree(), a.Paths(), categoryParent, args[0], categoryDescription)
			result, err := createCmd.Execute(ctx)
			if err != nil {
				return "", err
			}
			return result.Message, nil
		})
	},
}

var addLinkCmd = &cobra.Command{
	Use:   "add-link <category-path> <title> <url>",
	Short: "Add a link to a category",
	Long: `Add a link to the category at the given full path.

Examples:
  linkshelf-cli add-link "Work > Docs" "Go spec" https://go.dev/ref/spec`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return mutate(func(a *app.App) (string, error) {
			createCmd := commands.NewAddLinkCommand(a.Tree(), a.Paths(), args[0], args[1], args[2])
			result, err := createCmd.Execute(ctx)
			if err != nil {
				return "", err
			}
			return result.Message, nil
		})
	},
}

func init() {
	addCategoryCmd.Flags().StringVarP(&categoryParent, "parent", "p", "", "full path of the parent category")
	addCategoryCmd.Flags().StringVarP(&categoryDescription, "description", "m", "", "category description")

	rootCmd.AddCommand(addCategoryCmd)
	rootCmd.AddCommand(addLinkCmd)
}
