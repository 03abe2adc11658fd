package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"linkshelf/internal/adapters/browser"
	"linkshelf/internal/domain"
	"linkshelf/internal/ports"
	"linkshelf/internal/styles"
)

var opener ports.LinkOpener = browser.NewOpener()

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Open a link in the browser",
	Long: `Resolve the full path of a link and open its URL in the default browser.

Examples:
  linkshelf-cli open "Work > Docs > Go spec"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetApp()

		var node *domain.Node
		err := a.View(func() error {
			var err error
			node, err = a.Archive().Resolve(args[0])
			return err
		})
		if err != nil {
			return err
		}
		if !node.IsLink() {
			return fmt.Errorf("%s is a category, not a link", args[0])
		}

		if err := opener.Open(node.URL); err != nil {
			return fmt.Errorf("failed to open %s: %w", node.URL, err)
		}
		fmt.Println(styles.Success.Render("Opened " + node.URL))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
