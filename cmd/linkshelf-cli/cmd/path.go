package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"linkshelf/internal/domain"
	"linkshelf/internal/styles"
)

var pathCopy bool

var pathCmd = &cobra.Command{
	Use:   "path <path>",
	Short: "Resolve a full path to a node",
	Long: `Resolve a full path and print the node's ID, kind and URL.

With --copy the link URL (or the category's full path) is copied to
the clipboard.

Examples:
  linkshelf-cli path "Work > Docs > Go spec"
  linkshelf-cli path "Work > Docs > Go spec" --copy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetApp()

		var (
			node *domain.Node
			full string
		)
		err := a.View(func() error {
			var err error
			node, err = a.Archive().Resolve(args[0])
			if err != nil {
				return err
			}
			full = a.Archive().PathOf(node)
			return nil
		})
		if err != nil {
			return err
		}

		fmt.Printf("%s  %s  %s\n", styles.NodeID.Render(node.ID), node.Kind, full)
		value := full
		if node.IsLink() {
			fmt.Println(styles.NodeURL.Render(node.URL))
			value = node.URL
		}

		if pathCopy {
			if err := clipboard.WriteAll(value); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			fmt.Println(styles.Success.Render("Copied " + value))
		}
		return nil
	},
}

func init() {
	pathCmd.Flags().BoolVarP(&pathCopy, "copy", "c", false, "copy the URL or path to the clipboard")
	rootCmd.AddCommand(pathCmd)
}
