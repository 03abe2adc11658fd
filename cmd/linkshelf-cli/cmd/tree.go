package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"linkshelf/internal/application/commands"
	"linkshelf/internal/domain"
	"linkshelf/internal/styles"
)

var (
	treeArchive bool
	treeIDs     bool
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the link tree",
	Long: `Display the tree of categories and links.

The archive is shown collapsed as "Archived (n)" unless --archive is given.

Example:
  linkshelf-cli tree
  linkshelf-cli tree --archive --ids`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetApp()
		return a.View(func() error {
			tree := a.Tree()
			for _, child := range tree.Children(tree.Root()) {
				printTree(tree, child, 0)
			}
			return nil
		})
	},
}

func printTree(tree *domain.Tree, node *domain.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	id := ""
	if treeIDs {
		id = styles.NodeID.Render(commands.ShortID(node.ID)) + " "
	}

	switch {
	case node.IsArchiveRoot:
		fmt.Printf("%s%s\n", indent, styles.NodeArchive.Render(node.Name))
		if !treeArchive {
			return
		}
	case node.IsArchived():
		fmt.Printf("%s%s%s %s\n", indent, id, styles.NodeArchive.Render(node.Name),
			styles.MutedText.Render("<- "+originLabel(node.OriginalPath)))
	case node.IsLink():
		fmt.Printf("%s%s%s %s%s\n", indent, id, styles.NodeLink.Render(node.Name),
			styles.NodeURL.Render(node.URL), formatRatings(node))
		return
	default:
		fmt.Printf("%s%s%s%s\n", indent, id, styles.NodeCategory.Render(node.Name), formatRatings(node))
	}

	for _, child := range tree.Children(node) {
		printTree(tree, child, depth+1)
	}
}

func formatRatings(node *domain.Node) string {
	if len(node.Ratings) == 0 {
		return ""
	}
	parts := make([]string, 0, len(node.Ratings))
	for _, r := range node.Ratings {
		parts = append(parts, fmt.Sprintf("%s=%d", r.RatingName, r.Score))
	}
	return " " + styles.Rating.Render("["+strings.Join(parts, ", ")+"]")
}

func originLabel(path string) string {
	if path == "" {
		return "(top level)"
	}
	return path
}

func init() {
	treeCmd.Flags().BoolVarP(&treeArchive, "archive", "a", false, "expand the archive")
	treeCmd.Flags().BoolVar(&treeIDs, "ids", false, "show node IDs")
	rootCmd.AddCommand(treeCmd)
}
