package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"linkshelf/internal/application/archive"
	"linkshelf/internal/application/commands"
	"linkshelf/internal/styles"
)

var listKind string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archive entries",
	Long: `List the entries in the archive with their IDs and original locations.

Examples:
  linkshelf-cli list
  linkshelf-cli list --kind rating`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		switch archive.EntryKind(listKind) {
		case "", archive.EntryCategory, archive.EntryLink, archive.EntryRating:
		default:
			return fmt.Errorf("invalid kind %q (expected category, link or rating)", listKind)
		}

		var result *commands.ListArchiveResult
		err := GetApp().View(func() error {
			var err error
			result, err = commands.NewListArchiveCommand(GetApp().Archive()).Execute(ctx)
			return err
		})
		if err != nil {
			return err
		}

		s := result.Summary
		fmt.Println(styles.Title.Render(s.Label))
		fmt.Println(styles.MutedText.Render(fmt.Sprintf("%d categories, %d links, %d ratings", s.Categories, s.Links, s.Ratings)))

		for _, e := range result.Entries {
			if listKind != "" && string(e.Kind) != listKind {
				continue
			}
			printEntry(e)
		}
		return nil
	},
}

func printEntry(e archive.Entry) {
	origin := e.OriginalPath
	if origin == "" {
		origin = "(top level)"
	}
	archived := ""
	if e.ArchivedDate != nil {
		archived = e.ArchivedDate.Local().Format("2006-01-02 15:04")
	}

	fmt.Printf("%s  %s  %s  %s %s  %s\n",
		styles.NodeID.Render(commands.ShortID(e.Node.ID)),
		styles.EntryKind(string(e.Kind)).Render(fmt.Sprintf("%-8s", e.Kind)),
		e.Node.Name,
		styles.TreeBranch.Render("<-"),
		origin,
		styles.MutedText.Render(archived),
	)
}

func init() {
	listCmd.Flags().StringVarP(&listKind, "kind", "k", "", "only list entries of this kind (category, link, rating)")
	rootCmd.AddCommand(listCmd)
}
