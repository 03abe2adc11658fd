package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"linkshelf/internal/application/archive"
	"linkshelf/internal/application/commands"
	"linkshelf/internal/application/paths"
	"linkshelf/internal/domain"
)

// Workspace is what the tools operate on. View and Mutate serialize access
// to the tree; Mutate also writes the active tree back.
type Workspace interface {
	View(fn func() error) error
	Mutate(fn func() error) error
	Archive() *archive.Manager
	Tree() *domain.Tree
	Paths() *paths.Resolver
}

// RegisterReadTools adds all read-only tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, ws Workspace) {
	s.AddTool(treeTool(), treeHandler(ws))
	s.AddTool(archiveListTool(), archiveListHandler(ws))
	s.AddTool(archiveSummaryTool(), archiveSummaryHandler(ws))
	s.AddTool(resolvePathTool(), resolvePathHandler(ws))
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the link tree. The archive is shown as its label only unless include_archive is set."),
		mcp.WithBoolean("include_archive",
			mcp.Description("Also list the contents of the archive"),
		),
	)
}

func treeHandler(ws Workspace) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		includeArchive := req.GetBool("include_archive", false)

		var sb strings.Builder
		err := ws.View(func() error {
			tree := ws.Tree()
			for _, child := range tree.Children(tree.Root()) {
				renderTree(&sb, tree, child, "", includeArchive)
			}
			return nil
		})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func renderTree(sb *strings.Builder, tree *domain.Tree, node *domain.Node, prefix string, includeArchive bool) {
	switch {
	case node.IsArchiveRoot:
		fmt.Fprintf(sb, "%s%s\n", prefix, node.Name)
		if !includeArchive {
			return
		}
	case node.IsLink():
		fmt.Fprintf(sb, "%s%s  %s  %s\n", prefix, commands.ShortID(node.ID), node.Name, node.URL)
		return
	default:
		fmt.Fprintf(sb, "%s%s  %s/\n", prefix, commands.ShortID(node.ID), node.Name)
	}
	for _, child := range tree.Children(node) {
		renderTree(sb, tree, child, prefix+"  ", includeArchive)
	}
}

// --- archive_list ---

func archiveListTool() mcp.Tool {
	return mcp.NewTool("archive_list",
		mcp.WithDescription("List archive entries with their IDs, kinds and original locations."),
		mcp.WithString("kind",
			mcp.Description("Only list entries of this kind: category, link or rating"),
			mcp.Enum(string(archive.EntryCategory), string(archive.EntryLink), string(archive.EntryRating)),
		),
	)
}

func archiveListHandler(ws Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind := archive.EntryKind(req.GetString("kind", ""))

		var result *commands.ListArchiveResult
		err := ws.View(func() error {
			var err error
			result, err = commands.NewListArchiveCommand(ws.Archive()).Execute(ctx)
			return err
		})
		if err != nil {
			return toolError(err)
		}

		entries := result.Entries
		if kind != "" {
			filtered := entries[:0:0]
			for _, e := range entries {
				if e.Kind == kind {
					filtered = append(filtered, e)
				}
			}
			entries = filtered
		}
		return formatEntities(entries, formatEntry)
	}
}

// --- archive_summary ---

func archiveSummaryTool() mcp.Tool {
	return mcp.NewTool("archive_summary",
		mcp.WithDescription("Show the archive label and entry counts per kind."),
	)
}

func archiveSummaryHandler(ws Workspace) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var s archive.Summary
		_ = ws.View(func() error {
			s = ws.Archive().Summary()
			return nil
		})
		return mcp.NewToolResultText(fmt.Sprintf("%s\ncategories: %d\nlinks: %d\nratings: %d",
			s.Label, s.Categories, s.Links, s.Ratings)), nil
	}
}

// --- resolve_path ---

func resolvePathTool() mcp.Tool {
	return mcp.NewTool("resolve_path",
		mcp.WithDescription("Look up an active node by its full path (names joined with \" > \")."),
		mcp.WithString("path",
			mcp.Description("Full path, e.g. Work > Projects > Alpha"),
			mcp.Required(),
		),
	)
}

func resolvePathHandler(ws Workspace) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		var node *domain.Node
		err := ws.View(func() error {
			var err error
			node, err = ws.Archive().Resolve(path)
			return err
		})
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(fmt.Sprintf("%s  %s  %s", node.ID, node.Kind, path)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatEntry(e archive.Entry) string {
	origin := e.OriginalPath
	if origin == "" {
		origin = "(top level)"
	}
	archived := ""
	if e.ArchivedDate != nil {
		archived = e.ArchivedDate.Format("2006-01-02")
	}
	return fmt.Sprintf("%s  %-8s  %s  <- %s  %s", commands.ShortID(e.Node.ID), e.Kind, e.Node.Name, origin, archived)
}
