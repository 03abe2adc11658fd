package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"linkshelf/internal/application/commands"
)

// RegisterWriteTools adds all mutating tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, ws Workspace) {
	s.AddTool(addCategoryTool(), addCategoryHandler(ws))
	s.AddTool(addLinkTool(), addLinkHandler(ws))
	s.AddTool(archiveTool(), archiveHandler(ws))
	s.AddTool(restoreTool(), restoreHandler(ws))
	s.AddTool(restoreRatingTool(), restoreRatingHandler(ws))
	s.AddTool(deleteTool(), deleteHandler(ws))
	s.AddTool(rateTool(), rateHandler(ws))
}

// mutate runs fn through the workspace and turns the command message into a tool result
func mutate(ws Workspace, fn func() (string, error)) (*mcp.CallToolResult, error) {
	var message string
	err := ws.Mutate(func() error {
		var err error
		message, err = fn()
		return err
	})
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(message), nil
}

// --- add_category ---

func addCategoryTool() mcp.Tool {
	return mcp.NewTool("add_category",
		mcp.WithDescription("Create a category. Without a parent path it is created at the top level."),
		mcp.WithString("parent_path",
			mcp.Description("Full path of the parent category. Omit for the top level."),
		),
		mcp.WithString("name",
			mcp.Description("Category name"),
			mcp.Required(),
		),
		mcp.WithString("description",
			mcp.Description("Optional description"),
		),
	)
}

func addCategoryHandler(ws Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		parentPath := req.GetString("parent_path", "")
		name := req.GetString("name", "")
		description := req.GetString("description", "")

		return mutate(ws, func() (string, error) {
			cmd := commands.NewAddCategoryCommand(ws.Tree(), ws.Paths(), parentPath, name, description)
			result, err := cmd.Execute(ctx)
			if err != nil {
				return "", err
			}
			return result.Message, nil
		})
	}
}

// --- add_link ---

func addLinkTool() mcp.Tool {
	return mcp.NewTool("add_link",
		mcp.WithDescription("Add a link to a category."),
		mcp.WithString("parent_path",
			mcp.Description("Full path of the category"),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("Link title"),
			mcp.Required(),
		),
		mcp.WithString("url",
			mcp.Description("Link URL"),
			mcp.Required(),
		),
	)
}

func addLinkHandler(ws Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		parentPath := req.GetString("parent_path", "")
		title := req.GetString("title", "")
		url := req.GetString("url", "")

		return mutate(ws, func() (string, error) {
			cmd := commands.NewAddLinkCommand(ws.Tree(), ws.Paths(), parentPath, title, url)
			result, err := cmd.Execute(ctx)
			if err != nil {
				return "", err
			}
			return result.Message, nil
		})
	}
}

// --- archive ---

func archiveTool() mcp.Tool {
	return mcp.NewTool("archive",
		mcp.WithDescription("Move a category or link into the archive, remembering where it came from."),
		mcp.WithString("path",
			mcp.Description("Full path of the category or link, e.g. Work > Projects > Alpha"),
			mcp.Required(),
		),
	)
}

func archiveHandler(ws Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")

		return mutate(ws, func() (string, error) {
			result, err := commands.NewArchiveCommand(ws.Archive(), path).Execute(ctx)
			if err != nil {
				return "", err
			}
			return result.Message, nil
		})
	}
}

// --- restore ---

func restoreTool() mcp.Tool {
	return mcp.NewTool("restore",
		mcp.WithDescription("Restore an archive entry to its original location. Categories whose parent is gone are restored at the top level."),
		mcp.WithString("id",
			mcp.Description("Archive entry ID or a unique prefix of it (see archive_list)"),
			mcp.Required(),
		),
	)
}

func restoreHandler(ws Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")

		return mutate(ws, func() (string, error) {
			result, err := commands.NewRestoreCommand(ws.Archive(), id).Execute(ctx)
			if err != nil {
				return "", err
			}
			return result.Message, nil
		})
	}
}

// --- restore_rating ---

func restoreRatingTool() mcp.Tool {
	return mcp.NewTool("restore_rating",
		mcp.WithDescription("Restore an archived rating value. If the rating is currently set, the current value is archived in its place."),
		mcp.WithString("id",
			mcp.Description("Rating archive entry ID or a unique prefix of it"),
			mcp.Required(),
		),
	)
}

func restoreRatingHandler(ws Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")

		return mutate(ws, func() (string, error) {
			result, err := commands.NewRestoreRatingCommand(ws.Archive(), id).Execute(ctx)
			if err != nil {
				return "", err
			}
			return result.Message, nil
		})
	}
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Permanently delete an archive entry and everything under it. This cannot be undone."),
		mcp.WithString("id",
			mcp.Description("Archive entry ID or a unique prefix of it"),
			mcp.Required(),
		),
		mcp.WithBoolean("confirm",
			mcp.Description("Must be true to delete"),
			mcp.Required(),
		),
	)
}

func deleteHandler(ws Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		confirm := req.GetBool("confirm", false)

		return mutate(ws, func() (string, error) {
			result, err := commands.NewDeleteCommand(ws.Archive(), id, confirm).Execute(ctx)
			if err != nil {
				return "", err
			}
			return result.Message, nil
		})
	}
}

// --- rate ---

func rateTool() mcp.Tool {
	return mcp.NewTool("rate",
		mcp.WithDescription("Set a named rating on a node. A previous value is archived so it can be restored later."),
		mcp.WithString("path",
			mcp.Description("Full path of the node"),
			mcp.Required(),
		),
		mcp.WithString("rating",
			mcp.Description("Rating name, e.g. Content.Quality"),
			mcp.Required(),
		),
		mcp.WithNumber("score",
			mcp.Description("Integer score"),
			mcp.Required(),
		),
		mcp.WithString("reason",
			mcp.Description("Optional reason for the score"),
		),
	)
}

func rateHandler(ws Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		rating := req.GetString("rating", "")
		score := req.GetInt("score", 0)
		reason := req.GetString("reason", "")

		return mutate(ws, func() (string, error) {
			result, err := commands.NewRateCommand(ws.Archive(), path, rating, score, reason).Execute(ctx)
			if err != nil {
				return "", err
			}
			return result.Message, nil
		})
	}
}
