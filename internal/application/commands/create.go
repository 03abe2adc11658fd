package commands

import (
	"context"
	"fmt"
	"strings"

	"linkshelf/internal/application"
	"linkshelf/internal/application/paths"
	"linkshelf/internal/domain"
	"linkshelf/internal/ports"
)

// CreateResult contains the result of adding a node to the tree
type CreateResult struct {
	Node    *domain.Node
	Path    string
	Message string
}

// AddCategoryCommand adds a category under ParentPath (top level when empty)
type AddCategoryCommand struct {
	tree        ports.TreeStore
	resolver    *paths.Resolver
	ParentPath  string
	Name        string
	Description string
}

// NewAddCategoryCommand creates a new AddCategoryCommand
func NewAddCategoryCommand(tree ports.TreeStore, resolver *paths.Resolver, parentPath, name, description string) *AddCategoryCommand {
	return &AddCategoryCommand{
		tree:        tree,
		resolver:    resolver,
		ParentPath:  parentPath,
		Name:        name,
		Description: description,
	}
}

// Validate checks if the category can be created
func (c *AddCategoryCommand) Validate() error {
	return validateNodeName(c.Name)
}

// Execute runs the add category command
func (c *AddCategoryCommand) Execute(ctx context.Context) (*CreateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	parent := c.tree.Root()
	if c.ParentPath != "" {
		resolved, err := resolveCategory(c.resolver, c.ParentPath)
		if err != nil {
			return nil, err
		}
		parent = resolved
	}

	node := domain.NewCategory(c.Name, c.Description)
	if err := c.tree.AddNode(parent, node); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	path := c.resolver.ComputePath(node)
	return &CreateResult{
		Node:    node,
		Path:    path,
		Message: fmt.Sprintf("Created category %s", path),
	}, nil
}

// AddLinkCommand adds a link to the category at ParentPath
type AddLinkCommand struct {
	tree       ports.TreeStore
	resolver   *paths.Resolver
	ParentPath string
	Title      string
	URL        string
}

// NewAddLinkCommand creates a new AddLinkCommand
func NewAddLinkCommand(tree ports.TreeStore, resolver *paths.Resolver, parentPath, title, url string) *AddLinkCommand {
	return &AddLinkCommand{
		tree:       tree,
		resolver:   resolver,
		ParentPath: parentPath,
		Title:      title,
		URL:        url,
	}
}

// Validate checks if the link can be created
func (c *AddLinkCommand) Validate() error {
	if err := application.ValidateRequired("path", c.ParentPath); err != nil {
		return err
	}
	if err := validateNodeName(c.Title); err != nil {
		return err
	}
	return application.ValidateRequired("url", c.URL)
}

// Execute runs the add link command
func (c *AddLinkCommand) Execute(ctx context.Context) (*CreateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	parent, err := resolveCategory(c.resolver, c.ParentPath)
	if err != nil {
		return nil, err
	}

	node := domain.NewLink(c.Title, c.URL)
	if err := c.tree.AddNode(parent, node); err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	path := c.resolver.ComputePath(node)
	return &CreateResult{
		Node:    node,
		Path:    path,
		Message: fmt.Sprintf("Created link %s", path),
	}, nil
}

// validateNodeName rejects names that would corrupt full paths or rating archive names
func validateNodeName(name string) error {
	if err := application.ValidateRequired("name", name); err != nil {
		return err
	}
	if strings.Contains(name, strings.TrimSpace(paths.Separator)) {
		return &application.ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("name may not contain %q", strings.TrimSpace(paths.Separator)),
		}
	}
	return application.ValidateNoReservedToken("name", name)
}

func resolveCategory(resolver *paths.Resolver, path string) (*domain.Node, error) {
	node, err := resolver.ResolveFullPath(path)
	if err != nil {
		return nil, err
	}
	if !node.IsCategory() {
		return nil, &application.ValidationError{
			Field:   "path",
			Message: fmt.Sprintf("%s is a link, not a category", path),
		}
	}
	return node, nil
}
