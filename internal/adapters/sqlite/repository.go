package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"linkshelf/internal/domain"
	"linkshelf/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Repository implements ports.TreeRepository using SQLite. Only the active
// tree is stored; the archive subtree lives in the archive document.
type Repository struct {
	db     *sql.DB
	dbPath string
}

// Ensure Repository implements TreeRepository
var _ ports.TreeRepository = (*Repository)(nil)

// NewRepository creates a new SQLite tree repository
func NewRepository() *Repository {
	return &Repository{}
}

// Open initializes the database at path
func (r *Repository) Open(path string) error {
	r.dbPath = path

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	r.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			parent_id TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			created TEXT NOT NULL,
			modified TEXT NOT NULL,
			ratings TEXT NOT NULL DEFAULT '[]'
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent_id, position);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

type nodeRow struct {
	node     *domain.Node
	parentID string
	position int
}

// LoadTree rebuilds the active tree. The archive root starts empty.
func (r *Repository) LoadTree() (*domain.Tree, error) {
	rows, err := r.db.Query(`
		SELECT id, parent_id, position, kind, name, description, icon, url, created, modified, ratings
		FROM nodes
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()

	byParent := map[string][]nodeRow{}
	for rows.Next() {
		var (
			row               nodeRow
			n                 domain.Node
			kind              string
			created, modified string
			ratings           string
		)
		if err := rows.Scan(&n.ID, &row.parentID, &row.position, &kind, &n.Name, &n.Description,
			&n.Icon, &n.URL, &created, &modified, &ratings); err != nil {
			return nil, err
		}

		n.Kind = parseKind(kind)
		n.CreatedDate, _ = time.Parse(time.RFC3339Nano, created)
		n.ModifiedDate, _ = time.Parse(time.RFC3339Nano, modified)
		if err := json.Unmarshal([]byte(ratings), &n.Ratings); err != nil {
			return nil, fmt.Errorf("failed to decode ratings of %s: %w", n.ID, err)
		}

		row.node = &n
		byParent[row.parentID] = append(byParent[row.parentID], row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tree := domain.NewTree()
	if err := attachRows(tree, tree.Root(), "", byParent); err != nil {
		return nil, err
	}
	return tree, nil
}

func attachRows(tree *domain.Tree, parent *domain.Node, parentID string, byParent map[string][]nodeRow) error {
	children := byParent[parentID]
	sort.Slice(children, func(i, j int) bool {
		return children[i].position < children[j].position
	})

	for _, row := range children {
		if err := tree.AddNode(parent, row.node); err != nil {
			return fmt.Errorf("failed to attach %s: %w", row.node.ID, err)
		}
		if err := attachRows(tree, row.node, row.node.ID, byParent); err != nil {
			return err
		}
	}
	return nil
}

// SaveTree replaces the stored tree with the active part of tree
func (r *Repository) SaveTree(tree *domain.Tree) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	t := &treeTx{tx: tx}

	if err := t.clear(); err != nil {
		t.rollback()
		return fmt.Errorf("failed to clear nodes: %w", err)
	}

	root := tree.Root()
	if err := saveChildren(t, tree, root, ""); err != nil {
		t.rollback()
		return err
	}

	return t.commit()
}

func saveChildren(t *treeTx, tree *domain.Tree, parent *domain.Node, parentID string) error {
	for pos, n := range tree.Children(parent) {
		if n.IsArchiveRoot {
			continue
		}
		if err := t.insert(n, parentID, pos); err != nil {
			return fmt.Errorf("failed to save %q: %w", n.Name, err)
		}
		if err := saveChildren(t, tree, n, n.ID); err != nil {
			return err
		}
	}
	return nil
}

func parseKind(s string) domain.NodeKind {
	switch s {
	case "category":
		return domain.KindCategory
	case "link":
		return domain.KindLink
	default:
		return domain.KindUnknown
	}
}

func formatKind(k domain.NodeKind) string {
	switch k {
	case domain.KindCategory:
		return "category"
	case domain.KindLink:
		return "link"
	default:
		return "unknown"
	}
}
