package sqlite

import (
	"database/sql"
	"encoding/json"
	"time"

	"linkshelf/internal/domain"
)

// treeTx wraps the transaction used to rewrite the node table
type treeTx struct {
	tx *sql.Tx
}

// clear removes every stored node
func (t *treeTx) clear() error {
	_, err := t.tx.Exec(`DELETE FROM nodes`)
	return err
}

// insert writes a node under parentID at position
func (t *treeTx) insert(n *domain.Node, parentID string, position int) error {
	ratings := n.Ratings
	if ratings == nil {
		ratings = []domain.RatingValue{}
	}
	encoded, err := json.Marshal(ratings)
	if err != nil {
		return err
	}

	_, err = t.tx.Exec(`
		INSERT INTO nodes (id, parent_id, position, kind, name, description, icon, url, created, modified, ratings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, n.ID, parentID, position, formatKind(n.Kind), n.Name, n.Description, n.Icon, n.URL,
		n.CreatedDate.Format(time.RFC3339Nano), n.ModifiedDate.Format(time.RFC3339Nano), string(encoded))
	return err
}

// commit commits the transaction
func (t *treeTx) commit() error {
	return t.tx.Commit()
}

// rollback aborts the transaction
func (t *treeTx) rollback() {
	_ = t.tx.Rollback()
}
