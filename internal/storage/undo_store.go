package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultUndoLimit is the number of history entries kept per page.
const DefaultUndoLimit = 40

// UndoNode is one entry in a page's undo history: the tree as it was after
// the labelled gesture.
type UndoNode struct {
	ID           string    `json:"id"`
	PageID       string    `json:"pageId"`
	ParentID     *string   `json:"parentId"`
	Label        string    `json:"label"`
	SnapshotJSON string    `json:"snapshotJson"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UndoTree is the full history of one page.
type UndoTree struct {
	Nodes     []UndoNode `json:"nodes"`
	CurrentID string     `json:"currentId"`
	RootID    string     `json:"rootId"`
}

// UndoStore manages undo history in SQLite. History is a tree: undoing and
// then making a new change starts a branch instead of discarding the redo
// path.
type UndoStore struct {
	db    *DB
	limit int
}

// NewUndoStore keeps at most limit entries per page (DefaultUndoLimit when
// limit < 1).
func NewUndoStore(db *DB, limit int) *UndoStore {
	if limit < 1 {
		limit = DefaultUndoLimit
	}
	return &UndoStore{db: db, limit: limit}
}

const undoColumns = `id, page_id, parent_id, label, snapshot_json, created_at`

func scanUndoNode(row scanner) (*UndoNode, error) {
	n := &UndoNode{}
	if err := row.Scan(&n.ID, &n.PageID, &n.ParentID, &n.Label, &n.SnapshotJSON, &n.CreatedAt); err != nil {
		return nil, err
	}
	return n, nil
}

// LoadTree returns the history of a page, or nil when it has none.
func (s *UndoStore) LoadTree(pageID string) (*UndoTree, error) {
	rows, err := s.db.conn.Query(
		`SELECT `+undoColumns+` FROM undo_nodes WHERE page_id = ? ORDER BY created_at ASC, rowid ASC`, pageID,
	)
	if err != nil {
		return nil, fmt.Errorf("load undo nodes: %w", err)
	}
	defer rows.Close()

	var nodes []UndoNode
	var rootID string
	for rows.Next() {
		n, err := scanUndoNode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan undo node: %w", err)
		}
		if n.ParentID == nil && rootID == "" {
			rootID = n.ID
		}
		nodes = append(nodes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, nil
	}

	currentID, err := s.currentID(pageID)
	if err != nil {
		currentID = rootID
	}
	return &UndoTree{Nodes: nodes, CurrentID: currentID, RootID: rootID}, nil
}

func (s *UndoStore) currentID(pageID string) (string, error) {
	var id string
	err := s.db.conn.QueryRow(`SELECT current_node_id FROM undo_state WHERE page_id = ?`, pageID).Scan(&id)
	return id, notFound(err)
}

// Current returns the entry the page is at.
func (s *UndoStore) Current(pageID string) (*UndoNode, error) {
	id, err := s.currentID(pageID)
	if err != nil {
		return nil, fmt.Errorf("current undo node: %w", err)
	}
	return s.Get(id)
}

func (s *UndoStore) Get(id string) (*UndoNode, error) {
	n, err := scanUndoNode(s.db.conn.QueryRow(`SELECT `+undoColumns+` FROM undo_nodes WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get undo node %s: %w", id, notFound(err))
	}
	return n, nil
}

// LatestChild returns the most recent entry made on top of nodeID.
func (s *UndoStore) LatestChild(nodeID string) (*UndoNode, error) {
	n, err := scanUndoNode(s.db.conn.QueryRow(
		`SELECT `+undoColumns+` FROM undo_nodes WHERE parent_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, nodeID,
	))
	if err != nil {
		return nil, fmt.Errorf("latest child of %s: %w", nodeID, notFound(err))
	}
	return n, nil
}

// PushNode records a new entry under the page's current one and makes it
// current. The oldest entries beyond the limit are pruned.
func (s *UndoStore) PushNode(pageID, label, snapshotJSON string) (*UndoNode, error) {
	var parent *string
	if id, err := s.currentID(pageID); err == nil {
		parent = &id
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	node := &UndoNode{
		ID:           uuid.New().String(),
		PageID:       pageID,
		ParentID:     parent,
		Label:        label,
		SnapshotJSON: snapshotJSON,
		CreatedAt:    time.Now(),
	}
	_, err := s.db.conn.Exec(
		`INSERT INTO undo_nodes (`+undoColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		node.ID, node.PageID, node.ParentID, node.Label, node.SnapshotJSON, node.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert undo node: %w", err)
	}
	if err := s.GoTo(pageID, node.ID); err != nil {
		return nil, err
	}
	if err := s.pruneIfNeeded(pageID); err != nil {
		return nil, err
	}
	return node, nil
}

// GoTo moves the page's current pointer.
func (s *UndoStore) GoTo(pageID, nodeID string) error {
	_, err := s.db.conn.Exec(
		`INSERT INTO undo_state (page_id, current_node_id) VALUES (?, ?)
		 ON CONFLICT(page_id) DO UPDATE SET current_node_id = excluded.current_node_id`,
		pageID, nodeID,
	)
	if err != nil {
		return fmt.Errorf("update undo state: %w", err)
	}
	return nil
}

// ClearPage removes all history of a page.
func (s *UndoStore) ClearPage(pageID string) error {
	if _, err := s.db.conn.Exec(`DELETE FROM undo_state WHERE page_id = ?`, pageID); err != nil {
		return err
	}
	_, err := s.db.conn.Exec(`DELETE FROM undo_nodes WHERE page_id = ?`, pageID)
	return err
}

func (s *UndoStore) pruneIfNeeded(pageID string) error {
	var count int
	if err := s.db.conn.QueryRow(`SELECT COUNT(*) FROM undo_nodes WHERE page_id = ?`, pageID).Scan(&count); err != nil {
		return fmt.Errorf("count undo nodes: %w", err)
	}
	if count <= s.limit {
		return nil
	}
	currentID, _ := s.currentID(pageID)

	// Collect ids before writing; the single connection cannot interleave.
	rows, err := s.db.conn.Query(
		`SELECT id FROM undo_nodes WHERE page_id = ? ORDER BY created_at ASC, rowid ASC LIMIT ?`,
		pageID, count-s.limit,
	)
	if err != nil {
		return fmt.Errorf("select undo nodes to prune: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		if id != currentID {
			ids = append(ids, id)
		}
	}
	rows.Close()

	for _, id := range ids {
		if err := s.removeNode(id); err != nil {
			return err
		}
	}
	return nil
}

// PruneOlderThan drops entries created before cutoff on every page, keeping
// each page's current entry. It returns the number of entries removed.
func (s *UndoStore) PruneOlderThan(cutoff time.Time) (int, error) {
	rows, err := s.db.conn.Query(
		`SELECT n.id, n.created_at, COALESCE(st.current_node_id, '')
		 FROM undo_nodes n LEFT JOIN undo_state st ON st.page_id = n.page_id
		 ORDER BY n.created_at ASC, n.rowid ASC`,
	)
	if err != nil {
		return 0, fmt.Errorf("select undo nodes: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id, current string
		var created time.Time
		if err := rows.Scan(&id, &created, &current); err != nil {
			rows.Close()
			return 0, err
		}
		if id != current && created.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return 0, err
	}

	for _, id := range ids {
		if err := s.removeNode(id); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}

// removeNode deletes one entry and re-attaches its children to its parent.
func (s *UndoStore) removeNode(id string) error {
	var parentID sql.NullString
	if err := s.db.conn.QueryRow(`SELECT parent_id FROM undo_nodes WHERE id = ?`, id).Scan(&parentID); err != nil {
		return fmt.Errorf("prune undo node %s: %w", id, notFound(err))
	}
	if _, err := s.db.conn.Exec(`UPDATE undo_nodes SET parent_id = ? WHERE parent_id = ?`, parentID, id); err != nil {
		return fmt.Errorf("reparent undo nodes: %w", err)
	}
	if _, err := s.db.conn.Exec(`DELETE FROM undo_nodes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete undo node: %w", err)
	}
	return nil
}
