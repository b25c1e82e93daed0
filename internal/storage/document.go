package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"splitbook/internal/domain"
)

// DocumentStore implements domain.DocumentStore and domain.PageStore using
// SQLite. Page trees are stored as JSON.
type DocumentStore struct {
	db *DB
}

func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

func (s *DocumentStore) CreateDocument(d *domain.Document) error {
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now
	if d.NextNodeID < 1 {
		d.NextNodeID = 1
	}
	_, err := s.db.conn.Exec(
		`INSERT INTO documents (id, name, next_node_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.Name, int64(d.NextNodeID), d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

func (s *DocumentStore) GetDocument(id string) (*domain.Document, error) {
	d := &domain.Document{}
	var next int64
	err := s.db.conn.QueryRow(
		`SELECT id, name, next_node_id, created_at, updated_at FROM documents WHERE id = ?`, id,
	).Scan(&d.ID, &d.Name, &next, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, notFound(err))
	}
	d.NextNodeID = uint64(next)
	return d, nil
}

func (s *DocumentStore) ListDocuments() ([]domain.Document, error) {
	rows, err := s.db.conn.Query(`SELECT id, name, next_node_id, created_at, updated_at FROM documents ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var d domain.Document
		var next int64
		if err := rows.Scan(&d.ID, &d.Name, &next, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		d.NextNodeID = uint64(next)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (s *DocumentStore) UpdateDocument(d *domain.Document) error {
	d.UpdatedAt = time.Now()
	res, err := s.db.conn.Exec(
		`UPDATE documents SET name = ?, next_node_id = ?, updated_at = ? WHERE id = ?`,
		d.Name, int64(d.NextNodeID), d.UpdatedAt, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return checkAffected(res)
}

// DeleteDocument removes the document with its pages and their undo history.
func (s *DocumentStore) DeleteDocument(id string) error {
	tx, err := s.db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`DELETE FROM undo_state WHERE page_id IN (SELECT id FROM pages WHERE document_id = ?)`,
		`DELETE FROM undo_nodes WHERE page_id IN (SELECT id FROM pages WHERE document_id = ?)`,
		`DELETE FROM pages WHERE document_id = ?`,
		`DELETE FROM documents WHERE id = ?`,
	}
	for _, q := range stmts {
		if _, err := tx.Exec(q, id); err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
	}
	return tx.Commit()
}

func (s *DocumentStore) CreatePage(p *domain.Page) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	tree, err := json.Marshal(p.Root)
	if err != nil {
		return fmt.Errorf("marshal tree: %w", err)
	}
	_, err = s.db.conn.Exec(
		`INSERT INTO pages (id, document_id, name, sort_order, width, height, tree_json, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.DocumentID, p.Name, p.Order, p.Width, p.Height, string(tree), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	return nil
}

const pageColumns = `id, document_id, name, sort_order, width, height, tree_json, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanPage(row scanner) (*domain.Page, error) {
	p := &domain.Page{}
	var tree string
	if err := row.Scan(&p.ID, &p.DocumentID, &p.Name, &p.Order, &p.Width, &p.Height, &tree, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tree), &p.Root); err != nil {
		return nil, fmt.Errorf("decode tree of page %s: %w", p.ID, err)
	}
	return p, nil
}

func (s *DocumentStore) GetPage(id string) (*domain.Page, error) {
	p, err := scanPage(s.db.conn.QueryRow(`SELECT `+pageColumns+` FROM pages WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get page %s: %w", id, notFound(err))
	}
	return p, nil
}

func (s *DocumentStore) ListPages(documentID string) ([]domain.Page, error) {
	rows, err := s.db.conn.Query(
		`SELECT `+pageColumns+` FROM pages WHERE document_id = ? ORDER BY sort_order ASC, created_at ASC`,
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var pages []domain.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *p)
	}
	return pages, rows.Err()
}

func (s *DocumentStore) UpdatePage(p *domain.Page) error {
	p.UpdatedAt = time.Now()
	tree, err := json.Marshal(p.Root)
	if err != nil {
		return fmt.Errorf("marshal tree: %w", err)
	}
	res, err := s.db.conn.Exec(
		`UPDATE pages SET name = ?, sort_order = ?, width = ?, height = ?, tree_json = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.Order, p.Width, p.Height, string(tree), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}
	return checkAffected(res)
}

// DeletePage removes the page and its undo history.
func (s *DocumentStore) DeletePage(id string) error {
	tx, err := s.db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM undo_state WHERE page_id = ?`,
		`DELETE FROM undo_nodes WHERE page_id = ?`,
		`DELETE FROM pages WHERE id = ?`,
	} {
		if _, err := tx.Exec(q, id); err != nil {
			return fmt.Errorf("delete page: %w", err)
		}
	}
	return tx.Commit()
}

var (
	_ domain.DocumentStore = (*DocumentStore)(nil)
	_ domain.PageStore     = (*DocumentStore)(nil)
)
