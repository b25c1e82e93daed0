package domain

import "time"

// Document groups pages. Node ids are unique across all of its pages, so the
// allocation counter lives here.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	NextNodeID uint64    `json:"nextNodeId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Page owns the root of one layout tree. Width and Height are the page's
// extent in layout units, used to infer split orientation and to convert
// pointer deltas.
type Page struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	Name       string    `json:"name"`
	Order      int       `json:"order"`
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	Root       *Node     `json:"root"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type DocumentStore interface {
	CreateDocument(d *Document) error
	GetDocument(id string) (*Document, error)
	ListDocuments() ([]Document, error)
	UpdateDocument(d *Document) error
	DeleteDocument(id string) error
}

type PageStore interface {
	CreatePage(p *Page) error
	GetPage(id string) (*Page, error)
	ListPages(documentID string) ([]Page, error)
	UpdatePage(p *Page) error
	DeletePage(id string) error
}
