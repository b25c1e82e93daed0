package service

import "errors"

var (
	ErrPageNotFound     = errors.New("page not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrNodeNotFound     = errors.New("node not found")
	ErrNotLeaf          = errors.New("node is not a leaf")
	ErrNotSplit         = errors.New("node is not a split")
	ErrNotMergeable     = errors.New("divider is not mergeable")
	ErrPageBusy         = errors.New("page has an open resize session")
	ErrSessionClosed    = errors.New("resize session already closed")
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrNothingToRedo    = errors.New("nothing to redo")
)
