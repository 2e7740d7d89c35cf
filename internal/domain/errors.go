package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrDocumentNotFound signals a missing indexed document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrSavedSearchNotFound signals a missing saved search.
	ErrSavedSearchNotFound = errors.New("saved search not found")
	// ErrNotOwner signals a mutation attempted by a non-owner.
	ErrNotOwner = errors.New("not the owner")
	// ErrInvalidQuery signals a malformed search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidDocument signals a document that cannot be indexed.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrMissingOutline signals source content without a content outline.
	ErrMissingOutline = errors.New("source content has no outline")
)
