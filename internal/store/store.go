//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks DocumentStore

// Package store defines the document storage collaborator used by the
// matching and lostfound services, plus an in-memory implementation for the
// demo environment. Records are schemaless documents keyed by an opaque
// string identifier, grouped into named collections.
package store

import "context"

// Collection names owned by the storage collaborator.
const (
	CollectionLostItems  = "lostItems"
	CollectionFoundItems = "foundItems"
	CollectionStudents   = "students"
)

// Document is a schemaless record. Field values are whatever the owning
// model serialized; equality filters compare with ==.
type Document map[string]any

// ID returns the document identifier injected by the store on reads.
func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// DocumentStore is the storage collaborator interface. Implementations must
// be safe for concurrent use.
type DocumentStore interface {
	// Insert creates a document under the given id.
	Insert(ctx context.Context, collection, id string, doc Document) error

	// QueryWhere returns all documents in the collection whose field equals
	// value, in stable insertion order.
	QueryWhere(ctx context.Context, collection, field string, value any) ([]Document, error)

	// GetAll returns every document in the collection in insertion order.
	GetAll(ctx context.Context, collection string) ([]Document, error)

	// Get returns a single document by id.
	Get(ctx context.Context, collection, id string) (Document, error)

	// UpdateFields merge-updates the named fields on one document.
	UpdateFields(ctx context.Context, collection, id string, fields Document) error
}
