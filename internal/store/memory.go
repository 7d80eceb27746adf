package store

import (
	"context"
	"fmt"
	"sync"

	"reclaim/internal/sentinel"
)

// ErrNotFound is returned when a document or collection is not found.
var ErrNotFound = sentinel.ErrNotFound

// InMemory stores documents in memory for the demo environment. Documents
// are kept in insertion order per collection so query results are stable
// across repeated reads.
type InMemory struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

type collection struct {
	docs  map[string]Document
	order []string
}

// NewInMemory creates an in-memory document store.
func NewInMemory() *InMemory {
	return &InMemory{collections: make(map[string]*collection)}
}

// Insert creates a document under the given id.
func (s *InMemory) Insert(_ context.Context, coll, id string, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[coll]
	if !ok {
		c = &collection{docs: make(map[string]Document)}
		s.collections[coll] = c
	}
	if _, exists := c.docs[id]; exists {
		return fmt.Errorf("document %s/%s: %w", coll, id, sentinel.ErrInvalidState)
	}
	c.docs[id] = cloneDoc(doc)
	c.order = append(c.order, id)
	return nil
}

// QueryWhere returns all documents whose field equals value, in insertion order.
func (s *InMemory) QueryWhere(_ context.Context, coll, field string, value any) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[coll]
	if !ok {
		return nil, nil
	}
	var out []Document
	for _, id := range c.order {
		doc := c.docs[id]
		if doc[field] == value {
			out = append(out, withID(doc, id))
		}
	}
	return out, nil
}

// GetAll returns every document in the collection in insertion order.
func (s *InMemory) GetAll(_ context.Context, coll string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[coll]
	if !ok {
		return nil, nil
	}
	out := make([]Document, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, withID(c.docs[id], id))
	}
	return out, nil
}

// Get returns a single document by id.
func (s *InMemory) Get(_ context.Context, coll, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[coll]
	if !ok {
		return nil, ErrNotFound
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return withID(doc, id), nil
}

// UpdateFields merge-updates the named fields on one document.
func (s *InMemory) UpdateFields(_ context.Context, coll, id string, fields Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[coll]
	if !ok {
		return ErrNotFound
	}
	doc, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

// withID copies the document and stamps the id so callers cannot mutate the
// stored map through a read result.
func withID(doc Document, id string) Document {
	out := cloneDoc(doc)
	out["id"] = id
	return out
}

func cloneDoc(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

var _ DocumentStore = (*InMemory)(nil)
