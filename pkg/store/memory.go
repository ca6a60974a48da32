package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps documents in a map. Documents are deep-copied on the
// way in and out, so callers never share scene memory with the store.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
	now  func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*Document), now: time.Now}
}

// Put implements [Store].
func (s *MemoryStore) Put(_ context.Context, doc *Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.docs[doc.ID]; ok && doc.CreatedAt.IsZero() {
		doc.CreatedAt = old.CreatedAt
	}
	prepare(doc, s.now())
	s.docs[doc.ID] = clone(doc)
	return doc.ID, nil
}

// Get implements [Store].
func (s *MemoryStore) Get(_ context.Context, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(doc), nil
}

// Delete implements [Store].
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

// List implements [Store].
func (s *MemoryStore) List(_ context.Context, limit int) ([]Summary, error) {
	s.mu.RLock()
	out := make([]Summary, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, summarize(doc))
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b Summary) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close implements [Store].
func (s *MemoryStore) Close(context.Context) error { return nil }

func clone(doc *Document) *Document {
	c := *doc
	if doc.Scene != nil {
		c.Scene = doc.Scene.Clone()
	}
	return &c
}

var _ Store = (*MemoryStore)(nil)
