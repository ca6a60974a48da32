package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/scenepatch/pkg/scene"
)

// ErrNotFound is returned when no document has the requested id.
var ErrNotFound = errors.New("store: document not found")

// Document is a stored scene.
type Document struct {
	ID        string       `json:"id" bson:"_id"`
	Name      string       `json:"name,omitempty" bson:"name,omitempty"`
	Scene     *scene.Scene `json:"scene" bson:"scene"`
	Hash      string       `json:"hash" bson:"hash"`
	CreatedAt time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time    `json:"updatedAt" bson:"updated_at"`
}

// Summary is the listing view of a document.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Nodes     int       `json:"nodes" bson:"nodes"`
	Edges     int       `json:"edges" bson:"edges"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Store persists documents.
type Store interface {
	// Put inserts or replaces doc. An empty ID is assigned a new UUID;
	// the id is returned and written back to doc.
	Put(ctx context.Context, doc *Document) (string, error)

	// Get returns the document with id, or [ErrNotFound].
	Get(ctx context.Context, id string) (*Document, error)

	// Delete removes a document. Deleting a missing id returns [ErrNotFound].
	Delete(ctx context.Context, id string) error

	// List returns summaries, most recently updated first.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// prepare assigns an id and timestamps before a write.
func prepare(doc *Document, now time.Time) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
}

func summarize(doc *Document) Summary {
	s := Summary{ID: doc.ID, Name: doc.Name, UpdatedAt: doc.UpdatedAt}
	if doc.Scene != nil {
		s.Nodes = len(doc.Scene.Nodes)
		s.Edges = len(doc.Scene.Edges)
	}
	return s
}
