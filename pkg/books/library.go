package books

import (
	"context"

	"github.com/matt-steen/reading-list/pkg/storage"
)

// Library is the application state: the book collection and the goal. Front ends share one
// Library and change it only through its methods.
type Library struct {
	Books *Collection
	Goal  *Goal
	store *storage.ValueStore
}

// NewLibrary loads the collection and goal from store.
func NewLibrary(ctx context.Context, store *storage.ValueStore) *Library {
	return &Library{
		Books: NewCollection(ctx, store, nil),
		Goal:  NewGoal(ctx, store),
		store: store,
	}
}

// Stats computes progress over the whole collection.
func (l *Library) Stats() Stats {
	return Compute(l.Books.Books(), l.Goal.Get())
}

// Close closes the underlying store.
func (l *Library) Close() error {
	return l.store.Close()
}
