package books

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/matt-steen/reading-list/pkg/storage"
	"github.com/rs/zerolog/log"
)

// KeyBooks is the storage key of the book collection.
const KeyBooks = "reading-list"

// Collection is the ordered list of books. Every mutation replaces the whole stored list.
//
// Errors returned by the mutating methods come from persistence only: the change has been
// applied in memory either way and will be written by the next successful save.
type Collection struct {
	books *storage.Value[[]Book]
	now   func() time.Time
}

// NewCollection loads the collection from store. now supplies the id and the finish date
// stamp; nil means time.Now.
func NewCollection(ctx context.Context, store *storage.ValueStore, now func() time.Time) *Collection {
	if now == nil {
		now = time.Now
	}

	return &Collection{
		books: storage.NewValue(ctx, store, KeyBooks, []Book{}),
		now:   now,
	}
}

// Books returns a copy of the books in display order.
func (c *Collection) Books() []Book {
	return append([]Book{}, c.books.Get()...)
}

// Len returns the number of books.
func (c *Collection) Len() int {
	return len(c.books.Get())
}

// Get returns the book with the given id.
func (c *Collection) Get(id int64) (Book, bool) {
	for _, book := range c.books.Get() {
		if book.ID == id {
			return book, true
		}
	}

	return Book{}, false
}

// Add appends a new book built from draft. The draft is not validated here; that's the
// caller's job.
func (c *Collection) Add(ctx context.Context, draft Draft) (Book, error) {
	current := c.books.Get()

	book := Book{
		ID:           c.nextID(current),
		Name:         draft.Name,
		Author:       draft.Author,
		Status:       draft.Status,
		Rating:       draft.Rating,
		DateStarted:  draft.DateStarted,
		DateFinished: draft.DateFinished,
		Notes:        draft.Notes,
	}

	updated := make([]Book, 0, len(current)+1)
	updated = append(updated, current...)
	updated = append(updated, book)

	log.Debug().Int64("id", book.ID).Msgf("adding book '%s'", book.Name)

	return book, c.books.Set(ctx, updated)
}

// nextID uses the creation time in milliseconds, moved past the largest existing id so two
// adds in the same millisecond still get distinct ids.
func (c *Collection) nextID(current []Book) int64 {
	id := c.now().UnixMilli()

	for _, book := range current {
		if book.ID >= id {
			id = book.ID + 1
		}
	}

	return id
}

// Update sets one field of the book with the given id. Unknown ids and fields are ignored.
// Setting the status to completed also stamps today's date as the finish date when none is
// set, in the same write.
func (c *Collection) Update(ctx context.Context, id int64, field, value string) error {
	current := c.books.Get()

	idx := -1

	for i, book := range current {
		if book.ID == id {
			idx = i

			break
		}
	}

	if idx < 0 {
		log.Debug().Int64("id", id).Msg("ignoring update of unknown book")

		return nil
	}

	book := current[idx]

	switch field {
	case FieldName:
		book.Name = value
	case FieldAuthor:
		book.Author = value
	case FieldStatus:
		book.Status = value
		if value == StatusCompleted && book.DateFinished == "" {
			book.DateFinished = c.now().Format(DateLayout)
		}
	case FieldRating:
		book.Rating = ParseRating(value)
	case FieldDateStarted:
		book.DateStarted = value
	case FieldDateFinished:
		book.DateFinished = value
	case FieldNotes:
		book.Notes = value
	default:
		log.Debug().Str("field", field).Msg("ignoring update of unknown field")

		return nil
	}

	updated := append([]Book{}, current...)
	updated[idx] = book

	return c.books.Set(ctx, updated)
}

// Remove deletes the book with the given id. Unknown ids are ignored.
func (c *Collection) Remove(ctx context.Context, id int64) error {
	current := c.books.Get()
	updated := make([]Book, 0, len(current))

	for _, book := range current {
		if book.ID != id {
			updated = append(updated, book)
		}
	}

	if len(updated) == len(current) {
		return nil
	}

	log.Debug().Int64("id", id).Msg("removing book")

	return c.books.Set(ctx, updated)
}

// ParseRating reads the leading integer of value the way a form number input is read:
// "4" and "4 stars" are 4, anything without leading digits is 0. The result is clamped to
// 0..MaxRating.
func ParseRating(value string) int {
	value = strings.TrimSpace(value)

	end := 0
	if end < len(value) && (value[end] == '-' || value[end] == '+') {
		end++
	}

	digits := end
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}

	if end == digits {
		return 0
	}

	rating, err := strconv.Atoi(value[:end])
	if err != nil {
		// only overflow gets here
		if value[0] == '-' {
			return 0
		}

		return MaxRating
	}

	return clamp(rating, 0, MaxRating)
}

func clamp(n, low, high int) int {
	if n < low {
		return low
	}

	if n > high {
		return high
	}

	return n
}
