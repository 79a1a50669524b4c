package books_test

import (
	"context"
	"errors"
	"testing"

	"github.com/matt-steen/reading-list/pkg/books"
	"github.com/matt-steen/reading-list/pkg/storage"
	"github.com/stretchr/testify/assert"
)

func shelf() []books.Book {
	return []books.Book{
		{ID: 1, Name: "Dune", Author: "Frank Herbert", Status: books.StatusToRead},
		{ID: 2, Name: "Emma", Author: "Jane Austen", Status: books.StatusCompleted},
		{ID: 3, Name: "Children of Dune", Author: "Frank Herbert", Status: books.StatusReading},
		{ID: 4, Name: "Persuasion", Author: "Jane Austen", Status: books.StatusCompleted},
		{ID: 5, Name: "Ulysses", Author: "James Joyce", Status: books.StatusDNF},
	}
}

func ids(list []books.Book) []int64 {
	out := []int64{}
	for _, book := range list {
		out = append(out, book.ID)
	}

	return out
}

func TestFilterEverything(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal(shelf(), books.Filter(shelf(), "", books.StatusAll))
	assert.Empty(books.Filter(nil, "dune", books.StatusAll))
}

func TestFilterQuery(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	dune := []books.Book{{Name: "Dune", Author: "Herbert", Status: books.StatusToRead}}
	assert.Equal(dune, books.Filter(dune, "dune", books.StatusAll))

	assert.Equal([]int64{1, 3}, ids(books.Filter(shelf(), "DUNE", books.StatusAll)))
	assert.Equal([]int64{2, 4}, ids(books.Filter(shelf(), "austen", books.StatusAll)))
	assert.Equal([]int64{5}, ids(books.Filter(shelf(), "joyce", books.StatusAll)))
	assert.Empty(books.Filter(shelf(), "tolkien", books.StatusAll))
}

func TestFilterStatus(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	for _, book := range books.Filter(shelf(), "", books.StatusCompleted) {
		assert.Equal(books.StatusCompleted, book.Status)
	}

	assert.Equal([]int64{2, 4}, ids(books.Filter(shelf(), "", books.StatusCompleted)))
	assert.Equal([]int64{4}, ids(books.Filter(shelf(), "persu", books.StatusCompleted)))
	assert.Empty(books.Filter(shelf(), "dune", books.StatusDNF))
}

func TestView(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	view := books.NewView(shelf())
	assert.False(view.Filtered())
	assert.Equal(shelf(), view.Books())

	view.Apply(shelf(), "herbert", books.StatusReading)
	assert.True(view.Filtered())
	assert.Equal([]int64{3}, ids(view.Books()))

	// a collection change is picked up with the same criteria
	more := append(shelf(), books.Book{ID: 6, Name: "Dune Messiah", Author: "Frank Herbert", Status: books.StatusReading})
	view.Refresh(more)
	assert.Equal([]int64{3, 6}, ids(view.Books()))

	view.Reset(more)
	assert.False(view.Filtered())
	assert.Equal("", view.Query)
	assert.Equal(books.StatusAll, view.Status)
	assert.Equal(more, view.Books())
}

func TestCompute(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	stats := books.Compute(nil, 12)
	assert.Equal(0, stats.Completed)
	assert.Equal(0.0, stats.Percentage)
	assert.Equal(12, stats.Remaining)

	stats = books.Compute(shelf(), 8)
	assert.Equal(2, stats.Completed)
	assert.Equal(25.0, stats.Percentage)
	assert.Equal(6, stats.Remaining)

	done := make([]books.Book, 15)
	for i := range done {
		done[i].Status = books.StatusCompleted
	}

	stats = books.Compute(done, 12)
	assert.Equal(15, stats.Completed)
	assert.Equal(100.0, stats.Percentage)
	assert.Equal(-3, stats.Remaining)

	stats = books.Compute(done, 0)
	assert.Equal(0.0, stats.Percentage)
}

func TestStatsSummary(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal("2 of 8 completed (6 left)", books.Compute(shelf(), 8).Summary())
	assert.Equal("2 of 2 completed", books.Compute(shelf(), 2).Summary())
	assert.Equal("2 of 1 completed", books.Compute(shelf(), 1).Summary())
}

func TestGoal(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	store := storage.NewValueStore(storage.NewMemoryBackend())

	goal := books.NewGoal(ctx, store)
	assert.Equal(books.DefaultGoal, goal.Get())

	assert.Nil(goal.Set(ctx, 0))
	assert.Equal(1, goal.Get())

	assert.Nil(goal.Set(ctx, -5))
	assert.Equal(1, goal.Get())

	assert.Nil(goal.Set(ctx, 30))
	assert.Equal(30, books.NewGoal(ctx, store).Get())
}

func TestParseGoal(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	for text, want := range map[string]int{"12": 12, " 7 ": 7, "0": 1, "-5": 1, "abc": 1, "": 1, "2.9": 2, "NaN": 1} {
		assert.Equal(want, books.ParseGoal(text), "goal %q", text)
	}
}

func TestLibrary(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	library := books.NewLibrary(ctx, storage.NewValueStore(storage.NewMemoryBackend()))

	draft := books.NewDraft()
	draft.Name = "Emma"
	draft.Author = "Jane Austen"

	book, err := library.Books.Add(ctx, draft)
	assert.Nil(err)
	assert.Nil(library.Books.Update(ctx, book.ID, books.FieldStatus, books.StatusCompleted))
	assert.Nil(library.Goal.Set(ctx, 4))

	stats := library.Stats()
	assert.Equal(1, stats.Completed)
	assert.Equal(25.0, stats.Percentage)
	assert.Equal(3, stats.Remaining)

	assert.Nil(library.Close())
}

func TestDraftValidate(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	draft := books.NewDraft()
	draft.Name = "Dune"
	draft.Author = "Frank Herbert"
	assert.Nil(draft.Validate())

	draft.DateStarted = "2024-01-31"
	draft.Status = books.StatusCompleted
	draft.Rating = 5
	assert.Nil(draft.Validate())

	err := books.Draft{Name: "  ", Status: "paused", Rating: 6, DateFinished: "31/01/2024"}.Validate()

	var verr *books.ValidationError
	assert.True(errors.As(err, &verr))
	assert.Equal(map[string]string{
		"name":         "is required",
		"author":       "is required",
		"status":       "must be one of to-read, reading, completed, dnf",
		"rating":       "must be at most 5",
		"dateFinished": "must be a YYYY-MM-DD date",
	}, verr.Fields)
	assert.Equal(
		"invalid book: author is required, dateFinished must be a YYYY-MM-DD date, name is required, "+
			"rating must be at most 5, status must be one of to-read, reading, completed, dnf",
		err.Error(),
	)
}

func TestStatusLabel(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal("Did Not Finish", books.StatusLabel(books.StatusDNF))
	assert.Equal("To Read", books.StatusLabel(books.StatusToRead))
	assert.Equal("unknown", books.StatusLabel("unknown"))
	assert.Len(books.Statuses(), 4)
}
