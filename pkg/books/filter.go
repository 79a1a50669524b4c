package books

import "strings"

// Filter returns the books whose name or author contains query, ignoring case, and whose
// status is status. An empty query and StatusAll match everything. Order is preserved.
func Filter(books []Book, query, status string) []Book {
	query = strings.ToLower(query)
	filtered := make([]Book, 0, len(books))

	for _, book := range books {
		if matchesQuery(book, query) && matchesStatus(book, status) {
			filtered = append(filtered, book)
		}
	}

	return filtered
}

func matchesQuery(book Book, query string) bool {
	if query == "" {
		return true
	}

	return strings.Contains(strings.ToLower(book.Name), query) ||
		strings.Contains(strings.ToLower(book.Author), query)
}

func matchesStatus(book Book, status string) bool {
	return status == "" || status == StatusAll || book.Status == status
}

// View is the filtered list shown to the user along with the criteria that produced it.
// It is recomputed only when asked to: on Apply, on Reset, and on Refresh after the
// collection changes.
type View struct {
	Query  string
	Status string
	books  []Book
}

// NewView returns an unfiltered view of books.
func NewView(books []Book) *View {
	v := &View{}
	v.Reset(books)

	return v
}

// Books returns the books currently in the view.
func (v *View) Books() []Book {
	return v.books
}

// Apply records new criteria and filters books with them.
func (v *View) Apply(books []Book, query, status string) []Book {
	v.Query = query
	v.Status = status

	return v.Refresh(books)
}

// Reset clears the criteria and shows every book.
func (v *View) Reset(books []Book) []Book {
	return v.Apply(books, "", StatusAll)
}

// Refresh filters books with the current criteria.
func (v *View) Refresh(books []Book) []Book {
	v.books = Filter(books, v.Query, v.Status)

	return v.books
}

// Filtered reports whether any criteria are set.
func (v *View) Filtered() bool {
	return v.Query != "" || (v.Status != "" && v.Status != StatusAll)
}
