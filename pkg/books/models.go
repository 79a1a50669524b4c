// Package books holds the reading list: the book collection, the annual goal, and the
// filter and stats derived from them.
package books

// These constants refer to the reading statuses supported by the app.
const (
	StatusToRead    = "to-read"
	StatusReading   = "reading"
	StatusCompleted = "completed"
	StatusDNF       = "dnf"

	// StatusAll is the filter sentinel that matches every status.
	StatusAll = "all"
)

// Statuses lists the reading statuses in display order.
func Statuses() []string {
	return []string{StatusToRead, StatusReading, StatusCompleted, StatusDNF}
}

// StatusLabel returns the display label for a status.
func StatusLabel(status string) string {
	switch status {
	case StatusToRead:
		return "To Read"
	case StatusReading:
		return "Reading"
	case StatusCompleted:
		return "Completed"
	case StatusDNF:
		return "Did Not Finish"
	case StatusAll:
		return "All"
	}

	return status
}

// These constants name the editable Book fields. They match the JSON keys.
const (
	FieldName         = "name"
	FieldAuthor       = "author"
	FieldStatus       = "status"
	FieldRating       = "rating"
	FieldDateStarted  = "dateStarted"
	FieldDateFinished = "dateFinished"
	FieldNotes        = "notes"
)

// MaxRating is the highest star rating. 0 means not rated.
const MaxRating = 5

// DateLayout is the format of DateStarted and DateFinished.
const DateLayout = "2006-01-02"

// Book is one tracked title.
type Book struct {
	// ID is assigned when the book is added and never changes.
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Author string `json:"author"`
	Status string `json:"status"`
	Rating int    `json:"rating"`
	// DateStarted and DateFinished are YYYY-MM-DD or empty.
	DateStarted  string `json:"dateStarted"`
	DateFinished string `json:"dateFinished"`
	Notes        string `json:"notes"`
}

// Draft holds the fields of a book that hasn't been added yet.
type Draft struct {
	Name         string `json:"name" validate:"required"`
	Author       string `json:"author" validate:"required"`
	Status       string `json:"status" validate:"oneof=to-read reading completed dnf"`
	Rating       int    `json:"rating" validate:"min=0,max=5"`
	DateStarted  string `json:"dateStarted" validate:"omitempty,datetime=2006-01-02"`
	DateFinished string `json:"dateFinished" validate:"omitempty,datetime=2006-01-02"`
	Notes        string `json:"notes"`
}

// NewDraft returns the blank draft the add form starts from.
func NewDraft() Draft {
	return Draft{Status: StatusToRead}
}

// Draft returns the editable fields of b.
func (b Book) Draft() Draft {
	return Draft{
		Name:         b.Name,
		Author:       b.Author,
		Status:       b.Status,
		Rating:       b.Rating,
		DateStarted:  b.DateStarted,
		DateFinished: b.DateFinished,
		Notes:        b.Notes,
	}
}
