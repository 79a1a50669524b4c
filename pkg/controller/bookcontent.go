package controller

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/reading-list/pkg/books"
	"github.com/rivo/tview"
)

const (
	notesNameRatio = 2
	bookColumns    = 6
)

// statusColors distinguishes the statuses at a glance.
func statusColors() map[string]tcell.Color {
	return map[string]tcell.Color{
		books.StatusToRead:    tcell.ColorSilver,
		books.StatusReading:   tcell.ColorDodgerBlue,
		books.StatusCompleted: tcell.ColorGreen,
		books.StatusDNF:       tcell.ColorRed,
	}
}

// BookContent provides the cells of the book table: a header row followed by one row per
// book in the view.
type BookContent struct {
	books []books.Book
}

func headerCell(text string, expansion int) *tview.TableCell {
	return tview.NewTableCell(text).SetExpansion(expansion).
		SetTextColor(tcell.ColorYellow).SetSelectable(false)
}

// GetCell returns the cell at the given position or nil if no cell.
func (b *BookContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		switch col {
		case 0:
			return headerCell("title", notesNameRatio)
		case 1:
			return headerCell("author", 1)
		case 2:
			return headerCell("status", 1)
		case 3:
			return headerCell("rating", 1)
		case 4:
			return headerCell("dates", 1)
		case 5:
			return headerCell("notes", notesNameRatio)
		}

		return nil
	}

	if row-1 >= len(b.books) {
		return nil
	}

	book := b.books[row-1]

	switch col {
	case 0:
		return tview.NewTableCell(tview.Escape(book.Name)).SetExpansion(notesNameRatio).SetReference(book.ID)
	case 1:
		return tview.NewTableCell(tview.Escape(book.Author)).SetExpansion(1)
	case 2:
		color, ok := statusColors()[book.Status]
		if !ok {
			color = tcell.ColorWhite
		}

		return tview.NewTableCell(books.StatusLabel(book.Status)).SetExpansion(1).SetTextColor(color)
	case 3:
		return tview.NewTableCell(ratingText(book.Rating)).SetExpansion(1).SetTextColor(tcell.ColorGold)
	case 4:
		return tview.NewTableCell(datesText(book)).SetExpansion(1)
	case 5:
		return tview.NewTableCell(tview.Escape(book.Notes)).SetExpansion(notesNameRatio)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (b *BookContent) GetRowCount() int {
	return len(b.books) + 1
}

// GetColumnCount returns the number of columns in the table.
func (b *BookContent) GetColumnCount() int {
	return bookColumns
}

// Fill replaces the contents of table with the content's cells.
func (b *BookContent) Fill(table *tview.Table) {
	table.Clear()

	for row := 0; row < b.GetRowCount(); row++ {
		for col := 0; col < b.GetColumnCount(); col++ {
			if cell := b.GetCell(row, col); cell != nil {
				table.SetCell(row, col, cell)
			}
		}
	}
}

// BookAt returns the book shown in the given table row.
func (b *BookContent) BookAt(row int) (books.Book, bool) {
	// adjust for the header row
	if idx := row - 1; idx >= 0 && idx < len(b.books) {
		return b.books[idx], true
	}

	return books.Book{}, false
}

// RowOf returns the table row showing the book with the given id, or 0.
func (b *BookContent) RowOf(id int64) int {
	for i, book := range b.books {
		if book.ID == id {
			return i + 1
		}
	}

	return 0
}

func ratingText(rating int) string {
	if rating <= 0 {
		return "Not rated"
	}

	if rating > books.MaxRating {
		rating = books.MaxRating
	}

	return strings.Repeat("★", rating)
}

func datesText(book books.Book) string {
	switch {
	case book.DateStarted != "" && book.DateFinished != "":
		return book.DateStarted + " → " + book.DateFinished
	case book.DateStarted != "":
		return "started " + book.DateStarted
	case book.DateFinished != "":
		return "finished " + book.DateFinished
	}

	return "-"
}
