package controller

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/reading-list/pkg/books"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	progressWidth = 30
	headerRows    = 6
)

func (c *Controller) getListGrid() *tview.Grid {
	c.header = tview.NewTable().SetBorders(false).SetSelectable(false, false)
	c.table = tview.NewTable().SetBorders(false).SetSelectable(true, false).SetFixed(1, 0)
	c.message = tview.NewTextView().SetDynamicColors(true)

	c.table.SetSelectionChangedFunc(c.setCurrentRow)

	grid := tview.NewGrid().SetBorders(true).SetRows(headerRows, 0, 1)

	grid.AddItem(c.header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.table, 1, 0, 1, 1, 0, 0, true)
	grid.AddItem(c.message, 2, 0, 1, 1, 0, 0, false)

	return grid
}

// redraw fills the header and the table from the current view, keeping the selected book
// selected when it is still visible.
func (c *Controller) redraw() {
	selected, hasSelection := c.selectedBook()

	c.content = &BookContent{books: c.view.Books()}
	c.content.Fill(c.table)
	c.fillHeader()

	row := 1
	if hasSelection {
		if r := c.content.RowOf(selected.ID); r > 0 {
			row = r
		}
	}

	if row >= c.content.GetRowCount() {
		row = c.content.GetRowCount() - 1
	}

	if row > 0 {
		c.table.Select(row, 0)
	}
}

// fillHeader shows reading progress and the active filter at the top, followed by 3 columns
// of keyboard shortcuts: book actions, status changes and view actions, each sorted.
func (c *Controller) fillHeader() {
	c.header.Clear()

	stats := c.library.Stats()

	c.header.SetCell(0, 0, tview.NewTableCell(
		fmt.Sprintf("[yellow]Reading goal [white]%s %s", progressBar(stats.Percentage, progressWidth), stats.Summary()),
	))
	c.header.SetCell(1, 0, tview.NewTableCell(filterText(c.view, c.library.Books.Len())))

	shortcuts := map[int][]string{
		groupBook:   {},
		groupStatus: {},
		groupView:   {},
	}

	for key, event := range c.events {
		text := fmt.Sprintf("[orange]<%s>[white] %s", tcell.KeyNames[key], event.Description)
		shortcuts[event.Group] = append(shortcuts[event.Group], text)
	}

	for col := range shortcuts {
		sort.Strings(shortcuts[col])
	}

	for i := 0; ; i++ {
		more := false

		for col := groupBook; col <= groupView; col++ {
			if i < len(shortcuts[col]) {
				c.header.SetCell(i+2, col, tview.NewTableCell(shortcuts[col][i]).SetExpansion(1))
				more = true
			}
		}

		if !more {
			break
		}
	}
}

// selectedBook returns the book in the selected table row.
func (c *Controller) selectedBook() (books.Book, bool) {
	if c.content == nil {
		return books.Book{}, false
	}

	row, _ := c.table.GetSelection()

	return c.content.BookAt(row)
}

// when the row selection changes, log the selected book.
func (c *Controller) setCurrentRow(row, col int) {
	book, ok := c.content.BookAt(row)

	title := "nil"
	if ok {
		title = book.Name
	}

	log.Debug().
		Int("row", row).
		Int("len", len(c.view.Books())).
		Msgf("selected book '%s'", title)
}

func (c *Controller) showList() {
	c.redraw()

	c.app.SetInputCapture(c.keyboard(c.events))
	c.pages.SwitchToPage(pageList)
	c.app.SetFocus(c.table)
}

func progressBar(percentage float64, width int) string {
	if percentage < 0 {
		percentage = 0
	}

	filled := int(math.Round(percentage / 100 * float64(width)))
	if filled > width {
		filled = width
	}

	return fmt.Sprintf("[green]%s[gray]%s[white] %3.0f%%",
		strings.Repeat("█", filled), strings.Repeat("░", width-filled), percentage)
}

func filterText(view *books.View, total int) string {
	if !view.Filtered() {
		return fmt.Sprintf("[gray]showing all %d books", total)
	}

	parts := []string{}
	if view.Query != "" {
		parts = append(parts, fmt.Sprintf("matching %q", view.Query))
	}

	if view.Status != "" && view.Status != books.StatusAll {
		parts = append(parts, "status "+books.StatusLabel(view.Status))
	}

	return fmt.Sprintf("[gray]showing %d of %d books, %s", len(view.Books()), total, tview.Escape(strings.Join(parts, ", ")))
}
