package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/reading-list/pkg/books"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	nameMax  = 60
	dateMax  = 10
	notesMax = 200
	queryMax = 40
	goalMax  = 5

	labelName     = "Title"
	labelAuthor   = "Author"
	labelStatus   = "Status"
	labelRating   = "Rating"
	labelStarted  = "Started"
	labelFinished = "Finished"
	labelNotes    = "Notes"
	labelSearch   = "Search"
	labelGoal     = "Books this year"
)

// formPage pairs a form with its title line and its error line.
type formPage struct {
	title  *tview.TextView
	errors *tview.TextView
}

func (c *Controller) getFormGrid(name string, form *tview.Form) *tview.Grid {
	page := &formPage{
		title:  tview.NewTextView().SetDynamicColors(true),
		errors: tview.NewTextView().SetDynamicColors(true),
	}
	c.formPages[name] = page

	hints := []string{}
	for key, event := range c.formEvents {
		hints = append(hints, fmt.Sprintf("[orange]<%s>[white] %s", tcell.KeyNames[key], event.Description))
	}

	hint := tview.NewTextView().SetDynamicColors(true).SetText(strings.Join(hints, "  "))

	grid := tview.NewGrid().SetBorders(true).SetRows(1, 1, 0, 1)

	grid.AddItem(page.title, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(hint, 1, 0, 1, 1, 0, 0, false)
	grid.AddItem(form, 2, 0, 1, 1, 0, 0, true)
	grid.AddItem(page.errors, 3, 0, 1, 1, 0, 0, false)

	return grid
}

func (c *Controller) switchToForm(name, title string, form *tview.Form) {
	c.formPages[name].title.SetText(fmt.Sprintf("[yellow]%s", title))
	c.formPages[name].errors.SetText("")

	form.SetFocus(0)

	c.pages.SwitchToPage(name)
	c.app.SetFocus(form)
	c.app.SetInputCapture(c.keyboard(c.formEvents))
}

func (c *Controller) showFormError(name string, err error) {
	c.formPages[name].errors.SetText("[red]" + tview.Escape(err.Error()))
}

func ratingOptions() []string {
	options := []string{}
	for rating := 0; rating <= books.MaxRating; rating++ {
		options = append(options, ratingText(rating))
	}

	return options
}

func statusOptions(withAll bool) []string {
	options := []string{}
	if withAll {
		options = append(options, books.StatusLabel(books.StatusAll))
	}

	for _, status := range books.Statuses() {
		options = append(options, books.StatusLabel(status))
	}

	return options
}

// statusAt maps a dropdown index back to a status.
func statusAt(index int, withAll bool) string {
	if withAll {
		if index <= 0 {
			return books.StatusAll
		}

		index--
	}

	statuses := books.Statuses()
	if index < 0 || index >= len(statuses) {
		return books.StatusToRead
	}

	return statuses[index]
}

func statusIndex(status string, withAll bool) int {
	offset := 0
	if withAll {
		if status == books.StatusAll || status == "" {
			return 0
		}

		offset = 1
	}

	for i, s := range books.Statuses() {
		if s == status {
			return i + offset
		}
	}

	return offset
}

func (c *Controller) getBookFormGrid() *tview.Grid {
	c.bookForm = tview.NewForm().
		AddInputField(labelName, "", nameMax, nil, nil).
		AddInputField(labelAuthor, "", nameMax, nil, nil).
		AddDropDown(labelStatus, statusOptions(false), 0, nil).
		AddDropDown(labelRating, ratingOptions(), 0, nil).
		AddInputField(labelStarted, "", dateMax, nil, nil).
		AddInputField(labelFinished, "", dateMax, nil, nil).
		AddInputField(labelNotes, "", notesMax, nil, nil)

	c.bookForm.AddButton("Save", c.saveBook)
	c.bookForm.AddButton("Cancel", c.showList)

	return c.getFormGrid(pageBook, c.bookForm)
}

func (c *Controller) inputField(form *tview.Form, label string) *tview.InputField {
	field, _ := form.GetFormItemByLabel(label).(*tview.InputField)

	return field
}

func (c *Controller) dropDown(form *tview.Form, label string) *tview.DropDown {
	field, _ := form.GetFormItemByLabel(label).(*tview.DropDown)

	return field
}

// switchToBookForm opens the book form, empty for a new book or filled from book.
func (c *Controller) switchToBookForm(book *books.Book) {
	c.editing = book

	draft := books.NewDraft()
	title := "Add Book"

	if book != nil {
		draft = book.Draft()
		title = fmt.Sprintf("Edit '%s'", tview.Escape(book.Name))
	}

	c.inputField(c.bookForm, labelName).SetText(draft.Name)
	c.inputField(c.bookForm, labelAuthor).SetText(draft.Author)
	c.dropDown(c.bookForm, labelStatus).SetCurrentOption(statusIndex(draft.Status, false))
	c.dropDown(c.bookForm, labelRating).SetCurrentOption(books.ParseRating(strconv.Itoa(draft.Rating)))
	c.inputField(c.bookForm, labelStarted).SetText(draft.DateStarted)
	c.inputField(c.bookForm, labelFinished).SetText(draft.DateFinished)
	c.inputField(c.bookForm, labelNotes).SetText(draft.Notes)

	c.switchToForm(pageBook, title, c.bookForm)
}

func (c *Controller) readBookForm() books.Draft {
	status, _ := c.dropDown(c.bookForm, labelStatus).GetCurrentOption()
	rating, _ := c.dropDown(c.bookForm, labelRating).GetCurrentOption()

	if rating < 0 {
		rating = 0
	}

	return books.Draft{
		Name:         strings.TrimSpace(c.inputField(c.bookForm, labelName).GetText()),
		Author:       strings.TrimSpace(c.inputField(c.bookForm, labelAuthor).GetText()),
		Status:       statusAt(status, false),
		Rating:       rating,
		DateStarted:  strings.TrimSpace(c.inputField(c.bookForm, labelStarted).GetText()),
		DateFinished: strings.TrimSpace(c.inputField(c.bookForm, labelFinished).GetText()),
		Notes:        c.inputField(c.bookForm, labelNotes).GetText(),
	}
}

func (c *Controller) saveBook() {
	draft := c.readBookForm()

	if err := draft.Validate(); err != nil {
		c.showFormError(pageBook, err)

		return
	}

	var (
		id     int64
		err    error
		action string
	)

	if c.editing == nil {
		var book books.Book

		book, err = c.library.Books.Add(c.ctx, draft)
		id = book.ID
		action = fmt.Sprintf("adding '%s'", draft.Name)
	} else {
		log.Debug().Int64("id", c.editing.ID).Msgf("editing book '%s'", draft.Name)

		err = c.applyEdits(*c.editing, draft)
		id = c.editing.ID
		action = fmt.Sprintf("editing '%s'", draft.Name)
	}

	c.editing = nil

	c.refresh()

	if row := c.content.RowOf(id); row > 0 {
		c.table.Select(row, 0)
	}

	c.showList()
	c.reportSave(action, err)
}

// applyEdits writes every field that differs from book. The status goes before the finish
// date so a date typed in the form wins over the completion stamp.
func (c *Controller) applyEdits(book books.Book, draft books.Draft) error {
	old := book.Draft()

	changes := []struct {
		field         string
		before, after string
	}{
		{books.FieldName, old.Name, draft.Name},
		{books.FieldAuthor, old.Author, draft.Author},
		{books.FieldRating, strconv.Itoa(old.Rating), strconv.Itoa(draft.Rating)},
		{books.FieldDateStarted, old.DateStarted, draft.DateStarted},
		{books.FieldNotes, old.Notes, draft.Notes},
		{books.FieldStatus, old.Status, draft.Status},
		{books.FieldDateFinished, old.DateFinished, draft.DateFinished},
	}

	var errs []error

	for _, change := range changes {
		if change.before == change.after {
			continue
		}

		if err := c.library.Books.Update(c.ctx, book.ID, change.field, change.after); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (c *Controller) getFilterFormGrid() *tview.Grid {
	c.filterForm = tview.NewForm().
		AddInputField(labelSearch, "", queryMax, nil, nil).
		AddDropDown(labelStatus, statusOptions(true), 0, nil)

	c.filterForm.AddButton("Filter", c.applyFilter)
	c.filterForm.AddButton("Reset", c.resetFilter)

	return c.getFormGrid(pageFilter, c.filterForm)
}

func (c *Controller) applyFilter() {
	index, _ := c.dropDown(c.filterForm, labelStatus).GetCurrentOption()
	query := c.inputField(c.filterForm, labelSearch).GetText()

	c.view.Apply(c.library.Books.Books(), query, statusAt(index, true))

	log.Debug().Str("query", query).Str("status", c.view.Status).
		Int("matches", len(c.view.Books())).Msg("filtered books")

	c.showList()
}

func (c *Controller) switchToFilterForm() {
	c.inputField(c.filterForm, labelSearch).SetText(c.view.Query)
	c.dropDown(c.filterForm, labelStatus).SetCurrentOption(statusIndex(c.view.Status, true))

	c.switchToForm(pageFilter, "Search & Filter", c.filterForm)
}

func (c *Controller) resetFilter() {
	c.view.Reset(c.library.Books.Books())

	c.inputField(c.filterForm, labelSearch).SetText("")
	c.dropDown(c.filterForm, labelStatus).SetCurrentOption(0)

	c.showList()
}

func (c *Controller) getGoalFormGrid() *tview.Grid {
	c.goalForm = tview.NewForm().
		AddInputField(labelGoal, "", goalMax, tview.InputFieldInteger, nil)

	c.goalForm.AddButton("Save", c.saveGoal)
	c.goalForm.AddButton("Cancel", c.showList)

	return c.getFormGrid(pageGoal, c.goalForm)
}

func (c *Controller) saveGoal() {
	goal := books.ParseGoal(c.inputField(c.goalForm, labelGoal).GetText())

	log.Debug().Int("goal", goal).Msg("setting reading goal")

	err := c.library.Goal.Set(c.ctx, goal)

	c.showList()
	c.reportSave("the new goal", err)
}

func (c *Controller) switchToGoalForm() {
	c.inputField(c.goalForm, labelGoal).SetText(strconv.Itoa(c.library.Goal.Get()))

	c.switchToForm(pageGoal, "Reading Goal", c.goalForm)
}
