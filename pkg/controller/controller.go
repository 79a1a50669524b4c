package controller

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/reading-list/pkg/books"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	pageList   = "list"
	pageBook   = "book"
	pageFilter = "filter"
	pageGoal   = "goal"
	pageDelete = "delete"
)

// Controller mediates between the library and the view.
type Controller struct {
	ctx     context.Context
	library *books.Library
	view    *books.View
	content *BookContent
	app     *tview.Application
	pages   *tview.Pages

	header  *tview.Table
	table   *tview.Table
	message *tview.TextView

	bookForm   *tview.Form
	filterForm *tview.Form
	goalForm   *tview.Form
	deleteBox  *tview.Modal
	formPages  map[string]*formPage

	// editing is the book open in the book form; nil while adding.
	editing *books.Book

	events     map[tcell.Key]KeyEvent
	formEvents map[tcell.Key]KeyEvent
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Group       int
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// These constants group shortcuts into header columns.
const (
	groupBook = iota
	groupStatus
	groupView
)

// NewController creates a new Controller to run the app.
func NewController(ctx context.Context, library *books.Library) (*Controller, error) {
	if library == nil {
		return nil, fmt.Errorf("error creating controller: no library")
	}

	c := &Controller{
		ctx:       ctx,
		library:   library,
		view:      books.NewView(library.Books.Books()),
		content:   &BookContent{},
		app:       tview.NewApplication(),
		formPages: map[string]*formPage{},
	}

	initKeys()
	c.initEvents()
	c.initPages()

	return c, nil
}

// Go runs the app until the user quits.
func (c *Controller) Go() error {
	c.showList()

	if err := c.app.SetRoot(c.pages, true).Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}

	return nil
}

func (c *Controller) initPages() {
	c.pages = tview.NewPages()

	c.pages.AddPage(pageList, c.getListGrid(), true, true)
	c.pages.AddPage(pageBook, c.getBookFormGrid(), true, false)
	c.pages.AddPage(pageFilter, c.getFilterFormGrid(), true, false)
	c.pages.AddPage(pageGoal, c.getGoalFormGrid(), true, false)

	c.deleteBox = tview.NewModal().AddButtons([]string{"Delete", "Cancel"})
	c.pages.AddPage(pageDelete, c.deleteBox, true, false)
}

func (c *Controller) keyboard(events map[tcell.Key]KeyEvent) func(*tcell.EventKey) *tcell.EventKey {
	return func(evt *tcell.EventKey) *tcell.EventKey {
		if k, ok := events[AsKey(evt)]; ok {
			return k.Action(evt)
		}

		return evt
	}
}

// refresh recomputes the view after the collection changed and redraws the list.
func (c *Controller) refresh() {
	c.view.Refresh(c.library.Books.Books())
	c.redraw()
}

// reportSave shows a warning when a change could not be written. The change itself stands
// for the rest of the session.
func (c *Controller) reportSave(action string, err error) {
	if err == nil {
		c.setMessage("")

		return
	}

	log.Warn().Err(err).Msgf("error saving after %s", action)
	c.setMessage(fmt.Sprintf("[red]%s was not saved and will be lost on exit", action))
}

func (c *Controller) setMessage(msg string) {
	c.message.SetText(msg)
}
