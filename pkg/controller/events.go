package controller

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/reading-list/pkg/books"
	"github.com/rs/zerolog/log"
)

func (c *Controller) initEvents() {
	c.events = map[tcell.Key]KeyEvent{}
	c.formEvents = map[tcell.Key]KeyEvent{}

	c.initBookEvents(c.events)
	c.initStatusEvents(c.events)
	c.initViewEvents(c.events)
	c.initExitEvent(c.events)

	c.formEvents[tcell.KeyEscape] = KeyEvent{
		Description: "Back to list",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showList()

			return nil
		},
	}
}

func (c *Controller) initExitEvent(events map[tcell.Key]KeyEvent) {
	events[KeyQ] = KeyEvent{
		Description: "Exit",
		Group:       groupView,
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			log.Info().Msg("terminating application")

			c.app.Stop()

			return nil
		},
	}
}

func (c *Controller) initBookEvents(events map[tcell.Key]KeyEvent) {
	events[KeyA] = KeyEvent{
		Description: "Add book",
		Group:       groupBook,
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.switchToBookForm(nil)

			return nil
		},
	}

	events[KeyE] = KeyEvent{
		Description: "Edit book",
		Group:       groupBook,
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			if book, ok := c.selectedBook(); ok {
				c.switchToBookForm(&book)
			}

			return nil
		},
	}

	events[KeyX] = KeyEvent{
		Description: "Delete book",
		Group:       groupBook,
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			if book, ok := c.selectedBook(); ok {
				c.confirmDelete(book)
			}

			return nil
		},
	}
}

func (c *Controller) getStatusAction(status string) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		book, ok := c.selectedBook()
		if !ok {
			return nil
		}

		log.Debug().Msgf("changing status of '%s' from %s to %s", book.Name, book.Status, status)

		err := c.library.Books.Update(c.ctx, book.ID, books.FieldStatus, status)

		c.refresh()
		c.reportSave(fmt.Sprintf("status change of '%s'", book.Name), err)

		return nil
	}
}

func (c *Controller) initStatusEvents(events map[tcell.Key]KeyEvent) {
	keys := []tcell.Key{Key1, Key2, Key3, Key4}

	for i, status := range books.Statuses() {
		events[keys[i]] = KeyEvent{
			Description: "Mark " + books.StatusLabel(status),
			Group:       groupStatus,
			Action:      c.getStatusAction(status),
		}
	}
}

func (c *Controller) initViewEvents(events map[tcell.Key]KeyEvent) {
	events[KeyF] = KeyEvent{
		Description: "Filter",
		Group:       groupView,
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.switchToFilterForm()

			return nil
		},
	}

	events[KeyR] = KeyEvent{
		Description: "Reset filter",
		Group:       groupView,
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.resetFilter()

			return nil
		},
	}

	events[KeyG] = KeyEvent{
		Description: "Set goal",
		Group:       groupView,
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.switchToGoalForm()

			return nil
		},
	}
}

func (c *Controller) confirmDelete(book books.Book) {
	c.deleteBox.SetText(fmt.Sprintf("Delete '%s' by %s?", book.Name, book.Author))
	c.deleteBox.SetDoneFunc(func(buttonIndex int, buttonLabel string) {
		if buttonLabel == "Delete" {
			log.Debug().Msgf("deleting book '%s'", book.Name)

			err := c.library.Books.Remove(c.ctx, book.ID)

			c.refresh()
			c.reportSave(fmt.Sprintf("deletion of '%s'", book.Name), err)
		}

		c.showList()
	})

	c.app.SetInputCapture(nil)
	c.pages.ShowPage(pageDelete)
	c.app.SetFocus(c.deleteBox)
}
