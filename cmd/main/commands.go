package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/matt-steen/reading-list/pkg/books"
	"github.com/spf13/cobra"
)

func newListCmd(opts *options) *cobra.Command {
	var query, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkStatus(status, true); err != nil {
				return err
			}

			return withLibrary(cmd.Context(), opts, func(library *books.Library) error {
				view := books.NewView(nil)
				view.Apply(library.Books.Books(), query, status)

				printBooks(cmd.OutOrStdout(), view.Books())

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "case-insensitive match on title or author")
	cmd.Flags().StringVar(&status, "status", books.StatusAll, "status: all|to-read|reading|completed|dnf")

	return cmd
}

func newAddCmd(opts *options) *cobra.Command {
	draft := books.NewDraft()

	cmd := &cobra.Command{
		Use:   "add --name <title> --author <author>",
		Short: "Add a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft.Name = strings.TrimSpace(draft.Name)
			draft.Author = strings.TrimSpace(draft.Author)

			if err := draft.Validate(); err != nil {
				return err
			}

			return withLibrary(cmd.Context(), opts, func(library *books.Library) error {
				book, err := library.Books.Add(cmd.Context(), draft)
				if err != nil {
					return fmt.Errorf("error saving '%s': %w", book.Name, err)
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s by %s (%d)\n", book.Name, book.Author, book.ID)

				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&draft.Name, "name", "", "book title")
	flags.StringVar(&draft.Author, "author", "", "book author")
	flags.StringVar(&draft.Status, "status", draft.Status, "status: to-read|reading|completed|dnf")
	flags.IntVar(&draft.Rating, "rating", 0, "rating from 0 (not rated) to 5")
	flags.StringVar(&draft.DateStarted, "started", "", "date started, YYYY-MM-DD")
	flags.StringVar(&draft.DateFinished, "finished", "", "date finished, YYYY-MM-DD")
	flags.StringVar(&draft.Notes, "notes", "", "free-form notes")

	return cmd
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show progress towards the reading goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLibrary(cmd.Context(), opts, func(library *books.Library) error {
				printStats(cmd.OutOrStdout(), library)

				return nil
			})
		},
	}
}

func newGoalCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "goal [n]",
		Short: "Show or set the yearly reading goal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLibrary(cmd.Context(), opts, func(library *books.Library) error {
				if len(args) == 0 {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal: %d books\n", library.Goal.Get())

					return nil
				}

				if err := library.Goal.Set(cmd.Context(), books.ParseGoal(args[0])); err != nil {
					return fmt.Errorf("error saving goal: %w", err)
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal set to %d books\n", library.Goal.Get())

				return nil
			})
		},
	}
}

// checkStatus rejects anything but a known status, or "all" when allowAll is set.
func checkStatus(status string, allowAll bool) error {
	if allowAll && (status == "" || status == books.StatusAll) {
		return nil
	}

	for _, s := range books.Statuses() {
		if s == status {
			return nil
		}
	}

	return fmt.Errorf("unknown status %q", status)
}

func printBooks(out io.Writer, list []books.Book) {
	if len(list) == 0 {
		_, _ = fmt.Fprintln(out, "no books")

		return
	}

	for _, book := range list {
		rating := "-"
		if book.Rating > 0 {
			rating = fmt.Sprintf("%d/%d", book.Rating, books.MaxRating)
		}

		_, _ = fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s\n",
			book.ID, book.Name, book.Author, books.StatusLabel(book.Status), rating)
	}
}

func printStats(out io.Writer, library *books.Library) {
	stats := library.Stats()

	_, _ = fmt.Fprintf(out, "%s\n", stats.Summary())
	_, _ = fmt.Fprintf(out, "progress: %.0f%%\n", stats.Percentage)

	counts := map[string]int{}
	for _, book := range library.Books.Books() {
		counts[book.Status]++
	}

	for _, status := range books.Statuses() {
		_, _ = fmt.Fprintf(out, "%s: %d\n", books.StatusLabel(status), counts[status])
	}
}
