package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/x/ansi"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/librarian/internal/core/chat"
	"github.com/colonyops/librarian/internal/core/validate"
	"github.com/colonyops/librarian/internal/librarian"
)

const historyQuestionWidth = 60

// HistoryCmd implements the librarian history command group.
type HistoryCmd struct {
	flags *Flags
	app   *librarian.App

	book string
}

// NewHistoryCmd creates a new history command.
func NewHistoryCmd(flags *Flags, app *librarian.App) *HistoryCmd {
	return &HistoryCmd{flags: flags, app: app}
}

// Register adds the history command to the application.
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "history",
		Usage: "Inspect and prune a book's question history",
		Description: `History commands for the stored question/answer log of a book.

Examples:
  librarian history list --book moby-dick
  librarian history delete --book moby-dick x7f3kq9p2m`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "book",
				Usage:       "book ID (see 'librarian books')",
				Required:    true,
				Destination: &cmd.book,
			},
		},
		Commands: []*cli.Command{
			cmd.listCmd(),
			cmd.deleteCmd(),
		},
	})

	return app
}

func (cmd *HistoryCmd) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List a book's history entries, newest first",
		UsageText: "librarian history list --book ID",
		Action:    cmd.runList,
	}
}

func (cmd *HistoryCmd) deleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a history entry",
		UsageText: "librarian history delete --book ID ENTRY_ID",
		Action:    cmd.runDelete,
	}
}

func (cmd *HistoryCmd) runList(ctx context.Context, c *cli.Command) error {
	if err := validate.BookIDField("book", cmd.book); err != nil {
		return err
	}

	entries, err := cmd.app.API.ListHistory(ctx, chat.BookID(cmd.book))
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No history for this book")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tQUESTION")
	for _, e := range entries {
		status := "answered"
		if e.Failed() {
			status = "error"
		}
		question := ansi.Truncate(e.Question, historyQuestionWidth, "…")
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, status, question)
	}
	return w.Flush()
}

func (cmd *HistoryCmd) runDelete(ctx context.Context, c *cli.Command) error {
	if err := validate.BookIDField("book", cmd.book); err != nil {
		return err
	}

	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("entry id is required")
	}

	if err := cmd.app.API.DeleteEntry(ctx, chat.BookID(cmd.book), chat.EntryID(id)); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Deleted %s\n", id)
	return nil
}
