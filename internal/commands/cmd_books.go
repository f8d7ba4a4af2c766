package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/librarian/internal/librarian"
)

type BooksCmd struct {
	flags *Flags
	app   *librarian.App
}

// NewBooksCmd creates a new books command
func NewBooksCmd(flags *Flags, app *librarian.App) *BooksCmd {
	return &BooksCmd{flags: flags, app: app}
}

// Register adds the books command to the application
func (cmd *BooksCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "books",
		Usage:       "List the books the librarian knows about",
		UsageText:   "librarian books",
		Description: `Displays a table of registered books with their IDs for use with --book.`,
		Action:      cmd.run,
	})

	return app
}

func (cmd *BooksCmd) run(ctx context.Context, c *cli.Command) error {
	books, err := cmd.app.API.ListBooks(ctx)
	if err != nil {
		return fmt.Errorf("list books: %w", err)
	}

	if len(books) == 0 {
		fmt.Fprintln(os.Stderr, "No books registered")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE")
	for _, b := range books {
		fmt.Fprintf(w, "%s\t%s\n", b.ID, b.Title)
	}
	return w.Flush()
}
