package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/librarian/internal/core/chat"
	"github.com/colonyops/librarian/internal/core/validate"
	"github.com/colonyops/librarian/internal/librarian"
	"github.com/colonyops/librarian/internal/tui/views/backlog"
)

type AskCmd struct {
	flags *Flags
	app   *librarian.App

	// Command-specific flags
	book string
}

// NewAskCmd creates a new ask command
func NewAskCmd(flags *Flags, app *librarian.App) *AskCmd {
	return &AskCmd{flags: flags, app: app}
}

// Register adds the ask command to the application
func (cmd *AskCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ask",
		Usage:     "Ask the librarian a single question and print the answer",
		UsageText: "librarian ask [--book ID] QUESTION",
		Description: `Sends one question to the librarian and prints the answer, the
supporting quote, and the reference passages with the quote highlighted.

When --book is omitted and exactly one book is registered it is used
automatically; otherwise an interactive picker is shown.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "book",
				Usage:       "book ID to ask against (see 'librarian books')",
				Destination: &cmd.book,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AskCmd) run(ctx context.Context, c *cli.Command) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if err := validate.QuestionField("question", question); err != nil {
		return err
	}

	if cmd.book == "" {
		id, err := cmd.selectBook(ctx)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		cmd.book = id
	}

	entry, err := cmd.app.API.Ask(ctx, chat.BookID(cmd.book), question)
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}
	if entry == nil {
		return nil
	}

	r := backlog.NewRenderer(outputWidth())
	fmt.Print(r.Entry(*entry, false, true))
	return nil
}

// selectBook resolves the target book when --book was not given. A single
// registered book is used as-is; multiple books require a TTY for the picker.
func (cmd *AskCmd) selectBook(ctx context.Context) (string, error) {
	books, err := cmd.app.API.ListBooks(ctx)
	if err != nil {
		return "", fmt.Errorf("list books: %w", err)
	}

	switch {
	case len(books) == 0:
		return "", fmt.Errorf("no books registered")
	case len(books) == 1:
		return string(books[0].ID), nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("multiple books registered; specify one with --book")
	}

	options := make([]huh.Option[string], 0, len(books))
	for _, b := range books {
		options = append(options, huh.NewOption(b.Title, string(b.ID)))
	}

	var id string
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which book?").
				Options(options...).
				Value(&id),
		),
	).Run()
	if err != nil {
		return "", err
	}
	return id, nil
}

func outputWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
