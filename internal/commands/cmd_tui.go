package commands

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/librarian/internal/librarian"
	"github.com/colonyops/librarian/internal/tui"
	tuinotify "github.com/colonyops/librarian/internal/tui/notify"
)

type TuiCmd struct {
	flags *Flags
	app   *librarian.App
	bus   *tuinotify.Bus
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *librarian.App, bus *tuinotify.Bus) *TuiCmd {
	return &TuiCmd{flags: flags, app: app, bus: bus}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, _ *cli.Command) error {
	m := tui.New(tui.Deps{
		Config: cmd.app.Config,
		App:    cmd.app,
		Bus:    cmd.bus,
	})

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
