// Package tui implements the interactive chat client: a book sidebar, the
// question/answer backlog for the selected book, and an ask bar.
package tui

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/librarian/internal/core/chat"
	"github.com/colonyops/librarian/internal/core/config"
	"github.com/colonyops/librarian/internal/core/notify"
	"github.com/colonyops/librarian/internal/librarian"
	"github.com/colonyops/librarian/internal/tui/components"
	tuinotify "github.com/colonyops/librarian/internal/tui/notify"
	"github.com/colonyops/librarian/internal/tui/views/backlog"
)

// focusZone identifies which pane receives key input.
type focusZone int

const (
	focusInput focusZone = iota
	focusBacklog
	focusBooks
)

const (
	sidebarWidth  = 28
	chromeHeight  = 6 // ask bar + borders + help line
	defaultWidth  = 100
	defaultHeight = 30
)

// Key constants for event handling.
const (
	keyEnter = "enter"
	keyCtrlC = "ctrl+c"
)

// Deps are the collaborators the TUI consumes.
type Deps struct {
	Config *config.Config
	App    *librarian.App
	Bus    *tuinotify.Bus
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	cfg *config.Config
	app *librarian.App

	// Book sidebar.
	books   []chat.Book
	bookIdx int

	// Backlog pane.
	viewport viewport.Model
	renderer *backlog.Renderer
	entryIdx int
	expanded map[chat.EntryID]bool

	// Ask bar.
	input        textinput.Model
	spinner      spinner.Model
	pendingAsks  int
	lastQuestion string

	// Delete confirmation.
	confirm       *components.ConfirmModal
	pendingDelete chat.EntryID

	focus    focusZone
	width    int
	height   int
	quitting bool

	// Notifications.
	buffer          *NotificationBuffer
	toastController *ToastController
	toastView       *ToastView
}

// New creates the TUI model and subscribes it to the notification bus.
func New(deps Deps) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask a question about the book..."
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	controller := NewToastController(deps.Config.ToastTTL())
	buffer := NewNotificationBuffer()
	deps.Bus.Subscribe(func(n notify.Notification) {
		buffer.Push(n)
	})

	return Model{
		cfg:             deps.Config,
		app:             deps.App,
		input:           ti,
		spinner:         sp,
		expanded:        map[chat.EntryID]bool{},
		width:           defaultWidth,
		height:          defaultHeight,
		viewport:        viewport.New(),
		renderer:        backlog.NewRenderer(defaultWidth - sidebarWidth - 4),
		buffer:          buffer,
		toastController: controller,
		toastView:       NewToastView(controller),
	}
}

// Init starts book loading and the notification wait loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadBooksCmd(m.app.API, m.cfg.Timeout()),
		m.buffer.WaitForSignal(),
		m.spinner.Tick,
	)
}

// Update is the single mutation point for all UI state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case booksLoadedMsg:
		return m.handleBooksLoaded(msg)

	case historyLoadedMsg, entryDeletedMsg:
		m.clampEntryCursor()
		m.refreshBacklog()
		return m, nil

	case askResolvedMsg:
		if m.pendingAsks > 0 {
			m.pendingAsks--
		}
		m.refreshBacklog()
		return m, nil

	case notificationsReadyMsg:
		return m.handleNotifications()

	case toastTickMsg:
		return m.handleToastTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	contentWidth := max(m.width-sidebarWidth-4, 20)
	m.renderer = backlog.NewRenderer(contentWidth)
	m.viewport = viewport.New(
		viewport.WithWidth(contentWidth),
		viewport.WithHeight(max(m.height-chromeHeight, 5)),
	)
	m.input.SetWidth(max(m.width-sidebarWidth-8, 20))
	m.toastView.SetWidth(m.width)

	m.refreshBacklog()
	return m, nil
}

func (m Model) handleBooksLoaded(msg booksLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Error().Err(msg.err).Msg("failed to load book list")
		m.app.Chat.SetActiveBook("")
		m.toastController.Push(notify.Notification{
			Level:   notify.LevelError,
			Message: "Failed to load books.",
		})
		return m, m.ensureToastTicker()
	}

	m.books = msg.books
	if len(m.books) == 0 {
		return m, nil
	}

	m.bookIdx = 0
	return m, m.activateBook(m.books[0].ID)
}

// activateBook swaps the history store and kicks off the history load.
func (m *Model) activateBook(id chat.BookID) tea.Cmd {
	m.app.Chat.SetActiveBook(id)
	m.entryIdx = 0
	m.expanded = map[chat.EntryID]bool{}
	m.refreshBacklog()
	return loadHistoryCmd(m.app.Chat, m.cfg.Timeout())
}

func (m Model) handleNotifications() (tea.Model, tea.Cmd) {
	for _, n := range m.buffer.Drain() {
		m.toastController.Push(n)
	}
	return m, tea.Batch(m.buffer.WaitForSignal(), m.ensureToastTicker())
}

func (m Model) handleToastTick() (tea.Model, tea.Cmd) {
	m.toastController.Tick(toastTickInterval)
	if m.toastController.HasToasts() {
		return m, scheduleToastTick()
	}
	m.toastController.SetTicking(false)
	return m, nil
}

func (m *Model) ensureToastTicker() tea.Cmd {
	if m.toastController.Ticking() {
		return nil
	}
	m.toastController.SetTicking(true)
	return scheduleToastTick()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if keyStr == keyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}

	if keyStr == "esc" && m.toastController.HasToasts() {
		m.toastController.Dismiss()
		return m, nil
	}

	if keyStr == "tab" {
		m.focus = (m.focus + 1) % 3
		if m.focus == focusInput {
			m.input.Focus()
		} else {
			m.input.Blur()
		}
		return m, nil
	}

	switch m.focus {
	case focusInput:
		return m.handleInputKey(msg, keyStr)
	case focusBacklog:
		return m.handleBacklogKey(msg, keyStr)
	default:
		return m.handleBooksKey(keyStr)
	}
}

func (m Model) handleInputKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyEnter:
		question := strings.TrimSpace(m.input.Value())
		if question == "" {
			return m, nil
		}
		m.input.SetValue("")
		m.lastQuestion = question
		m.pendingAsks++
		// A second submission may be issued before the first resolves;
		// answers land in completion order.
		return m, askCmd(m.app.Chat, question, m.cfg.Timeout())

	case "up":
		// Recall the most recent question into the empty ask bar.
		if m.input.Value() != "" {
			return m, nil
		}
		if entries := m.app.Chat.Entries(); len(entries) > 0 {
			m.input.SetValue(entries[0].Question)
			m.input.CursorEnd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleBacklogKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	entries := m.app.Chat.Entries()

	switch keyStr {
	case "j", "down":
		if m.entryIdx < len(entries)-1 {
			m.entryIdx++
			m.refreshBacklog()
		}
		return m, nil
	case "k", "up":
		if m.entryIdx > 0 {
			m.entryIdx--
			m.refreshBacklog()
		}
		return m, nil
	case keyEnter, "space":
		if m.entryIdx < len(entries) {
			id := entries[m.entryIdx].ID
			m.expanded[id] = !m.expanded[id]
			m.refreshBacklog()
		}
		return m, nil
	case "d":
		if m.entryIdx < len(entries) {
			modal := components.NewConfirmModal("Delete this exchange from the history?")
			m.confirm = &modal
			m.pendingDelete = entries[m.entryIdx].ID
		}
		return m, nil
	case "q":
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleBooksKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "j", "down":
		if m.bookIdx < len(m.books)-1 {
			m.bookIdx++
		}
		return m, nil
	case "k", "up":
		if m.bookIdx > 0 {
			m.bookIdx--
		}
		return m, nil
	case keyEnter:
		if m.bookIdx < len(m.books) {
			return m, m.activateBook(m.books[m.bookIdx].ID)
		}
		return m, nil
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	modal, cmd := m.confirm.Update(msg)
	m.confirm = &modal

	switch {
	case modal.Confirmed():
		id := m.pendingDelete
		m.confirm = nil
		m.pendingDelete = ""
		return m, tea.Batch(cmd, deleteEntryCmd(m.app.Chat, id, m.cfg.Timeout()))
	case modal.Cancelled():
		m.confirm = nil
		m.pendingDelete = ""
	}
	return m, cmd
}

// clampEntryCursor keeps the selection valid after the log shrinks.
func (m *Model) clampEntryCursor() {
	if n := len(m.app.Chat.Entries()); m.entryIdx >= n {
		m.entryIdx = max(n-1, 0)
	}
}

// Quitting reports whether the model exited deliberately.
func (m Model) Quitting() bool {
	return m.quitting
}
