package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/librarian/internal/core/styles"
)

// refreshBacklog re-renders the history into the viewport, keeping the
// newest entry at the top like the backlog the service returns.
func (m *Model) refreshBacklog() {
	entries := m.app.Chat.Entries()
	if len(entries) == 0 {
		m.viewport.SetContent(styles.TextMutedStyle.Render("No questions asked yet."))
		return
	}

	var b strings.Builder
	for i, e := range entries {
		selected := m.focus == focusBacklog && i == m.entryIdx
		b.WriteString(m.renderer.Entry(e, selected, m.expanded[e.ID]))
		if i < len(entries)-1 {
			b.WriteString("\n")
		}
	}
	m.viewport.SetContent(b.String())
}

// View renders the full frame: sidebar, backlog, ask bar, toasts.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderSidebar(),
		lipgloss.JoinVertical(
			lipgloss.Left,
			m.viewport.View(),
			m.renderAskBar(),
			m.renderHelp(),
		),
	)

	if m.confirm != nil {
		main = overlayCenter(main, m.confirm.View(), m.width, m.height)
	}

	return tea.NewView(m.toastView.Overlay(main, m.width, m.height))
}

func (m Model) renderSidebar() string {
	var b strings.Builder
	b.WriteString(styles.SidebarTitleStyle.Render("Books"))
	b.WriteString("\n\n")

	if len(m.books) == 0 {
		b.WriteString(styles.TextMutedStyle.Render("no books"))
	}

	active := m.app.Chat.ActiveBook()
	for i, book := range m.books {
		title := ansi.Truncate(book.Title, sidebarWidth-3, "…")
		switch {
		case book.ID == active:
			b.WriteString(styles.BookSelectedStyle.Render(title))
		case m.focus == focusBooks && i == m.bookIdx:
			b.WriteString(styles.EntryCursorStyle.Render("> " + title))
		default:
			b.WriteString(styles.BookItemStyle.Render(title))
		}
		b.WriteString("\n")
	}

	return styles.SidebarBorderStyle.
		Width(sidebarWidth).
		Height(max(m.height-2, 1)).
		Render(b.String())
}

func (m Model) renderAskBar() string {
	prompt := m.input.View()
	if m.pendingAsks > 0 {
		prompt = prompt + " " + m.spinner.View() +
			styles.TextMutedStyle.Render(" waiting for the librarian…")
	}
	return styles.AskBarStyle.Width(max(m.width-sidebarWidth-4, 20)).Render(prompt)
}

func (m Model) renderHelp() string {
	var hints []string
	switch m.focus {
	case focusInput:
		hints = []string{"enter ask", "↑ recall last", "tab focus backlog"}
	case focusBacklog:
		hints = []string{"j/k select", "enter expand refs", "d delete", "tab focus books", "q quit"}
	default:
		hints = []string{"j/k select", "enter open book", "tab focus input", "q quit"}
	}
	return styles.HelpStyle.Render(strings.Join(hints, " · "))
}

// overlayCenter composites content centered over background.
func overlayCenter(background, content string, width, height int) string {
	bgLayer := lipgloss.NewLayer(background)
	fgLayer := lipgloss.NewLayer(content)

	x := max((width-lipgloss.Width(content))/2, 0)
	y := max((height-lipgloss.Height(content))/2, 0)
	fgLayer.X(x).Y(y).Z(1)

	return lipgloss.NewCompositor(bgLayer, fgLayer).Render()
}
