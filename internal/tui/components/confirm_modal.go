// Package components holds small reusable TUI widgets.
package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/librarian/internal/core/styles"
)

type answer int

const (
	answerPending answer = iota
	answerYes
	answerNo
)

// ConfirmModal is a yes/no prompt. It resolves exactly once; further keys are
// ignored until the caller reads the answer and discards the modal.
type ConfirmModal struct {
	message string
	result  answer
}

func NewConfirmModal(message string) ConfirmModal {
	return ConfirmModal{message: message}
}

// Update resolves the modal on y/enter (confirm) or n/esc (cancel). Anything
// else is ignored so a stray keypress cannot dismiss the prompt.
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.result != answerPending {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.result = answerYes
	case "n", "N", "esc":
		m.result = answerNo
	}

	return m, nil
}

// View renders the message with keybinding hints.
func (m ConfirmModal) View() string {
	message := styles.ConfirmMsgStyle.Render(m.message)
	hints := styles.TextBoldStyle.Render("y") + styles.HelpStyle.Render(" confirm") +
		styles.HelpStyle.Render(" · ") +
		styles.TextBoldStyle.Render("n") + styles.HelpStyle.Render(" cancel")

	return message + "\n" + hints
}

// Confirmed reports whether the user answered yes.
func (m ConfirmModal) Confirmed() bool {
	return m.result == answerYes
}

// Cancelled reports whether the user answered no.
func (m ConfirmModal) Cancelled() bool {
	return m.result == answerNo
}
