// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"
	"sort"

	lipgloss "charm.land/lipgloss/v2"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Notification icons.
const (
	IconNotifyInfo    = "i"
	IconNotifyWarning = "!"
	IconNotifyError   = "✗"
)

// Style exports.
var (
	// Book sidebar.
	SidebarTitleStyle  lipgloss.Style
	BookItemStyle      lipgloss.Style
	BookSelectedStyle  lipgloss.Style
	SidebarBorderStyle lipgloss.Style

	// Chat backlog.
	QuestionStyle     lipgloss.Style
	AnswerErrorStyle  lipgloss.Style
	QuoteStyle        lipgloss.Style
	RefHeaderStyle    lipgloss.Style
	RefContentStyle   lipgloss.Style
	RefHighlightStyle lipgloss.Style
	RefMetaStyle      lipgloss.Style
	EntryCursorStyle  lipgloss.Style

	// Ask bar and chrome.
	AskBarStyle     lipgloss.Style
	HelpStyle       lipgloss.Style
	TextMutedStyle  lipgloss.Style
	TextBoldStyle   lipgloss.Style
	ConfirmMsgStyle lipgloss.Style

	// Toasts.
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
)

func init() {
	Apply(DefaultTheme)
}

// Apply switches the active palette and rebuilds all exported styles.
// Unknown theme names fall back to the default theme.
func Apply(theme string) {
	p, ok := themes[theme]
	if !ok {
		p = themes[DefaultTheme]
	}
	CurrentPalette = p

	SidebarTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	BookItemStyle = lipgloss.NewStyle().Foreground(p.Foreground).PaddingLeft(1)
	BookSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Background).
		Background(p.Primary).PaddingLeft(1)
	SidebarBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), false, true, false, false).
		BorderForeground(p.Surface)

	QuestionStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Secondary)
	AnswerErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	QuoteStyle = lipgloss.NewStyle().Italic(true).Foreground(p.Warning)
	RefHeaderStyle = lipgloss.NewStyle().Foreground(p.Muted).Bold(true)
	RefContentStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	RefHighlightStyle = lipgloss.NewStyle().Foreground(p.Background).Background(p.Warning)
	RefMetaStyle = lipgloss.NewStyle().Foreground(p.Muted)
	EntryCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)

	AskBarStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Padding(0, 1)
	HelpStyle = lipgloss.NewStyle().Foreground(p.Muted)
	TextMutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	TextBoldStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Foreground)
	ConfirmMsgStyle = lipgloss.NewStyle().Foreground(p.Warning)

	toastBase := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	ToastInfoStyle = toastBase.Foreground(p.Background).Background(p.Primary)
	ToastWarningStyle = toastBase.Foreground(p.Background).Background(p.Warning)
	ToastErrorStyle = toastBase.Foreground(p.Background).Background(p.Error)
}

// GlamourStyle returns the markdown style config matching the active palette.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	noMargin := uint(0)
	cfg.Document.Margin = &noMargin
	return cfg
}
