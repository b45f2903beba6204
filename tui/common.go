package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func fmtCount(label string, n int) string {
	return fmt.Sprintf("%s (%d)", label, n)
}

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit     key.Binding
	NextTab  key.Binding
	Refresh  key.Binding
	Up       key.Binding
	Down     key.Binding
	Like     key.Binding
	New      key.Binding // n — compose a post / message
	Comment  key.Binding // c — comment on the selected post
	Read     key.Binding // m — mark selected notification read
	ReadAll  key.Binding // M — mark all notifications read
	Delete   key.Binding // d — delete own post
	Submit   key.Binding
	Cancel   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Like:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "like")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Comment: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comment")),
		Read:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mark read")),
		ReadAll: key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "mark all read")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF79C6")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#CAD3F5")).
			Background(lipgloss.Color("#363A4F")).
			Padding(0, 1)

	authorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	contentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	hashtagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95"))

	selectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF79C6")).
			Padding(0, 1)

	unselectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#363A4F")).
			Padding(0, 1)

	highlightStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#EED49F")).
			Padding(0, 1)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796"))

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EED49F"))

	onlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5B6078")).
			Padding(0, 1)
)
