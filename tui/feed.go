package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"pulsefeed/app"
)

const feedPageSize = 50

type feedLoadedMsg struct{ err error }

type feedMutatedMsg struct{ err error }

type highlightTickMsg struct{}

type composeTarget int

const (
	composeNone composeTarget = iota
	composePost
	composeComment
)

// feedModel renders the home feed and drives post mutations through the
// feed coordinator.
type feedModel struct {
	deps    Deps
	keys    KeyMap
	spinner spinner.Model

	items   []app.FeedItem
	cursor  int
	loading bool
	err     error
	status  string
	width   int

	compose composeTarget
	input   textarea.Model
}

func newFeedModel(deps Deps) feedModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF79C6"))

	ta := textarea.New()
	ta.SetHeight(3)
	ta.CharLimit = 500

	return feedModel{
		deps:    deps,
		keys:    DefaultKeyMap(),
		spinner: s,
		loading: true,
		input:   ta,
	}
}

func (m feedModel) editing() bool { return m.compose != composeNone }

// Init processes the startup deep link and fetches the feed.
func (m feedModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetch(), m.spinner.Tick}
	if m.deps.DeepLink != "" {
		if _, ok := m.deps.Highlight.FromURL(m.deps.DeepLink); ok {
			cmds = append(cmds, highlightTick())
		}
	}
	return tea.Batch(cmds...)
}

func (m feedModel) fetch() tea.Cmd {
	feed := m.deps.Feed
	return func() tea.Msg {
		return feedLoadedMsg{err: feed.Load(context.Background(), feedPageSize, 0)}
	}
}

func highlightTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return highlightTickMsg{}
	})
}

func (m feedModel) Update(msg tea.Msg) (feedModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.loading {
			return m, cmd
		}
		return m, nil

	case feedLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.items = m.deps.Feed.Items()
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		return m, nil

	case feedMutatedMsg:
		m.items = m.deps.Feed.Items()
		if msg.err != nil {
			m.status = errStyle.Render(userFacing(msg.err))
		} else {
			m.status = ""
		}
		if m.cursor >= len(m.items) && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case highlightTickMsg:
		if m.deps.Highlight.Active() != "" {
			return m, highlightTick()
		}
		return m, nil

	case tea.KeyMsg:
		if m.compose != composeNone {
			return m.updateCompose(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m feedModel) updateBrowse(msg tea.KeyMsg) (feedModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, tea.Batch(m.fetch(), m.spinner.Tick)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Like):
		if m.cursor < len(m.items) {
			id := m.items[m.cursor].Post.ID
			feed := m.deps.Feed
			// Optimistic flip shows up on the next snapshot.
			return m, func() tea.Msg {
				return feedMutatedMsg{err: feed.ToggleLike(context.Background(), id)}
			}
		}

	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(m.items) && m.items[m.cursor].Post.AuthorID == m.deps.ViewerID {
			id := m.items[m.cursor].Post.ID
			feed := m.deps.Feed
			return m, func() tea.Msg {
				return feedMutatedMsg{err: feed.DeletePost(context.Background(), id)}
			}
		}

	case key.Matches(msg, m.keys.New):
		m.compose = composePost
		m.input.Reset()
		m.input.Placeholder = "What's happening? Use #hashtags"
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Comment):
		if m.cursor < len(m.items) {
			m.compose = composeComment
			m.input.Reset()
			m.input.Placeholder = "Write a comment"
			return m, m.input.Focus()
		}
	}
	return m, nil
}

func (m feedModel) updateCompose(msg tea.KeyMsg) (feedModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.compose = composeNone
		m.input.Blur()
		return m, nil

	case msg.Type == tea.KeyCtrlD:
		content := strings.TrimSpace(m.input.Value())
		target := m.compose
		m.compose = composeNone
		m.input.Blur()
		if content == "" {
			return m, nil
		}
		feed := m.deps.Feed
		if target == composePost {
			return m, func() tea.Msg {
				_, err := feed.CreatePost(context.Background(), content, "")
				return feedMutatedMsg{err: err}
			}
		}
		postID := m.items[m.cursor].Post.ID
		return m, func() tea.Msg {
			_, err := feed.AddComment(context.Background(), postID, content)
			return feedMutatedMsg{err: err}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m feedModel) View() string {
	if m.loading {
		return "\n " + m.spinner.View() + " loading feed..."
	}
	if m.err != nil {
		return "\n" + errStyle.Render(" could not load the feed: "+userFacing(m.err))
	}

	var b strings.Builder
	highlighted := m.deps.Highlight.Active()
	for i, item := range m.items {
		b.WriteString(m.renderPost(item, i == m.cursor, item.Post.ID == highlighted))
		b.WriteString("\n")
	}
	if len(m.items) == 0 {
		b.WriteString("\n  nothing here yet — press n to post\n")
	}

	if m.compose != composeNone {
		b.WriteString("\n" + m.input.View() + "\n")
		b.WriteString(helpStyle.Render("ctrl+d send · esc cancel"))
	} else {
		b.WriteString(helpStyle.Render("l like · c comment · n new post · d delete · r refresh · tab views · q quit"))
	}
	if m.status != "" {
		b.WriteString("\n" + m.status)
	}
	return b.String()
}

func (m feedModel) renderPost(item app.FeedItem, selected, highlighted bool) string {
	p := item.Post

	header := authorStyle.Render(displayAuthor(p.Author, p.AuthorID)) + " " +
		timestampStyle.Render(relativeTime(p.CreatedAt))
	switch item.Status {
	case app.StatusPending:
		header += " " + timestampStyle.Render("(sending...)")
	case app.StatusRolledBack:
		header += " " + errStyle.Render("(failed)")
	}

	content := contentStyle.Render(truncate(p.Content, m.width-8))

	likeMark := "♡"
	if p.LikedBy(m.deps.ViewerID) {
		likeMark = "♥"
	}
	footer := fmt.Sprintf("%s %d  💬 %d", likeMark, len(p.Likes), len(p.Comments))
	if len(p.Hashtags) > 0 {
		footer += "  " + hashtagStyle.Render("#"+strings.Join(p.Hashtags, " #"))
	}

	card := header + "\n" + content + "\n" + timestampStyle.Render(footer)
	switch {
	case highlighted:
		return highlightStyle.Render(card)
	case selected:
		return selectedStyle.Render(card)
	default:
		return unselectedStyle.Render(card)
	}
}

func displayAuthor(author, authorID string) string {
	if author != "" {
		return author
	}
	return authorID
}

func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width <= 0 {
		width = 80
	}
	return ansi.Truncate(s, width, "…")
}

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("Jan 2")
	}
}

// userFacing keeps backend detail out of the status line.
func userFacing(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, ':'); i > 0 && len(msg) > 60 {
		msg = msg[:i]
	}
	return msg
}
