package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pulsefeed/domain"
)

type inboxLoadedMsg struct{ err error }

type inboxMutatedMsg struct{ err error }

// notifModel renders the notification inbox and drives read-flag mutations
// through the inbox coordinator.
type notifModel struct {
	deps   Deps
	keys   KeyMap
	items  []domain.Notification
	cursor int
	err    error
	status string
	width  int
}

func newNotifModel(deps Deps) notifModel {
	return notifModel{deps: deps, keys: DefaultKeyMap()}
}

func (m notifModel) Init() tea.Cmd {
	inbox := m.deps.Inbox
	return func() tea.Msg {
		return inboxLoadedMsg{err: inbox.Load(context.Background())}
	}
}

func (m notifModel) Update(msg tea.Msg) (notifModel, tea.Cmd) {
	switch msg := msg.(type) {
	case inboxLoadedMsg:
		m.err = msg.err
		m.items = m.deps.Inbox.Items()
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		return m, nil

	case inboxMutatedMsg:
		m.items = m.deps.Inbox.Items()
		if msg.err != nil {
			m.status = errStyle.Render(userFacing(msg.err))
		} else {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Refresh):
			return m, m.Init()
		case key.Matches(msg, m.keys.Read):
			if m.cursor < len(m.items) {
				id := m.items[m.cursor].ID
				inbox := m.deps.Inbox
				return m, func() tea.Msg {
					return inboxMutatedMsg{err: inbox.MarkRead(context.Background(), id)}
				}
			}
		case key.Matches(msg, m.keys.ReadAll):
			inbox := m.deps.Inbox
			return m, func() tea.Msg {
				return inboxMutatedMsg{err: inbox.MarkAllRead(context.Background())}
			}
		}
	}
	return m, nil
}

func (m notifModel) View() string {
	if m.err != nil {
		return "\n" + errStyle.Render(" could not load notifications: "+userFacing(m.err))
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, n := range m.items {
		line := "  " + describeNotification(n)
		if !n.IsRead {
			line = badgeStyle.Render("• ") + line[2:]
		}
		line += " " + timestampStyle.Render(relativeTime(n.Timestamp))
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if len(m.items) == 0 {
		b.WriteString("  all caught up\n")
	}
	b.WriteString("\n" + helpStyle.Render("m mark read · M mark all read · r refresh · tab views"))
	if m.status != "" {
		b.WriteString("\n" + m.status)
	}
	return b.String()
}

func describeNotification(n domain.Notification) string {
	who := n.FromUser
	if who == "" {
		who = n.FromUserID
	}
	switch n.Type {
	case domain.NotificationLike:
		return authorStyle.Render(who) + " liked your post"
	case domain.NotificationComment:
		return authorStyle.Render(who) + " commented on your post"
	case domain.NotificationFollow:
		return authorStyle.Render(who) + " started following you"
	default:
		return authorStyle.Render(who) + " " + string(n.Type)
	}
}
