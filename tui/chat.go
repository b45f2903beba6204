package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pulsefeed/app"
	"pulsefeed/domain"
)

type conversationsLoadedMsg struct {
	convs []domain.Conversation
	err   error
}

type conversationOpenedMsg struct{ err error }

type chatRefreshedMsg struct{}

type chatSentMsg struct{ err error }

// chatModel renders the conversation list and one active conversation. The
// active conversation refreshes through a background Poller whose ticks are
// bridged into the program via Deps.Send; leaving the view cancels it.
type chatModel struct {
	deps  Deps
	keys  KeyMap
	input textinput.Model

	convs    []domain.Conversation
	cursor   int
	active   *app.Chat
	stopPoll context.CancelFunc
	items    []app.ChatMessage
	err      error
	status   string
	width    int
}

func newChatModel(deps Deps) chatModel {
	in := textinput.New()
	in.Placeholder = "type a message"
	in.CharLimit = 500
	return chatModel{deps: deps, keys: DefaultKeyMap(), input: in}
}

func (m chatModel) editing() bool { return m.input.Focused() }

func (m chatModel) Init() tea.Cmd {
	messages, viewer := m.deps.Messages, m.deps.ViewerID
	return func() tea.Msg {
		convs, err := messages.Conversations(context.Background(), viewer)
		return conversationsLoadedMsg{convs: convs, err: err}
	}
}

// startPoll runs the conversation refresh on the poll interval. The poller
// logs failed ticks itself; only successful refreshes are pushed into the
// program.
func (m *chatModel) startPoll() {
	chat, send := m.active, m.deps.Send
	m.stopPoll = app.NewPoller(m.deps.PollInterval, func(ctx context.Context) error {
		if err := chat.Refresh(ctx); err != nil {
			return err
		}
		send(chatRefreshedMsg{})
		return nil
	}, m.deps.Log).Run(context.Background())
}

func (m chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case conversationsLoadedMsg:
		m.convs, m.err = msg.convs, msg.err
		if m.cursor >= len(m.convs) {
			m.cursor = 0
		}
		return m, nil

	case conversationOpenedMsg:
		if msg.err != nil {
			m.status = errStyle.Render(userFacing(msg.err))
			return m, nil
		}
		m.items = m.active.Items()
		m.startPoll()
		return m, nil

	case chatRefreshedMsg:
		if m.active != nil {
			m.items = m.active.Items()
		}
		return m, nil

	case chatSentMsg:
		if m.active != nil {
			m.items = m.active.Items()
		}
		if msg.err != nil {
			m.status = errStyle.Render(userFacing(msg.err))
		} else {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.active != nil {
			return m.updateConversation(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m chatModel) updateList(msg tea.KeyMsg) (chatModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.convs)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.Init()
	case key.Matches(msg, m.keys.Submit):
		if m.cursor < len(m.convs) {
			other := m.convs[m.cursor].OtherUserID
			m.active = app.NewChat(m.deps.Messages, m.deps.Users, m.deps.ViewerID, other, m.deps.Log)
			chat := m.active
			return m, tea.Batch(m.input.Focus(), func() tea.Msg {
				return conversationOpenedMsg{err: chat.Load(context.Background())}
			})
		}
	}
	return m, nil
}

func (m chatModel) updateConversation(msg tea.KeyMsg) (chatModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		// Teardown: cancelling the poller releases its ticker, so no
		// timer outlives the view.
		if m.stopPoll != nil {
			m.stopPoll()
			m.stopPoll = nil
		}
		m.active = nil
		m.items = nil
		m.input.Blur()
		return m, m.Init()

	case key.Matches(msg, m.keys.Submit):
		content := strings.TrimSpace(m.input.Value())
		if content == "" {
			return m, nil
		}
		m.input.Reset()
		chat := m.active
		return m, func() tea.Msg {
			_, err := chat.Send(context.Background(), content)
			return chatSentMsg{err: err}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) View() string {
	if m.active != nil {
		return m.viewConversation()
	}
	return m.viewList()
}

func (m chatModel) viewList() string {
	if m.err != nil {
		return "\n" + errStyle.Render(" could not load conversations: "+userFacing(m.err))
	}
	var b strings.Builder
	b.WriteString("\n")
	for i, c := range m.convs {
		line := "  " + authorStyle.Render(c.OtherUserID)
		if c.LastMessage != nil {
			line += " " + contentStyle.Render(truncate(c.LastMessage.Content, m.width-20))
		}
		if c.UnreadCount > 0 {
			line += " " + badgeStyle.Render(fmtCount("unread", c.UnreadCount))
		}
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if len(m.convs) == 0 {
		b.WriteString("  no conversations yet\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter open · r refresh · tab views"))
	return b.String()
}

func (m chatModel) viewConversation() string {
	var b strings.Builder
	presence := timestampStyle.Render("offline")
	if m.active.Online() {
		presence = onlineStyle.Render("online")
	}
	b.WriteString("\n " + authorStyle.Render(m.active.OtherID()) + " " + presence + "\n\n")

	for _, item := range m.items {
		prefix := "  "
		if item.Message.SenderID == m.deps.ViewerID {
			prefix = "  you: "
		}
		line := prefix + contentStyle.Render(item.Message.Content)
		switch item.Status {
		case app.StatusPending:
			line += " " + timestampStyle.Render("(sending...)")
		case app.StatusRolledBack:
			line += " " + errStyle.Render("(failed)")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n " + m.input.View() + "\n")
	b.WriteString(helpStyle.Render("enter send · esc back"))
	if m.status != "" {
		b.WriteString("\n" + m.status)
	}
	return b.String()
}
