package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pulsefeed/domain"
)

const trendingLimit = 10

type trendingLoadedMsg struct {
	tags []domain.Hashtag
	err  error
}

type searchDoneMsg struct {
	posts []domain.Post
	users []domain.User
	err   error
}

// exploreModel renders trending hashtags and cross-entity search.
type exploreModel struct {
	deps  Deps
	keys  KeyMap
	input textinput.Model

	trending  []domain.Hashtag
	posts     []domain.Post
	users     []domain.User
	searching bool
	err       error
	width     int
}

func newExploreModel(deps Deps) exploreModel {
	in := textinput.New()
	in.Placeholder = "search posts and people"
	in.CharLimit = 80
	return exploreModel{deps: deps, keys: DefaultKeyMap(), input: in}
}

func (m exploreModel) editing() bool { return m.input.Focused() }

func (m exploreModel) Init() tea.Cmd {
	trending := m.deps.Trending
	return func() tea.Msg {
		tags, err := trending.Top(context.Background(), trendingLimit)
		return trendingLoadedMsg{tags: tags, err: err}
	}
}

func (m exploreModel) Update(msg tea.Msg) (exploreModel, tea.Cmd) {
	switch msg := msg.(type) {
	case trendingLoadedMsg:
		m.trending, m.err = msg.tags, msg.err
		return m, nil

	case searchDoneMsg:
		m.searching = false
		m.posts, m.users, m.err = msg.posts, msg.users, msg.err
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.input.Focused() && key.Matches(msg, m.keys.Cancel):
			m.input.Blur()
			return m, nil

		case m.input.Focused() && key.Matches(msg, m.keys.Submit):
			term := strings.TrimSpace(m.input.Value())
			m.input.Blur()
			if term == "" {
				return m, nil
			}
			m.searching = true
			return m, m.search(term)

		case !m.input.Focused() && msg.String() == "/":
			return m, m.input.Focus()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m exploreModel) search(term string) tea.Cmd {
	posts, users := m.deps.Posts, m.deps.Users
	return func() tea.Msg {
		foundPosts, err := posts.Search(context.Background(), term)
		if err != nil {
			return searchDoneMsg{err: err}
		}
		foundUsers, err := users.Search(context.Background(), term)
		if err != nil {
			return searchDoneMsg{err: err}
		}
		return searchDoneMsg{posts: foundPosts, users: foundUsers}
	}
}

func (m exploreModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + m.input.View() + "\n\n")

	b.WriteString(" Trending\n")
	if len(m.trending) == 0 {
		b.WriteString(timestampStyle.Render("  no hashtags yet") + "\n")
	}
	for i, tag := range m.trending {
		b.WriteString(fmt.Sprintf("  %d. %s %s\n",
			i+1,
			hashtagStyle.Render("#"+tag.Name),
			timestampStyle.Render(fmt.Sprintf("%d posts", tag.Count)),
		))
	}

	if m.searching {
		b.WriteString("\n searching...\n")
	}
	if m.err != nil {
		b.WriteString("\n" + errStyle.Render(" "+userFacing(m.err)) + "\n")
	}

	if len(m.users) > 0 {
		b.WriteString("\n People\n")
		for _, u := range m.users {
			b.WriteString("  " + authorStyle.Render(u.DisplayName) +
				timestampStyle.Render(" @"+u.Username) + "\n")
		}
	}
	if len(m.posts) > 0 {
		b.WriteString("\n Posts\n")
		for _, p := range m.posts {
			b.WriteString("  " + contentStyle.Render(truncate(p.Content, m.width-6)) + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("/ search · enter run · tab views"))
	return b.String()
}
