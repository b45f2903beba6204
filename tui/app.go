package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"pulsefeed/app"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI
// container.
type Deps struct {
	Feed      *app.Feed
	Inbox     *app.Inbox
	Trending  *app.Trending
	Highlight *app.Highlighter
	Posts     app.PostService
	Users     app.UserService
	Messages  app.MessageService
	Log       *logrus.Logger

	// Send delivers a message into the running program from outside the
	// Update loop. Background pollers use it to push refreshed state.
	Send func(tea.Msg)

	ViewerID     string
	PollInterval time.Duration
	DeepLink     string // Optional startup URL carrying a postId parameter
}

type activeTab int

const (
	feedTab activeTab = iota
	exploreTab
	notifTab
	chatTab
	tabCount
)

var tabNames = [tabCount]string{"Feed", "Explore", "Notifications", "Chat"}

// App is the root Bubble Tea model. It routes between the tab views.
type App struct {
	deps   Deps
	active activeTab
	keys   KeyMap
	width  int
	height int

	feed    feedModel
	explore exploreModel
	notif   notifModel
	chat    chatModel
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps:    deps,
		keys:    DefaultKeyMap(),
		feed:    newFeedModel(deps),
		explore: newExploreModel(deps),
		notif:   newNotifModel(deps),
		chat:    newChatModel(deps),
	}
}

// Init starts the initial feed fetch and processes any deep link.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.feed.Init(),
		a.notif.Init(),
	)
}

// Update handles messages and routes to the active tab.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.feed.width = msg.Width
		a.explore.width = msg.Width
		a.notif.width = msg.Width
		a.chat.width = msg.Width

	case tea.KeyMsg:
		if a.editing() {
			break
		}
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.NextTab):
			a.active = (a.active + 1) % tabCount
			return a, a.enterTab()
		}
	}

	var cmd tea.Cmd
	switch a.active {
	case feedTab:
		a.feed, cmd = a.feed.Update(msg)
	case exploreTab:
		a.explore, cmd = a.explore.Update(msg)
	case notifTab:
		a.notif, cmd = a.notif.Update(msg)
	case chatTab:
		a.chat, cmd = a.chat.Update(msg)
	}
	return a, cmd
}

// enterTab kicks off the fetch a tab needs when it becomes active.
func (a *App) enterTab() tea.Cmd {
	switch a.active {
	case exploreTab:
		return a.explore.Init()
	case notifTab:
		return a.notif.Init()
	case chatTab:
		return a.chat.Init()
	}
	return nil
}

// editing reports whether the active tab has a focused text input, so that
// global bindings don't swallow typed characters.
func (a App) editing() bool {
	switch a.active {
	case feedTab:
		return a.feed.editing()
	case exploreTab:
		return a.explore.editing()
	case chatTab:
		return a.chat.editing()
	}
	return false
}

// View renders the tab bar and the active view.
func (a App) View() string {
	var tabs []string
	for i := activeTab(0); i < tabCount; i++ {
		label := tabNames[i]
		if i == notifTab {
			if unread := a.deps.Inbox.Unread(); unread > 0 {
				label = badgeStyle.Render(fmtCount(label, unread))
			}
		}
		if i == a.active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("pulsefeed"),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)

	var body string
	switch a.active {
	case feedTab:
		body = a.feed.View()
	case exploreTab:
		body = a.explore.View()
	case notifTab:
		body = a.notif.View()
	case chatTab:
		body = a.chat.View()
	}

	return header + "\n" + body
}
