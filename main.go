package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"pulsefeed/app"
	"pulsefeed/infra/config"
	"pulsefeed/infra/repo"
	"pulsefeed/infra/resource"
	"pulsefeed/tui"
)

func main() {
	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	// 2. Build the resource client. The mock dataset is substitutable for
	// the hosted backend without touching any repository.
	var client resource.Client
	switch cfg.Backend {
	case config.BackendHTTP:
		client = resource.NewHTTP(cfg.APIURL, cfg.APIKey)
	default:
		mem := resource.NewMemory(resource.DefaultLatency)
		resource.SeedDemo(mem)
		client = mem
	}

	// 3. Build repositories and coordinators (concrete types satisfy the
	// app.* interfaces).
	posts := repo.NewPosts(client)
	users := repo.NewUsers(client, cfg.UserID)
	notifications := repo.NewNotifications(client)
	messages := repo.NewMessages(client)

	feed := app.NewFeed(posts, cfg.UserID, log)
	inbox := app.NewInbox(notifications, log)
	trending := app.NewTrending(posts)
	highlight := app.NewHighlighter()

	// 4. Wire the root TUI model. Send closes over the program so that
	// background pollers can push messages into the running loop.
	var deepLink string
	if len(os.Args) > 1 {
		deepLink = os.Args[1]
	}
	var program *tea.Program
	rootModel := tui.NewApp(tui.Deps{
		Feed:      feed,
		Inbox:     inbox,
		Trending:  trending,
		Highlight: highlight,
		Posts:     posts,
		Users:     users,
		Messages:  messages,
		Log:       log,
		Send: func(msg tea.Msg) {
			if program != nil {
				program.Send(msg)
			}
		},
		ViewerID:     cfg.UserID,
		PollInterval: cfg.PollInterval,
		DeepLink:     deepLink,
	})

	// 5. Run.
	program = tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "pulsefeed: %v\n", err)
		os.Exit(1)
	}
}
