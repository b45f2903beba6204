package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Backend selects the resource client implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendHTTP   Backend = "http"
)

// Config holds application-level configuration.
type Config struct {
	Backend      Backend       // Which resource client to build
	APIURL       string        // Record backend base URL (http backend only)
	APIKey       string        // Project key sent with each request
	UserID       string        // Viewing user's ID
	PollInterval time.Duration // Conversation refresh cadence
}

// Load reads configuration from environment variables.
//
//	PULSEFEED_BACKEND   — "memory" or "http" (default: "memory")
//	PULSEFEED_API_URL   — backend base URL, https only (required for http)
//	PULSEFEED_API_KEY   — project key (required for http)
//	PULSEFEED_USER      — viewing user ID (default: "u1")
//	PULSEFEED_POLL      — poll interval, e.g. "3s" (default: "3s")
func Load() (Config, error) {
	backend := Backend(strings.ToLower(os.Getenv("PULSEFEED_BACKEND")))
	if backend == "" {
		backend = BackendMemory
	}
	if backend != BackendMemory && backend != BackendHTTP {
		return Config{}, fmt.Errorf("invalid PULSEFEED_BACKEND %q: must be memory or http", backend)
	}

	apiURL := os.Getenv("PULSEFEED_API_URL")
	apiKey := os.Getenv("PULSEFEED_API_KEY")
	if backend == BackendHTTP {
		parsed, err := url.Parse(apiURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return Config{}, fmt.Errorf("invalid PULSEFEED_API_URL: must be an absolute URL")
		}
		if parsed.Scheme != "https" {
			return Config{}, fmt.Errorf("invalid PULSEFEED_API_URL: only https is allowed")
		}
		apiURL = strings.TrimRight(parsed.String(), "/")
		if apiKey == "" {
			return Config{}, fmt.Errorf("PULSEFEED_API_KEY is required for the http backend")
		}
	}

	userID := os.Getenv("PULSEFEED_USER")
	if userID == "" {
		userID = "u1"
	}

	poll := 3 * time.Second
	if raw := os.Getenv("PULSEFEED_POLL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("invalid PULSEFEED_POLL %q: must be a positive duration", raw)
		}
		poll = parsed
	}

	return Config{
		Backend:      backend,
		APIURL:       apiURL,
		APIKey:       apiKey,
		UserID:       userID,
		PollInterval: poll,
	}, nil
}
