// storefront TUI - terminal client for the storefront inventory and sales API.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/storefront-tui/internal/api"
	"github.com/jeranaias/storefront-tui/internal/auth"
	"github.com/jeranaias/storefront-tui/internal/cli"
	"github.com/jeranaias/storefront-tui/internal/config"
	"github.com/jeranaias/storefront-tui/internal/storage"
	"github.com/jeranaias/storefront-tui/internal/ui/views"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config load failed, using defaults: %v\n", err)
		cfg = config.Default()
	}
	if args.APIURL != "" {
		cfg.API.BaseURL = args.APIURL
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	}
	config.SetGlobal(cfg)

	client, manager, err := buildSession(cfg, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch cmd {
	case cli.CmdTUI:
		runTUI(cfg, client, manager)
	case cli.CmdLogin:
		os.Exit(cli.HandleLogin(manager))
	case cli.CmdLogout:
		os.Exit(cli.HandleLogout(manager))
	case cli.CmdWhoami:
		os.Exit(cli.HandleWhoami(manager, args))
	case cli.CmdStatus:
		os.Exit(cli.HandleStatus(cfg, client, manager, args))
	case cli.CmdConfig:
		os.Exit(cli.HandleConfig(cfg, args))
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		cli.PrintUsage()
		os.Exit(2)
	}
}

// buildSession wires the HTTP client, token store and session manager. The
// manager is installed as the client's token source so every request carries
// the current access token and 401 responses trigger a silent refresh.
func buildSession(cfg *config.Config, args cli.Args) (*api.Client, *auth.Manager, error) {
	var store storage.TokenStore
	if cfg.Session.Persist {
		var err error
		if cfg.Session.TokenPath != "" {
			store, err = storage.NewFileTokenStoreWithDir(cfg.Session.TokenPath)
		} else {
			store, err = storage.NewFileTokenStore()
		}
		if err != nil {
			return nil, nil, fmt.Errorf("token store: %w", err)
		}
	} else {
		store = storage.NewMemoryTokenStore()
	}

	client := api.NewClient(cfg.API.BaseURL).
		WithTimeout(time.Duration(cfg.API.TimeoutSecs) * time.Second).
		WithUserAgent(cfg.API.UserAgent).
		WithQuiet(!args.Verbose)

	manager := auth.NewManager(client, store)
	client.WithTokenSource(manager)

	return client, manager, nil
}

// runTUI starts the full-screen program and a config watcher that pushes
// file changes into the running model.
func runTUI(cfg *config.Config, client *api.Client, manager *auth.Manager) {
	app := views.NewApp(cfg, client, manager)
	program := tea.NewProgram(app, tea.WithAltScreen())

	watcher, err := config.NewWatcher(500*time.Millisecond, func(c *config.Config) {
		program.Send(views.ConfigReloadedMsg{Config: c})
	})
	if err == nil {
		if err := watcher.Watch(); err == nil {
			defer watcher.Close()
		}
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
