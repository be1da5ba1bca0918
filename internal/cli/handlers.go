// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// handlers.go - Non-interactive command implementations.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/storefront-tui/internal/api"
	"github.com/jeranaias/storefront-tui/internal/auth"
	"github.com/jeranaias/storefront-tui/internal/config"
	"github.com/jeranaias/storefront-tui/internal/model"
	"github.com/jeranaias/storefront-tui/internal/ui/styles"
)

// commandTimeout bounds every headless command's network work.
const commandTimeout = 30 * time.Second

// =============================================================================
// LOGIN / LOGOUT
// =============================================================================

// HandleLogin prompts for credentials and signs in. The session persists for
// later commands and TUI runs.
func HandleLogin(manager *auth.Manager) int {
	if err := RequiresTTY("log in"); err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	// Resume first so an already-valid session short-circuits.
	manager.Bootstrap(ctx)
	if s := manager.Session(); s.Authenticated && s.User != nil {
		fmt.Println(styles.RenderInfo("already signed in as " + s.User.DisplayName()))
		return 0
	}

	email, err := ReadLine("Email: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("could not read input"))
		return 1
	}
	password, err := ReadPassword("Password: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("could not read password"))
		return 1
	}

	if err := manager.Login(ctx, model.Credentials{Email: email, Password: password}); err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(loginFailureText(err)))
		return 1
	}

	s := manager.Session()
	name := email
	if s.User != nil {
		name = s.User.DisplayName()
	}
	fmt.Println(styles.RenderSuccess("signed in as " + name))
	return 0
}

// loginFailureText maps a login error to user-facing text.
func loginFailureText(err error) string {
	switch {
	case api.IsUnauthorized(err):
		return "invalid email or password"
	case api.IsNotConfigured(err):
		return "no server configured; run: storefront config set api.base_url URL"
	}
	return "login failed: " + err.Error()
}

// HandleLogout signs out and clears the stored session.
func HandleLogout(manager *auth.Manager) int {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	manager.Bootstrap(ctx)
	if !manager.Session().Authenticated {
		fmt.Println(styles.RenderInfo("not signed in"))
		return 0
	}

	manager.Logout(ctx)
	fmt.Println(styles.RenderSuccess("signed out"))
	return 0
}

// =============================================================================
// WHOAMI
// =============================================================================

// HandleWhoami prints the signed-in account.
func HandleWhoami(manager *auth.Manager, args Args) int {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	manager.Bootstrap(ctx)
	s := manager.Session()

	if !s.Authenticated || s.User == nil {
		if args.JSON {
			printJSON(map[string]any{"authenticated": false})
			return 1
		}
		fmt.Println(styles.RenderWarning("not signed in; run: storefront login"))
		return 1
	}

	if args.JSON {
		printJSON(map[string]any{
			"authenticated": true,
			"id":            s.User.ID,
			"username":      s.User.Username,
			"email":         s.User.Email,
			"name":          s.User.DisplayName(),
			"role":          string(s.User.Role),
		})
		return 0
	}

	fmt.Printf("%s <%s>\n", s.User.DisplayName(), s.User.Email)
	fmt.Printf("  Username: %s\n", s.User.Username)
	fmt.Printf("  Role:     %s\n", s.User.Role.DisplayName())
	return 0
}

// =============================================================================
// STATUS
// =============================================================================

// HandleStatus prints client configuration and server reachability.
func HandleStatus(cfg *config.Config, client *api.Client, manager *auth.Manager, args Args) int {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	manager.Bootstrap(ctx)
	s := manager.Session()

	serverOK := false
	var serverErr string
	if client.IsConfigured() {
		if _, err := client.ListStores(ctx, model.ListOptions{PageSize: 5}); err == nil {
			serverOK = true
		} else if api.IsUnauthorized(err) {
			// Reachable; just needs a session.
			serverOK = true
		} else {
			serverErr = err.Error()
		}
	}

	// Ask the server whether the stored access token is still accepted.
	tokenValid := false
	if serverOK && s.Authenticated {
		if err := client.Verify(ctx, manager.AccessToken()); err == nil {
			tokenValid = true
		}
	}

	if args.JSON {
		out := map[string]any{
			"version":       Version,
			"server":        cfg.API.BaseURL,
			"configured":    client.IsConfigured(),
			"reachable":     serverOK,
			"authenticated": s.Authenticated,
		}
		if s.User != nil {
			out["user"] = s.User.Username
		}
		if s.Authenticated {
			out["token_valid"] = tokenValid
		}
		printJSON(out)
		if !serverOK && client.IsConfigured() {
			return 1
		}
		return 0
	}

	fmt.Printf("storefront %s\n\n", Version)

	if !client.IsConfigured() {
		fmt.Println(styles.RenderWarning("no server configured"))
		fmt.Println("  run: storefront config set api.base_url URL")
		return 1
	}
	fmt.Printf("  Server: %s\n", cfg.API.BaseURL)
	if serverOK {
		fmt.Println("  " + styles.RenderSuccess("server reachable"))
	} else {
		fmt.Println("  " + styles.RenderError("server unreachable: "+serverErr))
	}

	if s.Authenticated && s.User != nil {
		fmt.Println("  " + styles.RenderSuccess("signed in as "+s.User.DisplayName()))
		if tokenValid {
			fmt.Println("  " + styles.RenderSuccess("access token accepted by server"))
		} else if serverOK {
			fmt.Println("  " + styles.RenderWarning("access token rejected by server"))
		}
	} else {
		fmt.Println("  " + styles.RenderInfo("not signed in"))
	}

	if !serverOK {
		return 1
	}
	return 0
}

// =============================================================================
// CONFIG
// =============================================================================

// HandleConfig implements the config subcommands: show, get, set, path.
func HandleConfig(cfg *config.Config, args Args) int {
	switch args.Subcommand {
	case "", "show":
		if args.JSON {
			printJSON(cfg)
			return 0
		}
		for _, key := range config.Keys() {
			val, _ := cfg.Get(key)
			fmt.Printf("  %-22s %s\n", key, val)
		}
		return 0

	case "get":
		if args.ConfigKey == "" {
			fmt.Fprintln(os.Stderr, styles.RenderError("usage: storefront config get KEY"))
			return 1
		}
		val, err := cfg.Get(args.ConfigKey)
		if err != nil {
			fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
			return 1
		}
		fmt.Println(val)
		return 0

	case "set":
		if args.ConfigKey == "" || args.ConfigVal == "" {
			fmt.Fprintln(os.Stderr, styles.RenderError("usage: storefront config set KEY VALUE"))
			return 1
		}
		if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
			fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
			return 1
		}
		if err := config.Save(cfg); err != nil {
			fmt.Fprintln(os.Stderr, styles.RenderError("could not save config: "+err.Error()))
			return 1
		}
		fmt.Println(styles.RenderSuccess(args.ConfigKey + " = " + args.ConfigVal))
		return 0

	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
			return 1
		}
		fmt.Println(path)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args.Subcommand)
		return 1
	}
}

// printJSON writes a value as indented JSON to stdout.
func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("could not encode JSON"))
		return
	}
	fmt.Println(string(data))
}
