// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for the storefront client.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdWhoami
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool
	APIURL  string

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `storefront - terminal client for the Storefront API

Browse the catalog, stores, and till transactions of a storefront server
from the terminal.

Usage:
  storefront                 Start TUI (default)
  storefront login           Sign in and store the session
  storefront logout          Sign out and clear stored tokens
  storefront whoami          Show the signed-in account
  storefront status          Show client and server status
  storefront config [show|get KEY|set KEY VALUE|path]
                             Inspect or change configuration
  storefront version         Show version information
  storefront help            Show this help

Global flags:
  --api-url URL              Override the configured server URL
  --json                     Machine-readable output where supported
  --quiet, -q                Suppress request logging
  --verbose, -v              Log requests and responses
  --help, -h                 Show this help
  --version                  Show version information

Environment:
  STOREFRONT_API_URL         Server URL override
  STOREFRONT_PAGE_SIZE       Default table page size (5, 10, 20, 50, 100)
  STOREFRONT_THEME           auto, dark, or light
  NO_COLOR                   Disable colored output

Version: %s
`

// PrintUsage prints the top-level usage text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("storefront version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given argument list. Split out for tests.
func ParseArgs(args []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(args)

	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsed

	case "login":
		return CmdLogin, parsed

	case "logout":
		return CmdLogout, parsed

	case "whoami", "me":
		return CmdWhoami, parsed

	case "status", "s":
		return CmdStatus, parsed

	case "config":
		parseConfigArgs(&parsed, remaining)
		return CmdConfig, parsed

	case "version", "--version", "-V":
		return CmdVersion, parsed

	case "help", "--help", "-h":
		return CmdHelp, parsed

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		return CmdHelp, parsed
	}
}

// parseGlobalFlags extracts global flags and returns the rest.
func parseGlobalFlags(args []string) ([]string, Args) {
	var parsed Args
	var remaining []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--quiet", "-q":
			parsed.Quiet = true
		case "--verbose", "-v":
			parsed.Verbose = true
		case "--json":
			parsed.JSON = true
		case "--api-url":
			if i+1 < len(args) {
				i++
				parsed.APIURL = args[i]
			}
		case "--help", "-h":
			remaining = append(remaining, "help")
		case "--version":
			remaining = append(remaining, "version")
		default:
			if strings.HasPrefix(arg, "--api-url=") {
				parsed.APIURL = strings.TrimPrefix(arg, "--api-url=")
				continue
			}
			remaining = append(remaining, arg)
		}
	}
	return remaining, parsed
}

// parseConfigArgs parses the config subcommand and its key/value.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) == 0 {
		args.Subcommand = "show"
		return
	}
	args.Subcommand = strings.ToLower(remaining[0])
	if len(remaining) > 1 {
		args.ConfigKey = remaining[1]
	}
	if len(remaining) > 2 {
		args.ConfigVal = strings.Join(remaining[2:], " ")
	}
}
