// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"
)

func TestParseArgsDefaultsToTUI(t *testing.T) {
	cmd, _ := ParseArgs(nil)
	if cmd != CmdTUI {
		t.Errorf("no args = command %d, want CmdTUI", cmd)
	}
}

func TestParseArgsCommands(t *testing.T) {
	tests := []struct {
		args []string
		want Command
	}{
		{[]string{"tui"}, CmdTUI},
		{[]string{"login"}, CmdLogin},
		{[]string{"logout"}, CmdLogout},
		{[]string{"whoami"}, CmdWhoami},
		{[]string{"me"}, CmdWhoami},
		{[]string{"status"}, CmdStatus},
		{[]string{"s"}, CmdStatus},
		{[]string{"config"}, CmdConfig},
		{[]string{"version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"--help"}, CmdHelp},
		{[]string{"--version"}, CmdVersion},
		{[]string{"frobnicate"}, CmdHelp},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			cmd, _ := ParseArgs(tt.args)
			if cmd != tt.want {
				t.Errorf("ParseArgs(%v) = %d, want %d", tt.args, cmd, tt.want)
			}
		})
	}
}

func TestParseArgsGlobalFlags(t *testing.T) {
	cmd, args := ParseArgs([]string{"--json", "-q", "--api-url", "https://x.test/api", "whoami"})
	if cmd != CmdWhoami {
		t.Fatalf("command = %d, want CmdWhoami", cmd)
	}
	if !args.JSON || !args.Quiet {
		t.Errorf("flags not parsed: %+v", args)
	}
	if args.APIURL != "https://x.test/api" {
		t.Errorf("APIURL = %q", args.APIURL)
	}
}

func TestParseArgsAPIURLEquals(t *testing.T) {
	_, args := ParseArgs([]string{"--api-url=https://y.test", "status"})
	if args.APIURL != "https://y.test" {
		t.Errorf("APIURL = %q, want https://y.test", args.APIURL)
	}
}

func TestParseConfigArgs(t *testing.T) {
	_, args := ParseArgs([]string{"config"})
	if args.Subcommand != "show" {
		t.Errorf("bare config subcommand = %q, want show", args.Subcommand)
	}

	_, args = ParseArgs([]string{"config", "get", "ui.theme"})
	if args.Subcommand != "get" || args.ConfigKey != "ui.theme" {
		t.Errorf("config get parsed as %+v", args)
	}

	_, args = ParseArgs([]string{"config", "set", "api.base_url", "https://shop.test/api"})
	if args.Subcommand != "set" || args.ConfigKey != "api.base_url" || args.ConfigVal != "https://shop.test/api" {
		t.Errorf("config set parsed as %+v", args)
	}
}

func TestWrapText(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	wrapped := WrapText(text, 20)

	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 20 {
			t.Errorf("line %q exceeds width 20", line)
		}
	}
	joined := strings.ReplaceAll(wrapped, "\n", " ")
	if joined != text {
		t.Errorf("wrapping lost words: %q", joined)
	}
}

func TestWrapTextPreservesNewlines(t *testing.T) {
	text := "line one\nline two"
	if got := WrapText(text, 40); got != text {
		t.Errorf("WrapText changed short lines: %q", got)
	}
}

func TestTTYRequiredError(t *testing.T) {
	err := &TTYRequiredError{Operation: "log in"}
	if !strings.Contains(err.Error(), "log in") {
		t.Errorf("error text missing operation: %q", err.Error())
	}
	if (&TTYRequiredError{}).Error() == "" {
		t.Error("empty operation produced empty error text")
	}
}
