// cmd/wanderguide/main.go
//
// This is the entry point for the WanderGuide CLI.
// Running `wanderguide` from any directory starts the quiz in the terminal.
//
// Subcommands:
//
//	wanderguide stub-server [-latency 2s]   serve canned tours locally
//	wanderguide questions <bank.yaml>       validate a question bank

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/wanderguide/internal/config"
	"github.com/kingrea/wanderguide/internal/tui"
)

func main() {
	if handleStubServerCommand() || handleQuestionsCommand() {
		return
	}

	// The working directory is the "project": config and logs live in ./.wanderguide
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitProjectDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .wanderguide directory: %v\n", err)
		os.Exit(1)
	}

	app, err := tui.NewApp(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(), // Use alternate screen buffer (like vim does)
	)

	// Run blocks until the user quits
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
