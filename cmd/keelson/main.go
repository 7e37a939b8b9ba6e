// Package main provides the entry point for the keelson CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gorewood/keelson/internal/config"
	"github.com/gorewood/keelson/internal/output"
	"github.com/gorewood/keelson/internal/run"
	"github.com/gorewood/keelson/internal/trace"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		// Walk up to root to find the persistent flag
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := execute()
	// Children registered for cleanup must not outlive us, and the
	// trace file must be flushed, whatever the exit path.
	run.Cleanup()
	trace.Close()
	os.Exit(code)
}

func execute() int {
	// Subprocess-mode tasks re-execute this binary with the task
	// invocation as argv[1]. Short-circuit before cobra touches it.
	if len(os.Args) > 2 && os.Args[1] == run.TaskCommandName {
		return run.TaskMain(os.Args[2], os.Args[3:])
	}
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the keelson CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keelson",
		Short: "A Git porcelain companion",
		Long: `Keelson - a Git porcelain companion built around a careful process launcher.

Keelson wraps the repository plumbing you reach for daily:
  - Inspecting refs, notes, and remotes with structured output
  - Running commands and hooks with git's launch semantics
  - Driving bisect sessions with an arbitrary test command
  - Serving repository state to MCP-capable agents

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// If --json flag is set but no subcommand, output JSON error
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'keelson --help' for usage")
				printer.Error(err)
				return err
			}
			// Otherwise show help
			return cmd.Help()
		},
	}

	// Load .env.local (then .env), then the persisted config.
	// Environment variables always take precedence over file values.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return applyConfig()
	}

	// Add persistent --json flag (available to all subcommands)
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	// Define command groups and add commands
	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local   (per-repo override, gitignored)
//  2. $CWD/.env         (per-repo)
//  3. ~/.config/keelson/env (global fallback - set once, works everywhere)
func loadEnvFiles() {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	if dir := config.Dir(); dir != "" {
		_ = godotenv.Load(filepath.Join(dir, "env"))
	}
}

// applyConfig pushes persisted settings into the launcher and tracer.
func applyConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Shell.Path != "" {
		run.ShellPath = cfg.Shell.Path
	}
	if cfg.Shell.Metachars != "" {
		run.ShellMetachars = cfg.Shell.Metachars
	}
	if cfg.Trace {
		trace.SetEnabled(true)
	}
	return nil
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "inspect", Title: "Inspect Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "exec", Title: "Execution Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	// Inspect commands: status, refs, notes, remote
	addGroupedCommand(cmd, newStatusCmd(), "inspect")
	addGroupedCommand(cmd, newRefsCmd(), "inspect")
	addGroupedCommand(cmd, newNotesCmd(), "inspect")
	addGroupedCommand(cmd, newRemoteCmd(), "inspect")

	// Execution commands: run, hook, bisect
	addGroupedCommand(cmd, newRunCmd(), "exec")
	addGroupedCommand(cmd, newHookCmd(), "exec")
	addGroupedCommand(cmd, newBisectCmd(), "exec")

	// Agent commands: serve
	addGroupedCommand(cmd, newServeCmd(), "agent")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
