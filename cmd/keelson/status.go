// Package main provides the entry point for the keelson CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/keelson/internal/gitcmd"
	"github.com/gorewood/keelson/internal/output"
)

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show repository state",
		Long:  `Show the repository root, current branch, HEAD, and working tree state.`,
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	jsonMode := isJSONMode(cmd)
	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))

	root, err := gitcmd.RepoRoot()
	if err != nil {
		printer.Error(err)
		return err
	}
	branch, err := gitcmd.CurrentBranch()
	if err != nil {
		printer.Error(err)
		return err
	}
	head, err := gitcmd.HEAD()
	if err != nil {
		printer.Error(err)
		return err
	}
	dirty := gitcmd.HasUncommittedChanges()

	if jsonMode {
		return printer.Success(map[string]any{
			"root":   root,
			"branch": branch,
			"head":   head,
			"dirty":  dirty,
		})
	}

	printer.KeyValue("Root", root)
	printer.KeyValue("Branch", branch)
	printer.KeyValue("HEAD", head)
	state := "clean"
	if dirty {
		state = "dirty"
	}
	printer.KeyValue("Tree", state)
	return nil
}
