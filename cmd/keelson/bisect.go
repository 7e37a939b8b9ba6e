// Package main provides the entry point for the keelson CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/keelson/internal/gitcmd"
	"github.com/gorewood/keelson/internal/output"
	"github.com/gorewood/keelson/internal/run"
)

// newBisectCmd creates the bisect parent command.
func newBisectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bisect",
		Short: "Drive a bisect session with a test command",
		Long:  `Start, run, and reset git bisect sessions.`,
	}
	cmd.AddCommand(newBisectRunCmd())
	cmd.AddCommand(newBisectResetCmd())
	return cmd
}

// newBisectResetCmd creates the bisect reset subcommand.
func newBisectResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "End a bisect session",
		Long:  `End the bisect session and return to the original branch.`,
		Args:  cobra.NoArgs,
		RunE:  runBisectReset,
	}
}

func runBisectReset(cmd *cobra.Command, _ []string) error {
	jsonMode := isJSONMode(cmd)
	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))

	if err := gitcmd.BisectReset(); err != nil {
		printer.Error(err)
		return err
	}
	return printer.Success(map[string]any{
		"message": "Bisect session ended",
	})
}

// newBisectRunCmd creates the bisect run subcommand.
func newBisectRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run --bad <rev> --good <rev> -- <command> [args...]",
		Short: "Bisect automatically with a test command",
		Long: `Run a bisect session end to end, testing each candidate revision
with the given command.

The command's exit status decides the verdict for each revision:
  0         the revision is good
  125       the revision cannot be tested and is skipped
  1 to 127  the revision is bad
  128 or higher aborts the session

Shell metacharacters route the command through the shell, so pipelines
and conjunctions work as test commands.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runBisectRun,
	}
	cmd.Flags().String("bad", "HEAD", "A known bad revision")
	cmd.Flags().String("good", "", "A known good revision")
	_ = cmd.MarkFlagRequired("good")
	return cmd
}

func runBisectRun(cmd *cobra.Command, args []string) error {
	jsonMode := isJSONMode(cmd)
	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))

	bad, _ := cmd.Flags().GetString("bad")
	good, _ := cmd.Flags().GetString("good")

	if _, err := gitcmd.BisectStart(bad, good); err != nil {
		printer.Error(err)
		return err
	}
	defer func() { _ = gitcmd.BisectReset() }()

	steps := 0
	for {
		if sha, done := gitcmd.BisectDone(); done {
			if jsonMode {
				return printer.Success(map[string]any{
					"first_bad": sha,
					"steps":     steps,
				})
			}
			return printer.Success(map[string]any{
				"message": "First bad commit: " + sha,
			})
		}

		verdict, err := testRevision(args)
		if err != nil {
			return err
		}
		steps++

		if !jsonMode {
			cur, _ := gitcmd.HEAD()
			printer.Print("revision %.12s is %s\n", cur, verdict)
		}
		if _, err := gitcmd.BisectMark(verdict); err != nil {
			printer.Error(err)
			return err
		}
	}
}

// testRevision runs the test command once and maps its exit status to a
// bisect verdict.
func testRevision(args []string) (string, error) {
	child := &run.Command{
		Program:     args[0],
		Args:        args,
		Stdin:       run.IONull,
		UseShell:    true,
		CleanOnExit: true,
	}
	code, err := child.Run()
	if err != nil {
		if run.NotFound(err) {
			return "", output.NewExitStatusError(fmt.Sprintf("%s: command not found", args[0]), 127)
		}
		return "", output.NewSystemErrorWithCause("running test command", err)
	}
	switch {
	case code == 0:
		return "good", nil
	case code == 125:
		return "skip", nil
	case code > 0 && code < 128:
		return "bad", nil
	default:
		return "", output.NewExitStatusError(
			fmt.Sprintf("test command exited %d, aborting bisect", code), code)
	}
}
