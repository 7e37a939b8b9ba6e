// Package main provides the entry point for the keelson CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/keelson/internal/output"
	"github.com/gorewood/keelson/internal/run"
)

// newRunCmd creates the run command.
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] -- <command> [args...]",
		Short: "Run a command with git's launch semantics",
		Long: `Run a command the way git runs its children.

The command inherits stdin, stdout, and stderr. Shell metacharacters in
the first argument route the command through the shell; a clean command
line is executed directly. The child's exit status becomes keelson's.
A child killed by a signal exits as 128 plus the signal number, and a
command that cannot be found exits 127.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRun,
	}
	cmd.Flags().Bool("shell", false, "Always run the command through the shell")
	cmd.Flags().Bool("no-stdin", false, "Give the command no input instead of inheriting stdin")
	cmd.Flags().Bool("stdout-to-stderr", false, "Send the command's stdout to stderr")
	cmd.Flags().StringP("dir", "C", "", "Working directory for the command")
	cmd.Flags().StringArrayP("env", "e", nil, "Set KEY=VALUE in the command's environment (KEY alone unsets)")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	shell, _ := cmd.Flags().GetBool("shell")
	noStdin, _ := cmd.Flags().GetBool("no-stdin")
	toStderr, _ := cmd.Flags().GetBool("stdout-to-stderr")
	dir, _ := cmd.Flags().GetString("dir")
	env, _ := cmd.Flags().GetStringArray("env")

	child := &run.Command{
		Program:        args[0],
		Args:           args,
		Dir:            dir,
		Env:            env,
		UseShell:       shell,
		StdoutToStderr: toStderr,
		CleanOnExit:    true,
	}
	if noStdin {
		child.Stdin = run.IONull
	}

	code, err := child.Run()
	if err != nil {
		if run.NotFound(err) {
			return output.NewExitStatusError(fmt.Sprintf("%s: command not found", args[0]), 127)
		}
		return output.NewSystemErrorWithCause("running command", err)
	}
	if code != 0 {
		return output.NewExitStatusError(fmt.Sprintf("command exited with status %d", code), code)
	}
	return nil
}
