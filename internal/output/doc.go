// Package output provides structured output and error handling for the
// keelson CLI.
//
// The Printer is the single interface commands write through. It switches
// between human-readable output (lipgloss-styled when the destination is
// a terminal) and JSON output driven by the --json flag:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "remote added", "name": name})
//	printer.Error(err)
//
// Errors carry exit codes through the ExitError type:
//
//	output.NewUserError("missing hook name")       // exit 1
//	output.NewSystemError("git invocation failed") // exit 2
//	output.NewConflictError("remote exists")       // exit 3
//
// output.GetExitCode(err) turns whatever a command returned into the
// process exit status.
package output
