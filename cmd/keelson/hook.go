// Package main provides the entry point for the keelson CLI.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gorewood/keelson/internal/config"
	"github.com/gorewood/keelson/internal/gitcmd"
	"github.com/gorewood/keelson/internal/output"
	"github.com/gorewood/keelson/internal/run"
)

// newHookCmd creates the hook parent command.
func newHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Run repository hooks",
		Long:  `Find and run hooks from the repository's hooks directory.`,
	}
	cmd.AddCommand(newHookRunCmd())
	return cmd
}

// newHookRunCmd creates the hook run subcommand.
func newHookRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <hook-name> [args...]",
		Short: "Run a hook if it exists",
		Long: `Run the named hook from the hooks directory, passing any extra
arguments through. The hook gets no stdin and its stdout is routed to
stderr, so hook chatter never corrupts machine-read output. A missing
or non-executable hook is a silent success; otherwise the hook's exit
status becomes keelson's.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runHookRun,
	}
	cmd.Flags().StringArrayP("env", "e", nil, "Set KEY=VALUE in the hook's environment")
	return cmd
}

func runHookRun(cmd *cobra.Command, args []string) error {
	env, _ := cmd.Flags().GetStringArray("env")

	hooksDir, err := resolveHooksDir()
	if err != nil {
		return err
	}

	code, err := run.Hook(hooksDir, env, args[0], args[1:]...)
	if err != nil {
		return output.NewSystemErrorWithCause(fmt.Sprintf("running hook %s", args[0]), err)
	}
	if code != 0 {
		return output.NewExitStatusError(fmt.Sprintf("hook %s exited with status %d", args[0], code), code)
	}
	return nil
}

// resolveHooksDir prefers the configured hooks directory, falling back
// to where git itself would look.
func resolveHooksDir() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if cfg.HooksDir != "" {
		if filepath.IsAbs(cfg.HooksDir) {
			return cfg.HooksDir, nil
		}
		gitDir, err := gitcmd.GitDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(gitDir, cfg.HooksDir), nil
	}
	return gitcmd.HooksDir()
}
