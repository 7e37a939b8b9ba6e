// Package main provides the entry point for the keelson CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/keelson/internal/gitcmd"
	"github.com/gorewood/keelson/internal/output"
)

// newRemoteCmd creates the remote parent command.
func newRemoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Manage remotes",
		Long:  `List, add, and remove configured remotes.`,
	}
	cmd.AddCommand(newRemoteListCmd())
	cmd.AddCommand(newRemoteAddCmd())
	cmd.AddCommand(newRemoteRemoveCmd())
	cmd.AddCommand(newRemoteRenameCmd())
	return cmd
}

// newRemoteListCmd creates the remote list subcommand.
func newRemoteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List remotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jsonMode := isJSONMode(cmd)
			printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))

			remotes, err := gitcmd.RemoteList()
			if err != nil {
				printer.Error(err)
				return err
			}
			if jsonMode {
				return printer.Success(map[string]any{
					"count":   len(remotes),
					"remotes": remotes,
				})
			}
			if len(remotes) == 0 {
				printer.Println("No remotes configured")
				return nil
			}
			rows := make([][]string, 0, len(remotes))
			for _, remote := range remotes {
				rows = append(rows, []string{remote.Name, remote.URL})
			}
			printer.Table([]string{"NAME", "URL"}, rows)
			return nil
		},
	}
}

// newRemoteAddCmd creates the remote add subcommand.
func newRemoteAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <url>",
		Short: "Add a remote",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := isJSONMode(cmd)
			printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))

			if err := gitcmd.RemoteAdd(args[0], args[1]); err != nil {
				printer.Error(err)
				return err
			}
			if jsonMode {
				return printer.Success(map[string]any{"name": args[0], "url": args[1]})
			}
			return printer.Success(map[string]any{"message": "Remote " + args[0] + " added"})
		},
	}
}

// newRemoteRenameCmd creates the remote rename subcommand.
func newRemoteRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a remote",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := isJSONMode(cmd)
			printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))

			if err := gitcmd.RemoteRename(args[0], args[1]); err != nil {
				printer.Error(err)
				return err
			}
			if jsonMode {
				return printer.Success(map[string]any{"old": args[0], "new": args[1]})
			}
			return printer.Success(map[string]any{"message": "Remote " + args[0] + " renamed to " + args[1]})
		},
	}
}

// newRemoteRemoveCmd creates the remote remove subcommand.
func newRemoteRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a remote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := isJSONMode(cmd)
			printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))

			if err := gitcmd.RemoteRemove(args[0]); err != nil {
				printer.Error(err)
				return err
			}
			if jsonMode {
				return printer.Success(map[string]any{"name": args[0]})
			}
			return printer.Success(map[string]any{"message": "Remote " + args[0] + " removed"})
		},
	}
}
