// Package main provides the entry point for the keelson CLI.
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/keelson/internal/gitcmd"
	"github.com/gorewood/keelson/internal/output"
)

// newNotesCmd creates the notes parent command.
func newNotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage commit notes",
		Long:  `List, show, add, and remove git notes attached to commits.`,
	}
	cmd.PersistentFlags().String("ref", "", "Notes ref (default refs/notes/commits)")
	cmd.AddCommand(newNotesListCmd())
	cmd.AddCommand(newNotesShowCmd())
	cmd.AddCommand(newNotesAddCmd())
	cmd.AddCommand(newNotesRemoveCmd())
	return cmd
}

func notesRef(cmd *cobra.Command) string {
	ref, _ := cmd.Flags().GetString("ref")
	return ref
}

// newNotesListCmd creates the notes list subcommand.
func newNotesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jsonMode := isJSONMode(cmd)
			printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))

			notes, err := gitcmd.NotesList(notesRef(cmd))
			if err != nil {
				printer.Error(err)
				return err
			}
			if jsonMode {
				return printer.Success(map[string]any{
					"count": len(notes),
					"notes": notes,
				})
			}
			if len(notes) == 0 {
				printer.Println("No notes")
				return nil
			}
			rows := make([][]string, 0, len(notes))
			for _, note := range notes {
				rows = append(rows, []string{note.CommitSHA, note.NoteSHA})
			}
			printer.Table([]string{"COMMIT", "NOTE"}, rows)
			return nil
		},
	}
}

// newNotesShowCmd creates the notes show subcommand.
func newNotesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <object>",
		Short: "Show the note attached to a commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := isJSONMode(cmd)
			printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))

			text, err := gitcmd.NotesShow(notesRef(cmd), args[0])
			if err != nil {
				printer.Error(err)
				return err
			}
			if jsonMode {
				return printer.Success(map[string]any{
					"object": args[0],
					"text":   text,
				})
			}
			printer.Println(text)
			return nil
		},
	}
}

// newNotesAddCmd creates the notes add subcommand.
func newNotesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <object>",
		Short: "Attach a note to a commit",
		Long:  `Attach a note to a commit, replacing any existing note under the ref.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := isJSONMode(cmd)
			printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))

			message, _ := cmd.Flags().GetString("message")
			file, _ := cmd.Flags().GetString("file")
			switch {
			case file != "":
				// Note text arrives on our stdin (or from a file) and
				// leaves on git's stdin, pumped through the async runner.
				var input []byte
				var err error
				if file == "-" {
					input, err = io.ReadAll(cmd.InOrStdin())
				} else {
					input, err = os.ReadFile(file)
				}
				if err != nil {
					sysErr := output.NewSystemErrorWithCause("reading note text", err)
					printer.Error(sysErr)
					return sysErr
				}
				if err := gitcmd.NotesAddFromInput(notesRef(cmd), args[0], string(input)); err != nil {
					printer.Error(err)
					return err
				}
			case message != "":
				if err := gitcmd.NotesAdd(notesRef(cmd), args[0], message); err != nil {
					printer.Error(err)
					return err
				}
			default:
				err := output.NewUserError("a note message is required (-m, or -F - for stdin)")
				printer.Error(err)
				return err
			}
			if jsonMode {
				return printer.Success(map[string]any{"object": args[0]})
			}
			return printer.Success(map[string]any{"message": "Note added to " + args[0]})
		},
	}
	cmd.Flags().StringP("message", "m", "", "Note message")
	cmd.Flags().StringP("file", "F", "", "Read the note from a file, - for stdin")
	return cmd
}

// newNotesRemoveCmd creates the notes remove subcommand.
func newNotesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <object>",
		Short: "Remove the note attached to a commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := isJSONMode(cmd)
			printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))

			if err := gitcmd.NotesRemove(notesRef(cmd), args[0]); err != nil {
				printer.Error(err)
				return err
			}
			if jsonMode {
				return printer.Success(map[string]any{"object": args[0]})
			}
			return printer.Success(map[string]any{"message": "Note removed from " + args[0]})
		},
	}
}
