// Package main provides the entry point for the keelson CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/keelson/internal/gitcmd"
	"github.com/gorewood/keelson/internal/output"
)

// newRefsCmd creates the refs parent command.
func newRefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refs",
		Short: "Inspect references",
		Long:  `Inspect the repository's references.`,
	}
	cmd.AddCommand(newRefsListCmd())
	return cmd
}

// newRefsListCmd creates the refs list subcommand.
func newRefsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [pattern...]",
		Short: "List references",
		Long: `List references matching the given patterns, all references when
no pattern is given. Patterns are prefixes like refs/heads or refs/tags.
With --format, output is git's for-each-ref rendering of that format
string, one record per line.`,
		RunE: runRefsList,
	}
	cmd.Flags().String("format", "", "for-each-ref format string for raw output")
	return cmd
}

func runRefsList(cmd *cobra.Command, args []string) error {
	jsonMode := isJSONMode(cmd)
	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))

	if format, _ := cmd.Flags().GetString("format"); format != "" {
		out, err := gitcmd.ForEachRefFormat(format, args...)
		if err != nil {
			printer.Error(err)
			return err
		}
		printer.Println(out)
		return nil
	}

	refs, err := gitcmd.ForEachRef(args...)
	if err != nil {
		printer.Error(err)
		return err
	}

	if jsonMode {
		return printer.Success(map[string]any{
			"count": len(refs),
			"refs":  refs,
		})
	}

	if len(refs) == 0 {
		printer.Println("No matching references")
		return nil
	}
	rows := make([][]string, 0, len(refs))
	for _, ref := range refs {
		sha := ref.SHA
		if len(sha) > 12 {
			sha = sha[:12]
		}
		rows = append(rows, []string{ref.Name, sha, ref.Type, ref.Upstream})
	}
	printer.Table([]string{"NAME", "SHA", "TYPE", "UPSTREAM"}, rows)
	return nil
}
