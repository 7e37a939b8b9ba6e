package gitcmd

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gorewood/keelson/internal/output"
	"github.com/gorewood/keelson/internal/run"
)

// RunWithInput executes git with input fed to its stdin from an async
// task, so neither side of the pipe can deadlock the caller. Used for
// the plumbing commands that read object payloads from stdin
// (hash-object, mktree, commit-tree).
func RunWithInput(input string, args ...string) (string, error) {
	cmd := &run.Command{
		Program: "git",
		Args:    append([]string{"git"}, args...),
		Stdin:   run.IOPipe,
		Stdout:  run.IOPipe,
		Stderr:  run.IOPipe,
	}
	if err := cmd.Start(); err != nil {
		if run.NotFound(err) {
			return "", output.NewSystemError("git not found: ensure git is installed and in PATH")
		}
		return "", output.NewSystemErrorWithCause("starting git", err)
	}

	// The feeder owns the write end: the task runner closes it when the
	// proc returns, delivering EOF to git.
	feeder := &run.Task{
		Stdout:   run.IOFile,
		GivenOut: cmd.In,
		Data:     input,
		Proc: func(_ *run.TaskContext, _, out *os.File, data any) int {
			if _, err := io.WriteString(out, data.(string)); err != nil {
				return 1
			}
			return 0
		},
	}
	if err := feeder.Start(); err != nil {
		_ = cmd.In.Close()
		_, _ = cmd.Finish()
		return "", err
	}

	var (
		wg        sync.WaitGroup
		errOutput []byte
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		errOutput, _ = io.ReadAll(cmd.Err)
	}()
	outBytes, readErr := io.ReadAll(cmd.Out)
	wg.Wait()
	_ = cmd.Out.Close()
	_ = cmd.Err.Close()

	feedCode, feedErr := feeder.Join()
	code, err := cmd.Finish()
	if err != nil {
		return "", output.NewSystemErrorWithCause("waiting for git", err)
	}
	if feedErr != nil {
		return "", feedErr
	}
	if feedCode != 0 {
		return "", output.NewSystemError("feeding git stdin failed")
	}
	if readErr != nil {
		return "", output.NewSystemErrorWithCause("reading git output", readErr)
	}
	if code != 0 {
		msg := strings.TrimSpace(string(errOutput))
		if msg == "" {
			msg = "git exited nonzero"
		}
		return "", output.NewSystemError("git command failed: " + msg)
	}
	return strings.TrimSpace(string(outBytes)), nil
}
