// Package gitcmd wraps the git binary behind the launcher in internal/run.
//
// Every helper builds a run.Command, captures its output over pipes, and
// maps failures into the output error taxonomy. Callers never see the
// raw launch mechanics.
package gitcmd

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gorewood/keelson/internal/output"
	"github.com/gorewood/keelson/internal/run"
)

// Result carries everything a caller may want from one git invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes git with the given arguments in the current directory,
// capturing stdout. It returns the trimmed output, or an
// *output.ExitError when git is missing or exits nonzero.
func Run(args ...string) (string, error) {
	return RunIn("", args...)
}

// RunIn is Run with an explicit working directory. An empty dir means
// the current directory.
func RunIn(dir string, args ...string) (string, error) {
	res, err := capture(dir, args)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = fmt.Sprintf("git %s exited %d", strings.Join(args, " "), res.ExitCode)
		}
		return "", output.NewSystemError("git command failed: " + msg)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// Exec runs git and returns the full Result without judging the exit
// code. Callers that treat nonzero exits as data (bisect, hook checks)
// use this instead of Run.
func Exec(dir string, args ...string) (*Result, error) {
	return capture(dir, args)
}

func capture(dir string, args []string) (*Result, error) {
	cmd := &run.Command{
		Program: "git",
		Args:    append([]string{"git"}, args...),
		Dir:     dir,
		Stdin:   run.IONull,
		Stdout:  run.IOPipe,
		Stderr:  run.IOPipe,
	}
	if err := cmd.Start(); err != nil {
		if run.NotFound(err) {
			return nil, output.NewSystemError("git not found: ensure git is installed and in PATH")
		}
		return nil, output.NewSystemErrorWithCause("starting git", err)
	}

	// Drain stderr concurrently so a chatty child cannot deadlock
	// against a full pipe while we read stdout.
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

	code, err := cmd.Finish()
	if err != nil {
		return nil, output.NewSystemErrorWithCause("waiting for git", err)
	}
	if readErr != nil {
		return nil, output.NewSystemErrorWithCause("reading git output", readErr)
	}
	return &Result{
		Stdout:   string(outBytes),
		Stderr:   string(errOutput),
		ExitCode: code,
	}, nil
}

// IsRepo reports whether the current directory is inside a git
// repository.
func IsRepo() bool {
	_, err := Run("rev-parse", "--git-dir")
	return err == nil
}

// RepoRoot returns the root directory of the current git repository.
func RepoRoot() (string, error) {
	root, err := Run("rev-parse", "--show-toplevel")
	if err != nil {
		return "", output.NewSystemErrorWithCause("not in a git repository", err)
	}
	return root, nil
}

// GitDir returns the absolute path of the repository's .git directory.
func GitDir() (string, error) {
	dir, err := Run("rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", output.NewSystemErrorWithCause("not in a git repository", err)
	}
	return dir, nil
}

// HooksDir returns the directory git resolves hook names against,
// honoring core.hooksPath.
func HooksDir() (string, error) {
	dir, err := Run("rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", err
	}
	return dir, nil
}

// CurrentBranch returns the name of the current branch.
func CurrentBranch() (string, error) {
	branch, err := Run("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get current branch", err)
	}
	return branch, nil
}

// HEAD returns the full SHA of the current HEAD commit.
func HEAD() (string, error) {
	sha, err := Run("rev-parse", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get HEAD", err)
	}
	return sha, nil
}

// SHAExists reports whether sha resolves to a known git object.
func SHAExists(sha string) bool {
	if sha == "" {
		return false
	}
	_, err := Run("cat-file", "-t", sha)
	return err == nil
}

// HasUncommittedChanges reports whether the working tree has staged or
// unstaged changes.
func HasUncommittedChanges() bool {
	out, err := Run("status", "--porcelain")
	if err != nil {
		return false
	}
	return strings.TrimSpace(out) != ""
}
