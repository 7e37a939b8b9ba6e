package run

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// IOMode selects how one standard stream of a child process is wired.
type IOMode int

const (
	// IOInherit shares the parent's stream with the child (the default).
	IOInherit IOMode = iota
	// IONull connects the stream to the null device.
	IONull
	// IOPipe creates a fresh pipe; the parent-facing end is handed back
	// on the Command (In/Out/Err) after a successful Start.
	IOPipe
	// IOFile connects the stream to the caller-supplied file
	// (GivenIn/GivenOut/GivenErr). The launcher closes the file once the
	// child owns it; the caller must not.
	IOFile
)

// Command describes one child-process launch. It is caller-owned, mutable
// until Start, and single-use: Start may be called once, and a successful
// Start must be paired with exactly one Finish.
type Command struct {
	// Program is the name or path of the program to run. Names without a
	// path separator are resolved against $PATH.
	Program string

	// Args is the full argument vector. Args[0] conventionally equals
	// Program; when Args is empty, Start fills it in.
	Args []string

	// Env lists environment overrides applied on top of the inherited
	// environment: "KEY=VALUE" sets, a bare "KEY" unsets. An empty list
	// inherits the environment unchanged.
	Env []string

	// Dir is the child's working directory. Empty means the parent's.
	// A directory that cannot be entered is fatal to the child and
	// surfaces as a Start error.
	Dir string

	// Stdin, Stdout and Stderr select the redirection mode per stream.
	Stdin  IOMode
	Stdout IOMode
	Stderr IOMode

	// StdoutToStderr sends the child's stdout to whatever its stderr is
	// connected to. It overrides Stdout; no independent stdout pipe is
	// created while it is set.
	StdoutToStderr bool

	// GivenIn, GivenOut and GivenErr supply the descriptors for streams
	// in IOFile mode.
	GivenIn  *os.File
	GivenOut *os.File
	GivenErr *os.File

	// Internal resolves Program as a subcommand of the running keelson
	// executable instead of searching $PATH.
	Internal bool

	// UseShell wraps the argument vector in a shell invocation when
	// Args[0] contains shell-significant characters (see ShellMetachars);
	// otherwise the program is executed directly.
	UseShell bool

	// CleanOnExit registers the child so that a termination signal to
	// this process, or Cleanup at normal exit, forwards the signal to it.
	CleanOnExit bool

	// SilentExecFailure suppresses the one-line diagnostic normally
	// written to stderr when the program cannot be found or executed.
	SilentExecFailure bool

	// In is the write end feeding the child's stdin (Stdin: IOPipe).
	// Out and Err are the read ends draining the child's stdout/stderr
	// (IOPipe). Set by a successful Start; the caller owns them and
	// closes each exactly once.
	In  *os.File
	Out *os.File
	Err *os.File

	process *os.Process
	started bool
}

// AddArgs appends arguments to the argument vector.
func (c *Command) AddArgs(args ...string) {
	c.Args = append(c.Args, args...)
}

// SetEnv adds a KEY=VALUE override for the child's environment.
func (c *Command) SetEnv(key, value string) {
	c.Env = append(c.Env, key+"="+value)
}

// UnsetEnv removes a variable from the child's environment.
func (c *Command) UnsetEnv(key string) {
	c.Env = append(c.Env, key)
}

// Pid returns the child's process identifier, or -1 before Start.
func (c *Command) Pid() int {
	if c.process == nil {
		return -1
	}
	return c.process.Pid
}

// name returns the program name used in diagnostics.
func (c *Command) name() string {
	if len(c.Args) > 0 {
		return c.Args[0]
	}
	return c.Program
}

// ExecError reports that a program could not be launched.
type ExecError struct {
	Program string
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("cannot run %s: %v", e.Program, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// NotFound reports whether err indicates the target program could not be
// found or executed. Lookup failures caused by an unsearchable $PATH entry
// are folded into this category when the program name carries no path
// separator, since "permission denied" for a program that exists nowhere
// on the search path only confuses the operator.
func NotFound(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// applyEnv applies "KEY=VALUE" sets and bare-"KEY" unsets on top of base.
// A nil result means "inherit unchanged".
func applyEnv(base, overrides []string) []string {
	if len(overrides) == 0 {
		return nil
	}
	env := make([]string, len(base))
	copy(env, base)
	for _, entry := range overrides {
		if key, _, ok := strings.Cut(entry, "="); ok {
			env = envSet(env, key, entry)
		} else {
			env = envUnset(env, entry)
		}
	}
	return env
}

// envSet replaces an existing KEY= entry or appends one.
func envSet(env []string, key, entry string) []string {
	prefix := key + "="
	for i, existing := range env {
		if strings.HasPrefix(existing, prefix) {
			env[i] = entry
			return env
		}
	}
	return append(env, entry)
}

// envUnset removes every KEY= entry for key.
func envUnset(env []string, key string) []string {
	prefix := key + "="
	kept := env[:0]
	for _, existing := range env {
		if !strings.HasPrefix(existing, prefix) {
			kept = append(kept, existing)
		}
	}
	return kept
}
