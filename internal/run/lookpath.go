package run

import (
	"errors"
	"os"
	"os/exec"
	"strings"
	"syscall"
)

// ShellPath is the shell used for UseShell commands.
var ShellPath = "/bin/sh"

// ShellMetachars is the character set that forces UseShell commands
// through the shell. An Args[0] free of these characters is executed
// directly, which is both faster and immune to quoting surprises. The
// set is a policy choice, not an invariant; config may override it.
var ShellMetachars = "|&;<>()$`\\\"' \t\n*?[#~=%"

// SelfPath resolves the path of the running keelson executable for
// Internal commands. Replaceable in tests.
var SelfPath = os.Executable

// resolveArgv turns the request into the executable path and argument
// vector handed to the OS. The returned path is what gets executed; the
// vector is passed to the child unchanged.
func (c *Command) resolveArgv() (string, []string, error) {
	switch {
	case c.Internal:
		exe, err := SelfPath()
		if err != nil {
			return "", nil, &ExecError{Program: c.Program, Err: err}
		}
		return exe, append([]string{exe}, c.Args...), nil
	case c.UseShell && strings.ContainsAny(c.Args[0], ShellMetachars):
		return ShellPath, prepareShellArgv(c.Args), nil
	default:
		path, err := resolveProgram(c.Program)
		if err != nil {
			return "", nil, err
		}
		return path, c.Args, nil
	}
}

// prepareShellArgv wraps args in an "sh -c" invocation. Extra arguments
// become the script's positional parameters via an appended "$@", with
// args[0] repeated as the script's $0.
func prepareShellArgv(args []string) []string {
	argv := []string{ShellPath, "-c"}
	if len(args) == 1 {
		return append(argv, args[0])
	}
	argv = append(argv, args[0]+` "$@"`)
	return append(argv, args...)
}

// resolveProgram locates name on $PATH, normalizing lookup failures so a
// program that exists nowhere reads as not-found even when an unsearchable
// $PATH entry made the underlying error "permission denied" or
// "not a directory".
func resolveProgram(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err == nil || errors.Is(err, exec.ErrDot) {
		return path, nil
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, syscall.ENOTDIR) {
		return "", &ExecError{Program: name, Err: os.ErrNotExist}
	}
	return "", &ExecError{Program: name, Err: err}
}

// normalizeStartError folds process-creation failures into the same
// categories as lookup failures.
func (c *Command) normalizeStartError(err error) error {
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return &ExecError{Program: c.name(), Err: os.ErrNotExist}
	}
	return &ExecError{Program: c.name(), Err: err}
}
