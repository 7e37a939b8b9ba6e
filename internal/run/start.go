package run

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/gorewood/keelson/internal/trace"
)

// Start launches the child process described by the Command.
//
// The pipe plan runs first; a planning failure creates no process. Program
// resolution happens next (internal subcommand, shell wrapper, or $PATH
// search). os.StartProcess then forks and execs with a close-on-exec
// status pipe between parent and child, so an exec that never happens
// (program missing, not executable, working directory unenterable) is
// reported here rather than discovered at Finish.
//
// On success the parent-facing ends of requested pipes are available as
// In/Out/Err and ownership of any caller-supplied IOFile descriptors has
// passed to the launcher, which has already closed them. On failure every
// descriptor the child would have received is closed before returning.
func (c *Command) Start() error {
	if c.started {
		return errors.New("run: command already started")
	}
	if c.Program == "" {
		return errors.New("run: no program given")
	}
	if len(c.Args) == 0 {
		c.Args = []string{c.Program}
	}
	if err := c.checkStreams(); err != nil {
		return err
	}

	pin, pout, perr, err := c.planPipes()
	if err != nil {
		return err
	}
	abort := func() {
		perr.close()
		pout.close()
		pin.close()
		c.closeGiven()
	}

	path, argv, err := c.resolveArgv()
	if err != nil {
		abort()
		c.reportStartError(err)
		return err
	}

	trace.Argv("run", argv)

	files, null, err := c.childFiles(pin, pout, perr)
	if err != nil {
		closeQuiet(null)
		abort()
		return err
	}

	proc, err := os.StartProcess(path, argv, &os.ProcAttr{
		Dir:   c.Dir,
		Env:   applyEnv(os.Environ(), c.Env),
		Files: files,
	})
	closeQuiet(null)
	if err != nil {
		abort()
		err = c.normalizeStartError(err)
		c.reportStartError(err)
		return err
	}

	// The child owns its ends now; the parent keeps only the caller-facing
	// ones. Caller-supplied files are closed here, never by the child.
	if pin != nil {
		closeQuiet(pin.r)
		c.In = pin.w
	}
	if pout != nil {
		closeQuiet(pout.w)
		c.Out = pout.r
	}
	if perr != nil {
		closeQuiet(perr.w)
		c.Err = perr.r
	}
	c.closeGiven()

	c.process = proc
	c.started = true
	if c.CleanOnExit {
		children.register(proc.Pid)
	}
	return nil
}

// checkStreams rejects requests that violate the one-intent-per-stream
// rule before any resource is allocated.
func (c *Command) checkStreams() error {
	if c.Stdin == IOFile && c.GivenIn == nil {
		return errors.New("run: stdin requested from a file but none given")
	}
	if c.Stdout == IOFile && c.GivenOut == nil {
		return errors.New("run: stdout requested to a file but none given")
	}
	if c.Stderr == IOFile && c.GivenErr == nil {
		return errors.New("run: stderr requested to a file but none given")
	}
	if c.StdoutToStderr && (c.Stdout == IOPipe || c.Stdout == IOFile) {
		return errors.New("run: stdout cannot be redirected and merged into stderr at once")
	}
	return nil
}

// childFiles assembles the three descriptors handed to the child. Stderr
// is wired before stdout so a merged stdout shares its descriptor.
func (c *Command) childFiles(pin, pout, perr *pipePair) ([]*os.File, *os.File, error) {
	var null *os.File
	devNull := func() (*os.File, error) {
		if null == nil {
			f, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
			if err != nil {
				return nil, fmt.Errorf("open %s failed: %w", os.DevNull, err)
			}
			null = f
		}
		return null, nil
	}

	files := make([]*os.File, 3)
	var err error

	switch c.Stdin {
	case IONull:
		files[0], err = devNull()
	case IOPipe:
		files[0] = pin.r
	case IOFile:
		files[0] = c.GivenIn
	default:
		files[0] = os.Stdin
	}
	if err != nil {
		return nil, null, err
	}

	switch c.Stderr {
	case IONull:
		files[2], err = devNull()
	case IOPipe:
		files[2] = perr.w
	case IOFile:
		files[2] = c.GivenErr
	default:
		files[2] = os.Stderr
	}
	if err != nil {
		return nil, null, err
	}

	switch {
	case c.StdoutToStderr:
		files[1] = files[2]
	case c.Stdout == IONull:
		files[1], err = devNull()
	case c.Stdout == IOPipe:
		files[1] = pout.w
	case c.Stdout == IOFile:
		files[1] = c.GivenOut
	default:
		files[1] = os.Stdout
	}
	if err != nil {
		return nil, null, err
	}
	return files, null, nil
}

// reportStartError writes the single launch-failure diagnostic line.
// SilentExecFailure suppresses it for the not-found category only.
func (c *Command) reportStartError(err error) {
	if NotFound(err) && c.SilentExecFailure {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}

// Finish waits for the child to terminate and returns its exit status.
// Termination by signal maps to 128 plus the signal number, the way a
// POSIX shell reports it; signals other than interrupt and quit are
// additionally reported to stderr. The child is removed from the cleanup
// registry in every outcome, so a stale pid can never be signaled.
func (c *Command) Finish() (int, error) {
	if !c.started {
		return -1, errors.New("run: command not started")
	}
	defer children.unregister(c.process.Pid)

	var state *os.ProcessState
	var err error
	for {
		state, err = c.process.Wait()
		if err == nil || !errors.Is(err, syscall.EINTR) {
			break
		}
	}
	if err != nil {
		err = fmt.Errorf("wait for %s failed: %w", c.name(), err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return -1, err
	}

	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		sig := ws.Signal()
		if sig != syscall.SIGINT && sig != syscall.SIGQUIT {
			fmt.Fprintf(os.Stderr, "error: %s died of signal %d\n", c.name(), sig)
		}
		return 128 + int(sig), nil
	}
	if state.Exited() {
		return state.ExitCode(), nil
	}

	// Wait returned without a termination status. Diagnostic only; the
	// registry entry is cleared regardless.
	err = fmt.Errorf("wait for %s is confused", c.name())
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return -1, err
}

// Run is Start followed by Finish.
func (c *Command) Run() (int, error) {
	if err := c.Start(); err != nil {
		return -1, err
	}
	return c.Finish()
}

// Flags packs the common launch options for the RunArgs conveniences.
type Flags uint

const (
	// FlagNoStdin suppresses the child's stdin with the null device.
	FlagNoStdin Flags = 1 << iota
	// FlagInternal resolves the program as a keelson subcommand.
	FlagInternal
	// FlagStdoutToStderr merges the child's stdout into its stderr.
	FlagStdoutToStderr
	// FlagSilentExecFailure drops the not-found diagnostic line.
	FlagSilentExecFailure
	// FlagUseShell allows shell interpretation of the first argument.
	FlagUseShell
	// FlagCleanOnExit registers the child for forced cleanup.
	FlagCleanOnExit
)

// RunArgs launches args[0] with the given flags and waits for it.
func RunArgs(args []string, flags Flags) (int, error) {
	return RunArgsDirEnv(args, flags, "", nil)
}

// RunArgsDirEnv is RunArgs with a working directory and environment
// overrides.
func RunArgsDirEnv(args []string, flags Flags, dir string, env []string) (int, error) {
	if len(args) == 0 {
		return -1, errors.New("run: no program given")
	}
	cmd := &Command{
		Program:           args[0],
		Args:              args,
		Dir:               dir,
		Env:               env,
		Internal:          flags&FlagInternal != 0,
		StdoutToStderr:    flags&FlagStdoutToStderr != 0,
		SilentExecFailure: flags&FlagSilentExecFailure != 0,
		UseShell:          flags&FlagUseShell != 0,
		CleanOnExit:       flags&FlagCleanOnExit != 0,
	}
	if flags&FlagNoStdin != 0 {
		cmd.Stdin = IONull
	}
	return cmd.Run()
}
