package run

import (
	"fmt"
	"os"
	"sync/atomic"
)

// TaskContext carries per-task state into a TaskFunc. Fatal errors raised
// through it terminate only the task that raised them; the surrounding
// process keeps running. This replaces ambient thread-local state with
// explicit context-passing.
type TaskContext struct {
	in    *os.File
	out   *os.File
	dying atomic.Int32
}

// taskFatal unwinds a task after Die; the runner recovers it and turns it
// into the task's result code.
type taskFatal struct {
	code int
}

// Die reports an unrecoverable error in the task and terminates it with
// result 128, closing the task's pipe ends first so a peer blocked on
// them sees end-of-stream. A Die raised while a previous Die on the same
// task is still unwinding is detected and short-circuits immediately
// instead of reporting again.
func (tc *TaskContext) Die(format string, args ...any) {
	if tc.dying.Add(1) > 1 {
		panic(taskFatal{code: 128})
	}
	fmt.Fprintf(os.Stderr, "fatal: "+format+"\n", args...)
	closeQuiet(tc.in)
	closeQuiet(tc.out)
	panic(taskFatal{code: 128})
}

// Errorf reports a non-fatal error to stderr and returns it for the
// caller to propagate.
func (tc *TaskContext) Errorf(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return err
}

// Die reports a fatal error in the main flow and terminates the process
// with status 128. Task code should use TaskContext.Die instead so only
// the task dies.
func Die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal: "+format+"\n", args...)
	os.Exit(128)
}
