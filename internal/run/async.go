package run

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// TaskFunc is the unit of work a Task runs. It receives its task-side
// pipe ends (nil for a stream the task was not given), the opaque
// payload, and returns the task's integer result. Fatal conditions go
// through tc.Die, which terminates only this task.
type TaskFunc func(tc *TaskContext, in, out *os.File, data any) int

// TaskCommandName is the hidden subcommand the tool re-executes itself
// with to host a subprocess-mode task.
const TaskCommandName = "internal-task"

// Task describes one unit of concurrent, pipe-connected work.
//
// By default the work runs on a goroutine and Data may be any value the
// caller makes safe for concurrent use. Setting Name forces subprocess
// mode: the tool re-executes itself and runs the task registered under
// that name in a child process, with Args as the payload (Data does not
// cross the process boundary). Which mode hosts the work never changes a
// caller's use of Start, the pipes, or Join.
type Task struct {
	Proc TaskFunc
	Data any

	// Name and Args select subprocess mode; see RegisterTask.
	Name string
	Args []string

	// Stdin and Stdout accept IOPipe or IOFile; the zero value gives the
	// task no descriptor for that stream.
	Stdin  IOMode
	Stdout IOMode
	// GivenIn and GivenOut are the task-side descriptors for IOFile mode.
	GivenIn  *os.File
	GivenOut *os.File

	// In is the write end feeding the task, Out the read end draining it,
	// for streams requested as IOPipe. Set by a successful Start.
	In  *os.File
	Out *os.File

	cmd     *Command
	result  chan int
	started bool
}

// Start allocates the task's pipes and begins the work. A pipe failure
// closes everything opened for this task, caller-supplied descriptors
// included, before reporting.
func (t *Task) Start() error {
	if t.started {
		return errors.New("run: task already started")
	}
	if t.Name == "" && t.Proc == nil {
		return errors.New("run: task has no function")
	}

	var pin, pout *pipePair
	fail := func(cause error) error {
		pout.close()
		pin.close()
		closeQuiet(t.GivenIn)
		closeQuiet(t.GivenOut)
		t.In, t.Out = nil, nil
		return fmt.Errorf("cannot create pipe: %w", cause)
	}

	if t.Stdin == IOPipe {
		r, w, err := os.Pipe()
		if err != nil {
			return fail(err)
		}
		pin = &pipePair{r: r, w: w}
		t.In = w
	}
	if t.Stdout == IOPipe {
		r, w, err := os.Pipe()
		if err != nil {
			return fail(err)
		}
		pout = &pipePair{r: r, w: w}
		t.Out = r
	}

	procIn := t.GivenIn
	if pin != nil {
		procIn = pin.r
	}
	procOut := t.GivenOut
	if pout != nil {
		procOut = pout.w
	}

	t.started = true
	if t.Name != "" {
		return t.startSubprocess(procIn, procOut)
	}

	t.result = make(chan int, 1)
	tc := &TaskContext{in: procIn, out: procOut}
	go func() {
		t.result <- t.invoke(tc, procIn, procOut)
	}()
	return nil
}

// invoke runs the function with fatal scoping: a Die inside the task
// unwinds to here and becomes the result code instead of taking the
// process down. The task-side ends are closed on the way out.
func (t *Task) invoke(tc *TaskContext, in, out *os.File) (code int) {
	defer func() {
		closeQuiet(in)
		closeQuiet(out)
		if r := recover(); r != nil {
			fatal, ok := r.(taskFatal)
			if !ok {
				panic(r)
			}
			code = fatal.code
		}
	}()
	return t.Proc(tc, in, out, t.Data)
}

// startSubprocess hosts the task in a re-executed child. The task-side
// pipe ends become the child's standard streams; the launcher closes the
// parent's copies once the child owns them.
func (t *Task) startSubprocess(procIn, procOut *os.File) error {
	if lookupTask(t.Name) == nil {
		closeQuiet(procIn)
		closeQuiet(procOut)
		closeQuiet(t.In)
		closeQuiet(t.Out)
		t.In, t.Out = nil, nil
		return fmt.Errorf("run: task %q not registered", t.Name)
	}

	cmd := &Command{
		Program:     TaskCommandName,
		Args:        append([]string{TaskCommandName, t.Name}, t.Args...),
		Internal:    true,
		CleanOnExit: true,
	}
	if procIn != nil {
		cmd.Stdin = IOFile
		cmd.GivenIn = procIn
	}
	if procOut != nil {
		cmd.Stdout = IOFile
		cmd.GivenOut = procOut
	}
	if err := cmd.Start(); err != nil {
		closeQuiet(t.In)
		closeQuiet(t.Out)
		t.In, t.Out = nil, nil
		return err
	}
	t.cmd = cmd
	return nil
}

// Join blocks until the task finishes and returns its integer result.
// Each started task must be joined exactly once.
func (t *Task) Join() (int, error) {
	if !t.started {
		return -1, errors.New("run: task not started")
	}
	if t.cmd != nil {
		return t.cmd.Finish()
	}
	return <-t.result, nil
}

var tasks struct {
	mu sync.RWMutex
	m  map[string]TaskFunc
}

// RegisterTask makes fn runnable in subprocess mode under name. Both the
// parent and the re-executed child must register the task, so call this
// from an init path that runs in every invocation of the tool.
func RegisterTask(name string, fn TaskFunc) {
	tasks.mu.Lock()
	defer tasks.mu.Unlock()
	if tasks.m == nil {
		tasks.m = make(map[string]TaskFunc)
	}
	tasks.m[name] = fn
}

func lookupTask(name string) TaskFunc {
	tasks.mu.RLock()
	defer tasks.mu.RUnlock()
	return tasks.m[name]
}

// TaskMain hosts a registered task in the current process, wired to the
// process standard streams. The hidden internal-task subcommand calls it
// in the re-executed child; the return value is the exit status.
func TaskMain(name string, args []string) int {
	fn := lookupTask(name)
	if fn == nil {
		fmt.Fprintf(os.Stderr, "fatal: unknown internal task %q\n", name)
		return 128
	}
	t := &Task{Proc: fn, Data: args}
	tc := &TaskContext{in: os.Stdin, out: os.Stdout}
	return t.invoke(tc, os.Stdin, os.Stdout)
}
