package run

import (
	"sync"
	"syscall"
	"testing"
)

func registrySize() int {
	children.mu.Lock()
	defer children.mu.Unlock()
	return len(children.pids)
}

func TestRegistry_FinishClearsEntry(t *testing.T) {
	requireUnix(t)
	cmd := &Command{
		Program:     "true",
		Stdin:       IONull,
		Stdout:      IONull,
		Stderr:      IONull,
		CleanOnExit: true,
	}
	if err := cmd.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if code, err := cmd.Finish(); err != nil || code != 0 {
		t.Fatalf("Finish() = %d, %v", code, err)
	}
	if n := registrySize(); n != 0 {
		t.Errorf("registry has %d entries after Finish, want 0", n)
	}

	// A cleanup firing now must not signal the reaped pid: the registry
	// no longer knows it.
	children.signalAll(syscall.SIGTERM)
	if n := registrySize(); n != 0 {
		t.Errorf("registry has %d entries after cleanup, want 0", n)
	}
}

func TestRegistry_SignalAllReachesConcurrentChildren(t *testing.T) {
	requireUnix(t)
	var wg sync.WaitGroup
	cmds := make([]*Command, 2)
	errs := make([]error, 2)
	for i := range cmds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd := &Command{
				Program:     "sleep",
				Args:        []string{"sleep", "30"},
				Stdin:       IONull,
				Stdout:      IONull,
				Stderr:      IONull,
				CleanOnExit: true,
			}
			errs[i] = cmd.Start()
			cmds[i] = cmd
		}()
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}
	}

	// Simulated termination signal: both children must receive it and
	// the registry must end empty.
	children.signalAll(syscall.SIGTERM)
	if n := registrySize(); n != 0 {
		t.Errorf("registry has %d entries after signalAll, want 0", n)
	}

	for _, cmd := range cmds {
		code, err := cmd.Finish()
		if err != nil {
			t.Fatalf("Finish() error = %v", err)
		}
		if code != 128+int(syscall.SIGTERM) {
			t.Errorf("Finish() = %d, want %d", code, 128+int(syscall.SIGTERM))
		}
	}
}

func TestRegistry_UnregisterUnknownPidIsHarmless(t *testing.T) {
	children.unregister(-12345)
}
