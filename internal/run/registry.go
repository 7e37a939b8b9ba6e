package run

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// childRegistry is the process-wide set of live child pids registered for
// forced cleanup. Go delivers signals to an ordinary goroutine, so plain
// mutex discipline is enough to make register/unregister/signalAll safe
// against asynchronous signal arrival; nothing here runs in handler
// context the way a POSIX signal handler would.
type childRegistry struct {
	mu        sync.Mutex
	pids      map[int]struct{}
	installed bool
}

var children childRegistry

// cleanupSignals are the termination signals forwarded to registered
// children before the process itself dies of them.
var cleanupSignals = []os.Signal{
	syscall.SIGHUP,
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
}

func (r *childRegistry) register(pid int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pids == nil {
		r.pids = make(map[int]struct{})
	}
	r.pids[pid] = struct{}{}
	if !r.installed {
		r.installed = true
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, cleanupSignals...)
		go r.watch(ch)
	}
}

func (r *childRegistry) unregister(pid int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pids, pid)
}

// signalAll sends sig to every registered child and empties the registry.
func (r *childRegistry) signalAll(sig syscall.Signal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for pid := range r.pids {
		_ = syscall.Kill(pid, sig)
	}
	clear(r.pids)
}

// watch forwards the first termination signal to the children, then
// restores the default disposition and re-raises so the process still
// dies of the original signal.
func (r *childRegistry) watch(ch <-chan os.Signal) {
	sig := <-ch
	s, ok := sig.(syscall.Signal)
	if !ok {
		s = syscall.SIGTERM
	}
	r.signalAll(s)
	signal.Reset(sig)
	_ = syscall.Kill(syscall.Getpid(), s)
}

// Cleanup terminates every still-registered child with SIGTERM. main runs
// it before a normal exit; children that were already reaped by Finish
// are long gone from the registry and receive nothing.
func Cleanup() {
	children.signalAll(syscall.SIGTERM)
}
