// Package run is the process-execution core of keelson.
//
// It launches child processes with per-stream redirection plans, detects
// "program not found" promptly at launch time, tracks live children in a
// process-wide registry so termination signals propagate to them, and runs
// caller-supplied units of pipe-connected work either on a goroutine or as
// a re-executed subprocess.
//
// # Command
//
// A Command is a single-use launch request. Fill in the program, argv,
// environment overrides and stream modes, then Start it:
//
//	cmd := &run.Command{
//		Program: "git",
//		Args:    []string{"git", "for-each-ref"},
//		Stdout:  run.IOPipe,
//	}
//	if err := cmd.Start(); err != nil { ... }
//	// read cmd.Out, then:
//	code, err := cmd.Finish()
//
// Streams default to IOInherit. Requesting IOPipe hands the parent-facing
// end back on the Command (In for stdin, Out/Err for stdout/stderr); the
// caller closes those exactly once. A caller-supplied IOFile descriptor is
// closed by the launcher once the child owns it, never by the caller.
//
// # Tasks
//
// A Task runs a TaskFunc connected to the caller by the same pipe plan.
// By default the work runs on a goroutine; naming a registered task forces
// a subprocess (the tool re-executes itself), which gives the work its own
// address space at the cost of passing the payload as argv strings.
package run
